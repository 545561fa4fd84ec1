package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/MikeSquared-Agency/ebb/internal/ingest"
	"github.com/MikeSquared-Agency/ebb/internal/report"
	"github.com/MikeSquared-Agency/ebb/internal/rules"
	"github.com/MikeSquared-Agency/ebb/internal/turns"
)

// Config holds the batch command configuration.
type Config struct {
	InputDir  string
	OutputDir string
	Format    string // forces a format for every file; empty means detect
	Aliases   ingest.Aliases
	DryRun    bool // analyze and summarize without writing reports
}

// Runner analyzes every transcript under a directory, one file at a time.
type Runner struct {
	cfg     Config
	ruleSet string
	rules   turns.Config
	logger  *slog.Logger
	out     io.Writer
}

// NewRunner compiles the rule set once for the whole run.
func NewRunner(cfg Config, rs *rules.RuleSet, logger *slog.Logger, out io.Writer) (*Runner, error) {
	compiled, err := rs.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		cfg:     cfg,
		ruleSet: rs.Name,
		rules:   compiled,
		logger:  logger,
		out:     out,
	}, nil
}

// Run executes the batch and prints its summary. Files that fail to load are
// recorded and skipped; only a missing input directory or cancellation stops
// the run.
func (r *Runner) Run(ctx context.Context) ([]FileSummary, error) {
	files, err := r.discoverFiles()
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}
	r.logger.Info("files discovered", "dir", r.cfg.InputDir, "files", len(files))

	seen := seenSet{}
	var summaries []FileSummary

	for _, path := range files {
		select {
		case <-ctx.Done():
			r.logger.Info("batch interrupted", "processed", len(summaries), "remaining", len(files)-len(summaries))
			fmt.Fprint(r.out, FormatSummary(summaries))
			return summaries, ctx.Err()
		default:
		}

		summaries = append(summaries, r.processFile(path, seen))
	}

	r.logger.Info("batch complete", "files", len(files), "dry_run", r.cfg.DryRun)
	fmt.Fprint(r.out, FormatSummary(summaries))
	return summaries, nil
}

func (r *Runner) processFile(path string, seen seenSet) FileSummary {
	fs := FileSummary{Path: path}

	doc, err := ingest.Load(path, r.cfg.Format, r.cfg.Aliases)
	if err != nil {
		r.logger.Warn("failed to load transcript", "path", path, "error", err)
		fs.Err = err
		return fs
	}
	fs.Format = doc.Format

	ts := doc.Turns(r.rules)
	fp := BuildFingerprint(path, ts)
	if first, dup := seen.Lookup(fp); dup {
		r.logger.Info("skipping duplicate transcript", "path", path, "duplicate_of", first, "preview", fp.Preview)
		fs.DuplicateOf = first
		return fs
	}

	res := report.NewResult(path, r.ruleSet, ts)
	fs.Turns = len(ts)
	fs.MaxScore = res.Summary.MaxScore
	fs.LastScore = res.Summary.LastScore
	fs.TurningPoints = len(res.Summary.TurningPoints)

	if !r.cfg.DryRun {
		paths, err := report.Write(r.cfg.OutputDir, res)
		if err != nil {
			r.logger.Error("failed to write report", "path", path, "error", err)
			fs.Err = err
			return fs
		}
		fs.ReportDir = paths.Dir
	}
	seen.Record(fp)

	r.logger.Info("transcript analyzed",
		"path", path,
		"format", doc.Format,
		"turns", fs.Turns,
		"turning_points", fs.TurningPoints,
		"report_dir", fs.ReportDir,
	)
	return fs
}

// discoverFiles walks the input directory for supported transcripts, in
// lexical order so runs are reproducible.
func (r *Runner) discoverFiles() ([]string, error) {
	info, err := os.Stat(r.cfg.InputDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", r.cfg.InputDir)
	}

	outDir, _ := filepath.Abs(r.cfg.OutputDir)

	var files []string
	err = filepath.WalkDir(r.cfg.InputDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			r.logger.Warn("error walking input dir", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(path); r.cfg.OutputDir != "" && abs == outDir {
				return filepath.SkipDir
			}
			return nil
		}
		if r.cfg.Format != "" || ingest.Supported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
