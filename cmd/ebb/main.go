package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/ebb/internal/config"
	"github.com/MikeSquared-Agency/ebb/internal/ingest"
	"github.com/MikeSquared-Agency/ebb/internal/rules"
)

// options are the flags shared by analyze and batch. Unset flags fall back to
// the environment configuration.
type options struct {
	rules     string
	rulesFile string
	format    string
	outputDir string
	aliases   []string
	dryRun    bool
}

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	if err := newRootCmd(cfg).Execute(); err != nil {
		slog.Error("ebb failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "ebb",
		Short:         "Score risk and supportive strategies across conversation turns",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.rules, "rules", cfg.Rules, "built-in rule preset ("+strings.Join(rules.PresetNames(), ", ")+")")
	pf.StringVar(&opts.rulesFile, "rules-file", cfg.RulesFile, "YAML rule set; overrides --rules")
	pf.StringVar(&opts.format, "format", cfg.Format, "input format: text, docx, labelled, jsonl (default: by extension)")
	pf.StringVar(&opts.outputDir, "out", cfg.OutputDir, "directory for report runs")
	pf.StringSliceVar(&opts.aliases, "alias", splitList(cfg.Aliases), "speaker label mapping for labelled input, e.g. Client=subject")
	pf.BoolVar(&opts.dryRun, "dry-run", cfg.DryRun, "analyze without writing report files")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newBatchCmd(opts),
		newRulesCmd(),
	)
	return root
}

func (o *options) ruleSet() (*rules.RuleSet, error) {
	return rules.Resolve(o.rules, o.rulesFile)
}

func (o *options) speakerAliases() (ingest.Aliases, error) {
	if len(o.aliases) == 0 {
		return nil, nil
	}
	return ingest.ParseAliases(o.aliases)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	// stdout carries reports, so logs go to stderr.
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
