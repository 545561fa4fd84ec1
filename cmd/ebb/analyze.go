package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/ebb/internal/ingest"
	"github.com/MikeSquared-Agency/ebb/internal/report"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "analyze <transcript>",
		Short: "Analyze one transcript and write its report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			rs, err := opts.ruleSet()
			if err != nil {
				return err
			}
			compiled, err := rs.Compile()
			if err != nil {
				return fmt.Errorf("compile rules: %w", err)
			}
			aliases, err := opts.speakerAliases()
			if err != nil {
				return err
			}

			doc, err := ingest.Load(path, opts.format, aliases)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}

			res := report.NewResult(path, rs.Name, doc.Turns(compiled))
			slog.Info("transcript analyzed",
				"path", path,
				"format", doc.Format,
				"rules", rs.Name,
				"turns", len(res.Turns),
				"turning_points", len(res.Summary.TurningPoints),
			)

			out := cmd.OutOrStdout()
			if printOnly {
				return report.Console(out, res.Turns, res.Summary)
			}
			if opts.dryRun {
				_, err := fmt.Fprint(out, report.Markdown(filepath.Base(path), res.Summary))
				return err
			}

			paths, err := report.Write(opts.outputDir, res)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✅ 分析完成，已產生報告：%s\n", paths.Markdown)
			return nil
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "print the turn table and score drops instead of writing files")
	return cmd
}
