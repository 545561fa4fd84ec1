package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/ebb/internal/batch"
)

func newBatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <dir>",
		Short: "Analyze every transcript under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := opts.ruleSet()
			if err != nil {
				return err
			}
			aliases, err := opts.speakerAliases()
			if err != nil {
				return err
			}

			runner, err := batch.NewRunner(batch.Config{
				InputDir:  args[0],
				OutputDir: opts.outputDir,
				Format:    opts.format,
				Aliases:   aliases,
				DryRun:    opts.dryRun,
			}, rs, slog.Default(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, err = runner.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
