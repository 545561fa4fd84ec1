package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/ebb/internal/rules"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [preset]",
		Short: "List built-in rule presets, or print one as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, name := range rules.PresetNames() {
					marker := ""
					if name == rules.DefaultPreset {
						marker = " (default)"
					}
					fmt.Fprintf(out, "%s%s\n", name, marker)
				}
				return nil
			}

			rs, err := rules.Preset(args[0])
			if err != nil {
				return err
			}
			data, err := rs.Marshal()
			if err != nil {
				return fmt.Errorf("marshal rules: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}
}
