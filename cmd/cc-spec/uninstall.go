package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/cc-spec/internal/install"
	"github.com/conn-castle/cc-spec/internal/messages"
)

func newUninstallCmd(root *rootFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   messages.UninstallUse,
		Short: messages.UninstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := newOptions(cmd, root)
			if err != nil {
				return err
			}
			opts.Force = force
			report, err := install.Uninstall(cmd.Context(), opts)
			out := cmd.OutOrStdout()
			printSteps(out, report.Steps)
			if err != nil {
				printAttention(out, report.Steps)
				return err
			}
			printUninstallSummary(out, report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, messages.UninstallFlagForce)
	return cmd
}
