package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/conn-castle/cc-spec/internal/install"
	"github.com/conn-castle/cc-spec/internal/language"
	"github.com/conn-castle/cc-spec/internal/messages"
)

type installFunc func(context.Context, install.Options) (install.Report, error)

// installFlags are shared by install and update.
type installFlags struct {
	lang               string
	force              bool
	skipCompanionCheck bool
	overwriteRoles     bool
}

func (f *installFlags) register(cmd *cobra.Command, withForce bool) {
	cmd.Flags().StringVar(&f.lang, "lang", "", messages.InstallFlagLang)
	if withForce {
		cmd.Flags().BoolVar(&f.force, "force", false, messages.InstallFlagForce)
	}
	cmd.Flags().BoolVar(&f.skipCompanionCheck, "skip-companion-check", false, messages.InstallFlagSkipCompanion)
	cmd.Flags().BoolVar(&f.overwriteRoles, "overwrite-roles", false, messages.InstallFlagOverwriteRoles)
}

func newInstallCmd(root *rootFlags) *cobra.Command {
	flags := &installFlags{}
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, root, flags, install.Install)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newUpdateCmd(root *rootFlags) *cobra.Command {
	flags := &installFlags{}
	cmd := &cobra.Command{
		Use:   messages.UpdateUse,
		Short: messages.UpdateShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, root, flags, install.Update)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func runInstall(cmd *cobra.Command, root *rootFlags, flags *installFlags, run installFunc) error {
	var lang language.Language
	if flags.lang != "" {
		parsed, err := language.Parse(flags.lang)
		if err != nil {
			return err
		}
		lang = parsed
	}
	opts, err := newOptions(cmd, root)
	if err != nil {
		return err
	}
	opts.Language = lang
	opts.Force = flags.force
	opts.SkipCompanionCheck = flags.skipCompanionCheck
	opts.OverwriteRoles = flags.overwriteRoles

	out := cmd.OutOrStdout()
	printBanner(out, opts.Version)
	report, err := run(cmd.Context(), opts)
	printSteps(out, report.Steps)
	if err != nil {
		printAttention(out, report.Steps)
		return err
	}
	printInstallSummary(out, report)
	return nil
}
