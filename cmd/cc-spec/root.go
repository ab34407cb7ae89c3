package main

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/cc-spec/internal/bundle"
	"github.com/conn-castle/cc-spec/internal/companion"
	"github.com/conn-castle/cc-spec/internal/config"
	"github.com/conn-castle/cc-spec/internal/install"
	"github.com/conn-castle/cc-spec/internal/messages"
	"github.com/conn-castle/cc-spec/internal/ui"
	"github.com/conn-castle/cc-spec/internal/version"
)

var (
	loadEnv    = config.FromOS
	newGateway = func() companion.Gateway { return companion.NewExecGateway() }
	newUI      = func() ui.UI { return ui.NewHuhUI() }
	now        = time.Now
)

// rootFlags holds persistent flags shared by every subcommand.
type rootFlags struct {
	bundleDir string
	noColor   bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				color.NoColor = true
			}
		},
	}
	cmd.PersistentFlags().StringVar(&flags.bundleDir, "bundle-dir", "", messages.RootBundleDirFlag)
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, messages.RootNoColorFlag)
	cmd.AddCommand(
		newInstallCmd(flags),
		newUpdateCmd(flags),
		newUninstallCmd(flags),
		newStatusCmd(flags),
	)
	return cmd
}

// newOptions resolves the environment, bundle, and collaborators for one invocation.
func newOptions(cmd *cobra.Command, flags *rootFlags) (install.Options, error) {
	env, err := loadEnv()
	if err != nil {
		return install.Options{}, err
	}
	dir := flags.bundleDir
	if dir == "" {
		dir = env.BundleDir
	}
	src, err := bundle.Resolve(dir)
	if err != nil {
		return install.Options{}, err
	}
	opts := install.Options{
		Env:        env,
		Version:    version.Resolve(Version),
		Bundle:     src,
		Gateway:    newGateway(),
		System:     install.RealSystem{},
		Out:        cmd.OutOrStdout(),
		WarnWriter: colorWriter{w: cmd.ErrOrStderr(), c: color.New(color.FgYellow)},
		Now:        now,
	}
	if env.CanPrompt() {
		opts.Prompter = newPrompter(newUI())
	}
	return opts, nil
}
