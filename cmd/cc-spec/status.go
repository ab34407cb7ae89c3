package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/cc-spec/internal/install"
	"github.com/conn-castle/cc-spec/internal/messages"
	"github.com/conn-castle/cc-spec/internal/priority"
)

func newStatusCmd(root *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   messages.StatusUse,
		Short: messages.StatusShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := newOptions(cmd, root)
			if err != nil {
				return err
			}
			opts.Prompter = nil
			report, err := install.Status(cmd.Context(), opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, string(data))
				return nil
			}
			printStatus(out, report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, messages.StatusFlagJSON)
	return cmd
}

func printStatus(out io.Writer, report install.StatusReport) {
	_, _ = fmt.Fprintf(out, messages.StatusPlatformFmt, report.Platform)
	_, _ = fmt.Fprintf(out, messages.StatusRootFmt, report.InstallRoot)
	if !report.Installed {
		_, _ = fmt.Fprintln(out, warnColor.Sprint(messages.StatusNotInstalled))
		return
	}
	lang := report.Language
	if lang == "" {
		lang = messages.StatusUnknown
	}
	_, _ = fmt.Fprintf(out, messages.StatusLanguageFmt, lang)
	if report.Legacy {
		_, _ = fmt.Fprintln(out, warnColor.Sprint(messages.StatusLegacy))
	} else {
		_, _ = fmt.Fprintf(out, messages.StatusVersionFmt, report.Version, report.InstalledAt)
	}
	_, _ = fmt.Fprintf(out, messages.StatusContentFmt, report.Skills, report.Commands)
	if report.Companion != "" {
		_, _ = fmt.Fprintf(out, messages.StatusCompanionFmt, report.Companion)
	} else {
		_, _ = fmt.Fprintln(out, warnColor.Sprint(messages.StatusCompanionMissing))
	}
	if len(report.Priority) > 0 {
		_, _ = fmt.Fprintln(out, messages.StatusPriorityHeader)
		_, _ = fmt.Fprintln(out, strings.TrimRight(priority.Summary(report.Priority), "\n"))
	}
	if report.Backup != nil {
		_, _ = fmt.Fprintf(out, messages.StatusBackupFmt, report.Backup.Backup)
	}
}
