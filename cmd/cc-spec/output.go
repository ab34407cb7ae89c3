package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/conn-castle/cc-spec/internal/install"
	"github.com/conn-castle/cc-spec/internal/messages"
	"github.com/conn-castle/cc-spec/internal/steps"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
	skipColor = color.New(color.Faint)

	bannerStyle = lipgloss.NewStyle().Bold(true).Inline(true)
)

// colorWriter paints everything written through it.
type colorWriter struct {
	w io.Writer
	c *color.Color
}

func (cw colorWriter) Write(p []byte) (int, error) {
	if _, err := cw.c.Fprint(cw.w, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func printBanner(out io.Writer, v string) {
	_, _ = fmt.Fprintln(out, bannerStyle.Render(fmt.Sprintf(messages.BannerFmt, v)))
}

// printSteps lists completed and skipped steps. Warnings were already reported as they happened.
func printSteps(out io.Writer, results []steps.Result) {
	for _, res := range results {
		var label string
		switch res.Outcome {
		case steps.OK:
			label = okColor.Sprint(messages.StepOKLabel)
		case steps.Skipped:
			label = skipColor.Sprint(messages.StepSkippedLabel)
		default:
			continue
		}
		_, _ = fmt.Fprintf(out, messages.StepLineFmt, label, res.Message)
		for _, detail := range res.Details {
			_, _ = fmt.Fprintf(out, messages.StepDetailFmt, strings.TrimSpace(detail))
		}
	}
}

// printAttention names the steps whose warnings were printed while the run progressed.
func printAttention(out io.Writer, results []steps.Result) {
	attention := steps.Attention(results)
	if len(attention) == 0 {
		return
	}
	c := warnColor
	names := make([]string, 0, len(attention))
	for _, res := range attention {
		if res.Outcome == steps.Failed {
			c = failColor
		}
		if !slices.Contains(names, res.Step) {
			names = append(names, res.Step)
		}
	}
	_, _ = fmt.Fprintln(out, c.Sprintf(messages.SummaryAttentionFmt, len(attention), strings.Join(names, ", ")))
}

func printInstallSummary(out io.Writer, report install.Report) {
	printAttention(out, report.Steps)
	if report.BackupPath != "" {
		_, _ = fmt.Fprintf(out, messages.SummaryBackupFmt, report.BackupPath)
	}
	_, _ = fmt.Fprintln(out, okColor.Sprintf(messages.SummaryInstalledFmt, report.Language, report.InstallRoot))
}

func printUninstallSummary(out io.Writer, report install.Report) {
	printAttention(out, report.Steps)
	if report.Restored {
		_, _ = fmt.Fprintln(out, okColor.Sprintf(messages.SummaryRestoredFmt, report.BackupPath))
		return
	}
	_, _ = fmt.Fprintln(out, okColor.Sprintf(messages.SummaryUninstalledFmt, report.InstallRoot))
}
