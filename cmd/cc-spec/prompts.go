package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/conn-castle/cc-spec/internal/companion"
	"github.com/conn-castle/cc-spec/internal/install"
	"github.com/conn-castle/cc-spec/internal/language"
	"github.com/conn-castle/cc-spec/internal/messages"
	"github.com/conn-castle/cc-spec/internal/priority"
	"github.com/conn-castle/cc-spec/internal/ui"
)

// newPrompter adapts the terminal UI to the installer's questions.
func newPrompter(u ui.UI) install.PromptFuncs {
	return install.PromptFuncs{
		ChooseLanguageFunc: func(current language.Language, requested language.Language) (install.LanguageChoice, error) {
			return chooseLanguage(u, current, requested)
		},
		SelectPriorityFunc: func(order []string, providers []string) (install.PrioritySelection, error) {
			return selectPriority(u, order, providers)
		},
		ConfirmCompanionInstallFunc: func() (bool, error) {
			return confirm(u, messages.PromptCompanionInstall, true)
		},
		ConfirmCompanionUpgradeFunc: func(current string, minimum string) (bool, error) {
			return confirm(u, fmt.Sprintf(messages.PromptCompanionUpgradeFmt, current, minimum), true)
		},
		ConfirmRoleOverwriteFunc: func(previews []companion.RolePreview) (bool, error) {
			if err := u.Note(fmt.Sprintf(messages.PromptRoleDiffTitleFmt, len(previews)), renderPreviews(previews)); err != nil {
				return false, mapCancel(err)
			}
			return confirm(u, messages.PromptRoleOverwrite, false)
		},
		ConfirmUninstallFunc: func() (bool, error) {
			return confirm(u, messages.PromptUninstall, false)
		},
		ConfirmRestoreFunc: func(backupPath string, takenAt string) (bool, error) {
			return confirm(u, fmt.Sprintf(messages.PromptRestoreFmt, takenAt, backupPath), true)
		},
	}
}

// mapCancel turns a UI abort into the installer's cancellation error.
func mapCancel(err error) error {
	if errors.Is(err, ui.ErrCancelled) {
		return install.ErrCancelled
	}
	return err
}

func confirm(u ui.UI, title string, initial bool) (bool, error) {
	value := initial
	if err := u.Confirm(title, &value); err != nil {
		return false, mapCancel(err)
	}
	return value, nil
}

func chooseLanguage(u ui.UI, current language.Language, requested language.Language) (install.LanguageChoice, error) {
	choice := string(install.LanguageKeep)
	options := []ui.Option{
		{Label: fmt.Sprintf(messages.PromptLanguageKeepFmt, current), Value: string(install.LanguageKeep)},
		{Label: fmt.Sprintf(messages.PromptLanguageSwitchFmt, requested), Value: string(install.LanguageSwitch)},
		{Label: messages.PromptLanguageCancel, Value: string(install.LanguageCancel)},
	}
	if err := u.Select(fmt.Sprintf(messages.PromptLanguageConflictFmt, current, requested), options, &choice); err != nil {
		return "", mapCancel(err)
	}
	return install.LanguageChoice(choice), nil
}

// selectPriority asks for the CLI order one position at a time, then a provider per CLI
// when more than auto is available.
func selectPriority(u ui.UI, order []string, providers []string) (install.PrioritySelection, error) {
	remaining := slices.Clone(order)
	chosen := make([]string, 0, len(order))
	for len(remaining) > 1 {
		options := make([]ui.Option, len(remaining))
		for i, cli := range remaining {
			options[i] = ui.Option{Label: priority.DisplayName(cli), Value: cli}
		}
		pick := remaining[0]
		if err := u.Select(fmt.Sprintf(messages.PromptPriorityPositionFmt, len(chosen)+1), options, &pick); err != nil {
			return install.PrioritySelection{}, mapCancel(err)
		}
		idx := slices.Index(remaining, pick)
		if idx < 0 {
			idx = 0
			pick = remaining[0]
		}
		chosen = append(chosen, pick)
		remaining = slices.Delete(remaining, idx, idx+1)
	}
	chosen = append(chosen, remaining...)

	selections := make(map[string]string, len(chosen))
	if len(providers) > 1 {
		options := make([]ui.Option, len(providers))
		for i, provider := range providers {
			options[i] = ui.Option{Label: priority.ProviderLabel(provider), Value: provider}
		}
		for _, cli := range chosen {
			pick := priority.ProviderAuto
			if err := u.Select(fmt.Sprintf(messages.PromptPriorityProviderFmt, priority.DisplayName(cli)), options, &pick); err != nil {
				return install.PrioritySelection{}, mapCancel(err)
			}
			selections[cli] = pick
		}
	}
	return install.PrioritySelection{Order: chosen, Providers: selections}, nil
}

func renderPreviews(previews []companion.RolePreview) string {
	var b strings.Builder
	for i, preview := range previews {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, messages.PromptRoleDiffHeaderFmt, preview.Name)
		b.WriteString(preview.Diff)
		if !strings.HasSuffix(preview.Diff, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
