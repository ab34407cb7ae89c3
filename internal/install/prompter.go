package install

import (
	"fmt"

	"github.com/conn-castle/cc-spec/internal/companion"
	"github.com/conn-castle/cc-spec/internal/language"
	"github.com/conn-castle/cc-spec/internal/messages"
)

// LanguageChoice is the answer to the language conflict prompt.
type LanguageChoice string

const (
	LanguageKeep   LanguageChoice = "keep"
	LanguageSwitch LanguageChoice = "switch"
	LanguageCancel LanguageChoice = "cancel"
)

// PrioritySelection is the answer to the priority prompts.
type PrioritySelection struct {
	Order     []string
	Providers map[string]string
}

// Prompter provides every question the installer may ask.
type Prompter interface {
	companion.Prompter
	companion.RolePrompter
	ChooseLanguage(current language.Language, requested language.Language) (LanguageChoice, error)
	SelectPriority(defaultOrder []string, providers []string) (PrioritySelection, error)
	ConfirmUninstall() (bool, error)
	ConfirmRestore(backupPath string, takenAt string) (bool, error)
}

// PromptChooseLanguageFunc resolves a language conflict.
type PromptChooseLanguageFunc func(current language.Language, requested language.Language) (LanguageChoice, error)

// PromptSelectPriorityFunc collects CLI order and provider selections.
type PromptSelectPriorityFunc func(defaultOrder []string, providers []string) (PrioritySelection, error)

// PromptConfirmFunc asks a yes/no question.
type PromptConfirmFunc func() (bool, error)

// PromptConfirmUpgradeFunc asks whether to upgrade the companion.
type PromptConfirmUpgradeFunc func(current string, minimum string) (bool, error)

// PromptConfirmRestoreFunc asks whether to restore a backup.
type PromptConfirmRestoreFunc func(backupPath string, takenAt string) (bool, error)

// PromptRoleOverwriteFunc asks whether existing role files may be replaced.
type PromptRoleOverwriteFunc func(previews []companion.RolePreview) (bool, error)

// PromptFuncs adapts optional prompt callbacks into a Prompter.
type PromptFuncs struct {
	ChooseLanguageFunc          PromptChooseLanguageFunc
	SelectPriorityFunc          PromptSelectPriorityFunc
	ConfirmCompanionInstallFunc PromptConfirmFunc
	ConfirmCompanionUpgradeFunc PromptConfirmUpgradeFunc
	ConfirmRoleOverwriteFunc    PromptRoleOverwriteFunc
	ConfirmUninstallFunc        PromptConfirmFunc
	ConfirmRestoreFunc          PromptConfirmRestoreFunc
}

// ChooseLanguage asks whether to keep or switch the installed language.
// Returns an error if no ChooseLanguageFunc is configured.
func (p PromptFuncs) ChooseLanguage(current language.Language, requested language.Language) (LanguageChoice, error) {
	if p.ChooseLanguageFunc == nil {
		return "", fmt.Errorf(messages.InstallPromptRequiredFmt, "language")
	}
	return p.ChooseLanguageFunc(current, requested)
}

// SelectPriority collects the CLI priority order and provider choices.
// Returns an error if no SelectPriorityFunc is configured.
func (p PromptFuncs) SelectPriority(defaultOrder []string, providers []string) (PrioritySelection, error) {
	if p.SelectPriorityFunc == nil {
		return PrioritySelection{}, fmt.Errorf(messages.InstallPromptRequiredFmt, "priority")
	}
	return p.SelectPriorityFunc(defaultOrder, providers)
}

// ConfirmCompanionInstall asks whether to install the missing companion.
func (p PromptFuncs) ConfirmCompanionInstall() (bool, error) {
	if p.ConfirmCompanionInstallFunc == nil {
		return false, fmt.Errorf(messages.InstallPromptRequiredFmt, "companion install")
	}
	return p.ConfirmCompanionInstallFunc()
}

// ConfirmCompanionUpgrade asks whether to upgrade an outdated companion.
func (p PromptFuncs) ConfirmCompanionUpgrade(current string, minimum string) (bool, error) {
	if p.ConfirmCompanionUpgradeFunc == nil {
		return false, fmt.Errorf(messages.InstallPromptRequiredFmt, "companion upgrade")
	}
	return p.ConfirmCompanionUpgradeFunc(current, minimum)
}

// ConfirmRoleOverwrite asks whether existing companion roles may be replaced.
func (p PromptFuncs) ConfirmRoleOverwrite(previews []companion.RolePreview) (bool, error) {
	if p.ConfirmRoleOverwriteFunc == nil {
		return false, fmt.Errorf(messages.InstallPromptRequiredFmt, "role overwrite")
	}
	return p.ConfirmRoleOverwriteFunc(previews)
}

// ConfirmUninstall asks for uninstall confirmation.
func (p PromptFuncs) ConfirmUninstall() (bool, error) {
	if p.ConfirmUninstallFunc == nil {
		return false, fmt.Errorf(messages.InstallPromptRequiredFmt, "uninstall")
	}
	return p.ConfirmUninstallFunc()
}

// ConfirmRestore asks whether to restore the pre-install backup.
func (p PromptFuncs) ConfirmRestore(backupPath string, takenAt string) (bool, error) {
	if p.ConfirmRestoreFunc == nil {
		return false, fmt.Errorf(messages.InstallPromptRequiredFmt, "restore")
	}
	return p.ConfirmRestoreFunc(backupPath, takenAt)
}
