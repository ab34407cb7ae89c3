package install

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/cc-spec/internal/companion"
	"github.com/conn-castle/cc-spec/internal/language"
)

func TestPromptFuncsRequireCallbacks(t *testing.T) {
	var p PromptFuncs

	_, err := p.ChooseLanguage(language.English, language.Chinese)
	assert.ErrorContains(t, err, "language")
	_, err = p.SelectPriority(nil, nil)
	assert.ErrorContains(t, err, "priority")
	_, err = p.ConfirmCompanionInstall()
	assert.ErrorContains(t, err, "companion install")
	_, err = p.ConfirmCompanionUpgrade("0.5.0", "0.5.36")
	assert.ErrorContains(t, err, "companion upgrade")
	_, err = p.ConfirmRoleOverwrite(nil)
	assert.ErrorContains(t, err, "role overwrite")
	_, err = p.ConfirmUninstall()
	assert.ErrorContains(t, err, "uninstall")
	_, err = p.ConfirmRestore("/tmp/backup", "now")
	assert.ErrorContains(t, err, "restore")
}

func TestPromptFuncsDelegate(t *testing.T) {
	p := PromptFuncs{
		ChooseLanguageFunc: func(current, requested language.Language) (LanguageChoice, error) {
			return LanguageSwitch, nil
		},
		SelectPriorityFunc: func(order []string, providers []string) (PrioritySelection, error) {
			return PrioritySelection{Order: order}, nil
		},
		ConfirmCompanionInstallFunc: func() (bool, error) { return true, nil },
		ConfirmCompanionUpgradeFunc: func(current, minimum string) (bool, error) { return current != minimum, nil },
		ConfirmRoleOverwriteFunc: func(previews []companion.RolePreview) (bool, error) {
			return len(previews) == 1, nil
		},
		ConfirmUninstallFunc: func() (bool, error) { return true, nil },
		ConfirmRestoreFunc:   func(path string, _ string) (bool, error) { return path == "/b", nil },
	}

	choice, err := p.ChooseLanguage(language.English, language.Chinese)
	require.NoError(t, err)
	assert.Equal(t, LanguageSwitch, choice)

	sel, err := p.SelectPriority([]string{"codex"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"codex"}, sel.Order)

	ok, err := p.ConfirmCompanionInstall()
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = p.ConfirmCompanionUpgrade("0.5.0", "0.5.36")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = p.ConfirmRoleOverwrite([]companion.RolePreview{{Name: "a.md"}})
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = p.ConfirmUninstall()
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = p.ConfirmRestore("/b", "")
	require.NoError(t, err)
	assert.True(t, ok)
}
