package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
)

func stubRunForm(t *testing.T, fn func(form *huh.Form) error) {
	t.Helper()
	orig := runFormFunc
	t.Cleanup(func() { runFormFunc = orig })
	runFormFunc = fn
}

func TestNewHuhUI(t *testing.T) {
	ui := NewHuhUI()
	assert.NotNil(t, ui)
	assert.NotNil(t, ui.isTerminal)
}

func TestHuhUI_NoTTY(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return false }}
	stubRunForm(t, func(*huh.Form) error {
		t.Fatal("form must not run without a terminal")
		return nil
	})

	var choice string
	assert.ErrorContains(t, ui.Select("Title", []Option{{Label: "A", Value: "a"}}, &choice), "interactive terminal")
	var ok bool
	assert.Error(t, ui.Confirm("Title", &ok))
	assert.Error(t, ui.Note("Title", "Body"))
}

func TestHuhUI_RunFormSuccess(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return true }}
	called := 0
	stubRunForm(t, func(form *huh.Form) error {
		assert.NotNil(t, form)
		called++
		return nil
	})

	var choice string
	assert.NoError(t, ui.Select("Title", []Option{{Label: "A", Value: "a"}}, &choice))
	var ok bool
	assert.NoError(t, ui.Confirm("Title", &ok))
	assert.NoError(t, ui.Note("Title", "Body"))
	assert.Equal(t, 3, called)
}

func TestHuhUI_RunFormMapsUserAbortToCancelled(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return true }}
	stubRunForm(t, func(*huh.Form) error { return huh.ErrUserAborted })

	var ok bool
	assert.ErrorIs(t, ui.Confirm("Title", &ok), ErrCancelled)
}

func TestHuhUI_RunFormPassesOtherErrors(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return true }}
	boom := errors.New("boom")
	stubRunForm(t, func(*huh.Form) error { return boom })

	var ok bool
	err := ui.Confirm("Title", &ok)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrCancelled)
}

func TestFormFilter(t *testing.T) {
	assert.IsType(t, tea.QuitMsg{}, formFilter(nil, tea.InterruptMsg{}))
	assert.IsType(t, tea.KeyMsg{}, formFilter(nil, tea.KeyMsg{Type: tea.KeyCtrlC}))
	assert.IsType(t, tea.WindowSizeMsg{}, formFilter(nil, tea.WindowSizeMsg{Width: 80, Height: 24}))
}

func TestPromptKeyMap(t *testing.T) {
	km := promptKeyMap()
	assert.ElementsMatch(t, []string{"ctrl+c", "esc"}, km.Quit.Keys())
	assert.False(t, km.Select.Filter.Enabled())
}
