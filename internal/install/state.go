package install

import (
	"time"

	"github.com/conn-castle/cc-spec/internal/language"
	"github.com/conn-castle/cc-spec/internal/state"
)

// Mode is the installation state machine state, computed fresh on every invocation.
type Mode string

const (
	// ModeFresh means the install root does not exist.
	ModeFresh Mode = "FRESH"
	// ModeUpgrade means the root carries a version record.
	ModeUpgrade Mode = "UPGRADE"
	// ModeAdopt means the root exists without a version record.
	ModeAdopt Mode = "ADOPT"
)

// InstallState is the snapshot the state machine branches on.
// When Installed is false every other field is zero.
type InstallState struct {
	Installed        bool
	Language         language.Language
	Version          string
	InstalledAt      time.Time
	HasVersionRecord bool
}

// Mode derives the state machine state. Only the version record marks an install as ours;
// a language recovered from the marker document still leaves the root in ADOPT.
func (s InstallState) Mode() Mode {
	switch {
	case !s.Installed:
		return ModeFresh
	case s.HasVersionRecord:
		return ModeUpgrade
	default:
		return ModeAdopt
	}
}

// ReadState inspects root. Unreadable metadata is treated as absent.
func ReadState(sys System, root string, hints language.Hints) InstallState {
	info, err := sys.Stat(root)
	if err != nil || !info.IsDir() {
		return InstallState{}
	}
	st := InstallState{Installed: true}
	if lang, ok := language.DetectCurrentLanguage(sys, root, hints); ok {
		st.Language = lang
	}
	if rec, ok := state.ReadVersionRecord(sys, root); ok {
		st.HasVersionRecord = true
		st.Version = rec.Version
		st.InstalledAt = rec.Time()
	}
	return st
}
