// Package config captures the process environment the installer depends on.
package config

import (
	"os"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/cc-spec/internal/language"
	"github.com/conn-castle/cc-spec/internal/terminal"
)

// Environment variables read by FromOS.
const (
	EnvNonInteractive = "CC_SPEC_NONINTERACTIVE"
	EnvCI             = "CI"
	EnvNpmRoot        = "npm_config_root"
	EnvForceUninstall = "FORCE_UNINSTALL"
	EnvBundleDir      = "CC_SPEC_BUNDLE_DIR"
)

// Env is the injected view of the process environment.
type Env struct {
	Home string
	GOOS string
	// Locale is the raw system locale; LocaleErr is set when it could not be determined.
	Locale    string
	LocaleErr error
	// Interactive reports whether a terminal is attached to stdin and stdout.
	Interactive bool
	// NonInteractiveOverride forces non-interactive behavior even with a terminal attached.
	NonInteractiveOverride bool
	ForceUninstall         bool
	BundleDir              string
}

// CanPrompt reports whether the user can be asked questions.
func (e Env) CanPrompt() bool {
	return e.Interactive && !e.NonInteractiveOverride
}

// FromOS builds an Env from the running process.
func FromOS() (Env, error) {
	return fromLookup(os.LookupEnv, homedir.Dir, terminal.IsInteractive, runtime.GOOS)
}

func fromLookup(lookup func(string) (string, bool), home func() (string, error), interactive func() bool, goos string) (Env, error) {
	dir, err := home()
	if err != nil {
		return Env{}, err
	}
	locale, localeErr := language.SystemLocale(lookup)
	bundleDir, _ := lookup(EnvBundleDir)
	return Env{
		Home:                   dir,
		GOOS:                   goos,
		Locale:                 locale,
		LocaleErr:              localeErr,
		Interactive:            interactive(),
		NonInteractiveOverride: isSet(lookup, EnvNonInteractive) || isSet(lookup, EnvCI) || isSet(lookup, EnvNpmRoot),
		ForceUninstall:         isSet(lookup, EnvForceUninstall),
		BundleDir:              strings.TrimSpace(bundleDir),
	}, nil
}

// isSet treats any non-empty value other than "0" or "false" as set.
func isSet(lookup func(string) (string, bool), key string) bool {
	value, ok := lookup(key)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false":
		return false
	default:
		return true
	}
}
