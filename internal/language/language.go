// Package language decides which bundle language to install.
package language

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/conn-castle/cc-spec/internal/messages"
	"github.com/conn-castle/cc-spec/internal/state"
)

// Language is a bundle language code.
type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
	// Fallback is used when the system locale cannot be determined.
	Fallback = English
)

// Supported lists the bundle languages in display order.
var Supported = []Language{English, Chinese}

// sniffOrder checks the more specific Chinese hints before English ones,
// since Chinese documents commonly contain English phrases.
var sniffOrder = []Language{Chinese, English}

// ErrLocaleUnavailable reports that no locale variable was set.
var ErrLocaleUnavailable = errors.New(messages.LanguageLocaleUnavailable)

var chineseLocale = regexp.MustCompile(`(?i)^zh(?:[_-][a-z]{2,4})?$`)

// localeVars are consulted in order; the first non-empty value wins.
var localeVars = []string{"LC_ALL", "LC_MESSAGES", "LANG", "LANGUAGE"}

// Parse validates a user-supplied language code.
func Parse(value string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(value))) {
	case English:
		return English, nil
	case Chinese:
		return Chinese, nil
	default:
		return "", fmt.Errorf(messages.LanguageInvalidFmt, value)
	}
}

// Normalize maps anything other than Chinese to English.
func Normalize(value string) Language {
	if lang, err := Parse(value); err == nil {
		return lang
	}
	return English
}

// SystemLocale returns the first non-empty locale variable reported by lookup.
func SystemLocale(lookup func(string) (string, bool)) (string, error) {
	for _, key := range localeVars {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			// LANGUAGE is a colon-separated priority list.
			if key == "LANGUAGE" {
				value = strings.Split(value, ":")[0]
			}
			return strings.TrimSpace(value), nil
		}
	}
	return "", ErrLocaleUnavailable
}

// DetectSystemLanguage returns Chinese for Chinese locales and English otherwise.
// A failed lookup yields Fallback.
func DetectSystemLanguage(locale string, err error) Language {
	if err != nil || locale == "" {
		return Fallback
	}
	tag := locale
	if i := strings.IndexAny(tag, ".@"); i >= 0 {
		tag = tag[:i]
	}
	if chineseLocale.MatchString(tag) {
		return Chinese
	}
	return English
}

// Hints drive legacy detection for installs that predate the version record.
type Hints struct {
	// Marker is the document inspected, relative to the install root.
	Marker string
	// Substrings maps each language to phrases that only appear in that language's marker.
	Substrings map[Language][]string
}

// DetectCurrentLanguage recovers the language of an existing install.
// The version record wins; otherwise the marker document is sniffed for hint phrases.
func DetectCurrentLanguage(sys state.Reader, root string, hints Hints) (Language, bool) {
	if rec, ok := state.ReadVersionRecord(sys, root); ok {
		if lang, err := Parse(rec.Language); err == nil {
			return lang, true
		}
	}
	if hints.Marker == "" {
		return "", false
	}
	data, err := sys.ReadFile(filepath.Join(root, filepath.FromSlash(hints.Marker)))
	if err != nil {
		return "", false
	}
	content := string(data)
	for _, lang := range sniffOrder {
		for _, phrase := range hints.Substrings[lang] {
			if phrase != "" && strings.Contains(content, phrase) {
				return lang, true
			}
		}
	}
	return "", false
}
