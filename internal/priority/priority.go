// Package priority builds the ordered CLI/provider preference list consumed by the companion tool.
package priority

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conn-castle/cc-spec/internal/messages"
)

// ProviderAuto lets the companion tool route automatically. It is always available.
const ProviderAuto = "auto"

// Supported CLIs.
const (
	CLICodex  = "codex"
	CLIGemini = "gemini"
	CLIClaude = "claude"
)

var (
	// ErrEmptyConfig is returned when asked to serialize an empty priority list.
	ErrEmptyConfig = errors.New(messages.PriorityEmpty)
	// ErrInvalidEntry is returned for an entry missing its CLI or provider.
	ErrInvalidEntry = errors.New(messages.PriorityEntryInvalid)
	// ErrEmptyContent is returned when asked to write blank config text.
	ErrEmptyContent = errors.New(messages.PriorityContentEmpty)
)

// Entry pairs a CLI with the provider it should use.
type Entry struct {
	CLI      string `yaml:"cli" json:"cli"`
	Provider string `yaml:"provider" json:"provider"`
}

// Reader reads files.
type Reader interface {
	ReadFile(name string) ([]byte, error)
}

// Writer persists the user config.
type Writer interface {
	MkdirAll(path string, perm os.FileMode) error
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
}

// DefaultPriority returns a fresh copy of the built-in priority list.
func DefaultPriority() []Entry {
	return []Entry{
		{CLI: CLICodex, Provider: ProviderAuto},
		{CLI: CLIGemini, Provider: ProviderAuto},
		{CLI: CLIClaude, Provider: "official"},
	}
}

// DefaultOrder returns the built-in CLI order.
func DefaultOrder() []string {
	defaults := DefaultPriority()
	order := make([]string, 0, len(defaults))
	for _, entry := range defaults {
		order = append(order, entry.CLI)
	}
	return order
}

// DisplayName returns the label shown for cli in prompts.
func DisplayName(cli string) string {
	switch cli {
	case CLICodex:
		return messages.PriorityDisplayCodex
	case CLIGemini:
		return messages.PriorityDisplayGemini
	case CLIClaude:
		return messages.PriorityDisplayClaude
	default:
		return cli
	}
}

// ProviderLabel returns the label shown for provider in prompts.
func ProviderLabel(provider string) string {
	if provider == ProviderAuto {
		return messages.PriorityDisplayAuto
	}
	return provider
}

// Availability is the provider set discovered at runtime.
type Availability struct {
	Providers []string
	// Warning explains why only auto is available. Empty when the registry was read.
	Warning string
}

// GetAvailableProviders reads provider ids from the registry at path.
// It never fails: any problem yields [auto] and a warning.
func GetAvailableProviders(sys Reader, path string) Availability {
	data, err := sys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return autoOnly(fmt.Sprintf(messages.PriorityRegistryMissingFmt, path))
		}
		return autoOnly(fmt.Sprintf(messages.PriorityRegistryReadFailedFmt, err))
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return autoOnly(messages.PriorityRegistryInvalid)
		}
		return autoOnly(fmt.Sprintf(messages.PriorityRegistryReadFailedFmt, err))
	}
	ids, ok := objectKeys(top["providers"])
	if !ok {
		return autoOnly(messages.PriorityRegistryInvalid)
	}
	return Availability{Providers: NormalizeProviders(ids)}
}

func autoOnly(warning string) Availability {
	return Availability{Providers: []string{ProviderAuto}, Warning: warning}
}

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return nil, false
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := tok.(string)
		if !ok {
			return nil, false
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, false
		}
		keys = append(keys, key)
	}
	return keys, true
}

// NormalizeProviders de-duplicates ids, drops empty and auto entries, and puts auto first.
func NormalizeProviders(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := []string{ProviderAuto}
	for _, id := range ids {
		if id == "" || id == ProviderAuto || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// BuildPriorityConfig resolves a provider for each CLI in order.
// An empty order falls back to DefaultOrder. A requested provider that is not available becomes auto.
func BuildPriorityConfig(order []string, selections map[string]string, available []string) []Entry {
	defaults := make(map[string]string)
	for _, entry := range DefaultPriority() {
		defaults[entry.CLI] = entry.Provider
	}
	if len(order) == 0 {
		order = DefaultOrder()
	}
	allowed := map[string]bool{ProviderAuto: true}
	for _, provider := range available {
		allowed[provider] = true
	}

	entries := make([]Entry, 0, len(order))
	for _, cli := range order {
		requested := selections[cli]
		if requested == "" {
			requested = defaults[cli]
		}
		if requested == "" {
			requested = ProviderAuto
		}
		if !allowed[requested] {
			requested = ProviderAuto
		}
		entries = append(entries, Entry{CLI: cli, Provider: requested})
	}
	return entries
}

// GenerateConfigYAML renders entries in the fixed layout the companion tool reads.
func GenerateConfigYAML(entries []Entry) (string, error) {
	if len(entries) == 0 {
		return "", ErrEmptyConfig
	}
	var b strings.Builder
	b.WriteString("priority:\n")
	for _, entry := range entries {
		if entry.CLI == "" || entry.Provider == "" {
			return "", ErrInvalidEntry
		}
		fmt.Fprintf(&b, "  - cli: %s\n    provider: %s\n", entry.CLI, entry.Provider)
	}
	return b.String(), nil
}

// WriteUserConfig writes text to path, creating the parent directory.
func WriteUserConfig(sys Writer, path string, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyContent
	}
	if err := sys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(messages.PriorityWriteFailedFmt, path, err)
	}
	if err := sys.WriteFileAtomic(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf(messages.PriorityWriteFailedFmt, path, err)
	}
	return nil
}

// ReadUserConfig parses an existing priority config.
func ReadUserConfig(sys Reader, path string) ([]Entry, error) {
	data, err := sys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Priority []Entry `yaml:"priority"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf(messages.PriorityParseFailedFmt, path, err)
	}
	return doc.Priority, nil
}

// Summary renders entries as numbered cli+provider lines.
func Summary(entries []Entry) string {
	lines := make([]string, 0, len(entries))
	for i, entry := range entries {
		lines = append(lines, fmt.Sprintf("  %d. %s+%s", i+1, entry.CLI, entry.Provider))
	}
	return strings.Join(lines, "\n")
}
