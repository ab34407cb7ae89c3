// Package bundle provides the per-language configuration trees installed into the install root.
package bundle

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/cc-spec/internal/language"
	"github.com/conn-castle/cc-spec/internal/messages"
)

//go:embed all:resources
var embedded embed.FS

// ManifestFile is the manifest path relative to the bundle root.
const ManifestFile = "manifest.toml"

// OriginEmbedded labels the bundle compiled into the binary.
const OriginEmbedded = "embedded"

// ErrNotFound reports a missing language tree.
var ErrNotFound = errors.New(messages.BundleNotFound)

// Manifest describes what a bundle installs.
type Manifest struct {
	Marker     string                   `toml:"marker"`
	Managed    []string                 `toml:"managed"`
	Executable []string                 `toml:"executable"`
	Languages  map[string]LanguageEntry `toml:"languages"`
}

// LanguageEntry holds per-language manifest settings.
type LanguageEntry struct {
	Hints []string `toml:"hints"`
}

// DefaultManifest is used when a bundle ships no manifest.
func DefaultManifest() Manifest {
	return Manifest{
		Marker:     "CLAUDE.md",
		Managed:    []string{"CLAUDE.md", "skills", "commands", "scripts", "roles", "hooks"},
		Executable: []string{"scripts", "hooks"},
	}
}

// Hints converts the manifest into language sniffing hints.
func (m Manifest) Hints() language.Hints {
	hints := language.Hints{Marker: m.Marker, Substrings: map[language.Language][]string{}}
	for code, entry := range m.Languages {
		lang, err := language.Parse(code)
		if err != nil {
			continue
		}
		hints.Substrings[lang] = append([]string(nil), entry.Hints...)
	}
	return hints
}

// Source is a bundle root holding one tree per language.
type Source struct {
	fsys     fs.FS
	origin   string
	manifest Manifest
}

// Embedded returns the bundle compiled into the binary.
func Embedded() (*Source, error) {
	sub, err := fs.Sub(embedded, "resources")
	if err != nil {
		return nil, err
	}
	return New(sub, OriginEmbedded)
}

// FromDir returns a bundle rooted at an on-disk directory.
func FromDir(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf(messages.BundleDirInvalidFmt, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(messages.BundleDirNotDirFmt, dir)
	}
	return New(os.DirFS(dir), dir)
}

// Resolve returns the on-disk bundle at dir, or the embedded bundle when dir is empty.
func Resolve(dir string) (*Source, error) {
	if strings.TrimSpace(dir) == "" {
		return Embedded()
	}
	return FromDir(dir)
}

// New wraps fsys as a bundle. origin is used in messages.
func New(fsys fs.FS, origin string) (*Source, error) {
	manifest, err := loadManifest(fsys, origin)
	if err != nil {
		return nil, err
	}
	return &Source{fsys: fsys, origin: origin, manifest: manifest}, nil
}

func loadManifest(fsys fs.FS, origin string) (Manifest, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultManifest(), nil
		}
		return Manifest{}, fmt.Errorf(messages.BundleManifestReadFmt, origin, err)
	}
	var m Manifest
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf(messages.BundleManifestInvalidFmt, origin, err)
	}
	defaults := DefaultManifest()
	if m.Marker == "" {
		m.Marker = defaults.Marker
	}
	if m.Managed == nil {
		m.Managed = defaults.Managed
	}
	if m.Executable == nil {
		m.Executable = defaults.Executable
	}
	for _, p := range append(append([]string{m.Marker}, m.Managed...), m.Executable...) {
		if !validEntry(p) {
			return Manifest{}, fmt.Errorf(messages.BundleManifestPathFmt, origin, p)
		}
	}
	return m, nil
}

// validEntry accepts clean relative paths that stay inside the install root.
func validEntry(p string) bool {
	if p == "" || path.IsAbs(p) || strings.Contains(p, `\`) {
		return false
	}
	clean := path.Clean(p)
	return clean == p && clean != "." && clean != ".." && !strings.HasPrefix(clean, "../")
}

// Origin describes where the bundle was loaded from.
func (s *Source) Origin() string {
	return s.origin
}

// Manifest returns the parsed manifest.
func (s *Source) Manifest() Manifest {
	return s.manifest
}

// Languages lists the languages the bundle carries a tree for.
func (s *Source) Languages() []language.Language {
	var out []language.Language
	for _, lang := range language.Supported {
		if _, err := s.Open(lang); err == nil {
			out = append(out, lang)
		}
	}
	return out
}

// Open returns the tree for lang.
func (s *Source) Open(lang language.Language) (fs.FS, error) {
	name := string(lang)
	if !fs.ValidPath(name) || name == "." || strings.Contains(name, "/") {
		return nil, fmt.Errorf(messages.BundleLanguageMissingFmt, lang, s.origin, ErrNotFound)
	}
	info, err := fs.Stat(s.fsys, name)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf(messages.BundleLanguageMissingFmt, lang, s.origin, ErrNotFound)
	}
	return fs.Sub(s.fsys, name)
}
