package install

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/cc-spec/internal/bundle"
	"github.com/conn-castle/cc-spec/internal/config"
)

// faultSystem is a test helper that allows deterministic error injection for the
// installer System interface without chmod-based permission tricks.
type faultSystem struct {
	base       System
	statErrs   map[string]error
	readErrs   map[string]error
	walkErrs   map[string]error
	mkdirErrs  map[string]error
	removeErrs map[string]error
	writeErrs  map[string]error
	chmodErrs  map[string]error
}

func newFaultSystem(base System) *faultSystem {
	return &faultSystem{
		base:       base,
		statErrs:   map[string]error{},
		readErrs:   map[string]error{},
		walkErrs:   map[string]error{},
		mkdirErrs:  map[string]error{},
		removeErrs: map[string]error{},
		writeErrs:  map[string]error{},
		chmodErrs:  map[string]error{},
	}
}

func normalizePath(path string) string {
	return filepath.Clean(path)
}

func (f *faultSystem) Lstat(name string) (os.FileInfo, error) {
	if err, ok := f.statErrs[normalizePath(name)]; ok {
		return nil, err
	}
	return f.base.Lstat(name)
}

func (f *faultSystem) Stat(name string) (os.FileInfo, error) {
	if err, ok := f.statErrs[normalizePath(name)]; ok {
		return nil, err
	}
	return f.base.Stat(name)
}

func (f *faultSystem) ReadFile(name string) ([]byte, error) {
	if err, ok := f.readErrs[normalizePath(name)]; ok {
		return nil, err
	}
	return f.base.ReadFile(name)
}

func (f *faultSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if err, ok := f.readErrs[normalizePath(name)]; ok {
		return nil, err
	}
	return f.base.ReadDir(name)
}

func (f *faultSystem) MkdirAll(path string, perm os.FileMode) error {
	if err, ok := f.mkdirErrs[normalizePath(path)]; ok {
		return err
	}
	return f.base.MkdirAll(path, perm)
}

func (f *faultSystem) RemoveAll(path string) error {
	if err, ok := f.removeErrs[normalizePath(path)]; ok {
		return err
	}
	return f.base.RemoveAll(path)
}

func (f *faultSystem) Chmod(name string, mode os.FileMode) error {
	if err, ok := f.chmodErrs[normalizePath(name)]; ok {
		return err
	}
	return f.base.Chmod(name, mode)
}

func (f *faultSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	if err, ok := f.walkErrs[normalizePath(root)]; ok {
		return err
	}
	return f.base.WalkDir(root, fn)
}

func (f *faultSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	if err, ok := f.writeErrs[normalizePath(filename)]; ok {
		return err
	}
	return f.base.WriteFileAtomic(filename, data, perm)
}

func (f *faultSystem) Symlink(oldname, newname string) error {
	if err, ok := f.writeErrs[normalizePath(newname)]; ok {
		return err
	}
	return f.base.Symlink(oldname, newname)
}

func (f *faultSystem) DirFS(dir string) fs.FS {
	return f.base.DirFS(dir)
}

type fakeGateway struct {
	version    string
	found      bool
	installErr error
	installs   int
}

func (g *fakeGateway) Version(context.Context) (string, bool) {
	return g.version, g.found
}

func (g *fakeGateway) Install(context.Context) error {
	g.installs++
	if g.installErr != nil {
		return g.installErr
	}
	g.version, g.found = "0.6.0", true
	return nil
}

type testEnv struct {
	home    string
	root    string
	out     *bytes.Buffer
	warn    *bytes.Buffer
	gateway *fakeGateway
	now     time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	return &testEnv{
		home:    home,
		root:    filepath.Join(home, ".claude"),
		out:     &bytes.Buffer{},
		warn:    &bytes.Buffer{},
		gateway: &fakeGateway{version: "0.5.36", found: true},
		now:     time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
	}
}

func (e *testEnv) options(t *testing.T) Options {
	t.Helper()
	src, err := bundle.Embedded()
	require.NoError(t, err)
	return Options{
		Env: config.Env{
			Home:   e.home,
			GOOS:   "linux",
			Locale: "en_US.UTF-8",
		},
		Version:    "1.2.0",
		Bundle:     src,
		Gateway:    e.gateway,
		System:     RealSystem{},
		Out:        e.out,
		WarnWriter: e.warn,
		Now:        func() time.Time { return e.now },
	}
}

func interactive(opts Options, prompter Prompter) Options {
	opts.Env.Interactive = true
	opts.Prompter = prompter
	return opts
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// snapshotTree maps every path under root to its content; directories map to "/".
func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	if _, err := os.Stat(root); err != nil {
		return out
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			out[filepath.ToSlash(rel)] = "/"
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func backupDirs(t *testing.T, root string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(root, "backup"))
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "cc-spec-lite-") {
			names = append(names, entry.Name())
		}
	}
	return names
}
