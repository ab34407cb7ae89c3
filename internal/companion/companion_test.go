package companion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/cc-spec/internal/fsutil"
	"github.com/conn-castle/cc-spec/internal/steps"
	"github.com/conn-castle/cc-spec/internal/testutil"
)

type fakeGateway struct {
	version    string
	found      bool
	installErr error
	installs   int
}

func (f *fakeGateway) Version(context.Context) (string, bool) { return f.version, f.found }

func (f *fakeGateway) Install(context.Context) error {
	f.installs++
	return f.installErr
}

type funcPrompter struct {
	install func() (bool, error)
	upgrade func(string, string) (bool, error)
}

func (p funcPrompter) ConfirmCompanionInstall() (bool, error) { return p.install() }

func (p funcPrompter) ConfirmCompanionUpgrade(current, minimum string) (bool, error) {
	return p.upgrade(current, minimum)
}

func TestVersionCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"0.5.36", "0.5.9", 1},
		{"0.5.9", "0.5.36", -1},
		{"1.0", "1.0.0", 0},
		{"1.0.0", "1.0", 0},
		{"1.2.3", "1.2.3", 0},
		{"2", "1.99.99", 1},
		{"1.0.0-beta", "1.0.0", 0},
		{"1.x.0", "1.0.0", 0},
		{"0.5.36", "0.5.36.1", -1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, VersionCompare(tc.a, tc.b), "%s vs %s", tc.a, tc.b)
	}
}

func TestExtractVersion(t *testing.T) {
	v, ok := ExtractVersion("aiw version 0.5.40 (build abc)\n")
	require.True(t, ok)
	assert.Equal(t, "0.5.40", v)

	_, ok = ExtractVersion("aiw dev build")
	assert.False(t, ok)
}

func TestExecGatewayWithStubs(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteStubWithOutput(t, dir, "aiw", "aiw 0.6.1", 0)
	testutil.WriteScript(t, dir, "npm", `echo "npm ERR! 404 $*" >&2
exit 1`)
	testutil.IsolatePath(t, dir)

	gw := NewExecGateway()
	v, ok := gw.Version(context.Background())
	require.True(t, ok)
	assert.Equal(t, "0.6.1", v)

	err := gw.Install(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "npm ERR! 404 install -g @putao520/aiw")
}

func TestExecGatewayMissingCommand(t *testing.T) {
	testutil.IsolatePath(t, t.TempDir())
	_, ok := ExecGateway{}.Version(context.Background())
	assert.False(t, ok)
}

func TestExecGatewayRunner(t *testing.T) {
	var calls []string
	gw := ExecGateway{Run: func(_ context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, name+" "+strings.Join(args, " "))
		return []byte("ok"), nil
	}}
	require.NoError(t, gw.Install(context.Background()))
	_, ok := gw.Version(context.Background())
	assert.False(t, ok)
	assert.Equal(t, []string{"npm install -g @putao520/aiw", "aiw --version"}, calls)
}

func TestEnsureCompliantVersion(t *testing.T) {
	gw := &fakeGateway{version: "0.5.36", found: true}
	res, err := Ensure(context.Background(), EnsureOptions{Gateway: gw})
	require.NoError(t, err)
	assert.Equal(t, steps.OK, res.Outcome)
	assert.Equal(t, "0.5.36", res.Found)
	assert.False(t, res.Installed)
	assert.Zero(t, gw.installs)
}

func TestEnsureOutdatedAutoUpgradesWhenNonInteractive(t *testing.T) {
	gw := &fakeGateway{version: "0.5.9", found: true}
	res, err := Ensure(context.Background(), EnsureOptions{Gateway: gw})
	require.NoError(t, err)
	assert.True(t, res.Installed)
	assert.Equal(t, 1, gw.installs)
}

func TestEnsureOutdatedDeclinedIsWarning(t *testing.T) {
	gw := &fakeGateway{version: "0.4.0", found: true}
	var gotCurrent, gotMin string
	res, err := Ensure(context.Background(), EnsureOptions{
		Gateway:     gw,
		Interactive: true,
		Prompter: funcPrompter{upgrade: func(current, minimum string) (bool, error) {
			gotCurrent, gotMin = current, minimum
			return false, nil
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, steps.Warning, res.Outcome)
	assert.Equal(t, "0.4.0", gotCurrent)
	assert.Equal(t, MinimumVersion, gotMin)
	assert.Zero(t, gw.installs)
}

func TestEnsureMissingDeclinedIsFatal(t *testing.T) {
	gw := &fakeGateway{}
	res, err := Ensure(context.Background(), EnsureOptions{
		Gateway:     gw,
		Interactive: true,
		Prompter:    funcPrompter{install: func() (bool, error) { return false, nil }},
	})
	require.ErrorIs(t, err, ErrRequired)
	assert.Equal(t, steps.Failed, res.Outcome)
	assert.Zero(t, gw.installs)
}

func TestEnsureMissingInstallFailure(t *testing.T) {
	gw := &fakeGateway{installErr: errors.New("EACCES")}
	_, err := Ensure(context.Background(), EnsureOptions{Gateway: gw})
	require.ErrorIs(t, err, ErrInstallFailed)
	assert.Contains(t, err.Error(), "EACCES")
	assert.Contains(t, err.Error(), InstallCommand())
}

func TestEnsurePromptError(t *testing.T) {
	boom := errors.New("interrupted")
	_, err := Ensure(context.Background(), EnsureOptions{
		Gateway:     &fakeGateway{},
		Interactive: true,
		Prompter:    funcPrompter{install: func() (bool, error) { return false, boom }},
	})
	require.ErrorIs(t, err, boom)

	_, err = Ensure(context.Background(), EnsureOptions{})
	require.Error(t, err)
}

type osSystem struct {
	writeErr error
}

func (osSystem) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }
func (osSystem) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }
func (osSystem) MkdirAll(path string, perm os.FileMode) error     { return os.MkdirAll(path, perm) }
func (s osSystem) WriteFileAtomic(name string, data []byte, perm os.FileMode) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	return fsutil.WriteFileAtomic(name, data, perm)
}

type rolePrompter func([]RolePreview) (bool, error)

func (f rolePrompter) ConfirmRoleOverwrite(previews []RolePreview) (bool, error) { return f(previews) }

func roleBundle() fstest.MapFS {
	return fstest.MapFS{
		"roles/architect.md": {Data: []byte("# Architect\nnew\n")},
		"roles/reviewer.md":  {Data: []byte("# Reviewer\n")},
		"roles/notes.txt":    {Data: []byte("ignored")},
	}
}

func TestSeedRolesFreshCopy(t *testing.T) {
	roleDir := filepath.Join(t.TempDir(), ".aiw", "role")
	res := SeedRoles(SeedOptions{System: osSystem{}, Bundle: roleBundle(), RoleDir: roleDir})
	assert.Equal(t, steps.OK, res.Outcome, res.String())

	data, err := os.ReadFile(filepath.Join(roleDir, "architect.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Architect\nnew\n", string(data))
	_, err = os.Stat(filepath.Join(roleDir, "notes.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSeedRolesExistingNonInteractiveSkips(t *testing.T) {
	roleDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(roleDir, "architect.md"), []byte("# Architect\nold\n"), 0o644))

	res := SeedRoles(SeedOptions{System: osSystem{}, Bundle: roleBundle(), RoleDir: roleDir})
	assert.Equal(t, steps.Skipped, res.Outcome)
	assert.Equal(t, []string{"architect.md"}, res.Details)

	data, err := os.ReadFile(filepath.Join(roleDir, "architect.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Architect\nold\n", string(data))
	_, err = os.Stat(filepath.Join(roleDir, "reviewer.md"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "skip leaves every file untouched")
}

func TestSeedRolesForceOverwrites(t *testing.T) {
	roleDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(roleDir, "architect.md"), []byte("old"), 0o644))

	res := SeedRoles(SeedOptions{System: osSystem{}, Bundle: roleBundle(), RoleDir: roleDir, Force: true})
	assert.Equal(t, steps.OK, res.Outcome)
	data, err := os.ReadFile(filepath.Join(roleDir, "architect.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Architect\nnew\n", string(data))
}

func TestSeedRolesInteractivePreviewAndConsent(t *testing.T) {
	roleDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(roleDir, "architect.md"), []byte("# Architect\nold\n"), 0o644))

	var seen []RolePreview
	res := SeedRoles(SeedOptions{
		System:      osSystem{},
		Bundle:      roleBundle(),
		RoleDir:     roleDir,
		Interactive: true,
		Prompter: rolePrompter(func(p []RolePreview) (bool, error) {
			seen = p
			return true, nil
		}),
	})
	assert.Equal(t, steps.OK, res.Outcome)
	require.Len(t, seen, 1)
	assert.Equal(t, "architect.md", seen[0].Name)
	assert.Contains(t, seen[0].Diff, "-old")
	assert.Contains(t, seen[0].Diff, "+new")

	declined := SeedRoles(SeedOptions{
		System:      osSystem{},
		Bundle:      fstest.MapFS{"roles/architect.md": {Data: []byte("other")}},
		RoleDir:     roleDir,
		Interactive: true,
		Prompter:    rolePrompter(func([]RolePreview) (bool, error) { return false, nil }),
	})
	assert.Equal(t, steps.Skipped, declined.Outcome)
}

func TestSeedRolesBestEffortFailures(t *testing.T) {
	res := SeedRoles(SeedOptions{System: osSystem{}, Bundle: fstest.MapFS{}, RoleDir: t.TempDir()})
	assert.Equal(t, steps.Warning, res.Outcome)

	res = SeedRoles(SeedOptions{System: osSystem{}, Bundle: fstest.MapFS{"roles/x.txt": {}}, RoleDir: t.TempDir()})
	assert.Equal(t, steps.Warning, res.Outcome)

	res = SeedRoles(SeedOptions{System: osSystem{writeErr: errors.New("read-only")}, Bundle: roleBundle(), RoleDir: t.TempDir()})
	assert.Equal(t, steps.Warning, res.Outcome)
	assert.Contains(t, res.Message, "read-only")
}

func TestRenderTruncatedUnifiedDiff(t *testing.T) {
	var from, to strings.Builder
	for i := 0; i < 50; i++ {
		from.WriteString("a\n")
		to.WriteString("b\n")
	}
	diff, truncated := renderTruncatedUnifiedDiff("x (current)", "x (bundle)", from.String(), to.String(), 10)
	assert.True(t, truncated)
	assert.Len(t, strings.Split(strings.TrimRight(diff, "\n"), "\n"), 11)

	diff, truncated = renderTruncatedUnifiedDiff("x", "x", "same\n", "same\n", 0)
	assert.False(t, truncated)
	assert.Empty(t, diff)
}
