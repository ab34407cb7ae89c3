package platform

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	cases := map[string]Name{
		"linux":   Linux,
		"darwin":  MacOS,
		"windows": Windows,
		"plan9":   Unknown,
		"":        Unknown,
	}
	for goos, want := range cases {
		assert.Equal(t, want, Detect(goos), goos)
	}
	assert.True(t, IsWindows("windows"))
	assert.False(t, IsWindows("darwin"))
}

func TestResolveInstallRoot(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/dev", ".claude"), ResolveInstallRoot("/home/dev"))
	assert.Equal(t, ".claude", ResolveInstallRoot(""))
}

func TestBackupTimestampUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	now := time.Date(2026, 3, 4, 13, 5, 6, 0, loc)
	assert.Equal(t, "2026-03-04T05-05-06", BackupTimestamp(now))
}

func TestResolveBackupPathAddsSuffixOnCollision(t *testing.T) {
	root := "/home/dev/.claude"
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	base := filepath.Join(root, "backup", "cc-spec-lite-2026-01-02T03-04-05")

	assert.Equal(t, base, ResolveBackupPath(root, now, nil))

	taken := map[string]bool{base: true, base + "-1": true}
	got := ResolveBackupPath(root, now, func(p string) bool { return taken[p] })
	assert.Equal(t, base+"-2", got)
}
