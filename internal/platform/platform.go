// Package platform resolves the host platform and the filesystem locations derived from it.
package platform

import (
	"fmt"
	"path/filepath"
	"time"
)

// Name identifies a supported host platform.
type Name string

const (
	Linux   Name = "linux"
	MacOS   Name = "macos"
	Windows Name = "windows"
	Unknown Name = "unknown"
)

const (
	// InstallDirName is the install root directory under the user's home.
	InstallDirName = ".claude"
	// BackupDirName is the directory under the install root that holds backups.
	BackupDirName = "backup"
	// BackupPrefix prefixes every backup directory name.
	BackupPrefix = "cc-spec-lite-"
	// BackupTimeLayout is the timestamp layout used in backup directory names.
	BackupTimeLayout = "2006-01-02T15-04-05"
)

// Detect maps a GOOS value to a platform name.
func Detect(goos string) Name {
	switch goos {
	case "linux":
		return Linux
	case "darwin":
		return MacOS
	case "windows":
		return Windows
	default:
		return Unknown
	}
}

// IsWindows reports whether goos is Windows.
func IsWindows(goos string) bool {
	return Detect(goos) == Windows
}

// ResolveInstallRoot returns the install root for home.
// An empty home yields a relative ".claude" so callers never write to the filesystem root.
func ResolveInstallRoot(home string) string {
	if home == "" {
		return InstallDirName
	}
	return filepath.Join(home, InstallDirName)
}

// BackupDir returns the backup parent directory for root.
func BackupDir(root string) string {
	return filepath.Join(root, BackupDirName)
}

// BackupTimestamp renders now in UTC with filesystem-safe separators.
func BackupTimestamp(now time.Time) string {
	return now.UTC().Format(BackupTimeLayout)
}

// ResolveBackupPath returns a backup directory path for now that does not exist yet.
// Collisions within the same second get a numeric suffix.
func ResolveBackupPath(root string, now time.Time, exists func(string) bool) string {
	base := filepath.Join(BackupDir(root), BackupPrefix+BackupTimestamp(now))
	if exists == nil || !exists(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !exists(candidate) {
			return candidate
		}
	}
}
