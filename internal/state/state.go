// Package state reads and writes the metadata records kept at the install root.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// VersionFileName records the installed version and language.
	VersionFileName = ".cc-spec-lite.json"
	// BackupFileName records the most recent pre-install backup.
	BackupFileName = ".cc-spec-backup.json"
	// TimeLayout renders timestamps in UTC with millisecond precision.
	TimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Reader reads files from the install root.
type Reader interface {
	ReadFile(name string) ([]byte, error)
}

// System is the filesystem surface used to persist records.
type System interface {
	Reader
	RemoveAll(path string) error
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
}

// VersionRecord describes the current installation.
type VersionRecord struct {
	Version     string `json:"version"`
	Language    string `json:"language"`
	InstalledAt string `json:"installedAt"`
}

// Time parses InstalledAt. The zero time is returned when it is missing or malformed.
func (r VersionRecord) Time() time.Time {
	return parseTime(r.InstalledAt)
}

// BackupRecord points at the backup taken before the first install over unmanaged content.
type BackupRecord struct {
	Backup      string `json:"backup"`
	Version     string `json:"version"`
	InstalledAt string `json:"installedAt"`
}

// Time parses InstalledAt. The zero time is returned when it is missing or malformed.
func (r BackupRecord) Time() time.Time {
	return parseTime(r.InstalledAt)
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// VersionPath returns the version record path for root.
func VersionPath(root string) string {
	return filepath.Join(root, VersionFileName)
}

// BackupPath returns the backup record path for root.
func BackupPath(root string) string {
	return filepath.Join(root, BackupFileName)
}

// ReadVersionRecord loads the version record.
// ok is false when the record is missing or unreadable; callers treat both as absent.
func ReadVersionRecord(sys Reader, root string) (VersionRecord, bool) {
	var rec VersionRecord
	if !readJSON(sys, VersionPath(root), &rec) {
		return VersionRecord{}, false
	}
	return rec, true
}

// WriteVersionRecord replaces the version record.
func WriteVersionRecord(sys System, root string, rec VersionRecord) error {
	return writeJSON(sys, VersionPath(root), rec)
}

// ReadBackupRecord loads the backup record.
// ok is false when the record is missing or unreadable.
func ReadBackupRecord(sys Reader, root string) (BackupRecord, bool) {
	var rec BackupRecord
	if !readJSON(sys, BackupPath(root), &rec) {
		return BackupRecord{}, false
	}
	return rec, true
}

// WriteBackupRecord replaces the backup record.
func WriteBackupRecord(sys System, root string, rec BackupRecord) error {
	return writeJSON(sys, BackupPath(root), rec)
}

// DeleteVersionRecord removes the version record. A missing record is not an error.
func DeleteVersionRecord(sys System, root string) error {
	return remove(sys, VersionPath(root))
}

// DeleteBackupRecord removes the backup record. A missing record is not an error.
func DeleteBackupRecord(sys System, root string) error {
	return remove(sys, BackupPath(root))
}

func remove(sys System, path string) error {
	if err := sys.RemoveAll(path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func readJSON(sys Reader, path string, dst any) bool {
	data, err := sys.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func writeJSON(sys System, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := sys.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
