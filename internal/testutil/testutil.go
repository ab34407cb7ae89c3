// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// WriteScript writes an executable shell script with the given body and returns its path.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteScript(t *testing.T, dir string, name string, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	path := filepath.Join(dir, name)
	content := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

// WriteStubWithOutput writes an executable stub that prints output and exits with exitCode.
func WriteStubWithOutput(t *testing.T, dir string, name string, output string, exitCode int) string {
	t.Helper()
	return WriteScript(t, dir, name, fmt.Sprintf("printf '%%s\\n' '%s'\nexit %d", output, exitCode))
}

// PrependPath puts dir first on PATH for the duration of the test.
func PrependPath(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// IsolatePath replaces PATH with dir alone for the duration of the test.
func IsolatePath(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir)
}
