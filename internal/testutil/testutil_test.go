package testutil

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestWriteStubWithOutputPrintsAndExits(t *testing.T) {
	dir := t.TempDir()
	stubPath := WriteStubWithOutput(t, dir, "stub", "aiw 1.2.3", 3)

	info, err := os.Stat(stubPath)
	if err != nil {
		t.Fatalf("stat stub: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("expected mode 0755, got %#o", info.Mode().Perm())
	}

	out, err := exec.Command(stubPath).Output()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exit error, got %v", err)
	}
	if exitErr.ExitCode() != 3 {
		t.Fatalf("expected exit code 3, got %d", exitErr.ExitCode())
	}
	if string(out) != "aiw 1.2.3\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestPrependPathFindsStub(t *testing.T) {
	dir := t.TempDir()
	WriteScript(t, dir, "cc-spec-test-stub", "exit 0")
	PrependPath(t, dir)

	found, err := exec.LookPath("cc-spec-test-stub")
	if err != nil {
		t.Fatalf("lookpath: %v", err)
	}
	if found != filepath.Join(dir, "cc-spec-test-stub") {
		t.Fatalf("unexpected path %s", found)
	}
}

func TestIsolatePathHidesOtherBinaries(t *testing.T) {
	IsolatePath(t, t.TempDir())
	if _, err := exec.LookPath("cc-spec-test-missing"); err == nil {
		t.Fatal("expected lookup failure")
	}
}
