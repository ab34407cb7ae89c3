package companion

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/cc-spec/internal/messages"
	"github.com/conn-castle/cc-spec/internal/steps"
)

const (
	// RolesDir is the bundle directory holding role documents.
	RolesDir = "roles"
	// RoleSuffix selects role documents.
	RoleSuffix = ".md"
	// DefaultDiffMaxLines caps each overwrite preview.
	DefaultDiffMaxLines = 40
)

// SeedSystem is the filesystem surface used to seed roles.
type SeedSystem interface {
	Stat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
}

// RolePreview shows how an existing role file would change.
type RolePreview struct {
	Name      string
	Path      string
	Diff      string
	Truncated bool
}

// RolePrompter asks whether existing role files may be overwritten.
type RolePrompter interface {
	ConfirmRoleOverwrite(previews []RolePreview) (bool, error)
}

// SeedOptions configures SeedRoles.
type SeedOptions struct {
	System SeedSystem
	// Bundle is the language tree; roles are read from its roles directory.
	Bundle      fs.FS
	RoleDir     string
	Force       bool
	Interactive bool
	Prompter    RolePrompter
	// DiffMaxLines defaults to DefaultDiffMaxLines.
	DiffMaxLines int
}

// SeedRoles copies the bundle's role documents into the companion role directory.
// Existing files are overwritten only with Force or interactive consent. Failures are reported, never returned.
func SeedRoles(opts SeedOptions) steps.Result {
	entries, err := fs.ReadDir(opts.Bundle, RolesDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return steps.Warnf(steps.Roles, messages.CompanionRolesDirMissing)
		}
		return steps.Warnf(steps.Roles, messages.CompanionRolesFailedFmt, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), RoleSuffix) {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return steps.Warnf(steps.Roles, messages.CompanionRolesNone)
	}

	var existing []string
	for _, name := range names {
		if _, err := opts.System.Stat(filepath.Join(opts.RoleDir, name)); err == nil {
			existing = append(existing, name)
		}
	}
	if err := opts.System.MkdirAll(opts.RoleDir, 0o755); err != nil {
		return steps.Warnf(steps.Roles, messages.CompanionRolesFailedFmt, err)
	}

	if len(existing) > 0 && !opts.Force {
		if !opts.Interactive || opts.Prompter == nil {
			return steps.Skipf(steps.Roles, messages.CompanionRolesNonInteractiveSkip).WithDetails(existing...)
		}
		previews, err := rolePreviews(opts, existing)
		if err != nil {
			return steps.Warnf(steps.Roles, messages.CompanionRolesFailedFmt, err)
		}
		ok, err := opts.Prompter.ConfirmRoleOverwrite(previews)
		if err != nil {
			return steps.Warnf(steps.Roles, messages.CompanionRolesFailedFmt, err)
		}
		if !ok {
			return steps.Skipf(steps.Roles, messages.CompanionRolesDeclined)
		}
	}

	for _, name := range names {
		data, err := fs.ReadFile(opts.Bundle, RolesDir+"/"+name)
		if err != nil {
			return steps.Warnf(steps.Roles, messages.CompanionRolesFailedFmt, err)
		}
		if err := opts.System.WriteFileAtomic(filepath.Join(opts.RoleDir, name), data, 0o644); err != nil {
			return steps.Warnf(steps.Roles, messages.CompanionRolesFailedFmt, err)
		}
	}
	return steps.OKf(steps.Roles, messages.CompanionRolesCopiedFmt, len(names), opts.RoleDir)
}

func rolePreviews(opts SeedOptions, names []string) ([]RolePreview, error) {
	previews := make([]RolePreview, 0, len(names))
	for _, name := range names {
		path := filepath.Join(opts.RoleDir, name)
		current, err := opts.System.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		target, err := fs.ReadFile(opts.Bundle, RolesDir+"/"+name)
		if err != nil {
			return nil, err
		}
		diff, truncated := renderTruncatedUnifiedDiff(name+" (current)", name+" (bundle)", string(current), string(target), opts.DiffMaxLines)
		previews = append(previews, RolePreview{Name: name, Path: path, Diff: diff, Truncated: truncated})
	}
	return previews, nil
}

func renderTruncatedUnifiedDiff(fromName string, toName string, fromContent string, toContent string, maxLines int) (string, bool) {
	limit := maxLines
	if limit <= 0 {
		limit = DefaultDiffMaxLines
	}
	diff := udiff.Unified(fromName, toName, fromContent, toContent)
	trimmed := strings.TrimRight(diff, "\n")
	if trimmed == "" {
		return "", false
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) <= limit {
		return strings.Join(lines, "\n") + "\n", false
	}
	lines = append(lines[:limit], fmt.Sprintf(messages.CompanionDiffTruncatedFmt, limit))
	return strings.Join(lines, "\n") + "\n", true
}
