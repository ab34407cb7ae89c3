package install

import (
	"context"
	"path/filepath"

	"github.com/conn-castle/cc-spec/internal/platform"
	"github.com/conn-castle/cc-spec/internal/priority"
	"github.com/conn-castle/cc-spec/internal/state"
)

// StatusReport is a read-only view of the installation.
type StatusReport struct {
	Platform    platform.Name       `json:"platform"`
	InstallRoot string              `json:"install_root"`
	Installed   bool                `json:"installed"`
	Language    string              `json:"language,omitempty"`
	Version     string              `json:"version,omitempty"`
	InstalledAt string              `json:"installed_at,omitempty"`
	Legacy      bool                `json:"legacy,omitempty"`
	Skills      int                 `json:"skills"`
	Commands    int                 `json:"commands"`
	Companion   string              `json:"companion_version,omitempty"`
	Priority    []priority.Entry    `json:"priority,omitempty"`
	Backup      *state.BackupRecord `json:"backup,omitempty"`
}

// Status reports on the installation without modifying anything.
func Status(ctx context.Context, opts Options) (StatusReport, error) {
	inst, err := newInstaller(opts)
	if err != nil {
		return StatusReport{}, err
	}
	return inst.status(ctx), nil
}

func (inst *installer) status(ctx context.Context) StatusReport {
	root := inst.paths.InstallRoot
	report := StatusReport{
		Platform:    platform.Detect(inst.env.GOOS),
		InstallRoot: root,
	}
	current := ReadState(inst.sys, root, inst.manifest.Hints())
	if !current.Installed {
		return report
	}
	report.Installed = true
	report.Language = string(current.Language)
	if rec, ok := state.ReadVersionRecord(inst.sys, root); ok {
		report.Version = rec.Version
		report.InstalledAt = rec.InstalledAt
	} else {
		report.Legacy = true
	}
	report.Skills = inst.countEntries(filepath.Join(root, "skills"))
	report.Commands = inst.countEntries(filepath.Join(root, "commands"))
	if inst.gateway != nil {
		if v, ok := inst.gateway.Version(ctx); ok {
			report.Companion = v
		}
	}
	if entries, err := priority.ReadUserConfig(inst.sys, inst.paths.UserConfig); err == nil && len(entries) > 0 {
		report.Priority = entries
	}
	if rec, ok := state.ReadBackupRecord(inst.sys, root); ok {
		report.Backup = &rec
	}
	return report
}

// countEntries counts directory entries. A missing or unreadable directory counts as zero.
func (inst *installer) countEntries(dir string) int {
	entries, err := inst.sys.ReadDir(dir)
	if err != nil {
		return 0
	}
	return len(entries)
}
