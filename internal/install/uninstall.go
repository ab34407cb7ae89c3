package install

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/conn-castle/cc-spec/internal/messages"
	"github.com/conn-castle/cc-spec/internal/platform"
	"github.com/conn-castle/cc-spec/internal/state"
	"github.com/conn-castle/cc-spec/internal/steps"
)

// fixedArtifacts are removed even when the bundle manifest does not list them.
var fixedArtifacts = []string{"CLAUDE.md", "skills", "commands", "scripts", "roles", "hooks"}

// Uninstall restores the pre-install backup when one exists, or removes the installed artifacts.
// Without interactive confirmation or an override it fails with ErrConfirmationRequired before touching anything.
func Uninstall(ctx context.Context, opts Options) (Report, error) {
	inst, err := newInstaller(opts)
	if err != nil {
		return Report{}, err
	}
	err = inst.uninstall(ctx)
	return inst.report, err
}

func (inst *installer) uninstall(_ context.Context) error {
	overridden := inst.opts.Force || inst.env.ForceUninstall
	if !overridden {
		if !inst.interactive() {
			return ErrConfirmationRequired
		}
		ok, err := inst.prompter.ConfirmUninstall()
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
	}

	root := inst.paths.InstallRoot
	if rec, ok := state.ReadBackupRecord(inst.sys, root); ok && rec.Backup != "" && inst.exists(rec.Backup) {
		inst.infof(messages.UninstallFoundBackupFmt, describeBackup(rec))
		restore := true
		if inst.interactive() && !overridden {
			answer, err := inst.prompter.ConfirmRestore(rec.Backup, describeBackup(rec))
			if err != nil {
				return err
			}
			restore = answer
		}
		if restore {
			res := inst.restoreBackup(rec)
			inst.record(res)
			if res.Outcome == steps.OK {
				inst.report.Restored = true
				inst.report.BackupPath = rec.Backup
				inst.deleteRecords()
				return nil
			}
		}
	}
	return inst.removeArtifacts()
}

func (inst *installer) deleteRecords() {
	root := inst.paths.InstallRoot
	var failures []string
	if err := state.DeleteBackupRecord(inst.sys, root); err != nil {
		failures = append(failures, err.Error())
	}
	if err := state.DeleteVersionRecord(inst.sys, root); err != nil {
		failures = append(failures, err.Error())
	}
	if len(failures) > 0 {
		inst.record(steps.Warnf(steps.Records, messages.UninstallRecordsFailed).WithDetails(failures...))
	}
}

// removeArtifacts deletes known artifacts and leaves the backup tree and unrelated files in place.
func (inst *installer) removeArtifacts() error {
	root := inst.paths.InstallRoot
	for _, name := range inst.artifactNames() {
		target := filepath.Join(root, filepath.FromSlash(name))
		if _, err := inst.sys.Lstat(target); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf(messages.UninstallRemoveFailedFmt, target, err)
		}
		if err := inst.sys.RemoveAll(target); err != nil {
			return fmt.Errorf(messages.UninstallRemoveFailedFmt, target, err)
		}
		inst.report.Removed = append(inst.report.Removed, name)
	}
	inst.record(steps.OKf(steps.Remove, messages.UninstallRemovedFmt, len(inst.report.Removed), platform.BackupDir(root)))
	return nil
}

// artifactNames merges the fixed list, the manifest list, and the metadata files, without duplicates.
func (inst *installer) artifactNames() []string {
	seen := map[string]bool{platform.BackupDirName: true}
	var names []string
	add := func(items ...string) {
		for _, item := range items {
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			names = append(names, item)
		}
	}
	add(fixedArtifacts...)
	add(inst.manifest.Managed...)
	add(state.BackupFileName, state.VersionFileName)
	return names
}
