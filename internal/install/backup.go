package install

import (
	"github.com/conn-castle/cc-spec/internal/fsutil"
	"github.com/conn-castle/cc-spec/internal/messages"
	"github.com/conn-castle/cc-spec/internal/platform"
	"github.com/conn-castle/cc-spec/internal/state"
	"github.com/conn-castle/cc-spec/internal/steps"
)

// skipBackupDir keeps the backup tree out of backups and restores.
func skipBackupDir(rel string) bool {
	return rel == platform.BackupDirName
}

// backupExisting copies unmanaged content aside before the first install over it.
func (inst *installer) backupExisting() steps.Result {
	root := inst.paths.InstallRoot
	now := inst.now()
	dest := platform.ResolveBackupPath(root, now, inst.exists)
	stats, err := fsutil.CopyFS(inst.sys, inst.sys.DirFS(root), dest, skipBackupDir)
	if err != nil {
		return steps.Warnf(steps.Backup, messages.InstallBackupFailedFmt, err)
	}
	rec := state.BackupRecord{
		Backup:      dest,
		Version:     inst.opts.Version,
		InstalledAt: state.FormatTime(now),
	}
	if err := state.WriteBackupRecord(inst.sys, root, rec); err != nil {
		return steps.Warnf(steps.Backup, messages.InstallBackupRecordFailedFmt, err)
	}
	inst.report.BackupPath = dest
	if len(stats.Skipped) > 0 {
		return steps.Warnf(steps.Backup, messages.InstallBackupSkippedFmt, dest, len(stats.Skipped)).WithDetails(stats.Skipped...)
	}
	return steps.OKf(steps.Backup, messages.InstallBackedUpFmt, dest)
}

// restoreBackup copies a backup over the install root.
func (inst *installer) restoreBackup(rec state.BackupRecord) steps.Result {
	if !inst.exists(rec.Backup) {
		return steps.Warnf(steps.Restore, messages.UninstallBackupMissingFmt, rec.Backup)
	}
	if _, err := fsutil.CopyFS(inst.sys, inst.sys.DirFS(rec.Backup), inst.paths.InstallRoot, skipBackupDir); err != nil {
		return steps.Warnf(steps.Restore, messages.UninstallRestoreFailedFmt, err)
	}
	return steps.OKf(steps.Restore, messages.UninstallRestoredFmt, rec.Backup)
}

func describeBackup(rec state.BackupRecord) string {
	if t := rec.Time(); !t.IsZero() {
		return t.Local().Format("2006-01-02 15:04:05")
	}
	if rec.InstalledAt != "" {
		return rec.InstalledAt
	}
	return messages.StatusUnknown
}
