// Package messages holds user-facing strings.
package messages

// Install and update messages.
const (
	// InstallSystemRequired indicates system is required for install.
	InstallSystemRequired = "install system is required"
	// InstallBundleRequired indicates a bundle source is required for install.
	InstallBundleRequired = "install bundle is required"
	// InstallCancelled is the error text for a prompt the user backed out of.
	InstallCancelled         = "cancelled"
	InstallPromptRequiredFmt = "%s prompt requires a prompt handler; run in an interactive terminal"

	InstallFreshMode   = "No existing installation found; installing."
	InstallUpgradeMode = "Existing installation found; updating in place."

	InstallLanguageDetectedFmt = "Using system language: %s"
	InstallLanguageExistingFmt = "Keeping installed language: %s"
	InstallLanguageSwitchFmt   = "Switching language from %s to %s"
	InstallLanguageKeptFmt     = "Installed language is %s; ignoring requested %s. Re-run with --force --lang %s to switch."

	InstallBackedUpFmt           = "backed up existing files to %s"
	InstallBackupSkippedFmt      = "backed up existing files to %s; %d special files could not be copied"
	InstallBackupFailedFmt       = "failed to back up existing files: %v"
	InstallBackupRecordFailedFmt = "backup was copied but could not be recorded: %v"

	InstallPriorityPromptCancelled = "priority selection cancelled; using the default order"
	InstallPriorityFailedFmt       = "failed to write priority config: %v"
	InstallPriorityWrittenFmt      = "wrote priority config to %s"

	InstallCreateDirFailedFmt = "failed to create directory %s: %w"
	InstallCopyFailedFmt      = "failed to copy the %s bundle to %s: %w"
	InstallCopiedFmt          = "copied %d files (%s) to %s"

	InstallSkillsClean         = "skill documents passed lint"
	InstallSkillsFindingsFmt   = "%d skill lint findings"
	InstallSkillsLintFailedFmt = "failed to lint skills: %v"

	InstallPermissionsFailed     = "some scripts could not be made executable"
	InstallPermissionsSetFmt     = "marked %d scripts executable"
	InstallCompanionSkipped      = "companion check skipped"
	InstallWriteVersionFailedFmt = "failed to write version record: %w"
)

// Uninstall messages.
const (
	// UninstallConfirmationRequired is returned when uninstall cannot ask and was not forced.
	UninstallConfirmationRequired = "uninstall needs confirmation; run in an interactive terminal, pass --force, or set FORCE_UNINSTALL=1"
	UninstallFoundBackupFmt       = "Found a backup taken %s."
	UninstallBackupMissingFmt     = "backup %s no longer exists; removing installed files instead"
	UninstallRestoreFailedFmt     = "failed to restore backup: %v"
	UninstallRestoredFmt          = "restored backup %s"
	UninstallRecordsFailed        = "backup restored but install records could not be deleted"
	UninstallRemoveFailedFmt      = "failed to remove %s: %w"
	UninstallRemovedFmt           = "removed %d items; backups under %s were kept"
)

// StatusUnknown is shown when a value cannot be determined.
const StatusUnknown = "unknown"
