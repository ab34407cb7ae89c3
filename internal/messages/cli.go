package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "cc-spec"
	// RootShort is the short description for the root command.
	RootShort         = "Install the SPEC workflow bundle into ~/.claude"
	RootBundleDirFlag = "Install from this bundle directory instead of the embedded bundle"
	RootNoColorFlag   = "Disable colored output"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// CLICancelled is printed when the user backs out of a prompt.
	CLICancelled = "Cancelled; nothing else was changed."

	InstallUse                = "install"
	InstallShort              = "Install or refresh the bundle"
	InstallFlagLang           = "Bundle language (en or zh)"
	InstallFlagForce          = "Switch to --lang without asking"
	InstallFlagSkipCompanion  = "Do not check for or install aiw"
	InstallFlagOverwriteRoles = "Replace existing aiw roles without asking"

	UpdateUse   = "update"
	UpdateShort = "Refresh the installed bundle, keeping its language unless --lang is given"

	UninstallUse       = "uninstall"
	UninstallShort     = "Restore the pre-install backup or remove installed files"
	UninstallFlagForce = "Skip confirmation prompts"

	StatusUse      = "status"
	StatusShort    = "Show what is installed"
	StatusFlagJSON = "Print the status as JSON"

	StatusPlatformFmt      = "Platform:     %s\n"
	StatusRootFmt          = "Install root: %s\n"
	StatusNotInstalled     = "Not installed."
	StatusLanguageFmt      = "Language:     %s\n"
	StatusLegacy           = "Installed by an older release (no version record)."
	StatusVersionFmt       = "Version:      %s (installed %s)\n"
	StatusContentFmt       = "Content:      %d skills, %d commands\n"
	StatusCompanionFmt     = "aiw:          %s\n"
	StatusCompanionMissing = "aiw:          not found"
	StatusPriorityHeader   = "Priority:"
	StatusBackupFmt        = "Backup:       %s\n"

	BannerFmt        = "cc-spec %s"
	StepOKLabel      = "[OK]"
	StepSkippedLabel = "[SKIP]"
	StepLineFmt      = "%s %s\n"
	StepDetailFmt    = "      %s\n"

	SummaryAttentionFmt   = "%d step(s) need attention (%s); see the warnings above."
	SummaryBackupFmt      = "Your previous files were backed up to %s\n"
	SummaryInstalledFmt   = "Installed the %s bundle into %s"
	SummaryRestoredFmt    = "Restored backup %s"
	SummaryUninstalledFmt = "Uninstalled from %s"
)

// Prompt messages.
const (
	PromptLanguageConflictFmt = "The installed language is %s but %s was requested."
	PromptLanguageKeepFmt     = "Keep %s"
	PromptLanguageSwitchFmt   = "Switch to %s"
	PromptLanguageCancel      = "Cancel"

	PromptPriorityPositionFmt = "Which CLI should aiw try at position %d?"
	PromptPriorityProviderFmt = "Provider for %s"

	PromptCompanionInstall    = "aiw is not installed. Install it now with npm?"
	PromptCompanionUpgradeFmt = "aiw %s is older than %s. Upgrade it now?"

	PromptRoleDiffTitleFmt  = "%d existing aiw roles differ from the bundle"
	PromptRoleDiffHeaderFmt = "== %s ==\n"
	PromptRoleOverwrite     = "Replace the existing roles?"

	PromptUninstall  = "Uninstall the SPEC workflow bundle?"
	PromptRestoreFmt = "Restore the backup taken %s (%s)?"

	// UICancelled is the error text for an aborted prompt.
	UICancelled        = "prompt cancelled"
	UIRequiresTerminal = "prompts require an interactive terminal"
)
