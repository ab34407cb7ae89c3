package messages

// Companion tool messages.
const (
	// CompanionGatewayRequired indicates a gateway is required for companion checks.
	CompanionGatewayRequired    = "companion gateway is required"
	CompanionRequired           = "aiw is required; install it or re-run with --skip-companion-check"
	CompanionInstallFailed      = "companion install failed"
	CompanionInstallFailedFmt   = "%w: %w; install it manually with: %s"
	CompanionFoundFmt           = "aiw %s found"
	CompanionInstalled          = "aiw installed"
	CompanionUpgradedFmt        = "aiw upgraded from %s"
	CompanionUpgradeDeclinedFmt = "aiw %s is older than %s; some workflows may not work"

	CompanionRolesDirMissing         = "bundle has no roles directory"
	CompanionRolesNone               = "bundle has no role documents"
	CompanionRolesFailedFmt          = "failed to seed companion roles: %v"
	CompanionRolesNonInteractiveSkip = "existing roles kept; re-run with --overwrite-roles to replace them"
	CompanionRolesDeclined           = "existing roles kept"
	CompanionRolesCopiedFmt          = "copied %d roles to %s"
	CompanionDiffTruncatedFmt        = "... diff truncated after %d lines"
)
