package companion

import (
	"context"
	"errors"
	"fmt"

	"github.com/conn-castle/cc-spec/internal/messages"
	"github.com/conn-castle/cc-spec/internal/steps"
)

var (
	// ErrRequired is returned when the user declines installing a missing companion.
	ErrRequired = errors.New(messages.CompanionRequired)
	// ErrInstallFailed is returned when the companion install command fails.
	ErrInstallFailed = errors.New(messages.CompanionInstallFailed)
)

// Prompter asks whether to install or upgrade the companion.
type Prompter interface {
	ConfirmCompanionInstall() (bool, error)
	ConfirmCompanionUpgrade(current string, minimum string) (bool, error)
}

// EnsureOptions configures Ensure.
type EnsureOptions struct {
	Gateway Gateway
	// Interactive enables prompts; otherwise install and upgrade proceed automatically.
	Interactive bool
	Prompter    Prompter
	// Minimum defaults to MinimumVersion.
	Minimum string
}

// EnsureResult reports what Ensure did.
type EnsureResult struct {
	steps.Result
	// Found is the version detected before any install. Empty when absent.
	Found string
	// Installed is true when an install or upgrade ran successfully.
	Installed bool
}

// Ensure makes sure the companion is present and at least the minimum version.
// Declining to install a missing companion returns ErrRequired; declining an upgrade is not an error.
// A failed install returns an error wrapping ErrInstallFailed that names the manual command.
func Ensure(ctx context.Context, opts EnsureOptions) (EnsureResult, error) {
	if opts.Gateway == nil {
		return EnsureResult{}, fmt.Errorf(messages.CompanionGatewayRequired)
	}
	minimum := opts.Minimum
	if minimum == "" {
		minimum = MinimumVersion
	}
	interactive := opts.Interactive && opts.Prompter != nil

	current, found := opts.Gateway.Version(ctx)
	if found {
		if VersionCompare(current, minimum) >= 0 {
			return EnsureResult{Result: steps.OKf(steps.Companion, messages.CompanionFoundFmt, current), Found: current}, nil
		}
		proceed := true
		if interactive {
			ok, err := opts.Prompter.ConfirmCompanionUpgrade(current, minimum)
			if err != nil {
				return EnsureResult{Found: current}, err
			}
			proceed = ok
		}
		if !proceed {
			res := steps.Warnf(steps.Companion, messages.CompanionUpgradeDeclinedFmt, current, minimum).WithFix(InstallCommand())
			return EnsureResult{Result: res, Found: current}, nil
		}
		if err := install(ctx, opts.Gateway); err != nil {
			return EnsureResult{Result: steps.Failf(steps.Companion, "%v", err), Found: current}, err
		}
		return EnsureResult{Result: steps.OKf(steps.Companion, messages.CompanionUpgradedFmt, current), Found: current, Installed: true}, nil
	}

	proceed := true
	if interactive {
		ok, err := opts.Prompter.ConfirmCompanionInstall()
		if err != nil {
			return EnsureResult{}, err
		}
		proceed = ok
	}
	if !proceed {
		return EnsureResult{Result: steps.Failf(steps.Companion, messages.CompanionRequired)}, ErrRequired
	}
	if err := install(ctx, opts.Gateway); err != nil {
		return EnsureResult{Result: steps.Failf(steps.Companion, "%v", err)}, err
	}
	return EnsureResult{Result: steps.OKf(steps.Companion, messages.CompanionInstalled), Installed: true}, nil
}

func install(ctx context.Context, gw Gateway) error {
	if err := gw.Install(ctx); err != nil {
		return fmt.Errorf(messages.CompanionInstallFailedFmt, ErrInstallFailed, err, InstallCommand())
	}
	return nil
}
