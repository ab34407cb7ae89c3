// Package companion checks for and installs the aiw companion CLI.
package companion

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Command is the companion executable name.
	Command = "aiw"
	// VersionFlag prints the companion version.
	VersionFlag = "--version"
	// PackageName is the npm package that provides the companion.
	PackageName = "@putao520/aiw"
	// MinimumVersion is the oldest companion release the bundle works with.
	MinimumVersion = "0.5.36"
)

var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// InstallCommand is the manual remedy printed when installation fails.
func InstallCommand() string {
	return "npm install -g " + PackageName
}

// Gateway talks to the companion CLI.
type Gateway interface {
	// Version reports the installed version. ok is false when the CLI is absent or prints no version.
	Version(ctx context.Context) (version string, ok bool)
	// Install installs or upgrades the CLI globally.
	Install(ctx context.Context) error
}

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecGateway implements Gateway by running the real executables.
type ExecGateway struct {
	Run Runner
}

// NewExecGateway returns a gateway that runs processes on the host.
func NewExecGateway() ExecGateway {
	return ExecGateway{Run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func (g ExecGateway) runner() Runner {
	if g.Run == nil {
		return runCommand
	}
	return g.Run
}

// Version runs "aiw --version" and extracts the first X.Y.Z from its output.
func (g ExecGateway) Version(ctx context.Context) (string, bool) {
	out, err := g.runner()(ctx, Command, VersionFlag)
	if err != nil {
		return "", false
	}
	return ExtractVersion(string(out))
}

// Install runs the npm global install.
func (g ExecGateway) Install(ctx context.Context) error {
	out, err := g.runner()(ctx, "npm", "install", "-g", PackageName)
	if err != nil {
		if detail := strings.TrimSpace(string(out)); detail != "" {
			return fmt.Errorf("%w: %s", err, detail)
		}
		return err
	}
	return nil
}

// ExtractVersion returns the first X.Y.Z found in output.
func ExtractVersion(output string) (string, bool) {
	match := versionPattern.FindString(output)
	return match, match != ""
}

// VersionCompare compares dotted versions segment by segment, padding the shorter with zeros.
// A segment's value is its leading run of digits; a segment without leading digits counts as 0.
// It returns 1 when a > b, -1 when a < b, and 0 otherwise.
func VersionCompare(a, b string) int {
	if a == b {
		return 0
	}
	left := strings.Split(a, ".")
	right := strings.Split(b, ".")
	n := max(len(left), len(right))
	for i := 0; i < n; i++ {
		l, r := segmentValue(left, i), segmentValue(right, i)
		switch {
		case l > r:
			return 1
		case l < r:
			return -1
		}
	}
	return 0
}

func segmentValue(parts []string, i int) uint64 {
	if i >= len(parts) {
		return 0
	}
	seg := strings.TrimSpace(parts[i])
	end := 0
	for end < len(seg) && seg[end] >= '0' && seg[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	value, err := strconv.ParseUint(seg[:end], 10, 64)
	if err != nil {
		// Overflowing segments saturate.
		return ^uint64(0)
	}
	return value
}
