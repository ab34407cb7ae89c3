// Package version normalizes the build version stamped into the binary.
package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/conn-castle/cc-spec/internal/messages"
)

// Dev is reported for builds without a release version.
const Dev = "dev"

// IsDev reports whether raw denotes a development build.
func IsDev(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || trimmed == Dev || strings.HasPrefix(trimmed, Dev+"-")
}

// Normalize accepts vX.Y.Z or X.Y.Z (with optional prerelease) and returns it without the v prefix.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf(messages.VersionRequired)
	}
	candidate := "v" + strings.TrimPrefix(trimmed, "v")
	if !semver.IsValid(candidate) || semver.Build(candidate) != "" {
		return "", fmt.Errorf(messages.VersionInvalidFmt, raw)
	}
	core := strings.TrimSuffix(candidate, semver.Prerelease(candidate))
	if strings.Count(core, ".") != 2 {
		return "", fmt.Errorf(messages.VersionInvalidFmt, raw)
	}
	return strings.TrimPrefix(candidate, "v"), nil
}

// Resolve returns the version to record for raw: the normalized release version, or Dev.
func Resolve(raw string) string {
	if IsDev(raw) {
		return Dev
	}
	normalized, err := Normalize(raw)
	if err != nil {
		return Dev
	}
	return normalized
}
