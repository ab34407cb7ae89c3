package config

import (
	"path/filepath"

	"github.com/conn-castle/cc-spec/internal/platform"
)

// Paths holds the resolved locations the installer reads and writes.
type Paths struct {
	InstallRoot      string
	UserConfig       string
	ProviderRegistry string
	CompanionRoleDir string
}

// DefaultPaths returns the locations derived from env.
func DefaultPaths(env Env) Paths {
	root := platform.ResolveInstallRoot(env.Home)
	return Paths{
		InstallRoot:      root,
		UserConfig:       filepath.Join(root, "config", "aiw-priority.yaml"),
		ProviderRegistry: filepath.Join(env.Home, ".aiw", "providers.json"),
		CompanionRoleDir: filepath.Join(env.Home, ".aiw", "role"),
	}
}
