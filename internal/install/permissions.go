package install

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/conn-castle/cc-spec/internal/messages"
	"github.com/conn-castle/cc-spec/internal/steps"
)

// markExecutable sets 0755 on the manifest's executable trees, like chmod -R 755.
// Symlinks are left alone. Missing trees are ignored.
func (inst *installer) markExecutable() steps.Result {
	var marked int
	var failures []string
	for _, rel := range inst.manifest.Executable {
		dir := filepath.Join(inst.paths.InstallRoot, filepath.FromSlash(rel))
		if _, err := inst.sys.Stat(dir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				failures = append(failures, fmt.Sprintf("%s: %v", dir, err))
			}
			continue
		}
		walkErr := inst.sys.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", path, err))
				return nil
			}
			if d.Type()&fs.ModeSymlink != 0 {
				return nil
			}
			if err := inst.sys.Chmod(path, 0o755); err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", path, err))
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if err := checkExecutable(path); err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", path, err))
				return nil
			}
			marked++
			return nil
		})
		if walkErr != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", dir, walkErr))
		}
	}
	if len(failures) > 0 {
		return steps.Warnf(steps.Permissions, messages.InstallPermissionsFailed).WithDetails(failures...)
	}
	return steps.OKf(steps.Permissions, messages.InstallPermissionsSetFmt, marked)
}
