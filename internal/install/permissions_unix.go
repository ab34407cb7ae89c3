//go:build unix

package install

import "golang.org/x/sys/unix"

// checkExecutable confirms the current user may execute path.
var checkExecutable = func(path string) error {
	return unix.Access(path, unix.X_OK)
}
