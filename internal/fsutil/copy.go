package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// TreeWriter is the set of destination operations CopyFS needs.
type TreeWriter interface {
	Lstat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
	Symlink(oldname, newname string) error
}

// CopyStats counts what CopyFS wrote.
type CopyStats struct {
	Files int
	Dirs  int
	Links int
	// Skipped lists source entries that are neither files, directories, nor symlinks.
	Skipped []string
}

// SkipFunc reports whether a slash-separated path relative to the source root should be left out.
// Skipping a directory skips its whole subtree.
type SkipFunc func(rel string) bool

// CopyFS merge-copies the tree in src into dstRoot.
// Existing destination files are overwritten, files that exist only at the destination are kept,
// and a destination entry whose kind differs from the source (file vs directory) is replaced.
// Symlinks are recreated with their original target when src implements fs.ReadLinkFS.
// Sockets, pipes, and devices are not copied; they are listed in CopyStats.Skipped.
func CopyFS(w TreeWriter, src fs.FS, dstRoot string, skip SkipFunc) (CopyStats, error) {
	var stats CopyStats
	if err := w.MkdirAll(dstRoot, 0o755); err != nil {
		return stats, fmt.Errorf("create %s: %w", dstRoot, err)
	}
	err := fs.WalkDir(src, ".", func(rel string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if rel == "." {
			return nil
		}
		if skip != nil && skip(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		dst := filepath.Join(dstRoot, filepath.FromSlash(rel))
		switch {
		case d.IsDir():
			if err := replaceIfKind(w, dst, false); err != nil {
				return err
			}
			if err := w.MkdirAll(dst, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dst, err)
			}
			stats.Dirs++
			return nil
		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				return fmt.Errorf("stat %s: %w", path.Clean(rel), err)
			}
			data, err := fs.ReadFile(src, rel)
			if err != nil {
				return fmt.Errorf("read %s: %w", path.Clean(rel), err)
			}
			if err := replaceIfKind(w, dst, true); err != nil {
				return err
			}
			if err := w.WriteFileAtomic(dst, data, info.Mode().Perm()|0o600); err != nil {
				return fmt.Errorf("write %s: %w", dst, err)
			}
			stats.Files++
			return nil
		case d.Type()&fs.ModeSymlink != 0:
			target, err := fs.ReadLink(src, rel)
			if err != nil {
				return fmt.Errorf("readlink %s: %w", path.Clean(rel), err)
			}
			if err := removeExisting(w, dst); err != nil {
				return err
			}
			if err := w.Symlink(target, dst); err != nil {
				return fmt.Errorf("symlink %s: %w", dst, err)
			}
			stats.Links++
			return nil
		default:
			stats.Skipped = append(stats.Skipped, rel)
			return nil
		}
	})
	return stats, err
}

// removeExisting clears dst so a symlink can be created in its place.
func removeExisting(w TreeWriter, dst string) error {
	if _, err := w.Lstat(dst); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", dst, err)
	}
	if err := w.RemoveAll(dst); err != nil {
		return fmt.Errorf("replace %s: %w", dst, err)
	}
	return nil
}

// replaceIfKind removes dst when it exists with the kind opposite to the one about to be written.
func replaceIfKind(w TreeWriter, dst string, writingFile bool) error {
	info, err := w.Lstat(dst)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", dst, err)
	}
	isDir := info.IsDir()
	isLink := info.Mode()&os.ModeSymlink != 0
	if writingFile && !isDir && !isLink {
		return nil
	}
	if !writingFile && isDir {
		return nil
	}
	if err := w.RemoveAll(dst); err != nil {
		return fmt.Errorf("replace %s: %w", dst, err)
	}
	return nil
}
