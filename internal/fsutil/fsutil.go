// Package fsutil holds the small filesystem helpers used when publishing artifacts.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureParentDir creates every missing directory above path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// CopyFile copies src to dst byte for byte, replacing dst if it exists and
// carrying over the source permissions. Copying a file onto itself is a no-op.
func CopyFile(src, dst string) error {
	// #nosec G304 - paths come from the caller's own configuration
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return nil
	}

	// #nosec G304
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode().Perm())
}
