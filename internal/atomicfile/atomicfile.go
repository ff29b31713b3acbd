// SPDX-License-Identifier: MPL-2.0

// Package atomicfile writes files so that readers observe either the previous
// content or the complete new content, never a truncated file.
//
// Concurrent writers to the same path are not merged: the last rename wins.
package atomicfile

import (
	"fmt"
	"io/fs"
	"os"
)

// TempPath returns the sibling temporary path used while writing path.
// The process ID keeps concurrent processes from sharing a temp file.
func TempPath(path string) string {
	return fmt.Sprintf("%s.%d.tmp", path, os.Getpid())
}

// WriteFile writes data to path atomically using temp file + rename.
// The temp file is removed on every exit path; removal failures are ignored.
func WriteFile(path string, data []byte, perm fs.FileMode) error {
	tmpPath := TempPath(path)
	// Best-effort cleanup; after a successful rename the file is already gone.
	defer func() { _ = os.Remove(tmpPath) }()

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
