// SPDX-License-Identifier: MPL-2.0

package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeStore is the user-global store shared by all projects. It holds
// per-executable artifacts such as auto-compiled default system images.
type HomeStore struct {
	root string
}

// DefaultHomeDir returns ~/.julia/jlm.
func DefaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".julia", "jlm"), nil
}

// NewHomeStore creates a HomeStore rooted at root. An empty root selects
// DefaultHomeDir. Relative roots are made absolute against the working
// directory at construction time.
func NewHomeStore(root string) (*HomeStore, error) {
	if root == "" {
		dir, err := DefaultHomeDir()
		if err != nil {
			return nil, err
		}
		root = dir
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve home store %q: %w", root, err)
	}
	return &HomeStore{root: abs}, nil
}

// Path returns the store root. The directory is created lazily by whoever
// writes into it.
func (h *HomeStore) Path() string { return h.root }

// ExecPath returns root/exec/<sha1(executable)>. It panics when executable
// is not absolute.
func (h *HomeStore) ExecPath(executable string) string {
	return ExecPath(h.root, executable)
}
