// SPDX-License-Identifier: MPL-2.0

package store

import (
	"crypto/sha1" //nolint:gosec // content addressing, not a security boundary
	"encoding/hex"
	"fmt"
	"path/filepath"
)

const (
	// DirName is the name of the local store directory.
	DirName = ".jlm"
	// DataFileName is the document file inside a local store root.
	DataFileName = "data.json"

	execDirName = "exec"
)

// ExecKey returns the hex SHA-1 of the executable identity.
func ExecKey(executable string) string {
	sum := sha1.Sum([]byte(executable)) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])
}

// ExecPath returns root/exec/<sha1(executable)>, the directory in which
// artifacts for one executable are stored. It panics if executable is not
// absolute: identities must be normalized before they become hash keys.
// No I/O is performed; callers create the directory when they need it.
func ExecPath(root, executable string) string {
	if !filepath.IsAbs(executable) {
		panic(fmt.Sprintf("store: executable identity %q is not an absolute path", executable))
	}
	return filepath.Join(root, execDirName, ExecKey(executable))
}
