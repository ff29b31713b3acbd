// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDirName is the sentinel error wrapped by InvalidDirNameError.
var ErrInvalidDirName = errors.New("invalid directory name")

// windowsReservedNames are device names Windows reserves regardless of
// extension.
var windowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// InvalidDirNameError is returned when a name cannot be used as a single
// directory name on every platform.
type InvalidDirNameError struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e *InvalidDirNameError) Error() string {
	return fmt.Sprintf("invalid directory name %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidDirName for errors.Is() compatibility.
func (e *InvalidDirNameError) Unwrap() error { return ErrInvalidDirName }

// IsWindowsReservedName reports whether name is a Windows device name.
// Extensions are ignored, so "nul.txt" is reserved too.
func IsWindowsReservedName(name string) bool {
	upper := strings.ToUpper(name)
	if idx := strings.IndexByte(upper, '.'); idx != -1 {
		upper = upper[:idx]
	}
	return windowsReservedNames[upper]
}

// ValidateDirName checks that name is one path element that every platform
// accepts. Reserved Windows names are rejected everywhere so directories
// stay portable.
func ValidateDirName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return &InvalidDirNameError{Name: name, Reason: "must be non-empty"}
	case name == "." || name == "..":
		return &InvalidDirNameError{Name: name, Reason: "must not be a relative path element"}
	case strings.ContainsAny(name, `/\`):
		return &InvalidDirNameError{Name: name, Reason: "must not contain path separators"}
	case IsWindowsReservedName(name):
		return &InvalidDirNameError{Name: name, Reason: "reserved on Windows"}
	}
	return nil
}
