// SPDX-License-Identifier: MPL-2.0

package store

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreNotFound is returned when no local store directory can be
	// discovered. It is distinct from a store that exists but is empty.
	ErrStoreNotFound = errors.New("local store not found")
	// ErrInvalidStorePath is the sentinel error wrapped by InvalidPathError.
	ErrInvalidStorePath = errors.New("invalid store path")
	// ErrNoDefault is returned when the document has no default executable.
	ErrNoDefault = errors.New("no default executable configured")
	// ErrCorruptDocument is the sentinel error wrapped by CorruptDocumentError.
	ErrCorruptDocument = errors.New("corrupt store document")
)

type (
	// NotFoundError is returned when discovery walked from Start up to the
	// filesystem root without finding a store directory.
	// It wraps ErrStoreNotFound for errors.Is() compatibility.
	NotFoundError struct {
		Start string
	}

	// InvalidPathError is returned when a store root is not an absolute path.
	// It wraps ErrInvalidStorePath for errors.Is() compatibility.
	InvalidPathError struct {
		Value string
	}

	// CorruptDocumentError is returned when data.json exists but is not valid
	// JSON or does not match the document schema. The document is never
	// silently replaced by a default in that case.
	CorruptDocumentError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no %s directory in %s or any parent directory", ErrStoreNotFound, DirName, e.Start)
}

// Unwrap returns ErrStoreNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrStoreNotFound }

// Error implements the error interface for InvalidPathError.
func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid store path %q: must be absolute", e.Value)
}

// Unwrap returns ErrInvalidStorePath for errors.Is() compatibility.
func (e *InvalidPathError) Unwrap() error { return ErrInvalidStorePath }

// Error implements the error interface for CorruptDocumentError.
func (e *CorruptDocumentError) Error() string {
	return fmt.Sprintf("corrupt store document %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying parse or validation error.
func (e *CorruptDocumentError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrCorruptDocument) match every CorruptDocumentError.
func (e *CorruptDocumentError) Is(target error) bool { return target == ErrCorruptDocument }
