// SPDX-License-Identifier: MPL-2.0

package app

import (
	"errors"
	"fmt"

	"jlm-cli/internal/issue"
	"jlm-cli/internal/store"
)

var (
	// ErrExecutableNotFound is returned when no julia executable can be resolved.
	ErrExecutableNotFound = errors.New("julia executable not found")
	// ErrSubprocessFailed is returned when a julia or jupyter helper process fails.
	ErrSubprocessFailed = errors.New("subprocess failed")
	// ErrKernelExists is returned when the kernel directory already exists.
	ErrKernelExists = errors.New("kernel directory already exists")
	// ErrSysimageNotFound is returned when the resolved system image is missing.
	ErrSysimageNotFound = errors.New("system image not found")
)

// ExecutableNotFoundError names the executable that could not be resolved.
// It wraps ErrExecutableNotFound for errors.Is() compatibility.
type ExecutableNotFoundError struct {
	Name string
	Err  error
}

// Error implements the error interface for ExecutableNotFoundError.
func (e *ExecutableNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("julia executable %s is not found: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("julia executable %s is not found", e.Name)
}

// Unwrap returns ErrExecutableNotFound for errors.Is() compatibility.
func (e *ExecutableNotFoundError) Unwrap() error { return ErrExecutableNotFound }

func executableError(name string, err error) error {
	return issue.NewErrorContext().
		WithOperation("find julia").
		WithResource(name).
		WithSuggestion("Install julia or pass its path with --julia").
		WithIssue(issue.ExecutableNotFoundId).
		Wrap(&ExecutableNotFoundError{Name: name, Err: err}).
		BuildError()
}

// storeError attaches remediation hints to store failures. Other errors are
// returned unchanged.
func storeError(operation string, err error) error {
	if err == nil {
		return nil
	}
	var corrupt *store.CorruptDocumentError
	switch {
	case errors.Is(err, store.ErrStoreNotFound):
		return issue.NewErrorContext().
			WithOperation(operation).
			WithSuggestion("Run 'jlm init' in the project root").
			WithSuggestion("Or pass --jlm-dir pointing at an existing .jlm directory").
			WithIssue(issue.LocalStoreNotFoundId).
			Wrap(err).
			BuildError()
	case errors.As(err, &corrupt):
		return issue.NewErrorContext().
			WithOperation(operation).
			WithResource(corrupt.Path).
			WithSuggestion("Fix the reported field or remove the file and run 'jlm init'").
			WithIssue(issue.CorruptDocumentId).
			Wrap(err).
			BuildError()
	default:
		return err
	}
}

func subprocessError(operation, executable string, err error) error {
	return issue.NewErrorContext().
		WithOperation(operation).
		WithResource(executable).
		WithSuggestion("Check the output above for the julia error").
		WithSuggestion("Re-run with --verbose to see the exact command").
		WithIssue(issue.SubprocessFailedId).
		Wrap(fmt.Errorf("%w: %w", ErrSubprocessFailed, err)).
		BuildError()
}

func sysimageError(sysimage string) error {
	return issue.NewErrorContext().
		WithOperation("run julia").
		WithResource(sysimage).
		WithSuggestion("Run 'jlm create-default-sysimage' to compile the default image").
		WithSuggestion("Or choose an existing image with 'jlm set-sysimage'").
		WithIssue(issue.SysimageNotFoundId).
		Wrap(ErrSysimageNotFound).
		BuildError()
}
