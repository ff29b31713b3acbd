// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrLaunchFailed is the sentinel wrapped by every launch failure.
var ErrLaunchFailed = errors.New("failed to launch runtime")

type (
	// Launcher starts argv[0] with the given arguments and environment.
	// On success, implementations that replace the process never return.
	Launcher interface {
		Launch(argv, env []string) error
	}

	// LaunchError describes a launch that never reached the new program.
	LaunchError struct {
		Argv []string
		Err  error
	}
)

// Error implements the error interface.
func (e *LaunchError) Error() string {
	name := "<empty command>"
	if len(e.Argv) > 0 {
		name = e.Argv[0]
	}
	return fmt.Sprintf("failed to launch %s: %v", name, e.Err)
}

// Unwrap returns the underlying error.
func (e *LaunchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrLaunchFailed) match every LaunchError.
func (e *LaunchError) Is(target error) bool { return target == ErrLaunchFailed }

// lookExecutable resolves argv[0] the way execvp does.
func lookExecutable(argv []string) (string, error) {
	if len(argv) == 0 {
		return "", &LaunchError{Argv: argv, Err: errors.New("empty command line")}
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return "", &LaunchError{Argv: argv, Err: err}
	}
	return path, nil
}
