// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runtime

import (
	"errors"
	"os"
	"os/exec"

	"jlm-cli/pkg/types"
)

// ExecLauncher emulates process replacement on Windows: it runs the runtime
// with inherited standard streams and exits with its status.
type ExecLauncher struct{}

// Launch never returns once the child has started.
func (ExecLauncher) Launch(argv, env []string) error {
	path, err := lookExecutable(argv)
	if err != nil {
		return err
	}
	cmd := exec.Command(path, argv[1:]...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return &LaunchError{Argv: argv, Err: err}
	}
	err = cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(int(types.ExitCodeOf(exitErr.ExitCode())))
	}
	if err != nil {
		os.Exit(int(types.ExitCodeFailure))
	}
	os.Exit(0)
	return nil
}
