// SPDX-License-Identifier: MPL-2.0

//go:build unix

package runtime

import "golang.org/x/sys/unix"

// ExecLauncher replaces the current process with the runtime via execve(2).
type ExecLauncher struct{}

// Launch never returns on success.
func (ExecLauncher) Launch(argv, env []string) error {
	path, err := lookExecutable(argv)
	if err != nil {
		return err
	}
	if err := unix.Exec(path, argv, env); err != nil {
		return &LaunchError{Argv: argv, Err: err}
	}
	return nil
}
