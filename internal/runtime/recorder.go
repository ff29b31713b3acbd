// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"slices"
	"strings"
)

// RecordingLauncher records launches instead of performing them. It stands in
// for ExecLauncher wherever replacing the process is not acceptable.
type RecordingLauncher struct {
	// Err, when set, is returned from every Launch call.
	Err error

	Launches []Launch
}

// Launch is one recorded call.
type Launch struct {
	Argv []string
	Env  []string
}

// Launch records argv and env.
func (l *RecordingLauncher) Launch(argv, env []string) error {
	l.Launches = append(l.Launches, Launch{Argv: slices.Clone(argv), Env: slices.Clone(env)})
	return l.Err
}

// Last returns the most recent launch and whether there was one.
func (l *RecordingLauncher) Last() (Launch, bool) {
	if len(l.Launches) == 0 {
		return Launch{}, false
	}
	return l.Launches[len(l.Launches)-1], true
}

// Getenv returns the value of key in the recorded environment.
func (l Launch) Getenv(key string) (string, bool) {
	for _, kv := range slices.Backward(l.Env) {
		if value, ok := strings.CutPrefix(kv, key+"="); ok {
			return value, true
		}
	}
	return "", false
}
