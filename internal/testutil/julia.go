// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// invocationSeparator terminates each invocation in a recording log.
const invocationSeparator = "--- end ---"

// SkipOnWindows skips tests that rely on shell-script executables.
func SkipOnWindows(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake executables are shell scripts")
	}
}

// WriteFakeJulia writes an executable /bin/sh script named name into dir and
// returns its absolute path. body is the script after the shebang line.
func WriteFakeJulia(t testing.TB, dir, name, body string) string {
	t.Helper()
	SkipOnWindows(t)
	MustMkdirAll(t, dir, 0o755)
	path, err := filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to resolve %s: %v", name, err)
	}
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil { //nolint:gosec // test executable
		t.Fatalf("failed to write fake executable %s: %v", path, err)
	}
	return path
}

// WriteRecordingJulia writes a fake executable that appends its arguments,
// one per line, to a log file and exits with exitCode. It returns the
// executable path and the log path; see ReadInvocations.
func WriteRecordingJulia(t testing.TB, dir, name string, exitCode int) (exe, logPath string) {
	t.Helper()
	logPath = filepath.Join(t.TempDir(), name+".log")
	body := "for arg in \"$@\"; do printf '%s\\n' \"$arg\" >> '" + logPath + "'; done\n" +
		"printf '%s\\n' '" + invocationSeparator + "' >> '" + logPath + "'\n" +
		"exit " + strconv.Itoa(exitCode)
	return WriteFakeJulia(t, dir, name, body), logPath
}

// ReadInvocations parses a recording log into one argument list per call.
// A missing log means the executable was never run.
func ReadInvocations(t testing.TB, logPath string) [][]string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to read %s: %v", logPath, err)
	}
	var (
		calls   [][]string
		current []string
	)
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSuffix(line, "\n")
		if line == invocationSeparator {
			calls = append(calls, current)
			current = nil
			continue
		}
		current = append(current, line)
	}
	return calls
}

// PrependPath puts dir first on PATH for the duration of the test.
func PrependPath(t testing.TB, dir string) func() {
	t.Helper()
	return MustSetenv(t, "PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
