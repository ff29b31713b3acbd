// SPDX-License-Identifier: MPL-2.0

package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

const dirPerm = 0o755

// Effects performs the side effects of an operation: printing, logging,
// spawning helper processes and creating directories. In dry-run mode
// processes and directories are logged but not created.
type Effects struct {
	DryRun  bool
	Verbose bool

	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

// NewEffects creates Effects writing user output to stdout and logs to
// stderr. Logs are shown at info level when verbose or dryRun is set.
func NewEffects(dryRun, verbose bool, stdout, stderr io.Writer) *Effects {
	level := log.WarnLevel
	if dryRun || verbose {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(stderr, log.Options{
		Prefix: "jlm",
		Level:  level,
	})
	return &Effects{
		DryRun:  dryRun,
		Verbose: verbose,
		stdout:  stdout,
		stderr:  stderr,
		logger:  logger,
	}
}

// Logger returns the logger.
func (e *Effects) Logger() *log.Logger { return e.logger }

// Stdout returns the writer for user-facing output.
func (e *Effects) Stdout() io.Writer { return e.stdout }

// Print writes a line of user-facing output.
func (e *Effects) Print(a ...any) {
	fmt.Fprintln(e.stdout, a...)
}

// Info logs msg when verbose output is enabled.
func (e *Effects) Info(msg string, keyvals ...any) {
	e.logger.Info(msg, keyvals...)
}

// Warn logs msg unconditionally.
func (e *Effects) Warn(msg string, keyvals ...any) {
	e.logger.Warn(msg, keyvals...)
}

// InfoRun logs argv as a shell command line.
func (e *Effects) InfoRun(argv []string) {
	e.Info("Run: " + QuoteCommand(argv))
}

// CheckCall runs argv with the process's stdio and fails if it exits
// non-zero. Nothing is run in dry-run mode.
func (e *Effects) CheckCall(ctx context.Context, argv []string) error {
	e.InfoRun(argv)
	if e.DryRun {
		return nil
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	return cmd.Run()
}

// EnsureDir creates path and its parents unless it already is a directory.
func (e *Effects) EnsureDir(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil
	}
	e.Info(fmt.Sprintf("Directory %s does not exist. Creating...", path))
	if e.DryRun {
		return nil
	}
	if err := os.MkdirAll(path, dirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// QuoteCommand renders argv as a bash command line.
func QuoteCommand(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			// Arguments bash cannot represent (NUL bytes) fall back to Go syntax.
			q = strconv.Quote(arg)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
