// SPDX-License-Identifier: MPL-2.0

package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"jlm-cli/internal/config"
	"jlm-cli/internal/runtime"
	"jlm-cli/internal/store"
	"jlm-cli/pkg/types"
)

// PrecompileKeyEnv carries the precompile key to the julia process.
const PrecompileKeyEnv = "JLM_PRECOMPILE_KEY"

type (
	// Options holds the per-invocation settings, usually global CLI flags.
	Options struct {
		DryRun  bool
		Verbose bool
		// Julia is the explicit executable (--julia). It is resolved on $PATH
		// when it has no directory component.
		Julia string
		// JLMDir pins the local store root (--jlm-dir) when it holds data.json.
		JLMDir string
		// Version is recorded in saved documents.
		Version string
	}

	// Dependencies defines the injection points for building an Application.
	// Nil fields are replaced with production defaults by New.
	Dependencies struct {
		Config   *config.Config
		Launcher runtime.Launcher
		Stdout   io.Writer
		Stderr   io.Writer
		// Getwd returns the directory discovery starts from.
		Getwd func() (string, error)
		// LookPath resolves executable names on $PATH.
		LookPath func(file string) (string, error)
		// Executable returns the path of the running jlm binary.
		Executable func() (string, error)
		// Output runs a command and returns its standard output.
		Output func(ctx context.Context, argv []string) ([]byte, error)
	}

	// Application is the composition root for jlm operations.
	Application struct {
		opts  Options
		julia string // resolved explicit executable, "" if none
		cfg   *config.Config
		eff   *Effects

		home  *store.HomeStore
		local *store.LocalStore

		launcher   runtime.Launcher
		getwd      func() (string, error)
		lookPath   func(file string) (string, error)
		executable func() (string, error)
		output     func(ctx context.Context, argv []string) ([]byte, error)
	}
)

// New creates an Application. An explicit julia that cannot be found is an
// error here rather than at first use.
func New(opts Options, deps Dependencies) (*Application, error) {
	if deps.Config == nil {
		deps.Config = config.DefaultConfig()
	}
	if deps.Launcher == nil {
		deps.Launcher = runtime.ExecLauncher{}
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}
	if deps.LookPath == nil {
		deps.LookPath = exec.LookPath
	}
	if deps.Executable == nil {
		deps.Executable = os.Executable
	}
	if deps.Output == nil {
		deps.Output = commandOutput
	}

	a := &Application{
		opts:       opts,
		cfg:        deps.Config,
		eff:        NewEffects(opts.DryRun, opts.Verbose, deps.Stdout, deps.Stderr),
		launcher:   deps.Launcher,
		getwd:      deps.Getwd,
		lookPath:   deps.LookPath,
		executable: deps.Executable,
		output:     deps.Output,
	}

	if opts.Julia != "" {
		julia, err := a.resolveExecutable(opts.Julia)
		if err != nil {
			return nil, err
		}
		a.julia = julia
	}

	home, err := store.NewHomeStore(a.cfg.HomeDir.String())
	if err != nil {
		return nil, err
	}
	a.home = home

	start, err := a.getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	a.local = store.OpenLocalStore(opts.JLMDir, start,
		store.WithLogger(a.eff.Logger()),
		store.WithVersion(opts.Version),
	)

	return a, nil
}

// Effects returns the side-effect helper.
func (a *Application) Effects() *Effects { return a.eff }

// LocalStore returns the project store.
func (a *Application) LocalStore() *store.LocalStore { return a.local }

// HomeStore returns the user-global store.
func (a *Application) HomeStore() *store.HomeStore { return a.home }

// resolveExecutable turns name into an absolute executable identity.
// Names without a directory component are looked up on $PATH.
func (a *Application) resolveExecutable(name string) (string, error) {
	path, err := a.lookPath(name)
	if err != nil {
		return "", executableError(name, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", executableError(name, err)
	}
	return abs, nil
}

// normalizeSysimage makes a relative sysimage path absolute against the
// working directory. Symlinks are kept so a relinked image is picked up.
func (a *Application) normalizeSysimage(sysimage string) (types.FilesystemPath, error) {
	wd, err := a.getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return types.FilesystemPath(sysimage).Absolute(wd)
}

func commandOutput(ctx context.Context, argv []string) ([]byte, error) {
	return exec.CommandContext(ctx, argv[0], argv[1:]...).Output()
}
