// SPDX-License-Identifier: MPL-2.0

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"jlm-cli/internal/atomicfile"
	"jlm-cli/internal/issue"
	"jlm-cli/pkg/platform"
)

const (
	// DefaultKernelName is the kernel directory name used by
	// install-ijulia-kernel.
	DefaultKernelName = "jlm"

	// ConnectionFilePlaceholder is substituted by Jupyter with the path of the
	// kernel connection file.
	ConnectionFilePlaceholder = "{connection_file}"

	kernelSpecName = "kernel.json"
	kernelSpecPerm = 0o644

	ijuliaKernelCode = `import IJulia; include(joinpath(dirname(pathof(IJulia)), "kernel.jl"))`
)

type (
	// KernelOptions configures InstallIJuliaKernel.
	KernelOptions struct {
		// Name is the kernel directory name under Jupyter's data dir.
		Name string
		// OutputDir is the kernel directory. When empty it is derived from
		// `jupyter --paths --json`.
		OutputDir string
		// Jupyter is the jupyter command; defaults to the configured one.
		Jupyter string
		// DisplayName defaults to the base name of the kernel directory.
		DisplayName string
		// StoreJLMDir pins the current local store in the kernel command line.
		StoreJLMDir bool
		// JuliaOptions are passed to julia before the kernel script.
		JuliaOptions []string
	}

	// KernelSpec is the content of a Jupyter kernel.json file.
	KernelSpec struct {
		Argv        []string `json:"argv"`
		DisplayName string   `json:"display_name"`
		Language    string   `json:"language"`
	}

	jupyterPaths struct {
		Data []string `json:"data"`
	}
)

// IJuliaKernel replaces the process with an IJulia kernel connected through
// connectionFile. It runs like Run with the kernel script appended.
func (a *Application) IJuliaKernel(juliaOptions []string, connectionFile string) error {
	args := make([]string, 0, len(juliaOptions)+3)
	args = append(args, juliaOptions...)
	args = append(args, "-e", ijuliaKernelCode, connectionFile)
	return a.Run(args)
}

// InstallIJuliaKernel writes a kernel.json that starts `jlm ijulia-kernel`
// with the current settings. An existing kernel directory is never
// overwritten.
func (a *Application) InstallIJuliaKernel(ctx context.Context, opts KernelOptions) error {
	if opts.Name == "" {
		opts.Name = DefaultKernelName
	}
	if opts.Jupyter == "" {
		opts.Jupyter = a.cfg.Jupyter.String()
	}

	kernelDir := opts.OutputDir
	if kernelDir == "" {
		if err := platform.ValidateDirName(opts.Name); err != nil {
			return err
		}
		dataDir, err := a.jupyterDataDir(ctx, opts.Jupyter)
		if err != nil {
			return err
		}
		kernelDir = filepath.Join(dataDir, "kernels", opts.Name)
	}
	kernelDir, err := filepath.Abs(kernelDir)
	if err != nil {
		return err
	}
	if _, err := os.Stat(kernelDir); err == nil {
		return kernelExistsError(kernelDir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if opts.DisplayName == "" {
		opts.DisplayName = filepath.Base(kernelDir)
	}

	argv, err := a.kernelArgv(opts)
	if err != nil {
		return err
	}
	spec := KernelSpec{Argv: argv, DisplayName: opts.DisplayName, Language: "julia"}
	data, err := json.MarshalIndent(spec, "", " ")
	if err != nil {
		return err
	}

	if err := a.eff.EnsureDir(kernelDir); err != nil {
		return err
	}
	path := filepath.Join(kernelDir, kernelSpecName)
	a.eff.Info(fmt.Sprintf("Creating Jupyter kernel at %s with the following spec:\n%s", path, data))
	if a.eff.DryRun {
		return nil
	}
	return atomicfile.WriteFile(path, append(data, '\n'), kernelSpecPerm)
}

// kernelArgv builds the kernel command line recorded in kernel.json.
func (a *Application) kernelArgv(opts KernelOptions) ([]string, error) {
	jlm, err := a.executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate jlm executable: %w", err)
	}
	argv := []string{jlm}
	if opts.StoreJLMDir {
		root, err := a.LocateLocalDir()
		if err != nil {
			return nil, err
		}
		argv = append(argv, "--jlm-dir", root)
	}
	argv = append(argv, "ijulia-kernel")
	if a.julia != "" {
		argv = append(argv, "--julia", a.julia)
	}
	for _, opt := range opts.JuliaOptions {
		argv = append(argv, "--julia-option="+opt)
	}
	return append(argv, ConnectionFilePlaceholder), nil
}

// jupyterDataDir returns the first entry of Jupyter's data path.
func (a *Application) jupyterDataDir(ctx context.Context, jupyter string) (string, error) {
	argv := []string{jupyter, "--paths", "--json"}
	a.eff.InfoRun(argv)
	out, err := a.output(ctx, argv)
	if err != nil {
		return "", jupyterError(jupyter, err)
	}
	var paths jupyterPaths
	if err := json.Unmarshal(out, &paths); err != nil {
		return "", jupyterError(jupyter, fmt.Errorf("unexpected output of %s: %w", QuoteCommand(argv), err))
	}
	if len(paths.Data) == 0 {
		return "", jupyterError(jupyter, fmt.Errorf("%s reported no data directory", QuoteCommand(argv)))
	}
	return paths.Data[0], nil
}

func jupyterError(jupyter string, err error) error {
	return issue.NewErrorContext().
		WithOperation("locate Jupyter data directory").
		WithResource(jupyter).
		WithSuggestion("Install Jupyter or pass its command with --jupyter").
		WithSuggestion("Or choose the kernel directory with --output-dir").
		WithIssue(issue.JupyterNotFoundId).
		Wrap(fmt.Errorf("%w: %w", ErrSubprocessFailed, err)).
		BuildError()
}

func kernelExistsError(dir string) error {
	return issue.NewErrorContext().
		WithOperation("install IJulia kernel").
		WithResource(dir).
		WithSuggestion("Remove the directory first or pick another --name").
		WithIssue(issue.KernelExistsId).
		Wrap(fmt.Errorf("%w: %s", ErrKernelExists, dir)).
		BuildError()
}
