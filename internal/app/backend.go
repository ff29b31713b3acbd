// SPDX-License-Identifier: MPL-2.0

package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Julia snippets run by the backend helpers. JuliaManager.jl provides the
// patched system image builder.
const (
	updateBackendCode = `
using Pkg
Pkg.add("JuliaManager")
`

	installBackendCode = `
pkg = Base.PkgId(
    Base.UUID("0cdbb3b1-e653-5045-b8d5-b31a04c2a6c9"),
    "JuliaManager",
)
if Base.locate_package(pkg) === nothing
    @info "JuliaManager.jl is not found. Installing..."
    using Pkg
    Pkg.add("JuliaManager")
else
    @info "JuliaManager.jl is already installed"
end
`

	compileSysimageCode = `
using JuliaManager: compile_patched_sysimage
compile_patched_sysimage(ARGS[1])
`
)

// UpdateBackend runs Pkg.add("JuliaManager") with the effective julia.
func (a *Application) UpdateBackend(ctx context.Context) error {
	julia, err := a.EffectiveJulia()
	if err != nil {
		return err
	}
	return a.updateBackend(ctx, julia)
}

// InstallBackend installs JuliaManager.jl for the effective julia unless it
// is already installed.
func (a *Application) InstallBackend(ctx context.Context) error {
	julia, err := a.EffectiveJulia()
	if err != nil {
		return err
	}
	return a.installBackend(ctx, julia)
}

// CreateDefaultSysimage compiles the default system image for the effective
// julia. Without force an existing image is kept.
func (a *Application) CreateDefaultSysimage(ctx context.Context, force bool) error {
	julia, err := a.EffectiveJulia()
	if err != nil {
		return err
	}
	if force {
		return a.createDefaultSysimage(ctx, julia)
	}
	return a.ensureDefaultSysimage(ctx, julia)
}

func (a *Application) updateBackend(ctx context.Context, julia string) error {
	argv := []string{julia, "--startup-file=no", "--color=yes", "-e", updateBackendCode}
	if err := a.eff.CheckCall(ctx, argv); err != nil {
		return subprocessError("update JuliaManager.jl", julia, err)
	}
	return nil
}

func (a *Application) installBackend(ctx context.Context, julia string) error {
	argv := []string{julia, "--startup-file=no", "--color=yes", "-e", installBackendCode}
	if err := a.eff.CheckCall(ctx, argv); err != nil {
		return subprocessError("install JuliaManager.jl", julia, err)
	}
	return nil
}

func (a *Application) compilePatchedSysimage(ctx context.Context, julia, sysimage string) error {
	argv := []string{julia, "--startup-file=no", "-e", compileSysimageCode, sysimage}
	if err := a.eff.CheckCall(ctx, argv); err != nil {
		return subprocessError("compile system image", sysimage, err)
	}
	return nil
}

func (a *Application) createDefaultSysimage(ctx context.Context, julia string) error {
	sysimage := a.DefaultSysimage(julia)
	if err := a.eff.EnsureDir(filepath.Dir(sysimage)); err != nil {
		return err
	}
	return a.compilePatchedSysimage(ctx, julia, sysimage)
}

// ensureDefaultSysimage installs the backend and compiles the default image
// if it does not exist yet.
func (a *Application) ensureDefaultSysimage(ctx context.Context, julia string) error {
	if err := a.installBackend(ctx, julia); err != nil {
		return err
	}
	sysimage := a.DefaultSysimage(julia)
	_, err := os.Stat(sysimage)
	switch {
	case err == nil:
		a.eff.Print("Default system image " + sysimage + " already exists.")
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}
	return a.createDefaultSysimage(ctx, julia)
}
