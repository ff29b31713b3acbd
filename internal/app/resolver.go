// SPDX-License-Identifier: MPL-2.0

package app

import (
	"errors"
	"path/filepath"

	"jlm-cli/internal/runtime"
	"jlm-cli/internal/store"
	"jlm-cli/pkg/platform"
)

// ExplicitJulia returns the resolved --julia executable, or "".
func (a *Application) ExplicitJulia() string { return a.julia }

// EffectiveJulia returns the executable to use: --julia, else the local
// store's default, else default_executable looked up on $PATH.
func (a *Application) EffectiveJulia() (string, error) {
	if a.julia != "" {
		return a.julia, nil
	}

	def, err := a.local.DefaultExecutable()
	switch {
	case err == nil:
		if filepath.IsAbs(def) {
			return def, nil
		}
		return a.resolveExecutable(def)
	case !errors.Is(err, store.ErrNoDefault):
		return "", storeError("read project default", err)
	}

	return a.pathJulia()
}

// pathJulia looks up default_executable on $PATH.
func (a *Application) pathJulia() (string, error) {
	return a.resolveExecutable(a.cfg.DefaultExecutable.String())
}

// DefaultSysimage returns the home store's image path for julia:
// <home>/exec/<sha1(julia)>/sys.<dlext>.
func (a *Application) DefaultSysimage(julia string) string {
	return filepath.Join(a.home.ExecPath(julia), platform.SysimageName())
}

// SysimageFor returns the local override for julia, falling back to
// DefaultSysimage. A project setting always beats the user-global default.
func (a *Application) SysimageFor(julia string) (string, error) {
	sysimage, err := a.local.Sysimage(julia)
	if err != nil {
		return "", storeError("read system image", err)
	}
	if sysimage != "" {
		return sysimage, nil
	}
	return a.DefaultSysimage(julia), nil
}

// EffectiveSysimage returns SysimageFor(EffectiveJulia()).
func (a *Application) EffectiveSysimage() (string, error) {
	julia, err := a.EffectiveJulia()
	if err != nil {
		return "", err
	}
	return a.SysimageFor(julia)
}

// EffectiveRuntime resolves both the executable and its system image.
func (a *Application) EffectiveRuntime() (runtime.Runtime, error) {
	julia, err := a.EffectiveJulia()
	if err != nil {
		return runtime.Runtime{}, err
	}
	sysimage, err := a.SysimageFor(julia)
	if err != nil {
		return runtime.Runtime{}, err
	}
	return runtime.New(julia, sysimage), nil
}

// JuliaCmd returns the command line prefix [julia, --sysimage, image].
func (a *Application) JuliaCmd() ([]string, error) {
	rt, err := a.EffectiveRuntime()
	if err != nil {
		return nil, err
	}
	return rt.Cmd()
}

// PrecompileKey returns the key partitioning julia's precompilation cache:
// the local store root.
func (a *Application) PrecompileKey() (string, error) {
	return a.local.Path()
}

// AvailableRuntimes returns the default runtime (the local store's default
// or the $PATH julia) and the other configured runtimes, each with its
// system image resolved.
func (a *Application) AvailableRuntimes() (runtime.Runtime, []runtime.Runtime, error) {
	runtimes, err := a.local.AvailableRuntimes(a.pathJulia)
	if err != nil {
		return runtime.Runtime{}, nil, storeError("list runtimes", err)
	}
	for i, rt := range runtimes {
		if rt.HasSysimage() {
			continue
		}
		if !filepath.IsAbs(rt.Executable) {
			if runtimes[i].Executable, err = a.resolveExecutable(rt.Executable); err != nil {
				return runtime.Runtime{}, nil, err
			}
		}
		runtimes[i].Sysimage = a.DefaultSysimage(runtimes[i].Executable)
	}
	return runtimes[0], runtimes[1:], nil
}
