// SPDX-License-Identifier: MPL-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"jlm-cli/internal/runtime"
	"jlm-cli/internal/store"
)

// Info describes the current setup for `jlm info`. LocalDir is "" when no
// local store was found.
type Info struct {
	LocalDir string            `json:"local_dir" yaml:"local_dir"`
	HomeDir  string            `json:"home_dir" yaml:"home_dir"`
	Default  runtime.Runtime   `json:"default" yaml:"default"`
	Others   []runtime.Runtime `json:"others" yaml:"others"`
}

// Run replaces the current process with julia using the effective system
// image. args are appended after the --sysimage option. Without a local
// store the precompile key is removed from the environment.
func (a *Application) Run(args []string) error {
	rt, err := a.EffectiveRuntime()
	if err != nil {
		return err
	}
	if err := a.checkSysimage(rt.Sysimage); err != nil {
		return err
	}
	cmd, err := rt.Cmd()
	if err != nil {
		return err
	}
	argv := append(cmd, args...)

	env := slices.DeleteFunc(os.Environ(), func(kv string) bool {
		return strings.HasPrefix(kv, PrecompileKeyEnv+"=")
	})
	key, err := a.PrecompileKey()
	switch {
	case err == nil:
		env = append(env, PrecompileKeyEnv+"="+key)
	case errors.Is(err, store.ErrStoreNotFound):
		a.eff.Info("No .jlm directory found; " + PrecompileKeyEnv + " is not set")
	default:
		return err
	}

	a.eff.InfoRun(argv)
	if a.eff.DryRun {
		return nil
	}
	return a.launcher.Launch(argv, env)
}

// checkSysimage fails when sysimage does not exist. A dry run only warns.
func (a *Application) checkSysimage(sysimage string) error {
	_, err := os.Stat(sysimage)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return err
	case a.eff.DryRun:
		a.eff.Warn("system image does not exist", "path", sysimage)
		return nil
	default:
		return sysimageError(sysimage)
	}
}

// Init creates <cwd>/.jlm and records the explicit julia as default. With a
// sysimage it is recorded for the effective julia; otherwise the default
// system image is compiled when missing.
func (a *Application) Init(ctx context.Context, sysimage string) error {
	wd, err := a.getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	root := filepath.Join(wd, store.DirName)
	if err := a.local.SetPath(root); err != nil {
		return err
	}
	if err := a.eff.EnsureDir(root); err != nil {
		return err
	}

	julia, err := a.EffectiveJulia()
	if err != nil {
		return err
	}

	var patch store.Patch
	patch.Default = a.julia
	if sysimage != "" {
		path, err := a.normalizeSysimage(sysimage)
		if err != nil {
			return err
		}
		patch.Runtime.Set(julia, store.RuntimeEntry{Sysimage: path.String()})
	} else if err := a.ensureDefaultSysimage(ctx, julia); err != nil {
		return err
	}

	if a.eff.DryRun {
		return nil
	}
	return storeError("initialize .jlm", a.local.Set(patch))
}

// SetDefault records the effective julia as the project default.
func (a *Application) SetDefault() error {
	julia, err := a.EffectiveJulia()
	if err != nil {
		return err
	}
	a.eff.Info("Setting default julia", "executable", julia)
	if a.eff.DryRun {
		return nil
	}
	return storeError("set default julia", a.local.SetDefault(julia))
}

// UnsetDefault removes the project default.
func (a *Application) UnsetDefault() error {
	if a.eff.DryRun {
		return nil
	}
	return storeError("unset default julia", a.local.UnsetDefault())
}

// SetSysimage records sysimage for the effective julia. The executable is
// resolved now so a later change of $PATH does not retarget the setting.
func (a *Application) SetSysimage(sysimage string) error {
	path, err := a.normalizeSysimage(sysimage)
	if err != nil {
		return err
	}
	julia, err := a.EffectiveJulia()
	if err != nil {
		return err
	}
	if !a.eff.DryRun {
		if err := a.local.SetSysimage(julia, path); err != nil {
			return storeError("set system image", err)
		}
	}
	a.eff.Print(fmt.Sprintf("System image is set to:\n    %s\nfor Julia executable:\n    %s", path, julia))
	return nil
}

// UnsetSysimage removes the system image setting of the effective julia.
func (a *Application) UnsetSysimage() error {
	julia, err := a.EffectiveJulia()
	if err != nil {
		return err
	}
	if a.eff.DryRun {
		return nil
	}
	return storeError("unset system image", a.local.UnsetSysimage(julia))
}

// Info collects the store locations and the available runtimes.
func (a *Application) Info() (*Info, error) {
	info := &Info{HomeDir: a.home.Path()}
	root, err := a.local.Path()
	switch {
	case err == nil:
		info.LocalDir = root
	case !errors.Is(err, store.ErrStoreNotFound):
		return nil, err
	}

	def, others, err := a.AvailableRuntimes()
	if err != nil {
		return nil, err
	}
	info.Default = def
	info.Others = others
	return info, nil
}

// LocateSysimage returns the system image that would be used.
func (a *Application) LocateSysimage() (string, error) {
	return a.EffectiveSysimage()
}

// LocateBase returns the directory in which `jlm init` was run.
func (a *Application) LocateBase() (string, error) {
	root, err := a.LocateLocalDir()
	if err != nil {
		return "", err
	}
	return filepath.Dir(root), nil
}

// LocateLocalDir returns the local store root.
func (a *Application) LocateLocalDir() (string, error) {
	root, err := a.local.Path()
	if err != nil {
		return "", storeError("locate .jlm directory", err)
	}
	return root, nil
}

// LocateHomeDir returns the home store root.
func (a *Application) LocateHomeDir() string {
	return a.home.Path()
}
