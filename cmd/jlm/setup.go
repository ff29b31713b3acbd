// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"jlm-cli/internal/app"
)

func newInitCommand(inv *invocation) *cobra.Command {
	var sysimage string

	cmd := &cobra.Command{
		Use:   "init [julia]",
		Short: "Initialize jlm in the current directory",
		Long: `Initialize jlm in the current directory.

It does:
  - create the data store (.jlm directory);
  - record julia as the project default when it is given;
  - install JuliaManager.jl and compile the default system image for
    julia unless --sysimage is given (see create-default-sysimage);
  - record --sysimage for julia when it is given (see set-sysimage).`,
		Args: cobra.MaximumNArgs(1),
		RunE: inv.runWithJulia(func(cmd *cobra.Command, _ []string, a *app.Application) error {
			return a.Init(cmd.Context(), sysimage)
		}),
	}
	cmd.Flags().StringVarP(&sysimage, "sysimage", "J", "", "system image to use instead of compiling the default one")

	return cmd
}

func newSetDefaultCommand(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "set-default [julia]",
		Short: "Set the default julia executable for this project",
		Args:  cobra.MaximumNArgs(1),
		RunE: inv.runWithJulia(func(_ *cobra.Command, _ []string, a *app.Application) error {
			return a.SetDefault()
		}),
	}
}

func newUnsetDefaultCommand(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "unset-default",
		Short: "Unset the default julia executable for this project",
		Args:  cobra.NoArgs,
		RunE: inv.run(func(_ *cobra.Command, _ []string, a *app.Application) error {
			return a.UnsetDefault()
		}),
	}
}

func newSetSysimageCommand(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "set-sysimage <sysimage>",
		Short: "Set the system image for julia",
		Long: `Set the system image used for julia in this project.

Relative paths are resolved against the working directory. Symbolic links
are kept, so relinking the image later takes effect without re-running
this command.`,
		Args: cobra.ExactArgs(1),
		RunE: inv.run(func(_ *cobra.Command, args []string, a *app.Application) error {
			return a.SetSysimage(args[0])
		}),
	}
}

func newUnsetSysimageCommand(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "unset-sysimage",
		Short: "Unset the system image for julia",
		Args:  cobra.NoArgs,
		RunE: inv.run(func(_ *cobra.Command, _ []string, a *app.Application) error {
			return a.UnsetSysimage()
		}),
	}
}
