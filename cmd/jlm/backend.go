// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"jlm-cli/internal/app"
)

func newCreateDefaultSysimageCommand(inv *invocation) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "create-default-sysimage",
		Short: "Compile the default system image for julia",
		Long: `Compile the patched default system image for julia into the jlm
home directory. An existing image is kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: inv.run(func(cmd *cobra.Command, _ []string, a *app.Application) error {
			return a.CreateDefaultSysimage(cmd.Context(), force)
		}),
	}
	cmd.Flags().BoolVar(&force, "force", false, "recompile even if the image exists")

	return cmd
}

func newInstallBackendCommand(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "install-backend",
		Short: "Install JuliaManager.jl for julia",
		Args:  cobra.NoArgs,
		RunE: inv.run(func(cmd *cobra.Command, _ []string, a *app.Application) error {
			return a.InstallBackend(cmd.Context())
		}),
	}
}

func newUpdateBackendCommand(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "update-backend",
		Short: "Update JuliaManager.jl for julia",
		Args:  cobra.NoArgs,
		RunE: inv.run(func(cmd *cobra.Command, _ []string, a *app.Application) error {
			return a.UpdateBackend(cmd.Context())
		}),
	}
}
