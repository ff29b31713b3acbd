// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"jlm-cli/internal/app"
)

func newIJuliaKernelCommand(inv *invocation) *cobra.Command {
	var juliaOptions []string

	cmd := &cobra.Command{
		Use:   "ijulia-kernel <connection-file>",
		Short: "Start an IJulia kernel with the configured system image",
		Long: `Start an IJulia kernel with the configured system image.

This is the command recorded in kernel.json by install-ijulia-kernel;
Jupyter runs it with the path of the kernel connection file.`,
		Args: cobra.ExactArgs(1),
		RunE: inv.run(func(_ *cobra.Command, args []string, a *app.Application) error {
			return a.IJuliaKernel(juliaOptions, args[0])
		}),
	}
	cmd.Flags().StringArrayVar(&juliaOptions, "julia-option", nil, "option passed to julia (repeatable)")

	return cmd
}

func newInstallIJuliaKernelCommand(inv *invocation) *cobra.Command {
	var (
		opts            app.KernelOptions
		dontStoreJLMDir bool
	)

	cmd := &cobra.Command{
		Use:   "install-ijulia-kernel",
		Short: "Install a Jupyter kernel that runs IJulia through jlm",
		Long: `Install a Jupyter kernel that runs IJulia through 'jlm ijulia-kernel'.

The kernel is written to <jupyter data dir>/kernels/<name>/kernel.json
unless --output-dir is given. An existing kernel directory is never
overwritten. The current --julia and, unless --dont-store-jlm-dir is
given, the current .jlm directory are recorded in the kernel command.`,
		Example: `  jlm install-ijulia-kernel
  jlm --julia julia-1.10 install-ijulia-kernel --name julia-1.10 --julia-option=--threads=auto`,
		Args: cobra.NoArgs,
		RunE: inv.run(func(cmd *cobra.Command, _ []string, a *app.Application) error {
			if dontStoreJLMDir {
				opts.StoreJLMDir = false
			}
			return a.InstallIJuliaKernel(cmd.Context(), opts)
		}),
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Name, "name", app.DefaultKernelName, "kernel directory name")
	flags.StringVar(&opts.OutputDir, "output-dir", "", "kernel directory (default: <jupyter data dir>/kernels/<name>)")
	flags.StringVar(&opts.Jupyter, "jupyter", "", "jupyter command (default: from config, else jupyter)")
	flags.StringVar(&opts.DisplayName, "display-name", "", "name shown by Jupyter (default: kernel directory name)")
	flags.BoolVar(&opts.StoreJLMDir, "store-jlm-dir", true, "record the current .jlm directory in the kernel command")
	flags.BoolVar(&dontStoreJLMDir, "dont-store-jlm-dir", false, "do not record the .jlm directory")
	flags.StringArrayVar(&opts.JuliaOptions, "julia-option", nil, "option passed to julia (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("store-jlm-dir", "dont-store-jlm-dir")

	return cmd
}
