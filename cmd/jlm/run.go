// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"jlm-cli/internal/app"
)

func newRunCommand(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "run [julia arguments...]",
		Short: "Run julia with the configured system image",
		Long: `Run the julia executable (--julia, the project default, or julia on
$PATH) with the system image configured for it.

All arguments after 'run' are passed to julia unchanged; global jlm flags
must come before 'run'. JLM_PRECOMPILE_KEY is set to the .jlm directory so
each project keeps its own precompilation cache.`,
		Example: `  jlm run
  jlm run -- script.jl
  jlm --julia julia-1.10 run -e 'println(VERSION)'`,
		DisableFlagParsing: true,
		RunE: inv.run(func(_ *cobra.Command, args []string, a *app.Application) error {
			if len(args) > 0 && args[0] == "--" {
				args = args[1:]
			}
			return a.Run(args)
		}),
	}
}
