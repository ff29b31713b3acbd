// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jlm-cli/internal/app"
)

// newLocateCommand creates `jlm locate`. Paths are printed without a
// trailing newline so they can be used in $(...) directly.
func newLocateCommand(inv *invocation) *cobra.Command {
	locateCmd := &cobra.Command{
		Use:   "locate",
		Short: "Print paths used by jlm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	locateCmd.AddCommand(
		&cobra.Command{
			Use:   "sysimage [julia]",
			Short: "Print the system image that would be used for julia",
			Args:  cobra.MaximumNArgs(1),
			RunE: inv.runWithJulia(func(cmd *cobra.Command, _ []string, a *app.Application) error {
				path, err := a.LocateSysimage()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), path)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "base",
			Short: "Print the directory in which 'jlm init' was run",
			Args:  cobra.NoArgs,
			RunE: inv.run(func(cmd *cobra.Command, _ []string, a *app.Application) error {
				path, err := a.LocateBase()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), path)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "dir",
			Short: "Print the directory in which jlm project data is stored",
			Args:  cobra.NoArgs,
			RunE: inv.run(func(cmd *cobra.Command, _ []string, a *app.Application) error {
				path, err := a.LocateLocalDir()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), path)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "home-dir",
			Short: "Print the directory in which jlm global data is stored",
			Args:  cobra.NoArgs,
			RunE: inv.run(func(cmd *cobra.Command, _ []string, a *app.Application) error {
				fmt.Fprint(cmd.OutOrStdout(), a.LocateHomeDir())
				return nil
			}),
		},
	)

	return locateCmd
}
