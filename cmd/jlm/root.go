// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"jlm-cli/internal/app"
	"jlm-cli/internal/config"
	"jlm-cli/internal/issue"
	"jlm-cli/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// App wires the CLI to its dependencies. It is the composition root for
	// the CLI layer; command handlers build an app.Application through it.
	App struct {
		Config config.Provider
		deps   app.Dependencies
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults.
	Dependencies struct {
		Config config.Provider
		// App is handed to app.New. Its Config field is replaced with the
		// loaded user configuration; nil Stdout/Stderr follow the command's
		// output streams.
		App app.Dependencies
	}

	// invocation holds the global flag values of one command line.
	invocation struct {
		app *App

		dryRun     bool
		verbose    bool
		julia      string
		jlmDir     string
		configPath string

		cfg *config.Config
	}

	// handler is the body of a subcommand.
	handler func(cmd *cobra.Command, args []string, a *app.Application) error
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	return &App{Config: deps.Config, deps: deps.App}
}

// NewRootCommand builds the jlm command tree.
func NewRootCommand(a *App) *cobra.Command {
	return newInvocation(a).rootCommand()
}

func newInvocation(a *App) *invocation {
	return &invocation{app: a}
}

func (inv *invocation) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jlm",
		Short: "Manage Julia executables and their system images",
		Long: TitleStyle.Render("jlm") + SubtitleStyle.Render(" - Julia runtime and system image manager") + `

jlm records, per project, which julia executable to use and which
system image to load with it. Settings live in a .jlm directory found by
walking up from the working directory; compiled default images live
under ~/.julia/jlm.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'jlm init' in the project root
  2. Start julia with 'jlm run'

` + SubtitleStyle.Render("Examples:") + `
  jlm init                            Create .jlm and compile the default image
  jlm --julia julia-1.10 set-default  Pin julia-1.10 for this project
  jlm run -- script.jl                Run a script with the configured image
  jlm info                            Show the current setup`,
		TraverseChildren: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&inv.dryRun, "dry-run", false, "print what would be done without changing anything")
	flags.BoolVarP(&inv.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&inv.julia, "julia", "", "julia executable to use (default: project default, then $PATH)")
	flags.StringVar(&inv.jlmDir, "jlm-dir", "", "use this .jlm directory instead of searching for one")
	flags.StringVar(&inv.configPath, "config", "", "config file (default is $HOME/.config/jlm/config.cue)")
	// Traverse resolves flags before the subcommand name against the local
	// set only, so boolean globals must be registered there too.
	rootCmd.Flags().AddFlagSet(flags)

	rootCmd.AddCommand(
		newRunCommand(inv),
		newInitCommand(inv),
		newSetDefaultCommand(inv),
		newUnsetDefaultCommand(inv),
		newSetSysimageCommand(inv),
		newUnsetSysimageCommand(inv),
		newCreateDefaultSysimageCommand(inv),
		newInstallBackendCommand(inv),
		newUpdateBackendCommand(inv),
		newInfoCommand(inv),
		newLocateCommand(inv),
		newIJuliaKernelCommand(inv),
		newInstallIJuliaKernelCommand(inv),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the jlm command line and exits with its status.
// This is called by main.main().
func Execute() {
	inv := newInvocation(NewApp(Dependencies{}))

	if err := fang.Execute(
		context.Background(),
		inv.rootCommand(),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(inv.handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitCodeFailure))
	}
}

// handleError renders application errors returned by command handlers.
// Anything else, such as a usage error, gets fang's default rendering.
func (inv *invocation) handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Err == nil {
		fang.DefaultErrorHandler(w, styles, err)
		return
	}
	renderError(w, exitErr.Err, inv.isVerbose(), inv.colorScheme())
}

// run wraps h into a cobra RunE that builds the application from the
// global flags. Failures exit with ExitCodeFailure.
func (inv *invocation) run(h handler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true

		a, err := inv.application(cmd)
		if err == nil {
			err = h(cmd, args, a)
		}
		if err != nil {
			return &ExitError{Code: types.ExitCodeFailure, Err: err}
		}
		return nil
	}
}

// runWithJulia is run for commands taking an optional [julia] positional
// argument, which is equivalent to --julia.
func (inv *invocation) runWithJulia(h handler) func(*cobra.Command, []string) error {
	wrapped := inv.run(h)
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			if inv.julia != "" && inv.julia != args[0] {
				cmd.SilenceUsage = true
				return fmt.Errorf("julia given twice: --julia %s and argument %s", inv.julia, args[0])
			}
			inv.julia = args[0]
		}
		return wrapped(cmd, args)
	}
}

// application loads the user configuration and builds an Application from
// the global flags. A broken config file is reported and defaults are used.
func (inv *invocation) application(cmd *cobra.Command) (*app.Application, error) {
	cfg, err := inv.app.Config.Load(cmd.Context(), config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(inv.configPath),
	})
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, inv.verbose))
		cfg = config.DefaultConfig()
	}
	inv.cfg = cfg

	deps := inv.app.deps
	deps.Config = cfg
	if deps.Stdout == nil {
		deps.Stdout = cmd.OutOrStdout()
	}
	if deps.Stderr == nil {
		deps.Stderr = cmd.ErrOrStderr()
	}

	return app.New(app.Options{
		DryRun:  inv.dryRun,
		Verbose: inv.isVerbose(),
		Julia:   inv.julia,
		JLMDir:  inv.jlmDir,
		Version: Version,
	}, deps)
}

// isVerbose reports --verbose, falling back to ui.verbose from the config.
func (inv *invocation) isVerbose() bool {
	return inv.verbose || (inv.cfg != nil && inv.cfg.UI.Verbose)
}

func (inv *invocation) colorScheme() config.ColorScheme {
	if inv.cfg == nil || inv.cfg.UI.ColorScheme == "" {
		return config.ColorSchemeAuto
	}
	return inv.cfg.UI.ColorScheme
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderError writes err to w. In verbose mode the linked issue catalog
// entry is rendered below it.
func renderError(w io.Writer, err error, verbose bool, scheme config.ColorScheme) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	if !verbose {
		return
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	if entry := ae.CatalogIssue(); entry != nil {
		if rendered, renderErr := entry.Render(string(scheme)); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
}
