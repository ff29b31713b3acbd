// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for jlm.
//
// The root command carries the global flags (--julia, --jlm-dir, --dry-run,
// --verbose, --config). Every subcommand builds an app.Application from them
// and delegates to it; this package only parses arguments and renders output.
package cmd
