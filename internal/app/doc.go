// SPDX-License-Identifier: MPL-2.0

// Package app implements jlm's operations on top of the stores.
//
// Application resolves which julia executable and which system image to use:
// an explicit --julia wins, then the local store's default, then a $PATH
// lookup. The system image is the local store's override for that executable
// or the home store's default image. Side effects (subprocesses, directory
// creation, process replacement) go through Effects and runtime.Launcher so
// that --dry-run and tests can observe them without performing them.
package app
