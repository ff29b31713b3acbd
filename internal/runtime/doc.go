// SPDX-License-Identifier: MPL-2.0

// Package runtime describes a resolved Julia runtime and launches it.
//
// A Runtime pairs a julia executable with the system image it should load.
// It is built once per invocation by the application layer and is never
// persisted. Launching goes through the Launcher interface: the production
// ExecLauncher replaces the current process image and only returns on
// failure, while tests substitute a recording implementation.
package runtime
