// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes runtime.GOOS comparisons and the shared-library extension
// Julia uses for system images on each platform (see Libdl.dlext), and
// checks that names are usable as directory names everywhere.
package platform
