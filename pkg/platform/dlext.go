// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

const sysimageBaseName = "sys"

// SharedLibraryExt returns the shared library extension for the current
// platform, without the leading dot.
func SharedLibraryExt() string {
	return sharedLibraryExtFor(runtime.GOOS)
}

func sharedLibraryExtFor(goos string) string {
	switch goos {
	case Darwin:
		return "dylib"
	case Windows:
		return "dll"
	default:
		return "so"
	}
}

// SysimageName returns the file name of a default system image
// ("sys.so", "sys.dylib" or "sys.dll").
func SysimageName() string {
	return sysimageBaseName + "." + SharedLibraryExt()
}

// IsWindows reports whether the current platform is Windows.
func IsWindows() bool { return runtime.GOOS == Windows }
