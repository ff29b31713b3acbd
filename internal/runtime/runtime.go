// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"strings"
)

// SysimageFlag is the julia command-line option selecting the system image.
const SysimageFlag = "--sysimage"

// ErrNoSysimage is returned when a command line is requested for a Runtime
// whose system image has not been resolved.
var ErrNoSysimage = errors.New("runtime has no system image")

// Runtime pairs a julia executable with an optional system image.
// An empty Sysimage means "none resolved yet".
type Runtime struct {
	Executable string `json:"executable" yaml:"executable"`
	Sysimage   string `json:"sysimage,omitempty" yaml:"sysimage,omitempty"`
}

// New creates a Runtime.
func New(executable, sysimage string) Runtime {
	return Runtime{Executable: executable, Sysimage: sysimage}
}

// HasSysimage reports whether a system image is set.
func (r Runtime) HasSysimage() bool { return r.Sysimage != "" }

// WithSysimage returns a copy of r using sysimage.
func (r Runtime) WithSysimage(sysimage string) Runtime {
	r.Sysimage = sysimage
	return r
}

// Cmd returns the command line prefix that starts this runtime:
// the executable followed by "--sysimage <path>".
func (r Runtime) Cmd() ([]string, error) {
	if !r.HasSysimage() {
		return nil, fmt.Errorf("%s: %w", r.Executable, ErrNoSysimage)
	}
	return []string{r.Executable, SysimageFlag, r.Sysimage}, nil
}

// Summary returns a two-line human readable description.
func (r Runtime) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Executable  : %s\n", r.Executable)
	fmt.Fprintf(&b, "System image: %s", r.Sysimage)
	return b.String()
}
