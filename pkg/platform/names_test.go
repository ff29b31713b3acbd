// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"testing"
)

func TestIsWindowsReservedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"CON", true},
		{"con", true},
		{"nul.txt", true},
		{"LPT9", true},
		{"COM0", false},
		{"console", false},
		{"jlm", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsWindowsReservedName(tt.name); got != tt.want {
				t.Errorf("IsWindowsReservedName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestValidateDirName(t *testing.T) {
	t.Parallel()

	valid := []string{"jlm", "julia-1.10", "my kernel"}
	for _, name := range valid {
		if err := ValidateDirName(name); err != nil {
			t.Errorf("ValidateDirName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "  ", ".", "..", "a/b", `a\b`, "aux", "PRN.json"}
	for _, name := range invalid {
		err := ValidateDirName(name)
		if !errors.Is(err, ErrInvalidDirName) {
			t.Errorf("ValidateDirName(%q) = %v, want ErrInvalidDirName", name, err)
		}
		var dirErr *InvalidDirNameError
		if errors.As(err, &dirErr) && dirErr.Name != name {
			t.Errorf("InvalidDirNameError.Name = %q, want %q", dirErr.Name, name)
		}
	}
}
