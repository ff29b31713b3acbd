// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFilesystemPath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    FilesystemPath
		want    bool
		wantErr bool
	}{
		{"absolute path", FilesystemPath("/usr/bin/julia"), true, false},
		{"relative path", FilesystemPath("sys.so"), true, false},
		{"path with spaces", FilesystemPath("/path/to/my image.so"), true, false},
		{"dot path", FilesystemPath("."), true, false},
		{"empty is invalid", FilesystemPath(""), false, true},
		{"whitespace only is invalid", FilesystemPath("   "), false, true},
		{"tab only is invalid", FilesystemPath("\t"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.path.IsValid()
			if isValid != tt.want {
				t.Errorf("FilesystemPath(%q).IsValid() = %v, want %v", tt.path, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("FilesystemPath(%q).IsValid() returned no errors, want error", tt.path)
				}
				if !errors.Is(errs[0], ErrInvalidFilesystemPath) {
					t.Errorf("error should wrap ErrInvalidFilesystemPath, got: %v", errs[0])
				}
				var fpErr *InvalidFilesystemPathError
				if !errors.As(errs[0], &fpErr) {
					t.Errorf("error should be *InvalidFilesystemPathError, got: %T", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("FilesystemPath(%q).IsValid() returned unexpected errors: %v", tt.path, errs)
			}
		})
	}
}

func TestFilesystemPath_Absolute(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	abs := filepath.Join(base, "other", "sys.so")

	tests := []struct {
		name    string
		path    FilesystemPath
		base    string
		want    FilesystemPath
		wantErr bool
	}{
		{"relative joined onto base", "some/dir/sys.so", base, FilesystemPath(filepath.Join(base, "some", "dir", "sys.so")), false},
		{"absolute unchanged", FilesystemPath(abs), base, FilesystemPath(abs), false},
		{"absolute ignores relative base", FilesystemPath(abs), "relative", FilesystemPath(abs), false},
		{"relative with relative base", "sys.so", "relative", "", true},
		{"empty", "", base, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.path.Absolute(tt.base)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Absolute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Absolute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilesystemPath_AbsoluteKeepsSymlinks(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on Windows")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "target.so")
	link := filepath.Join(dir, "link.so")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	got, err := FilesystemPath("link.so").Absolute(dir)
	if err != nil {
		t.Fatalf("Absolute() error: %v", err)
	}
	if string(got) != link {
		t.Errorf("Absolute() = %q, want unresolved %q", got, link)
	}
}

func TestFilesystemPath_String(t *testing.T) {
	t.Parallel()
	p := FilesystemPath("/usr/bin/julia")
	if p.String() != "/usr/bin/julia" {
		t.Errorf("FilesystemPath.String() = %q, want %q", p.String(), "/usr/bin/julia")
	}
}
