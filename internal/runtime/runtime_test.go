// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"slices"
	"testing"
)

func TestRuntime_Cmd(t *testing.T) {
	t.Parallel()

	r := New("/usr/bin/julia", "/proj/custom.so")
	got, err := r.Cmd()
	if err != nil {
		t.Fatalf("Cmd() error: %v", err)
	}
	want := []string{"/usr/bin/julia", "--sysimage", "/proj/custom.so"}
	if !slices.Equal(got, want) {
		t.Errorf("Cmd() = %v, want %v", got, want)
	}
}

func TestRuntime_CmdWithoutSysimage(t *testing.T) {
	t.Parallel()

	_, err := New("/usr/bin/julia", "").Cmd()
	if !errors.Is(err, ErrNoSysimage) {
		t.Errorf("Cmd() error = %v, want ErrNoSysimage", err)
	}
}

func TestRuntime_WithSysimage(t *testing.T) {
	t.Parallel()

	r := New("/usr/bin/julia", "")
	resolved := r.WithSysimage("/home/u/.julia/jlm/exec/abc/sys.so")

	if r.HasSysimage() {
		t.Error("WithSysimage must not modify the receiver")
	}
	if !resolved.HasSysimage() || resolved.Executable != r.Executable {
		t.Errorf("WithSysimage() = %+v", resolved)
	}
}

func TestRuntime_Summary(t *testing.T) {
	t.Parallel()

	got := New("/usr/bin/julia", "/tmp/sys.so").Summary()
	want := "Executable  : /usr/bin/julia\nSystem image: /tmp/sys.so"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestRecordingLauncher(t *testing.T) {
	t.Parallel()

	l := &RecordingLauncher{}
	if _, ok := l.Last(); ok {
		t.Fatal("Last() on a fresh recorder should report no launch")
	}

	argv := []string{"/usr/bin/julia", "--sysimage", "/tmp/sys.so", "-e", "1"}
	env := []string{"A=1", "JLM_PRECOMPILE_KEY=/old", "JLM_PRECOMPILE_KEY=/proj/.jlm"}
	if err := l.Launch(argv, env); err != nil {
		t.Fatalf("Launch() error: %v", err)
	}
	argv[0] = "mutated"

	last, ok := l.Last()
	if !ok {
		t.Fatal("Last() should report the recorded launch")
	}
	if last.Argv[0] != "/usr/bin/julia" {
		t.Errorf("recorded argv must be a copy, got %v", last.Argv)
	}
	if v, ok := last.Getenv("JLM_PRECOMPILE_KEY"); !ok || v != "/proj/.jlm" {
		t.Errorf("Getenv() = %q, %v; want the last assignment", v, ok)
	}
	if _, ok := last.Getenv("MISSING"); ok {
		t.Error("Getenv(MISSING) should report absence")
	}
}

func TestRecordingLauncher_Err(t *testing.T) {
	t.Parallel()

	want := errors.New("boom")
	l := &RecordingLauncher{Err: want}
	if err := l.Launch([]string{"julia"}, nil); !errors.Is(err, want) {
		t.Errorf("Launch() error = %v, want %v", err, want)
	}
}

func TestExecLauncher_MissingExecutable(t *testing.T) {
	t.Parallel()

	err := ExecLauncher{}.Launch([]string{"/nonexistent/jlm-test/julia"}, nil)
	if !errors.Is(err, ErrLaunchFailed) {
		t.Fatalf("Launch() error = %v, want ErrLaunchFailed", err)
	}
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("error should be *LaunchError, got %T", err)
	}
}

func TestExecLauncher_EmptyArgv(t *testing.T) {
	t.Parallel()

	if err := (ExecLauncher{}).Launch(nil, nil); !errors.Is(err, ErrLaunchFailed) {
		t.Errorf("Launch(nil) error = %v, want ErrLaunchFailed", err)
	}
}
