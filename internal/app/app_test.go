// SPDX-License-Identifier: MPL-2.0

package app

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"jlm-cli/internal/config"
	"jlm-cli/internal/issue"
	"jlm-cli/internal/runtime"
	"jlm-cli/internal/store"
	"jlm-cli/internal/testutil"
	"jlm-cli/pkg/platform"
	"jlm-cli/pkg/types"
)

const (
	testJLM   = "/opt/jlm/bin/jlm"
	pathJulia = "/usr/bin/julia"
)

// testEnv is an Application wired to temporary directories, a fake $PATH
// and a recording launcher.
type testEnv struct {
	app      *Application
	project  string
	home     string
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	launcher *runtime.RecordingLauncher
}

type envOption func(*envConfig)

type envConfig struct {
	opts    Options
	path    map[string]string
	noStore bool
	output  func(ctx context.Context, argv []string) ([]byte, error)
}

func withOptions(opts Options) envOption {
	return func(c *envConfig) { c.opts = opts }
}

// onPath adds name → path to the fake $PATH.
func onPath(name, path string) envOption {
	return func(c *envConfig) { c.path[name] = path }
}

func emptyPath() envOption {
	return func(c *envConfig) { clear(c.path) }
}

func withoutStore() envOption {
	return func(c *envConfig) { c.noStore = true }
}

func withOutput(fn func(ctx context.Context, argv []string) ([]byte, error)) envOption {
	return func(c *envConfig) { c.output = fn }
}

// fakeLookPath resolves names from table and returns paths with a directory
// component unchanged.
func fakeLookPath(table map[string]string) func(string) (string, error) {
	return func(name string) (string, error) {
		if strings.ContainsRune(name, filepath.Separator) {
			return name, nil
		}
		if path, ok := table[name]; ok {
			return path, nil
		}
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
}

func newTestEnv(t *testing.T, options ...envOption) *testEnv {
	t.Helper()

	c := &envConfig{path: map[string]string{"julia": pathJulia}}
	for _, opt := range options {
		opt(c)
	}

	tmp := t.TempDir()
	env := &testEnv{
		project:  filepath.Join(tmp, "project"),
		home:     filepath.Join(tmp, "home"),
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		launcher: &runtime.RecordingLauncher{},
	}
	testutil.MustMkdirAll(t, env.project, 0o755)
	if !c.noStore {
		testutil.MustMkdirAll(t, filepath.Join(env.project, store.DirName), 0o755)
	}

	cfg := config.DefaultConfig()
	cfg.HomeDir = types.FilesystemPath(env.home)

	output := c.output
	if output == nil {
		output = func(context.Context, []string) ([]byte, error) {
			return nil, errors.New("unexpected subprocess")
		}
	}

	a, err := New(c.opts, Dependencies{
		Config:     cfg,
		Launcher:   env.launcher,
		Stdout:     env.stdout,
		Stderr:     env.stderr,
		Getwd:      func() (string, error) { return env.project, nil },
		LookPath:   fakeLookPath(c.path),
		Executable: func() (string, error) { return testJLM, nil },
		Output:     output,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	env.app = a
	return env
}

func (e *testEnv) root() string { return filepath.Join(e.project, store.DirName) }

// seed writes p into the project's store.
func (e *testEnv) seed(t *testing.T, p store.Patch) {
	t.Helper()
	if err := store.NewLocalStore(e.project).Set(p); err != nil {
		t.Fatalf("seed store: %v", err)
	}
}

func (e *testEnv) load(t *testing.T) *store.Document {
	t.Helper()
	doc, err := store.NewLocalStore(e.project).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return doc
}

func (e *testEnv) defaultSysimage(julia string) string {
	return filepath.Join(e.home, "exec", store.ExecKey(julia), platform.SysimageName())
}

func (e *testEnv) touchSysimage(t *testing.T, path string) {
	t.Helper()
	testutil.MustWriteFile(t, path, []byte("image"))
}

func assertIssue(t *testing.T, err error, want issue.Id) {
	t.Helper()
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error %v is not an ActionableError", err)
	}
	if ae.Issue != want {
		t.Errorf("issue = %d, want %d", ae.Issue, want)
	}
}

func TestNew_ExplicitJuliaResolved(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t,
		withOptions(Options{Julia: "julia-1.10"}),
		onPath("julia-1.10", "/opt/julia-1.10/bin/julia"),
	)
	if got := env.app.ExplicitJulia(); got != "/opt/julia-1.10/bin/julia" {
		t.Errorf("ExplicitJulia() = %q", got)
	}
}

func TestNew_ExplicitJuliaNotFound(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.HomeDir = types.FilesystemPath(t.TempDir())
	_, err := New(Options{Julia: "no-such-julia"}, Dependencies{
		Config:   cfg,
		Getwd:    func() (string, error) { return t.TempDir(), nil },
		LookPath: fakeLookPath(nil),
	})
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Fatalf("New() error = %v, want ErrExecutableNotFound", err)
	}
	assertIssue(t, err, issue.ExecutableNotFoundId)
}

func TestEffectiveJulia_Precedence(t *testing.T) {
	t.Parallel()

	const (
		explicit = "/opt/explicit/bin/julia"
		stored   = "/opt/stored/bin/julia"
	)

	tests := []struct {
		name    string
		options []envOption
		seed    store.Patch
		want    string
	}{
		{
			name: "path lookup",
			want: pathJulia,
		},
		{
			name: "stored default beats path",
			seed: store.Patch{Default: stored},
			want: stored,
		},
		{
			name:    "explicit beats stored default",
			options: []envOption{withOptions(Options{Julia: explicit})},
			seed:    store.Patch{Default: stored},
			want:    explicit,
		},
		{
			name:    "default executable without store",
			options: []envOption{withoutStore()},
			want:    pathJulia,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, tt.options...)
			if tt.seed.Default != "" {
				env.seed(t, tt.seed)
			}
			got, err := env.app.EffectiveJulia()
			if err != nil {
				t.Fatalf("EffectiveJulia() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EffectiveJulia() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEffectiveJulia_NothingOnPath(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, emptyPath())
	_, err := env.app.EffectiveJulia()
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Fatalf("EffectiveJulia() error = %v, want ErrExecutableNotFound", err)
	}
}

func TestEffectiveSysimage_FallbackChain(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	got, err := env.app.EffectiveSysimage()
	if err != nil {
		t.Fatalf("EffectiveSysimage() error = %v", err)
	}
	if want := env.defaultSysimage(pathJulia); got != want {
		t.Errorf("EffectiveSysimage() = %q, want home default %q", got, want)
	}

	var p store.Patch
	p.Runtime.Set(pathJulia, store.RuntimeEntry{Sysimage: "/images/custom.so"})
	env.seed(t, p)

	if got, _ := env.app.EffectiveSysimage(); got != "/images/custom.so" {
		t.Errorf("EffectiveSysimage() = %q, want local override", got)
	}
}

func TestJuliaCmd(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	got, err := env.app.JuliaCmd()
	if err != nil {
		t.Fatalf("JuliaCmd() error = %v", err)
	}
	want := []string{pathJulia, "--sysimage", env.defaultSysimage(pathJulia)}
	if strings.Join(got, "\x00") != strings.Join(want, "\x00") {
		t.Errorf("JuliaCmd() = %q, want %q", got, want)
	}
}

func TestAvailableRuntimes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	var p store.Patch
	p.Default = "/opt/b/julia"
	p.Runtime.Set("/opt/a/julia", store.RuntimeEntry{Sysimage: "/img/a.so"})
	p.Runtime.Set("/opt/c/julia", store.RuntimeEntry{Sysimage: "/img/c.so"})
	env.seed(t, p)

	def, others, err := env.app.AvailableRuntimes()
	if err != nil {
		t.Fatalf("AvailableRuntimes() error = %v", err)
	}
	if want := runtime.New("/opt/b/julia", env.defaultSysimage("/opt/b/julia")); def != want {
		t.Errorf("default = %+v, want %+v", def, want)
	}
	want := []runtime.Runtime{
		runtime.New("/opt/a/julia", "/img/a.so"),
		runtime.New("/opt/c/julia", "/img/c.so"),
	}
	if len(others) != len(want) {
		t.Fatalf("others = %+v, want %+v", others, want)
	}
	for i := range want {
		if others[i] != want[i] {
			t.Errorf("others[%d] = %+v, want %+v", i, others[i], want[i])
		}
	}
}

func TestPrecompileKey(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	got, err := env.app.PrecompileKey()
	if err != nil {
		t.Fatalf("PrecompileKey() error = %v", err)
	}
	if got != env.root() {
		t.Errorf("PrecompileKey() = %q, want %q", got, env.root())
	}

	env = newTestEnv(t, withoutStore())
	if _, err := env.app.PrecompileKey(); !errors.Is(err, store.ErrStoreNotFound) {
		t.Errorf("PrecompileKey() without store error = %v, want ErrStoreNotFound", err)
	}
}
