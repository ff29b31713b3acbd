// SPDX-License-Identifier: MPL-2.0

package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"jlm-cli/internal/atomicfile"
	"jlm-cli/internal/runtime"
	"jlm-cli/pkg/types"
)

const documentPerm = 0o644

type (
	// LocalStore is a project-local store rooted at a ".jlm" directory.
	// The root is discovered lazily on first use and cached; a failed
	// discovery is retried on the next call.
	LocalStore struct {
		start   string
		root    string
		version string
		logger  *log.Logger
	}

	// Option configures a LocalStore.
	Option func(*LocalStore)
)

// WithLogger sets the logger used for document migration warnings.
func WithLogger(logger *log.Logger) Option {
	return func(s *LocalStore) { s.logger = logger }
}

// WithVersion sets the tool version recorded in saved documents.
func WithVersion(version string) Option {
	return func(s *LocalStore) { s.version = version }
}

// NewLocalStore returns a store that discovers its root by walking upward
// from start. An empty start means the working directory at discovery time.
func NewLocalStore(start string, opts ...Option) *LocalStore {
	s := &LocalStore{start: start, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenLocalStore adopts dir as the store root when it holds a data.json
// file. Otherwise the returned store falls back to discovery from start and
// the rejection is logged as a warning.
func OpenLocalStore(dir, start string, opts ...Option) *LocalStore {
	s := NewLocalStore(start, opts...)
	if dir == "" {
		return s
	}
	if IsValidPath(dir) {
		if abs, err := filepath.Abs(dir); err == nil {
			s.root = abs
			return s
		}
	}
	s.logger.Warn("ignoring store directory without "+DataFileName, "dir", dir)
	if filepath.Base(dir) != DirName && IsValidPath(filepath.Join(dir, DirName)) {
		s.logger.Warn("did you mean " + filepath.Join(dir, DirName) + "?")
	}
	return s
}

// IsValidPath reports whether dir contains a data.json file.
func IsValidPath(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, DataFileName))
	return err == nil && info.Mode().IsRegular()
}

// Discover walks from start (inclusive) up to the filesystem root and
// returns the absolute path of the nearest ".jlm" directory.
func Discover(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, DirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &NotFoundError{Start: start}
		}
		dir = parent
	}
}

// Path returns the store root, discovering it on first use.
func (s *LocalStore) Path() (string, error) {
	if s.root != "" {
		return s.root, nil
	}
	start := s.start
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		start = wd
	}
	root, err := Discover(start)
	if err != nil {
		return "", err
	}
	s.root = root
	return root, nil
}

// SetPath pins the store root. Relative paths are rejected and leave the
// store unchanged.
func (s *LocalStore) SetPath(path string) error {
	if !filepath.IsAbs(path) {
		return &InvalidPathError{Value: path}
	}
	s.root = filepath.Clean(path)
	return nil
}

// ExecPath returns root/exec/<sha1(executable)> for the local root.
func (s *LocalStore) ExecPath(executable string) (string, error) {
	root, err := s.Path()
	if err != nil {
		return "", err
	}
	return ExecPath(root, executable), nil
}

// DataPath returns the path of data.json.
func (s *LocalStore) DataPath() (string, error) {
	root, err := s.Path()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, DataFileName), nil
}

// Load reads the document. A missing store or a missing data.json yields an
// empty document; an unreadable or invalid file is an error.
func (s *LocalStore) Load() (*Document, error) {
	path, err := s.DataPath()
	if errors.Is(err, ErrStoreNotFound) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, migrated, err := DecodeDocument(data, path)
	if err != nil {
		return nil, err
	}
	for _, exe := range migrated {
		s.logger.Warn("migrated legacy runtime entry", "executable", exe, "file", path)
	}
	return doc, nil
}

// Save writes the whole document atomically. The store root must exist.
func (s *LocalStore) Save(doc *Document) error {
	path, err := s.DataPath()
	if err != nil {
		return err
	}
	doc.Name = DocumentName
	if s.version != "" {
		doc.JLMVersion = s.version
	}
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(path, data, documentPerm)
}

// update runs a read-modify-write cycle. fn reports whether it changed doc;
// unchanged documents are not rewritten.
func (s *LocalStore) update(fn func(doc *Document) bool) error {
	if _, err := s.Path(); err != nil {
		return err
	}
	doc, err := s.Load()
	if err != nil {
		return err
	}
	if !fn(doc) {
		return nil
	}
	return s.Save(doc)
}

// Set merges p into the stored document.
func (s *LocalStore) Set(p Patch) error {
	return s.update(func(doc *Document) bool {
		doc.Apply(p)
		return true
	})
}

// SetDefault records executable as the default.
func (s *LocalStore) SetDefault(executable string) error {
	if executable == "" {
		return errors.New("default executable must not be empty")
	}
	return s.Set(Patch{Default: executable})
}

// UnsetDefault removes the default. Removing an absent default is a no-op.
func (s *LocalStore) UnsetDefault() error {
	return s.update(func(doc *Document) bool {
		if doc.Config.Default == "" {
			return false
		}
		doc.Config.Default = ""
		return true
	})
}

// SetSysimage records sysimage for executable.
func (s *LocalStore) SetSysimage(executable string, sysimage types.FilesystemPath) error {
	if executable == "" {
		return errors.New("executable must not be empty")
	}
	if ok, errs := sysimage.IsValid(); !ok {
		return errs[0]
	}
	var p Patch
	p.Runtime.Set(executable, RuntimeEntry{Sysimage: sysimage.String()})
	return s.Set(p)
}

// UnsetSysimage removes the entry for executable. Removing an absent entry
// is a no-op.
func (s *LocalStore) UnsetSysimage(executable string) error {
	return s.update(func(doc *Document) bool {
		return doc.Config.Runtime.Delete(executable)
	})
}

// DefaultExecutable returns the configured default, or ErrNoDefault.
func (s *LocalStore) DefaultExecutable() (string, error) {
	doc, err := s.Load()
	if err != nil {
		return "", err
	}
	if doc.Config.Default == "" {
		return "", ErrNoDefault
	}
	return doc.Config.Default, nil
}

// Sysimage returns the system image configured for executable, or "" when
// there is none.
func (s *LocalStore) Sysimage(executable string) (string, error) {
	doc, err := s.Load()
	if err != nil {
		return "", err
	}
	entry, _ := doc.Config.Runtime.Get(executable)
	return entry.Sysimage, nil
}

// AvailableRuntimes lists the default runtime first, then every other
// configured executable in document order. The default is the stored one,
// or whatever fallback returns. Sysimages are the configured values; "" means
// none is configured.
func (s *LocalStore) AvailableRuntimes(fallback func() (string, error)) ([]runtime.Runtime, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	def := doc.Config.Default
	if def == "" {
		if def, err = fallback(); err != nil {
			return nil, err
		}
	}
	entry, _ := doc.Config.Runtime.Get(def)
	runtimes := []runtime.Runtime{runtime.New(def, entry.Sysimage)}
	for exe, entry := range doc.Config.Runtime.All() {
		if exe == def {
			continue
		}
		runtimes = append(runtimes, runtime.New(exe, entry.Sysimage))
	}
	return runtimes, nil
}
