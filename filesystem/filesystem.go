// Package filesystem provides the FileSystem interface and its implementations for lintmigrate.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FileSystem defines the project-relative file operations the migration steps
// use. Writes are whole-file replacements.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Remove(name string) error
	MkdirAll(name string) error
	Chmod(name string, mode fs.FileMode) error
	Exists(name string) bool
	DirExists(name string) bool
	Root() string
}

// DirFS implements FileSystem rooted at a directory on disk.
type DirFS struct {
	root string
}

func NewDirFS(root string) *DirFS {
	return &DirFS{root: root}
}

func (d *DirFS) Root() string { return d.root }

func (d *DirFS) path(name string) string {
	return filepath.Join(d.root, filepath.FromSlash(name))
}

func (d *DirFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(d.path(name))
}

// WriteFile replaces name atomically: the data is written to a temporary file
// in the same directory and renamed over the target. An existing file keeps
// its mode.
func (d *DirFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	target := d.path(name)
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("setting mode on %s: %w", name, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

func (d *DirFS) Remove(name string) error {
	return os.Remove(d.path(name))
}

func (d *DirFS) MkdirAll(name string) error {
	return os.MkdirAll(d.path(name), 0o755)
}

func (d *DirFS) Chmod(name string, mode fs.FileMode) error {
	return os.Chmod(d.path(name), mode)
}

// Exists checks if a regular file exists.
func (d *DirFS) Exists(name string) bool {
	info, err := os.Stat(d.path(name))
	return err == nil && !info.IsDir()
}

func (d *DirFS) DirExists(name string) bool {
	info, err := os.Stat(d.path(name))
	return err == nil && info.IsDir()
}

// Op is the kind of change a DryRunFS recorded.
type Op string

const (
	OpWrite  Op = "write"
	OpRemove Op = "remove"
	OpChmod  Op = "chmod"
	OpMkdir  Op = "mkdir"
)

// Change is a single recorded mutation.
type Change struct {
	Path   string
	Op     Op
	Before []byte
	After  []byte
}

// DryRunFS reads through to an underlying FileSystem but keeps every
// mutation in memory, so later steps observe earlier planned changes while
// the disk stays untouched.
type DryRunFS struct {
	base    FileSystem
	files   map[string][]byte
	removed map[string]bool
	dirs    map[string]bool
	changes []Change
}

func NewDryRunFS(base FileSystem) *DryRunFS {
	return &DryRunFS{
		base:    base,
		files:   map[string][]byte{},
		removed: map[string]bool{},
		dirs:    map[string]bool{},
	}
}

func (d *DryRunFS) Root() string { return d.base.Root() }

func (d *DryRunFS) ReadFile(name string) ([]byte, error) {
	if d.removed[name] {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	if data, ok := d.files[name]; ok {
		return append([]byte(nil), data...), nil
	}
	return d.base.ReadFile(name)
}

func (d *DryRunFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	before, err := d.ReadFile(name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	d.files[name] = append([]byte(nil), data...)
	delete(d.removed, name)
	d.changes = append(d.changes, Change{Path: name, Op: OpWrite, Before: before, After: d.files[name]})
	return nil
}

func (d *DryRunFS) Remove(name string) error {
	if !d.Exists(name) {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	before, _ := d.ReadFile(name)
	delete(d.files, name)
	d.removed[name] = true
	d.changes = append(d.changes, Change{Path: name, Op: OpRemove, Before: before})
	return nil
}

func (d *DryRunFS) MkdirAll(name string) error {
	if d.DirExists(name) {
		return nil
	}
	d.dirs[name] = true
	d.changes = append(d.changes, Change{Path: name, Op: OpMkdir})
	return nil
}

func (d *DryRunFS) Chmod(name string, mode fs.FileMode) error {
	d.changes = append(d.changes, Change{Path: name, Op: OpChmod})
	return nil
}

func (d *DryRunFS) Exists(name string) bool {
	if d.removed[name] {
		return false
	}
	if _, ok := d.files[name]; ok {
		return true
	}
	return d.base.Exists(name)
}

func (d *DryRunFS) DirExists(name string) bool {
	return d.dirs[name] || d.base.DirExists(name)
}

// Changes returns the recorded mutations in the order they happened.
func (d *DryRunFS) Changes() []Change {
	return d.changes
}

// Touched returns the sorted, de-duplicated paths of written or removed files.
func (d *DryRunFS) Touched() []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range d.changes {
		if c.Op != OpWrite && c.Op != OpRemove {
			continue
		}
		if !seen[c.Path] {
			seen[c.Path] = true
			out = append(out, c.Path)
		}
	}
	sort.Strings(out)
	return out
}
