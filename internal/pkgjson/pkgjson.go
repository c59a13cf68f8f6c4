// Package pkgjson reads and edits package.json while keeping its key order.
package pkgjson

import (
	"errors"
	"io/fs"
	"regexp"
	"strconv"
	"strings"

	"github.com/YakDriver/lintmigrate/filesystem"
	"github.com/YakDriver/lintmigrate/internal"
	"github.com/YakDriver/lintmigrate/internal/confmerge"
)

// FileName is the manifest every migrated project must have.
const FileName = "package.json"

// Manifest is a parsed package.json.
type Manifest struct {
	obj *confmerge.Object
}

// Parse decodes a manifest.
func Parse(data []byte) (*Manifest, error) {
	obj, err := confmerge.ParseObject(data)
	if err != nil {
		return nil, err
	}
	return &Manifest{obj: obj}, nil
}

// Load reads package.json from fsys. A missing manifest is a fatal
// precondition error; malformed JSON is a parse error.
func Load(fsys filesystem.FileSystem) (*Manifest, error) {
	data, err := fsys.ReadFile(FileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, internal.WithHint(
				internal.NewError(internal.KindPrecondition, FileName, err),
				"run lintmigrate from the project root",
			)
		}
		return nil, internal.NewError(internal.KindIO, FileName, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, internal.NewError(internal.KindParse, FileName, err)
	}
	return m, nil
}

// Save writes the manifest back with two-space indentation and a trailing
// newline.
func (m *Manifest) Save(fsys filesystem.FileSystem) error {
	data, err := m.Bytes()
	if err != nil {
		return internal.NewError(internal.KindIO, FileName, err)
	}
	if err := fsys.WriteFile(FileName, data, 0o644); err != nil {
		return internal.NewError(internal.KindIO, FileName, err)
	}
	return nil
}

// Bytes encodes the manifest.
func (m *Manifest) Bytes() ([]byte, error) {
	return confmerge.Marshal(m.obj)
}

// Object exposes the underlying ordered object.
func (m *Manifest) Object() *confmerge.Object {
	return m.obj
}

// Has reports whether the top-level field is present.
func (m *Manifest) Has(field string) bool {
	return confmerge.Has(m.obj, field)
}

// Field returns a top-level object field such as eslintConfig or lint-staged.
func (m *Manifest) Field(field string) (*confmerge.Object, bool) {
	return confmerge.GetObject(m.obj, field)
}

// SetField replaces a top-level field.
func (m *Manifest) SetField(field string, v any) {
	m.obj.Set(field, v)
}

// IsModule reports whether "type" is "module".
func (m *Manifest) IsModule() bool {
	t, _ := confmerge.GetString(m.obj, "type")
	return t == "module"
}

// Dependency returns the version range of name from dependencies or
// devDependencies, devDependencies winning.
func (m *Manifest) Dependency(name string) (string, bool) {
	var version string
	found := false
	for _, section := range []string{"dependencies", "devDependencies"} {
		deps, ok := confmerge.GetObject(m.obj, section)
		if !ok {
			continue
		}
		if v, ok := confmerge.GetString(deps, name); ok {
			version, found = v, true
		}
	}
	return version, found
}

// HasDependency reports whether name is a dependency or devDependency.
func (m *Manifest) HasDependency(name string) bool {
	_, ok := m.Dependency(name)
	return ok
}

// Dependencies filters names down to the ones the manifest depends on.
func (m *Manifest) Dependencies(names ...string) []string {
	var out []string
	for _, n := range names {
		if m.HasDependency(n) {
			out = append(out, n)
		}
	}
	return out
}

var majorRe = regexp.MustCompile(`^[\^~]?(\d+)`)

// MajorVersion returns the major version of a dependency range such as
// "^9.15.0", or 0 when it cannot be read.
func (m *Manifest) MajorVersion(name string) int {
	v, ok := m.Dependency(name)
	if !ok {
		return 0
	}
	match := majorRe.FindStringSubmatch(strings.TrimSpace(v))
	if match == nil {
		return 0
	}
	n, _ := strconv.Atoi(match[1])
	return n
}

// Script returns scripts[name].
func (m *Manifest) Script(name string) (string, bool) {
	scripts, ok := confmerge.GetObject(m.obj, "scripts")
	if !ok {
		return "", false
	}
	return confmerge.GetString(scripts, name)
}

// SetScript sets scripts[name], creating the scripts object when needed. It
// reports whether the value changed.
func (m *Manifest) SetScript(name, command string) bool {
	if cur, ok := m.Script(name); ok && cur == command {
		return false
	}
	confmerge.EnsureObject(m.obj, "scripts").Set(name, command)
	return true
}

// PrefixLintScript makes the lint script run oxlint first. An existing
// script that already mentions oxlint is left alone; a missing one becomes
// fallback. It returns the resulting script and whether it changed.
func (m *Manifest) PrefixLintScript(prefix, fallback string) (string, bool) {
	cur, ok := m.Script("lint")
	switch {
	case !ok || strings.TrimSpace(cur) == "":
		m.SetScript("lint", fallback)
		return fallback, true
	case strings.Contains(cur, "oxlint"):
		return cur, false
	default:
		next := prefix + " && " + cur
		m.SetScript("lint", next)
		return next, true
	}
}

// LintStaged returns the lint-staged object, creating it when absent or
// malformed.
func (m *Manifest) LintStaged() *confmerge.Object {
	return confmerge.EnsureObject(m.obj, "lint-staged")
}
