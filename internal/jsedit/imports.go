package jsedit

import (
	"path/filepath"
	"regexp"
	"strings"
)

// ModuleKind is the module system a config file is evaluated with.
type ModuleKind int

const (
	ModuleESM ModuleKind = iota
	ModuleCommonJS
)

func (k ModuleKind) String() string {
	if k == ModuleCommonJS {
		return "commonjs"
	}
	return "esm"
}

// ModuleKindFor decides the module system of a config file. .mjs and .cjs
// are explicit; for anything else a "type": "module" manifest or an
// export default statement means ESM.
func ModuleKindFor(filename, content string, typeModule bool) ModuleKind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mjs", ".mts":
		return ModuleESM
	case ".cjs", ".cts":
		return ModuleCommonJS
	}
	if typeModule || exportDefaultRe.MatchString(content) {
		return ModuleESM
	}
	return ModuleCommonJS
}

var (
	esmImportRe     = regexp.MustCompile(`(?m)^import\s+(?:[\w*{}\s,$]+?\s+from\s+)?['"]([^'"\n]+)['"][ \t]*;?`)
	cjsRequireRe    = regexp.MustCompile(`(?m)^(?:const|let|var)\s+[\w${}\s,:]+?=\s*require\(\s*['"]([^'"\n]+)['"]\s*\)(?:\.[\w$]+)*[ \t]*;?`)
	exportDefaultRe = regexp.MustCompile(`(?m)^\s*export\s+default\b`)
)

// ImportSpec is a module to bring into scope under Name.
type ImportSpec struct {
	Module string // module specifier, e.g. "eslint-plugin-oxlint"
	Name   string // local binding
}

// Statement renders the import for the given module system.
func (s ImportSpec) Statement(kind ModuleKind) string {
	if kind == ModuleCommonJS {
		return "const " + s.Name + " = require('" + s.Module + "');"
	}
	return "import " + s.Name + " from '" + s.Module + "';"
}

// ImportManager finds and adds top-level import and require statements.
type ImportManager struct {
	content string
}

// NewImportManager creates an import manager for the given source text.
func NewImportManager(content string) *ImportManager {
	return &ImportManager{content: content}
}

// HasImport reports whether module is already imported or required.
func (im *ImportManager) HasImport(module string) bool {
	for _, re := range []*regexp.Regexp{esmImportRe, cjsRequireRe} {
		for _, m := range re.FindAllStringSubmatch(im.content, -1) {
			if m[1] == module {
				return true
			}
		}
	}
	return false
}

// lastImportEnd returns the offset just past the last top-level import or
// require statement, or -1 when there is none.
func (im *ImportManager) lastImportEnd() int {
	end := -1
	for _, re := range []*regexp.Regexp{esmImportRe, cjsRequireRe} {
		for _, loc := range re.FindAllStringIndex(im.content, -1) {
			if loc[1] > end {
				end = loc[1]
			}
		}
	}
	return end
}

// InsertionEdit returns the edit adding stmt: on its own line after the last
// import, or at the top of the file followed by a blank line. ok is false
// when stmt is already present.
func (im *ImportManager) InsertionEdit(stmt string) (Edit, bool) {
	stmt = strings.TrimSpace(stmt)
	if stmt == "" || strings.Contains(im.content, stmt) {
		return Edit{}, false
	}

	if end := im.lastImportEnd(); end >= 0 {
		at := lineEnd(im.content, end)
		return Edit{Start: at, End: at, Text: "\n" + stmt}, true
	}

	at := preambleEnd(im.content)
	if at == 0 {
		return Edit{Start: 0, End: 0, Text: stmt + "\n\n"}, true
	}
	return Edit{Start: at, End: at, Text: "\n" + stmt + "\n"}, true
}

// AddImport returns the content with stmt inserted; it is unchanged when stmt
// is already present.
func (im *ImportManager) AddImport(stmt string) string {
	e, ok := im.InsertionEdit(stmt)
	if !ok {
		return im.content
	}
	out, err := ApplyEdits(im.content, []Edit{e})
	if err != nil {
		return im.content
	}
	return out
}

var preambleRe = regexp.MustCompile(`\A(?:#![^\n]*\n)?(?:[ \t]*['"]use strict['"];?[ \t]*\n)?`)

// preambleEnd skips a shebang line and a "use strict" directive, which must
// stay first.
func preambleEnd(src string) int {
	return len(preambleRe.FindString(src))
}
