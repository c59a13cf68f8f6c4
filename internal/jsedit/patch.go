// Package jsedit splices imports and config entries into JavaScript config
// modules without rewriting the rest of the file.
package jsedit

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Shape is the syntactic form of the exported configuration.
type Shape int

const (
	ShapeUnrecognized Shape = iota
	ShapeCallExpression
	ShapeArrayLiteral
	ShapeObjectLiteral
	ShapeExpression
	ShapeStringLiteral
	ShapeNoExport
)

func (s Shape) String() string {
	switch s {
	case ShapeCallExpression:
		return "call expression"
	case ShapeArrayLiteral:
		return "array literal"
	case ShapeObjectLiteral:
		return "object literal"
	case ShapeExpression:
		return "expression"
	case ShapeStringLiteral:
		return "string literal"
	case ShapeNoExport:
		return "no export"
	default:
		return "unrecognized"
	}
}

// DefaultFactories are config factory calls whose arguments are config entries.
var DefaultFactories = []string{"OBEslintCfg", "tseslint.config", "defineConfig"}

// Fragment is what a patch adds to a config module.
type Fragment struct {
	Marker string     // present in the source means the fragment was already applied
	Import ImportSpec // optional; rendered for the patcher's module system
	Entry  string     // config element, e.g. "...oxlint.configs['flat/recommended']"
}

// Result describes the outcome of a patch. When Modified is false, Content is
// the input unchanged and Reason says why.
type Result struct {
	Content    string
	Modified   bool
	Shape      Shape
	Reason     string
	Edits      []Edit
	BestEffort bool
}

func unchanged(src string, shape Shape, format string, args ...any) Result {
	return Result{Content: src, Shape: shape, Reason: fmt.Sprintf(format, args...)}
}

// Options configures a Patcher.
type Options struct {
	Factories []string
	Module    ModuleKind
}

// Patcher adds fragments to flat-config modules.
type Patcher struct {
	factories []string
	module    ModuleKind
}

// NewPatcher creates a patcher. An empty factory list means DefaultFactories.
func NewPatcher(opts Options) *Patcher {
	factories := opts.Factories
	if len(factories) == 0 {
		factories = DefaultFactories
	}
	return &Patcher{factories: factories, module: opts.Module}
}

const exportPrefix = `(?m)^[ \t]*(?:export\s+default|module\.exports\s*=)\s*`

var (
	exportArrayRe   = regexp.MustCompile(exportPrefix + `\[`)
	exportObjectRe  = regexp.MustCompile(exportPrefix + `\{`)
	exportAnyRe     = regexp.MustCompile(exportPrefix)
	exportKeywordRe = regexp.MustCompile(`(?m)^[ \t]*(?:export\b|module\.exports\b|exports\.)`)
)

// Apply adds frag to src. The fragment's import goes after the existing
// imports and its entry is appended to the exported config, whichever shape
// that has. Only the computed splice points change; every other byte of src
// is kept.
func (p *Patcher) Apply(ctx context.Context, src string, frag Fragment) Result {
	if frag.Marker != "" && strings.Contains(src, frag.Marker) {
		return unchanged(src, p.Detect(src), "already contains %q", frag.Marker)
	}

	var stmt string
	if frag.Import.Module != "" {
		stmt = frag.Import.Statement(p.module)
		if NewImportManager(src).HasImport(frag.Import.Module) {
			return unchanged(src, p.Detect(src), "already imports %q", frag.Import.Module)
		}
	}

	tree, err := parseJS(ctx, src)
	parsed := err == nil && tree.valid()
	if tree != nil {
		defer tree.Close()
	}
	if !parsed {
		tree = nil
	}

	shape, edits, reason := p.entryEdits(src, tree, strings.TrimSpace(frag.Entry))
	if reason != "" {
		return unchanged(src, shape, "%s", reason)
	}

	if stmt != "" {
		if e, ok := NewImportManager(src).InsertionEdit(stmt); ok {
			edits = append([]Edit{e}, edits...)
		}
	}

	out, err := ApplyEdits(src, edits)
	if err != nil {
		return unchanged(src, shape, "%v", err)
	}
	if parsed && !ValidSyntax(ctx, out) {
		return unchanged(src, shape, "patched %s would not parse", shape)
	}

	return Result{Content: out, Modified: true, Shape: shape, Edits: edits}
}

// Detect reports the export shape of src without changing it.
func (p *Patcher) Detect(src string) Shape {
	if _, _, ok := p.findFactoryCall(src); ok {
		return ShapeCallExpression
	}
	switch {
	case exportArrayRe.MatchString(src):
		return ShapeArrayLiteral
	case exportObjectRe.MatchString(src):
		return ShapeObjectLiteral
	case exportAnyRe.MatchString(src):
		return ShapeExpression
	case exportKeywordRe.MatchString(src):
		return ShapeUnrecognized
	default:
		return ShapeNoExport
	}
}

func (p *Patcher) entryEdits(src string, tree *syntaxTree, entry string) (Shape, []Edit, string) {
	if entry == "" {
		return ShapeUnrecognized, nil, "empty config entry"
	}

	if name, open, ok := p.findFactoryCall(src); ok {
		closeIdx := MatchDelimiter(src, open)
		if closeIdx < 0 {
			return ShapeCallExpression, nil, fmt.Sprintf("no closing parenthesis for %s(", name)
		}
		return ShapeCallExpression, appendElement(src, open, closeIdx, entry), ""
	}

	if loc := exportArrayRe.FindStringIndex(src); loc != nil {
		open := loc[1] - 1
		closeIdx := -1
		if tree != nil {
			closeIdx = tree.closingOf(open, "array")
		}
		if closeIdx < 0 {
			closeIdx = MatchDelimiter(src, open)
		}
		if closeIdx < 0 {
			return ShapeArrayLiteral, nil, "no closing bracket for the exported array"
		}
		return ShapeArrayLiteral, appendElement(src, open, closeIdx, entry), ""
	}

	if loc := exportObjectRe.FindStringIndex(src); loc != nil {
		open := loc[1] - 1
		closeIdx := -1
		if tree != nil {
			closeIdx = tree.closingOf(open, "object")
		}
		if closeIdx < 0 {
			closeIdx = MatchDelimiter(src, open)
		}
		if closeIdx < 0 {
			return ShapeObjectLiteral, nil, "no closing brace for the exported object"
		}
		return ShapeObjectLiteral, wrapInArray(open, closeIdx+1, entry), ""
	}

	if loc := exportAnyRe.FindStringIndex(src); loc != nil {
		start := loc[1]
		end := expressionEnd(src, start)
		if end <= start {
			return ShapeExpression, nil, "empty export expression"
		}
		return ShapeExpression, wrapInArray(start, end, entry), ""
	}

	if exportKeywordRe.MatchString(src) {
		return ShapeUnrecognized, nil, "unsupported export form"
	}

	return ShapeNoExport, []Edit{p.appendExport(src, entry)}, ""
}

// findFactoryCall locates a configured factory call, preferring one that is
// exported directly. It returns the offset of its opening parenthesis.
func (p *Patcher) findFactoryCall(src string) (string, int, bool) {
	for _, anchored := range []bool{true, false} {
		for _, name := range p.factories {
			re := factoryCallRe(name, anchored)
			for _, loc := range re.FindAllStringIndex(src, -1) {
				if isCode(src, loc[1]-1) {
					return name, loc[1] - 1, true
				}
			}
		}
	}
	return "", -1, false
}

// isCode reports whether src[at] is outside every comment and literal.
func isCode(src string, at int) bool {
	code := false
	walk(src, 0, at+1, func(i int, literal bool) bool {
		if i == at {
			code = !literal
			return false
		}
		return true
	})
	return code
}

func factoryCallRe(name string, anchored bool) *regexp.Regexp {
	quoted := regexp.QuoteMeta(name)
	if anchored {
		return regexp.MustCompile(exportPrefix + quoted + `\s*\(`)
	}
	return regexp.MustCompile(`(?:^|[^\w$.])` + quoted + `\s*\(`)
}

// appendElement adds entry as the last element of the list delimited by
// src[open] and src[closeIdx]: call arguments or array elements. Exactly one
// comma separates it from the previous element.
func appendElement(src string, open, closeIdx int, entry string) []Edit {
	last := lastSignificant(src, open+1, closeIdx)
	if last < 0 {
		return []Edit{{Start: open + 1, End: open + 1, Text: entry}}
	}

	hasComma := src[last] == ','
	at := last + 1

	if !strings.Contains(src[open:closeIdx], "\n") {
		sep := ", "
		if hasComma {
			sep = " "
		}
		return []Edit{{Start: at, End: at, Text: sep + entry}}
	}

	indent := lineIndent(src, last)
	if indent == "" {
		indent = "  "
	}
	if hasComma {
		return []Edit{{Start: at, End: at, Text: "\n" + indent + entry + ","}}
	}
	return []Edit{{Start: at, End: at, Text: ",\n" + indent + entry}}
}

// wrapInArray turns src[start:end] into the first element of a new array
// whose second element is entry.
func wrapInArray(start, end int, entry string) []Edit {
	return []Edit{
		{Start: start, End: start, Text: "[\n  "},
		{Start: end, End: end, Text: ",\n  " + entry + "\n]"},
	}
}

func (p *Patcher) appendExport(src, entry string) Edit {
	head := "export default ["
	if p.module == ModuleCommonJS {
		head = "module.exports = ["
	}

	var sep string
	switch {
	case src == "":
	case strings.HasSuffix(src, "\n\n"):
	case strings.HasSuffix(src, "\n"):
		sep = "\n"
	default:
		sep = "\n\n"
	}
	return Edit{Start: len(src), End: len(src), Text: sep + head + "\n  " + entry + ",\n];\n"}
}
