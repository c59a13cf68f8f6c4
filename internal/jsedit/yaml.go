package jsedit

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	yamlExtendsBlockRe  = regexp.MustCompile(`(?m)^extends:[ \t]*(?:#[^\n]*)?\n((?:[ \t]*(?:-[^\n]*|#[^\n]*)?\n)*[ \t]*-[^\n]*)`)
	yamlExtendsItemRe   = regexp.MustCompile(`(?m)^([ \t]*)-[ \t]*(['"]?)`)
	yamlExtendsFlowRe   = regexp.MustCompile(`(?m)^extends:[ \t]*\[`)
	yamlExtendsScalarRe = regexp.MustCompile(`(?m)^extends:[ \t]*(['"]?)([^'"\n#\[]+?)['"]?[ \t]*(?:#[^\n]*)?$`)
	yamlExtendsKeyRe    = regexp.MustCompile(`(?m)^extends:`)
)

// EnsureYAMLExtends adds member to the top-level extends list of a YAML
// config by text substitution, so comments and layout survive. This is a
// heuristic rather than a YAML rewrite: the result is always BestEffort, and
// it is only Modified when re-reading the output finds member in extends.
func EnsureYAMLExtends(src, member string) Result {
	res := ensureYAMLExtends(src, member)
	res.BestEffort = true
	return res
}

func ensureYAMLExtends(src, member string) Result {
	if yamlExtends(src, member) {
		return unchanged(src, ShapeUnrecognized, "already extends %q", member)
	}

	var before map[string]any
	parsed := yaml.Unmarshal([]byte(src), &before) == nil

	shape, edits, reason := yamlExtendsEdits(src, member)
	if reason != "" {
		return unchanged(src, shape, "%s", reason)
	}

	out, err := ApplyEdits(src, edits)
	if err != nil {
		return unchanged(src, shape, "%v", err)
	}
	if parsed && !yamlExtends(out, member) {
		return unchanged(src, shape, "could not verify extends after the edit")
	}
	return Result{Content: out, Modified: true, Shape: shape, Edits: edits}
}

func yamlExtendsEdits(src, member string) (Shape, []Edit, string) {
	if m := yamlExtendsBlockRe.FindStringSubmatchIndex(src); m != nil {
		block := src[m[2]:m[3]]
		items := yamlExtendsItemRe.FindAllStringSubmatch(block, -1)
		last := items[len(items)-1]
		indent, q := last[1], last[2]
		if q == "" {
			q = `"`
		}
		at := m[3]
		return ShapeArrayLiteral, []Edit{{Start: at, End: at, Text: "\n" + indent + "- " + q + member + q}}, ""
	}

	if loc := yamlExtendsFlowRe.FindStringIndex(src); loc != nil {
		open := loc[1] - 1
		closeIdx := MatchDelimiter(src, open)
		if closeIdx < 0 {
			return ShapeArrayLiteral, nil, "no closing bracket for extends"
		}
		q := quoteStyle(src[open:closeIdx])
		return ShapeArrayLiteral, appendElement(src, open, closeIdx, q+member+q), ""
	}

	if m := yamlExtendsScalarRe.FindStringSubmatchIndex(src); m != nil {
		value := strings.TrimSpace(src[m[4]:m[5]])
		q := src[m[2]:m[3]]
		if q == "" {
			q = `"`
		}
		text := "extends:\n  - " + q + value + q + "\n  - " + q + member + q
		return ShapeStringLiteral, []Edit{{Start: m[0], End: m[1], Text: text}}, ""
	}

	if yamlExtendsKeyRe.MatchString(src) {
		return ShapeUnrecognized, nil, "extends has a layout this heuristic does not handle"
	}

	sep := ""
	if src != "" && !strings.HasSuffix(src, "\n") {
		sep = "\n"
	}
	return ShapeNoExport, []Edit{{Start: len(src), End: len(src), Text: sep + "extends:\n  - \"" + member + "\"\n"}}, ""
}

// yamlExtends reports whether the YAML document's top-level extends holds member.
func yamlExtends(src, member string) bool {
	var doc struct {
		Extends yaml.Node `yaml:"extends"`
	}
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		return false
	}
	switch doc.Extends.Kind {
	case yaml.ScalarNode:
		return doc.Extends.Value == member
	case yaml.SequenceNode:
		for _, n := range doc.Extends.Content {
			if n.Kind == yaml.ScalarNode && n.Value == member {
				return true
			}
		}
	}
	return false
}
