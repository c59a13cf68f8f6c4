package jsedit

import (
	"context"
	"regexp"
	"strings"
)

var (
	extendsArrayRe  = regexp.MustCompile(`\bextends\s*:\s*\[`)
	extendsStringRe = regexp.MustCompile(`\bextends\s*:\s*(['"])([^'"\n]*)['"]`)
	extendsKeyRe    = regexp.MustCompile(`\bextends\s*:`)
	quoteRe         = regexp.MustCompile(`['"]`)
)

// EnsureExtends adds member to the extends list of a legacy JavaScript config
// (.eslintrc.js and friends). An array gets the member appended in the quote
// style it already uses; a single string becomes a two-element array; a
// missing extends key is added to the exported object. Any other form is
// reported unchanged so the caller can print manual instructions.
func EnsureExtends(ctx context.Context, src, member string) Result {
	if strings.Contains(src, member) {
		return unchanged(src, ShapeUnrecognized, "already extends %q", member)
	}

	parsed := ValidSyntax(ctx, src)

	shape, edits, reason := extendsEdits(src, member)
	if reason != "" {
		return unchanged(src, shape, "%s", reason)
	}

	out, err := ApplyEdits(src, edits)
	if err != nil {
		return unchanged(src, shape, "%v", err)
	}
	if parsed && !ValidSyntax(ctx, out) {
		return unchanged(src, shape, "patched extends would not parse")
	}
	return Result{Content: out, Modified: true, Shape: shape, Edits: edits}
}

func extendsEdits(src, member string) (Shape, []Edit, string) {
	if loc := extendsArrayRe.FindStringIndex(src); loc != nil {
		open := loc[1] - 1
		closeIdx := MatchDelimiter(src, open)
		if closeIdx < 0 {
			return ShapeArrayLiteral, nil, "no closing bracket for extends"
		}
		q := quoteStyle(src[open:closeIdx])
		return ShapeArrayLiteral, appendElement(src, open, closeIdx, q+member+q), ""
	}

	if m := extendsStringRe.FindStringSubmatchIndex(src); m != nil {
		q := src[m[2]:m[3]]
		valueStart := m[2]
		valueEnd := m[1]
		text := "[" + src[valueStart:valueEnd] + ", " + q + member + q + "]"
		return ShapeStringLiteral, []Edit{{Start: valueStart, End: valueEnd, Text: text}}, ""
	}

	if extendsKeyRe.MatchString(src) {
		return ShapeUnrecognized, nil, "extends is neither an array nor a string literal"
	}

	if loc := exportObjectRe.FindStringIndex(src); loc != nil {
		open := loc[1] - 1
		closeIdx := MatchDelimiter(src, open)
		if closeIdx < 0 {
			return ShapeObjectLiteral, nil, "no closing brace for the exported object"
		}
		prop := `extends: ["` + member + `"],`
		if strings.Contains(src[open:closeIdx], "\n") {
			indent := "  "
			if first := firstSignificant(src, open+1, closeIdx); first >= 0 {
				indent = lineIndent(src, first)
			}
			return ShapeObjectLiteral, []Edit{{Start: open + 1, End: open + 1, Text: "\n" + indent + prop}}, ""
		}
		return ShapeObjectLiteral, []Edit{{Start: open + 1, End: open + 1, Text: " " + prop}}, ""
	}

	return ShapeUnrecognized, nil, "no exported config object"
}

// quoteStyle returns the quote character the first string literal in s uses,
// defaulting to a double quote.
func quoteStyle(s string) string {
	if q := quoteRe.FindString(s); q != "" {
		return q
	}
	return `"`
}

func firstSignificant(src string, from, to int) int {
	first := -1
	walk(src, from, to, func(i int, literal bool) bool {
		if literal || !isSpace(src[i]) {
			first = i
			return false
		}
		return true
	})
	return first
}
