package jsedit

import "strings"

var closers = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
}

// walk visits every byte of src[from:to] that is not inside a comment.
// literal is true for bytes belonging to a string or template literal,
// quotes included. visit returns false to stop.
func walk(src string, from, to int, visit func(i int, literal bool) bool) {
	if to > len(src) {
		to = len(src)
	}
	for i := from; i < to; i++ {
		c := src[i]
		switch {
		case c == '"' || c == '\'' || c == '`':
			start := i
			i++
			for i < to && src[i] != c {
				if src[i] == '\\' {
					i++
				}
				i++
			}
			for j := start; j <= i && j < to; j++ {
				if !visit(j, true) {
					return
				}
			}
		case c == '/' && i+1 < to && src[i+1] == '/':
			nl := strings.IndexByte(src[i:to], '\n')
			if nl < 0 {
				return
			}
			i += nl - 1
		case c == '/' && i+1 < to && src[i+1] == '*':
			end := strings.Index(src[i+2:to], "*/")
			if end < 0 {
				return
			}
			i += 2 + end + 1
		default:
			if !visit(i, false) {
				return
			}
		}
	}
}

// MatchDelimiter returns the offset of the delimiter closing the one at
// src[open], or -1. Delimiters inside strings, template literals and
// comments are not counted.
func MatchDelimiter(src string, open int) int {
	if open < 0 || open >= len(src) {
		return -1
	}
	opener := src[open]
	closer, ok := closers[opener]
	if !ok {
		return -1
	}

	depth := 0
	result := -1
	walk(src, open+1, len(src), func(i int, literal bool) bool {
		if literal {
			return true
		}
		switch src[i] {
		case opener:
			depth++
		case closer:
			if depth == 0 {
				result = i
				return false
			}
			depth--
		}
		return true
	})
	return result
}

// lastSignificant returns the offset of the last byte in src[from:to] that
// is neither whitespace nor part of a comment, or -1.
func lastSignificant(src string, from, to int) int {
	last := -1
	walk(src, from, to, func(i int, literal bool) bool {
		if literal || !isSpace(src[i]) {
			last = i
		}
		return true
	})
	return last
}

// expressionEnd returns the offset just past the expression starting at
// from: the first ';' or line break outside brackets, strings and comments.
// Trailing whitespace is excluded.
func expressionEnd(src string, from int) int {
	depth := 0
	end := len(src)
	walk(src, from, len(src), func(i int, literal bool) bool {
		if literal {
			return true
		}
		switch c := src[i]; c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ';', '\n':
			if depth <= 0 {
				end = i
				return false
			}
		}
		return true
	})
	if last := lastSignificant(src, from, end); last >= 0 {
		return last + 1
	}
	return from
}

// lineIndent returns the leading whitespace of the line containing src[i].
func lineIndent(src string, i int) string {
	start := strings.LastIndexByte(src[:i], '\n') + 1
	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return src[start:end]
}

// lineEnd returns the offset of the line break ending the line that contains
// src[i], or len(src).
func lineEnd(src string, i int) int {
	if nl := strings.IndexByte(src[i:], '\n'); nl >= 0 {
		return i + nl
	}
	return len(src)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
