package jsedit

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Edit replaces src[Start:End] with Text. Offsets refer to the unpatched
// source; an insertion has Start == End.
type Edit struct {
	Start int
	End   int
	Text  string
}

// ApplyEdits splices edits into src. Edits must not overlap; insertions at the
// same offset keep their relative order.
func ApplyEdits(src string, edits []Edit) (string, error) {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		return cmp.Compare(a.Start, b.Start)
	})

	var b strings.Builder
	b.Grow(len(src))
	pos := 0
	for _, e := range sorted {
		if e.Start < pos || e.End < e.Start || e.End > len(src) {
			return "", fmt.Errorf("edit [%d,%d) overlaps or is out of range", e.Start, e.End)
		}
		b.WriteString(src[pos:e.Start])
		b.WriteString(e.Text)
		pos = e.End
	}
	b.WriteString(src[pos:])
	return b.String(), nil
}
