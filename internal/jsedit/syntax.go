package jsedit

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// SyntaxError is a location tree-sitter could not parse.
type SyntaxError struct {
	Line    int
	Column  int
	Missing string // node type tree-sitter expected, when known
}

// syntaxTree is a parsed JavaScript document.
type syntaxTree struct {
	tree *sitter.Tree
	root *sitter.Node
}

func parseJS(ctx context.Context, src string) (*syntaxTree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, []byte(src))
	if err != nil {
		return nil, err
	}
	return &syntaxTree{tree: tree, root: tree.RootNode()}, nil
}

func (t *syntaxTree) Close() {
	t.tree.Close()
}

func (t *syntaxTree) valid() bool {
	return !t.root.HasError()
}

// closingOf returns the offset of the last byte of the node of the given type
// that starts at offset start, or -1.
func (t *syntaxTree) closingOf(start int, nodeType string) int {
	n := findNode(t.root, uint32(start), nodeType, 0)
	if n == nil {
		return -1
	}
	return int(n.EndByte()) - 1
}

func findNode(node *sitter.Node, start uint32, nodeType string, depth int) *sitter.Node {
	if node == nil || depth > 1000 {
		return nil
	}
	if node.StartByte() == start && node.Type() == nodeType {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || child.StartByte() > start || child.EndByte() <= start {
			continue
		}
		if found := findNode(child, start, nodeType, depth+1); found != nil {
			return found
		}
	}
	return nil
}

// ValidSyntax reports whether src parses as JavaScript without errors.
// A parse that cannot run at all (cancelled context) reports false.
func ValidSyntax(ctx context.Context, src string) bool {
	t, err := parseJS(ctx, src)
	if err != nil {
		return false
	}
	defer t.Close()
	return t.valid()
}

// SyntaxErrors lists the ERROR and MISSING nodes of src, at most limit.
func SyntaxErrors(ctx context.Context, src string, limit int) ([]SyntaxError, error) {
	t, err := parseJS(ctx, src)
	if err != nil {
		return nil, err
	}
	defer t.Close()

	var errs []SyntaxError
	collectErrors(t.root, &errs, limit, 0)
	return errs, nil
}

func collectErrors(node *sitter.Node, errs *[]SyntaxError, limit, depth int) {
	if node == nil || depth > 1000 || len(*errs) >= limit {
		return
	}
	if node.IsError() || node.IsMissing() {
		p := node.StartPoint()
		e := SyntaxError{Line: int(p.Row) + 1, Column: int(p.Column)}
		if node.IsMissing() {
			e.Missing = node.Type()
		}
		*errs = append(*errs, e)
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectErrors(node.Child(i), errs, limit, depth+1)
	}
}
