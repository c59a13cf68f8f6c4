package jsedit

import "testing"

func TestMatchDelimiter(t *testing.T) {
	tests := []struct {
		name string
		src  string
		open int
		want int // -1 for no match, -2 for the last byte
	}{
		{
			name: "paren inside string literal",
			src:  `factory({ note: "a (b" })`,
			open: 7,
			want: -2,
		},
		{
			name: "nested calls and quoted paren",
			src:  `f(a, g(b), ')')`,
			open: 1,
			want: -2,
		},
		{
			name: "parens inside comments",
			src:  "f(/* ) */ a // )\n)",
			open: 1,
			want: -2,
		},
		{
			name: "template literal",
			src:  "f(`${x})`)",
			open: 1,
			want: -2,
		},
		{
			name: "escaped quote",
			src:  `f('it\'s (')`,
			open: 1,
			want: -2,
		},
		{
			name: "escaped backslash before closing quote",
			src:  `f("a\\", ")")`,
			open: 1,
			want: -2,
		},
		{
			name: "nested arrays and bracket in string",
			src:  `[1, [2, 3], "]"]`,
			open: 0,
			want: -2,
		},
		{
			name: "inner call closes first",
			src:  `f(g(1)) + 2`,
			open: 3,
			want: 5,
		},
		{
			name: "unbalanced",
			src:  `f(a, (b)`,
			open: 1,
			want: -1,
		},
		{
			name: "not a delimiter",
			src:  `abc`,
			open: 1,
			want: -1,
		},
		{
			name: "out of range",
			src:  `()`,
			open: 5,
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.want
			if want == -2 {
				want = len(tt.src) - 1
			}
			if got := MatchDelimiter(tt.src, tt.open); got != want {
				t.Errorf("MatchDelimiter(%q, %d) = %d, want %d", tt.src, tt.open, got, want)
			}
		})
	}
}

func TestLastSignificant(t *testing.T) {
	src := "({a:1}, // trailing\n  /* block */ )"
	got := lastSignificant(src, 1, len(src)-1)
	if src[got] != ',' {
		t.Errorf("lastSignificant = %d (%q), want the comma", got, src[got])
	}
	if got := lastSignificant("(  )", 1, 3); got != -1 {
		t.Errorf("lastSignificant on blank = %d, want -1", got)
	}
}

func TestExpressionEnd(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{src: "config;\n", want: "config"},
		{src: "merge(a, {\n  b: 1;\n}) // done\n", want: "merge(a, {\n  b: 1;\n})"},
		{src: "base  \nfoo()", want: "base"},
		{src: "'a;b'", want: "'a;b'"},
	}
	for _, tt := range tests {
		if got := tt.src[:expressionEnd(tt.src, 0)]; got != tt.want {
			t.Errorf("expressionEnd(%q) selects %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestApplyEdits_RejectsOverlap(t *testing.T) {
	_, err := ApplyEdits("abcdef", []Edit{{Start: 1, End: 4, Text: "x"}, {Start: 2, End: 2, Text: "y"}})
	if err == nil {
		t.Fatal("expected an error for overlapping edits")
	}

	got, err := ApplyEdits("abc", []Edit{{Start: 3, End: 3, Text: "!"}, {Start: 0, End: 1, Text: "A"}, {Start: 3, End: 3, Text: "?"}})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Abc!?" {
		t.Errorf("ApplyEdits = %q, want %q", got, "Abc!?")
	}
}
