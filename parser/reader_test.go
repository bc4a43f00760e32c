package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adderlang/adder/sexp"
	"github.com/adderlang/adder/token"
)

func TestReadCanonical(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5", "5"},
		{"  -12 ; trailing comment", "-12"},
		{"x", "x"},
		{"(add1 (sub1 3))", "(add1 (sub1 3))"},
		{"[let ([a 1]) a]", "(let ((a 1)) a)"},
		{"(+\n  1\n  2)", "(+ 1 2)"},
		{"()", "()"},
		{`("s" 1.5)`, `("s" 1.5)`},
	}

	for _, tt := range tests {
		v, err := Read("test.snek", tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, v.String(), "input: %s", tt.input)
	}
}

func TestReadStructure(t *testing.T) {
	v, err := Read("test.snek", "(* 6 x)")
	require.NoError(t, err)

	list, ok := v.(*sexp.List)
	require.True(t, ok, "expected *sexp.List, got %T", v)
	require.Len(t, list.Items, 3)

	head, ok := list.Head()
	require.True(t, ok)
	assert.Equal(t, "*", head)

	n, ok := list.Items[1].(*sexp.Int)
	require.True(t, ok)
	assert.Equal(t, int64(6), n.Value)

	sym, ok := list.Items[2].(*sexp.Symbol)
	require.True(t, ok)
	assert.Equal(t, "x", sym.Name)
	assert.Equal(t, 6, sym.Token.Column)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"only comment", "; nothing"},
		{"unclosed", "(+ 1 2"},
		{"stray close", ")"},
		{"trailing data", "(+ 1 2) 3"},
		{"mismatched", "(+ 1 2]"},
		{"out of range", "99999999999999999999"},
		{"unterminated string", `(+ "a 1)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read("test.snek", tt.input)
			require.Error(t, err)
			assert.True(t, token.IsKind(err, token.SyntaxError), "got %v", err)
		})
	}
}
