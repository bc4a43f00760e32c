package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adderlang/adder/ast"
	"github.com/adderlang/adder/token"
)

func mustParse(t *testing.T, input string, mode Mode) ast.Expression {
	t.Helper()
	expr, err := Parse("test.snek", input, mode)
	require.NoError(t, err, "input: %s", input)
	return expr
}

func TestBuildShapes(t *testing.T) {
	num, ok := mustParse(t, "42", Batch).(*ast.Number)
	require.True(t, ok)
	assert.Equal(t, int64(42), num.Value)

	id, ok := mustParse(t, "foo", Batch).(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "foo", id.Value)

	un, ok := mustParse(t, "(sub1 1)", Batch).(*ast.UnaryOp)
	require.True(t, ok)
	assert.Equal(t, ast.Sub1, un.Op)

	bin, ok := mustParse(t, "(- 10 3)", Batch).(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, ast.Minus, bin.Op)
	assert.Equal(t, "10", bin.Left.String())
	assert.Equal(t, "3", bin.Right.String())

	let, ok := mustParse(t, "(let ((a 5) (b (+ a 1))) (* a b))", Batch).(*ast.Let)
	require.True(t, ok)
	require.Len(t, let.Bindings, 2)
	assert.Equal(t, "a", let.Bindings[0].Name.Value)
	assert.Equal(t, "(+ a 1)", let.Bindings[1].Value.String())
	assert.Equal(t, "(* a b)", let.Body.String())

	def, ok := mustParse(t, "(define x 41)", Interactive).(*ast.Define)
	require.True(t, ok)
	assert.Equal(t, "x", def.Name.Value)
	assert.Equal(t, "(define x 41)", def.String())
}

func TestBuildEmptyLet(t *testing.T) {
	let, ok := mustParse(t, "(let () 7)", Batch).(*ast.Let)
	require.True(t, ok)
	assert.Empty(t, let.Bindings)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		mode  Mode
		kind  token.ErrorKind
	}{
		{"duplicate binding", "(let ((x 1) (x 2)) x)", Batch, token.DuplicateBinding},
		{"duplicate binding nested", "(+ 1 (let ((y 1) (z 2) (y 3)) y))", Batch, token.DuplicateBinding},
		{"define in batch", "(define x 1)", Batch, token.MultipleDefinition},
		{"two defines", "(define x (define y 1))", Interactive, token.MultipleDefinition},
		{"nested defines counted", "(+ (define a 1) (define b 2))", Interactive, token.MultipleDefinition},
		{"empty list", "()", Batch, token.SyntaxError},
		{"unknown head", "(foo 1)", Batch, token.SyntaxError},
		{"number head", "(1 2)", Batch, token.SyntaxError},
		{"add1 arity", "(add1 1 2)", Batch, token.SyntaxError},
		{"plus arity", "(+ 1)", Batch, token.SyntaxError},
		{"times arity", "(* 1 2 3)", Batch, token.SyntaxError},
		{"let arity", "(let ((x 1)))", Batch, token.SyntaxError},
		{"let bindings not list", "(let x 1)", Batch, token.SyntaxError},
		{"binding not pair", "(let ((x)) x)", Batch, token.SyntaxError},
		{"binding name number", "(let ((1 2)) 1)", Batch, token.SyntaxError},
		{"binding keyword", "(let ((add1 2)) 1)", Batch, token.SyntaxError},
		{"define name list", "(define (x) 1)", Interactive, token.SyntaxError},
		{"float", "1.5", Batch, token.SyntaxError},
		{"string", `"hi"`, Batch, token.SyntaxError},
		{"float operand", "(+ 1 2.5)", Batch, token.SyntaxError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test.snek", tt.input, tt.mode)
			require.Error(t, err)
			assert.True(t, token.IsKind(err, tt.kind), "expected %s, got %v", tt.kind, err)
		})
	}
}

func TestBuilderCounterSpansUnit(t *testing.T) {
	b := NewBuilder(Interactive)

	v, err := Read("test.snek", "(define x 1)")
	require.NoError(t, err)
	_, err = b.Build(v)
	require.NoError(t, err)

	// A second define through the same builder belongs to the same unit.
	_, err = b.Build(v)
	require.Error(t, err)
	assert.True(t, token.IsKind(err, token.MultipleDefinition))

	// A fresh builder starts over.
	_, err = Build(v, Interactive)
	assert.NoError(t, err)
}

func TestBuildErrorPosition(t *testing.T) {
	_, err := Parse("pos.snek", "(let ((x 1)\n      (x 2)) x)", Batch)
	require.Error(t, err)

	ce, ok := err.(*token.CompileError)
	require.True(t, ok)
	assert.Equal(t, 2, ce.Token.Line)
	assert.Equal(t, 8, ce.Token.Column)
	assert.Equal(t, "pos.snek", ce.Token.FileName)
}
