package parser

import (
	"github.com/adderlang/adder/ast"
	"github.com/adderlang/adder/sexp"
	"github.com/adderlang/adder/token"
)

type Mode int

const (
	// Batch covers the one-shot modes: compile, run, or both.
	Batch Mode = iota
	// Interactive is the only mode in which define is accepted.
	Interactive
)

// Builder validates sexp values and converts them to the AST. One Builder
// covers one top-level unit: its define counter spans the whole tree.
type Builder struct {
	mode    Mode
	defines int
}

func NewBuilder(mode Mode) *Builder {
	return &Builder{mode: mode}
}

// Build converts a complete top-level unit using a fresh Builder.
func Build(v sexp.Value, mode Mode) (ast.Expression, error) {
	return NewBuilder(mode).Build(v)
}

// Parse reads and builds a single unit from source text.
func Parse(fileName, src string, mode Mode) (ast.Expression, error) {
	v, err := Read(fileName, src)
	if err != nil {
		return nil, err
	}
	return Build(v, mode)
}

func (b *Builder) Build(v sexp.Value) (ast.Expression, error) {
	switch v := v.(type) {
	case *sexp.Int:
		return &ast.Number{Token: v.Token, Value: v.Value}, nil
	case *sexp.Symbol:
		return &ast.Identifier{Token: v.Token, Value: v.Name}, nil
	case *sexp.List:
		return b.buildList(v)
	default:
		return nil, token.Errorf(v.Tok(), token.SyntaxError, "invalid expression %s", v)
	}
}

func (b *Builder) buildList(l *sexp.List) (ast.Expression, error) {
	head, ok := l.Head()
	if !ok {
		return nil, token.Errorf(l.Token, token.SyntaxError, "invalid expression %s", l)
	}
	args := l.Items[1:]

	switch head {
	case token.ADD1, token.SUB1:
		if len(args) != 1 {
			return nil, arityError(l, head, 1)
		}
		operand, err := b.Build(args[0])
		if err != nil {
			return nil, err
		}
		op := ast.Add1
		if head == token.SUB1 {
			op = ast.Sub1
		}
		return &ast.UnaryOp{Token: l.Token, Op: op, Operand: operand}, nil

	case token.PLUS, token.MINUS, token.TIMES:
		if len(args) != 2 {
			return nil, arityError(l, head, 2)
		}
		left, err := b.Build(args[0])
		if err != nil {
			return nil, err
		}
		right, err := b.Build(args[1])
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Token: l.Token, Op: binaryKinds[head], Left: left, Right: right}, nil

	case token.LET:
		return b.buildLet(l)

	case token.DEFINE:
		return b.buildDefine(l)
	}

	return nil, token.Errorf(l.Token, token.SyntaxError, "invalid expression %s", l)
}

var binaryKinds = map[string]ast.BinaryKind{
	token.PLUS:  ast.Plus,
	token.MINUS: ast.Minus,
	token.TIMES: ast.Times,
}

func (b *Builder) buildLet(l *sexp.List) (ast.Expression, error) {
	if len(l.Items) != 3 {
		return nil, arityError(l, token.LET, 2)
	}
	list, ok := l.Items[1].(*sexp.List)
	if !ok {
		return nil, token.Errorf(l.Items[1].Tok(), token.SyntaxError, "let bindings must be a list, got %s", l.Items[1])
	}

	seen := make(map[string]struct{}, len(list.Items))
	bindings := make([]ast.Binding, 0, len(list.Items))
	for _, item := range list.Items {
		pair, ok := item.(*sexp.List)
		if !ok || len(pair.Items) != 2 {
			return nil, token.Errorf(item.Tok(), token.SyntaxError, "invalid binding %s", item)
		}
		name, err := bindingName(pair.Items[0])
		if err != nil {
			return nil, err
		}
		if _, dup := seen[name.Value]; dup {
			return nil, token.Errorf(name.Token, token.DuplicateBinding, "duplicate binding %s", name.Value)
		}
		seen[name.Value] = struct{}{}

		value, err := b.Build(pair.Items[1])
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, ast.Binding{Name: name, Value: value})
	}

	body, err := b.Build(l.Items[2])
	if err != nil {
		return nil, err
	}
	return &ast.Let{Token: l.Token, Bindings: bindings, Body: body}, nil
}

func (b *Builder) buildDefine(l *sexp.List) (ast.Expression, error) {
	if len(l.Items) != 3 {
		return nil, arityError(l, token.DEFINE, 2)
	}
	name, err := bindingName(l.Items[1])
	if err != nil {
		return nil, err
	}

	b.defines++
	if b.defines > 1 {
		return nil, token.Errorf(l.Token, token.MultipleDefinition, "only one define is allowed per expression")
	}
	if b.mode != Interactive {
		return nil, token.Errorf(l.Token, token.MultipleDefinition, "define is only allowed in interactive mode")
	}

	value, err := b.Build(l.Items[2])
	if err != nil {
		return nil, err
	}
	return &ast.Define{Token: l.Token, Name: name, Value: value}, nil
}

// bindingName checks that v can name a binding or a definition.
func bindingName(v sexp.Value) (*ast.Identifier, error) {
	sym, ok := v.(*sexp.Symbol)
	if !ok {
		return nil, token.Errorf(v.Tok(), token.SyntaxError, "expected a name, got %s", v)
	}
	if token.IsKeyword(sym.Name) {
		return nil, token.Errorf(sym.Token, token.SyntaxError, "keyword %s cannot be bound", sym.Name)
	}
	return &ast.Identifier{Token: sym.Token, Value: sym.Name}, nil
}

func arityError(l *sexp.List, head string, want int) error {
	return token.Errorf(l.Token, token.SyntaxError, "%s expects %d operand(s), got %d in %s", head, want, len(l.Items)-1, l)
}
