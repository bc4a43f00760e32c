// Package eval is a tree-walking reference evaluator. It follows the same
// scoping and error rules as the compiler and wraps on overflow like the
// machine code does.
package eval

import (
	"fmt"

	"github.com/adderlang/adder/ast"
	"github.com/adderlang/adder/compiler"
	"github.com/adderlang/adder/token"
)

// Eval computes the value of e. Names not bound by an enclosing let are
// looked up in defs, which may be nil.
func Eval(e ast.Expression, defs compiler.Defs) (int64, error) {
	return eval(e, compiler.NewScope[int64](), defs)
}

func eval(e ast.Expression, env compiler.Scope[int64], defs compiler.Defs) (int64, error) {
	switch e := e.(type) {
	case *ast.Number:
		return e.Value, nil

	case *ast.Identifier:
		if v, ok := env.Get(e.Value); ok {
			return v, nil
		}
		if v, ok := defs[e.Value]; ok {
			return v, nil
		}
		return 0, token.Errorf(e.Token, token.UnboundVariable, "unbound variable identifier %s", e.Value)

	case *ast.UnaryOp:
		v, err := eval(e.Operand, env, defs)
		if err != nil {
			return 0, err
		}
		if e.Op == ast.Sub1 {
			return v - 1, nil
		}
		return v + 1, nil

	case *ast.BinaryOp:
		l, err := eval(e.Left, env, defs)
		if err != nil {
			return 0, err
		}
		r, err := eval(e.Right, env, defs)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case ast.Plus:
			return l + r, nil
		case ast.Minus:
			return l - r, nil
		case ast.Times:
			return l * r, nil
		}
		panic(fmt.Sprintf("eval: unhandled binary operator %d", e.Op))

	case *ast.Let:
		scope := env
		for _, b := range e.Bindings {
			v, err := eval(b.Value, scope, defs)
			if err != nil {
				return 0, err
			}
			scope = scope.With(b.Name.Value, v)
		}
		return eval(e.Body, scope, defs)

	case *ast.Define:
		if _, ok := defs[e.Name.Value]; ok {
			return 0, token.Errorf(e.Name.Token, token.DuplicateDefinition, "%s is already defined", e.Name.Value)
		}
		return eval(e.Value, env, defs)
	}

	panic(fmt.Sprintf("eval: unhandled expression %T", e))
}
