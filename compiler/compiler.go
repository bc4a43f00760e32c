package compiler

import (
	"fmt"

	"github.com/adderlang/adder/ast"
	"github.com/adderlang/adder/token"
)

// Generator lowers expressions onto a Target using one accumulator and stack
// slots for temporaries and let bindings.
//
// Stack index si is the next free slot. A binary operation spills its left
// operand to slot si and evaluates its right operand from si+1, so the right
// side never clobbers the spilled value. Let bindings take consecutive slots
// from si upwards and stay live for the body.
type Generator struct {
	Target Target
	// Defs resolves names that are not lexically bound. It is only read.
	Defs Defs

	maxSlot int
}

func NewGenerator(t Target, defs Defs) *Generator {
	return &Generator{Target: t, Defs: defs}
}

// MaxSlot returns the highest stack index written so far.
func (g *Generator) MaxSlot() int {
	return g.maxSlot
}

// Compile emits code leaving the value of e in the accumulator.
func (g *Generator) Compile(e ast.Expression, si int, env Env) error {
	switch e := e.(type) {
	case *ast.Number:
		g.Target.MovImm(e.Value)
		return nil

	case *ast.Identifier:
		if off, ok := env.Get(e.Value); ok {
			g.Target.Load(off)
			return nil
		}
		if v, ok := g.Defs[e.Value]; ok {
			g.Target.MovImm(v)
			return nil
		}
		return token.Errorf(e.Token, token.UnboundVariable, "unbound variable identifier %s", e.Value)

	case *ast.UnaryOp:
		if err := g.Compile(e.Operand, si, env); err != nil {
			return err
		}
		if e.Op == ast.Sub1 {
			g.Target.AddImm(-1)
		} else {
			g.Target.AddImm(1)
		}
		return nil

	case *ast.BinaryOp:
		return g.compileBinary(e, si, env)

	case *ast.Let:
		scope := env
		curr := si
		for _, b := range e.Bindings {
			if err := g.Compile(b.Value, curr, scope); err != nil {
				return err
			}
			off := g.store(curr)
			scope = scope.With(b.Name.Value, off)
			curr++
		}
		return g.Compile(e.Body, curr, scope)

	case *ast.Define:
		if _, ok := g.Defs[e.Name.Value]; ok {
			return token.Errorf(e.Name.Token, token.DuplicateDefinition, "%s is already defined", e.Name.Value)
		}
		return g.Compile(e.Value, si, env)

	default:
		panic(fmt.Sprintf("compiler: unhandled expression %T", e))
	}
}

func (g *Generator) compileBinary(e *ast.BinaryOp, si int, env Env) error {
	if err := g.Compile(e.Left, si, env); err != nil {
		return err
	}
	off := g.store(si)
	if err := g.Compile(e.Right, si+1, env); err != nil {
		return err
	}

	switch e.Op {
	case ast.Plus:
		g.Target.AddMem(off)
	case ast.Minus:
		// left - right == -right + left; the spilled left stays the minuend.
		g.Target.Neg()
		g.Target.AddMem(off)
	case ast.Times:
		g.Target.ImulMem(off)
	default:
		panic(fmt.Sprintf("compiler: unhandled binary operator %d", e.Op))
	}
	return nil
}

func (g *Generator) store(si int) int {
	off := slotOffset(si)
	g.Target.Store(off)
	if si > g.maxSlot {
		g.maxSlot = si
	}
	return off
}
