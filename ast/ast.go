package ast

import (
	"bytes"
	"strconv"

	"github.com/adderlang/adder/token"
)

// The base Node interface
type Node interface {
	Tok() token.Token
	String() string
}

// Expression is closed: only the node types in this file implement it.
type Expression interface {
	Node
	expressionNode()
}

type UnaryKind int

const (
	Add1 UnaryKind = iota
	Sub1
)

func (k UnaryKind) String() string {
	if k == Sub1 {
		return token.SUB1
	}
	return token.ADD1
}

type BinaryKind int

const (
	Plus BinaryKind = iota
	Minus
	Times
)

func (k BinaryKind) String() string {
	switch k {
	case Minus:
		return token.MINUS
	case Times:
		return token.TIMES
	default:
		return token.PLUS
	}
}

type Number struct {
	Token token.Token
	Value int64
}

func (n *Number) expressionNode()  {}
func (n *Number) Tok() token.Token { return n.Token }
func (n *Number) String() string   { return strconv.FormatInt(n.Value, 10) }

type Identifier struct {
	Token token.Token // the token.SYMBOL token
	Value string
}

func (i *Identifier) expressionNode()  {}
func (i *Identifier) Tok() token.Token { return i.Token }
func (i *Identifier) String() string   { return i.Value }

type UnaryOp struct {
	Token   token.Token // the ( token
	Op      UnaryKind
	Operand Expression
}

func (u *UnaryOp) expressionNode()  {}
func (u *UnaryOp) Tok() token.Token { return u.Token }
func (u *UnaryOp) String() string {
	return "(" + u.Op.String() + " " + u.Operand.String() + ")"
}

type BinaryOp struct {
	Token token.Token // the ( token
	Op    BinaryKind
	Left  Expression
	Right Expression
}

func (b *BinaryOp) expressionNode()  {}
func (b *BinaryOp) Tok() token.Token { return b.Token }
func (b *BinaryOp) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(b.Op.String())
	out.WriteString(" ")
	out.WriteString(b.Left.String())
	out.WriteString(" ")
	out.WriteString(b.Right.String())
	out.WriteString(")")

	return out.String()
}

type Binding struct {
	Name  *Identifier
	Value Expression
}

// Let binds sequentially: each value sees the bindings before it.
type Let struct {
	Token    token.Token // the ( token
	Bindings []Binding
	Body     Expression
}

func (l *Let) expressionNode()  {}
func (l *Let) Tok() token.Token { return l.Token }
func (l *Let) String() string {
	var out bytes.Buffer

	out.WriteString("(let (")
	for i, b := range l.Bindings {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString("(")
		out.WriteString(b.Name.String())
		out.WriteString(" ")
		out.WriteString(b.Value.String())
		out.WriteString(")")
	}
	out.WriteString(") ")
	out.WriteString(l.Body.String())
	out.WriteString(")")

	return out.String()
}

type Define struct {
	Token token.Token // the ( token
	Name  *Identifier
	Value Expression
}

func (d *Define) expressionNode()  {}
func (d *Define) Tok() token.Token { return d.Token }
func (d *Define) String() string {
	return "(define " + d.Name.String() + " " + d.Value.String() + ")"
}
