// Package sexp holds the generic parenthesized-list form produced by the
// reader, before any language rules are applied.
package sexp

import (
	"strconv"
	"strings"

	"github.com/adderlang/adder/token"
)

// Value is an atom or a list.
type Value interface {
	Tok() token.Token
	String() string
	sexpValue()
}

type Int struct {
	Token token.Token
	Value int64
}

func (i *Int) sexpValue()       {}
func (i *Int) Tok() token.Token { return i.Token }
func (i *Int) String() string   { return strconv.FormatInt(i.Value, 10) }

type Float struct {
	Token token.Token
	Value float64
}

func (f *Float) sexpValue()       {}
func (f *Float) Tok() token.Token { return f.Token }
func (f *Float) String() string   { return f.Token.Literal }

type String struct {
	Token token.Token
	Value string
}

func (s *String) sexpValue()       {}
func (s *String) Tok() token.Token { return s.Token }
func (s *String) String() string   { return strconv.Quote(s.Value) }

type Symbol struct {
	Token token.Token
	Name  string
}

func (s *Symbol) sexpValue()       {}
func (s *Symbol) Tok() token.Token { return s.Token }
func (s *Symbol) String() string   { return s.Name }

type List struct {
	Token token.Token // the opening delimiter
	Items []Value
}

func (l *List) sexpValue()       {}
func (l *List) Tok() token.Token { return l.Token }
func (l *List) String() string {
	var out strings.Builder
	out.WriteString("(")
	for i, item := range l.Items {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(item.String())
	}
	out.WriteString(")")
	return out.String()
}

// Head returns the name of the symbol heading l, if any.
func (l *List) Head() (string, bool) {
	if len(l.Items) == 0 {
		return "", false
	}
	sym, ok := l.Items[0].(*Symbol)
	if !ok {
		return "", false
	}
	return sym.Name, true
}
