package token

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	SyntaxError ErrorKind = iota
	DuplicateBinding
	MultipleDefinition
	UnboundVariable
	DuplicateDefinition
)

var errorKinds = [...]string{
	SyntaxError:         "syntax error",
	DuplicateBinding:    "duplicate binding",
	MultipleDefinition:  "multiple definition",
	UnboundVariable:     "unbound variable",
	DuplicateDefinition: "duplicate definition",
}

func (k ErrorKind) String() string {
	if 0 <= k && int(k) < len(errorKinds) {
		return errorKinds[k]
	}
	return fmt.Sprintf("error(%d)", int(k))
}

// CompileError is a diagnostic tied to the token where the problem was found.
type CompileError struct {
	Token Token
	Kind  ErrorKind
	Msg   string
}

func (ce *CompileError) Error() string {
	loc := fmt.Sprintf("%d:%d", ce.Token.Line, ce.Token.Column)
	if ce.Token.FileName != "" {
		loc = ce.Token.FileName + ":" + loc
	}
	return fmt.Sprintf("%s: %s: %s", loc, ce.Kind, ce.Msg)
}

// Errorf builds a CompileError of the given kind at tok.
func Errorf(tok Token, kind ErrorKind, format string, args ...any) *CompileError {
	return &CompileError{
		Token: tok,
		Kind:  kind,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// IsKind reports whether err is a CompileError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *CompileError
	return errors.As(err, &ce) && ce.Kind == kind
}
