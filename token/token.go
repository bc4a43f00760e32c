package token

import "strconv"

type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF
	COMMENT

	literal_beg
	// Atoms
	INT    // 1343456
	FLOAT  // 123.45
	STRING // "abc"
	SYMBOL // add1, let, +, x
	literal_end

	delim_beg
	LPAREN // (
	RPAREN // )
	LBRACK // [
	RBRACK // ]
	delim_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",

	EOF:     "EOF",
	COMMENT: "COMMENT",

	INT:    "INT",
	FLOAT:  "FLOAT",
	STRING: "STRING",
	SYMBOL: "SYMBOL",

	LPAREN: "(",
	RPAREN: ")",
	LBRACK: "[",
	RBRACK: "]",
}

// Keywords of the language. They can head a list but cannot be bound.
const (
	ADD1   = "add1"
	SUB1   = "sub1"
	LET    = "let"
	DEFINE = "define"
	PLUS   = "+"
	MINUS  = "-"
	TIMES  = "*"
)

var keywords = map[string]struct{}{
	ADD1:   {},
	SUB1:   {},
	LET:    {},
	DEFINE: {},
	PLUS:   {},
	MINUS:  {},
	TIMES:  {},
}

// IsKeyword reports whether name is reserved by the language.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}

type Token struct {
	FileName string
	Type     TokenType
	Literal  string
	Line     int
	Column   int
}

func (t Token) IsAtom() bool {
	return literal_beg < t.Type && t.Type < literal_end
}

// IsOpen reports whether t starts a list.
func (t Token) IsOpen() bool {
	return t.Type == LPAREN || t.Type == LBRACK
}

// IsClose reports whether t ends a list.
func (t Token) IsClose() bool {
	return t.Type == RPAREN || t.Type == RBRACK
}

// Closer returns the delimiter type that closes t.
func (t Token) Closer() TokenType {
	if t.Type == LBRACK {
		return RBRACK
	}
	return RPAREN
}

func (t Token) String() string {
	return t.Type.String()
}

func (tokenType TokenType) String() string {
	s := ""
	if 0 <= tokenType && tokenType < TokenType(len(tokens)) {
		s = tokens[tokenType]
	}

	if s == "" {
		s = "token(" + strconv.Itoa(int(tokenType)) + ")"
	}

	return s
}
