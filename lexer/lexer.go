package lexer

import (
	"strconv"
	"strings"

	"github.com/adderlang/adder/token"
)

type Lexer struct {
	FileName     string
	input        []rune
	position     int  // current position in input (points to current rune)
	readPosition int  // current reading position in input (after current rune)
	curr         rune // current rune under examination
	line         int
	column       int
}

func New(fileName, input string) *Lexer {
	l := &Lexer{FileName: fileName, input: []rune(input), line: 1}
	l.readRune()
	return l
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	tok := token.Token{FileName: l.FileName, Line: l.line, Column: l.column}
	switch l.curr {
	case 0:
		if l.position >= len(l.input) {
			tok.Type = token.EOF
			return tok
		}
		tok.Type = token.ILLEGAL
		tok.Literal = string(l.curr)
	case '(':
		tok.Type = token.LPAREN
		tok.Literal = "("
	case ')':
		tok.Type = token.RPAREN
		tok.Literal = ")"
	case '[':
		tok.Type = token.LBRACK
		tok.Literal = "["
	case ']':
		tok.Type = token.RBRACK
		tok.Literal = "]"
	case '"':
		lit, ok := l.readString()
		tok.Literal = lit
		tok.Type = token.STRING
		if !ok {
			tok.Type = token.ILLEGAL
		}
		return tok
	default:
		tok.Literal = l.readAtom()
		tok.Type = classify(tok.Literal)
		return tok
	}

	l.readRune()
	return tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case isSpace(l.curr):
			l.readRune()
		case l.curr == ';':
			for l.curr != '\n' && l.position < len(l.input) {
				l.readRune()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readRune() {
	if l.curr == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.curr = 0
	} else {
		l.curr = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekRune() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) readAtom() string {
	position := l.position
	for l.position < len(l.input) && !isDelimiter(l.curr) {
		l.readRune()
	}
	return string(l.input[position:l.position])
}

// readString consumes a double quoted string and returns its unescaped value.
// ok is false when the input ends before the closing quote.
func (l *Lexer) readString() (string, bool) {
	var out strings.Builder
	l.readRune() // opening quote
	for l.position < len(l.input) {
		switch l.curr {
		case '"':
			l.readRune()
			return out.String(), true
		case '\\':
			switch next := l.peekRune(); next {
			case 'n':
				out.WriteRune('\n')
			case 't':
				out.WriteRune('\t')
			default:
				out.WriteRune(next)
			}
			l.readRune()
		default:
			out.WriteRune(l.curr)
		}
		l.readRune()
	}
	return out.String(), false
}

// classify decides what kind of atom lit is. Digit strings that overflow
// int64 stay INT so the reader can report the range error.
func classify(lit string) token.TokenType {
	if !startsNumeric(lit) {
		return token.SYMBOL
	}
	if _, err := strconv.ParseInt(lit, 10, 64); err == nil || isDigits(strings.TrimLeft(lit, "+-")) {
		return token.INT
	}
	if _, err := strconv.ParseFloat(lit, 64); err == nil {
		return token.FLOAT
	}
	return token.SYMBOL
}

func startsNumeric(lit string) bool {
	s := lit
	if len(s) > 1 && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	return isDigit(rune(s[0])) || (s[0] == '.' && len(s) > 1 && isDigit(rune(s[1])))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

func isDelimiter(ch rune) bool {
	switch ch {
	case '(', ')', '[', ']', '"', ';':
		return true
	}
	return isSpace(ch)
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
