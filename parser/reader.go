package parser

import (
	"strconv"

	"github.com/adderlang/adder/lexer"
	"github.com/adderlang/adder/sexp"
	"github.com/adderlang/adder/token"
)

// Reader turns a token stream into sexp values.
type Reader struct {
	l      *lexer.Lexer
	errors []*token.CompileError

	curToken token.Token
}

func NewReader(l *lexer.Lexer) *Reader {
	r := &Reader{
		l:      l,
		errors: []*token.CompileError{},
	}
	r.nextToken()
	return r
}

func (r *Reader) nextToken() {
	r.curToken = r.l.NextToken()
}

func (r *Reader) Errors() []*token.CompileError {
	return r.errors
}

func (r *Reader) errorf(tok token.Token, format string, args ...any) {
	r.errors = append(r.errors, token.Errorf(tok, token.SyntaxError, format, args...))
}

// Read reads exactly one datum. Anything after it other than whitespace and
// comments is an error.
func (r *Reader) Read() (sexp.Value, error) {
	if r.curToken.Type == token.EOF {
		r.errorf(r.curToken, "empty input")
		return nil, r.errors[0]
	}
	v := r.readValue()
	if len(r.errors) == 0 && r.curToken.Type != token.EOF {
		r.errorf(r.curToken, "unexpected %q after expression", r.curToken.Literal)
	}
	if len(r.errors) > 0 {
		return nil, r.errors[0]
	}
	return v, nil
}

// readValue reads the datum starting at curToken and leaves curToken on the
// token after it.
func (r *Reader) readValue() sexp.Value {
	tok := r.curToken
	switch tok.Type {
	case token.INT:
		r.nextToken()
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			r.errorf(tok, "integer literal %s out of range", tok.Literal)
			return nil
		}
		return &sexp.Int{Token: tok, Value: n}
	case token.FLOAT:
		r.nextToken()
		f, _ := strconv.ParseFloat(tok.Literal, 64)
		return &sexp.Float{Token: tok, Value: f}
	case token.STRING:
		r.nextToken()
		return &sexp.String{Token: tok, Value: tok.Literal}
	case token.SYMBOL:
		r.nextToken()
		return &sexp.Symbol{Token: tok, Name: tok.Literal}
	case token.LPAREN, token.LBRACK:
		return r.readList()
	case token.EOF:
		r.errorf(tok, "unexpected end of input")
	case token.ILLEGAL:
		r.errorf(tok, "illegal token %q", tok.Literal)
	default:
		r.errorf(tok, "unexpected %q", tok.Literal)
	}
	return nil
}

func (r *Reader) readList() sexp.Value {
	open := r.curToken
	list := &sexp.List{Token: open, Items: []sexp.Value{}}
	r.nextToken()
	for !r.curToken.IsClose() {
		if r.curToken.Type == token.EOF {
			r.errorf(open, "unclosed %q", open.Literal)
			return nil
		}
		item := r.readValue()
		if item == nil {
			return nil
		}
		list.Items = append(list.Items, item)
	}
	if r.curToken.Type != open.Closer() {
		r.errorf(r.curToken, "%q closed by %q", open.Literal, r.curToken.Literal)
		return nil
	}
	r.nextToken()
	return list
}

// Read is a convenience wrapper reading one datum from src.
func Read(fileName, src string) (sexp.Value, error) {
	return NewReader(lexer.New(fileName, src)).Read()
}
