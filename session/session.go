// Package session runs the interactive mode: one expression per turn,
// compiled into a shared executable buffer, with top-level definitions kept
// for the rest of the session.
package session

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adderlang/adder/ast"
	"github.com/adderlang/adder/compiler"
	"github.com/adderlang/adder/jit"
	"github.com/adderlang/adder/parser"
)

// Source is the file name used in diagnostics for interactive input.
const Source = "<stdin>"

var exitKeywords = map[string]bool{
	"exit": true,
	"quit": true,
}

// Reply is the outcome of a successful turn.
type Reply struct {
	// Quit is set when the line asked to end the session.
	Quit bool
	// Output is the text to print, without a trailing newline. It is empty
	// for blank lines and definitions.
	Output string
	// Defined names the definition added by this turn, if any.
	Defined string
}

type Session struct {
	buf  *jit.Buffer
	defs compiler.Defs
	log  zerolog.Logger
	turn int
}

type Option func(*Session)

// WithLogger sets the logger used for per-turn debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

func New(opts ...Option) (*Session, error) {
	buf, err := jit.NewBuffer(jit.DefaultChunkSize)
	if err != nil {
		return nil, err
	}
	s := &Session{
		buf:  buf,
		defs: make(compiler.Defs),
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Turn handles one line of input. A failed turn returns the diagnostic and
// leaves the buffer and the definitions exactly as they were.
func (s *Session) Turn(line string) (Reply, error) {
	src := strings.TrimSpace(line)
	if src == "" {
		return Reply{}, nil
	}
	if exitKeywords[src] {
		return Reply{Quit: true}, nil
	}

	s.turn++
	expr, err := parser.Parse(Source, src, parser.Interactive)
	if err != nil {
		return Reply{}, err
	}

	if id, ok := expr.(*ast.Identifier); ok {
		if v, ok := s.defs[id.Value]; ok {
			return Reply{Output: strconv.FormatInt(v, 10)}, nil
		}
	}

	code, err := compiler.MachineCode(expr, s.defs)
	if err != nil {
		return Reply{}, err
	}

	offset := s.buf.Len()
	f, err := s.buf.Emit(code)
	if err != nil {
		return Reply{}, fmt.Errorf("load turn %d: %w", s.turn, err)
	}
	s.log.Debug().
		Int("turn", s.turn).
		Int("offset", offset).
		Int("size", len(code)).
		Str("expr", expr.String()).
		Msg("compiled")

	result := f.Call()

	if def, ok := expr.(*ast.Define); ok {
		s.defs[def.Name.Value] = result
		s.log.Debug().Str("name", def.Name.Value).Int64("value", result).Msg("defined")
		return Reply{Defined: def.Name.Value}, nil
	}
	return Reply{Output: strconv.FormatInt(result, 10)}, nil
}

// Defined returns the value bound to name by an earlier define.
func (s *Session) Defined(name string) (int64, bool) {
	v, ok := s.defs[name]
	return v, ok
}

// Defs returns a copy of the session's definitions.
func (s *Session) Defs() compiler.Defs {
	return maps.Clone(s.defs)
}

// CodeSize returns the number of code bytes loaded so far.
func (s *Session) CodeSize() int {
	return s.buf.Len()
}

func (s *Session) Close() error {
	return s.buf.Close()
}
