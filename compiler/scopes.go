package compiler

import (
	"maps"
)

// Scope maps names to elements. It is never mutated in place: With returns a
// child scope, so sibling branches cannot observe each other's bindings.
type Scope[T any] struct {
	Elems map[string]T
}

func NewScope[T any]() Scope[T] {
	return Scope[T]{
		Elems: make(map[string]T),
	}
}

// With returns a copy of s with name bound to elem, shadowing any outer binding.
func (s Scope[T]) With(name string, elem T) Scope[T] {
	elems := maps.Clone(s.Elems)
	if elems == nil {
		elems = make(map[string]T, 1)
	}
	elems[name] = elem
	return Scope[T]{Elems: elems}
}

func (s Scope[T]) Get(name string) (T, bool) {
	e, ok := s.Elems[name]
	return e, ok
}

func (s Scope[T]) Len() int {
	return len(s.Elems)
}

// Env is the compile-time environment: variable name to stack offset in bytes.
type Env = Scope[int]

// Defs is the runtime definition environment of an interactive session:
// defined name to its computed value.
type Defs map[string]int64
