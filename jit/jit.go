// Package jit owns executable memory for generated code.
//
// A Buffer is append-only. Code is written into fixed-size chunks that are
// never moved or unmapped before Close, so every Func handed out stays
// callable for the life of the Buffer.
package jit

import (
	"errors"
	"fmt"
)

// DefaultChunkSize is the size of each executable mapping.
const DefaultChunkSize = 64 << 10

// codeAlign keeps each emitted function 16-byte aligned.
const codeAlign = 16

// ErrUnsupported is returned on hosts that cannot run generated x86-64 code.
var ErrUnsupported = errors.New("jit: native execution requires linux or darwin on amd64")

// Func is a zero-argument native function returning a 64-bit integer.
type Func struct {
	addr uintptr
	size int
}

func (f Func) Addr() uintptr { return f.addr }
func (f Func) Size() int     { return f.size }

func (f Func) String() string {
	return fmt.Sprintf("func@%#x[%d]", f.addr, f.size)
}

func alignUp(n, a int) int {
	return (n + a - 1) &^ (a - 1)
}
