//go:build (linux || darwin) && amd64

package jit

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/unix"
)

type chunk struct {
	mem []byte
	pos int
}

func (c *chunk) free() int {
	return len(c.mem) - c.pos
}

type Buffer struct {
	chunkSize int
	chunks    []*chunk
	size      int
}

// NewBuffer creates an empty buffer. chunkSize <= 0 selects DefaultChunkSize.
func NewBuffer(chunkSize int) (*Buffer, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Buffer{chunkSize: alignUp(chunkSize, os.Getpagesize())}, nil
}

// Emit appends code at the current position, commits it as executable and
// returns it as a callable. On error nothing has been appended.
func (b *Buffer) Emit(code []byte) (Func, error) {
	if len(code) == 0 {
		return Func{}, fmt.Errorf("jit: empty code")
	}

	c, err := b.chunkFor(len(code))
	if err != nil {
		return Func{}, err
	}

	if err := unix.Mprotect(c.mem, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return Func{}, fmt.Errorf("jit: make chunk writable: %w", err)
	}
	copy(c.mem[c.pos:], code)
	if err := unix.Mprotect(c.mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return Func{}, fmt.Errorf("jit: make chunk executable: %w", err)
	}

	f := Func{addr: uintptr(unsafe.Pointer(&c.mem[c.pos])), size: len(code)}
	c.pos = min(alignUp(c.pos+len(code), codeAlign), len(c.mem))
	b.size += len(code)
	return f, nil
}

// chunkFor returns a chunk with room for n bytes, mapping a new one if the
// current chunk is full. Code larger than a chunk gets a chunk of its own.
func (b *Buffer) chunkFor(n int) (*chunk, error) {
	if len(b.chunks) > 0 {
		if c := b.chunks[len(b.chunks)-1]; c.free() >= n {
			return c, nil
		}
	}

	size := max(b.chunkSize, alignUp(n, os.Getpagesize()))
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_EXEC, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("jit: map %d bytes: %w", size, err)
	}
	c := &chunk{mem: mem}
	b.chunks = append(b.chunks, c)
	return c, nil
}

// Len returns the number of code bytes appended so far.
func (b *Buffer) Len() int {
	return b.size
}

// Chunks returns the number of mappings in use.
func (b *Buffer) Chunks() int {
	return len(b.chunks)
}

// Close unmaps all chunks. Funcs obtained from b must not be called afterwards.
func (b *Buffer) Close() error {
	var firstErr error
	for _, c := range b.chunks {
		if err := unix.Munmap(c.mem); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("jit: unmap: %w", err)
		}
	}
	b.chunks = nil
	return firstErr
}

// Call runs f on the system stack using the C calling convention and returns
// rax.
func (f Func) Call() int64 {
	r1, _, _ := purego.SyscallN(f.addr)
	return int64(r1)
}

// Supported reports whether generated code can run on this host.
func Supported() bool { return true }
