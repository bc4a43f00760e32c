//go:build !((linux || darwin) && amd64)

package jit

type Buffer struct{}

func NewBuffer(chunkSize int) (*Buffer, error) {
	return nil, ErrUnsupported
}

func (b *Buffer) Emit(code []byte) (Func, error) { return Func{}, ErrUnsupported }
func (b *Buffer) Len() int                       { return 0 }
func (b *Buffer) Chunks() int                    { return 0 }
func (b *Buffer) Close() error                   { return nil }

func (f Func) Call() int64 {
	panic(ErrUnsupported)
}

func Supported() bool { return false }
