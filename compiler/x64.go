package compiler

import (
	"fmt"

	golangasm "github.com/twitchyliquid64/golang-asm"
	"github.com/twitchyliquid64/golang-asm/obj"
	"github.com/twitchyliquid64/golang-asm/obj/x86"

	"github.com/adderlang/adder/ast"
)

// X64Target encodes x86-64 machine code. The code has no branches or
// absolute addresses, so it can be copied anywhere before it runs.
type X64Target struct {
	b     *golangasm.Builder
	count int
}

func NewX64Target() (*X64Target, error) {
	b, err := golangasm.NewBuilder("amd64", 64)
	if err != nil {
		return nil, fmt.Errorf("create amd64 assembler: %w", err)
	}
	return &X64Target{b: b}, nil
}

var rax = obj.Addr{Type: obj.TYPE_REG, Reg: x86.REG_AX}

func imm(n int64) obj.Addr {
	return obj.Addr{Type: obj.TYPE_CONST, Offset: n}
}

func slot(off int) obj.Addr {
	return obj.Addr{Type: obj.TYPE_MEM, Reg: x86.REG_SP, Offset: -int64(off)}
}

func (x *X64Target) emit(as obj.As, from, to obj.Addr) {
	p := x.b.NewProg()
	p.As = as
	p.From = from
	p.To = to
	x.b.AddInstruction(p)
	x.count++
}

func (x *X64Target) MovImm(n int64) { x.emit(x86.AMOVQ, imm(n), rax) }
func (x *X64Target) Load(off int)   { x.emit(x86.AMOVQ, slot(off), rax) }
func (x *X64Target) Store(off int)  { x.emit(x86.AMOVQ, rax, slot(off)) }
func (x *X64Target) AddImm(n int64) {
	if n < 0 {
		x.emit(x86.ASUBQ, imm(-n), rax)
		return
	}
	x.emit(x86.AADDQ, imm(n), rax)
}
func (x *X64Target) Neg()            { x.emit(x86.ANEGQ, obj.Addr{}, rax) }
func (x *X64Target) AddMem(off int)  { x.emit(x86.AADDQ, slot(off), rax) }
func (x *X64Target) ImulMem(off int) { x.emit(x86.AIMULQ, slot(off), rax) }
func (x *X64Target) Ret()            { x.emit(obj.ARET, obj.Addr{}, obj.Addr{}) }

// Len returns the number of instructions emitted so far.
func (x *X64Target) Len() int {
	return x.count
}

// Bytes assembles the instructions emitted so far.
func (x *X64Target) Bytes() []byte {
	return x.b.Assemble()
}

// MachineCode compiles e into a zero-argument function returning the value
// in rax. Identifiers that are not lexically bound are resolved in defs.
func MachineCode(e ast.Expression, defs Defs) ([]byte, error) {
	x, err := NewX64Target()
	if err != nil {
		return nil, err
	}
	if err := NewGenerator(x, defs).Compile(e, FirstSlot, NewScope[int]()); err != nil {
		return nil, err
	}
	x.Ret()
	return x.Bytes(), nil
}

// Program compiles e for the one-shot modes, where nothing is predefined.
func Program(e ast.Expression) ([]byte, error) {
	return MachineCode(e, nil)
}
