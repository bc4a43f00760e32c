package compiler

import (
	"fmt"
	"strings"

	"github.com/adderlang/adder/ast"
)

// AsmTarget renders x86-64 assembly text in NASM syntax.
type AsmTarget struct {
	out strings.Builder
}

func (a *AsmTarget) line(format string, args ...any) {
	a.out.WriteString("  ")
	fmt.Fprintf(&a.out, format, args...)
	a.out.WriteByte('\n')
}

func mem(off int) string {
	return fmt.Sprintf("[rsp - %d]", off)
}

func (a *AsmTarget) MovImm(n int64) { a.line("mov rax, %d", n) }
func (a *AsmTarget) Load(off int)   { a.line("mov rax, %s", mem(off)) }
func (a *AsmTarget) Store(off int)  { a.line("mov %s, rax", mem(off)) }
func (a *AsmTarget) Neg()           { a.line("neg rax") }
func (a *AsmTarget) AddMem(off int) { a.line("add rax, %s", mem(off)) }
func (a *AsmTarget) Ret()           { a.line("ret") }

func (a *AsmTarget) AddImm(n int64) {
	if n < 0 {
		a.line("sub rax, %d", -n)
		return
	}
	a.line("add rax, %d", n)
}

func (a *AsmTarget) ImulMem(off int) { a.line("imul rax, %s", mem(off)) }

// String returns the instructions emitted so far.
func (a *AsmTarget) String() string {
	return a.out.String()
}

// AsmProgram compiles a closed expression into a complete assembly file with
// a single global entry point that returns the value in rax.
func AsmProgram(e ast.Expression) (string, error) {
	var a AsmTarget
	if err := NewGenerator(&a, nil).Compile(e, FirstSlot, NewScope[int]()); err != nil {
		return "", err
	}
	a.Ret()

	var out strings.Builder
	out.WriteString("section .text\n")
	out.WriteString("global " + EntryLabel + "\n")
	out.WriteString(EntryLabel + ":\n")
	out.WriteString(a.String())
	return out.String(), nil
}
