package compiler

const (
	// WordSize is the size of one stack slot in bytes.
	WordSize = 8
	// FirstSlot is the first free stack index. Slots 0 and 1 are reserved.
	FirstSlot = 2
	// EntryLabel names the entry point of emitted assembly programs.
	EntryLabel = "our_code_starts_here"
)

// Target receives the operations chosen by the Generator. Offsets are in
// bytes below the stack pointer; rax is the accumulator.
type Target interface {
	// MovImm loads n into the accumulator.
	MovImm(n int64)
	// Load loads the slot at rsp-off into the accumulator.
	Load(off int)
	// Store spills the accumulator to the slot at rsp-off.
	Store(off int)
	// AddImm adds n to the accumulator.
	AddImm(n int64)
	// Neg negates the accumulator.
	Neg()
	// AddMem adds the slot at rsp-off to the accumulator.
	AddMem(off int)
	// ImulMem multiplies the accumulator by the slot at rsp-off.
	ImulMem(off int)
	// Ret returns to the caller with the accumulator as the result.
	Ret()
}

func slotOffset(si int) int {
	return si * WordSize
}
