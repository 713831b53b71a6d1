// Package lower implements PetraVM's two-pass lowering: assigning a
// field-element program counter to every parsed instruction, resolving
// label references, and checking each operand against its opcode's
// declared shape.
package lower

import (
	"github.com/petravm/petravm/internal/petravm/field"
	"github.com/petravm/petravm/internal/petravm/isa"
)

// EntryLabel is the conventional name of a program's entry function.
// If present in source, it must be the label bound to the first
// instruction (PC = G^0).
const EntryLabel = "_start"

// Program is the lowerer's output: a flat, PC-indexed instruction
// table plus the label and frame-size maps needed to interpret CALL/
// TAIL targets and to report trace positions symbolically.
type Program struct {
	// Instructions is indexed by instruction index i; instruction i's
	// PC is G^i (field.Pow(field.G, uint32(i))).
	Instructions []isa.Instruction
	Labels       map[string]field.B32
	FrameSize    map[string]uint32
	EntryPC      field.B32
}

// PCAt returns the field-element PC of the instruction at index i.
func PCAt(i int) field.B32 {
	return field.Pow(field.G, uint32(i))
}
