package isa

import "github.com/petravm/petravm/internal/petravm/field"

// Operand is a single resolved instruction operand: either a VROM slot
// index (with an optional offset, for KindSlotOffset), a resolved
// immediate value, or both a slot and immediate are unused (KindNone).
type Operand struct {
	Kind   OperandKind
	Slot   uint32 // valid for KindSlot / KindSlotOffset
	Offset uint16 // valid for KindSlotOffset
	Imm    uint32 // valid for KindImmInt / KindImmField / resolved KindLabel
}

// Instruction is one lowered, typed instruction: an opcode tag, its
// resolved operands, and whether the prover-hint flag was present in
// source. PROM stores a sequence of these, one per program-counter
// value.
type Instruction struct {
	Op       Opcode
	Operands [3]Operand
	Hint     bool
	// Line is the 1-based source line this instruction was parsed from,
	// kept for error messages and trace annotation only.
	Line int
}

// TargetPC returns the resolved jump/call/branch target as a field
// element, for opcodes whose first operand is a KindLabel. For any other
// opcode it returns whatever the first operand's Imm holds; callers must
// check Op.IsJumpTarget() (or Op==JUMPI after J-resolution) first.
func (in Instruction) TargetPC() field.B32 {
	return field.B32(in.Operands[0].Imm)
}
