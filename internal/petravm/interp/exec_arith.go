package interp

import (
	"github.com/petravm/petravm/internal/petravm/field"
	"github.com/petravm/petravm/internal/petravm/isa"
	"github.com/petravm/petravm/internal/petravm/memory"
)

// writeResult writes value to dst and, for a prover-hinted instruction
// whose dst was already written to a different value, reports
// HintMismatch instead of VromConflict — the interpreter "checking a
// hinted value against the opcode's semantics" is just
// VROM's own write-once conflict check, given a friendlier name.
func (m *Machine) writeResult(in isa.Instruction, dst, value uint32) *Halt {
	err := m.writeFrame(dst, value)
	if err == nil {
		return nil
	}
	if in.Hint {
		if conflict, ok := err.(*memory.VromConflict); ok {
			return fail(&HintMismatch{Op: in.Op.String(), Hinted: conflict.Previous, Computed: value})
		}
	}
	return fail(err)
}

// secondOperand reads a binary op's second source: a frame slot for
// the register form, or the already-resolved immediate bit pattern
// for any immediate form (the lowerer has already folded sign,
// zero-extension, and any G-exponent into Operand.Imm).
func (m *Machine) secondOperand(op isa.Operand) (uint32, error) {
	if op.Kind == isa.KindSlot {
		return m.readFrame(op.Slot)
	}
	return op.Imm, nil
}

func (m *Machine) execBinField(in isa.Instruction, ops [3]isa.Operand, op func(a, b field.B32) field.B32) *Halt {
	a, err := m.readFrame(ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	b, err := m.secondOperand(ops[2])
	if err != nil {
		return fail(err)
	}
	result := op(field.B32(a), field.B32(b))
	return m.writeResult(in, ops[0].Slot, uint32(result))
}

func (m *Machine) execB128(ops [3]isa.Operand, op func(a, b field.B128) field.B128) *Halt {
	a, err := m.vrom.ReadB128(m.fp + ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	b, err := m.vrom.ReadB128(m.fp + ops[2].Slot)
	if err != nil {
		return fail(err)
	}
	result := op(a, b)
	if err := m.vrom.WriteB128(m.fp+ops[0].Slot, result); err != nil {
		return fail(err)
	}
	return nil
}

// execIntBinary handles ADD/ADDI, SUB, AND/ANDI, OR/ORI: plain
// two's-complement 32-bit arithmetic, wraparound on overflow.
func (m *Machine) execIntBinary(in isa.Instruction, ops [3]isa.Operand, op func(a, b int32) int32) *Halt {
	a, err := m.readFrame(ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	b, err := m.secondOperand(ops[2])
	if err != nil {
		return fail(err)
	}
	result := op(int32(a), int32(b))
	return m.writeResult(in, ops[0].Slot, uint32(result))
}

func (m *Machine) execShift(in isa.Instruction, ops [3]isa.Operand, op func(a int32, shift uint32) int32) *Halt {
	a, err := m.readFrame(ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	shift, err := m.secondOperand(ops[2])
	if err != nil {
		return fail(err)
	}
	result := op(int32(a), shift&0x1f)
	return m.writeResult(in, ops[0].Slot, uint32(result))
}

// execWideMul handles MUL/MULI, MULU, MULSU: a 64-bit product stored
// low-limb-first into dst, dst+1.
func (m *Machine) execWideMul(in isa.Instruction, ops [3]isa.Operand, op func(a, b uint32) uint64) *Halt {
	a, err := m.readFrame(ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	b, err := m.secondOperand(ops[2])
	if err != nil {
		return fail(err)
	}
	wide := op(a, b)
	lo := uint32(wide)
	hi := uint32(wide >> 32)
	if h := m.writeResult(in, ops[0].Slot, lo); h != nil {
		return h
	}
	return m.writeResult(in, ops[0].Slot+1, hi)
}

func (m *Machine) execCompare(in isa.Instruction, ops [3]isa.Operand, cmp func(a, b int32) bool) *Halt {
	a, err := m.readFrame(ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	b, err := m.secondOperand(ops[2])
	if err != nil {
		return fail(err)
	}
	return m.writeResult(in, ops[0].Slot, boolToWord(cmp(int32(a), int32(b))))
}

func (m *Machine) execCompareU(in isa.Instruction, ops [3]isa.Operand, cmp func(a, b uint32) bool) *Halt {
	a, err := m.readFrame(ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	b, err := m.secondOperand(ops[2])
	if err != nil {
		return fail(err)
	}
	return m.writeResult(in, ops[0].Slot, boolToWord(cmp(a, b)))
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
