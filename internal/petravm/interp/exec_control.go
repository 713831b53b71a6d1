package interp

import (
	"github.com/petravm/petravm/internal/petravm/field"
	"github.com/petravm/petravm/internal/petravm/isa"
)

// execFP handles FP dst, #imm: write the absolute slot-index fp+imm to
// dst, used to capture an absolute VROM pointer into the current
// frame.
func (m *Machine) execFP(ops [3]isa.Operand) *Halt {
	value := m.fp + ops[1].Imm
	return fail(m.writeFrame(ops[0].Slot, value))
}

func (m *Machine) execJumpv(ops [3]isa.Operand, nextPC *field.B32) *Halt {
	target, err := m.readFrame(ops[0].Slot)
	if err != nil {
		return fail(err)
	}
	*nextPC = field.B32(target)
	return nil
}

func (m *Machine) execBnz(ops [3]isa.Operand, nextPC *field.B32) *Halt {
	cond, err := m.readFrame(ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	if cond != 0 {
		*nextPC = field.B32(ops[0].Imm)
	}
	return nil
}

// execCalli handles CALLI target, next_fp: writes the fresh frame's
// return-PC and caller-FP slots, then transfers control.
func (m *Machine) execCalli(ops [3]isa.Operand, nextPC *field.B32) *Halt {
	newFP, err := m.readFrame(ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	return m.doCall(newFP, uint32(*nextPC), ops[0].Imm, nextPC)
}

// execCallv is CALLI's register-indirect counterpart: the target PC is
// read from a slot instead of being a resolved label.
func (m *Machine) execCallv(ops [3]isa.Operand, nextPC *field.B32) *Halt {
	target, err := m.readFrame(ops[0].Slot)
	if err != nil {
		return fail(err)
	}
	newFP, err := m.readFrame(ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	return m.doCall(newFP, uint32(*nextPC), target, nextPC)
}

func (m *Machine) doCall(newFP, returnPC, target uint32, nextPC *field.B32) *Halt {
	if err := m.writeAbs(newFP+0, returnPC); err != nil {
		return fail(err)
	}
	if err := m.writeAbs(newFP+1, m.fp); err != nil {
		return fail(err)
	}
	m.fp = newFP
	*nextPC = field.B32(target)
	return nil
}

// execTaili handles TAILI target, next_fp: the new frame inherits the
// caller's own return PC and FP instead of resuming the caller
//.
func (m *Machine) execTaili(ops [3]isa.Operand, nextPC *field.B32) *Halt {
	newFP, err := m.readFrame(ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	return m.doTail(newFP, ops[0].Imm, nextPC)
}

func (m *Machine) execTailv(ops [3]isa.Operand, nextPC *field.B32) *Halt {
	target, err := m.readFrame(ops[0].Slot)
	if err != nil {
		return fail(err)
	}
	newFP, err := m.readFrame(ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	return m.doTail(newFP, target, nextPC)
}

func (m *Machine) doTail(newFP, target uint32, nextPC *field.B32) *Halt {
	returnPC, err := m.readAbs(m.fp + 0)
	if err != nil {
		return fail(err)
	}
	callerFP, err := m.readAbs(m.fp + 1)
	if err != nil {
		return fail(err)
	}
	if err := m.writeAbs(newFP+0, returnPC); err != nil {
		return fail(err)
	}
	if err := m.writeAbs(newFP+1, callerFP); err != nil {
		return fail(err)
	}
	m.fp = newFP
	*nextPC = field.B32(target)
	return nil
}

// execRet handles RET: pc ← VROM[fp+0], fp ← VROM[fp+1]. A root-frame
// return reads back the slot-0 sentinel PC(0), which halts the run
// successfully instead of attempting a fetch at an invalid PC.
func (m *Machine) execRet(nextPC *field.B32) *Halt {
	returnPC, err := m.readAbs(m.fp + 0)
	if err != nil {
		return fail(err)
	}
	callerFP, err := m.readAbs(m.fp + 1)
	if err != nil {
		return fail(err)
	}
	if returnPC == 0 {
		return &Halt{Kind: HaltSuccess}
	}
	m.fp = callerFP
	*nextPC = field.B32(returnPC)
	return nil
}

func (m *Machine) execAlloci(in isa.Instruction, ops [3]isa.Operand) *Halt {
	addr := m.vrom.Alloc(ops[1].Imm)
	return m.writeResult(in, ops[0].Slot, addr)
}

func (m *Machine) execAllocv(in isa.Instruction, ops [3]isa.Operand) *Halt {
	size, err := m.readFrame(ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	addr := m.vrom.Alloc(size)
	return m.writeResult(in, ops[0].Slot, addr)
}
