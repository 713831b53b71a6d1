package interp

import (
	"github.com/petravm/petravm/internal/petravm/isa"
)

// execLdiW handles LDI.W dst, #imm: write a 32-bit literal to dst.
func (m *Machine) execLdiW(ops [3]isa.Operand) *Halt {
	return fail(m.writeFrame(ops[0].Slot, ops[1].Imm))
}

// execMvvW handles MVV.W dst[off], src: target_base = VROM[fp+dst];
// VROM[target_base+off] = VROM[fp+src].
func (m *Machine) execMvvW(ops [3]isa.Operand) *Halt {
	targetBase, err := m.readFrame(ops[0].Slot)
	if err != nil {
		return fail(err)
	}
	srcVal, err := m.readFrame(ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	return fail(m.writeAbs(targetBase+uint32(ops[0].Offset), srcVal))
}

// execMvvL is MVV.W's four-limb (B128) counterpart.
func (m *Machine) execMvvL(ops [3]isa.Operand) *Halt {
	targetBase, err := m.readFrame(ops[0].Slot)
	if err != nil {
		return fail(err)
	}
	srcVal, err := m.vrom.ReadB128(m.fp + ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	return fail(m.vrom.WriteB128(targetBase+uint32(ops[0].Offset), srcVal))
}

// execMviH handles MVI.H dst[off], #imm16: a zero-extended half-word
// literal written to VROM[VROM[fp+dst]+off].
func (m *Machine) execMviH(ops [3]isa.Operand) *Halt {
	targetBase, err := m.readFrame(ops[0].Slot)
	if err != nil {
		return fail(err)
	}
	return fail(m.writeAbs(targetBase+uint32(ops[0].Offset), ops[1].Imm&0xffff))
}

// ramAddress computes VROM[fp+base] + imm, the shared address
// expression for every RAM load/store opcode.
func (m *Machine) ramAddress(base isa.Operand) (uint32, error) {
	ptr, err := m.readFrame(base.Slot)
	if err != nil {
		return 0, err
	}
	return ptr + uint32(base.Offset), nil
}

func (m *Machine) execLoad(in isa.Instruction, ops [3]isa.Operand) *Halt {
	addr, err := m.ramAddress(ops[1])
	if err != nil {
		return fail(err)
	}
	var value uint32
	switch in.Op {
	case isa.LW:
		v, err := m.ram.LoadWord(addr)
		if err != nil {
			return fail(err)
		}
		value = v
	case isa.LH:
		v, err := m.ram.LoadHalf(addr)
		if err != nil {
			return fail(err)
		}
		value = uint32(int32(int16(v)))
	case isa.LHU:
		v, err := m.ram.LoadHalf(addr)
		if err != nil {
			return fail(err)
		}
		value = uint32(v)
	case isa.LB:
		v, err := m.ram.LoadByte(addr)
		if err != nil {
			return fail(err)
		}
		value = uint32(int32(int8(v)))
	case isa.LBU:
		v, err := m.ram.LoadByte(addr)
		if err != nil {
			return fail(err)
		}
		value = uint32(v)
	}
	return m.writeResult(in, ops[0].Slot, value)
}

func (m *Machine) execStore(in isa.Instruction, ops [3]isa.Operand) *Halt {
	addr, err := m.ramAddress(ops[0])
	if err != nil {
		return fail(err)
	}
	srcVal, err := m.readFrame(ops[1].Slot)
	if err != nil {
		return fail(err)
	}
	switch in.Op {
	case isa.SW:
		return fail(m.ram.StoreWord(addr, srcVal))
	case isa.SH:
		return fail(m.ram.StoreHalf(addr, uint16(srcVal)))
	case isa.SB:
		return fail(m.ram.StoreByte(addr, byte(srcVal)))
	}
	return nil
}
