package interp

import (
	"github.com/petravm/petravm/internal/petravm/field"
	"github.com/petravm/petravm/internal/petravm/isa"
)

// Run steps the machine until it halts, returning the terminal Halt.
// It never returns a naked error: every fatal condition, a step-budget
// overrun (*StepBudget) included, is reported as a HaltError Halt.
func (m *Machine) Run() *Halt {
	for {
		if h := m.Step(); h != nil {
			return h
		}
	}
}

// Step executes exactly one instruction, advancing pc (by *G or to an
// explicit target) and appending one trace Record. It returns a
// non-nil Halt when the run has ended (success, trap, or a fatal
// error); otherwise it returns nil and the caller should Step again.
func (m *Machine) Step() *Halt {
	if m.cfg.MaxSteps != 0 && m.steps >= m.cfg.MaxSteps {
		return &Halt{Kind: HaltError, Err: &StepBudget{Limit: m.cfg.MaxSteps}}
	}

	in, err := m.prom.Fetch(m.pc)
	if err != nil {
		return &Halt{Kind: HaltError, Err: err}
	}

	m.curReads = nil
	m.curWrites = nil
	startPC := m.pc

	nextPC := field.Mul(m.pc, field.G)
	halt := m.exec(in, &nextPC)

	m.steps++
	m.trace = append(m.trace, Record{
		PC:     startPC,
		Op:     in.Op.String(),
		Reads:  m.curReads,
		Writes: m.curWrites,
	})

	if halt != nil {
		return halt
	}
	m.pc = nextPC
	return nil
}

// exec dispatches one instruction to its exec<Name> method. *nextPC is
// the default pc*G successor; control-flow opcodes overwrite it
// directly. A non-nil return halts the run immediately (the trace
// record for this instruction is still appended by Step).
func (m *Machine) exec(in isa.Instruction, nextPC *field.B32) *Halt {
	ops := in.Operands
	switch in.Op {
	case isa.XOR, isa.XORI:
		return m.execBinField(in, ops, field.Add)
	case isa.B32_ADD, isa.B32_ADDI:
		return m.execBinField(in, ops, field.Add)
	case isa.B32_MUL, isa.B32_MULI:
		return m.execBinField(in, ops, field.Mul)
	case isa.B128_ADD:
		return m.execB128(ops, field.AddB128)
	case isa.B128_MUL:
		return m.execB128(ops, field.MulB128)

	case isa.ADD, isa.ADDI:
		return m.execIntBinary(in, ops, func(a, b int32) int32 { return a + b })
	case isa.SUB:
		return m.execIntBinary(in, ops, func(a, b int32) int32 { return a - b })
	case isa.AND, isa.ANDI:
		return m.execIntBinary(in, ops, func(a, b int32) int32 { return a & b })
	case isa.OR, isa.ORI:
		return m.execIntBinary(in, ops, func(a, b int32) int32 { return a | b })
	case isa.SLL, isa.SLLI:
		return m.execShift(in, ops, func(a int32, s uint32) int32 { return a << (s & 0x1f) })
	case isa.SRL, isa.SRLI:
		return m.execShift(in, ops, func(a int32, s uint32) int32 { return int32(uint32(a) >> (s & 0x1f)) })
	case isa.SRA, isa.SRAI:
		return m.execShift(in, ops, func(a int32, s uint32) int32 { return a >> (s & 0x1f) })

	case isa.MUL, isa.MULI:
		return m.execWideMul(in, ops, mulSigned)
	case isa.MULU:
		return m.execWideMul(in, ops, mulUnsigned)
	case isa.MULSU:
		return m.execWideMul(in, ops, mulSignedUnsigned)

	case isa.SLT, isa.SLTI:
		return m.execCompare(in, ops, func(a, b int32) bool { return a < b })
	case isa.SLTU, isa.SLTIU:
		return m.execCompareU(in, ops, func(a, b uint32) bool { return a < b })
	case isa.SLE, isa.SLEI:
		return m.execCompare(in, ops, func(a, b int32) bool { return a <= b })
	case isa.SLEU, isa.SLEIU:
		return m.execCompareU(in, ops, func(a, b uint32) bool { return a <= b })

	case isa.LDI_W:
		return m.execLdiW(ops)
	case isa.MVV_W:
		return m.execMvvW(ops)
	case isa.MVV_L:
		return m.execMvvL(ops)
	case isa.MVI_H:
		return m.execMviH(ops)

	case isa.LW, isa.LB, isa.LBU, isa.LH, isa.LHU:
		return m.execLoad(in, ops)
	case isa.SW, isa.SB, isa.SH:
		return m.execStore(in, ops)

	case isa.FP:
		return m.execFP(ops)
	case isa.J:
		return &Halt{Kind: HaltError, Err: errUnresolvedJ}
	case isa.JUMPI:
		*nextPC = field.B32(ops[0].Imm)
		return nil
	case isa.JUMPV:
		return m.execJumpv(ops, nextPC)
	case isa.CALLI:
		return m.execCalli(ops, nextPC)
	case isa.CALLV:
		return m.execCallv(ops, nextPC)
	case isa.TAILI:
		return m.execTaili(ops, nextPC)
	case isa.TAILV:
		return m.execTailv(ops, nextPC)
	case isa.BNZ:
		return m.execBnz(ops, nextPC)
	case isa.RET:
		return m.execRet(nextPC)

	case isa.ALLOCI:
		return m.execAlloci(in, ops)
	case isa.ALLOCV:
		return m.execAllocv(in, ops)

	case isa.TRAP:
		return &Halt{Kind: HaltTrap, TrapCode: uint8(ops[0].Imm)}

	default:
		return &Halt{Kind: HaltError, Err: errUnknownOpcode(in.Op)}
	}
}
