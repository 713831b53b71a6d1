package lower

import (
	"github.com/petravm/petravm/internal/petravm/field"
	"github.com/petravm/petravm/internal/petravm/isa"
	"github.com/petravm/petravm/internal/petravm/parser"
)

// Lower runs both lowering passes over a parsed program and returns the
// typed, PC-indexed instruction table. It returns *LowerError on the
// first violation found.
func Lower(prog *parser.Program) (*Program, error) {
	labelToIndex, frameSize, err := indexPass(prog)
	if err != nil {
		return nil, err
	}

	instrs, err := resolvePass(prog, labelToIndex, frameSize)
	if err != nil {
		return nil, err
	}

	out := &Program{
		Instructions: instrs,
		FrameSize:    frameSize,
		Labels:       make(map[string]field.B32, len(labelToIndex)),
		EntryPC:      field.One,
	}
	for label, idx := range labelToIndex {
		out.Labels[label] = PCAt(idx)
	}
	return out, nil
}

// indexPass assigns a sequential instruction index to every
// instruction line and binds labels to the index of the instruction
// they precede.
func indexPass(prog *parser.Program) (map[string]int, map[string]uint32, error) {
	labelToIndex := make(map[string]int)
	frameSize := make(map[string]uint32)

	i := 0
	var runningFrame uint32
	haveFrame := false
	for _, line := range prog.Lines {
		if line.HasFrameSize {
			runningFrame = line.FrameSize
			haveFrame = true
		}
		if line.Label != "" {
			if _, dup := labelToIndex[line.Label]; dup {
				return nil, nil, errf(line.SourceLine, "label %q redefined", line.Label)
			}
			labelToIndex[line.Label] = i
			if haveFrame {
				frameSize[line.Label] = runningFrame
			}
		}
		if line.Instruction != nil {
			i++
		}
	}

	if i == 0 {
		return nil, nil, errf(0, "program has no instructions")
	}
	for label, idx := range labelToIndex {
		if idx == i {
			return nil, nil, errf(0, "label %q is not followed by any instruction", label)
		}
	}
	if entryIdx, ok := labelToIndex[EntryLabel]; ok && entryIdx != 0 {
		return nil, nil, errf(0, "label %q must be the program's first instruction", EntryLabel)
	}
	return labelToIndex, frameSize, nil
}

// resolvePass walks instruction lines a second time, resolving every
// operand against its opcode's declared signature and producing the
// final typed Instruction table.
func resolvePass(prog *parser.Program, labelToIndex map[string]int, frameSize map[string]uint32) ([]isa.Instruction, error) {
	var out []isa.Instruction

	for _, line := range prog.Lines {
		in := line.Instruction
		if in == nil {
			continue
		}

		op, sig, err := resolveOpcode(in)
		if err != nil {
			return nil, err
		}

		if err := checkHint(in, sig); err != nil {
			return nil, err
		}

		n := sig.NumOperands()
		if len(in.Operands) != n {
			return nil, errf(in.Line, "%s expects %d operand(s), got %d", sig.Name, n, len(in.Operands))
		}

		var operands [3]isa.Operand
		for idx := 0; idx < n; idx++ {
			resolved, err := resolveOperand(sig.Operands[idx], in.Operands[idx], sig.ImmBits, sig.ImmSigned, labelToIndex)
			if err != nil {
				return nil, err
			}
			operands[idx] = resolved
		}

		if op == isa.CALLI || op == isa.TAILI {
			label := in.Operands[0].Ident
			if _, ok := frameSize[label]; !ok {
				return nil, errf(in.Line, "%s target %q has no #[framesize(...)] annotation", sig.Name, label)
			}
		}

		if op == isa.MUL || op == isa.MULI || op == isa.MULU || op == isa.MULSU {
			if dst := operands[0].Slot; dst%2 != 0 {
				return nil, errf(in.Line, "%s destination slot %d must be even-aligned (it also writes slot %d)", sig.Name, dst, dst+1)
			}
		}

		out = append(out, isa.Instruction{
			Op:       op,
			Operands: operands,
			Hint:     in.Hint,
			Line:     in.Line,
		})
	}
	return out, nil
}

// resolveOpcode looks up in's mnemonic, special-casing the generic "J"
// mnemonic: it lowers to JUMPI when its one operand is a label, or
// JUMPV when it is a slot.
func resolveOpcode(in *parser.Instruction) (isa.Opcode, isa.Signature, error) {
	op, ok := isa.Lookup(in.Mnemonic)
	if !ok {
		return 0, isa.Signature{}, errf(in.Line, "unknown opcode %q", in.Mnemonic)
	}

	if op != isa.J {
		sig, _ := op.Signature()
		return op, sig, nil
	}

	if len(in.Operands) != 1 {
		return 0, isa.Signature{}, errf(in.Line, "J expects 1 operand, got %d", len(in.Operands))
	}
	switch in.Operands[0].Kind {
	case parser.OperandIdent:
		sig, _ := isa.JUMPI.Signature()
		return isa.JUMPI, sig, nil
	case parser.OperandSlot:
		sig, _ := isa.JUMPV.Signature()
		return isa.JUMPV, sig, nil
	default:
		return 0, isa.Signature{}, errf(in.Line, "J operand must be a label or a slot")
	}
}

func checkHint(in *parser.Instruction, sig isa.Signature) error {
	switch sig.Hint {
	case isa.HintForbidden:
		if in.Hint {
			return errf(in.Line, "%s does not accept the prover-hint flag '!'", sig.Name)
		}
	case isa.HintRequired:
		if !in.Hint {
			return errf(in.Line, "%s requires the prover-hint flag '!'", sig.Name)
		}
	}
	return nil
}

func resolveOperand(kind isa.OperandKind, raw parser.Operand, immBits int, immSigned bool, labelToIndex map[string]int) (isa.Operand, error) {
	switch kind {
	case isa.KindSlot:
		if raw.Kind != parser.OperandSlot {
			return isa.Operand{}, errf(raw.Line, "expected a slot operand (@N)")
		}
		return isa.Operand{Kind: isa.KindSlot, Slot: raw.Slot}, nil

	case isa.KindSlotOffset:
		switch raw.Kind {
		case parser.OperandSlotOffset:
			return isa.Operand{Kind: isa.KindSlotOffset, Slot: raw.Slot, Offset: uint16(raw.Offset)}, nil
		case parser.OperandSlot:
			return isa.Operand{Kind: isa.KindSlotOffset, Slot: raw.Slot, Offset: 0}, nil
		default:
			return isa.Operand{}, errf(raw.Line, "expected a slot or slot-offset operand (@N or @N[M])")
		}

	case isa.KindImmInt:
		if raw.Kind != parser.OperandImmediate || raw.IsGExp {
			return isa.Operand{}, errf(raw.Line, "expected a plain integer immediate (#DIGITS)")
		}
		v, err := truncateImm(raw.Imm, immBits, immSigned)
		if err != nil {
			return isa.Operand{}, errf(raw.Line, "%v", err)
		}
		return isa.Operand{Kind: isa.KindImmInt, Imm: v}, nil

	case isa.KindImmField:
		if raw.Kind != parser.OperandImmediate {
			return isa.Operand{}, errf(raw.Line, "expected a field-element immediate")
		}
		var fe field.B32
		if raw.IsGExp {
			if raw.Imm < 0 {
				fe = field.MustInv(field.Pow(field.G, uint32(-raw.Imm)))
			} else {
				fe = field.Pow(field.G, uint32(raw.Imm))
			}
		} else {
			if raw.Imm < 0 || raw.Imm > 0xFFFFFFFF {
				return isa.Operand{}, errf(raw.Line, "field-element literal out of range: %d", raw.Imm)
			}
			fe = field.B32(uint32(raw.Imm))
		}
		return isa.Operand{Kind: isa.KindImmField, Imm: uint32(fe)}, nil

	case isa.KindLabel:
		if raw.Kind != parser.OperandIdent {
			return isa.Operand{}, errf(raw.Line, "expected a label operand")
		}
		idx, ok := labelToIndex[raw.Ident]
		if !ok {
			return isa.Operand{}, errf(raw.Line, "unknown label %q", raw.Ident)
		}
		return isa.Operand{Kind: isa.KindLabel, Imm: uint32(PCAt(idx))}, nil

	default:
		return isa.Operand{}, errf(raw.Line, "unsupported operand kind")
	}
}

func truncateImm(v int64, bits int, signed bool) (uint32, error) {
	if bits <= 0 || bits > 32 {
		bits = 32
	}
	if signed {
		lo := -(int64(1) << uint(bits-1))
		hi := (int64(1) << uint(bits-1)) - 1
		if v < lo || v > hi {
			return 0, errf(0, "immediate %d overflows signed %d-bit field", v, bits)
		}
		// Sign-extend to the full 32-bit word so the interpreter can
		// treat the stored Imm as a plain int32 bit pattern.
		return uint32(int32(v)), nil
	}
	hi := (int64(1) << uint(bits)) - 1
	if bits == 32 {
		hi = int64(^uint32(0))
	}
	if v < 0 || v > hi {
		return 0, errf(0, "immediate %d overflows unsigned %d-bit field", v, bits)
	}
	return uint32(v), nil
}
