package memory

import (
	"github.com/petravm/petravm/internal/petravm/field"
	"github.com/petravm/petravm/internal/petravm/isa"
)

// PROM is the immutable program ROM: a mapping from field-element PC
// to instruction, built once by the lowerer and shared by reference
// for the life of a run.
type PROM struct {
	byPC  map[field.B32]isa.Instruction
	order []field.B32 // PCs in program order, for trace annotation/disassembly
}

// NewPROM builds a PROM from a PC-indexed instruction slice (index i
// maps to PC = G^i, per lower.Program.Instructions).
func NewPROM(instrs []isa.Instruction) *PROM {
	p := &PROM{byPC: make(map[field.B32]isa.Instruction, len(instrs))}
	for i, in := range instrs {
		pc := field.Pow(field.G, uint32(i))
		p.byPC[pc] = in
		p.order = append(p.order, pc)
	}
	return p
}

// Fetch returns the instruction at pc, or a *PromMiss if pc does not
// correspond to any instruction.
func (p *PROM) Fetch(pc field.B32) (isa.Instruction, error) {
	in, ok := p.byPC[pc]
	if !ok {
		return isa.Instruction{}, &PromMiss{PC: uint32(pc)}
	}
	return in, nil
}

// Len returns the number of instructions in the program.
func (p *PROM) Len() int {
	return len(p.order)
}
