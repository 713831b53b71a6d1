// Package interp implements PetraVM's fetch-decode-execute loop over
// the full closed opcode set, built on the field, VROM, and RAM
// primitives of package memory, recording an append-only execution
// trace as it runs.
package interp

import (
	"github.com/petravm/petravm/internal/petravm/field"
	"github.com/petravm/petravm/internal/petravm/memory"
)

// Config bounds a run. A zero value means "unbounded".
type Config struct {
	MaxSteps uint64
}

// Machine is one interpreter instance: PC, frame pointer, the memory
// model, and the trace accumulated so far. It is single-threaded and
// owns its VROM/RAM/trace exclusively for the run's duration.
type Machine struct {
	pc    field.B32
	fp    uint32
	steps uint64
	cfg   Config

	prom  *memory.PROM
	vrom  *memory.VROM
	ram   *memory.RAM
	trace []Record

	curReads  []Access
	curWrites []Access
}

// New returns a Machine ready to execute prom starting at entryPC with
// frame pointer entryFP. Callers are expected to have pre-populated
// vrom's entry frame (arguments plus the slot-0 return-PC sentinel)
// before calling Run.
func New(prom *memory.PROM, vrom *memory.VROM, ram *memory.RAM, entryPC field.B32, entryFP uint32, cfg Config) *Machine {
	return &Machine{
		pc:   entryPC,
		fp:   entryFP,
		cfg:  cfg,
		prom: prom,
		vrom: vrom,
		ram:  ram,
	}
}

// PC returns the machine's current program counter.
func (m *Machine) PC() field.B32 { return m.pc }

// FP returns the machine's current frame pointer.
func (m *Machine) FP() uint32 { return m.fp }

// Steps returns the number of instructions executed so far.
func (m *Machine) Steps() uint64 { return m.steps }

// Trace returns the accumulated execution trace in execution order.
func (m *Machine) Trace() []Record { return m.trace }

// VROM exposes the machine's VROM for embedder inspection after a run
// (e.g. to read return values out of the entry frame).
func (m *Machine) VROM() *memory.VROM { return m.vrom }
