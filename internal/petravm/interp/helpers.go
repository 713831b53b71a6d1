package interp

import (
	"fmt"

	"github.com/petravm/petravm/internal/petravm/isa"
)

var errUnresolvedJ = fmt.Errorf("interp: encountered unresolved J opcode; the lowerer must resolve it to JUMPI/JUMPV")

func errUnknownOpcode(op isa.Opcode) error {
	return fmt.Errorf("interp: no exec method for opcode %s", op)
}

// readFrame reads VROM slot fp+slot, recording the access for the
// current instruction's trace record.
func (m *Machine) readFrame(slot uint32) (uint32, error) {
	addr := m.fp + slot
	v, err := m.vrom.Read(addr)
	if err != nil {
		return 0, err
	}
	m.curReads = append(m.curReads, Access{Slot: addr, Value: v})
	return v, nil
}

// writeFrame writes VROM slot fp+slot, recording the access.
func (m *Machine) writeFrame(slot, value uint32) error {
	addr := m.fp + slot
	if err := m.vrom.Write(addr, value); err != nil {
		return err
	}
	m.curWrites = append(m.curWrites, Access{Slot: addr, Value: value})
	return nil
}

// readAbs reads an absolute (non-fp-relative) VROM slot, as produced
// by an earlier ALLOC or by following an already-absolute pointer.
func (m *Machine) readAbs(slot uint32) (uint32, error) {
	v, err := m.vrom.Read(slot)
	if err != nil {
		return 0, err
	}
	m.curReads = append(m.curReads, Access{Slot: slot, Value: v})
	return v, nil
}

// writeAbs writes an absolute VROM slot.
func (m *Machine) writeAbs(slot, value uint32) error {
	if err := m.vrom.Write(slot, value); err != nil {
		return err
	}
	m.curWrites = append(m.curWrites, Access{Slot: slot, Value: value})
	return nil
}

// fail wraps err in a HaltError; a small helper to keep exec methods
// one-liner-friendly.
func fail(err error) *Halt {
	if err == nil {
		return nil
	}
	return &Halt{Kind: HaltError, Err: err}
}

func mulSigned(a, b uint32) uint64 {
	return uint64(int64(int32(a)) * int64(int32(b)))
}

func mulUnsigned(a, b uint32) uint64 {
	return uint64(a) * uint64(b)
}

func mulSignedUnsigned(a, b uint32) uint64 {
	return uint64(int64(int32(a)) * int64(b))
}
