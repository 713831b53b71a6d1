package memory

import "fmt"

// VromConflict reports a VROM write whose value disagrees with a
// prior write to the same slot.
type VromConflict struct {
	Slot     uint32
	Previous uint32
	Attempt  uint32
}

func (e *VromConflict) Error() string {
	return fmt.Sprintf("vrom: slot %d already written as %d, cannot rewrite as %d", e.Slot, e.Previous, e.Attempt)
}

// VromOutOfRange reports a slot index beyond the configured VROM
// bound.
type VromOutOfRange struct {
	Slot  uint32
	Bound uint32
}

func (e *VromOutOfRange) Error() string {
	return fmt.Sprintf("vrom: slot %d exceeds configured bound %d", e.Slot, e.Bound)
}

// AlignmentError reports a 128-bit VROM access at a slot that is not a
// multiple of 4.
type AlignmentError struct {
	Slot uint32
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("vrom: slot %d is not 4-aligned for a 128-bit access", e.Slot)
}

// RamOutOfRange reports a byte address beyond the configured RAM
// bound.
type RamOutOfRange struct {
	Addr  uint32
	Bound uint32
}

func (e *RamOutOfRange) Error() string {
	return fmt.Sprintf("ram: address %d exceeds configured bound %d", e.Addr, e.Bound)
}

// RamAlignmentError reports a halfword/word RAM access at a
// misaligned byte address.
type RamAlignmentError struct {
	Addr  uint32
	Width int
}

func (e *RamAlignmentError) Error() string {
	return fmt.Sprintf("ram: address %d is not %d-byte aligned", e.Addr, e.Width)
}

// PromMiss reports a fetch at a PC that does not correspond to any
// instruction.
type PromMiss struct {
	PC uint32
}

func (e *PromMiss) Error() string {
	return fmt.Sprintf("prom: no instruction at pc 0x%08x", e.PC)
}
