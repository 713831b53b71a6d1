package memory

import "github.com/petravm/petravm/internal/petravm/field"

// VROM is PetraVM's write-once, non-deterministically-allocated slot
// memory. It tracks "written" explicitly per slot rather than treating
// zero as a sentinel for "unwritten": zero is a legal VROM value, not
// a hole.
type VROM struct {
	values   []uint32
	written  []bool
	oracle   AllocatorOracle
	maxSlots uint32 // 0 means unbounded
}

// New returns an empty VROM backed by oracle, growable up to maxSlots
// (0 for unbounded).
func New(oracle AllocatorOracle, maxSlots uint32) *VROM {
	return &VROM{oracle: oracle, maxSlots: maxSlots}
}

// Preset marks slot as already written with value, without going
// through the allocator oracle. Used to seed the entry frame, e.g.
// slot 0's return-PC(0) sentinel.
func (v *VROM) Preset(slot, value uint32) error {
	if err := v.ensure(slot); err != nil {
		return err
	}
	v.values[slot] = value
	v.written[slot] = true
	return nil
}

func (v *VROM) ensure(slot uint32) error {
	if v.maxSlots != 0 && slot >= v.maxSlots {
		return &VromOutOfRange{Slot: slot, Bound: v.maxSlots}
	}
	if int(slot) >= len(v.values) {
		grown := make([]uint32, slot+1)
		copy(grown, v.values)
		v.values = grown
		grownW := make([]bool, slot+1)
		copy(grownW, v.written)
		v.written = grownW
	}
	return nil
}

// Read returns the value at slot, consulting the allocator oracle on
// first read of an unwritten slot and recording that value as written
// (so a later write of the same value is a no-op).
func (v *VROM) Read(slot uint32) (uint32, error) {
	if err := v.ensure(slot); err != nil {
		return 0, err
	}
	if !v.written[slot] {
		v.values[slot] = v.oracle.Value(slot)
		v.written[slot] = true
	}
	return v.values[slot], nil
}

// Write sets slot to value. A write to an unwritten slot always
// succeeds; a write to an already-written slot is a no-op if value
// matches, or a VromConflict otherwise.
func (v *VROM) Write(slot, value uint32) error {
	if err := v.ensure(slot); err != nil {
		return err
	}
	if v.written[slot] {
		if v.values[slot] != value {
			return &VromConflict{Slot: slot, Previous: v.values[slot], Attempt: value}
		}
		return nil
	}
	v.values[slot] = value
	v.written[slot] = true
	return nil
}

// Alloc requests a fresh block of size slots from the allocator
// oracle, returning its base address.
func (v *VROM) Alloc(size uint32) uint32 {
	return v.oracle.Alloc(size)
}

// ReadB128 reads the four-limb B128 view starting at slot, which must
// be a multiple of 4.
func (v *VROM) ReadB128(slot uint32) (field.B128, error) {
	if slot%4 != 0 {
		return field.ZeroB128, &AlignmentError{Slot: slot}
	}
	var out field.B128
	for i := uint32(0); i < 4; i++ {
		limb, err := v.Read(slot + i)
		if err != nil {
			return field.ZeroB128, err
		}
		out[i] = field.B32(limb)
	}
	return out, nil
}

// WriteB128 writes the four-limb B128 view starting at slot, which
// must be a multiple of 4, one limb at a time. A conflict on any limb
// aborts before writing the limbs after it.
func (v *VROM) WriteB128(slot uint32, val field.B128) error {
	if slot%4 != 0 {
		return &AlignmentError{Slot: slot}
	}
	for i := uint32(0); i < 4; i++ {
		if err := v.Write(slot+i, uint32(val[i])); err != nil {
			return err
		}
	}
	return nil
}
