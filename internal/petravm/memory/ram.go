package memory

// RAM is PetraVM's optional byte-addressable store. Every access bumps
// a monotonic timestamp and reads return the latest write; unlike VROM it is freely overwritable and has no
// allocator-oracle involvement.
type RAM struct {
	bytes    []byte
	ts       uint64
	maxBytes uint32 // 0 means unbounded
}

// NewRAM returns an empty RAM, growable up to maxBytes (0 for
// unbounded).
func NewRAM(maxBytes uint32) *RAM {
	return &RAM{maxBytes: maxBytes}
}

// Timestamp returns the number of RAM accesses performed so far.
func (r *RAM) Timestamp() uint64 {
	return r.ts
}

func (r *RAM) ensure(addr uint32, width int) error {
	end := uint64(addr) + uint64(width)
	if r.maxBytes != 0 && end > uint64(r.maxBytes) {
		return &RamOutOfRange{Addr: addr, Bound: r.maxBytes}
	}
	if end > uint64(len(r.bytes)) {
		grown := make([]byte, end)
		copy(grown, r.bytes)
		r.bytes = grown
	}
	return nil
}

func checkAligned(addr uint32, width int) error {
	if width > 1 && addr%uint32(width) != 0 {
		return &RamAlignmentError{Addr: addr, Width: width}
	}
	return nil
}

// LoadByte reads one byte at addr.
func (r *RAM) LoadByte(addr uint32) (byte, error) {
	if err := r.ensure(addr, 1); err != nil {
		return 0, err
	}
	r.ts++
	return r.bytes[addr], nil
}

// StoreByte writes one byte at addr.
func (r *RAM) StoreByte(addr uint32, v byte) error {
	if err := r.ensure(addr, 1); err != nil {
		return err
	}
	r.ts++
	r.bytes[addr] = v
	return nil
}

// LoadHalf reads a little-endian 16-bit halfword at addr, which must
// be 2-byte aligned.
func (r *RAM) LoadHalf(addr uint32) (uint16, error) {
	if err := checkAligned(addr, 2); err != nil {
		return 0, err
	}
	if err := r.ensure(addr, 2); err != nil {
		return 0, err
	}
	r.ts++
	return uint16(r.bytes[addr]) | uint16(r.bytes[addr+1])<<8, nil
}

// StoreHalf writes a little-endian 16-bit halfword at addr, which must
// be 2-byte aligned.
func (r *RAM) StoreHalf(addr uint32, v uint16) error {
	if err := checkAligned(addr, 2); err != nil {
		return err
	}
	if err := r.ensure(addr, 2); err != nil {
		return err
	}
	r.ts++
	r.bytes[addr] = byte(v)
	r.bytes[addr+1] = byte(v >> 8)
	return nil
}

// LoadWord reads a little-endian 32-bit word at addr, which must be
// 4-byte aligned.
func (r *RAM) LoadWord(addr uint32) (uint32, error) {
	if err := checkAligned(addr, 4); err != nil {
		return 0, err
	}
	if err := r.ensure(addr, 4); err != nil {
		return 0, err
	}
	r.ts++
	return uint32(r.bytes[addr]) | uint32(r.bytes[addr+1])<<8 |
		uint32(r.bytes[addr+2])<<16 | uint32(r.bytes[addr+3])<<24, nil
}

// StoreWord writes a little-endian 32-bit word at addr, which must be
// 4-byte aligned.
func (r *RAM) StoreWord(addr uint32, v uint32) error {
	if err := checkAligned(addr, 4); err != nil {
		return err
	}
	if err := r.ensure(addr, 4); err != nil {
		return err
	}
	r.ts++
	r.bytes[addr] = byte(v)
	r.bytes[addr+1] = byte(v >> 8)
	r.bytes[addr+2] = byte(v >> 16)
	r.bytes[addr+3] = byte(v >> 24)
	return nil
}
