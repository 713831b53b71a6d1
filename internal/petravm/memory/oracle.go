package memory

// AllocatorOracle supplies the two pieces of non-determinism VROM
// needs that the program itself cannot compute: the address an
// ALLOCI/ALLOCV should bind to, and the value an otherwise-unwritten
// slot resolves to on first read.
type AllocatorOracle interface {
	// Alloc returns the VROM address of a fresh block of at least size
	// slots.
	Alloc(size uint32) uint32
	// Value returns the value an unwritten slot should read as. Called
	// at most once per slot, the first time it is read before any write.
	Value(slot uint32) uint32
}

// ZeroOracle is PetraVM's default allocator oracle: addresses come
// from the power-of-two bump/slack allocator in vrom_allocator.go, and
// every unwritten slot reads as zero. It has no external inputs and is
// deterministic given the sequence of Alloc calls, which makes it
// suitable for tests and for programs with no genuinely
// non-deterministic values.
type ZeroOracle struct {
	alloc *vromAllocator
}

// NewZeroOracle returns a ZeroOracle whose bump pointer starts past the
// first reserved slots (the entry frame), so that its allocations never
// collide with the pre-seeded entry frame.
func NewZeroOracle(reserved uint32) *ZeroOracle {
	a := newVromAllocator()
	a.setPos(reserved)
	return &ZeroOracle{alloc: a}
}

func (o *ZeroOracle) Alloc(size uint32) uint32 {
	return o.alloc.alloc(size)
}

func (o *ZeroOracle) Value(uint32) uint32 {
	return 0
}
