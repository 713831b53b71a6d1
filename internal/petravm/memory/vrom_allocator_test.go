package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlignTo(t *testing.T) {
	require.EqualValues(t, 0, alignTo(0, minFrameSize))
	require.EqualValues(t, 8, alignTo(3, minFrameSize))
	require.EqualValues(t, 8, alignTo(8, minFrameSize))
	require.EqualValues(t, 16, alignTo(9, minFrameSize))
}

func TestSplitIntoPowerOfTwoBlocks(t *testing.T) {
	require.Equal(t, []block{{0, 8}}, splitIntoPowerOfTwoBlocks(0, 8))
	require.Equal(t, []block{{0, 8}}, splitIntoPowerOfTwoBlocks(0, 12))
	require.Equal(t, []block{{8, 8}}, splitIntoPowerOfTwoBlocks(4, 12))
}

func TestAllocMinimalFrameSize(t *testing.T) {
	a := newVromAllocator()
	addr1 := a.alloc(1)
	require.EqualValues(t, 0, addr1)
	require.EqualValues(t, 8, a.pos)

	addr2 := a.alloc(4)
	require.EqualValues(t, 8, addr2)
	require.EqualValues(t, 16, a.pos)
	require.Empty(t, a.slack)
}

func TestAllocNoSlack(t *testing.T) {
	a := newVromAllocator()
	addr1 := a.alloc(9)
	require.EqualValues(t, 0, addr1)
	require.EqualValues(t, 16, a.pos)

	addr2 := a.alloc(10)
	require.EqualValues(t, 16, addr2)
	require.EqualValues(t, 32, a.pos)
}

func TestAllocReusesSlack(t *testing.T) {
	a := newVromAllocator()
	a.alloc(16) // pos=0..16
	a.alloc(40) // p=64: pos aligns from 16 up to 64 (that gap becomes slack), then bumps to 128

	// Force a 16-aligned slack block directly; as the most recently added
	// 16-slot block it is reused first, before bumping pos.
	a.addSlack(1024, 16)
	before := a.pos
	addr := a.alloc(10) // p=16
	require.EqualValues(t, 1024, addr)
	require.Equal(t, before, a.pos, "reusing slack must not move the bump pointer")
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[uint32]uint32{0: 1, 1: 1, 2: 2, 3: 4, 9: 16, 16: 16, 17: 32}
	for in, want := range cases {
		require.Equal(t, want, nextPowerOfTwo(in), "nextPowerOfTwo(%d)", in)
	}
}
