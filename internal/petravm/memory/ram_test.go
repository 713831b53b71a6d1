package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRamByteRoundTrip(t *testing.T) {
	r := NewRAM(0)
	require.NoError(t, r.StoreByte(3, 0xAB))
	got, err := r.LoadByte(3)
	require.NoError(t, err)
	require.EqualValues(t, 0xAB, got)
}

func TestRamWordRoundTripLittleEndian(t *testing.T) {
	r := NewRAM(0)
	require.NoError(t, r.StoreWord(0, 0xdeadbeef))
	got, err := r.LoadWord(0)
	require.NoError(t, err)
	require.EqualValues(t, 0xdeadbeef, got)

	b0, _ := r.LoadByte(0)
	b3, _ := r.LoadByte(3)
	require.EqualValues(t, 0xef, b0)
	require.EqualValues(t, 0xde, b3)
}

func TestRamAlignmentErrors(t *testing.T) {
	r := NewRAM(0)
	_, err := r.LoadWord(2)
	require.Error(t, err)
	var align *RamAlignmentError
	require.ErrorAs(t, err, &align)

	err = r.StoreHalf(1, 5)
	require.Error(t, err)
	require.ErrorAs(t, err, &align)
}

func TestRamOutOfRange(t *testing.T) {
	r := NewRAM(4)
	_, err := r.LoadByte(4)
	require.Error(t, err)
	var oor *RamOutOfRange
	require.ErrorAs(t, err, &oor)
}

func TestRamTimestampMonotonic(t *testing.T) {
	r := NewRAM(0)
	require.EqualValues(t, 0, r.Timestamp())
	_ = r.StoreByte(0, 1)
	require.EqualValues(t, 1, r.Timestamp())
	_, _ = r.LoadByte(0)
	require.EqualValues(t, 2, r.Timestamp())
}

func TestRamLatestWriteWins(t *testing.T) {
	r := NewRAM(0)
	require.NoError(t, r.StoreWord(0, 1))
	require.NoError(t, r.StoreWord(0, 2))
	got, err := r.LoadWord(0)
	require.NoError(t, err)
	require.EqualValues(t, 2, got)
}
