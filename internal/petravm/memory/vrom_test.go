package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petravm/petravm/internal/petravm/field"
)

func TestVromWriteThenReadSameValueIsNoop(t *testing.T) {
	v := New(NewZeroOracle(0), 0)
	require.NoError(t, v.Write(5, 42))
	require.NoError(t, v.Write(5, 42))
	got, err := v.Read(5)
	require.NoError(t, err)
	require.EqualValues(t, 42, got)
}

func TestVromWriteConflict(t *testing.T) {
	v := New(NewZeroOracle(0), 0)
	require.NoError(t, v.Write(5, 42))
	err := v.Write(5, 43)
	require.Error(t, err)
	var conflict *VromConflict
	require.ErrorAs(t, err, &conflict)
	require.EqualValues(t, 5, conflict.Slot)
}

func TestVromReadUnwrittenConsultsOracle(t *testing.T) {
	v := New(NewZeroOracle(0), 0)
	got, err := v.Read(9)
	require.NoError(t, err)
	require.EqualValues(t, 0, got)
	// Having been read once, a write of the oracle's value is a no-op.
	require.NoError(t, v.Write(9, 0))
}

func TestVromOutOfRange(t *testing.T) {
	v := New(NewZeroOracle(0), 4)
	_, err := v.Read(4)
	require.Error(t, err)
	var oor *VromOutOfRange
	require.ErrorAs(t, err, &oor)
}

func TestVromB128RequiresAlignment(t *testing.T) {
	v := New(NewZeroOracle(0), 0)
	_, err := v.ReadB128(1)
	require.Error(t, err)
	var align *AlignmentError
	require.ErrorAs(t, err, &align)

	err = v.WriteB128(2, field.ZeroB128)
	require.Error(t, err)
	require.ErrorAs(t, err, &align)
}

func TestVromB128RoundTrip(t *testing.T) {
	v := New(NewZeroOracle(0), 0)
	val := field.B128{1, 2, 3, 4}
	require.NoError(t, v.WriteB128(0, val))
	got, err := v.ReadB128(0)
	require.NoError(t, err)
	require.Equal(t, val, got)
}

func TestVromPresetThenWriteSameValueIsNoop(t *testing.T) {
	v := New(NewZeroOracle(0), 0)
	require.NoError(t, v.Preset(0, 0))
	require.NoError(t, v.Write(0, 0))
	err := v.Write(0, 7)
	require.Error(t, err)
}

func TestZeroOracleAllocIsMonotonicAndPacked(t *testing.T) {
	o := NewZeroOracle(2)
	a1 := o.Alloc(1)
	a2 := o.Alloc(4)
	require.True(t, a2 > a1)
}
