package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddIsXor(t *testing.T) {
	require.Equal(t, B32(0x12345678^0x0f0f0f0f), Add(B32(0x12345678), B32(0x0f0f0f0f)))
	require.Equal(t, Zero, Add(B32(0xdeadbeef), B32(0xdeadbeef)))
}

func TestMulIdentity(t *testing.T) {
	for _, x := range []B32{0, 1, 2, 0xdeadbeef, 0xffffffff} {
		require.Equal(t, x, Mul(One, x), "1*x != x for %v", x)
		require.Equal(t, x, Mul(x, One), "x*1 != x for %v", x)
	}
}

func TestMulZero(t *testing.T) {
	require.Equal(t, Zero, Mul(Zero, B32(0x1234)))
}

func TestMulCommutative(t *testing.T) {
	a, b := B32(0x1234abcd), B32(0x0badf00d)
	require.Equal(t, Mul(a, b), Mul(b, a))
}

func TestMulDistributive(t *testing.T) {
	a, b, c := B32(0x1111), B32(0x2222), B32(0x3333)
	lhs := Mul(a, Add(b, c))
	rhs := Add(Mul(a, b), Mul(a, c))
	require.Equal(t, lhs, rhs)
}

func TestPowZeroIsOne(t *testing.T) {
	require.Equal(t, One, Pow(G, 0))
}

func TestPowMatchesRepeatedMul(t *testing.T) {
	got := Pow(G, 5)
	want := Mul(Mul(Mul(Mul(G, G), G), G), G)
	require.Equal(t, want, got)
}

func TestInvRoundTrip(t *testing.T) {
	for _, x := range []B32{1, 2, 0x1234, 0xdeadbeef} {
		inv, err := Inv(x)
		require.NoError(t, err)
		require.Equal(t, One, Mul(x, inv), "x*inv(x) != 1 for %v", x)
	}
}

func TestInvZeroErrors(t *testing.T) {
	_, err := Inv(Zero)
	require.Error(t, err)
}

func TestGeneratorOrderDividesGroupOrder(t *testing.T) {
	// G^(2^32-1) must be 1 since the multiplicative group has that order.
	require.Equal(t, One, Pow(G, 0xFFFFFFFF))
}

func TestB128AddIsComponentwiseXor(t *testing.T) {
	a := B128{1, 2, 3, 4}
	b := B128{5, 6, 7, 8}
	got := AddB128(a, b)
	want := B128{Add(1, 5), Add(2, 6), Add(3, 7), Add(4, 8)}
	require.Equal(t, want, got)
}

func TestB128MulIdentity(t *testing.T) {
	x := B128{0x1234, 0x5678, 0x9abc, 0xdef0}
	require.Equal(t, x, MulB128(OneB128, x))
	require.Equal(t, x, MulB128(x, OneB128))
}

func TestB128MulZero(t *testing.T) {
	x := B128{0x1234, 0x5678, 0x9abc, 0xdef0}
	require.Equal(t, ZeroB128, MulB128(ZeroB128, x))
}

func TestB128MulCommutative(t *testing.T) {
	a := B128{1, 2, 3, 4}
	b := B128{9, 8, 7, 6}
	require.Equal(t, MulB128(a, b), MulB128(b, a))
}
