// Package field implements PetraVM's binary field arithmetic: B32, the
// 32-bit field GF(2^32) that program counters and most opcodes operate
// over, and B128, its degree-4 extension.
package field

import "fmt"

// B32 is an element of GF(2^32). Addition is bitwise XOR; the zero value
// is the additive identity and 1 is the multiplicative identity.
type B32 uint32

// poly is the fixed primitive polynomial defining GF(2^32):
//
//	x^32 + x^22 + x^2 + x + 1
//
// (LFSR taps 32,22,2,1 — a standard maximal-length degree-32 primitive
// polynomial). Because it is primitive, x itself generates the full
// order-(2^32-1) multiplicative group, so G is fixed at the bit pattern
// for x: 0x00000002. The polynomial and G are documented here and never
// change; tests compare B32 values by raw bit pattern against this fixed
// choice.
const poly uint64 = 1<<32 | 1<<22 | 1<<2 | 1<<1 | 1<<0

// G is the fixed multiplicative generator of GF(2^32)*.
const G B32 = 2

// Zero and One are the additive and multiplicative identities.
const (
	Zero B32 = 0
	One  B32 = 1
)

// Add returns a XOR b, the field addition.
func Add(a, b B32) B32 {
	return a ^ b
}

// Mul returns the product of a and b in GF(2^32).
func Mul(a, b B32) B32 {
	var product uint64
	x, y := uint64(a), uint64(b)
	for y != 0 {
		if y&1 != 0 {
			product ^= x
		}
		x <<= 1
		y >>= 1
	}
	return B32(reduce(product))
}

// reduce folds a carry-less product of at most 63 bits back into 32
// bits modulo poly.
func reduce(product uint64) uint64 {
	for deg := 62; deg >= 32; deg-- {
		if product&(1<<uint(deg)) != 0 {
			product ^= poly << uint(deg-32)
		}
	}
	return product
}

// Pow returns base^k by square-and-multiply; with base G it yields the
// PC G^k for k in [0, 2^32-1).
func Pow(base B32, k uint32) B32 {
	result := One
	b := base
	e := k
	for e != 0 {
		if e&1 != 0 {
			result = Mul(result, b)
		}
		b = Mul(b, b)
		e >>= 1
	}
	return result
}

// Inv returns the multiplicative inverse of a non-zero element via
// Fermat's little theorem: a^(2^32-2) = a^-1, since the multiplicative
// group of GF(2^32) has order 2^32-1.
func Inv(a B32) (B32, error) {
	if a == Zero {
		return Zero, fmt.Errorf("field: inverse of zero is undefined")
	}
	return Pow(a, 0xFFFFFFFE), nil
}

// MustInv is Inv but panics on zero input; used only where the caller
// has already established non-zero-ness.
func MustInv(a B32) B32 {
	v, err := Inv(a)
	if err != nil {
		panic(err)
	}
	return v
}

// String renders the element as a hex literal for debugging.
func (a B32) String() string {
	return fmt.Sprintf("0x%08x", uint32(a))
}
