package field

// B128 is an element of the degree-4 extension of GF(2^32) used by
// B128_ADD/B128_MUL and by the four-limb VROM views (MVV.L). An element
// c0 + c1*t + c2*t^2 + c3*t^3 is stored with c0 as the low limb, matching
// VROM's little-limb-first layout.
type B128 [4]B32

// beta is the fixed non-zero constant in the reduction polynomial
// t^4 + t + beta. Any fixed non-zero constant yields a well-defined,
// associative, distributive ring; no opcode semantics depend
// on a specific choice beyond it being fixed across a run.
const beta B32 = 0x0000002D

// AddB128 returns componentwise XOR of a and b.
func AddB128(a, b B128) B128 {
	return B128{
		Add(a[0], b[0]),
		Add(a[1], b[1]),
		Add(a[2], b[2]),
		Add(a[3], b[3]),
	}
}

// MulB128 returns the product of a and b modulo t^4 + t + beta.
func MulB128(a, b B128) B128 {
	// Schoolbook multiplication of two degree-3 polynomials over B32,
	// producing a degree-6 polynomial in 7 coefficients, then reduced.
	var wide [7]B32
	for i := 0; i < 4; i++ {
		if a[i] == Zero {
			continue
		}
		for j := 0; j < 4; j++ {
			if b[j] == Zero {
				continue
			}
			wide[i+j] = Add(wide[i+j], Mul(a[i], b[j]))
		}
	}
	// Reduce degrees 6,5,4 using t^4 = t + beta (mod t^4+t+beta == 0).
	for deg := 6; deg >= 4; deg-- {
		c := wide[deg]
		if c == Zero {
			continue
		}
		wide[deg] = Zero
		// t^deg = t^(deg-4) * t^4 = t^(deg-4) * (t + beta)
		//       = beta * t^(deg-4) + t^(deg-3)
		wide[deg-4] = Add(wide[deg-4], Mul(c, beta))
		wide[deg-3] = Add(wide[deg-3], c)
	}
	return B128{wide[0], wide[1], wide[2], wide[3]}
}

// OneB128 is the multiplicative identity of the extension field.
var OneB128 = B128{One, Zero, Zero, Zero}

// ZeroB128 is the additive identity of the extension field.
var ZeroB128 = B128{Zero, Zero, Zero, Zero}
