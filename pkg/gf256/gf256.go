// Package gf256 implements arithmetic over GF(2^8), the finite field used to
// split and reconstruct secrets. The field is pinned to the AES (Rijndael)
// reduction polynomial x^8 + x^4 + x^3 + x + 1 (0x11b); the splitter and the
// reconstructor must agree on this constant, since a mismatch corrupts
// results silently instead of erroring.
package gf256

import "crypto/subtle"

// reductionPolynomial is x^8 + x^4 + x^3 + x + 1.
const reductionPolynomial = 0x11b

// Log/exp tables over the multiplicative group, built once from generator 3.
var (
	expTable [256]byte
	logTable [256]byte
)

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		expTable[i] = byte(x)
		logTable[x] = byte(i)

		// Multiply by the generator 3: x*3 = (x<<1) ^ x, reduced mod 0x11b.
		x = (x << 1) ^ x
		if x >= 256 {
			x ^= reductionPolynomial
		}
	}
	expTable[255] = expTable[0]
}

// Add combines two field elements. Addition is XOR and is its own inverse,
// so Add doubles as subtraction.
func Add(a, b byte) byte {
	return a ^ b
}

// Mul multiplies two field elements.
func Mul(a, b byte) byte {
	sum := (int(logTable[a]) + int(logTable[b])) % 255

	ret := expTable[sum]

	// The log table has no entry for 0; mask the result instead of branching
	// on secret data.
	if subtle.ConstantTimeByteEq(a, 0) == 1 {
		ret = 0
	}
	if subtle.ConstantTimeByteEq(b, 0) == 1 {
		ret = 0
	}

	return ret
}

// Div divides a by b. Dividing by zero is a programmer error and panics;
// share indices are non-zero by construction, so callers interpolating over
// valid shares never hit it.
func Div(a, b byte) byte {
	if b == 0 {
		panic("gf256: division by zero")
	}

	diff := (int(logTable[a]) - int(logTable[b])) % 255
	if diff < 0 {
		diff += 255
	}

	ret := expTable[diff]

	if subtle.ConstantTimeByteEq(a, 0) == 1 {
		ret = 0
	}

	return ret
}

// Inverse returns the multiplicative inverse of a. Zero has no inverse and
// panics.
func Inverse(a byte) byte {
	if a == 0 {
		panic("gf256: zero has no inverse")
	}
	return expTable[255-int(logTable[a])]
}
