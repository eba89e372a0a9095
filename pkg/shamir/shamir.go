// Package shamir implements Shamir's Secret Sharing over GF(2^8): a secret is
// split into n shares such that any k of them reconstruct it and fewer than k
// reveal nothing. Each byte of the secret gets its own random polynomial of
// degree k-1 with the byte as constant term; a share holds the evaluations of
// those polynomials at the share's index.
package shamir

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/mvellis/cryptit/pkg/gf256"
)

var (
	// ErrInvalidThreshold is returned when k/n violate 1 <= k <= n <= 255.
	ErrInvalidThreshold = errors.New("shamir: invalid threshold")

	// ErrShareGeneration is returned when the randomness source fails while
	// drawing polynomial coefficients.
	ErrShareGeneration = errors.New("shamir: share generation failed")

	// ErrInsufficientShares is returned when no shares are supplied at all.
	// Supplying fewer than k shares is NOT detectable: the scheme carries no
	// metadata about k, so interpolation succeeds and produces bytes
	// unrelated to the secret. Callers needing correctness must verify the
	// result themselves (the encryption envelope uses the AEAD tag for this).
	ErrInsufficientShares = errors.New("shamir: no shares provided")

	// ErrInvalidShareFormat is returned for shares with mismatched value
	// lengths, zero or duplicate indices, or undecodable tokens.
	ErrInvalidShareFormat = errors.New("shamir: invalid share format")

	// ErrReconstruction is returned if interpolation would divide by zero,
	// which only happens when a duplicate index slips past validation.
	ErrReconstruction = errors.New("shamir: reconstruction failed")
)

// polynomial is a polynomial over GF(2^8), coefficients in ascending degree.
type polynomial struct {
	coefficients []byte
}

// makePolynomial constructs a random polynomial of the given degree with the
// provided intercept. The non-constant coefficients come from crypto/rand.
func makePolynomial(intercept byte, degree int) (polynomial, error) {
	p := polynomial{
		coefficients: make([]byte, degree+1),
	}

	p.coefficients[0] = intercept

	if degree > 0 {
		if _, err := rand.Read(p.coefficients[1:]); err != nil {
			return p, fmt.Errorf("%w: %v", ErrShareGeneration, err)
		}
	}

	return p, nil
}

// evaluate returns the value of the polynomial at x using Horner's method.
func (p *polynomial) evaluate(x byte) byte {
	if x == 0 {
		return p.coefficients[0]
	}

	degree := len(p.coefficients) - 1
	out := p.coefficients[degree]
	for i := degree - 1; i >= 0; i-- {
		out = gf256.Add(gf256.Mul(out, x), p.coefficients[i])
	}
	return out
}

// Split divides secret into n shares, any k of which reconstruct it.
// Shares are assigned the indices 1..n. k=1 is legal: every share then
// carries the secret verbatim (degree-0 polynomials).
func Split(secret []byte, k, n int) ([]Share, error) {
	if k < 1 || k > n || n > 255 {
		return nil, fmt.Errorf("%w: k=%d, n=%d (need 1 <= k <= n <= 255)", ErrInvalidThreshold, k, n)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: cannot split empty secret", ErrInvalidThreshold)
	}

	shares := make([]Share, n)
	for i := range shares {
		shares[i] = Share{
			Index:  byte(i) + 1,
			Values: make([]byte, len(secret)),
		}
	}

	for pos, b := range secret {
		p, err := makePolynomial(b, k-1)
		if err != nil {
			return nil, err
		}

		for i := range shares {
			shares[i].Values[pos] = p.evaluate(shares[i].Index)
		}
	}

	return shares, nil
}

// Combine reconstructs the secret from the supplied shares. Order does not
// matter. At least one share is required; all shares must have values of the
// same length and pairwise distinct non-zero indices.
//
// Combine cannot tell whether enough shares were supplied: with fewer than
// the original k it still succeeds and returns bytes that are uniformly
// unrelated to the secret. That is a property of the scheme, not a defect.
func Combine(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, ErrInsufficientShares
	}

	secretLen := len(shares[0].Values)
	if secretLen == 0 {
		return nil, fmt.Errorf("%w: empty share values", ErrInvalidShareFormat)
	}

	seen := make(map[byte]bool, len(shares))
	for _, s := range shares {
		if len(s.Values) != secretLen {
			return nil, fmt.Errorf("%w: share value lengths differ", ErrInvalidShareFormat)
		}
		if s.Index == 0 {
			return nil, fmt.Errorf("%w: share index must be non-zero", ErrInvalidShareFormat)
		}
		if seen[s.Index] {
			return nil, fmt.Errorf("%w: duplicate share index %d", ErrInvalidShareFormat, s.Index)
		}
		seen[s.Index] = true
	}

	secret := make([]byte, secretLen)
	ySamples := make([]byte, len(shares))

	for pos := range secret {
		for i, s := range shares {
			ySamples[i] = s.Values[pos]
		}
		val, err := interpolateAtZero(shares, ySamples)
		if err != nil {
			return nil, err
		}
		secret[pos] = val
	}

	return secret, nil
}

// interpolateAtZero recovers the constant term of the polynomial passing
// through the (index, y) samples via Lagrange interpolation at x=0.
func interpolateAtZero(shares []Share, ySamples []byte) (byte, error) {
	var result byte
	for i := range shares {
		basis := byte(1)
		for j := range shares {
			if i == j {
				continue
			}
			// basis *= (0 - x_j) / (x_i - x_j); subtraction is XOR.
			num := shares[j].Index
			denom := gf256.Add(shares[i].Index, shares[j].Index)
			if denom == 0 {
				return 0, fmt.Errorf("%w: duplicate index %d reached interpolation", ErrReconstruction, shares[i].Index)
			}
			basis = gf256.Mul(basis, gf256.Div(num, denom))
		}
		result = gf256.Add(result, gf256.Mul(ySamples[i], basis))
	}
	return result, nil
}
