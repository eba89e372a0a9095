package shamir

import (
	"bytes"
	"testing"
)

func TestSplitAndCombine(t *testing.T) {
	secret := []byte("a rather important 32-byte value")
	n := 5
	k := 3

	shares, err := Split(secret, k, n)
	if err != nil {
		t.Fatalf("Failed to split: %v", err)
	}
	if len(shares) != n {
		t.Errorf("Expected %d shares, got %d", n, len(shares))
	}

	// Exact threshold
	reconstructed, err := Combine(shares[:k])
	if err != nil {
		t.Fatalf("Failed to combine: %v", err)
	}
	if !bytes.Equal(secret, reconstructed) {
		t.Errorf("Reconstructed secret mismatch.\nExpected: %q\nGot: %q", secret, reconstructed)
	}

	// Over-supply: all n shares
	reconstructedAll, err := Combine(shares)
	if err != nil {
		t.Fatalf("Failed to combine all: %v", err)
	}
	if !bytes.Equal(secret, reconstructedAll) {
		t.Error("Failed to reconstruct with all shares")
	}
}

func TestCombineAnySubset(t *testing.T) {
	secret := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x42}
	shares, err := Split(secret, 2, 4)
	if err != nil {
		t.Fatalf("Failed to split: %v", err)
	}

	// Every pair of the 4 shares must reconstruct the secret.
	for i := 0; i < len(shares); i++ {
		for j := i + 1; j < len(shares); j++ {
			got, err := Combine([]Share{shares[i], shares[j]})
			if err != nil {
				t.Fatalf("Combine(%d, %d) failed: %v", i, j, err)
			}
			if !bytes.Equal(secret, got) {
				t.Errorf("Pair (%d, %d) reconstructed wrong secret", i, j)
			}
		}
	}
}

func TestCombineOrderIndependent(t *testing.T) {
	secret := []byte("order should not matter")
	shares, err := Split(secret, 3, 5)
	if err != nil {
		t.Fatalf("Failed to split: %v", err)
	}

	forward, err := Combine([]Share{shares[0], shares[2], shares[4]})
	if err != nil {
		t.Fatal(err)
	}
	backward, err := Combine([]Share{shares[4], shares[2], shares[0]})
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(forward, backward) {
		t.Error("Reconstruction depends on share order")
	}
	if !bytes.Equal(forward, secret) {
		t.Error("Reconstructed secret mismatch")
	}
}

func TestInsufficientSharesYieldGarbage(t *testing.T) {
	// With k-1 shares the interpolation still succeeds but the result is
	// unrelated to the secret. Run many trials; a single accidental match
	// across all of them is astronomically unlikely.
	secret := []byte("do not reveal below threshold!!!")
	matches := 0
	for trial := 0; trial < 64; trial++ {
		shares, err := Split(secret, 3, 5)
		if err != nil {
			t.Fatalf("Failed to split: %v", err)
		}
		got, err := Combine(shares[:2])
		if err != nil {
			t.Fatalf("Combine below threshold must not error: %v", err)
		}
		if bytes.Equal(got, secret) {
			matches++
		}
	}
	if matches > 0 {
		t.Errorf("Security failure: %d/64 below-threshold reconstructions matched the secret", matches)
	}
}

func TestDegenerateThreshold(t *testing.T) {
	// k=1 means degree-0 polynomials: every share IS the secret.
	secret := []byte{1, 2, 3, 4}
	shares, err := Split(secret, 1, 4)
	if err != nil {
		t.Fatalf("Failed to split with k=1: %v", err)
	}

	for i, s := range shares {
		if !bytes.Equal(s.Values, secret) {
			t.Errorf("Share %d values should equal the secret under k=1", i)
		}
		got, err := Combine([]Share{s})
		if err != nil {
			t.Fatalf("Single-share combine failed: %v", err)
		}
		if !bytes.Equal(got, secret) {
			t.Errorf("Share %d alone did not reconstruct the secret", i)
		}
	}
}

func TestZeroSecretScenario(t *testing.T) {
	// 32 zero bytes is a legal secret.
	secret := make([]byte, 32)

	shares, err := Split(secret, 2, 3)
	if err != nil {
		t.Fatalf("Failed to split: %v", err)
	}
	if len(shares) != 3 {
		t.Fatalf("Expected 3 shares, got %d", len(shares))
	}

	for i, s := range shares {
		if s.Index == 0 || s.Index > 3 {
			t.Errorf("Share %d has index %d, want one of {1,2,3}", i, s.Index)
		}
		if len(s.Values) != 32 {
			t.Errorf("Share %d has %d values, want 32", i, len(s.Values))
		}
	}

	got, err := Combine([]Share{shares[0], shares[2]})
	if err != nil {
		t.Fatalf("Failed to combine indices {1,3}: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Error("Expected 32 zero bytes back")
	}
}

func TestSplitBoundaries(t *testing.T) {
	secret := []byte("s")

	cases := []struct {
		name string
		k, n int
	}{
		{"zero threshold", 0, 3},
		{"zero shares", 1, 0},
		{"threshold above total", 4, 3},
		{"too many shares", 2, 256},
	}

	for _, tc := range cases {
		if _, err := Split(secret, tc.k, tc.n); err == nil {
			t.Errorf("%s: expected ErrInvalidThreshold, got nil", tc.name)
		}
	}

	if _, err := Split(nil, 2, 3); err == nil {
		t.Error("empty secret: expected error, got nil")
	}

	// 255 shares is the index-space ceiling and must work.
	shares, err := Split(secret, 2, 255)
	if err != nil {
		t.Fatalf("n=255 should be accepted: %v", err)
	}
	got, err := Combine(shares[253:])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, secret) {
		t.Error("Reconstruction with the two highest-index shares failed")
	}
}

func TestCombineValidation(t *testing.T) {
	if _, err := Combine(nil); err == nil {
		t.Error("Empty share list should return ErrInsufficientShares")
	}

	// Mismatched value lengths
	bad := []Share{
		{Index: 1, Values: []byte{1, 2, 3}},
		{Index: 2, Values: []byte{1, 2}},
	}
	if _, err := Combine(bad); err == nil {
		t.Error("Mismatched value lengths should be rejected")
	}

	// Duplicate indices
	dup := []Share{
		{Index: 1, Values: []byte{1, 2, 3}},
		{Index: 1, Values: []byte{4, 5, 6}},
	}
	if _, err := Combine(dup); err == nil {
		t.Error("Duplicate indices should be rejected")
	}

	// Zero index
	zero := []Share{{Index: 0, Values: []byte{1}}}
	if _, err := Combine(zero); err == nil {
		t.Error("Zero index should be rejected")
	}
}
