package sharding

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestFragmentReassemble(t *testing.T) {
	data := make([]byte, 10_000)
	if _, err := rand.Read(data); err != nil {
		t.Fatal(err)
	}

	f, err := NewFragmenter(5, 3)
	if err != nil {
		t.Fatalf("Failed to create fragmenter: %v", err)
	}

	frags, err := f.Fragment(data)
	if err != nil {
		t.Fatalf("Fragment failed: %v", err)
	}
	if len(frags) != 5 {
		t.Fatalf("Expected 5 fragments, got %d", len(frags))
	}

	// Lose two fragments (one data, one parity); threshold is 3.
	subset := map[int][]byte{
		0: frags[0],
		2: frags[2],
		4: frags[4],
	}

	got, err := f.Reassemble(subset, len(data))
	if err != nil {
		t.Fatalf("Reassemble failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("Reassembled data mismatch")
	}
}

func TestReassembleBelowThreshold(t *testing.T) {
	f, err := NewFragmenter(4, 3)
	if err != nil {
		t.Fatal(err)
	}

	frags, err := f.Fragment([]byte("not enough pieces"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.Reassemble(map[int][]byte{0: frags[0], 1: frags[1]}, 17)
	if err == nil {
		t.Error("Reassembly with fewer than threshold fragments should fail")
	}
}

func TestNoParityGeometry(t *testing.T) {
	// k == n: plain splitting, every fragment required.
	data := []byte("0123456789abcdef!")

	f, err := NewFragmenter(3, 3)
	if err != nil {
		t.Fatal(err)
	}

	frags, err := f.Fragment(data)
	if err != nil {
		t.Fatal(err)
	}

	all := make(map[int][]byte, len(frags))
	for i, fr := range frags {
		all[i] = fr
	}

	got, err := f.Reassemble(all, len(data))
	if err != nil {
		t.Fatalf("Reassemble failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("Reassembled data mismatch")
	}
}

func TestInvalidGeometry(t *testing.T) {
	if _, err := NewFragmenter(3, 4); err == nil {
		t.Error("threshold > total should be rejected")
	}
	if _, err := NewFragmenter(3, 0); err == nil {
		t.Error("zero threshold should be rejected")
	}
	if _, err := NewFragmenter(256, 2); err == nil {
		t.Error("more than 255 fragments should be rejected")
	}
}

func TestReassembleNeedsSize(t *testing.T) {
	f, _ := NewFragmenter(4, 2)
	frags, err := f.Fragment([]byte("padding must be stripped"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Reassemble(map[int][]byte{0: frags[0], 1: frags[1]}, 0); err == nil {
		t.Error("Reassemble without the original size should fail")
	}
}
