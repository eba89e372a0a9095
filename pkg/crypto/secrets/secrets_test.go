package secrets

import (
	"bytes"
	"testing"
)

func TestNewGeneratesRandom(t *testing.T) {
	a, err := New(32)
	if err != nil {
		t.Fatalf("Failed to generate secret: %v", err)
	}
	b, err := New(32)
	if err != nil {
		t.Fatalf("Failed to generate secret: %v", err)
	}

	if len(a.Bytes()) != 32 {
		t.Errorf("Expected 32 bytes, got %d", len(a.Bytes()))
	}
	if bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("Two generated secrets should not be equal")
	}
}

func TestDestroyWipes(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	s := Wrap(raw)

	s.Destroy()

	if s.Bytes() != nil {
		t.Error("Bytes should be nil after Destroy")
	}
	// The wrapped slice itself must be zeroed, not just released.
	for i, b := range raw {
		if b != 0 {
			t.Errorf("Byte %d not wiped: %d", i, b)
		}
	}

	// Idempotent, including on nil receiver.
	s.Destroy()
	var nilSecret *Secret
	nilSecret.Destroy()
}
