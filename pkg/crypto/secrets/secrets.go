// Package secrets provides scoped ownership of raw key material. A Secret is
// an exclusively-owned byte buffer whose contents are overwritten with zeros
// when Destroy is called; callers pair every acquisition with a deferred
// Destroy so the wipe happens on every exit path, success or error.
package secrets

import (
	"crypto/rand"
	"fmt"
)

// Secret holds sensitive bytes (an encryption key) until destroyed.
type Secret struct {
	data []byte
}

// New generates a cryptographically random secret of the given size.
func New(size int) (*Secret, error) {
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate random secret: %w", err)
	}
	return &Secret{data: key}, nil
}

// Wrap takes ownership of existing bytes, e.g. a key reconstructed from
// shares. The caller must not retain or use the slice afterwards; Destroy
// zeroes it in place.
func Wrap(data []byte) *Secret {
	return &Secret{data: data}
}

// Bytes exposes the raw secret. The slice aliases the internal buffer and is
// only valid until Destroy.
func (s *Secret) Bytes() []byte {
	return s.data
}

// Destroy overwrites the secret with zeros and releases it. Idempotent; a
// destroyed Secret returns nil from Bytes.
func (s *Secret) Destroy() {
	if s == nil || s.data == nil {
		return
	}
	for i := range s.data {
		s.data[i] = 0
	}
	s.data = nil
}
