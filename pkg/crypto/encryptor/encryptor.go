// Package encryptor wraps AES-256-GCM as the authenticated-encryption
// boundary of the system. The cipher itself is consumed as a black box from
// the standard library; this package only fixes the container layout:
//
//	[12-byte nonce | ciphertext | 16-byte tag]
//
// with no header, version, or length prefix.
package encryptor

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// NonceSize is the GCM nonce length in bytes, the container's fixed prefix.
const NonceSize = 12

var (
	// ErrInvalidContainer is returned for containers too short to hold a
	// nonce.
	ErrInvalidContainer = errors.New("encryptor: invalid container format")

	// ErrAuthentication is returned when the GCM tag does not verify. Wrong
	// or insufficient key shares and a tampered ciphertext are deliberately
	// indistinguishable here.
	ErrAuthentication = errors.New("encryptor: authentication failed")
)

// Seal encrypts plaintext under key with a fresh random nonce and returns the
// assembled container. Keys must never be reused with a fixed nonce; the
// envelope satisfies this by generating a brand-new key per call.
func Seal(plaintext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal appends ciphertext and tag to the nonce prefix.
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open authenticates and decrypts a container produced by Seal. Either the
// exact plaintext comes back or an error; no partial output.
func Open(container, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(container) < gcm.NonceSize() {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the nonce", ErrInvalidContainer, len(container))
	}

	nonce, ciphertext := container[:gcm.NonceSize()], container[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryptor: key must be %d bytes, got %d", KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher block: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return gcm, nil
}
