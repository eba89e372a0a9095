// Package envelope ties the pieces together: encrypt a payload under a fresh
// random key, split the key into k-of-n share tokens, and hand back the
// sealed container. The raw key never leaves this package; it is wiped as
// soon as sealing and splitting are done.
package envelope

import (
	"fmt"

	"github.com/mvellis/cryptit/pkg/crypto/encryptor"
	"github.com/mvellis/cryptit/pkg/crypto/secrets"
	"github.com/mvellis/cryptit/pkg/shamir"
)

// Aliases for the lower-level sentinels so callers can match every failure
// mode against the envelope package alone.
var (
	ErrInvalidContainerFormat = encryptor.ErrInvalidContainer
	ErrAuthenticationFailed   = encryptor.ErrAuthentication
	ErrInvalidThreshold       = shamir.ErrInvalidThreshold
	ErrInsufficientShares     = shamir.ErrInsufficientShares
	ErrInvalidShareFormat     = shamir.ErrInvalidShareFormat
)

// Encrypt seals plaintext under a fresh random 256-bit key and splits that
// key into n share tokens with threshold k. It returns the container
// ([nonce | ciphertext | tag]) and the encoded tokens. The key itself is
// destroyed before returning on every path and is never part of the output.
func Encrypt(plaintext []byte, k, n int) ([]byte, []string, error) {
	key, err := secrets.New(encryptor.KeySize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate key: %w", err)
	}
	defer key.Destroy()

	container, err := encryptor.Seal(plaintext, key.Bytes())
	if err != nil {
		return nil, nil, fmt.Errorf("encryption failed: %w", err)
	}

	shares, err := shamir.Split(key.Bytes(), k, n)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to split key: %w", err)
	}

	tokens := make([]string, len(shares))
	for i, s := range shares {
		tokens[i] = s.Token()
	}

	return container, tokens, nil
}

// Decrypt reconstructs the key from the share tokens and opens the container.
// Any undecodable token aborts the whole operation. An authentication failure
// covers both tampered ciphertext and wrong or too few shares; the two cases
// are indistinguishable on purpose, so nothing is leaked about which shares
// were at fault.
func Decrypt(container []byte, tokens []string) ([]byte, error) {
	if len(container) < encryptor.NonceSize {
		return nil, fmt.Errorf("%w: container is %d bytes, need at least %d",
			ErrInvalidContainerFormat, len(container), encryptor.NonceSize)
	}

	shares, err := shamir.ParseTokens(tokens)
	if err != nil {
		return nil, err
	}

	keyBytes, err := shamir.Combine(shares)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct key: %w", err)
	}

	key := secrets.Wrap(keyBytes)
	defer key.Destroy()

	plaintext, err := encryptor.Open(container, key.Bytes())
	if err != nil {
		return nil, err
	}

	return plaintext, nil
}
