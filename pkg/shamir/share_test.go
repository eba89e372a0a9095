package shamir

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	shares, err := Split([]byte("tokenized secret"), 2, 3)
	if err != nil {
		t.Fatalf("Failed to split: %v", err)
	}

	tokens := make([]string, len(shares))
	for i, s := range shares {
		tokens[i] = s.Token()
	}

	decoded, err := ParseTokens(tokens)
	if err != nil {
		t.Fatalf("Failed to parse tokens: %v", err)
	}

	for i := range shares {
		if decoded[i].Index != shares[i].Index {
			t.Errorf("Token %d: index %d != %d", i, decoded[i].Index, shares[i].Index)
		}
		if !bytes.Equal(decoded[i].Values, shares[i].Values) {
			t.Errorf("Token %d: values mismatch", i)
		}
	}
}

func TestParseTokenRejectsMalformed(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"not base64", "!!! definitely not base64 !!!"},
		{"empty", ""},
		{"empty payload", base64.StdEncoding.EncodeToString(nil)},
		{"index only", base64.StdEncoding.EncodeToString([]byte{7})},
		{"zero index", base64.StdEncoding.EncodeToString([]byte{0, 1, 2})},
	}

	for _, tc := range cases {
		_, err := ParseToken(tc.token)
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !errors.Is(err, ErrInvalidShareFormat) {
			t.Errorf("%s: expected ErrInvalidShareFormat, got %v", tc.name, err)
		}
	}
}

func TestParseTokensAllOrNothing(t *testing.T) {
	good := Share{Index: 1, Values: []byte{9, 9}}.Token()
	_, err := ParseTokens([]string{good, "garbage"})
	if err == nil {
		t.Error("A single bad token should fail the whole batch")
	}
}

// FuzzParseToken feeds arbitrary strings to the token parser. Garbage must be
// rejected with an error, never a panic, and accepted tokens must round-trip.
func FuzzParseToken(f *testing.F) {
	f.Add(Share{Index: 3, Values: []byte("seed values")}.Token())
	f.Add("random garbage")
	f.Add("")
	f.Add(base64.StdEncoding.EncodeToString([]byte{0}))

	f.Fuzz(func(t *testing.T, token string) {
		s, err := ParseToken(token)
		if err != nil {
			return
		}
		if s.Index == 0 || len(s.Values) == 0 {
			t.Fatalf("Parser accepted an invalid share: %+v", s)
		}
	})
}
