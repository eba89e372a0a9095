package shamir

import (
	"encoding/base64"
	"fmt"
)

// Share is one fragment of a split secret: the non-zero field element the
// polynomials were evaluated at, plus one evaluation per secret byte. A share
// is immutable once produced; the splitter keeps no copy.
type Share struct {
	Index  byte
	Values []byte
}

// Token serializes the share to a transportable text token:
// base64(index || values).
func (s Share) Token() string {
	raw := make([]byte, 0, 1+len(s.Values))
	raw = append(raw, s.Index)
	raw = append(raw, s.Values...)
	return base64.StdEncoding.EncodeToString(raw)
}

// ParseToken decodes a share token produced by Token. Decoding is
// all-or-nothing: any malformed input yields ErrInvalidShareFormat and no
// partial share.
func ParseToken(token string) (Share, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Share{}, fmt.Errorf("%w: %v", ErrInvalidShareFormat, err)
	}
	if len(raw) < 2 {
		return Share{}, fmt.Errorf("%w: token too short", ErrInvalidShareFormat)
	}
	if raw[0] == 0 {
		return Share{}, fmt.Errorf("%w: share index must be non-zero", ErrInvalidShareFormat)
	}

	return Share{
		Index:  raw[0],
		Values: raw[1:],
	}, nil
}

// ParseTokens decodes a batch of tokens, failing on the first bad one.
func ParseTokens(tokens []string) ([]Share, error) {
	shares := make([]Share, 0, len(tokens))
	for i, token := range tokens {
		s, err := ParseToken(token)
		if err != nil {
			return nil, fmt.Errorf("share %d: %w", i+1, err)
		}
		shares = append(shares, s)
	}
	return shares, nil
}
