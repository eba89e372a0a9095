// Package sharding erasure-codes a sealed container into n fragments of
// which any k reassemble it (Reed-Solomon, k data shards + n-k parity
// shards). This distributes the ciphertext itself the same way the key
// shares are distributed; the AEAD tag still decides integrity after
// reassembly.
package sharding

import (
	"bytes"
	"fmt"

	"github.com/klauspost/reedsolomon"
)

// Fragmenter holds the erasure-coding geometry.
type Fragmenter struct {
	Total     int
	Threshold int
}

// NewFragmenter validates the geometry. Reed-Solomon needs at least one data
// shard and, unlike the key shares, does not support threshold 1 with parity
// beyond total-1, so the same 1 <= k <= n bounds apply.
func NewFragmenter(total, threshold int) (*Fragmenter, error) {
	if threshold < 1 || threshold > total {
		return nil, fmt.Errorf("sharding: invalid geometry %d-of-%d", threshold, total)
	}
	if total > 255 {
		return nil, fmt.Errorf("sharding: total fragments cannot exceed 255")
	}
	return &Fragmenter{Total: total, Threshold: threshold}, nil
}

// Fragment splits data into Total fragments. Fragments are indexed 0..Total-1;
// the first Threshold of them are data shards, the rest parity.
func (f *Fragmenter) Fragment(data []byte) ([][]byte, error) {
	if f.Total == f.Threshold {
		// reedsolomon requires at least one parity shard; with k == n there
		// is no redundancy to compute, so plain splitting suffices.
		return splitEven(data, f.Total), nil
	}

	enc, err := reedsolomon.New(f.Threshold, f.Total-f.Threshold)
	if err != nil {
		return nil, err
	}

	shards, err := enc.Split(data)
	if err != nil {
		return nil, err
	}

	if err := enc.Encode(shards); err != nil {
		return nil, err
	}

	return shards, nil
}

// Reassemble rebuilds the original data from any Threshold fragments, keyed
// by their 0-based index. size is the exact byte length of the original data
// and is used to strip the encoder's padding; it must be recorded at
// fragmenting time (the fragment file header carries it).
func (f *Fragmenter) Reassemble(fragments map[int][]byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("sharding: original size must be known to reassemble")
	}

	have := 0
	shards := make([][]byte, f.Total)
	for i := 0; i < f.Total; i++ {
		if data, ok := fragments[i]; ok {
			shards[i] = data
			have++
		}
	}

	if have < f.Threshold {
		return nil, fmt.Errorf("sharding: not enough fragments: have %d, need %d", have, f.Threshold)
	}

	if f.Total != f.Threshold {
		enc, err := reedsolomon.New(f.Threshold, f.Total-f.Threshold)
		if err != nil {
			return nil, err
		}
		if err := enc.Reconstruct(shards); err != nil {
			return nil, fmt.Errorf("sharding: reconstruction failed: %w", err)
		}
	}

	// Concatenate the data shards and strip padding down to the recorded size.
	var buf bytes.Buffer
	for i := 0; i < f.Threshold; i++ {
		if shards[i] == nil {
			return nil, fmt.Errorf("sharding: missing data shard %d after reconstruction", i)
		}
		buf.Write(shards[i])
	}

	joined := buf.Bytes()
	if len(joined) < size {
		return nil, fmt.Errorf("sharding: reassembled %d bytes, expected at least %d", len(joined), size)
	}

	return joined[:size], nil
}

// splitEven chops data into n equal-size chunks, padding the tail with zeros.
func splitEven(data []byte, n int) [][]byte {
	per := (len(data) + n - 1) / n
	if per == 0 {
		per = 1
	}

	out := make([][]byte, n)
	for i := range out {
		out[i] = make([]byte, per)
		start := i * per
		if start < len(data) {
			copy(out[i], data[start:])
		}
	}
	return out
}
