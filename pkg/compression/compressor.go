// Package compression shrinks payloads before they enter the encryption
// envelope. Compression always happens on the plaintext side: ciphertext is
// incompressible, and the container layout stays untouched either way.
package compression

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// Compress gzips data. BestSpeed is plenty; the payload is encrypted right
// after, so ratio matters less than latency on large files.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		return nil, err
	}

	if _, err := writer.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("not gzip data: %w", err)
	}
	defer reader.Close()

	return io.ReadAll(reader)
}
