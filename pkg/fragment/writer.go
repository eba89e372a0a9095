// Package fragment defines the on-disk format of container fragments: a
// human-readable banner, a JSON metadata header, and the binary erasure-coded
// body. The sealed container itself stays headerless; this format only wraps
// the optional fragment distribution.
package fragment

import (
	"encoding/json"
	"fmt"
	"io"
)

// Writer serializes a single fragment file.
type Writer struct {
	w io.Writer
}

// NewWriter wraps an io.Writer, usually an os.File.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write emits the banner, the JSON header, and the fragment body.
func (fw *Writer) Write(header *Header, body []byte) error {
	if err := header.Validate(); err != nil {
		return fmt.Errorf("invalid header: %w", err)
	}

	banner := fmt.Sprintf(MagicHeader, header.Index, header.Total, header.Threshold)
	if _, err := fmt.Fprint(fw.w, banner); err != nil {
		return fmt.Errorf("failed to write banner: %w", err)
	}

	if _, err := fmt.Fprintln(fw.w, HeaderMarker); err != nil {
		return fmt.Errorf("failed to write header marker: %w", err)
	}

	headerBytes, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if _, err := fw.w.Write(headerBytes); err != nil {
		return fmt.Errorf("failed to write json header: %w", err)
	}
	if _, err := fmt.Fprintln(fw.w); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(fw.w, BodyMarker); err != nil {
		return fmt.Errorf("failed to write body marker: %w", err)
	}

	if _, err := fw.w.Write(body); err != nil {
		return fmt.Errorf("failed to write fragment body: %w", err)
	}

	return nil
}
