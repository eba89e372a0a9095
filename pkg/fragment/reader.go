package fragment

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Reader separates a fragment file into its parsed header and body stream.
type Reader struct {
	Header *Header
	Body   io.Reader
}

// NewReader parses a fragment stream. It consumes the banner and metadata and
// leaves Body positioned at the start of the binary fragment.
func NewReader(r io.Reader) (*Reader, error) {
	bufReader := bufio.NewReader(r)

	// Scan for the header marker line by line; give up after a bounded number
	// of lines so arbitrary files fail fast instead of being drained.
	foundHeader := false
	for i := 0; i < 50; i++ {
		line, err := bufReader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read stream while looking for header: %w", err)
		}
		if strings.TrimSpace(line) == HeaderMarker {
			foundHeader = true
			break
		}
	}
	if !foundHeader {
		return nil, fmt.Errorf("invalid format: could not find %q marker", HeaderMarker)
	}

	var jsonBuilder bytes.Buffer
	foundBody := false
	for {
		line, err := bufReader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read stream while reading header json: %w", err)
		}
		if strings.TrimSpace(line) == BodyMarker {
			foundBody = true
			break
		}
		jsonBuilder.WriteString(line)
	}
	if !foundBody {
		return nil, fmt.Errorf("invalid format: could not find %q marker", BodyMarker)
	}

	header := &Header{}
	if err := json.Unmarshal(jsonBuilder.Bytes(), header); err != nil {
		return nil, fmt.Errorf("failed to parse header json: %w", err)
	}
	if err := header.Validate(); err != nil {
		return nil, fmt.Errorf("header validation failed: %w", err)
	}

	return &Reader{
		Header: header,
		// bufReader has buffered part of the body; subsequent reads drain the
		// buffer before touching the underlying source.
		Body: bufReader,
	}, nil
}
