package fragment

import (
	"errors"
	"fmt"
)

// Markers delineating the sections of a fragment file.
const (
	// MagicHeader is the human-readable banner at the top of each fragment.
	MagicHeader = `# THIS FILE IS AN ENCRYPTED FRAGMENT CREATED BY CRYPTIT.
# IT IS FRAGMENT %d OF %d. ANY %d FRAGMENTS REASSEMBLE THE ENCRYPTED
# CONTAINER, WHICH ADDITIONALLY REQUIRES THE KEY SHARES TO DECRYPT.
`

	// HeaderMarker starts the JSON metadata section.
	HeaderMarker = "-- HEADER --"

	// BodyMarker starts the binary fragment body.
	BodyMarker = "-- BODY --"
)

// Header carries the metadata needed to reassemble the container from a set
// of fragment files. It deliberately says nothing about the key shares.
type Header struct {
	// OriginalFilename is the plaintext file's name before encryption.
	OriginalFilename string `json:"originalFilename"`

	// Timestamp is the unix time of the encrypt run, used to avoid mixing
	// fragments from different runs of the same file.
	Timestamp int64 `json:"timestamp"`

	// Index is the 1-based fragment number.
	Index int `json:"index"`

	// Total is how many fragments were written.
	Total int `json:"total"`

	// Threshold is how many fragments reassembly needs.
	Threshold int `json:"threshold"`

	// ContainerSize is the exact byte length of the sealed container,
	// required to strip the erasure coder's padding.
	ContainerSize int `json:"containerSize"`
}

// Validate checks the header for sane values.
func (h *Header) Validate() error {
	if h.Index < 1 || h.Index > h.Total {
		return fmt.Errorf("invalid fragment index %d for total %d", h.Index, h.Total)
	}
	if h.Threshold < 1 || h.Threshold > h.Total {
		return fmt.Errorf("invalid threshold %d for total %d", h.Threshold, h.Total)
	}
	if h.ContainerSize < 1 {
		return errors.New("header is missing the container size")
	}
	if h.OriginalFilename == "" {
		return errors.New("header is missing the original filename")
	}
	return nil
}

// GroupID identifies which encrypt run a fragment belongs to.
func (h *Header) GroupID() string {
	return fmt.Sprintf("%s|%d", h.OriginalFilename, h.Timestamp)
}
