package fragment_test

import (
	"bytes"
	"testing"

	"github.com/mvellis/cryptit/pkg/fragment"
)

// FuzzNewReader feeds arbitrary byte streams to the fragment parser. Garbage
// is expected to fail; the property under test is that it fails with an
// error instead of panicking.
func FuzzNewReader(f *testing.F) {
	valid := []byte(`# THIS FILE IS AN ENCRYPTED FRAGMENT...
-- HEADER --
{"originalFilename":"a.txt","timestamp":1,"index":1,"total":3,"threshold":2,"containerSize":64}
-- BODY --
binarybody`)
	f.Add(valid)
	f.Add([]byte("random garbage"))
	f.Add([]byte("-- HEADER --"))
	f.Add([]byte("{}"))

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = fragment.NewReader(bytes.NewReader(data))
	})
}
