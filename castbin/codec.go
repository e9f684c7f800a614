// The castbin package implements the decoding and encoding of the cast binary
// format.
//
// All numbers are little-endian. A file consists of a 16-byte header followed
// by the root nodes. Each node consists of a 24-byte header, its properties,
// and its children, recursively.
package castbin

import (
	"bytes"
	"os"

	"github.com/castformat/castfile"
	"golang.org/x/crypto/blake2b"
)

// Load decodes a document from b. Warnings are discarded.
func Load(b []byte) (*castfile.Document, error) {
	doc, _, err := Decoder{}.Decode(bytes.NewReader(b))
	return doc, err
}

// Save encodes doc into a new byte slice.
func Save(doc *castfile.Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(doc.Len())
	if err := (Encoder{}).Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadFile decodes the document from the file at path. Warnings are
// discarded.
func ReadFile(path string) (*castfile.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, _, err := Decoder{}.Decode(f)
	return doc, err
}

// WriteFile encodes doc to the file at path, creating or truncating it.
func WriteFile(path string, doc *castfile.Document) error {
	b, err := Save(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0666)
}

// DigestSize is the size of a digest returned by Digest.
const DigestSize = blake2b.Size256

// Digest returns the BLAKE2b-256 sum of the encoding of doc. Documents with
// equal content have equal digests, regardless of the lengths declared by the
// file they were decoded from.
func Digest(doc *castfile.Document) ([DigestSize]byte, error) {
	b, err := Save(doc)
	if err != nil {
		return [DigestSize]byte{}, err
	}
	return blake2b.Sum256(b), nil
}
