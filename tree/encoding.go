package tree

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/castformat/castfile"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// encMode encodes mirrors deterministically, so that equal documents produce
// equal bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create tree CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthAllowed,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create tree CBOR decoder mode: %v", err))
	}
}

// EncodeJSON encodes the mirror of doc as indented JSON.
func EncodeJSON(doc *castfile.Document) ([]byte, error) {
	return json.MarshalIndent(FromDocument(doc), "", "\t")
}

// DecodeJSON decodes a document from the JSON encoding of its mirror.
func DecodeJSON(b []byte) (*castfile.Document, error) {
	var t Document
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return nil, err
	}
	return t.ToDocument()
}

// EncodeYAML encodes the mirror of doc as YAML.
func EncodeYAML(doc *castfile.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(FromDocument(doc)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeYAML decodes a document from the YAML encoding of its mirror.
func DecodeYAML(b []byte) (*castfile.Document, error) {
	var t Document
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, err
	}
	return t.ToDocument()
}

// EncodeCBOR encodes the mirror of doc as canonical CBOR.
func EncodeCBOR(doc *castfile.Document) ([]byte, error) {
	return encMode.Marshal(FromDocument(doc))
}

// DecodeCBOR decodes a document from the CBOR encoding of its mirror.
func DecodeCBOR(b []byte) (*castfile.Document, error) {
	var t Document
	if err := decMode.Unmarshal(b, &t); err != nil {
		return nil, err
	}
	return t.ToDocument()
}
