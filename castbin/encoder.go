package castbin

import (
	"bufio"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/anaminus/parse"
	"github.com/castformat/castfile"
	"github.com/castformat/castfile/errors"
)

// Encoder encodes a castfile.Document into a stream of bytes.
type Encoder struct {
	// Logger receives debug records. If nil, nothing is logged.
	Logger *slog.Logger
}

// Encode writes doc to w according to the cast binary format. Node lengths and
// counts are computed from the content of the document. A document version
// of zero is written as castfile.FormatVersion.
func (e Encoder) Encode(w io.Writer, doc *castfile.Document) error {
	if w == nil {
		return errors.New("nil writer")
	}
	if doc == nil {
		return errors.New("nil document")
	}

	enc := encoder{sizes: make(map[*castfile.Node]uint32)}
	for i, n := range doc.Nodes {
		if _, err := enc.measure(nil, i, n); err != nil {
			return CodecError{Cause: err}
		}
	}
	if uint64(len(doc.Nodes)) > math.MaxUint32 {
		return CodecError{Cause: ErrTooLarge{Field: "root count", Size: uint64(len(doc.Nodes))}}
	}

	bw := bufio.NewWriter(w)
	fw := parse.NewBinaryWriter(bw)
	enc.fw = fw

	version := doc.Version
	if version == 0 {
		version = castfile.FormatVersion
	}
	if fw.Number(castfile.Magic) ||
		fw.Number(version) ||
		fw.Number(uint32(len(doc.Nodes))) ||
		fw.Number(uint32(0)) {
		return encodeError(fw)
	}
	for _, n := range doc.Nodes {
		if enc.node(n) {
			return encodeError(fw)
		}
	}
	written, _ := fw.End()
	if err := bw.Flush(); err != nil {
		return DataError{Offset: written, Cause: err}
	}

	if e.Logger != nil {
		e.Logger.Debug("encoded document",
			slog.Int("roots", len(doc.Nodes)),
			slog.Int("nodes", len(enc.sizes)),
			slog.Int64("bytes", written),
		)
	}
	return nil
}

func encodeError(fw *parse.BinaryWriter) error {
	n, err := fw.End()
	return DataError{Offset: n, Cause: err}
}

type encoder struct {
	fw    *parse.BinaryWriter
	sizes map[*castfile.Node]uint32
	buf   []byte
}

// measure computes the encoded size of n and its descendants in one
// post-order pass, validating each property along the way.
func (e *encoder) measure(path nodePath, index int, n *castfile.Node) (uint64, error) {
	path = path.push(n.Identifier, index)
	if len(path) > MaxDepth {
		return 0, NodeError{Path: path.String(), Hash: n.Hash, Cause: ErrTooDeep}
	}
	size := uint64(castfile.NodeHeaderSize)
	for _, p := range n.Properties.List() {
		if err := validProperty(p); err != nil {
			return 0, NodeError{Path: path.String(), Hash: n.Hash, Cause: err}
		}
		size += uint64(p.Len())
	}
	for i, child := range n.Children {
		s, err := e.measure(path, i, child)
		if err != nil {
			return 0, err
		}
		size += s
	}
	if size > math.MaxUint32 {
		return 0, NodeError{Path: path.String(), Hash: n.Hash, Cause: ErrTooLarge{Field: "node", Size: size}}
	}
	e.sizes[n] = uint32(size)
	return size, nil
}

func validProperty(p *castfile.Property) error {
	if p.Value == nil {
		return ErrNilValue
	}
	if !p.Type().Valid() {
		return ErrUnknownType(p.Type().Tag())
	}
	if v, ok := p.Value.(castfile.ValueString); ok && strings.IndexByte(string(v), 0) >= 0 {
		return ErrInvalidString
	}
	if len(p.Name) > math.MaxUint16 {
		return ErrTooLarge{Field: "property name", Size: uint64(len(p.Name))}
	}
	if p.Type() != castfile.TypeString && uint64(p.Value.Len()) > math.MaxUint32 {
		return ErrTooLarge{Field: "value count of " + p.Name, Size: uint64(p.Value.Len())}
	}
	return nil
}

func (e *encoder) node(n *castfile.Node) (failed bool) {
	fw := e.fw
	props := n.Properties.List()
	if fw.Number(uint32(n.Identifier)) ||
		fw.Number(e.sizes[n]) ||
		fw.Number(n.Hash) ||
		fw.Number(uint32(len(props))) ||
		fw.Number(uint32(len(n.Children))) {
		return true
	}
	for _, p := range props {
		if e.property(p) {
			return true
		}
	}
	for _, child := range n.Children {
		if e.node(child) {
			return true
		}
	}
	return false
}

func (e *encoder) property(p *castfile.Property) (failed bool) {
	fw := e.fw
	tag := p.Type().Tag()
	if fw.Bytes(tag[:]) ||
		fw.Number(uint16(len(p.Name))) ||
		fw.Number(p.Count()) ||
		fw.Bytes([]byte(p.Name)) {
		return true
	}
	e.buf = appendValue(e.buf[:0], p.Value)
	return fw.Bytes(e.buf)
}
