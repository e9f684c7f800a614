package castbin

import (
	"bufio"
	"io"
	"log/slog"

	"github.com/anaminus/parse"
	"github.com/castformat/castfile"
	"github.com/castformat/castfile/errors"
)

// MaxDepth is the deepest nesting of nodes accepted by the decoder.
const MaxDepth = 1024

// DefaultMaxPayload is the largest property payload accepted by a Decoder
// whose MaxPayload is zero.
const DefaultMaxPayload = 1 << 30

// Decoder decodes a stream of bytes into a castfile.Document.
type Decoder struct {
	// If Strict is true, then problems that are otherwise reported as
	// warnings are returned as errors: a node length that does not match its
	// content, a non-zero reserved header field, an unrecognized version,
	// and duplicate property names.
	Strict bool

	// MaxPayload limits the size of a single property payload. If zero,
	// DefaultMaxPayload is used.
	MaxPayload uint64

	// If Stats is not nil, it is filled with statistics about the decoded
	// data.
	Stats *DecoderStats

	// Logger receives debug records, such as nodes of unknown kinds. If nil,
	// nothing is logged.
	Logger *slog.Logger
}

// DecoderStats contains statistics generated while decoding.
type DecoderStats struct {
	Version       uint32
	RootCount     int
	NodeCount     int
	PropertyCount int
	MaxDepth      int
	// Kinds counts nodes per identifier mnemonic.
	Kinds map[string]int
	// Unknown counts nodes of kinds without a registered variant.
	Unknown map[string]int
	// Types counts properties per type name.
	Types map[string]int
}

func (s *DecoderStats) reset() {
	*s = DecoderStats{
		Kinds:   map[string]int{},
		Unknown: map[string]int{},
		Types:   map[string]int{},
	}
}

// decoder holds the state of a single decode.
type decoder struct {
	Decoder
	fr     *parse.BinaryReader
	warns  errors.Errors
	logger *slog.Logger

	// lengths records the declared length of each node, if not nil.
	lengths map[*castfile.Node]uint32
}

func newDecoder(d Decoder, r io.Reader) *decoder {
	if d.MaxPayload == 0 {
		d.MaxPayload = DefaultMaxPayload
	}
	if d.Stats != nil {
		d.Stats.reset()
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &decoder{
		Decoder: d,
		fr:      parse.NewBinaryReader(bufio.NewReader(r)),
		logger:  logger,
	}
}

// Decode reads data from r and decodes it into a document according to the
// cast binary format.
//
// Problems that do not prevent decoding are returned as warn. If err is not
// nil, then no document is returned.
func (d Decoder) Decode(r io.Reader) (doc *castfile.Document, warn, err error) {
	if r == nil {
		return nil, nil, errors.New("nil reader")
	}
	dec := newDecoder(d, r)
	doc, err = dec.decode()
	if err != nil {
		return nil, dec.warns.Return(), err
	}
	return doc, dec.warns.Return(), nil
}

func decodeError(r *parse.BinaryReader, err error) error {
	r.Add(0, err)
	err = r.Err()
	if err != nil {
		return DataError{Offset: r.N(), Cause: err}
	}
	return nil
}

// warn records a problem, returning it as an error if the decoder is strict.
func (d *decoder) warn(err error) error {
	if d.Strict {
		return err
	}
	d.warns = append(d.warns, err)
	return nil
}

func (d *decoder) decode() (*castfile.Document, error) {
	fr := d.fr

	var magic uint32
	if fr.Number(&magic) {
		return nil, decodeError(fr, nil)
	}
	if magic != castfile.Magic {
		return nil, decodeError(fr, ErrInvalidMagic)
	}

	doc := castfile.NewDocument()
	if fr.Number(&doc.Version) {
		return nil, decodeError(fr, nil)
	}
	if doc.Version != castfile.FormatVersion {
		if err := d.warn(ErrUnrecognizedVersion(doc.Version)); err != nil {
			return nil, decodeError(fr, err)
		}
	}

	var rootCount, reserved uint32
	if fr.Number(&rootCount) {
		return nil, decodeError(fr, nil)
	}
	if fr.Number(&reserved) {
		return nil, decodeError(fr, nil)
	}
	if reserved != 0 {
		if err := d.warn(ErrReserveNonZero); err != nil {
			return nil, decodeError(fr, err)
		}
	}

	if d.Stats != nil {
		d.Stats.Version = doc.Version
		d.Stats.RootCount = int(rootCount)
	}

	for i := 0; i < int(rootCount); i++ {
		n, err := d.node(nil, i, 0)
		if err != nil {
			return nil, err
		}
		doc.Nodes = append(doc.Nodes, n)
	}
	d.logger.Debug("decoded document",
		slog.Uint64("version", uint64(doc.Version)),
		slog.Int("roots", len(doc.Nodes)),
		slog.Int("warnings", len(d.warns)),
	)
	return doc, nil
}

// node decodes a node and its descendants. Index is the position of the node
// among its siblings.
func (d *decoder) node(path nodePath, index, depth int) (*castfile.Node, error) {
	fr := d.fr
	if depth >= MaxDepth {
		return nil, decodeError(fr, ErrTooDeep)
	}
	start := fr.N()

	var header struct {
		id         uint32
		length     uint32
		hash       uint64
		propCount  uint32
		childCount uint32
	}
	if fr.Number(&header.id) ||
		fr.Number(&header.length) ||
		fr.Number(&header.hash) ||
		fr.Number(&header.propCount) ||
		fr.Number(&header.childCount) {
		return nil, decodeError(fr, nil)
	}

	n := castfile.NewNode(castfile.Identifier(header.id), header.hash)
	path = path.push(n.Identifier, index)
	if d.lengths != nil {
		d.lengths[n] = header.length
	}
	d.count(n, depth)

	for i := uint32(0); i < header.propCount; i++ {
		p, err := d.property()
		if err != nil {
			return nil, NodeError{Path: path.String(), Hash: n.Hash, Cause: err}
		}
		if d.Stats != nil {
			d.Stats.PropertyCount++
			d.Stats.Types[p.Type().String()]++
		}
		if n.Properties.Put(p) {
			err := NodeError{Path: path.String(), Hash: n.Hash, Cause: ErrDuplicateProperty(p.Name)}
			if err := d.warn(err); err != nil {
				return nil, decodeError(fr, err)
			}
		}
	}

	if header.childCount > 0 {
		n.Children = make([]*castfile.Node, 0, min(int(header.childCount), 1024))
	}
	for i := 0; i < int(header.childCount); i++ {
		child, err := d.node(path, i, depth+1)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}

	if actual := fr.N() - start; actual != int64(header.length) {
		err := NodeError{
			Path:  path.String(),
			Hash:  n.Hash,
			Cause: ErrLengthMismatch{Declared: header.length, Actual: actual},
		}
		if err := d.warn(err); err != nil {
			return nil, decodeError(fr, err)
		}
	}
	return n, nil
}

func (d *decoder) count(n *castfile.Node, depth int) {
	registered := castfile.Registered(n.Identifier)
	if !registered {
		d.logger.Debug("unknown node kind",
			slog.String("id", n.Identifier.String()),
			slog.Uint64("hash", n.Hash),
		)
	}
	if d.Stats == nil {
		return
	}
	d.Stats.NodeCount++
	if depth+1 > d.Stats.MaxDepth {
		d.Stats.MaxDepth = depth + 1
	}
	d.Stats.Kinds[n.Identifier.String()]++
	if !registered {
		d.Stats.Unknown[n.Identifier.String()]++
	}
}

// property decodes a single property.
func (d *decoder) property() (*castfile.Property, error) {
	fr := d.fr

	var tag [2]byte
	var nameLen uint16
	var count uint32
	if fr.Bytes(tag[:]) || fr.Number(&nameLen) || fr.Number(&count) {
		return nil, decodeError(fr, nil)
	}
	typ, ok := castfile.TypeFromTag(tag)
	if !ok {
		return nil, decodeError(fr, ErrUnknownType(tag))
	}

	name := make([]byte, nameLen)
	if fr.Bytes(name) {
		return nil, decodeError(fr, nil)
	}
	p := &castfile.Property{Name: string(name)}

	if typ == castfile.TypeString {
		s, err := d.cstring()
		if err != nil {
			return nil, err
		}
		p.Value = castfile.ValueString(s)
		if count != 1 {
			p.DeclaredCount = count
		}
		return p, nil
	}

	size := payloadSize(typ, count)
	if size > d.MaxPayload {
		return nil, decodeError(fr, ErrTooLarge{Field: "payload of " + p.Name, Size: size})
	}
	b := make([]byte, size)
	if fr.Bytes(b) {
		return nil, decodeError(fr, nil)
	}
	p.Value = valueFromBytes(typ, count, b)
	return p, nil
}

// cstring reads bytes up to and including a NUL byte.
func (d *decoder) cstring() (string, error) {
	var s []byte
	var c byte
	for {
		if d.fr.Number(&c) {
			return "", decodeError(d.fr, nil)
		}
		if c == 0 {
			return string(s), nil
		}
		if uint64(len(s)) >= d.MaxPayload {
			return "", decodeError(d.fr, ErrTooLarge{Field: "string", Size: uint64(len(s))})
		}
		s = append(s, c)
	}
}
