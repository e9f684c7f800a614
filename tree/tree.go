// The tree package mirrors castfile documents as plain structures that can be
// encoded to and decoded from JSON, YAML and CBOR.
//
// A mirror holds the same information as the binary format: converting a
// document to a mirror and back produces a document that encodes to the same
// bytes.
package tree

import (
	"fmt"

	"github.com/castformat/castfile"
)

// The current version of the schema.
const SchemaVersion = 1

// Document mirrors a castfile.Document.
type Document struct {
	Schema  int     `json:"cast_tree" yaml:"cast_tree" cbor:"1,keyasint"`
	Version uint32  `json:"version" yaml:"version" cbor:"2,keyasint"`
	Nodes   []*Node `json:"nodes" yaml:"nodes" cbor:"3,keyasint"`
}

// Node mirrors a castfile.Node.
type Node struct {
	// ID is the identifier mnemonic, as formatted by castfile.Identifier.
	ID         string     `json:"id" yaml:"id" cbor:"1,keyasint"`
	Hash       uint64     `json:"hash" yaml:"hash" cbor:"2,keyasint"`
	Properties []Property `json:"properties,omitempty" yaml:"properties,omitempty" cbor:"3,keyasint,omitempty"`
	Children   []*Node    `json:"children,omitempty" yaml:"children,omitempty" cbor:"4,keyasint,omitempty"`
}

// Property mirrors a castfile.Property. Exactly one of Ints, Floats and String
// holds the value, depending on Type. Vectors are flattened into Floats.
type Property struct {
	Name string `json:"name" yaml:"name" cbor:"1,keyasint"`
	// Type is the wire tag of the type, such as "3v".
	Type string `json:"type" yaml:"type" cbor:"2,keyasint"`
	// Count is the declared value count of a string, if it is not 1.
	Count  uint32    `json:"count,omitempty" yaml:"count,omitempty" cbor:"3,keyasint,omitempty"`
	Ints   []uint64  `json:"ints,omitempty" yaml:"ints,flow,omitempty" cbor:"4,keyasint,omitempty"`
	Floats []float64 `json:"floats,omitempty" yaml:"floats,flow,omitempty" cbor:"5,keyasint,omitempty"`
	String *string   `json:"string,omitempty" yaml:"string,omitempty" cbor:"6,keyasint,omitempty"`
}

// FromDocument returns the mirror of doc.
func FromDocument(doc *castfile.Document) *Document {
	t := &Document{
		Schema:  SchemaVersion,
		Version: doc.Version,
		Nodes:   make([]*Node, len(doc.Nodes)),
	}
	for i, n := range doc.Nodes {
		t.Nodes[i] = FromNode(n)
	}
	return t
}

// FromNode returns the mirror of n and its descendants.
func FromNode(n *castfile.Node) *Node {
	t := &Node{
		ID:   n.Identifier.String(),
		Hash: n.Hash,
	}
	for _, p := range n.Properties.List() {
		t.Properties = append(t.Properties, FromProperty(p))
	}
	for _, child := range n.Children {
		t.Children = append(t.Children, FromNode(child))
	}
	return t
}

// FromProperty returns the mirror of p.
func FromProperty(p *castfile.Property) Property {
	tag := p.Type().Tag()
	t := Property{Name: p.Name, Type: tagString(tag)}
	switch v := p.Value.(type) {
	case castfile.ValueBytes:
		t.Ints = make([]uint64, len(v))
		for i, x := range v {
			t.Ints[i] = uint64(x)
		}
	case castfile.ValueShorts:
		t.Ints = make([]uint64, len(v))
		for i, x := range v {
			t.Ints[i] = uint64(x)
		}
	case castfile.ValueInts:
		t.Ints = make([]uint64, len(v))
		for i, x := range v {
			t.Ints[i] = uint64(x)
		}
	case castfile.ValueLongs:
		t.Ints = append([]uint64{}, v...)
	case castfile.ValueFloats:
		t.Floats = make([]float64, len(v))
		for i, x := range v {
			t.Floats[i] = float64(x)
		}
	case castfile.ValueDoubles:
		t.Floats = append([]float64{}, v...)
	case castfile.ValueVec2s:
		for _, x := range v {
			t.Floats = append(t.Floats, float64(x.X), float64(x.Y))
		}
	case castfile.ValueVec3s:
		for _, x := range v {
			t.Floats = append(t.Floats, float64(x.X), float64(x.Y), float64(x.Z))
		}
	case castfile.ValueVec4s:
		for _, x := range v {
			t.Floats = append(t.Floats, float64(x.X), float64(x.Y), float64(x.Z), float64(x.W))
		}
	case castfile.ValueString:
		s := string(v)
		t.String = &s
		if c := p.Count(); c != 1 {
			t.Count = c
		}
	}
	return t
}

func tagString(tag [2]byte) string {
	if tag[1] == 0 {
		return string(tag[:1])
	}
	return string(tag[:])
}

// ToDocument converts the mirror back to a document. The returned document
// owns a new hash sequence.
func (t *Document) ToDocument(opts ...castfile.Option) (*castfile.Document, error) {
	if t.Schema != SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d", t.Schema)
	}
	doc := castfile.NewDocument(opts...)
	doc.Version = t.Version
	doc.Nodes = make([]*castfile.Node, len(t.Nodes))
	for i, tn := range t.Nodes {
		n, err := tn.ToNode()
		if err != nil {
			return nil, fmt.Errorf("node #%d: %w", i, err)
		}
		doc.Nodes[i] = n
	}
	return doc, nil
}

// ToNode converts the mirror back to a node.
func (t *Node) ToNode() (*castfile.Node, error) {
	if t == nil {
		return nil, fmt.Errorf("nil node")
	}
	id, err := castfile.ParseIdentifier(t.ID)
	if err != nil {
		return nil, err
	}
	n := castfile.NewNode(id, t.Hash)
	for _, tp := range t.Properties {
		p, err := tp.ToProperty()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.ID, err)
		}
		n.Properties.Put(p)
	}
	for i, tc := range t.Children {
		child, err := tc.ToNode()
		if err != nil {
			return nil, fmt.Errorf("%s child #%d: %w", t.ID, i, err)
		}
		n.AddChild(child)
	}
	return n, nil
}

// ToProperty converts the mirror back to a property.
func (t Property) ToProperty() (*castfile.Property, error) {
	var tag [2]byte
	if len(t.Type) == 0 || len(t.Type) > 2 {
		return nil, fmt.Errorf("property %q: invalid type %q", t.Name, t.Type)
	}
	copy(tag[:], t.Type)
	typ, ok := castfile.TypeFromTag(tag)
	if !ok {
		return nil, fmt.Errorf("property %q: unknown type %q", t.Name, t.Type)
	}

	p := &castfile.Property{Name: t.Name}
	if typ == castfile.TypeString {
		if t.String == nil {
			return nil, fmt.Errorf("property %q: missing string", t.Name)
		}
		p.Value = castfile.ValueString(*t.String)
		p.DeclaredCount = t.Count
		return p, nil
	}

	if arity := typ.Arity(); len(t.Floats)%arity != 0 {
		return nil, fmt.Errorf("property %q: %d floats do not form %s values", t.Name, len(t.Floats), typ)
	}
	switch typ {
	case castfile.TypeByte:
		v := make(castfile.ValueBytes, len(t.Ints))
		for i, x := range t.Ints {
			v[i] = uint8(x)
		}
		p.Value = v
	case castfile.TypeShort:
		v := make(castfile.ValueShorts, len(t.Ints))
		for i, x := range t.Ints {
			v[i] = uint16(x)
		}
		p.Value = v
	case castfile.TypeInt:
		v := make(castfile.ValueInts, len(t.Ints))
		for i, x := range t.Ints {
			v[i] = uint32(x)
		}
		p.Value = v
	case castfile.TypeLong:
		p.Value = castfile.ValueLongs(append([]uint64{}, t.Ints...))
	case castfile.TypeFloat:
		v := make(castfile.ValueFloats, len(t.Floats))
		for i, x := range t.Floats {
			v[i] = float32(x)
		}
		p.Value = v
	case castfile.TypeDouble:
		p.Value = castfile.ValueDoubles(append([]float64{}, t.Floats...))
	case castfile.TypeVec2:
		f := t.Floats
		v := make(castfile.ValueVec2s, len(f)/2)
		for i := range v {
			v[i] = castfile.Vec2{X: float32(f[i*2]), Y: float32(f[i*2+1])}
		}
		p.Value = v
	case castfile.TypeVec3:
		f := t.Floats
		v := make(castfile.ValueVec3s, len(f)/3)
		for i := range v {
			v[i] = castfile.Vec3{X: float32(f[i*3]), Y: float32(f[i*3+1]), Z: float32(f[i*3+2])}
		}
		p.Value = v
	case castfile.TypeVec4:
		f := t.Floats
		v := make(castfile.ValueVec4s, len(f)/4)
		for i := range v {
			v[i] = castfile.Vec4{X: float32(f[i*4]), Y: float32(f[i*4+1]), Z: float32(f[i*4+2]), W: float32(f[i*4+3])}
		}
		p.Value = v
	}
	return p, nil
}
