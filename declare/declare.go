// The declare package is used to generate castfile structures in a declarative
// style.
//
// Most items have a Declare method, which returns a new castfile structure
// corresponding to the declared item.
//
// The easiest way to use this package is to import it directly into the
// current package:
//
//	import . "github.com/castformat/castfile/declare"
//
// This allows the package's identifiers to be used directly without a
// qualifier.
package declare

import (
	"github.com/castformat/castfile"
)

// primary is implemented by declarations that can be directly within a
// Document declaration.
type primary interface {
	primary()
}

// Document declares a castfile.Document. It is a list that contains Node and
// Version declarations.
type Document []primary

// Version declares the format version of a Document.
type Version uint32

func (Version) primary() {}

// builder holds the state of a single evaluation.
type builder struct {
	refs  map[string]uint64
	props map[*castfile.Node][]property
	// auto lists nodes that do not declare a hash.
	auto []*castfile.Node
}

// build recursively resolves node declarations.
func (b *builder) build(dnode node) *castfile.Node {
	n := castfile.NewNode(castfile.MakeIdentifier(dnode.id), dnode.hash)
	if !dnode.hasHash {
		b.auto = append(b.auto, n)
	}
	if dnode.reference != "" {
		b.refs[dnode.reference] = 0
	}
	b.props[n] = dnode.properties
	for _, dchild := range dnode.children {
		n.AddChild(b.build(dchild))
	}
	return n
}

// resolve assigns hashes to nodes without one, records the hashes of
// referable nodes, and evaluates properties.
func (b *builder) resolve(doc *castfile.Document, roots []node) {
	doc.Reindex()
	for _, n := range b.auto {
		n.Hash = doc.NextHash()
	}
	doc.Reindex()

	var record func(dnode node, n *castfile.Node)
	record = func(dnode node, n *castfile.Node) {
		if dnode.reference != "" {
			b.refs[dnode.reference] = n.Hash
		}
		for i, dchild := range dnode.children {
			record(dchild, n.Children[i])
		}
	}
	for i, dnode := range roots {
		record(dnode, doc.Nodes[i])
	}

	for n, properties := range b.props {
		for _, prop := range properties {
			n.Properties.Put(prop.declare(b.refs))
		}
	}
}

func newBuilder() *builder {
	return &builder{
		refs:  map[string]uint64{},
		props: map[*castfile.Node][]property{},
	}
}

// Declare evaluates the Document declaration, generating nodes and property
// values, assigning hashes, and resolving references.
//
// Nodes that do not declare a Hash receive one from the hash sequence of the
// document, in depth-first order. Elements are evaluated in order; if a node
// declares two properties with the same name, the latter takes precedence.
func (ddoc Document) Declare(opts ...castfile.Option) *castfile.Document {
	doc := castfile.NewDocument(opts...)
	b := newBuilder()
	var roots []node
	for _, p := range ddoc {
		switch p := p.(type) {
		case node:
			roots = append(roots, p)
			doc.Nodes = append(doc.Nodes, b.build(p))
		case Version:
			doc.Version = uint32(p)
		}
	}
	b.resolve(doc, roots)
	return doc
}

// element is implemented by declarations that can be within a node
// declaration.
type element interface {
	element()
}

// node represents the declaration of a castfile.Node.
type node struct {
	id         string
	hash       uint64
	hasHash    bool
	reference  string
	properties []property
	children   []node
}

func (node) primary() {}
func (node) element() {}

// Declare evaluates the Node declaration as the only root of a new document,
// and returns the node.
func (dnode node) Declare() *castfile.Node {
	return Document{dnode}.Declare().Nodes[0]
}

// Node declares a castfile.Node. It defines a node with an identifier
// mnemonic, such as "mesh", and a series of "elements". An element can be a
// Property declaration, which defines a property of the node. An element can
// also be another Node declaration, which becomes a child of the node.
//
// An element can also be a Hash declaration, which sets the hash of the node,
// or a Ref declaration, which defines a string that can be used to refer to
// the node by properties of the Reference type.
func Node(id string, elements ...element) node {
	n := node{id: id}
	for _, e := range elements {
		switch e := e.(type) {
		case Hash:
			n.hash = uint64(e)
			n.hasHash = true
		case Ref:
			n.reference = string(e)
		case property:
			n.properties = append(n.properties, e)
		case node:
			n.children = append(n.children, e)
		}
	}
	return n
}

type property struct {
	name  string
	typ   Type
	value []interface{}
}

func (property) element() {}

func (prop property) declare(refs map[string]uint64) *castfile.Property {
	p := &castfile.Property{Name: prop.name, Value: prop.typ.value(refs, prop.value)}
	if prop.typ == String && len(prop.value) > 1 {
		// The second value of a string declares the value count of the
		// header, which the format otherwise ignores.
		p.DeclaredCount = uint32(normUint64(prop.value[1]))
	}
	return p
}

// Property declares a property of a castfile.Node. It defines the name of the
// property, a type corresponding to a castfile.Value, and the values of the
// property.
//
// The value argument may be a single castfile.Value that corresponds to the
// given type, in which case the value itself is used.
//
// Otherwise, for a given type, values must be the following:
//
//	String:
//	    A single string or []byte. An optional second number declares the
//	    value count written to the property header.
//
//	Byte, Short, Int, Long, Float, Double:
//	    Any number of numbers. Signed numbers are stored as their
//	    two's-complement bit pattern.
//
//	Vec2, Vec3, Vec4:
//	    Groups of 2, 3 or 4 numbers, each group forming one vector.
//	    Trailing numbers that do not form a group are ignored. A
//	    castfile.Vec2, Vec3 or Vec4 may also be given in place of a group.
//
//	Uints:
//	    Any number of non-negative numbers, stored as the narrowest of
//	    Byte, Short and Int that holds them all.
//
//	Reference:
//	    Strings or []bytes naming a Ref declaration, or hash numbers. Each is
//	    stored as the Long hash of the referred node. Names that do not
//	    resolve are stored as 0.
func Property(name string, typ Type, value ...interface{}) property {
	return property{name: name, typ: typ, value: value}
}

// Declare evaluates the Property declaration. Since the property does not
// belong to any node, references resolve to 0.
func (prop property) Declare() *castfile.Property {
	return prop.declare(nil)
}

// Hash declares the hash of the Node under which it was declared.
type Hash uint64

func (Hash) element() {}

// Ref declares a string that can be used to refer to the Node under which it
// was declared.
type Ref string

func (Ref) element() {}
