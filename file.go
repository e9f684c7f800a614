// The castfile package handles the decoding, encoding, and manipulation of
// cast scene data.
//
// A cast file is a tree of nodes. A Document contains a list of root nodes,
// which contain child nodes, and so on. Each Node has an Identifier that
// indicates its kind, a Hash used by other nodes to refer to it, a set of
// named properties, and an ordered list of children.
//
// Each property holds a Value of a specific Type. Every available type
// implements the Value interface, and is prefixed with "Value".
//
// Nodes of a known kind can be viewed through a Variant, such as Model, Mesh
// or Bone, which provides typed access to the well-known properties of the
// kind and resolves hash references between sibling nodes. Nodes of an
// unknown kind are viewed as Unknown, and are otherwise preserved as-is.
//
// The castbin sub-package decodes and encodes the binary format. The tree
// sub-package mirrors documents as JSON, YAML and CBOR.
package castfile

import (
	"strconv"
)

// Magic is the signature at the start of every cast file ("cast").
const Magic uint32 = 0x74736163

// FormatVersion is the version of the format written by default.
const FormatVersion uint32 = 1

// HeaderSize is the size of the file header.
const HeaderSize = 16

// NodeHeaderSize is the size of the fixed part of an encoded node.
const NodeHeaderSize = 24

////////////////////////////////////////////////////////////////

// Document represents a cast file. It contains a list of root nodes.
type Document struct {
	// Version is the format version of the document.
	Version uint32

	// Nodes contains the root nodes of the document, in file order.
	Nodes []*Node

	seq   *HashSequence
	index map[uint64]*Node
}

// Option configures a Document created by NewDocument.
type Option func(*Document)

// WithHashSequence sets the sequence from which the document draws hashes
// for new nodes. A sequence may be shared between documents.
func WithHashSequence(seq *HashSequence) Option {
	return func(d *Document) {
		d.seq = seq
	}
}

// NewDocument returns an empty document of the current format version. Unless
// another sequence is given, the document owns a new HashSequence starting at
// DefaultHashSeed.
func NewDocument(opts ...Option) *Document {
	d := &Document{Version: FormatVersion}
	for _, opt := range opts {
		opt(d)
	}
	if d.seq == nil {
		d.seq = NewHashSequence(DefaultHashSeed)
	}
	return d
}

// Sequence returns the hash sequence of the document.
func (d *Document) Sequence() *HashSequence {
	if d.seq == nil {
		d.seq = NewHashSequence(DefaultHashSeed)
	}
	return d.seq
}

// NextHash draws hashes from the sequence of the document until one is found
// that is not used by any node in the document.
func (d *Document) NextHash() uint64 {
	seq := d.Sequence()
	for {
		hash := seq.Next()
		if _, ok := d.Lookup(hash); !ok {
			return hash
		}
	}
}

// NewNode creates a node of the given kind with a hash that is not used by any
// node in the document. The node is not added to the tree.
func (d *Document) NewNode(id Identifier) *Node {
	n := NewNode(id, d.NextHash())
	d.index[n.Hash] = n
	return n
}

// AddNode appends a root node to the document.
func (d *Document) AddNode(n *Node) {
	d.Nodes = append(d.Nodes, n)
	if d.index != nil {
		indexNode(d.index, n)
	}
}

// Len returns the number of bytes of the encoded document.
func (d *Document) Len() int {
	n := HeaderSize
	for _, node := range d.Nodes {
		n += node.Len()
	}
	return n
}

// Walk calls fn for each node of the document in depth-first order. If fn
// returns false, the descendants of the node are skipped.
func (d *Document) Walk(fn func(n *Node, depth int) bool) {
	for _, n := range d.Nodes {
		n.Walk(fn)
	}
}

// Copy returns a deep copy of the document. Hashes are preserved. The copy
// shares the hash sequence of d.
func (d *Document) Copy() *Document {
	c := &Document{
		Version: d.Version,
		Nodes:   make([]*Node, len(d.Nodes)),
		seq:     d.Sequence(),
	}
	for i, n := range d.Nodes {
		c.Nodes[i] = n.Copy()
	}
	return c
}

////////////////////////////////////////////////////////////////

// Node represents a single node of a cast tree.
type Node struct {
	// Identifier indicates the node's kind.
	Identifier Identifier

	// Hash is used to refer to the node from elsewhere in the tree.
	Hash uint64

	// Properties contains the properties of the node.
	Properties Properties

	// Children contains the child nodes, in file order.
	Children []*Node
}

// NewNode returns an empty node with the given identifier and hash.
func NewNode(id Identifier, hash uint64) *Node {
	return &Node{Identifier: id, Hash: hash}
}

// AddChild appends child to the children of the node.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// ChildByHash returns the first child of the node with the given hash.
func (n *Node) ChildByHash(hash uint64) (*Node, bool) {
	for _, child := range n.Children {
		if child.Hash == hash {
			return child, true
		}
	}
	return nil, false
}

// ChildrenOf returns the children of the node with the given identifier.
func (n *Node) ChildrenOf(id Identifier) []*Node {
	var list []*Node
	for _, child := range n.Children {
		if child.Identifier == id {
			list = append(list, child)
		}
	}
	return list
}

// FirstChildOf returns the first child of the node with the given
// identifier.
func (n *Node) FirstChildOf(id Identifier) (*Node, bool) {
	for _, child := range n.Children {
		if child.Identifier == id {
			return child, true
		}
	}
	return nil, false
}

// Get returns the value of a property of the node. The value will be nil if
// the property is not defined.
func (n *Node) Get(name string) Value {
	return n.Properties.Value(name)
}

// Set sets the value of a property of the node. If value is nil, then the
// property is deleted.
func (n *Node) Set(name string, value Value) {
	if value == nil {
		n.Properties.Delete(name)
		return
	}
	n.Properties.Set(name, value)
}

// Name returns the "n" property of the node, or an empty string if it is
// not defined or not a string.
func (n *Node) Name() string {
	name, _ := n.Get("n").(ValueString)
	return string(name)
}

// String implements the fmt.Stringer interface by returning the mnemonic of
// the node's identifier, followed by its name if it has one.
func (n *Node) String() string {
	if name := n.Name(); name != "" {
		return n.Identifier.String() + " " + strconv.Quote(name)
	}
	return n.Identifier.String()
}

// Len returns the number of bytes the node and its descendants occupy when
// encoded.
func (n *Node) Len() int {
	size := NodeHeaderSize
	for _, p := range n.Properties.list {
		size += p.Len()
	}
	for _, child := range n.Children {
		size += child.Len()
	}
	return size
}

// Walk calls fn for the node and each of its descendants in depth-first
// order. If fn returns false, the descendants of that node are skipped.
func (n *Node) Walk(fn func(n *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(n *Node, depth int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Copy returns a deep copy of the node and its descendants. Hashes are
// preserved, so a copy should not be added to the document of the original.
func (n *Node) Copy() *Node {
	c := &Node{
		Identifier: n.Identifier,
		Hash:       n.Hash,
		Properties: n.Properties.Copy(),
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Copy()
		}
	}
	return c
}
