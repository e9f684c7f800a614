package castfile

import (
	"sync/atomic"
)

// DefaultHashSeed is the first hash drawn by a new HashSequence.
const DefaultHashSeed uint64 = 0x534E495752545250

// HashSequence generates hashes for newly authored nodes. Each call to Next
// returns the next value of a monotonically increasing sequence. It is safe
// for concurrent use.
type HashSequence struct {
	next atomic.Uint64
}

// NewHashSequence returns a sequence whose first hash is seed.
func NewHashSequence(seed uint64) *HashSequence {
	s := &HashSequence{}
	s.next.Store(seed)
	return s
}

// Next returns the next hash of the sequence.
func (s *HashSequence) Next() uint64 {
	return s.next.Add(1) - 1
}

// Peek returns the hash that the next call to Next will return.
func (s *HashSequence) Peek() uint64 {
	return s.next.Load()
}

////////////////////////////////////////////////////////////////

// Lookup returns the node of the document with the given hash. The index
// backing Lookup is built on first use and kept current by NewNode and
// AddNode; after modifying the tree directly, call Reindex.
//
// If hashes are duplicated within a document, the first node in depth-first
// order wins.
func (d *Document) Lookup(hash uint64) (*Node, bool) {
	if d.index == nil {
		d.Reindex()
	}
	n, ok := d.index[hash]
	return n, ok
}

// Reindex rebuilds the hash index used by Lookup.
func (d *Document) Reindex() {
	d.index = make(map[uint64]*Node)
	for _, n := range d.Nodes {
		indexNode(d.index, n)
	}
}

func indexNode(index map[uint64]*Node, n *Node) {
	n.Walk(func(n *Node, _ int) bool {
		if _, ok := index[n.Hash]; !ok {
			index[n.Hash] = n
		}
		return true
	})
}

// Duplicates returns the hashes that identify more than one node of the
// document.
func (d *Document) Duplicates() []uint64 {
	seen := map[uint64]int{}
	var dups []uint64
	d.Walk(func(n *Node, _ int) bool {
		seen[n.Hash]++
		if seen[n.Hash] == 2 {
			dups = append(dups, n.Hash)
		}
		return true
	})
	return dups
}
