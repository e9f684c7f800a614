package castfile

// Variant is a typed view of a node. The set of variants is closed: every
// variant is one of the types of this package, and nodes of an unregistered
// kind are viewed as Unknown.
type Variant interface {
	// Node returns the underlying node.
	Node() *Node

	variant()
}

// view is the state shared by all variants: the node, the node whose children
// are its siblings, and the document that supplies hashes for new nodes.
type view struct {
	node  *Node
	scope *Node
	doc   *Document
}

// Node returns the underlying node.
func (v view) Node() *Node {
	return v.node
}

// Hash returns the hash of the underlying node.
func (v view) Hash() uint64 {
	return v.node.Hash
}

// Identifier returns the identifier of the underlying node.
func (v view) Identifier() Identifier {
	return v.node.Identifier
}

// Valid returns whether the view refers to a node.
func (v view) Valid() bool {
	return v.node != nil
}

func (view) variant() {}

// sibling resolves a hash against the children of the scope.
func (v view) sibling(hash uint64) (*Node, bool) {
	if v.scope == nil {
		if v.doc == nil {
			return nil, false
		}
		for _, n := range v.doc.Nodes {
			if n.Hash == hash {
				return n, true
			}
		}
		return nil, false
	}
	return v.scope.ChildByHash(hash)
}

// siblingRef resolves the hash stored in the named property.
func (v view) siblingRef(name string) (*Node, bool) {
	h, ok := v.long(name)
	if !ok {
		return nil, false
	}
	return v.sibling(h)
}

// child wraps n as a child of the view's node.
func (v view) child(n *Node) view {
	return view{node: n, scope: v.node, doc: v.doc}
}

// create appends a new child of the given kind.
func (v view) create(id Identifier) view {
	doc := v.doc
	if doc == nil {
		doc = NewDocument()
	}
	n := doc.NewNode(id)
	v.node.AddChild(n)
	return view{node: n, scope: v.node, doc: doc}
}

func (v view) children(id Identifier) []view {
	var list []view
	for _, n := range v.node.Children {
		if n.Identifier == id {
			list = append(list, v.child(n))
		}
	}
	return list
}

func (v view) firstChild(id Identifier) (view, bool) {
	n, ok := v.node.FirstChildOf(id)
	if !ok {
		return view{}, false
	}
	return v.child(n), true
}

func (v view) str(name string) (string, bool) {
	s, ok := v.node.Get(name).(ValueString)
	return string(s), ok
}

func (v view) setStr(name, value string) {
	v.node.Properties.Set(name, ValueString(value))
}

func (v view) long(name string) (uint64, bool) {
	if l, ok := v.node.Get(name).(ValueLongs); ok && len(l) > 0 {
		return l[0], true
	}
	return 0, false
}

func (v view) setLong(name string, value uint64) {
	v.node.Properties.Set(name, ValueLongs{value})
}

func (v view) float(name string) (float32, bool) {
	if f, ok := v.node.Get(name).(ValueFloats); ok && len(f) > 0 {
		return f[0], true
	}
	return 0, false
}

func (v view) setFloat(name string, value float32) {
	v.node.Properties.Set(name, ValueFloats{value})
}

// flag reads a boolean stored as a byte of value 1.
func (v view) flag(name string) (bool, bool) {
	u, ok := FirstUint(v.node.Get(name))
	if !ok {
		return false, false
	}
	return u == 1, true
}

func (v view) setFlag(name string, value bool) {
	var b uint8
	if value {
		b = 1
	}
	v.node.Properties.Set(name, ValueBytes{b})
}

func (v view) integer(name string) (uint64, bool) {
	return FirstUint(v.node.Get(name))
}

func (v view) vec3(name string) (Vec3, bool) {
	if vs, ok := v.node.Get(name).(ValueVec3s); ok && len(vs) > 0 {
		return vs[0], true
	}
	return Vec3{}, false
}

func (v view) setVec3(name string, value Vec3) {
	v.node.Properties.Set(name, ValueVec3s{value})
}

func (v view) vec4(name string) (Vec4, bool) {
	if vs, ok := v.node.Get(name).(ValueVec4s); ok && len(vs) > 0 {
		return vs[0], true
	}
	return Vec4{}, false
}

func (v view) setVec4(name string, value Vec4) {
	v.node.Properties.Set(name, ValueVec4s{value})
}

func (v view) uints(name string) ([]uint32, bool) {
	return Uints(v.node.Get(name))
}

////////////////////////////////////////////////////////////////

// Unknown views a node whose identifier is not registered. Its identifier,
// hash, properties and children are preserved as they were decoded.
type Unknown struct{ view }

type constructor func(v view) Variant

var registry = map[Identifier]constructor{
	IDRoot:              func(v view) Variant { return Root{v} },
	IDMetadata:          func(v view) Variant { return Metadata{v} },
	IDModel:             func(v view) Variant { return Model{v} },
	IDMesh:              func(v view) Variant { return Mesh{v} },
	IDBlendShape:        func(v view) Variant { return BlendShape{v} },
	IDSkeleton:          func(v view) Variant { return Skeleton{v} },
	IDBone:              func(v view) Variant { return Bone{v} },
	IDIKHandle:          func(v view) Variant { return IKHandle{v} },
	IDConstraint:        func(v view) Variant { return Constraint{v} },
	IDMaterial:          func(v view) Variant { return Material{v} },
	IDFile:              func(v view) Variant { return File{v} },
	IDAnimation:         func(v view) Variant { return Animation{v} },
	IDCurve:             func(v view) Variant { return Curve{v} },
	IDCurveModeOverride: func(v view) Variant { return CurveModeOverride{v} },
	IDNotificationTrack: func(v view) Variant { return NotificationTrack{v} },
	IDInstance:          func(v view) Variant { return Instance{v} },
}

// Registered returns whether nodes of the given kind have a typed variant.
func Registered(id Identifier) bool {
	_, ok := registry[id]
	return ok
}

// Kinds returns the identifiers of all registered kinds.
func Kinds() []Identifier {
	ids := make([]Identifier, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}

// Wrap returns the variant of n. Scope is the node whose children are the
// siblings of n, used to resolve references; it is nil for root nodes, whose
// siblings are the roots of the document.
func (d *Document) Wrap(n, scope *Node) Variant {
	v := view{node: n, scope: scope, doc: d}
	if c, ok := registry[n.Identifier]; ok {
		return c(v)
	}
	return Unknown{v}
}

// Variants returns the variants of the root nodes.
func (d *Document) Variants() []Variant {
	list := make([]Variant, len(d.Nodes))
	for i, n := range d.Nodes {
		list[i] = d.Wrap(n, nil)
	}
	return list
}

// Children returns the variants of the children of the node of v.
func Children(v Variant) []Variant {
	vw, _ := asView(v)
	n := v.Node()
	list := make([]Variant, len(n.Children))
	for i, child := range n.Children {
		list[i] = vw.doc.Wrap(child, n)
	}
	return list
}

func asView(v Variant) (view, bool) {
	type viewer interface{ base() view }
	if vw, ok := v.(viewer); ok {
		return vw.base(), true
	}
	return view{}, false
}

func (v view) base() view {
	return v
}
