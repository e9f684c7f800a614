package castfile

import (
	"strconv"
	"strings"
)

// Root is the top-level container of a document's content.
type Root struct{ view }

// CreateRoot appends a new root node to the document.
func (d *Document) CreateRoot() Root {
	n := d.NewNode(IDRoot)
	d.AddNode(n)
	return Root{view{node: n, doc: d}}
}

// Roots returns the root nodes of the document that are of the root kind.
func (d *Document) Roots() []Root {
	var list []Root
	for _, n := range d.Nodes {
		if n.Identifier == IDRoot {
			list = append(list, Root{view{node: n, doc: d}})
		}
	}
	return list
}

func (r Root) Models() []Model {
	vs := r.children(IDModel)
	list := make([]Model, len(vs))
	for i, v := range vs {
		list[i] = Model{v}
	}
	return list
}

func (r Root) CreateModel() Model {
	return Model{r.create(IDModel)}
}

func (r Root) Animations() []Animation {
	vs := r.children(IDAnimation)
	list := make([]Animation, len(vs))
	for i, v := range vs {
		list[i] = Animation{v}
	}
	return list
}

func (r Root) CreateAnimation() Animation {
	return Animation{r.create(IDAnimation)}
}

func (r Root) Instances() []Instance {
	vs := r.children(IDInstance)
	list := make([]Instance, len(vs))
	for i, v := range vs {
		list[i] = Instance{v}
	}
	return list
}

func (r Root) CreateInstance() Instance {
	return Instance{r.create(IDInstance)}
}

// Files returns the files referenced by instances of the root.
func (r Root) Files() []File {
	vs := r.children(IDFile)
	list := make([]File, len(vs))
	for i, v := range vs {
		list[i] = File{v}
	}
	return list
}

func (r Root) CreateFile() File {
	return File{r.create(IDFile)}
}

// Metadata returns the first metadata node of the root.
func (r Root) Metadata() (Metadata, bool) {
	v, ok := r.firstChild(IDMetadata)
	return Metadata{v}, ok
}

func (r Root) CreateMetadata() Metadata {
	return Metadata{r.create(IDMetadata)}
}

////////////////////////////////////////////////////////////////

// Metadata describes the origin of a document.
type Metadata struct{ view }

func (m Metadata) Author() (string, bool) {
	return m.str("a")
}

func (m Metadata) SetAuthor(author string) {
	m.setStr("a", author)
}

func (m Metadata) Software() (string, bool) {
	return m.str("s")
}

func (m Metadata) SetSoftware(software string) {
	m.setStr("s", software)
}

// UpAxis returns the up axis of the scene: "x", "y" or "z".
func (m Metadata) UpAxis() (string, bool) {
	return m.str("up")
}

func (m Metadata) SetUpAxis(axis string) {
	m.setStr("up", axis)
}

////////////////////////////////////////////////////////////////

// Model groups the meshes, materials and skeleton of one object.
type Model struct{ view }

func (m Model) Name() (string, bool) {
	return m.str("n")
}

func (m Model) SetName(name string) {
	m.setStr("n", name)
}

// Skeleton returns the first skeleton of the model.
func (m Model) Skeleton() (Skeleton, bool) {
	v, ok := m.firstChild(IDSkeleton)
	return Skeleton{v}, ok
}

func (m Model) CreateSkeleton() Skeleton {
	return Skeleton{m.create(IDSkeleton)}
}

func (m Model) Meshes() []Mesh {
	vs := m.children(IDMesh)
	list := make([]Mesh, len(vs))
	for i, v := range vs {
		list[i] = Mesh{v}
	}
	return list
}

func (m Model) CreateMesh() Mesh {
	return Mesh{m.create(IDMesh)}
}

func (m Model) Materials() []Material {
	vs := m.children(IDMaterial)
	list := make([]Material, len(vs))
	for i, v := range vs {
		list[i] = Material{v}
	}
	return list
}

func (m Model) CreateMaterial() Material {
	return Material{m.create(IDMaterial)}
}

func (m Model) BlendShapes() []BlendShape {
	vs := m.children(IDBlendShape)
	list := make([]BlendShape, len(vs))
	for i, v := range vs {
		list[i] = BlendShape{v}
	}
	return list
}

func (m Model) CreateBlendShape() BlendShape {
	return BlendShape{m.create(IDBlendShape)}
}

////////////////////////////////////////////////////////////////

// Skinning methods of a mesh.
const (
	SkinningLinear     = "linear"
	SkinningQuaternion = "quaternion"
)

// Mesh holds the vertex and face buffers of one surface.
type Mesh struct{ view }

func (m Mesh) Name() (string, bool) {
	return m.str("n")
}

func (m Mesh) SetName(name string) {
	m.setStr("n", name)
}

// VertexCount returns the number of vertex positions.
func (m Mesh) VertexCount() int {
	if v := m.node.Get("vp"); v != nil {
		return v.Len()
	}
	return 0
}

// FaceCount returns the number of triangles in the face buffer.
func (m Mesh) FaceCount() int {
	if v := m.node.Get("f"); v != nil {
		return v.Len() / 3
	}
	return 0
}

// FaceBuffer returns the triangle index buffer, three indices per face.
func (m Mesh) FaceBuffer() ([]uint32, bool) {
	return m.uints("f")
}

// SetFaceBuffer sets the triangle index buffer, using the narrowest integer
// type that holds every index.
func (m Mesh) SetFaceBuffer(indices []uint32) {
	m.node.Properties.Set("f", NarrowestUints(indices))
}

func (m Mesh) vec3s(name string) ([]Vec3, bool) {
	v, ok := m.node.Get(name).(ValueVec3s)
	return []Vec3(v), ok
}

func (m Mesh) VertexPositionBuffer() ([]Vec3, bool) {
	return m.vec3s("vp")
}

func (m Mesh) SetVertexPositionBuffer(positions []Vec3) {
	m.node.Properties.Set("vp", ValueVec3s(positions))
}

func (m Mesh) VertexNormalBuffer() ([]Vec3, bool) {
	return m.vec3s("vn")
}

func (m Mesh) SetVertexNormalBuffer(normals []Vec3) {
	m.node.Properties.Set("vn", ValueVec3s(normals))
}

func (m Mesh) VertexTangentBuffer() ([]Vec3, bool) {
	return m.vec3s("vt")
}

func (m Mesh) SetVertexTangentBuffer(tangents []Vec3) {
	m.node.Properties.Set("vt", ValueVec3s(tangents))
}

// VertexColorBuffer returns vertex colors packed as one 32-bit RGBA value per
// vertex.
func (m Mesh) VertexColorBuffer() ([]uint32, bool) {
	v, ok := m.node.Get("vc").(ValueInts)
	return []uint32(v), ok
}

func (m Mesh) SetVertexColorBuffer(colors []uint32) {
	m.node.Properties.Set("vc", ValueInts(colors))
}

func uvLayerName(index int) string {
	return "u" + strconv.Itoa(index)
}

// UVLayerCount returns the number of UV layers. If the count is not stored,
// it is the number of consecutive layers present from u0.
func (m Mesh) UVLayerCount() int {
	if n, ok := m.integer("ul"); ok {
		return int(n)
	}
	n := 0
	for m.node.Get(uvLayerName(n)) != nil {
		n++
	}
	return n
}

func (m Mesh) SetUVLayerCount(count int) {
	m.node.Properties.Set("ul", NarrowestUints([]uint32{uint32(count)}))
}

// VertexUVLayerBuffer returns the coordinates of the UV layer at index.
func (m Mesh) VertexUVLayerBuffer(index int) ([]Vec2, bool) {
	v, ok := m.node.Get(uvLayerName(index)).(ValueVec2s)
	return []Vec2(v), ok
}

func (m Mesh) SetVertexUVLayerBuffer(index int, uvs []Vec2) {
	m.node.Properties.Set(uvLayerName(index), ValueVec2s(uvs))
}

// MaximumWeightInfluence returns the number of weights per vertex, which is
// the stride of the weight buffers.
func (m Mesh) MaximumWeightInfluence() int {
	n, _ := m.integer("mi")
	return int(n)
}

func (m Mesh) SetMaximumWeightInfluence(count int) {
	m.node.Properties.Set("mi", NarrowestUints([]uint32{uint32(count)}))
}

// VertexWeightBoneBuffer returns the bone indices of the vertex weights.
func (m Mesh) VertexWeightBoneBuffer() ([]uint32, bool) {
	return m.uints("wb")
}

func (m Mesh) SetVertexWeightBoneBuffer(bones []uint32) {
	m.node.Properties.Set("wb", NarrowestUints(bones))
}

func (m Mesh) VertexWeightValueBuffer() ([]float32, bool) {
	v, ok := m.node.Get("wv").(ValueFloats)
	return []float32(v), ok
}

func (m Mesh) SetVertexWeightValueBuffer(weights []float32) {
	m.node.Properties.Set("wv", ValueFloats(weights))
}

// SkinningMethod returns the skinning method of the mesh, SkinningLinear if
// not set.
func (m Mesh) SkinningMethod() string {
	if s, ok := m.str("sm"); ok {
		return s
	}
	return SkinningLinear
}

func (m Mesh) SetSkinningMethod(method string) {
	m.setStr("sm", method)
}

// Material returns the sibling material referred to by the mesh.
func (m Mesh) Material() (Material, bool) {
	n, ok := m.siblingRef("m")
	if !ok || n.Identifier != IDMaterial {
		return Material{}, false
	}
	return Material{view{node: n, scope: m.scope, doc: m.doc}}, true
}

// SetMaterial sets the hash of the material of the mesh.
func (m Mesh) SetMaterial(hash uint64) {
	m.setLong("m", hash)
}

////////////////////////////////////////////////////////////////

// BlendShape deforms a base mesh toward a set of target meshes.
type BlendShape struct{ view }

func (b BlendShape) Name() (string, bool) {
	return b.str("n")
}

func (b BlendShape) SetName(name string) {
	b.setStr("n", name)
}

func (b BlendShape) sibling(n *Node) Mesh {
	return Mesh{view{node: n, scope: b.scope, doc: b.doc}}
}

// BaseShape returns the sibling mesh deformed by the blend shape.
func (b BlendShape) BaseShape() (Mesh, bool) {
	n, ok := b.siblingRef("b")
	if !ok || n.Identifier != IDMesh {
		return Mesh{}, false
	}
	return b.sibling(n), true
}

func (b BlendShape) SetBaseShape(hash uint64) {
	b.setLong("b", hash)
}

// TargetShape returns the sibling mesh of the i-th target, which pairs with
// the i-th weight scale. Returns false if i is out of range or the target
// cannot be resolved.
func (b BlendShape) TargetShape(i int) (Mesh, bool) {
	hashes, _ := b.node.Get("t").(ValueLongs)
	if i < 0 || i >= len(hashes) {
		return Mesh{}, false
	}
	n, ok := b.view.sibling(hashes[i])
	if !ok || n.Identifier != IDMesh {
		return Mesh{}, false
	}
	return b.sibling(n), true
}

// TargetShapes returns the sibling target meshes that can be resolved.
// Unresolved targets are omitted, so indices do not line up with
// TargetWeightScales; use TargetShape to pair them.
func (b BlendShape) TargetShapes() []Mesh {
	hashes, _ := b.node.Get("t").(ValueLongs)
	var list []Mesh
	for _, h := range hashes {
		if n, ok := b.view.sibling(h); ok && n.Identifier == IDMesh {
			list = append(list, b.sibling(n))
		}
	}
	return list
}

// TargetShapeHashes returns the stored target hashes.
func (b BlendShape) TargetShapeHashes() ([]uint64, bool) {
	v, ok := b.node.Get("t").(ValueLongs)
	return []uint64(v), ok
}

func (b BlendShape) SetTargetShapes(hashes []uint64) {
	b.node.Properties.Set("t", ValueLongs(hashes))
}

// TargetWeightScales returns the per-target weight scales.
func (b BlendShape) TargetWeightScales() ([]float32, bool) {
	v, ok := b.node.Get("ts").(ValueFloats)
	return []float32(v), ok
}

func (b BlendShape) SetTargetWeightScales(scales []float32) {
	b.node.Properties.Set("ts", ValueFloats(scales))
}

////////////////////////////////////////////////////////////////

// Material describes the shading of meshes. Each property other than the
// name and type is a slot that refers to a File child by hash.
type Material struct{ view }

func (m Material) Name() (string, bool) {
	return m.str("n")
}

func (m Material) SetName(name string) {
	m.setStr("n", name)
}

// Type returns the shading model of the material.
func (m Material) Type() (string, bool) {
	return m.str("t")
}

func (m Material) SetType(typ string) {
	m.setStr("t", typ)
}

func isSlot(p *Property) bool {
	if p.Name == "n" || p.Name == "t" {
		return false
	}
	_, ok := p.Value.(ValueLongs)
	return ok
}

// SlotNames returns the names of the slots of the material, in order.
func (m Material) SlotNames() []string {
	var names []string
	for _, p := range m.node.Properties.list {
		if isSlot(p) {
			names = append(names, p.Name)
		}
	}
	return names
}

// Slot returns the file child referred to by the named slot.
func (m Material) Slot(name string) (File, bool) {
	p, ok := m.node.Properties.Get(name)
	if !ok || !isSlot(p) {
		return File{}, false
	}
	h, ok := FirstUint(p.Value)
	if !ok {
		return File{}, false
	}
	n, ok := m.node.ChildByHash(h)
	if !ok || n.Identifier != IDFile {
		return File{}, false
	}
	return File{m.child(n)}, true
}

// Slots returns the resolved slots of the material by name. Slots that do
// not resolve to a file child are omitted.
func (m Material) Slots() map[string]File {
	slots := map[string]File{}
	for _, name := range m.SlotNames() {
		if f, ok := m.Slot(name); ok {
			slots[name] = f
		}
	}
	return slots
}

// SetSlot sets the named slot to refer to the file child with the given hash.
func (m Material) SetSlot(name string, hash uint64) {
	m.setLong(name, hash)
}

func (m Material) Files() []File {
	vs := m.children(IDFile)
	list := make([]File, len(vs))
	for i, v := range vs {
		list[i] = File{v}
	}
	return list
}

func (m Material) CreateFile() File {
	return File{m.create(IDFile)}
}

////////////////////////////////////////////////////////////////

// File refers to an external file by path.
type File struct{ view }

func (f File) Path() (string, bool) {
	return f.str("p")
}

func (f File) SetPath(path string) {
	f.setStr("p", path)
}

// Ext returns the lower-cased extension of the path, without the dot.
func (f File) Ext() string {
	p, _ := f.Path()
	i := strings.LastIndexAny(p, "./\\")
	if i < 0 || p[i] != '.' {
		return ""
	}
	return strings.ToLower(p[i+1:])
}

////////////////////////////////////////////////////////////////

// Instance places a copy of an external scene, referred to by a sibling
// File, at a transform.
type Instance struct{ view }

func (i Instance) Name() (string, bool) {
	return i.str("n")
}

func (i Instance) SetName(name string) {
	i.setStr("n", name)
}

// ReferenceFile returns the sibling file of the scene being instanced.
func (i Instance) ReferenceFile() (File, bool) {
	n, ok := i.siblingRef("rf")
	if !ok || n.Identifier != IDFile {
		return File{}, false
	}
	return File{view{node: n, scope: i.scope, doc: i.doc}}, true
}

func (i Instance) SetReferenceFile(hash uint64) {
	i.setLong("rf", hash)
}

func (i Instance) Position() (Vec3, bool) {
	return i.vec3("p")
}

func (i Instance) SetPosition(p Vec3) {
	i.setVec3("p", p)
}

// Rotation returns the rotation quaternion, XYZW.
func (i Instance) Rotation() (Vec4, bool) {
	return i.vec4("r")
}

func (i Instance) SetRotation(r Vec4) {
	i.setVec4("r", r)
}

func (i Instance) Scale() (Vec3, bool) {
	return i.vec3("s")
}

func (i Instance) SetScale(s Vec3) {
	i.setVec3("s", s)
}
