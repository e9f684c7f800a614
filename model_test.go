package castfile_test

import (
	"testing"

	"github.com/castformat/castfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMesh(t *testing.T) {
	doc := castfile.NewDocument()
	model := doc.CreateRoot().CreateModel()
	model.SetName("Test")
	mesh := model.CreateMesh()

	assert.Equal(t, 0, mesh.VertexCount())
	assert.Equal(t, 0, mesh.FaceCount())
	_, ok := mesh.Material()
	assert.False(t, ok)

	mesh.SetVertexPositionBuffer([]castfile.Vec3{{X: 0}, {X: 1}, {Y: 1}})
	mesh.SetFaceBuffer([]uint32{0, 1, 2})
	assert.Equal(t, 3, mesh.VertexCount())
	assert.Equal(t, 1, mesh.FaceCount())
	assert.Equal(t, castfile.ValueBytes{0, 1, 2}, mesh.Node().Get("f"))

	faces, ok := mesh.FaceBuffer()
	require.True(t, ok)
	assert.Equal(t, []uint32{0, 1, 2}, faces)

	mesh.SetFaceBuffer([]uint32{0, 1, 1000})
	assert.Equal(t, castfile.ValueShorts{0, 1, 1000}, mesh.Node().Get("f"))
	mesh.SetFaceBuffer([]uint32{0, 1, 70000})
	assert.Equal(t, castfile.ValueInts{0, 1, 70000}, mesh.Node().Get("f"))

	assert.Equal(t, castfile.SkinningLinear, mesh.SkinningMethod())
	mesh.SetSkinningMethod(castfile.SkinningQuaternion)
	assert.Equal(t, castfile.SkinningQuaternion, mesh.SkinningMethod())

	mesh.SetMaximumWeightInfluence(4)
	assert.Equal(t, 4, mesh.MaximumWeightInfluence())
	mesh.SetVertexWeightBoneBuffer([]uint32{0, 1, 2, 300})
	bones, ok := mesh.VertexWeightBoneBuffer()
	require.True(t, ok)
	assert.Equal(t, []uint32{0, 1, 2, 300}, bones)
	mesh.SetVertexWeightValueBuffer([]float32{0.5, 0.25, 0.25, 0})
	weights, ok := mesh.VertexWeightValueBuffer()
	require.True(t, ok)
	assert.Len(t, weights, 4)

	mesh.SetVertexColorBuffer([]uint32{0xFF0000FF})
	colors, ok := mesh.VertexColorBuffer()
	require.True(t, ok)
	assert.Equal(t, []uint32{0xFF0000FF}, colors)
}

func TestMesh_UVLayers(t *testing.T) {
	mesh := castfile.NewDocument().CreateRoot().CreateModel().CreateMesh()
	assert.Equal(t, 0, mesh.UVLayerCount())

	mesh.SetVertexUVLayerBuffer(0, []castfile.Vec2{{X: 0, Y: 1}})
	mesh.SetVertexUVLayerBuffer(1, []castfile.Vec2{{X: 1, Y: 0}})
	assert.Equal(t, 2, mesh.UVLayerCount())

	mesh.SetUVLayerCount(1)
	assert.Equal(t, 1, mesh.UVLayerCount())

	uvs, ok := mesh.VertexUVLayerBuffer(1)
	require.True(t, ok)
	assert.Equal(t, []castfile.Vec2{{X: 1, Y: 0}}, uvs)
	_, ok = mesh.VertexUVLayerBuffer(2)
	assert.False(t, ok)
}

func TestMesh_Material(t *testing.T) {
	doc := castfile.NewDocument()
	model := doc.CreateRoot().CreateModel()
	material := model.CreateMaterial()
	material.SetName("skin")
	mesh := model.CreateMesh()

	mesh.SetMaterial(material.Hash())
	got, ok := mesh.Material()
	require.True(t, ok)
	assert.Same(t, material.Node(), got.Node())
	name, _ := got.Name()
	assert.Equal(t, "skin", name)

	// References resolve among siblings only.
	other := doc.CreateRoot().CreateModel().CreateMaterial()
	mesh.SetMaterial(other.Hash())
	_, ok = mesh.Material()
	assert.False(t, ok)

	// A missing target is not an error.
	mesh.SetMaterial(0xDEADBEEF)
	_, ok = mesh.Material()
	assert.False(t, ok)
}

func TestMaterial_Slots(t *testing.T) {
	doc := castfile.NewDocument()
	material := doc.CreateRoot().CreateModel().CreateMaterial()
	material.SetName("m")
	material.SetType("pbr")
	diffuse := material.CreateFile()
	diffuse.SetPath("textures/diffuse.PNG")
	normal := material.CreateFile()
	normal.SetPath("normal.tga")

	material.SetSlot("diffuse", diffuse.Hash())
	material.SetSlot("normal", normal.Hash())
	material.SetSlot("specular", 12345)

	assert.Equal(t, []string{"diffuse", "normal", "specular"}, material.SlotNames())
	f, ok := material.Slot("diffuse")
	require.True(t, ok)
	path, _ := f.Path()
	assert.Equal(t, "textures/diffuse.PNG", path)
	assert.Equal(t, "png", f.Ext())

	_, ok = material.Slot("specular")
	assert.False(t, ok)
	_, ok = material.Slot("n")
	assert.False(t, ok)

	slots := material.Slots()
	assert.Len(t, slots, 2)
	assert.Same(t, normal.Node(), slots["normal"].Node())
	assert.Len(t, material.Files(), 2)
}

func TestBlendShape(t *testing.T) {
	model := castfile.NewDocument().CreateRoot().CreateModel()
	base := model.CreateMesh()
	a := model.CreateMesh()
	b := model.CreateMesh()
	shape := model.CreateBlendShape()
	shape.SetName("smile")
	shape.SetBaseShape(base.Hash())
	shape.SetTargetShapes([]uint64{a.Hash(), 999, b.Hash()})
	shape.SetTargetWeightScales([]float32{1, 1, 0.5})

	got, ok := shape.BaseShape()
	require.True(t, ok)
	assert.Same(t, base.Node(), got.Node())

	targets := shape.TargetShapes()
	require.Len(t, targets, 2)
	assert.Same(t, a.Node(), targets[0].Node())
	assert.Same(t, b.Node(), targets[1].Node())

	scales, ok := shape.TargetWeightScales()
	require.True(t, ok)
	for i, want := range []*castfile.Node{a.Node(), nil, b.Node()} {
		got, ok := shape.TargetShape(i)
		if want == nil {
			assert.False(t, ok, "target %d", i)
			continue
		}
		require.True(t, ok, "target %d", i)
		assert.Same(t, want, got.Node(), "target %d", i)
	}
	assert.Equal(t, float32(0.5), scales[2])
	_, ok = shape.TargetShape(3)
	assert.False(t, ok)
	_, ok = shape.TargetShape(-1)
	assert.False(t, ok)

	hashes, ok := shape.TargetShapeHashes()
	require.True(t, ok)
	assert.Len(t, hashes, 3)
	assert.Len(t, model.BlendShapes(), 1)
}

func TestInstance(t *testing.T) {
	root := castfile.NewDocument().CreateRoot()
	file := root.CreateFile()
	file.SetPath("scene.cast")
	inst := root.CreateInstance()
	inst.SetName("copy")
	inst.SetReferenceFile(file.Hash())
	inst.SetPosition(castfile.Vec3{X: 1, Y: 2, Z: 3})
	inst.SetRotation(castfile.Vec4{W: 1})
	inst.SetScale(castfile.Vec3{X: 1, Y: 1, Z: 1})

	got, ok := inst.ReferenceFile()
	require.True(t, ok)
	assert.Same(t, file.Node(), got.Node())
	p, ok := inst.Position()
	require.True(t, ok)
	assert.Equal(t, castfile.Vec3{X: 1, Y: 2, Z: 3}, p)
	r, _ := inst.Rotation()
	assert.Equal(t, float32(1), r.W)
	assert.Len(t, root.Instances(), 1)
	assert.Len(t, root.Files(), 1)
}

func TestMetadata(t *testing.T) {
	root := castfile.NewDocument().CreateRoot()
	_, ok := root.Metadata()
	assert.False(t, ok)

	meta := root.CreateMetadata()
	meta.SetAuthor("someone")
	meta.SetSoftware("exporter")
	meta.SetUpAxis("y")

	got, ok := root.Metadata()
	require.True(t, ok)
	author, _ := got.Author()
	software, _ := got.Software()
	up, _ := got.UpAxis()
	assert.Equal(t, "someone", author)
	assert.Equal(t, "exporter", software)
	assert.Equal(t, "y", up)
}

func TestDocument_Roots(t *testing.T) {
	doc := castfile.NewDocument()
	doc.CreateRoot()
	doc.AddNode(castfile.NewNode(castfile.MakeIdentifier("xtra"), 1))
	doc.CreateRoot()
	assert.Len(t, doc.Roots(), 2)
	assert.Len(t, doc.Variants(), 3)
}

func TestWrap(t *testing.T) {
	doc := castfile.NewDocument()
	model := doc.CreateRoot().CreateModel()
	model.CreateMesh()
	model.Node().AddChild(castfile.NewNode(castfile.MakeIdentifier("abcd"), 1))
	model.CreateMaterial()

	variants := castfile.Children(model)
	require.Len(t, variants, 3)
	assert.IsType(t, castfile.Mesh{}, variants[0])
	assert.IsType(t, castfile.Unknown{}, variants[1])
	assert.IsType(t, castfile.Material{}, variants[2])
	assert.Equal(t, uint64(1), variants[1].Node().Hash)

	roots := doc.Variants()
	require.Len(t, roots, 1)
	assert.IsType(t, castfile.Root{}, roots[0])

	assert.True(t, castfile.Registered(castfile.IDCurve))
	assert.False(t, castfile.Registered(castfile.MakeIdentifier("abcd")))
	assert.Len(t, castfile.Kinds(), 16)
}

func TestWrap_ResolvesInScope(t *testing.T) {
	doc := castfile.NewDocument()
	model := doc.CreateRoot().CreateModel()
	material := model.CreateMaterial()
	mesh := model.CreateMesh()
	mesh.SetMaterial(material.Hash())

	v := doc.Wrap(mesh.Node(), model.Node())
	wrapped, ok := v.(castfile.Mesh)
	require.True(t, ok)
	got, ok := wrapped.Material()
	require.True(t, ok)
	assert.Same(t, material.Node(), got.Node())

	// Without a scope, siblings are the roots of the document.
	wrapped = doc.Wrap(mesh.Node(), nil).(castfile.Mesh)
	_, ok = wrapped.Material()
	assert.False(t, ok)
}
