package declare_test

import (
	"fmt"
	"testing"

	"github.com/castformat/castfile"
	. "github.com/castformat/castfile/declare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Example() {
	doc := Document{
		Node("root",
			Node("modl",
				Property("n", String, "Cube"),
				Node("mesh",
					Property("vp", Vec3, 0, 0, 0, 1, 0, 0, 0, 1, 0),
					Property("f", Uints, 0, 1, 2),
					Property("m", Reference, "skin"),
				),
				Node("matl", Ref("skin"),
					Property("n", String, "skin"),
				),
			),
		),
	}.Declare()
	model := doc.Roots()[0].Models()[0]
	material, _ := model.Meshes()[0].Material()
	name, _ := material.Name()
	fmt.Println(model.Node(), name)
	// Output: modl "Cube" skin
}

func TestDeclare_Hashes(t *testing.T) {
	doc := Document{
		Node("root",
			Node("modl", Hash(castfile.DefaultHashSeed+1)),
			Node("modl"),
		),
		Node("root", Hash(7)),
	}.Declare()

	require.Len(t, doc.Nodes, 2)
	root := doc.Nodes[0]
	assert.Equal(t, castfile.DefaultHashSeed, root.Hash)
	assert.Equal(t, castfile.DefaultHashSeed+1, root.Children[0].Hash)
	// The explicit hash is skipped when assigning.
	assert.Equal(t, castfile.DefaultHashSeed+2, root.Children[1].Hash)
	assert.Equal(t, uint64(7), doc.Nodes[1].Hash)
	assert.Empty(t, doc.Duplicates())

	n, ok := doc.Lookup(castfile.DefaultHashSeed + 2)
	require.True(t, ok)
	assert.Same(t, root.Children[1], n)
}

func TestDeclare_Sequence(t *testing.T) {
	seq := castfile.NewHashSequence(100)
	a := Document{Node("root")}.Declare(castfile.WithHashSequence(seq))
	b := Document{Node("root")}.Declare(castfile.WithHashSequence(seq))
	assert.Equal(t, uint64(100), a.Nodes[0].Hash)
	assert.Equal(t, uint64(101), b.Nodes[0].Hash)
}

func TestDeclare_Version(t *testing.T) {
	doc := Document{Version(2)}.Declare()
	assert.Equal(t, uint32(2), doc.Version)
	assert.Empty(t, doc.Nodes)
	assert.Equal(t, castfile.FormatVersion, Document{}.Declare().Version)
}

func TestDeclare_References(t *testing.T) {
	doc := Document{
		Node("root",
			Node("skel",
				Node("bone", Ref("hips"), Hash(10)),
				Node("bone", Ref("spine")),
				Node("ikhd",
					Property("sb", Reference, "hips"),
					Property("eb", Reference, []byte("spine")),
					Property("tb", Reference, "missing"),
					Property("pv", Reference, 10),
				),
			),
		),
	}.Declare()

	skel := doc.Nodes[0].Children[0]
	ik := skel.Children[2]
	assert.Equal(t, castfile.ValueLongs{10}, ik.Get("sb"))
	assert.Equal(t, castfile.ValueLongs{skel.Children[1].Hash}, ik.Get("eb"))
	assert.Equal(t, castfile.ValueLongs{0}, ik.Get("tb"))
	assert.Equal(t, castfile.ValueLongs{10}, ik.Get("pv"))
}

func TestProperty_Types(t *testing.T) {
	tests := []struct {
		prop  *castfile.Property
		value castfile.Value
	}{
		{Property("b", Byte, 1, 255).Declare(), castfile.ValueBytes{1, 255}},
		{Property("h", Short, 1, 65535).Declare(), castfile.ValueShorts{1, 65535}},
		{Property("i", Int, -1, 2).Declare(), castfile.ValueInts{0xFFFFFFFF, 2}},
		{Property("l", Long, uint64(1) << 63).Declare(), castfile.ValueLongs{1 << 63}},
		{Property("f", Float, 1.5, 2).Declare(), castfile.ValueFloats{1.5, 2}},
		{Property("d", Double, 0.25).Declare(), castfile.ValueDoubles{0.25}},
		{Property("s", String, "abc").Declare(), castfile.ValueString("abc")},
		{Property("s", String, []byte("abc")).Declare(), castfile.ValueString("abc")},
		{Property("s", String).Declare(), castfile.ValueString("")},
		{Property("2v", Vec2, 1, 2, 3).Declare(), castfile.ValueVec2s{{X: 1, Y: 2}}},
		{Property("3v", Vec3, castfile.Vec3{X: 1}, 4, 5, 6).Declare(), castfile.ValueVec3s{{X: 1}, {X: 4, Y: 5, Z: 6}}},
		{Property("4v", Vec4, 0, 0, 0, 1).Declare(), castfile.ValueVec4s{{W: 1}}},
		{Property("u", Uints, 1, 2).Declare(), castfile.ValueBytes{1, 2}},
		{Property("u", Uints, 1, 300).Declare(), castfile.ValueShorts{1, 300}},
		{Property("u", Uints, 1, 70000).Declare(), castfile.ValueInts{1, 70000}},
		{Property("r", Reference, "x").Declare(), castfile.ValueLongs{0}},
	}
	for _, test := range tests {
		assert.Equal(t, test.value, test.prop.Value, test.prop.Name)
	}
}

func TestProperty_Value(t *testing.T) {
	v := castfile.ValueInts{1, 2}
	p := Property("i", Int, v).Declare()
	assert.Equal(t, v, p.Value)
	v[0] = 9
	assert.Equal(t, castfile.ValueInts{1, 2}, p.Value)

	p = Property("u", Uints, castfile.ValueShorts{3}).Declare()
	assert.Equal(t, castfile.ValueShorts{3}, p.Value)
}

func TestProperty_DeclaredCount(t *testing.T) {
	p := Property("n", String, "a", 3).Declare()
	assert.Equal(t, uint32(3), p.Count())
	p = Property("n", String, "a").Declare()
	assert.Equal(t, uint32(1), p.Count())
}

func TestNode_Duplicate(t *testing.T) {
	n := Node("modl",
		Property("n", String, "a"),
		Property("x", Byte, 1),
		Property("n", String, "b"),
	).Declare()
	assert.Equal(t, []string{"n", "x"}, n.Properties.Names())
	assert.Equal(t, castfile.ValueString("b"), n.Get("n"))
}

func TestTypeFromString(t *testing.T) {
	assert.Equal(t, Vec3, TypeFromString("vec3"))
	assert.Equal(t, Reference, TypeFromString("Reference"))
	assert.Equal(t, Type(0), TypeFromString("cframe"))
	assert.Equal(t, "Uints", Uints.String())
	assert.Equal(t, "Invalid", Type(0).String())
}
