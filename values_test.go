package castfile_test

import (
	"math"
	"testing"

	"github.com/castformat/castfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var types = []castfile.Type{
	castfile.TypeByte,
	castfile.TypeShort,
	castfile.TypeInt,
	castfile.TypeLong,
	castfile.TypeFloat,
	castfile.TypeDouble,
	castfile.TypeString,
	castfile.TypeVec2,
	castfile.TypeVec3,
	castfile.TypeVec4,
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "string", castfile.TypeString.String())
	assert.Equal(t, "vec3", castfile.TypeVec3.String())
	assert.Equal(t, "Invalid", castfile.Type(0).String())
	assert.Equal(t, "Invalid", castfile.Type(200).String())
}

func TestType_Size(t *testing.T) {
	sizes := map[castfile.Type]int{
		castfile.TypeByte:   1,
		castfile.TypeShort:  2,
		castfile.TypeInt:    4,
		castfile.TypeLong:   8,
		castfile.TypeFloat:  4,
		castfile.TypeDouble: 8,
		castfile.TypeString: 0,
		castfile.TypeVec2:   8,
		castfile.TypeVec3:   12,
		castfile.TypeVec4:   16,
	}
	for typ, size := range sizes {
		assert.Equal(t, size, typ.Size(), typ.String())
	}
	assert.Equal(t, 3, castfile.TypeVec3.Arity())
	assert.Equal(t, 4, castfile.TypeVec3.Width())
}

func TestTypeFromTag(t *testing.T) {
	for _, typ := range types {
		got, ok := castfile.TypeFromTag(typ.Tag())
		require.True(t, ok, typ.String())
		assert.Equal(t, typ, got)
	}

	assert.Equal(t, [2]byte{'b', 0}, castfile.TypeByte.Tag())
	assert.Equal(t, [2]byte{'3', 'v'}, castfile.TypeVec3.Tag())

	got, ok := castfile.TypeFromTag([2]byte{0, 'b'})
	require.True(t, ok)
	assert.Equal(t, castfile.TypeByte, got)
	got, ok = castfile.TypeFromTag([2]byte{0, 's'})
	require.True(t, ok)
	assert.Equal(t, castfile.TypeString, got)

	_, ok = castfile.TypeFromTag([2]byte{'x', 0})
	assert.False(t, ok)
	_, ok = castfile.TypeFromTag([2]byte{0, 0})
	assert.False(t, ok)
	_, ok = castfile.TypeFromTag([2]byte{'b', 'b'})
	assert.False(t, ok)
}

func TestNewValue(t *testing.T) {
	for _, typ := range types {
		v := castfile.NewValue(typ)
		require.NotNil(t, v, typ.String())
		assert.Equal(t, typ, v.Type())
		assert.Equal(t, v, v.Copy())
	}
	assert.Nil(t, castfile.NewValue(castfile.TypeInvalid))
}

func TestValueCopy(t *testing.T) {
	v := castfile.ValueVec3s{{X: 1, Y: 2, Z: 3}}
	c := v.Copy().(castfile.ValueVec3s)
	c[0].X = 9
	assert.Equal(t, float32(1), v[0].X)
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v castfile.Value
		s string
	}{
		{castfile.ValueString("test\000string"), "test\000string"},
		{castfile.ValueBytes{1, 255}, "[1, 255]"},
		{castfile.ValueShorts{}, "[]"},
		{castfile.ValueLongs{math.MaxUint64}, "[18446744073709551615]"},
		{castfile.ValueFloats{math.Pi, float32(math.Inf(-1))}, "[3.1415927, -Inf]"},
		{castfile.ValueDoubles{math.Pi}, "[3.141592653589793]"},
		{castfile.ValueVec2s{{X: 1, Y: -2}}, "[(1, -2)]"},
		{castfile.ValueVec4s{{X: 0, Y: 0, Z: 0, W: 1}}, "[(0, 0, 0, 1)]"},
	}
	for _, test := range tests {
		assert.Equal(t, test.s, test.v.String(), test.v.Type().String())
	}
}

func TestValueLen(t *testing.T) {
	assert.Equal(t, 1, castfile.ValueString("hello").Len())
	assert.Equal(t, 2, castfile.ValueVec3s{{}, {}}.Len())
	assert.Equal(t, 3, castfile.ValueBytes{0, 1, 2}.Len())
}

func TestNarrowestUints(t *testing.T) {
	assert.Equal(t, castfile.ValueBytes{200}, castfile.NarrowestUints([]uint32{200}))
	assert.Equal(t, castfile.ValueShorts{1000, 1}, castfile.NarrowestUints([]uint32{1000, 1}))
	assert.Equal(t, castfile.ValueInts{70000}, castfile.NarrowestUints([]uint32{70000}))
	assert.Equal(t, castfile.ValueBytes{}, castfile.NarrowestUints(nil))
}

func TestUints(t *testing.T) {
	for _, v := range []castfile.Value{
		castfile.ValueBytes{0, 1, 2},
		castfile.ValueShorts{0, 1, 2},
		castfile.ValueInts{0, 1, 2},
	} {
		u, ok := castfile.Uints(v)
		require.True(t, ok)
		assert.Equal(t, []uint32{0, 1, 2}, u)
	}
	_, ok := castfile.Uints(castfile.ValueLongs{1})
	assert.False(t, ok)
	_, ok = castfile.Uints(nil)
	assert.False(t, ok)
}

func TestInt32(t *testing.T) {
	v := castfile.Int32Value(-1)
	assert.Equal(t, castfile.ValueInts{0xFFFFFFFF}, v)
	i, ok := castfile.Int32Of(v)
	require.True(t, ok)
	assert.Equal(t, int32(-1), i)

	_, ok = castfile.Int32Of(castfile.ValueBytes{1})
	assert.False(t, ok)
}

func TestIdentifier(t *testing.T) {
	assert.Equal(t, castfile.IDMesh, castfile.MakeIdentifier("mesh"))
	assert.Equal(t, castfile.Identifier(0x6873656D), castfile.IDMesh)
	assert.Equal(t, [4]byte{'m', 'e', 's', 'h'}, castfile.IDMesh.Bytes())
	assert.Equal(t, "mesh", castfile.IDMesh.String())
	assert.Equal(t, "0x00000001", castfile.Identifier(1).String())

	for _, id := range []castfile.Identifier{castfile.IDRoot, castfile.MakeIdentifier("ab"), 1, 0xFFFFFFFF} {
		got, err := castfile.ParseIdentifier(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
	_, err := castfile.ParseIdentifier("toolong")
	assert.Error(t, err)
}
