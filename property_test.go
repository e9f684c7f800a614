package castfile_test

import (
	"testing"

	"github.com/castformat/castfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty_Len(t *testing.T) {
	tests := []struct {
		p   castfile.Property
		len int
	}{
		{castfile.Property{Name: "n", Value: castfile.ValueString("abc")}, 8 + 1 + 4},
		{castfile.Property{Name: "vp", Value: castfile.ValueVec3s{{}, {}}}, 8 + 2 + 24},
		{castfile.Property{Name: "f", Value: castfile.ValueShorts{0, 1, 2}}, 8 + 1 + 6},
		{castfile.Property{Name: "", Value: castfile.ValueLongs{}}, 8},
	}
	for _, test := range tests {
		assert.Equal(t, test.len, test.p.Len(), test.p.Name)
	}
}

func TestProperty_Count(t *testing.T) {
	p := castfile.Property{Name: "n", Value: castfile.ValueString("abc")}
	assert.Equal(t, uint32(1), p.Count())
	p.DeclaredCount = 3
	assert.Equal(t, uint32(3), p.Count())

	p = castfile.Property{Name: "vp", Value: castfile.ValueVec3s{{}, {}}}
	assert.Equal(t, uint32(2), p.Count())
}

func TestProperties(t *testing.T) {
	var ps castfile.Properties
	assert.Equal(t, 0, ps.Len())
	assert.Nil(t, ps.Value("n"))

	ps.Set("n", castfile.ValueString("a"))
	ps.Set("p", castfile.ValueInts{1})
	ps.Set("s", castfile.ValueBytes{1})
	assert.Equal(t, []string{"n", "p", "s"}, ps.Names())

	// Replacing keeps the position.
	ps.Set("n", castfile.ValueString("b"))
	assert.Equal(t, []string{"n", "p", "s"}, ps.Names())
	assert.Equal(t, castfile.ValueString("b"), ps.Value("n"))

	replaced := ps.Put(&castfile.Property{Name: "p", Value: castfile.ValueInts{2}})
	assert.True(t, replaced)
	assert.Equal(t, castfile.ValueInts{2}, ps.Value("p"))
	assert.False(t, ps.Put(&castfile.Property{Name: "q", Value: castfile.ValueInts{3}}))

	require.True(t, ps.Delete("p"))
	assert.False(t, ps.Delete("p"))
	assert.Equal(t, []string{"n", "s", "q"}, ps.Names())
	p, ok := ps.Get("q")
	require.True(t, ok)
	assert.Equal(t, castfile.ValueInts{3}, p.Value)

	c := ps.Copy()
	c.Set("n", castfile.ValueString("c"))
	assert.Equal(t, castfile.ValueString("b"), ps.Value("n"))
}

func TestProperties_SetResetsDeclaredCount(t *testing.T) {
	var ps castfile.Properties
	ps.Put(&castfile.Property{Name: "n", Value: castfile.ValueString("a"), DeclaredCount: 5})
	p := ps.Set("n", castfile.ValueString("b"))
	assert.Equal(t, uint32(1), p.Count())
}
