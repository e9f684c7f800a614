package castfile_test

import (
	"testing"

	"github.com/castformat/castfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBone_ParentIndex(t *testing.T) {
	skel := castfile.NewDocument().CreateRoot().CreateModel().CreateSkeleton()
	hips := skel.CreateBone()
	assert.Equal(t, int32(castfile.NoParent), hips.ParentIndex())

	hips.SetParentIndex(-1)
	assert.Equal(t, castfile.ValueInts{0xFFFFFFFF}, hips.Node().Get("p"))
	assert.Equal(t, int32(-1), hips.ParentIndex())

	spine := skel.CreateBone()
	spine.SetParentIndex(0)
	assert.Equal(t, int32(0), spine.ParentIndex())
	assert.Len(t, skel.Bones(), 2)
}

func TestBone_Transform(t *testing.T) {
	bone := castfile.NewDocument().CreateRoot().CreateModel().CreateSkeleton().CreateBone()
	bone.SetName("Hips")
	_, ok := bone.LocalPosition()
	assert.False(t, ok)

	bone.SetLocalPosition(castfile.Vec3{Y: 1})
	bone.SetLocalRotation(castfile.Vec4{W: 1})
	bone.SetWorldPosition(castfile.Vec3{Y: 2})
	bone.SetWorldRotation(castfile.Vec4{Z: 1})
	bone.SetScale(castfile.Vec3{X: 1, Y: 1, Z: 1})
	bone.SetSegmentScaleCompensate(true)

	lp, ok := bone.LocalPosition()
	require.True(t, ok)
	assert.Equal(t, float32(1), lp.Y)
	wr, _ := bone.WorldRotation()
	assert.Equal(t, float32(1), wr.Z)
	ssc, ok := bone.SegmentScaleCompensate()
	require.True(t, ok)
	assert.True(t, ssc)
	assert.Equal(t, castfile.ValueBytes{1}, bone.Node().Get("ssc"))
}

func TestIKHandle(t *testing.T) {
	skel := castfile.NewDocument().CreateRoot().CreateModel().CreateSkeleton()
	start := skel.CreateBone()
	end := skel.CreateBone()
	ik := skel.CreateIKHandle()
	ik.SetName("leg")
	ik.SetStartBone(start.Hash())
	ik.SetEndBone(end.Hash())
	ik.SetUseTargetRotation(true)

	got, ok := ik.StartBone()
	require.True(t, ok)
	assert.Same(t, start.Node(), got.Node())
	got, ok = ik.EndBone()
	require.True(t, ok)
	assert.Same(t, end.Node(), got.Node())
	_, ok = ik.TargetBone()
	assert.False(t, ok)
	_, ok = ik.PoleVectorBone()
	assert.False(t, ok)
	assert.True(t, ik.UseTargetRotation())

	// A reference to a node of another kind does not resolve as a bone.
	ik.SetPoleBone(ik.Hash())
	_, ok = ik.PoleBone()
	assert.False(t, ok)
	assert.Len(t, skel.IKHandles(), 1)
}

func TestConstraint(t *testing.T) {
	skel := castfile.NewDocument().CreateRoot().CreateModel().CreateSkeleton()
	a := skel.CreateBone()
	b := skel.CreateBone()
	c := skel.CreateConstraint()
	c.SetConstraintType(castfile.ConstraintOrient)
	c.SetConstraintBone(a.Hash())
	c.SetTargetBone(b.Hash())
	c.SetMaintainOffset(true)
	c.SetSkipY(true)

	typ, ok := c.ConstraintType()
	require.True(t, ok)
	assert.Equal(t, castfile.ConstraintOrient, typ)
	got, ok := c.ConstraintBone()
	require.True(t, ok)
	assert.Same(t, a.Node(), got.Node())
	got, ok = c.TargetBone()
	require.True(t, ok)
	assert.Same(t, b.Node(), got.Node())
	assert.True(t, c.MaintainOffset())
	assert.False(t, c.SkipX())
	assert.True(t, c.SkipY())
	assert.False(t, c.SkipZ())
	assert.Len(t, skel.Constraints(), 1)
}
