package castfile

// Skeleton is a hierarchy of bones, with optional IK handles and
// constraints.
type Skeleton struct{ view }

// Bones returns the bones of the skeleton. Bone parent indices refer to
// positions in this list.
func (s Skeleton) Bones() []Bone {
	vs := s.children(IDBone)
	list := make([]Bone, len(vs))
	for i, v := range vs {
		list[i] = Bone{v}
	}
	return list
}

func (s Skeleton) CreateBone() Bone {
	return Bone{s.create(IDBone)}
}

func (s Skeleton) IKHandles() []IKHandle {
	vs := s.children(IDIKHandle)
	list := make([]IKHandle, len(vs))
	for i, v := range vs {
		list[i] = IKHandle{v}
	}
	return list
}

func (s Skeleton) CreateIKHandle() IKHandle {
	return IKHandle{s.create(IDIKHandle)}
}

func (s Skeleton) Constraints() []Constraint {
	vs := s.children(IDConstraint)
	list := make([]Constraint, len(vs))
	for i, v := range vs {
		list[i] = Constraint{v}
	}
	return list
}

func (s Skeleton) CreateConstraint() Constraint {
	return Constraint{s.create(IDConstraint)}
}

////////////////////////////////////////////////////////////////

// NoParent is the parent index of a bone at the top of the hierarchy.
const NoParent = -1

// Bone is one joint of a skeleton.
type Bone struct{ view }

func (b Bone) Name() (string, bool) {
	return b.str("n")
}

func (b Bone) SetName(name string) {
	b.setStr("n", name)
}

// ParentIndex returns the index of the parent bone within the skeleton, or
// NoParent.
func (b Bone) ParentIndex() int32 {
	if p, ok := Int32Of(b.node.Get("p")); ok {
		return p
	}
	return NoParent
}

func (b Bone) SetParentIndex(index int32) {
	b.node.Properties.Set("p", Int32Value(index))
}

// SegmentScaleCompensate returns whether the bone ignores the scale of its
// parent.
func (b Bone) SegmentScaleCompensate() (bool, bool) {
	return b.flag("ssc")
}

func (b Bone) SetSegmentScaleCompensate(enabled bool) {
	b.setFlag("ssc", enabled)
}

func (b Bone) LocalPosition() (Vec3, bool) {
	return b.vec3("lp")
}

func (b Bone) SetLocalPosition(p Vec3) {
	b.setVec3("lp", p)
}

// LocalRotation returns the rotation relative to the parent, as an XYZW
// quaternion.
func (b Bone) LocalRotation() (Vec4, bool) {
	return b.vec4("lr")
}

func (b Bone) SetLocalRotation(r Vec4) {
	b.setVec4("lr", r)
}

func (b Bone) WorldPosition() (Vec3, bool) {
	return b.vec3("wp")
}

func (b Bone) SetWorldPosition(p Vec3) {
	b.setVec3("wp", p)
}

func (b Bone) WorldRotation() (Vec4, bool) {
	return b.vec4("wr")
}

func (b Bone) SetWorldRotation(r Vec4) {
	b.setVec4("wr", r)
}

func (b Bone) Scale() (Vec3, bool) {
	return b.vec3("s")
}

func (b Bone) SetScale(s Vec3) {
	b.setVec3("s", s)
}

////////////////////////////////////////////////////////////////

// IKHandle is an inverse kinematics chain between two bones of the same
// skeleton.
type IKHandle struct{ view }

func (h IKHandle) Name() (string, bool) {
	return h.str("n")
}

func (h IKHandle) SetName(name string) {
	h.setStr("n", name)
}

func (h IKHandle) bone(name string) (Bone, bool) {
	n, ok := h.siblingRef(name)
	if !ok || n.Identifier != IDBone {
		return Bone{}, false
	}
	return Bone{view{node: n, scope: h.scope, doc: h.doc}}, true
}

func (h IKHandle) StartBone() (Bone, bool) {
	return h.bone("sb")
}

func (h IKHandle) SetStartBone(hash uint64) {
	h.setLong("sb", hash)
}

func (h IKHandle) EndBone() (Bone, bool) {
	return h.bone("eb")
}

func (h IKHandle) SetEndBone(hash uint64) {
	h.setLong("eb", hash)
}

func (h IKHandle) TargetBone() (Bone, bool) {
	return h.bone("tb")
}

func (h IKHandle) SetTargetBone(hash uint64) {
	h.setLong("tb", hash)
}

func (h IKHandle) PoleVectorBone() (Bone, bool) {
	return h.bone("pv")
}

func (h IKHandle) SetPoleVectorBone(hash uint64) {
	h.setLong("pv", hash)
}

func (h IKHandle) PoleBone() (Bone, bool) {
	return h.bone("pb")
}

func (h IKHandle) SetPoleBone(hash uint64) {
	h.setLong("pb", hash)
}

// UseTargetRotation returns whether the end bone follows the rotation of the
// target bone.
func (h IKHandle) UseTargetRotation() bool {
	b, _ := h.flag("tr")
	return b
}

func (h IKHandle) SetUseTargetRotation(enabled bool) {
	h.setFlag("tr", enabled)
}

////////////////////////////////////////////////////////////////

// Constraint types.
const (
	ConstraintPoint  = "pt"
	ConstraintOrient = "or"
	ConstraintScale  = "sc"
)

// Constraint drives one bone from another bone of the same skeleton.
type Constraint struct{ view }

func (c Constraint) Name() (string, bool) {
	return c.str("n")
}

func (c Constraint) SetName(name string) {
	c.setStr("n", name)
}

// ConstraintType returns one of ConstraintPoint, ConstraintOrient or
// ConstraintScale.
func (c Constraint) ConstraintType() (string, bool) {
	return c.str("ct")
}

func (c Constraint) SetConstraintType(typ string) {
	c.setStr("ct", typ)
}

func (c Constraint) bone(name string) (Bone, bool) {
	n, ok := c.siblingRef(name)
	if !ok || n.Identifier != IDBone {
		return Bone{}, false
	}
	return Bone{view{node: n, scope: c.scope, doc: c.doc}}, true
}

// ConstraintBone returns the bone being constrained.
func (c Constraint) ConstraintBone() (Bone, bool) {
	return c.bone("cb")
}

func (c Constraint) SetConstraintBone(hash uint64) {
	c.setLong("cb", hash)
}

// TargetBone returns the bone that drives the constraint.
func (c Constraint) TargetBone() (Bone, bool) {
	return c.bone("tb")
}

func (c Constraint) SetTargetBone(hash uint64) {
	c.setLong("tb", hash)
}

func (c Constraint) MaintainOffset() bool {
	b, _ := c.flag("mo")
	return b
}

func (c Constraint) SetMaintainOffset(enabled bool) {
	c.setFlag("mo", enabled)
}

func (c Constraint) SkipX() bool {
	b, _ := c.flag("sx")
	return b
}

func (c Constraint) SetSkipX(skip bool) {
	c.setFlag("sx", skip)
}

func (c Constraint) SkipY() bool {
	b, _ := c.flag("sy")
	return b
}

func (c Constraint) SetSkipY(skip bool) {
	c.setFlag("sy", skip)
}

func (c Constraint) SkipZ() bool {
	b, _ := c.flag("sz")
	return b
}

func (c Constraint) SetSkipZ(skip bool) {
	c.setFlag("sz", skip)
}
