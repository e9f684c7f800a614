package castfile

// Animation is a set of curves sampled at a framerate.
type Animation struct{ view }

func (a Animation) Name() (string, bool) {
	return a.str("n")
}

func (a Animation) SetName(name string) {
	a.setStr("n", name)
}

// Framerate returns the frames per second of the animation.
func (a Animation) Framerate() (float32, bool) {
	return a.float("fr")
}

func (a Animation) SetFramerate(fps float32) {
	a.setFloat("fr", fps)
}

func (a Animation) Looping() bool {
	b, _ := a.flag("lo")
	return b
}

func (a Animation) SetLooping(looping bool) {
	a.setFlag("lo", looping)
}

// Skeleton returns the first skeleton of the animation.
func (a Animation) Skeleton() (Skeleton, bool) {
	v, ok := a.firstChild(IDSkeleton)
	return Skeleton{v}, ok
}

func (a Animation) CreateSkeleton() Skeleton {
	return Skeleton{a.create(IDSkeleton)}
}

func (a Animation) Curves() []Curve {
	vs := a.children(IDCurve)
	list := make([]Curve, len(vs))
	for i, v := range vs {
		list[i] = Curve{v}
	}
	return list
}

func (a Animation) CreateCurve() Curve {
	return Curve{a.create(IDCurve)}
}

func (a Animation) CurveModeOverrides() []CurveModeOverride {
	vs := a.children(IDCurveModeOverride)
	list := make([]CurveModeOverride, len(vs))
	for i, v := range vs {
		list[i] = CurveModeOverride{v}
	}
	return list
}

func (a Animation) CreateCurveModeOverride() CurveModeOverride {
	return CurveModeOverride{a.create(IDCurveModeOverride)}
}

func (a Animation) Notifications() []NotificationTrack {
	vs := a.children(IDNotificationTrack)
	list := make([]NotificationTrack, len(vs))
	for i, v := range vs {
		list[i] = NotificationTrack{v}
	}
	return list
}

func (a Animation) CreateNotification() NotificationTrack {
	return NotificationTrack{a.create(IDNotificationTrack)}
}

////////////////////////////////////////////////////////////////

// Curve modes.
const (
	ModeAbsolute = "absolute"
	ModeRelative = "relative"
	ModeAdditive = "additive"
)

// Curve key properties.
const (
	KeyRotationQuat = "rq"
	KeyTranslateX   = "tx"
	KeyTranslateY   = "ty"
	KeyTranslateZ   = "tz"
	KeyScaleX       = "sx"
	KeyScaleY       = "sy"
	KeyScaleZ       = "sz"
	KeyVisibility   = "vb"
)

// KeyValueType returns the type of the key values of a curve animating the
// given key property: quaternions for rotation, bytes for visibility, and
// floats otherwise.
func KeyValueType(keyProperty string) Type {
	switch keyProperty {
	case KeyRotationQuat:
		return TypeVec4
	case KeyVisibility:
		return TypeByte
	default:
		return TypeFloat
	}
}

// Curve animates one property of one node by name.
type Curve struct{ view }

// NodeName returns the name of the node being animated.
func (c Curve) NodeName() (string, bool) {
	return c.str("nn")
}

func (c Curve) SetNodeName(name string) {
	c.setStr("nn", name)
}

// KeyPropertyName returns the property being animated, such as
// KeyRotationQuat.
func (c Curve) KeyPropertyName() (string, bool) {
	return c.str("kp")
}

func (c Curve) SetKeyPropertyName(name string) {
	c.setStr("kp", name)
}

// KeyFrameBuffer returns the frame index of each key.
func (c Curve) KeyFrameBuffer() ([]uint32, bool) {
	return c.uints("kb")
}

// SetKeyFrameBuffer sets the frame index of each key, using the narrowest
// integer type that holds every frame.
func (c Curve) SetKeyFrameBuffer(frames []uint32) {
	c.node.Properties.Set("kb", NarrowestUints(frames))
}

// KeyValueBuffer returns the raw key values. Its type depends on the key
// property; see KeyValueType.
func (c Curve) KeyValueBuffer() Value {
	return c.node.Get("kv")
}

func (c Curve) FloatKeyValueBuffer() ([]float32, bool) {
	v, ok := c.node.Get("kv").(ValueFloats)
	return []float32(v), ok
}

func (c Curve) SetFloatKeyValueBuffer(values []float32) {
	c.node.Properties.Set("kv", ValueFloats(values))
}

func (c Curve) Vec4KeyValueBuffer() ([]Vec4, bool) {
	v, ok := c.node.Get("kv").(ValueVec4s)
	return []Vec4(v), ok
}

func (c Curve) SetVec4KeyValueBuffer(values []Vec4) {
	c.node.Properties.Set("kv", ValueVec4s(values))
}

func (c Curve) ByteKeyValueBuffer() ([]uint8, bool) {
	v, ok := c.node.Get("kv").(ValueBytes)
	return []uint8(v), ok
}

func (c Curve) SetByteKeyValueBuffer(values []uint8) {
	c.node.Properties.Set("kv", ValueBytes(values))
}

// Mode returns how key values combine with the rest pose, ModeAbsolute if
// not set.
func (c Curve) Mode() string {
	if s, ok := c.str("m"); ok {
		return s
	}
	return ModeAbsolute
}

func (c Curve) SetMode(mode string) {
	c.setStr("m", mode)
}

// AdditiveBlendWeight returns the weight of an additive curve, 1 if not set.
func (c Curve) AdditiveBlendWeight() float32 {
	if f, ok := c.float("ab"); ok {
		return f
	}
	return 1
}

func (c Curve) SetAdditiveBlendWeight(weight float32) {
	c.setFloat("ab", weight)
}

////////////////////////////////////////////////////////////////

// CurveModeOverride changes the mode of the curves of a node and, optionally,
// of its descendants.
type CurveModeOverride struct{ view }

func (o CurveModeOverride) NodeName() (string, bool) {
	return o.str("nn")
}

func (o CurveModeOverride) SetNodeName(name string) {
	o.setStr("nn", name)
}

func (o CurveModeOverride) Mode() (string, bool) {
	return o.str("m")
}

func (o CurveModeOverride) SetMode(mode string) {
	o.setStr("m", mode)
}

func (o CurveModeOverride) OverrideTranslationCurves() bool {
	b, _ := o.flag("ot")
	return b
}

func (o CurveModeOverride) SetOverrideTranslationCurves(enabled bool) {
	o.setFlag("ot", enabled)
}

func (o CurveModeOverride) OverrideRotationCurves() bool {
	b, _ := o.flag("or")
	return b
}

func (o CurveModeOverride) SetOverrideRotationCurves(enabled bool) {
	o.setFlag("or", enabled)
}

func (o CurveModeOverride) OverrideScaleCurves() bool {
	b, _ := o.flag("os")
	return b
}

func (o CurveModeOverride) SetOverrideScaleCurves(enabled bool) {
	o.setFlag("os", enabled)
}

////////////////////////////////////////////////////////////////

// NotificationTrack marks named events at frames of an animation.
type NotificationTrack struct{ view }

func (t NotificationTrack) Name() (string, bool) {
	return t.str("n")
}

func (t NotificationTrack) SetName(name string) {
	t.setStr("n", name)
}

func (t NotificationTrack) KeyFrameBuffer() ([]uint32, bool) {
	return t.uints("kb")
}

func (t NotificationTrack) SetKeyFrameBuffer(frames []uint32) {
	t.node.Properties.Set("kb", NarrowestUints(frames))
}
