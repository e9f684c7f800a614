package castfile

import (
	"math"
	"strconv"
	"strings"
)

// Type represents the type of a property value.
type Type byte

const (
	TypeInvalid Type = iota
	TypeByte
	TypeShort
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeString
	TypeVec2
	TypeVec3
	TypeVec4
)

type typeInfo struct {
	tag   string
	name  string
	width int
	arity int
}

var typeInfos = [...]typeInfo{
	TypeInvalid: {"", "Invalid", 0, 0},
	TypeByte:    {"b", "byte", 1, 1},
	TypeShort:   {"h", "short", 2, 1},
	TypeInt:     {"i", "int", 4, 1},
	TypeLong:    {"l", "long", 8, 1},
	TypeFloat:   {"f", "float", 4, 1},
	TypeDouble:  {"d", "double", 8, 1},
	TypeString:  {"s", "string", 0, 1},
	TypeVec2:    {"2v", "vec2", 4, 2},
	TypeVec3:    {"3v", "vec3", 4, 3},
	TypeVec4:    {"4v", "vec4", 4, 4},
}

// Valid returns whether the type is a known property type.
func (t Type) Valid() bool {
	return TypeByte <= t && t <= TypeVec4
}

func (t Type) info() typeInfo {
	if !t.Valid() {
		return typeInfos[TypeInvalid]
	}
	return typeInfos[t]
}

// String returns a string representation of the type. If the type is not
// valid, then the returned value will be "Invalid".
func (t Type) String() string {
	return t.info().name
}

// Width returns the number of bytes of one primitive element of the type.
// Returns 0 for strings and invalid types.
func (t Type) Width() int {
	return t.info().width
}

// Arity returns the number of primitive elements packed into one logical
// value. Scalars have an arity of 1.
func (t Type) Arity() int {
	return t.info().arity
}

// Size returns the number of bytes of one logical value of the type. Returns 0
// if the size depends on the value.
func (t Type) Size() int {
	i := t.info()
	return i.width * i.arity
}

// Tag returns the two-byte wire tag of the type. One-character tags are
// padded with a NUL byte.
func (t Type) Tag() (tag [2]byte) {
	copy(tag[:], t.info().tag)
	return tag
}

// TypeFromTag returns the Type corresponding to a wire tag, and whether the
// tag is recognized. The padding NUL of a one-character tag may appear on
// either side.
func TypeFromTag(tag [2]byte) (Type, bool) {
	s := string(tag[:])
	switch {
	case tag[0] == 0 && tag[1] == 0:
		return TypeInvalid, false
	case tag[1] == 0:
		s = s[:1]
	case tag[0] == 0:
		s = s[1:]
	}
	for t := TypeByte; t <= TypeVec4; t++ {
		if typeInfos[t].tag == s {
			return t, true
		}
	}
	return TypeInvalid, false
}

////////////////////////////////////////////////////////////////

// Value holds the values of a property. Every implementation holds a sequence
// of elements of one Type, except ValueString, which holds a single string.
type Value interface {
	// Type returns the type of the value.
	Type() Type

	// Len returns the number of logical elements. Vector elements count as
	// one each.
	Len() int

	// String returns a string representation of the current value.
	String() string

	// Copy returns a copy of the value, which can be safely modified.
	Copy() Value
}

// NewValue returns an empty Value of the given Type, or nil if the type is
// invalid.
func NewValue(typ Type) Value {
	newValue, ok := valueGenerators[typ]
	if !ok {
		return nil
	}
	return newValue()
}

type valueGenerator func() Value

var valueGenerators = map[Type]valueGenerator{
	TypeByte:   func() Value { return ValueBytes{} },
	TypeShort:  func() Value { return ValueShorts{} },
	TypeInt:    func() Value { return ValueInts{} },
	TypeLong:   func() Value { return ValueLongs{} },
	TypeFloat:  func() Value { return ValueFloats{} },
	TypeDouble: func() Value { return ValueDoubles{} },
	TypeString: func() Value { return ValueString("") },
	TypeVec2:   func() Value { return ValueVec2s{} },
	TypeVec3:   func() Value { return ValueVec3s{} },
	TypeVec4:   func() Value { return ValueVec4s{} },
}

func joinList(n int, elem func(i int) string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(elem(i))
	}
	b.WriteByte(']')
	return b.String()
}

func formatFloat(f float64, bits int) string {
	return strconv.FormatFloat(f, 'g', -1, bits)
}

////////////////////////////////////////////////////////////////

// Vec2 is a packed tuple of two floats.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) String() string {
	return "(" + formatFloat(float64(v.X), 32) + ", " + formatFloat(float64(v.Y), 32) + ")"
}

// Vec3 is a packed tuple of three floats.
type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) String() string {
	return "(" + formatFloat(float64(v.X), 32) + ", " + formatFloat(float64(v.Y), 32) + ", " + formatFloat(float64(v.Z), 32) + ")"
}

// Vec4 is a packed tuple of four floats. Rotations are stored as quaternions
// in XYZW order.
type Vec4 struct {
	X, Y, Z, W float32
}

func (v Vec4) String() string {
	return "(" + formatFloat(float64(v.X), 32) + ", " + formatFloat(float64(v.Y), 32) + ", " + formatFloat(float64(v.Z), 32) + ", " + formatFloat(float64(v.W), 32) + ")"
}

////////////////////////////////////////////////////////////////

type ValueBytes []uint8

func (ValueBytes) Type() Type {
	return TypeByte
}
func (t ValueBytes) Len() int {
	return len(t)
}
func (t ValueBytes) String() string {
	return joinList(len(t), func(i int) string { return strconv.FormatUint(uint64(t[i]), 10) })
}
func (t ValueBytes) Copy() Value {
	c := make(ValueBytes, len(t))
	copy(c, t)
	return c
}

type ValueShorts []uint16

func (ValueShorts) Type() Type {
	return TypeShort
}
func (t ValueShorts) Len() int {
	return len(t)
}
func (t ValueShorts) String() string {
	return joinList(len(t), func(i int) string { return strconv.FormatUint(uint64(t[i]), 10) })
}
func (t ValueShorts) Copy() Value {
	c := make(ValueShorts, len(t))
	copy(c, t)
	return c
}

type ValueInts []uint32

func (ValueInts) Type() Type {
	return TypeInt
}
func (t ValueInts) Len() int {
	return len(t)
}
func (t ValueInts) String() string {
	return joinList(len(t), func(i int) string { return strconv.FormatUint(uint64(t[i]), 10) })
}
func (t ValueInts) Copy() Value {
	c := make(ValueInts, len(t))
	copy(c, t)
	return c
}

// ValueLongs holds 64-bit integers. Hash references are stored as longs.
type ValueLongs []uint64

func (ValueLongs) Type() Type {
	return TypeLong
}
func (t ValueLongs) Len() int {
	return len(t)
}
func (t ValueLongs) String() string {
	return joinList(len(t), func(i int) string { return strconv.FormatUint(t[i], 10) })
}
func (t ValueLongs) Copy() Value {
	c := make(ValueLongs, len(t))
	copy(c, t)
	return c
}

type ValueFloats []float32

func (ValueFloats) Type() Type {
	return TypeFloat
}
func (t ValueFloats) Len() int {
	return len(t)
}
func (t ValueFloats) String() string {
	return joinList(len(t), func(i int) string { return formatFloat(float64(t[i]), 32) })
}
func (t ValueFloats) Copy() Value {
	c := make(ValueFloats, len(t))
	copy(c, t)
	return c
}

type ValueDoubles []float64

func (ValueDoubles) Type() Type {
	return TypeDouble
}
func (t ValueDoubles) Len() int {
	return len(t)
}
func (t ValueDoubles) String() string {
	return joinList(len(t), func(i int) string { return formatFloat(t[i], 64) })
}
func (t ValueDoubles) Copy() Value {
	c := make(ValueDoubles, len(t))
	copy(c, t)
	return c
}

// ValueString holds a single UTF-8 string. It is encoded with a terminating
// NUL byte and no length prefix.
type ValueString string

func (ValueString) Type() Type {
	return TypeString
}
func (t ValueString) Len() int {
	return 1
}
func (t ValueString) String() string {
	return string(t)
}
func (t ValueString) Copy() Value {
	return t
}

type ValueVec2s []Vec2

func (ValueVec2s) Type() Type {
	return TypeVec2
}
func (t ValueVec2s) Len() int {
	return len(t)
}
func (t ValueVec2s) String() string {
	return joinList(len(t), func(i int) string { return t[i].String() })
}
func (t ValueVec2s) Copy() Value {
	c := make(ValueVec2s, len(t))
	copy(c, t)
	return c
}

type ValueVec3s []Vec3

func (ValueVec3s) Type() Type {
	return TypeVec3
}
func (t ValueVec3s) Len() int {
	return len(t)
}
func (t ValueVec3s) String() string {
	return joinList(len(t), func(i int) string { return t[i].String() })
}
func (t ValueVec3s) Copy() Value {
	c := make(ValueVec3s, len(t))
	copy(c, t)
	return c
}

type ValueVec4s []Vec4

func (ValueVec4s) Type() Type {
	return TypeVec4
}
func (t ValueVec4s) Len() int {
	return len(t)
}
func (t ValueVec4s) String() string {
	return joinList(len(t), func(i int) string { return t[i].String() })
}
func (t ValueVec4s) Copy() Value {
	c := make(ValueVec4s, len(t))
	copy(c, t)
	return c
}

////////////////////////////////////////////////////////////////

// NarrowestUints returns values as the narrowest unsigned integer Value that
// can hold the largest of them: ValueBytes if it is at most 255, ValueShorts
// if it is at most 65535, and ValueInts otherwise.
func NarrowestUints(values []uint32) Value {
	var max uint32
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	switch {
	case max <= math.MaxUint8:
		b := make(ValueBytes, len(values))
		for i, v := range values {
			b[i] = uint8(v)
		}
		return b
	case max <= math.MaxUint16:
		h := make(ValueShorts, len(values))
		for i, v := range values {
			h[i] = uint16(v)
		}
		return h
	default:
		c := make(ValueInts, len(values))
		copy(c, values)
		return c
	}
}

// Uints widens an unsigned integer Value of width 1, 2 or 4 to a slice of
// uint32. Returns false for any other value.
func Uints(v Value) ([]uint32, bool) {
	switch v := v.(type) {
	case ValueBytes:
		u := make([]uint32, len(v))
		for i, b := range v {
			u[i] = uint32(b)
		}
		return u, true
	case ValueShorts:
		u := make([]uint32, len(v))
		for i, h := range v {
			u[i] = uint32(h)
		}
		return u, true
	case ValueInts:
		u := make([]uint32, len(v))
		copy(u, v)
		return u, true
	}
	return nil, false
}

// FirstUint returns the first element of an unsigned integer Value of any
// width.
func FirstUint(v Value) (uint64, bool) {
	switch v := v.(type) {
	case ValueBytes:
		if len(v) > 0 {
			return uint64(v[0]), true
		}
	case ValueShorts:
		if len(v) > 0 {
			return uint64(v[0]), true
		}
	case ValueInts:
		if len(v) > 0 {
			return uint64(v[0]), true
		}
	case ValueLongs:
		if len(v) > 0 {
			return v[0], true
		}
	}
	return 0, false
}

// Int32Value stores a signed integer as the two's-complement bit pattern of
// an unsigned 32-bit value.
func Int32Value(v int32) ValueInts {
	return ValueInts{uint32(v)}
}

// Int32Of reinterprets the first element of a ValueInts as a signed integer.
func Int32Of(v Value) (int32, bool) {
	if v, ok := v.(ValueInts); ok && len(v) > 0 {
		return int32(v[0]), true
	}
	return 0, false
}
