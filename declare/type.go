package declare

import (
	"strings"

	"github.com/castformat/castfile"
)

// Type corresponds to a castfile.Type, with additional types that are
// converted to one when declared.
type Type byte

// String returns a string representation of the type. If the type is not
// valid, then the returned value will be "Invalid".
func (t Type) String() string {
	s, ok := typeStrings[t]
	if !ok {
		return "Invalid"
	}
	return s
}

const (
	_ Type = iota
	Byte
	Short
	Int
	Long
	Float
	Double
	String
	Vec2
	Vec3
	Vec4
	Uints
	Reference
)

// TypeFromString returns a Type from its string representation. Type(0) is
// returned if the string does not represent an existing Type.
func TypeFromString(s string) Type {
	s = strings.ToLower(s)
	for typ, str := range typeStrings {
		if s == strings.ToLower(str) {
			return typ
		}
	}
	return 0
}

var typeStrings = map[Type]string{
	Byte:      "Byte",
	Short:     "Short",
	Int:       "Int",
	Long:      "Long",
	Float:     "Float",
	Double:    "Double",
	String:    "String",
	Vec2:      "Vec2",
	Vec3:      "Vec3",
	Vec4:      "Vec4",
	Uints:     "Uints",
	Reference: "Reference",
}

func normUint64(v interface{}) uint64 {
	switch v := v.(type) {
	case int:
		return uint64(v)
	case uint:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	case int8:
		return uint64(v)
	case int16:
		return uint64(v)
	case int32:
		return uint64(v)
	case int64:
		return uint64(v)
	case float32:
		return uint64(v)
	case float64:
		return uint64(v)
	}

	return 0
}

func normFloat64(v interface{}) float64 {
	switch v := v.(type) {
	case int:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	}

	return 0
}

func normFloat32(v interface{}) float32 {
	return float32(normFloat64(v))
}

func normString(v interface{}) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	return "", false
}

// assertValue returns v if it is a castfile.Value of the type corresponding
// to t.
func assertValue(t Type, v interface{}) (value castfile.Value, ok bool) {
	switch t {
	case Byte:
		value, ok = v.(castfile.ValueBytes)
	case Short:
		value, ok = v.(castfile.ValueShorts)
	case Int:
		value, ok = v.(castfile.ValueInts)
	case Long, Reference:
		value, ok = v.(castfile.ValueLongs)
	case Float:
		value, ok = v.(castfile.ValueFloats)
	case Double:
		value, ok = v.(castfile.ValueDoubles)
	case String:
		value, ok = v.(castfile.ValueString)
	case Vec2:
		value, ok = v.(castfile.ValueVec2s)
	case Vec3:
		value, ok = v.(castfile.ValueVec3s)
	case Vec4:
		value, ok = v.(castfile.ValueVec4s)
	case Uints:
		switch v := v.(type) {
		case castfile.ValueBytes, castfile.ValueShorts, castfile.ValueInts:
			value, ok = v.(castfile.Value), true
		}
	}
	return value, ok
}

// floats flattens numbers and vectors into a list of floats.
func floats(v []interface{}) []float32 {
	f := make([]float32, 0, len(v))
	for _, v := range v {
		switch v := v.(type) {
		case castfile.Vec2:
			f = append(f, v.X, v.Y)
		case castfile.Vec3:
			f = append(f, v.X, v.Y, v.Z)
		case castfile.Vec4:
			f = append(f, v.X, v.Y, v.Z, v.W)
		default:
			f = append(f, normFloat32(v))
		}
	}
	return f
}

func (t Type) value(refs map[string]uint64, v []interface{}) castfile.Value {
	if len(v) == 1 {
		if value, ok := assertValue(t, v[0]); ok {
			return value.Copy()
		}
	}

	switch t {
	case Byte:
		value := make(castfile.ValueBytes, len(v))
		for i, v := range v {
			value[i] = uint8(normUint64(v))
		}
		return value
	case Short:
		value := make(castfile.ValueShorts, len(v))
		for i, v := range v {
			value[i] = uint16(normUint64(v))
		}
		return value
	case Int:
		value := make(castfile.ValueInts, len(v))
		for i, v := range v {
			value[i] = uint32(normUint64(v))
		}
		return value
	case Long:
		value := make(castfile.ValueLongs, len(v))
		for i, v := range v {
			value[i] = normUint64(v)
		}
		return value
	case Float:
		value := make(castfile.ValueFloats, len(v))
		for i, v := range v {
			value[i] = normFloat32(v)
		}
		return value
	case Double:
		value := make(castfile.ValueDoubles, len(v))
		for i, v := range v {
			value[i] = normFloat64(v)
		}
		return value
	case String:
		if len(v) > 0 {
			if s, ok := normString(v[0]); ok {
				return castfile.ValueString(s)
			}
		}
		return castfile.ValueString("")
	case Vec2:
		f := floats(v)
		value := make(castfile.ValueVec2s, len(f)/2)
		for i := range value {
			value[i] = castfile.Vec2{X: f[i*2], Y: f[i*2+1]}
		}
		return value
	case Vec3:
		f := floats(v)
		value := make(castfile.ValueVec3s, len(f)/3)
		for i := range value {
			value[i] = castfile.Vec3{X: f[i*3], Y: f[i*3+1], Z: f[i*3+2]}
		}
		return value
	case Vec4:
		f := floats(v)
		value := make(castfile.ValueVec4s, len(f)/4)
		for i := range value {
			value[i] = castfile.Vec4{X: f[i*4], Y: f[i*4+1], Z: f[i*4+2], W: f[i*4+3]}
		}
		return value
	case Uints:
		u := make([]uint32, len(v))
		for i, v := range v {
			u[i] = uint32(normUint64(v))
		}
		return castfile.NarrowestUints(u)
	case Reference:
		value := make(castfile.ValueLongs, len(v))
		for i, v := range v {
			if s, ok := normString(v); ok {
				value[i] = refs[s]
				continue
			}
			value[i] = normUint64(v)
		}
		return value
	}
	return nil
}
