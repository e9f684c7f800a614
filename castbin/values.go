package castbin

import (
	"encoding/binary"
	"math"

	"github.com/castformat/castfile"
)

var le = binary.LittleEndian

// payloadSize returns the number of bytes of count logical values of a
// fixed-size type.
func payloadSize(t castfile.Type, count uint32) uint64 {
	return uint64(count) * uint64(t.Size())
}

// valueFromBytes decodes count logical values of type t from b. The length of
// b must be payloadSize(t, count). Strings are not handled here.
func valueFromBytes(t castfile.Type, count uint32, b []byte) castfile.Value {
	n := int(count)
	switch t {
	case castfile.TypeByte:
		v := make(castfile.ValueBytes, n)
		copy(v, b)
		return v
	case castfile.TypeShort:
		v := make(castfile.ValueShorts, n)
		for i := range v {
			v[i] = le.Uint16(b[i*2:])
		}
		return v
	case castfile.TypeInt:
		v := make(castfile.ValueInts, n)
		for i := range v {
			v[i] = le.Uint32(b[i*4:])
		}
		return v
	case castfile.TypeLong:
		v := make(castfile.ValueLongs, n)
		for i := range v {
			v[i] = le.Uint64(b[i*8:])
		}
		return v
	case castfile.TypeFloat:
		v := make(castfile.ValueFloats, n)
		for i := range v {
			v[i] = float32At(b, i)
		}
		return v
	case castfile.TypeDouble:
		v := make(castfile.ValueDoubles, n)
		for i := range v {
			v[i] = math.Float64frombits(le.Uint64(b[i*8:]))
		}
		return v
	case castfile.TypeVec2:
		v := make(castfile.ValueVec2s, n)
		for i := range v {
			v[i] = castfile.Vec2{X: float32At(b, i*2), Y: float32At(b, i*2+1)}
		}
		return v
	case castfile.TypeVec3:
		v := make(castfile.ValueVec3s, n)
		for i := range v {
			v[i] = castfile.Vec3{
				X: float32At(b, i*3),
				Y: float32At(b, i*3+1),
				Z: float32At(b, i*3+2),
			}
		}
		return v
	case castfile.TypeVec4:
		v := make(castfile.ValueVec4s, n)
		for i := range v {
			v[i] = castfile.Vec4{
				X: float32At(b, i*4),
				Y: float32At(b, i*4+1),
				Z: float32At(b, i*4+2),
				W: float32At(b, i*4+3),
			}
		}
		return v
	}
	return nil
}

func float32At(b []byte, i int) float32 {
	return math.Float32frombits(le.Uint32(b[i*4:]))
}

// appendValue appends the payload of v to b. Strings are written with a
// trailing NUL byte.
func appendValue(b []byte, v castfile.Value) []byte {
	switch v := v.(type) {
	case castfile.ValueBytes:
		b = append(b, v...)
	case castfile.ValueShorts:
		for _, x := range v {
			b = le.AppendUint16(b, x)
		}
	case castfile.ValueInts:
		for _, x := range v {
			b = le.AppendUint32(b, x)
		}
	case castfile.ValueLongs:
		for _, x := range v {
			b = le.AppendUint64(b, x)
		}
	case castfile.ValueFloats:
		for _, x := range v {
			b = appendFloat32(b, x)
		}
	case castfile.ValueDoubles:
		for _, x := range v {
			b = le.AppendUint64(b, math.Float64bits(x))
		}
	case castfile.ValueString:
		b = append(b, v...)
		b = append(b, 0)
	case castfile.ValueVec2s:
		for _, x := range v {
			b = appendFloat32(b, x.X)
			b = appendFloat32(b, x.Y)
		}
	case castfile.ValueVec3s:
		for _, x := range v {
			b = appendFloat32(b, x.X)
			b = appendFloat32(b, x.Y)
			b = appendFloat32(b, x.Z)
		}
	case castfile.ValueVec4s:
		for _, x := range v {
			b = appendFloat32(b, x.X)
			b = appendFloat32(b, x.Y)
			b = appendFloat32(b, x.Z)
			b = appendFloat32(b, x.W)
		}
	}
	return b
}

func appendFloat32(b []byte, f float32) []byte {
	return le.AppendUint32(b, math.Float32bits(f))
}
