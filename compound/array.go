package compound

import (
	"bytes"

	"github.com/relaywire/amqp10/internal/options"
	"github.com/relaywire/amqp10/internal/pool"
	"github.com/relaywire/amqp10/primitive"
)

// Array is a homogeneous, ordered sequence sharing one element Kind.
type Array struct {
	of    primitive.Kind
	elems []primitive.Primitive
}

// NewArray wraps elems, which must all share kind of. Construction does not
// validate this; Encode does.
func NewArray(of primitive.Kind, elems []primitive.Primitive) Array {
	return Array{of: of, elems: elems}
}

// ElementKind reports the shared element kind.
func (a Array) ElementKind() primitive.Kind { return a.of }

// Len reports the number of elements.
func (a Array) Len() int { return len(a.elems) }

// Elements returns the backing slice directly, not a copy.
func (a Array) Elements() []primitive.Primitive { return a.elems }

// Encode appends a's wire encoding to dst.
func (a Array) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return primitive.Array(a.of, a.elems).Encode(dst, opts...)
}

// DecodeArray reads one array primitive from r. For long, double, and
// string/symbol element kinds, decoding stages elements through a pooled
// scratch slice (internal/pool.GetInt64Slice / GetFloat64Slice /
// GetStringSlice) before copying into the array's own immutable backing
// slice, avoiding a fresh allocation per decoded bulk array; other kinds
// decode directly since primitive.Decode already returns a freshly
// allocated []primitive.Primitive for them.
func DecodeArray(r *bytes.Reader) (Array, error) {
	v, err := primitive.Decode(r)
	if err != nil {
		return Array{}, err
	}
	of, elems, ok := v.AsArray()
	if !ok {
		return Array{}, errNotAnArray(v.Kind())
	}

	switch of {
	case primitive.KindLong:
		scratch, cleanup := pool.GetInt64Slice(len(elems))
		defer cleanup()
		for i, e := range elems {
			scratch[i], _ = e.AsLong()
		}
		out := make([]primitive.Primitive, len(scratch))
		for i, n := range scratch {
			out[i] = primitive.Long(n)
		}
		return NewArray(of, out), nil

	case primitive.KindDouble:
		scratch, cleanup := pool.GetFloat64Slice(len(elems))
		defer cleanup()
		for i, e := range elems {
			scratch[i], _ = e.AsDouble()
		}
		out := make([]primitive.Primitive, len(scratch))
		for i, f := range scratch {
			out[i] = primitive.Double(f)
		}
		return NewArray(of, out), nil

	case primitive.KindString, primitive.KindSymbol:
		scratch, cleanup := pool.GetStringSlice(len(elems))
		defer cleanup()
		for i, e := range elems {
			if of == primitive.KindString {
				scratch[i], _ = e.AsString()
			} else {
				scratch[i], _ = e.AsSymbol()
			}
		}
		out := make([]primitive.Primitive, len(scratch))
		for i, s := range scratch {
			if of == primitive.KindString {
				out[i] = primitive.String(s)
			} else {
				out[i] = primitive.Symbol(s)
			}
		}
		return NewArray(of, out), nil

	default:
		return NewArray(of, elems), nil
	}
}
