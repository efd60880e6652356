// Package compound implements the AMQP 1.0 compound types layered on top
// of primitive: list (ordered, heterogeneous), map (ordered, symbol- or
// primitive-keyed), and array (ordered, homogeneous). OASIS AMQP 1.0
// section 1.6.2.
package compound

import (
	"bytes"

	"github.com/relaywire/amqp10/internal/options"
	"github.com/relaywire/amqp10/primitive"
)

// List is an ordered, possibly heterogeneous sequence of primitives.
type List struct {
	elems []primitive.Primitive
}

// NewList wraps elems, which are retained, not copied.
func NewList(elems []primitive.Primitive) List { return List{elems: elems} }

// Len reports the number of elements.
func (l List) Len() int { return len(l.elems) }

// Get returns the element at i and whether i is in range.
func (l List) Get(i int) (primitive.Primitive, bool) {
	if i < 0 || i >= len(l.elems) {
		return primitive.Primitive{}, false
	}
	return l.elems[i], true
}

// Elements returns the backing slice directly, not a copy.
func (l List) Elements() []primitive.Primitive { return l.elems }

// Encode appends l's wire encoding to dst.
func (l List) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return primitive.List(l.elems).Encode(dst, opts...)
}

// DecodeList reads one list primitive from r and returns it as a List.
func DecodeList(r *bytes.Reader) (List, error) {
	v, err := primitive.Decode(r)
	if err != nil {
		return List{}, err
	}
	elems, ok := v.AsList()
	if !ok {
		return List{}, errNotAList(v.Kind())
	}
	return NewList(elems), nil
}
