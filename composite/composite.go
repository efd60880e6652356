package composite

import (
	"bytes"
	"fmt"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/internal/options"
	"github.com/relaywire/amqp10/primitive"
)

// Composite is a descriptor paired with an ordered field list. Fields
// correspond positionally to a record's declared fields; a record with
// fewer encoded fields than declared treats the missing trailing fields as
// null.
type Composite struct {
	Descriptor Descriptor
	Fields     []primitive.Primitive
}

// Field returns the field at position i, or null if i is beyond the
// encoded field count (an absent trailing field), and whether i is a valid
// (non-negative) position at all.
func (c Composite) Field(i int) (primitive.Primitive, bool) {
	if i < 0 {
		return primitive.Primitive{}, false
	}
	if i >= len(c.Fields) {
		return primitive.Null(), true
	}
	return c.Fields[i], true
}

// Encode appends c's wire encoding ([0x00][descriptor][list]) to dst.
func (c Composite) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	p := primitive.Composite(c.Descriptor.Primitive(), c.Fields)
	return p.Encode(dst, opts...)
}

// Decode reads one composite from r.
func Decode(r *bytes.Reader) (Composite, error) {
	v, err := primitive.Decode(r)
	if err != nil {
		return Composite{}, err
	}
	return FromPrimitive(v)
}

// AsPrimitive converts c to the primitive.Primitive it is encoded as,
// without going through a byte round trip. Used by types that need to
// embed a composite as a field of another composite (e.g. attach's source
// and target).
func (c Composite) AsPrimitive() primitive.Primitive {
	return primitive.Composite(c.Descriptor.Primitive(), c.Fields)
}

// FromPrimitive converts an already-decoded primitive.Primitive into a
// Composite, the in-memory counterpart of Decode for callers that already
// hold a Primitive (e.g. a field popped from an enclosing composite).
func FromPrimitive(v primitive.Primitive) (Composite, error) {
	descAny, fields, ok := v.CompositeParts()
	if !ok {
		return Composite{}, fmt.Errorf("composite: expected a composite, got %s: %w", v.Kind(), amqperr.ErrDecodeError)
	}
	descPrim, ok := descAny.(primitive.Primitive)
	if !ok {
		return Composite{}, fmt.Errorf("composite: descriptor has unexpected internal type %T: %w", descAny, amqperr.ErrDecodeError)
	}
	desc, err := DescriptorFromPrimitive(descPrim)
	if err != nil {
		return Composite{}, fmt.Errorf("composite: %w: %w", err, amqperr.ErrDecodeError)
	}
	return Composite{Descriptor: desc, Fields: fields}, nil
}

// Builder accumulates fields left-to-right, then finalizes into an
// immutable Composite. This mirrors the teacher's accumulate-then-finalize
// encoder builders (blob/blob_set.go's BlobSetEncoder: repeated Add calls,
// terminal Finish/Encode).
type Builder struct {
	desc   Descriptor
	fields []primitive.Primitive
}

// NewBuilder starts a builder for a composite with the given descriptor.
func NewBuilder(desc Descriptor) *Builder {
	return &Builder{desc: desc}
}

// Push appends the next field in position order.
func (b *Builder) Push(v primitive.Primitive) *Builder {
	b.fields = append(b.fields, v)
	return b
}

// Build finalizes the accumulated fields into a Composite.
func (b *Builder) Build() Composite {
	return Composite{Descriptor: b.desc, Fields: b.fields}
}
