// Package composite implements AMQP 1.0 composite types: a descriptor
// (symbol or numeric code) paired with a list body, OASIS AMQP 1.0
// section 1.6.3.
package composite

import (
	"fmt"

	"github.com/relaywire/amqp10/primitive"
)

// Descriptor identifies a composite's record type, either by ASCII symbol
// (e.g. "amqp:open:list") or by numeric code (e.g. 0x10 for open).
type Descriptor struct {
	Symbol   string
	Code     uint64
	IsSymbol bool
}

// SymbolDescriptor builds a symbol-form descriptor.
func SymbolDescriptor(s string) Descriptor {
	return Descriptor{Symbol: s, IsSymbol: true}
}

// CodeDescriptor builds a numeric-code-form descriptor.
func CodeDescriptor(code uint64) Descriptor {
	return Descriptor{Code: code}
}

// Primitive converts d to the primitive it is encoded as.
func (d Descriptor) Primitive() primitive.Primitive {
	if d.IsSymbol {
		return primitive.Symbol(d.Symbol)
	}
	return primitive.Ulong(d.Code)
}

// DescriptorFromPrimitive converts a decoded descriptor primitive back into
// a Descriptor, dispatching on whether the wire constructor was a symbol or
// a ulong variant.
func DescriptorFromPrimitive(v primitive.Primitive) (Descriptor, error) {
	if s, ok := v.AsSymbol(); ok {
		return SymbolDescriptor(s), nil
	}
	if c, ok := v.AsUlong(); ok {
		return CodeDescriptor(c), nil
	}
	return Descriptor{}, fmt.Errorf("composite: descriptor has unexpected kind %s", v.Kind())
}

func (d Descriptor) String() string {
	if d.IsSymbol {
		return d.Symbol
	}
	return fmt.Sprintf("0x%02x", d.Code)
}
