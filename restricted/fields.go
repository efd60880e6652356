package restricted

import (
	"fmt"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/compound"
	"github.com/relaywire/amqp10/primitive"
)

// Fields is a symbol-keyed map, the restricted type AMQP uses for
// connection/session/link properties and error info.
type Fields struct {
	m *compound.Map
}

// NewFields builds an empty Fields map.
func NewFields() Fields {
	return Fields{m: compound.NewMap()}
}

// FieldsFromMap builds a Fields from an already-decoded compound.Map,
// failing with amqp:decode-error if any key is not a symbol.
func FieldsFromMap(m *compound.Map) (Fields, error) {
	var outerErr error
	m.Range(func(k, v primitive.Primitive) bool {
		if k.Kind() != primitive.KindSymbol {
			outerErr = fmt.Errorf("restricted: fields map has non-symbol key of kind %s: %w", k.Kind(), amqperr.ErrDecodeError)
			return false
		}
		return true
	})
	if outerErr != nil {
		return Fields{}, outerErr
	}
	return Fields{m: m}, nil
}

func mapFromPairs(keys, vals []primitive.Primitive) *compound.Map {
	m := compound.NewMap()
	for i := range keys {
		m.Set(keys[i], vals[i])
	}
	return m
}

// Set assigns val to the symbol key.
func (f Fields) Set(key string, val primitive.Primitive) {
	f.m.Set(primitive.Symbol(key), val)
}

// Get looks up key. A zero-value Fields (as left by a decoded composite
// whose optional fields map was absent) behaves like a nil Go map: Get
// reports not-found rather than panicking.
func (f Fields) Get(key string) (primitive.Primitive, bool) {
	if f.m == nil {
		return primitive.Primitive{}, false
	}
	return f.m.Get(primitive.Symbol(key))
}

// Map returns the underlying ordered map.
func (f Fields) Map() *compound.Map { return f.m }
