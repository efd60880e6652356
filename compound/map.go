package compound

import (
	"bytes"

	"github.com/relaywire/amqp10/internal/hash"
	"github.com/relaywire/amqp10/internal/options"
	"github.com/relaywire/amqp10/primitive"
)

type mapEntry struct {
	key primitive.Primitive
	val primitive.Primitive
	h   uint64
}

// Map is an ordered key/value map keyed by arbitrary Primitive values.
// Go's built-in map cannot be used here because Primitive is not always
// comparable (a key could itself be a list, map, or array), so lookups hash
// each key's canonical wire encoding instead, bucketing entries the way the
// teacher's tag dictionary buckets metric tag keys: a hash-indexed bucket
// map of entry indices plus a parallel order-preserving entry slice.
type Map struct {
	entries []mapEntry
	buckets map[uint64][]int
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{buckets: make(map[uint64][]int)}
}

func keyHash(k primitive.Primitive) uint64 {
	b, err := k.Encode(nil)
	if err != nil {
		// A key that cannot be encoded has no canonical byte form; fall
		// back to hashing its Kind alone so Set/Get remain total
		// functions. Such a key will also fail at Encode time for the
		// map as a whole, surfacing the real error there.
		return hash.Uint64(uint64(k.Kind()))
	}
	return hash.Bytes(b)
}

// Set inserts or updates the value for key, preserving key's original
// insertion position on update.
func (m *Map) Set(key, val primitive.Primitive) {
	h := keyHash(key)
	for _, idx := range m.buckets[h] {
		if m.entries[idx].key.Equal(key) {
			m.entries[idx].val = val
			return
		}
	}
	idx := len(m.entries)
	m.entries = append(m.entries, mapEntry{key: key, val: val, h: h})
	m.buckets[h] = append(m.buckets[h], idx)
}

// Get returns the value for key and whether it was present.
func (m *Map) Get(key primitive.Primitive) (primitive.Primitive, bool) {
	h := keyHash(key)
	for _, idx := range m.buckets[h] {
		if m.entries[idx].key.Equal(key) {
			return m.entries[idx].val, true
		}
	}
	return primitive.Primitive{}, false
}

// Len reports the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Range calls fn for each entry in insertion order. Range stops early if fn
// returns false.
func (m *Map) Range(fn func(key, val primitive.Primitive) bool) {
	for _, e := range m.entries {
		if !fn(e.key, e.val) {
			return
		}
	}
}

// Encode appends m's wire encoding to dst, writing pairs in insertion order.
func (m *Map) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	keys := make([]primitive.Primitive, len(m.entries))
	vals := make([]primitive.Primitive, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
		vals[i] = e.val
	}
	return primitive.Map(keys, vals).Encode(dst, opts...)
}

// DecodeMap reads one map primitive from r and returns it as an ordered Map.
func DecodeMap(r *bytes.Reader) (*Map, error) {
	v, err := primitive.Decode(r)
	if err != nil {
		return nil, err
	}
	keys, vals, ok := v.AsMap()
	if !ok {
		return nil, errNotAMap(v.Kind())
	}
	m := NewMap()
	for i := range keys {
		m.Set(keys[i], vals[i])
	}
	return m, nil
}
