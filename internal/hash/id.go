// Package hash provides the hashing primitives used to key an AMQP map by
// arbitrary Primitive values instead of Go's built-in comparable keys.
//
// Primitive includes list, map, and array cases that are not comparable in
// the Go sense, so a plain Go map cannot be keyed by Primitive directly. The
// compound package instead hashes each key's canonical byte encoding and
// keeps colliding keys in a bucket, resolved by the value-equality rule the
// wire format requires (bitwise for floats, so NaN equals NaN iff
// bit-identical).
package hash

import "github.com/cespare/xxhash/v2"

// Bytes computes the xxHash64 of data. It is used to hash the canonical byte
// encoding of a Primitive used as a map key.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Uint64 hashes a single 64-bit pattern by hashing its 8 big-endian bytes,
// for fixed-width numeric primitives whose bit pattern is already canonical.
func Uint64(v uint64) uint64 {
	return xxhash.Sum64(uint64ToBytes(v))
}

// Combine folds a secondary hash into a seed, for example a type tag into a
// value hash so that equal bit patterns of different kinds hash apart.
func Combine(seed, h uint64) uint64 {
	// Boost-style hash_combine step: add a large odd constant and shifted
	// copies of the seed to h, then xor into the seed, which avoids the seed
	// and h simply cancelling out when both are small.
	const prime64 = 0x9E3779B185EBCA87
	seed ^= h + prime64 + (seed << 6) + (seed >> 2)

	return seed
}

func uint64ToBytes(v uint64) []byte {
	return []byte{
		byte(v >> 56), byte(v >> 48), byte(v >> 40), byte(v >> 32),
		byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v),
	}
}
