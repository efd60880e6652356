// Package restricted implements AMQP 1.0 restricted types: primitives
// refined with additional semantics (OASIS AMQP 1.0 section 1.6.4 and the
// transfer/flow performative field types built on top of it).
package restricted

// SequenceNo is a 32-bit RFC 1982 serial number, used for AMQP's
// transfer-id and delivery-count sequencing. Arithmetic wraps modulo 2^32;
// ordering compares the two numbers' distance rather than their raw
// integer value, so a sequence can wrap past math.MaxUint32 back to 0
// without breaking comparisons between nearby numbers.
type SequenceNo uint32

// Add returns s advanced by delta, wrapping modulo 2^32.
func (s SequenceNo) Add(delta uint32) SequenceNo {
	return SequenceNo(uint32(s) + delta)
}

// Compare orders s against other per RFC 1982 section 3.2: let diff =
// (other - s) mod 2^32. If diff == 0 the two are equal. If 0 < diff <
// 2^31, s < other. If 2^31 < diff < 2^32, s > other. If diff == 2^31 the
// pair's order is undefined (both numbers are the maximum possible
// distance apart), reported via ordered=false rather than panicking or
// guessing.
func (s SequenceNo) Compare(other SequenceNo) (cmp int, ordered bool) {
	diff := uint32(other) - uint32(s)
	const half = 1 << 31
	switch {
	case diff == 0:
		return 0, true
	case diff == half:
		return 0, false
	case diff < half:
		return -1, true
	default:
		return 1, true
	}
}
