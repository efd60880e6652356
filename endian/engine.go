// Package endian provides the byte order engine used by the frame header
// and the frame tracer.
//
// AMQP 1.0 mandates network byte order (big-endian) for every multi-byte
// field on the wire — section 1.6 of the OASIS specification does not leave
// this as a peer option the way some binary formats do. The package still
// wraps big-endian access behind the EndianEngine interface, combining
// encoding/binary's ByteOrder and AppendByteOrder, so the frame code
// depends on an interface rather than reaching for encoding/binary.BigEndian
// directly. The primitive codec does not use it; it calls
// encoding/binary.BigEndian itself.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the network-byte-order engine mandated by the
// AMQP 1.0 wire format, used for the frame header and trace record header.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// CheckEndianness determines the host's native byte order using a fixed
// sentinel value. It exists so diagnostic code (e.g. the frame tracer) can
// note whether byte-swapping is happening on this host without adding an
// explicit build tag per architecture.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeBigEndian reports whether the host's native byte order already
// matches the wire byte order, which lets callers skip a defensive copy on
// big-endian hosts (s390x, some embedded targets).
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}
