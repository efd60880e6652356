// Package frame implements the AMQP 1.0 frame envelope: the 8-byte fixed
// header plus extended header and body that every AMQP or SASL frame
// shares (OASIS AMQP 1.0 section 2.3).
package frame

import (
	"fmt"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/endian"
)

// Type distinguishes an AMQP frame body from a SASL one, carried in the
// header's type byte (byte 5).
type Type uint8

const (
	TypeAMQP Type = 0x00
	TypeSASL Type = 0x01
)

func (t Type) String() string {
	switch t {
	case TypeAMQP:
		return "AMQP"
	case TypeSASL:
		return "SASL"
	default:
		return fmt.Sprintf("Type(0x%02x)", uint8(t))
	}
}

// headerSize is the fixed portion every frame begins with; bytes between
// headerSize and 4*DataOffset are an implementation-reserved extended
// header this module treats as opaque.
const headerSize = 8

// Header is the 8-byte fixed frame header, always big-endian on the wire
// per AMQP 1.0 regardless of host byte order.
type Header struct {
	Size          uint32
	DataOffset    uint8
	Type          Type
	TypeSpecific  uint16 // channel number for AMQP frames
}

// Encode appends h's 8-byte wire encoding to dst using the network byte
// order engine from package endian.
func (h Header) Encode(dst []byte) []byte {
	eng := endian.GetBigEndianEngine()
	dst = eng.AppendUint32(dst, h.Size)
	dst = append(dst, h.DataOffset, uint8(h.Type))
	dst = eng.AppendUint16(dst, h.TypeSpecific)
	return dst
}

// DecodeHeader reads the fixed 8-byte header from b, failing with
// amqp:frame-size-too-small if b is shorter than that or the decoded size
// is below 8, or amqp:decode-error if the data offset is below 2 or points
// past the frame size.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < headerSize {
		return Header{}, fmt.Errorf("frame: header needs %d bytes, got %d: %w", headerSize, len(b), amqperr.ErrFrameSizeTooSmall)
	}
	eng := endian.GetBigEndianEngine()
	h := Header{
		Size:         eng.Uint32(b[0:4]),
		DataOffset:   b[4],
		Type:         Type(b[5]),
		TypeSpecific: eng.Uint16(b[6:8]),
	}
	if h.Size < headerSize {
		return Header{}, fmt.Errorf("frame: size %d smaller than header size %d: %w", h.Size, headerSize, amqperr.ErrFrameSizeTooSmall)
	}
	if h.DataOffset < 2 {
		return Header{}, fmt.Errorf("frame: data offset %d smaller than minimum 2: %w", h.DataOffset, amqperr.ErrDecodeError)
	}
	if uint32(h.DataOffset)*4 > h.Size {
		return Header{}, fmt.Errorf("frame: data offset %d*4 exceeds frame size %d: %w", h.DataOffset, h.Size, amqperr.ErrDecodeError)
	}
	return h, nil
}

// BodyOffset returns the byte offset of the frame body, 4*DataOffset.
func (h Header) BodyOffset() int { return int(h.DataOffset) * 4 }
