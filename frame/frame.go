package frame

import (
	"bytes"
	"fmt"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/internal/options"
	"github.com/relaywire/amqp10/performative"
	"github.com/relaywire/amqp10/primitive"
	"github.com/relaywire/amqp10/sasl"
)

// Body is satisfied by every performative and by sasl.Frame; a frame can
// carry either without the frame package importing their concrete types
// for anything but Decode/Codec dispatch.
type Body interface {
	Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error)
}

// Frame is a fully decoded AMQP frame: its header, a typed body, and any
// trailing opaque payload (message data following a transfer performative).
type Frame struct {
	Header  Header
	Body    Body
	Payload []byte
}

// Codec decodes and encodes whole frames, dispatching the body between the
// performative and sasl packages by the header's type byte.
type Codec struct{}

// Decode reads one whole frame (header, extended header, body, payload)
// from b, which must contain at least Header.Size bytes.
func (Codec) Decode(b []byte) (Frame, error) {
	h, err := DecodeHeader(b)
	if err != nil {
		return Frame{}, err
	}
	if uint32(len(b)) < h.Size {
		return Frame{}, fmt.Errorf("frame: need %d bytes, got %d: %w", h.Size, len(b), amqperr.ErrFrameSizeTooSmall)
	}

	bodyStart := h.BodyOffset()
	bodyBytes := b[bodyStart:h.Size]
	r := bytes.NewReader(bodyBytes)

	var body Body
	switch h.Type {
	case TypeAMQP:
		if len(bodyBytes) == 0 {
			// An empty AMQP frame body is a valid heartbeat.
			return Frame{Header: h}, nil
		}
		p, err := performative.DecodeAny(r)
		if err != nil {
			return Frame{}, err
		}
		body = p
	case TypeSASL:
		s, err := sasl.Decode(r)
		if err != nil {
			return Frame{}, err
		}
		body = s
	default:
		return Frame{}, fmt.Errorf("frame: unrecognized frame type 0x%02x: %w", uint8(h.Type), amqperr.ErrDecodeError)
	}

	consumed := len(bodyBytes) - r.Len()
	payload := append([]byte(nil), bodyBytes[consumed:]...)
	return Frame{Header: h, Body: body, Payload: payload}, nil
}

// Encode serializes f: the body, then payload, prefixed with a header
// whose Size and DataOffset are computed from the encoded body length.
// DataOffset is always the minimum (2, i.e. no extended header) since this
// module never needs to emit one.
func (Codec) Encode(f Frame, dst []byte) ([]byte, error) {
	var bodyBytes []byte
	var err error
	if f.Body != nil {
		bodyBytes, err = f.Body.Encode(nil)
		if err != nil {
			return nil, err
		}
	}

	const dataOffset = 2
	size := uint32(dataOffset*4) + uint32(len(bodyBytes)) + uint32(len(f.Payload))
	h := f.Header
	h.Size = size
	h.DataOffset = dataOffset

	dst = h.Encode(dst)
	dst = append(dst, bodyBytes...)
	dst = append(dst, f.Payload...)
	return dst, nil
}
