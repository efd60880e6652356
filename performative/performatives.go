// Package performative implements the nine AMQP 1.0 control records
// (open, begin, attach, flow, transfer, disposition, detach, end, close)
// as derive-tagged composites, plus the source/target termini and the
// delivery-state/outcome sum type attach, transfer, and disposition carry.
package performative

import (
	"bytes"
	"fmt"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/composite"
	"github.com/relaywire/amqp10/derive"
	"github.com/relaywire/amqp10/internal/options"
	"github.com/relaywire/amqp10/primitive"
	"github.com/relaywire/amqp10/restricted"
)

// Performative is satisfied by all nine control records, letting a frame
// body be stored and encoded generically regardless of which one a frame
// carries.
type Performative interface {
	isPerformative()
	Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error)
}

func (Open) isPerformative()        {}
func (Begin) isPerformative()       {}
func (Attach) isPerformative()      {}
func (Flow) isPerformative()        {}
func (Transfer) isPerformative()    {}
func (Disposition) isPerformative() {}
func (Detach) isPerformative()      {}
func (End) isPerformative()         {}
func (Close) isPerformative()       {}

// DecodeAny reads one performative composite from r and dispatches it to
// its concrete type by descriptor code.
func DecodeAny(r *bytes.Reader) (Performative, error) {
	c, err := composite.Decode(r)
	if err != nil {
		return nil, err
	}
	switch c.Descriptor.String() {
	case "amqp:open:list", "0x10":
		var v Open
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:begin:list", "0x11":
		var v Begin
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:attach:list", "0x12":
		var v Attach
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:flow:list", "0x13":
		var v Flow
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:transfer:list", "0x14":
		var v Transfer
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:disposition:list", "0x15":
		var v Disposition
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:detach:list", "0x16":
		var v Detach
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:end:list", "0x17":
		var v End
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:close:list", "0x18":
		var v Close
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("performative: unrecognized descriptor %s: %w", c.Descriptor, amqperr.ErrNotImplemented)
	}
}

// Open is the connection-establishment performative, descriptor code 0x10.
type Open struct {
	_                   derive.Marker             `amqp:"descriptor=amqp:open:list,code=0x10"`
	ContainerID         string                    `amqp:"field,0"`
	HostName            string                    `amqp:"field,1,optional"`
	MaxFrameSize        uint32                    `amqp:"field,2,optional"`
	ChannelMax          uint16                    `amqp:"field,3,optional"`
	IdleTimeout         restricted.Milliseconds   `amqp:"field,4,optional"`
	OutgoingLocales     []primitive.Primitive     `amqp:"field,5,optional"`
	IncomingLocales     []primitive.Primitive     `amqp:"field,6,optional"`
	OfferedCapabilities []primitive.Primitive     `amqp:"field,7,optional"`
	DesiredCapabilities []primitive.Primitive     `amqp:"field,8,optional"`
	Properties          restricted.Fields         `amqp:"field,9,optional"`
}

// Begin opens a session on a channel, descriptor code 0x11.
type Begin struct {
	_                   derive.Marker         `amqp:"descriptor=amqp:begin:list,code=0x11"`
	RemoteChannel       *uint16               `amqp:"field,0,optional"`
	NextOutgoingID      restricted.SequenceNo `amqp:"field,1"`
	IncomingWindow      uint32                `amqp:"field,2"`
	OutgoingWindow      uint32                `amqp:"field,3"`
	HandleMax           uint32                `amqp:"field,4,optional"`
	OfferedCapabilities []primitive.Primitive `amqp:"field,5,optional"`
	DesiredCapabilities []primitive.Primitive `amqp:"field,6,optional"`
	Properties          restricted.Fields     `amqp:"field,7,optional"`
}

// Attach establishes a link on a session, descriptor code 0x12.
type Attach struct {
	_                     derive.Marker              `amqp:"descriptor=amqp:attach:list,code=0x12"`
	Name                  string                     `amqp:"field,0"`
	Handle                restricted.Handle          `amqp:"field,1"`
	Role                  restricted.Role            `amqp:"field,2"`
	SndSettleMode         restricted.SenderSettleMode   `amqp:"field,3,optional"`
	RcvSettleMode         restricted.ReceiverSettleMode `amqp:"field,4,optional"`
	Source                *Source                   `amqp:"field,5,optional"`
	Target                *Target                   `amqp:"field,6,optional"`
	Unsettled             *primitive.Primitive       `amqp:"field,7,optional"`
	IncompleteUnsettled   bool                       `amqp:"field,8,optional"`
	InitialDeliveryCount  restricted.SequenceNo      `amqp:"field,9,optional"`
	MaxMessageSize        uint64                     `amqp:"field,10,optional"`
	OfferedCapabilities   []primitive.Primitive      `amqp:"field,11,optional"`
	DesiredCapabilities   []primitive.Primitive      `amqp:"field,12,optional"`
	Properties            restricted.Fields          `amqp:"field,13,optional"`
}

// Flow updates session/link flow-control state, descriptor code 0x13.
type Flow struct {
	_              derive.Marker         `amqp:"descriptor=amqp:flow:list,code=0x13"`
	NextIncomingID restricted.SequenceNo `amqp:"field,0,optional"`
	IncomingWindow uint32                `amqp:"field,1"`
	NextOutgoingID restricted.SequenceNo `amqp:"field,2"`
	OutgoingWindow uint32                `amqp:"field,3"`
	Handle         restricted.Handle     `amqp:"field,4,optional"`
	DeliveryCount  restricted.SequenceNo `amqp:"field,5,optional"`
	LinkCredit     uint32                `amqp:"field,6,optional"`
	Available      uint32                `amqp:"field,7,optional"`
	Drain          bool                  `amqp:"field,8,optional"`
	Echo           bool                  `amqp:"field,9,optional"`
	Properties     restricted.Fields     `amqp:"field,10,optional"`
}

// Transfer ships a message (or a fragment of one) over a link, descriptor
// code 0x14. State carries the raw encoded delivery-state/outcome; use
// DeliveryState/SetDeliveryState to work with the typed sum type.
type Transfer struct {
	_             derive.Marker                 `amqp:"descriptor=amqp:transfer:list,code=0x14"`
	Handle        restricted.Handle             `amqp:"field,0"`
	DeliveryID    restricted.SequenceNo         `amqp:"field,1,optional"`
	DeliveryTag   []byte                        `amqp:"field,2,optional"`
	MessageFormat uint32                        `amqp:"field,3,optional"`
	Settled       bool                          `amqp:"field,4,optional"`
	More          bool                          `amqp:"field,5,optional"`
	RcvSettleMode restricted.ReceiverSettleMode `amqp:"field,6,optional"`
	State         *primitive.Primitive          `amqp:"field,7,optional"`
	Resume        bool                          `amqp:"field,8,optional"`
	Aborted       bool                          `amqp:"field,9,optional"`
	Batchable     bool                          `amqp:"field,10,optional"`
}

// Disposition informs the remote end about delivery outcomes for a range
// of deliveries, descriptor code 0x15.
type Disposition struct {
	_         derive.Marker         `amqp:"descriptor=amqp:disposition:list,code=0x15"`
	Role      restricted.Role       `amqp:"field,0"`
	First     restricted.SequenceNo `amqp:"field,1"`
	Last      restricted.SequenceNo `amqp:"field,2,optional"`
	Settled   bool                  `amqp:"field,3,optional"`
	State     *primitive.Primitive  `amqp:"field,4,optional"`
	Batchable bool                  `amqp:"field,5,optional"`
}

// Detach terminates a link, descriptor code 0x16.
type Detach struct {
	_      derive.Marker     `amqp:"descriptor=amqp:detach:list,code=0x16"`
	Handle restricted.Handle `amqp:"field,0"`
	Closed bool              `amqp:"field,1,optional"`
	Error  *WireError        `amqp:"field,2,optional"`
}

// End terminates a session, descriptor code 0x17.
type End struct {
	_     derive.Marker `amqp:"descriptor=amqp:end:list,code=0x17"`
	Error *WireError    `amqp:"field,0,optional"`
}

// Close terminates a connection, descriptor code 0x18.
type Close struct {
	_     derive.Marker `amqp:"descriptor=amqp:close:list,code=0x18"`
	Error *WireError    `amqp:"field,0,optional"`
}

// Encode/Decode pairs compose derive's struct conversion with
// composite.Composite's own wire codec, the "thin Encode/Decode pair"
// named in SPEC_FULL.md's performative realization.

func encode[T any](v T, dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	c, err := derive.Marshal(v)
	if err != nil {
		return nil, err
	}
	return c.Encode(dst, opts...)
}

func decode[T any](r *bytes.Reader, out *T) error {
	c, err := composite.Decode(r)
	if err != nil {
		return err
	}
	return derive.Unmarshal(c, out)
}

func (o Open) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return encode(o, dst, opts...)
}
func DecodeOpen(r *bytes.Reader) (Open, error) {
	var o Open
	err := decode(r, &o)
	return o, err
}

func (b Begin) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return encode(b, dst, opts...)
}
func DecodeBegin(r *bytes.Reader) (Begin, error) {
	var b Begin
	err := decode(r, &b)
	return b, err
}

func (a Attach) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return encode(a, dst, opts...)
}
func DecodeAttach(r *bytes.Reader) (Attach, error) {
	var a Attach
	err := decode(r, &a)
	return a, err
}

func (f Flow) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return encode(f, dst, opts...)
}
func DecodeFlow(r *bytes.Reader) (Flow, error) {
	var f Flow
	err := decode(r, &f)
	return f, err
}

func (t Transfer) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return encode(t, dst, opts...)
}
func DecodeTransfer(r *bytes.Reader) (Transfer, error) {
	var t Transfer
	err := decode(r, &t)
	return t, err
}

// DeliveryState decodes t's raw State field into the typed sum type, or
// (nil, nil) if no state was carried.
func (t Transfer) DeliveryState() (DeliveryState, error) {
	return decodeState(t.State)
}

// SetDeliveryState sets t's raw State field from a typed sum-type value.
func (t *Transfer) SetDeliveryState(d DeliveryState) error {
	p, err := encodeState(d)
	if err != nil {
		return err
	}
	t.State = p
	return nil
}

func (d Disposition) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return encode(d, dst, opts...)
}
func DecodeDisposition(r *bytes.Reader) (Disposition, error) {
	var d Disposition
	err := decode(r, &d)
	return d, err
}

func (d Disposition) DeliveryState() (DeliveryState, error) {
	return decodeState(d.State)
}

func (d *Disposition) SetDeliveryState(s DeliveryState) error {
	p, err := encodeState(s)
	if err != nil {
		return err
	}
	d.State = p
	return nil
}

func decodeState(raw *primitive.Primitive) (DeliveryState, error) {
	if raw == nil {
		return nil, nil
	}
	c, err := composite.FromPrimitive(*raw)
	if err != nil {
		return nil, err
	}
	return DecodeDeliveryState(c)
}

func encodeState(d DeliveryState) (*primitive.Primitive, error) {
	if d == nil {
		return nil, nil
	}
	c, err := d.ToComposite()
	if err != nil {
		return nil, err
	}
	p := c.AsPrimitive()
	return &p, nil
}

func (d Detach) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return encode(d, dst, opts...)
}
func DecodeDetach(r *bytes.Reader) (Detach, error) {
	var d Detach
	err := decode(r, &d)
	return d, err
}

func (e End) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return encode(e, dst, opts...)
}
func DecodeEnd(r *bytes.Reader) (End, error) {
	var e End
	err := decode(r, &e)
	return e, err
}

func (c Close) Encode(dst []byte, opts ...options.Option[*primitive.CodecOptions]) ([]byte, error) {
	return encode(c, dst, opts...)
}
func DecodeClose(r *bytes.Reader) (Close, error) {
	var c Close
	err := decode(r, &c)
	return c, err
}
