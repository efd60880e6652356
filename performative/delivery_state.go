package performative

import (
	"fmt"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/composite"
	"github.com/relaywire/amqp10/derive"
)

// DeliveryState is the sum type carried by transfer's state field and
// disposition's state field. Supplemented from original_source/amqp-type/
// src/composite/messaging/delivery_state/*.rs, whose five variants are
// empty stub structs there (descriptor/code only); this implementation
// fills in each variant's own field list from standard OASIS AMQP 1.0
// knowledge.
type DeliveryState interface {
	isDeliveryState()
	ToComposite() (composite.Composite, error)
}

// Received reports the highest section offset seen so far for a partial
// transfer.
type Received struct {
	_              derive.Marker `amqp:"descriptor=amqp:received:list,code=0x23"`
	SectionNumber  uint32        `amqp:"field,0"`
	SectionOffset  uint64        `amqp:"field,1"`
}

func (Received) isDeliveryState() {}

// Accepted is the terminal outcome for a successfully processed transfer.
type Accepted struct {
	_ derive.Marker `amqp:"descriptor=amqp:accepted:list,code=0x24"`
}

func (Accepted) isDeliveryState() {}

// Rejected is the terminal outcome for a transfer the receiver refuses,
// optionally carrying the reason as an error composite.
type Rejected struct {
	_     derive.Marker `amqp:"descriptor=amqp:rejected:list,code=0x25"`
	Error *WireError    `amqp:"field,0,optional"`
}

func (Rejected) isDeliveryState() {}

// Released is the terminal outcome when a transfer is returned to the
// sender without being processed.
type Released struct {
	_ derive.Marker `amqp:"descriptor=amqp:released:list,code=0x26"`
}

func (Released) isDeliveryState() {}

// Modified is the terminal outcome when a transfer is returned to the
// sender with annotations modified by the receiver. Only the first two
// fields are modeled: there is no message-annotations field, so it is
// never encoded and is ignored on decode.
type Modified struct {
	_              derive.Marker `amqp:"descriptor=amqp:modified:list,code=0x27"`
	DeliveryFailed bool          `amqp:"field,0,optional"`
	Undeliverable  bool          `amqp:"field,1,optional"`
}

func (Modified) isDeliveryState() {}

func (r Received) ToComposite() (composite.Composite, error) { return derive.Marshal(r) }
func (a Accepted) ToComposite() (composite.Composite, error) { return derive.Marshal(a) }
func (r Rejected) ToComposite() (composite.Composite, error) { return derive.Marshal(r) }
func (r Released) ToComposite() (composite.Composite, error) { return derive.Marshal(r) }
func (m Modified) ToComposite() (composite.Composite, error) { return derive.Marshal(m) }

// DecodeDeliveryState dispatches c by descriptor to the variant it names,
// failing with amqp:not-implemented for any descriptor not among the five
// known delivery-state/outcome composites.
func DecodeDeliveryState(c composite.Composite) (DeliveryState, error) {
	switch c.Descriptor.String() {
	case "amqp:received:list", "0x23":
		var v Received
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:accepted:list", "0x24":
		var v Accepted
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:rejected:list", "0x25":
		var v Rejected
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:released:list", "0x26":
		var v Released
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "amqp:modified:list", "0x27":
		var v Modified
		if err := derive.Unmarshal(c, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("performative: unrecognized delivery-state descriptor %s: %w", c.Descriptor, amqperr.ErrNotImplemented)
	}
}
