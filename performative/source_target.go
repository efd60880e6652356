package performative

import (
	"github.com/relaywire/amqp10/composite"
	"github.com/relaywire/amqp10/derive"
	"github.com/relaywire/amqp10/primitive"
	"github.com/relaywire/amqp10/restricted"
)

// Source describes a link's originating terminus. Dropped by the
// distillation; its field list is supplemented from standard OASIS AMQP
// 1.0 knowledge since original_source's stub (amqp-type/src/composite/
// transport/transport/source.rs) carries only the descriptor annotation.
type Source struct {
	_                     derive.Marker     `amqp:"descriptor=amqp:source:list,code=0x28"`
	Address               string            `amqp:"field,0,optional"`
	Durable               uint32            `amqp:"field,1,optional"`
	ExpiryPolicy          string            `amqp:"field,2,optional"`
	Timeout               restricted.Seconds `amqp:"field,3,optional"`
	Dynamic               bool              `amqp:"field,4,optional"`
	DynamicNodeProperties restricted.Fields `amqp:"field,5,optional"`
	DistributionMode      string            `amqp:"field,6,optional"`
	Filter                restricted.Fields `amqp:"field,7,optional"`
	DefaultOutcome        *primitive.Primitive `amqp:"field,8,optional"`
	Outcomes              []primitive.Primitive `amqp:"field,9,optional"`
	Capabilities          []primitive.Primitive `amqp:"field,10,optional"`
}

// ToPrimitive satisfies derive.ToPrimitiveConverter so a Source can be
// embedded as a field inside attach without a byte round trip.
func (s Source) ToPrimitive() primitive.Primitive {
	c, err := derive.Marshal(s)
	if err != nil {
		panic("performative: source has a malformed amqp tag: " + err.Error())
	}
	return c.AsPrimitive()
}

// FromPrimitive is the decode-side counterpart of ToPrimitive.
func (s *Source) FromPrimitive(p primitive.Primitive) error {
	if p.Kind() == primitive.KindNull {
		*s = Source{}
		return nil
	}
	c, err := composite.FromPrimitive(p)
	if err != nil {
		return err
	}
	return derive.Unmarshal(c, s)
}

// Target describes a link's destination terminus. Same supplementation
// rationale as Source; original_source's stub (transport/target.rs) and
// amqp-transport's own source.rs carry no field detail.
type Target struct {
	_                     derive.Marker     `amqp:"descriptor=amqp:target:list,code=0x29"`
	Address               string            `amqp:"field,0,optional"`
	Durable               uint32            `amqp:"field,1,optional"`
	ExpiryPolicy          string            `amqp:"field,2,optional"`
	Timeout               restricted.Seconds `amqp:"field,3,optional"`
	Dynamic               bool              `amqp:"field,4,optional"`
	DynamicNodeProperties restricted.Fields `amqp:"field,5,optional"`
	Capabilities          []primitive.Primitive `amqp:"field,6,optional"`
}

func (t Target) ToPrimitive() primitive.Primitive {
	c, err := derive.Marshal(t)
	if err != nil {
		panic("performative: target has a malformed amqp tag: " + err.Error())
	}
	return c.AsPrimitive()
}

func (t *Target) FromPrimitive(p primitive.Primitive) error {
	if p.Kind() == primitive.KindNull {
		*t = Target{}
		return nil
	}
	c, err := composite.FromPrimitive(p)
	if err != nil {
		return err
	}
	return derive.Unmarshal(c, t)
}
