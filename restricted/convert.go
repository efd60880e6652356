package restricted

import (
	"fmt"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/primitive"
)

// ToPrimitive/FromPrimitive implementations let every restricted type plug
// into derive's reflection-based struct conversion (see
// derive.ToPrimitiveConverter) without derive needing to special-case each
// one.

func (h Handle) ToPrimitive() primitive.Primitive { return primitive.Uint(uint32(h)) }

func (h *Handle) FromPrimitive(p primitive.Primitive) error {
	n, ok := p.AsUint()
	if !ok {
		return fmt.Errorf("restricted: handle expects uint, got %s: %w", p.Kind(), amqperr.ErrDecodeError)
	}
	*h = Handle(n)
	return nil
}

func (s Seconds) ToPrimitive() primitive.Primitive { return primitive.Uint(uint32(s)) }

func (s *Seconds) FromPrimitive(p primitive.Primitive) error {
	n, ok := p.AsUint()
	if !ok {
		return fmt.Errorf("restricted: seconds expects uint, got %s: %w", p.Kind(), amqperr.ErrDecodeError)
	}
	*s = Seconds(n)
	return nil
}

func (m Milliseconds) ToPrimitive() primitive.Primitive { return primitive.Uint(uint32(m)) }

func (m *Milliseconds) FromPrimitive(p primitive.Primitive) error {
	n, ok := p.AsUint()
	if !ok {
		return fmt.Errorf("restricted: milliseconds expects uint, got %s: %w", p.Kind(), amqperr.ErrDecodeError)
	}
	*m = Milliseconds(n)
	return nil
}

func (s SequenceNo) ToPrimitive() primitive.Primitive { return primitive.Uint(uint32(s)) }

func (s *SequenceNo) FromPrimitive(p primitive.Primitive) error {
	n, ok := p.AsUint()
	if !ok {
		return fmt.Errorf("restricted: sequence-no expects uint, got %s: %w", p.Kind(), amqperr.ErrDecodeError)
	}
	*s = SequenceNo(n)
	return nil
}

func (r Role) ToPrimitive() primitive.Primitive { return primitive.Bool(bool(r)) }

func (r *Role) FromPrimitive(p primitive.Primitive) error {
	b, ok := p.AsBool()
	if !ok {
		return fmt.Errorf("restricted: role expects boolean, got %s: %w", p.Kind(), amqperr.ErrDecodeError)
	}
	*r = Role(b)
	return nil
}

func (m SenderSettleMode) ToPrimitive() primitive.Primitive { return primitive.Ubyte(uint8(m)) }

func (m *SenderSettleMode) FromPrimitive(p primitive.Primitive) error {
	n, ok := p.AsUbyte()
	if !ok {
		return fmt.Errorf("restricted: sender-settle-mode expects ubyte, got %s: %w", p.Kind(), amqperr.ErrDecodeError)
	}
	*m = SenderSettleMode(n)
	return nil
}

func (m ReceiverSettleMode) ToPrimitive() primitive.Primitive { return primitive.Ubyte(uint8(m)) }

func (m *ReceiverSettleMode) FromPrimitive(p primitive.Primitive) error {
	n, ok := p.AsUbyte()
	if !ok {
		return fmt.Errorf("restricted: receiver-settle-mode expects ubyte, got %s: %w", p.Kind(), amqperr.ErrDecodeError)
	}
	*m = ReceiverSettleMode(n)
	return nil
}

func (t IETFLanguageTag) ToPrimitive() primitive.Primitive { return primitive.Symbol(t.tag) }

func (t *IETFLanguageTag) FromPrimitive(p primitive.Primitive) error {
	s, ok := p.AsSymbol()
	if !ok {
		return fmt.Errorf("restricted: ietf-language-tag expects symbol, got %s: %w", p.Kind(), amqperr.ErrDecodeError)
	}
	*t = NewIETFLanguageTag(s)
	return nil
}

func (f Fields) ToPrimitive() primitive.Primitive {
	if f.m == nil {
		return primitive.Null()
	}
	var keys, vals []primitive.Primitive
	f.m.Range(func(k, v primitive.Primitive) bool {
		keys = append(keys, k)
		vals = append(vals, v)
		return true
	})
	return primitive.Map(keys, vals)
}

func (f *Fields) FromPrimitive(p primitive.Primitive) error {
	keys, vals, ok := p.AsMap()
	if !ok {
		return fmt.Errorf("restricted: fields expects a map, got %s: %w", p.Kind(), amqperr.ErrDecodeError)
	}
	built, err := FieldsFromMap(mapFromPairs(keys, vals))
	if err != nil {
		return err
	}
	*f = built
	return nil
}
