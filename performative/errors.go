package performative

import (
	"fmt"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/composite"
	"github.com/relaywire/amqp10/derive"
	"github.com/relaywire/amqp10/primitive"
	"github.com/relaywire/amqp10/restricted"
)

// WireError is the AMQP error composite (descriptor code 0x1D) carried by
// close, detach, end, and the rejected outcome. It is the conversion boundary named
// in the amqperr package doc: amqperr.Error deliberately knows nothing
// about the wire format, so the translation lives here, the only package
// that can safely import both amqperr and restricted without creating an
// import cycle.
type WireError struct {
	_           derive.Marker     `amqp:"descriptor=amqp:error:list,code=0x1d"`
	Condition   string            `amqp:"field,0"`
	Description string            `amqp:"field,1,optional"`
	Info        restricted.Fields `amqp:"field,2,optional"`
}

// ToPrimitive satisfies derive.ToPrimitiveConverter so *WireError can be
// embedded as a field inside close/detach/end/rejected.
func (w WireError) ToPrimitive() primitive.Primitive {
	c, err := derive.Marshal(w)
	if err != nil {
		panic("performative: wire error has a malformed amqp tag: " + err.Error())
	}
	return c.AsPrimitive()
}

func (w *WireError) FromPrimitive(p primitive.Primitive) error {
	if p.Kind() == primitive.KindNull {
		*w = WireError{}
		return nil
	}
	c, err := composite.FromPrimitive(p)
	if err != nil {
		return err
	}
	return derive.Unmarshal(c, w)
}

// NewWireError converts an amqperr.Error into its wire composite shape.
func NewWireError(e *amqperr.Error) *WireError {
	if e == nil {
		return nil
	}
	info := restricted.NewFields()
	for k, v := range e.Info {
		info.Set(k, infoValueToPrimitive(v))
	}
	return &WireError{
		Condition:   e.Condition,
		Description: e.Description,
		Info:        info,
	}
}

// ToError converts a decoded wire error back into an amqperr.Error. Info
// values decode as primitive.Primitive wrapped in an any, since the wire
// format carries no static type for arbitrary info fields; callers that
// know a specific condition's info shape (e.g. connection-redirect) should
// type-assert via info.(primitive.Primitive) and call the matching AsXxx.
func (w *WireError) ToError() *amqperr.Error {
	if w == nil {
		return nil
	}
	info := map[string]any{}
	if m := w.Info.Map(); m != nil {
		m.Range(func(k, v primitive.Primitive) bool {
			key, _ := k.AsSymbol()
			info[key] = v
			return true
		})
	}
	if len(info) == 0 {
		info = nil
	}
	return &amqperr.Error{
		Condition:   w.Condition,
		Description: w.Description,
		Info:        info,
	}
}

func infoValueToPrimitive(v any) primitive.Primitive {
	switch x := v.(type) {
	case primitive.Primitive:
		return x
	case string:
		return primitive.String(x)
	case uint16:
		return primitive.Ushort(x)
	case uint32:
		return primitive.Uint(x)
	case int:
		return primitive.Long(int64(x))
	case bool:
		return primitive.Bool(x)
	default:
		return primitive.String(fmt.Sprintf("%v", x))
	}
}
