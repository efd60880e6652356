package derive

import (
	"fmt"
	"reflect"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/primitive"
)

// ToPrimitiveConverter lets a restricted/composite type supply its own
// Primitive conversion instead of going through the basic-kind table
// below, the same escape hatch encoding/json gives json.Marshaler.
type ToPrimitiveConverter interface {
	ToPrimitive() primitive.Primitive
}

// FromPrimitiveConverter is the decode-side counterpart of
// ToPrimitiveConverter.
type FromPrimitiveConverter interface {
	FromPrimitive(p primitive.Primitive) error
}

var primitiveType = reflect.TypeOf(primitive.Primitive{})

func toPrimitive(rv reflect.Value) (primitive.Primitive, error) {
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return primitive.Null(), nil
		}
		return toPrimitive(rv.Elem())
	}

	if rv.CanInterface() {
		if conv, ok := rv.Interface().(ToPrimitiveConverter); ok {
			return conv.ToPrimitive(), nil
		}
		if rv.CanAddr() {
			if conv, ok := rv.Addr().Interface().(ToPrimitiveConverter); ok {
				return conv.ToPrimitive(), nil
			}
		}
	}

	if rv.Type() == primitiveType {
		return rv.Interface().(primitive.Primitive), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return primitive.Bool(rv.Bool()), nil
	case reflect.String:
		return primitive.String(rv.String()), nil
	case reflect.Uint8:
		return primitive.Ubyte(uint8(rv.Uint())), nil
	case reflect.Uint16:
		return primitive.Ushort(uint16(rv.Uint())), nil
	case reflect.Uint32:
		return primitive.Uint(uint32(rv.Uint())), nil
	case reflect.Uint, reflect.Uint64:
		return primitive.Ulong(rv.Uint()), nil
	case reflect.Int8:
		return primitive.Byte(int8(rv.Int())), nil
	case reflect.Int16:
		return primitive.Short(int16(rv.Int())), nil
	case reflect.Int32:
		return primitive.Int(int32(rv.Int())), nil
	case reflect.Int, reflect.Int64:
		return primitive.Long(rv.Int()), nil
	case reflect.Float32:
		return primitive.Float(float32(rv.Float())), nil
	case reflect.Float64:
		return primitive.Double(rv.Float()), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return primitive.Binary(rv.Bytes()), nil
		}
		if rv.Type().Elem() == primitiveType {
			elems := make([]primitive.Primitive, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				elems[i] = rv.Index(i).Interface().(primitive.Primitive)
			}
			return primitive.List(elems), nil
		}
		elems := make([]primitive.Primitive, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			p, err := toPrimitive(rv.Index(i))
			if err != nil {
				return primitive.Primitive{}, err
			}
			elems[i] = p
		}
		return primitive.List(elems), nil
	default:
		return primitive.Primitive{}, fmt.Errorf("derive: cannot convert Go kind %s to a primitive: %w", rv.Kind(), amqperr.ErrNotImplemented)
	}
}

func fromPrimitive(p primitive.Primitive, rv reflect.Value, optional bool) error {
	if p.Kind() == primitive.KindNull {
		if optional || rv.Kind() == reflect.Pointer {
			return nil
		}
	}

	if rv.Kind() == reflect.Pointer {
		if p.Kind() == primitive.KindNull {
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return fromPrimitive(p, rv.Elem(), optional)
	}

	if rv.CanAddr() {
		if conv, ok := rv.Addr().Interface().(FromPrimitiveConverter); ok {
			return conv.FromPrimitive(p)
		}
	}

	if rv.Type() == primitiveType {
		rv.Set(reflect.ValueOf(p))
		return nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		b, ok := p.AsBool()
		if !ok {
			return typeMismatch("bool", p)
		}
		rv.SetBool(b)
	case reflect.String:
		s, ok := p.AsString()
		if !ok {
			s, ok = p.AsSymbol()
		}
		if !ok {
			return typeMismatch("string", p)
		}
		rv.SetString(s)
	case reflect.Uint8:
		n, ok := p.AsUbyte()
		if !ok {
			return typeMismatch("ubyte", p)
		}
		rv.SetUint(uint64(n))
	case reflect.Uint16:
		n, ok := p.AsUshort()
		if !ok {
			return typeMismatch("ushort", p)
		}
		rv.SetUint(uint64(n))
	case reflect.Uint32:
		n, ok := p.AsUint()
		if !ok {
			return typeMismatch("uint", p)
		}
		rv.SetUint(uint64(n))
	case reflect.Uint, reflect.Uint64:
		n, ok := p.AsUlong()
		if !ok {
			return typeMismatch("ulong", p)
		}
		rv.SetUint(n)
	case reflect.Int8:
		n, ok := p.AsByte()
		if !ok {
			return typeMismatch("byte", p)
		}
		rv.SetInt(int64(n))
	case reflect.Int16:
		n, ok := p.AsShort()
		if !ok {
			return typeMismatch("short", p)
		}
		rv.SetInt(int64(n))
	case reflect.Int32:
		n, ok := p.AsInt()
		if !ok {
			return typeMismatch("int", p)
		}
		rv.SetInt(int64(n))
	case reflect.Int, reflect.Int64:
		n, ok := p.AsLong()
		if !ok {
			return typeMismatch("long", p)
		}
		rv.SetInt(n)
	case reflect.Float32:
		f, ok := p.AsFloat()
		if !ok {
			return typeMismatch("float", p)
		}
		rv.SetFloat(float64(f))
	case reflect.Float64:
		f, ok := p.AsDouble()
		if !ok {
			return typeMismatch("double", p)
		}
		rv.SetFloat(f)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b, ok := p.AsBinary()
			if !ok {
				return typeMismatch("binary", p)
			}
			rv.SetBytes(b)
			return nil
		}
		elems, ok := p.AsList()
		if !ok {
			of, arrElems, okArr := p.AsArray()
			if !okArr {
				return typeMismatch("list", p)
			}
			_ = of
			elems = arrElems
		}
		out := reflect.MakeSlice(rv.Type(), len(elems), len(elems))
		for i, e := range elems {
			if err := fromPrimitive(e, out.Index(i), true); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		rv.Set(out)
	default:
		return fmt.Errorf("derive: cannot assign primitive kind %s into Go kind %s: %w", p.Kind(), rv.Kind(), amqperr.ErrNotImplemented)
	}
	return nil
}

func typeMismatch(want string, p primitive.Primitive) error {
	return fmt.Errorf("derive: expected %s, got %s: %w", want, p.Kind(), amqperr.ErrDecodeError)
}
