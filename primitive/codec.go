package primitive

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/internal/options"
)

// Encode appends v's canonical wire encoding to dst and returns the result,
// choosing the narrowest constructor available for integer kinds (the
// "smallest encoding of the performative" AMQP 1.0 favors throughout).
func (v Primitive) Encode(dst []byte, opts ...options.Option[*CodecOptions]) ([]byte, error) {
	o := buildCodecOptions(opts...)
	return v.encode(dst, o)
}

func (v Primitive) encode(dst []byte, o CodecOptions) ([]byte, error) {
	switch v.kind {
	case KindNull:
		return append(dst, ctorNull), nil

	case KindBool:
		b, _ := v.AsBool()
		if o.compactBool {
			if b {
				return append(dst, ctorBoolTrue), nil
			}
			return append(dst, ctorBoolFalse), nil
		}
		dst = append(dst, ctorBool)
		if b {
			return append(dst, 0x01), nil
		}
		return append(dst, 0x00), nil

	case KindUbyte:
		return append(dst, ctorUbyte, uint8(v.fixed)), nil

	case KindUshort:
		dst = append(dst, ctorUshort)
		return binary.BigEndian.AppendUint16(dst, uint16(v.fixed)), nil

	case KindUint:
		n := uint32(v.fixed)
		switch {
		case n == 0:
			return append(dst, ctorUint0), nil
		case n <= 255:
			return append(dst, ctorSmallUint, uint8(n)), nil
		default:
			dst = append(dst, ctorUint)
			return binary.BigEndian.AppendUint32(dst, n), nil
		}

	case KindUlong:
		n := v.fixed
		switch {
		case n == 0:
			return append(dst, ctorUlong0), nil
		case n <= 255:
			return append(dst, ctorSmallUlong, uint8(n)), nil
		default:
			dst = append(dst, ctorUlong)
			return binary.BigEndian.AppendUint64(dst, n), nil
		}

	case KindByte:
		return append(dst, ctorByte, uint8(int8(v.fixed))), nil

	case KindShort:
		dst = append(dst, ctorShort)
		return binary.BigEndian.AppendUint16(dst, uint16(int16(v.fixed))), nil

	case KindInt:
		n := int32(v.fixed)
		if n >= -128 && n <= 127 {
			return append(dst, ctorSmallInt, uint8(int8(n))), nil
		}
		dst = append(dst, ctorInt)
		return binary.BigEndian.AppendUint32(dst, uint32(n)), nil

	case KindLong:
		n := int64(v.fixed)
		if n >= -128 && n <= 127 {
			return append(dst, ctorSmallLong, uint8(int8(n))), nil
		}
		dst = append(dst, ctorLong)
		return binary.BigEndian.AppendUint64(dst, uint64(n)), nil

	case KindFloat:
		dst = append(dst, ctorFloat)
		return binary.BigEndian.AppendUint32(dst, uint32(v.fixed)), nil

	case KindDouble:
		dst = append(dst, ctorDouble)
		return binary.BigEndian.AppendUint64(dst, v.fixed), nil

	case KindDecimal32:
		if len(v.bin) != 4 {
			return nil, fmt.Errorf("primitive: decimal32 payload must be 4 bytes, got %d: %w", len(v.bin), amqperr.ErrInvalidField)
		}
		dst = append(dst, ctorDecimal32)
		return append(dst, v.bin...), nil

	case KindDecimal64:
		if len(v.bin) != 8 {
			return nil, fmt.Errorf("primitive: decimal64 payload must be 8 bytes, got %d: %w", len(v.bin), amqperr.ErrInvalidField)
		}
		dst = append(dst, ctorDecimal64)
		return append(dst, v.bin...), nil

	case KindDecimal128:
		dst = append(dst, ctorDecimal128)
		return append(dst, v.uuid[:]...), nil

	case KindChar:
		dst = append(dst, ctorChar)
		return binary.BigEndian.AppendUint32(dst, uint32(v.fixed)), nil

	case KindTimestamp:
		dst = append(dst, ctorTimestamp)
		return binary.BigEndian.AppendUint64(dst, v.fixed), nil

	case KindUUID:
		dst = append(dst, ctorUUID)
		return append(dst, v.uuid[:]...), nil

	case KindBinary:
		return encodeVarBytes(dst, ctorVbin8, ctorVbin32, v.bin)

	case KindString:
		if !utf8.ValidString(v.str) {
			return nil, fmt.Errorf("primitive: string is not valid UTF-8: %w", amqperr.ErrInvalidField)
		}
		return encodeVarBytes(dst, ctorStr8, ctorStr32, []byte(v.str))

	case KindSymbol:
		if !isASCII(v.str) {
			return nil, fmt.Errorf("primitive: symbol %q is not 7-bit ASCII: %w", v.str, amqperr.ErrInvalidField)
		}
		return encodeVarBytes(dst, ctorSym8, ctorSym32, []byte(v.str))

	case KindList:
		return encodeList(dst, v.list, o)

	case KindMap:
		return encodeMap(dst, v.mapKeys, v.mapVals, o)

	case KindArray:
		return encodeArray(dst, v.arrayOf, v.array, o)

	case KindComposite:
		return encodeComposite(dst, v.compDesc, v.compList, o)

	default:
		return nil, fmt.Errorf("primitive: cannot encode unknown kind %d: %w", v.kind, amqperr.ErrNotImplemented)
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}

func encodeVarBytes(dst []byte, ctor8, ctor32 Kind8, payload []byte) ([]byte, error) {
	n := len(payload)
	if n <= 255 {
		dst = append(dst, ctor8, uint8(n))
		return append(dst, payload...), nil
	}
	dst = append(dst, ctor32)
	dst = binary.BigEndian.AppendUint32(dst, uint32(n))
	return append(dst, payload...), nil
}

func encodeList(dst []byte, elems []Primitive, o CodecOptions) ([]byte, error) {
	if len(elems) == 0 {
		return append(dst, ctorList0), nil
	}
	body, err := encodeElements(elems, o)
	if err != nil {
		return nil, err
	}
	return appendCompoundHeader(dst, ctorList8, ctorList32, len(elems), body), nil
}

func encodeMap(dst []byte, keys, vals []Primitive, o CodecOptions) ([]byte, error) {
	if len(keys) != len(vals) {
		return nil, fmt.Errorf("primitive: map has %d keys but %d values: %w", len(keys), len(vals), amqperr.ErrInvalidField)
	}
	pairs := make([]Primitive, 0, 2*len(keys))
	for i := range keys {
		pairs = append(pairs, keys[i], vals[i])
	}
	body, err := encodeElements(pairs, o)
	if err != nil {
		return nil, err
	}
	return appendCompoundHeader(dst, ctorMap8, ctorMap32, len(pairs), body), nil
}

func encodeElements(elems []Primitive, o CodecOptions) ([]byte, error) {
	var body []byte
	for i := range elems {
		var err error
		body, err = elems[i].encode(body, o)
		if err != nil {
			return nil, fmt.Errorf("primitive: encoding element %d: %w", i, err)
		}
	}
	return body, nil
}

// appendCompoundHeader writes the short or long form of a list/map header
// (size, then count, then body) depending on whether the 1-byte forms fit.
// size counts the count field itself plus the body, per OASIS AMQP 1.0
// section 1.6.1.
func appendCompoundHeader(dst []byte, ctor8, ctor32 Kind8, count int, body []byte) []byte {
	if count <= 255 && len(body)+1 <= 255 {
		dst = append(dst, ctor8, uint8(len(body)+1), uint8(count))
		return append(dst, body...)
	}
	dst = append(dst, ctor32)
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(body)+4))
	dst = binary.BigEndian.AppendUint32(dst, uint32(count))
	return append(dst, body...)
}

// encodeArray writes the array's shared constructor once, then each
// element's body only (no per-element constructor byte), per AMQP 1.0's
// array encoding. Each body has the width of the shared constructor, so
// string/symbol/binary elements carry a 4-byte size prefix; nested list/map/array elements are not
// supported by this simplified implementation and return ErrNotImplemented.
func encodeArray(dst []byte, of Kind, elems []Primitive, o CodecOptions) ([]byte, error) {
	switch of {
	case KindList, KindMap, KindArray, KindComposite:
		return nil, fmt.Errorf("primitive: array of %s is not supported: %w", of, amqperr.ErrNotImplemented)
	}

	var body []byte
	for i, e := range elems {
		if e.kind != of {
			return nil, fmt.Errorf("primitive: array element %d has kind %s, want %s: %w", i, e.kind, of, amqperr.ErrInvalidField)
		}
		full, err := e.encode(nil, o)
		if err != nil {
			return nil, err
		}
		// Write the payload in the width of the shared constructor chosen by
		// constructorFor, not the narrowest form e.encode picked.
		switch e.kind {
		case KindBool:
			body = append(body, uint8(e.fixed))
		case KindUint, KindInt:
			body = binary.BigEndian.AppendUint32(body, uint32(e.fixed))
		case KindUlong, KindLong:
			body = binary.BigEndian.AppendUint64(body, e.fixed)
		case KindBinary, KindString, KindSymbol:
			body = binary.BigEndian.AppendUint32(body, uint32(len(e.bin)+len(e.str)))
			body = append(append(body, e.bin...), e.str...) // only one of bin/str is set
		default:
			body = append(body, full[1:]...) // single-constructor kinds: drop the constructor byte
		}
	}

	// An empty array still carries a shared element constructor; per OASIS
	// AMQP 1.0 and the original's array.rs, an empty array's constructor is
	// always null regardless of the declared element kind.
	ctor := ctorNull
	count := len(elems)
	if count > 0 {
		var err error
		ctor, err = constructorFor(of)
		if err != nil {
			return nil, err
		}
	}

	if count <= 255 && len(body)+1+1 <= 255 {
		dst = append(dst, ctorArray8, uint8(len(body)+1+1), uint8(count), ctor)
		return append(dst, body...), nil
	}
	dst = append(dst, ctorArray32)
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(body)+4+1))
	dst = binary.BigEndian.AppendUint32(dst, uint32(count))
	dst = append(dst, ctor)
	return append(dst, body...), nil
}

// constructorFor returns the canonical (non-narrowed) constructor byte used
// as an array's single shared element constructor. Arrays cannot use
// per-value narrowest-form selection since every element must share one
// constructor.
func constructorFor(k Kind) (Kind8, error) {
	switch k {
	case KindNull:
		return ctorNull, nil
	case KindBool:
		return ctorBool, nil
	case KindUbyte:
		return ctorUbyte, nil
	case KindUshort:
		return ctorUshort, nil
	case KindUint:
		return ctorUint, nil
	case KindUlong:
		return ctorUlong, nil
	case KindByte:
		return ctorByte, nil
	case KindShort:
		return ctorShort, nil
	case KindInt:
		return ctorInt, nil
	case KindLong:
		return ctorLong, nil
	case KindFloat:
		return ctorFloat, nil
	case KindDouble:
		return ctorDouble, nil
	case KindDecimal32:
		return ctorDecimal32, nil
	case KindDecimal64:
		return ctorDecimal64, nil
	case KindDecimal128:
		return ctorDecimal128, nil
	case KindChar:
		return ctorChar, nil
	case KindTimestamp:
		return ctorTimestamp, nil
	case KindUUID:
		return ctorUUID, nil
	case KindBinary:
		return ctorVbin32, nil
	case KindString:
		return ctorStr32, nil
	case KindSymbol:
		return ctorSym32, nil
	default:
		return 0, fmt.Errorf("primitive: no array constructor for kind %s: %w", k, amqperr.ErrNotImplemented)
	}
}

func encodeComposite(dst []byte, desc any, fields []Primitive, o CodecOptions) ([]byte, error) {
	descPrim, ok := desc.(Primitive)
	if !ok {
		return nil, fmt.Errorf("primitive: composite descriptor has unexpected type %T: %w", desc, amqperr.ErrInvalidField)
	}
	dst = append(dst, CtorComposite)
	dst, err := descPrim.encode(dst, o)
	if err != nil {
		return nil, fmt.Errorf("primitive: encoding composite descriptor: %w", err)
	}
	return encodeList(dst, fields, o)
}
