package primitive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/relaywire/amqp10/amqperr"
)

// Decode reads one AMQP primitive (constructor byte plus payload) from r.
// r is a *bytes.Reader rather than a plain io.Reader because variable-length
// and compound decoding need to peek and re-slice without a separate
// buffered-reader layer, matching the synchronous, in-memory-first codec
// style used throughout this module.
func Decode(r *bytes.Reader) (Primitive, error) {
	ctor, err := r.ReadByte()
	if err != nil {
		return Primitive{}, fmt.Errorf("primitive: reading constructor byte: %w", joinEOF(err))
	}
	return decodeBody(ctor, r)
}

func joinEOF(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: %w", amqperr.ErrDecodeError, err)
	}
	return err
}

func decodeBody(ctor Kind8, r *bytes.Reader) (Primitive, error) {
	switch ctor {
	case ctorNull:
		return Null(), nil

	case ctorBoolTrue:
		return Bool(true), nil
	case ctorBoolFalse:
		return Bool(false), nil
	case ctorBool:
		b, err := readByte(r)
		if err != nil {
			return Primitive{}, err
		}
		return Bool(b != 0), nil

	case ctorUbyte:
		b, err := readByte(r)
		if err != nil {
			return Primitive{}, err
		}
		return Ubyte(b), nil

	case ctorUshort:
		v, err := readUint16(r)
		if err != nil {
			return Primitive{}, err
		}
		return Ushort(v), nil

	case ctorUint0:
		return Uint(0), nil
	case ctorSmallUint:
		b, err := readByte(r)
		if err != nil {
			return Primitive{}, err
		}
		return Uint(uint32(b)), nil
	case ctorUint:
		v, err := readUint32(r)
		if err != nil {
			return Primitive{}, err
		}
		return Uint(v), nil

	case ctorUlong0:
		return Ulong(0), nil
	case ctorSmallUlong:
		b, err := readByte(r)
		if err != nil {
			return Primitive{}, err
		}
		return Ulong(uint64(b)), nil
	case ctorUlong:
		v, err := readUint64(r)
		if err != nil {
			return Primitive{}, err
		}
		return Ulong(v), nil

	case ctorByte:
		b, err := readByte(r)
		if err != nil {
			return Primitive{}, err
		}
		return Byte(int8(b)), nil

	case ctorShort:
		v, err := readUint16(r)
		if err != nil {
			return Primitive{}, err
		}
		return Short(int16(v)), nil

	case ctorSmallInt:
		b, err := readByte(r)
		if err != nil {
			return Primitive{}, err
		}
		return Int(int32(int8(b))), nil
	case ctorInt:
		v, err := readUint32(r)
		if err != nil {
			return Primitive{}, err
		}
		return Int(int32(v)), nil

	case ctorSmallLong:
		b, err := readByte(r)
		if err != nil {
			return Primitive{}, err
		}
		return Long(int64(int8(b))), nil
	case ctorLong:
		v, err := readUint64(r)
		if err != nil {
			return Primitive{}, err
		}
		return Long(int64(v)), nil

	case ctorFloat:
		v, err := readUint32(r)
		if err != nil {
			return Primitive{}, err
		}
		return Primitive{kind: KindFloat, fixed: uint64(v)}, nil

	case ctorDouble:
		v, err := readUint64(r)
		if err != nil {
			return Primitive{}, err
		}
		return Primitive{kind: KindDouble, fixed: v}, nil

	case ctorDecimal32:
		b, err := readN(r, 4)
		if err != nil {
			return Primitive{}, err
		}
		return Decimal32([4]byte(b)), nil

	case ctorDecimal64:
		b, err := readN(r, 8)
		if err != nil {
			return Primitive{}, err
		}
		return Decimal64([8]byte(b)), nil

	case ctorDecimal128:
		b, err := readN(r, 16)
		if err != nil {
			return Primitive{}, err
		}
		return Decimal128([16]byte(b)), nil

	case ctorChar:
		v, err := readUint32(r)
		if err != nil {
			return Primitive{}, err
		}
		if !utf8.ValidRune(rune(v)) {
			return Primitive{}, fmt.Errorf("primitive: char 0x%x is not a Unicode scalar value: %w", v, amqperr.ErrDecodeError)
		}
		return Char(rune(v)), nil

	case ctorTimestamp:
		v, err := readUint64(r)
		if err != nil {
			return Primitive{}, err
		}
		return Timestamp(int64(v)), nil

	case ctorUUID:
		b, err := readN(r, 16)
		if err != nil {
			return Primitive{}, err
		}
		return UUID([16]byte(b)), nil

	case ctorVbin8:
		b, err := readVar(r, 1)
		if err != nil {
			return Primitive{}, err
		}
		return Binary(b), nil
	case ctorVbin32:
		b, err := readVar(r, 4)
		if err != nil {
			return Primitive{}, err
		}
		return Binary(b), nil

	case ctorStr8:
		b, err := readVar(r, 1)
		if err != nil {
			return Primitive{}, err
		}
		if !utf8.Valid(b) {
			return Primitive{}, fmt.Errorf("primitive: string is not valid UTF-8: %w", amqperr.ErrInvalidField)
		}
		return String(string(b)), nil
	case ctorStr32:
		b, err := readVar(r, 4)
		if err != nil {
			return Primitive{}, err
		}
		if !utf8.Valid(b) {
			return Primitive{}, fmt.Errorf("primitive: string is not valid UTF-8: %w", amqperr.ErrInvalidField)
		}
		return String(string(b)), nil

	case ctorSym8:
		b, err := readVar(r, 1)
		if err != nil {
			return Primitive{}, err
		}
		if !isASCII(string(b)) {
			return Primitive{}, fmt.Errorf("primitive: symbol contains non-ASCII byte: %w", amqperr.ErrInvalidField)
		}
		return Symbol(string(b)), nil
	case ctorSym32:
		b, err := readVar(r, 4)
		if err != nil {
			return Primitive{}, err
		}
		if !isASCII(string(b)) {
			return Primitive{}, fmt.Errorf("primitive: symbol contains non-ASCII byte: %w", amqperr.ErrInvalidField)
		}
		return Symbol(string(b)), nil

	case ctorList0:
		return List(nil), nil
	case ctorList8:
		elems, err := decodeCompound(r, 1)
		if err != nil {
			return Primitive{}, err
		}
		return List(elems), nil
	case ctorList32:
		elems, err := decodeCompound(r, 4)
		if err != nil {
			return Primitive{}, err
		}
		return List(elems), nil

	case ctorMap8:
		return decodeMap(r, 1)
	case ctorMap32:
		return decodeMap(r, 4)

	case ctorArray8:
		return decodeArray(r, 1)
	case ctorArray32:
		return decodeArray(r, 4)

	case CtorComposite:
		return decodeComposite(r)

	default:
		return Primitive{}, fmt.Errorf("primitive: unrecognized constructor byte 0x%02x: %w", ctor, amqperr.ErrDecodeError)
	}
}

func readByte(r *bytes.Reader) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("primitive: reading 1 byte: %w", joinEOF(err))
	}
	return b, nil
}

func readN(r *bytes.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("primitive: reading %d bytes: %w", n, joinEOF(err))
	}
	return buf, nil
}

func readUint16(r *bytes.Reader) (uint16, error) {
	b, err := readN(r, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func readUint32(r *bytes.Reader) (uint32, error) {
	b, err := readN(r, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func readUint64(r *bytes.Reader) (uint64, error) {
	b, err := readN(r, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// readVar reads a variable-length size field of sizeWidth bytes (1 for the
// *8 forms, 4 for the *32 forms) followed by that many payload bytes.
func readVar(r *bytes.Reader, sizeWidth int) ([]byte, error) {
	var n uint32
	if sizeWidth == 1 {
		b, err := readByte(r)
		if err != nil {
			return nil, err
		}
		n = uint32(b)
	} else {
		v, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		n = v
	}
	if n == 0 {
		return nil, nil
	}
	return readN(r, int(n))
}

// decodeCompound reads a list's size+count header and decodes count
// elements recursively. sizeWidth is 1 for list8 or 4 for list32.
func decodeCompound(r *bytes.Reader, sizeWidth int) ([]Primitive, error) {
	_, count, err := readSizeAndCount(r, sizeWidth)
	if err != nil {
		return nil, err
	}
	elems := make([]Primitive, 0, count)
	for i := 0; i < count; i++ {
		e, err := Decode(r)
		if err != nil {
			return nil, fmt.Errorf("primitive: decoding list element %d: %w", i, err)
		}
		elems = append(elems, e)
	}
	return elems, nil
}

// readSizeAndCount reads a compound header's size field (sizeWidth bytes,
// unused beyond the read itself: this decoder trusts element boundaries
// rather than pre-slicing by declared size) followed by a count field of
// the same width.
func readSizeAndCount(r *bytes.Reader, sizeWidth int) (size uint32, count int, err error) {
	if sizeWidth == 1 {
		sb, err := readByte(r)
		if err != nil {
			return 0, 0, err
		}
		cb, err := readByte(r)
		if err != nil {
			return 0, 0, err
		}
		return uint32(sb), int(cb), nil
	}
	sv, err := readUint32(r)
	if err != nil {
		return 0, 0, err
	}
	cv, err := readUint32(r)
	if err != nil {
		return 0, 0, err
	}
	return sv, int(cv), nil
}

func decodeMap(r *bytes.Reader, sizeWidth int) (Primitive, error) {
	elems, err := decodeCompound(r, sizeWidth)
	if err != nil {
		return Primitive{}, err
	}
	if len(elems)%2 != 0 {
		return Primitive{}, fmt.Errorf("primitive: map has odd element count %d: %w", len(elems), amqperr.ErrInvalidField)
	}
	keys := make([]Primitive, 0, len(elems)/2)
	vals := make([]Primitive, 0, len(elems)/2)
	for i := 0; i < len(elems); i += 2 {
		keys = append(keys, elems[i])
		vals = append(vals, elems[i+1])
	}
	return Map(keys, vals), nil
}

func decodeArray(r *bytes.Reader, sizeWidth int) (Primitive, error) {
	_, count, err := readSizeAndCount(r, sizeWidth)
	if err != nil {
		return Primitive{}, err
	}

	ctor, err := readByte(r)
	if err != nil {
		return Primitive{}, err
	}
	of, err := kindForConstructor(ctor)
	if err != nil {
		return Primitive{}, err
	}

	elems := make([]Primitive, 0, count)
	for i := 0; i < count; i++ {
		e, err := decodeBody(ctor, r)
		if err != nil {
			return Primitive{}, fmt.Errorf("primitive: decoding array element %d: %w", i, err)
		}
		elems = append(elems, e)
	}
	return Array(of, elems), nil
}

func kindForConstructor(ctor Kind8) (Kind, error) {
	switch ctor {
	case ctorNull:
		return KindNull, nil
	case ctorBoolTrue, ctorBoolFalse, ctorBool:
		return KindBool, nil
	case ctorUbyte:
		return KindUbyte, nil
	case ctorUshort:
		return KindUshort, nil
	case ctorUint, ctorSmallUint, ctorUint0:
		return KindUint, nil
	case ctorUlong, ctorSmallUlong, ctorUlong0:
		return KindUlong, nil
	case ctorByte:
		return KindByte, nil
	case ctorShort:
		return KindShort, nil
	case ctorInt, ctorSmallInt:
		return KindInt, nil
	case ctorLong, ctorSmallLong:
		return KindLong, nil
	case ctorFloat:
		return KindFloat, nil
	case ctorDouble:
		return KindDouble, nil
	case ctorDecimal32:
		return KindDecimal32, nil
	case ctorDecimal64:
		return KindDecimal64, nil
	case ctorDecimal128:
		return KindDecimal128, nil
	case ctorChar:
		return KindChar, nil
	case ctorTimestamp:
		return KindTimestamp, nil
	case ctorUUID:
		return KindUUID, nil
	case ctorVbin8, ctorVbin32:
		return KindBinary, nil
	case ctorStr8, ctorStr32:
		return KindString, nil
	case ctorSym8, ctorSym32:
		return KindSymbol, nil
	default:
		return 0, fmt.Errorf("primitive: constructor 0x%02x is not a valid array element constructor: %w", ctor, amqperr.ErrDecodeError)
	}
}

func decodeComposite(r *bytes.Reader) (Primitive, error) {
	desc, err := Decode(r)
	if err != nil {
		return Primitive{}, fmt.Errorf("primitive: decoding composite descriptor: %w", err)
	}
	list, err := Decode(r)
	if err != nil {
		return Primitive{}, fmt.Errorf("primitive: decoding composite body: %w", err)
	}
	fields, ok := list.AsList()
	if !ok {
		return Primitive{}, fmt.Errorf("primitive: composite body is not a list (got %s): %w", list.Kind(), amqperr.ErrDecodeError)
	}
	return Composite(desc, fields), nil
}
