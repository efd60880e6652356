// Package primitive implements the AMQP 1.0 primitive type system: the
// 25-case value model and its constructor-coded wire encoding described by
// OASIS AMQP 1.0 section 1.6.
//
// Go has no tagged-union facility, so Primitive is a single struct carrying
// a Kind discriminant plus the narrowest payload fields each kind needs,
// rather than a closed sum type. Constructors (Null, Bool, Int, ...) build
// values; accessors (AsInt, AsString, ...) read them back without panicking.
package primitive

import (
	"fmt"
	"math"
)

// Kind identifies which of the 25 AMQP primitive cases a Primitive holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindUbyte
	KindUshort
	KindUint
	KindUlong
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindDecimal32
	KindDecimal64
	KindDecimal128
	KindChar
	KindTimestamp
	KindUUID
	KindBinary
	KindString
	KindSymbol
	KindList
	KindMap
	KindArray
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindUbyte:
		return "ubyte"
	case KindUshort:
		return "ushort"
	case KindUint:
		return "uint"
	case KindUlong:
		return "ulong"
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindDecimal32:
		return "decimal32"
	case KindDecimal64:
		return "decimal64"
	case KindDecimal128:
		return "decimal128"
	case KindChar:
		return "char"
	case KindTimestamp:
		return "timestamp"
	case KindUUID:
		return "uuid"
	case KindBinary:
		return "binary"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindArray:
		return "array"
	case KindComposite:
		return "composite"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Primitive is an AMQP 1.0 value. The zero Primitive is KindNull.
//
// fixed carries the bit pattern for every fixed-width numeric, bool, char,
// and timestamp kind; str carries string/symbol payloads; bin carries
// binary and decimal32/64 payloads (opaque bytes); uuid carries the
// 16-byte UUID and decimal128 payloads. list/mapKeys/mapVals/array are populated only for the
// matching compound Kind.
type Primitive struct {
	kind Kind

	fixed uint64
	str   string
	bin   []byte
	uuid  [16]byte

	list     []Primitive
	mapKeys  []Primitive
	mapVals  []Primitive
	array    []Primitive
	arrayOf  Kind
	compDesc any // the descriptor's symbol or ulong Primitive, held as any
	compList []Primitive
}

// Kind reports which AMQP primitive case v holds.
func (v Primitive) Kind() Kind { return v.kind }

// Null returns the AMQP null primitive.
func Null() Primitive { return Primitive{kind: KindNull} }

// Bool constructs a boolean primitive.
func Bool(b bool) Primitive {
	var f uint64
	if b {
		f = 1
	}
	return Primitive{kind: KindBool, fixed: f}
}

// AsBool reports v's boolean value and whether v is a KindBool.
func (v Primitive) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.fixed != 0, true
}

func fixedCtor[T ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64](kind Kind, val T) Primitive {
	return Primitive{kind: kind, fixed: uint64(val)}
}

// Ubyte constructs an unsigned 8-bit primitive.
func Ubyte(v uint8) Primitive { return fixedCtor(KindUbyte, v) }

// AsUbyte reports v's value and whether v is a KindUbyte.
func (v Primitive) AsUbyte() (uint8, bool) {
	if v.kind != KindUbyte {
		return 0, false
	}
	return uint8(v.fixed), true
}

// Ushort constructs an unsigned 16-bit primitive.
func Ushort(v uint16) Primitive { return fixedCtor(KindUshort, v) }

// AsUshort reports v's value and whether v is a KindUshort.
func (v Primitive) AsUshort() (uint16, bool) {
	if v.kind != KindUshort {
		return 0, false
	}
	return uint16(v.fixed), true
}

// Uint constructs an unsigned 32-bit primitive.
func Uint(v uint32) Primitive { return fixedCtor(KindUint, v) }

// AsUint reports v's value and whether v is a KindUint.
func (v Primitive) AsUint() (uint32, bool) {
	if v.kind != KindUint {
		return 0, false
	}
	return uint32(v.fixed), true
}

// Ulong constructs an unsigned 64-bit primitive.
func Ulong(v uint64) Primitive { return Primitive{kind: KindUlong, fixed: v} }

// AsUlong reports v's value and whether v is a KindUlong.
func (v Primitive) AsUlong() (uint64, bool) {
	if v.kind != KindUlong {
		return 0, false
	}
	return v.fixed, true
}

// Byte constructs a signed 8-bit primitive.
func Byte(v int8) Primitive { return fixedCtor(KindByte, v) }

// AsByte reports v's value and whether v is a KindByte.
func (v Primitive) AsByte() (int8, bool) {
	if v.kind != KindByte {
		return 0, false
	}
	return int8(v.fixed), true
}

// Short constructs a signed 16-bit primitive.
func Short(v int16) Primitive { return fixedCtor(KindShort, v) }

// AsShort reports v's value and whether v is a KindShort.
func (v Primitive) AsShort() (int16, bool) {
	if v.kind != KindShort {
		return 0, false
	}
	return int16(v.fixed), true
}

// Int constructs a signed 32-bit primitive.
func Int(v int32) Primitive { return fixedCtor(KindInt, v) }

// AsInt reports v's value and whether v is a KindInt.
func (v Primitive) AsInt() (int32, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return int32(v.fixed), true
}

// Long constructs a signed 64-bit primitive.
func Long(v int64) Primitive { return Primitive{kind: KindLong, fixed: uint64(v)} }

// AsLong reports v's value and whether v is a KindLong.
func (v Primitive) AsLong() (int64, bool) {
	if v.kind != KindLong {
		return 0, false
	}
	return int64(v.fixed), true
}

// Char constructs a Unicode scalar primitive from a UTF-32 code point.
func Char(v rune) Primitive { return Primitive{kind: KindChar, fixed: uint64(uint32(v))} }

// AsChar reports v's code point and whether v is a KindChar.
func (v Primitive) AsChar() (rune, bool) {
	if v.kind != KindChar {
		return 0, false
	}
	return rune(uint32(v.fixed)), true
}

// Timestamp constructs a millisecond-since-epoch timestamp primitive.
func Timestamp(millis int64) Primitive { return Primitive{kind: KindTimestamp, fixed: uint64(millis)} }

// AsTimestamp reports v's millisecond value and whether v is a KindTimestamp.
func (v Primitive) AsTimestamp() (int64, bool) {
	if v.kind != KindTimestamp {
		return 0, false
	}
	return int64(v.fixed), true
}

// UUID constructs a 16-byte UUID primitive.
func UUID(b [16]byte) Primitive { return Primitive{kind: KindUUID, uuid: b} }

// AsUUID reports v's 16 bytes and whether v is a KindUUID.
func (v Primitive) AsUUID() ([16]byte, bool) {
	if v.kind != KindUUID {
		return [16]byte{}, false
	}
	return v.uuid, true
}

// Binary constructs a binary blob primitive. The slice is retained, not copied.
func Binary(b []byte) Primitive { return Primitive{kind: KindBinary, bin: b} }

// AsBinary reports v's bytes and whether v is a KindBinary.
func (v Primitive) AsBinary() ([]byte, bool) {
	if v.kind != KindBinary {
		return nil, false
	}
	return v.bin, true
}

// String constructs a UTF-8 string primitive.
func String(s string) Primitive { return Primitive{kind: KindString, str: s} }

// AsString reports v's value and whether v is a KindString.
func (v Primitive) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Symbol constructs an ASCII symbol primitive. Construction does not check
// that s is 7-bit ASCII; Encode rejects a non-ASCII symbol, and Decode
// rejects non-ASCII bytes on the wire.
func Symbol(s string) Primitive { return Primitive{kind: KindSymbol, str: s} }

// AsSymbol reports v's value and whether v is a KindSymbol.
func (v Primitive) AsSymbol() (string, bool) {
	if v.kind != KindSymbol {
		return "", false
	}
	return v.str, true
}

// List constructs an ordered-list primitive. elems is retained, not copied.
func List(elems []Primitive) Primitive { return Primitive{kind: KindList, list: elems} }

// AsList reports v's elements and whether v is a KindList.
func (v Primitive) AsList() ([]Primitive, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// Map constructs an ordered key/value-pair primitive from parallel key and
// value slices. keys and vals must have equal length; construction does not
// validate this, and Encode fails with amqp:invalid-field when they differ.
func Map(keys, vals []Primitive) Primitive {
	return Primitive{kind: KindMap, mapKeys: keys, mapVals: vals}
}

// AsMap reports v's parallel key/value slices and whether v is a KindMap.
func (v Primitive) AsMap() (keys, vals []Primitive, ok bool) {
	if v.kind != KindMap {
		return nil, nil, false
	}
	return v.mapKeys, v.mapVals, true
}

// Array constructs a homogeneous-array primitive. of is the shared element
// Kind; elems must all share it (not checked here; Encode rejects an
// element of another kind).
func Array(of Kind, elems []Primitive) Primitive {
	return Primitive{kind: KindArray, arrayOf: of, array: elems}
}

// AsArray reports v's element kind and elements, and whether v is a KindArray.
func (v Primitive) AsArray() (of Kind, elems []Primitive, ok bool) {
	if v.kind != KindArray {
		return 0, nil, false
	}
	return v.arrayOf, v.array, true
}

// Composite constructs a descriptor-tagged-list primitive. descriptor is
// the descriptor's own Primitive (a symbol or a ulong), typed `any` here;
// Encode fails for any other type. The composite package provides typed
// wrappers around this constructor and CompositeParts.
func Composite(descriptor any, fields []Primitive) Primitive {
	return Primitive{kind: KindComposite, compDesc: descriptor, compList: fields}
}

// CompositeParts reports v's descriptor and field list, and whether v is a KindComposite.
func (v Primitive) CompositeParts() (descriptor any, fields []Primitive, ok bool) {
	if v.kind != KindComposite {
		return nil, nil, false
	}
	return v.compDesc, v.compList, true
}

// Decimal32 constructs an opaque 4-byte decimal32 carrier. The bytes are
// never interpreted; see Decimal128 for why.
func Decimal32(b [4]byte) Primitive { return Primitive{kind: KindDecimal32, bin: b[:]} }

// AsDecimal32 reports v's 4 bytes and whether v is a KindDecimal32.
func (v Primitive) AsDecimal32() ([4]byte, bool) {
	if v.kind != KindDecimal32 || len(v.bin) != 4 {
		return [4]byte{}, false
	}
	return [4]byte(v.bin), true
}

// Decimal64 constructs an opaque 8-byte decimal64 carrier.
func Decimal64(b [8]byte) Primitive { return Primitive{kind: KindDecimal64, bin: b[:]} }

// AsDecimal64 reports v's 8 bytes and whether v is a KindDecimal64.
func (v Primitive) AsDecimal64() ([8]byte, bool) {
	if v.kind != KindDecimal64 || len(v.bin) != 8 {
		return [8]byte{}, false
	}
	return [8]byte(v.bin), true
}

// Decimal128 constructs an opaque 16-byte decimal128 carrier. Per the
// design decision recorded for this module, decimal128 values are never
// interpreted as numbers — only round-tripped verbatim — since quad
// precision float support does not yet exist in the Go ecosystem this
// module draws on.
func Decimal128(b [16]byte) Primitive { return Primitive{kind: KindDecimal128, uuid: b} }

// AsDecimal128 reports v's 16 bytes and whether v is a KindDecimal128.
func (v Primitive) AsDecimal128() ([16]byte, bool) {
	if v.kind != KindDecimal128 {
		return [16]byte{}, false
	}
	return v.uuid, true
}

// Float constructs an IEEE 754 single-precision primitive.
func Float(v float32) Primitive {
	return Primitive{kind: KindFloat, fixed: uint64(math.Float32bits(v))}
}

// AsFloat reports v's value and whether v is a KindFloat. Equality over the
// returned value should be done with FloatBits, not ==, to match AMQP's
// bitwise-equality semantics for NaN.
func (v Primitive) AsFloat() (float32, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return math.Float32frombits(uint32(v.fixed)), true
}

// FloatBits reports v's raw IEEE 754 bit pattern and whether v is a KindFloat.
func (v Primitive) FloatBits() (uint32, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return uint32(v.fixed), true
}

// Double constructs an IEEE 754 double-precision primitive.
func Double(v float64) Primitive {
	return Primitive{kind: KindDouble, fixed: math.Float64bits(v)}
}

// AsDouble reports v's value and whether v is a KindDouble.
func (v Primitive) AsDouble() (float64, bool) {
	if v.kind != KindDouble {
		return 0, false
	}
	return math.Float64frombits(v.fixed), true
}

// DoubleBits reports v's raw IEEE 754 bit pattern and whether v is a KindDouble.
func (v Primitive) DoubleBits() (uint64, bool) {
	if v.kind != KindDouble {
		return 0, false
	}
	return v.fixed, true
}

// Equal reports whether v and other represent the same AMQP value,
// comparing floats and doubles bitwise so that NaN equals NaN iff
// bit-identical, per the wire-level equality this module's map keys rely on.
func (v Primitive) Equal(other Primitive) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBinary, KindDecimal32, KindDecimal64:
		return string(v.bin) == string(other.bin)
	case KindString, KindSymbol:
		return v.str == other.str
	case KindUUID, KindDecimal128:
		return v.uuid == other.uuid
	case KindList, KindArray:
		a, b := v.elemsFor(v.kind), other.elemsFor(other.kind)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return v.arrayOf == other.arrayOf
	case KindMap:
		if len(v.mapKeys) != len(other.mapKeys) {
			return false
		}
		for i := range v.mapKeys {
			if !v.mapKeys[i].Equal(other.mapKeys[i]) || !v.mapVals[i].Equal(other.mapVals[i]) {
				return false
			}
		}
		return true
	case KindComposite:
		if len(v.compList) != len(other.compList) {
			return false
		}
		for i := range v.compList {
			if !v.compList[i].Equal(other.compList[i]) {
				return false
			}
		}
		return fmt.Sprint(v.compDesc) == fmt.Sprint(other.compDesc)
	default:
		return v.fixed == other.fixed
	}
}

func (v Primitive) elemsFor(k Kind) []Primitive {
	if k == KindArray {
		return v.array
	}
	return v.list
}
