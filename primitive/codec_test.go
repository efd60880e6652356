package primitive_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaywire/amqp10/primitive"
)

func roundTrip(t *testing.T, v primitive.Primitive) primitive.Primitive {
	t.Helper()
	encoded, err := v.Encode(nil)
	require.NoError(t, err)
	got, err := primitive.Decode(bytes.NewReader(encoded))
	require.NoError(t, err)
	return got
}

func TestUintNarrowestForm(t *testing.T) {
	cases := []struct {
		name string
		v    uint32
		want []byte
	}{
		{"zero", 0, []byte{0x43}},
		{"one", 1, []byte{0x52, 0x01}},
		{"maxSmall", 255, []byte{0x52, 0xff}},
		{"wide", 256, []byte{0x70, 0x00, 0x00, 0x01, 0x00}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := primitive.Uint(c.v).Encode(nil)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestIntNarrowestForm(t *testing.T) {
	cases := []struct {
		name string
		v    int32
		want []byte
	}{
		{"negSmall", -128, []byte{0x54, 0x80}},
		{"posSmall", 127, []byte{0x54, 0x7f}},
		{"wideNeg", -129, []byte{0x71, 0xff, 0xff, 0xff, 0x7f}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := primitive.Int(c.v).Encode(nil)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestStringConstructorWidth(t *testing.T) {
	short := strings.Repeat("a", 255)
	got, err := primitive.String(short).Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0xa1), got[0])
	assert.Equal(t, byte(255), got[1])

	long := strings.Repeat("a", 256)
	got, err = primitive.String(long).Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0xb1), got[0])
}

func TestSymbolRejectsNonASCII(t *testing.T) {
	_, err := primitive.Symbol("café").Encode(nil)
	require.Error(t, err)
}

func TestSymbolDecodeRejectsNonASCII(t *testing.T) {
	// 0xA3 (sym8), length 2, bytes 0xC3 0xA9 (UTF-8 for U+00E9, non-ASCII).
	wire := []byte{0xA3, 0x02, 0xC3, 0xA9}
	_, err := primitive.Decode(bytes.NewReader(wire))
	require.Error(t, err)
}

func TestBoolCompactAndTagged(t *testing.T) {
	compact, err := primitive.Bool(true).Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41}, compact)

	tagged, err := primitive.Bool(true).Encode(nil, primitive.WithTaggedBool())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x56, 0x01}, tagged)
}

func TestListEmptyUsesList0(t *testing.T) {
	got, err := primitive.List(nil).Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x45}, got)
}

func TestRoundTripScalarKinds(t *testing.T) {
	values := []primitive.Primitive{
		primitive.Null(),
		primitive.Bool(true),
		primitive.Bool(false),
		primitive.Ubyte(200),
		primitive.Ushort(40000),
		primitive.Uint(70000),
		primitive.Ulong(1 << 40),
		primitive.Byte(-5),
		primitive.Short(-30000),
		primitive.Int(-70000),
		primitive.Long(-1 << 40),
		primitive.Float(3.14),
		primitive.Double(2.71828),
		primitive.Char('λ'),
		primitive.Timestamp(1_700_000_000_000),
		primitive.UUID([16]byte{1, 2, 3}),
		primitive.Binary([]byte{0xde, 0xad, 0xbe, 0xef}),
		primitive.String("hello, amqp"),
		primitive.Symbol("amqp.example"),
	}
	for _, v := range values {
		got := roundTrip(t, v)
		assert.True(t, v.Equal(got), "kind %s did not round-trip: %+v vs %+v", v.Kind(), v, got)
	}
}

func TestListRoundTrip(t *testing.T) {
	v := primitive.List([]primitive.Primitive{
		primitive.Uint(1),
		primitive.String("x"),
		primitive.Bool(true),
	})
	got := roundTrip(t, v)
	assert.True(t, v.Equal(got))
}

func TestMapRoundTrip(t *testing.T) {
	v := primitive.Map(
		[]primitive.Primitive{primitive.Symbol("k1"), primitive.Symbol("k2")},
		[]primitive.Primitive{primitive.Uint(1), primitive.String("v2")},
	)
	got := roundTrip(t, v)
	assert.True(t, v.Equal(got))
	_, vals, _ := got.AsMap()
	require.Len(t, vals, 2)
}

func TestMapMismatchedLengthsRejected(t *testing.T) {
	v := primitive.Map(
		[]primitive.Primitive{primitive.Symbol("only-key")},
		nil,
	)
	_, err := v.Encode(nil)
	require.Error(t, err)
}

func TestArrayOfUintRoundTrip(t *testing.T) {
	v := primitive.Array(primitive.KindUint, []primitive.Primitive{
		primitive.Uint(1), primitive.Uint(2), primitive.Uint(3),
	})
	got := roundTrip(t, v)
	assert.True(t, v.Equal(got))
}

func TestArrayEmptyEncodesNullElementConstructor(t *testing.T) {
	v := primitive.Array(primitive.KindInt, nil)
	got, err := v.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xe0, 0x02, 0x00, 0x40}, got)
}

func TestCompositeRoundTrip(t *testing.T) {
	v := primitive.Composite(primitive.Ulong(0x13), []primitive.Primitive{
		primitive.String("localhost"),
		primitive.Uint(4096),
	})
	got := roundTrip(t, v)
	assert.True(t, v.Equal(got))
}

func TestFloatBitwiseEqualityForNaN(t *testing.T) {
	nan := nanBits()
	a := primitive.Float(nan)
	got := roundTrip(t, a)
	gotBits, ok := got.FloatBits()
	require.True(t, ok)
	wantBits, _ := a.FloatBits()
	assert.Equal(t, wantBits, gotBits)
	assert.True(t, a.Equal(got))
}

func nanBits() float32 {
	var zero float32
	return zero / zero
}
