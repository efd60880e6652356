package sasl_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/primitive"
	"github.com/relaywire/amqp10/sasl"
)

func TestMechanismsRoundTrip(t *testing.T) {
	in := sasl.Mechanisms{SaslServerMechanisms: []primitive.Primitive{primitive.Symbol("PLAIN"), primitive.Symbol("ANONYMOUS")}}
	enc, err := in.Encode(nil)
	require.NoError(t, err)

	out, err := sasl.Decode(bytes.NewReader(enc))
	require.NoError(t, err)
	mechs, ok := out.(sasl.Mechanisms)
	require.True(t, ok)
	require.Len(t, mechs.SaslServerMechanisms, 2)
	sym, _ := mechs.SaslServerMechanisms[0].AsSymbol()
	assert.Equal(t, "PLAIN", sym)
}

func TestInitRoundTrip(t *testing.T) {
	in := sasl.Init{Mechanism: "PLAIN", InitialResponse: []byte{0, 'u', 0, 'p'}, HostName: "broker.local"}
	enc, err := in.Encode(nil)
	require.NoError(t, err)

	out, err := sasl.Decode(bytes.NewReader(enc))
	require.NoError(t, err)
	init, ok := out.(sasl.Init)
	require.True(t, ok)
	assert.Equal(t, "PLAIN", init.Mechanism)
	assert.Equal(t, []byte{0, 'u', 0, 'p'}, init.InitialResponse)
	assert.Equal(t, "broker.local", init.HostName)
}

func TestOutcomeRoundTrip(t *testing.T) {
	in := sasl.Outcome{Code: sasl.OutcomeOK}
	enc, err := in.Encode(nil)
	require.NoError(t, err)

	out, err := sasl.Decode(bytes.NewReader(enc))
	require.NoError(t, err)
	outcome, ok := out.(sasl.Outcome)
	require.True(t, ok)
	assert.Equal(t, sasl.OutcomeOK, outcome.Code)
}

func TestDecodeRejectsNonSaslDescriptor(t *testing.T) {
	// A hand-built composite with an unrelated descriptor should be
	// rejected rather than silently decoded into a zero-value variant.
	enc, err := primitive.Composite(primitive.Symbol("amqp:open:list"), []primitive.Primitive{primitive.String("x")}).Encode(nil)
	require.NoError(t, err)

	_, err = sasl.Decode(bytes.NewReader(enc))
	require.Error(t, err)
	assert.ErrorIs(t, err, amqperr.ErrNotImplemented)
}
