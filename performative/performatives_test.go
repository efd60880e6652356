package performative_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/composite"
	"github.com/relaywire/amqp10/performative"
	"github.com/relaywire/amqp10/primitive"
	"github.com/relaywire/amqp10/restricted"
)

func TestOpenMinimalRoundTrip(t *testing.T) {
	in := performative.Open{ContainerID: "foo"}

	enc, err := in.Encode(nil)
	require.NoError(t, err)

	out, err := performative.DecodeOpen(bytes.NewReader(enc))
	require.NoError(t, err)
	assert.Equal(t, in.ContainerID, out.ContainerID)
	assert.Equal(t, uint32(0), out.MaxFrameSize)
}

func TestOpenWithPropertiesRoundTrip(t *testing.T) {
	props := restricted.NewFields()
	props.Set("product", primitive.String("relaywire"))

	in := performative.Open{
		ContainerID:  "conn-1",
		HostName:     "broker.example.com",
		MaxFrameSize: 65536,
		ChannelMax:   7,
		Properties:   props,
	}

	enc, err := in.Encode(nil)
	require.NoError(t, err)

	out, err := performative.DecodeOpen(bytes.NewReader(enc))
	require.NoError(t, err)
	assert.Equal(t, in.ContainerID, out.ContainerID)
	assert.Equal(t, in.HostName, out.HostName)
	assert.Equal(t, in.MaxFrameSize, out.MaxFrameSize)
	assert.Equal(t, in.ChannelMax, out.ChannelMax)
	v, ok := out.Properties.Get("product")
	require.True(t, ok)
	s, _ := v.AsString()
	assert.Equal(t, "relaywire", s)
}

func TestAttachWithSourceAndTargetRoundTrip(t *testing.T) {
	in := performative.Attach{
		Name:   "link-1",
		Handle: restricted.Handle(3),
		Role:   restricted.RoleSender,
		Source: &performative.Source{Address: "queue-a", Durable: 1},
		Target: &performative.Target{Address: "queue-b"},
	}

	enc, err := in.Encode(nil)
	require.NoError(t, err)

	out, err := performative.DecodeAttach(bytes.NewReader(enc))
	require.NoError(t, err)
	require.NotNil(t, out.Source)
	require.NotNil(t, out.Target)
	assert.Equal(t, "queue-a", out.Source.Address)
	assert.Equal(t, uint32(1), out.Source.Durable)
	assert.Equal(t, "queue-b", out.Target.Address)
	assert.Equal(t, restricted.Handle(3), out.Handle)
	assert.Equal(t, restricted.RoleSender, out.Role)
}

func TestAttachWithoutSourceOrTargetLeavesThemNil(t *testing.T) {
	in := performative.Attach{Name: "link-2", Handle: restricted.Handle(1), Role: restricted.RoleReceiver}

	enc, err := in.Encode(nil)
	require.NoError(t, err)

	out, err := performative.DecodeAttach(bytes.NewReader(enc))
	require.NoError(t, err)
	assert.Nil(t, out.Source)
	assert.Nil(t, out.Target)
}

func TestTransferDeliveryStateRoundTrip(t *testing.T) {
	var in performative.Transfer
	in.Handle = restricted.Handle(2)
	require.NoError(t, in.SetDeliveryState(performative.Received{SectionNumber: 1, SectionOffset: 128}))

	enc, err := in.Encode(nil)
	require.NoError(t, err)

	out, err := performative.DecodeTransfer(bytes.NewReader(enc))
	require.NoError(t, err)

	state, err := out.DeliveryState()
	require.NoError(t, err)
	received, ok := state.(performative.Received)
	require.True(t, ok)
	assert.Equal(t, uint32(1), received.SectionNumber)
	assert.Equal(t, uint64(128), received.SectionOffset)
}

func TestTransferWithoutDeliveryStateDecodesNil(t *testing.T) {
	in := performative.Transfer{Handle: restricted.Handle(2)}
	enc, err := in.Encode(nil)
	require.NoError(t, err)

	out, err := performative.DecodeTransfer(bytes.NewReader(enc))
	require.NoError(t, err)

	state, err := out.DeliveryState()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestDispositionAcceptedRoundTrip(t *testing.T) {
	var in performative.Disposition
	in.Role = restricted.RoleReceiver
	in.First = restricted.SequenceNo(10)
	in.Settled = true
	require.NoError(t, in.SetDeliveryState(performative.Accepted{}))

	enc, err := in.Encode(nil)
	require.NoError(t, err)

	out, err := performative.DecodeDisposition(bytes.NewReader(enc))
	require.NoError(t, err)
	assert.True(t, out.Settled)
	state, err := out.DeliveryState()
	require.NoError(t, err)
	_, ok := state.(performative.Accepted)
	assert.True(t, ok)
}

func TestDecodeDeliveryStateRejectsUnknownDescriptor(t *testing.T) {
	enc, err := performative.Open{ContainerID: "x"}.Encode(nil)
	require.NoError(t, err)
	c, err := composite.Decode(bytes.NewReader(enc))
	require.NoError(t, err)

	_, err = performative.DecodeDeliveryState(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, amqperr.ErrNotImplemented)
}

func TestCloseWithErrorRoundTrip(t *testing.T) {
	wireErr := performative.NewWireError(amqperr.ErrNotFound)
	in := performative.Close{Error: wireErr}

	enc, err := in.Encode(nil)
	require.NoError(t, err)

	out, err := performative.DecodeClose(bytes.NewReader(enc))
	require.NoError(t, err)
	require.NotNil(t, out.Error)
	assert.Equal(t, amqperr.ErrNotFound.Condition, out.Error.Condition)

	back := out.Error.ToError()
	assert.Equal(t, amqperr.ErrNotFound.Condition, back.Condition)
}

func TestCloseWithoutErrorRoundTrip(t *testing.T) {
	in := performative.Close{}
	enc, err := in.Encode(nil)
	require.NoError(t, err)

	out, err := performative.DecodeClose(bytes.NewReader(enc))
	require.NoError(t, err)
	assert.Nil(t, out.Error)
}
