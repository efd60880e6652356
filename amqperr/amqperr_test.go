package amqperr_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaywire/amqp10/amqperr"
)

func TestSentinelConditionStrings(t *testing.T) {
	cases := []struct {
		err  *amqperr.Error
		want string
	}{
		{amqperr.ErrNotFound, "amqp:not-found"},
		{amqperr.ErrDecodeError, "amqp:decode-error"},
		{amqperr.ErrFrameSizeTooSmall, "amqp:frame-size-too-small"},
		{amqperr.ErrConnectionForced, "amqp:connection:forced"},
		{amqperr.ErrFramingError, "amqp:connection:framing-error"},
		{amqperr.ErrWindowViolation, "amqp:session:window-violation"},
		{amqperr.ErrUnattachedHandle, "amqp:session:unattached-handle"},
		{amqperr.ErrDetachForced, "amqp:link:detach-forced"},
		{amqperr.ErrStolen, "amqp:link:stolen"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.err.Condition)
	}
}

func TestErrorsIsMatchesSentinelThroughWrap(t *testing.T) {
	wrapped := fmt.Errorf("decoding field: %w", amqperr.ErrInvalidField)
	require.ErrorIs(t, wrapped, amqperr.ErrInvalidField)
	require.NotErrorIs(t, wrapped, amqperr.ErrNotFound)
}

func TestLookupRoundTrip(t *testing.T) {
	got := amqperr.Lookup("amqp:resource-limit-exceeded")
	require.NotNil(t, got)
	assert.Same(t, amqperr.ErrResourceLimitExceeded, got)

	assert.Nil(t, amqperr.Lookup("amqp:not-a-real-condition"))
}

func TestConnectionRedirectCarriesInfo(t *testing.T) {
	e := amqperr.NewConnectionRedirect(amqperr.ConnectionRedirectInfo{
		Hostname:    "broker2.example.com",
		NetworkHost: "10.0.0.2",
		Port:        5671,
	})
	assert.Equal(t, "amqp:connection:redirect", e.Condition)
	assert.Equal(t, "broker2.example.com", e.Info["hostname"])
}

func TestLinkRedirectInfoFromEnv(t *testing.T) {
	t.Setenv("AMQP_LINK_REDIRECT_HOST_NAME", "broker3.example.com")
	t.Setenv("AMQP_LINK_REDIRECT_NETWORK_HOST", "10.0.0.3")
	t.Setenv("AMQP_LINK_REDIRECT_PORT", "5672")
	t.Setenv("AMQP_LINK_REDIRECT_ADDRESS", "queue/orders")

	info := amqperr.LinkRedirectInfoFromEnv()
	assert.Equal(t, "broker3.example.com", info.Hostname)
	assert.Equal(t, uint16(5672), info.Port)
	assert.Equal(t, "queue/orders", info.Address)
}

func TestErrorStringIncludesDescription(t *testing.T) {
	assert.Contains(t, amqperr.ErrNotFound.Error(), "amqp:not-found")
	assert.Contains(t, amqperr.ErrNotFound.Error(), "does not exist")
}
