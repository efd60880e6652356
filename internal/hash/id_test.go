package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	require.Equal(t, Bytes([]byte("amqp:open:list")), Bytes([]byte("amqp:open:list")))
	require.NotEqual(t, Bytes([]byte("amqp:open:list")), Bytes([]byte("amqp:begin:list")))
	require.NotPanics(t, func() { Bytes(nil) })
}

func TestUint64(t *testing.T) {
	require.Equal(t, Uint64(0), Uint64(0))
	require.NotEqual(t, Uint64(0), Uint64(1))
}

func TestCombine(t *testing.T) {
	a := Combine(Uint64(1), Bytes([]byte("x")))
	b := Combine(Uint64(2), Bytes([]byte("x")))
	require.NotEqual(t, a, b, "distinct seeds must not collapse to the same bucket")

	// Combine must be deterministic for repeated calls with the same inputs.
	require.Equal(t, a, Combine(Uint64(1), Bytes([]byte("x"))))
}
