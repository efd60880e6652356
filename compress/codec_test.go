package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodecs_RoundTrip(t *testing.T) {
	data := []byte("amqp:open:list amqp:begin:list amqp:attach:list amqp:attach:list amqp:attach:list")

	for _, alg := range []Algorithm{AlgorithmNone, AlgorithmZstd, AlgorithmS2, AlgorithmLZ4} {
		t.Run(alg.String(), func(t *testing.T) {
			codec, err := GetCodec(alg)
			require.NoError(t, err)

			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, data, decompressed)
		})
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, alg := range []Algorithm{AlgorithmNone, AlgorithmZstd, AlgorithmS2, AlgorithmLZ4} {
		codec, err := GetCodec(alg)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, decompressed)
	}
}

func TestGetCodec_Unsupported(t *testing.T) {
	_, err := GetCodec(Algorithm(0xff))
	require.Error(t, err)
}

func TestAlgorithm_String(t *testing.T) {
	require.Equal(t, "none", AlgorithmNone.String())
	require.Equal(t, "zstd", AlgorithmZstd.String())
	require.Equal(t, "s2", AlgorithmS2.String())
	require.Equal(t, "lz4", AlgorithmLZ4.String())
	require.Equal(t, "unknown", Algorithm(0xff).String())
}
