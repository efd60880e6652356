// Package compress provides pluggable compression backends for the frame
// tracer (see the frame package's Tracer type).
//
// AMQP 1.0 defines no compression at the wire-format layer: every primitive,
// compound, and composite encoding in this module is bit-exact per the OASIS
// specification, and a compressed performative would no longer interoperate
// with any other implementation. Compression therefore never touches the
// frames a peer sends or receives. Its only legitimate job in this codebase
// is shrinking the diagnostic capture a connection can optionally record —
// the raw frame bytes written to a trace file for post-mortem debugging,
// analogous to a pcap capture. That keeps the algorithm choice, and the
// dependencies it pulls in, isolated from protocol correctness.
package compress

import "fmt"

// Algorithm identifies a compression backend available to the frame tracer.
type Algorithm uint8

const (
	AlgorithmNone Algorithm = iota
	AlgorithmZstd
	AlgorithmS2
	AlgorithmLZ4
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmZstd:
		return "zstd"
	case AlgorithmS2:
		return "s2"
	case AlgorithmLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Compressor compresses a byte slice.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte slice produced by the matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Algorithm]Codec{
	AlgorithmNone: NewNoOpCompressor(),
	AlgorithmZstd: NewZstdCompressor(),
	AlgorithmS2:   NewS2Compressor(),
	AlgorithmLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the given Algorithm.
func GetCodec(algorithm Algorithm) (Codec, error) {
	if codec, ok := builtinCodecs[algorithm]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compress: unsupported algorithm %s", algorithm)
}
