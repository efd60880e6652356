package frame

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/relaywire/amqp10/compress"
	"github.com/relaywire/amqp10/endian"
	"github.com/relaywire/amqp10/internal/options"
	"github.com/relaywire/amqp10/internal/pool"
)

// Tracer optionally persists every frame's raw bytes to an io.Writer for
// post-mortem debugging, analogous to a pcap capture. It never touches the
// wire format itself — see compress/codec.go's package doc for why
// compression has no place in the frame encoding path.
type Tracer struct {
	w     io.Writer
	codec compress.Codec
	log   *logrus.Logger
	seq   atomic.Uint64
}

// TracerOptions controls a Tracer's capture destination and compression
// algorithm, following the teacher's functional-options construction
// pattern (internal/options.Option/Apply) used throughout this module.
type TracerOptions struct {
	w         io.Writer
	algorithm compress.Algorithm
	log       *logrus.Logger
}

// DefaultTracerOptions discards captured frames (io.Discard) uncompressed,
// logging to logrus's standard logger.
func DefaultTracerOptions() TracerOptions {
	return TracerOptions{w: io.Discard, algorithm: compress.AlgorithmNone, log: logrus.StandardLogger()}
}

// WithTraceWriter sets the destination captured frames are written to.
func WithTraceWriter(w io.Writer) options.Option[*TracerOptions] {
	return options.NoError(func(o *TracerOptions) {
		o.w = w
	})
}

// WithTraceCodec sets the compression algorithm applied to each captured
// frame before it is written.
func WithTraceCodec(algorithm compress.Algorithm) options.Option[*TracerOptions] {
	return options.NoError(func(o *TracerOptions) {
		o.algorithm = algorithm
	})
}

// WithTraceLogger sets the logger a Tracer reports capture failures to, and
// logs one Debug entry per captured frame.
func WithTraceLogger(log *logrus.Logger) options.Option[*TracerOptions] {
	return options.NoError(func(o *TracerOptions) {
		o.log = log
	})
}

// NewTracer builds a Tracer from opts, defaulting to a discarded,
// uncompressed capture stream when none are given.
func NewTracer(opts ...options.Option[*TracerOptions]) (*Tracer, error) {
	o := DefaultTracerOptions()
	_ = options.Apply(&o, opts...)

	codec, err := compress.GetCodec(o.algorithm)
	if err != nil {
		return nil, fmt.Errorf("frame: building tracer: %w", err)
	}
	log := o.log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Tracer{w: o.w, codec: codec, log: log}, nil
}

// traceRecordHeader is [8-byte sequence][4-byte compressed length], always
// big-endian like every other fixed-width field on the AMQP wire.
const traceRecordHeader = 12

// WriteFrame captures raw, the exact bytes of one encoded frame, prefixed
// with a monotonic sequence number and the compressed length. ctx is
// checked for cancellation before the write, matching the teacher's
// convention of threading context.Context through any call touching an
// io.Writer it does not own; it is never used to interrupt a write already
// in flight.
func (t *Tracer) WriteFrame(ctx context.Context, raw []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	compressed, err := t.codec.Compress(raw)
	if err != nil {
		t.log.WithError(err).Error("frame: tracer failed to compress captured frame")
		return fmt.Errorf("frame: compressing trace record: %w", err)
	}

	seq := t.seq.Add(1)
	buf := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(buf)

	eng := endian.GetBigEndianEngine()
	header := make([]byte, 0, traceRecordHeader)
	header = eng.AppendUint64(header, seq)
	header = eng.AppendUint32(header, uint32(len(compressed)))
	buf.MustWrite(header)
	buf.MustWrite(compressed)

	if _, err := buf.WriteTo(t.w); err != nil {
		t.log.WithError(err).WithField("sequence", seq).Error("frame: tracer failed to write captured frame")
		return fmt.Errorf("frame: writing trace record %d: %w", seq, err)
	}

	t.log.WithField("sequence", seq).Debugf("frame: captured %d bytes (%d compressed)", len(raw), len(compressed))
	return nil
}
