package primitive

import "github.com/relaywire/amqp10/internal/options"

// CodecOptions controls encode-time choices that AMQP leaves to the
// implementation, following the teacher's functional-options construction
// pattern (internal/options.Option/Apply) used throughout this module.
type CodecOptions struct {
	compactBool bool
}

// DefaultCodecOptions returns the options Encode uses when none are passed:
// compact boolean encoding (0x41/0x42).
func DefaultCodecOptions() CodecOptions {
	return CodecOptions{compactBool: true}
}

// WithCompactBool selects the single-byte 0x41/0x42 boolean constructors.
// This is the default.
func WithCompactBool() options.Option[*CodecOptions] {
	return options.NoError(func(o *CodecOptions) {
		o.compactBool = true
	})
}

// WithTaggedBool selects the 0x56-plus-byte boolean constructor, matching
// peers that always emit the tagged form.
func WithTaggedBool() options.Option[*CodecOptions] {
	return options.NoError(func(o *CodecOptions) {
		o.compactBool = false
	})
}

func buildCodecOptions(opts ...options.Option[*CodecOptions]) CodecOptions {
	o := DefaultCodecOptions()
	_ = options.Apply(&o, opts...)
	return o
}
