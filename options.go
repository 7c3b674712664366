package tetra

import (
	"github.com/arloliu/tetra/bitstream"
	"github.com/arloliu/tetra/format"
	"github.com/arloliu/tetra/internal/options"
)

// Option configures a Stream during NewStream.
type Option = options.Option[*Stream]

func applyOptions(s *Stream, opts ...Option) error {
	return options.Apply(s, opts...)
}

// WithExecPolicy selects the execution policy (serial, parallel,
// offload). The policy never changes fixed-rate stream contents.
func WithExecPolicy(policy format.ExecPolicy) Option {
	return options.New(func(s *Stream) error {
		return s.SetExecution(policy)
	})
}

// WithBitStream attaches an existing bit stream instead of letting
// Compress allocate one at the conservative bound.
func WithBitStream(bs *bitstream.Stream) Option {
	return options.NoError(func(s *Stream) {
		s.SetBitStream(bs)
	})
}

// WithFixedRate configures fixed-rate mode for the given dimensionality.
func WithFixedRate(rate float64, dims uint) Option {
	return options.NoError(func(s *Stream) {
		s.SetRate(rate, dims)
	})
}

// WithFixedPrecision configures fixed-precision mode.
func WithFixedPrecision(prec uint) Option {
	return options.NoError(func(s *Stream) {
		s.SetPrecision(prec)
	})
}

// WithFixedAccuracy configures fixed-accuracy mode with an absolute
// error tolerance.
func WithFixedAccuracy(tolerance float64) Option {
	return options.NoError(func(s *Stream) {
		s.SetAccuracy(tolerance)
	})
}

// WithReversible selects the bit-exact lossless pipeline.
func WithReversible() Option {
	return options.NoError(func(s *Stream) {
		s.SetReversible()
	})
}

// WithParams installs expert-mode knobs directly.
func WithParams(minBits, maxBits uint64, maxPrec uint, minExp int) Option {
	return options.New(func(s *Stream) error {
		return s.SetParams(minBits, maxBits, maxPrec, minExp)
	})
}
