package tetra

import (
	"math"

	"github.com/arloliu/tetra/bitstream"
	"github.com/arloliu/tetra/codec"
	"github.com/arloliu/tetra/format"
)

const (
	// maxPrecision is the largest number of bit planes any scalar type
	// can carry per coefficient.
	maxPrecision = 64

	// unboundedBits is the per-block bit budget used when a mode places
	// no explicit cap; it exceeds the worst-case encoding of the largest
	// block, so it never truncates.
	unboundedBits = 1 + 11 + 64*(256+64)

	// minExpUnset sits below every type floor; the effective bound is
	// clamped up to the scalar type's floor at compress time.
	minExpUnset = -1075
)

// Stream holds the codec parameter block: the four numeric knobs that
// govern compression, the mode and execution policy that produced them,
// and the attached bit stream.
//
// Mode setters translate user intent (rate, precision, accuracy,
// reversible, expert) into the knobs and return the actual effective
// parameter, which may differ from the requested value due to rounding
// to the achievable granularity.
type Stream struct {
	minBits uint64
	maxBits uint64
	maxPrec uint
	minExp  int

	mode format.Mode
	exec format.ExecPolicy

	bits *bitstream.Stream
}

// NewStream creates a stream with lossless-leaning expert defaults
// (full precision, no truncation) and serial execution. Apply options
// or call a mode setter to configure it.
func NewStream(opts ...Option) (*Stream, error) {
	s := &Stream{
		minBits: 0,
		maxBits: unboundedBits,
		maxPrec: maxPrecision,
		minExp:  minExpUnset,
		mode:    format.ModeExpert,
		exec:    format.ExecSerial,
	}

	if err := applyOptions(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// SetBitStream attaches the bit stream the codec reads and writes.
func (s *Stream) SetBitStream(bs *bitstream.Stream) {
	s.bits = bs
}

// BitStream returns the attached bit stream, or nil.
func (s *Stream) BitStream() *bitstream.Stream {
	return s.bits
}

// Mode returns the compression mode the last setter selected.
func (s *Stream) Mode() format.Mode {
	return s.mode
}

// Execution returns the configured execution policy.
func (s *Stream) Execution() format.ExecPolicy {
	return s.exec
}

// SetExecution selects the execution policy. The policy never alters
// the fixed-rate bit stream the codec produces.
func (s *Stream) SetExecution(policy format.ExecPolicy) error {
	switch policy {
	case format.ExecSerial, format.ExecParallel, format.ExecOffload:
		s.exec = policy
		return nil
	default:
		return ErrInvalidParams
	}
}

// Params returns the current knobs (minbits, maxbits, maxprec, minexp).
func (s *Stream) Params() (minBits, maxBits uint64, maxPrec uint, minExp int) {
	return s.minBits, s.maxBits, s.maxPrec, s.minExp
}

// SetRate configures fixed-rate mode at the given rate in bits per
// value for arrays of the given dimensionality. Every block consumes
// exactly the same word-aligned bit budget, which is what makes O(1)
// block addressing possible. Returns the achievable rate after
// quantization to the word granularity.
func (s *Stream) SetRate(rate float64, dims uint) float64 {
	n := float64(codec.BlockSize(dims))
	bits := uint64(math.Round(rate * n))
	bits = (bits + bitstream.WordBits - 1) / bitstream.WordBits * bitstream.WordBits
	if bits == 0 {
		bits = bitstream.WordBits
	}

	s.minBits = bits
	s.maxBits = bits
	s.maxPrec = maxPrecision
	s.minExp = minExpUnset
	s.mode = format.ModeFixedRate

	return float64(bits) / n
}

// SetPrecision configures fixed-precision mode, bounding the bit planes
// kept per coefficient. Returns the effective precision.
func (s *Stream) SetPrecision(prec uint) uint {
	if prec < 1 {
		prec = 1
	}
	if prec > maxPrecision {
		prec = maxPrecision
	}

	s.minBits = 0
	s.maxBits = unboundedBits
	s.maxPrec = prec
	s.minExp = minExpUnset
	s.mode = format.ModeFixedPrecision

	return prec
}

// SetAccuracy configures fixed-accuracy mode with the given absolute
// error tolerance. Only meaningful for floating scalar types; integer
// fields reject the mode at compress time. Returns the effective
// tolerance, a power of two no larger than the request.
func (s *Stream) SetAccuracy(tolerance float64) float64 {
	minExp := minExpUnset
	if tolerance > 0 {
		minExp = int(math.Floor(math.Log2(tolerance)))
	}

	s.minBits = 0
	s.maxBits = unboundedBits
	s.maxPrec = maxPrecision
	s.minExp = minExp
	s.mode = format.ModeFixedAccuracy

	if minExp == minExpUnset {
		return 0
	}

	return math.Ldexp(1, minExp)
}

// SetReversible selects the bit-exact pipeline: no truncation, full
// precision, and the exactly invertible block transform.
func (s *Stream) SetReversible() {
	s.minBits = 0
	s.maxBits = unboundedBits
	s.maxPrec = maxPrecision
	s.minExp = minExpUnset
	s.mode = format.ModeReversible
}

// SetParams installs expert-mode knobs directly, subject to the
// invariants: minbits <= maxbits, 1 <= maxprec <= 64, and minexp no
// lower than the deepest type floor.
func (s *Stream) SetParams(minBits, maxBits uint64, maxPrec uint, minExp int) error {
	if minBits > maxBits {
		return ErrInvalidParams
	}
	if maxPrec < 1 || maxPrec > maxPrecision {
		return ErrInvalidParams
	}
	if minExp < format.TypeFloat64.MinExpFloor() {
		return ErrInvalidParams
	}

	s.minBits = minBits
	s.maxBits = maxBits
	s.maxPrec = maxPrec
	s.minExp = minExp
	s.mode = format.ModeExpert

	return nil
}

// codecParams resolves the knobs against a concrete scalar type: the
// precision cap is clamped to the coefficient width and the exponent
// bound to the type floor.
func (s *Stream) codecParams(t format.ScalarType) codec.Params {
	maxPrec := s.maxPrec
	if w := t.Width(); maxPrec > w {
		maxPrec = w
	}

	minExp := s.minExp
	if floor := t.MinExpFloor(); minExp < floor {
		minExp = floor
	}

	return codec.Params{
		MinBits:    s.minBits,
		MaxBits:    s.maxBits,
		MaxPrec:    maxPrec,
		MinExp:     minExp,
		Reversible: s.mode == format.ModeReversible,
	}
}

// compatible reports whether the configured mode applies to the scalar
// type; fixed-accuracy requires a floating type.
func (s *Stream) compatible(t format.ScalarType) bool {
	return s.mode != format.ModeFixedAccuracy || t.IsFloat()
}

// MaxSize returns a conservative upper bound in bytes on the compressed
// size of the field under the stream's current configuration.
func MaxSize[T codec.Scalar](s *Stream, f *Field[T]) uint64 {
	t := scalarTypeOf[T]()

	var ebits uint
	switch t {
	case format.TypeFloat32:
		ebits = 8
	case format.TypeFloat64:
		ebits = 11
	}

	d := f.Dimensionality()
	perBlock := codec.MaxBlockBits(d, t.Width(), ebits)
	if s.maxBits < perBlock {
		perBlock = s.maxBits
	}
	if s.minBits > perBlock {
		perBlock = s.minBits
	}
	perBlock = (perBlock + bitstream.WordBits - 1) / bitstream.WordBits * bitstream.WordBits

	return perBlock * uint64(f.BlockCount()) / 8
}
