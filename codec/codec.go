// Package codec implements the per-block forward and inverse pipeline:
// float to fixed-point mapping, the decorrelating transform, coefficient
// ordering, the signed-to-unsigned coefficient map, and the embedded
// bit-plane coder.
//
// A block is a 4^d tile of scalars, d in 1..4. Blocks are self-contained:
// no state crosses block boundaries, which is what permits block-granular
// random access. The codec is generic over the four scalar types; the
// compiler specializes the inner loops per (dimension, type) pair.
package codec

import (
	"github.com/arloliu/tetra/bitstream"
)

// Scalar is the set of sample types a block may hold.
type Scalar interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// Float is the subset of Scalar with an IEEE 754 representation.
type Float interface {
	~float32 | ~float64
}

// blockInt is the coefficient type a block transforms into: int32 for
// 32-bit scalars, int64 for 64-bit scalars. All transform arithmetic is
// two's-complement wraparound at this width.
type blockInt interface {
	~int32 | ~int64
}

// Params holds the four numeric knobs plus the reversible-pipeline flag.
// The mode policy in the root package translates user intent into these
// values; the codec itself only consumes them.
type Params struct {
	MinBits    uint64 // lower bound on encoded bits per block
	MaxBits    uint64 // upper bound on encoded bits per block
	MaxPrec    uint   // upper bound on bit planes kept per coefficient
	MinExp     int    // smallest block exponent still encoded
	Reversible bool   // bit-exact pipeline
}

// traits describes a scalar type to the generic block engine.
type traits struct {
	width uint // coefficient width in bits (32 or 64)
	q     int  // fixed-point precision: scaled samples carry q fraction bits
	ebits uint // exponent field width (0 for integer types)
	ebias int  // exponent bias added before emitting the field
}

// Float samples are scaled by 2^(q−emax) with emax = floor(log2 max|x|),
// so scaled magnitudes stay below 2^(q+1). With q three less than the
// coefficient width, one bit below the sign bit is left free for the
// sums of the forward lift.
var (
	traitsFloat32 = traits{width: 32, q: 29, ebits: 8, ebias: 128}
	traitsFloat64 = traits{width: 64, q: 61, ebits: 11, ebias: 1024}
	traitsInt32   = traits{width: 32, q: 30}
	traitsInt64   = traits{width: 64, q: 62}
)

// BlockSize returns the number of samples in a block of the given
// dimensionality: 4^d.
func BlockSize(d uint) int {
	return 1 << (2 * d)
}

// MaxBlockBits returns a conservative upper bound on the encoded size of
// one block of the given dimensionality and scalar type, in bits. The
// bound covers the has-data bit, the exponent field, every bit plane of
// every coefficient, and all group-test bits.
func MaxBlockBits(d uint, width uint, ebits uint) uint64 {
	n := uint64(BlockSize(d))
	planes := uint64(width)

	return 1 + uint64(ebits) + planes*(n+n/4)
}

// EncodeBlock encodes one full 4^d block of samples onto the stream and
// returns the number of bits written, including padding to MinBits.
//
// The caller gathers (and pads) the block; len(block) must be 4^d.
func EncodeBlock[T Scalar](bs *bitstream.Stream, p Params, d uint, block []T) uint64 {
	switch blk := any(block).(type) {
	case []int32:
		return encodeInt[int32](bs, p, d, blk, traitsInt32)
	case []int64:
		return encodeInt[int64](bs, p, d, blk, traitsInt64)
	case []float32:
		return encodeFloat[float32, int32](bs, p, d, blk, traitsFloat32)
	case []float64:
		return encodeFloat[float64, int64](bs, p, d, blk, traitsFloat64)
	default:
		return 0
	}
}

// DecodeBlock decodes one full 4^d block of samples from the stream and
// returns the number of bits consumed, including skipped padding. Bits
// absent from a truncated stream decode as zero coefficients.
func DecodeBlock[T Scalar](bs *bitstream.Stream, p Params, d uint, block []T) uint64 {
	switch blk := any(block).(type) {
	case []int32:
		return decodeInt[int32](bs, p, d, blk, traitsInt32)
	case []int64:
		return decodeInt[int64](bs, p, d, blk, traitsInt64)
	case []float32:
		return decodeFloat[float32, int32](bs, p, d, blk, traitsFloat32)
	case []float64:
		return decodeFloat[float64, int64](bs, p, d, blk, traitsFloat64)
	default:
		return 0
	}
}
