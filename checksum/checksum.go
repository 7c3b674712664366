// Package checksum provides the deterministic data hashes used for
// conformance testing: a 64-bit xxHash digest for sample data and a
// CRC32 digest for compressed stream bytes. Two runs that produce the
// same digest produced the same bytes.
package checksum

import (
	"hash/crc32"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/tetra/codec"
	"github.com/arloliu/tetra/endian"
	"github.com/arloliu/tetra/internal/pool"
)

func floatBits32(x float32) uint32 {
	return math.Float32bits(x)
}

func floatBits64(x float64) uint64 {
	return math.Float64bits(x)
}

// Sum64 computes the xxHash64 of the given bytes.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// CRC32 computes the IEEE CRC32 of the given bytes, the digest the
// conformance scenarios compare compressed streams with.
func CRC32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// Samples computes the xxHash64 of a sample slice over its canonical
// little-endian byte representation, making the digest identical across
// hosts of either byte order.
func Samples[T codec.Scalar](values []T) uint64 {
	engine := endian.GetLittleEndianEngine()
	buf := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(buf)

	d := xxhash.New()
	for i := 0; i < len(values); i += 4096 {
		end := min(i+4096, len(values))
		buf.Reset()
		b := buf.Bytes()
		for _, v := range values[i:end] {
			switch x := any(v).(type) {
			case int32:
				b = engine.AppendUint32(b, uint32(x))
			case int64:
				b = engine.AppendUint64(b, uint64(x))
			case float32:
				b = engine.AppendUint32(b, floatBits32(x))
			case float64:
				b = engine.AppendUint64(b, floatBits64(x))
			}
		}
		_, _ = d.Write(b)
		// Keep the grown backing for the next chunk.
		buf.SetBytes(b[:0])
	}

	return d.Sum64()
}
