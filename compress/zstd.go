package compress

// ZstdCompressor provides Zstandard compression for packed tetra streams.
//
// Zstd trades compression speed for ratio, which suits cold storage and
// network transmission of compressed arrays. Two implementations back
// this type: the cgo build links libzstd via gozstd, and the pure-Go
// build falls back to klauspost/compress. The stored format is the same
// either way.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
