package compress

// NoOpCompressor provides a no-operation compressor that bypasses data
// without compression. Useful when the stream is stored raw, when random
// block access into the stored bytes matters more than size, and as a
// baseline for benchmarks.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor that bypasses data.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is, without processing or copying.
//
// Note: The returned slice shares the same underlying memory as the
// input. Callers should not modify the input data after calling this
// method if they plan to use the returned slice.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without processing or copying.
//
// Note: The returned slice shares the same underlying memory as the
// input.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
