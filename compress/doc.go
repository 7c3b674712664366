// Package compress provides whole-buffer compression codecs for packed
// tetra streams.
//
// The block codec already removes numerical redundancy; this package
// implements an optional second stage that squeezes the remaining
// structural redundancy (group-test patterns, fixed-rate padding runs,
// repeated exponent fields) with a general-purpose algorithm before the
// bytes go to storage or the network.
//
// Supported algorithms:
//   - None: No compression (fastest, preserves in-place block addressing)
//   - Zstd: Excellent compression ratio, moderate speed
//   - S2: Balanced compression and speed
//   - LZ4: Fast decompression, moderate compression
//
// Container compression necessarily gives up random block access into
// the stored bytes; callers that need O(1) block addressing keep
// CompressionNone and rely on fixed-rate alignment instead.
//
// Select a codec through GetCodec with a format.CompressionType, or
// construct one directly:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	stored, err := codec.Compress(streamBytes)
//	streamBytes, err = codec.Decompress(stored)
package compress
