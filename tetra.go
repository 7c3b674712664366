// Package tetra implements a lossy compressor for one- to
// four-dimensional arrays of 32- and 64-bit integers and floats, with
// fast block-local random access. Arrays are partitioned into fixed
// 4^d-sample blocks; each block is transformed into a near-decorrelated
// integer representation and coded as an embedded bit stream that may
// be truncated to a user-chosen rate.
//
// # Core concepts
//
//   - Field: metadata for an uncompressed array (type, dimensions,
//     strides, backing slice). Fields never own the data they point at.
//   - Stream: the codec parameter block. Mode setters (SetRate,
//     SetPrecision, SetAccuracy, SetReversible, SetParams) translate
//     user intent into the four numeric knobs and return the actual
//     effective parameter.
//   - Compress/Decompress: the block drivers. Blocks are coded
//     independently, so fixed-rate streams support O(1) random access
//     by block index.
//   - array.Array: a mutable compressed-array container with a
//     write-back block cache, proxy references, pointers and iterators
//     (see the array subpackage).
//
// # Basic usage
//
//	data := make([]float64, 64*64)
//	// ... fill data ...
//	field := tetra.NewField2D(data, 64, 64)
//
//	stream, _ := tetra.NewStream(tetra.WithFixedRate(16, 2))
//	bits, err := tetra.Compress(stream, field)
//	if err != nil {
//	    return err
//	}
//	compressed := stream.BitStream().Bytes()
//
// Decompression reverses the flow:
//
//	out := tetra.NewField2D(make([]float64, 64*64), 64, 64)
//	stream.BitStream().Rewind()
//	_, err = tetra.Decompress(stream, out)
//
// The core entry points are header-less; callers round-trip parameters
// out of band. Pack and Unpack provide the optional self-describing
// container with a tagged header, CRC32 payload checksum and optional
// whole-buffer compression.
//
// Compression never preserves NaN or infinities, and blocks that mix
// very large magnitude gaps lose small samples to the shared block
// exponent.
package tetra
