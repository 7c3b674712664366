package compress

import "github.com/klauspost/compress/s2"

// S2Compressor provides S2 compression for packed tetra streams.
//
// S2 balances ratio against speed, making it the usual pick when packed
// arrays move over the network or land in warm storage: fixed-rate
// padding runs and repeated group-test patterns compress well without
// the encoder becoming the bottleneck of a Pack call.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the stream bytes using S2 block compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses S2-compressed stream bytes. The original
// length is recovered from the S2 framing itself.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
