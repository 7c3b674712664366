package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tetra/format"
)

// streamLikePayload builds bytes shaped like a packed fixed-rate stream:
// structured words with long zero-padding runs.
func streamLikePayload(n int) []byte {
	rng := rand.New(rand.NewSource(99))
	data := make([]byte, n)
	for i := 0; i < n; i += 32 {
		for j := 0; j < 12 && i+j < n; j++ {
			data[i+j] = byte(rng.Intn(256))
		}
	}

	return data
}

func TestGetCodec_AllTypes(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)
	}
}

func TestGetCodec_UnknownType(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x7f))
	require.Error(t, err)
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := streamLikePayload(64 * 1024)

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(payload, restored))
		})
	}
}

func TestCodecs_CompressibleDataShrinks(t *testing.T) {
	payload := streamLikePayload(64 * 1024)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(payload), ct.String())
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, restored, ct.String())
	}
}

func TestZstd_RejectsGarbage(t *testing.T) {
	codec, err := GetCodec(format.CompressionZstd)
	require.NoError(t, err)

	_, err = codec.Decompress([]byte("definitely not zstd data"))
	require.Error(t, err)
}

func TestCompressionStats_Ratios(t *testing.T) {
	stats := CompressionStats{
		Algorithm:      format.CompressionZstd,
		OriginalSize:   1000,
		CompressedSize: 250,
	}

	require.InDelta(t, 0.25, stats.CompressionRatio(), 1e-9)
	require.InDelta(t, 75.0, stats.SpaceSavings(), 1e-9)

	empty := CompressionStats{}
	require.Zero(t, empty.CompressionRatio())
}

func TestNoOp_SharesBacking(t *testing.T) {
	codec := NewNoOpCompressor()
	payload := []byte{1, 2, 3}

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, &payload[0], &compressed[0])
}
