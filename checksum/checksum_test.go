package checksum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum64_Deterministic(t *testing.T) {
	data := []byte("tetra conformance payload")

	require.Equal(t, Sum64(data), Sum64(data))
	require.NotEqual(t, Sum64(data), Sum64(data[1:]))
}

func TestCRC32_KnownValue(t *testing.T) {
	// IEEE CRC32 of "123456789" is the classic check value.
	require.Equal(t, uint32(0xcbf43926), CRC32([]byte("123456789")))
}

func TestSamples_TypesHashIndependently(t *testing.T) {
	f64 := []float64{1, 2, 3}
	f32 := []float32{1, 2, 3}
	i64 := []int64{1, 2, 3}
	i32 := []int32{1, 2, 3}

	digests := map[uint64]bool{
		Samples(f64): true,
		Samples(f32): true,
		Samples(i64): true,
		Samples(i32): true,
	}
	require.Len(t, digests, 4)
}

func TestSamples_Deterministic(t *testing.T) {
	vals := make([]float64, 10000)
	for i := range vals {
		vals[i] = float64(i) * 0.37
	}

	require.Equal(t, Samples(vals), Samples(vals))

	vals[9999] += 1e-12
	require.NotEqual(t, Samples(vals), Samples(vals[:9999]))
}

func TestSamples_EmptySlice(t *testing.T) {
	require.Equal(t, Samples([]float64(nil)), Samples([]float64{}))
}

func TestSamples_MatchesManualEncoding(t *testing.T) {
	// A single float64 hashes as its 8 little-endian IEEE bytes.
	one := []float64{1.0}
	manual := []byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f}

	require.Equal(t, Sum64(manual), Samples(one))
}
