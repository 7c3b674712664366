package tetra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tetra/format"
	"github.com/arloliu/tetra/header"
)

func TestPack_RoundTripAcrossCodecs(t *testing.T) {
	data := smooth2D(33, 21)

	for _, compression := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(compression.String(), func(t *testing.T) {
			s, _ := NewStream(WithFixedRate(32, 2))
			packed, err := Pack(s, NewField2D(data, 33, 21), compression)
			require.NoError(t, err)
			require.Greater(t, len(packed), header.Size)

			f, h, err := Unpack[float64](packed)
			require.NoError(t, err)
			require.Equal(t, format.TypeFloat64, h.Scalar)
			require.Equal(t, uint8(2), h.Dims)
			require.Equal(t, format.ModeFixedRate, h.Mode)
			require.Equal(t, uint32(33), h.NX)
			require.Equal(t, uint32(21), h.NY)

			decoded := f.Data()
			for i := range data {
				require.InDelta(t, data[i], decoded[i], 1e-5)
			}
		})
	}
}

func TestPack_ReversibleRoundTripExact(t *testing.T) {
	data := make([]int64, 5*6*7)
	for i := range data {
		data[i] = int64(i*i) - 40_000
	}

	s, _ := NewStream(WithReversible())
	packed, err := Pack(s, NewField3D(data, 5, 6, 7), format.CompressionZstd)
	require.NoError(t, err)

	f, h, err := Unpack[int64](packed)
	require.NoError(t, err)
	require.Equal(t, format.ModeReversible, h.Mode)
	require.Equal(t, data, f.Data())
}

func TestUnpack_CorruptedPayloadDetected(t *testing.T) {
	data := smooth2D(16, 16)
	s, _ := NewStream(WithFixedRate(16, 2))
	packed, err := Pack(s, NewField2D(data, 16, 16), format.CompressionNone)
	require.NoError(t, err)

	packed[header.Size+3] ^= 0xff
	_, _, err = Unpack[float64](packed)
	require.ErrorIs(t, err, header.ErrChecksumMism)
}

func TestUnpack_ScalarTypeMismatchRejected(t *testing.T) {
	data := smooth2D(8, 8)
	s, _ := NewStream(WithFixedRate(16, 2))
	packed, err := Pack(s, NewField2D(data, 8, 8), format.CompressionNone)
	require.NoError(t, err)

	_, _, err = Unpack[float32](packed)
	require.ErrorIs(t, err, ErrScalarMismatch)
}

func TestUnpack_AccuracyModeSurvivesContainer(t *testing.T) {
	data := smooth2D(24, 24)
	tol := 1e-4

	s, _ := NewStream(WithFixedAccuracy(tol))
	packed, err := Pack(s, NewField2D(data, 24, 24), format.CompressionS2)
	require.NoError(t, err)

	f, h, err := Unpack[float64](packed)
	require.NoError(t, err)
	require.Equal(t, format.ModeFixedAccuracy, h.Mode)

	decoded := f.Data()
	for i := range data {
		require.LessOrEqual(t, math.Abs(decoded[i]-data[i]), tol)
	}
}
