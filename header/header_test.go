package header

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tetra/format"
)

func sampleHeader() Header {
	return Header{
		Scalar:      format.TypeFloat64,
		Dims:        3,
		Mode:        format.ModeFixedRate,
		Compression: format.CompressionZstd,
		NX:          65,
		NY:          65,
		NZ:          65,
		MinBits:     256,
		MaxBits:     256,
		MaxPrec:     64,
		MinExp:      -1074,
		PayloadSize: 123456,
		PayloadCRC:  0xdeadbeef,
	}
}

func TestHeader_AppendTo_FixedSize(t *testing.T) {
	h := sampleHeader()
	buf := h.AppendTo(nil)

	require.Len(t, buf, Size)
	require.Equal(t, Magic[:], buf[:4])
	require.Equal(t, byte(Version), buf[4])
}

func TestHeader_ParseRoundTrip(t *testing.T) {
	h := sampleHeader()
	buf := h.AppendTo(nil)

	parsed, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, &h, parsed)
}

func TestParse_TooShort(t *testing.T) {
	_, err := Parse(make([]byte, Size-1))
	require.ErrorIs(t, err, ErrTooShort)
}

func TestParse_BadMagic(t *testing.T) {
	h := sampleHeader()
	buf := h.AppendTo(nil)
	buf[0] ^= 0xff

	_, err := Parse(buf)
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestParse_BadVersion(t *testing.T) {
	h := sampleHeader()
	buf := h.AppendTo(nil)
	buf[4] = 99

	_, err := Parse(buf)
	require.ErrorIs(t, err, ErrBadVersion)
}

func TestParse_RejectsOutOfRangeFields(t *testing.T) {
	h := sampleHeader()
	h.Dims = 5
	_, err := Parse(h.AppendTo(nil))
	require.ErrorIs(t, err, ErrBadField)

	h = sampleHeader()
	h.MaxPrec = 65
	_, err = Parse(h.AppendTo(nil))
	require.ErrorIs(t, err, ErrBadField)

	h = sampleHeader()
	h.Scalar = format.ScalarType(0x7f)
	_, err = Parse(h.AppendTo(nil))
	require.ErrorIs(t, err, ErrBadField)
}

func TestHeader_NegativeMinExpSurvives(t *testing.T) {
	h := sampleHeader()
	h.MinExp = -1074

	parsed, err := Parse(h.AppendTo(nil))
	require.NoError(t, err)
	require.Equal(t, int16(-1074), parsed.MinExp)
}
