package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetFloat64Slice_ExactLength(t *testing.T) {
	s, cleanup := GetFloat64Slice(1000)
	defer cleanup()

	require.Len(t, s, 1000)
}

func TestGetFloat64Slice_ReuseAfterCleanup(t *testing.T) {
	s, cleanup := GetFloat64Slice(128)
	for i := range s {
		s[i] = float64(i)
	}
	cleanup()

	s2, cleanup2 := GetFloat64Slice(64)
	defer cleanup2()
	require.Len(t, s2, 64)
}

func TestGetFloat32Slice_ExactLength(t *testing.T) {
	s, cleanup := GetFloat32Slice(77)
	defer cleanup()

	require.Len(t, s, 77)
}

func TestGetUint64Slice_ExactLength(t *testing.T) {
	s, cleanup := GetUint64Slice(33)
	defer cleanup()

	require.Len(t, s, 33)
}

func TestGetUint64Slice_ZeroSize(t *testing.T) {
	s, cleanup := GetUint64Slice(0)
	defer cleanup()

	require.Len(t, s, 0)
}
