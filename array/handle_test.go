package array

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRef_GetSetThroughCache(t *testing.T) {
	a, err := New2D[float64](16, 16, 32, nil, 0)
	require.NoError(t, err)

	r := a.Ref(1, 2, 0, 0)
	r.Set(3.5)

	require.Equal(t, 3.5, a.At(1, 2, 0, 0))
	require.Equal(t, 3.5, r.Get())
	require.Equal(t, a, r.Array())
	require.Equal(t, 1+16*2, r.Index())
}

func TestRef_AssignCopiesValue(t *testing.T) {
	a, err := New2D[float64](16, 16, 32, nil, 0)
	require.NoError(t, err)

	src := a.Ref(1, 2, 0, 0)
	dst := a.Ref(9, 14, 0, 0)

	src.Set(2.75)
	dst.Assign(src)

	require.Equal(t, 2.75, a.At(9, 14, 0, 0))
}

func TestRef_RevalidatesAfterEviction(t *testing.T) {
	// With a single cache slot, the referenced block is evicted between
	// accesses; the reference must still resolve.
	a, err := New2D[float64](32, 32, 32, smoothData(1024), 1)
	require.NoError(t, err)

	r := a.Ref(0, 0, 0, 0)
	first := r.Get()

	// Touch a block mapping to the same slot to force eviction.
	_ = a.At(31, 31, 0, 0)

	require.Equal(t, first, r.Get())
}

func TestPtr_DistanceMatchesFlatDifference(t *testing.T) {
	a, err := New3D[float64](10, 9, 8, 8, nil, 0)
	require.NoError(t, err)

	p := a.Ptr(1, 2, 1, 0)
	q := a.Ptr(2, 1, 2, 0)

	flatP := 1 + 10*2 + 90*1
	flatQ := 2 + 10*1 + 90*2

	require.Equal(t, flatQ-flatP, p.Diff(q))
	require.Equal(t, flatP-flatQ, q.Diff(p))
}

func TestPtr_Ordering(t *testing.T) {
	a, err := New2D[float64](8, 8, 16, nil, 0)
	require.NoError(t, err)

	p := a.Ptr(1, 1, 0, 0)
	q := a.Ptr(2, 2, 0, 0)

	require.True(t, p.Less(q))
	require.False(t, q.Less(p))
	require.True(t, p.Equal(p))
	require.False(t, p.Equal(q))
}

func TestPtr_ArithmeticWalksFlatOrder(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = float64(i)
	}
	a, err := New2D[float64](8, 8, 64, data, 0)
	require.NoError(t, err)

	p := a.PtrFlat(0)
	for i := 0; i < 64; i++ {
		require.InDelta(t, float64(i), p.Get(), 1e-6, "position %d", i)
		p = p.Inc()
	}

	p = a.PtrFlat(20)
	require.Equal(t, 10, p.Sub(10).Ref().Index())
	require.Equal(t, 25, p.Add(5).Ref().Index())
	require.Equal(t, 5, p.Diff(p.Add(5)))
}

func TestPtr_CoordinateAccessors(t *testing.T) {
	a, err := New4D[float64](5, 4, 3, 2, 8, nil, 0)
	require.NoError(t, err)

	p := a.Ptr(3, 2, 1, 1)
	require.Equal(t, 3, p.I())
	require.Equal(t, 2, p.J())
	require.Equal(t, 1, p.K())
	require.Equal(t, 1, p.L())
}

func TestPtr_RefAt(t *testing.T) {
	a, err := New1D[float64](16, 16, nil, 0)
	require.NoError(t, err)

	p := a.Ptr(2, 0, 0, 0)
	r := p.RefAt(10)
	require.Equal(t, 12, r.Index())
}
