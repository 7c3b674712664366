package tetra

import (
	"github.com/arloliu/tetra/codec"
	"github.com/arloliu/tetra/format"
)

// Field describes an uncompressed array: scalar type, dimensions,
// strides in scalars, and the caller-owned backing slice. A field never
// owns the data it points at.
//
// Dimensions of size zero are absent; dimensionality equals the count of
// non-zero sizes, and data is always embedded in the lowest dimensions.
// Strides default to row-major with x fastest and may be negative; the
// origin locates element (0, 0, 0, 0) within the backing slice so that
// reversed axes stay in bounds.
type Field[T codec.Scalar] struct {
	data           []T
	origin         int
	nx, ny, nz, nw int
	sx, sy, sz, sw int
}

// NewField1D describes a one-dimensional array of nx scalars.
func NewField1D[T codec.Scalar](data []T, nx int) *Field[T] {
	return newField(data, nx, 0, 0, 0)
}

// NewField2D describes an nx by ny array with x varying fastest.
func NewField2D[T codec.Scalar](data []T, nx, ny int) *Field[T] {
	return newField(data, nx, ny, 0, 0)
}

// NewField3D describes an nx by ny by nz array with x varying fastest.
func NewField3D[T codec.Scalar](data []T, nx, ny, nz int) *Field[T] {
	return newField(data, nx, ny, nz, 0)
}

// NewField4D describes an nx by ny by nz by nw array with x varying fastest.
func NewField4D[T codec.Scalar](data []T, nx, ny, nz, nw int) *Field[T] {
	return newField(data, nx, ny, nz, nw)
}

func newField[T codec.Scalar](data []T, nx, ny, nz, nw int) *Field[T] {
	f := &Field[T]{data: data, nx: nx, ny: ny, nz: nz, nw: nw}
	f.setDefaultStrides()

	return f
}

func (f *Field[T]) setDefaultStrides() {
	f.sx = 1
	f.sy = f.nx
	f.sz = f.nx * max(f.ny, 1)
	f.sw = f.nx * max(f.ny, 1) * max(f.nz, 1)
}

// SetStrides overrides the default row-major strides. Strides are in
// scalar elements and may be negative. Absent dimensions ignore their
// stride.
func (f *Field[T]) SetStrides(sx, sy, sz, sw int) {
	f.sx, f.sy, f.sz, f.sw = sx, sy, sz, sw
}

// SetOrigin positions element (0, 0, 0, 0) at the given index of the
// backing slice. Required for negative strides.
func (f *Field[T]) SetOrigin(origin int) {
	f.origin = origin
}

// Data returns the backing slice.
func (f *Field[T]) Data() []T {
	return f.data
}

// Dimensionality returns the number of non-zero dimensions.
func (f *Field[T]) Dimensionality() uint {
	switch {
	case f.nw > 0:
		return 4
	case f.nz > 0:
		return 3
	case f.ny > 0:
		return 2
	case f.nx > 0:
		return 1
	default:
		return 0
	}
}

// Size returns the total number of samples.
func (f *Field[T]) Size() int {
	n := f.nx
	for _, m := range []int{f.ny, f.nz, f.nw} {
		if m > 0 {
			n *= m
		}
	}

	return n
}

// BlockCount returns the number of 4^d blocks covering the field,
// counting partial edge blocks.
func (f *Field[T]) BlockCount() int {
	bx := (f.nx + 3) / 4
	n := bx
	for _, m := range []int{f.ny, f.nz, f.nw} {
		if m > 0 {
			n *= (m + 3) / 4
		}
	}

	return n
}

// ScalarType reports the scalar type tag of T.
func (f *Field[T]) ScalarType() format.ScalarType {
	return scalarTypeOf[T]()
}

func scalarTypeOf[T codec.Scalar]() format.ScalarType {
	var z T
	switch any(z).(type) {
	case int32:
		return format.TypeInt32
	case int64:
		return format.TypeInt64
	case float32:
		return format.TypeFloat32
	case float64:
		return format.TypeFloat64
	default:
		return 0
	}
}

// validate checks dimension consistency and that in-range indices stay
// within the backing slice.
func (f *Field[T]) validate() error {
	if f.nx <= 0 {
		return ErrInvalidField
	}
	if f.ny == 0 && (f.nz > 0 || f.nw > 0) {
		return ErrInvalidField
	}
	if f.nz == 0 && f.nw > 0 {
		return ErrInvalidField
	}

	// Probe the extreme corners of the index space.
	lo, hi := f.origin, f.origin
	span := func(n, s int) {
		if n > 1 {
			if ext := (n - 1) * s; ext > 0 {
				hi += ext
			} else {
				lo += ext
			}
		}
	}
	span(f.nx, f.sx)
	if f.ny > 0 {
		span(f.ny, f.sy)
	}
	if f.nz > 0 {
		span(f.nz, f.sz)
	}
	if f.nw > 0 {
		span(f.nw, f.sw)
	}

	if lo < 0 || hi >= len(f.data) {
		return ErrInvalidField
	}

	return nil
}

// index returns the slice position of sample (i, j, k, l).
func (f *Field[T]) index(i, j, k, l int) int {
	return f.origin + i*f.sx + j*f.sy + k*f.sz + l*f.sw
}
