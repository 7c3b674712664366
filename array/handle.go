package array

// Ref is a proxy reference to one array element: a handle carrying the
// owning array and a flat row-major index. It borrows logically from
// the array and revalidates through the cache on every access rather
// than pinning decoded memory.
type Ref[T Float] struct {
	arr  *Array[T]
	flat int
}

// Ref returns a proxy reference to element (i, j, k, l).
func (a *Array[T]) Ref(i, j, k, l int) Ref[T] {
	return Ref[T]{arr: a, flat: a.flat(i, j, k, l)}
}

// RefFlat returns a proxy reference to a flat row-major index.
func (a *Array[T]) RefFlat(idx int) Ref[T] {
	return Ref[T]{arr: a, flat: idx}
}

// Array returns the owning array.
func (r Ref[T]) Array() *Array[T] {
	return r.arr
}

// Index returns the flat row-major index the reference designates.
func (r Ref[T]) Index() int {
	return r.flat
}

// Get reads the referenced element through the cache.
func (r Ref[T]) Get() T {
	return r.arr.AtFlat(r.flat)
}

// Set writes the referenced element through the cache.
func (r Ref[T]) Set(v T) {
	r.arr.SetFlat(r.flat, v)
}

// Assign copies the value of src into the element r designates.
func (r Ref[T]) Assign(src Ref[T]) {
	r.Set(src.Get())
}

// Ptr returns a proxy pointer positioned at the referenced element.
func (r Ref[T]) Ptr() Ptr[T] {
	return Ptr[T]{ref: r}
}

// Ptr is a proxy pointer: a reference plus pointer arithmetic in flat
// row-major order. Two pointers into the same array are orderable by
// flat index.
type Ptr[T Float] struct {
	ref Ref[T]
}

// Ptr returns a proxy pointer to element (i, j, k, l).
func (a *Array[T]) Ptr(i, j, k, l int) Ptr[T] {
	return Ptr[T]{ref: a.Ref(i, j, k, l)}
}

// PtrFlat returns a proxy pointer to a flat row-major index.
func (a *Array[T]) PtrFlat(idx int) Ptr[T] {
	return Ptr[T]{ref: a.RefFlat(idx)}
}

// Ref returns the reference the pointer currently designates.
func (p Ptr[T]) Ref() Ref[T] {
	return p.ref
}

// RefAt returns the reference n elements past the pointer.
func (p Ptr[T]) RefAt(n int) Ref[T] {
	return Ref[T]{arr: p.ref.arr, flat: p.ref.flat + n}
}

// Get reads the pointed-to element.
func (p Ptr[T]) Get() T {
	return p.ref.Get()
}

// Set writes the pointed-to element.
func (p Ptr[T]) Set(v T) {
	p.ref.Set(v)
}

// Add returns a pointer advanced by n elements in flat order.
func (p Ptr[T]) Add(n int) Ptr[T] {
	return Ptr[T]{ref: p.RefAt(n)}
}

// Sub returns a pointer moved back by n elements in flat order.
func (p Ptr[T]) Sub(n int) Ptr[T] {
	return p.Add(-n)
}

// Inc returns the next pointer in flat order.
func (p Ptr[T]) Inc() Ptr[T] {
	return p.Add(1)
}

// Dec returns the previous pointer in flat order.
func (p Ptr[T]) Dec() Ptr[T] {
	return p.Add(-1)
}

// Diff returns q's flat index minus p's flat index.
func (p Ptr[T]) Diff(q Ptr[T]) int {
	return q.ref.flat - p.ref.flat
}

// Less orders two pointers into the same array by flat index.
func (p Ptr[T]) Less(q Ptr[T]) bool {
	return p.ref.flat < q.ref.flat
}

// Equal reports whether two pointers designate the same element of the
// same array.
func (p Ptr[T]) Equal(q Ptr[T]) bool {
	return p.ref.arr == q.ref.arr && p.ref.flat == q.ref.flat
}

// I returns the x coordinate of the pointed-to element.
func (p Ptr[T]) I() int {
	i, _, _, _ := p.ref.arr.coords(p.ref.flat)

	return i
}

// J returns the y coordinate of the pointed-to element.
func (p Ptr[T]) J() int {
	_, j, _, _ := p.ref.arr.coords(p.ref.flat)

	return j
}

// K returns the z coordinate of the pointed-to element.
func (p Ptr[T]) K() int {
	_, _, k, _ := p.ref.arr.coords(p.ref.flat)

	return k
}

// L returns the w coordinate of the pointed-to element.
func (p Ptr[T]) L() int {
	_, _, _, l := p.ref.arr.coords(p.ref.flat)

	return l
}
