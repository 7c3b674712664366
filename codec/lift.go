package codec

// The lossy pipeline uses a separable lifted integer transform with a
// near-orthogonal length-4 kernel; the reversible pipeline substitutes
// the high-order Lorenzo difference transform, whose lifting steps are
// exactly invertible. Both operate in two's-complement wraparound
// arithmetic at the coefficient width.

// fwdLift applies the forward length-4 kernel to the line starting at
// base with the given stride.
func fwdLift[I blockInt](p []I, base, s int) {
	x := p[base]
	y := p[base+s]
	z := p[base+2*s]
	w := p[base+3*s]

	x += w
	x >>= 1
	w -= x
	z += y
	z >>= 1
	y -= z
	x += z
	x >>= 1
	z -= x
	w += y
	w >>= 1
	y -= w
	w += y >> 1
	y -= w >> 1

	p[base] = x
	p[base+s] = y
	p[base+2*s] = z
	p[base+3*s] = w
}

// invLift runs the lifting steps of fwdLift in reverse order.
func invLift[I blockInt](p []I, base, s int) {
	x := p[base]
	y := p[base+s]
	z := p[base+2*s]
	w := p[base+3*s]

	y += w >> 1
	w -= y >> 1
	y += w
	w <<= 1
	w -= y
	z += x
	x <<= 1
	x -= z
	y += z
	z <<= 1
	z -= y
	w += x
	x <<= 1
	x -= w

	p[base] = x
	p[base+s] = y
	p[base+2*s] = z
	p[base+3*s] = w
}

// fwdLiftRev applies the forward Lorenzo kernel: repeated neighbor
// differences. Every step is an exact integer lifting step, so the
// kernel is invertible without loss.
func fwdLiftRev[I blockInt](p []I, base, s int) {
	x := p[base]
	y := p[base+s]
	z := p[base+2*s]
	w := p[base+3*s]

	w -= z
	z -= y
	y -= x
	w -= z
	z -= y
	w -= z

	p[base] = x
	p[base+s] = y
	p[base+2*s] = z
	p[base+3*s] = w
}

// invLiftRev undoes fwdLiftRev exactly.
func invLiftRev[I blockInt](p []I, base, s int) {
	x := p[base]
	y := p[base+s]
	z := p[base+2*s]
	w := p[base+3*s]

	w += z
	z += y
	w += z
	y += x
	z += y
	w += z

	p[base] = x
	p[base+s] = y
	p[base+2*s] = z
	p[base+3*s] = w
}

type liftFunc[I blockInt] func(p []I, base, s int)

// forEachLine invokes lift once per length-4 line along the given axis
// of a 4^d block.
func forEachLine[I blockInt](p []I, d uint, axis uint, lift liftFunc[I]) {
	stride := 1 << (2 * axis)
	n := BlockSize(d)

	// Lines along `axis` start at every index whose axis coordinate is 0.
	for base := 0; base < n; base++ {
		if (base>>(2*axis))&3 == 0 {
			lift(p, base, stride)
		}
	}
}

// fwdXform decorrelates a block along each of its d axes.
func fwdXform[I blockInt](p []I, d uint, reversible bool) {
	lift := fwdLift[I]
	if reversible {
		lift = fwdLiftRev[I]
	}

	for axis := uint(0); axis < d; axis++ {
		forEachLine(p, d, axis, lift)
	}
}

// invXform undoes fwdXform, visiting axes in reverse order.
func invXform[I blockInt](p []I, d uint, reversible bool) {
	lift := invLift[I]
	if reversible {
		lift = invLiftRev[I]
	}

	for axis := int(d) - 1; axis >= 0; axis-- {
		forEachLine(p, d, uint(axis), lift)
	}
}
