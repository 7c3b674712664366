package codec

import "math"

// Float samples are mapped onto a common fixed-point scale before the
// transform: every sample is multiplied by 2^(q-emax), where emax is the
// largest binary exponent in the block, and rounded to nearest. Integer
// sample types skip this stage; they behave as if emax were q.

// blockExponent returns the maximum floor(log2(|x|)) over the block and
// whether the block holds any nonzero sample. The exponent is clamped to
// the smallest value the biased exponent field can carry, which also
// keeps the all-zero bias code free as an escape marker.
func blockExponent[F Float](block []F, tr traits) (int, bool) {
	emax := 0
	has := false

	for _, x := range block {
		f := math.Abs(float64(x))
		if f == 0 {
			continue
		}
		_, e := math.Frexp(f)
		if !has || e-1 > emax {
			emax = e - 1
		}
		has = true
	}

	if has && emax < 1-tr.ebias {
		emax = 1 - tr.ebias
	}

	return emax, has
}

// fwdCast scales the block into signed fixed-point coefficients.
func fwdCast[F Float, I blockInt](dst []I, src []F, emax int, tr traits) {
	for i, x := range src {
		dst[i] = I(math.Round(math.Ldexp(float64(x), tr.q-emax)))
	}
}

// invCast undoes fwdCast.
func invCast[F Float, I blockInt](dst []F, src []I, emax int, tr traits) {
	for i, v := range src {
		dst[i] = F(math.Ldexp(float64(v), emax-tr.q))
	}
}

// castExact reports whether fwdCast followed by invCast reproduces every
// sample bit for bit. The reversible pipeline probes this before falling
// back to the raw-bits escape.
func castExact[F Float, I blockInt](block []F, emax int, tr traits) bool {
	for _, x := range block {
		v := I(math.Round(math.Ldexp(float64(x), tr.q-emax)))
		if F(math.Ldexp(float64(v), emax-tr.q)) != x {
			return false
		}
	}

	return true
}

// fwdReinterpret moves the raw IEEE bits of each sample into a signed
// coefficient. Any bijection would do for bit-exactness; reinterpreting
// the two's-complement pattern keeps the mapping trivial.
func fwdReinterpret[F Float, I blockInt](dst []I, src []F) {
	switch s := any(src).(type) {
	case []float32:
		d := any(dst).([]int32)
		for i, x := range s {
			d[i] = int32(math.Float32bits(x))
		}
	case []float64:
		d := any(dst).([]int64)
		for i, x := range s {
			d[i] = int64(math.Float64bits(x))
		}
	}
}

// invReinterpret undoes fwdReinterpret.
func invReinterpret[F Float, I blockInt](dst []F, src []I) {
	switch d := any(dst).(type) {
	case []float32:
		s := any(src).([]int32)
		for i, v := range s {
			d[i] = math.Float32frombits(uint32(v))
		}
	case []float64:
		s := any(src).([]int64)
		for i, v := range s {
			d[i] = math.Float64frombits(uint64(v))
		}
	}
}
