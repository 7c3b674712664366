package codec

import "github.com/arloliu/tetra/bitstream"

// Per-block bit layout, in write order:
//
//  1. one "block has data" bit; 0 means the block is all zero and the
//     encoding stops (padding aside);
//  2. floats only: the biased block exponent, 8 bits for binary32 and
//     11 for binary64 (all-zero bias code marks the reversible raw-bits
//     escape);
//  3. the embedded bit-plane code;
//  4. zero padding up to MinBits.
//
// The MaxBits budget covers all four parts.

func padMin(bs *bitstream.Stream, b *bitBudget, p Params) uint64 {
	if b.used < p.MinBits {
		bs.Pad(p.MinBits - b.used)
		b.used = p.MinBits
	}

	return b.used
}

func skipMin(bs *bitstream.Stream, b *bitBudget, p Params) uint64 {
	if b.used < p.MinBits {
		bs.Skip(p.MinBits - b.used)
		b.used = p.MinBits
	}

	return b.used
}

// planeFloorFloat returns the lowest bit plane encoded for a float block
// with the given exponent: bounded by MaxPrec planes and by the absolute
// error floor 2^MinExp. The floor keeps 2d guard planes below the
// nominal cutoff to absorb the inverse transform's error gain, so the
// decoded infinity-norm error stays within the tolerance that chose
// MinExp.
func planeFloorFloat(p Params, tr traits, emax int, d uint) int {
	pmin := 0
	if int(tr.width) > int(p.MaxPrec) {
		pmin = int(tr.width) - int(p.MaxPrec)
	}
	if byExp := tr.q + p.MinExp - emax - 2*int(d); byExp > pmin {
		pmin = byExp
	}

	return pmin
}

// planeFloorInt is the integer-type counterpart. Integer samples carry an
// implicit exponent of q, so the MinExp bound reduces to MinExp itself
// and the type floor of zero makes precision reduction behave uniformly.
func planeFloorInt(p Params, tr traits) int {
	pmin := 0
	if int(tr.width) > int(p.MaxPrec) {
		pmin = int(tr.width) - int(p.MaxPrec)
	}
	if p.MinExp > pmin {
		pmin = p.MinExp
	}

	return pmin
}

func encodeFloat[F Float, I blockInt](bs *bitstream.Stream, p Params, d uint, block []F, tr traits) uint64 {
	b := &bitBudget{limit: p.MaxBits}

	emax, has := blockExponent(block, tr)
	if !has || (!p.Reversible && emax < p.MinExp) {
		b.write(bs, 0, 1)

		return padMin(bs, b, p)
	}
	b.write(bs, 1, 1)

	var cbuf [256]I
	ib := cbuf[:BlockSize(d)]

	if p.Reversible && !castExact[F, I](block, emax, tr) {
		// Raw-bits escape: the zero bias code tells the decoder the
		// coefficients are reinterpreted IEEE bits.
		b.write(bs, 0, tr.ebits)
		fwdReinterpret[F](ib, block)
	} else {
		b.write(bs, uint64(emax+tr.ebias), tr.ebits)
		fwdCast(ib, block, emax, tr)
	}

	fwdXform(ib, d, p.Reversible)

	var ubuf [256]uint64
	u := ubuf[:len(ib)]
	fwdOrder(ib, u, d, tr.width)

	pmin := 0
	if !p.Reversible {
		pmin = planeFloorFloat(p, tr, emax, d)
	}
	encodePlanes(bs, b, u, tr.width, pmin)

	return padMin(bs, b, p)
}

func decodeFloat[F Float, I blockInt](bs *bitstream.Stream, p Params, d uint, block []F, tr traits) uint64 {
	b := &bitBudget{limit: p.MaxBits}

	if b.read(bs, 1) == 0 {
		clear(block)

		return skipMin(bs, b, p)
	}

	biased := b.read(bs, tr.ebits)
	reinterpreted := p.Reversible && biased == 0
	emax := int(biased) - tr.ebias

	pmin := 0
	if !p.Reversible {
		pmin = planeFloorFloat(p, tr, emax, d)
	}

	var ubuf [256]uint64
	u := ubuf[:BlockSize(d)]
	decodePlanes(bs, b, u, tr.width, pmin)

	var cbuf [256]I
	ib := cbuf[:len(u)]
	invOrder(u, ib, d, tr.width)
	invXform(ib, d, p.Reversible)

	if reinterpreted {
		invReinterpret(block, ib)
	} else {
		invCast(block, ib, emax, tr)
	}

	return skipMin(bs, b, p)
}

func encodeInt[I blockInt](bs *bitstream.Stream, p Params, d uint, block []I, tr traits) uint64 {
	b := &bitBudget{limit: p.MaxBits}

	zero := true
	for _, v := range block {
		if v != 0 {
			zero = false
			break
		}
	}
	if zero {
		b.write(bs, 0, 1)

		return padMin(bs, b, p)
	}
	b.write(bs, 1, 1)

	var cbuf [256]I
	ib := cbuf[:BlockSize(d)]
	copy(ib, block)

	fwdXform(ib, d, p.Reversible)

	var ubuf [256]uint64
	u := ubuf[:len(ib)]
	fwdOrder(ib, u, d, tr.width)

	pmin := 0
	if !p.Reversible {
		pmin = planeFloorInt(p, tr)
	}
	encodePlanes(bs, b, u, tr.width, pmin)

	return padMin(bs, b, p)
}

func decodeInt[I blockInt](bs *bitstream.Stream, p Params, d uint, block []I, tr traits) uint64 {
	b := &bitBudget{limit: p.MaxBits}

	if b.read(bs, 1) == 0 {
		clear(block)

		return skipMin(bs, b, p)
	}

	pmin := 0
	if !p.Reversible {
		pmin = planeFloorInt(p, tr)
	}

	var ubuf [256]uint64
	u := ubuf[:BlockSize(d)]
	decodePlanes(bs, b, u, tr.width, pmin)

	var cbuf [256]I
	ib := cbuf[:len(u)]
	invOrder(u, ib, d, tr.width)
	invXform(ib, d, p.Reversible)
	copy(block, ib)

	return skipMin(bs, b, p)
}
