package codec

import "github.com/arloliu/tetra/bitstream"

// The embedded coder walks coefficients bit plane by bit plane from the
// most significant plane down. Per plane it emits one test bit per group
// of four coefficients, then a refinement bit for every coefficient that
// became significant on an earlier plane, then a candidate bit for every
// still-insignificant coefficient inside a flagged group. Any prefix of
// the output is a valid lower-fidelity decode.

// bitBudget tracks bits spent against the per-block limit. Encoder and
// decoder run the identical budget so their stream positions stay in
// lock step even when a block is cut off mid-plane.
type bitBudget struct {
	used  uint64
	limit uint64
}

func (b *bitBudget) left() uint64 {
	return b.limit - b.used
}

func (b *bitBudget) write(bs *bitstream.Stream, x uint64, n uint) {
	if rem := b.left(); uint64(n) > rem {
		n = uint(rem)
	}
	if n == 0 {
		return
	}
	bs.WriteBits(x, n)
	b.used += uint64(n)
}

func (b *bitBudget) read(bs *bitstream.Stream, n uint) uint64 {
	if rem := b.left(); uint64(n) > rem {
		n = uint(rem)
	}
	if n == 0 {
		return 0
	}
	b.used += uint64(n)

	return bs.ReadBits(n)
}

// encodePlanes codes the unsigned coefficients in traversal order from
// plane width-1 down to pmin, or until the bit budget runs out.
func encodePlanes(bs *bitstream.Stream, b *bitBudget, u []uint64, width uint, pmin int) {
	n := len(u)
	groups := n / 4

	var sig [256]bool
	var flagged [64]bool

	for p := int(width) - 1; p >= pmin && b.left() > 0; p-- {
		// Group test: one bit per group of four, set when any member has
		// its bit at this plane set.
		for g := 0; g < groups && b.left() > 0; g++ {
			var bit uint64
			for i := 4 * g; i < 4*g+4; i++ {
				bit |= (u[i] >> uint(p)) & 1
			}
			flagged[g] = bit != 0
			b.write(bs, bit, 1)
		}

		// Refinement: coefficients significant on an earlier plane.
		for i := 0; i < n && b.left() > 0; i++ {
			if sig[i] {
				b.write(bs, (u[i]>>uint(p))&1, 1)
			}
		}

		// Candidates: insignificant coefficients in flagged groups. A one
		// bit promotes the coefficient for later planes; it does not take
		// a refinement bit on this plane.
		for i := 0; i < n && b.left() > 0; i++ {
			if !sig[i] && flagged[i/4] {
				bit := (u[i] >> uint(p)) & 1
				b.write(bs, bit, 1)
				if bit != 0 {
					sig[i] = true
				}
			}
		}
	}
}

// decodePlanes mirrors encodePlanes. Bits beyond the encoder's stopping
// point read as zero and leave the corresponding planes unset.
func decodePlanes(bs *bitstream.Stream, b *bitBudget, u []uint64, width uint, pmin int) {
	n := len(u)
	groups := n / 4

	var sig [256]bool
	var flagged [64]bool

	for p := int(width) - 1; p >= pmin && b.left() > 0; p-- {
		for g := 0; g < groups && b.left() > 0; g++ {
			flagged[g] = b.read(bs, 1) != 0
		}

		for i := 0; i < n && b.left() > 0; i++ {
			if sig[i] {
				u[i] |= b.read(bs, 1) << uint(p)
			}
		}

		for i := 0; i < n && b.left() > 0; i++ {
			if !sig[i] && flagged[i/4] {
				if b.read(bs, 1) != 0 {
					u[i] |= 1 << uint(p)
					sig[i] = true
				}
			}
		}
	}
}
