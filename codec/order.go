package codec

import "sort"

// Coefficient traversal orders. After the transform, low-frequency
// coefficients carry most of the signal energy; the embedded coder wants
// them first. Coefficients (i, j, k, l) are ordered by total frequency
// i+j+k+l, ties broken by i²+j²+k²+l², then by linear index. The tables
// are precomputed once per dimensionality.
var blockOrder [5][]int

func init() {
	for d := uint(1); d <= 4; d++ {
		blockOrder[d] = makeOrder(d)
	}
}

func makeOrder(d uint) []int {
	n := BlockSize(d)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	key := func(i int) (sum, sq int) {
		for a := uint(0); a < d; a++ {
			c := (i >> (2 * a)) & 3
			sum += c
			sq += c * c
		}

		return sum, sq
	}

	sort.SliceStable(idx, func(a, b int) bool {
		sa, qa := key(idx[a])
		sb, qb := key(idx[b])
		if sa != sb {
			return sa < sb
		}
		if qa != qb {
			return qa < qb
		}

		return idx[a] < idx[b]
	})

	return idx
}

// fwdOrder maps transformed coefficients into traversal order and applies
// the signed-to-unsigned map at the given width.
func fwdOrder[I blockInt](src []I, dst []uint64, d uint, width uint) {
	order := blockOrder[d]
	for i, j := range order {
		dst[i] = fwdMap(src[j], width)
	}
}

// invOrder undoes fwdOrder.
func invOrder[I blockInt](src []uint64, dst []I, d uint, width uint) {
	order := blockOrder[d]
	for i, j := range order {
		dst[j] = invMap[I](src[i])
	}
}

// fwdMap converts a signed coefficient to the unsigned negabinary
// (base −2) representation coded by the bit-plane coder:
// n = (s + 0xaaaa…) XOR 0xaaaa…, masked to the coefficient width.
// Truncating low bit planes of n perturbs s by less than the weight of
// the lowest kept plane, whatever the sign of s.
func fwdMap[I blockInt](s I, width uint) uint64 {
	return ((uint64(int64(s)) + nbmask) ^ nbmask) & wmask(width)
}

// invMap converts back to the signed coefficient.
func invMap[I blockInt](u uint64) I {
	return I((u ^ nbmask) - nbmask)
}

// nbmask has every odd bit set: the negabinary digits of negative weight.
const nbmask = 0xaaaaaaaaaaaaaaaa

func wmask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << n) - 1
}
