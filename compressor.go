package tetra

import (
	"runtime"
	"sync"

	"github.com/arloliu/tetra/bitstream"
	"github.com/arloliu/tetra/codec"
	"github.com/arloliu/tetra/format"
)

// Compress encodes the field onto the stream's bit stream, iterating
// blocks in row-major block order. It returns the number of bits
// written. In fixed-rate mode every block is word-aligned, enabling
// O(1) block addressing; other modes pack blocks back to back.
//
// A nil attached bit stream is allocated at the conservative bound. A
// caller-attached stream smaller than that bound is refused with zero
// bits written.
func Compress[T codec.Scalar](s *Stream, f *Field[T]) (uint64, error) {
	if err := f.validate(); err != nil {
		return 0, err
	}

	t := scalarTypeOf[T]()
	if !s.compatible(t) {
		return 0, ErrModeUnsupported
	}

	if s.bits == nil {
		s.bits = bitstream.New(int(MaxSize(s, f)))
	}

	switch s.exec {
	case format.ExecParallel:
		if s.mode == format.ModeFixedRate {
			return compressParallel(s, f)
		}
		// Non-fixed-rate block offsets are data-dependent; run the
		// sequential reference path.
		return compressSerial(s, f)
	case format.ExecOffload:
		if s.mode != format.ModeFixedRate {
			return 0, ErrBackendUnsupported
		}
		// No accelerator is wired in-process; the serial path is the
		// bit-identical reference every backend must match.
		return compressSerial(s, f)
	default:
		return compressSerial(s, f)
	}
}

// Decompress decodes the stream's bit stream into the field, driven by
// the same block order as Compress. It returns the number of bits read.
func Decompress[T codec.Scalar](s *Stream, f *Field[T]) (uint64, error) {
	if err := f.validate(); err != nil {
		return 0, err
	}

	t := scalarTypeOf[T]()
	if !s.compatible(t) {
		return 0, ErrModeUnsupported
	}
	if s.bits == nil {
		return 0, ErrBufferTooSmall
	}

	switch s.exec {
	case format.ExecParallel:
		if s.mode == format.ModeFixedRate {
			return decompressParallel(s, f)
		}
		return decompressSerial(s, f)
	case format.ExecOffload:
		if s.mode != format.ModeFixedRate {
			return 0, ErrBackendUnsupported
		}
		return decompressSerial(s, f)
	default:
		return decompressSerial(s, f)
	}
}

func compressSerial[T codec.Scalar](s *Stream, f *Field[T]) (uint64, error) {
	if uint64(s.bits.Capacity())*8 < s.bits.WTell()+MaxSize(s, f)*8 {
		return 0, ErrBufferTooSmall
	}

	d := f.Dimensionality()
	p := s.codecParams(scalarTypeOf[T]())
	fixedRate := s.mode == format.ModeFixedRate
	start := s.bits.WTell()

	var blk [256]T
	block := blk[:codec.BlockSize(d)]

	forEachBlock(f, func(_ int, bi, bj, bk, bl int) {
		gatherBlock(f, d, bi, bj, bk, bl, block)
		codec.EncodeBlock(s.bits, p, d, block)
		if fixedRate {
			s.bits.AlignWrite()
		}
	})
	s.bits.Flush()

	return s.bits.WTell() - start, nil
}

func decompressSerial[T codec.Scalar](s *Stream, f *Field[T]) (uint64, error) {
	d := f.Dimensionality()
	p := s.codecParams(scalarTypeOf[T]())
	fixedRate := s.mode == format.ModeFixedRate
	start := s.bits.RTell()

	var blk [256]T
	block := blk[:codec.BlockSize(d)]

	forEachBlock(f, func(_ int, bi, bj, bk, bl int) {
		codec.DecodeBlock(s.bits, p, d, block)
		if fixedRate {
			s.bits.AlignRead()
		}
		scatterBlock(f, d, bi, bj, bk, bl, block)
	})
	// The encoder flushes its final partial word; consume the matching
	// padding so read and write counts agree.
	s.bits.AlignRead()

	return s.bits.RTell() - start, nil
}

func compressParallel[T codec.Scalar](s *Stream, f *Field[T]) (uint64, error) {
	if uint64(s.bits.Capacity())*8 < s.bits.WTell()+MaxSize(s, f)*8 {
		return 0, ErrBufferTooSmall
	}

	s.bits.AlignWrite()
	base := s.bits.WTell()
	blockBits := s.maxBits
	blocks := f.BlockCount()
	total := blockBits * uint64(blocks)
	s.bits.Reserve(base + total)

	d := f.Dimensionality()
	p := s.codecParams(scalarTypeOf[T]())
	coords := blockCoords(f)

	workers := min(runtime.GOMAXPROCS(0), blocks)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := blocks * w / workers
		hi := blocks * (w + 1) / workers
		if lo == hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()

			// Private cursor over the shared words; block budgets are
			// word multiples, so ranges touch disjoint words.
			ws := bitstream.FromWords(s.bits.Words())
			ws.WSeek(base + uint64(lo)*blockBits)

			var blk [256]T
			block := blk[:codec.BlockSize(d)]
			for b := lo; b < hi; b++ {
				c := coords[b]
				gatherBlock(f, d, c[0], c[1], c[2], c[3], block)
				codec.EncodeBlock(ws, p, d, block)
				ws.AlignWrite()
			}
		}(lo, hi)
	}
	wg.Wait()

	s.bits.WSeek(base + total)

	return total, nil
}

func decompressParallel[T codec.Scalar](s *Stream, f *Field[T]) (uint64, error) {
	s.bits.AlignRead()
	base := s.bits.RTell()
	blockBits := s.maxBits
	blocks := f.BlockCount()
	total := blockBits * uint64(blocks)

	d := f.Dimensionality()
	p := s.codecParams(scalarTypeOf[T]())
	coords := blockCoords(f)

	workers := min(runtime.GOMAXPROCS(0), blocks)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := blocks * w / workers
		hi := blocks * (w + 1) / workers
		if lo == hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()

			rs := bitstream.FromWords(s.bits.Words())
			rs.RSeek(base + uint64(lo)*blockBits)

			var blk [256]T
			block := blk[:codec.BlockSize(d)]
			for b := lo; b < hi; b++ {
				c := coords[b]
				codec.DecodeBlock(rs, p, d, block)
				rs.AlignRead()
				scatterBlock(f, d, c[0], c[1], c[2], c[3], block)
			}
		}(lo, hi)
	}
	wg.Wait()

	s.bits.RSeek(base + total)

	return total, nil
}

// forEachBlock visits block coordinates in row-major block order, x
// fastest.
func forEachBlock[T codec.Scalar](f *Field[T], fn func(b, bi, bj, bk, bl int)) {
	bx := (f.nx + 3) / 4
	by := (max(f.ny, 1) + 3) / 4
	bz := (max(f.nz, 1) + 3) / 4
	bw := (max(f.nw, 1) + 3) / 4

	b := 0
	for bl := 0; bl < bw; bl++ {
		for bk := 0; bk < bz; bk++ {
			for bj := 0; bj < by; bj++ {
				for bi := 0; bi < bx; bi++ {
					fn(b, bi, bj, bk, bl)
					b++
				}
			}
		}
	}
}

func blockCoords[T codec.Scalar](f *Field[T]) [][4]int {
	coords := make([][4]int, 0, f.BlockCount())
	forEachBlock(f, func(_ int, bi, bj, bk, bl int) {
		coords = append(coords, [4]int{bi, bj, bk, bl})
	})

	return coords
}

// edge returns the number of valid samples a block covers along one
// axis: 4 in the interior, 1..3 at a partial boundary, 1 for an absent
// axis.
func edge(n, b int) int {
	if n == 0 {
		return 1
	}
	if e := n - 4*b; e < 4 {
		return e
	}

	return 4
}

// padLine extends a partially filled length-4 line by the deterministic
// replication rule: each missing entry repeats the last valid sample,
// so the transform sees a flat extension.
func padLine[T codec.Scalar](p []T, base, n, s int) {
	switch n {
	case 0:
		p[base] = 0
		fallthrough
	case 1:
		p[base+s] = p[base]
		fallthrough
	case 2:
		p[base+2*s] = p[base+s]
		fallthrough
	case 3:
		p[base+3*s] = p[base+2*s]
	}
}

// gatherBlock fills a full 4^d block from the field at block coordinates
// (bi, bj, bk, bl), padding partial blocks along x, then y, then z, then
// w. The padding cascade order is what makes streams reproducible on
// non-multiple-of-4 dimensions.
func gatherBlock[T codec.Scalar](f *Field[T], d uint, bi, bj, bk, bl int, block []T) {
	ex := edge(f.nx, bi)
	ey := edge(f.ny, bj)
	ez := edge(f.nz, bk)
	ew := edge(f.nw, bl)

	for l := 0; l < ew; l++ {
		for k := 0; k < ez; k++ {
			for j := 0; j < ey; j++ {
				src := f.index(4*bi, 4*bj+j, 4*bk+k, 4*bl+l)
				dst := 4*j + 16*k + 64*l
				for i := 0; i < ex; i++ {
					block[dst+i] = f.data[src]
					src += f.sx
				}
			}
		}
	}

	if ex == 4 && ey == 4 && ez == 4 && ew == 4 {
		return
	}

	// Pad along x for every gathered line, then cascade to higher axes.
	if ex < 4 {
		for l := 0; l < ew; l++ {
			for k := 0; k < ez; k++ {
				for j := 0; j < ey; j++ {
					padLine(block, 4*j+16*k+64*l, ex, 1)
				}
			}
		}
	}
	if d >= 2 && ey < 4 {
		for l := 0; l < ew; l++ {
			for k := 0; k < ez; k++ {
				for i := 0; i < 4; i++ {
					padLine(block, i+16*k+64*l, ey, 4)
				}
			}
		}
	}
	if d >= 3 && ez < 4 {
		for l := 0; l < ew; l++ {
			for j := 0; j < 4; j++ {
				for i := 0; i < 4; i++ {
					padLine(block, i+4*j+64*l, ez, 16)
				}
			}
		}
	}
	if d >= 4 && ew < 4 {
		for k := 0; k < 4; k++ {
			for j := 0; j < 4; j++ {
				for i := 0; i < 4; i++ {
					padLine(block, i+4*j+16*k, ew, 64)
				}
			}
		}
	}
}

// scatterBlock writes the valid region of a decoded block back into the
// field; padding samples are dropped.
func scatterBlock[T codec.Scalar](f *Field[T], d uint, bi, bj, bk, bl int, block []T) {
	ex := edge(f.nx, bi)
	ey := edge(f.ny, bj)
	ez := edge(f.nz, bk)
	ew := edge(f.nw, bl)

	for l := 0; l < ew; l++ {
		for k := 0; k < ez; k++ {
			for j := 0; j < ey; j++ {
				dst := f.index(4*bi, 4*bj+j, 4*bk+k, 4*bl+l)
				src := 4*j + 16*k + 64*l
				for i := 0; i < ex; i++ {
					f.data[dst] = block[src+i]
					dst += f.sx
				}
			}
		}
	}
}
