// Package array provides mutable compressed arrays: block-indexed
// containers that present the illusion of a dense float array while
// storing fixed-rate compressed blocks, decoding a small working set
// through a write-back cache.
//
// The decoded scalar for an element exists only while its block is
// cached; handing out a plain address would dangle on eviction. Proxy
// references, pointers and iterators therefore carry (array, flat
// index) and re-enter the cache on every access.
//
// Arrays are not safe for concurrent use: even reads of distinct
// elements mutate cache metadata. Serialize access or keep an array to
// one goroutine at a time.
package array

import (
	"math"

	"github.com/arloliu/tetra/bitstream"
	"github.com/arloliu/tetra/codec"
	"github.com/arloliu/tetra/endian"
)

// Float is the set of element types a compressed array may hold.
type Float = codec.Float

// Array is a fixed-rate compressed array of 1 to 4 dimensions. Every
// block consumes the same word-aligned bit budget, so the byte offset
// of a block is a constant multiple of its index and element access is
// O(1) plus the cost of a cache miss.
type Array[T Float] struct {
	nx, ny, nz, nw int // sizes, 0 = absent
	dims           uint
	bx, by, bz, bw int // block grid (absent axes count one block)

	rate      float64 // effective rate in bits per value
	blockBits uint64  // fixed bits per block, a word multiple

	words  []uint64 // compressed buffer
	params codec.Params
	cache  blockCache[T]
}

// New1D creates a one-dimensional compressed array. data optionally
// seeds the contents; cacheBytes of zero selects the default capacity
// of two block layers.
func New1D[T Float](nx int, rate float64, data []T, cacheBytes int) (*Array[T], error) {
	return newArray(nx, 0, 0, 0, rate, data, cacheBytes)
}

// New2D creates a two-dimensional compressed array.
func New2D[T Float](nx, ny int, rate float64, data []T, cacheBytes int) (*Array[T], error) {
	return newArray(nx, ny, 0, 0, rate, data, cacheBytes)
}

// New3D creates a three-dimensional compressed array.
func New3D[T Float](nx, ny, nz int, rate float64, data []T, cacheBytes int) (*Array[T], error) {
	return newArray(nx, ny, nz, 0, rate, data, cacheBytes)
}

// New4D creates a four-dimensional compressed array.
func New4D[T Float](nx, ny, nz, nw int, rate float64, data []T, cacheBytes int) (*Array[T], error) {
	return newArray(nx, ny, nz, nw, rate, data, cacheBytes)
}

func newArray[T Float](nx, ny, nz, nw int, rate float64, data []T, cacheBytes int) (*Array[T], error) {
	a := &Array[T]{}
	if err := a.setShape(nx, ny, nz, nw); err != nil {
		return nil, err
	}
	if _, err := a.configureRate(rate); err != nil {
		return nil, err
	}
	a.allocCache(cacheBytes)

	if data != nil {
		if err := a.SetData(data); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func (a *Array[T]) setShape(nx, ny, nz, nw int) error {
	if nx <= 0 {
		return errInvalidSize
	}
	if (ny == 0 && (nz > 0 || nw > 0)) || (nz == 0 && nw > 0) {
		return errInvalidSize
	}

	a.nx, a.ny, a.nz, a.nw = nx, ny, nz, nw
	switch {
	case nw > 0:
		a.dims = 4
	case nz > 0:
		a.dims = 3
	case ny > 0:
		a.dims = 2
	default:
		a.dims = 1
	}

	a.bx = (nx + 3) / 4
	a.by = (max(ny, 1) + 3) / 4
	a.bz = (max(nz, 1) + 3) / 4
	a.bw = (max(nw, 1) + 3) / 4

	return nil
}

// configureRate quantizes the requested rate to the word granularity,
// installs the codec parameters, and reallocates the compressed buffer.
// The per-block bit budget is always a word multiple, which keeps every
// block byte offset integral.
func (a *Array[T]) configureRate(rate float64) (float64, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, errInvalidRate
	}

	n := codec.BlockSize(a.dims)
	bits := uint64(math.Round(rate * float64(n)))
	bits = (bits + bitstream.WordBits - 1) / bitstream.WordBits * bitstream.WordBits
	if bits == 0 {
		bits = bitstream.WordBits
	}
	if bits > codec.MaxBlockBits(a.dims, a.scalarWidth(), a.scalarEBits()) {
		return 0, errInvalidRate
	}

	a.blockBits = bits
	a.rate = float64(bits) / float64(n)
	a.params = codec.Params{
		MinBits: bits,
		MaxBits: bits,
		MaxPrec: a.scalarWidth(),
		MinExp:  a.minExpFloor(),
	}
	a.words = make([]uint64, uint64(a.blockCount())*bits/bitstream.WordBits)

	return a.rate, nil
}

func (a *Array[T]) scalarWidth() uint {
	var z T
	if _, ok := any(z).(float32); ok {
		return 32
	}

	return 64
}

func (a *Array[T]) scalarEBits() uint {
	if a.scalarWidth() == 32 {
		return 8
	}

	return 11
}

func (a *Array[T]) minExpFloor() int {
	if a.scalarWidth() == 32 {
		return -149
	}

	return -1074
}

func (a *Array[T]) elemBytes() int {
	return int(a.scalarWidth()) / 8
}

func (a *Array[T]) blockCount() int {
	return a.bx * a.by * a.bz * a.bw
}

// Size returns the total number of elements.
func (a *Array[T]) Size() int {
	n := a.nx
	for _, m := range []int{a.ny, a.nz, a.nw} {
		if m > 0 {
			n *= m
		}
	}

	return n
}

// SizeX returns the extent along x.
func (a *Array[T]) SizeX() int { return a.nx }

// SizeY returns the extent along y, 0 if absent.
func (a *Array[T]) SizeY() int { return a.ny }

// SizeZ returns the extent along z, 0 if absent.
func (a *Array[T]) SizeZ() int { return a.nz }

// SizeW returns the extent along w, 0 if absent.
func (a *Array[T]) SizeW() int { return a.nw }

// Dimensionality returns the number of non-zero dimensions.
func (a *Array[T]) Dimensionality() uint { return a.dims }

// Rate returns the effective rate in bits per value.
func (a *Array[T]) Rate() float64 { return a.rate }

// SetRate reconfigures the rate. This is destructive: all contents are
// discarded and the array reads as zero afterwards. Returns the
// effective rate after quantization.
func (a *Array[T]) SetRate(rate float64) (float64, error) {
	old := *a
	eff, err := a.configureRate(rate)
	if err != nil {
		*a = old

		return 0, err
	}
	a.cache.clear()

	return eff, nil
}

// Resize changes the array dimensions. Destructive when the block count
// changes; with clear set, all elements read as zero afterwards. On
// failure the array keeps its previous valid state.
func (a *Array[T]) Resize(nx, ny, nz, nw int, clear bool) error {
	a.FlushCache()
	old := *a
	if err := a.setShape(nx, ny, nz, nw); err != nil {
		*a = old

		return err
	}
	if _, err := a.configureRate(a.rate); err != nil {
		*a = old

		return err
	}
	if !clear && a.dims == old.dims && a.blockCount() == old.blockCount() {
		copy(a.words, old.words)
	}
	a.cache.clear()

	return nil
}

// CacheSize returns the cache capacity in bytes.
func (a *Array[T]) CacheSize() int {
	return len(a.cache.entries) * codec.BlockSize(a.dims) * a.elemBytes()
}

// SetCacheSize flushes the cache and resizes it to hold approximately
// the given number of bytes of decoded blocks; zero selects the default
// capacity.
func (a *Array[T]) SetCacheSize(bytes int) {
	a.FlushCache()
	a.allocCache(bytes)
}

func (a *Array[T]) allocCache(bytes int) {
	blockElems := codec.BlockSize(a.dims)

	var entries int
	if bytes <= 0 {
		// Default: two layers of blocks spanning the leading two
		// dimensions.
		entries = 2 * a.bx * a.by
	} else {
		entries = bytes / (blockElems * a.elemBytes())
	}
	if entries < 1 {
		entries = 1
	}

	// Power-of-two table for the direct-mapped index hash.
	size := 1
	for size < entries {
		size <<= 1
	}

	a.cache.init(size, blockElems)
}

// FlushCache re-encodes every dirty cached block into the compressed
// buffer and clears the dirty flags.
func (a *Array[T]) FlushCache() {
	for i := range a.cache.entries {
		a.writeBack(&a.cache.entries[i])
	}
}

// ClearCache discards all cached blocks without writing dirty ones
// back. Use only when repointing the array at a newly loaded
// compressed buffer.
func (a *Array[T]) ClearCache() {
	a.cache.clear()
}

// CompressedSize returns the size of the compressed buffer in bytes.
// The cache is flushed first so the result reflects all writes.
func (a *Array[T]) CompressedSize() int {
	a.FlushCache()

	return len(a.words) * 8
}

// CompressedData returns a copy of the compressed buffer, serialized
// little-endian. The cache is flushed first.
func (a *Array[T]) CompressedData() []byte {
	a.FlushCache()

	return endian.AppendWords(make([]byte, 0, len(a.words)*8), a.words)
}

// SetCompressedData replaces the compressed buffer with previously
// serialized bytes of exactly CompressedSize length. The cache is
// discarded, not flushed: pending writes would belong to the old
// contents.
func (a *Array[T]) SetCompressedData(data []byte) error {
	if len(data) != len(a.words)*8 {
		return errInvalidSize
	}

	a.cache.clear()
	copy(a.words, endian.WordsFromBytes(data))

	return nil
}

// SetData bulk-loads the array from a dense row-major slice of Size()
// elements, replacing all contents. The cache is cleared first.
func (a *Array[T]) SetData(data []T) error {
	if len(data) < a.Size() {
		return errInvalidSize
	}

	a.cache.clear()

	var blk [256]T
	block := blk[:codec.BlockSize(a.dims)]

	a.forEachBlock(func(b, bi, bj, bk, bl int) {
		a.gather(data, bi, bj, bk, bl, block)
		a.encodeBlockAt(b, block)
	})

	return nil
}

// Get bulk-decodes the whole array into a dense row-major slice of at
// least Size() elements. The cache is flushed first so pending writes
// are included.
func (a *Array[T]) Get(data []T) error {
	if len(data) < a.Size() {
		return errInvalidSize
	}

	a.FlushCache()

	var blk [256]T
	block := blk[:codec.BlockSize(a.dims)]

	a.forEachBlock(func(b, bi, bj, bk, bl int) {
		a.decodeBlockAt(b, block)
		a.scatter(data, bi, bj, bk, bl, block)
	})

	return nil
}

// At returns the element at (i, j, k, l); indices of absent dimensions
// are ignored.
func (a *Array[T]) At(i, j, k, l int) T {
	e, off := a.fetch(i, j, k, l)

	return e.data[off]
}

// Set stores v at (i, j, k, l), marking the cached block dirty. The
// compressed buffer is not touched until the block is evicted or the
// cache is flushed.
func (a *Array[T]) Set(i, j, k, l int, v T) {
	e, off := a.fetch(i, j, k, l)
	e.data[off] = v
	e.dirty = true
}

// AtFlat returns the element at a flat row-major index.
func (a *Array[T]) AtFlat(idx int) T {
	i, j, k, l := a.coords(idx)

	return a.At(i, j, k, l)
}

// SetFlat stores v at a flat row-major index.
func (a *Array[T]) SetFlat(idx int, v T) {
	i, j, k, l := a.coords(idx)
	a.Set(i, j, k, l, v)
}

// flat converts multi-axis coordinates to a flat row-major index.
func (a *Array[T]) flat(i, j, k, l int) int {
	ny := max(a.ny, 1)
	nz := max(a.nz, 1)

	return i + a.nx*(j+ny*(k+nz*l))
}

// coords converts a flat row-major index to multi-axis coordinates.
func (a *Array[T]) coords(idx int) (i, j, k, l int) {
	ny := max(a.ny, 1)
	nz := max(a.nz, 1)

	i = idx % a.nx
	idx /= a.nx
	j = idx % ny
	idx /= ny
	k = idx % nz
	l = idx / nz

	return i, j, k, l
}

// blockIndex returns the linear block index and in-block offset of
// element (i, j, k, l).
func (a *Array[T]) blockIndex(i, j, k, l int) (int, int) {
	b := (i >> 2) + a.bx*((j>>2)+a.by*((k>>2)+a.bz*(l>>2)))
	off := (i & 3) + 4*(j&3) + 16*(k&3) + 64*(l&3)
	if a.dims < 4 {
		off &= codec.BlockSize(a.dims) - 1
	}

	return b, off
}

// fetch returns the cache entry holding block (i,j,k,l)'s data, decoding
// on miss and writing back the evicted entry if dirty.
func (a *Array[T]) fetch(i, j, k, l int) (*cacheEntry[T], int) {
	b, off := a.blockIndex(i, j, k, l)

	e := a.cache.slot(b)
	if e.index != b {
		a.writeBack(e)
		a.decodeBlockAt(b, e.data)
		e.index = b
	}

	return e, off
}

// writeBack re-encodes a dirty entry at its deterministic offset and
// clears the dirty flag. Padding samples of partial edge blocks are
// regenerated before encoding so the coder sees a smooth extension.
func (a *Array[T]) writeBack(e *cacheEntry[T]) {
	if e.index < 0 || !e.dirty {
		e.dirty = false

		return
	}

	bi, bj, bk, bl := a.blockCoords(e.index)
	a.padBlock(bi, bj, bk, bl, e.data)
	a.encodeBlockAt(e.index, e.data)
	e.dirty = false
}

func (a *Array[T]) blockCoords(b int) (bi, bj, bk, bl int) {
	bi = b % a.bx
	b /= a.bx
	bj = b % a.by
	b /= a.by
	bk = b % a.bz
	bl = b / a.bz

	return bi, bj, bk, bl
}

func (a *Array[T]) encodeBlockAt(b int, block []T) {
	ws := bitstream.FromWords(a.words)
	ws.WSeek(uint64(b) * a.blockBits)
	codec.EncodeBlock(ws, a.params, a.dims, block)
	ws.Flush()
}

func (a *Array[T]) decodeBlockAt(b int, block []T) {
	rs := bitstream.FromWords(a.words)
	rs.RSeek(uint64(b) * a.blockBits)
	codec.DecodeBlock(rs, a.params, a.dims, block)
}

func (a *Array[T]) forEachBlock(fn func(b, bi, bj, bk, bl int)) {
	b := 0
	for bl := 0; bl < a.bw; bl++ {
		for bk := 0; bk < a.bz; bk++ {
			for bj := 0; bj < a.by; bj++ {
				for bi := 0; bi < a.bx; bi++ {
					fn(b, bi, bj, bk, bl)
					b++
				}
			}
		}
	}
}

// edge returns the number of valid samples block coordinate b covers
// along an axis of extent n.
func edge(n, b int) int {
	if n == 0 {
		return 1
	}
	if e := n - 4*b; e < 4 {
		return e
	}

	return 4
}

// padLine extends a partial length-4 line by the replication rule the
// block driver uses, repeating the last valid sample, so cached edge
// blocks re-encode identically to a bulk load.
func padLine[T Float](p []T, base, n, s int) {
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

func (a *Array[T]) padBlock(bi, bj, bk, bl int, block []T) {
	ex := edge(a.nx, bi)
	ey := edge(a.ny, bj)
	ez := edge(a.nz, bk)
	ew := edge(a.nw, bl)

	if ex == 4 && ey == 4 && ez == 4 && ew == 4 {
		return
	}

	if ex < 4 {
		for l := 0; l < ew; l++ {
			for k := 0; k < ez; k++ {
				for j := 0; j < ey; j++ {
					padLine(block, 4*j+16*k+64*l, ex, 1)
				}
			}
		}
	}
	if a.dims >= 2 && ey < 4 {
		for l := 0; l < ew; l++ {
			for k := 0; k < ez; k++ {
				for i := 0; i < 4; i++ {
					padLine(block, i+16*k+64*l, ey, 4)
				}
			}
		}
	}
	if a.dims >= 3 && ez < 4 {
		for l := 0; l < ew; l++ {
			for j := 0; j < 4; j++ {
				for i := 0; i < 4; i++ {
					padLine(block, i+4*j+64*l, ez, 16)
				}
			}
		}
	}
	if a.dims >= 4 && ew < 4 {
		for k := 0; k < 4; k++ {
			for j := 0; j < 4; j++ {
				for i := 0; i < 4; i++ {
					padLine(block, i+4*j+16*k, ew, 64)
				}
			}
		}
	}
}

// gather copies the valid region of block (bi,bj,bk,bl) from a dense
// row-major slice and pads the remainder.
func (a *Array[T]) gather(data []T, bi, bj, bk, bl int, block []T) {
	ex := edge(a.nx, bi)
	ey := edge(a.ny, bj)
	ez := edge(a.nz, bk)
	ew := edge(a.nw, bl)

	for l := 0; l < ew; l++ {
		for k := 0; k < ez; k++ {
			for j := 0; j < ey; j++ {
				src := a.flat(4*bi, 4*bj+j, 4*bk+k, 4*bl+l)
				dst := 4*j + 16*k + 64*l
				copy(block[dst:dst+ex], data[src:src+ex])
			}
		}
	}

	a.padBlock(bi, bj, bk, bl, block)
}

// scatter writes the valid region of a decoded block into a dense
// row-major slice.
func (a *Array[T]) scatter(data []T, bi, bj, bk, bl int, block []T) {
	ex := edge(a.nx, bi)
	ey := edge(a.ny, bj)
	ez := edge(a.nz, bk)
	ew := edge(a.nw, bl)

	for l := 0; l < ew; l++ {
		for k := 0; k < ez; k++ {
			for j := 0; j < ey; j++ {
				dst := a.flat(4*bi, 4*bj+j, 4*bk+k, 4*bl+l)
				src := 4*j + 16*k + 64*l
				copy(data[dst:dst+ex], block[src:src+ex])
			}
		}
	}
}
