package bitstream

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStream_WriteBits_ReadBackAfterRewind(t *testing.T) {
	s := New(1024)

	rng := rand.New(rand.NewSource(42))
	widths := make([]uint, 0, 256)
	values := make([]uint64, 0, 256)

	for i := 0; i < 256; i++ {
		n := uint(rng.Intn(65))
		v := rng.Uint64()
		widths = append(widths, n)
		values = append(values, v)
		s.WriteBits(v, n)
	}
	s.Flush()
	s.Rewind()

	for i, n := range widths {
		want := values[i]
		if n < 64 {
			want &= (uint64(1) << n) - 1
		}
		require.Equal(t, want, s.ReadBits(n), "value %d width %d", i, n)
	}
}

func TestStream_WriteBit_FirstBitIsBitZeroOfFirstByte(t *testing.T) {
	s := New(8)
	s.WriteBit(1)
	s.WriteBit(0)
	s.WriteBit(1)

	buf := s.Bytes()
	require.Equal(t, byte(0b101), buf[0])
}

func TestStream_Bytes_LittleEndianWordLayout(t *testing.T) {
	s := New(16)
	s.WriteBits(0x0807060504030201, 64)

	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, s.Bytes())
}

func TestStream_Flush_ReturnsZeroFillCount(t *testing.T) {
	s := New(64)

	require.Equal(t, uint(0), s.Flush())

	s.WriteBits(0x3, 10)
	require.Equal(t, uint(54), s.Flush())
	require.Equal(t, uint64(64), s.WTell())

	// A second flush at a word boundary is a no-op.
	require.Equal(t, uint(0), s.Flush())
}

func TestStream_ReadBits_PastEndReturnsZero(t *testing.T) {
	s := FromBytes([]byte{0xff})

	require.Equal(t, uint64(0xff), s.ReadBits(8))
	require.Equal(t, uint64(0), s.ReadBits(64))
	require.Equal(t, uint64(0), s.ReadBit())
}

func TestStream_WSeek_RewritePreservesNeighborBits(t *testing.T) {
	s := New(64)
	s.WriteBits(^uint64(0), 64)
	s.WriteBits(^uint64(0), 64)
	s.Flush()

	// Rewrite bits 8..16 of the first word with zeros.
	s.WSeek(8)
	s.WriteBits(0, 8)
	s.WSeek(128)

	s.RSeek(0)
	require.Equal(t, uint64(0xff), s.ReadBits(8))
	require.Equal(t, uint64(0), s.ReadBits(8))
	require.Equal(t, ^uint64(0)>>16, s.ReadBits(48))
	require.Equal(t, ^uint64(0), s.ReadBits(64))
}

func TestStream_RSeek_AbsolutePosition(t *testing.T) {
	s := New(32)
	s.WriteBits(0xabcd, 16)
	s.WriteBits(0x1234, 16)
	s.Flush()

	s.RSeek(16)
	require.Equal(t, uint64(0x1234), s.ReadBits(16))
	require.Equal(t, uint64(32), s.RTell())

	s.RSeek(4)
	require.Equal(t, uint64(0xabc), s.ReadBits(12))
}

func TestStream_AlignRead_RoundsUpToWord(t *testing.T) {
	s := New(32)
	s.WriteBits(0xffff, 16)
	s.WriteBits(0x77, 8)
	s.Flush()

	s.RSeek(0)
	s.ReadBits(3)
	s.AlignRead()
	require.Equal(t, uint64(64), s.RTell())

	s.AlignRead()
	require.Equal(t, uint64(64), s.RTell())
}

func TestStream_AlignWrite_WordAlignedBlocks(t *testing.T) {
	s := New(64)
	s.WriteBits(0x5, 3)
	s.AlignWrite()

	require.Equal(t, uint64(64), s.WTell())

	s.WriteBits(0x7, 3)
	s.AlignWrite()
	require.Equal(t, uint64(128), s.WTell())
}

func TestStream_Pad_EmitsZeros(t *testing.T) {
	s := New(64)
	s.WriteBit(1)
	s.Pad(130)
	s.Flush()

	s.RSeek(0)
	require.Equal(t, uint64(1), s.ReadBit())
	for i := 0; i < 130; i++ {
		require.Equal(t, uint64(0), s.ReadBit())
	}
}

func TestStream_FromBytes_RoundTrip(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	s := FromBytes(data)

	require.Equal(t, uint64(0x0201), s.ReadBits(16))
	require.Equal(t, uint64(0x050403), s.ReadBits(24))
}

func TestStream_Grow_WritePastCapacity(t *testing.T) {
	s := New(8)
	for i := 0; i < 10; i++ {
		s.WriteBits(uint64(i), 64)
	}

	require.Equal(t, 80, s.Size())

	s.Rewind()
	for i := 0; i < 10; i++ {
		require.Equal(t, uint64(i), s.ReadBits(64))
	}
}

func TestStream_FromWords_SharedBacking(t *testing.T) {
	words := make([]uint64, 4)

	w1 := FromWords(words)
	w2 := FromWords(words)

	w1.WSeek(0)
	w1.WriteBits(0xaaaa, 64)
	w2.WSeek(64)
	w2.WriteBits(0xbbbb, 64)
	w1.Flush()
	w2.Flush()

	r := FromWords(words)
	require.Equal(t, uint64(0xaaaa), r.ReadBits(64))
	require.Equal(t, uint64(0xbbbb), r.ReadBits(64))
}
