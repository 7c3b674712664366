package tetra

import (
	"math"
	"testing"

	"github.com/arloliu/tetra/format"
)

func benchData3D(n int) []float64 {
	data := make([]float64, n*n*n)
	for i := range data {
		x, y, z := i%n, (i/n)%n, i/(n*n)
		data[i] = math.Sin(float64(x)/9)*math.Cos(float64(y)/7) + float64(z)/64
	}

	return data
}

func BenchmarkCompress_FixedRate3D(b *testing.B) {
	data := benchData3D(64)
	f := NewField3D(data, 64, 64, 64)

	b.SetBytes(int64(len(data) * 8))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, _ := NewStream(WithFixedRate(16, 3))
		if _, err := Compress(s, f); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompress_FixedRate3DParallel(b *testing.B) {
	data := benchData3D(64)
	f := NewField3D(data, 64, 64, 64)

	b.SetBytes(int64(len(data) * 8))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, _ := NewStream(WithFixedRate(16, 3), WithExecPolicy(format.ExecParallel))
		if _, err := Compress(s, f); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecompress_FixedRate3D(b *testing.B) {
	data := benchData3D(64)
	s, _ := NewStream(WithFixedRate(16, 3))
	if _, err := Compress(s, NewField3D(data, 64, 64, 64)); err != nil {
		b.Fatal(err)
	}

	out := NewField3D(make([]float64, len(data)), 64, 64, 64)

	b.SetBytes(int64(len(data) * 8))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.BitStream().Rewind()
		if _, err := Decompress(s, out); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompress_Reversible2D(b *testing.B) {
	data := smooth2D(128, 128)
	f := NewField2D(data, 128, 128)

	b.SetBytes(int64(len(data) * 8))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, _ := NewStream(WithReversible())
		if _, err := Compress(s, f); err != nil {
			b.Fatal(err)
		}
	}
}
