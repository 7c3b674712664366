package tetra

import (
	"fmt"

	"github.com/arloliu/tetra/bitstream"
	"github.com/arloliu/tetra/checksum"
	"github.com/arloliu/tetra/codec"
	"github.com/arloliu/tetra/compress"
	"github.com/arloliu/tetra/format"
	"github.com/arloliu/tetra/header"
)

// Pack compresses the field and wraps the stream bytes in a tagged
// container: a fixed header carrying the geometry and codec knobs,
// followed by the payload, optionally run through a whole-buffer
// compression codec. The result is self-describing; Unpack restores the
// array without out-of-band parameters.
func Pack[T codec.Scalar](s *Stream, f *Field[T], compression format.CompressionType) ([]byte, error) {
	cc, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	if s.bits == nil {
		s.bits = bitstream.New(int(MaxSize(s, f)))
	}
	if _, err := Compress(s, f); err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}

	payload := s.bits.Bytes()
	stored, err := cc.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}

	h := header.Header{
		Scalar:      f.ScalarType(),
		Dims:        uint8(f.Dimensionality()),
		Mode:        s.mode,
		Compression: compression,
		NX:          uint32(f.nx),
		NY:          uint32(f.ny),
		NZ:          uint32(f.nz),
		NW:          uint32(f.nw),
		MinBits:     uint32(s.minBits),
		MaxBits:     uint32(s.maxBits),
		MaxPrec:     uint16(s.maxPrec),
		MinExp:      int16(s.minExp),
		PayloadSize: uint32(len(payload)),
		PayloadCRC:  checksum.CRC32(stored),
	}

	buf := make([]byte, 0, header.Size+len(stored))
	buf = h.AppendTo(buf)

	return append(buf, stored...), nil
}

// Unpack parses a container produced by Pack, verifies the payload
// checksum, and decodes the stream into a freshly allocated field of
// the requested scalar type. The type parameter must match the scalar
// type recorded in the header.
func Unpack[T codec.Scalar](data []byte) (*Field[T], *header.Header, error) {
	h, err := header.Parse(data)
	if err != nil {
		return nil, nil, err
	}
	if h.Scalar != scalarTypeOf[T]() {
		return nil, nil, ErrScalarMismatch
	}

	stored := data[header.Size:]
	if checksum.CRC32(stored) != h.PayloadCRC {
		return nil, nil, header.ErrChecksumMism
	}

	cc, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, nil, err
	}
	payload, err := cc.Decompress(stored)
	if err != nil {
		return nil, nil, fmt.Errorf("unpack: %w", err)
	}

	s := &Stream{
		minBits: uint64(h.MinBits),
		maxBits: uint64(h.MaxBits),
		maxPrec: uint(h.MaxPrec),
		minExp:  int(h.MinExp),
		mode:    h.Mode,
		exec:    format.ExecSerial,
		bits:    bitstream.FromBytes(payload),
	}

	nx, ny, nz, nw := int(h.NX), int(h.NY), int(h.NZ), int(h.NW)
	size := nx
	for _, m := range []int{ny, nz, nw} {
		if m > 0 {
			size *= m
		}
	}
	f := newField(make([]T, size), nx, ny, nz, nw)

	if _, err := Decompress(s, f); err != nil {
		return nil, nil, fmt.Errorf("unpack: %w", err)
	}

	return f, h, nil
}
