// Package header implements the optional tagged prefix that lets a
// compressed stream travel with its own codec parameters: a 4-byte
// magic, scalar type, dimension count, per-axis sizes, and the four
// codec knobs.
//
// The core compress and decompress entry points never read or write a
// header; callers that round-trip parameters out of band skip this
// package entirely.
package header

import (
	"errors"
	"fmt"

	"github.com/arloliu/tetra/endian"
	"github.com/arloliu/tetra/format"
)

// Size is the fixed header size in bytes.
const Size = 48

// Version is the current header layout version.
const Version = 1

// Magic identifies a tetra stream header.
var Magic = [4]byte{'t', 't', 'r', 'a'}

var (
	ErrTooShort     = errors.New("header: buffer shorter than header size")
	ErrBadMagic     = errors.New("header: magic number mismatch")
	ErrBadVersion   = errors.New("header: unsupported version")
	ErrBadField     = errors.New("header: field out of range")
	ErrChecksumMism = errors.New("header: payload checksum mismatch")
)

// Header describes a packed stream: its geometry, codec knobs and the
// container compression applied to the payload bytes that follow.
//
// Byte layout, little-endian:
//
//	 0  magic            [4]byte
//	 4  version          uint8
//	 5  scalar type      uint8
//	 6  dimension count  uint8
//	 7  mode             uint8
//	 8  compression      uint8
//	 9  reserved         [3]byte
//	12  nx, ny, nz, nw   4 x uint32
//	28  minbits          uint32
//	32  maxbits          uint32
//	36  maxprec          uint16
//	38  minexp           int16
//	40  payload size     uint32 (bytes before container compression)
//	44  payload crc32    uint32 (over the stored payload bytes)
type Header struct {
	Scalar      format.ScalarType
	Dims        uint8
	Mode        format.Mode
	Compression format.CompressionType

	NX, NY, NZ, NW uint32

	MinBits uint32
	MaxBits uint32
	MaxPrec uint16
	MinExp  int16

	PayloadSize uint32
	PayloadCRC  uint32
}

// AppendTo serializes the header onto buf and returns the extended
// slice.
func (h *Header) AppendTo(buf []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	buf = append(buf, Magic[:]...)
	buf = append(buf, Version, byte(h.Scalar), h.Dims, byte(h.Mode), byte(h.Compression), 0, 0, 0)
	buf = engine.AppendUint32(buf, h.NX)
	buf = engine.AppendUint32(buf, h.NY)
	buf = engine.AppendUint32(buf, h.NZ)
	buf = engine.AppendUint32(buf, h.NW)
	buf = engine.AppendUint32(buf, h.MinBits)
	buf = engine.AppendUint32(buf, h.MaxBits)
	buf = engine.AppendUint16(buf, h.MaxPrec)
	buf = engine.AppendUint16(buf, uint16(h.MinExp))
	buf = engine.AppendUint32(buf, h.PayloadSize)
	buf = engine.AppendUint32(buf, h.PayloadCRC)

	return buf
}

// Parse reads and validates a header from the front of data.
func Parse(data []byte) (*Header, error) {
	if len(data) < Size {
		return nil, ErrTooShort
	}
	if [4]byte(data[:4]) != Magic {
		return nil, ErrBadMagic
	}
	if data[4] != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, data[4])
	}

	engine := endian.GetLittleEndianEngine()
	h := &Header{
		Scalar:      format.ScalarType(data[5]),
		Dims:        data[6],
		Mode:        format.Mode(data[7]),
		Compression: format.CompressionType(data[8]),
		NX:          engine.Uint32(data[12:16]),
		NY:          engine.Uint32(data[16:20]),
		NZ:          engine.Uint32(data[20:24]),
		NW:          engine.Uint32(data[24:28]),
		MinBits:     engine.Uint32(data[28:32]),
		MaxBits:     engine.Uint32(data[32:36]),
		MaxPrec:     engine.Uint16(data[36:38]),
		MinExp:      int16(engine.Uint16(data[38:40])),
		PayloadSize: engine.Uint32(data[40:44]),
		PayloadCRC:  engine.Uint32(data[44:48]),
	}

	if h.Scalar.String() == "Unknown" || h.Mode.String() == "Unknown" || h.Compression.String() == "Unknown" {
		return nil, ErrBadField
	}
	if h.Dims < 1 || h.Dims > 4 {
		return nil, fmt.Errorf("%w: dimension count %d", ErrBadField, h.Dims)
	}
	if h.MaxPrec < 1 || h.MaxPrec > 64 {
		return nil, fmt.Errorf("%w: maxprec %d", ErrBadField, h.MaxPrec)
	}

	return h, nil
}
