package format

type (
	ScalarType      uint8
	Mode            uint8
	ExecPolicy      uint8
	CompressionType uint8
)

const (
	TypeInt32   ScalarType = 0x1 // TypeInt32 represents signed 32-bit integer samples.
	TypeInt64   ScalarType = 0x2 // TypeInt64 represents signed 64-bit integer samples.
	TypeFloat32 ScalarType = 0x3 // TypeFloat32 represents IEEE 754 binary32 samples.
	TypeFloat64 ScalarType = 0x4 // TypeFloat64 represents IEEE 754 binary64 samples.

	ModeExpert         Mode = 0x1 // ModeExpert uses caller-supplied codec parameters.
	ModeFixedRate      Mode = 0x2 // ModeFixedRate budgets a fixed number of bits per block.
	ModeFixedPrecision Mode = 0x3 // ModeFixedPrecision bounds the bit planes kept per coefficient.
	ModeFixedAccuracy  Mode = 0x4 // ModeFixedAccuracy bounds the absolute error per sample.
	ModeReversible     Mode = 0x5 // ModeReversible selects the bit-exact lossless pipeline.

	ExecSerial   ExecPolicy = 0x1 // ExecSerial runs blocks sequentially on the calling goroutine.
	ExecParallel ExecPolicy = 0x2 // ExecParallel runs fixed-rate blocks on worker goroutines.
	ExecOffload  ExecPolicy = 0x3 // ExecOffload delegates fixed-rate work to an accelerator backend.

	CompressionNone CompressionType = 0x1 // CompressionNone stores the stream bytes as-is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd applies Zstandard to the stream bytes.
	CompressionS2   CompressionType = 0x3 // CompressionS2 applies S2 to the stream bytes.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 applies LZ4 to the stream bytes.
)

// Width returns the scalar width in bits.
func (t ScalarType) Width() uint {
	switch t {
	case TypeInt32, TypeFloat32:
		return 32
	case TypeInt64, TypeFloat64:
		return 64
	default:
		return 0
	}
}

// IsFloat returns true for the two IEEE 754 scalar types.
func (t ScalarType) IsFloat() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// MinExpFloor returns the smallest admissible block exponent bound for
// the scalar type. Integer types carry an implicit exponent of 0, so
// their floor is 0 and precision reduction behaves uniformly across
// types.
func (t ScalarType) MinExpFloor() int {
	switch t {
	case TypeFloat32:
		return -149
	case TypeFloat64:
		return -1074
	default:
		return 0
	}
}

func (t ScalarType) String() string {
	switch t {
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeFloat32:
		return "Float32"
	case TypeFloat64:
		return "Float64"
	default:
		return "Unknown"
	}
}

func (m Mode) String() string {
	switch m {
	case ModeExpert:
		return "Expert"
	case ModeFixedRate:
		return "FixedRate"
	case ModeFixedPrecision:
		return "FixedPrecision"
	case ModeFixedAccuracy:
		return "FixedAccuracy"
	case ModeReversible:
		return "Reversible"
	default:
		return "Unknown"
	}
}

func (p ExecPolicy) String() string {
	switch p {
	case ExecSerial:
		return "Serial"
	case ExecParallel:
		return "Parallel"
	case ExecOffload:
		return "Offload"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
