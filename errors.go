package tetra

import "errors"

var (
	// ErrInvalidParams reports expert-mode knobs that violate the codec
	// invariants (minbits > maxbits, maxprec outside 1..64, or minexp
	// below the admissible floor).
	ErrInvalidParams = errors.New("tetra: invalid codec parameters")

	// ErrInvalidField reports a field with inconsistent dimensions or a
	// backing slice too small for its extents.
	ErrInvalidField = errors.New("tetra: invalid field")

	// ErrBufferTooSmall reports a compressed buffer smaller than the
	// conservative upper bound; the codec refuses to start and reports
	// zero bytes written.
	ErrBufferTooSmall = errors.New("tetra: compressed buffer smaller than conservative bound")

	// ErrModeUnsupported reports an incompatible (mode, scalar type)
	// combination, e.g. fixed-accuracy on an integer type.
	ErrModeUnsupported = errors.New("tetra: mode incompatible with scalar type")

	// ErrBackendUnsupported reports an execution backend asked for a
	// mode it cannot handle; the stream is left untouched.
	ErrBackendUnsupported = errors.New("tetra: execution backend does not support this configuration")

	// ErrScalarMismatch reports a packed stream whose header names a
	// different scalar type than the one requested.
	ErrScalarMismatch = errors.New("tetra: scalar type does not match stream header")
)
