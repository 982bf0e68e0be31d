package alphaset

import "errors"

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrNonPositiveTarget is returned when the target n is zero. Degenerate
	// targets are rejected before any search work begins.
	ErrNonPositiveTarget = errors.New("target n must be positive")

	// ErrTargetTooLarge is returned by backends whose arithmetic caps the
	// target width (the SAT oracle encodes 2^d terms as machine-word
	// weights).
	ErrTargetTooLarge = errors.New("target n exceeds backend width")
)
