package numeric

import "errors"

// Input validation errors.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNegativeValue = errors.New("value must be non-negative")
	ErrNotAnInteger  = errors.New("value is not an integer")
)

// Arithmetic guard errors.
var (
	ErrZeroModulus      = errors.New("modulus must be positive")
	ErrInvalidOperation = errors.New("invalid operation")
)
