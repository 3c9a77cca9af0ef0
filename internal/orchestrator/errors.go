package orchestrator

import "errors"

var (
	// ErrInvariantViolated reports that a factor list failed product
	// reconstruction. It indicates a bug, never an input problem.
	ErrInvariantViolated = errors.New("factor product does not reconstruct the input")

	// ErrNilValue reports a nil input value.
	ErrNilValue = errors.New("value must not be nil")
)
