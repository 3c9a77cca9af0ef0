package oracle

import "errors"

// Config validation errors.
var (
	ErrBoundTooSmall   = errors.New("deterministic bound must be at least 4")
	ErrBoundTooLarge   = errors.New("deterministic bound exceeds the sieve's reach")
	ErrTooFewWitnesses = errors.New("witness count must be at least 1")
	ErrWitnessRange    = errors.New("max witnesses must be at least min witnesses")
)
