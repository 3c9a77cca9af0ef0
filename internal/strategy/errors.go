package strategy

import "errors"

// ErrNoCandidate reports that a strategy exhausted its search window or
// iteration budget without finding a candidate divisor. It is the normal
// miss outcome; the orchestrator moves on to the next strategy.
var ErrNoCandidate = errors.New("no candidate divisor found")

// Config validation errors.
var (
	ErrWindowTooSmall    = errors.New("search window must be positive")
	ErrToleranceInvalid  = errors.New("resonance tolerance must be in (0, 1]")
	ErrCapTooSmall       = errors.New("iteration cap must be positive")
	ErrPageSizeTooSmall  = errors.New("landmark page size must be at least 2")
)
