package factor

import (
	"context"
	"errors"
	"math/big"

	"github.com/fyrsmithlabs/factord/internal/logging"
	"github.com/fyrsmithlabs/factord/internal/numeric"
)

// Input rejection errors. Invalid inputs are refused at this boundary;
// nothing deeper in the search ever faults on them.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNegativeValue = errors.New("value must be non-negative")
)

// parse normalizes the accepted input forms, translating internal parse
// errors onto the package's public sentinels.
func parse(value any) (*big.Int, error) {
	n, err := numeric.ParseValue(value)
	if err != nil {
		switch {
		case errors.Is(err, numeric.ErrNegativeValue):
			return nil, errResolve(err, ErrNegativeValue)
		default:
			return nil, errResolve(err, ErrInvalidInput)
		}
	}
	return n, nil
}

// errResolve wraps the public sentinel while preserving the detailed
// internal message.
func errResolve(cause, sentinel error) error {
	return &inputError{sentinel: sentinel, cause: cause}
}

type inputError struct {
	sentinel error
	cause    error
}

func (e *inputError) Error() string { return e.cause.Error() }

func (e *inputError) Is(target error) bool {
	return target == e.sentinel || errors.Is(e.cause, target)
}

func (e *inputError) Unwrap() error { return e.cause }

// WithRequestID returns a context carrying a request ID that every log
// line of the ensuing call will include. An empty id generates a fresh
// UUID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return logging.WithRequestID(ctx, id)
}
