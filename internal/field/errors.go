package field

import "errors"

// Construction errors.
var (
	ErrNonPositiveConstant = errors.New("field constants must be strictly positive")
)
