package numeric

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseValue normalizes the accepted input representations into a
// non-negative *big.Int. Native integers cover the common case; decimal
// digit strings carry values beyond the native range. Negative values and
// non-integral strings are rejected with ErrInvalidInput so callers never
// see a parse fault surface from deep inside a search.
func ParseValue(v any) (*big.Int, error) {
	switch x := v.(type) {
	case int:
		return fromInt64(int64(x))
	case int32:
		return fromInt64(int64(x))
	case int64:
		return fromInt64(x)
	case uint:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint64:
		return new(big.Int).SetUint64(x), nil
	case string:
		return fromString(x)
	case *big.Int:
		if x == nil {
			return nil, fmt.Errorf("%w: nil big.Int", ErrInvalidInput)
		}
		if x.Sign() < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNegativeValue, x.String())
		}
		return new(big.Int).Set(x), nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidInput, v)
	}
}

func fromInt64(x int64) (*big.Int, error) {
	if x < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeValue, x)
	}
	return big.NewInt(x), nil
}

func fromString(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidInput)
	}
	if strings.ContainsAny(s, ".eE") {
		return nil, fmt.Errorf("%w: %q", ErrNotAnInteger, s)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a base-10 integer", ErrInvalidInput, s)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeValue, s)
	}
	return n, nil
}
