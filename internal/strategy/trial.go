package strategy

import (
	"context"
	"math/big"
)

// TrialDivision is the last-resort fallback: scan odd candidates coprime
// to 3 upward from 5 under a hard iteration cap. It guarantees the search
// loop terminates even when every heuristic misses, and it is the only
// strategy with an unconditional hit guarantee inside its window (any
// composite with a factor below the cap's reach will be split).
type TrialDivision struct {
	cap int64
}

// NewTrialDivision creates the strategy with a hard iteration cap.
func NewTrialDivision(cap int64) (*TrialDivision, error) {
	if cap <= 0 {
		return nil, ErrCapTooSmall
	}
	return &TrialDivision{cap: cap}, nil
}

// Name implements Strategy.
func (s *TrialDivision) Name() string { return "trial-division" }

// Propose implements Strategy.
func (s *TrialDivision) Propose(ctx context.Context, n *big.Int, hints Hints, budget *Budget) (*big.Int, error) {
	d := big.NewInt(3)
	q := new(big.Int)
	r := new(big.Int)
	sq := new(big.Int)

	if divides(n, d, q, r) {
		return new(big.Int).Set(d), nil
	}

	// 6k+/-1 wheel starting at 5.
	d.SetInt64(5)
	bump := []int64{2, 4}
	for i := int64(0); i < s.cap; i++ {
		if err := checkpoint(ctx, budget, 1); err != nil {
			return nil, err
		}
		sq.Mul(d, d)
		if sq.Cmp(n) > 0 {
			// Past the square root without a hit: n has no non-trivial
			// divisor at all. Report a miss; the primality verdict stays
			// with the oracle.
			return nil, ErrNoCandidate
		}
		if divides(n, d, q, r) {
			return new(big.Int).Set(d), nil
		}
		d.Add(d, big.NewInt(bump[i%2]))
	}
	return nil, ErrNoCandidate
}
