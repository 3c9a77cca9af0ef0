package strategy

import (
	"context"
	"math/big"
)

// PollardRho is the standard cycle-detection factor search (Brent's
// variant with batched GCDs), the workhorse fallback once the field
// heuristics miss. Polynomial constants are tried from a fixed sequence so
// the search is deterministic; the iteration cap scales with the operand's
// bit length up to a configured ceiling.
type PollardRho struct {
	maxIterations int64
}

// rhoConstants are the x^2+c polynomial constants tried in order. c=0 and
// c=-2 are degenerate for rho and excluded.
var rhoConstants = []int64{1, 2, 3}

// gcdBatch is the number of steps accumulated between GCD checks.
const gcdBatch = 64

// NewPollardRho creates the strategy with an iteration ceiling.
func NewPollardRho(maxIterations int64) (*PollardRho, error) {
	if maxIterations <= 0 {
		return nil, ErrCapTooSmall
	}
	return &PollardRho{maxIterations: maxIterations}, nil
}

// Name implements Strategy.
func (s *PollardRho) Name() string { return "pollard-rho" }

// cap returns the per-constant iteration allowance for n: quadratic in bit
// length, clamped to the configured ceiling. Rho finds a factor p in
// O(p^(1/4)) steps on average, so small-to-medium factors fall well inside
// this bound.
func (s *PollardRho) cap(n *big.Int) int64 {
	bits := int64(n.BitLen())
	c := bits * bits * 16
	if c > s.maxIterations {
		c = s.maxIterations
	}
	if c < 1024 {
		c = 1024
	}
	return c
}

// Propose implements Strategy.
func (s *PollardRho) Propose(ctx context.Context, n *big.Int, hints Hints, budget *Budget) (*big.Int, error) {
	for _, c := range rhoConstants {
		d, err := s.brent(ctx, n, big.NewInt(c), budget)
		if err != nil {
			if err == ErrNoCandidate {
				continue
			}
			return nil, err
		}
		return d, nil
	}
	return nil, ErrNoCandidate
}

// brent runs one rho walk with polynomial x^2+c mod n.
func (s *PollardRho) brent(ctx context.Context, n, c *big.Int, budget *Budget) (*big.Int, error) {
	limit := s.cap(n)

	y := big.NewInt(2)
	g := new(big.Int).Set(one)
	q := new(big.Int).Set(one)
	x := new(big.Int)
	ys := new(big.Int)
	diff := new(big.Int)
	steps := int64(0)

	step := func(v *big.Int) {
		v.Mul(v, v)
		v.Add(v, c)
		v.Mod(v, n)
	}

	for r := int64(1); g.Cmp(one) == 0; r *= 2 {
		x.Set(y)
		for i := int64(0); i < r; i++ {
			if err := checkpoint(ctx, budget, 1); err != nil {
				return nil, err
			}
			step(y)
			if steps++; steps > limit {
				return nil, ErrNoCandidate
			}
		}
		for k := int64(0); k < r && g.Cmp(one) == 0; k += gcdBatch {
			ys.Set(y)
			batch := gcdBatch
			if rem := r - k; rem < int64(batch) {
				batch = int(rem)
			}
			for i := 0; i < batch; i++ {
				if err := checkpoint(ctx, budget, 1); err != nil {
					return nil, err
				}
				step(y)
				diff.Sub(x, y)
				diff.Abs(diff)
				q.Mul(q, diff)
				q.Mod(q, n)
				if steps++; steps > limit {
					return nil, ErrNoCandidate
				}
			}
			if q.Sign() == 0 {
				g.Set(n)
			} else {
				g.GCD(nil, nil, q, n)
			}
		}
	}

	if g.Cmp(n) == 0 {
		// The batch overshot a factor; replay from the saved point one
		// step at a time.
		for {
			if err := checkpoint(ctx, budget, 1); err != nil {
				return nil, err
			}
			step(ys)
			diff.Sub(x, ys)
			diff.Abs(diff)
			if diff.Sign() == 0 {
				return nil, ErrNoCandidate
			}
			g.GCD(nil, nil, diff, n)
			if g.Cmp(one) != 0 {
				break
			}
			if steps++; steps > limit {
				return nil, ErrNoCandidate
			}
		}
	}

	if g.Cmp(one) == 0 || g.Cmp(n) == 0 {
		return nil, ErrNoCandidate
	}
	return new(big.Int).Set(g), nil
}
