// Package strategy implements the bounded candidate-divisor search
// strategies the orchestrator runs in fixed cost order. Every strategy is a
// pure, deterministic, terminating function: it either proposes one
// candidate divisor within its iteration budget or reports no candidate.
// Exhausting a budget is a normal outcome, not a fault.
//
// No strategy carries correctness weight. The orchestrator verifies every
// proposal by exact division and product reconstruction, so removing any
// subset of strategies changes only search speed, never results.
package strategy

import (
	"context"
	"math/big"

	"github.com/fyrsmithlabs/factord/internal/carry"
	"github.com/fyrsmithlabs/factord/internal/field"
)

// Hints carries the field-substrate signals the orchestrator precomputes
// for the value under search. All fields are read-only advisory inputs.
type Hints struct {
	// Residue is the value mod 256.
	Residue uint8

	// Pattern is the value's field pattern.
	Pattern field.Pattern

	// Resonance is the value's resonance score.
	Resonance float64

	// Artifacts are the carry artifacts of the balanced split
	// (isqrt(n), n/isqrt(n)), a representative factor-pair hypothesis.
	Artifacts []carry.Artifact

	// Root is isqrt(n).
	Root *big.Int
}

// Strategy proposes one candidate divisor for an odd composite value.
// Propose returns ErrNoCandidate when the search window or budget is
// exhausted without a hit; any other error aborts the search (context
// cancellation is the only expected case).
type Strategy interface {
	// Name identifies the strategy in results and logs.
	Name() string

	// Propose searches for a candidate divisor of n. Callers guarantee n
	// is odd, composite by the oracle, and coprime to the small-prime
	// strip table.
	Propose(ctx context.Context, n *big.Int, hints Hints, budget *Budget) (*big.Int, error)
}

// checkpoint is the shared per-iteration stop check: context first, then
// budget. Every strategy loop calls it before doing work, which makes the
// iteration budget double as a cooperative cancellation point.
func checkpoint(ctx context.Context, budget *Budget, cost int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !budget.Spend(cost) {
		return ErrNoCandidate
	}
	return nil
}

// divides reports whether d is a non-trivial divisor of n, writing the
// quotient into q when it is.
func divides(n, d, q, r *big.Int) bool {
	if d.Cmp(one) <= 0 || d.Cmp(n) >= 0 {
		return false
	}
	q.QuoRem(n, d, r)
	return r.Sign() == 0
}

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)
