// Package orchestrator drives factorization: primality check, small-prime
// strip, the ordered strategy search, verified recursion on both halves of
// a split, and memoization of every result.
package orchestrator

import (
	"math/big"
)

// Strategy identifiers reported on results for outcomes that are not a
// search strategy's own name.
const (
	// StrategyPrime marks a value the oracle certified prime.
	StrategyPrime = "prime"

	// StrategySmallPrime marks a value fully reduced by the small-prime
	// strip table.
	StrategySmallPrime = "small-prime"

	// StrategyDegenerate marks values below 2, which factor to the empty
	// list.
	StrategyDegenerate = "degenerate"

	// StrategyIrreducible marks a composite every strategy failed to
	// split. It is explicitly not a primality claim: callers needing a
	// guarantee must consult IsPrime separately.
	StrategyIrreducible = "irreducible-by-heuristics"
)

// FactorizationResult is the outcome of one factorization. Factors are
// ascending integers greater than 1 whose product equals the input; this
// is a hard invariant checked before any result is returned.
type FactorizationResult struct {
	// Factors is the ordered factor list. Empty for inputs below 2.
	Factors []*big.Int

	// Confidence is in [0, 1]. 1.0 means every leaf was certified prime
	// (or the value reduced completely over exact arithmetic); anything
	// lower means at least one leaf is only irreducible-by-heuristics.
	Confidence float64

	// Strategy names what produced the top-level outcome: a search
	// strategy's name for a split, or one of the Strategy* constants.
	Strategy string

	// Iterations is the total search work spent on this call.
	Iterations uint64

	// Trace lists the strategy attempts across the recursion tree in
	// completion order, for auditing which heuristics earned their keep.
	Trace []StrategyAttempt
}

// StrategyAttempt records one strategy invocation.
type StrategyAttempt struct {
	Strategy   string
	Iterations uint64
	Found      bool
}

// clone returns an independent copy so cached entries stay immutable even
// if a caller mutates the returned slices.
func (r *FactorizationResult) clone() *FactorizationResult {
	out := &FactorizationResult{
		Confidence: r.Confidence,
		Strategy:   r.Strategy,
		Iterations: r.Iterations,
		Factors:    make([]*big.Int, len(r.Factors)),
		Trace:      make([]StrategyAttempt, len(r.Trace)),
	}
	for i, f := range r.Factors {
		out.Factors[i] = new(big.Int).Set(f)
	}
	copy(out.Trace, r.Trace)
	return out
}

// Product multiplies out the factor list; the empty list yields 1.
func (r *FactorizationResult) Product() *big.Int {
	p := big.NewInt(1)
	for _, f := range r.Factors {
		p.Mul(p, f)
	}
	return p
}
