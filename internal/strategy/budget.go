package strategy

import "sync/atomic"

// Budget is the shared iteration allowance threaded through a recursive
// factorization tree. Strategies spend from it before each loop iteration;
// when it runs dry every remaining search reports no candidate, which
// bounds the whole tree even when heuristics keep missing.
//
// Spend is atomic so the two parallel recursive branches after a split can
// draw from one budget safely.
type Budget struct {
	remaining atomic.Int64
	spent     atomic.Uint64
}

// NewBudget creates a budget with the given iteration limit.
func NewBudget(limit int64) *Budget {
	b := &Budget{}
	b.remaining.Store(limit)
	return b
}

// Spend deducts cost iterations, reporting false once the budget is
// exhausted. Failed spends are not recorded, so Spent reports only work
// actually performed.
func (b *Budget) Spend(cost int64) bool {
	if cost <= 0 {
		return b.remaining.Load() > 0
	}
	left := b.remaining.Add(-cost)
	if left < 0 {
		return false
	}
	b.spent.Add(uint64(cost))
	return true
}

// Remaining returns the iterations left, never negative.
func (b *Budget) Remaining() int64 {
	left := b.remaining.Load()
	if left < 0 {
		return 0
	}
	return left
}

// Spent returns the total iterations consumed so far.
func (b *Budget) Spent() uint64 {
	return b.spent.Load()
}
