package strategy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudget_SpendAndExhaust(t *testing.T) {
	b := NewBudget(3)

	assert.True(t, b.Spend(1))
	assert.True(t, b.Spend(2))
	assert.False(t, b.Spend(1), "budget is spent")
	assert.Equal(t, uint64(3), b.Spent())
	assert.Equal(t, int64(0), b.Remaining())
}

func TestBudget_FailedSpendNotCounted(t *testing.T) {
	b := NewBudget(1)
	assert.True(t, b.Spend(1))
	assert.False(t, b.Spend(5))
	assert.Equal(t, uint64(1), b.Spent(), "only granted work is spent")
}

func TestBudget_ZeroCostProbesRemaining(t *testing.T) {
	b := NewBudget(2)
	assert.True(t, b.Spend(0))
	b.Spend(2)
	assert.False(t, b.Spend(0))
}

func TestBudget_ConcurrentSpend(t *testing.T) {
	const limit = 1000
	b := NewBudget(limit)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b.Spend(1) {
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(limit), b.Spent(), "no double spending under contention")
	assert.Equal(t, int64(0), b.Remaining())
}
