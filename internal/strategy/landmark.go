package strategy

import (
	"context"
	"math/big"
)

// StructuralLandmark checks a fixed set of periodic landmark values as
// candidate divisors: page boundaries (multiples of the page size) plus
// small offsets, and the classic power landmarks 2^k +/- 1. Landmarks have
// no demonstrated number-theoretic basis; the strategy exists because
// divisors of practical inputs cluster on round structures often enough to
// be worth a cheap bounded probe before the expensive fallbacks.
type StructuralLandmark struct {
	pageSize int64
	maxPages int64
}

// landmarkOffsets are the probed distances from each page boundary. All
// are coprime to the default page size of 48.
var landmarkOffsets = []int64{-11, -7, -5, -1, 1, 5, 7, 11}

// NewStructuralLandmark creates the strategy with a page size and a page
// count bound.
func NewStructuralLandmark(pageSize, maxPages int64) (*StructuralLandmark, error) {
	if pageSize < 2 {
		return nil, ErrPageSizeTooSmall
	}
	if maxPages <= 0 {
		return nil, ErrWindowTooSmall
	}
	return &StructuralLandmark{pageSize: pageSize, maxPages: maxPages}, nil
}

// Name implements Strategy.
func (s *StructuralLandmark) Name() string { return "structural-landmark" }

// Propose implements Strategy.
func (s *StructuralLandmark) Propose(ctx context.Context, n *big.Int, hints Hints, budget *Budget) (*big.Int, error) {
	d := new(big.Int)
	q := new(big.Int)
	r := new(big.Int)

	// Power landmarks first: 2^k - 1 and 2^k + 1 up to half the operand's
	// bit length catch Mersenne- and Fermat-shaped divisors.
	maxExp := n.BitLen()/2 + 1
	if maxExp > 128 {
		maxExp = 128
	}
	for k := 2; k <= maxExp; k++ {
		for _, delta := range []int64{-1, 1} {
			if err := checkpoint(ctx, budget, 1); err != nil {
				return nil, err
			}
			d.Lsh(one, uint(k))
			d.Add(d, big.NewInt(delta))
			if divides(n, d, q, r) {
				return new(big.Int).Set(d), nil
			}
		}
	}

	// Page landmarks: pageSize*k with small offsets.
	for page := int64(1); page <= s.maxPages; page++ {
		base := page * s.pageSize
		for _, off := range landmarkOffsets {
			if err := checkpoint(ctx, budget, 1); err != nil {
				return nil, err
			}
			d.SetInt64(base + off)
			if d.Cmp(two) <= 0 {
				continue
			}
			if d.Cmp(n) >= 0 {
				return nil, ErrNoCandidate
			}
			if divides(n, d, q, r) {
				return new(big.Int).Set(d), nil
			}
		}
	}
	return nil, ErrNoCandidate
}
