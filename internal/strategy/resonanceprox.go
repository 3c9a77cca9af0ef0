package strategy

import (
	"context"
	"math"
	"math/big"

	"github.com/fyrsmithlabs/factord/internal/numeric"
	"github.com/fyrsmithlabs/factord/internal/resonance"
)

// ResonanceProximity proposes candidates whose resonance, multiplied by the
// resonance of the exact complement residue class, approximates the value's
// own resonance within a fixed relative tolerance. Resonance products do
// not factor through multiplication in general, so this is a pure ranking
// heuristic; candidates passing the filter are still verified by division.
type ResonanceProximity struct {
	engine    *resonance.Engine
	window    int64
	tolerance float64
}

// NewResonanceProximity creates the strategy with a division-test window
// and a relative tolerance in (0, 1].
func NewResonanceProximity(engine *resonance.Engine, window int64, tolerance float64) (*ResonanceProximity, error) {
	if window <= 0 {
		return nil, ErrWindowTooSmall
	}
	if tolerance <= 0 || tolerance > 1 {
		return nil, ErrToleranceInvalid
	}
	return &ResonanceProximity{engine: engine, window: window, tolerance: tolerance}, nil
}

// Name implements Strategy.
func (s *ResonanceProximity) Name() string { return "resonance-proximity" }

// Propose implements Strategy.
func (s *ResonanceProximity) Propose(ctx context.Context, n *big.Int, hints Hints, budget *Budget) (*big.Int, error) {
	near := s.nearResidues(hints)
	if len(near) == 0 {
		return nil, ErrNoCandidate
	}

	d := new(big.Int)
	q := new(big.Int)
	r := new(big.Int)
	base := new(big.Int)
	tested := int64(0)

	for k := int64(0); tested < s.window; k++ {
		base.SetInt64(256 * k)
		if base.Cmp(n) >= 0 {
			break
		}
		for _, residue := range near {
			if err := checkpoint(ctx, budget, 1); err != nil {
				return nil, err
			}
			if tested >= s.window {
				break
			}
			d.Add(base, residue)
			if d.Cmp(two) <= 0 {
				continue
			}
			tested++
			if divides(n, d, q, r) {
				return new(big.Int).Set(d), nil
			}
		}
	}
	return nil, ErrNoCandidate
}

// nearResidues returns the odd residue classes whose candidate-times-
// complement resonance lands within tolerance of the target.
func (s *ResonanceProximity) nearResidues(hints Hints) []*big.Int {
	target := hints.Resonance
	out := make([]*big.Int, 0, 64)
	for r := 1; r < 256; r += 2 {
		inv, err := numeric.OddInverse256(uint8(r))
		if err != nil {
			continue
		}
		comp := hints.Residue * inv
		approx := s.engine.OfResidue(uint8(r)) * s.engine.OfResidue(comp)
		if math.Abs(approx-target) <= s.tolerance*target {
			out = append(out, big.NewInt(int64(r)))
		}
	}
	return out
}
