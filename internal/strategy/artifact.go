package strategy

import (
	"context"
	"math/big"

	"github.com/fyrsmithlabs/factord/internal/carry"
	"github.com/fyrsmithlabs/factord/internal/field"
	"github.com/fyrsmithlabs/factord/internal/numeric"
)

// ArtifactGuided restricts candidate divisors to residue classes whose
// field pattern is consistent with the carry artifacts observed for the
// value's balanced split: a vanishing bit requires both the candidate and
// its complement class to carry that bit, an emergent bit requires neither.
//
// The complement class is exact, not heuristic: for an odd candidate d
// dividing n, (n/d) mod 256 == (n mod 256) * d^-1 mod 256, so inconsistent
// classes can be skipped without any division.
type ArtifactGuided struct {
	window int64
}

// NewArtifactGuided creates the strategy with a division-test window.
func NewArtifactGuided(window int64) (*ArtifactGuided, error) {
	if window <= 0 {
		return nil, ErrWindowTooSmall
	}
	return &ArtifactGuided{window: window}, nil
}

// Name implements Strategy.
func (s *ArtifactGuided) Name() string { return "artifact-guided" }

// Propose implements Strategy.
func (s *ArtifactGuided) Propose(ctx context.Context, n *big.Int, hints Hints, budget *Budget) (*big.Int, error) {
	admissible := admissibleResidues(hints)
	if len(admissible) == 0 {
		return nil, ErrNoCandidate
	}

	d := new(big.Int)
	q := new(big.Int)
	r := new(big.Int)
	base := new(big.Int)
	tested := int64(0)

	// Walk pages outward so small divisors are found first. Page k holds
	// the admissible residues offset by 256*k.
	for k := int64(0); tested < s.window; k++ {
		base.SetInt64(256 * k)
		if base.Cmp(n) >= 0 {
			break
		}
		for _, residue := range admissible {
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

// admissibleResidues returns the odd residue classes consistent with the
// artifact constraints, as reusable big.Int offsets in ascending order.
func admissibleResidues(hints Hints) []*big.Int {
	required, forbidden := artifactConstraints(hints.Artifacts)

	out := make([]*big.Int, 0, 128)
	for r := 1; r < 256; r += 2 {
		inv, err := numeric.OddInverse256(uint8(r))
		if err != nil {
			continue
		}
		comp := hints.Residue * inv // complement class, uint8 wraps mod 256
		if residuePairFits(field.PatternOf(uint8(r)), field.PatternOf(comp), required, forbidden) {
			out = append(out, big.NewInt(int64(r)))
		}
	}
	return out
}

// artifactConstraints splits the artifact set into required and forbidden
// bit masks. Preserved and interference bits constrain nothing.
func artifactConstraints(artifacts []carry.Artifact) (required, forbidden uint8) {
	for _, a := range artifacts {
		switch a.Class {
		case carry.ClassVanishing:
			required |= 1 << a.Bit
		case carry.ClassEmergent:
			forbidden |= 1 << a.Bit
		}
	}
	return required, forbidden
}

func residuePairFits(candidate, complement field.Pattern, required, forbidden uint8) bool {
	cm := candidate.Mask()
	pm := complement.Mask()
	if cm&required != required || pm&required != required {
		return false
	}
	if cm&forbidden != 0 || pm&forbidden != 0 {
		return false
	}
	return true
}
