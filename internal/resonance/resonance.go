// Package resonance derives a scalar heuristic score from a field pattern:
// the product of the field constants at the pattern's active positions.
// Resonance is a pure function of the pattern alone, always positive, and
// equals 1.0 for the all-zero pattern (the empty product). It ranks search
// candidates and carries no correctness weight.
package resonance

import (
	"math/big"

	"github.com/fyrsmithlabs/factord/internal/field"
)

// Engine computes resonance scores against one substrate's constant table.
type Engine struct {
	substrate *field.Substrate
}

// NewEngine creates a resonance engine bound to the given substrate.
func NewEngine(substrate *field.Substrate) *Engine {
	return &Engine{substrate: substrate}
}

// Resonance returns the score for v.
func (e *Engine) Resonance(v *big.Int) float64 {
	return e.OfPattern(e.substrate.Pattern(v))
}

// OfResidue returns the score for a residue class directly. Strategies use
// this to score all 256 classes without materializing big integers.
func (e *Engine) OfResidue(residue uint8) float64 {
	return e.OfPattern(field.PatternOf(residue))
}

// OfPattern returns the score for a pattern: the product of constants at
// active positions, 1.0 when none are active.
func (e *Engine) OfPattern(p field.Pattern) float64 {
	constants := e.substrate.Constants()
	score := 1.0
	for i, active := range p {
		if active {
			score *= constants[i]
		}
	}
	return score
}
