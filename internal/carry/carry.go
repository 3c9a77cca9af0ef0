// Package carry analyzes per-bit discrepancies between a product's field
// pattern and the naive XOR combination of its operands' patterns. The
// discrepancies ("artifacts") feed strategy candidate generation only: they
// are descriptive hints, never complete or unique. Two different factor
// pairs can legitimately produce the same artifact set.
package carry

import (
	"math/big"

	"github.com/fyrsmithlabs/factord/internal/field"
)

// Class classifies one bit position's relationship between the expected
// XOR combination and the product's actual pattern.
type Class string

const (
	// ClassPreserved means the product bit matches the XOR expectation.
	ClassPreserved Class = "preserved"

	// ClassVanishing means both operands had the bit but the product does
	// not: the bit was carried away during multiplication.
	ClassVanishing Class = "vanishing"

	// ClassEmergent means neither operand had the bit but the product
	// does: the bit was carried in.
	ClassEmergent Class = "emergent"

	// ClassInterference covers the remaining mismatches.
	ClassInterference Class = "interference"
)

// Artifact records the classification of one bit position for an ordered
// operand pair and their product.
type Artifact struct {
	Bit      int
	Class    Class
	Expected bool // pattern(a)[bit] XOR pattern(b)[bit]
	Actual   bool // pattern(a*b)[bit]
}

// Analyzer computes artifact records against one substrate.
type Analyzer struct {
	substrate *field.Substrate
}

// NewAnalyzer creates an analyzer bound to the given substrate.
func NewAnalyzer(substrate *field.Substrate) *Analyzer {
	return &Analyzer{substrate: substrate}
}

// Artifacts computes p = a*b and classifies each of the eight bit
// positions. The pair is ordered; Artifacts(a, b) and Artifacts(b, a)
// produce identical records because XOR and multiplication commute.
func (an *Analyzer) Artifacts(a, b *big.Int) []Artifact {
	p := new(big.Int).Mul(a, b)
	return an.artifactsOf(an.substrate.Pattern(a), an.substrate.Pattern(b), an.substrate.Pattern(p))
}

// ArtifactsOfResidues classifies against residue classes directly, with the
// product residue computed mod 256. Strategies use this form to evaluate
// candidate residue pairs without big-integer multiplication.
func (an *Analyzer) ArtifactsOfResidues(ra, rb uint8) []Artifact {
	rp := ra * rb // uint8 arithmetic is already mod 256
	return an.artifactsOf(field.PatternOf(ra), field.PatternOf(rb), field.PatternOf(rp))
}

func (an *Analyzer) artifactsOf(pa, pb, pp field.Pattern) []Artifact {
	records := make([]Artifact, field.Width)
	for i := 0; i < field.Width; i++ {
		expected := pa[i] != pb[i]
		actual := pp[i]
		records[i] = Artifact{
			Bit:      i,
			Class:    classify(pa[i], pb[i], actual),
			Expected: expected,
			Actual:   actual,
		}
	}
	return records
}

// classify orders the checks so the carry-specific classes take precedence
// over the plain match/mismatch split.
func classify(a, b, actual bool) Class {
	switch {
	case a && b && !actual:
		return ClassVanishing
	case !a && !b && actual:
		return ClassEmergent
	case (a != b) == actual:
		return ClassPreserved
	default:
		return ClassInterference
	}
}
