// Package field implements the field substrate: a pure mapping from an
// arbitrary-precision value to a fixed-width periodic fingerprint and a
// fixed table of field constants.
//
// The fingerprint depends only on the value's residue modulo 256, never on
// its magnitude, so Pattern(v) == Pattern(v mod 256) for every v. The
// constants are positive reals fixed at construction; their exact values
// tune heuristic search quality and never affect correctness.
package field

import (
	"math/big"
	"strings"
)

// Width is the number of bit positions in a field pattern.
const Width = 8

// Period is the residue period of the pattern mapping.
const Period = 256

// Pattern is the fixed-width periodic fingerprint of a value: bit i is set
// iff bit i of (v mod 256) is set.
type Pattern [Width]bool

// Constants is the fixed ordered table of field constants, one per bit
// position, all strictly positive.
type Constants [Width]float64

// DefaultConstants returns the stock constant table. Position 0 is the
// identity; the rest are drawn from well-known irrational ratios so that
// products of distinct subsets rarely collide.
func DefaultConstants() Constants {
	return Constants{
		1.0,                 // identity
		1.8392867552141612,  // tribonacci constant
		1.618033988749895,   // golden ratio
		0.5,                 // one half
		0.15915494309189535, // 1 / 2*pi
		6.283185307179586,   // 2*pi
		0.19961197478400415,
		0.014134725141734695,
	}
}

// Substrate computes field patterns and owns the constant table.
type Substrate struct {
	constants Constants
}

// NewSubstrate creates a substrate with the given constant table. Every
// constant must be strictly positive.
func NewSubstrate(constants Constants) (*Substrate, error) {
	for _, c := range constants {
		if c <= 0 {
			return nil, ErrNonPositiveConstant
		}
	}
	return &Substrate{constants: constants}, nil
}

// Constants returns the substrate's constant table.
func (s *Substrate) Constants() Constants {
	return s.constants
}

// Pattern returns the fingerprint of v. Pure and O(1): only the low eight
// bits of v participate.
func (s *Substrate) Pattern(v *big.Int) Pattern {
	return PatternOf(Residue(v))
}

// Residue returns v mod 256. big.Int's Mod is Euclidean, so the result is
// in [0, 255] regardless of sign.
func Residue(v *big.Int) uint8 {
	var m big.Int
	return uint8(m.Mod(v, period).Uint64())
}

var period = big.NewInt(Period)

// PatternOf returns the fingerprint of a residue directly.
func PatternOf(residue uint8) Pattern {
	var p Pattern
	for i := 0; i < Width; i++ {
		p[i] = residue&(1<<i) != 0
	}
	return p
}

// Mask packs the pattern back into its residue byte.
func (p Pattern) Mask() uint8 {
	var m uint8
	for i := 0; i < Width; i++ {
		if p[i] {
			m |= 1 << i
		}
	}
	return m
}

// ActiveBits returns the indices of set positions in ascending order.
func (p Pattern) ActiveBits() []int {
	bits := make([]int, 0, Width)
	for i := 0; i < Width; i++ {
		if p[i] {
			bits = append(bits, i)
		}
	}
	return bits
}

// String renders the pattern as eight characters, bit 0 first.
func (p Pattern) String() string {
	var b strings.Builder
	for i := 0; i < Width; i++ {
		if p[i] {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
