package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubstrate(t *testing.T) *Substrate {
	t.Helper()
	s, err := NewSubstrate(DefaultConstants())
	require.NoError(t, err)
	return s
}

func TestNewSubstrate_RejectsNonPositiveConstants(t *testing.T) {
	c := DefaultConstants()
	c[3] = 0
	_, err := NewSubstrate(c)
	assert.ErrorIs(t, err, ErrNonPositiveConstant)

	c[3] = -1.5
	_, err = NewSubstrate(c)
	assert.ErrorIs(t, err, ErrNonPositiveConstant)
}

func TestPattern_MatchesLowBits(t *testing.T) {
	s := newSubstrate(t)

	tests := []struct {
		value  int64
		mask   uint8
	}{
		{0, 0x00},
		{1, 0x01},
		{2, 0x02},
		{77, 77},
		{255, 0xFF},
		{256, 0x00},
		{257, 0x01},
	}
	for _, tt := range tests {
		p := s.Pattern(big.NewInt(tt.value))
		assert.Equal(t, tt.mask, p.Mask(), "value %d", tt.value)
	}
}

func TestPattern_Periodicity(t *testing.T) {
	s := newSubstrate(t)

	// pattern(v) == pattern(v mod 256) regardless of magnitude.
	big1 := new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)
	mod := new(big.Int).Mod(big1, big.NewInt(256))
	assert.Equal(t, s.Pattern(mod), s.Pattern(big1))

	for _, v := range []int64{255, 256, 257} {
		reduced := v % 256
		assert.Equal(t, s.Pattern(big.NewInt(reduced)), s.Pattern(big.NewInt(v)), "value %d", v)
	}
}

func TestPattern_DependsOnlyOnResidue(t *testing.T) {
	s := newSubstrate(t)
	for r := int64(0); r < 256; r++ {
		base := s.Pattern(big.NewInt(r))
		shifted := new(big.Int).Add(big.NewInt(r), new(big.Int).Lsh(big.NewInt(1), 200))
		// 2^200 is 0 mod 256, so the pattern must not move.
		assert.Equal(t, base, s.Pattern(shifted), "residue %d", r)
	}
}

func TestPattern_Accessors(t *testing.T) {
	p := PatternOf(0b10100101)
	assert.Equal(t, []int{0, 2, 5, 7}, p.ActiveBits())
	assert.Equal(t, "10100101", reverseString(p.String()))
	assert.Equal(t, uint8(0b10100101), p.Mask())

	assert.Empty(t, PatternOf(0).ActiveBits())
}

// reverseString flips the bit-0-first rendering to most-significant-first
// for comparison against binary literals.
func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func TestDefaultConstants_AllPositive(t *testing.T) {
	for i, c := range DefaultConstants() {
		assert.Greater(t, c, 0.0, "constant %d", i)
	}
}

func TestResidue(t *testing.T) {
	assert.Equal(t, uint8(0), Residue(big.NewInt(256)))
	assert.Equal(t, uint8(255), Residue(big.NewInt(255)))
	assert.Equal(t, uint8(1), Residue(big.NewInt(257)))
}
