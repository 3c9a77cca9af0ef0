package carry

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/factord/internal/field"
)

func newAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	s, err := field.NewSubstrate(field.DefaultConstants())
	require.NoError(t, err)
	return NewAnalyzer(s)
}

func TestArtifacts_Classification(t *testing.T) {
	an := newAnalyzer(t)

	// 3 * 5 = 15: patterns 00000011, 00000101, 00001111 (bit 0 first).
	records := an.Artifacts(big.NewInt(3), big.NewInt(5))
	require.Len(t, records, field.Width)

	// Bit 0: both operands set, product set -> mismatch vs XOR, carry kept
	// the bit: interference.
	assert.Equal(t, ClassInterference, records[0].Class)
	assert.False(t, records[0].Expected)
	assert.True(t, records[0].Actual)

	// Bits 1 and 2: one operand each, product has both: preserved.
	assert.Equal(t, ClassPreserved, records[1].Class)
	assert.Equal(t, ClassPreserved, records[2].Class)

	// Bit 3: neither operand, product set: emergent.
	assert.Equal(t, ClassEmergent, records[3].Class)

	// Bits 4..7: nothing anywhere: preserved.
	for i := 4; i < field.Width; i++ {
		assert.Equal(t, ClassPreserved, records[i].Class, "bit %d", i)
	}
}

func TestArtifacts_Vanishing(t *testing.T) {
	an := newAnalyzer(t)

	// 3 * 3 = 9: patterns 00000011, 00000011, 00001001. Bit 1 is set in
	// both operands but absent from the product: vanishing.
	records := an.Artifacts(big.NewInt(3), big.NewInt(3))
	assert.Equal(t, ClassVanishing, records[1].Class)

	// Bit 0 set in both and in the product: interference, not vanishing.
	assert.Equal(t, ClassInterference, records[0].Class)
}

func TestArtifacts_Commutative(t *testing.T) {
	an := newAnalyzer(t)
	a, b := big.NewInt(77), big.NewInt(13)
	assert.Equal(t, an.Artifacts(a, b), an.Artifacts(b, a))
}

func TestArtifacts_PeriodicInOperands(t *testing.T) {
	an := newAnalyzer(t)

	// Shifting an operand by a multiple of 256 leaves every pattern, and
	// therefore every record, unchanged.
	a := big.NewInt(7)
	aShifted := new(big.Int).Add(a, new(big.Int).Lsh(big.NewInt(1), 128))
	b := big.NewInt(11)
	assert.Equal(t, an.Artifacts(a, b), an.Artifacts(aShifted, b))
}

func TestArtifactsOfResidues_AgreesWithBigInts(t *testing.T) {
	an := newAnalyzer(t)
	for _, pair := range [][2]int64{{3, 5}, {7, 11}, {255, 255}, {16, 16}, {1, 1}} {
		big_ := an.Artifacts(big.NewInt(pair[0]), big.NewInt(pair[1]))
		res := an.ArtifactsOfResidues(uint8(pair[0]), uint8(pair[1]))
		assert.Equal(t, big_, res, "pair %v", pair)
	}
}

func TestArtifacts_NotUnique(t *testing.T) {
	an := newAnalyzer(t)

	// Two different factor pairs with the same operand residues produce
	// identical artifact sets: records are hints, never identities.
	first := an.Artifacts(big.NewInt(3), big.NewInt(5))
	second := an.Artifacts(big.NewInt(259), big.NewInt(261)) // 3+256, 5+256
	assert.Equal(t, first, second)
}
