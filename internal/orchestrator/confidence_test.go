package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineSignals(t *testing.T) {
	tests := []struct {
		name    string
		signals []Signal
		want    float64
	}{
		{
			name:    "no signals means no doubt",
			signals: nil,
			want:    1.0,
		},
		{
			name: "single signal passes through",
			signals: []Signal{
				{Name: "oracle-certainty", Value: 0.75, Weight: 1},
			},
			want: 0.75,
		},
		{
			name: "equal weights average",
			signals: []Signal{
				{Name: "oracle-certainty", Value: 1.0, Weight: 1},
				{Name: "heuristic-coverage", Value: 0.0, Weight: 1},
			},
			want: 0.5,
		},
		{
			name: "weights skew the average",
			signals: []Signal{
				{Name: "a", Value: 1.0, Weight: 3},
				{Name: "b", Value: 0.0, Weight: 1},
			},
			want: 0.75,
		},
		{
			name: "zero total weight means no doubt",
			signals: []Signal{
				{Name: "a", Value: 0.2, Weight: 0},
			},
			want: 1.0,
		},
		{
			name: "clamped below",
			signals: []Signal{
				{Name: "a", Value: -2.0, Weight: 1},
			},
			want: 0.0,
		},
		{
			name: "clamped above",
			signals: []Signal{
				{Name: "a", Value: 3.0, Weight: 1},
			},
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CombineSignals(tt.signals...), 1e-12)
		})
	}
}

func TestIrreducibleConfidence(t *testing.T) {
	// With a fully certain oracle the score sits at exactly 0.5: the
	// composite verdict is trusted, the missing witness factor is not.
	assert.InDelta(t, 0.5, irreducibleConfidence(1.0), 1e-12)

	// Lower oracle certainty drags the score down, never up.
	assert.Less(t, irreducibleConfidence(0.9), 0.5)

	// Never 1.0, whatever the oracle said.
	assert.Less(t, irreducibleConfidence(1.0), 1.0)
}

func TestMinConfidence(t *testing.T) {
	assert.Equal(t, 0.5, minConfidence(0.5, 1.0))
	assert.Equal(t, 0.5, minConfidence(1.0, 0.5))
	assert.Equal(t, 1.0, minConfidence(1.0, 1.0))
}
