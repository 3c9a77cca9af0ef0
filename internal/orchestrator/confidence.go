package orchestrator

// Confidence is assembled from named signals combined by one fixed,
// documented function so the score is auditable instead of an opaque chain
// of multiplications. Signals are values in [0, 1]; CombineSignals takes
// their weighted average and clamps the result into [0, 1].
//
// The signals in use:
//
//   - oracle-certainty: 1 - 4^-k for the oracle's witness count, or 1.0 on
//     the deterministic path. Attached when a leaf is certified prime.
//   - heuristic-coverage: 0 when every strategy exhausted its budget
//     without a verified candidate. Attached to irreducible leaves.
//
// A verified split contributes no signal of its own: exact division and
// product reconstruction are arithmetic facts, so a composite node's
// confidence is simply the minimum over its leaves.

// Signal is one named confidence contribution.
type Signal struct {
	Name   string
	Value  float64
	Weight float64
}

// CombineSignals returns the weighted average of the signals, clamped to
// [0, 1]. No signals yields 1.0 (nothing casts doubt).
func CombineSignals(signals ...Signal) float64 {
	var sum, weight float64
	for _, s := range signals {
		sum += s.Value * s.Weight
		weight += s.Weight
	}
	if weight == 0 {
		return 1.0
	}
	c := sum / weight
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// irreducibleConfidence scores a leaf no strategy could split. The oracle
// said composite with the given certainty, and heuristic coverage is zero;
// the result must be visibly below 1.0 so callers never mistake it for a
// confirmed prime.
func irreducibleConfidence(oracleCertainty float64) float64 {
	return CombineSignals(
		Signal{Name: "oracle-certainty", Value: oracleCertainty, Weight: 1},
		Signal{Name: "heuristic-coverage", Value: 0, Weight: 1},
	)
}

// minConfidence folds leaf confidences up a split node.
func minConfidence(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
