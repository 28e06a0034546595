package bandit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProbabilities_SumsToOne(t *testing.T) {
	names := []string{"a", "b", "c"}
	weights := []float64{1, 2, 3}

	dist := normalizeProbabilities(names, weights)

	total := 0.0
	for _, p := range dist {
		total += p
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.InDelta(t, 1.0/6, dist["a"], 1e-9)
	assert.InDelta(t, 3.0/6, dist["c"], 1e-9)
}

func TestNormalizeProbabilities_AllZeroFallsBackToUniform(t *testing.T) {
	names := []string{"a", "b"}
	weights := []float64{0, 0}

	dist := normalizeProbabilities(names, weights)

	assert.InDelta(t, 0.5, dist["a"], 1e-9)
	assert.InDelta(t, 0.5, dist["b"], 1e-9)
}

func TestWeightedSample_AlwaysReturnsAName(t *testing.T) {
	names := []string{"a", "b", "c"}
	weights := []float64{1, 1, 1}
	rng := NewEntropy(42)

	for i := 0; i < 100; i++ {
		got := weightedSample(names, weights, rng)
		assert.Contains(t, names, got)
	}
}
