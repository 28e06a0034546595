package bandit

import "gonum.org/v1/gonum/stat/sampleuv"

// entropySource adapts an Entropy to the math/rand.Source interface gonum's
// sampling routines expect, so callers still go through the injected RNG
// rather than a package-global source.
type entropySource struct{ e Entropy }

// Int63 must span the full [0, 2^63) a math/rand.Source promises — the
// largest Float64() value, 1-2^-53, scaled by 1<<63 gives 2^63-2^10, which
// still fits in int64. Scaling by a smaller power biases every consumer
// built on top of Int63 (including gonum's weighted sampler) toward the
// low half of the distribution.
func (s entropySource) Int63() int64 {
	return int64(s.e.Float64() * (1 << 63))
}

func (s entropySource) Seed(int64) {}

// weightedSample draws a single name from names proportional to weights
// (same length, weights need not be pre-normalized) using gonum's weighted
// sampler. names must be non-empty.
func weightedSample(names []string, weights []float64, rng Entropy) string {
	w := make([]float64, len(weights))
	copy(w, weights)
	sampler := sampleuv.NewWeighted(w, entropySource{rng})
	idx, ok := sampler.Take()
	if !ok {
		// All weights were zero or the sampler is exhausted; fall back to a
		// uniform draw so callers always get a live arm back.
		return names[rng.Intn(len(names))]
	}
	return names[idx]
}

// normalizeProbabilities converts raw weights into a distribution that sums
// to 1.0, keyed by arm name. Used by softmax's selectionProbabilities;
// weightedSample takes the raw weights and does not go through it.
func normalizeProbabilities(names []string, weights []float64) map[string]float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	out := make(map[string]float64, len(names))
	if total <= 0 {
		uniform := 1.0 / float64(len(names))
		for _, n := range names {
			out[n] = uniform
		}
		return out
	}
	for i, n := range names {
		out[n] = weights[i] / total
	}
	return out
}
