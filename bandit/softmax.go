package bandit

import "math"

// softmaxPolicy implements temperature-decayed softmax selection.
//
// Minimization uses a principled inversion — softmax over the negated mean —
// rather than the source's `2/k − p(a)` flip, which is not a proper
// probability distribution in general. See DESIGN.md.
type softmaxPolicy struct{ defaultRewardHooks }

func softmaxTemperature(p Params, n int64) float64 {
	t := p.StartingTemperature - p.TempDecayPerStep*float64(n)
	return math.Max(p.MinTemperature, t)
}

func softmaxWeights(names []string, arms map[string]ArmState, p Params, temp float64) []float64 {
	sign := 1.0
	if !p.Maximize {
		sign = -1.0
	}
	weights := make([]float64, len(names))
	for i, n := range names {
		weights[i] = math.Exp(sign * arms[n].MeanReward / temp)
	}
	return weights
}

func (softmaxPolicy) choose(arms map[string]ArmState, p Params, rng Entropy, chooseCount int64) string {
	names := liveArmNames(arms)
	var total int64
	for _, n := range names {
		total += arms[n].N
	}
	temp := softmaxTemperature(p, total)
	weights := softmaxWeights(names, arms, p, temp)
	return weightedSample(names, weights, rng)
}

func (softmaxPolicy) selectionProbabilities(arms map[string]ArmState, p Params, chooseCount int64) map[string]float64 {
	names := liveArmNames(arms)
	var total int64
	for _, n := range names {
		total += arms[n].N
	}
	temp := softmaxTemperature(p, total)
	weights := softmaxWeights(names, arms, p, temp)
	return normalizeProbabilities(names, weights)
}
