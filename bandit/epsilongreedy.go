package bandit

type epsilonGreedyPolicy struct{ defaultRewardHooks }

func (epsilonGreedyPolicy) choose(arms map[string]ArmState, p Params, rng Entropy, chooseCount int64) string {
	names := liveArmNames(arms)
	if rng.Float64() >= p.Epsilon {
		return argOptimum(names, arms, p.Maximize)
	}
	return names[rng.Intn(len(names))]
}

func (epsilonGreedyPolicy) selectionProbabilities(arms map[string]ArmState, p Params, chooseCount int64) map[string]float64 {
	names := liveArmNames(arms)
	k := float64(len(names))
	best := argOptimum(names, arms, p.Maximize)

	out := make(map[string]float64, len(names))
	for _, n := range names {
		out[n] = p.Epsilon / k
	}
	out[best] = 1 - p.Epsilon + p.Epsilon/k
	return out
}
