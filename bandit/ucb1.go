package bandit

import "math"

type ucb1Policy struct{ defaultRewardHooks }

// unrewardedColdStart returns whether the cold-start round-robin branch
// applies for the given chooseCount, along with the ordered list of
// unrewarded (n==1) live arm names it rounds over.
func unrewardedColdStart(names []string, arms map[string]ArmState, chooseCount int64) (unrewarded []string, active bool) {
	for _, n := range names {
		if arms[n].N == 1 {
			unrewarded = append(unrewarded, n)
		}
	}
	k := int64(len(names))
	u := int64(len(unrewarded))
	active = u > 0 && chooseCount%k < u
	return unrewarded, active
}

func (ucb1Policy) choose(arms map[string]ArmState, p Params, rng Entropy, chooseCount int64) string {
	names := liveArmNames(arms)
	unrewarded, active := unrewardedColdStart(names, arms, chooseCount)
	if active {
		k := int64(len(names))
		return unrewarded[chooseCount%k]
	}
	return argOptimumUCB(names, arms, p)
}

func (ucb1Policy) selectionProbabilities(arms map[string]ArmState, p Params, chooseCount int64) map[string]float64 {
	names := liveArmNames(arms)
	_, active := unrewardedColdStart(names, arms, chooseCount)

	out := make(map[string]float64, len(names))
	if active {
		uniform := 1.0 / float64(len(names))
		for _, n := range names {
			out[n] = uniform
		}
		return out
	}
	best := argOptimumUCB(names, arms, p)
	for _, n := range names {
		out[n] = 0
	}
	out[best] = 1.0
	return out
}

func argOptimumUCB(names []string, arms map[string]ArmState, p Params) string {
	var total int64
	for _, n := range names {
		total += arms[n].N
	}
	logN := math.Log(float64(total))

	best := names[0]
	bestScore := ucbScore(arms[best], p, logN)
	for _, n := range names[1:] {
		score := ucbScore(arms[n], p, logN)
		if (p.Maximize && score > bestScore) || (!p.Maximize && score < bestScore) {
			best = n
			bestScore = score
		}
	}
	return best
}

func ucbScore(st ArmState, p Params, logN float64) float64 {
	bonus := p.ExplorationMult * math.Sqrt(2*logN/float64(st.N))
	if p.Maximize {
		return st.MeanReward + bonus
	}
	return st.MeanReward - bonus
}
