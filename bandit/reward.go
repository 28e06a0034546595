package bandit

// ApplyReward implements the single-reward scale-and-update. It returns the
// new arm state and the new experiment maxReward. Storage backends call this
// directly so the read-compute-write cycle happens inside whatever
// transaction (mutex, Lua script) they use to guarantee atomicity.
func ApplyReward(old ArmState, maxReward, lowerBound, r float64) (ArmState, float64) {
	rPrime := maxf(r, lowerBound)
	maxPrime := maxf(maxReward, rPrime)

	var s float64
	if maxPrime == lowerBound {
		s = lowerBound
	} else {
		s = (rPrime - lowerBound) / (maxPrime - lowerBound)
	}

	delta := s - old.MeanReward
	newMean := old.MeanReward + delta/float64(old.N+1)

	return ArmState{N: old.N + 1, MeanReward: newMean, Deleted: old.Deleted}, maxPrime
}

// ApplyBulkReward implements the parallel-variance merge for a
// pre-aggregated batch {mean, max, count}.
func ApplyBulkReward(old ArmState, maxReward, lowerBound float64, b BulkReward) (ArmState, float64) {
	muPrime := maxf(b.Mean, lowerBound)
	xPrime := maxf(b.Max, lowerBound)
	maxPrime := maxf(maxReward, xPrime)

	var s float64
	if maxPrime == lowerBound {
		s = lowerBound
	} else {
		s = (muPrime - lowerBound) / (maxPrime - lowerBound)
	}

	delta := s - old.MeanReward
	newN := old.N + b.Count
	newMean := old.MeanReward + delta*(float64(b.Count)/float64(newN))

	return ArmState{N: newN, MeanReward: newMean, Deleted: old.Deleted}, maxPrime
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
