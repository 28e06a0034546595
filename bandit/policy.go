package bandit

// policy is the per-algorithm selection strategy. means/armStates are always
// restricted to live arms by the caller (the engine façade).
type policy interface {
	// choose picks one live arm name given current states and params.
	choose(arms map[string]ArmState, p Params, rng Entropy, chooseCount int64) string

	// selectionProbabilities returns the distribution over live arms that
	// choose would sample from given the current state, without mutating
	// anything (including chooseCount — see the open-question resolution
	// in DESIGN.md).
	selectionProbabilities(arms map[string]ArmState, p Params, chooseCount int64) map[string]float64

	// accumulatesReward reports whether this algorithm's rewardHook is the
	// scale-and-update math (true, the default) or a no-op (false, random
	// only). The engine façade uses this to skip the backend round-trip
	// entirely for random.
	accumulatesReward() bool
}

// defaultRewardHooks is embedded by every policy except random: its
// rewardHook is the shared scale-and-update math, applied by the storage
// backend itself (ApplyReward/ApplyBulkReward in reward.go) inside whatever
// transaction guarantees atomicity.
type defaultRewardHooks struct{}

func (defaultRewardHooks) accumulatesReward() bool { return true }

// policyFor dispatches on the tagged algorithm field — the Go analogue of
// the source's dynamic multimethod dispatch (see SPEC_FULL.md §9).
func policyFor(algo Algorithm) (policy, error) {
	switch algo {
	case EpsilonGreedy:
		return epsilonGreedyPolicy{}, nil
	case UCB1:
		return ucb1Policy{}, nil
	case Softmax:
		return softmaxPolicy{}, nil
	case Random:
		return randomPolicy{}, nil
	default:
		return nil, ErrUnknownAlgorithm
	}
}

// argOptimum returns the arm name with the best mean reward: argmax if
// maximize, argmin otherwise. Ties break on the first name in sorted order.
func argOptimum(names []string, arms map[string]ArmState, maximize bool) string {
	best := names[0]
	bestMean := arms[best].MeanReward
	for _, n := range names[1:] {
		m := arms[n].MeanReward
		if (maximize && m > bestMean) || (!maximize && m < bestMean) {
			best = n
			bestMean = m
		}
	}
	return best
}
