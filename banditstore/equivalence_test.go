package banditstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alextanhongpin/banditengine/bandit"
)

// P2: the memory and remote backends produce identical UCB1 choice
// sequences for the same problem trace. UCB1's choose is deterministic
// (cold-start round-robin, then argmax/argmin with a stable sorted
// tie-break) so no shared entropy source is even required for this policy.
func TestBackendEquivalence_UCB1(t *testing.T) {
	if testing.Short() {
		t.Skip("dual-backend run skipped under -short")
	}
	ctx := context.Background()

	mem := NewMemory()
	s := miniredis.RunT(t)
	redisBackend := NewRedis(redis.NewClient(&redis.Options{Addr: s.Addr()}))

	p := bandit.Params{Algo: bandit.UCB1, Maximize: true, ExplorationMult: 1.0}
	armNames := []string{"a", "b", "c"}
	engMem := bandit.New(mem)
	engRedis := bandit.New(redisBackend)

	ref := bandit.Ref{Algo: bandit.UCB1, Experiment: "exp"}
	learner := bandit.Learner{Ref: ref, ArmNames: armNames, Params: p}
	require.NoError(t, engMem.Init(ctx, learner))
	require.NoError(t, engRedis.Init(ctx, learner))

	// A fixed, arbitrary reward trace applied to whichever arm each engine
	// chooses at that step.
	rewards := []float64{0.9, 0.1, 0.5, 0.3, 0.7, 0.2, 0.95, 0.05, 0.6, 0.4}

	for i, r := range rewards {
		armMem, ok, err := engMem.Choose(ctx, ref)
		require.NoError(t, err)
		require.True(t, ok)

		armRedis, ok, err := engRedis.Choose(ctx, ref)
		require.NoError(t, err)
		require.True(t, ok)

		require.Equalf(t, armMem, armRedis, "step %d: memory chose %q, redis chose %q", i, armMem, armRedis)

		require.NoError(t, engMem.Reward(ctx, ref, bandit.Reward{Arm: armMem, RewardValue: r}))
		require.NoError(t, engRedis.Reward(ctx, ref, bandit.Reward{Arm: armRedis, RewardValue: r}))
	}

	statesMem, err := engMem.GetArmStates(ctx, ref)
	require.NoError(t, err)
	statesRedis, err := engRedis.GetArmStates(ctx, ref)
	require.NoError(t, err)

	require.Equal(t, len(statesMem), len(statesRedis))
	for arm, stMem := range statesMem {
		stRedis, ok := statesRedis[arm]
		require.True(t, ok)
		assert.Equal(t, stMem.N, stRedis.N)
		assert.InDelta(t, stMem.MeanReward, stRedis.MeanReward, 1e-9)
	}
}
