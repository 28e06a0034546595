package banditstore

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/alextanhongpin/banditengine/bandit"
)

//go:embed scripts/init_experiment.lua
var initExperimentSrc string

//go:embed scripts/record_reward.lua
var recordRewardSrc string

//go:embed scripts/bulk_reward.lua
var bulkRewardSrc string

//go:embed scripts/create_arm.lua
var createArmSrc string

//go:embed scripts/soft_delete_arm.lua
var softDeleteArmSrc string

//go:embed scripts/hard_delete_arm.lua
var hardDeleteArmSrc string

var (
	initExperimentScript = redis.NewScript(initExperimentSrc)
	recordRewardScript   = redis.NewScript(recordRewardSrc)
	bulkRewardScript     = redis.NewScript(bulkRewardSrc)
	createArmScript      = redis.NewScript(createArmSrc)
	softDeleteArmScript  = redis.NewScript(softDeleteArmSrc)
	hardDeleteArmScript  = redis.NewScript(hardDeleteArmSrc)
)

// Redis is a StorageBackend over a Redis-compatible key-value store. Every
// read-compute-write reward update runs as a single server-side script, so
// the client never does a read-modify-write round trip (SPEC_FULL.md §4.4).
type Redis struct {
	client *redis.Client
}

var _ bandit.StorageBackend = (*Redis)(nil)

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) ExistsExperiment(ctx context.Context, name string) (bool, error) {
	n, err := r.client.Exists(ctx, paramsKey(name)).Result()
	return n == 1, err
}

func (r *Redis) InitExperiment(ctx context.Context, name string, p bandit.Params, armNames []string) error {
	keys := []string{paramsKey(name), armNamesKey(name), maxRewardKey(name), chooseCountKey(name)}
	argv := make([]interface{}, 0, 9+len(armNames))
	argv = append(argv,
		name,
		string(p.Algo),
		boolStr(p.Maximize),
		strconv.FormatFloat(p.RewardLowerBound, 'g', -1, 64),
		strconv.FormatFloat(p.Epsilon, 'g', -1, 64),
		strconv.FormatFloat(p.ExplorationMult, 'g', -1, 64),
		strconv.FormatFloat(p.StartingTemperature, 'g', -1, 64),
		strconv.FormatFloat(p.TempDecayPerStep, 'g', -1, 64),
		strconv.FormatFloat(p.MinTemperature, 'g', -1, 64),
	)
	for _, a := range armNames {
		argv = append(argv, a)
	}
	return initExperimentScript.Run(ctx, r.client, keys, argv...).Err()
}

func (r *Redis) GetParams(ctx context.Context, name string) (bandit.Params, error) {
	m, err := r.client.HGetAll(ctx, paramsKey(name)).Result()
	if err != nil {
		return bandit.Params{}, err
	}
	if len(m) == 0 {
		return bandit.Params{}, nil
	}

	maximize, err := strconv.ParseBool(m["maximize"])
	if err != nil {
		return bandit.Params{}, fmt.Errorf("banditstore: parse maximize: %w", err)
	}
	lowerBound, err := strconv.ParseFloat(m["rewardLowerBound"], 64)
	if err != nil {
		return bandit.Params{}, fmt.Errorf("banditstore: parse rewardLowerBound: %w", err)
	}
	epsilon, _ := strconv.ParseFloat(m["epsilon"], 64)
	explorationMult, _ := strconv.ParseFloat(m["explorationMult"], 64)
	startingTemp, _ := strconv.ParseFloat(m["startingTemperature"], 64)
	tempDecay, _ := strconv.ParseFloat(m["tempDecayPerStep"], 64)
	minTemp, _ := strconv.ParseFloat(m["minTemperature"], 64)

	return bandit.Params{
		Algo:                bandit.Algorithm(m["algo"]),
		Maximize:            maximize,
		RewardLowerBound:    lowerBound,
		Epsilon:             epsilon,
		ExplorationMult:     explorationMult,
		StartingTemperature: startingTemp,
		TempDecayPerStep:    tempDecay,
		MinTemperature:      minTemp,
	}, nil
}

func (r *Redis) GetArmNames(ctx context.Context, name string) ([]string, error) {
	states, err := r.GetArmStates(ctx, name)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(states))
	for n := range states {
		names = append(names, n)
	}
	return names, nil
}

func (r *Redis) GetArmStates(ctx context.Context, name string) (map[string]bandit.ArmState, error) {
	allArms, err := r.client.SMembers(ctx, armNamesKey(name)).Result()
	if err != nil {
		return nil, err
	}
	if len(allArms) == 0 {
		return map[string]bandit.ArmState{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make(map[string]*redis.MapStringStringCmd, len(allArms))
	for _, arm := range allArms {
		cmds[arm] = pipe.HGetAll(ctx, armStateKey(name, arm))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	out := make(map[string]bandit.ArmState, len(allArms))
	for arm, cmd := range cmds {
		m, err := cmd.Result()
		if err != nil || len(m) == 0 {
			continue
		}
		st, err := parseArmState(m)
		if err != nil {
			return nil, err
		}
		if !st.Deleted {
			out[arm] = st
		}
	}
	return out, nil
}

func parseArmState(m map[string]string) (bandit.ArmState, error) {
	n, err := strconv.ParseInt(m["n"], 10, 64)
	if err != nil {
		return bandit.ArmState{}, fmt.Errorf("banditstore: parse n: %w", err)
	}
	mean, err := strconv.ParseFloat(m["mean-reward"], 64)
	if err != nil {
		return bandit.ArmState{}, fmt.Errorf("banditstore: parse mean-reward: %w", err)
	}
	deleted := m["deleted"] == "1"
	return bandit.ArmState{N: n, MeanReward: mean, Deleted: deleted}, nil
}

func (r *Redis) CreateArm(ctx context.Context, name, arm string) error {
	keys := []string{armStateKey(name, arm), armNamesKey(name)}
	return createArmScript.Run(ctx, r.client, keys, arm).Err()
}

func (r *Redis) SoftDeleteArm(ctx context.Context, name, arm string) error {
	keys := []string{armStateKey(name, arm)}
	return softDeleteArmScript.Run(ctx, r.client, keys).Err()
}

func (r *Redis) HardDeleteArm(ctx context.Context, name, arm string) error {
	keys := []string{armStateKey(name, arm), armNamesKey(name)}
	return hardDeleteArmScript.Run(ctx, r.client, keys, arm).Err()
}

func (r *Redis) RecordReward(ctx context.Context, name, arm string, lowerBound float64, reward float64) error {
	keys := []string{armStateKey(name, arm), maxRewardKey(name)}
	return recordRewardScript.Run(ctx, r.client, keys,
		strconv.FormatFloat(lowerBound, 'g', -1, 64),
		strconv.FormatFloat(reward, 'g', -1, 64),
	).Err()
}

func (r *Redis) BulkReward(ctx context.Context, name, arm string, lowerBound float64, b bandit.BulkReward) error {
	keys := []string{armStateKey(name, arm), maxRewardKey(name)}
	return bulkRewardScript.Run(ctx, r.client, keys,
		strconv.FormatFloat(lowerBound, 'g', -1, 64),
		strconv.FormatFloat(b.Mean, 'g', -1, 64),
		strconv.FormatFloat(b.Max, 'g', -1, 64),
		strconv.FormatInt(b.Count, 10),
	).Err()
}

func (r *Redis) IncrChooseCount(ctx context.Context, name string) (int64, error) {
	return r.client.Incr(ctx, chooseCountKey(name)).Result()
}

func (r *Redis) GetChooseCount(ctx context.Context, name string) (int64, error) {
	v, err := r.client.Get(ctx, chooseCountKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

// Reset removes every experiment key this backend owns, scanning in batches
// rather than KEYS so it stays safe against a large keyspace.
func (r *Redis) Reset(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, "bandit:experiment:*:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
