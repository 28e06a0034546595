// Package banditstore provides the two StorageBackend implementations: an
// in-process memory backend and a remote Redis-backed one.
package banditstore

import (
	"context"
	"sync"

	"github.com/alextanhongpin/banditengine/bandit"
	"github.com/alextanhongpin/banditengine/internal/concurrent"
)

// record holds one experiment's mutable state behind its own mutex, so
// unrelated experiments never contend on the same lock (SPEC_FULL §9).
type record struct {
	mu          sync.Mutex
	params      bandit.Params
	armNames    []string // insertion order, for stable iteration when listing
	armStates   map[string]bandit.ArmState
	maxReward   float64
	chooseCount int64
}

// Memory is an in-process StorageBackend: a top-level concurrent map of
// experiment name to *record, each guarded independently.
type Memory struct {
	experiments *concurrent.Map[string, *record]
}

var _ bandit.StorageBackend = (*Memory)(nil)

// NewMemory returns an empty in-process backend.
func NewMemory() *Memory {
	return &Memory{experiments: concurrent.New[string, *record]()}
}

func (m *Memory) ExistsExperiment(ctx context.Context, name string) (bool, error) {
	_, ok := m.experiments.Get(name)
	return ok, nil
}

func (m *Memory) InitExperiment(ctx context.Context, name string, p bandit.Params, armNames []string) error {
	states := make(map[string]bandit.ArmState, len(armNames))
	for _, a := range armNames {
		states[a] = bandit.ArmState{N: 1, MeanReward: 0}
	}
	rec := &record{
		params:    p,
		armNames:  append([]string(nil), armNames...),
		armStates: states,
		maxReward: 1.0,
	}
	// First writer wins: a concurrent Init racing for the same name never
	// overwrites an experiment that already exists (I6).
	m.experiments.SetNX(name, rec)
	return nil
}

func (m *Memory) get(name string) (*record, bool) {
	return m.experiments.Get(name)
}

func (m *Memory) GetParams(ctx context.Context, name string) (bandit.Params, error) {
	rec, ok := m.get(name)
	if !ok {
		return bandit.Params{}, nil
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.params, nil
}

func (m *Memory) GetArmStates(ctx context.Context, name string) (map[string]bandit.ArmState, error) {
	rec, ok := m.get(name)
	if !ok {
		return map[string]bandit.ArmState{}, nil
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make(map[string]bandit.ArmState, len(rec.armStates))
	for name, st := range rec.armStates {
		if !st.Deleted {
			out[name] = st
		}
	}
	return out, nil
}

// GetArmNames returns live arm names in insertion order (stable across
// calls, unlike a map range over GetArmStates).
func (m *Memory) GetArmNames(ctx context.Context, name string) ([]string, error) {
	rec, ok := m.get(name)
	if !ok {
		return nil, nil
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	names := make([]string, 0, len(rec.armNames))
	for _, n := range rec.armNames {
		if !rec.armStates[n].Deleted {
			names = append(names, n)
		}
	}
	return names, nil
}

func (m *Memory) CreateArm(ctx context.Context, name, arm string) error {
	rec, ok := m.get(name)
	if !ok {
		return nil
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if st, exists := rec.armStates[arm]; exists {
		st.Deleted = false
		rec.armStates[arm] = st
		return nil
	}
	rec.armStates[arm] = bandit.ArmState{N: 1, MeanReward: 0}
	rec.armNames = append(rec.armNames, arm)
	return nil
}

func (m *Memory) SoftDeleteArm(ctx context.Context, name, arm string) error {
	rec, ok := m.get(name)
	if !ok {
		return nil
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if st, exists := rec.armStates[arm]; exists {
		st.Deleted = true
		rec.armStates[arm] = st
	}
	return nil
}

func (m *Memory) HardDeleteArm(ctx context.Context, name, arm string) error {
	rec, ok := m.get(name)
	if !ok {
		return nil
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	delete(rec.armStates, arm)
	for i, n := range rec.armNames {
		if n == arm {
			rec.armNames = append(rec.armNames[:i], rec.armNames[i+1:]...)
			break
		}
	}
	return nil
}

// RecordReward and BulkReward are atomic per (experiment, arm): the record's
// mutex is held across the full read-compute-write cycle, so no interleaved
// caller observes a half-applied update. A missing arm is silently ignored
// (§4.5); a soft-deleted one still accepts rewards.
func (m *Memory) RecordReward(ctx context.Context, name, arm string, lowerBound float64, reward float64) error {
	rec, ok := m.get(name)
	if !ok {
		return nil
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	old, exists := rec.armStates[arm]
	if !exists {
		return nil
	}
	newState, newMax := bandit.ApplyReward(old, rec.maxReward, lowerBound, reward)
	rec.armStates[arm] = newState
	rec.maxReward = newMax
	return nil
}

func (m *Memory) BulkReward(ctx context.Context, name, arm string, lowerBound float64, b bandit.BulkReward) error {
	rec, ok := m.get(name)
	if !ok {
		return nil
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	old, exists := rec.armStates[arm]
	if !exists {
		return nil
	}
	newState, newMax := bandit.ApplyBulkReward(old, rec.maxReward, lowerBound, b)
	rec.armStates[arm] = newState
	rec.maxReward = newMax
	return nil
}

func (m *Memory) IncrChooseCount(ctx context.Context, name string) (int64, error) {
	rec, ok := m.get(name)
	if !ok {
		return 0, nil
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.chooseCount++
	return rec.chooseCount, nil
}

func (m *Memory) GetChooseCount(ctx context.Context, name string) (int64, error) {
	rec, ok := m.get(name)
	if !ok {
		return 0, nil
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.chooseCount, nil
}

func (m *Memory) Reset(ctx context.Context) error {
	m.experiments = concurrent.New[string, *record]()
	return nil
}
