package bandit

import (
	"context"
	"log/slog"
)

// Engine is the façade: it validates inputs, dispatches by algorithm, and
// delegates all state to a StorageBackend.
type Engine struct {
	backend StorageBackend
	rng     Entropy
	log     *slog.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithEntropy overrides the default time-seeded entropy source.
func WithEntropy(e Entropy) Option {
	return func(eng *Engine) { eng.rng = e }
}

// WithLogger attaches a structured logger; nil disables logging (the
// default is slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(eng *Engine) { eng.log = l }
}

// New builds an Engine over the given storage backend.
func New(backend StorageBackend, opts ...Option) *Engine {
	eng := &Engine{
		backend: backend,
		rng:     DefaultEntropy(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// Init idempotently creates an experiment. A second Init for the same name
// is a no-op — params are never rewritten (I6).
func (e *Engine) Init(ctx context.Context, l Learner) error {
	if err := l.Validate(); err != nil {
		return err
	}
	p := l.Params.normalized()
	if err := e.backend.InitExperiment(ctx, l.Experiment, p, l.ArmNames); err != nil {
		return err
	}
	e.logDebug("init", l.Experiment, "algo", l.Algo, "arms", len(l.ArmNames))
	return nil
}

// Choose selects one live arm. ok is false when the experiment has zero live
// arms; the caller must tolerate that rather than treat it as an error.
func (e *Engine) Choose(ctx context.Context, ref Ref) (arm string, ok bool, err error) {
	arms, err := e.backend.GetArmStates(ctx, ref.Experiment)
	if err != nil {
		return "", false, err
	}
	if len(arms) == 0 {
		return "", false, nil
	}
	p, err := e.backend.GetParams(ctx, ref.Experiment)
	if err != nil {
		return "", false, err
	}
	pol, err := policyFor(p.Algo)
	if err != nil {
		return "", false, err
	}
	chooseCount, err := e.backend.IncrChooseCount(ctx, ref.Experiment)
	if err != nil {
		return "", false, err
	}
	arm = pol.choose(arms, p, e.rng, chooseCount-1)
	e.logDebug("choose", ref.Experiment, "arm", arm, "chooseCount", chooseCount)
	return arm, true, nil
}

// Reward applies a single reward. Rewarding an unknown or hard-deleted arm
// is silently ignored — delayed feedback for a removed arm is expected.
func (e *Engine) Reward(ctx context.Context, ref Ref, r Reward) error {
	if err := r.Validate(); err != nil {
		return err
	}
	p, err := e.backend.GetParams(ctx, ref.Experiment)
	if err != nil {
		return err
	}
	pol, err := policyFor(p.Algo)
	if err != nil {
		return err
	}
	if !pol.accumulatesReward() {
		return nil
	}
	if err := e.backend.RecordReward(ctx, ref.Experiment, r.Arm, p.RewardLowerBound, r.RewardValue); err != nil {
		return err
	}
	e.logDebug("reward", ref.Experiment, "arm", r.Arm, "value", r.RewardValue)
	return nil
}

// BulkReward applies a pre-aggregated batch. Same missing-target ignore
// semantics as Reward.
func (e *Engine) BulkReward(ctx context.Context, ref Ref, b BulkReward) error {
	if err := b.Validate(); err != nil {
		return err
	}
	p, err := e.backend.GetParams(ctx, ref.Experiment)
	if err != nil {
		return err
	}
	pol, err := policyFor(p.Algo)
	if err != nil {
		return err
	}
	if !pol.accumulatesReward() {
		return nil
	}
	if err := e.backend.BulkReward(ctx, ref.Experiment, b.Arm, p.RewardLowerBound, b); err != nil {
		return err
	}
	e.logDebug("bulkReward", ref.Experiment, "arm", b.Arm, "count", b.Count)
	return nil
}

func (e *Engine) CreateArm(ctx context.Context, ref Ref, arm string) error {
	if err := validateName(arm); err != nil {
		return err
	}
	return e.backend.CreateArm(ctx, ref.Experiment, arm)
}

func (e *Engine) SoftDeleteArm(ctx context.Context, ref Ref, arm string) error {
	return e.backend.SoftDeleteArm(ctx, ref.Experiment, arm)
}

func (e *Engine) HardDeleteArm(ctx context.Context, ref Ref, arm string) error {
	return e.backend.HardDeleteArm(ctx, ref.Experiment, arm)
}

// ArmSelectionProbabilities returns the distribution over live arms that the
// next Choose would sample from, without mutating any state (including
// chooseCount — see DESIGN.md's open-question resolution).
func (e *Engine) ArmSelectionProbabilities(ctx context.Context, ref Ref) (map[string]float64, error) {
	arms, err := e.backend.GetArmStates(ctx, ref.Experiment)
	if err != nil {
		return nil, err
	}
	if len(arms) == 0 {
		return map[string]float64{}, nil
	}
	p, err := e.backend.GetParams(ctx, ref.Experiment)
	if err != nil {
		return nil, err
	}
	pol, err := policyFor(p.Algo)
	if err != nil {
		return nil, err
	}
	chooseCount, err := e.backend.GetChooseCount(ctx, ref.Experiment)
	if err != nil {
		return nil, err
	}
	return pol.selectionProbabilities(arms, p, chooseCount), nil
}

func (e *Engine) GetArmStates(ctx context.Context, ref Ref) (map[string]ArmState, error) {
	return e.backend.GetArmStates(ctx, ref.Experiment)
}

func (e *Engine) GetArmNames(ctx context.Context, ref Ref) ([]string, error) {
	return e.backend.GetArmNames(ctx, ref.Experiment)
}

func (e *Engine) Reset(ctx context.Context) error {
	return e.backend.Reset(ctx)
}

func (e *Engine) logDebug(op, experiment string, args ...any) {
	if e.log == nil {
		return
	}
	e.log.Debug("bandit: "+op, append([]any{"experiment", experiment}, args...)...)
}
