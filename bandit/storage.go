package bandit

import "context"

// StorageBackend is the persistence capability the engine façade depends on.
// Implementations live in package banditstore (memory and remote-KV
// variants); both must satisfy the atomicity and ordering guarantees
// documented on each method.
type StorageBackend interface {
	// ExistsExperiment reports whether name has been initialized.
	ExistsExperiment(ctx context.Context, name string) (bool, error)

	// InitExperiment creates the experiment if absent. No-op if it already
	// exists — params are never rewritten by a later Init (I6).
	InitExperiment(ctx context.Context, name string, p Params, armNames []string) error

	GetParams(ctx context.Context, name string) (Params, error)

	// GetArmStates returns only live (non-deleted) arms (I4).
	GetArmStates(ctx context.Context, name string) (map[string]ArmState, error)

	GetArmNames(ctx context.Context, name string) ([]string, error)

	// CreateArm adds a new arm at its default state, or clears the deleted
	// flag (restoring prior state) if the arm was soft-deleted.
	CreateArm(ctx context.Context, name, arm string) error

	SoftDeleteArm(ctx context.Context, name, arm string) error

	// HardDeleteArm permanently removes the arm and its state (I5).
	HardDeleteArm(ctx context.Context, name, arm string) error

	// RecordReward applies the §4.2 single-reward update atomically. A
	// no-op (not an error) when the arm is absent or hard-deleted.
	RecordReward(ctx context.Context, name, arm string, lowerBound float64, reward float64) error

	// BulkReward applies the §4.2 batch update atomically. Same
	// missing-target no-op semantics as RecordReward.
	BulkReward(ctx context.Context, name, arm string, lowerBound float64, b BulkReward) error

	// IncrChooseCount atomically increments and returns the post-increment
	// value.
	IncrChooseCount(ctx context.Context, name string) (int64, error)

	GetChooseCount(ctx context.Context, name string) (int64, error)

	// Reset removes all experiments owned by this backend.
	Reset(ctx context.Context) error
}
