package bandit

import "errors"

// Schema-violation sentinels: caller bugs, surfaced before any state is
// touched. Missing-target conditions (reward for an unknown arm, choose with
// zero live arms) are deliberately NOT errors — see engine.go.
var (
	ErrInvalidName       = errors.New("bandit: experiment or arm name is invalid")
	ErrReservedChar      = errors.New("bandit: name contains reserved separator \":\"")
	ErrNoArms            = errors.New("bandit: learner requires at least one arm name")
	ErrDuplicateArm      = errors.New("bandit: duplicate arm name")
	ErrUnknownAlgorithm  = errors.New("bandit: unknown algorithm")
	ErrInvalidParams     = errors.New("bandit: invalid parameters for algorithm")
	ErrNonFiniteReward   = errors.New("bandit: reward value is not finite")
	ErrInvalidBulkReward = errors.New("bandit: bulk reward requires mean <= max and count >= 1")
)
