package bandit

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateName rejects empty names and names containing the reserved key
// separator (I7).
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if strings.Contains(name, ":") {
		return fmt.Errorf("%w: %q", ErrReservedChar, name)
	}
	return nil
}

// Validate checks the struct tags on Params plus the per-algorithm required
// fields the tag system alone cannot express (conditional-required fields
// across four algorithm variants).
func (p Params) Validate() error {
	if err := validate.Struct(&p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	switch p.Algo {
	case EpsilonGreedy:
		if !(p.Epsilon > 0 && p.Epsilon < 1) {
			return fmt.Errorf("%w: epsilon_greedy requires epsilon in (0, 1), got %v", ErrInvalidParams, p.Epsilon)
		}
	case UCB1:
		if p.ExplorationMult < 0 {
			return fmt.Errorf("%w: ucb1 requires explorationMult >= 0, got %v", ErrInvalidParams, p.ExplorationMult)
		}
	case Softmax:
		if p.StartingTemperature <= 0 || p.TempDecayPerStep <= 0 || p.MinTemperature <= 0 {
			return fmt.Errorf("%w: softmax requires positive startingTemperature, tempDecayPerStep, minTemperature", ErrInvalidParams)
		}
	case Random:
		// no algorithm-specific fields
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, p.Algo)
	}
	return nil
}

// normalized fills in algorithm defaults (explorationMult defaults to 1.0).
func (p Params) normalized() Params {
	if p.Algo == UCB1 && p.ExplorationMult == 0 {
		p.ExplorationMult = 1.0
	}
	return p
}

// Validate checks Learner's full init schema: non-empty, distinct arm names
// plus valid params.
func (l Learner) Validate() error {
	if err := validateName(l.Experiment); err != nil {
		return err
	}
	if len(l.ArmNames) == 0 {
		return ErrNoArms
	}
	seen := make(map[string]struct{}, len(l.ArmNames))
	for _, a := range l.ArmNames {
		if err := validateName(a); err != nil {
			return err
		}
		if _, dup := seen[a]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateArm, a)
		}
		seen[a] = struct{}{}
	}
	return l.Params.Validate()
}

// Validate checks a single Reward's schema: finite value.
func (r Reward) Validate() error {
	if err := validateName(r.Arm); err != nil {
		return err
	}
	if math.IsNaN(r.RewardValue) || math.IsInf(r.RewardValue, 0) {
		return fmt.Errorf("%w: %v", ErrNonFiniteReward, r.RewardValue)
	}
	return nil
}

// Validate checks a BulkReward's schema: mean <= max, count >= 1, all finite.
func (b BulkReward) Validate() error {
	if err := validateName(b.Arm); err != nil {
		return err
	}
	for _, v := range []float64{b.Mean, b.Max} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v", ErrNonFiniteReward, v)
		}
	}
	if b.Count < 1 || b.Mean > b.Max {
		return fmt.Errorf("%w: mean=%v max=%v count=%v", ErrInvalidBulkReward, b.Mean, b.Max, b.Count)
	}
	return nil
}
