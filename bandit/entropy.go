package bandit

import (
	"math/rand"
	"time"
)

// Entropy is the injectable random source every policy draws from. The
// engine never reaches for the global math/rand functions directly, so a
// seeded source can be substituted for deterministic tests.
type Entropy interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
	// Intn returns a pseudo-random number in [0, n).
	Intn(n int) int
}

// randEntropy adapts *rand.Rand to Entropy.
type randEntropy struct {
	r *rand.Rand
}

func (e *randEntropy) Float64() float64 { return e.r.Float64() }
func (e *randEntropy) Intn(n int) int   { return e.r.Intn(n) }

// NewEntropy returns a seeded, deterministic Entropy source.
func NewEntropy(seed int64) Entropy {
	return &randEntropy{r: rand.New(rand.NewSource(seed))}
}

// DefaultEntropy seeds from the current time, for callers that do not need
// reproducible draws.
func DefaultEntropy() Entropy {
	return NewEntropy(time.Now().UnixNano())
}
