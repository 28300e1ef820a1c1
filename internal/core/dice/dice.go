package dice

import (
	"errors"
	"math/rand"
)

var (
	// ErrMissingDice indicates that a roll was requested without dice.
	ErrMissingDice = errors.New("at least one die spec is required")
	// ErrInvalidDiceSpec indicates a spec with non-positive sides or count.
	ErrInvalidDiceSpec = errors.New("dice spec requires positive sides and count")
	// ErrNilSource indicates that no random source was supplied.
	ErrNilSource = errors.New("random source is required")
)

// Spec describes count dice of the same number of sides.
type Spec struct {
	Sides int
	Count int
}

// Roll holds the faces rolled for one Spec.
type Roll struct {
	Sides   int
	Results []int
	Total   int
}

// Result is the outcome of rolling a list of specs.
type Result struct {
	Rolls []Roll
	Total int
}

// Source produces uniform integers in [0, n).
//
// *rand.Rand satisfies Source.
type Source interface {
	Intn(n int) int
}

// NewSource returns a deterministic Source seeded with seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
