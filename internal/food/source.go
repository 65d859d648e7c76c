// Depletable food resources.
package food

import (
	"github.com/google/uuid"

	"antsim/internal/world"
)

// depletionGrace is how long a near-empty source lingers before it is forced
// into the depleted state, giving ants already en route a final partial load.
const depletionGrace = 2.0

// nearEmpty is the remaining amount below which the grace window starts.
const nearEmpty = 0.5

// Source is a single depletable food node. Amount stays within
// [0, MaxAmount] and once it reaches zero the source is permanently inert.
type Source struct {
	ID        string
	Pos       world.Vec2
	Amount    float64
	MaxAmount float64
	Active    bool

	graceElapsed float64
}

// NewSource creates an active source holding amount units.
func NewSource(pos world.Vec2, amount float64) *Source {
	return &Source{
		ID:        uuid.New().String(),
		Pos:       pos,
		Amount:    amount,
		MaxAmount: amount,
		Active:    true,
	}
}

// Collect withdraws up to max units and returns the amount taken. A depleted
// source yields nothing. Depleting the source deactivates it for good.
func (s *Source) Collect(max float64) float64 {
	if !s.Active || max <= 0 {
		return 0
	}
	taken := max
	if taken > s.Amount {
		taken = s.Amount
	}
	s.Amount -= taken
	if s.Amount <= 0 {
		s.Amount = 0
		s.Active = false
	}
	return taken
}

// Depleted reports whether the source is permanently inert.
func (s *Source) Depleted() bool { return !s.Active }

// tick advances the grace window on near-empty sources and force-depletes
// them once it elapses.
func (s *Source) tick(delta float64) {
	if !s.Active || s.Amount > nearEmpty {
		return
	}
	s.graceElapsed += delta
	if s.graceElapsed >= depletionGrace {
		s.Amount = 0
		s.Active = false
	}
}
