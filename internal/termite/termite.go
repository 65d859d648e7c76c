// Adversarial termite agents raiding the colony.
package termite

import (
	"github.com/google/uuid"

	"antsim/internal/world"
)

// State is a termite's behavioral state.
type State string

const (
	StateSeeking        State = "seeking"
	StateAttackingFood  State = "attacking_food"
	StateAttackingNest  State = "attacking_colony"
	StateAttackingAnt   State = "attacking_ant"
)

const maxHealth = 100.0

// Termite is one raider. Health at or below zero means removal on the next
// engine step.
type Termite struct {
	ID     string
	Pos    world.Vec2
	Health float64
	State  State

	hitTimer float64
}

// NewTermite spawns a healthy termite at pos.
func NewTermite(pos world.Vec2) *Termite {
	return &Termite{
		ID:     uuid.New().String(),
		Pos:    pos,
		Health: maxHealth,
		State:  StateSeeking,
	}
}

// ThreatID implements colony.Threat.
func (t *Termite) ThreatID() string { return t.ID }

// ThreatPos implements colony.Threat.
func (t *Termite) ThreatPos() world.Vec2 { return t.Pos }

// Alive implements colony.Threat.
func (t *Termite) Alive() bool { return t.Health > 0 }

// Damage implements colony.Threat.
func (t *Termite) Damage(amount float64) {
	t.Health -= amount
	if t.Health < 0 {
		t.Health = 0
	}
}
