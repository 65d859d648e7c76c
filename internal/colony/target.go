package colony

import (
	"antsim/internal/food"
	"antsim/internal/pheromone"
	"antsim/internal/world"
)

// Target is the closed set of things an ant can pursue. Exactly one of the
// references is non-nil; the zero Target means no target. Referenced objects
// may be invalidated by other agents within the same tick, so holders must
// re-check Valid before acting.
type Target struct {
	food    *food.Source
	deposit *pheromone.Deposit
	threat  Threat
	corpse  *Corpse
}

func foodTarget(s *food.Source) Target          { return Target{food: s} }
func depositTarget(d *pheromone.Deposit) Target { return Target{deposit: d} }
func threatTarget(t Threat) Target              { return Target{threat: t} }
func corpseTarget(c *Corpse) Target             { return Target{corpse: c} }

// None reports whether the target is empty.
func (t Target) None() bool {
	return t.food == nil && t.deposit == nil && t.threat == nil && t.corpse == nil
}

// Valid reports whether the referenced object can still be acted on.
func (t Target) Valid() bool {
	switch {
	case t.food != nil:
		return t.food.Active
	case t.deposit != nil:
		return t.deposit.Intensity > 0
	case t.threat != nil:
		return t.threat.Alive()
	case t.corpse != nil:
		return !t.corpse.Collected
	}
	return false
}

// Pos returns the target's current position. Only meaningful when the target
// is non-empty.
func (t Target) Pos() world.Vec2 {
	switch {
	case t.food != nil:
		return t.food.Pos
	case t.deposit != nil:
		return t.deposit.Pos
	case t.threat != nil:
		return t.threat.ThreatPos()
	case t.corpse != nil:
		return t.corpse.Pos
	}
	return world.Vec2{}
}
