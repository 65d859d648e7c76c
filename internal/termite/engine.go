package termite

import (
	"math/rand"

	"antsim/internal/colony"
	"antsim/internal/food"
	"antsim/internal/telemetry"
	"antsim/internal/world"
)

// Targeting and combat tuning.
const (
	speed           = 45.0
	foodRange       = 300.0
	nestRange       = 400.0
	antRange        = 250.0
	antRangeGuarded = 120.0 // non-soldier hunting range while soldiers live
	contactDistance = 18.0

	attackInterval = 1.5
	nestDamage     = 8.0 // storage drained per hit
	antDamage      = 20.0
)

// Engine maintains and updates the raiding termites.
type Engine struct {
	Termites []*Termite
	rand     *rand.Rand
}

// NewEngine creates an empty engine with an injected random source.
func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{rand: rng}
}

// Spawn places count termites around origin within spread.
func (e *Engine) Spawn(count int, origin world.Vec2, spread float64, bounds world.Rect) {
	for i := 0; i < count; i++ {
		e.Termites = append(e.Termites, NewTermite(bounds.RandomPointAround(e.rand, origin, spread)))
	}
}

// Alive returns the number of live termites.
func (e *Engine) Alive() int {
	n := 0
	for _, t := range e.Termites {
		if t.Alive() {
			n++
		}
	}
	return n
}

// Threats exposes the live termites through the colony's Threat interface.
func (e *Engine) Threats() []colony.Threat {
	out := make([]colony.Threat, 0, len(e.Termites))
	for _, t := range e.Termites {
		if t.Alive() {
			out = append(out, t)
		}
	}
	return out
}

// Reset removes every termite.
func (e *Engine) Reset() { e.Termites = nil }

// Step advances every termite by delta seconds and sweeps the dead. Target
// priority: nearest active food in range, else the colony nest in range,
// else an ant — any ant when no soldiers remain, otherwise only non-soldiers
// at closer range, since soldiers intercept.
func (e *Engine) Step(delta float64, col *colony.Colony, mgr *food.Manager, events *telemetry.Recorder) {
	live := e.Termites[:0]
	for _, t := range e.Termites {
		if !t.Alive() {
			continue
		}
		t.step(delta, col, mgr, events)
		live = append(live, t)
	}
	for i := len(live); i < len(e.Termites); i++ {
		e.Termites[i] = nil
	}
	e.Termites = live
}

func (t *Termite) step(delta float64, col *colony.Colony, mgr *food.Manager, events *telemetry.Recorder) {
	t.hitTimer += delta

	if src := mgr.Nearest(t.Pos, foodRange); src != nil {
		t.State = StateAttackingFood
		t.moveToward(src.Pos, delta)
		if t.Pos.Dist(src.Pos) <= contactDistance && t.hitTimer >= attackInterval {
			t.hitTimer = 0
			// Food sources are destroyed outright on contact.
			src.Collect(src.Amount)
			if events != nil {
				events.Record(telemetry.EventDepletion, src.ID, "termite", src.Pos.X, src.Pos.Y, 0)
			}
		}
		return
	}

	if t.Pos.Dist(col.Home) <= nestRange {
		t.State = StateAttackingNest
		t.moveToward(col.Home, delta)
		if t.Pos.Dist(col.Home) <= contactDistance*2 && t.hitTimer >= attackInterval {
			t.hitTimer = 0
			col.DrainStorage(nestDamage)
		}
		return
	}

	if prey := t.pickAnt(col); prey != nil {
		t.State = StateAttackingAnt
		t.moveToward(prey.Pos, delta)
		if t.Pos.Dist(prey.Pos) <= contactDistance && t.hitTimer >= attackInterval {
			t.hitTimer = 0
			prey.TakeHit(antDamage)
		}
		return
	}

	t.State = StateSeeking
	t.moveToward(col.Home, delta)
}

// pickAnt selects the nearest viable ant. Soldiers are assumed to intercept:
// while any live, termites only chase non-soldiers and only at short range.
func (t *Termite) pickAnt(col *colony.Colony) *colony.Ant {
	soldiersAlive := false
	for _, a := range col.Ants {
		if a.Alive() && a.Role == colony.RoleSoldier {
			soldiersAlive = true
			break
		}
	}
	searchRange := antRange
	if soldiersAlive {
		searchRange = antRangeGuarded
	}
	var best *colony.Ant
	bestDist := searchRange
	for _, a := range col.Ants {
		if !a.Alive() {
			continue
		}
		if soldiersAlive && a.Role == colony.RoleSoldier {
			continue
		}
		if d := a.Pos.Dist(t.Pos); d <= bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

func (t *Termite) moveToward(dest world.Vec2, delta float64) {
	dir := dest.Sub(t.Pos)
	if dir.Len() == 0 {
		return
	}
	step := speed * delta
	if d := dir.Len(); step > d {
		step = d
	}
	t.Pos = t.Pos.Add(dir.Normalized().Scale(step))
}
