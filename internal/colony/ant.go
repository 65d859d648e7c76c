package colony

import (
	"math"

	"github.com/google/uuid"

	"antsim/internal/hazard"
	"antsim/internal/world"
)

// Interaction distances and combat tuning, in world units / simulation
// seconds.
const (
	soldierEngageRange = 150.0
	corpseDetectRange  = 100.0
	dangerDetectRange  = 80.0
	foodDetectRange    = 150.0
	trailSearchRange   = 120.0

	collectDistance = 20.0
	homeDistance    = 30.0
	corpseDistance  = 15.0
	hideDistance    = 50.0
	trailAcceptDist = 25.0
	attackDistance  = 20.0

	attackDamage   = 15.0
	attackCost     = 5.0
	attackInterval = 1.0

	feedCost        = 5.0
	feedChanceOther = 0.3

	dangerSpeedBoost = 1.8
	maxSpeedBoost    = 2.0
	dangerJitter     = math.Pi / 4

	depositEnergyGain = 20.0

	wanderDrift  = 1.2 // rad/s of wander-angle drift while exploring
	wanderJitter = 0.2

	// Trail deposits near a full load are thickened with this many extra
	// weaker marks.
	trailClusterSize   = 2
	trailClusterSpread = 12.0
)

// Ant is one agent. All behavior runs through Update; the colony owns the
// ant and reaps it once dead.
type Ant struct {
	ID     string
	Role   Role
	Pos    world.Vec2
	State  State
	Energy float64
	Food   float64

	colony *Colony
	target Target

	wanderAngle float64
	speedBoost  float64

	pherTimer  float64
	restTimer  float64
	restAfter  float64
	hitTimer   float64
	fedBrood   bool
	broodTried bool

	exposure   float64
	penalized  bool
	inPuddle   *hazard.Puddle
	warned     bool

	dead  bool
	cause deathCause
}

func newAnt(c *Colony, role Role) *Ant {
	return &Ant{
		ID:          uuid.New().String(),
		Role:        role,
		Pos:         c.Home,
		State:       StateExploring,
		Energy:      c.Settings.MaxEnergy,
		colony:      c,
		speedBoost:  1,
		wanderAngle: c.rand.Float64() * 2 * math.Pi,
	}
}

// Alive reports whether the ant is still part of the live roster.
func (a *Ant) Alive() bool { return !a.dead }

// Carrying reports whether the ant counts as loaded with food, per the
// configured carry semantics.
func (a *Ant) Carrying() bool {
	if a.colony.Settings.CarryFullOnly {
		return a.Food >= a.colony.Settings.Capacity
	}
	return a.Food > 0
}

// capacityLeft returns how much more food the ant can hold.
func (a *Ant) capacityLeft() float64 {
	left := a.colony.Settings.Capacity - a.Food
	if left < 0 {
		return 0
	}
	return left
}

// speed returns the ant's current speed accounting for role, boost, and the
// host terrain lookup.
func (a *Ant) speed(ctx *Context) float64 {
	s := a.colony.Settings.Speed
	if a.Role == RoleScout {
		s *= 1.2
	}
	boost := a.speedBoost
	if boost > maxSpeedBoost {
		boost = maxSpeedBoost
	}
	terrain := 1.0
	if ctx.Terrain != nil {
		terrain = ctx.Terrain(a.Pos.X, a.Pos.Y, ctx.Weather)
	}
	return s * boost * terrain
}

// moveToward steps the ant toward dest, clamped to world bounds. A zero
// offset is a no-op rather than a NaN bearing.
func (a *Ant) moveToward(ctx *Context, dest world.Vec2, delta float64) {
	dir := dest.Sub(a.Pos)
	if dir.Len() == 0 {
		return
	}
	step := a.speed(ctx) * delta
	if d := dir.Len(); step > d {
		step = d
	}
	a.Pos = ctx.Bounds.Clamp(a.Pos.Add(dir.Normalized().Scale(step)))
}

// moveAlong steps the ant along a bearing.
func (a *Ant) moveAlong(ctx *Context, angle, delta float64) {
	next := a.Pos.Add(world.Heading(angle).Scale(a.speed(ctx) * delta))
	clamped := ctx.Bounds.Clamp(next)
	if clamped != next {
		// Bounced off the world edge; turn away.
		a.wanderAngle += math.Pi/2 + ctx.Rand.Float64()*math.Pi
	}
	a.Pos = clamped
}

// startResting suspends all behavior for the given duration, after which the
// ant returns to exploring.
func (a *Ant) startResting(duration float64) {
	a.clearTarget()
	a.State = StateResting
	a.restTimer = 0
	a.restAfter = duration
}

// die marks the ant dead. The colony converts it to a corpse on reap.
func (a *Ant) die(cause deathCause) {
	a.dead = true
	a.cause = cause
	a.Energy = 0
	a.clearTarget()
}

// TakeHit applies attack damage. Energy never goes negative; a lethal hit
// kills the ant on the spot and the colony reaps it next tick.
func (a *Ant) TakeHit(amount float64) {
	if a.dead {
		return
	}
	a.Energy -= amount
	if a.Energy <= 0 {
		a.die(causeCombat)
	}
}

// setTarget swaps the ant's target, maintaining trail follower counts.
func (a *Ant) setTarget(t Target) {
	a.clearTarget()
	a.target = t
	if t.deposit != nil {
		t.deposit.AddFollower()
	}
}

func (a *Ant) clearTarget() {
	if a.target.deposit != nil {
		a.target.deposit.RemoveFollower()
	}
	a.target = Target{}
}
