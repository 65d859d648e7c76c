// Per-tick ant behavior: priority-ordered transitions plus per-state steps.
package colony

import (
	"math"
	"math/rand"

	"antsim/internal/food"
	"antsim/internal/hazard"
	"antsim/internal/pheromone"
	"antsim/internal/telemetry"
	"antsim/internal/world"
)

// Context carries the shared subsystems an ant reads and mutates during its
// tick. The simulator builds one per tick; there is no ambient state.
type Context struct {
	Pheromones *pheromone.Field
	Food       *food.Manager
	Hazards    *hazard.Field
	Threats    []Threat
	Bounds     world.Rect
	Terrain    world.TerrainFunc
	Weather    world.Weather
	Rand       *rand.Rand
	Events     *telemetry.Recorder
}

// Update advances the ant by delta seconds: energy drain, hazard exposure,
// one transition pass, one behavior step, and pheromone emission. Dead ants
// are left for the colony reap pass.
func (a *Ant) Update(ctx *Context, delta float64) {
	if a.dead {
		return
	}

	a.Energy -= a.colony.Settings.EnergyDrain * delta
	if a.Energy <= 0 {
		a.die(causeExhaustion)
		return
	}

	a.updateHazardExposure(ctx, delta)
	if a.dead {
		return
	}

	a.hitTimer += delta

	if a.State == StateResting {
		a.restTimer += delta
		if a.restTimer >= a.restAfter {
			a.State = StateExploring
		}
		return
	}

	a.transition(ctx)
	a.step(ctx, delta)
	if a.dead {
		return
	}
	a.emitPheromone(ctx, delta)
}

// transition applies the priority rules. Each satisfied check short-circuits
// the rest; danger avoidance beats foraging beats exploration.
func (a *Ant) transition(ctx *Context) {
	underAttack := a.colony.UnderAttack()

	// 1. Colony defense.
	if underAttack {
		if a.Role == RoleSoldier {
			if t := nearestThreat(ctx.Threats, a.Pos, soldierEngageRange); t != nil {
				if a.State != StateAttackingTermite || !a.target.Valid() {
					a.setTarget(threatTarget(t))
					a.State = StateAttackingTermite
				}
				return
			}
		} else {
			a.clearTarget()
			a.State = StateHiding
			return
		}
	} else if a.State == StateHiding {
		a.State = StateExploring
	}

	// 2. Nurses tend the brood.
	if a.Role == RoleNurse && !a.Carrying() && a.State != StateFeedingBrood {
		a.clearTarget()
		a.broodTried = false
		a.State = StateFeedingBrood
		return
	}

	// 3. Corpse retrieval.
	if !a.Carrying() && a.State != StateCollectingCorpse {
		if c := a.colony.nearestCorpse(a.Pos, corpseDetectRange); c != nil {
			a.setTarget(corpseTarget(c))
			a.State = StateCollectingCorpse
			return
		}
	}

	// 4. Danger repulsion.
	if !a.Carrying() {
		if d := ctx.Pheromones.FindStrongest(a.Pos, dangerDetectRange, pheromone.Danger); d != nil {
			a.clearTarget()
			a.speedBoost = dangerSpeedBoost
			a.State = StateAvoidingDanger
			return
		}
	}
	if a.State == StateAvoidingDanger {
		// Re-evaluated inside the state step.
		return
	}

	// 5. Forage or explore.
	if a.Carrying() {
		a.clearTarget()
		a.State = StateReturningHome
		return
	}
	if a.State == StateSeekingFood && a.target.Valid() {
		return
	}
	if a.State == StateFollowingTrail && a.target.Valid() {
		return
	}
	if d := ctx.Pheromones.FindStrongest(a.Pos, trailSearchRange, pheromone.FoodTrail); d != nil {
		a.setTarget(depositTarget(d))
		a.State = StateFollowingTrail
		return
	}
	if s := ctx.Food.Nearest(a.Pos, foodDetectRange); s != nil {
		a.setTarget(foodTarget(s))
		a.State = StateSeekingFood
		return
	}
	a.clearTarget()
	a.State = StateExploring
}

func (a *Ant) step(ctx *Context, delta float64) {
	switch a.State {
	case StateExploring:
		a.stepExplore(ctx, delta)
	case StateSeekingFood:
		a.stepSeekFood(ctx, delta)
	case StateReturningHome:
		a.stepReturnHome(ctx, delta)
	case StateFollowingTrail:
		a.stepFollowTrail(ctx, delta)
	case StateAttackingTermite:
		a.stepAttack(ctx, delta)
	case StateHiding:
		a.stepHide(ctx, delta)
	case StateFeedingBrood:
		a.stepFeedBrood(ctx, delta)
	case StateCollectingCorpse:
		a.stepCollectCorpse(ctx, delta)
	case StateAvoidingDanger:
		a.stepAvoidDanger(ctx, delta)
	}
}

// stepExplore is a bounded stochastic walk: the wander angle drifts slowly
// and a small jitter is layered per tick, so headings stay smooth.
func (a *Ant) stepExplore(ctx *Context, delta float64) {
	a.wanderAngle += (ctx.Rand.Float64()*2 - 1) * wanderDrift * delta
	heading := a.wanderAngle + (ctx.Rand.Float64()*2-1)*wanderJitter
	a.moveAlong(ctx, heading, delta)
}

func (a *Ant) stepSeekFood(ctx *Context, delta float64) {
	if !a.target.Valid() {
		a.clearTarget()
		a.State = StateExploring
		return
	}
	a.moveToward(ctx, a.target.Pos(), delta)
	if a.Pos.Dist(a.target.Pos()) > collectDistance {
		return
	}
	src := a.target.food
	if src == nil {
		a.clearTarget()
		a.State = StateExploring
		return
	}
	taken := src.Collect(a.capacityLeft())
	a.Food += taken
	if src.Depleted() {
		if ctx.Events != nil {
			ctx.Events.Record(telemetry.EventDepletion, src.ID, "", src.Pos.X, src.Pos.Y, 0)
		}
		a.clearTarget()
	}
	if a.capacityLeft() == 0 {
		a.clearTarget()
	}
}

func (a *Ant) stepReturnHome(ctx *Context, delta float64) {
	a.moveToward(ctx, a.colony.Home, delta)
	if a.Pos.Dist(a.colony.Home) > homeDistance {
		return
	}
	a.colony.Storage += a.Food
	a.Food = 0
	a.Energy += depositEnergyGain
	if a.Energy > a.colony.Settings.MaxEnergy {
		a.Energy = a.colony.Settings.MaxEnergy
	}
	var rest float64
	if a.fedBrood {
		rest = 4 + ctx.Rand.Float64()*3
	} else {
		rest = 3 + ctx.Rand.Float64()*2
	}
	a.fedBrood = false
	a.startResting(rest)
}

func (a *Ant) stepFollowTrail(ctx *Context, delta float64) {
	if !a.target.Valid() {
		a.clearTarget()
		a.State = StateExploring
		return
	}
	dest := a.target.Pos()
	a.moveToward(ctx, dest, delta)
	if a.Pos.Dist(dest) > trailAcceptDist {
		return
	}
	current := a.target.deposit
	a.clearTarget()
	next := a.nextTrailDeposit(ctx, current)
	if next != nil {
		a.setTarget(depositTarget(next))
		return
	}
	if s := ctx.Food.Nearest(a.Pos, foodDetectRange); s != nil {
		a.setTarget(foodTarget(s))
		a.State = StateSeekingFood
		return
	}
	a.State = StateExploring
}

// nextTrailDeposit picks the strongest nearby trail mark other than the one
// just reached.
func (a *Ant) nextTrailDeposit(ctx *Context, current *pheromone.Deposit) *pheromone.Deposit {
	var best *pheromone.Deposit
	bestScore := 0.0
	for _, m := range ctx.Pheromones.FindInRadius(a.Pos, trailSearchRange, pheromone.FoodTrail) {
		if m.Deposit == current {
			continue
		}
		score := m.Deposit.Intensity * (1 - m.Distance/trailSearchRange)
		if best == nil || score > bestScore {
			best, bestScore = m.Deposit, score
		}
	}
	return best
}

func (a *Ant) stepAttack(ctx *Context, delta float64) {
	if !a.target.Valid() {
		a.clearTarget()
		a.State = StateExploring
		return
	}
	t := a.target.threat
	a.moveToward(ctx, t.ThreatPos(), delta)
	if a.Pos.Dist(t.ThreatPos()) > attackDistance || a.hitTimer < attackInterval {
		return
	}
	a.hitTimer = 0
	t.Damage(attackDamage)
	a.Energy -= attackCost
	if a.Energy <= 0 {
		a.die(causeCombat)
	}
}

func (a *Ant) stepHide(ctx *Context, delta float64) {
	if a.Pos.Dist(a.colony.Home) <= hideDistance {
		return
	}
	a.moveToward(ctx, a.colony.Home, delta)
}

func (a *Ant) stepFeedBrood(ctx *Context, delta float64) {
	if a.Pos.Dist(a.colony.Home) > homeDistance {
		a.moveToward(ctx, a.colony.Home, delta)
		return
	}
	if a.broodTried {
		return
	}
	a.broodTried = true
	success := a.Role == RoleNurse || ctx.Rand.Float64() < feedChanceOther
	if !success {
		a.State = StateExploring
		return
	}
	a.Energy -= feedCost
	if a.Energy <= 0 {
		a.die(causeExhaustion)
		return
	}
	a.colony.noteBroodFed()
	a.fedBrood = true
	a.startResting(4 + ctx.Rand.Float64()*3)
}

func (a *Ant) stepCollectCorpse(ctx *Context, delta float64) {
	if !a.target.Valid() {
		a.clearTarget()
		a.State = StateExploring
		return
	}
	c := a.target.corpse
	a.moveToward(ctx, c.Pos, delta)
	if a.Pos.Dist(c.Pos) > corpseDistance {
		return
	}
	c.Collected = true
	a.colony.removeCorpse(c)
	a.colony.corpsesCollected++
	a.clearTarget()
	a.State = StateReturningHome
}

// stepAvoidDanger re-evaluates the danger each tick, repelling away from the
// strongest signal with angular jitter so fleeing ants fan out instead of
// clustering.
func (a *Ant) stepAvoidDanger(ctx *Context, delta float64) {
	d := ctx.Pheromones.FindStrongest(a.Pos, dangerDetectRange, pheromone.Danger)
	if d == nil {
		a.speedBoost = 1
		a.State = StateExploring
		return
	}
	away := a.Pos.Sub(d.Pos)
	var bearing float64
	if away.Len() == 0 {
		// Exactly atop the deposit; flee in a random direction.
		bearing = ctx.Rand.Float64() * 2 * math.Pi
	} else {
		bearing = away.Angle() + (ctx.Rand.Float64()*2-1)*dangerJitter
	}
	a.wanderAngle = bearing
	a.moveAlong(ctx, bearing, delta)
}

// updateHazardExposure tracks continuous time inside a puddle. Crossing the
// penalty threshold halves energy once and triggers the puddle's warning
// burst; crossing the lethal threshold kills.
func (a *Ant) updateHazardExposure(ctx *Context, delta float64) {
	p := ctx.Hazards.At(a.Pos)
	if p == nil {
		a.exposure = 0
		a.penalized = false
		a.warned = false
		a.inPuddle = nil
		return
	}
	a.inPuddle = p
	a.exposure += delta
	if a.exposure >= hazard.PenaltyExposure && !a.penalized {
		a.penalized = true
		a.Energy *= 0.5
		if !a.warned {
			a.warned = true
			ctx.Hazards.Warn(p, ctx.Pheromones)
		}
	}
	if a.exposure >= hazard.LethalExposure {
		a.die(causeHazard)
	}
}

// emitPheromone drops scent on a fixed cadence: food trails while carrying,
// scaled by load, or a weak exploration mark otherwise.
func (a *Ant) emitPheromone(ctx *Context, delta float64) {
	a.pherTimer += delta
	if a.pherTimer < a.colony.Settings.PherInterval {
		return
	}
	a.pherTimer = 0
	if a.Carrying() {
		fullness := a.Food / a.colony.Settings.Capacity
		ctx.Pheromones.Deposit(a.Pos, pheromone.FoodTrail, fullness)
		if fullness >= 0.8 {
			// Thicken the trail with a jittered cluster of weaker marks.
			for i := 0; i < trailClusterSize; i++ {
				off := world.Vec2{
					X: (ctx.Rand.Float64()*2 - 1) * trailClusterSpread,
					Y: (ctx.Rand.Float64()*2 - 1) * trailClusterSpread,
				}
				ctx.Pheromones.Deposit(a.Pos.Add(off), pheromone.FoodTrail, fullness*0.4)
			}
		}
		return
	}
	if a.State == StateExploring {
		ctx.Pheromones.Deposit(a.Pos, pheromone.Exploration, 0.3)
	}
}

func nearestThreat(threats []Threat, pos world.Vec2, radius float64) Threat {
	var best Threat
	bestDist := radius
	for _, t := range threats {
		if !t.Alive() {
			continue
		}
		if d := t.ThreatPos().Dist(pos); d <= bestDist {
			best, bestDist = t, d
		}
	}
	return best
}
