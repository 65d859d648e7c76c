// Colony population container and spawning.
package colony

import (
	"math/rand"

	"github.com/google/uuid"

	"antsim/internal/telemetry"
	"antsim/internal/world"
)

// Colony owns its ants exclusively: an ant never outlives removal from the
// roster. Storage, brood stages, and the queen cycle all live here.
type Colony struct {
	ID       string
	Home     world.Vec2
	Settings Settings

	Ants    []*Ant
	Corpses []*Corpse

	Storage       float64
	MaxPopulation int
	SpawnCost     float64
	Generation    int

	Eggs   int
	Larvae int
	Pupae  int

	queen       *Ant
	queenState  QueenState
	queenTimer  float64

	// Fractional progress accumulators for the brood pipeline. Stage counts
	// stay integral; these carry the remainders between ticks.
	eggProgress   float64
	larvaProgress float64
	pupaProgress  float64

	spawnTimer  float64
	evolveTimer float64
	reliefTimer float64
	broodFeeds  int

	underAttack      bool
	totalDeaths      int
	corpsesCollected int

	rand *rand.Rand
}

// New creates a colony at home with starting storage.
func New(id string, home world.Vec2, s Settings, storage float64, rng *rand.Rand) *Colony {
	return &Colony{
		ID:            id,
		Home:          home,
		Settings:      s,
		Storage:       storage,
		MaxPopulation: s.MaxPopulation,
		SpawnCost:     s.SpawnCost,
		queenState:    QueenIdle,
		rand:          rng,
	}
}

// SpawnAnt creates one ant if the population cap and spawn cost allow it,
// returning nil as a silent no-op otherwise. A queenless colony has a small
// chance of designating the spawn as its queen.
func (c *Colony) SpawnAnt() *Ant {
	if len(c.Ants) >= c.MaxPopulation {
		return nil
	}
	if c.Storage < c.SpawnCost {
		return nil
	}
	c.Storage -= c.SpawnCost
	role := spawnRoles[c.rand.Intn(len(spawnRoles))]
	if c.queen == nil && c.rand.Float64() < c.Settings.QueenChance {
		role = RoleQueen
	}
	a := newAnt(c, role)
	if role == RoleQueen {
		c.queen = a
	}
	c.Ants = append(c.Ants, a)
	return a
}

// AddAnt places an ant of the given role at pos without paying the spawn
// cost. Initial population seeding and host-driven spawns use this.
func (c *Colony) AddAnt(role Role, pos world.Vec2) *Ant {
	a := newAnt(c, role)
	a.Pos = pos
	c.Ants = append(c.Ants, a)
	return a
}

// SeedAnts populates n ants with random roles around the nest.
func (c *Colony) SeedAnts(n int) {
	for i := 0; i < n; i++ {
		c.AddAnt(spawnRoles[c.rand.Intn(len(spawnRoles))], c.Home)
	}
}

// HasQueen reports whether a live queen exists.
func (c *Colony) HasQueen() bool { return c.queen != nil && !c.queen.dead }

// UnderAttack reports the defense flag set by the simulator.
func (c *Colony) UnderAttack() bool { return c.underAttack }

// SetUnderAttack is called by the simulator before ants run each tick.
func (c *Colony) SetUnderAttack(v bool) { c.underAttack = v }

// TotalDeaths returns the colony's cumulative death count.
func (c *Colony) TotalDeaths() int { return c.totalDeaths }

// CorpsesCollected returns how many corpses ants have hauled off the field.
func (c *Colony) CorpsesCollected() int { return c.corpsesCollected }

// DrainStorage removes up to amount from storage and returns what was taken.
// Termites use this to loot the colony.
func (c *Colony) DrainStorage(amount float64) float64 {
	if amount > c.Storage {
		amount = c.Storage
	}
	c.Storage -= amount
	return amount
}

// Tick reconciles the colony after all ants have updated: reap dead ants,
// spawn, advance the queen cycle and brood pipeline, evolve, and apply
// emergency relief. Order matters; ants must have run first so the reap pass
// never races a half-updated roster.
func (c *Colony) Tick(ctx *Context, delta float64) {
	c.reap(ctx)
	c.tickSpawning(ctx, delta)
	c.tickQueen(ctx, delta)
	c.tickBrood(ctx, delta)
	c.tickEvolution(ctx, delta)
	c.tickRelief(delta)
}

// reap converts dead ants to corpses with mark-and-sweep. Hazard deaths feed
// the puddle's danger-signal loop.
func (c *Colony) reap(ctx *Context) {
	live := c.Ants[:0]
	for _, a := range c.Ants {
		if !a.dead {
			live = append(live, a)
			continue
		}
		c.totalDeaths++
		corpse := &Corpse{ID: uuid.New().String(), Pos: a.Pos}
		c.Corpses = append(c.Corpses, corpse)
		if a.cause == causeHazard && a.inPuddle != nil {
			ctx.Hazards.RecordDeath(a.inPuddle, ctx.Pheromones)
		}
		if a == c.queen {
			c.queen = nil
		}
		if ctx.Events != nil {
			ctx.Events.Record(telemetry.EventDeath, a.ID, string(a.Role), a.Pos.X, a.Pos.Y, 0)
		}
	}
	for i := len(live); i < len(c.Ants); i++ {
		c.Ants[i] = nil
	}
	c.Ants = live
}

func (c *Colony) tickSpawning(ctx *Context, delta float64) {
	c.spawnTimer += delta
	if c.spawnTimer < c.Settings.SpawnInterval {
		return
	}
	c.spawnTimer = 0
	if a := c.SpawnAnt(); a != nil && ctx.Events != nil {
		ctx.Events.Record(telemetry.EventSpawn, a.ID, string(a.Role), a.Pos.X, a.Pos.Y, 0)
	}
}

// tickEvolution occasionally advances the generation when the colony is
// food-secure: spawns get cheaper (floor-bounded) and the population cap
// rises (ceiling-bounded).
func (c *Colony) tickEvolution(ctx *Context, delta float64) {
	c.evolveTimer += delta
	if c.evolveTimer < c.Settings.EvolveInterval {
		return
	}
	c.evolveTimer = 0
	if c.Storage < c.Settings.EvolveStorage {
		return
	}
	if c.rand.Float64() >= c.Settings.EvolveChance {
		return
	}
	c.Generation++
	c.SpawnCost -= c.Settings.SpawnCostStep
	if c.SpawnCost < c.Settings.SpawnCostFloor {
		c.SpawnCost = c.Settings.SpawnCostFloor
	}
	c.MaxPopulation += c.Settings.PopulationStep
	if c.MaxPopulation > c.Settings.PopulationCeil {
		c.MaxPopulation = c.Settings.PopulationCeil
	}
	if ctx.Events != nil {
		ctx.Events.Record(telemetry.EventEvolution, c.ID, "", c.Home.X, c.Home.Y, float64(c.Generation))
	}
}

// tickRelief tops up every live ant when storage is critically low, so a
// transient shortage does not cascade into mass extinction.
func (c *Colony) tickRelief(delta float64) {
	c.reliefTimer += delta
	if c.reliefTimer < c.Settings.ReliefInterval {
		return
	}
	c.reliefTimer = 0
	if c.Storage >= c.Settings.ReliefStorage {
		return
	}
	for _, a := range c.Ants {
		a.Energy += c.Settings.ReliefEnergy
		if a.Energy > c.Settings.MaxEnergy {
			a.Energy = c.Settings.MaxEnergy
		}
	}
}

func (c *Colony) noteBroodFed() { c.broodFeeds++ }

func (c *Colony) nearestCorpse(pos world.Vec2, radius float64) *Corpse {
	var best *Corpse
	bestDist := radius
	for _, corpse := range c.Corpses {
		if corpse.Collected {
			continue
		}
		if d := corpse.Pos.Dist(pos); d <= bestDist {
			best, bestDist = corpse, d
		}
	}
	return best
}

func (c *Colony) removeCorpse(target *Corpse) {
	for i, corpse := range c.Corpses {
		if corpse == target {
			c.Corpses = append(c.Corpses[:i], c.Corpses[i+1:]...)
			return
		}
	}
}

// AliveCount returns the live population. Ants killed after the reap pass
// stay in the roster until the next tick but are never counted.
func (c *Colony) AliveCount() int {
	n := 0
	for _, a := range c.Ants {
		if a.Alive() {
			n++
		}
	}
	return n
}

// StateCounts returns live ants per behavioral state.
func (c *Colony) StateCounts() map[string]int {
	counts := make(map[string]int)
	for _, a := range c.Ants {
		if !a.Alive() {
			continue
		}
		counts[string(a.State)]++
	}
	return counts
}

// RoleCounts returns live ants per role.
func (c *Colony) RoleCounts() map[string]int {
	counts := make(map[string]int)
	for _, a := range c.Ants {
		if !a.Alive() {
			continue
		}
		counts[string(a.Role)]++
	}
	return counts
}

// Energies returns the energy of every live ant, for distribution stats.
func (c *Colony) Energies() []float64 {
	out := make([]float64, 0, len(c.Ants))
	for _, a := range c.Ants {
		if !a.Alive() {
			continue
		}
		out = append(out, a.Energy)
	}
	return out
}
