// Simulator orchestrating the colony world and its output sinks.
package sim

import (
	"math/rand"
	"sync"
	"time"

	"antsim/internal/colony"
	"antsim/internal/config"
	"antsim/internal/food"
	"antsim/internal/hazard"
	"antsim/internal/pheromone"
	"antsim/internal/scenario"
	"antsim/internal/telemetry"
	"antsim/internal/termite"
	"antsim/internal/world"
)

// Simulator owns every subsystem and advances them in a fixed order each
// tick. All mutation happens on the tick goroutine; snapshot queries take the
// mutex.
type Simulator struct {
	cfg     *config.SimulationConfig
	bounds  world.Rect
	terrain world.TerrainFunc
	weather world.Weather

	pheromones *pheromone.Field
	foods      *food.Manager
	hazards    *hazard.Field
	col        *colony.Colony
	termites   *termite.Engine
	events     *telemetry.Recorder
	collector  *telemetry.Collector

	arc       *scenario.Scenario
	phase     string
	rainTimer float64

	writer      StateWriter
	eventWriter EventWriter
	statsWriter StatsWriter

	tickInterval time.Duration
	speed        float64
	elapsed      float64
	tickCount    int64

	attackActive bool
	lastState    telemetry.ColonyStateRow
	recent       []telemetry.SimEventRow

	rand *rand.Rand
	now  func() time.Time
	mu   sync.Mutex
}

// NewSimulator builds a simulator from config. eventWriter and statsWriter
// may be nil to skip those sinks.
func NewSimulator(cfg *config.SimulationConfig, writer StateWriter, eventWriter EventWriter, statsWriter StatsWriter, tickInterval time.Duration) *Simulator {
	s := &Simulator{
		cfg:          cfg,
		writer:       writer,
		eventWriter:  eventWriter,
		statsWriter:  statsWriter,
		tickInterval: tickInterval,
		speed:        cfg.Speed,
		terrain:      world.FlatTerrain,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:          time.Now,
	}
	if s.speed <= 0 {
		s.speed = 1
	}
	s.arc = s.resolveArc()
	s.populate()
	return s
}

// resolveArc picks the scenario arc: an explicit file wins, then a built-in
// name, then none.
func (s *Simulator) resolveArc() *scenario.Scenario {
	if s.cfg.ScenarioFile != "" {
		if arc, err := scenario.Load(s.cfg.ScenarioFile); err == nil {
			return arc
		}
	}
	if arc, ok := scenario.BuiltIn()[s.cfg.Scenario]; ok {
		return &arc
	}
	return nil
}

// populate (re)creates every subsystem from config. Callers hold the mutex
// or run before the loop starts.
func (s *Simulator) populate() {
	s.bounds = world.NewRect(s.cfg.World.Width, s.cfg.World.Height)
	s.weather = world.WeatherClear
	s.rainTimer = 0
	s.elapsed = 0
	s.tickCount = 0
	s.attackActive = false
	s.recent = nil
	if s.arc != nil {
		s.phase = s.arc.First()
	}

	s.pheromones = pheromone.NewField(pheromone.Options{
		CellSize:    s.cfg.Pheromones.CellSize,
		DecayRate:   s.cfg.Pheromones.DecayRate,
		TrailMaxAge: s.cfg.Pheromones.TrailMaxAge,
		MaxDeposits: s.cfg.Pheromones.MaxDeposits,
	})
	s.foods = food.NewManager(s.rand)
	s.foods.Seed(s.cfg.Food.Sources, s.bounds, s.cfg.Food.MinAmount, s.cfg.Food.MaxAmount)
	s.hazards = hazard.NewField(s.rand)
	if s.cfg.Hazards.Puddles > 0 {
		s.hazards.Seed(s.cfg.Hazards.Puddles, s.bounds, s.cfg.Hazards.MinRadius, s.cfg.Hazards.MaxRadius)
	}
	s.termites = termite.NewEngine(s.rand)
	s.events = telemetry.NewRecorder(s.cfg.Colony.ID, s.now)

	windowSec := s.cfg.StatsWindowSec
	if windowSec <= 0 {
		windowSec = 10
	}
	s.collector = telemetry.NewCollector(windowSec)

	settings := colony.DefaultSettings()
	settings.CarryFullOnly = s.cfg.Colony.CarryFullOnly
	s.col = colony.New(s.cfg.Colony.ID, s.bounds.Center(), settings, s.cfg.Colony.InitialStorage, s.rand)
	s.col.SeedAnts(s.cfg.Colony.InitialAnts)
}

// Reset tears the world down and recreates it from config.
func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.populate()
}

// AddFood drops a food source at pos, the host-driven "food drop" action.
func (s *Simulator) AddFood(pos world.Vec2, amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.foods.Add(s.bounds.Clamp(pos), amount)
}

// TriggerRaid spawns a termite raid immediately, regardless of schedule.
func (s *Simulator) TriggerRaid(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spawnRaid(size)
}

// maxRecentEvents bounds the event history kept for snapshot consumers.
const maxRecentEvents = 200

// RecentEvents returns the most recent simulation events, oldest first.
func (s *Simulator) RecentEvents() []telemetry.SimEventRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]telemetry.SimEventRow, len(s.recent))
	copy(out, s.recent)
	return out
}

// Snapshot returns the last written state row.
func (s *Simulator) Snapshot() telemetry.ColonyStateRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastState
}

// AntView is one ant's position and state for presentation layers.
type AntView struct {
	ID    string  `json:"id"`
	Role  string  `json:"role"`
	State string  `json:"state"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	// Energy as a fraction of the maximum.
	Energy float64 `json:"energy"`
}

// TermiteView is one termite's position and state.
type TermiteView struct {
	ID     string  `json:"id"`
	State  string  `json:"state"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Health float64 `json:"health"`
}

// FoodView is one active food source.
type FoodView struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Amount float64 `json:"amount"`
}

// PuddleView is one hazard puddle.
type PuddleView struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Deaths int     `json:"deaths"`
}

// WorldView aggregates entity positions for map-style consumers.
type WorldView struct {
	Ants     []AntView     `json:"ants"`
	Termites []TermiteView `json:"termites"`
	Food     []FoodView    `json:"food"`
	Puddles  []PuddleView  `json:"puddles"`
	Weather  string        `json:"weather"`
	Phase    string        `json:"phase,omitempty"`
}

// MapSnapshot returns positions of every live entity.
func (s *Simulator) MapSnapshot() WorldView {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := WorldView{Weather: string(s.weather), Phase: s.phase}
	maxEnergy := s.col.Settings.MaxEnergy
	for _, a := range s.col.Ants {
		if !a.Alive() {
			continue
		}
		view.Ants = append(view.Ants, AntView{
			ID: a.ID, Role: string(a.Role), State: string(a.State),
			X: a.Pos.X, Y: a.Pos.Y, Energy: a.Energy / maxEnergy,
		})
	}
	for _, t := range s.termites.Termites {
		view.Termites = append(view.Termites, TermiteView{
			ID: t.ID, State: string(t.State), X: t.Pos.X, Y: t.Pos.Y, Health: t.Health,
		})
	}
	for _, src := range s.foods.Sources() {
		if !src.Active {
			continue
		}
		view.Food = append(view.Food, FoodView{ID: src.ID, X: src.Pos.X, Y: src.Pos.Y, Amount: src.Amount})
	}
	for _, p := range s.hazards.Puddles() {
		view.Puddles = append(view.Puddles, PuddleView{ID: p.ID, X: p.Pos.X, Y: p.Pos.Y, Radius: p.Radius, Deaths: p.Deaths})
	}
	return view
}

// RoleHealth summarizes one role's population and mean energy.
type RoleHealth struct {
	Role      string  `json:"role"`
	Count     int     `json:"count"`
	AvgEnergy float64 `json:"avg_energy"`
}

// Health returns per-role population and energy aggregates.
func (s *Simulator) Health() []RoleHealth {
	s.mu.Lock()
	defer s.mu.Unlock()
	sums := make(map[string]float64)
	counts := make(map[string]int)
	order := []string{}
	for _, a := range s.col.Ants {
		if !a.Alive() {
			continue
		}
		role := string(a.Role)
		if _, seen := counts[role]; !seen {
			order = append(order, role)
		}
		counts[role]++
		sums[role] += a.Energy
	}
	out := make([]RoleHealth, 0, len(order))
	for _, role := range order {
		out = append(out, RoleHealth{
			Role:      role,
			Count:     counts[role],
			AvgEnergy: sums[role] / float64(counts[role]),
		})
	}
	return out
}

// GetConfig returns the simulation configuration.
func (s *Simulator) GetConfig() *config.SimulationConfig {
	return s.cfg
}

// Phase returns the active scenario phase, or "" without an arc.
func (s *Simulator) Phase() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}
