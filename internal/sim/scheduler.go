package sim

import (
	"antsim/internal/scenario"
	"antsim/internal/telemetry"
	"antsim/internal/world"
)

// Scheduler tuning used when no scenario arc is active, and raid geometry.
const (
	defaultRainChance   = 0.003
	defaultRainDuration = 25.0
	defaultRaidChance   = 0.002
	defaultRaidSize     = 3
	defaultPuddleChance = 0.02

	puddleMinRadius = 20.0
	puddleMaxRadius = 40.0
	raidSpread      = 60.0
)

// schedule fires probabilistic world events: rain start/stop, puddle
// formation during rain, and termite raids. Probabilities are per second and
// scaled by delta, so tick rate does not change event frequency.
func (s *Simulator) schedule(delta float64) {
	env := s.currentEnvironment()

	if s.weather == world.WeatherRain {
		s.rainTimer -= delta
		if s.rainTimer <= 0 {
			s.weather = world.WeatherClear
			s.events.Record(telemetry.EventRainEnd, "", "", 0, 0, 0)
		}
	} else if s.rand.Float64() < env.RainChance*delta {
		s.weather = world.WeatherRain
		s.rainTimer = env.RainDuration
		if s.rainTimer <= 0 {
			s.rainTimer = defaultRainDuration
		}
		s.events.Record(telemetry.EventRainStart, "", "", 0, 0, s.rainTimer)
	}

	if s.weather == world.WeatherRain && s.rand.Float64() < env.PuddleChance*delta {
		radius := puddleMinRadius + s.rand.Float64()*(puddleMaxRadius-puddleMinRadius)
		p := s.hazards.Add(s.bounds.RandomPoint(s.rand), radius)
		s.events.Record(telemetry.EventPuddle, p.ID, "", p.Pos.X, p.Pos.Y, p.Radius)
	}

	if env.RaidChance > 0 && s.rand.Float64() < env.RaidChance*delta {
		s.spawnRaid(env.RaidSize)
	}
}

// spawnRaid places a raiding party near a random world edge.
func (s *Simulator) spawnRaid(size int) {
	if size <= 0 {
		size = defaultRaidSize
	}
	origin := s.edgePoint()
	s.termites.Spawn(size, origin, raidSpread, s.bounds)
	s.events.Record(telemetry.EventRaid, "", "", origin.X, origin.Y, float64(size))
}

// edgePoint returns a random point on the world boundary.
func (s *Simulator) edgePoint() world.Vec2 {
	w := s.bounds.MaxX - s.bounds.MinX
	h := s.bounds.MaxY - s.bounds.MinY
	switch s.rand.Intn(4) {
	case 0:
		return world.Vec2{X: s.bounds.MinX + s.rand.Float64()*w, Y: s.bounds.MinY}
	case 1:
		return world.Vec2{X: s.bounds.MinX + s.rand.Float64()*w, Y: s.bounds.MaxY}
	case 2:
		return world.Vec2{X: s.bounds.MinX, Y: s.bounds.MinY + s.rand.Float64()*h}
	default:
		return world.Vec2{X: s.bounds.MaxX, Y: s.bounds.MinY + s.rand.Float64()*h}
	}
}

// advancePhase pushes the scenario arc forward when a trigger condition is
// met. One transition per tick keeps phase changes observable in order.
func (s *Simulator) advancePhase() {
	if s.arc == nil {
		return
	}
	probes := []scenario.Event{
		{Type: "time_elapsed", Value: int(s.elapsed)},
		{Type: "ant_deaths", Value: s.col.TotalDeaths()},
		{Type: "generation", Value: s.col.Generation},
	}
	for _, ev := range probes {
		if next, ok := s.arc.NextPhase(s.phase, ev); ok {
			s.events.Record(telemetry.EventPhase, "", next, 0, 0, 0)
			s.phase = next
			return
		}
	}
}

func (s *Simulator) currentEnvironment() scenario.Environment {
	if s.arc != nil {
		if p, ok := s.arc.PhaseByName(s.phase); ok {
			return p.Environment
		}
	}
	return scenario.Environment{
		RainChance:   defaultRainChance,
		RainDuration: defaultRainDuration,
		RaidChance:   defaultRaidChance,
		RaidSize:     defaultRaidSize,
		PuddleChance: defaultPuddleChance,
	}
}
