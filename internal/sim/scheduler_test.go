package sim

import (
	"context"
	"testing"

	"antsim/internal/scenario"
	"antsim/internal/telemetry"
	"antsim/internal/world"
)

// forcedArc returns an arc whose first phase makes the probed event certain.
func forcedArc(env scenario.Environment, triggers ...scenario.Trigger) *scenario.Scenario {
	return &scenario.Scenario{
		Phases: []scenario.Phase{
			{Name: "setup", Environment: env, Triggers: triggers},
			{Name: "next"},
		},
	}
}

func TestSchedule_RainStartsAndStops(t *testing.T) {
	events := &MockEventWriter{}
	s := newTestSimulator(testConfig(), &MockStateWriter{}, events, nil)
	s.arc = forcedArc(scenario.Environment{RainChance: 10, RainDuration: 0.2})
	s.phase = "setup"

	s.Advance(context.Background(), 0.1)
	if s.weather != world.WeatherRain {
		t.Fatalf("expected rain with certain chance")
	}
	var started bool
	for _, ev := range events.Events {
		if ev.Type == telemetry.EventRainStart {
			started = true
		}
	}
	if !started {
		t.Fatalf("rain start event not recorded")
	}

	// Duration elapses and the rain ends. Chance is re-rolled each tick, so
	// zero it to observe the stop.
	s.arc = forcedArc(scenario.Environment{RainChance: 0})
	s.Advance(context.Background(), 0.3)
	if s.weather != world.WeatherClear {
		t.Fatalf("expected clear after rain duration")
	}
	var ended bool
	for _, ev := range events.Events {
		if ev.Type == telemetry.EventRainEnd {
			ended = true
		}
	}
	if !ended {
		t.Fatalf("rain end event not recorded")
	}
}

func TestSchedule_PuddlesOnlyDuringRain(t *testing.T) {
	s := newTestSimulator(testConfig(), &MockStateWriter{}, nil, nil)

	// Certain puddle chance but no rain: nothing forms.
	s.arc = forcedArc(scenario.Environment{PuddleChance: 10})
	s.phase = "setup"
	s.Advance(context.Background(), 0.1)
	if len(s.hazards.Puddles()) != 0 {
		t.Fatalf("puddle formed without rain")
	}

	s.arc = forcedArc(scenario.Environment{RainChance: 10, RainDuration: 60, PuddleChance: 10})
	s.Advance(context.Background(), 0.1) // rain starts
	s.Advance(context.Background(), 0.1) // puddle forms
	if len(s.hazards.Puddles()) == 0 {
		t.Fatalf("no puddle formed during rain")
	}
	for _, p := range s.hazards.Puddles() {
		if !s.bounds.Contains(p.Pos) {
			t.Fatalf("puddle out of bounds: %+v", p.Pos)
		}
	}
}

func TestSchedule_RaidsSpawnAtEdges(t *testing.T) {
	s := newTestSimulator(testConfig(), &MockStateWriter{}, nil, nil)
	s.arc = forcedArc(scenario.Environment{RaidChance: 10, RaidSize: 3})
	s.phase = "setup"

	s.Advance(context.Background(), 0.1)
	if s.termites.Alive() == 0 {
		t.Fatalf("no termites spawned")
	}
	for _, tm := range s.termites.Termites {
		if !s.bounds.Contains(tm.Pos) {
			t.Fatalf("termite out of bounds: %+v", tm.Pos)
		}
	}
}

func TestAdvancePhase_TimeElapsedTrigger(t *testing.T) {
	events := &MockEventWriter{}
	s := newTestSimulator(testConfig(), &MockStateWriter{}, events, nil)
	s.arc = forcedArc(scenario.Environment{}, scenario.Trigger{Event: "time_elapsed", Value: 1, Next: "next"})
	s.phase = "setup"

	s.Advance(context.Background(), 1.5)
	if s.Phase() != "next" {
		t.Fatalf("expected phase transition, still in %s", s.Phase())
	}
	var phased bool
	for _, ev := range events.Events {
		if ev.Type == telemetry.EventPhase && ev.Detail == "next" {
			phased = true
		}
	}
	if !phased {
		t.Fatalf("phase change event not recorded")
	}
}

func TestCurrentEnvironment_FallbackWithoutArc(t *testing.T) {
	s := newTestSimulator(testConfig(), &MockStateWriter{}, nil, nil)
	s.arc = nil

	env := s.currentEnvironment()
	if env.RainChance != defaultRainChance || env.RaidSize != defaultRaidSize {
		t.Fatalf("unexpected fallback environment: %+v", env)
	}
}

func TestEdgePoint_OnBoundary(t *testing.T) {
	s := newTestSimulator(testConfig(), &MockStateWriter{}, nil, nil)
	for i := 0; i < 50; i++ {
		p := s.edgePoint()
		onEdge := p.X == s.bounds.MinX || p.X == s.bounds.MaxX ||
			p.Y == s.bounds.MinY || p.Y == s.bounds.MaxY
		if !onEdge {
			t.Fatalf("point not on boundary: %+v", p)
		}
	}
}
