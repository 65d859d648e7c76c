package sim

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"antsim/internal/config"
	"antsim/internal/telemetry"
	"antsim/internal/world"
)

// MockStateWriter collects state rows for validation.
type MockStateWriter struct {
	Rows []telemetry.ColonyStateRow
}

func (w *MockStateWriter) WriteState(row telemetry.ColonyStateRow) error {
	w.Rows = append(w.Rows, row)
	return nil
}

// MockEventWriter collects event rows.
type MockEventWriter struct {
	Events []telemetry.SimEventRow
}

func (w *MockEventWriter) WriteEvent(ev telemetry.SimEventRow) error {
	w.Events = append(w.Events, ev)
	return nil
}

// MockStatsWriter collects window stats.
type MockStatsWriter struct {
	Windows []telemetry.WindowStats
}

func (w *MockStatsWriter) WriteStats(ws telemetry.WindowStats) error {
	w.Windows = append(w.Windows, ws)
	return nil
}

func testConfig() *config.SimulationConfig {
	return &config.SimulationConfig{
		World:  config.WorldConfig{Width: 800, Height: 600},
		Colony: config.ColonyConfig{ID: "colony-test", InitialAnts: 5, InitialStorage: 100},
		Food:   config.FoodConfig{Sources: 3, MinAmount: 30, MaxAmount: 80},
		Pheromones: config.PheromoneConfig{
			DecayRate: 0.15, TrailMaxAge: 15, CellSize: 50, MaxDeposits: 2000,
		},
		Speed:          1,
		StatsWindowSec: 10,
	}
}

// newTestSimulator builds a deterministic simulator: fixed seed, fixed clock.
func newTestSimulator(cfg *config.SimulationConfig, sw StateWriter, ew EventWriter, stw StatsWriter) *Simulator {
	s := NewSimulator(cfg, sw, ew, stw, time.Second)
	s.rand = rand.New(rand.NewSource(1))
	s.now = func() time.Time { return time.Unix(0, 0).UTC() }
	s.populate()
	return s
}

func TestSimulator_AdvanceWritesStateRow(t *testing.T) {
	writer := &MockStateWriter{}
	s := newTestSimulator(testConfig(), writer, nil, nil)

	s.Advance(context.Background(), 0.1)

	if len(writer.Rows) != 1 {
		t.Fatalf("expected 1 state row, got %d", len(writer.Rows))
	}
	row := writer.Rows[0]
	if row.ColonyID != "colony-test" {
		t.Errorf("missing colony id: %+v", row)
	}
	if row.Tick != 1 || row.Population != 5 || row.FoodNodes != 3 {
		t.Errorf("unexpected state row: %+v", row)
	}
}

func TestSimulator_SeedsFromConfig(t *testing.T) {
	s := newTestSimulator(testConfig(), &MockStateWriter{}, nil, nil)

	view := s.MapSnapshot()
	if len(view.Ants) != 5 {
		t.Fatalf("expected 5 ants, got %d", len(view.Ants))
	}
	if len(view.Food) != 3 {
		t.Fatalf("expected 3 food sources, got %d", len(view.Food))
	}
	if view.Weather != "clear" {
		t.Fatalf("expected clear weather, got %s", view.Weather)
	}
}

func TestSimulator_SeedsPuddlesFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Hazards = config.HazardsConfig{Puddles: 4, MinRadius: 30, MaxRadius: 60}
	s := newTestSimulator(cfg, &MockStateWriter{}, nil, nil)

	view := s.MapSnapshot()
	if len(view.Puddles) != 4 {
		t.Fatalf("expected 4 seeded puddles, got %d", len(view.Puddles))
	}
	for _, p := range view.Puddles {
		if p.Radius < 30 || p.Radius > 60 {
			t.Fatalf("puddle radius %v outside configured range", p.Radius)
		}
	}
}

func TestSimulator_RaidEmitsAttackEvents(t *testing.T) {
	events := &MockEventWriter{}
	s := newTestSimulator(testConfig(), &MockStateWriter{}, events, nil)

	s.TriggerRaid(4)
	s.Advance(context.Background(), 0.1)

	var raid, start bool
	for _, ev := range events.Events {
		switch ev.Type {
		case telemetry.EventRaid:
			raid = true
		case telemetry.EventAttackStart:
			start = true
		}
	}
	if !raid {
		t.Fatalf("raid event not written")
	}
	if !start {
		t.Fatalf("attack start event not written")
	}
	if s.Snapshot().Termites != 4 {
		t.Fatalf("expected 4 termites in snapshot, got %d", s.Snapshot().Termites)
	}
}

func TestSimulator_StatsWindowCloses(t *testing.T) {
	stats := &MockStatsWriter{}
	cfg := testConfig()
	cfg.StatsWindowSec = 1
	s := newTestSimulator(cfg, &MockStateWriter{}, nil, stats)

	for i := 0; i < 12; i++ {
		s.Advance(context.Background(), 0.1)
	}
	if len(stats.Windows) == 0 {
		t.Fatalf("expected at least one closed window")
	}
	if stats.Windows[0].Population != 5 {
		t.Errorf("unexpected window population: %+v", stats.Windows[0])
	}
}

func TestSimulator_AddFoodAppearsInSnapshot(t *testing.T) {
	s := newTestSimulator(testConfig(), &MockStateWriter{}, nil, nil)

	s.AddFood(world.Vec2{X: 100, Y: 100}, 50)
	view := s.MapSnapshot()
	if len(view.Food) != 4 {
		t.Fatalf("expected 4 food sources after drop, got %d", len(view.Food))
	}
}

func TestSimulator_ResetRestoresInitialState(t *testing.T) {
	s := newTestSimulator(testConfig(), &MockStateWriter{}, nil, nil)

	s.TriggerRaid(5)
	s.Advance(context.Background(), 0.1)
	s.Reset()

	view := s.MapSnapshot()
	if len(view.Termites) != 0 {
		t.Fatalf("termites survived reset")
	}
	if len(view.Ants) != 5 {
		t.Fatalf("expected reseeded ants, got %d", len(view.Ants))
	}
	if s.Snapshot().Tick != 0 {
		t.Fatalf("tick counter not reset")
	}
}

func TestSimulator_Health(t *testing.T) {
	s := newTestSimulator(testConfig(), &MockStateWriter{}, nil, nil)

	total := 0
	for _, h := range s.Health() {
		if h.AvgEnergy <= 0 {
			t.Errorf("role %s has non-positive energy", h.Role)
		}
		total += h.Count
	}
	if total != 5 {
		t.Fatalf("expected 5 ants across roles, got %d", total)
	}
}

func TestSimulator_RecentEventsRetained(t *testing.T) {
	s := newTestSimulator(testConfig(), &MockStateWriter{}, nil, nil)

	s.TriggerRaid(2)
	s.Advance(context.Background(), 0.1)

	events := s.RecentEvents()
	if len(events) == 0 {
		t.Fatalf("no events retained")
	}
	found := false
	for _, ev := range events {
		if ev.Type == telemetry.EventRaid {
			found = true
		}
	}
	if !found {
		t.Errorf("raid event missing from history")
	}

	s.Reset()
	if len(s.RecentEvents()) != 0 {
		t.Errorf("event history survived reset")
	}
}

func TestSimulator_BatchWriterPreferred(t *testing.T) {
	writer := &batchRecorder{}
	s := newTestSimulator(testConfig(), writer, nil, nil)

	s.Advance(context.Background(), 0.1)
	if writer.single != 0 || writer.batches != 1 {
		t.Fatalf("expected batch path, got single=%d batches=%d", writer.single, writer.batches)
	}
}

type batchRecorder struct {
	single  int
	batches int
}

func (w *batchRecorder) WriteState(telemetry.ColonyStateRow) error {
	w.single++
	return nil
}

func (w *batchRecorder) WriteStates(rows []telemetry.ColonyStateRow) error {
	w.batches++
	return nil
}
