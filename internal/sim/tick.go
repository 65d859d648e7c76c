package sim

import (
	"context"
	"time"

	"antsim/internal/colony"
	"antsim/internal/logging"
	"antsim/internal/telemetry"
)

// Run starts the simulation loop and stops when the context is done.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator", "tick_interval", s.tickInterval, "speed", s.speed)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Advance(ctx, s.tickInterval.Seconds()*s.speed)
		case <-ctx.Done():
			log.Info("stopping simulator")
			return
		}
	}
}

// Advance moves the simulation forward by delta simulated seconds.
func (s *Simulator) Advance(ctx context.Context, delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advance(ctx, delta)
}

// advance runs one tick in fixed component order: pheromone decay, food
// lifecycle, ants, colony reconciliation, termites, then the world-event
// scheduler. Every subsystem sees the same delta.
func (s *Simulator) advance(ctx context.Context, delta float64) {
	log := logging.FromContext(ctx)
	s.elapsed += delta
	s.tickCount++

	s.pheromones.Tick(delta)
	s.foods.Tick(delta)

	threats := s.termites.Threats()
	s.noteAttackEdge(len(threats) > 0)
	s.col.SetUnderAttack(len(threats) > 0)

	actx := &colony.Context{
		Pheromones: s.pheromones,
		Food:       s.foods,
		Hazards:    s.hazards,
		Threats:    threats,
		Bounds:     s.bounds,
		Terrain:    s.terrain,
		Weather:    s.weather,
		Rand:       s.rand,
		Events:     s.events,
	}
	for _, a := range s.col.Ants {
		a.Update(actx, delta)
	}
	s.col.Tick(actx, delta)
	s.termites.Step(delta, s.col, s.foods, s.events)
	s.schedule(delta)
	s.advancePhase()

	row := s.buildStateRow()
	s.lastState = row
	if s.writer != nil {
		if bw, ok := s.writer.(batchStateWriter); ok {
			if err := bw.WriteStates([]telemetry.ColonyStateRow{row}); err != nil {
				log.Error("state batch write failed", "err", err)
			}
		} else if err := s.writer.WriteState(row); err != nil {
			log.Error("state write failed", "tick", row.Tick, "err", err)
		}
	}

	events := s.events.Drain()
	for _, ev := range events {
		s.collector.CountEvent(ev)
	}
	s.recent = append(s.recent, events...)
	if len(s.recent) > maxRecentEvents {
		s.recent = s.recent[len(s.recent)-maxRecentEvents:]
	}
	if len(events) > 0 && s.eventWriter != nil {
		if bw, ok := s.eventWriter.(batchEventWriter); ok {
			if err := bw.WriteEvents(events); err != nil {
				log.Error("event batch write failed", "err", err)
			}
		} else {
			for _, ev := range events {
				if err := s.eventWriter.WriteEvent(ev); err != nil {
					log.Error("event write failed", "event_type", ev.Type, "err", err)
				}
			}
		}
	}

	if ws, closed := s.collector.Advance(delta, s.elapsed, s.col.AliveCount(), s.col.Storage, s.col.Energies()); closed && s.statsWriter != nil {
		if err := s.statsWriter.WriteStats(ws); err != nil {
			log.Error("stats write failed", "window_end", ws.WindowEnd, "err", err)
		}
	}
}

// noteAttackEdge records attack start/end transitions before the defense
// flag is applied, so the events line up with the tick the ants react on.
func (s *Simulator) noteAttackEdge(active bool) {
	if active == s.attackActive {
		return
	}
	s.attackActive = active
	home := s.col.Home
	if active {
		s.events.Record(telemetry.EventAttackStart, "", "", home.X, home.Y, float64(s.termites.Alive()))
	} else {
		s.events.Record(telemetry.EventAttackEnd, "", "", home.X, home.Y, 0)
	}
}

func (s *Simulator) buildStateRow() telemetry.ColonyStateRow {
	pherCounts := make(map[string]int)
	for t, n := range s.pheromones.CountByType() {
		pherCounts[string(t)] = n
	}
	return telemetry.ColonyStateRow{
		ColonyID:        s.col.ID,
		Tick:            s.tickCount,
		SimTime:         s.elapsed,
		Population:      s.col.AliveCount(),
		Storage:         s.col.Storage,
		Eggs:            s.col.Eggs,
		Larvae:          s.col.Larvae,
		Pupae:           s.col.Pupae,
		Generation:      s.col.Generation,
		Deaths:          s.col.TotalDeaths(),
		Corpses:         len(s.col.Corpses),
		Collected:       s.col.CorpsesCollected(),
		Termites:        s.termites.Alive(),
		FoodNodes:       s.foods.ActiveCount(),
		Pheromones:      s.pheromones.Count(),
		Weather:         string(s.weather),
		StateCounts:     s.col.StateCounts(),
		PheromoneCounts: pherCounts,
		Timestamp:       s.now().UTC(),
	}
}
