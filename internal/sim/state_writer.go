package sim

import "antsim/internal/telemetry"

// StateWriter handles per-tick colony state rows.
type StateWriter interface {
	WriteState(telemetry.ColonyStateRow) error
}

// Optional: writers may support batch mode for state rows.
type batchStateWriter interface {
	WriteStates([]telemetry.ColonyStateRow) error
}

// EventWriter handles discrete simulation events.
type EventWriter interface {
	WriteEvent(telemetry.SimEventRow) error
}

// Optional: event writers may support batch mode.
type batchEventWriter interface {
	WriteEvents([]telemetry.SimEventRow) error
}

// StatsWriter handles closed stats windows.
type StatsWriter interface {
	WriteStats(telemetry.WindowStats) error
}
