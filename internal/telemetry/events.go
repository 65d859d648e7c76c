package telemetry

import "time"

// Simulation event types.
const (
	EventSpawn       = "spawn"
	EventDeath       = "death"
	EventDepletion   = "depletion"
	EventAttackStart = "attack_start"
	EventAttackEnd   = "attack_end"
	EventRainStart   = "rain_start"
	EventRainEnd     = "rain_end"
	EventFlight      = "nuptial_flight"
	EventEggsLaid    = "eggs_laid"
	EventRaid        = "termite_raid"
	EventEvolution   = "evolution"
	EventPuddle      = "puddle_formed"
	EventPhase       = "phase_change"
)

// SimEventRow describes one discrete simulation event for visual or
// analytics hooks.
type SimEventRow struct {
	ColonyID  string    `json:"colony_id"`
	Type      string    `json:"event_type"`
	EntityID  string    `json:"entity_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Value     float64   `json:"value,omitempty"`
	Timestamp time.Time `json:"ts"`
}

func (SimEventRow) TableName() string {
	return EventTableName
}

// Recorder accumulates events emitted by subsystems during a tick. The
// simulator drains it once per tick and fans the rows out to writers; the
// core never depends on what the sink does with them.
type Recorder struct {
	colonyID string
	now      func() time.Time
	events   []SimEventRow
}

// NewRecorder creates a recorder stamping rows with colonyID.
func NewRecorder(colonyID string, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{colonyID: colonyID, now: now}
}

// Record appends one event.
func (r *Recorder) Record(evType, entityID, detail string, x, y, value float64) {
	r.events = append(r.events, SimEventRow{
		ColonyID:  r.colonyID,
		Type:      evType,
		EntityID:  entityID,
		Detail:    detail,
		X:         x,
		Y:         y,
		Value:     value,
		Timestamp: r.now().UTC(),
	})
}

// Drain returns and clears the accumulated events.
func (r *Recorder) Drain() []SimEventRow {
	evs := r.events
	r.events = nil
	return evs
}

// Pending returns the number of undrained events.
func (r *Recorder) Pending() int { return len(r.events) }
