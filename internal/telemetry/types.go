// Row types written by the simulation's output sinks.
package telemetry

import (
	"os"
	"time"
)

// ColonyStateRow captures one per-tick aggregate snapshot of the simulation.
type ColonyStateRow struct {
	ColonyID   string  `json:"colony_id"` // TAG
	Tick       int64   `json:"tick"`
	SimTime    float64 `json:"sim_time"`
	Population int     `json:"population"`
	Storage    float64 `json:"storage"`
	Eggs       int     `json:"eggs"`
	Larvae     int     `json:"larvae"`
	Pupae      int     `json:"pupae"`
	Generation int     `json:"generation"`
	Deaths     int     `json:"deaths"`
	Corpses    int     `json:"corpses"`
	Collected  int     `json:"corpses_collected"`
	Termites   int     `json:"termites"`
	FoodNodes  int     `json:"food_nodes"`
	Pheromones int     `json:"pheromones"`
	Weather    string  `json:"weather"`

	// Distribution detail kept out of the flat column set.
	StateCounts     map[string]int `json:"state_counts,omitempty"`
	PheromoneCounts map[string]int `json:"pheromone_counts,omitempty"`

	Timestamp time.Time `json:"ts"` // TIME INDEX
}

// StateTableName holds the table name used when writing state rows to
// GreptimeDB. It defaults to "colony_state" but can be overridden via the
// GREPTIMEDB_TABLE environment variable.
var StateTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "colony_state"
}()

func (ColonyStateRow) TableName() string {
	return StateTableName
}

// EventTableName is the GreptimeDB table for simulation events, overridable
// via SIM_EVENT_TABLE.
var EventTableName = func() string {
	if env := os.Getenv("SIM_EVENT_TABLE"); env != "" {
		return env
	}
	return "sim_events"
}()
