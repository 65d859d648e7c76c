// Writer implementation printing rows to STDOUT
package sim

import (
	"encoding/json"
	"fmt"

	"antsim/internal/telemetry"
)

// StdoutWriter prints rows to STDOUT as JSON lines.
type StdoutWriter struct{}

// WriteState outputs a single state row.
func (w *StdoutWriter) WriteState(row telemetry.ColonyStateRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteStates outputs multiple state rows.
func (w *StdoutWriter) WriteStates(rows []telemetry.ColonyStateRow) error {
	for _, r := range rows {
		_ = w.WriteState(r)
	}
	return nil
}

// WriteEvent prints a simulation event to STDOUT.
func (w *StdoutWriter) WriteEvent(ev telemetry.SimEventRow) error {
	data, _ := json.Marshal(ev)
	fmt.Println(string(data))
	return nil
}

// WriteEvents prints multiple simulation events.
func (w *StdoutWriter) WriteEvents(rows []telemetry.SimEventRow) error {
	for _, ev := range rows {
		_ = w.WriteEvent(ev)
	}
	return nil
}

// WriteStats prints a closed stats window.
func (w *StdoutWriter) WriteStats(ws telemetry.WindowStats) error {
	data, _ := json.Marshal(ws)
	fmt.Println(string(data))
	return nil
}
