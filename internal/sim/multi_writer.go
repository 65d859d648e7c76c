package sim

import "antsim/internal/telemetry"

// MultiWriter fans state and event rows out to multiple writers.
type MultiWriter struct {
	stateWriters []StateWriter
	eventWriters []EventWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(sws []StateWriter, ews []EventWriter) *MultiWriter {
	return &MultiWriter{stateWriters: sws, eventWriters: ews}
}

// WriteState sends a state row to all writers.
func (mw *MultiWriter) WriteState(row telemetry.ColonyStateRow) error {
	for _, w := range mw.stateWriters {
		if err := w.WriteState(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteStates sends multiple state rows to all writers, using batch if
// supported.
func (mw *MultiWriter) WriteStates(rows []telemetry.ColonyStateRow) error {
	for _, w := range mw.stateWriters {
		if bw, ok := w.(batchStateWriter); ok {
			if err := bw.WriteStates(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteState(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteEvent sends an event row to all event writers.
func (mw *MultiWriter) WriteEvent(ev telemetry.SimEventRow) error {
	for _, w := range mw.eventWriters {
		if err := w.WriteEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvents sends multiple events to all event writers, using batch if
// supported.
func (mw *MultiWriter) WriteEvents(rows []telemetry.SimEventRow) error {
	for _, w := range mw.eventWriters {
		if bw, ok := w.(batchEventWriter); ok {
			if err := bw.WriteEvents(rows); err != nil {
				return err
			}
			continue
		}
		for _, ev := range rows {
			if err := w.WriteEvent(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
