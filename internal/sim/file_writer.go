package sim

import (
	"encoding/json"
	"os"

	"antsim/internal/telemetry"
)

// FileWriter writes state and event rows to JSONL files.
type FileWriter struct {
	stateFile *os.File
	eventFile *os.File
	stateEnc  *json.Encoder
	eventEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. eventPath may be empty to skip the
// event log.
func NewFileWriter(statePath, eventPath string) (*FileWriter, error) {
	sf, err := os.Create(statePath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{stateFile: sf, stateEnc: json.NewEncoder(sf)}
	if eventPath != "" {
		ef, err := os.Create(eventPath)
		if err != nil {
			sf.Close()
			return nil, err
		}
		fw.eventFile = ef
		fw.eventEnc = json.NewEncoder(ef)
	}
	return fw, nil
}

// WriteState logs a single state row.
func (f *FileWriter) WriteState(row telemetry.ColonyStateRow) error {
	return f.stateEnc.Encode(row)
}

// WriteStates logs multiple state rows.
func (f *FileWriter) WriteStates(rows []telemetry.ColonyStateRow) error {
	for _, r := range rows {
		if err := f.WriteState(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvent logs a single event row, if enabled.
func (f *FileWriter) WriteEvent(ev telemetry.SimEventRow) error {
	if f.eventEnc == nil {
		return nil
	}
	return f.eventEnc.Encode(ev)
}

// WriteEvents logs multiple event rows.
func (f *FileWriter) WriteEvents(rows []telemetry.SimEventRow) error {
	for _, ev := range rows {
		if err := f.WriteEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.stateFile != nil {
		if e := f.stateFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.eventFile != nil {
		if e := f.eventFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
