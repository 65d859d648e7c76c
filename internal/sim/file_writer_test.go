package sim

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"antsim/internal/telemetry"
)

func TestFileWriter_StateAndEvents(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.jsonl")
	eventPath := filepath.Join(dir, "events.jsonl")

	fw, err := NewFileWriter(statePath, eventPath)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}

	rows := []telemetry.ColonyStateRow{
		{ColonyID: "c1", Tick: 1, Population: 10, Timestamp: time.Unix(0, 0).UTC()},
		{ColonyID: "c1", Tick: 2, Population: 11, Timestamp: time.Unix(1, 0).UTC()},
	}
	if err := fw.WriteStates(rows); err != nil {
		t.Fatalf("WriteStates: %v", err)
	}
	ev := telemetry.SimEventRow{ColonyID: "c1", Type: telemetry.EventSpawn, Timestamp: time.Unix(0, 0).UTC()}
	if err := fw.WriteEvent(ev); err != nil {
		t.Fatalf("WriteEvent: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(statePath)
	if err != nil {
		t.Fatalf("open state log: %v", err)
	}
	defer f.Close()
	var got []telemetry.ColonyStateRow
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var row telemetry.ColonyStateRow
		if err := json.Unmarshal(sc.Bytes(), &row); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		got = append(got, row)
	}
	if len(got) != 2 || got[1].Tick != 2 {
		t.Fatalf("unexpected state rows: %+v", got)
	}

	evData, err := os.ReadFile(eventPath)
	if err != nil {
		t.Fatalf("read event log: %v", err)
	}
	if len(evData) == 0 {
		t.Fatalf("event log empty")
	}
}

func TestFileWriter_EventsOptional(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.jsonl")
	fw, err := NewFileWriter(statePath, "")
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	defer fw.Close()

	if err := fw.WriteEvent(telemetry.SimEventRow{Type: telemetry.EventDeath}); err != nil {
		t.Fatalf("expected nil error with events disabled, got %v", err)
	}
}
