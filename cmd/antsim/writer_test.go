package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"antsim/internal/config"
	"antsim/internal/sim"
	"antsim/internal/telemetry"
)

func testCfg(t *testing.T) *config.SimulationConfig {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	return cfg
}

func TestNewWritersPrintOnly(t *testing.T) {
	sw, ew, stw, cleanup, err := newWriters(testCfg(t), writerOptions{printOnly: true})
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := sw.(*sim.StdoutWriter); !ok {
		t.Fatalf("expected *sim.StdoutWriter, got %T", sw)
	}
	if _, ok := ew.(*sim.StdoutWriter); !ok {
		t.Fatalf("expected event writer *sim.StdoutWriter, got %T", ew)
	}
	if _, ok := stw.(*sim.StdoutWriter); !ok {
		t.Fatalf("expected stats writer *sim.StdoutWriter, got %T", stw)
	}
}

func TestNewWritersGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	sw, _, _, cleanup, err := newWriters(testCfg(t), writerOptions{})
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := sw.(*sim.StdoutWriter); !ok {
		t.Fatalf("expected *sim.StdoutWriter, got %T", sw)
	}
}

func TestNewWritersColor(t *testing.T) {
	sw, _, _, cleanup, err := newWriters(testCfg(t), writerOptions{printOnly: true, color: true})
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := sw.(*sim.ColorStdoutWriter); !ok {
		t.Fatalf("expected *sim.ColorStdoutWriter, got %T", sw)
	}
}

func TestNewWritersLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.log")
	sw, ew, _, cleanup, err := newWriters(testCfg(t), writerOptions{printOnly: true, logFile: path})
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	if _, ok := sw.(*sim.MultiWriter); !ok {
		t.Fatalf("expected *sim.MultiWriter, got %T", sw)
	}
	row := telemetry.ColonyStateRow{ColonyID: "c1", Tick: 1, Timestamp: time.Now()}
	if err := sw.WriteState(row); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	ev := telemetry.SimEventRow{ColonyID: "c1", Type: telemetry.EventSpawn, Timestamp: time.Now()}
	if err := ew.WriteEvent(ev); err != nil {
		t.Fatalf("write event failed: %v", err)
	}
	cleanup()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected log file to be non-empty")
	}
	evInfo, err := os.Stat(path + ".events")
	if err != nil {
		t.Fatalf("stat events failed: %v", err)
	}
	if evInfo.Size() == 0 {
		t.Fatalf("expected event file to be non-empty")
	}
}

func TestNewWritersStatsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")
	_, _, stw, cleanup, err := newWriters(testCfg(t), writerOptions{printOnly: true, statsCSV: path})
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	if _, ok := stw.(*sim.CSVStatsWriter); !ok {
		t.Fatalf("expected *sim.CSVStatsWriter, got %T", stw)
	}
	if err := stw.WriteStats(telemetry.WindowStats{WindowEnd: 10}); err != nil {
		t.Fatalf("write stats failed: %v", err)
	}
	cleanup()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected stats csv to be non-empty")
	}
}
