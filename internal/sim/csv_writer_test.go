package sim

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"antsim/internal/telemetry"
)

func TestCSVStatsWriter_HeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")
	w, err := NewCSVStatsWriter(path)
	if err != nil {
		t.Fatalf("NewCSVStatsWriter: %v", err)
	}

	if err := w.WriteStats(telemetry.WindowStats{WindowEnd: 10, Population: 5, Births: 1}); err != nil {
		t.Fatalf("WriteStats: %v", err)
	}
	if err := w.WriteStats(telemetry.WindowStats{WindowEnd: 20, Population: 6, Deaths: 2}); err != nil {
		t.Fatalf("WriteStats: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	content := string(data)
	if strings.Count(content, "window_end") != 1 {
		t.Errorf("header should appear exactly once:\n%s", content)
	}
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 records, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "10") || !strings.HasPrefix(lines[2], "20") {
		t.Errorf("records out of order:\n%s", content)
	}
}
