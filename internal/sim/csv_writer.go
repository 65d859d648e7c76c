package sim

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"antsim/internal/telemetry"
)

// CSVStatsWriter appends window stats to a CSV file, writing the header on
// the first record.
type CSVStatsWriter struct {
	file          *os.File
	headerWritten bool
}

// NewCSVStatsWriter creates stats.csv at path.
func NewCSVStatsWriter(path string) (*CSVStatsWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating stats csv: %w", err)
	}
	return &CSVStatsWriter{file: f}, nil
}

// WriteStats appends one window record.
func (w *CSVStatsWriter) WriteStats(ws telemetry.WindowStats) error {
	records := []telemetry.WindowStats{ws}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.file); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.file); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (w *CSVStatsWriter) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}
