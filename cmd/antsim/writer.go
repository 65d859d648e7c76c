package main

import (
	"os"

	"antsim/internal/config"
	"antsim/internal/sim"
)

// writerOptions selects the output sinks for a simulation run.
type writerOptions struct {
	printOnly bool
	color     bool
	tui       bool
	logFile   string
	statsCSV  string
}

// newWriters sets up state, event, and stats writers based on flags and env
// vars. It returns the writers and a cleanup function to close any resources.
func newWriters(cfg *config.SimulationConfig, opts writerOptions) (sim.StateWriter, sim.EventWriter, sim.StatsWriter, func(), error) {
	cleanup := func() {}

	base, err := baseWriter(cfg, opts)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	stateWriter, _ := base.(sim.StateWriter)
	eventWriter, _ := base.(sim.EventWriter)
	statsWriter, _ := base.(sim.StatsWriter)

	closers := []func(){}
	if opts.logFile != "" {
		fw, err := sim.NewFileWriter(opts.logFile, opts.logFile+".events")
		if err != nil {
			return nil, nil, nil, nil, err
		}
		closers = append(closers, func() { fw.Close() })
		mw := sim.NewMultiWriter(
			[]sim.StateWriter{stateWriter, fw},
			[]sim.EventWriter{eventWriter, fw},
		)
		stateWriter = mw
		eventWriter = mw
	}
	if opts.statsCSV != "" {
		cw, err := sim.NewCSVStatsWriter(opts.statsCSV)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, nil, nil, nil, err
		}
		closers = append(closers, func() { cw.Close() })
		statsWriter = cw
	}
	if len(closers) > 0 {
		cleanup = func() {
			for _, c := range closers {
				c()
			}
		}
	}
	return stateWriter, eventWriter, statsWriter, cleanup, nil
}

// baseWriter chooses the primary sink: TUI, colorized or JSON STDOUT, or
// GreptimeDB when an endpoint is configured.
func baseWriter(cfg *config.SimulationConfig, opts writerOptions) (any, error) {
	if opts.tui {
		return sim.NewTUIWriter(cfg), nil
	}
	if opts.printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "" {
		if opts.color {
			return sim.NewColorStdoutWriter(cfg), nil
		}
		return &sim.StdoutWriter{}, nil
	}
	endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
	return sim.NewGreptimeDBWriter(endpoint, "public")
}
