package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"antsim/internal/config"
	"antsim/internal/sim"
)

var (
	replayInput     string
	replayEvents    string
	replaySpeed     float64
	replayPrintOnly bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a state log file",
	Long:  "replay feeds state rows from a JSONL log file back into GreptimeDB or STDOUT, optionally followed by the matching event log.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		cfg, err := config.Default()
		if err != nil {
			return err
		}
		stateWriter, eventWriter, _, cleanup, err := newWriters(cfg, writerOptions{printOnly: replayPrintOnly})
		if err != nil {
			return err
		}
		defer cleanup()
		if err := sim.ReplayLogFile(replayInput, stateWriter, replaySpeed); err != nil {
			return err
		}
		if replayEvents == "" {
			return nil
		}
		return sim.ReplayEventLogFile(replayEvents, eventWriter, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to state log file")
	replayCmd.Flags().StringVar(&replayEvents, "events", "", "Path to event log file to replay after the state rows")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print rows to STDOUT instead of writing to DB")
	replayCmd.MarkFlagRequired("input")
}
