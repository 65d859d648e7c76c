package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"antsim/internal/admin"
	"antsim/internal/config"
	"antsim/internal/logging"
	"antsim/internal/sim"
)

var (
	simPrintOnly    bool
	simColor        bool
	simTUI          bool
	simConfigPath   string
	simSchemaPath   string
	simTick         time.Duration
	simLogFile      string
	simStatsCSV     string
	simScenario     string
	simScenarioFile string
	simAdminAddr    string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the real-time colony simulator",
	Long:  "simulate starts a tick-driven colony simulation emitting state rows, event logs, and window statistics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}
		if simScenario != "" {
			cfg.Scenario = simScenario
		}
		if simScenarioFile != "" {
			cfg.ScenarioFile = simScenarioFile
		}
		if colonyID := os.Getenv("COLONY_ID"); colonyID != "" {
			cfg.Colony.ID = colonyID
		}

		opts := writerOptions{
			printOnly: simPrintOnly,
			color:     simColor,
			tui:       simTUI,
			logFile:   simLogFile,
			statsCSV:  simStatsCSV,
		}
		stateWriter, eventWriter, statsWriter, cleanup, err := newWriters(cfg, opts)
		if err != nil {
			return err
		}
		defer cleanup()

		tickInterval := simTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tickInterval = d
		}

		log := logging.New()
		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), log))
		defer cancel()

		simulator := sim.NewSimulator(cfg, stateWriter, eventWriter, statsWriter, tickInterval)

		if simAdminAddr != "" {
			srv := admin.NewServer(simulator)
			go func() {
				log.Info("admin UI listening", "addr", simAdminAddr)
				if err := srv.Start(simAdminAddr); err != nil && err != http.ErrServerClosed {
					log.Error("admin server failed", "err", err)
					os.Exit(1)
				}
			}()
		}

		go simulator.Run(ctx)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		cancel()
		log.Info("colony simulation stopped")
		return nil
	},
}

func init() {
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print state rows to STDOUT instead of writing to DB")
	simulateCmd.Flags().BoolVar(&simColor, "color", false, "Colorized human-readable STDOUT output")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Render a terminal dashboard instead of plain output")
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/simulation.yaml", "Path to simulation configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/simulation.cue", "Path to CUE schema file")
	simulateCmd.Flags().DurationVar(&simTick, "tick", time.Second, "Simulation tick interval (e.g. 500ms, 2s)")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export state/event logs (JSONL)")
	simulateCmd.Flags().StringVar(&simStatsCSV, "stats-csv", "", "Path to export window statistics (CSV)")
	simulateCmd.Flags().StringVar(&simScenario, "scenario", "", "Built-in scenario arc (gentle, harsh, monsoon)")
	simulateCmd.Flags().StringVar(&simScenarioFile, "scenario-file", "", "Path to a scenario arc YAML")
	simulateCmd.Flags().StringVar(&simAdminAddr, "admin-addr", ":8080", "Admin UI listen address (empty to disable)")
}
