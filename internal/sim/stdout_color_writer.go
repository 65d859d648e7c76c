// ColorStdoutWriter prints human-friendly, colorized simulation output.
package sim

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"antsim/internal/config"
	"antsim/internal/telemetry"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

func colorWhite() string { return "\x1b[37m" }

// eventColors maps event types to a highlight color; unlisted types render
// gray.
var eventColors = map[string]string{
	telemetry.EventDeath:       colorRed,
	telemetry.EventAttackStart: colorRed,
	telemetry.EventRaid:        colorRed,
	telemetry.EventSpawn:       colorGreen,
	telemetry.EventAttackEnd:   colorGreen,
	telemetry.EventDepletion:   colorYellow,
	telemetry.EventPuddle:      colorYellow,
	telemetry.EventRainStart:   colorBlue,
	telemetry.EventRainEnd:     colorBlue,
	telemetry.EventFlight:      colorMagenta,
	telemetry.EventEggsLaid:    colorMagenta,
	telemetry.EventEvolution:   colorCyan,
	telemetry.EventPhase:       colorCyan,
}

// ColorStdoutWriter prints rows using ANSI colors.
type ColorStdoutWriter struct {
	cfg  *config.SimulationConfig
	out  io.Writer
	once sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.SimulationConfig) *ColorStdoutWriter {
	return &ColorStdoutWriter{cfg: cfg, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}
	fmt.Fprintln(w.out, "Simulation Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Colony:\t%s\n", w.cfg.Colony.ID)
	fmt.Fprintf(tw, "World:\t%.0fx%.0f\n", w.cfg.World.Width, w.cfg.World.Height)
	fmt.Fprintf(tw, "Initial Ants:\t%d\n", w.cfg.Colony.InitialAnts)
	fmt.Fprintf(tw, "Food Sources:\t%d\n", w.cfg.Food.Sources)
	fmt.Fprintf(tw, "Decay Rate:\t%.2f\n", w.cfg.Pheromones.DecayRate)
	fmt.Fprintf(tw, "Speed:\t%.1fx\n", w.cfg.Speed)
	fmt.Fprintf(tw, "Scenario:\t%s\n", w.cfg.Scenario)
	tw.Flush()
	fmt.Fprintln(w.out)
}

// WriteState outputs a single state row in colorized format.
func (w *ColorStdoutWriter) WriteState(row telemetry.ColonyStateRow) error {
	w.once.Do(w.printOverview)

	weatherColor := colorGreen
	if row.Weather == "rain" {
		weatherColor = colorBlue
	}
	termiteColor := colorGray
	if row.Termites > 0 {
		termiteColor = colorRed
	}

	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, row.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%scolony=%s%s ", colorBlue, row.ColonyID, colorReset)
	fmt.Fprintf(w.out, "%stick=%d%s ", colorWhite(), row.Tick, colorReset)
	fmt.Fprintf(w.out, "%sants=%d%s ", colorGreen, row.Population, colorReset)
	fmt.Fprintf(w.out, "%sstorage=%.1f%s ", colorCyan, row.Storage, colorReset)
	fmt.Fprintf(w.out, "%sbrood=%d/%d/%d%s ", colorMagenta, row.Eggs, row.Larvae, row.Pupae, colorReset)
	fmt.Fprintf(w.out, "%sgen=%d%s ", colorYellow, row.Generation, colorReset)
	fmt.Fprintf(w.out, "%sdeaths=%d%s ", colorRed, row.Deaths, colorReset)
	fmt.Fprintf(w.out, "%stermites=%d%s ", termiteColor, row.Termites, colorReset)
	fmt.Fprintf(w.out, "%sfood=%d%s ", colorGreen, row.FoodNodes, colorReset)
	fmt.Fprintf(w.out, "%spher=%d%s ", colorYellow, row.Pheromones, colorReset)
	fmt.Fprintf(w.out, "%sweather=%s%s", weatherColor, row.Weather, colorReset)
	fmt.Fprintln(w.out)
	return nil
}

// WriteStates outputs multiple state rows.
func (w *ColorStdoutWriter) WriteStates(rows []telemetry.ColonyStateRow) error {
	for _, r := range rows {
		_ = w.WriteState(r)
	}
	return nil
}

// WriteEvent prints a simulation event to STDOUT.
func (w *ColorStdoutWriter) WriteEvent(ev telemetry.SimEventRow) error {
	w.once.Do(w.printOverview)
	col, ok := eventColors[ev.Type]
	if !ok {
		col = colorGray
	}
	fmt.Fprintf(w.out, "%s[%s]%s %sEVENT%s type=%s", colorGray, ev.Timestamp.Format(time.RFC3339), colorReset, col, colorReset, ev.Type)
	if ev.EntityID != "" {
		fmt.Fprintf(w.out, " entity=%s", ev.EntityID)
	}
	if ev.Detail != "" {
		fmt.Fprintf(w.out, " detail=%s", ev.Detail)
	}
	fmt.Fprintf(w.out, " pos=(%.1f,%.1f)", ev.X, ev.Y)
	if ev.Value != 0 {
		fmt.Fprintf(w.out, " value=%.1f", ev.Value)
	}
	fmt.Fprintln(w.out)
	return nil
}

// WriteEvents prints multiple simulation events.
func (w *ColorStdoutWriter) WriteEvents(rows []telemetry.SimEventRow) error {
	for _, ev := range rows {
		_ = w.WriteEvent(ev)
	}
	return nil
}

// WriteStats prints window stats to STDOUT.
func (w *ColorStdoutWriter) WriteStats(ws telemetry.WindowStats) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%sWINDOW%s end=%.0fs ants=%d storage=%.1f births=%d deaths=%d depletions=%d raids=%d energy=%.1f (p10=%.1f p50=%.1f p90=%.1f)\n",
		colorBlue, colorReset, ws.WindowEnd, ws.Population, ws.Storage,
		ws.Births, ws.Deaths, ws.Depletions, ws.Raids,
		ws.EnergyMean, ws.EnergyP10, ws.EnergyP50, ws.EnergyP90)
	return nil
}
