package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats aggregates simulation activity over a fixed window of
// simulation time. The csv tags drive the gocsv export.
type WindowStats struct {
	WindowEnd  float64 `csv:"window_end"`
	Population int     `csv:"population"`
	Storage    float64 `csv:"storage"`

	Births     int `csv:"births"`
	Deaths     int `csv:"deaths"`
	Depletions int `csv:"depletions"`
	Raids      int `csv:"raids"`

	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`
}

// Collector counts events inside the current window and closes it once the
// window duration has elapsed.
type Collector struct {
	windowSec float64
	elapsed   float64

	births     int
	deaths     int
	depletions int
	raids      int
}

// NewCollector creates a collector with the given window length in
// simulation seconds.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 10
	}
	return &Collector{windowSec: windowSec}
}

// CountEvent folds one event row into the current window.
func (c *Collector) CountEvent(ev SimEventRow) {
	switch ev.Type {
	case EventSpawn:
		c.births++
	case EventDeath:
		c.deaths++
	case EventDepletion:
		c.depletions++
	case EventRaid:
		c.raids++
	}
}

// Advance accumulates delta seconds. When the window closes it returns the
// finished stats (sampling the supplied population/storage/energies) and
// true; otherwise it returns false.
func (c *Collector) Advance(delta, simTime float64, population int, storage float64, energies []float64) (WindowStats, bool) {
	c.elapsed += delta
	if c.elapsed < c.windowSec {
		return WindowStats{}, false
	}
	ws := WindowStats{
		WindowEnd:  simTime,
		Population: population,
		Storage:    storage,
		Births:     c.births,
		Deaths:     c.deaths,
		Depletions: c.depletions,
		Raids:      c.raids,
	}
	if len(energies) > 0 {
		sorted := make([]float64, len(energies))
		copy(sorted, energies)
		sort.Float64s(sorted)
		ws.EnergyMean = stat.Mean(sorted, nil)
		ws.EnergyP10 = stat.Quantile(0.1, stat.Empirical, sorted, nil)
		ws.EnergyP50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
		ws.EnergyP90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	}
	c.elapsed = 0
	c.births, c.deaths, c.depletions, c.raids = 0, 0, 0, 0
	return ws, true
}
