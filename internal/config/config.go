// YAML config loader with CUE validation integration
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// WorldConfig defines the simulation area in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ColonyConfig seeds the starting colony.
type ColonyConfig struct {
	ID             string  `yaml:"id"`
	InitialAnts    int     `yaml:"initial_ants"`
	InitialStorage float64 `yaml:"initial_storage"`
	CarryFullOnly  bool    `yaml:"carry_full_only"`
}

// FoodConfig controls initial food seeding.
type FoodConfig struct {
	Sources   int     `yaml:"sources"`
	MinAmount float64 `yaml:"min_amount"`
	MaxAmount float64 `yaml:"max_amount"`
}

// HazardsConfig controls initial puddle seeding. Zero puddles means hazards
// only appear through scenario rain.
type HazardsConfig struct {
	Puddles   int     `yaml:"puddles"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
}

// PheromoneConfig tunes the pheromone field.
type PheromoneConfig struct {
	DecayRate   float64 `yaml:"decay_rate"`
	TrailMaxAge float64 `yaml:"trail_max_age"`
	CellSize    float64 `yaml:"cell_size"`
	MaxDeposits int     `yaml:"max_deposits"`
}

// SimulationConfig is the root configuration.
type SimulationConfig struct {
	World      WorldConfig     `yaml:"world"`
	Colony     ColonyConfig    `yaml:"colony"`
	Food       FoodConfig      `yaml:"food"`
	Hazards    HazardsConfig   `yaml:"hazards"`
	Pheromones PheromoneConfig `yaml:"pheromones"`

	// Speed multiplies the simulated seconds advanced per real tick.
	Speed          float64 `yaml:"speed"`
	Scenario       string  `yaml:"scenario"`
	ScenarioFile   string  `yaml:"scenario_file"`
	StatsWindowSec float64 `yaml:"stats_window_sec"`
}

// Default returns the embedded default configuration.
func Default() (*SimulationConfig, error) {
	var cfg SimulationConfig
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return &cfg, nil
}

// Load reads a YAML config over the embedded defaults and validates it
// against a CUE schema. An empty cueSchemaPath skips schema validation; an
// empty configPath yields the defaults.
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		return cfg, nil
	}
	if cueSchemaPath != "" {
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	// Unmarshal into the same struct: only fields present in the file
	// overwrite the defaults.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
