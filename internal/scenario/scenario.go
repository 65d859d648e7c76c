package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a seasonal arc with ordered phases and an overall description.
type Scenario struct {
	Name        string  `yaml:"name,omitempty"`
	Description string  `yaml:"description,omitempty"`
	Phases      []Phase `yaml:"phases"`
}

// Phase describes one stage of the arc with its environment tuning and the
// triggers that move the arc forward.
type Phase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Environment Environment `yaml:"environment,omitempty"`
	Triggers    []Trigger   `yaml:"triggers,omitempty"`
}

// Environment holds the world-event tuning the scheduler consults while the
// phase is active. Chances are per-second probabilities.
type Environment struct {
	RainChance   float64 `yaml:"rain_chance"`
	RainDuration float64 `yaml:"rain_duration"`
	RaidChance   float64 `yaml:"raid_chance"`
	RaidSize     int     `yaml:"raid_size"`
	PuddleChance float64 `yaml:"puddle_chance"`
}

// Trigger moves the arc to another phase based on an event.
type Trigger struct {
	Event string `yaml:"event"`
	Value int    `yaml:"value"`
	Next  string `yaml:"next"`
}

// Event represents a runtime occurrence that may advance the arc.
type Event struct {
	Type  string
	Value int
}

// Load reads a YAML scenario definition from disk.
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &s, nil
}

// First returns the name of the opening phase, or "" for an empty arc.
func (s *Scenario) First() string {
	if len(s.Phases) == 0 {
		return ""
	}
	return s.Phases[0].Name
}

// PhaseByName looks up a phase. ok is false when the arc has no such phase.
func (s *Scenario) PhaseByName(name string) (Phase, bool) {
	for _, p := range s.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return Phase{}, false
}

// NextPhase returns the name of the next phase given the current phase and
// event. If no trigger matches, ok will be false.
func (s *Scenario) NextPhase(current string, ev Event) (next string, ok bool) {
	for _, p := range s.Phases {
		if p.Name != current {
			continue
		}
		for _, tr := range p.Triggers {
			if tr.Event == ev.Type && ev.Value >= tr.Value {
				return tr.Next, true
			}
		}
	}
	return "", false
}
