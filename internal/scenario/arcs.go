package scenario

// BuiltIn returns predefined seasonal arcs.
func BuiltIn() map[string]Scenario {
	return map[string]Scenario{
		"gentle": {
			Name:        "Gentle",
			Description: "A mild season: rare rain, small raids, plenty of time to grow.",
			Phases: []Phase{
				{
					Name:        "setup",
					Description: "The colony establishes its first trails.",
					Environment: Environment{RainChance: 0.002, RainDuration: 20, RaidChance: 0, PuddleChance: 0.01},
					Triggers:    []Trigger{{Event: "time_elapsed", Value: 120, Next: "escalation"}},
				},
				{
					Name:        "escalation",
					Description: "Scattered termite scouts probe the territory.",
					Environment: Environment{RainChance: 0.003, RainDuration: 25, RaidChance: 0.002, RaidSize: 2, PuddleChance: 0.01},
					Triggers:    []Trigger{{Event: "ant_deaths", Value: 15, Next: "climax"}},
				},
				{
					Name:        "climax",
					Description: "A proper raid tests the soldiers.",
					Environment: Environment{RainChance: 0.003, RainDuration: 25, RaidChance: 0.005, RaidSize: 4, PuddleChance: 0.02},
					Triggers:    []Trigger{{Event: "generation", Value: 2, Next: "recovery"}},
				},
				{
					Name:        "recovery",
					Description: "Threats subside and the colony consolidates.",
					Environment: Environment{RainChance: 0.002, RainDuration: 20, RaidChance: 0.001, RaidSize: 2, PuddleChance: 0.01},
				},
			},
		},
		"harsh": {
			Name:        "Harsh",
			Description: "Frequent raids push the colony toward soldier-heavy survival.",
			Phases: []Phase{
				{
					Name:        "setup",
					Description: "A short grace period before the pressure starts.",
					Environment: Environment{RainChance: 0.003, RainDuration: 25, RaidChance: 0.002, RaidSize: 3, PuddleChance: 0.02},
					Triggers:    []Trigger{{Event: "time_elapsed", Value: 60, Next: "escalation"}},
				},
				{
					Name:        "escalation",
					Description: "Raiding parties arrive in waves.",
					Environment: Environment{RainChance: 0.004, RainDuration: 30, RaidChance: 0.008, RaidSize: 5, PuddleChance: 0.03},
					Triggers:    []Trigger{{Event: "ant_deaths", Value: 25, Next: "climax"}},
				},
				{
					Name:        "climax",
					Description: "A sustained assault threatens the brood chambers.",
					Environment: Environment{RainChance: 0.004, RainDuration: 30, RaidChance: 0.015, RaidSize: 8, PuddleChance: 0.03},
					Triggers:    []Trigger{{Event: "time_elapsed", Value: 600, Next: "recovery"}},
				},
				{
					Name:        "recovery",
					Description: "The survivors rebuild what the termites tore down.",
					Environment: Environment{RainChance: 0.003, RainDuration: 25, RaidChance: 0.003, RaidSize: 3, PuddleChance: 0.02},
				},
			},
		},
		"monsoon": {
			Name:        "Monsoon",
			Description: "Relentless rain floods the foraging grounds with puddles.",
			Phases: []Phase{
				{
					Name:        "setup",
					Description: "The first clouds gather.",
					Environment: Environment{RainChance: 0.005, RainDuration: 30, RaidChance: 0.001, RaidSize: 2, PuddleChance: 0.03},
					Triggers:    []Trigger{{Event: "time_elapsed", Value: 90, Next: "escalation"}},
				},
				{
					Name:        "escalation",
					Description: "Downpours become the norm; puddles dot the trails.",
					Environment: Environment{RainChance: 0.015, RainDuration: 45, RaidChance: 0.002, RaidSize: 3, PuddleChance: 0.06},
					Triggers:    []Trigger{{Event: "ant_deaths", Value: 20, Next: "climax"}},
				},
				{
					Name:        "climax",
					Description: "The wettest stretch of the season.",
					Environment: Environment{RainChance: 0.03, RainDuration: 60, RaidChance: 0.002, RaidSize: 3, PuddleChance: 0.1},
					Triggers:    []Trigger{{Event: "time_elapsed", Value: 900, Next: "recovery"}},
				},
				{
					Name:        "recovery",
					Description: "The skies clear and the puddles stop claiming foragers.",
					Environment: Environment{RainChance: 0.004, RainDuration: 25, RaidChance: 0.001, RaidSize: 2, PuddleChance: 0.02},
				},
			},
		},
	}
}
