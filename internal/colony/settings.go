package colony

// Settings tunes ants and the colony life-cycle. DefaultSettings matches the
// shipped simulation.yaml.
type Settings struct {
	// Ant tuning.
	MaxEnergy     float64
	EnergyDrain   float64 // energy per simulation second, all states
	Speed         float64 // world units per second
	Capacity      float64 // max carried food
	CarryFullOnly bool    // carrying flag requires a full load
	PherInterval  float64 // seconds between pheromone drops

	// Colony tuning.
	MaxPopulation   int
	SpawnCost       float64
	SpawnInterval   float64
	QueenChance     float64 // chance a spawn becomes queen while queenless
	NuptialCost     float64
	QueenIdle       float64 // idle seconds before a flight may start
	FlightDuration  float64
	PostFlightDelay float64

	// Brood pipeline windows (seconds) and per-individual food costs.
	EggWindow   float64
	LarvaWindow float64
	PupaWindow  float64
	LarvaCost   float64
	PupaCost    float64

	// Evolution.
	EvolveInterval  float64
	EvolveChance    float64
	EvolveStorage   float64 // storage required for a generation advance
	SpawnCostFloor  float64
	PopulationCeil  int
	PopulationStep  int
	SpawnCostStep   float64

	// Emergency relief.
	ReliefStorage  float64 // storage below this is critical
	ReliefInterval float64
	ReliefEnergy   float64
}

// DefaultSettings returns the baseline tuning.
func DefaultSettings() Settings {
	return Settings{
		MaxEnergy:     100,
		EnergyDrain:   0.5,
		Speed:         60,
		Capacity:      10,
		CarryFullOnly: false,
		PherInterval:  0.5,

		MaxPopulation:   50,
		SpawnCost:       10,
		SpawnInterval:   4,
		QueenChance:     0.05,
		NuptialCost:     60,
		QueenIdle:       90,
		FlightDuration:  8,
		PostFlightDelay: 5,

		EggWindow:   20,
		LarvaWindow: 30,
		PupaWindow:  40,
		LarvaCost:   1,
		PupaCost:    3,

		EvolveInterval: 30,
		EvolveChance:   0.3,
		EvolveStorage:  150,
		SpawnCostFloor: 4,
		PopulationCeil: 200,
		PopulationStep: 10,
		SpawnCostStep:  1,

		ReliefStorage:  5,
		ReliefInterval: 5,
		ReliefEnergy:   8,
	}
}
