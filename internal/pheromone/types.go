package pheromone

import (
	"antsim/internal/world"
)

// Type classifies a scent deposit.
type Type string

const (
	FoodTrail   Type = "food_trail"
	Exploration Type = "exploration"
	Danger      Type = "danger"
)

// Per-type deposit tuning. Danger signals are amplified hardest so a single
// death near a hazard outweighs a busy food trail.
const (
	dangerMultiplier    = 3.0
	dangerCap           = 5.0
	foodTrailMultiplier = 2.5
	foodTrailCap        = 3.0
	explorationCap      = 1.5

	// followerBonusCap bounds the additive intensity boost a crowded trail
	// deposit can earn.
	followerBonusCap = 2.0
	followerBonus    = 0.25

	// removeThreshold is the intensity below which a decayed deposit is
	// dropped.
	removeThreshold = 0.01
)

// Deposit is one typed scent mark. Intensity is always kept within the
// type-specific cap; Age accumulates simulation seconds since creation.
type Deposit struct {
	ID        string
	Pos       world.Vec2
	Type      Type
	Intensity float64
	Age       float64

	// base is the intensity at deposit time, the anchor for decay curves.
	base float64

	// Followers counts ants currently tracking this deposit (FoodTrail only).
	Followers int
}

// AddFollower registers a trail-following ant.
func (d *Deposit) AddFollower() { d.Followers++ }

// RemoveFollower unregisters a trail-following ant.
func (d *Deposit) RemoveFollower() {
	if d.Followers > 0 {
		d.Followers--
	}
}

func capFor(t Type) float64 {
	switch t {
	case Danger:
		return dangerCap
	case FoodTrail:
		return foodTrailCap
	default:
		return explorationCap
	}
}

func multiplierFor(t Type) float64 {
	switch t {
	case Danger:
		return dangerMultiplier
	case FoodTrail:
		return foodTrailMultiplier
	default:
		return 1.0
	}
}

// Match pairs a deposit with its distance from a query point.
type Match struct {
	Deposit  *Deposit
	Distance float64
}
