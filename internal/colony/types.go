// Ant and colony domain types.
package colony

import (
	"antsim/internal/world"
)

// Role is an ant's caste.
type Role string

const (
	RoleWorker  Role = "worker"
	RoleSoldier Role = "soldier"
	RoleScout   Role = "scout"
	RoleForager Role = "forager"
	RoleNurse   Role = "nurse"
	RoleQueen   Role = "queen"
)

// spawnRoles is the pool random spawns draw from; queens are designated
// separately.
var spawnRoles = []Role{RoleWorker, RoleSoldier, RoleScout, RoleForager, RoleNurse}

// State is an ant's behavioral state.
type State string

const (
	StateExploring        State = "exploring"
	StateSeekingFood      State = "seeking_food"
	StateReturningHome    State = "returning_home"
	StateFollowingTrail   State = "following_trail"
	StateAttackingTermite State = "attacking_termite"
	StateHiding           State = "hiding"
	StateFeedingBrood     State = "feeding_brood"
	StateCollectingCorpse State = "collecting_corpse"
	StateAvoidingDanger   State = "avoiding_danger"
	StateResting          State = "resting"
)

// Threat is an adversarial agent as seen from inside the colony. The termite
// engine implements it; ants never import that package.
type Threat interface {
	ThreatID() string
	ThreatPos() world.Vec2
	Alive() bool
	Damage(amount float64)
}

// deathCause explains why an ant died; hazard deaths feed the puddle's
// danger-signal loop.
type deathCause int

const (
	causeNone deathCause = iota
	causeExhaustion
	causeHazard
	causeCombat
)

// Corpse marks where an ant died until another ant hauls it home.
type Corpse struct {
	ID        string
	Pos       world.Vec2
	Collected bool
}
