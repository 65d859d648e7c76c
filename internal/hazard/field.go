// Static hazard zones (puddles) and their danger-signal feedback loop.
package hazard

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"antsim/internal/pheromone"
	"antsim/internal/world"
)

// Exposure thresholds in seconds of continuous time inside a puddle.
// Crossing PenaltyExposure costs half the ant's energy once; crossing
// LethalExposure kills it outright.
const (
	PenaltyExposure = 3.0
	LethalExposure  = 6.0
)

// Danger burst tuning. Intensity grows with the puddle's cumulative death
// count; the deposit count grows with it too, both bounded.
const (
	burstIntensityPerDeath = 2.0 / 3.0
	burstIntensityCap      = 4.0
	burstBaseCount         = 6
	burstCountPerDeath     = 2
	burstCountCap          = 16
)

// Puddle is one static circular hazard. Deaths only ever increases.
type Puddle struct {
	ID     string
	Pos    world.Vec2
	Radius float64
	Deaths int
}

// Field owns every puddle in the world.
type Field struct {
	puddles []*Puddle
	rand    *rand.Rand
}

// NewField creates an empty hazard field.
func NewField(rng *rand.Rand) *Field {
	return &Field{rand: rng}
}

// Seed scatters n puddles across bounds with radii in [minR, maxR].
func (f *Field) Seed(n int, bounds world.Rect, minR, maxR float64) {
	for i := 0; i < n; i++ {
		f.Add(bounds.RandomPoint(f.rand), minR+f.rand.Float64()*(maxR-minR))
	}
}

// Add places one puddle.
func (f *Field) Add(pos world.Vec2, radius float64) *Puddle {
	p := &Puddle{ID: uuid.New().String(), Pos: pos, Radius: radius}
	f.puddles = append(f.puddles, p)
	return p
}

// At returns the puddle containing pos, or nil.
func (f *Field) At(pos world.Vec2) *Puddle {
	for _, p := range f.puddles {
		if p.Pos.Dist(pos) <= p.Radius {
			return p
		}
	}
	return nil
}

// Puddles returns all puddles.
func (f *Field) Puddles() []*Puddle { return f.puddles }

// Reset drops every puddle. Death counts do not survive a reset.
func (f *Field) Reset() { f.puddles = nil }

// RecordDeath bumps the puddle's death count and radiates a danger burst
// into the pheromone field. The more ants a puddle has killed, the stronger
// and denser the warning ring becomes; this is the only memory the colony
// has of a deadly location.
func (f *Field) RecordDeath(p *Puddle, field *pheromone.Field) {
	p.Deaths++
	f.Warn(p, field)
}

// Warn radiates a danger burst for the puddle's current death count without
// recording a new death. Suffering ants trigger this before dying.
func (f *Field) Warn(p *Puddle, field *pheromone.Field) {
	deaths := p.Deaths
	if deaths < 1 {
		deaths = 1
	}
	intensity := BurstIntensity(deaths)
	count := BurstCount(p.Deaths)
	for i := 0; i < count; i++ {
		angle := float64(i) / float64(count) * 2 * math.Pi
		dist := p.Radius + f.rand.Float64()*p.Radius
		pos := p.Pos.Add(world.Heading(angle).Scale(dist))
		field.Deposit(pos, pheromone.Danger, intensity)
	}
}

// BurstIntensity is the per-deposit base intensity for a burst after the
// given cumulative death count.
func BurstIntensity(deaths int) float64 {
	return math.Min(burstIntensityPerDeath*float64(deaths), burstIntensityCap)
}

// BurstCount is the number of deposits radiated for the given death count.
func BurstCount(deaths int) int {
	n := burstBaseCount + burstCountPerDeath*deaths
	if n > burstCountCap {
		n = burstCountCap
	}
	return n
}
