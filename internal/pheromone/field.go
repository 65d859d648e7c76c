// Spatially hashed pheromone storage with type-specific decay.
package pheromone

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"antsim/internal/world"
)

// Field owns every scent deposit in the world. Deposits live in a flat slice
// and, in parallel, in a uniform grid keyed by cell coordinates so that
// neighborhood queries touch only nearby buckets. Both structures always hold
// exactly the same deposits.
type Field struct {
	cellSize    float64
	decayRate   float64
	trailMaxAge float64
	maxDeposits int

	deposits []*Deposit
	grid     map[cellKey][]*Deposit
}

type cellKey struct{ X, Y int }

// Options tunes a Field. Zero values fall back to defaults.
type Options struct {
	CellSize    float64 // grid cell edge, world units
	DecayRate   float64 // exponential decay constant for non-trail types
	TrailMaxAge float64 // seconds before a FoodTrail deposit is force-removed
	MaxDeposits int     // hard capacity before oldest-first eviction
}

// NewField creates an empty field.
func NewField(opts Options) *Field {
	if opts.CellSize <= 0 {
		opts.CellSize = 50
	}
	if opts.DecayRate <= 0 {
		opts.DecayRate = 0.15
	}
	if opts.TrailMaxAge <= 0 {
		opts.TrailMaxAge = 15
	}
	if opts.MaxDeposits <= 0 {
		opts.MaxDeposits = 2000
	}
	return &Field{
		cellSize:    opts.CellSize,
		decayRate:   opts.DecayRate,
		trailMaxAge: opts.TrailMaxAge,
		maxDeposits: opts.MaxDeposits,
		grid:        make(map[cellKey][]*Deposit),
	}
}

// TrailMaxAge returns the forced-removal age for FoodTrail deposits.
func (f *Field) TrailMaxAge() float64 { return f.trailMaxAge }

// Count returns the number of live deposits.
func (f *Field) Count() int { return len(f.deposits) }

// CountByType returns per-type deposit counts.
func (f *Field) CountByType() map[Type]int {
	counts := make(map[Type]int, 3)
	for _, d := range f.deposits {
		counts[d.Type]++
	}
	return counts
}

func (f *Field) keyFor(p world.Vec2) cellKey {
	return cellKey{int(math.Floor(p.X / f.cellSize)), int(math.Floor(p.Y / f.cellSize))}
}

// Deposit stores a new scent mark. The base intensity is amplified by the
// type multiplier and clamped to the type cap before storage.
func (f *Field) Deposit(pos world.Vec2, t Type, baseIntensity float64) *Deposit {
	intensity := baseIntensity * multiplierFor(t)
	if cap := capFor(t); intensity > cap {
		intensity = cap
	}
	d := &Deposit{
		ID:        uuid.New().String(),
		Pos:       pos,
		Type:      t,
		Intensity: intensity,
		base:      intensity,
	}
	f.deposits = append(f.deposits, d)
	k := f.keyFor(pos)
	f.grid[k] = append(f.grid[k], d)
	if len(f.deposits) > f.maxDeposits {
		f.evictOldest(len(f.deposits) - f.maxDeposits)
	}
	return d
}

// Tick ages and decays every deposit by delta seconds. Danger deposits are
// immortal: they neither decay nor expire. FoodTrail deposits decay linearly
// to zero over the trail lifetime, earn an additive follower bonus, and are
// hard-deleted at max age regardless of remaining intensity. All other types
// decay exponentially and are dropped below the removal threshold.
func (f *Field) Tick(delta float64) {
	keep := f.deposits[:0]
	for _, d := range f.deposits {
		d.Age += delta
		if d.Type == Danger {
			keep = append(keep, d)
			continue
		}
		switch d.Type {
		case FoodTrail:
			if d.Age >= f.trailMaxAge {
				f.removeFromGrid(d)
				continue
			}
			decayed := d.base * (1 - d.Age/f.trailMaxAge)
			bonus := followerBonus * float64(d.Followers)
			if bonus > followerBonusCap {
				bonus = followerBonusCap
			}
			d.Intensity = decayed + bonus
			if d.Intensity > foodTrailCap+followerBonusCap {
				d.Intensity = foodTrailCap + followerBonusCap
			}
		default:
			d.Intensity = d.base * math.Exp(-d.Age*f.decayRate)
			if d.Intensity < removeThreshold {
				f.removeFromGrid(d)
				continue
			}
		}
		keep = append(keep, d)
	}
	for i := len(keep); i < len(f.deposits); i++ {
		f.deposits[i] = nil
	}
	f.deposits = keep
}

// FindStrongest returns the deposit within radius whose distance-weighted
// intensity is greatest, or nil if none match. A type of "" matches all.
func (f *Field) FindStrongest(pos world.Vec2, radius float64, t Type) *Deposit {
	var best *Deposit
	bestScore := 0.0
	f.scanCells(pos, radius, func(d *Deposit) {
		if t != "" && d.Type != t {
			return
		}
		dist := d.Pos.Dist(pos)
		if dist > radius {
			return
		}
		score := d.Intensity * (1 - dist/radius)
		if best == nil || score > bestScore {
			best, bestScore = d, score
		}
	})
	return best
}

// FindInRadius returns all matching deposits within radius, sorted by
// ascending distance.
func (f *Field) FindInRadius(pos world.Vec2, radius float64, t Type) []Match {
	var matches []Match
	f.scanCells(pos, radius, func(d *Deposit) {
		if t != "" && d.Type != t {
			return
		}
		dist := d.Pos.Dist(pos)
		if dist > radius {
			return
		}
		matches = append(matches, Match{Deposit: d, Distance: dist})
	})
	sort.Slice(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	return matches
}

// DensityAt sums distance-weighted intensities within radius, an aggregate
// trail-strength signal.
func (f *Field) DensityAt(pos world.Vec2, radius float64, t Type) float64 {
	total := 0.0
	f.scanCells(pos, radius, func(d *Deposit) {
		if t != "" && d.Type != t {
			return
		}
		dist := d.Pos.Dist(pos)
		if dist > radius {
			return
		}
		total += d.Intensity * (1 - dist/radius)
	})
	return total
}

// Reset drops every deposit.
func (f *Field) Reset() {
	f.deposits = nil
	f.grid = make(map[cellKey][]*Deposit)
}

func (f *Field) scanCells(pos world.Vec2, radius float64, fn func(*Deposit)) {
	minX := int(math.Floor((pos.X - radius) / f.cellSize))
	maxX := int(math.Floor((pos.X + radius) / f.cellSize))
	minY := int(math.Floor((pos.Y - radius) / f.cellSize))
	maxY := int(math.Floor((pos.Y + radius) / f.cellSize))
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			for _, d := range f.grid[cellKey{cx, cy}] {
				fn(d)
			}
		}
	}
}

// removeFromGrid detaches a deposit from its bucket, deleting the bucket when
// it empties. Callers are responsible for dropping it from the flat slice.
func (f *Field) removeFromGrid(d *Deposit) {
	k := f.keyFor(d.Pos)
	bucket := f.grid[k]
	for i, b := range bucket {
		if b == d {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			break
		}
	}
	if len(bucket) == 0 {
		delete(f.grid, k)
	} else {
		f.grid[k] = bucket
	}
}

// evictOldest purges the n oldest deposits to bound memory and query cost.
func (f *Field) evictOldest(n int) {
	if n <= 0 {
		return
	}
	sorted := make([]*Deposit, len(f.deposits))
	copy(sorted, f.deposits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Age > sorted[j].Age })
	doomed := make(map[*Deposit]bool, n)
	for _, d := range sorted[:n] {
		doomed[d] = true
		f.removeFromGrid(d)
	}
	keep := f.deposits[:0]
	for _, d := range f.deposits {
		if !doomed[d] {
			keep = append(keep, d)
		}
	}
	for i := len(keep); i < len(f.deposits); i++ {
		f.deposits[i] = nil
	}
	f.deposits = keep
}
