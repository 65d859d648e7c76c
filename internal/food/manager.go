package food

import (
	"math/rand"

	"antsim/internal/world"
)

// Manager owns every food source in the world.
type Manager struct {
	sources []*Source
	rand    *rand.Rand
}

// NewManager creates an empty manager using the given random source.
func NewManager(rng *rand.Rand) *Manager {
	return &Manager{rand: rng}
}

// Seed scatters n sources across bounds with amounts in [minAmount, maxAmount].
func (m *Manager) Seed(n int, bounds world.Rect, minAmount, maxAmount float64) {
	for i := 0; i < n; i++ {
		amount := minAmount + m.rand.Float64()*(maxAmount-minAmount)
		m.sources = append(m.sources, NewSource(bounds.RandomPoint(m.rand), amount))
	}
}

// Add places one source, e.g. from a host/user action.
func (m *Manager) Add(pos world.Vec2, amount float64) *Source {
	s := NewSource(pos, amount)
	m.sources = append(m.sources, s)
	return s
}

// Nearest returns the closest active source within radius of pos, or nil.
func (m *Manager) Nearest(pos world.Vec2, radius float64) *Source {
	var best *Source
	bestDist := radius
	for _, s := range m.sources {
		if !s.Active {
			continue
		}
		if d := s.Pos.Dist(pos); d <= bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

// Tick advances depletion grace windows.
func (m *Manager) Tick(delta float64) {
	for _, s := range m.sources {
		s.tick(delta)
	}
}

// Sources returns the full source list, depleted nodes included.
func (m *Manager) Sources() []*Source { return m.sources }

// ActiveCount returns the number of non-depleted sources.
func (m *Manager) ActiveCount() int {
	n := 0
	for _, s := range m.sources {
		if s.Active {
			n++
		}
	}
	return n
}

// TotalRemaining sums the remaining amount across active sources.
func (m *Manager) TotalRemaining() float64 {
	total := 0.0
	for _, s := range m.sources {
		if s.Active {
			total += s.Amount
		}
	}
	return total
}

// Reset drops every source.
func (m *Manager) Reset() { m.sources = nil }
