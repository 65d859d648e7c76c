// Shared geometry and terrain types for the simulation core.
package world

import (
	"math"
	"math/rand"
)

// Vec2 is a position or direction in world units.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by f.
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Len returns the vector length.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance to o.
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Normalized returns a unit vector pointing along v. The zero vector is
// returned unchanged so callers never produce a NaN bearing.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Heading builds a unit vector from an angle in radians.
func Heading(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// Angle returns the bearing of v in radians.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Rect is an axis-aligned world-bounds rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewRect builds a rect from origin and size.
func NewRect(w, h float64) Rect { return Rect{0, 0, w, h} }

// Clamp returns p constrained to the rectangle.
func (r Rect) Clamp(p Vec2) Vec2 {
	return Vec2{
		X: math.Min(math.Max(p.X, r.MinX), r.MaxX),
		Y: math.Min(math.Max(p.Y, r.MinY), r.MaxY),
	}
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Center returns the rectangle midpoint.
func (r Rect) Center() Vec2 {
	return Vec2{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
}

// RandomPoint returns a uniformly distributed point inside the rectangle.
func (r Rect) RandomPoint(rng *rand.Rand) Vec2 {
	return Vec2{
		X: r.MinX + rng.Float64()*(r.MaxX-r.MinX),
		Y: r.MinY + rng.Float64()*(r.MaxY-r.MinY),
	}
}

// RandomPointAround returns a point within radius of center, clamped to the
// rectangle.
func (r Rect) RandomPointAround(rng *rand.Rand, center Vec2, radius float64) Vec2 {
	angle := rng.Float64() * 2 * math.Pi
	d := rng.Float64() * radius
	return r.Clamp(center.Add(Heading(angle).Scale(d)))
}

// Weather affects terrain speed and pheromone persistence.
type Weather string

const (
	WeatherClear Weather = "clear"
	WeatherRain  Weather = "rain"
)

// TerrainFunc is the host-supplied terrain speed lookup. It returns a
// multiplicative speed factor for an agent at (x, y) under the given weather.
type TerrainFunc func(x, y float64, w Weather) float64

// FlatTerrain is the default lookup used when the host supplies none: full
// speed everywhere in clear weather, slowed in rain.
func FlatTerrain(x, y float64, w Weather) float64 {
	if w == WeatherRain {
		return 0.7
	}
	return 1.0
}
