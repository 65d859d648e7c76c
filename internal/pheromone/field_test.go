package pheromone

import (
	"math"
	"testing"

	"antsim/internal/world"
)

func TestDeposit_TypeMultipliersAndCaps(t *testing.T) {
	f := NewField(Options{})

	d := f.Deposit(world.Vec2{X: 10, Y: 10}, Danger, 1.0)
	if d.Intensity != 3.0 {
		t.Fatalf("expected danger intensity 3.0, got %v", d.Intensity)
	}
	d = f.Deposit(world.Vec2{X: 20, Y: 10}, Danger, 10.0)
	if d.Intensity != 5.0 {
		t.Fatalf("expected danger intensity capped at 5.0, got %v", d.Intensity)
	}
	d = f.Deposit(world.Vec2{X: 30, Y: 10}, FoodTrail, 1.0)
	if d.Intensity != 2.5 {
		t.Fatalf("expected trail intensity 2.5, got %v", d.Intensity)
	}
	d = f.Deposit(world.Vec2{X: 40, Y: 10}, FoodTrail, 5.0)
	if d.Intensity != 3.0 {
		t.Fatalf("expected trail intensity capped at 3.0, got %v", d.Intensity)
	}
}

func TestTick_DangerIsImmortal(t *testing.T) {
	f := NewField(Options{})
	d := f.Deposit(world.Vec2{X: 0, Y: 0}, Danger, 1.0)
	before := d.Intensity
	for i := 0; i < 1000; i++ {
		f.Tick(1.0)
	}
	if f.Count() != 1 {
		t.Fatalf("danger deposit was removed")
	}
	if d.Intensity != before {
		t.Fatalf("danger intensity changed from %v to %v", before, d.Intensity)
	}
}

func TestTick_FoodTrailRemovedAtMaxAge(t *testing.T) {
	f := NewField(Options{TrailMaxAge: 15})
	f.Deposit(world.Vec2{X: 0, Y: 0}, FoodTrail, 1.0)
	f.Tick(15)
	if f.Count() != 0 {
		t.Fatalf("expected trail deposit removed at max age, %d remain", f.Count())
	}
	if len(f.grid) != 0 {
		t.Fatalf("expected empty grid after removal, %d buckets remain", len(f.grid))
	}
}

func TestTick_FoodTrailFollowerBonus(t *testing.T) {
	f := NewField(Options{TrailMaxAge: 15})
	plain := f.Deposit(world.Vec2{X: 0, Y: 0}, FoodTrail, 1.0)
	crowded := f.Deposit(world.Vec2{X: 100, Y: 0}, FoodTrail, 1.0)
	for i := 0; i < 20; i++ {
		crowded.AddFollower()
	}
	f.Tick(5)
	if crowded.Intensity <= plain.Intensity {
		t.Fatalf("expected follower bonus, crowded=%v plain=%v", crowded.Intensity, plain.Intensity)
	}
	if got := crowded.Intensity - plain.Intensity; got > followerBonusCap+1e-9 {
		t.Fatalf("follower bonus %v exceeds cap %v", got, followerBonusCap)
	}
}

func TestTick_ExponentialDecayAndRemoval(t *testing.T) {
	f := NewField(Options{DecayRate: 0.5})
	d := f.Deposit(world.Vec2{X: 0, Y: 0}, Exploration, 1.0)
	f.Tick(2)
	want := 1.0 * math.Exp(-2*0.5)
	if math.Abs(d.Intensity-want) > 1e-9 {
		t.Fatalf("expected intensity %v, got %v", want, d.Intensity)
	}
	// Enough time for intensity to underflow the removal threshold.
	f.Tick(20)
	if f.Count() != 0 {
		t.Fatalf("expected decayed deposit removed, %d remain", f.Count())
	}
}

func TestFindStrongest_RespectsRadius(t *testing.T) {
	f := NewField(Options{CellSize: 50})
	f.Deposit(world.Vec2{X: 200, Y: 0}, FoodTrail, 5.0) // outside radius
	in := f.Deposit(world.Vec2{X: 30, Y: 0}, FoodTrail, 0.1)

	got := f.FindStrongest(world.Vec2{}, 100, FoodTrail)
	if got != in {
		t.Fatalf("expected in-radius deposit, got %+v", got)
	}
	if d := got.Pos.Dist(world.Vec2{}); d > 100 {
		t.Fatalf("returned deposit outside radius: %v", d)
	}
	if f.FindStrongest(world.Vec2{}, 10, FoodTrail) != nil {
		t.Fatalf("expected no match within 10 units")
	}
}

func TestFindStrongest_DistanceWeighting(t *testing.T) {
	f := NewField(Options{CellSize: 50})
	near := f.Deposit(world.Vec2{X: 10, Y: 0}, Exploration, 1.0)
	f.Deposit(world.Vec2{X: 90, Y: 0}, Exploration, 1.0)
	if got := f.FindStrongest(world.Vec2{}, 100, Exploration); got != near {
		t.Fatalf("expected nearer deposit to win on weighted score")
	}
}

func TestFindInRadius_SortedByDistance(t *testing.T) {
	f := NewField(Options{CellSize: 50})
	f.Deposit(world.Vec2{X: 60, Y: 0}, FoodTrail, 1.0)
	f.Deposit(world.Vec2{X: 20, Y: 0}, FoodTrail, 1.0)
	f.Deposit(world.Vec2{X: 40, Y: 0}, Danger, 1.0)

	matches := f.FindInRadius(world.Vec2{}, 100, FoodTrail)
	if len(matches) != 2 {
		t.Fatalf("expected 2 trail matches, got %d", len(matches))
	}
	if matches[0].Distance > matches[1].Distance {
		t.Fatalf("matches not sorted: %v > %v", matches[0].Distance, matches[1].Distance)
	}

	all := f.FindInRadius(world.Vec2{}, 100, "")
	if len(all) != 3 {
		t.Fatalf("expected 3 matches for untyped query, got %d", len(all))
	}
}

func TestDensityAt(t *testing.T) {
	f := NewField(Options{CellSize: 50})
	f.Deposit(world.Vec2{X: 0, Y: 0}, FoodTrail, 1.0)
	f.Deposit(world.Vec2{X: 50, Y: 0}, FoodTrail, 1.0)
	density := f.DensityAt(world.Vec2{}, 100, FoodTrail)
	want := 2.5 + 2.5*(1-50.0/100)
	if math.Abs(density-want) > 1e-9 {
		t.Fatalf("expected density %v, got %v", want, density)
	}
}

func TestCapacityEviction_OldestFirst(t *testing.T) {
	f := NewField(Options{MaxDeposits: 3})
	old := f.Deposit(world.Vec2{X: 0, Y: 0}, Exploration, 1.0)
	f.Tick(5) // age the first deposit
	f.Deposit(world.Vec2{X: 10, Y: 0}, Exploration, 1.0)
	f.Deposit(world.Vec2{X: 20, Y: 0}, Exploration, 1.0)
	f.Deposit(world.Vec2{X: 30, Y: 0}, Exploration, 1.0)

	if f.Count() != 3 {
		t.Fatalf("expected count bounded at 3, got %d", f.Count())
	}
	for _, m := range f.FindInRadius(world.Vec2{}, 100, "") {
		if m.Deposit == old {
			t.Fatalf("expected oldest deposit evicted")
		}
	}
}

func TestGridInvariant_ListAndBucketsAgree(t *testing.T) {
	f := NewField(Options{CellSize: 50})
	for i := 0; i < 30; i++ {
		f.Deposit(world.Vec2{X: float64(i * 17), Y: float64(i * 7)}, Exploration, 1.0)
	}
	f.Tick(3)

	inGrid := 0
	for _, bucket := range f.grid {
		if len(bucket) == 0 {
			t.Fatalf("empty bucket left in grid")
		}
		inGrid += len(bucket)
	}
	if inGrid != len(f.deposits) {
		t.Fatalf("grid holds %d deposits, list holds %d", inGrid, len(f.deposits))
	}
	for _, d := range f.deposits {
		found := false
		for _, b := range f.grid[f.keyFor(d.Pos)] {
			if b == d {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("deposit %s missing from its grid cell", d.ID)
		}
	}
}
