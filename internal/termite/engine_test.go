package termite

import (
	"math/rand"
	"testing"

	"antsim/internal/colony"
	"antsim/internal/food"
	"antsim/internal/telemetry"
	"antsim/internal/world"
)

func testWorld(rng *rand.Rand) (*colony.Colony, *food.Manager) {
	col := colony.New("c1", world.Vec2{X: 500, Y: 500}, colony.DefaultSettings(), 100, rng)
	return col, food.NewManager(rng)
}

func TestStep_PrefersFoodOverNest(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	col, mgr := testWorld(rng)
	src := mgr.Add(world.Vec2{X: 420, Y: 500}, 30)

	eng := NewEngine(rng)
	tm := NewTermite(world.Vec2{X: 400, Y: 500})
	eng.Termites = append(eng.Termites, tm)

	eng.Step(0.1, col, mgr, nil)
	if tm.State != StateAttackingFood {
		t.Fatalf("expected attacking_food near source and nest, got %s", tm.State)
	}

	// Walk into contact and destroy the source outright.
	for i := 0; i < 50 && src.Active; i++ {
		eng.Step(0.1, col, mgr, nil)
	}
	if src.Active {
		t.Fatalf("food source survived termite contact")
	}
}

func TestStep_AttacksNestWithoutFood(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	col, mgr := testWorld(rng)

	eng := NewEngine(rng)
	tm := NewTermite(col.Home.Add(world.Vec2{X: 100, Y: 0}))
	eng.Termites = append(eng.Termites, tm)

	storageBefore := col.Storage
	for i := 0; i < 60; i++ {
		eng.Step(0.1, col, mgr, nil)
	}
	if tm.State != StateAttackingNest {
		t.Fatalf("expected attacking_colony, got %s", tm.State)
	}
	if col.Storage >= storageBefore {
		t.Fatalf("storage not drained")
	}
}

func TestStep_SoldiersShieldWorkers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	col, mgr := testWorld(rng)
	col.Home = world.Vec2{X: 5000, Y: 5000} // nest far out of range

	soldier := col.AddAnt(colony.RoleSoldier, world.Vec2{X: 150, Y: 100})
	worker := col.AddAnt(colony.RoleWorker, world.Vec2{X: 300, Y: 100})

	eng := NewEngine(rng)
	tm := NewTermite(world.Vec2{X: 100, Y: 100})
	eng.Termites = append(eng.Termites, tm)

	// Soldier alive: only non-soldiers are hunted, and the worker at 200
	// units is beyond the guarded range.
	eng.Step(0.1, col, mgr, nil)
	if tm.State == StateAttackingAnt {
		t.Fatalf("termite hunted while soldiers guard and prey out of range")
	}

	// Bring the worker into guarded range; the soldier must not be chosen.
	worker.Pos = world.Vec2{X: 180, Y: 100}
	eng.Step(0.1, col, mgr, nil)
	if tm.State != StateAttackingAnt {
		t.Fatalf("expected ant attack within guarded range, got %s", tm.State)
	}

	// No soldiers left: any ant at full range becomes prey.
	soldier.Energy = 0
	colKill(col, soldier)
	worker.Pos = world.Vec2{X: 320, Y: 100}
	eng.Step(0.1, col, mgr, nil)
	if tm.State != StateAttackingAnt {
		t.Fatalf("expected unguarded hunt, got %s", tm.State)
	}
}

func TestStep_ContactDrainsAntEnergy(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	col, mgr := testWorld(rng)
	col.Home = world.Vec2{X: 5000, Y: 5000}

	prey := col.AddAnt(colony.RoleWorker, world.Vec2{X: 110, Y: 100})
	eng := NewEngine(rng)
	tm := NewTermite(world.Vec2{X: 100, Y: 100})
	tm.hitTimer = attackInterval
	eng.Termites = append(eng.Termites, tm)

	before := prey.Energy
	eng.Step(0.1, col, mgr, nil)
	if prey.Energy >= before {
		t.Fatalf("expected prey energy drained")
	}
	if prey.Energy < 0 {
		t.Fatalf("prey energy went negative: %v", prey.Energy)
	}
}

func TestStep_LethalHitKillsAnt(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	col, mgr := testWorld(rng)
	col.Home = world.Vec2{X: 5000, Y: 5000}

	prey := col.AddAnt(colony.RoleWorker, world.Vec2{X: 110, Y: 100})
	prey.Energy = 5 // one hit is fatal

	eng := NewEngine(rng)
	tm := NewTermite(world.Vec2{X: 100, Y: 100})
	tm.hitTimer = attackInterval
	eng.Termites = append(eng.Termites, tm)

	eng.Step(0.1, col, mgr, nil)
	if prey.Energy != 0 {
		t.Fatalf("lethal hit left energy %v, want 0", prey.Energy)
	}
	if prey.Alive() {
		t.Fatalf("lethal hit left ant alive")
	}
	if col.AliveCount() != 0 {
		t.Fatalf("killed ant still counted live: %d", col.AliveCount())
	}
}

func TestStep_SweepsDead(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	col, mgr := testWorld(rng)

	eng := NewEngine(rng)
	tm := NewTermite(world.Vec2{X: 100, Y: 100})
	eng.Termites = append(eng.Termites, tm)
	tm.Damage(maxHealth)

	eng.Step(0.1, col, mgr, nil)
	if len(eng.Termites) != 0 {
		t.Fatalf("dead termite not removed")
	}
	if eng.Alive() != 0 {
		t.Fatalf("alive count wrong")
	}
}

func TestSpawn_WithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bounds := world.NewRect(800, 600)
	eng := NewEngine(rng)
	eng.Spawn(10, world.Vec2{X: 400, Y: 300}, 100, bounds)
	if len(eng.Termites) != 10 {
		t.Fatalf("expected 10 termites, got %d", len(eng.Termites))
	}
	for _, tm := range eng.Termites {
		if !bounds.Contains(tm.Pos) {
			t.Fatalf("termite spawned out of bounds: %+v", tm.Pos)
		}
	}
	if len(eng.Threats()) != 10 {
		t.Fatalf("threat view incomplete")
	}
}

func TestStep_RecordsDepletionEvent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	col, mgr := testWorld(rng)
	mgr.Add(world.Vec2{X: 100, Y: 100}, 5)

	rec := telemetry.NewRecorder("c1", nil)
	eng := NewEngine(rng)
	tm := NewTermite(world.Vec2{X: 100, Y: 100})
	tm.hitTimer = attackInterval
	eng.Termites = append(eng.Termites, tm)

	eng.Step(0.1, col, mgr, rec)
	found := false
	for _, ev := range rec.Drain() {
		if ev.Type == telemetry.EventDepletion {
			found = true
		}
	}
	if !found {
		t.Fatalf("depletion event not recorded")
	}
}

// colKill removes a dead ant from the roster the way the colony reap would.
func colKill(col *colony.Colony, dead *colony.Ant) {
	for i, a := range col.Ants {
		if a == dead {
			col.Ants = append(col.Ants[:i], col.Ants[i+1:]...)
			return
		}
	}
}
