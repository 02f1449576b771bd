package game

import (
	"testing"

	"github.com/pthm-cable/antworks/components"
	"github.com/pthm-cable/antworks/config"
	"github.com/pthm-cable/antworks/pheromone"
)

func newTestGame(t testing.TB, seed int64) *Game {
	t.Helper()
	config.MustInit("")
	g := NewGameWithOptions(Options{Seed: seed, Headless: true, StepsPerUpdate: 1})
	t.Cleanup(g.Unload)
	return g
}

func TestHeadlessRun(t *testing.T) {
	g := newTestGame(t, 1)

	initial := g.cfg.Colony.InitialAnts
	if g.AntCount() != initial {
		t.Fatalf("expected %d initial ants, got %d", initial, g.AntCount())
	}

	// 10 simulated seconds
	for i := 0; i < 600; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != 600 {
		t.Errorf("expected tick 600, got %d", g.Tick())
	}
	if g.AntCount() < initial {
		t.Errorf("ant count dropped below initial: %d", g.AntCount())
	}
	// Searching ants lay Home scent constantly, so trail must exist by now.
	if g.field.LiveCells(pheromone.KindHome) == 0 {
		t.Error("expected Home trail after 10 simulated seconds")
	}
}

func TestSameSeedIsDeterministic(t *testing.T) {
	a := newTestGame(t, 42)
	b := newTestGame(t, 42)

	for i := 0; i < 300; i++ {
		a.UpdateHeadless()
		b.UpdateHeadless()
	}

	sa := a.BuildSnapshot()
	sb := b.BuildSnapshot()

	if len(sa.Ants) != len(sb.Ants) {
		t.Fatalf("ant counts diverged: %d vs %d", len(sa.Ants), len(sb.Ants))
	}
	for i := range sa.Ants {
		if sa.Ants[i] != sb.Ants[i] {
			t.Fatalf("ant %d diverged:\n%+v\n%+v", i, sa.Ants[i], sb.Ants[i])
		}
	}
	if len(sa.Trails) != len(sb.Trails) {
		t.Errorf("trail cells diverged: %d vs %d", len(sa.Trails), len(sb.Trails))
	}
}

func TestSnapshotRestore(t *testing.T) {
	a := newTestGame(t, 7)
	for i := 0; i < 200; i++ {
		a.UpdateHeadless()
	}
	snap := a.BuildSnapshot()

	b := newTestGame(t, 7)
	b.RestoreSnapshot(snap)

	if b.Tick() != snap.Tick {
		t.Errorf("expected tick %d after restore, got %d", snap.Tick, b.Tick())
	}
	if b.AntCount() != len(snap.Ants) {
		t.Errorf("expected %d ants after restore, got %d", len(snap.Ants), b.AntCount())
	}

	restored := b.BuildSnapshot()
	if len(restored.Terrain) != len(snap.Terrain) {
		t.Errorf("terrain cells: %d vs %d", len(restored.Terrain), len(snap.Terrain))
	}
	if len(restored.Trails) != len(snap.Trails) {
		t.Errorf("trail cells: %d vs %d", len(restored.Trails), len(snap.Trails))
	}
	for i := range snap.Ants {
		if restored.Ants[i] != snap.Ants[i] {
			t.Fatalf("ant %d changed by restore:\n%+v\n%+v", i, snap.Ants[i], restored.Ants[i])
		}
	}
}

func TestTripTransitions(t *testing.T) {
	g := newTestGame(t, 3)
	g.simTime = 50

	ant := &components.Ant{Mode: components.ModeSearching, HomeX: 400, HomeY: 300}
	pos := &components.Position{X: 100, Y: 120}
	rot := &components.Heading{Angle: 0.5}

	g.beginReturnTrip(ant, pos, rot)
	if ant.Mode != components.ModeReturning || !ant.CarryingFood {
		t.Errorf("expected returning+carrying, got %+v", ant)
	}
	if ant.TripOriginX != 100 || ant.TripOriginY != 120 || ant.TripStart != 50 {
		t.Errorf("trip origin not set to pickup point: %+v", ant)
	}
	ignoreWant := float32(50) + float32(g.cfg.Steering.IgnoreDuration)
	if ant.IgnoreUntil != ignoreWant {
		t.Errorf("expected ignore window until %v, got %v", ignoreWant, ant.IgnoreUntil)
	}
	// Heading reversed
	if diff := pheromone.SignedArc(0.5, rot.Angle); diff > -3.0 && diff < 3.0 {
		t.Errorf("expected heading reversed, got angle %v", rot.Angle)
	}

	g.simTime = 80
	g.beginSearchTrip(ant, rot)
	if ant.Mode != components.ModeSearching || ant.CarryingFood {
		t.Errorf("expected searching without food, got %+v", ant)
	}
	if ant.TripOriginX != 400 || ant.TripOriginY != 300 {
		t.Errorf("trip origin not reset to home: %+v", ant)
	}
	if ant.TripStart != 80 {
		t.Errorf("expected trip start 80, got %v", ant.TripStart)
	}
}

func TestDepositAmountFalloff(t *testing.T) {
	g := newTestGame(t, 3)

	near := float32(g.cfg.Ant.DepositNear)
	far := float32(g.cfg.Ant.DepositFar)
	falloff := float32(g.cfg.Ant.DepositFalloff)

	if got := g.depositAmount(0); got != near {
		t.Errorf("expected %v at the trip origin, got %v", near, got)
	}
	if got := g.depositAmount(falloff); got != far {
		t.Errorf("expected %v at the falloff distance, got %v", far, got)
	}
	if got := g.depositAmount(falloff * 10); got != far {
		t.Errorf("expected %v beyond the falloff distance, got %v", far, got)
	}
	mid := g.depositAmount(falloff / 2)
	if mid <= far || mid >= near {
		t.Errorf("expected midpoint between %v and %v, got %v", far, near, mid)
	}
}

func TestColonyGrowth(t *testing.T) {
	config.MustInit("")
	cfg := config.Cfg()
	c := NewColony(0, 100, 100, cfg)

	base := c.MaxAnts
	c.Deliver(float32(cfg.Colony.GrowthFood))
	c.updateGrowth()
	if c.MaxAnts != base+growthIncrement {
		t.Errorf("expected cap %d after one growth step, got %d", base+growthIncrement, c.MaxAnts)
	}

	// Growth never exceeds the hard ceiling.
	c.Deliver(float32(cfg.Colony.GrowthFood) * 1000)
	c.updateGrowth()
	if c.MaxAnts != cfg.Colony.MaxAntsCap {
		t.Errorf("expected cap clamped to %d, got %d", cfg.Colony.MaxAntsCap, c.MaxAnts)
	}
}

func TestColonySpawnsFromStoredFood(t *testing.T) {
	g := newTestGame(t, 9)
	colony := g.colonies[0]
	before := g.AntCount()

	colony.Deliver(colony.spawnCost * 3)
	g.updateColonies()

	if g.AntCount() != before+3 {
		t.Errorf("expected 3 spawns, got %d", g.AntCount()-before)
	}
	if colony.FoodStored != 0 {
		t.Errorf("expected stored food spent, got %v", colony.FoodStored)
	}

	// At the cap, stored food is kept instead of spent.
	colony.MaxAnts = colony.AntCount
	colony.Deliver(colony.spawnCost)
	g.updateColonies()
	if colony.FoodStored != colony.spawnCost {
		t.Errorf("expected food retained at the cap, got %v", colony.FoodStored)
	}
}
