package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/antworks/components"
	"github.com/pthm-cable/antworks/pheromone"
	"github.com/pthm-cable/antworks/systems"
	"github.com/pthm-cable/antworks/telemetry"
)

// BuildSnapshot captures the full simulation state.
func (g *Game) BuildSnapshot() *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RNGSeed:     g.seed,
		WorldWidth:  g.width,
		WorldHeight: g.height,
		CellSize:    g.field.CellSize(),
		Tick:        g.tick,
	}

	g.terrain.EachCell(func(cx, cy int, kind systems.CellKind, food float32) {
		snap.Terrain = append(snap.Terrain, telemetry.TerrainCellState{
			CX: cx, CY: cy, Kind: uint8(kind), Food: food,
		})
	})

	g.field.Entries(func(cx, cy int, kind pheromone.Kind, strength float32) {
		snap.Trails = append(snap.Trails, telemetry.TrailCellState{
			CX: cx, CY: cy, Kind: uint8(kind), Strength: strength,
		})
	})

	query := g.antFilter.Query()
	for query.Next() {
		pos, _, rot, ant := query.Get()
		snap.Ants = append(snap.Ants, telemetry.AntEntityState{
			ID:           ant.ID,
			ColonyID:     ant.ColonyID,
			Mode:         ant.Mode,
			X:            pos.X,
			Y:            pos.Y,
			Heading:      rot.Angle,
			CarryingFood: ant.CarryingFood,
			IgnoreUntil:  ant.IgnoreUntil,
			DepositTimer: ant.DepositTimer,
			WanderTimer:  ant.WanderTimer,
			TripOriginX:  ant.TripOriginX,
			TripOriginY:  ant.TripOriginY,
			TripStart:    ant.TripStart,
		})
	}

	for _, c := range g.colonies {
		snap.Colonies = append(snap.Colonies, telemetry.ColonyState{
			ID: c.ID, X: c.X, Y: c.Y,
			FoodStored: c.FoodStored,
			MaxAnts:    c.MaxAnts,
		})
	}

	return snap
}

// SaveSnapshot writes the current state to the snapshot directory and
// returns the file path.
func (g *Game) SaveSnapshot() (string, error) {
	dir := g.opts.SnapshotDir
	if dir == "" {
		dir = "snapshots"
	}
	return telemetry.SaveSnapshot(g.BuildSnapshot(), dir)
}

// RestoreSnapshot replaces the live state with the snapshot's. The world
// dimensions and cell size must match the current config.
func (g *Game) RestoreSnapshot(snap *telemetry.Snapshot) {
	// Remove existing ants
	var toRemove []ecs.Entity
	query := g.antFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		g.antMapper.Remove(e)
	}
	g.antCount = 0
	g.carryingCount = 0

	// Rebuild terrain and trails
	terrain, err := systems.NewWorldGrid(g.width, g.height, g.field.CellSize())
	if err != nil {
		panic(err)
	}
	g.terrain = terrain
	cell := g.field.CellSize()
	for _, t := range snap.Terrain {
		x := (float32(t.CX) + 0.5) * cell
		y := (float32(t.CY) + 0.5) * cell
		switch systems.CellKind(t.Kind) {
		case systems.CellFood:
			g.terrain.AddFood(x, y, t.Food)
		default:
			g.terrain.SetCell(t.CX, t.CY, systems.CellKind(t.Kind))
		}
	}

	cols, rows := g.field.GridSize()
	for cx := 0; cx < cols; cx++ {
		for cy := 0; cy < rows; cy++ {
			for _, kind := range pheromone.Kinds {
				g.field.SetCell(cx, cy, kind, 0)
			}
		}
	}
	for _, tc := range snap.Trails {
		g.field.SetCell(tc.CX, tc.CY, pheromone.Kind(tc.Kind), tc.Strength)
	}

	// Rebuild colonies
	g.colonies = g.colonies[:0]
	for _, cs := range snap.Colonies {
		colony := NewColony(cs.ID, cs.X, cs.Y, g.cfg)
		colony.FoodStored = cs.FoodStored
		colony.MaxAnts = cs.MaxAnts
		g.colonies = append(g.colonies, colony)
	}

	// Rebuild ants
	for _, as := range snap.Ants {
		pos := components.Position{X: as.X, Y: as.Y}
		vel := components.Velocity{}
		rot := components.Heading{Angle: as.Heading}
		ant := components.Ant{
			ID:           as.ID,
			ColonyID:     as.ColonyID,
			Mode:         as.Mode,
			CarryingFood: as.CarryingFood,
			IgnoreUntil:  as.IgnoreUntil,
			DepositTimer: as.DepositTimer,
			WanderTimer:  as.WanderTimer,
			TripOriginX:  as.TripOriginX,
			TripOriginY:  as.TripOriginY,
			TripStart:    as.TripStart,
		}
		if colony := g.colonyByID(as.ColonyID); colony != nil {
			ant.HomeX = colony.X
			ant.HomeY = colony.Y
			colony.AntCount++
		}
		g.antMapper.NewEntity(&pos, &vel, &rot, &ant)
		g.antCount++
		if as.CarryingFood {
			g.carryingCount++
		}
		if as.ID >= g.nextID {
			g.nextID = as.ID + 1
		}
	}

	g.tick = snap.Tick
	g.simTime = float32(snap.Tick) * g.cfg.Derived.DT32
}
