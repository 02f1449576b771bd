package game

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// brushMode selects what a mouse click places in the world.
type brushMode uint8

const (
	brushWall brushMode = iota
	brushFood
	brushNest
	brushErase
	brushAnt
)

func (b brushMode) String() string {
	switch b {
	case brushWall:
		return "wall"
	case brushFood:
		return "food"
	case brushNest:
		return "nest"
	case brushErase:
		return "erase"
	case brushAnt:
		return "ant"
	}
	return "unknown"
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerFrame > 1 {
		g.stepsPerFrame--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerFrame < 10 {
		g.stepsPerFrame++
	}

	// Brush selection
	switch {
	case rl.IsKeyPressed(rl.KeyW):
		g.brush = brushWall
	case rl.IsKeyPressed(rl.KeyF):
		g.brush = brushFood
	case rl.IsKeyPressed(rl.KeyN):
		g.brush = brushNest
	case rl.IsKeyPressed(rl.KeyR):
		g.brush = brushErase
	case rl.IsKeyPressed(rl.KeyA):
		g.brush = brushAnt
	}

	if rl.IsKeyPressed(rl.KeyF5) {
		if path, err := g.SaveSnapshot(); err != nil {
			slog.Error("failed to save snapshot", "error", err)
		} else {
			slog.Info("snapshot saved", "path", path, "tick", g.tick)
		}
	}

	mouse := rl.GetMousePosition()
	switch g.brush {
	case brushNest, brushAnt:
		// One placement per click
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			g.applyBrush(mouse.X, mouse.Y)
		}
	default:
		// Painting while held
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			g.applyBrush(mouse.X, mouse.Y)
		}
	}
}

// applyBrush edits the world at a position.
func (g *Game) applyBrush(x, y float32) {
	switch g.brush {
	case brushWall:
		g.terrain.AddWall(x, y)
	case brushFood:
		g.terrain.AddFood(x, y, float32(g.cfg.Food.CellAmount))
	case brushErase:
		g.terrain.Remove(x, y)
	case brushNest:
		nestX, nestY, ok := g.terrain.PlaceNest(x, y)
		if !ok {
			return
		}
		colony := NewColony(uint8(len(g.colonies)), nestX, nestY, g.cfg)
		g.colonies = append(g.colonies, colony)
	case brushAnt:
		colony := g.nearestColony(x, y)
		if colony == nil {
			return
		}
		heading := g.rng.Float32()*2*math.Pi - math.Pi
		g.spawnAntAt(colony, x, y, heading)
	}
}

// nearestColony returns the colony closest to a position.
func (g *Game) nearestColony(x, y float32) *Colony {
	var best *Colony
	bestDist := float32(math.MaxFloat32)
	for _, c := range g.colonies {
		dx := c.X - x
		dy := c.Y - y
		d := dx*dx + dy*dy
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}
