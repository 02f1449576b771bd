package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antworks/pheromone"
	"github.com/pthm-cable/antworks/systems"
)

// Draw renders the simulation.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.drawTrails()
	g.drawTerrain()
	g.drawAnts()
	g.drawHUD()

	rl.EndDrawing()
}

// drawTrails renders the pheromone field. Food scent is green, Home scent is
// magenta, alpha tracks strength so trails visibly fade as they evaporate.
func (g *Game) drawTrails() {
	cell := int32(g.field.CellSize())

	g.field.Entries(func(cx, cy int, kind pheromone.Kind, strength float32) {
		alpha := uint8(strength * 200)
		var color rl.Color
		if kind == pheromone.KindFood {
			color = rl.Color{R: 0, G: 228, B: 48, A: alpha}
		} else {
			color = rl.Color{R: 255, G: 0, B: 255, A: alpha}
		}
		rl.DrawRectangle(int32(cx)*cell, int32(cy)*cell, cell, cell, color)
	})
}

// drawTerrain renders walls, food, and nests on top of the trails.
func (g *Game) drawTerrain() {
	cell := int32(g.terrain.CellSize())
	cellAmount := float32(g.cfg.Food.CellAmount)

	g.terrain.EachCell(func(cx, cy int, kind systems.CellKind, food float32) {
		x := int32(cx) * cell
		y := int32(cy) * cell

		switch kind {
		case systems.CellWall:
			rl.DrawRectangle(x, y, cell, cell, rl.Gray)
		case systems.CellFood:
			// Brightness shows how much is left
			frac := food / cellAmount
			if frac > 1 {
				frac = 1
			}
			alpha := uint8(80 + frac*175)
			rl.DrawRectangle(x, y, cell, cell, rl.Color{R: 0, G: 255, B: 100, A: alpha})
		case systems.CellNest:
			rl.DrawRectangle(x, y, cell, cell, rl.Brown)
		}
	})
}

// drawAnts renders all ants as oriented triangles.
func (g *Game) drawAnts() {
	query := g.antFilter.Query()
	for query.Next() {
		pos, _, rot, ant := query.Get()

		color := rl.RayWhite
		if ant.CarryingFood {
			color = rl.Gold
		}
		drawOrientedTriangle(pos.X, pos.Y, rot.Angle, 4, color)
	}
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	frontX := x + cos*radius*1.5
	frontY := y + sin*radius*1.5

	backAngle := heading + math.Pi*0.8
	backLeftX := x + float32(math.Cos(float64(backAngle)))*radius
	backLeftY := y + float32(math.Sin(float64(backAngle)))*radius

	backAngle = heading - math.Pi*0.8
	backRightX := x + float32(math.Cos(float64(backAngle)))*radius
	backRightY := y + float32(math.Sin(float64(backAngle)))*radius

	v1 := rl.Vector2{X: frontX, Y: frontY}
	v2 := rl.Vector2{X: backLeftX, Y: backLeftY}
	v3 := rl.Vector2{X: backRightX, Y: backRightY}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
}

// drawHUD renders the status overlay.
func (g *Game) drawHUD() {
	var stored float32
	for _, c := range g.colonies {
		stored += c.FoodStored
	}

	rl.DrawText(fmt.Sprintf("Tick: %d", g.tick), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Ants: %d (carrying %d)", g.antCount, g.carryingCount), 10, 35, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Stored: %.0f", stored), 10, 60, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Brush: %s [W/F/N/R/A]  Speed: %dx [</>]", g.brush, g.stepsPerFrame), 10, 85, 20, rl.LightGray)
	if g.paused {
		rl.DrawText("PAUSED", 10, 110, 20, rl.Yellow)
	}
}
