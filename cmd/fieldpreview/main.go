// Trail field preview tool - interactive visualization with sliders.
//
// Paint trail with the mouse (left = Food scent, right = Home scent) and
// watch it evaporate. Sliders control the decay and deposit parameters.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antworks/pheromone"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewW     = 640
	previewH     = 480
	panelWidth   = windowWidth - previewW - 30
	cellSize     = 8
)

// FieldParams holds the adjustable trail parameters.
type FieldParams struct {
	EvaporationRate float32
	RemoveThreshold float32
	DepositAmount   float32
	BrushRadius     float32
	TimeScale       float32
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Trail Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := FieldParams{
		EvaporationRate: pheromone.DefaultEvaporationRate,
		RemoveThreshold: pheromone.DefaultRemoveThreshold,
		DepositAmount:   0.5,
		BrushRadius:     12,
		TimeScale:       1,
	}

	field, err := pheromone.NewField(previewW, previewH, cellSize)
	if err != nil {
		panic(err)
	}

	paused := false

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}
		if rl.IsKeyPressed(rl.KeyC) {
			field, _ = pheromone.NewField(previewW, previewH, cellSize)
		}

		// Paint with the mouse inside the preview area
		mouse := rl.GetMousePosition()
		if mouse.X >= 10 && mouse.X < 10+previewW && mouse.Y >= 10 && mouse.Y < 10+previewH {
			fx := mouse.X - 10
			fy := mouse.Y - 10
			if rl.IsMouseButtonDown(rl.MouseLeftButton) {
				paint(field, fx, fy, params.BrushRadius, pheromone.KindFood, params.DepositAmount)
			}
			if rl.IsMouseButtonDown(rl.MouseRightButton) {
				paint(field, fx, fy, params.BrushRadius, pheromone.KindHome, params.DepositAmount)
			}
		}

		if !paused {
			field.EvaporationRate = params.EvaporationRate
			field.RemoveThreshold = params.RemoveThreshold
			field.Update(rl.GetFrameTime() * params.TimeScale)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		// Preview area
		field.Entries(func(cx, cy int, kind pheromone.Kind, strength float32) {
			alpha := uint8(strength * 220)
			color := rl.Color{R: 0, G: 228, B: 48, A: alpha}
			if kind == pheromone.KindHome {
				color = rl.Color{R: 255, G: 0, B: 255, A: alpha}
			}
			rl.DrawRectangle(10+int32(cx)*cellSize, 10+int32(cy)*cellSize, cellSize, cellSize, color)
		})
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		// Stats
		statsY := int32(previewH + 25)
		rl.DrawText(fmt.Sprintf("Food cells: %d (mass %.1f)", field.LiveCells(pheromone.KindFood), field.TrailMass(pheromone.KindFood)), 15, statsY, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Home cells: %d (mass %.1f)", field.LiveCells(pheromone.KindHome), field.TrailMass(pheromone.KindHome)), 15, statsY+20, 16, rl.Magenta)
		rl.DrawText("LMB paint Food, RMB paint Home, [C] clear, [Space] pause", 15, statsY+44, 16, rl.Gray)

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Trail Field Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		params.EvaporationRate = slider(panelX, &panelY, "Evaporation (strength/s)", params.EvaporationRate, 0.001, 0.1, "%.3f")
		params.RemoveThreshold = slider(panelX, &panelY, "Remove threshold", params.RemoveThreshold, 0.0005, 0.05, "%.4f")
		params.DepositAmount = slider(panelX, &panelY, "Deposit amount", params.DepositAmount, 0.05, 1.0, "%.2f")
		params.BrushRadius = slider(panelX, &panelY, "Brush radius (px)", params.BrushRadius, 4, 60, "%.0f")
		params.TimeScale = slider(panelX, &panelY, "Time scale", params.TimeScale, 0.1, 50, "%.1f")

		rl.EndDrawing()
	}
}

// slider draws one labeled slider row and advances the panel cursor.
func slider(x float32, y *float32, label string, value, lo, hi float32, format string) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.RayWhite)
	*y += 35
	return v
}

// paint deposits scent in a disc around a point.
func paint(f *pheromone.Field, x, y, radius float32, kind pheromone.Kind, amount float32) {
	for dy := -radius; dy <= radius; dy += cellSize {
		for dx := -radius; dx <= radius; dx += cellSize {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			f.Deposit(x+dx, y+dy, kind, amount)
		}
	}
}
