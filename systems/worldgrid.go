// Package systems provides the simulation systems that do not depend on the
// ECS loop: the terrain grid and wall collision response.
package systems

import (
	"fmt"
	"math"
)

// CellKind identifies what occupies a terrain cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellWall
	CellFood
	CellNest
)

func (c CellKind) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellFood:
		return "food"
	case CellNest:
		return "nest"
	}
	return "unknown"
}

// WorldGrid is the terrain layer: walls, food sources, and nest cells over
// the same cell resolution as the pheromone field. Food cells carry a
// remaining amount; everything else is just the kind.
type WorldGrid struct {
	cols, rows int
	cellSize   float32
	cells      []CellKind
	food       map[int]float32 // flat index -> remaining food units
}

// NewWorldGrid creates a terrain grid covering the given world size.
func NewWorldGrid(worldW, worldH, cellSize float32) (*WorldGrid, error) {
	if cellSize <= 0 || math.IsNaN(float64(cellSize)) {
		return nil, fmt.Errorf("systems: invalid cell size %v", cellSize)
	}
	cols := int(worldW / cellSize)
	rows := int(worldH / cellSize)
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("systems: world %vx%v too small for cell size %v", worldW, worldH, cellSize)
	}
	return &WorldGrid{
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
		cells:    make([]CellKind, cols*rows),
		food:     make(map[int]float32),
	}, nil
}

// GridSize returns the grid dimensions in cells.
func (g *WorldGrid) GridSize() (cols, rows int) {
	return g.cols, g.rows
}

// CellSize returns the world-unit size of one cell.
func (g *WorldGrid) CellSize() float32 {
	return g.cellSize
}

// CellOf maps a world position to cell coordinates. ok is false outside the
// grid.
func (g *WorldGrid) CellOf(x, y float32) (cx, cy int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	cx = int(x / g.cellSize)
	cy = int(y / g.cellSize)
	// NaN passes the coordinate guard, then converts to a negative int.
	if cx < 0 || cy < 0 || cx >= g.cols || cy >= g.rows {
		return 0, 0, false
	}
	return cx, cy, true
}

// Cell returns the kind at cell coordinates, CellEmpty when out of range.
func (g *WorldGrid) Cell(cx, cy int) CellKind {
	if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
		return CellEmpty
	}
	return g.cells[cy*g.cols+cx]
}

// CellAt returns the kind at a world position.
func (g *WorldGrid) CellAt(x, y float32) CellKind {
	cx, cy, ok := g.CellOf(x, y)
	if !ok {
		return CellEmpty
	}
	return g.cells[cy*g.cols+cx]
}

// SetCell writes a kind at cell coordinates; out-of-range writes are
// ignored. Clearing a food cell also clears its remaining amount.
func (g *WorldGrid) SetCell(cx, cy int, kind CellKind) {
	if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
		return
	}
	i := cy*g.cols + cx
	if g.cells[i] == CellFood && kind != CellFood {
		delete(g.food, i)
	}
	g.cells[i] = kind
}

// AddWall places a wall at the cell containing the world position.
func (g *WorldGrid) AddWall(x, y float32) {
	if cx, cy, ok := g.CellOf(x, y); ok {
		g.SetCell(cx, cy, CellWall)
	}
}

// AddFood places a food cell with the given amount at the world position.
func (g *WorldGrid) AddFood(x, y float32, amount float32) {
	cx, cy, ok := g.CellOf(x, y)
	if !ok || amount <= 0 {
		return
	}
	i := cy*g.cols + cx
	g.cells[i] = CellFood
	g.food[i] = amount
}

// PlaceNest stamps a 3x3 nest block centered on the world position and
// returns the nest center in world coordinates, ok=false if out of range.
func (g *WorldGrid) PlaceNest(x, y float32) (centerX, centerY float32, ok bool) {
	cx, cy, ok := g.CellOf(x, y)
	if !ok {
		return 0, 0, false
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			g.SetCell(cx+dx, cy+dy, CellNest)
		}
	}
	centerX = (float32(cx) + 0.5) * g.cellSize
	centerY = (float32(cy) + 0.5) * g.cellSize
	return centerX, centerY, true
}

// Remove clears the cell at the world position.
func (g *WorldGrid) Remove(x, y float32) {
	if cx, cy, ok := g.CellOf(x, y); ok {
		g.SetCell(cx, cy, CellEmpty)
	}
}

// FoodAt returns the remaining food at the cell containing the position.
func (g *WorldGrid) FoodAt(x, y float32) float32 {
	cx, cy, ok := g.CellOf(x, y)
	if !ok {
		return 0
	}
	return g.food[cy*g.cols+cx]
}

// TakeFood removes up to amount food from the cell containing the position
// and returns what was actually taken. A depleted cell reverts to empty.
func (g *WorldGrid) TakeFood(x, y float32, amount float32) float32 {
	cx, cy, ok := g.CellOf(x, y)
	if !ok || amount <= 0 {
		return 0
	}
	i := cy*g.cols + cx
	remaining, exists := g.food[i]
	if !exists || g.cells[i] != CellFood {
		return 0
	}
	take := amount
	if take > remaining {
		take = remaining
	}
	remaining -= take
	if remaining <= 0 {
		delete(g.food, i)
		g.cells[i] = CellEmpty
	} else {
		g.food[i] = remaining
	}
	return take
}

// EachCell calls visit for every non-empty cell, with the remaining food
// amount for food cells. Used by rendering and the snapshot writer.
func (g *WorldGrid) EachCell(visit func(cx, cy int, kind CellKind, food float32)) {
	for i, kind := range g.cells {
		if kind == CellEmpty {
			continue
		}
		visit(i%g.cols, i/g.cols, kind, g.food[i])
	}
}
