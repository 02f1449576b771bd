// Package pheromone implements the shared trail field and the steering rules
// ants use to follow it. The field is the one piece of mutable shared state in
// the simulation; everything else reads it through Sample and Entries.
package pheromone

import (
	"fmt"
	"math"
)

// Kind identifies a trail scent. Food trails are laid by ants returning with
// food, Home trails by outbound ants.
type Kind uint8

const (
	KindFood Kind = iota
	KindHome

	numKinds
)

// Kinds lists all trail kinds, for iteration.
var Kinds = [numKinds]Kind{KindFood, KindHome}

func (k Kind) String() string {
	switch k {
	case KindFood:
		return "food"
	case KindHome:
		return "home"
	}
	return "unknown"
}

// Field is a discretized 2D trail map. Storage is one dense float32 grid per
// kind, indexed by cell; a zero cell means "no entry". Dense grids keep the
// evaporation sweep a linear scan and make Deposit/Sample O(1) with no
// hashing, which matters because steering samples up to 60 points per ant
// per tick.
type Field struct {
	cols, rows int
	cellSize   float32

	grids [numKinds][]float32
	live  [numKinds]int // cells with strength > 0, per kind

	// EvaporationRate is strength lost per second; entries at or below
	// RemoveThreshold after a sweep are deleted rather than kept near zero.
	EvaporationRate float32
	RemoveThreshold float32
}

// Default decay parameters.
const (
	DefaultEvaporationRate = 0.005
	DefaultRemoveThreshold = 0.001
)

// NewField creates a trail field covering a world of the given size.
// Degenerate geometry is a construction error; the per-call surface never
// reports failures.
func NewField(worldW, worldH, cellSize float32) (*Field, error) {
	if !finite(worldW) || !finite(worldH) || worldW <= 0 || worldH <= 0 {
		return nil, fmt.Errorf("pheromone: invalid world size %vx%v", worldW, worldH)
	}
	if !finite(cellSize) || cellSize <= 0 {
		return nil, fmt.Errorf("pheromone: invalid cell size %v", cellSize)
	}

	cols := int(worldW / cellSize)
	rows := int(worldH / cellSize)
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("pheromone: cell size %v too large for world %vx%v", cellSize, worldW, worldH)
	}

	f := &Field{
		cols:            cols,
		rows:            rows,
		cellSize:        cellSize,
		EvaporationRate: DefaultEvaporationRate,
		RemoveThreshold: DefaultRemoveThreshold,
	}
	for k := range f.grids {
		f.grids[k] = make([]float32, cols*rows)
	}
	return f, nil
}

// Deposit adds amount to the cell containing (x, y), clamped at 1.0.
// Repeated deposits by many ants compound rather than overwrite; that is the
// reinforcement mechanism. Deposits outside the grid are silently dropped.
func (f *Field) Deposit(x, y float32, kind Kind, amount float32) {
	if amount <= 0 {
		return
	}
	i := f.index(x, y)
	if i < 0 {
		return
	}

	grid := f.grids[kind]
	prev := grid[i]
	next := prev + amount
	if next > 1.0 {
		next = 1.0
	}
	if prev == 0 {
		f.live[kind]++
	}
	grid[i] = next
}

// Sample returns the strength at the cell containing (x, y), or 0 if the
// cell holds no entry or lies outside the grid. Sensing is per-cell with no
// interpolation; the grid resolution matches the ants' sensing geometry.
func (f *Field) Sample(x, y float32, kind Kind) float32 {
	i := f.index(x, y)
	if i < 0 {
		return 0
	}
	return f.grids[kind][i]
}

// Update applies uniform evaporation to every live entry. It must run exactly
// once per tick, before any sampling, so all ants within a tick perceive a
// consistent field.
func (f *Field) Update(dt float32) {
	if dt <= 0 {
		return
	}
	dec := f.EvaporationRate * dt

	for k := range f.grids {
		grid := f.grids[k]
		for i, v := range grid {
			if v == 0 {
				continue
			}
			v -= dec
			if v <= f.RemoveThreshold {
				grid[i] = 0
				f.live[k]--
			} else {
				grid[i] = v
			}
		}
	}
}

// Entries calls visit for every live entry. Consumed by rendering and by the
// snapshot writer; the steering core never iterates.
func (f *Field) Entries(visit func(cx, cy int, kind Kind, strength float32)) {
	for k := range f.grids {
		grid := f.grids[k]
		for i, v := range grid {
			if v == 0 {
				continue
			}
			visit(i%f.cols, i/f.cols, Kind(k), v)
		}
	}
}

// LiveCells returns the number of cells holding the given kind.
func (f *Field) LiveCells(kind Kind) int {
	return f.live[kind]
}

// TrailMass returns the summed strength of all entries of the given kind.
func (f *Field) TrailMass(kind Kind) float64 {
	var sum float64
	for _, v := range f.grids[kind] {
		sum += float64(v)
	}
	return sum
}

// GridSize returns the grid dimensions in cells.
func (f *Field) GridSize() (cols, rows int) {
	return f.cols, f.rows
}

// CellSize returns the world-unit size of one grid cell.
func (f *Field) CellSize() float32 {
	return f.cellSize
}

// SetCell writes a strength directly at a cell address, clamped to [0, 1].
// Used only when restoring a snapshot.
func (f *Field) SetCell(cx, cy int, kind Kind, strength float32) {
	if cx < 0 || cx >= f.cols || cy < 0 || cy >= f.rows {
		return
	}
	if strength < 0 {
		strength = 0
	} else if strength > 1 {
		strength = 1
	}
	i := cy*f.cols + cx
	prev := f.grids[kind][i]
	if prev == 0 && strength > 0 {
		f.live[kind]++
	} else if prev > 0 && strength == 0 {
		f.live[kind]--
	}
	f.grids[kind][i] = strength
}

// index maps a world position to a flat cell index, or -1 when out of range.
func (f *Field) index(x, y float32) int {
	if x < 0 || y < 0 {
		return -1
	}
	cx := int(x / f.cellSize)
	cy := int(y / f.cellSize)
	// NaN slips past the coordinate guard (all NaN comparisons are false) and
	// converts to a negative int, so the cell indices are re-checked here.
	if cx < 0 || cy < 0 || cx >= f.cols || cy >= f.rows {
		return -1
	}
	return cy*f.cols + cx
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
