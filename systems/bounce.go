package systems

import "math"

// CollisionResult describes how a blocked move was resolved.
type CollisionResult uint8

const (
	CollisionNone CollisionResult = iota
	CollisionHorizontal
	CollisionVertical
	CollisionCorner
)

// ResolveWallCollision checks a move from (oldX, oldY) to (newX, newY)
// against the grid's wall cells and returns the resolved position and
// heading. A horizontal wall face mirrors the heading vertically, a vertical
// face mirrors it horizontally, and hitting a corner reverses the heading
// with the caller-supplied jitter added so ants do not retrace the exact
// path that led into it. On any hit the position stays at the origin of the
// move.
func ResolveWallCollision(g *WorldGrid, oldX, oldY, newX, newY, heading, jitter float32) (x, y, h float32, result CollisionResult) {
	if g.CellAt(newX, newY) != CellWall {
		return newX, newY, heading, CollisionNone
	}

	// Which axis crossed a cell boundary decides the wall face orientation.
	oldCX := int(oldX / g.cellSize)
	oldCY := int(oldY / g.cellSize)
	newCX := int(newX / g.cellSize)
	newCY := int(newY / g.cellSize)

	crossedX := newCX != oldCX
	crossedY := newCY != oldCY

	switch {
	case crossedX && !crossedY:
		// Vertical face: mirror the horizontal component.
		h = NormalizeHeading(math.Pi - heading)
		return oldX, oldY, h, CollisionVertical
	case crossedY && !crossedX:
		// Horizontal face: mirror the vertical component.
		h = NormalizeHeading(-heading)
		return oldX, oldY, h, CollisionHorizontal
	default:
		h = NormalizeHeading(heading + math.Pi + jitter)
		return oldX, oldY, h, CollisionCorner
	}
}

// ClampToMargin keeps a position inside the world with the given margin,
// reflecting the heading off whichever borders were exceeded.
func ClampToMargin(worldW, worldH, margin, x, y, heading float32) (cx, cy, h float32, hit bool) {
	cx, cy, h = x, y, heading

	if cx < margin {
		cx = margin
		h = NormalizeHeading(math.Pi - h)
		hit = true
	} else if cx > worldW-margin {
		cx = worldW - margin
		h = NormalizeHeading(math.Pi - h)
		hit = true
	}

	if cy < margin {
		cy = margin
		h = NormalizeHeading(-h)
		hit = true
	} else if cy > worldH-margin {
		cy = worldH - margin
		h = NormalizeHeading(-h)
		hit = true
	}

	return cx, cy, h, hit
}

// NormalizeHeading wraps an angle to [-pi, pi].
func NormalizeHeading(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
