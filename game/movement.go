package game

import (
	"math"

	"github.com/pthm-cable/antworks/systems"
)

// updateMovement advances all ants along their headings and resolves wall
// and border collisions.
func (g *Game) updateMovement(dt float32) {
	speed := float32(g.cfg.Ant.Speed)
	margin := float32(g.cfg.Ant.EdgeMargin)

	query := g.antFilter.Query()
	for query.Next() {
		pos, vel, rot, _ := query.Get()

		vel.X = float32(math.Cos(float64(rot.Angle))) * speed
		vel.Y = float32(math.Sin(float64(rot.Angle))) * speed

		newX := pos.X + vel.X*dt
		newY := pos.Y + vel.Y*dt

		jitter := (g.rng.Float32()*2 - 1) * 0.3
		x, y, h, result := systems.ResolveWallCollision(g.terrain, pos.X, pos.Y, newX, newY, rot.Angle, jitter)
		if result != systems.CollisionNone {
			g.collector.RecordWallBounce()
		}

		x, y, h, hit := systems.ClampToMargin(g.width, g.height, margin, x, y, h)
		if hit {
			g.collector.RecordWallBounce()
		}

		pos.X = x
		pos.Y = y
		rot.Angle = h
	}
}
