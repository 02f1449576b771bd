package game

import (
	"math"

	"github.com/pthm-cable/antworks/components"
	"github.com/pthm-cable/antworks/pheromone"
	"github.com/pthm-cable/antworks/systems"
)

// updateBehavior runs steering, wandering, trail deposits, and food
// interactions for all ants.
//
// Steering is the expensive part (dozens of field samples per ant) and runs
// on worker goroutines over immutable snapshots. Everything that mutates
// shared state - headings, timers, deposits, terrain, colonies - is applied
// in a single serial pass afterwards so the outcome does not depend on
// worker scheduling.
func (g *Game) updateBehavior(dt float32) {
	p := g.parallel

	// Phase A: snapshot ant state
	p.snapshots = p.snapshots[:0]
	query := g.antFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, _, rot, ant := query.Get()

		p.snapshots = append(p.snapshots, antSnapshot{
			Entity: entity,
			State: pheromone.AntState{
				X:            pos.X,
				Y:            pos.Y,
				Heading:      rot.Angle,
				CarryingFood: ant.CarryingFood,
				IgnoreUntil:  ant.IgnoreUntil,
			},
		})
	}

	// Phase B: compute steering intents
	p.compute(g.simTime, g.cfg.Parallel.Threshold)

	// Phase C: apply serially
	for i := range p.snapshots {
		snap := &p.snapshots[i]

		pos := g.posMap.Get(snap.Entity)
		rot := g.headingMap.Get(snap.Entity)
		ant := g.antMap.Get(snap.Entity)
		if pos == nil || rot == nil || ant == nil {
			continue
		}

		signal := p.intents[i].Signal
		if signal {
			rot.Angle = p.intents[i].Heading
		}

		g.applyWander(ant, rot, signal, dt)
		g.applyDeposit(ant, pos, dt)
		g.applyInteractions(ant, pos, rot)
	}
}

// applyWander turns the ant randomly when its wander timer expires. Without
// a sensed trail the turn range widens so lost ants sweep new ground instead
// of running straight.
func (g *Game) applyWander(ant *components.Ant, rot *components.Heading, signal bool, dt float32) {
	ant.WanderTimer -= dt
	if ant.WanderTimer > 0 {
		return
	}

	boost := float32(1)
	if !signal {
		if ant.CarryingFood {
			boost = float32(g.cfg.Ant.WanderBoostCarrying)
		} else {
			boost = float32(g.cfg.Ant.WanderBoostForaging)
		}
	}

	turn := (g.rng.Float32()*2 - 1) * float32(g.cfg.Ant.WanderTurn) * boost
	rot.Angle = systems.NormalizeHeading(rot.Angle + turn)
	ant.WanderTimer = g.wanderInterval()
}

// applyDeposit queues a trail deposit when the ant's deposit timer expires.
// Searching ants mark the way home, returning ants mark the way to food.
func (g *Game) applyDeposit(ant *components.Ant, pos *components.Position, dt float32) {
	ant.DepositTimer -= dt
	if ant.DepositTimer > 0 {
		return
	}

	kind := pheromone.KindHome
	interval := float32(g.cfg.Ant.DepositIntervalSearch)
	if ant.Mode == components.ModeReturning {
		kind = pheromone.KindFood
		interval = float32(g.cfg.Ant.DepositIntervalReturn)
	}

	dx := pos.X - ant.TripOriginX
	dy := pos.Y - ant.TripOriginY
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))

	g.deposits.Add(pos.X, pos.Y, kind, g.depositAmount(dist))
	ant.DepositTimer = interval
}

// depositAmount fades deposit strength with distance from the trip origin,
// so trails are strongest where they are most trustworthy.
func (g *Game) depositAmount(dist float32) float32 {
	near := float32(g.cfg.Ant.DepositNear)
	far := float32(g.cfg.Ant.DepositFar)
	falloff := float32(g.cfg.Ant.DepositFalloff)

	if falloff <= 0 || dist >= falloff {
		return far
	}
	return near - (near-far)*(dist/falloff)
}

// applyInteractions handles food pickup and nest delivery.
func (g *Game) applyInteractions(ant *components.Ant, pos *components.Position, rot *components.Heading) {
	switch ant.Mode {
	case components.ModeSearching:
		if g.terrain.CellAt(pos.X, pos.Y) != systems.CellFood {
			return
		}
		took := g.terrain.TakeFood(pos.X, pos.Y, float32(g.cfg.Food.PickupAmount))
		if took <= 0 {
			return
		}
		g.beginReturnTrip(ant, pos, rot)
		g.collector.RecordPickup()

	case components.ModeReturning:
		colony := g.colonyByID(ant.ColonyID)
		if colony == nil {
			return
		}
		dx := pos.X - ant.HomeX
		dy := pos.Y - ant.HomeY
		radius := float32(g.cfg.Colony.NestRadius)
		if dx*dx+dy*dy > radius*radius {
			return
		}
		colony.Deliver(float32(g.cfg.Food.PickupAmount))
		trip := g.simTime - ant.TripStart
		g.beginSearchTrip(ant, rot)
		g.collector.RecordDelivery(float64(trip))
	}
}

// beginReturnTrip flips an ant into returning mode at a food pickup.
func (g *Game) beginReturnTrip(ant *components.Ant, pos *components.Position, rot *components.Heading) {
	ant.Mode = components.ModeReturning
	ant.CarryingFood = true
	ant.TripOriginX = pos.X
	ant.TripOriginY = pos.Y
	ant.TripStart = g.simTime
	ant.IgnoreUntil = g.simTime + float32(g.cfg.Steering.IgnoreDuration)
	ant.DepositTimer = float32(g.cfg.Ant.DepositIntervalReturn)

	// Turn around: the trail just followed leads away from home.
	rot.Angle = systems.NormalizeHeading(rot.Angle + math.Pi)

	g.carryingCount++
}

// beginSearchTrip flips an ant back into searching mode after a delivery.
func (g *Game) beginSearchTrip(ant *components.Ant, rot *components.Heading) {
	ant.Mode = components.ModeSearching
	ant.CarryingFood = false
	ant.TripOriginX = ant.HomeX
	ant.TripOriginY = ant.HomeY
	ant.TripStart = g.simTime
	ant.IgnoreUntil = g.simTime + float32(g.cfg.Steering.IgnoreDuration)
	ant.DepositTimer = float32(g.cfg.Ant.DepositIntervalSearch)

	rot.Angle = systems.NormalizeHeading(rot.Angle + math.Pi)

	g.carryingCount--
}
