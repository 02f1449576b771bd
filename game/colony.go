package game

import (
	"math"

	"github.com/pthm-cable/antworks/config"
)

// growthIncrement is how many extra ants each growth step allows.
const growthIncrement = 10

// Colony is a nest site with stored food and a population budget.
type Colony struct {
	ID uint8
	X  float32
	Y  float32

	// FoodStored is spendable on new ants; TotalDelivered only grows and
	// drives the population cap.
	FoodStored     float32
	TotalDelivered float32

	MaxAnts  int
	AntCount int

	maxAntsCap int
	spawnCost  float32
	growthFood float32
	baseMax    int
}

// NewColony creates a colony at the given nest center.
func NewColony(id uint8, x, y float32, cfg *config.Config) *Colony {
	return &Colony{
		ID:         id,
		X:          x,
		Y:          y,
		MaxAnts:    cfg.Colony.MaxAnts,
		baseMax:    cfg.Colony.MaxAnts,
		maxAntsCap: cfg.Colony.MaxAntsCap,
		spawnCost:  float32(cfg.Colony.SpawnCost),
		growthFood: float32(cfg.Colony.GrowthFood),
	}
}

// Deliver credits delivered food to the colony.
func (c *Colony) Deliver(amount float32) {
	c.FoodStored += amount
	c.TotalDelivered += amount
}

// updateGrowth raises the population cap as total deliveries accumulate.
func (c *Colony) updateGrowth() {
	if c.growthFood <= 0 {
		return
	}
	steps := int(c.TotalDelivered / c.growthFood)
	target := c.baseMax + steps*growthIncrement
	if target > c.maxAntsCap {
		target = c.maxAntsCap
	}
	if target > c.MaxAnts {
		c.MaxAnts = target
	}
}

// updateColonies runs colony upkeep: cap growth and ant spawning.
func (g *Game) updateColonies() {
	for _, colony := range g.colonies {
		colony.updateGrowth()

		for colony.FoodStored >= colony.spawnCost && colony.AntCount < colony.MaxAnts {
			colony.FoodStored -= colony.spawnCost
			heading := g.rng.Float32()*2*math.Pi - math.Pi
			g.spawnAnt(colony, heading)
		}
	}
}

// colonyByID returns the colony with the given ID, nil if unknown.
func (g *Game) colonyByID(id uint8) *Colony {
	for _, c := range g.colonies {
		if c.ID == id {
			return c
		}
	}
	return nil
}
