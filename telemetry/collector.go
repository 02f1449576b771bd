package telemetry

import "math"

// FieldTotals holds trail field aggregates sampled at window end.
type FieldTotals struct {
	FoodCells int
	HomeCells int
	FoodMass  float64
	HomeMass  float64
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	// Event counters for current window
	spawns      int
	pickups     int
	deliveries  int
	wallBounces int

	// Completed round-trip durations (seconds) during the window
	tripDurations []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	// Rounded, not truncated: dt values like 1/60 do not divide the window
	// exactly and truncation would shave a tick off every window.
	ticksPerWindow := int32(math.Round(windowDurationSec / dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordSpawn records a new ant entering the simulation.
func (c *Collector) RecordSpawn() {
	c.spawns++
}

// RecordPickup records an ant picking up food.
func (c *Collector) RecordPickup() {
	c.pickups++
}

// RecordDelivery records a completed delivery and the round-trip duration in
// seconds.
func (c *Collector) RecordDelivery(tripSec float64) {
	c.deliveries++
	if tripSec > 0 {
		c.tripDurations = append(c.tripDurations, tripSec)
	}
}

// RecordWallBounce records a wall or border collision.
func (c *Collector) RecordWallBounce() {
	c.wallBounces++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(
	currentTick int32,
	antCount, carryingCount, colonies int,
	foodStored, foodRemaining float64,
	trails FieldTotals,
) WindowStats {
	windowSec := float64(currentTick-c.windowStartTick) * c.dt
	deliveryRate := float64(0)
	if windowSec > 0 {
		deliveryRate = float64(c.deliveries) / windowSec
	}

	tripMean, tripStd, tripP50, tripP90 := ComputeTripStats(c.tripDurations)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		AntCount:      antCount,
		CarryingCount: carryingCount,
		Colonies:      colonies,

		FoodStored:    foodStored,
		FoodRemaining: foodRemaining,

		Spawns:      c.spawns,
		Pickups:     c.pickups,
		Deliveries:  c.deliveries,
		WallBounces: c.wallBounces,

		DeliveryRate: deliveryRate,

		TripMean: tripMean,
		TripStd:  tripStd,
		TripP50:  tripP50,
		TripP90:  tripP90,

		FoodTrailCells: trails.FoodCells,
		HomeTrailCells: trails.HomeCells,
		FoodTrailMass:  trails.FoodMass,
		HomeTrailMass:  trails.HomeMass,
	}

	c.windowStartTick = currentTick
	c.spawns = 0
	c.pickups = 0
	c.deliveries = 0
	c.wallBounces = 0
	c.tripDurations = c.tripDurations[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
