package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	AntCount      int `csv:"ants"`
	CarryingCount int `csv:"carrying"`
	Colonies      int `csv:"colonies"`

	// Food accounting at window end
	FoodStored    float64 `csv:"food_stored"`
	FoodRemaining float64 `csv:"food_remaining"`

	// Events during window
	Spawns      int `csv:"spawns"`
	Pickups     int `csv:"pickups"`
	Deliveries  int `csv:"deliveries"`
	WallBounces int `csv:"wall_bounces"`

	// Deliveries per simulated second over the window
	DeliveryRate float64 `csv:"delivery_rate"`

	// Round-trip durations (pickup to delivery) completed during the window
	TripMean float64 `csv:"trip_mean"`
	TripStd  float64 `csv:"trip_std"`
	TripP50  float64 `csv:"trip_p50"`
	TripP90  float64 `csv:"trip_p90"`

	// Trail field state at window end
	FoodTrailCells int     `csv:"food_trail_cells"`
	HomeTrailCells int     `csv:"home_trail_cells"`
	FoodTrailMass  float64 `csv:"food_trail_mass"`
	HomeTrailMass  float64 `csv:"home_trail_mass"`
}

// ComputeTripStats calculates mean, standard deviation, and percentiles from
// completed trip durations.
func ComputeTripStats(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("ants", s.AntCount),
		slog.Int("carrying", s.CarryingCount),
		slog.Int("colonies", s.Colonies),
		slog.Float64("food_stored", s.FoodStored),
		slog.Float64("food_remaining", s.FoodRemaining),
		slog.Int("spawns", s.Spawns),
		slog.Int("pickups", s.Pickups),
		slog.Int("deliveries", s.Deliveries),
		slog.Int("wall_bounces", s.WallBounces),
		slog.Float64("delivery_rate", s.DeliveryRate),
		slog.Float64("trip_mean", s.TripMean),
		slog.Float64("trip_std", s.TripStd),
		slog.Float64("trip_p50", s.TripP50),
		slog.Float64("trip_p90", s.TripP90),
		slog.Int("food_trail_cells", s.FoodTrailCells),
		slog.Int("home_trail_cells", s.HomeTrailCells),
		slog.Float64("food_trail_mass", s.FoodTrailMass),
		slog.Float64("home_trail_mass", s.HomeTrailMass),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
