package telemetry

import (
	"math"
	"testing"
)

func TestComputeTripStats(t *testing.T) {
	mean, std, p50, p90 := ComputeTripStats([]float64{2, 4, 6, 8, 10})

	if math.Abs(mean-6) > 1e-9 {
		t.Errorf("expected mean 6, got %v", mean)
	}
	if std <= 0 {
		t.Errorf("expected positive std, got %v", std)
	}
	if p50 < 4 || p50 > 8 {
		t.Errorf("expected p50 near the median, got %v", p50)
	}
	if p90 < p50 {
		t.Errorf("expected p90 >= p50, got p50=%v p90=%v", p50, p90)
	}
}

func TestComputeTripStatsEmpty(t *testing.T) {
	mean, std, p50, p90 := ComputeTripStats(nil)
	if mean != 0 || std != 0 || p50 != 0 || p90 != 0 {
		t.Errorf("expected all zeros for empty input, got %v %v %v %v", mean, std, p50, p90)
	}
}

func TestComputeTripStatsSingleValue(t *testing.T) {
	mean, std, p50, _ := ComputeTripStats([]float64{3.5})
	if mean != 3.5 || p50 != 3.5 {
		t.Errorf("expected 3.5 mean/median, got %v / %v", mean, p50)
	}
	if std != 0 {
		t.Errorf("expected zero std for a single sample, got %v", std)
	}
}

func TestCollectorWindowing(t *testing.T) {
	c := NewCollector(10.0, 1.0/60.0) // 600 ticks per window

	if c.WindowDurationTicks() != 600 {
		t.Fatalf("expected 600 ticks per window, got %d", c.WindowDurationTicks())
	}
	if c.ShouldFlush(599) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(600) {
		t.Error("should flush at window end")
	}
}

func TestCollectorWindowTicksWithInexactDT(t *testing.T) {
	// dt carried through a float32 (as the sim config does) does not divide
	// the window exactly; the tick count must still come out whole.
	dt := float64(float32(1.0 / 60.0))
	c := NewCollector(10.0, dt)
	if c.WindowDurationTicks() != 600 {
		t.Errorf("expected 600 ticks per window, got %d", c.WindowDurationTicks())
	}

	// A dt that genuinely does not fit rounds to the nearest tick count.
	c = NewCollector(1.0, 0.3)
	if c.WindowDurationTicks() != 3 {
		t.Errorf("expected 3 ticks per window, got %d", c.WindowDurationTicks())
	}
}

func TestCollectorFlushAggregatesAndResets(t *testing.T) {
	c := NewCollector(10.0, 1.0/60.0)

	c.RecordSpawn()
	c.RecordSpawn()
	c.RecordPickup()
	c.RecordDelivery(12.5)
	c.RecordDelivery(7.5)
	c.RecordWallBounce()

	stats := c.Flush(600, 42, 5, 1, 30, 370, FieldTotals{
		FoodCells: 10, HomeCells: 20, FoodMass: 3.5, HomeMass: 8.1,
	})

	if stats.Spawns != 2 || stats.Pickups != 1 || stats.Deliveries != 2 || stats.WallBounces != 1 {
		t.Errorf("event counts wrong: %+v", stats)
	}
	if stats.AntCount != 42 || stats.CarryingCount != 5 || stats.Colonies != 1 {
		t.Errorf("population wrong: %+v", stats)
	}
	if math.Abs(stats.TripMean-10) > 1e-9 {
		t.Errorf("expected trip mean 10, got %v", stats.TripMean)
	}
	// 2 deliveries over 10 simulated seconds
	if math.Abs(stats.DeliveryRate-0.2) > 1e-9 {
		t.Errorf("expected delivery rate 0.2/s, got %v", stats.DeliveryRate)
	}
	if stats.FoodTrailCells != 10 || stats.HomeTrailMass != 8.1 {
		t.Errorf("trail totals wrong: %+v", stats)
	}

	// Counters reset, window advanced
	next := c.Flush(1200, 42, 0, 1, 30, 370, FieldTotals{})
	if next.Spawns != 0 || next.Deliveries != 0 || next.TripMean != 0 {
		t.Errorf("expected counters reset after flush: %+v", next)
	}
	if next.WindowStartTick != 600 {
		t.Errorf("expected window start 600, got %d", next.WindowStartTick)
	}
}

func TestCollectorIgnoresNonPositiveTripDurations(t *testing.T) {
	c := NewCollector(10.0, 1.0/60.0)
	c.RecordDelivery(0)
	c.RecordDelivery(-3)

	stats := c.Flush(600, 1, 0, 1, 0, 0, FieldTotals{})
	if stats.Deliveries != 2 {
		t.Errorf("expected deliveries still counted, got %d", stats.Deliveries)
	}
	if stats.TripMean != 0 {
		t.Errorf("expected no trip samples, got mean %v", stats.TripMean)
	}
}
