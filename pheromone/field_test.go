package pheromone

import (
	"math"
	"testing"
)

func newTestField(t testing.TB) *Field {
	t.Helper()
	f, err := NewField(800, 600, 10)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f
}

func TestFieldCreation(t *testing.T) {
	f := newTestField(t)

	cols, rows := f.GridSize()
	if cols != 80 || rows != 60 {
		t.Errorf("expected grid 80x60, got %dx%d", cols, rows)
	}
	if f.CellSize() != 10 {
		t.Errorf("expected cell size 10, got %v", f.CellSize())
	}
}

func TestFieldCreationRejectsDegenerateInput(t *testing.T) {
	cases := []struct {
		name           string
		w, h, cellSize float32
	}{
		{"zero cell size", 800, 600, 0},
		{"negative cell size", 800, 600, -5},
		{"nan cell size", 800, 600, float32(math.NaN())},
		{"zero width", 0, 600, 10},
		{"negative height", 800, -600, 10},
		{"inf width", float32(math.Inf(1)), 600, 10},
		{"cell larger than world", 8, 6, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewField(tc.w, tc.h, tc.cellSize); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}

func TestDepositAndSample(t *testing.T) {
	f := newTestField(t)

	f.Deposit(105, 105, KindFood, 0.5)

	// Sample anywhere in the same cell
	if got := f.Sample(101, 109, KindFood); got < 0.5 {
		t.Errorf("expected sample >= deposited amount, got %v", got)
	}
	// Other kind is untouched
	if got := f.Sample(105, 105, KindHome); got != 0 {
		t.Errorf("expected 0 for other kind, got %v", got)
	}
	// Neighboring cell is untouched
	if got := f.Sample(115, 105, KindFood); got != 0 {
		t.Errorf("expected 0 in neighboring cell, got %v", got)
	}
}

func TestDepositClampsAtOne(t *testing.T) {
	f := newTestField(t)

	f.Deposit(50, 50, KindFood, 0.8)
	f.Deposit(50, 50, KindFood, 0.5)

	if got := f.Sample(50, 50, KindFood); got != 1.0 {
		t.Errorf("expected strength clamped to 1.0, got %v", got)
	}
}

func TestDepositCompounds(t *testing.T) {
	f := newTestField(t)

	prev := float32(0)
	for i := 0; i < 5; i++ {
		f.Deposit(50, 50, KindHome, 0.1)
		got := f.Sample(50, 50, KindHome)
		if got < prev {
			t.Fatalf("strength decreased between deposits: %v -> %v", prev, got)
		}
		prev = got
	}
	if prev < 0.5-1e-5 || prev > 1.0 {
		t.Errorf("expected compounded strength ~0.5, got %v", prev)
	}
}

func TestDepositOutOfBoundsIsNoOp(t *testing.T) {
	f := newTestField(t)

	f.Deposit(-5, 50, KindFood, 0.5)
	f.Deposit(50, -5, KindFood, 0.5)
	f.Deposit(1000, 50, KindFood, 0.5)
	f.Deposit(50, 1000, KindFood, 0.5)

	if f.LiveCells(KindFood) != 0 {
		t.Errorf("expected no live cells after out-of-bounds deposits, got %d", f.LiveCells(KindFood))
	}
	if got := f.Sample(-5, 50, KindFood); got != 0 {
		t.Errorf("expected 0 for out-of-bounds sample, got %v", got)
	}
}

func TestNonFiniteCoordinatesAreNoOp(t *testing.T) {
	f := newTestField(t)

	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	f.Deposit(nan, 50, KindFood, 0.5)
	f.Deposit(50, nan, KindFood, 0.5)
	f.Deposit(nan, nan, KindHome, 0.5)
	f.Deposit(inf, 50, KindFood, 0.5)
	f.Deposit(50, -inf, KindHome, 0.5)

	if f.LiveCells(KindFood) != 0 || f.LiveCells(KindHome) != 0 {
		t.Errorf("expected no live cells after non-finite deposits, got food=%d home=%d",
			f.LiveCells(KindFood), f.LiveCells(KindHome))
	}
	if got := f.Sample(nan, 50, KindFood); got != 0 {
		t.Errorf("expected 0 for NaN sample, got %v", got)
	}
	if got := f.Sample(inf, nan, KindHome); got != 0 {
		t.Errorf("expected 0 for non-finite sample, got %v", got)
	}
}

func TestEvaporation(t *testing.T) {
	f := newTestField(t)

	f.Deposit(105, 105, KindHome, 0.5)
	f.Update(10) // 10 seconds at 0.005/s -> 0.05 lost

	got := f.Sample(105, 105, KindHome)
	want := float32(0.45)
	if absf(got-want) > 1e-5 {
		t.Errorf("expected strength %v after evaporation, got %v", want, got)
	}
}

func TestEvaporationRemovesWeakEntries(t *testing.T) {
	f := newTestField(t)

	// 0.5 strength, then 100 seconds at 0.005/s evaporates exactly 0.5.
	f.Deposit(105, 105, KindHome, 0.5)
	f.Update(100)

	if got := f.Sample(105, 105, KindHome); got != 0 {
		t.Errorf("expected entry removed, got strength %v", got)
	}
	if f.LiveCells(KindHome) != 0 {
		t.Errorf("expected 0 live cells, got %d", f.LiveCells(KindHome))
	}
}

func TestEvaporationStrictlyDecreases(t *testing.T) {
	f := newTestField(t)
	f.Deposit(50, 50, KindFood, 1.0)

	prev := f.Sample(50, 50, KindFood)
	for i := 0; i < 300; i++ {
		f.Update(1.0)
		got := f.Sample(50, 50, KindFood)
		if got == 0 {
			return // removed, done
		}
		if got >= prev {
			t.Fatalf("strength did not decrease at step %d: %v -> %v", i, prev, got)
		}
		prev = got
	}
	t.Error("entry was never removed after 300 seconds")
}

func TestEntriesAndTrailMass(t *testing.T) {
	f := newTestField(t)

	f.Deposit(15, 15, KindFood, 0.3)
	f.Deposit(25, 15, KindFood, 0.4)
	f.Deposit(15, 25, KindHome, 0.2)

	var foodCount, homeCount int
	var mass float64
	f.Entries(func(cx, cy int, kind Kind, strength float32) {
		if strength <= 0 || strength > 1 {
			t.Errorf("entry (%d,%d,%v) outside (0,1]: %v", cx, cy, kind, strength)
		}
		switch kind {
		case KindFood:
			foodCount++
		case KindHome:
			homeCount++
		}
		mass += float64(strength)
	})

	if foodCount != 2 || homeCount != 1 {
		t.Errorf("expected 2 food + 1 home entries, got %d + %d", foodCount, homeCount)
	}
	if total := f.TrailMass(KindFood) + f.TrailMass(KindHome); absf(float32(total-mass)) > 1e-5 {
		t.Errorf("TrailMass %v does not match visited mass %v", total, mass)
	}
	if f.LiveCells(KindFood) != 2 || f.LiveCells(KindHome) != 1 {
		t.Errorf("live counts mismatch: food=%d home=%d", f.LiveCells(KindFood), f.LiveCells(KindHome))
	}
}

func TestSetCellTracksLiveCount(t *testing.T) {
	f := newTestField(t)

	f.SetCell(3, 4, KindFood, 0.7)
	if f.LiveCells(KindFood) != 1 {
		t.Fatalf("expected 1 live cell, got %d", f.LiveCells(KindFood))
	}
	f.SetCell(3, 4, KindFood, 0)
	if f.LiveCells(KindFood) != 0 {
		t.Fatalf("expected 0 live cells after clear, got %d", f.LiveCells(KindFood))
	}
	// Out-of-range addresses are ignored
	f.SetCell(-1, 0, KindFood, 0.5)
	f.SetCell(0, 999, KindFood, 0.5)
	if f.LiveCells(KindFood) != 0 {
		t.Errorf("expected out-of-range SetCell to be ignored")
	}
}

func TestDepositBuffer(t *testing.T) {
	f := newTestField(t)
	var buf DepositBuffer

	buf.Add(50, 50, KindFood, 0.3)
	buf.Add(50, 50, KindFood, 0.2)
	buf.Add(150, 50, KindHome, 0.4)
	buf.Add(50, 50, KindFood, -1) // ignored

	// Nothing visible until the batch is applied
	if got := f.Sample(50, 50, KindFood); got != 0 {
		t.Fatalf("expected deposits invisible before Flush, got %v", got)
	}
	if buf.Len() != 3 {
		t.Fatalf("expected 3 queued deposits, got %d", buf.Len())
	}

	buf.Flush(f)

	if got := f.Sample(50, 50, KindFood); absf(got-0.5) > 1e-5 {
		t.Errorf("expected accumulated 0.5, got %v", got)
	}
	if got := f.Sample(150, 50, KindHome); absf(got-0.4) > 1e-5 {
		t.Errorf("expected 0.4, got %v", got)
	}
	if buf.Len() != 0 {
		t.Errorf("expected buffer reset after Flush, got %d", buf.Len())
	}
}

func TestDepositBufferMerge(t *testing.T) {
	f := newTestField(t)
	var a, b DepositBuffer

	a.Add(50, 50, KindFood, 0.3)
	b.Add(50, 50, KindFood, 0.3)
	a.Merge(&b)

	if a.Len() != 2 || b.Len() != 0 {
		t.Fatalf("expected merge to move deposits, got a=%d b=%d", a.Len(), b.Len())
	}

	a.Flush(f)
	if got := f.Sample(50, 50, KindFood); absf(got-0.6) > 1e-5 {
		t.Errorf("expected merged 0.6, got %v", got)
	}
}

func BenchmarkFieldUpdate(b *testing.B) {
	f, err := NewField(2560, 1440, 10)
	if err != nil {
		b.Fatal(err)
	}
	// Lay a realistic amount of trail
	for i := 0; i < 2000; i++ {
		x := float32((i * 13) % 2560)
		y := float32((i * 17) % 1440)
		f.Deposit(x, y, KindHome, 0.8)
		f.Deposit(y, x/2, KindFood, 0.6)
	}

	dt := float32(1.0 / 60.0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Update(dt)
	}
}
