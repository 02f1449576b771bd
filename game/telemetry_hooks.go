package game

import (
	"log/slog"

	"github.com/pthm-cable/antworks/pheromone"
	"github.com/pthm-cable/antworks/systems"
	"github.com/pthm-cable/antworks/telemetry"
)

// flushTelemetry emits a stats window when due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	var foodStored float64
	for _, c := range g.colonies {
		foodStored += float64(c.FoodStored)
	}

	var foodRemaining float64
	g.terrain.EachCell(func(_, _ int, kind systems.CellKind, food float32) {
		if kind == systems.CellFood {
			foodRemaining += float64(food)
		}
	})

	trails := telemetry.FieldTotals{
		FoodCells: g.field.LiveCells(pheromone.KindFood),
		HomeCells: g.field.LiveCells(pheromone.KindHome),
		FoodMass:  g.field.TrailMass(pheromone.KindFood),
		HomeMass:  g.field.TrailMass(pheromone.KindHome),
	}

	stats := g.collector.Flush(
		g.tick,
		g.antCount, g.carryingCount, len(g.colonies),
		foodStored, foodRemaining,
		trails,
	)

	if g.opts.LogStats {
		stats.LogStats()
	}
	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
	}
}
