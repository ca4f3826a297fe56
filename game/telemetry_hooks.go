package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/sweepers/genetic"
	"github.com/pthm-cable/sweepers/telemetry"
)

// recordGeneration builds the stats record for the generation that just
// finished, then logs, writes and forwards it.
func (c *Controller) recordGeneration(s genetic.Stats, fitness []float64) {
	c.perf.StartPhase(telemetry.PhaseTelemetry)

	std, p10, p50, p90 := telemetry.ComputeFitnessStats(fitness)
	stats := telemetry.GenerationStats{
		Generation:       c.generation,
		Best:             s.Best,
		Worst:            s.Worst,
		Average:          s.Average,
		Total:            s.Total,
		StdDev:           std,
		FitnessP10:       p10,
		FitnessP50:       p50,
		FitnessP90:       p90,
		RewardsCollected: c.rewardsCollected,
		HazardsHit:       c.hazardsHit,
		Ticks:            c.tick,
		ElapsedSec:       time.Since(c.genStart).Seconds(),
	}
	c.lastStats = stats
	c.records = append(c.records, stats)

	c.rewardsCollected = 0
	c.hazardsHit = 0
	c.genStart = time.Now()

	if c.statsCallback != nil {
		c.statsCallback(stats)
	}

	if c.logStats && (c.cfg.Telemetry.LogEvery <= 1 || stats.Generation%c.cfg.Telemetry.LogEvery == 0) {
		stats.LogStats()
	}

	perfStats := c.perf.Stats()
	if err := c.output.WriteGeneration(stats); err != nil {
		slog.Error("failed to write generation", "error", err)
	}
	if err := c.output.WritePerf(perfStats, stats.Generation); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
