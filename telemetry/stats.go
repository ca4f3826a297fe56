package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarises one evaluated generation.
type GenerationStats struct {
	Generation int     `csv:"generation"`
	Best       float64 `csv:"best"`
	Worst      float64 `csv:"worst"`
	Average    float64 `csv:"average"`
	Total      float64 `csv:"total"`

	// Fitness distribution across the population
	StdDev     float64 `csv:"std_dev"`
	FitnessP10 float64 `csv:"fitness_p10"`
	FitnessP50 float64 `csv:"fitness_p50"`
	FitnessP90 float64 `csv:"fitness_p90"`

	// Events during the generation
	RewardsCollected int `csv:"rewards_collected"`
	HazardsHit       int `csv:"hazards_hit"`

	Ticks      int     `csv:"ticks"`
	ElapsedSec float64 `csv:"elapsed_sec"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFitnessStats calculates population standard deviation and percentiles.
func ComputeFitnessStats(values []float64) (std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	_, std = stat.PopMeanStdDev(values, nil)

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return std, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Float64("best", s.Best),
		slog.Float64("worst", s.Worst),
		slog.Float64("average", s.Average),
		slog.Float64("total", s.Total),
		slog.Float64("std_dev", s.StdDev),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Int("rewards_collected", s.RewardsCollected),
		slog.Int("hazards_hit", s.HazardsHit),
		slog.Int("ticks", s.Ticks),
		slog.Float64("elapsed_sec", s.ElapsedSec),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"generation", s.Generation,
		"best", s.Best,
		"worst", s.Worst,
		"average", s.Average,
		"std_dev", s.StdDev,
		"p10", s.FitnessP10,
		"p50", s.FitnessP50,
		"p90", s.FitnessP90,
		"rewards_collected", s.RewardsCollected,
		"hazards_hit", s.HazardsHit,
		"elapsed_sec", s.ElapsedSec,
	)
}
