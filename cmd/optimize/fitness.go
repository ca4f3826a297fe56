package main

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/sweepers/config"
	"github.com/pthm-cable/sweepers/game"
	"github.com/pthm-cable/sweepers/telemetry"
)

// FitnessEvaluator runs headless simulations and scores a parameter set.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	tail        int // generations averaged at the end of a run
	seeds       []int64
	baseConfig  *config.Config

	mu          sync.Mutex
	bestFitness float64
	bestRecords []telemetry.GenerationStats
	lastBest    float64 // mean final best fitness from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		tail:        max(1, generations/5),
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestRecords returns the generation records of the best seed of the best evaluation.
func (fe *FitnessEvaluator) BestRecords() []telemetry.GenerationStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestRecords
}

// LastBest returns the mean final best fitness from the most recent evaluation.
func (fe *FitnessEvaluator) LastBest() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastBest
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness   float64
	finalBest float64
	records   []telemetry.GenerationStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated average population fitness over the last generations
// of each run, averaged across seeds. Invalid configurations score +Inf.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	if err := cfg.Prepare(); err != nil {
		slog.Warn("rejected parameters", "error", err)
		return math.Inf(1)
	}

	// Controllers share nothing, so seeds run in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalBest float64
	bestSeed := 0
	for i, r := range results {
		totalFitness += r.fitness
		totalBest += r.finalBest
		if r.fitness < results[bestSeed].fitness {
			bestSeed = i
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestRecords = results[bestSeed].records
	}
	fe.lastBest = totalBest / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless run for the configured number of generations.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) seedResult {
	c, err := game.New(cfg, game.Options{Seed: seed})
	if err != nil {
		slog.Error("failed to create simulation", "seed", seed, "error", err)
		return seedResult{fitness: math.Inf(1)}
	}
	defer c.Close()

	if err := c.Run(context.Background(), fe.generations); err != nil {
		slog.Error("simulation failed", "seed", seed, "error", err)
		return seedResult{fitness: math.Inf(1)}
	}

	records := c.Records()
	r := seedResult{fitness: -tailAverage(records, fe.tail), records: records}
	if len(records) > 0 {
		r.finalBest = records[len(records)-1].Best
	}
	return r
}

// copyConfig returns an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// tailAverage averages population-average fitness over the last n records.
func tailAverage(records []telemetry.GenerationStats, n int) float64 {
	if len(records) == 0 {
		return 0
	}
	n = min(n, len(records))
	var sum float64
	for _, r := range records[len(records)-n:] {
		sum += r.Average
	}
	return sum / float64(n)
}
