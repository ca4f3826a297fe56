// Package game drives the sweeper simulation: it advances sweepers tick by
// tick and hands each finished generation to the genetic algorithm.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/sweepers/agent"
	"github.com/pthm-cable/sweepers/arena"
	"github.com/pthm-cable/sweepers/config"
	"github.com/pthm-cable/sweepers/genetic"
	"github.com/pthm-cable/sweepers/neural"
	"github.com/pthm-cable/sweepers/telemetry"
)

// ErrHalted is returned by Step after a sweeper update has failed.
var ErrHalted = errors.New("simulation halted")

// Options configures a Controller beyond the loaded config.
type Options struct {
	Seed          int64
	LogStats      bool   // log each generation via slog
	OutputDir     string // empty disables file output
	StatsCallback func(telemetry.GenerationStats)
}

// Controller owns the arena, the sweepers and the genetic algorithm.
// It is single-threaded and has no timer; callers drive it with Step or Run.
type Controller struct {
	cfg *config.Config
	rng *rand.Rand

	arena      *arena.Arena
	sweepers   []*agent.Agent
	ga         *genetic.GA
	population []*genetic.Genome

	tick       int
	generation int
	halted     error
	fastRender bool

	history   *telemetry.History
	lastStats telemetry.GenerationStats
	records   []telemetry.GenerationStats

	// per-generation counters
	rewardsCollected int
	hazardsHit       int
	genStart         time.Time

	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.GenerationStats)
}

// New builds the arena, one sweeper per genome, and the initial random
// population. The network weight count must match the chromosome length.
func New(cfg *config.Config, opts Options) (*Controller, error) {
	rng := rand.New(rand.NewSource(opts.Seed))

	topo := neural.Topology{
		Inputs:           cfg.Derived.NumInputs,
		HiddenLayers:     cfg.Neural.HiddenLayers,
		NeuronsPerHidden: cfg.Neural.NeuronsPerHiddenLayer,
		Outputs:          cfg.Neural.NumOutputs,
	}
	if err := topo.Validate(); err != nil {
		return nil, &config.Error{Field: "neural", Reason: err.Error()}
	}
	nnParams := neural.Params{
		ActivationResponse: cfg.Neural.ActivationResponse,
		Bias:               cfg.Neural.Bias,
	}

	c := &Controller{
		cfg:           cfg,
		rng:           rng,
		history:       telemetry.NewHistory(cfg.Telemetry.HistorySize),
		perf:          telemetry.NewPerfCollector(cfg.Simulation.TicksPerGeneration),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		genStart:      time.Now(),
	}

	sweeperParams := agent.ParamsFromConfig(cfg)
	c.sweepers = make([]*agent.Agent, cfg.Genetic.PopulationSize)
	for i := range c.sweepers {
		brain, err := neural.New(topo, nnParams, rng)
		if err != nil {
			return nil, &config.Error{Field: "neural", Reason: err.Error()}
		}
		c.sweepers[i] = agent.New(brain, sweeperParams, cfg.Arena.Width, cfg.Arena.Height, rng)
	}

	c.arena = arena.New(cfg.Arena.Width, cfg.Arena.Height, cfg.Objects.NumRewards, cfg.Objects.NumHazards, rng)

	gaParams := genetic.Params{
		PopulationSize:   cfg.Genetic.PopulationSize,
		ChromosomeLength: topo.WeightCount(),
		MutationRate:     cfg.Genetic.MutationRate,
		CrossoverRate:    cfg.Genetic.CrossoverRate,
		MaxPerturbation:  cfg.Genetic.MaxPerturbation,
		NumElite:         cfg.Genetic.NumElite,
		NumCopiesElite:   cfg.Genetic.NumCopiesElite,
	}
	for i, s := range c.sweepers {
		if n := s.NumWeights(); n != gaParams.ChromosomeLength {
			return nil, &config.Error{
				Field:  "neural",
				Reason: fmt.Sprintf("sweeper %d has %d weights, chromosome length is %d", i, n, gaParams.ChromosomeLength),
			}
		}
	}
	ga, err := genetic.New(gaParams, rng)
	if err != nil {
		return nil, fmt.Errorf("creating genetic algorithm: %w", err)
	}
	c.ga = ga
	c.population = ga.Population()
	if err := c.loadPopulation(); err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	c.output = output
	if err := c.output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	return c, nil
}

// loadPopulation writes each genome's weights into its sweeper.
func (c *Controller) loadPopulation() error {
	for i, g := range c.population {
		if err := c.sweepers[i].PutWeights(g.Weights); err != nil {
			return fmt.Errorf("loading genome %d: %w", i, err)
		}
	}
	return nil
}

// Step advances the simulation by one tick, or runs the epoch once the
// generation's ticks are used up. A failed sweeper update halts the run:
// the error is returned and every later call returns ErrHalted.
func (c *Controller) Step() error {
	if c.halted != nil {
		return fmt.Errorf("%w: %v", ErrHalted, c.halted)
	}

	if c.tick < c.cfg.Simulation.TicksPerGeneration {
		if err := c.updateSweepers(); err != nil {
			c.halted = err
			slog.Error("simulation halted", "generation", c.generation, "tick", c.tick, "error", err)
			return err
		}
		c.tick++
		return nil
	}

	if err := c.epoch(); err != nil {
		c.halted = err
		return err
	}
	return nil
}

// updateSweepers moves every sweeper once, in population order. Objects a
// sweeper collects respawn before the next sweeper senses.
func (c *Controller) updateSweepers() error {
	c.perf.StartTick()
	c.perf.StartPhase(telemetry.PhaseSweepers)
	defer c.perf.EndTick()

	for i, s := range c.sweepers {
		ev, err := s.Update(c.arena)
		if err != nil {
			return fmt.Errorf("sweeper %d: %w", i, err)
		}
		if ev.Has(agent.EventReward) {
			c.rewardsCollected++
		}
		if ev.Has(agent.EventHazard) {
			c.hazardsHit++
		}
		c.population[i].Fitness = s.Fitness()
	}
	return nil
}

// epoch breeds the next generation and resets the sweepers for it.
func (c *Controller) epoch() error {
	c.perf.StartTick()
	c.perf.StartPhase(telemetry.PhaseEpoch)
	defer c.perf.EndTick()

	fitness := make([]float64, len(c.population))
	for i, g := range c.population {
		fitness[i] = g.Fitness
	}

	next := c.ga.RunEpoch(c.population)
	s := c.ga.Stats()
	c.history.Add(telemetry.Point{Generation: c.generation, Best: s.Best, Average: s.Average})
	c.recordGeneration(s, fitness)

	c.population = next
	c.generation++
	c.tick = 0
	if err := c.loadPopulation(); err != nil {
		return err
	}
	for _, sw := range c.sweepers {
		sw.Reset()
	}
	return nil
}

// Run steps the simulation until maxGenerations epochs have completed
// (0 = unlimited), a step fails, or ctx is cancelled. ctx is checked
// between ticks.
func (c *Controller) Run(ctx context.Context, maxGenerations int) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if maxGenerations > 0 && c.generation >= maxGenerations {
			return nil
		}
		if err := c.Step(); err != nil {
			return err
		}
	}
}

// Close flushes and closes the run output.
func (c *Controller) Close() error {
	return c.output.Close()
}

// Generation returns the number of completed generations.
func (c *Controller) Generation() int { return c.generation }

// Tick returns the tick within the current generation.
func (c *Controller) Tick() int { return c.tick }

// Halted reports whether a failed update has stopped the run.
func (c *Controller) Halted() bool { return c.halted != nil }

// Config returns the configuration the controller was built from.
func (c *Controller) Config() *config.Config { return c.cfg }

// Arena returns the testing ground.
func (c *Controller) Arena() *arena.Arena { return c.arena }

// Sweepers returns the sweepers in population order.
func (c *Controller) Sweepers() []*agent.Agent { return c.sweepers }

// Population returns the genomes bound to the sweepers, index for index.
func (c *Controller) Population() []*genetic.Genome { return c.population }

// History returns the bounded best/average fitness history.
func (c *Controller) History() *telemetry.History { return c.history }

// LastStats returns the stats of the most recently evaluated generation.
func (c *Controller) LastStats() telemetry.GenerationStats { return c.lastStats }

// Records returns every generation's stats recorded so far.
func (c *Controller) Records() []telemetry.GenerationStats { return c.records }

// OutputDir returns the run's output directory, or "" when disabled.
func (c *Controller) OutputDir() string { return c.output.Dir() }

// FastRender reports whether drawing of the arena is switched off.
func (c *Controller) FastRender() bool { return c.fastRender }

// ToggleFastRender flips fast-render mode.
func (c *Controller) ToggleFastRender() { c.fastRender = !c.fastRender }

// Perf returns the rolling tick timing stats.
func (c *Controller) Perf() *telemetry.PerfCollector { return c.perf }
