package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sweepers/config"
	"github.com/pthm-cable/sweepers/game"
	"github.com/pthm-cable/sweepers/renderer"
	"github.com/pthm-cable/sweepers/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	paramsPath := flag.String("params", "", "Path to a legacy whitespace-delimited parameter file (overrides -config)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output generation stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and fitness chart")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxGenerations := flag.Int("max-generations", 0, "Stop after N generations (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configPath, *paramsPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats || *headless,
		OutputDir: *outputDir,
	}

	c, err := game.New(cfg, opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	if *headless {
		runHeadless(c, rngSeed, *maxGenerations)
		return
	}
	runWindowed(c, cfg, *maxGenerations)
}

func loadConfig(configPath, paramsPath string) (*config.Config, error) {
	if paramsPath != "" {
		return config.LoadParams(paramsPath)
	}
	return config.Load(configPath)
}

// runHeadless steps the simulation until the generation limit or an interrupt.
func runHeadless(c *game.Controller, seed int64, maxGenerations int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting headless simulation",
		"seed", seed,
		"max_generations", maxGenerations,
		"population", c.Config().Genetic.PopulationSize,
		"ticks_per_generation", c.Config().Simulation.TicksPerGeneration,
		"output_dir", c.OutputDir(),
	)

	err := c.Run(ctx, maxGenerations)
	switch {
	case err == nil:
		slog.Info("max generations reached", "generation", c.Generation())
	case errors.Is(err, context.Canceled):
		slog.Info("interrupted", "generation", c.Generation(), "tick", c.Tick())
	default:
		slog.Error("simulation failed", "generation", c.Generation(), "error", err)
	}

	if records := c.Records(); len(records) > 0 {
		fmt.Println(telemetry.SummaryTable(records))
	}
}

// runWindowed drives the simulation from the raylib frame loop.
func runWindowed(c *game.Controller, cfg *config.Config, maxGenerations int) {
	width, height := int32(cfg.Derived.ScreenWidth), int32(cfg.Derived.ScreenHeight)
	rl.InitWindow(width, height, "Smart Sweepers")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	r := renderer.New(width, height, cfg.Arena.Width, cfg.Arena.Height)

	for !rl.WindowShouldClose() {
		r.HandleInput(c)

		for i := r.StepsPerFrame(c.FastRender()); i > 0 && !c.Halted(); i-- {
			if err := c.Step(); err != nil {
				slog.Error("simulation halted", "error", err)
				break
			}
		}
		c.Perf().RecordFrame()

		rl.BeginDrawing()
		r.Draw(c, c.Snapshot())
		rl.EndDrawing()

		if maxGenerations > 0 && c.Generation() >= maxGenerations {
			break
		}
	}
}
