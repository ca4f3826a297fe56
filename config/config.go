// Package config provides configuration loading and validation for the sweeper simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Error reports a single invalid setting.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

func (e *Error) Unwrap() error { return ErrInvalidConfig }

// Config holds all simulation configuration parameters.
type Config struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Screen     ScreenConfig     `yaml:"screen"`
	Neural     NeuralConfig     `yaml:"neural"`
	Sweeper    SweeperConfig    `yaml:"sweeper"`
	Objects    ObjectsConfig    `yaml:"objects"`
	Genetic    GeneticConfig    `yaml:"genetic"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ArenaConfig holds the testing ground dimensions.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ScreenConfig holds display settings for the graphical mode.
type ScreenConfig struct {
	Width     int `yaml:"width"`  // 0 = arena width
	Height    int `yaml:"height"` // 0 = arena height
	TargetFPS int `yaml:"target_fps"`
}

// NeuralConfig holds the network topology and activation constants.
type NeuralConfig struct {
	NumInputs             int     `yaml:"num_inputs"` // 0 = derive from sensing
	HiddenLayers          int     `yaml:"hidden_layers"`
	NeuronsPerHiddenLayer int     `yaml:"neurons_per_hidden_layer"`
	NumOutputs            int     `yaml:"num_outputs"`
	ActivationResponse    float64 `yaml:"activation_response"`
	Bias                  float64 `yaml:"bias"`
}

// SweeperConfig holds sweeper movement parameters.
type SweeperConfig struct {
	MaxTurnRate  float64 `yaml:"max_turn_rate"`
	MaxSpeed     float64 `yaml:"max_speed"`
	Scale        float64 `yaml:"scale"`
	DefaultTrack float64 `yaml:"default_track"`
}

// ObjectsConfig holds reward and hazard parameters.
type ObjectsConfig struct {
	NumRewards     int     `yaml:"num_rewards"`
	NumHazards     int     `yaml:"num_hazards"`
	RewardScale    float64 `yaml:"reward_scale"`
	HazardScale    float64 `yaml:"hazard_scale"`
	CollisionSlack float64 `yaml:"collision_slack"`
}

// GeneticConfig holds genetic algorithm parameters.
type GeneticConfig struct {
	PopulationSize  int     `yaml:"population_size"`
	CrossoverRate   float64 `yaml:"crossover_rate"`
	MutationRate    float64 `yaml:"mutation_rate"`
	MaxPerturbation float64 `yaml:"max_perturbation"`
	NumElite        int     `yaml:"num_elite"`
	NumCopiesElite  int     `yaml:"num_copies_elite"`
}

// SimulationConfig holds the generation cadence.
type SimulationConfig struct {
	TicksPerGeneration int `yaml:"ticks_per_generation"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	HistorySize int `yaml:"history_size"`
	LogEvery    int `yaml:"log_every"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	HazardsEnabled bool // Objects.NumHazards > 0
	NumInputs      int  // 4 without hazards, 6 with
	ScreenWidth    int
	ScreenHeight   int
}

// SensedInputs returns the sensor vector length for the given hazard setting:
// reward direction and heading, plus hazard direction when hazards are sensed.
func SensedInputs(hazards bool) int {
	if hazards {
		return 6
	}
	return 4
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Prepare(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Prepare recomputes derived values and validates. Call it after editing
// a loaded config in place.
func (c *Config) Prepare() error {
	c.computeDerived()
	return c.Validate()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.HazardsEnabled = c.Objects.NumHazards > 0
	c.Derived.NumInputs = c.Neural.NumInputs
	if c.Derived.NumInputs == 0 {
		c.Derived.NumInputs = SensedInputs(c.Derived.HazardsEnabled)
	}

	c.Derived.ScreenWidth = c.Screen.Width
	if c.Derived.ScreenWidth == 0 {
		c.Derived.ScreenWidth = int(c.Arena.Width)
	}
	c.Derived.ScreenHeight = c.Screen.Height
	if c.Derived.ScreenHeight == 0 {
		c.Derived.ScreenHeight = int(c.Arena.Height)
	}
}

// Validate checks every setting and returns the first violation as an *Error.
func (c *Config) Validate() error {
	type rule struct {
		field  string
		ok     bool
		reason string
	}
	inUnit := func(v float64) bool { return v >= 0 && v <= 1 }

	rules := []rule{
		{"arena.width", c.Arena.Width > 0, "must be positive"},
		{"arena.height", c.Arena.Height > 0, "must be positive"},
		{"neural.hidden_layers", c.Neural.HiddenLayers >= 0, "must not be negative"},
		{"neural.neurons_per_hidden_layer", c.Neural.HiddenLayers == 0 || c.Neural.NeuronsPerHiddenLayer > 0, "must be positive if any hidden layers"},
		{"neural.num_outputs", c.Neural.NumOutputs >= 2, "must be at least 2 (left and right track)"},
		{"neural.activation_response", c.Neural.ActivationResponse != 0, "must be non-zero"},
		{"neural.num_inputs", c.Derived.NumInputs == SensedInputs(c.Derived.HazardsEnabled),
			fmt.Sprintf("must be %d for the configured sensors", SensedInputs(c.Derived.HazardsEnabled))},
		{"sweeper.max_turn_rate", c.Sweeper.MaxTurnRate > 0, "must be positive"},
		{"sweeper.max_speed", c.Sweeper.MaxSpeed > 0, "must be positive"},
		{"sweeper.scale", c.Sweeper.Scale > 0, "must be positive"},
		{"objects.num_rewards", c.Objects.NumRewards > 0, "must be positive"},
		{"objects.num_hazards", c.Objects.NumHazards >= 0, "must not be negative"},
		{"objects.reward_scale", c.Objects.RewardScale > 0, "must be positive"},
		{"objects.hazard_scale", c.Objects.HazardScale > 0, "must be positive"},
		{"objects.collision_slack", c.Objects.CollisionSlack >= 0, "must not be negative"},
		{"genetic.population_size", c.Genetic.PopulationSize > 0, "must be positive"},
		{"genetic.crossover_rate", inUnit(c.Genetic.CrossoverRate), "must be between 0 and 1"},
		{"genetic.mutation_rate", inUnit(c.Genetic.MutationRate), "must be between 0 and 1"},
		{"genetic.max_perturbation", c.Genetic.MaxPerturbation >= 0, "must not be negative"},
		{"genetic.num_elite", c.Genetic.NumElite >= 0, "must not be negative"},
		{"genetic.num_copies_elite", c.Genetic.NumCopiesElite >= 0, "must not be negative"},
		{"simulation.ticks_per_generation", c.Simulation.TicksPerGeneration > 0, "must be positive"},
		{"telemetry.history_size", c.Telemetry.HistorySize > 0, "must be positive"},
	}
	for _, r := range rules {
		if !r.ok {
			return &Error{Field: r.field, Reason: r.reason}
		}
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
