package config

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// LoadParams reads a legacy whitespace-delimited parameter file, one
// "name value" pair per line (for example "iNumTicks 2000"), and applies
// the recognised names on top of the embedded defaults.
// Unknown names are ignored, as are lines that are not exactly one name and
// one value; a malformed value is an error.
func LoadParams(path string) (*Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters:      " \t",
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load parameter file '%s': %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	ints := map[string]*int{
		"iFramesPerSecond":       &cfg.Screen.TargetFPS,
		"iNumInputs":             &cfg.Neural.NumInputs,
		"iNumHidden":             &cfg.Neural.HiddenLayers,
		"iNeuronsPerHiddenLayer": &cfg.Neural.NeuronsPerHiddenLayer,
		"iNumOutputs":            &cfg.Neural.NumOutputs,
		"iNumMines":              &cfg.Objects.NumRewards,
		"iNumObstacles":          &cfg.Objects.NumHazards,
		"iNumSweepers":           &cfg.Genetic.PopulationSize,
		"iNumTicks":              &cfg.Simulation.TicksPerGeneration,
		"iNumElite":              &cfg.Genetic.NumElite,
		"iNumCopiesElite":        &cfg.Genetic.NumCopiesElite,
		"iWindowWidth":           &cfg.Screen.Width,
		"iWindowHeight":          &cfg.Screen.Height,
	}
	floats := map[string]*float64{
		"dActivationResponse": &cfg.Neural.ActivationResponse,
		"dBias":               &cfg.Neural.Bias,
		"dMaxTurnRate":        &cfg.Sweeper.MaxTurnRate,
		"dMaxSpeed":           &cfg.Sweeper.MaxSpeed,
		"dMineScale":          &cfg.Objects.RewardScale,
		"dObstacleScale":      &cfg.Objects.HazardScale,
		"dCrossoverRate":      &cfg.Genetic.CrossoverRate,
		"dMutationRate":       &cfg.Genetic.MutationRate,
		"dMaxPerturbation":    &cfg.Genetic.MaxPerturbation,
	}

	sec := file.Section(ini.DefaultSection)
	has := func(name string) bool {
		return sec.HasKey(name) && len(strings.Fields(sec.Key(name).String())) == 1
	}
	for name, dst := range ints {
		if !has(name) {
			continue
		}
		v, err := sec.Key(name).Int()
		if err != nil {
			return nil, &Error{Field: name, Reason: fmt.Sprintf("could not be parsed to integer: %v", err)}
		}
		*dst = v
	}
	for name, dst := range floats {
		if !has(name) {
			continue
		}
		v, err := sec.Key(name).Float64()
		if err != nil {
			return nil, &Error{Field: name, Reason: fmt.Sprintf("could not be parsed to float: %v", err)}
		}
		*dst = v
	}
	if has("iSweeperScale") {
		v, err := sec.Key("iSweeperScale").Float64()
		if err != nil {
			return nil, &Error{Field: "iSweeperScale", Reason: fmt.Sprintf("could not be parsed to number: %v", err)}
		}
		cfg.Sweeper.Scale = v
	}
	// Older files scale speed directly: speed = (l+r)*iSpeedScale.
	if has("iSpeedScale") {
		v, err := sec.Key("iSpeedScale").Float64()
		if err != nil {
			return nil, &Error{Field: "iSpeedScale", Reason: fmt.Sprintf("could not be parsed to number: %v", err)}
		}
		cfg.Sweeper.MaxSpeed = 2 * v
	}

	// Legacy files without an obstacle count imply it from the sensor count:
	// 4 inputs sense no hazards, 6 inputs place as many hazards as mines.
	if !has("iNumObstacles") && has("iNumInputs") {
		switch cfg.Neural.NumInputs {
		case SensedInputs(false):
			cfg.Objects.NumHazards = 0
		case SensedInputs(true):
			cfg.Objects.NumHazards = cfg.Objects.NumRewards
		}
	}

	// The window is the testing ground in the legacy format.
	if cfg.Screen.Width > 0 {
		cfg.Arena.Width = float64(cfg.Screen.Width)
	}
	if cfg.Screen.Height > 0 {
		cfg.Arena.Height = float64(cfg.Screen.Height)
	}

	if err := cfg.Prepare(); err != nil {
		return nil, err
	}
	return cfg, nil
}
