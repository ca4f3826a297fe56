package main

import (
	"github.com/pthm-cable/sweepers/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // rounded before use
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "mutation_rate", Path: "genetic.mutation_rate", Min: 0.01, Max: 0.5, Default: 0.1},
			{Name: "crossover_rate", Path: "genetic.crossover_rate", Min: 0.0, Max: 1.0, Default: 0.7},
			{Name: "max_perturbation", Path: "genetic.max_perturbation", Min: 0.01, Max: 1.0, Default: 0.3},
			{Name: "num_elite", Path: "genetic.num_elite", Min: 0, Max: 10, Default: 4, Integer: true},
			{Name: "neurons_per_hidden_layer", Path: "neural.neurons_per_hidden_layer", Min: 2, Max: 16, Default: 6, Integer: true},
			{Name: "max_turn_rate", Path: "sweeper.max_turn_rate", Min: 0.05, Max: 1.0, Default: 0.3},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Genetic.MutationRate = clamped[0]
	cfg.Genetic.CrossoverRate = clamped[1]
	cfg.Genetic.MaxPerturbation = clamped[2]
	// elitism needs an even elite product; one copy each keeps the count free
	cfg.Genetic.NumElite = roundEven(clamped[3])
	cfg.Genetic.NumCopiesElite = 1
	cfg.Neural.NeuronsPerHiddenLayer = int(clamped[4] + 0.5)
	cfg.Sweeper.MaxTurnRate = clamped[5]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Genetic.MutationRate,
		cfg.Genetic.CrossoverRate,
		cfg.Genetic.MaxPerturbation,
		float64(cfg.Genetic.NumElite),
		float64(cfg.Neural.NeuronsPerHiddenLayer),
		cfg.Sweeper.MaxTurnRate,
	}
}

// roundEven rounds x to the nearest even integer.
func roundEven(x float64) int {
	return 2 * int(x/2+0.5)
}
