package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/sweepers/config"
	"github.com/pthm-cable/sweepers/telemetry"
)

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Default())
	want := pv.DefaultVector()
	for i, spec := range pv.Specs {
		if got[i] != want[i] {
			t.Errorf("%s: config default %v, spec default %v", spec.Name, got[i], want[i])
		}
	}
}

func TestNormalizeInverse(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestApplyToConfigStaysValid(t *testing.T) {
	pv := NewParamVector()
	tests := []struct {
		name   string
		values []float64
	}{
		{"defaults", pv.DefaultVector()},
		{"below bounds", []float64{-1, -1, -1, -5, -3, -1}},
		{"above bounds", []float64{9, 9, 9, 99, 99, 9}},
		{"odd elite", []float64{0.1, 0.7, 0.3, 3.2, 6, 0.3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			pv.ApplyToConfig(cfg, tt.values)
			if err := cfg.Prepare(); err != nil {
				t.Fatalf("Prepare: %v", err)
			}
			if (cfg.Genetic.NumElite*cfg.Genetic.NumCopiesElite)%2 != 0 {
				t.Errorf("elite product %d×%d is odd", cfg.Genetic.NumElite, cfg.Genetic.NumCopiesElite)
			}
		})
	}
}

func TestRoundEven(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0}, {0.9, 0}, {1.1, 2}, {3.2, 4}, {4.9, 4}, {10, 10},
	}
	for _, tt := range tests {
		if got := roundEven(tt.in); got != tt.want {
			t.Errorf("roundEven(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTailAverage(t *testing.T) {
	records := []telemetry.GenerationStats{{Average: 1}, {Average: 2}, {Average: 4}, {Average: 6}}
	if got := tailAverage(records, 2); got != 5 {
		t.Errorf("tailAverage(2) = %v, want 5", got)
	}
	if got := tailAverage(records, 10); got != 3.25 {
		t.Errorf("tailAverage(10) = %v, want 3.25", got)
	}
	if got := tailAverage(nil, 3); got != 0 {
		t.Errorf("tailAverage(nil) = %v, want 0", got)
	}
}

func TestEvaluateSmallRun(t *testing.T) {
	base := config.Default()
	base.Genetic.PopulationSize = 4
	base.Simulation.TicksPerGeneration = 20
	if err := base.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 2, []int64{1, 2}, base)
	fitness := fe.Evaluate(pv.DefaultVector())
	if math.IsInf(fitness, 0) || math.IsNaN(fitness) || fitness > 0 {
		t.Errorf("fitness = %v, want finite and <= 0", fitness)
	}
	if len(fe.BestRecords()) != 2 {
		t.Errorf("best records = %d, want 2", len(fe.BestRecords()))
	}
}
