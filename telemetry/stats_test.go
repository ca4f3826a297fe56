package telemetry

import (
	"log/slog"
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeFitnessStats(t *testing.T) {
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	std, p10, p50, p90 := ComputeFitnessStats(values)

	// population std of 1..10
	if math.Abs(std-math.Sqrt(8.25)) > 0.001 {
		t.Errorf("std = %v, want %v", std, math.Sqrt(8.25))
	}
	if math.Abs(p10-1.9) > 0.001 || math.Abs(p50-5.5) > 0.001 || math.Abs(p90-9.1) > 0.001 {
		t.Errorf("percentiles = %v %v %v, want 1.9 5.5 9.1", p10, p50, p90)
	}
	if values[0] != 10 {
		t.Error("input slice was reordered")
	}
}

func TestComputeFitnessStatsPopulationStdDev(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"single", []float64{7}, 0},
		{"constant", []float64{3, 3, 3}, 0},
		{"textbook", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			std, _, _, _ := ComputeFitnessStats(tt.values)
			if math.Abs(std-tt.want) > 1e-9 {
				t.Errorf("std = %v, want %v", std, tt.want)
			}
		})
	}
}

func TestComputeFitnessStatsEmpty(t *testing.T) {
	std, p10, p50, p90 := ComputeFitnessStats(nil)
	if std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestGenerationStatsLogValue(t *testing.T) {
	s := GenerationStats{Generation: 3, Best: 12, Average: 4.5}
	v := s.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("kind = %v, want group", v.Kind())
	}
	found := false
	for _, a := range v.Group() {
		if a.Key == "best" {
			found = true
			if a.Value.Float64() != 12 {
				t.Errorf("best = %v, want 12", a.Value.Float64())
			}
		}
	}
	if !found {
		t.Error("best attribute missing")
	}
}
