package telemetry

import (
	"math"
	"testing"
)

func TestDistStats(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, p10, p50, p90 := DistStats(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}

	// Empirical quantiles on 10 evenly spaced values land on the values.
	if math.Abs(p10-0.1) > 0.001 {
		t.Errorf("p10 = %v, want 0.1", p10)
	}
	if math.Abs(p50-0.5) > 0.001 {
		t.Errorf("p50 = %v, want 0.5", p50)
	}
	if math.Abs(p90-0.9) > 0.001 {
		t.Errorf("p90 = %v, want 0.9", p90)
	}
}

func TestDistStatsUnsortedInput(t *testing.T) {
	sortedIn := []float64{1, 2, 3, 4, 5}
	shuffled := []float64{4, 1, 5, 2, 3}

	m1, a1, b1, c1 := DistStats(sortedIn)
	m2, a2, b2, c2 := DistStats(shuffled)

	if m1 != m2 || a1 != a2 || b1 != b2 || c1 != c2 {
		t.Error("DistStats depends on input order")
	}

	// Input must not be mutated.
	if shuffled[0] != 4 {
		t.Error("DistStats sorted its input in place")
	}
}

func TestDistStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := DistStats(nil)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestMeanStd(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantStd  float64
	}{
		{"empty", nil, 0, 0},
		{"single value", []float64{2.5}, 2.5, 0},
		{"constant", []float64{1, 1, 1, 1}, 1, 0},
		{"known spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, 2.13809},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := MeanStd(tt.values)
			if math.Abs(mean-tt.wantMean) > 0.001 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if math.Abs(std-tt.wantStd) > 0.001 {
				t.Errorf("std = %v, want %v", std, tt.wantStd)
			}
		})
	}
}
