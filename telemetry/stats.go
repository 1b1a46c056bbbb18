// Package telemetry collects simulation statistics and writes them to
// structured logs and CSV files.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	FishCount   int `csv:"fish"`
	FoodCount   int `csv:"food"`
	PoisonCount int `csv:"poison"`

	// Events during window
	Births         int `csv:"births"`
	DeathsStarved  int `csv:"deaths_starved"`
	DeathsPoisoned int `csv:"deaths_poisoned"`
	DeathsEaten    int `csv:"deaths_eaten"`

	// Feeding
	FoodEaten   int `csv:"food_eaten"`
	PoisonEaten int `csv:"poison_eaten"`
	Bites       int `csv:"bites"`
	Kills       int `csv:"kills"`

	// Health distribution (sampled at window end)
	HealthMean float64 `csv:"health_mean"`
	HealthP10  float64 `csv:"health_p10"`
	HealthP50  float64 `csv:"health_p50"`
	HealthP90  float64 `csv:"health_p90"`

	// Gene distributions: the evolution signal. Food weight should
	// drift positive and poison weight negative in a healthy run.
	FoodWeightMean     float64 `csv:"food_weight_mean"`
	FoodWeightStd      float64 `csv:"food_weight_std"`
	PoisonWeightMean   float64 `csv:"poison_weight_mean"`
	PoisonWeightStd    float64 `csv:"poison_weight_std"`
	PredatorWeightMean float64 `csv:"predator_weight_mean"`
	FoodPerceptionMean float64 `csv:"food_perception_mean"`
}

// DistStats computes mean and the 10th/50th/90th percentiles of the
// given values. Returns zeros for an empty slice.
func DistStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, p10, p50, p90
}

// MeanStd computes mean and sample standard deviation.
// A slice with fewer than two values has zero deviation.
func MeanStd(values []float64) (mean, std float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}
	if n == 1 {
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("fish", s.FishCount),
		slog.Int("food", s.FoodCount),
		slog.Int("poison", s.PoisonCount),
		slog.Int("births", s.Births),
		slog.Int("deaths_starved", s.DeathsStarved),
		slog.Int("deaths_poisoned", s.DeathsPoisoned),
		slog.Int("deaths_eaten", s.DeathsEaten),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Int("poison_eaten", s.PoisonEaten),
		slog.Int("bites", s.Bites),
		slog.Int("kills", s.Kills),
		slog.Float64("health_mean", s.HealthMean),
		slog.Float64("health_p10", s.HealthP10),
		slog.Float64("health_p50", s.HealthP50),
		slog.Float64("health_p90", s.HealthP90),
		slog.Float64("food_weight_mean", s.FoodWeightMean),
		slog.Float64("food_weight_std", s.FoodWeightStd),
		slog.Float64("poison_weight_mean", s.PoisonWeightMean),
		slog.Float64("poison_weight_std", s.PoisonWeightStd),
		slog.Float64("predator_weight_mean", s.PredatorWeightMean),
		slog.Float64("food_perception_mean", s.FoodPerceptionMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"fish", s.FishCount,
		"food", s.FoodCount,
		"poison", s.PoisonCount,
		"births", s.Births,
		"deaths_starved", s.DeathsStarved,
		"deaths_poisoned", s.DeathsPoisoned,
		"deaths_eaten", s.DeathsEaten,
		"food_eaten", s.FoodEaten,
		"poison_eaten", s.PoisonEaten,
		"bites", s.Bites,
		"kills", s.Kills,
		"health_mean", s.HealthMean,
		"health_p10", s.HealthP10,
		"health_p50", s.HealthP50,
		"health_p90", s.HealthP90,
		"food_weight_mean", s.FoodWeightMean,
		"food_weight_std", s.FoodWeightStd,
		"poison_weight_mean", s.PoisonWeightMean,
		"poison_weight_std", s.PoisonWeightStd,
		"predator_weight_mean", s.PredatorWeightMean,
		"food_perception_mean", s.FoodPerceptionMean,
	)
}
