package telemetry

import (
	"math"

	"github.com/driftline/evolution/components"
)

// PopulationSnapshot holds per-window samples taken from the living
// population at flush time.
type PopulationSnapshot struct {
	FishCount   int
	FoodCount   int
	PoisonCount int

	Health          []float64
	FoodWeights     []float64
	PoisonWeights   []float64
	PredatorWeights []float64
	FoodPerceptions []float64
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	births         int
	deathsStarved  int
	deathsPoisoned int
	deathsEaten    int
	foodEaten      int
	poisonEaten    int
	bites          int
	kills          int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
// dt is kept in float64 so window boundaries and sim time stay exact;
// the ratio is rounded so a dt that arrived through float32 still
// lands on the intended tick count.
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordBirth records a cloning event.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a death with its cause.
func (c *Collector) RecordDeath(cause components.DeathCause) {
	switch cause {
	case components.DeathStarved:
		c.deathsStarved++
	case components.DeathPoisoned:
		c.deathsPoisoned++
	case components.DeathEaten:
		c.deathsEaten++
	}
}

// RecordFoodEaten records a consumed piece of food.
func (c *Collector) RecordFoodEaten() {
	c.foodEaten++
}

// RecordPoisonEaten records a consumed piece of poison.
func (c *Collector) RecordPoisonEaten() {
	c.poisonEaten++
}

// RecordBite records a predator bite on a lower-tier fish.
func (c *Collector) RecordBite() {
	c.bites++
}

// RecordKill records a bite that killed its target.
func (c *Collector) RecordKill() {
	c.kills++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush builds the WindowStats for the completed window from the event
// counters and the given population snapshot, then resets for the next
// window.
func (c *Collector) Flush(currentTick int32, snap PopulationSnapshot) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		FishCount:   snap.FishCount,
		FoodCount:   snap.FoodCount,
		PoisonCount: snap.PoisonCount,

		Births:         c.births,
		DeathsStarved:  c.deathsStarved,
		DeathsPoisoned: c.deathsPoisoned,
		DeathsEaten:    c.deathsEaten,

		FoodEaten:   c.foodEaten,
		PoisonEaten: c.poisonEaten,
		Bites:       c.bites,
		Kills:       c.kills,
	}

	stats.HealthMean, stats.HealthP10, stats.HealthP50, stats.HealthP90 = DistStats(snap.Health)
	stats.FoodWeightMean, stats.FoodWeightStd = MeanStd(snap.FoodWeights)
	stats.PoisonWeightMean, stats.PoisonWeightStd = MeanStd(snap.PoisonWeights)
	stats.PredatorWeightMean, _ = MeanStd(snap.PredatorWeights)
	stats.FoodPerceptionMean, _ = MeanStd(snap.FoodPerceptions)

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.deathsStarved = 0
	c.deathsPoisoned = 0
	c.deathsEaten = 0
	c.foodEaten = 0
	c.poisonEaten = 0
	c.bites = 0
	c.kills = 0

	return stats
}
