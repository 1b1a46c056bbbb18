// Package game owns the ECS world and drives the simulation loop.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/driftline/evolution/components"
	"github.com/driftline/evolution/config"
	"github.com/driftline/evolution/systems"
	"github.com/driftline/evolution/telemetry"
)

// animationFrames is the tail animation sequence. Frames advance from
// the beginning of the array to the end, then loop.
var animationFrames = [4]uint8{0, 1, 2, 1}

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	// Fish entities: the full component set
	fishMapper *ecs.Map7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Health,
		components.Fish,
		components.Genome,
	]
	fishFilter *ecs.Filter7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Health,
		components.Fish,
		components.Genome,
	]

	// Food and poison entities
	edibleMapper *ecs.Map2[components.Position, components.Edible]
	edibleFilter *ecs.Filter2[components.Position, components.Edible]

	// Individual component mappers for lookups
	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	rotMap    *ecs.Map1[components.Rotation]
	bodyMap   *ecs.Map1[components.Body]
	healthMap *ecs.Map1[components.Health]
	fishMap   *ecs.Map1[components.Fish]
	genomeMap *ecs.Map1[components.Genome]
	edibleMap *ecs.Map1[components.Edible]

	// Spatial indices, rebuilt each tick
	fishGrid   *systems.SpatialGrid
	edibleGrid *systems.SpatialGrid

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	// State
	tick        int32
	paused      bool
	speed       int // simulation ticks per update call (1-10)
	nextID      uint32
	tierCounts  []int
	foodCount   int
	poisonCount int

	// Reused scratch buffer for neighbor queries
	scratch []systems.Neighbor

	// UI state
	showPanel   bool
	showDebug   bool
	selected    ecs.Entity
	hasSelected bool

	opts          Options
	width, height float32
	dt            float32
}

// NewGameWithOptions creates a game instance with the given options.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	g := &Game{
		world:  world,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		width:  cfg.Derived.WorldW32,
		height: cfg.Derived.WorldH32,
		dt:     1.0 / float32(cfg.Screen.TargetFPS),
		speed:  opts.StepsPerUpdate,
		opts:   opts,
		fishMapper: ecs.NewMap7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Health,
			components.Fish,
			components.Genome,
		](world),
		fishFilter: ecs.NewFilter7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Health,
			components.Fish,
			components.Genome,
		](world),
		edibleMapper: ecs.NewMap2[components.Position, components.Edible](world),
		edibleFilter: ecs.NewFilter2[components.Position, components.Edible](world),
		posMap:       ecs.NewMap1[components.Position](world),
		velMap:       ecs.NewMap1[components.Velocity](world),
		rotMap:       ecs.NewMap1[components.Rotation](world),
		bodyMap:      ecs.NewMap1[components.Body](world),
		healthMap:    ecs.NewMap1[components.Health](world),
		fishMap:      ecs.NewMap1[components.Fish](world),
		genomeMap:    ecs.NewMap1[components.Genome](world),
		edibleMap:    ecs.NewMap1[components.Edible](world),
		tierCounts:   make([]int, cfg.Fish.FoodChainLinks),
	}

	cellSize := float32(cfg.Physics.GridCellSize)
	g.fishGrid = systems.NewSpatialGrid(g.width, g.height, cellSize)
	g.edibleGrid = systems.NewSpatialGrid(g.width, g.height, cellSize)

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, 1.0/float64(cfg.Screen.TargetFPS))
	g.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output directory", "dir", opts.OutputDir, "error", err)
	} else {
		g.output = output
		if err := g.output.WriteConfig(cfg); err != nil {
			slog.Error("failed to snapshot config", "error", err)
		}
	}

	g.spawnInitialPopulation()

	return g
}

// config returns the global configuration.
func (g *Game) config() *config.Config {
	return config.Cfg()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// UpdateHeadless runs simulation steps without touching any raylib state.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.speed; i++ {
		g.simulationStep()
	}
}

// Update handles input and runs simulation steps for one frame.
func (g *Game) Update() {
	g.handleInput()
	g.perf.RecordFrame()

	if g.paused {
		return
	}

	for i := 0; i < g.speed; i++ {
		g.simulationStep()
	}
}

// Unload releases output files. Safe to call on a partially constructed game.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}
