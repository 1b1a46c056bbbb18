// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Range is an inclusive [min, max] pair. In YAML it is written as a
// two-element sequence, e.g. `scale_range: [0.5, 1.5]`.
type Range struct {
	Min float64
	Max float64
}

// UnmarshalYAML decodes a two-element sequence into the range.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var pair []float64
	if err := node.Decode(&pair); err != nil {
		return fmt.Errorf("range must be a [min, max] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("range must have exactly 2 elements, got %d", len(pair))
	}
	r.Min = pair[0]
	r.Max = pair[1]
	return nil
}

// MarshalYAML encodes the range as a flow-style two-element sequence.
func (r Range) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	if err := node.Encode([]float64{r.Min, r.Max}); err != nil {
		return nil, err
	}
	return node, nil
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Fish      FishConfig      `yaml:"fish"`
	Food      FoodConfig      `yaml:"food"`
	Poison    PoisonConfig    `yaml:"poison"`
	Health    HealthConfig    `yaml:"health"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Mutation  MutationConfig  `yaml:"mutation"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Fullscreen      bool    `yaml:"fullscreen"`
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	ShowFPS         bool    `yaml:"show_fps"`
	TargetFPS       int     `yaml:"target_fps"`
	BoundaryPadding float64 `yaml:"boundary_padding"` // steer-back margin from window edges
}

// FishConfig holds fish population parameters.
type FishConfig struct {
	Quantity                int     `yaml:"quantity"`
	EatingRadius            float64 `yaml:"eating_radius"` // base eat reach, multiplied by fish scale
	ScaleRange              Range   `yaml:"scale_range"`
	MaxSpeedRange           Range   `yaml:"max_speed_range"`
	MaxSteeringForceRange   Range   `yaml:"max_steering_force_range"`
	FoodChainLinks          int     `yaml:"food_chain_links"` // number of predator/prey tiers
	FramesPerAnimationFrame float64 `yaml:"frames_per_animation_frame"`
	CloneChance             float64 `yaml:"clone_chance"` // per-tick reproduction probability
	MinPerTier              int     `yaml:"min_per_tier"` // respawn floor per tier
}

// FoodConfig holds food population parameters.
type FoodConfig struct {
	Quantity    int     `yaml:"quantity"`
	RadiusRange Range   `yaml:"radius_range"`
	HealthGain  float64 `yaml:"health_gain"`
	SpawnChance float64 `yaml:"spawn_chance"` // per-tick replenish probability while below quantity
}

// PoisonConfig holds poison population parameters.
type PoisonConfig struct {
	Quantity    int     `yaml:"quantity"`
	RadiusRange Range   `yaml:"radius_range"`
	HealthLoss  float64 `yaml:"health_loss"`
	SpawnChance float64 `yaml:"spawn_chance"`
}

// HealthConfig holds health economy parameters.
type HealthConfig struct {
	Initial       float64 `yaml:"initial"`
	DecayPerTick  float64 `yaml:"decay_per_tick"`
	PredationBite float64 `yaml:"predation_bite"` // health transferred per predator bite
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	GridCellSize float64 `yaml:"grid_cell_size"`
}

// MutationConfig holds mutation parameters for cloning.
type MutationConfig struct {
	Rate     float64 `yaml:"rate"`
	Sigma    float64 `yaml:"sigma"`
	BigRate  float64 `yaml:"big_rate"`
	BigSigma float64 `yaml:"big_sigma"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW32  float32 // Screen.Width as float32
	WorldH32  float32 // Screen.Height as float32
	Padding32 float32 // Screen.BoundaryPadding as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen: dimensions must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("screen: target_fps must be positive, got %d", c.Screen.TargetFPS)
	}
	if c.Fish.FoodChainLinks < 1 {
		return fmt.Errorf("fish: food_chain_links must be at least 1, got %d", c.Fish.FoodChainLinks)
	}
	if c.Fish.Quantity < 0 || c.Food.Quantity < 0 || c.Poison.Quantity < 0 {
		return fmt.Errorf("population quantities must not be negative")
	}
	if c.Mutation.Rate < 0 || c.Mutation.Rate > 1 {
		return fmt.Errorf("mutation: rate must be in [0, 1], got %v", c.Mutation.Rate)
	}
	if c.Physics.GridCellSize <= 0 {
		return fmt.Errorf("physics: grid_cell_size must be positive, got %v", c.Physics.GridCellSize)
	}
	for _, rc := range []struct {
		name string
		r    Range
	}{
		{"fish.scale_range", c.Fish.ScaleRange},
		{"fish.max_speed_range", c.Fish.MaxSpeedRange},
		{"fish.max_steering_force_range", c.Fish.MaxSteeringForceRange},
		{"food.radius_range", c.Food.RadiusRange},
		{"poison.radius_range", c.Poison.RadiusRange},
	} {
		if rc.r.Min > rc.r.Max {
			return fmt.Errorf("%s: min %v exceeds max %v", rc.name, rc.r.Min, rc.r.Max)
		}
		if rc.r.Min < 0 {
			return fmt.Errorf("%s: min must not be negative, got %v", rc.name, rc.r.Min)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldW32 = float32(c.Screen.Width)
	c.Derived.WorldH32 = float32(c.Screen.Height)
	c.Derived.Padding32 = float32(c.Screen.BoundaryPadding)
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
