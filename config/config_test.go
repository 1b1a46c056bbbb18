package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}

	if cfg.Screen.Width <= 0 || cfg.Screen.Height <= 0 {
		t.Errorf("default screen dimensions invalid: %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Fish.Quantity <= 0 {
		t.Errorf("default fish quantity = %d, want > 0", cfg.Fish.Quantity)
	}
	if cfg.Fish.FoodChainLinks < 1 {
		t.Errorf("default food_chain_links = %d, want >= 1", cfg.Fish.FoodChainLinks)
	}
	if cfg.Fish.ScaleRange.Min > cfg.Fish.ScaleRange.Max {
		t.Errorf("default scale_range inverted: %+v", cfg.Fish.ScaleRange)
	}
}

func TestLoadDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}

	if cfg.Derived.WorldW32 != float32(cfg.Screen.Width) {
		t.Errorf("WorldW32 = %v, want %v", cfg.Derived.WorldW32, cfg.Screen.Width)
	}
	if cfg.Derived.WorldH32 != float32(cfg.Screen.Height) {
		t.Errorf("WorldH32 = %v, want %v", cfg.Derived.WorldH32, cfg.Screen.Height)
	}
	if cfg.Derived.Padding32 != float32(cfg.Screen.BoundaryPadding) {
		t.Errorf("Padding32 = %v, want %v", cfg.Derived.Padding32, cfg.Screen.BoundaryPadding)
	}
}

func TestLoadUserOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	// Override only a couple of fields; everything else should keep defaults.
	user := `
fish:
  quantity: 7
  scale_range: [0.8, 1.2]
screen:
  fullscreen: true
`
	if err := os.WriteFile(path, []byte(user), 0644); err != nil {
		t.Fatalf("writing user config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) returned error: %v", path, err)
	}

	if cfg.Fish.Quantity != 7 {
		t.Errorf("fish quantity = %d, want 7", cfg.Fish.Quantity)
	}
	if !cfg.Screen.Fullscreen {
		t.Error("fullscreen override not applied")
	}
	if cfg.Fish.ScaleRange.Min != 0.8 || cfg.Fish.ScaleRange.Max != 1.2 {
		t.Errorf("scale_range = %+v, want [0.8, 1.2]", cfg.Fish.ScaleRange)
	}

	// Untouched field keeps its default.
	defaults, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if cfg.Food.Quantity != defaults.Food.Quantity {
		t.Errorf("food quantity changed by unrelated override: %d != %d", cfg.Food.Quantity, defaults.Food.Quantity)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Screen.Width = 0 }},
		{"zero target fps", func(c *Config) { c.Screen.TargetFPS = 0 }},
		{"zero chain links", func(c *Config) { c.Fish.FoodChainLinks = 0 }},
		{"negative food quantity", func(c *Config) { c.Food.Quantity = -1 }},
		{"mutation rate above 1", func(c *Config) { c.Mutation.Rate = 1.5 }},
		{"inverted scale range", func(c *Config) { c.Fish.ScaleRange = Range{Min: 2, Max: 1} }},
		{"negative radius range", func(c *Config) { c.Food.RadiusRange = Range{Min: -1, Max: 2} }},
		{"zero grid cell size", func(c *Config) { c.Physics.GridCellSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load(\"\") returned error: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestRangeUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Range
		wantErr bool
	}{
		{"pair", "[1.5, 3.0]", Range{Min: 1.5, Max: 3.0}, false},
		{"integers", "[1, 3]", Range{Min: 1, Max: 3}, false},
		{"single element", "[1.0]", Range{}, true},
		{"three elements", "[1, 2, 3]", Range{}, true},
		{"not a sequence", "foo", Range{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Range
			err := yaml.Unmarshal([]byte(tt.yaml), &r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && r != tt.want {
				t.Errorf("got %+v, want %+v", r, tt.want)
			}
		})
	}
}

func TestRangeMarshalRoundTrip(t *testing.T) {
	in := Range{Min: 0.5, Max: 1.5}
	data, err := yaml.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Range
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("round trip: got %+v, want %+v", out, in)
	}
}

func TestWriteYAML(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	// Written snapshot must load back cleanly.
	back, err := Load(path)
	if err != nil {
		t.Fatalf("loading written config: %v", err)
	}
	if back.Fish.Quantity != cfg.Fish.Quantity {
		t.Errorf("fish quantity = %d after round trip, want %d", back.Fish.Quantity, cfg.Fish.Quantity)
	}
	if back.Fish.ScaleRange != cfg.Fish.ScaleRange {
		t.Errorf("scale_range = %+v after round trip, want %+v", back.Fish.ScaleRange, cfg.Fish.ScaleRange)
	}
}
