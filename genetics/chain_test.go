package genetics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/driftline/evolution/config"
)

func TestInverseMapRange(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		range1 config.Range
		range2 config.Range
		want   float64
	}{
		{"interior point", 1.0, config.Range{Min: 0, Max: 3}, config.Range{Min: 3, Max: 12}, 9.0},
		{"low end maps to high", 0.0, config.Range{Min: 0, Max: 1}, config.Range{Min: 2, Max: 5}, 5.0},
		{"high end maps to low", 1.0, config.Range{Min: 0, Max: 1}, config.Range{Min: 2, Max: 5}, 2.0},
		{"midpoint maps to midpoint", 0.5, config.Range{Min: 0, Max: 1}, config.Range{Min: 2, Max: 5}, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InverseMapRange(tt.value, tt.range1, tt.range2)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("InverseMapRange(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestRollAttributesTierBands(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	scaleRange := config.Range{Min: 0.5, Max: 1.5}
	speedRange := config.Range{Min: 2.0, Max: 5.0}
	forceRange := config.Range{Min: 0.05, Max: 0.3}
	links := 3

	for tier := 0; tier < links; tier++ {
		t0 := float64(tier) / float64(links)
		t1 := float64(tier+1) / float64(links)

		scaleLo := float32(scaleRange.Min + t0*scaleRange.Span())
		scaleHi := float32(scaleRange.Min + t1*scaleRange.Span())
		speedHi := float32(speedRange.Max - t0*speedRange.Span())
		speedLo := float32(speedRange.Max - t1*speedRange.Span())

		for trial := 0; trial < 200; trial++ {
			a := RollAttributes(rng, tier, links, scaleRange, speedRange, forceRange)

			if a.Scale < scaleLo || a.Scale > scaleHi {
				t.Fatalf("tier %d scale %v outside band [%v, %v]", tier, a.Scale, scaleLo, scaleHi)
			}
			if a.MaxSpeed < speedLo || a.MaxSpeed > speedHi {
				t.Fatalf("tier %d speed %v outside band [%v, %v]", tier, a.MaxSpeed, speedLo, speedHi)
			}
			if a.MaxForce < float32(forceRange.Min) || a.MaxForce > float32(forceRange.Max) {
				t.Fatalf("tier %d force %v outside range", tier, a.MaxForce)
			}
		}
	}
}

func TestRollAttributesHigherTiersLargerAndSlower(t *testing.T) {
	rng := rand.New(rand.NewSource(8))

	scaleRange := config.Range{Min: 0.5, Max: 1.5}
	speedRange := config.Range{Min: 2.0, Max: 5.0}
	forceRange := config.Range{Min: 0.05, Max: 0.3}

	bottom := RollAttributes(rng, 0, 3, scaleRange, speedRange, forceRange)
	top := RollAttributes(rng, 2, 3, scaleRange, speedRange, forceRange)

	if top.Scale <= bottom.Scale {
		t.Errorf("top tier scale %v not larger than bottom tier %v", top.Scale, bottom.Scale)
	}
	if top.MaxSpeed >= bottom.MaxSpeed {
		t.Errorf("top tier speed %v not slower than bottom tier %v", top.MaxSpeed, bottom.MaxSpeed)
	}
}

func TestRollAttributesSingleLink(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	scaleRange := config.Range{Min: 1.0, Max: 2.0}
	speedRange := config.Range{Min: 3.0, Max: 4.0}
	forceRange := config.Range{Min: 0.1, Max: 0.2}

	// With one link the whole range is the band; out-of-range tiers clamp.
	for _, tier := range []int{0, 5} {
		a := RollAttributes(rng, tier, 1, scaleRange, speedRange, forceRange)
		if a.Scale < 1.0 || a.Scale > 2.0 {
			t.Errorf("tier %d scale %v outside full range", tier, a.Scale)
		}
		if a.MaxSpeed < 3.0 || a.MaxSpeed > 4.0 {
			t.Errorf("tier %d speed %v outside full range", tier, a.MaxSpeed)
		}
	}
}
