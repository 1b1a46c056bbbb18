package genetics

import (
	"math/rand"

	"github.com/driftline/evolution/config"
)

// InverseMapRange maps value from range1 into range2 reversed: the low
// end of range1 lands on the high end of range2.
func InverseMapRange(value float64, range1, range2 config.Range) float64 {
	return range2.Max - range2.Span()*((value-range1.Min)/range1.Span())
}

// Attributes holds the physical stats rolled for a fish of a given
// food chain tier.
type Attributes struct {
	Scale    float32
	MaxSpeed float32
	MaxForce float32
}

// RollAttributes draws scale, max speed and max steering force for a
// fish on the given food chain link. The configured population ranges
// are split into one band per link: higher tiers get the large end of
// the scale range and, via InverseMapRange, the slow end of the speed
// and force ranges. Values are uniform within the tier's band.
func RollAttributes(rng *rand.Rand, tier, links int, scaleRange, speedRange, forceRange config.Range) Attributes {
	if links < 1 {
		links = 1
	}
	if tier >= links {
		tier = links - 1
	}

	t0 := float64(tier) / float64(links)
	t1 := float64(tier+1) / float64(links)

	unit := config.Range{Min: 0, Max: 1}

	scaleLo := scaleRange.Min + t0*scaleRange.Span()
	scaleHi := scaleRange.Min + t1*scaleRange.Span()

	// Speed and force bands run the other way: big fish are slow and
	// turn poorly.
	speedHi := InverseMapRange(t0, unit, speedRange)
	speedLo := InverseMapRange(t1, unit, speedRange)
	forceHi := InverseMapRange(t0, unit, forceRange)
	forceLo := InverseMapRange(t1, unit, forceRange)

	return Attributes{
		Scale:    uniform(rng, scaleLo, scaleHi),
		MaxSpeed: uniform(rng, speedLo, speedHi),
		MaxForce: uniform(rng, forceLo, forceHi),
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float32 {
	return float32(lo + rng.Float64()*(hi-lo))
}
