// Package genetics defines the heritable genome of a fish and the
// mutation operator applied when a fish clones itself.
package genetics

import "math/rand"

// Gene indices into a DNA vector.
const (
	GeneFoodWeight = iota // steering weight toward the nearest food
	GenePoisonWeight      // steering weight toward the nearest poison
	GenePreyWeight        // steering weight toward lower-tier fish
	GenePredatorWeight    // steering weight away from higher-tier fish
	GeneFoodPerception    // perception radius for food and poison
	GenePredatorPerception // perception radius for other fish

	NumGenes
)

// DNA is a fixed vector of steering genes. Weights may be negative: a
// fish can evolve attraction to poison or indifference to predators.
type DNA [NumGenes]float32

// geneBounds clamp each gene after mutation. Weight genes live in
// [-2, 2]; perception genes are world distances.
var geneBounds = [NumGenes][2]float32{
	GeneFoodWeight:         {-2, 2},
	GenePoisonWeight:       {-2, 2},
	GenePreyWeight:         {-2, 2},
	GenePredatorWeight:     {-2, 2},
	GeneFoodPerception:     {10, 150},
	GenePredatorPerception: {10, 200},
}

// geneNames are the telemetry column names, indexed by gene.
var geneNames = [NumGenes]string{
	"food_weight",
	"poison_weight",
	"prey_weight",
	"predator_weight",
	"food_perception",
	"predator_perception",
}

// GeneName returns the telemetry name for a gene index.
func GeneName(i int) string {
	return geneNames[i]
}

// Random returns a fresh genome with weights drawn uniformly from each
// gene's bounds.
func Random(rng *rand.Rand) DNA {
	var d DNA
	for i := range d {
		lo, hi := geneBounds[i][0], geneBounds[i][1]
		d[i] = lo + rng.Float32()*(hi-lo)
	}
	return d
}

// Clone returns a copy of the genome. DNA is a value type, so the copy
// shares no storage with the parent.
func (d DNA) Clone() DNA {
	return d
}

// Mutate perturbs genes in place with sparse gaussian noise. Each gene
// independently mutates with probability rate (sigma-scaled) and with
// probability bigRate receives a large jump (bigSigma-scaled). Sigma is
// relative to the gene's bound span, so perception genes drift on a
// world-distance scale while weight genes drift on a unit scale.
func (d *DNA) Mutate(rng *rand.Rand, rate, sigma, bigRate, bigSigma float64) {
	for i := range d {
		lo, hi := geneBounds[i][0], geneBounds[i][1]
		span := float64(hi - lo)

		roll := rng.Float64()
		switch {
		case roll < bigRate:
			d[i] += float32(rng.NormFloat64() * bigSigma * span)
		case roll < bigRate+rate:
			d[i] += float32(rng.NormFloat64() * sigma * span)
		default:
			continue
		}

		if d[i] < lo {
			d[i] = lo
		} else if d[i] > hi {
			d[i] = hi
		}
	}
}

// Bounds returns the clamp range for a gene index.
func Bounds(i int) (lo, hi float32) {
	return geneBounds[i][0], geneBounds[i][1]
}
