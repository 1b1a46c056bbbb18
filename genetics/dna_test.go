package genetics

import (
	"math/rand"
	"testing"
)

func TestRandomWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 100; trial++ {
		d := Random(rng)
		for i := range d {
			lo, hi := Bounds(i)
			if d[i] < lo || d[i] > hi {
				t.Fatalf("gene %s = %v outside [%v, %v]", GeneName(i), d[i], lo, hi)
			}
		}
	}
}

func TestMutateRateZeroIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	d := Random(rng)
	before := d

	d.Mutate(rng, 0, 0.1, 0, 0.5)

	if d != before {
		t.Errorf("mutation with rate 0 changed genome: %v -> %v", before, d)
	}
}

func TestMutateRateOnePerturbsGenes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	d := Random(rng)
	before := d

	d.Mutate(rng, 1.0, 0.2, 0, 0)

	changed := 0
	for i := range d {
		if d[i] != before[i] {
			changed++
		}
	}
	// With rate 1 every gene is perturbed; a gaussian draw of exactly
	// zero does not happen with this seed.
	if changed != NumGenes {
		t.Errorf("rate 1 changed %d of %d genes", changed, NumGenes)
	}
}

func TestMutateStaysWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	d := Random(rng)

	// Hammer the genome with large mutations; clamping must hold.
	for trial := 0; trial < 1000; trial++ {
		d.Mutate(rng, 0.5, 0.5, 0.2, 2.0)
		for i := range d {
			lo, hi := Bounds(i)
			if d[i] < lo || d[i] > hi {
				t.Fatalf("gene %s = %v escaped [%v, %v] after mutation", GeneName(i), d[i], lo, hi)
			}
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	parent := Random(rng)

	child := parent.Clone()
	child.Mutate(rng, 1.0, 0.3, 0, 0)

	if child == parent {
		t.Error("mutated clone identical to parent")
	}

	// Parent must be untouched by the child's mutation.
	reference := parent.Clone()
	if parent != reference {
		t.Error("parent genome changed after cloning")
	}
}

func TestGeneNames(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < NumGenes; i++ {
		name := GeneName(i)
		if name == "" {
			t.Errorf("gene %d has empty name", i)
		}
		if seen[name] {
			t.Errorf("duplicate gene name %q", name)
		}
		seen[name] = true
	}
}
