// Package components defines ECS components for the simulation.
package components

import "github.com/driftline/evolution/genetics"

// EdibleKind distinguishes food from poison.
type EdibleKind uint8

const (
	KindFood EdibleKind = iota
	KindPoison
)

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity.
type Velocity struct {
	X, Y float32
}

// Rotation represents an entity's heading.
// An angle of zero points to the right; the angle always follows the
// velocity vector.
type Rotation struct {
	Angle float32 // radians
}

// Body holds physical properties of a fish.
// Scale multiplies the base sprite size; eating reach scales with it.
type Body struct {
	Scale float32
}

// Health tracks a fish's declining health.
// Health starts at the configured initial value and drains every tick.
// A fish with health <= 0 is dead; its opacity when drawn equals its health.
type Health struct {
	Value float32
	Age   float32 // seconds alive
	Alive bool
}

// DeathCause records why a fish died, for telemetry.
type DeathCause uint8

const (
	DeathStarved DeathCause = iota
	DeathPoisoned
	DeathEaten
)

// Fish holds fish-specific state.
type Fish struct {
	ID       uint32
	Tier     uint8 // food chain link; tier 0 eats food, tier N hunts tier N-1
	MaxSpeed float32
	MaxForce float32

	// Animation state. Frames advance through the sequence [0 1 2 1];
	// faster swimming advances frames sooner.
	AnimIndex    uint8
	FrameCounter float32

	// Cause is set when the fish dies so cleanup can attribute the
	// death. Meaningless while the fish is alive.
	Cause DeathCause
}

// Genome carries the fish's heritable steering weights.
type Genome struct {
	DNA genetics.DNA
}

// Edible marks a food or poison entity.
type Edible struct {
	Kind   EdibleKind
	Radius float32
}
