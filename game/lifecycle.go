package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/driftline/evolution/components"
	"github.com/driftline/evolution/genetics"
)

// spawnInitialPopulation creates the starting fish, food and poison.
// Tiers are filled round-robin so every food chain link starts occupied.
func (g *Game) spawnInitialPopulation() {
	cfg := g.config()
	links := cfg.Fish.FoodChainLinks

	for i := 0; i < cfg.Fish.Quantity; i++ {
		tier := uint8(i % links)
		g.spawnRandomFish(tier)
	}

	for i := 0; i < cfg.Food.Quantity; i++ {
		g.spawnEdible(components.KindFood)
	}
	for i := 0; i < cfg.Poison.Quantity; i++ {
		g.spawnEdible(components.KindPoison)
	}
}

// spawnRandomFish creates a fish of the given tier at a random position
// with a fresh random genome.
func (g *Game) spawnRandomFish(tier uint8) ecs.Entity {
	x := g.rng.Float32() * g.width
	y := g.rng.Float32() * g.height
	angle := g.rng.Float32() * 2 * math.Pi
	return g.spawnFish(x, y, angle, tier, genetics.Random(g.rng))
}

// spawnFish creates a fish entity. Scale, max speed and max steering
// force are rolled from the tier's band of the configured ranges.
func (g *Game) spawnFish(x, y, angle float32, tier uint8, dna genetics.DNA) ecs.Entity {
	cfg := g.config()

	attrs := genetics.RollAttributes(
		g.rng, int(tier), cfg.Fish.FoodChainLinks,
		cfg.Fish.ScaleRange, cfg.Fish.MaxSpeedRange, cfg.Fish.MaxSteeringForceRange,
	)

	id := g.nextID
	g.nextID++

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	rot := components.Rotation{Angle: angle}
	body := components.Body{Scale: attrs.Scale}
	health := components.Health{Value: float32(cfg.Health.Initial), Alive: true}
	fish := components.Fish{
		ID:       id,
		Tier:     tier,
		MaxSpeed: attrs.MaxSpeed,
		MaxForce: attrs.MaxForce,
	}
	genome := components.Genome{DNA: dna}

	entity := g.fishMapper.NewEntity(&pos, &vel, &rot, &body, &health, &fish, &genome)

	if int(tier) < len(g.tierCounts) {
		g.tierCounts[tier]++
	}

	return entity
}

// spawnEdible creates a food or poison entity at a random position.
func (g *Game) spawnEdible(kind components.EdibleKind) ecs.Entity {
	return g.spawnEdibleAt(kind, g.rng.Float32()*g.width, g.rng.Float32()*g.height)
}

// spawnEdibleAt creates a food or poison entity at a fixed position.
// Used for corpse drops.
func (g *Game) spawnEdibleAt(kind components.EdibleKind, x, y float32) ecs.Entity {
	cfg := g.config()

	radiusRange := cfg.Food.RadiusRange
	if kind == components.KindPoison {
		radiusRange = cfg.Poison.RadiusRange
	}

	pos := components.Position{X: x, Y: y}
	edible := components.Edible{
		Kind:   kind,
		Radius: float32(radiusRange.Min + g.rng.Float64()*radiusRange.Span()),
	}

	entity := g.edibleMapper.NewEntity(&pos, &edible)

	if kind == components.KindFood {
		g.foodCount++
	} else {
		g.poisonCount++
	}

	return entity
}

// removeEdible deletes a food or poison entity and adjusts counts.
func (g *Game) removeEdible(e ecs.Entity) {
	edible := g.edibleMap.Get(e)
	if edible == nil {
		return
	}
	if edible.Kind == components.KindFood {
		g.foodCount--
	} else {
		g.poisonCount--
	}
	g.world.RemoveEntity(e)
}

// cleanupDead removes dead fish. A dead fish sinks and becomes a piece
// of food at its last position.
func (g *Game) cleanupDead() {
	type deadInfo struct {
		entity ecs.Entity
		tier   uint8
		cause  components.DeathCause
		x, y   float32
	}
	var toRemove []deadInfo

	// First pass: collect dead entities (iteration must complete
	// before structural changes).
	query := g.fishFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, _, _, _, health, fish, _ := query.Get()

		if !health.Alive {
			toRemove = append(toRemove, deadInfo{
				entity: entity,
				tier:   fish.Tier,
				cause:  fish.Cause,
				x:      pos.X,
				y:      pos.Y,
			})
		}
	}

	for _, dead := range toRemove {
		g.world.RemoveEntity(dead.entity)
		if int(dead.tier) < len(g.tierCounts) {
			g.tierCounts[dead.tier]--
		}
		g.collector.RecordDeath(dead.cause)

		if g.selected == dead.entity {
			g.hasSelected = false
		}

		g.spawnEdibleAt(components.KindFood, dead.x, dead.y)
	}
}

// respawnFloors keeps every food chain tier populated. When a tier
// falls below the configured floor, fresh random fish fill the gap.
func (g *Game) respawnFloors() {
	cfg := g.config()
	for tier, count := range g.tierCounts {
		for i := count; i < cfg.Fish.MinPerTier; i++ {
			g.spawnRandomFish(uint8(tier))
		}
	}
}

// replenishEdibles drip-feeds food and poison back toward their
// configured quantities.
func (g *Game) replenishEdibles() {
	cfg := g.config()

	if g.foodCount < cfg.Food.Quantity && g.rng.Float64() < cfg.Food.SpawnChance {
		g.spawnEdible(components.KindFood)
	}
	if g.poisonCount < cfg.Poison.Quantity && g.rng.Float64() < cfg.Poison.SpawnChance {
		g.spawnEdible(components.KindPoison)
	}
}
