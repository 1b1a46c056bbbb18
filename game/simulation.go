package game

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/driftline/evolution/components"
	"github.com/driftline/evolution/genetics"
	"github.com/driftline/evolution/systems"
	"github.com/driftline/evolution/telemetry"
)

// simulationStep runs a single tick of the simulation.
func (g *Game) simulationStep() {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseSpatialGrid)
	g.updateSpatialGrids()

	g.perf.StartPhase(telemetry.PhaseBehavior)
	g.updateBehavior()

	g.perf.StartPhase(telemetry.PhaseHealth)
	g.updateHealth()

	g.perf.StartPhase(telemetry.PhaseReproduction)
	g.updateReproduction()

	g.perf.StartPhase(telemetry.PhaseCleanup)
	g.cleanupDead()
	g.respawnFloors()

	g.perf.StartPhase(telemetry.PhaseSpawning)
	g.replenishEdibles()

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perf.EndTick()
	g.tick++
}

// updateSpatialGrids rebuilds both spatial indices.
func (g *Game) updateSpatialGrids() {
	g.fishGrid.Clear()
	g.edibleGrid.Clear()

	fishQuery := g.fishFilter.Query()
	for fishQuery.Next() {
		entity := fishQuery.Entity()
		pos, _, _, _, health, _, _ := fishQuery.Get()
		if health.Alive {
			g.fishGrid.Insert(entity, pos.X, pos.Y)
		}
	}

	edibleQuery := g.edibleFilter.Query()
	for edibleQuery.Next() {
		entity := edibleQuery.Entity()
		pos, _ := edibleQuery.Get()
		g.edibleGrid.Insert(entity, pos.X, pos.Y)
	}
}

// updateBehavior runs steering and feeding for every living fish, then
// integrates physics and advances animation state.
// Structural changes (eaten edibles) are deferred until after iteration.
func (g *Game) updateBehavior() {
	cfg := g.config()
	baseReach := float32(cfg.Fish.EatingRadius)
	bite := float32(cfg.Health.PredationBite)
	framesPerAnim := float32(cfg.Fish.FramesPerAnimationFrame)

	var eatenList []ecs.Entity
	eaten := make(map[ecs.Entity]bool)

	query := g.fishFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, vel, rot, body, health, fish, genome := query.Get()

		if !health.Alive {
			continue
		}

		dna := &genome.DNA
		foodPerception := dna[genetics.GeneFoodPerception]
		predPerception := dna[genetics.GenePredatorPerception]
		reach := baseReach * body.Scale

		var ax, ay float32

		// Edges push back at full force regardless of appetite.
		if fx, fy, active := systems.BoundarySteer(
			pos.X, pos.Y, vel.X, vel.Y,
			cfg.Derived.Padding32, g.width, g.height,
			fish.MaxSpeed, fish.MaxForce,
		); active {
			ax += fx
			ay += fy
		}

		// Food and poison: one grid query covers both kinds.
		g.scratch = g.edibleGrid.QueryRadiusInto(g.scratch[:0], pos.X, pos.Y, foodPerception, ecs.Entity{}, g.posMap)
		nearestFood, foodOK := g.nearestEdible(components.KindFood, eaten)
		nearestPoison, poisonOK := g.nearestEdible(components.KindPoison, eaten)

		if foodOK {
			item := g.edibleMap.Get(nearestFood.E)
			dist := float32(math.Sqrt(float64(nearestFood.DistSq)))
			if dist <= item.Radius+reach {
				eaten[nearestFood.E] = true
				eatenList = append(eatenList, nearestFood.E)
				systems.Feed(health, float32(cfg.Food.HealthGain))
				g.collector.RecordFoodEaten()
			} else {
				fx, fy := systems.Seek(nearestFood.DX, nearestFood.DY, vel.X, vel.Y, fish.MaxSpeed, fish.MaxForce)
				ax += fx * dna[genetics.GeneFoodWeight]
				ay += fy * dna[genetics.GeneFoodWeight]
			}
		}

		if poisonOK {
			item := g.edibleMap.Get(nearestPoison.E)
			dist := float32(math.Sqrt(float64(nearestPoison.DistSq)))
			if dist <= item.Radius+reach {
				eaten[nearestPoison.E] = true
				eatenList = append(eatenList, nearestPoison.E)
				if systems.Damage(health, float32(cfg.Poison.HealthLoss)) {
					fish.Cause = components.DeathPoisoned
				}
				g.collector.RecordPoisonEaten()
			} else {
				fx, fy := systems.Seek(nearestPoison.DX, nearestPoison.DY, vel.X, vel.Y, fish.MaxSpeed, fish.MaxForce)
				ax += fx * dna[genetics.GenePoisonWeight]
				ay += fy * dna[genetics.GenePoisonWeight]
			}
		}

		// Other fish: hunt one link down, flee one link up.
		g.scratch = g.fishGrid.QueryRadiusInto(g.scratch[:0], pos.X, pos.Y, predPerception, entity, g.posMap)
		prey, preyOK := g.nearestFishOfTier(fish.Tier, -1)
		threat, threatOK := g.nearestFishOfTier(fish.Tier, +1)

		if preyOK {
			preyHealth := g.healthMap.Get(prey.E)
			preyBody := g.bodyMap.Get(prey.E)
			dist := float32(math.Sqrt(float64(prey.DistSq)))
			if dist <= reach+baseReach*preyBody.Scale {
				g.collector.RecordBite()
				_, killed := systems.TransferHealth(health, preyHealth, bite)
				if killed {
					g.fishMap.Get(prey.E).Cause = components.DeathEaten
					g.collector.RecordKill()
				}
			} else {
				fx, fy := systems.Seek(prey.DX, prey.DY, vel.X, vel.Y, fish.MaxSpeed, fish.MaxForce)
				ax += fx * dna[genetics.GenePreyWeight]
				ay += fy * dna[genetics.GenePreyWeight]
			}
		}

		if threatOK {
			fx, fy := systems.Flee(threat.DX, threat.DY, vel.X, vel.Y, fish.MaxSpeed, fish.MaxForce)
			ax += fx * dna[genetics.GenePredatorWeight]
			ay += fy * dna[genetics.GenePredatorWeight]
		}

		ax, ay = systems.Limit(ax, ay, fish.MaxForce)
		systems.Integrate(pos, vel, rot, ax, ay, fish.MaxSpeed)

		g.advanceAnimation(fish, vel, framesPerAnim)
	}

	// Structural phase: eaten edibles leave the world.
	for _, e := range eatenList {
		g.removeEdible(e)
	}
}

// nearestEdible scans the current scratch neighbors for the closest
// edible of the given kind that has not been eaten this tick.
func (g *Game) nearestEdible(kind components.EdibleKind, eaten map[ecs.Entity]bool) (systems.Neighbor, bool) {
	var best systems.Neighbor
	found := false
	for _, n := range g.scratch {
		if eaten[n.E] {
			continue
		}
		item := g.edibleMap.Get(n.E)
		if item == nil || item.Kind != kind {
			continue
		}
		if !found || n.DistSq < best.DistSq {
			best = n
			found = true
		}
	}
	return best, found
}

// nearestFishOfTier scans the current scratch neighbors for the closest
// living fish exactly delta links away from the given tier. Negative
// delta looks down the chain (prey), positive looks up (threats).
func (g *Game) nearestFishOfTier(tier uint8, delta int) (systems.Neighbor, bool) {
	want := int(tier) + delta
	if want < 0 || want >= len(g.tierCounts) {
		return systems.Neighbor{}, false
	}

	var best systems.Neighbor
	found := false
	for _, n := range g.scratch {
		other := g.fishMap.Get(n.E)
		if other == nil || int(other.Tier) != want {
			continue
		}
		if h := g.healthMap.Get(n.E); h == nil || !h.Alive {
			continue
		}
		if !found || n.DistSq < best.DistSq {
			best = n
			found = true
		}
	}
	return best, found
}

// advanceAnimation steps the tail animation. The frame threshold scales
// with how close the fish is to its top speed, so fast swimmers wag
// faster.
func (g *Game) advanceAnimation(fish *components.Fish, vel *components.Velocity, framesPerAnim float32) {
	speed := float32(math.Sqrt(float64(vel.X*vel.X + vel.Y*vel.Y)))
	if speed == 0 {
		return
	}

	if fish.FrameCounter >= framesPerAnim*fish.MaxSpeed/speed {
		fish.FrameCounter = 0
		fish.AnimIndex = (fish.AnimIndex + 1) % uint8(len(animationFrames))
	} else {
		fish.FrameCounter++
	}
}

// updateHealth applies the per-tick health decay and marks starvation
// deaths.
func (g *Game) updateHealth() {
	cfg := g.config()
	decay := float32(cfg.Health.DecayPerTick)

	query := g.fishFilter.Query()
	for query.Next() {
		_, _, _, _, health, fish, _ := query.Get()

		if !health.Alive {
			continue
		}

		systems.ApplyDecay(health, decay, g.dt)
		if !health.Alive {
			fish.Cause = components.DeathStarved
		}
	}
}

// updateReproduction handles event-driven asexual cloning. Each healthy
// fish has a small chance per tick to clone itself; the clone inherits
// a mutated copy of the parent's genome and the parent's tier.
func (g *Game) updateReproduction() {
	cfg := g.config()
	cloneChance := cfg.Fish.CloneChance

	// Cap per tier keeps runaway cloning in check. Pending births
	// count against the cap so one tick cannot overshoot it.
	tierCap := cfg.Fish.Quantity
	pending := make([]int, len(g.tierCounts))

	type birthInfo struct {
		x, y, angle float32
		tier        uint8
		dna         genetics.DNA
	}
	var births []birthInfo

	query := g.fishFilter.Query()
	for query.Next() {
		pos, _, rot, _, health, fish, genome := query.Get()

		if !health.Alive {
			continue
		}
		if int(fish.Tier) < len(g.tierCounts) && g.tierCounts[fish.Tier]+pending[fish.Tier] >= tierCap {
			continue
		}
		if g.rng.Float64() >= cloneChance {
			continue
		}

		if int(fish.Tier) < len(pending) {
			pending[fish.Tier]++
		}

		births = append(births, birthInfo{
			x:     pos.X,
			y:     pos.Y,
			angle: rot.Angle + (g.rng.Float32()-0.5),
			tier:  fish.Tier,
			dna:   genome.DNA.Clone(),
		})
	}

	for _, b := range births {
		b.dna.Mutate(g.rng, cfg.Mutation.Rate, cfg.Mutation.Sigma, cfg.Mutation.BigRate, cfg.Mutation.BigSigma)
		g.spawnFish(b.x, b.y, b.angle, b.tier, b.dna)
		g.collector.RecordBirth()
	}
}

// flushTelemetry emits window stats when the window closes.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.snapshotPopulation())

	if g.opts.LogStats {
		stats.LogStats()
	}
	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry window", "error", err)
	}

	perfStats := g.perf.Stats()
	if g.opts.LogStats {
		perfStats.LogStats()
	}
	if err := g.output.WritePerf(perfStats, g.tick); err != nil {
		slog.Error("failed to write perf window", "error", err)
	}
}

// snapshotPopulation samples health and gene distributions from the
// living population.
func (g *Game) snapshotPopulation() telemetry.PopulationSnapshot {
	snap := telemetry.PopulationSnapshot{
		FoodCount:   g.foodCount,
		PoisonCount: g.poisonCount,
	}

	query := g.fishFilter.Query()
	for query.Next() {
		_, _, _, _, health, _, genome := query.Get()

		if !health.Alive {
			continue
		}

		snap.FishCount++
		snap.Health = append(snap.Health, float64(health.Value))
		snap.FoodWeights = append(snap.FoodWeights, float64(genome.DNA[genetics.GeneFoodWeight]))
		snap.PoisonWeights = append(snap.PoisonWeights, float64(genome.DNA[genetics.GenePoisonWeight]))
		snap.PredatorWeights = append(snap.PredatorWeights, float64(genome.DNA[genetics.GenePredatorWeight]))
		snap.FoodPerceptions = append(snap.FoodPerceptions, float64(genome.DNA[genetics.GeneFoodPerception]))
	}

	return snap
}
