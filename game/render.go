package game

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/driftline/evolution/components"
	"github.com/driftline/evolution/genetics"
)

// Control panel geometry, shared with input handling so clicks on the
// panel don't fall through to fish selection.
const (
	panelX      = 10
	panelY      = 110
	panelWidth  = 240
	panelHeight = 190
)

var backgroundColor = rl.Color{R: 18, G: 32, B: 47, A: 255}

// tierColors assigns each food-chain link a distinct body color. Tiers
// beyond the palette wrap around.
var tierColors = []rl.Color{
	{R: 120, G: 200, B: 255, A: 255},
	{R: 255, G: 180, B: 90, A: 255},
	{R: 220, G: 100, B: 220, A: 255},
	{R: 160, G: 255, B: 120, A: 255},
}

var (
	foodColor   = rl.Color{R: 100, G: 220, B: 100, A: 255}
	poisonColor = rl.Color{R: 200, G: 60, B: 90, A: 255}
)

// Draw renders the full frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	g.drawEdibles()
	g.drawFish()

	if g.hasSelected {
		g.drawSelection()
	}

	g.drawHUD()

	if g.showPanel {
		g.drawControlPanel()
	}

	if g.config().Screen.ShowFPS {
		rl.DrawFPS(int32(g.width)-90, 10)
	}

	rl.EndDrawing()
}

func (g *Game) drawEdibles() {
	query := g.edibleFilter.Query()
	for query.Next() {
		pos, item := query.Get()
		color := foodColor
		if item.Kind == components.KindPoison {
			color = poisonColor
		}
		rl.DrawCircle(int32(pos.X), int32(pos.Y), item.Radius, color)
	}
}

func (g *Game) drawFish() {
	baseRadius := float32(g.config().Fish.EatingRadius)

	query := g.fishFilter.Query()
	for query.Next() {
		pos, _, rot, body, health, fish, genome := query.Get()

		if !health.Alive {
			continue
		}

		color := tierColors[int(fish.Tier)%len(tierColors)]
		// Opacity tracks health so starving fish visibly fade out.
		color.A = uint8(40 + health.Value*215)

		radius := baseRadius * body.Scale
		drawOrientedTriangle(pos.X, pos.Y, rot.Angle, radius, color)
		g.drawTail(pos, rot, radius, fish, color)

		if g.showDebug {
			g.drawPerceptionRings(pos, genome)
		}
	}
}

// drawTail renders the wagging tail fin. The current animation frame
// sets how far the fin swings off the body axis.
func (g *Game) drawTail(pos *components.Position, rot *components.Rotation, radius float32, fish *components.Fish, color rl.Color) {
	// Frames 0..2 map to swing angles -0.5..+0.5 radians.
	sway := (float32(animationFrames[fish.AnimIndex]) - 1) * 0.5

	backAngle := rot.Angle + math.Pi
	baseX := pos.X + float32(math.Cos(float64(backAngle)))*radius*0.8
	baseY := pos.Y + float32(math.Sin(float64(backAngle)))*radius*0.8

	tipAngle := backAngle + sway
	tipX := baseX + float32(math.Cos(float64(tipAngle)))*radius
	tipY := baseY + float32(math.Sin(float64(tipAngle)))*radius

	sideAngle := tipAngle + math.Pi/2
	spread := radius * 0.35
	sx := float32(math.Cos(float64(sideAngle))) * spread
	sy := float32(math.Sin(float64(sideAngle))) * spread

	v1 := rl.Vector2{X: baseX, Y: baseY}
	v2 := rl.Vector2{X: tipX + sx, Y: tipY + sy}
	v3 := rl.Vector2{X: tipX - sx, Y: tipY - sy}

	rl.DrawTriangle(v1, v3, v2, color)
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	frontX := x + cos*radius*1.5
	frontY := y + sin*radius*1.5

	backAngle := heading + math.Pi*0.8
	backLeftX := x + float32(math.Cos(float64(backAngle)))*radius
	backLeftY := y + float32(math.Sin(float64(backAngle)))*radius

	backAngle = heading - math.Pi*0.8
	backRightX := x + float32(math.Cos(float64(backAngle)))*radius
	backRightY := y + float32(math.Sin(float64(backAngle)))*radius

	v1 := rl.Vector2{X: frontX, Y: frontY}
	v2 := rl.Vector2{X: backLeftX, Y: backLeftY}
	v3 := rl.Vector2{X: backRightX, Y: backRightY}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
}

// drawPerceptionRings shows a fish's food and threat perception radii.
func (g *Game) drawPerceptionRings(pos *components.Position, genome *components.Genome) {
	foodR := genome.DNA[genetics.GeneFoodPerception]
	predR := genome.DNA[genetics.GenePredatorPerception]
	rl.DrawCircleLines(int32(pos.X), int32(pos.Y), foodR, rl.Color{R: 100, G: 220, B: 100, A: 90})
	rl.DrawCircleLines(int32(pos.X), int32(pos.Y), predR, rl.Color{R: 220, G: 80, B: 80, A: 90})
}

// drawSelection highlights the selected fish and prints its genome.
func (g *Game) drawSelection() {
	if !g.world.Alive(g.selected) {
		g.hasSelected = false
		return
	}
	health := g.healthMap.Get(g.selected)
	if health == nil || !health.Alive {
		g.hasSelected = false
		return
	}

	pos := g.posMap.Get(g.selected)
	body := g.bodyMap.Get(g.selected)
	fish := g.fishMap.Get(g.selected)
	genome := g.genomeMap.Get(g.selected)

	radius := float32(g.config().Fish.EatingRadius) * body.Scale
	rl.DrawCircleLines(int32(pos.X), int32(pos.Y), radius*2, rl.White)

	x := int32(g.width) - 250
	y := int32(10)
	rl.DrawText(fmt.Sprintf("Fish #%d (tier %d)", fish.ID, fish.Tier), x, y, 16, rl.White)
	y += 22
	rl.DrawText(fmt.Sprintf("Health: %.2f  Age: %.0fs", health.Value, health.Age), x, y, 14, rl.LightGray)
	y += 18
	rl.DrawText(fmt.Sprintf("Speed: %.1f  Force: %.2f  Scale: %.2f", fish.MaxSpeed, fish.MaxForce, body.Scale), x, y, 14, rl.LightGray)
	y += 22
	for i := 0; i < genetics.NumGenes; i++ {
		rl.DrawText(fmt.Sprintf("%s: %.2f", genetics.GeneName(i), genome.DNA[i]), x, y, 12, rl.Gray)
		y += 16
	}
}

func (g *Game) drawHUD() {
	fishCount := 0
	for _, n := range g.tierCounts {
		fishCount += n
	}

	rl.DrawText("evolution", 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Fish: %d | Food: %d | Poison: %d", fishCount, g.foodCount, g.poisonCount),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx", g.tick, g.speed),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	statusColor := rl.Green
	if g.paused {
		statusText = "PAUSED"
		statusColor = rl.Yellow
	}
	rl.DrawText(statusText, 10, 75, 16, statusColor)
}

// drawControlPanel renders the Tab-toggled tuning panel. Slider changes
// write straight into the live configuration.
func (g *Game) drawControlPanel() {
	cfg := g.config()

	rl.DrawRectangle(panelX, panelY, panelWidth, panelHeight, rl.Color{R: 0, G: 0, B: 0, A: 180})
	rl.DrawText("Tuning [Tab]", panelX+10, panelY+10, 16, rl.White)

	y := float32(panelY + 40)

	rl.DrawText("Speed (ticks/frame)", panelX+10, int32(y), 12, rl.Gray)
	y += 16
	newSpeed := gui.SliderBar(
		rl.Rectangle{X: panelX + 10, Y: y, Width: panelWidth - 70, Height: 16},
		"1", "10",
		float32(g.speed), 1, 10,
	)
	rl.DrawText(fmt.Sprintf("%d", g.speed), panelX+panelWidth-40, int32(y), 14, rl.White)
	g.speed = int(newSpeed + 0.5)
	y += 28

	rl.DrawText("Mutation rate", panelX+10, int32(y), 12, rl.Gray)
	y += 16
	newRate := gui.SliderBar(
		rl.Rectangle{X: panelX + 10, Y: y, Width: panelWidth - 70, Height: 16},
		"0", "0.5",
		float32(cfg.Mutation.Rate), 0, 0.5,
	)
	rl.DrawText(fmt.Sprintf("%.2f", cfg.Mutation.Rate), panelX+panelWidth-50, int32(y), 14, rl.White)
	cfg.Mutation.Rate = float64(newRate)
	y += 28

	rl.DrawText("Clone chance (per tick)", panelX+10, int32(y), 12, rl.Gray)
	y += 16
	newClone := gui.SliderBar(
		rl.Rectangle{X: panelX + 10, Y: y, Width: panelWidth - 70, Height: 16},
		"0", "0.01",
		float32(cfg.Fish.CloneChance), 0, 0.01,
	)
	rl.DrawText(fmt.Sprintf("%.4f", cfg.Fish.CloneChance), panelX+panelWidth-60, int32(y), 12, rl.White)
	cfg.Fish.CloneChance = float64(newClone)
	y += 28

	if gui.Button(rl.Rectangle{X: panelX + 10, Y: y, Width: 100, Height: 24}, toggleText(g.paused, "Resume", "Pause")) {
		g.paused = !g.paused
	}
	if gui.Button(rl.Rectangle{X: panelX + 120, Y: y, Width: 100, Height: 24}, toggleText(g.showDebug, "Debug: on", "Debug: off")) {
		g.showDebug = !g.showDebug
	}
}

func toggleText(cond bool, whenTrue, whenFalse string) string {
	if cond {
		return whenTrue
	}
	return whenFalse
}
