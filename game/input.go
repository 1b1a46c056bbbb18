package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.speed > 1 {
		g.speed--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.speed < 10 {
		g.speed++
	}

	// Debug overlay toggle
	if rl.IsKeyPressed(rl.KeyD) {
		g.showDebug = !g.showDebug
	}

	// Control panel toggle
	if rl.IsKeyPressed(rl.KeyTab) {
		g.showPanel = !g.showPanel
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.hasSelected = false
	}

	g.handleSelection()
}

// selectionRadius is how far a click can land from a fish and still
// select it, in world pixels.
const selectionRadius = 30

// handleSelection picks the fish nearest to a left click.
func (g *Game) handleSelection() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	if g.showPanel && g.mouseOverPanel() {
		return
	}

	mouse := rl.GetMousePosition()
	g.selectFishAt(mouse.X, mouse.Y)
}

// selectFishAt selects the fish nearest to the given point. Clicking
// the already-selected fish keeps it selected; clicking empty water
// clears the selection.
func (g *Game) selectFishAt(x, y float32) {
	nearest, ok := g.fishGrid.Nearest(g.scratch[:0], x, y, selectionRadius, ecs.Entity{}, g.posMap)
	if !ok {
		g.hasSelected = false
		return
	}

	g.selected = nearest.E
	g.hasSelected = true
}

// mouseOverPanel reports whether the cursor is inside the control panel
// area, so clicks on sliders don't change the selection.
func (g *Game) mouseOverPanel() bool {
	mouse := rl.GetMousePosition()
	return mouse.X >= panelX && mouse.X <= panelX+panelWidth &&
		mouse.Y >= panelY && mouse.Y <= panelY+panelHeight
}
