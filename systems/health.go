package systems

import "github.com/driftline/evolution/components"

// ApplyDecay drains a fish's health by the per-tick decay and marks it
// dead when health reaches zero. Age advances by dt seconds.
func ApplyDecay(h *components.Health, decay, dt float32) {
	if !h.Alive {
		return
	}

	h.Value -= decay
	h.Age += dt

	if h.Value <= 0 {
		h.Value = 0
		h.Alive = false
	}
}

// Feed restores health, clamped to full.
func Feed(h *components.Health, gain float32) {
	if !h.Alive {
		return
	}
	h.Value += gain
	if h.Value > 1 {
		h.Value = 1
	}
}

// Damage drains health immediately and marks the fish dead when it
// reaches zero. Returns true if the damage killed the fish.
func Damage(h *components.Health, loss float32) bool {
	if !h.Alive {
		return false
	}
	h.Value -= loss
	if h.Value <= 0 {
		h.Value = 0
		h.Alive = false
		return true
	}
	return false
}

// TransferHealth moves a bite's worth of health from prey to predator.
// The predator gains at most what the prey had left. Returns the amount
// transferred and whether the bite killed the prey.
func TransferHealth(pred, prey *components.Health, bite float32) (gained float32, killed bool) {
	if !pred.Alive || !prey.Alive {
		return 0, false
	}

	gained = bite
	if prey.Value < bite {
		gained = prey.Value
	}

	killed = Damage(prey, bite)
	Feed(pred, gained)
	return gained, killed
}
