package systems

import (
	"math"

	"github.com/driftline/evolution/components"
)

// Limit clamps the vector (x, y) to the given maximum magnitude.
func Limit(x, y, max float32) (float32, float32) {
	magSq := x*x + y*y
	if magSq <= max*max || magSq == 0 {
		return x, y
	}
	mag := float32(math.Sqrt(float64(magSq)))
	scale := max / mag
	return x * scale, y * scale
}

// Seek returns the steering force that turns the current velocity
// toward a target at offset (dx, dy) from the fish. The desired
// velocity points at the target with magnitude maxSpeed; the force is
// the difference from the current velocity, clamped to maxForce.
func Seek(dx, dy, velX, velY, maxSpeed, maxForce float32) (fx, fy float32) {
	distSq := dx*dx + dy*dy
	if distSq == 0 {
		return 0, 0
	}

	dist := float32(math.Sqrt(float64(distSq)))
	desiredX := dx / dist * maxSpeed
	desiredY := dy / dist * maxSpeed

	return Limit(desiredX-velX, desiredY-velY, maxForce)
}

// Flee returns the steering force directly away from a threat at
// offset (dx, dy).
func Flee(dx, dy, velX, velY, maxSpeed, maxForce float32) (fx, fy float32) {
	return Seek(-dx, -dy, velX, velY, maxSpeed, maxForce)
}

// BoundarySteer returns a steering force back toward the interior when
// the position is within pad of a window edge. The force uses the full
// maxForce budget so boundary avoidance overrides other urges.
// active is false when the fish is clear of all edges.
func BoundarySteer(px, py, velX, velY, pad, width, height, maxSpeed, maxForce float32) (fx, fy float32, active bool) {
	desiredX := velX
	desiredY := velY

	switch {
	case px < pad:
		desiredX = maxSpeed
		active = true
	case px > width-pad:
		desiredX = -maxSpeed
		active = true
	}
	switch {
	case py < pad:
		desiredY = maxSpeed
		active = true
	case py > height-pad:
		desiredY = -maxSpeed
		active = true
	}

	if !active {
		return 0, 0, false
	}

	desiredX, desiredY = setMagnitude(desiredX, desiredY, maxSpeed)
	fx, fy = Limit(desiredX-velX, desiredY-velY, maxForce)
	return fx, fy, true
}

// Integrate advances a fish one tick: the velocity magnitude is
// clamped to maxSpeed, acceleration is applied, the heading follows
// the velocity vector and the position moves by the velocity.
// The caller owns resetting its acceleration accumulator.
func Integrate(pos *components.Position, vel *components.Velocity, rot *components.Rotation, ax, ay, maxSpeed float32) {
	vel.X, vel.Y = Limit(vel.X, vel.Y, maxSpeed)
	vel.X += ax
	vel.Y += ay

	if vel.X != 0 || vel.Y != 0 {
		rot.Angle = float32(math.Atan2(float64(vel.Y), float64(vel.X)))
	}

	pos.X += vel.X
	pos.Y += vel.Y
}

// setMagnitude rescales (x, y) to the given magnitude, leaving zero
// vectors untouched.
func setMagnitude(x, y, mag float32) (float32, float32) {
	lenSq := x*x + y*y
	if lenSq == 0 {
		return 0, 0
	}
	l := float32(math.Sqrt(float64(lenSq)))
	return x / l * mag, y / l * mag
}
