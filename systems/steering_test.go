package systems

import (
	"math"
	"testing"

	"github.com/driftline/evolution/components"
)

func magnitude(x, y float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y)))
}

func TestLimit(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float32
		max     float32
		wantMag float32
	}{
		{"under limit unchanged", 1, 0, 5, 1},
		{"at limit unchanged", 3, 4, 5, 5},
		{"over limit clamped", 6, 8, 5, 5},
		{"zero vector", 0, 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := Limit(tt.x, tt.y, tt.max)
			if got := magnitude(gx, gy); math.Abs(float64(got-tt.wantMag)) > 1e-5 {
				t.Errorf("|Limit(%v, %v, %v)| = %v, want %v", tt.x, tt.y, tt.max, got, tt.wantMag)
			}
		})
	}
}

func TestLimitPreservesDirection(t *testing.T) {
	gx, gy := Limit(6, 8, 5)
	// 6:8 ratio preserved
	if math.Abs(float64(gx/gy-0.75)) > 1e-5 {
		t.Errorf("clamping changed direction: (%v, %v)", gx, gy)
	}
}

func TestSeekAtRestPointsAtTarget(t *testing.T) {
	// Stationary fish, target straight ahead on x: force points +x.
	fx, fy := Seek(100, 0, 0, 0, 4, 0.3)

	if fx <= 0 {
		t.Errorf("fx = %v, want > 0", fx)
	}
	if fy != 0 {
		t.Errorf("fy = %v, want 0", fy)
	}
	if got := magnitude(fx, fy); got > 0.3+1e-5 {
		t.Errorf("|force| = %v exceeds max force", got)
	}
}

func TestSeekClampsToMaxForce(t *testing.T) {
	// Moving fast the wrong way: desired change is large, force clamps.
	fx, fy := Seek(-50, 80, 4, -4, 4, 0.25)
	if got := magnitude(fx, fy); math.Abs(float64(got-0.25)) > 1e-5 {
		t.Errorf("|force| = %v, want clamped to 0.25", got)
	}
}

func TestSeekZeroOffset(t *testing.T) {
	fx, fy := Seek(0, 0, 1, 1, 4, 0.3)
	if fx != 0 || fy != 0 {
		t.Errorf("Seek on own position = (%v, %v), want zero", fx, fy)
	}
}

func TestFleeOpposesSeek(t *testing.T) {
	sx, sy := Seek(30, 40, 0, 0, 4, 0.3)
	fx, fy := Flee(30, 40, 0, 0, 4, 0.3)

	if math.Abs(float64(sx+fx)) > 1e-5 || math.Abs(float64(sy+fy)) > 1e-5 {
		t.Errorf("Flee (%v, %v) is not the opposite of Seek (%v, %v)", fx, fy, sx, sy)
	}
}

func TestBoundarySteer(t *testing.T) {
	const (
		pad      = 40
		w        = 640
		h        = 480
		maxSpeed = 4
		maxForce = 0.3
	)

	tests := []struct {
		name       string
		px, py     float32
		wantActive bool
		wantDirX   float32 // sign of expected x force, 0 = don't care
		wantDirY   float32
	}{
		{"center inactive", 320, 240, false, 0, 0},
		{"left edge pushes right", 10, 240, true, 1, 0},
		{"right edge pushes left", 630, 240, true, -1, 0},
		{"top edge pushes down", 320, 10, true, 0, 1},
		{"bottom edge pushes up", 320, 470, true, 0, -1},
		{"corner pushes inward", 10, 10, true, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx, fy, active := BoundarySteer(tt.px, tt.py, 0, 0, pad, w, h, maxSpeed, maxForce)

			if active != tt.wantActive {
				t.Fatalf("active = %v, want %v", active, tt.wantActive)
			}
			if !active {
				if fx != 0 || fy != 0 {
					t.Errorf("inactive steer returned force (%v, %v)", fx, fy)
				}
				return
			}
			if tt.wantDirX != 0 && fx*tt.wantDirX <= 0 {
				t.Errorf("fx = %v, want sign %v", fx, tt.wantDirX)
			}
			if tt.wantDirY != 0 && fy*tt.wantDirY <= 0 {
				t.Errorf("fy = %v, want sign %v", fy, tt.wantDirY)
			}
			if got := magnitude(fx, fy); got > maxForce+1e-5 {
				t.Errorf("|force| = %v exceeds max force", got)
			}
		})
	}
}

func TestIntegrateClampsSpeed(t *testing.T) {
	pos := components.Position{X: 100, Y: 100}
	vel := components.Velocity{X: 10, Y: 0} // over max
	rot := components.Rotation{}

	Integrate(&pos, &vel, &rot, 0, 0, 4)

	if got := magnitude(vel.X, vel.Y); got > 4+1e-5 {
		t.Errorf("speed after integrate = %v, want <= 4", got)
	}
	if pos.X != 104 {
		t.Errorf("pos.X = %v, want 104", pos.X)
	}
}

func TestIntegrateHeadingFollowsVelocity(t *testing.T) {
	pos := components.Position{}
	vel := components.Velocity{}
	rot := components.Rotation{Angle: 1.23}

	// Accelerate straight down; heading should be pi/2.
	Integrate(&pos, &vel, &rot, 0, 0.5, 4)

	if math.Abs(float64(rot.Angle)-math.Pi/2) > 1e-5 {
		t.Errorf("angle = %v, want %v", rot.Angle, math.Pi/2)
	}
}

func TestIntegrateZeroVelocityKeepsHeading(t *testing.T) {
	pos := components.Position{}
	vel := components.Velocity{}
	rot := components.Rotation{Angle: 0.7}

	Integrate(&pos, &vel, &rot, 0, 0, 4)

	if rot.Angle != 0.7 {
		t.Errorf("angle = %v, want unchanged 0.7", rot.Angle)
	}
}
