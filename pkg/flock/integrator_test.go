package flock

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-flocking/pkg/geometry"
)

func TestReturnForce(t *testing.T) {
	tests := []struct {
		name   string
		pos    geometry.Vector3D
		factor float64
		want   geometry.Vector3D
	}{
		{"origin", geometry.Zero, 1, geometry.Zero},
		{"inside unit circle", geometry.NewVector(0.5, 0, 0), 1, geometry.Zero},
		{"on unit circle", geometry.NewVector(0, 1, 0), 1, geometry.Zero},
		{"log2(8) along X", geometry.NewVector(8, 0, 0), 1, geometry.NewVector(-3, 0, 0)},
		{"log2(16) along -Y scaled", geometry.NewVector(0, -16, 0), 0.5, geometry.NewVector(0, 2, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReturnForce(tt.pos, tt.factor)
			assertVector(t, "ReturnForce", got, tt.want)
		})
	}
}

func TestRegulateSpeed(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		want  float64
	}{
		{"at max decays", 5, 5 * speedDecay},
		{"above max decays", 8, 8 * speedDecay},
		{"inside band untouched", 3, 3},
		{"at lower bound untouched", 1, 1},
		{"below lower bound grows", 0.5, 0.5 * speedBoost},
		{"zero stays zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RegulateSpeed(geometry.NewVector(tt.speed, 0, 0), 5).Len()
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("RegulateSpeed(%v) speed = %v; want %v", tt.speed, got, tt.want)
			}
		})
	}
}

func TestRegulateSpeed_ConvergesFromAbove(t *testing.T) {
	const maxSpeed = 5.0
	vel := geometry.NewVector(0, 2*maxSpeed, 0)

	previous := vel.Len()
	for range 1000 {
		vel = RegulateSpeed(vel, maxSpeed)
		speed := vel.Len()
		if speed < maxSpeed/minSpeedRatio {
			t.Fatalf("speed %v fell below the lower band %v", speed, maxSpeed/minSpeedRatio)
		}
		if speed > previous {
			t.Fatalf("speed grew from %v to %v while decaying", previous, speed)
		}
		previous = speed
	}

	if previous >= maxSpeed || previous < maxSpeed*speedDecay {
		t.Errorf("speed after decay = %v; want in [%v, %v)", previous, maxSpeed*speedDecay, maxSpeed)
	}
}

func TestApplyForces_BlendsAndIntegrates(t *testing.T) {
	ctrl := DefaultControl()
	boids := []Boid{NewBoid(geometry.Zero, geometry.NewVector(1, 0, 0))}
	sep := []Separation{{AvoidDirection: geometry.NewVector(0, 0.5, 0)}}
	align := []Alignment{{NeighborhoodAlignment: geometry.NewVector(0, 0.25, 0)}}
	coh := []Cohesion{{NeighborhoodCohesion: geometry.NewVector(0, 0.25, 0)}}

	ApplyForces(boids, sep, align, coh, &ctrl)

	// (1,0) + (0,1) = (1,1); speed sqrt(2) is inside [1, 5) so unchanged.
	// No return force at the origin.
	want := geometry.NewVector(1, 1, 0)
	assertVector(t, "velocity", boids[0].Vel, want)
	assertVector(t, "position", boids[0].Pos, want)

	facing := geometry.Rotate(boids[0].Orientation, geometry.Up)
	if !facing.EqWithin(want.Normalize(), 1e-9) {
		t.Errorf("boid faces %v; want %v", facing, want.Normalize())
	}
}

func TestApplyForces_ZeroVelocityKeepsOrientation(t *testing.T) {
	ctrl := DefaultControl()
	b := NewBoid(geometry.Zero, geometry.NewVector(1, 0, 0))
	b.Vel = geometry.Zero
	before := b.Orientation
	boids := []Boid{b}

	ApplyForces(boids, make([]Separation, 1), make([]Alignment, 1), make([]Cohesion, 1), &ctrl)

	if boids[0].Orientation != before {
		t.Errorf("orientation changed from %v to %v with zero velocity", before, boids[0].Orientation)
	}
	if !boids[0].Pos.IsZero() {
		t.Errorf("boid moved to %v with zero velocity", boids[0].Pos)
	}
}

func TestApplyForces_ReturnsTowardOrigin(t *testing.T) {
	ctrl := DefaultControl()
	ctrl.ReturnFactor = 1
	boids := []Boid{NewBoid(geometry.NewVector(1024, 0, 0), geometry.NewVector(0, 2, 0))}

	ApplyForces(boids, make([]Separation, 1), make([]Alignment, 1), make([]Cohesion, 1), &ctrl)

	// log2(1024) = 10 toward -X, then speed sqrt(104) >= 5 decays.
	want := geometry.NewVector(-10, 2, 0).Mul(speedDecay)
	assertVector(t, "velocity", boids[0].Vel, want)
}

func TestApplyForces_FacesAlmostStraightDown(t *testing.T) {
	ctrl := DefaultControl()
	ctrl.ReturnFactor = 0
	// 1.5 degrees off -Y.
	rad := 178.5 * math.Pi / 180
	vel := geometry.NewVector(2*math.Sin(rad), 2*math.Cos(rad), 0)
	boids := []Boid{NewBoid(geometry.Zero, geometry.NewVector(1, 0, 0))}
	boids[0].Vel = vel

	ApplyForces(boids, make([]Separation, 1), make([]Alignment, 1), make([]Cohesion, 1), &ctrl)

	facing := geometry.Rotate(boids[0].Orientation, geometry.Up)
	if !facing.EqWithin(vel.Normalize(), 1e-9) {
		t.Errorf("boid faces %v; want %v", facing, vel.Normalize())
	}
	if nb := NewBoid(geometry.Zero, vel); !geometry.Rotate(nb.Orientation, geometry.Up).EqWithin(vel.Normalize(), 1e-9) {
		t.Errorf("NewBoid faces %v; want %v", geometry.Rotate(nb.Orientation, geometry.Up), vel.Normalize())
	}
}
