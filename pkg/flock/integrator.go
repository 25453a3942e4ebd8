package flock

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flocking/pkg/geometry"
)

// Speed regulation nudges. They were tuned by eye and are not invariants.
const (
	speedDecay    = 0.995 // applied while at or above MaxSpeed
	speedBoost    = 1.005 // applied while below MaxSpeed/minSpeedRatio
	minSpeedRatio = 5.0
)

// ApplyForces integrates one tick for every boid. It must run after the three
// Calculate passes of the same tick; their accumulators are only read.
func ApplyForces(boids []Boid, sep []Separation, align []Alignment, coh []Cohesion, ctrl *Control) {
	for i := range boids {
		b := &boids[i]

		b.Vel = b.Vel.
			Add(sep[i].AvoidDirection).
			Add(align[i].NeighborhoodAlignment).
			Add(coh[i].NeighborhoodCohesion).
			Add(ReturnForce(b.Pos, ctrl.ReturnFactor))

		b.Vel = RegulateSpeed(b.Vel, ctrl.MaxSpeed)

		if heading := b.Vel.Normalize(); !heading.IsZero() {
			b.Orientation = geometry.RotationFromTo(geometry.Up, heading)
		}

		b.Pos = b.Pos.Add(b.Vel)
	}
}

// ReturnForce pulls toward the origin, growing with log2 of the distance.
// Inside the unit sphere log2 is not positive, so the force is zero there.
func ReturnForce(pos geometry.Vector3D, factor float64) geometry.Vector3D {
	dist := pos.Len()
	if dist <= 1 {
		return geometry.Zero
	}
	return pos.Normalize().Neg().Mul(math.Log2(dist) * factor)
}

// RegulateSpeed slows a boid going at least maxSpeed and speeds up one slower
// than maxSpeed/5. It is a per-tick nudge, not a clamp: speed drifts into
// [maxSpeed/5, maxSpeed) over many ticks.
func RegulateSpeed(vel geometry.Vector3D, maxSpeed float64) geometry.Vector3D {
	speed := vel.Len()
	switch {
	case speed >= maxSpeed:
		return vel.Mul(speedDecay)
	case speed < maxSpeed/minSpeedRatio:
		return vel.Mul(speedBoost)
	}
	return vel
}
