// Package flock computes boids flocking motion.
//
// Every tick each boid's velocity is adjusted by three local rules,
// separation, alignment and cohesion, plus a weak force returning it toward the
// origin. Each rule owns one accumulator per boid; a tick clears them, fills
// them with one pass over every unordered pair of boids, and the integrator
// then blends them into new velocity, orientation and position.
//
// Neighbor search is all-pairs on purpose: cost is O(n²) per pass.
package flock

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lao-tseu-is-alive/go-flocking/pkg/geometry"
)

// Boid is one member of the flock.
// Orientation is derived from Vel by the integrator and is kept as is while
// the boid has no velocity.
type Boid struct {
	Pos         geometry.Vector3D
	Vel         geometry.Vector3D
	Orientation mgl64.Quat
}

// NewBoid creates a boid already facing its direction of travel.
func NewBoid(pos, vel geometry.Vector3D) Boid {
	b := Boid{Pos: pos, Vel: vel, Orientation: geometry.Identity()}
	if dir := vel.Normalize(); !dir.IsZero() {
		b.Orientation = geometry.RotationFromTo(geometry.Up, dir)
	}
	return b
}

// Speed is the length of the velocity.
func (b *Boid) Speed() float64 {
	return b.Vel.Len()
}

// Separation accumulates the push away from boids that are too close.
type Separation struct {
	AvoidDirection geometry.Vector3D
}

// Alignment accumulates the neighbors' velocities, then holds the steering
// correction toward their average heading.
type Alignment struct {
	NeighborhoodAlignment geometry.Vector3D
	Neighbors             int
}

// Cohesion accumulates the neighbors' positions, then holds the steering
// correction toward their centroid.
type Cohesion struct {
	NeighborhoodCohesion geometry.Vector3D
	Neighbors            int
}
