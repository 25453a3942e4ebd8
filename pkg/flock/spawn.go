package flock

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flocking/pkg/geometry"
)

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Spawn creates n boids in the z=0 plane. Positions are uniform in a square of
// side extent centred on the origin; each velocity component is uniform in
// (-maxSpeed/2, maxSpeed/2), so no boid starts faster than maxSpeed.
func Spawn(n int, extent, maxSpeed float64, rng *rand.Rand) []Boid {
	boids := make([]Boid, n)
	for i := range boids {
		pos := geometry.NewPlanar(
			(rng.Float64()-0.5)*extent,
			(rng.Float64()-0.5)*extent,
		)
		vel := geometry.NewPlanar(
			(rng.Float64()-0.5)*maxSpeed,
			(rng.Float64()-0.5)*maxSpeed,
		)
		boids[i] = NewBoid(pos, vel)
	}
	return boids
}
