package flock

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-flocking/pkg/geometry"
)

// pairOfBoids builds the two boid setup used across the rule tests:
// A at the origin heading +X, B at (5,0,0) heading -X.
func pairOfBoids() []Boid {
	return []Boid{
		NewBoid(geometry.NewVector(0, 0, 0), geometry.NewVector(1, 0, 0)),
		NewBoid(geometry.NewVector(5, 0, 0), geometry.NewVector(-1, 0, 0)),
	}
}

func assertVector(t *testing.T, what string, got, want geometry.Vector3D) {
	t.Helper()
	if !got.EqWithin(want, 1e-12) {
		t.Errorf("%s = %v; want %v", what, got, want)
	}
}
