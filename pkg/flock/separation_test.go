package flock

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-flocking/pkg/geometry"
)

func TestCalculateSeparation_TwoBoids(t *testing.T) {
	// Setup: A at 0, B at 5 on the X axis, separation distance 10.
	// Intrusion depth is 10-5 = 5, A is pushed toward -X, B toward +X.
	ctrl := DefaultControl()
	boids := pairOfBoids()
	acc := make([]Separation, len(boids))

	CalculateSeparation(boids, acc, &ctrl)

	f := ctrl.SeparationFactor
	assertVector(t, "A avoid direction", acc[0].AvoidDirection, geometry.NewVector(-5*f, 0, 0))
	assertVector(t, "B avoid direction", acc[1].AvoidDirection, geometry.NewVector(5*f, 0, 0))
}

func TestCalculateSeparation_Symmetry(t *testing.T) {
	ctrl := DefaultControl()
	boids := []Boid{
		NewBoid(geometry.NewVector(1, 2, 0), geometry.Zero),
		NewBoid(geometry.NewVector(4, -1, 0), geometry.Zero),
	}
	acc := make([]Separation, 2)

	CalculateSeparation(boids, acc, &ctrl)

	if acc[0].AvoidDirection.IsZero() {
		t.Fatal("Expected a separation push for boids 4.2 apart")
	}
	assertVector(t, "A + B", acc[0].AvoidDirection.Add(acc[1].AvoidDirection), geometry.Zero)
}

func TestCalculateSeparation_Threshold(t *testing.T) {
	tests := []struct {
		name     string
		dist     float64
		included bool
	}{
		{"exactly at distance is excluded", 10, false},
		{"just inside is included", 10 - 1e-6, true},
		{"far away", 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := DefaultControl()
			boids := []Boid{
				NewBoid(geometry.Zero, geometry.Zero),
				NewBoid(geometry.NewVector(tt.dist, 0, 0), geometry.Zero),
			}
			acc := make([]Separation, 2)
			CalculateSeparation(boids, acc, &ctrl)

			got := !acc[0].AvoidDirection.IsZero()
			if got != tt.included {
				t.Errorf("pair at %v included = %v; want %v", tt.dist, got, tt.included)
			}
		})
	}
}

func TestCalculateSeparation_Coincident(t *testing.T) {
	ctrl := DefaultControl()
	p := geometry.NewVector(3, 3, 0)
	boids := []Boid{NewBoid(p, geometry.Zero), NewBoid(p, geometry.Zero)}
	acc := make([]Separation, 2)

	CalculateSeparation(boids, acc, &ctrl)

	for i, s := range acc {
		if !s.AvoidDirection.IsFinite() {
			t.Errorf("boid %d avoid direction is not finite: %v", i, s.AvoidDirection)
		}
		if !s.AvoidDirection.IsZero() {
			t.Errorf("coincident boids should not push, boid %d got %v", i, s.AvoidDirection)
		}
	}
}

func TestCalculateSeparation_NegativeDistanceDisables(t *testing.T) {
	ctrl := DefaultControl()
	ctrl.SeparationDistance = -1
	boids := pairOfBoids()
	acc := make([]Separation, 2)

	CalculateSeparation(boids, acc, &ctrl)

	if !acc[0].AvoidDirection.IsZero() || !acc[1].AvoidDirection.IsZero() {
		t.Errorf("negative separation distance should match nothing, got %v", acc)
	}
}

func TestClearSeparation(t *testing.T) {
	acc := []Separation{
		{AvoidDirection: geometry.NewVector(1, 2, 3)},
		{AvoidDirection: geometry.NewVector(-4, 0, 0)},
	}
	for range 2 {
		ClearSeparation(acc)
		for i, s := range acc {
			if s != (Separation{}) {
				t.Errorf("accumulator %d not cleared: %+v", i, s)
			}
		}
	}
}
