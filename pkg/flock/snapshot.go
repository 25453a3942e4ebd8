package flock

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lao-tseu-is-alive/go-flocking/pkg/geometry"
)

// AgentView is what a renderer needs to draw one boid.
type AgentView struct {
	Pos         geometry.Vector3D
	Orientation mgl64.Quat
	Heading     float64 // radians from +X, in the z=0 plane
}

// Stats summarises the flock after the last tick.
type Stats struct {
	Ticks         uint64
	Population    int
	MeanSpeed     float64
	MeanNeighbors float64 // boids within VisionRange, averaged
	Centroid      geometry.Vector3D
}

// Snapshot is a copy of the flock state safe to hand to another goroutine.
type Snapshot struct {
	Stats  Stats
	Agents []AgentView
}

// Stats computes summary values over the current population.
func (f *Flock) Stats() Stats {
	s := Stats{Ticks: f.ticks, Population: len(f.Boids)}
	if s.Population == 0 {
		return s
	}

	var speed float64
	var neighbors int
	for i := range f.Boids {
		speed += f.Boids[i].Speed()
		s.Centroid = s.Centroid.Add(f.Boids[i].Pos)
		neighbors += f.Alignment[i].Neighbors
	}
	inv := 1 / float64(s.Population)
	s.MeanSpeed = speed * inv
	s.MeanNeighbors = float64(neighbors) * inv
	s.Centroid = s.Centroid.Mul(inv)
	return s
}

// Snapshot copies positions and orientations out of the flock.
func (f *Flock) Snapshot() *Snapshot {
	snap := &Snapshot{
		Stats:  f.Stats(),
		Agents: make([]AgentView, len(f.Boids)),
	}
	for i := range f.Boids {
		b := &f.Boids[i]
		snap.Agents[i] = AgentView{
			Pos:         b.Pos,
			Orientation: b.Orientation,
			Heading:     geometry.HeadingAngle(b.Orientation),
		}
	}
	return snap
}
