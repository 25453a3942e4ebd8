package flock

import (
	"fmt"
)

// Mode selects how a tick walks the pair set.
type Mode string

const (
	// ModeSerial runs separation, alignment and cohesion as three passes.
	ModeSerial Mode = "serial"
	// ModeFused runs the three rules in a single pass over the pairs.
	ModeFused Mode = "fused"
	// ModeParallel splits the fused pass across workers and merges the results.
	ModeParallel Mode = "parallel"
)

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeSerial, ModeFused, ModeParallel:
		return m, nil
	case "":
		return ModeSerial, nil
	}
	return "", fmt.Errorf("unknown tick mode %q (want serial, fused or parallel)", s)
}

// Flock owns the boids and their three accumulators, stored as parallel
// slices indexed by boid.
type Flock struct {
	Boids      []Boid
	Separation []Separation
	Alignment  []Alignment
	Cohesion   []Cohesion

	ticks   uint64
	scratch []*partial // per worker buffers reused by TickParallel
}

// New creates a flock owning boids.
func New(boids []Boid) *Flock {
	f := &Flock{}
	f.Reset(boids)
	return f
}

// Reset replaces the population and restarts the tick counter.
func (f *Flock) Reset(boids []Boid) {
	f.Boids = boids
	f.Separation = make([]Separation, len(boids))
	f.Alignment = make([]Alignment, len(boids))
	f.Cohesion = make([]Cohesion, len(boids))
	f.ticks = 0
	f.scratch = nil
}

// Len is the population size.
func (f *Flock) Len() int {
	return len(f.Boids)
}

// Ticks is the number of completed ticks since the last Reset.
func (f *Flock) Ticks() uint64 {
	return f.ticks
}

func (f *Flock) clearAll() {
	ClearSeparation(f.Separation)
	ClearAlignment(f.Alignment)
	ClearCohesion(f.Cohesion)
}

// Tick advances the flock by one fixed step:
// clear all accumulators, run the three rule passes, then integrate.
func (f *Flock) Tick(ctrl *Control) {
	f.clearAll()

	CalculateSeparation(f.Boids, f.Separation, ctrl)
	CalculateAlignment(f.Boids, f.Alignment, ctrl)
	CalculateCohesion(f.Boids, f.Cohesion, ctrl)

	ApplyForces(f.Boids, f.Separation, f.Alignment, f.Cohesion, ctrl)
	f.ticks++
}

// TickFused is Tick with the three rule passes folded into one walk over the
// pairs. Each rule keeps its own threshold and payload.
func (f *Flock) TickFused(ctrl *Control) {
	f.clearAll()

	n := len(f.Boids)
	forEachPair(0, n, n, func(i, j int) {
		separatePair(f.Boids, f.Separation, i, j, ctrl)
		alignPair(f.Boids, f.Alignment, i, j, ctrl)
		coherePair(f.Boids, f.Cohesion, i, j, ctrl)
	})
	f.finishAll(ctrl)

	ApplyForces(f.Boids, f.Separation, f.Alignment, f.Cohesion, ctrl)
	f.ticks++
}

func (f *Flock) finishAll(ctrl *Control) {
	finishSeparation(f.Separation, ctrl)
	finishAlignment(f.Boids, f.Alignment, ctrl)
	finishCohesion(f.Boids, f.Cohesion, ctrl)
}
