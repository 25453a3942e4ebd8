package flock

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// partial holds one worker's private accumulators for the whole flock.
// Workers never touch shared state while visiting pairs; partials are summed
// once every worker is done.
type partial struct {
	sep   []Separation
	align []Alignment
	coh   []Cohesion
}

func (p *partial) reset(n int) {
	if cap(p.sep) < n {
		p.sep = make([]Separation, n)
		p.align = make([]Alignment, n)
		p.coh = make([]Cohesion, n)
		return
	}
	p.sep = p.sep[:n]
	p.align = p.align[:n]
	p.coh = p.coh[:n]
	clear(p.sep)
	clear(p.align)
	clear(p.coh)
}

// TickParallel is TickFused with the pair set split across workers.
// workers < 1 means GOMAXPROCS. A cancelled ctx aborts the tick before any
// boid moves; the flock is then left untouched apart from its accumulators.
// Results match Tick up to floating point summation order.
func (f *Flock) TickParallel(ctx context.Context, ctrl *Control, workers int) error {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	f.clearAll()

	n := len(f.Boids)
	ranges := splitRows(n, workers)
	for len(f.scratch) < len(ranges) {
		f.scratch = append(f.scratch, &partial{})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k, rows := range ranges {
		p := f.scratch[k]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p.reset(n)
			forEachPair(rows[0], rows[1], n, func(i, j int) {
				separatePair(f.Boids, p.sep, i, j, ctrl)
				alignPair(f.Boids, p.align, i, j, ctrl)
				coherePair(f.Boids, p.coh, i, j, ctrl)
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("accumulating flock forces: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("accumulating flock forces: %w", err)
	}

	for _, p := range f.scratch[:len(ranges)] {
		f.merge(p)
	}
	f.finishAll(ctrl)

	ApplyForces(f.Boids, f.Separation, f.Alignment, f.Cohesion, ctrl)
	f.ticks++
	return nil
}

func (f *Flock) merge(p *partial) {
	for i := range f.Boids {
		f.Separation[i].AvoidDirection = f.Separation[i].AvoidDirection.Add(p.sep[i].AvoidDirection)

		f.Alignment[i].NeighborhoodAlignment = f.Alignment[i].NeighborhoodAlignment.Add(p.align[i].NeighborhoodAlignment)
		f.Alignment[i].Neighbors += p.align[i].Neighbors

		f.Cohesion[i].NeighborhoodCohesion = f.Cohesion[i].NeighborhoodCohesion.Add(p.coh[i].NeighborhoodCohesion)
		f.Cohesion[i].Neighbors += p.coh[i].Neighbors
	}
}

// Step advances the flock by one tick using mode.
func (f *Flock) Step(ctx context.Context, ctrl *Control, mode Mode, workers int) error {
	switch mode {
	case ModeFused:
		f.TickFused(ctrl)
	case ModeParallel:
		return f.TickParallel(ctx, ctrl, workers)
	default:
		f.Tick(ctrl)
	}
	return nil
}
