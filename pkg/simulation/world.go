package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-flocking/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// WorldActor owns the flock. Its mailbox is the fixed-timestep scheduler:
// messages are handled one at a time, so tuning updates always land between
// two ticks and never during one.
type WorldActor struct {
	cfg   *Config
	ctrl  flock.Control // the copy ticks read; only replaced between ticks
	mode  flock.Mode
	flock *flock.Flock
	// Communication with UI
	snapshotCh chan<- *flock.Snapshot
	// --- Benchmark Stats ---
	ticksSinceLog int
	stepTime      time.Duration
	lastLogTime   time.Time
}

var _ actor.Actor = (*WorldActor)(nil)

// NewWorldActor creates the world logic unit. snapshotCh may be nil when
// nobody renders.
func NewWorldActor(snapshotCh chan<- *flock.Snapshot, cfg *Config) *WorldActor {
	return &WorldActor{
		cfg:         cfg,
		ctrl:        cfg.Control,
		mode:        cfg.Mode(),
		flock:       flock.New(nil),
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World is spawning %d boids...", w.cfg.NumBoids)
	w.respawn(w.cfg.Seed)
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		ctx.Logger().Infof("World started: %d boids, %s ticks", w.flock.Len(), w.mode)

	// 1. The Main Simulation Step (Driven by Game Loop)
	case *wrapperspb.UInt32Value:
		if err := w.advance(ctx.Context(), msg.GetValue()); err != nil {
			ctx.Logger().Errorf("tick aborted: %v", err)
			return
		}
		w.logBenchmarks(ctx.Logger())
		w.pushSnapshot()

	// 2. Handle dynamic slider updates from UI
	case *structpb.Struct:
		if err := applyTune(&w.ctrl, msg); err != nil {
			ctx.Logger().Warnf("rejected tuning update: %v", err)
			return
		}
		ctx.Logger().Debugf("control updated: %+v", w.ctrl)

	case *wrapperspb.UInt64Value:
		w.respawn(msg.GetValue())
		ctx.Logger().Infof("World respawned %d boids with seed %d", w.flock.Len(), msg.GetValue())
		w.pushSnapshot()

	case *emptypb.Empty:
		ctx.Response(statsToProto(w.flock.Stats()))

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World is shutdown after %d ticks", w.flock.Ticks())
	return nil
}

func (w *WorldActor) respawn(seed uint64) {
	rng := flock.NewRand(seed)
	w.flock.Reset(flock.Spawn(w.cfg.NumBoids, w.cfg.SpawnExtent, w.ctrl.MaxSpeed, rng))
}

// advance runs ticks fixed steps.
func (w *WorldActor) advance(ctx context.Context, ticks uint32) error {
	if ticks == 0 {
		ticks = 1
	}
	start := time.Now()
	defer func() { w.stepTime += time.Since(start) }()

	for range ticks {
		if err := w.flock.Step(ctx, &w.ctrl, w.mode, w.cfg.Workers); err != nil {
			return fmt.Errorf("tick %d: %w", w.flock.Ticks()+1, err)
		}
		w.ticksSinceLog++
	}
	return nil
}

func (w *WorldActor) logBenchmarks(logger log.Logger) {
	if time.Since(w.lastLogTime) < time.Second || w.ticksSinceLog == 0 {
		return
	}
	s := w.flock.Stats()
	if !s.Centroid.IsFinite() {
		logger.Errorf("flock diverged after %d ticks: centroid %v", s.Ticks, s.Centroid)
	}
	logger.Infof("📊 TICK RATE: %d/sec | Boids: %d | Step avg: %s | Speed: %.2f | Neighbors: %.1f",
		w.ticksSinceLog, s.Population, w.stepTime/time.Duration(w.ticksSinceLog), s.MeanSpeed, s.MeanNeighbors)
	w.ticksSinceLog = 0
	w.stepTime = 0
	w.lastLogTime = time.Now()
}

func (w *WorldActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	select {
	case w.snapshotCh <- w.flock.Snapshot():
	default:
		// UI busy, skip frame
	}
}
