package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-flocking/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/structpb"
)

const askTimeout = 5 * time.Second

// Simulation runs a WorldActor inside its own actor system and gives the
// renderer and the tuning UI a typed API over the actor messages.
type Simulation struct {
	System    actor.ActorSystem
	worldPID  *actor.PID
	snapshots chan *flock.Snapshot
}

// Start creates the actor system and spawns the world.
func Start(ctx context.Context, cfg *Config, logger log.Logger) (*Simulation, error) {
	system, err := actor.NewActorSystem("flocking",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	// Buffer to avoid blocking
	snapshots := make(chan *flock.Snapshot, 10)

	worldPID, err := system.Spawn(ctx, "world", NewWorldActor(snapshots, cfg))
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	return &Simulation{
		System:    system,
		worldPID:  worldPID,
		snapshots: snapshots,
	}, nil
}

// Advance asks the world to run ticks fixed steps. It does not wait.
func (s *Simulation) Advance(ctx context.Context, ticks uint32) error {
	return actor.Tell(ctx, s.worldPID, NewAdvanceMessage(ticks))
}

// Tune replaces every flocking parameter before the next tick.
func (s *Simulation) Tune(ctx context.Context, ctrl flock.Control) error {
	return actor.Tell(ctx, s.worldPID, NewTuneMessage(ctrl))
}

// Respawn replaces the population with a fresh one built from seed.
func (s *Simulation) Respawn(ctx context.Context, seed uint64) error {
	return actor.Tell(ctx, s.worldPID, NewRespawnMessage(seed))
}

// Stats waits for every message sent before it to be handled, then returns
// the flock summary.
func (s *Simulation) Stats(ctx context.Context) (flock.Stats, error) {
	reply, err := actor.Ask(ctx, s.worldPID, NewStatsRequest(), askTimeout)
	if err != nil {
		return flock.Stats{}, fmt.Errorf("failed to query world stats: %w", err)
	}
	msg, ok := reply.(*structpb.Struct)
	if !ok {
		return flock.Stats{}, fmt.Errorf("unexpected stats reply %T", reply)
	}
	return StatsFromProto(msg), nil
}

// Snapshots delivers the flock state after each handled advance. Frames are
// dropped when the reader falls behind.
func (s *Simulation) Snapshots() <-chan *flock.Snapshot {
	return s.snapshots
}

// Stop shuts the actor system down.
func (s *Simulation) Stop(ctx context.Context) error {
	return s.System.Stop(ctx)
}
