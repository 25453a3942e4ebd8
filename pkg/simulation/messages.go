package simulation

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-flocking/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flocking/pkg/geometry"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The world actor speaks in protobuf well-known types:
//
//	*wrapperspb.UInt32Value  advance the flock by Value ticks (0 counts as 1)
//	*structpb.Struct         overwrite flock.Control parameters, keyed by name
//	*wrapperspb.UInt64Value  respawn the population with Value as seed
//	*emptypb.Empty           ask for flock.Stats, answered with a *structpb.Struct

// ErrNotANumber is returned when a tuning update carries a non numeric value.
var ErrNotANumber = errors.New("parameter value is not a number")

func NewAdvanceMessage(ticks uint32) *wrapperspb.UInt32Value {
	return wrapperspb.UInt32(ticks)
}

func NewRespawnMessage(seed uint64) *wrapperspb.UInt64Value {
	return wrapperspb.UInt64(seed)
}

func NewStatsRequest() *emptypb.Empty {
	return &emptypb.Empty{}
}

// NewTuneMessage encodes every parameter of ctrl.
func NewTuneMessage(ctrl flock.Control) *structpb.Struct {
	values := ctrl.Values()
	fields := make(map[string]*structpb.Value, len(values))
	for name, v := range values {
		fields[name] = structpb.NewNumberValue(v)
	}
	return &structpb.Struct{Fields: fields}
}

// applyTune writes the parameters carried by msg into ctrl.
// The update is all or nothing: on error ctrl is left as it was.
func applyTune(ctrl *flock.Control, msg *structpb.Struct) error {
	next := *ctrl
	for name, v := range msg.GetFields() {
		num, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return fmt.Errorf("%w: %q", ErrNotANumber, name)
		}
		if err := next.Set(name, num.NumberValue); err != nil {
			return err
		}
	}
	*ctrl = next
	return nil
}

func statsToProto(s flock.Stats) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"ticks":         structpb.NewNumberValue(float64(s.Ticks)),
		"population":    structpb.NewNumberValue(float64(s.Population)),
		"meanSpeed":     structpb.NewNumberValue(s.MeanSpeed),
		"meanNeighbors": structpb.NewNumberValue(s.MeanNeighbors),
		"centroidX":     structpb.NewNumberValue(s.Centroid.X),
		"centroidY":     structpb.NewNumberValue(s.Centroid.Y),
		"centroidZ":     structpb.NewNumberValue(s.Centroid.Z),
	}}
}

// StatsFromProto decodes the reply to a stats request.
func StatsFromProto(msg *structpb.Struct) flock.Stats {
	f := msg.GetFields()
	num := func(name string) float64 { return f[name].GetNumberValue() }
	return flock.Stats{
		Ticks:         uint64(num("ticks")),
		Population:    int(num("population")),
		MeanSpeed:     num("meanSpeed"),
		MeanNeighbors: num("meanNeighbors"),
		Centroid:      geometry.NewVector(num("centroidX"), num("centroidY"), num("centroidZ")),
	}
}
