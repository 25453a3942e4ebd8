package flock

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownParameter is returned by Control.Set and Control.Get for a name
// that is not one of the tunable scalars.
var ErrUnknownParameter = errors.New("unknown flock parameter")

// Control holds the tunable flocking parameters.
// The core only reads it; an outer layer may overwrite fields between ticks.
// Out of range values are not rejected here: a negative range matches no
// pair and a negative factor inverts its force.
type Control struct {
	MaxSpeed           float64 `json:"maxSpeed" toml:"maxSpeed"`
	VisionRange        float64 `json:"visionRange" toml:"visionRange"`               // alignment and cohesion radius
	SeparationDistance float64 `json:"separationDistance" toml:"separationDistance"` // personal space radius
	SeparationFactor   float64 `json:"separationFactor" toml:"separationFactor"`
	AlignmentFactor    float64 `json:"alignmentFactor" toml:"alignmentFactor"`
	CohesionFactor     float64 `json:"cohesionFactor" toml:"cohesionFactor"`
	ReturnFactor       float64 `json:"returnFactor" toml:"returnFactor"` // pull back toward the origin
}

// DefaultControl returns the parameters the flock looks good with.
func DefaultControl() Control {
	return Control{
		MaxSpeed:           5,
		VisionRange:        25,
		SeparationDistance: 10,
		SeparationFactor:   0.05,
		AlignmentFactor:    0.05,
		CohesionFactor:     0.005,
		ReturnFactor:       0.001,
	}
}

// ParamSpec describes one tunable scalar and the range a tuning UI should
// offer for it. Max is +Inf when the parameter has no upper hint.
// Section groups related parameters in a tuning UI.
type ParamSpec struct {
	Name    string
	Label   string
	Section string
	Min     float64
	Max     float64
}

const (
	SectionRanges  = "Ranges"
	SectionFactors = "Factors"
)

// Bounded reports whether the parameter has a finite upper hint.
func (p ParamSpec) Bounded() bool {
	return !math.IsInf(p.Max, 1)
}

// ParamSpecs lists the parameters in display order.
var ParamSpecs = []ParamSpec{
	{Name: "maxSpeed", Label: "Max Speed", Section: SectionRanges, Min: 5, Max: math.Inf(1)},
	{Name: "visionRange", Label: "Vision Range", Section: SectionRanges, Min: 0, Max: math.Inf(1)},
	{Name: "separationDistance", Label: "Separation Distance", Section: SectionRanges, Min: 0, Max: math.Inf(1)},
	{Name: "separationFactor", Label: "Separation Factor", Section: SectionFactors, Min: 0, Max: 0.1},
	{Name: "alignmentFactor", Label: "Alignment Factor", Section: SectionFactors, Min: 0, Max: 1},
	{Name: "cohesionFactor", Label: "Cohesion Factor", Section: SectionFactors, Min: 0, Max: 0.1},
	{Name: "returnFactor", Label: "Return Factor", Section: SectionFactors, Min: 0, Max: 1},
}

func (c *Control) field(name string) (*float64, error) {
	switch name {
	case "maxSpeed":
		return &c.MaxSpeed, nil
	case "visionRange":
		return &c.VisionRange, nil
	case "separationDistance":
		return &c.SeparationDistance, nil
	case "separationFactor":
		return &c.SeparationFactor, nil
	case "alignmentFactor":
		return &c.AlignmentFactor, nil
	case "cohesionFactor":
		return &c.CohesionFactor, nil
	case "returnFactor":
		return &c.ReturnFactor, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

// Set overwrites the parameter called name.
func (c *Control) Set(name string, value float64) error {
	f, err := c.field(name)
	if err != nil {
		return err
	}
	*f = value
	return nil
}

// Get reads the parameter called name.
func (c *Control) Get(name string) (float64, error) {
	f, err := c.field(name)
	if err != nil {
		return 0, err
	}
	return *f, nil
}

// Values returns every parameter keyed by name.
func (c *Control) Values() map[string]float64 {
	out := make(map[string]float64, len(ParamSpecs))
	for _, p := range ParamSpecs {
		v, _ := c.Get(p.Name)
		out[p.Name] = v
	}
	return out
}

// Validate checks every parameter against its ParamSpec range.
// The tick itself never calls it.
func (c *Control) Validate() error {
	var errs []error
	for _, p := range ParamSpecs {
		v, _ := c.Get(p.Name)
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			errs = append(errs, fmt.Errorf("%s must be finite, got %v", p.Name, v))
		case v < p.Min:
			errs = append(errs, fmt.Errorf("%s must be >= %v, got %v", p.Name, p.Min, v))
		case p.Bounded() && v > p.Max:
			errs = append(errs, fmt.Errorf("%s must be <= %v, got %v", p.Name, p.Max, v))
		}
	}
	return errors.Join(errs...)
}
