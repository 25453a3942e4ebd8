package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const sliderLabelHeight = 15

// Slider edits a float64 in [Min, Max] by clicking or dragging on its bar.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	X, Y     float64 // top-left of the label
	W, H     float64 // bar size

	changed bool
}

// NewSlider creates a slider whose value is clamped into [min, max].
func NewSlider(x, y, w float64, label string, min, max, value float64) *Slider {
	s := &Slider{Label: label, Min: min, Max: max, X: x, Y: y, W: w, H: 10}
	s.Value = s.clamp(value)
	return s
}

func (s *Slider) clamp(v float64) float64 {
	return math.Max(s.Min, math.Min(s.Max, v))
}

// SetFromRatio sets the value at position p (0 = Min, 1 = Max) along the bar.
func (s *Slider) SetFromRatio(p float64) {
	v := s.clamp(s.Min + p*(s.Max-s.Min))
	if v != s.Value {
		s.Value = v
		s.changed = true
	}
}

// Changed reports whether the value moved since the previous call.
func (s *Slider) Changed() bool {
	c := s.changed
	s.changed = false
	return c
}

func (s *Slider) barY() float64 { return s.Y + sliderLabelHeight }

// Update checks for mouse interaction
func (s *Slider) Update() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	if contains(s.X, s.barY(), s.W, s.H) {
		mx, _ := ebiten.CursorPosition()
		s.SetFromRatio((float64(mx) - s.X) / s.W)
	}
}

// Draw renders the label, the track and the filled part of the bar.
func (s *Slider) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s: %.4g", s.Label, s.Value), int(s.X), int(s.Y))

	y := s.barY()
	vector.FillRect(screen, float32(s.X), float32(y), float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)

	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	vector.FillRect(screen, float32(s.X), float32(y), float32(s.W*ratio), float32(s.H), color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
}

func (s *Slider) Height() float64 { return sliderLabelHeight + s.H + 10 }

func (s *Slider) MoveTo(y float64) { s.Y = y }
