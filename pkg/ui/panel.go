package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30
	sectionHeight = 25
	margin        = 10
)

// Panel stacks widgets in a scrollable column, grouped under section headers.
type Panel struct {
	X, Y          float64
	Width, Height float64
	Title         string
	ScrollOffset  float64

	BGColor     color.RGBA
	BorderColor color.RGBA

	rows []row
}

// row is either a section header (widget == nil) or a widget.
type row struct {
	title  string
	widget Widget
}

func (r row) height() float64 {
	if r.widget == nil {
		return sectionHeight
	}
	return r.widget.Height()
}

// NewPanel creates an empty panel.
func NewPanel(x, y, width, height float64, title string) *Panel {
	return &Panel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Title:       title,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection adds a section header below the last row.
func (p *Panel) AddSection(title string) {
	p.rows = append(p.rows, row{title: title})
}

// AddSlider adds a slider widget to the panel
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+margin, p.nextY(), p.Width-2*margin, label, min, max, value)
	p.rows = append(p.rows, row{widget: s})
	return s
}

// AddCheckbox adds a checkbox widget to the panel
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+margin, p.nextY(), label, value)
	p.rows = append(p.rows, row{widget: c})
	return c
}

// AddButton adds a full width button to the panel
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+margin, p.nextY(), p.Width-2*margin, 24, label, onClick)
	p.rows = append(p.rows, row{widget: b})
	return b
}

func (p *Panel) nextY() float64 {
	return p.Y + titleHeight + p.contentHeight() - p.ScrollOffset
}

func (p *Panel) contentHeight() float64 {
	h := 0.0
	for _, r := range p.rows {
		h += r.height()
	}
	return h
}

// Contains reports whether the cursor is over the panel, so callers can
// ignore clicks meant for it.
func (p *Panel) Contains() bool {
	return contains(p.X, p.Y, p.Width, p.Height)
}

// Update scrolls with the wheel, lays rows out and forwards input to the
// visible widgets.
func (p *Panel) Update() {
	if _, dy := ebiten.Wheel(); dy != 0 && p.Contains() {
		p.ScrollOffset -= dy * 20
		maxScroll := max(0, p.contentHeight()+titleHeight-p.Height+margin)
		p.ScrollOffset = min(max(p.ScrollOffset, 0), maxScroll)
	}

	y := p.Y + titleHeight - p.ScrollOffset
	for _, r := range p.rows {
		if r.widget != nil {
			r.widget.MoveTo(y)
			if p.visible(y, r.height()) {
				r.widget.Update()
			}
		}
		y += r.height()
	}
}

// visible reports whether a row spanning [y, y+h] fits inside the panel.
func (p *Panel) visible(y, h float64) bool {
	return y >= p.Y+titleHeight-margin && y+h <= p.Y+p.Height+margin
}

// Draw renders the panel and all widgets
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+margin), int(p.Y+5))

	y := p.Y + titleHeight - p.ScrollOffset
	for _, r := range p.rows {
		h := r.height()
		if p.visible(y, h) {
			if r.widget == nil {
				vector.FillRect(screen,
					float32(p.X+5), float32(y),
					float32(p.Width-10), 20,
					color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
				ebitenutil.DebugPrintAt(screen, r.title, int(p.X+margin), int(y+3))
			} else {
				r.widget.Draw(screen)
			}
		}
		y += h
	}
}
