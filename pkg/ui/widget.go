package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Widget is anything the Panel can stack vertically.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	// Height is the vertical space the widget needs, label included.
	Height() float64
	// MoveTo places the widget's top edge at y (used for scrolling).
	MoveTo(y float64)
}

// contains reports whether the cursor is inside the rectangle.
func contains(x, y, w, h float64) bool {
	mx, my := ebiten.CursorPosition()
	return float64(mx) >= x && float64(mx) <= x+w &&
		float64(my) >= y && float64(my) <= y+h
}
