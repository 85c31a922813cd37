package canvas

import "github.com/gogpu/gg"

const (
	MinZoom  = 0.3
	MaxZoom  = 4.0
	ZoomStep = 1.1
)

// View is the screen transform of the canvas group: pan, then uniform zoom.
// Shapes never see it; they live in canvas-local coordinates.
type View struct {
	Zoom float64
	Pan  gg.Point
}

// NewView is the identity view.
func NewView() View {
	return View{Zoom: 1}
}

// Matrix maps canvas-local points to screen points.
func (v View) Matrix() gg.Matrix {
	return gg.Translate(v.Pan.X, v.Pan.Y).Multiply(gg.Scale(v.Zoom, v.Zoom))
}

// ToCanvas maps a screen point through the inverse transform.
func (v View) ToCanvas(screen gg.Point) gg.Point {
	return v.Matrix().Invert().TransformPoint(screen)
}

// ToScreen maps a canvas-local point to the screen.
func (v View) ToScreen(p gg.Point) gg.Point {
	return v.Matrix().TransformPoint(p)
}

func (v *View) setZoom(z float64) {
	v.Zoom = clamp(z, MinZoom, MaxZoom)
}
