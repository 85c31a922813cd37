package canvas

import (
	"github.com/gogpu/gg"

	"sketch/internal/domain"
)

// Point is the JSON form of a canvas-local point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is the JSON form of an axis-aligned box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ShapeView is a render-ready copy of one shape. Only the fields of its kind
// are set.
type ShapeView struct {
	ID         ShapeID          `json:"id"`
	Kind       domain.ShapeKind `json:"kind"`
	Anchor     Point            `json:"anchor"`
	Corner     *Point           `json:"corner,omitempty"`
	Points     []Point          `json:"points,omitempty"`
	End        *Point           `json:"end,omitempty"`
	Control    *Point           `json:"control,omitempty"`
	Width      float64          `json:"width,omitempty"`
	Height     float64          `json:"height,omitempty"`
	Radius     float64          `json:"radius,omitempty"`
	Bounds     Rect             `json:"bounds"`
	InProgress bool             `json:"inProgress,omitempty"`
}

// NodeView is one display list entry.
type NodeView struct {
	Overlay bool       `json:"overlay,omitempty"`
	Visible bool       `json:"visible"`
	Frame   Rect       `json:"frame"`
	Shape   *ShapeView `json:"shape,omitempty"`
}

// Scene is the full canvas state handed to the frontend.
type Scene struct {
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Zoom     float64     `json:"zoom"`
	Tool     domain.Tool `json:"tool"`
	Selected ShapeID     `json:"selected,omitempty"`
	Nodes    []NodeView  `json:"nodes"`
}

// Scene snapshots the display list bottom to top.
func (c *Controller) Scene() Scene {
	sc := Scene{
		Width:  c.width,
		Height: c.height,
		Zoom:   c.view.Zoom,
		Tool:   c.tools.Active(),
		Nodes:  make([]NodeView, 0, c.surface.Len()),
	}
	if s, ok := c.Selected(); ok {
		sc.Selected = s.ID
	}
	for i := 0; i < c.surface.Len(); i++ {
		n := c.surface.At(i)
		nv := NodeView{
			Overlay: c.overlay.IsOverlayNode(n),
			Visible: c.surface.IsVisible(n),
			Frame:   rectView(n.Frame()),
		}
		if s := n.Shape(); s != nil {
			v := shapeView(s)
			v.InProgress = s == c.active
			nv.Shape = &v
		}
		sc.Nodes = append(sc.Nodes, nv)
	}
	return sc
}

func shapeView(s *Shape) ShapeView {
	v := ShapeView{
		ID:     s.ID,
		Kind:   s.Kind,
		Anchor: pointView(s.Anchor),
		Bounds: rectView(s.Bounds()),
	}
	switch g := s.geom.(type) {
	case FreehandGeometry:
		v.Points = make([]Point, len(g.Points))
		for i, p := range g.Points {
			v.Points[i] = pointView(p)
		}
	case LineGeometry:
		end := pointView(g.End)
		v.End = &end
	case RectGeometry:
		corner := pointView(g.Min)
		v.Corner = &corner
		v.Width, v.Height = g.Width, g.Height
	case CircleGeometry:
		v.Radius = g.Radius
	case BezierGeometry:
		end, ctrl := pointView(g.End), pointView(g.Control)
		v.End, v.Control = &end, &ctrl
	}
	return v
}

func pointView(p gg.Point) Point { return Point{X: p.X, Y: p.Y} }

func rectView(r gg.Rect) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Width(), Height: r.Height()}
}
