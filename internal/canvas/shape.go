package canvas

import (
	"fmt"

	"github.com/gogpu/gg"

	"sketch/internal/domain"
)

// ShapeID identifies a shape within one canvas. Zero is never assigned.
type ShapeID uint64

// Geometry is the variant-specific part of a shape. The concrete types below
// are the only implementations.
type Geometry interface {
	isGeometry()
}

// FreehandGeometry is the polyline of every point visited during the drag,
// anchor first.
type FreehandGeometry struct {
	Points []gg.Point
}

// LineGeometry is a straight segment from the anchor to End.
type LineGeometry struct {
	End gg.Point
}

// RectGeometry is a normalized rectangle; Width and Height are never negative.
type RectGeometry struct {
	Min           gg.Point
	Width, Height float64
}

// CircleGeometry is centered on the anchor.
type CircleGeometry struct {
	Radius float64
}

// BezierGeometry is a quadratic curve from the anchor to End. Control always
// sits at the midpoint of anchor and End.
type BezierGeometry struct {
	End     gg.Point
	Control gg.Point
}

func (FreehandGeometry) isGeometry() {}
func (LineGeometry) isGeometry()     {}
func (RectGeometry) isGeometry()     {}
func (CircleGeometry) isGeometry()   {}
func (BezierGeometry) isGeometry()   {}

// variant is one row of the dispatch table.
type variant struct {
	create   func(anchor gg.Point) Geometry
	update   func(g Geometry, anchor, p gg.Point) Geometry
	bounds   func(g Geometry, anchor gg.Point) gg.Rect
	contains func(g Geometry, anchor, p gg.Point, tol float64) bool
	path     func(g Geometry, anchor gg.Point) *gg.Path
}

var variants = [domain.ShapeKindCount]variant{
	domain.ShapeFreehand: {
		create: func(a gg.Point) Geometry {
			return FreehandGeometry{Points: []gg.Point{a}}
		},
		update: func(g Geometry, _, p gg.Point) Geometry {
			f := g.(FreehandGeometry)
			f.Points = append(f.Points, p)
			return f
		},
		bounds: func(g Geometry, _ gg.Point) gg.Rect {
			return boundsOf(g.(FreehandGeometry).Points)
		},
		contains: func(g Geometry, _, p gg.Point, tol float64) bool {
			return nearPolyline(p, g.(FreehandGeometry).Points, tol)
		},
		path: func(g Geometry, _ gg.Point) *gg.Path {
			pts := g.(FreehandGeometry).Points
			path := gg.NewPath()
			path.MoveTo(pts[0].X, pts[0].Y)
			for _, p := range pts[1:] {
				path.LineTo(p.X, p.Y)
			}
			return path
		},
	},
	domain.ShapeLine: {
		create: func(a gg.Point) Geometry {
			return LineGeometry{End: a}
		},
		update: func(_ Geometry, _, p gg.Point) Geometry {
			return LineGeometry{End: p}
		},
		bounds: func(g Geometry, a gg.Point) gg.Rect {
			return gg.NewLine(a, g.(LineGeometry).End).BoundingBox()
		},
		contains: func(g Geometry, a, p gg.Point, tol float64) bool {
			return distToSegment(p, a, g.(LineGeometry).End) <= tol
		},
		path: func(g Geometry, a gg.Point) *gg.Path {
			end := g.(LineGeometry).End
			path := gg.NewPath()
			path.MoveTo(a.X, a.Y)
			path.LineTo(end.X, end.Y)
			return path
		},
	},
	domain.ShapeRectangle: {
		create: func(a gg.Point) Geometry {
			return RectGeometry{Min: a}
		},
		update: func(_ Geometry, a, p gg.Point) Geometry {
			r := gg.NewRect(a, p)
			return RectGeometry{Min: r.Min, Width: r.Width(), Height: r.Height()}
		},
		bounds: func(g Geometry, _ gg.Point) gg.Rect {
			r := g.(RectGeometry)
			return gg.Rect{Min: r.Min, Max: gg.Pt(r.Min.X+r.Width, r.Min.Y+r.Height)}
		},
		contains: func(g Geometry, a, p gg.Point, tol float64) bool {
			r := g.(RectGeometry)
			box := gg.Rect{Min: r.Min, Max: gg.Pt(r.Min.X+r.Width, r.Min.Y+r.Height)}
			return expand(box, tol).Contains(p)
		},
		path: func(g Geometry, _ gg.Point) *gg.Path {
			r := g.(RectGeometry)
			path := gg.NewPath()
			path.Rectangle(r.Min.X, r.Min.Y, r.Width, r.Height)
			return path
		},
	},
	domain.ShapeCircle: {
		create: func(gg.Point) Geometry {
			return CircleGeometry{}
		},
		update: func(_ Geometry, a, p gg.Point) Geometry {
			return CircleGeometry{Radius: a.Distance(p)}
		},
		bounds: func(g Geometry, a gg.Point) gg.Rect {
			r := g.(CircleGeometry).Radius
			return gg.Rect{Min: gg.Pt(a.X-r, a.Y-r), Max: gg.Pt(a.X+r, a.Y+r)}
		},
		contains: func(g Geometry, a, p gg.Point, tol float64) bool {
			return a.Distance(p) <= g.(CircleGeometry).Radius+tol
		},
		path: func(g Geometry, a gg.Point) *gg.Path {
			path := gg.NewPath()
			path.Circle(a.X, a.Y, g.(CircleGeometry).Radius)
			return path
		},
	},
	domain.ShapeBezier: {
		create: func(a gg.Point) Geometry {
			return BezierGeometry{End: a, Control: a}
		},
		update: func(_ Geometry, a, p gg.Point) Geometry {
			return BezierGeometry{End: p, Control: midpoint(a, p)}
		},
		bounds: func(g Geometry, a gg.Point) gg.Rect {
			b := g.(BezierGeometry)
			return gg.NewQuadBez(a, b.Control, b.End).BoundingBox()
		},
		contains: func(g Geometry, a, p gg.Point, tol float64) bool {
			b := g.(BezierGeometry)
			pts := flattenQuad(gg.NewQuadBez(a, b.Control, b.End))
			// The curve is filled up to its chord, then stroked.
			return insidePolygon(p, pts) || nearPolyline(p, pts, tol)
		},
		path: func(g Geometry, a gg.Point) *gg.Path {
			b := g.(BezierGeometry)
			path := gg.NewPath()
			path.MoveTo(a.X, a.Y)
			path.QuadraticTo(b.Control.X, b.Control.Y, b.End.X, b.End.Y)
			return path
		},
	},
}

func init() {
	for k, v := range variants {
		if v.create == nil || v.update == nil || v.bounds == nil || v.contains == nil || v.path == nil {
			panic(fmt.Sprintf("canvas: incomplete variant for %s", domain.ShapeKind(k)))
		}
	}
}

// Shape is one drawable on the canvas.
type Shape struct {
	ID     ShapeID
	Kind   domain.ShapeKind
	Anchor gg.Point

	geom   Geometry
	node   *Node
	frozen bool
}

func newShape(id ShapeID, kind domain.ShapeKind, anchor gg.Point) *Shape {
	s := &Shape{
		ID:     id,
		Kind:   kind,
		Anchor: anchor,
		geom:   variants[kind].create(anchor),
	}
	s.node = &Node{shape: s, visible: true}
	return s
}

// Geometry returns the current variant geometry.
func (s *Shape) Geometry() Geometry { return s.geom }

// Update recomputes the geometry from the anchor and p. It panics on a
// committed shape.
func (s *Shape) Update(p gg.Point) {
	if s.frozen {
		panic(fmt.Sprintf("canvas: update on committed %s shape %d", s.Kind, s.ID))
	}
	s.geom = variants[s.Kind].update(s.geom, s.Anchor, p)
}

// Committed reports whether the drag that created the shape has ended.
func (s *Shape) Committed() bool { return s.frozen }

func (s *Shape) commit() { s.frozen = true }

// Bounds is the axis-aligned box of the geometry, stroke excluded.
func (s *Shape) Bounds() gg.Rect {
	return variants[s.Kind].bounds(s.geom, s.Anchor)
}

// Contains tests p against the rendered boundary, widened by tol for strokes.
func (s *Shape) Contains(p gg.Point, tol float64) bool {
	return variants[s.Kind].contains(s.geom, s.Anchor, p, tol)
}

// Path is the vector outline handed to renderers.
func (s *Shape) Path() *gg.Path {
	return variants[s.Kind].path(s.geom, s.Anchor)
}

// Node is the shape's display list handle.
func (s *Shape) Node() *Node { return s.node }
