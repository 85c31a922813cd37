package canvas

import (
	"math"

	"github.com/gogpu/gg"
)

// curveSteps is the flattening resolution for quadratic curves.
const curveSteps = 32

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func midpoint(a, b gg.Point) gg.Point {
	return gg.NewLine(a, b).Midpoint()
}

// distToSegment returns the distance from p to the segment ab.
func distToSegment(p, a, b gg.Point) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSquared()
	if l2 == 0 {
		return p.Distance(a)
	}
	t := clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return p.Distance(a.Add(ab.Mul(t)))
}

// nearPolyline reports whether p lies within tol of any segment of pts.
func nearPolyline(p gg.Point, pts []gg.Point, tol float64) bool {
	switch len(pts) {
	case 0:
		return false
	case 1:
		return p.Distance(pts[0]) <= tol
	}
	for i := 1; i < len(pts); i++ {
		if distToSegment(p, pts[i-1], pts[i]) <= tol {
			return true
		}
	}
	return false
}

// insidePolygon is an even-odd ray cast. The polygon is closed implicitly.
func insidePolygon(p gg.Point, poly []gg.Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func flattenQuad(q gg.QuadBez) []gg.Point {
	pts := make([]gg.Point, 0, curveSteps+1)
	for i := 0; i <= curveSteps; i++ {
		pts = append(pts, q.Eval(float64(i)/curveSteps))
	}
	return pts
}

func boundsOf(pts []gg.Point) gg.Rect {
	if len(pts) == 0 {
		return gg.Rect{}
	}
	r := gg.Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r = r.Union(gg.Rect{Min: p, Max: p})
	}
	return r
}

func expand(r gg.Rect, d float64) gg.Rect {
	return gg.Rect{
		Min: gg.Pt(r.Min.X-d, r.Min.Y-d),
		Max: gg.Pt(r.Max.X+d, r.Max.Y+d),
	}
}
