package stroke

import (
	"math"

	"github.com/gogpu/paint"
)

// Contour is a polyline. A closed contour joins its last point to its
// first.
type Contour struct {
	Points []paint.Point
	Closed bool
}

// maxFlattenDepth bounds curve subdivision.
const maxFlattenDepth = 16

// Flatten converts p into polylines, subdividing curves until control
// points are within tolerance of the chord.
func Flatten(p *paint.Path, tolerance float32) []Contour {
	var (
		out []Contour
		cur Contour
	)
	flush := func() {
		if len(cur.Points) > 1 {
			out = append(out, cur)
		}
		cur = Contour{}
	}
	last := func() paint.Point {
		if len(cur.Points) == 0 {
			return paint.Point{}
		}
		return cur.Points[len(cur.Points)-1]
	}

	for el := range p.Elements() {
		switch el.Verb {
		case paint.VerbMoveTo:
			flush()
			cur.Points = append(cur.Points, el.Points[0])
		case paint.VerbLineTo:
			cur.Points = append(cur.Points, el.Points[0])
		case paint.VerbQuadTo:
			cur.Points = flattenQuad(cur.Points, last(), el.Points[0], el.Points[1], tolerance, 0)
		case paint.VerbCubicTo:
			cur.Points = flattenCubic(cur.Points, last(), el.Points[0], el.Points[1], el.Points[2], tolerance, 0)
		case paint.VerbClose:
			if len(cur.Points) > 0 {
				start := cur.Points[0]
				cur.Closed = true
				flush()
				// Drawing continues from the closed contour's start.
				cur.Points = append(cur.Points, start)
				cur.Closed = false
			}
		}
	}
	flush()
	return out
}

func flattenQuad(dst []paint.Point, p0, p1, p2 paint.Point, tol float32, depth int) []paint.Point {
	if depth >= maxFlattenDepth || distanceToLine(p1, p0, p2) < tol {
		return append(dst, p2)
	}
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	mid := lerp(q0, q1, 0.5)
	dst = flattenQuad(dst, p0, q0, mid, tol, depth+1)
	return flattenQuad(dst, mid, q1, p2, tol, depth+1)
}

func flattenCubic(dst []paint.Point, p0, p1, p2, p3 paint.Point, tol float32, depth int) []paint.Point {
	if depth >= maxFlattenDepth || max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3)) < tol {
		return append(dst, p3)
	}
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	q2 := lerp(p2, p3, 0.5)
	r0 := lerp(q0, q1, 0.5)
	r1 := lerp(q1, q2, 0.5)
	mid := lerp(r0, r1, 0.5)
	dst = flattenCubic(dst, p0, q0, r0, mid, tol, depth+1)
	return flattenCubic(dst, mid, r1, q2, p3, tol, depth+1)
}

func lerp(a, b paint.Point, t float32) paint.Point {
	return paint.Pt(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t)
}

func length(v paint.Point) float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// distanceToLine returns the distance from p to segment ab.
func distanceToLine(p, a, b paint.Point) float32 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 < 1e-12 {
		return length(p.Sub(a))
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / l2
	t = min(max(t, 0), 1)
	return length(p.Sub(paint.Pt(a.X+ab.X*t, a.Y+ab.Y*t)))
}
