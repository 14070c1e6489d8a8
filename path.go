package paint

import (
	"iter"
	"math"
	"slices"
)

// PathVerb represents a path construction command.
type PathVerb uint8

// Path verb constants.
const (
	// VerbMoveTo moves the current point without drawing.
	VerbMoveTo PathVerb = iota
	// VerbLineTo draws a line to the specified point.
	VerbLineTo
	// VerbQuadTo draws a quadratic Bezier curve.
	VerbQuadTo
	// VerbCubicTo draws a cubic Bezier curve.
	VerbCubicTo
	// VerbClose closes the current subpath.
	VerbClose
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// String returns a human-readable name for the verb.
func (v PathVerb) String() string {
	switch v {
	case VerbMoveTo:
		return "MoveTo"
	case VerbLineTo:
		return "LineTo"
	case VerbQuadTo:
		return "QuadTo"
	case VerbCubicTo:
		return "CubicTo"
	case VerbClose:
		return "Close"
	default:
		return unknownStr
	}
}

// PointCount returns the number of coordinates this verb consumes.
func (v PathVerb) PointCount() int {
	switch v {
	case VerbMoveTo, VerbLineTo:
		return 2 // x, y
	case VerbQuadTo:
		return 4 // cx, cy, x, y
	case VerbCubicTo:
		return 6 // c1x, c1y, c2x, c2y, x, y
	default:
		return 0
	}
}

// FillRule selects how overlapping contours are filled.
type FillRule uint8

const (
	FillNonZero FillRule = iota
	FillEvenOdd
)

// Path is a vector path. It stores verbs and coordinates separately.
//
// A path handed to a Buffer is shared with the recording and must not be
// modified afterwards.
type Path struct {
	verbs    []PathVerb
	points   []float32
	bounds   Rect
	start    Point
	cursor   Point
	fillRule FillRule
	volatile bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		verbs:  make([]PathVerb, 0, 16),
		points: make([]float32, 0, 64),
		bounds: EmptyRect(),
	}
}

// MoveTo begins a new subpath at the specified point.
func (p *Path) MoveTo(x, y float32) *Path {
	p.verbs = append(p.verbs, VerbMoveTo)
	p.points = append(p.points, x, y)
	p.bounds = p.bounds.UnionPoint(Point{x, y})
	p.start = Point{x, y}
	p.cursor = p.start
	return p
}

// LineTo draws a line from the current point to (x, y).
func (p *Path) LineTo(x, y float32) *Path {
	p.verbs = append(p.verbs, VerbLineTo)
	p.points = append(p.points, x, y)
	p.bounds = p.bounds.UnionPoint(Point{x, y})
	p.cursor = Point{x, y}
	return p
}

// QuadTo draws a quadratic Bezier curve to (x, y) with control (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float32) *Path {
	p.verbs = append(p.verbs, VerbQuadTo)
	p.points = append(p.points, cx, cy, x, y)
	// Control points give a conservative bound.
	p.bounds = p.bounds.UnionPoint(Point{cx, cy}).UnionPoint(Point{x, y})
	p.cursor = Point{x, y}
	return p
}

// CubicTo draws a cubic Bezier curve to (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) *Path {
	p.verbs = append(p.verbs, VerbCubicTo)
	p.points = append(p.points, c1x, c1y, c2x, c2y, x, y)
	p.bounds = p.bounds.UnionPoint(Point{c1x, c1y}).
		UnionPoint(Point{c2x, c2y}).
		UnionPoint(Point{x, y})
	p.cursor = Point{x, y}
	return p
}

// Close closes the current subpath by drawing a line back to its start.
func (p *Path) Close() *Path {
	p.verbs = append(p.verbs, VerbClose)
	p.cursor = p.start
	return p
}

// Rectangle adds a rectangle path.
func (p *Path) Rectangle(r Rect) *Path {
	return p.MoveTo(r.MinX, r.MinY).
		LineTo(r.MaxX, r.MinY).
		LineTo(r.MaxX, r.MaxY).
		LineTo(r.MinX, r.MaxY).
		Close()
}

// kappa approximates a quarter circle with a cubic: 4*(sqrt(2)-1)/3.
const kappa = 0.5522847498

// RoundRect adds a rounded rectangle with per-corner radii.
func (p *Path) RoundRect(rr RRect) *Path {
	if rr.IsRect() {
		return p.Rectangle(rr.Rect)
	}
	r := rr.Rect
	tl, tr, br, bl := rr.Radii[0], rr.Radii[1], rr.Radii[2], rr.Radii[3]

	p.MoveTo(r.MinX+tl.X, r.MinY)
	p.LineTo(r.MaxX-tr.X, r.MinY)
	p.CubicTo(r.MaxX-tr.X+kappa*tr.X, r.MinY, r.MaxX, r.MinY+tr.Y-kappa*tr.Y, r.MaxX, r.MinY+tr.Y)
	p.LineTo(r.MaxX, r.MaxY-br.Y)
	p.CubicTo(r.MaxX, r.MaxY-br.Y+kappa*br.Y, r.MaxX-br.X+kappa*br.X, r.MaxY, r.MaxX-br.X, r.MaxY)
	p.LineTo(r.MinX+bl.X, r.MaxY)
	p.CubicTo(r.MinX+bl.X-kappa*bl.X, r.MaxY, r.MinX, r.MaxY-bl.Y+kappa*bl.Y, r.MinX, r.MaxY-bl.Y)
	p.LineTo(r.MinX, r.MinY+tl.Y)
	p.CubicTo(r.MinX, r.MinY+tl.Y-kappa*tl.Y, r.MinX+tl.X-kappa*tl.X, r.MinY, r.MinX+tl.X, r.MinY)
	return p.Close()
}

// Oval adds an ellipse inscribed in r.
func (p *Path) Oval(r Rect) *Path {
	cx, cy := (r.MinX+r.MaxX)/2, (r.MinY+r.MaxY)/2
	rx, ry := r.Width()/2, r.Height()/2
	kx, ky := kappa*rx, kappa*ry

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry) // to bottom
	p.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy) // to left
	p.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry) // to top
	p.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy) // back to start
	return p.Close()
}

// Circle adds a circle path.
func (p *Path) Circle(cx, cy, r float32) *Path {
	return p.Oval(LTRB(cx-r, cy-r, cx+r, cy+r))
}

// Bounds returns the bounding rectangle of the path, including control
// points. An empty path has empty bounds.
func (p *Path) Bounds() Rect {
	if len(p.verbs) == 0 {
		return Rect{}
	}
	return p.bounds
}

// IsEmpty returns true if the path has no commands.
func (p *Path) IsEmpty() bool {
	return len(p.verbs) == 0
}

// Verbs returns the verb stream.
func (p *Path) Verbs() []PathVerb {
	return p.verbs
}

// Points returns the coordinate stream.
func (p *Path) Points() []float32 {
	return p.points
}

// FillRule returns the fill rule.
func (p *Path) FillRule() FillRule { return p.fillRule }

// SetFillRule sets the fill rule.
func (p *Path) SetFillRule(r FillRule) *Path {
	p.fillRule = r
	return p
}

// IsVolatile reports whether the path is expected to change every frame,
// which makes caching its rasterization pointless.
func (p *Path) IsVolatile() bool { return p.volatile }

// SetVolatile marks the path as volatile.
func (p *Path) SetVolatile(v bool) *Path {
	p.volatile = v
	return p
}

// Transform returns a new path with all points transformed by m.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	result.verbs = slices.Clone(p.verbs)
	result.points = make([]float32, len(p.points))
	for i := 0; i < len(p.points); i += 2 {
		q := m.TransformPoint(Point{p.points[i], p.points[i+1]})
		result.points[i] = q.X
		result.points[i+1] = q.Y
		result.bounds = result.bounds.UnionPoint(q)
	}
	result.start = m.TransformPoint(p.start)
	result.cursor = m.TransformPoint(p.cursor)
	result.fillRule = p.fillRule
	result.volatile = p.volatile
	return result
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	c := *p
	c.verbs = slices.Clone(p.verbs)
	c.points = slices.Clone(p.points)
	return &c
}

// Equal reports whether both paths have the same geometry and attributes.
func (p *Path) Equal(other *Path) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.fillRule == other.fillRule &&
		p.volatile == other.volatile &&
		slices.Equal(p.verbs, other.verbs) &&
		slices.Equal(p.points, other.points)
}

// pathFromData rebuilds a path from raw streams. It fails when the point
// stream does not match the verbs or when a coordinate is not finite.
func pathFromData(verbs []PathVerb, points []float32, rule FillRule, volatile bool) (*Path, bool) {
	if rule > FillEvenOdd {
		return nil, false
	}
	p := NewPath()
	i := 0
	for _, v := range verbs {
		if v > VerbClose {
			return nil, false
		}
		n := v.PointCount()
		if i+n > len(points) {
			return nil, false
		}
		c := points[i : i+n]
		for _, f := range c {
			if !isFinite(f) {
				return nil, false
			}
		}
		switch v {
		case VerbMoveTo:
			p.MoveTo(c[0], c[1])
		case VerbLineTo:
			p.LineTo(c[0], c[1])
		case VerbQuadTo:
			p.QuadTo(c[0], c[1], c[2], c[3])
		case VerbCubicTo:
			p.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case VerbClose:
			p.Close()
		}
		i += n
	}
	if i != len(points) {
		return nil, false
	}
	p.fillRule = rule
	p.volatile = volatile
	return p, true
}

// PathElement is one verb with its points.
type PathElement struct {
	Verb   PathVerb
	Points []Point
}

// Elements returns an iterator over all path elements.
func (p *Path) Elements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		i := 0
		for _, verb := range p.verbs {
			n := verb.PointCount()
			elem := PathElement{Verb: verb}
			for j := 0; j < n; j += 2 {
				elem.Points = append(elem.Points, Point{p.points[i+j], p.points[i+j+1]})
			}
			i += n
			if !yield(elem) {
				return
			}
		}
	}
}

// IsConvex reports whether the path is a single contour whose polygon of
// on-curve and control points turns in one direction only and winds at most
// once. Curves are judged by their control polygon, which is conservative.
func (p *Path) IsConvex() bool {
	var pts []Point
	contours := 0
	for elem := range p.Elements() {
		switch elem.Verb {
		case VerbMoveTo:
			if contours > 0 && len(pts) > 1 {
				return false
			}
			contours++
			pts = pts[:0]
			pts = append(pts, elem.Points...)
		case VerbClose:
		default:
			pts = append(pts, elem.Points...)
		}
	}
	// Drop the repeated start point of a contour that returns home.
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return true
	}

	var sign float32
	var turn float64
	n := len(pts)
	prev := pts[0].Sub(pts[n-1])
	for i := range n {
		next := pts[(i+1)%n].Sub(pts[i])
		if next.X == 0 && next.Y == 0 {
			continue
		}
		if prev.X == 0 && prev.Y == 0 {
			prev = next
			continue
		}
		cross := prev.Cross(next)
		if cross != 0 {
			if sign == 0 {
				sign = cross
			} else if (cross > 0) != (sign > 0) {
				return false
			}
		}
		dot := float64(prev.X)*float64(next.X) + float64(prev.Y)*float64(next.Y)
		turn += math.Abs(math.Atan2(float64(cross), dot))
		prev = next
	}
	return turn <= 2*math.Pi+1e-3
}
