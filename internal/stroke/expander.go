package stroke

import (
	"math"

	"github.com/gogpu/paint"
)

// Style describes how a contour is stroked.
type Style struct {
	Width      float32
	Cap        paint.Cap
	Join       paint.Join
	MiterLimit float32
}

// Sink receives fill polygons. *vector.Rasterizer satisfies it.
type Sink interface {
	MoveTo(x, y float32)
	LineTo(x, y float32)
	ClosePath()
}

// vec is a float64 point used for offset math.
type vec struct{ x, y float64 }

func toVec(p paint.Point) vec      { return vec{float64(p.X), float64(p.Y)} }
func (a vec) add(b vec) vec         { return vec{a.x + b.x, a.y + b.y} }
func (a vec) sub(b vec) vec         { return vec{a.x - b.x, a.y - b.y} }
func (a vec) scale(s float64) vec   { return vec{a.x * s, a.y * s} }
func (a vec) dot(b vec) float64     { return a.x*b.x + a.y*b.y }
func (a vec) cross(b vec) float64   { return a.x*b.y - a.y*b.x }
func (a vec) length() float64       { return math.Hypot(a.x, a.y) }
func (a vec) perp() vec             { return vec{-a.y, a.x} }
func (a vec) rotate(angle float64) vec {
	s, c := math.Sincos(angle)
	return vec{a.x*c - a.y*s, a.x*s + a.y*c}
}

// arcStep is the largest angle one polygon edge of a round join or cap
// spans.
const arcStep = math.Pi / 16

// Expand emits the fill outline of every contour stroked with s.
// Degenerate widths emit nothing.
func Expand(contours []Contour, s Style, sink Sink) {
	if !(s.Width > 0) {
		return
	}
	e := expander{hw: float64(s.Width) / 2, style: s, sink: sink}
	for _, c := range contours {
		e.contour(c)
	}
}

type expander struct {
	hw    float64
	style Style
	sink  Sink

	left, right []vec
}

func (e *expander) contour(c Contour) {
	pts := make([]vec, 0, len(c.Points))
	for _, p := range c.Points {
		v := toVec(p)
		if n := len(pts); n > 0 && v.sub(pts[n-1]).length() < 1e-9 {
			continue
		}
		pts = append(pts, v)
	}
	if c.Closed && len(pts) > 2 && pts[0].sub(pts[len(pts)-1]).length() < 1e-9 {
		pts = pts[:len(pts)-1]
	}

	switch {
	case len(pts) == 0:
		return
	case len(pts) == 1:
		e.dot(pts[0])
		return
	case c.Closed && len(pts) > 2:
		e.closed(pts)
	default:
		e.open(pts)
	}
}

// normal returns the left offset of segment a->b.
func (e *expander) normal(a, b vec) vec {
	t := b.sub(a)
	return t.perp().scale(e.hw / t.length())
}

func (e *expander) open(pts []vec) {
	e.left, e.right = e.left[:0], e.right[:0]
	n0 := e.normal(pts[0], pts[1])
	e.left = append(e.left, pts[0].add(n0))
	e.right = append(e.right, pts[0].sub(n0))
	for i := 1; i < len(pts)-1; i++ {
		e.join(pts[i-1], pts[i], pts[i+1])
	}
	last := len(pts) - 1
	nl := e.normal(pts[last-1], pts[last])
	e.left = append(e.left, pts[last].add(nl))
	e.right = append(e.right, pts[last].sub(nl))

	e.moveTo(e.left[0])
	for _, p := range e.left[1:] {
		e.lineTo(p)
	}
	e.cap(pts[last], nl, pts[last].sub(pts[last-1]))
	for i := len(e.right) - 1; i >= 0; i-- {
		e.lineTo(e.right[i])
	}
	e.cap(pts[0], n0.scale(-1), pts[0].sub(pts[1]))
	e.sink.ClosePath()
}

func (e *expander) closed(pts []vec) {
	e.left, e.right = e.left[:0], e.right[:0]
	n := len(pts)
	for i := range n {
		e.join(pts[(i+n-1)%n], pts[i], pts[(i+1)%n])
	}
	e.moveTo(e.left[0])
	for _, p := range e.left[1:] {
		e.lineTo(p)
	}
	e.sink.ClosePath()
	e.moveTo(e.right[len(e.right)-1])
	for i := len(e.right) - 2; i >= 0; i-- {
		e.lineTo(e.right[i])
	}
	e.sink.ClosePath()
}

// join appends the offset points around vertex b of a->b->c to both
// sides.
func (e *expander) join(a, b, c vec) {
	n0 := e.normal(a, b)
	n1 := e.normal(b, c)
	t0, t1 := b.sub(a), c.sub(b)
	cross := t0.cross(t1)
	if math.Abs(cross) < 1e-9*t0.length()*t1.length() && t0.dot(t1) > 0 {
		e.left = append(e.left, b.add(n1))
		e.right = append(e.right, b.sub(n1))
		return
	}

	// Turning left puts the outer corner on the right side.
	outer, inner := &e.left, &e.right
	sign := 1.0
	if cross > 0 {
		outer, inner = &e.right, &e.left
		sign = -1
	}
	o0, o1 := n0.scale(sign), n1.scale(sign)

	*inner = append(*inner, b.sub(o0), b, b.sub(o1))
	*outer = append(*outer, b.add(o0))
	switch e.style.Join {
	case paint.JoinRound:
		*outer = e.arc(*outer, b, o0, o1)
	case paint.JoinMiter:
		cosTheta := o0.dot(o1) / (e.hw * e.hw)
		cosHalf := math.Sqrt(max((1+cosTheta)/2, 0))
		if cosHalf > 1e-9 && 1/cosHalf <= float64(e.style.MiterLimit) {
			mid := o0.add(o1)
			mid = mid.scale(e.hw / cosHalf / mid.length())
			*outer = append(*outer, b.add(mid))
		}
	}
	*outer = append(*outer, b.add(o1))
}

// arc appends points on the circle around center from offset from to
// offset to, excluding both ends, taking the shorter way.
func (e *expander) arc(dst []vec, center, from, to vec) []vec {
	angle := math.Atan2(from.cross(to), from.dot(to))
	steps := int(math.Ceil(math.Abs(angle) / arcStep))
	for i := 1; i < steps; i++ {
		dst = append(dst, center.add(from.rotate(angle*float64(i)/float64(steps))))
	}
	return dst
}

// cap connects the left offset at end p to the right offset. n is the
// left normal at p and dir points out of the contour.
func (e *expander) cap(p, n, dir vec) {
	switch e.style.Cap {
	case paint.CapSquare:
		ext := dir.scale(e.hw / dir.length())
		e.lineTo(p.add(n).add(ext))
		e.lineTo(p.sub(n).add(ext))
	case paint.CapRound:
		// Half turn from n to -n through dir.
		angle := math.Pi
		if n.cross(dir) < 0 {
			angle = -math.Pi
		}
		steps := int(math.Ceil(math.Pi / arcStep))
		for i := 1; i < steps; i++ {
			e.lineTo(p.add(n.rotate(angle * float64(i) / float64(steps))))
		}
	}
}

// dot strokes a zero-length contour. Only round and square caps draw.
func (e *expander) dot(p vec) {
	switch e.style.Cap {
	case paint.CapRound:
		r := vec{e.hw, 0}
		steps := int(math.Ceil(2 * math.Pi / arcStep))
		e.moveTo(p.add(r))
		for i := 1; i < steps; i++ {
			e.lineTo(p.add(r.rotate(2 * math.Pi * float64(i) / float64(steps))))
		}
		e.sink.ClosePath()
	case paint.CapSquare:
		e.moveTo(vec{p.x - e.hw, p.y - e.hw})
		e.lineTo(vec{p.x + e.hw, p.y - e.hw})
		e.lineTo(vec{p.x + e.hw, p.y + e.hw})
		e.lineTo(vec{p.x - e.hw, p.y + e.hw})
		e.sink.ClosePath()
	}
}

func (e *expander) moveTo(p vec) { e.sink.MoveTo(float32(p.x), float32(p.y)) }
func (e *expander) lineTo(p vec) { e.sink.LineTo(float32(p.x), float32(p.y)) }
