package paint

import "math"

// Rect is an axis-aligned rectangle in float coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// UnsetRect marks an optional rectangle that was not supplied, such as the
// bounds of a SaveLayerOp that covers the whole canvas. Only MinX carries
// the marker.
var UnsetRect = Rect{MinX: float32(math.Inf(1))}

// XYWH creates a rectangle from its origin and size.
func XYWH(x, y, w, h float32) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// LTRB creates a rectangle from its edges.
func LTRB(l, t, r, b float32) Rect {
	return Rect{MinX: l, MinY: t, MaxX: r, MaxY: b}
}

// EmptyRect returns an inverted rectangle that acts as the identity for
// Union and UnionPoint.
func EmptyRect() Rect {
	return Rect{
		MinX: float32(math.Inf(1)),
		MinY: float32(math.Inf(1)),
		MaxX: float32(math.Inf(-1)),
		MaxY: float32(math.Inf(-1)),
	}
}

// IsUnset reports whether r is UnsetRect.
func (r Rect) IsUnset() bool {
	return math.IsInf(float64(r.MinX), 1)
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return !(r.MaxX > r.MinX && r.MaxY > r.MinY)
}

// Width returns the rectangle width.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the rectangle height.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// Sorted returns r with min and max swapped where needed.
func (r Rect) Sorted() Rect {
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MinY > r.MaxY {
		r.MinY, r.MaxY = r.MaxY, r.MinY
	}
	return r
}

// Offset translates the rectangle.
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{MinX: r.MinX + dx, MinY: r.MinY + dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// Outset grows the rectangle by dx horizontally and dy vertically.
func (r Rect) Outset(dx, dy float32) Rect {
	return Rect{MinX: r.MinX - dx, MinY: r.MinY - dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// Union returns the smallest rectangle containing both.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		MinX: min(r.MinX, other.MinX),
		MinY: min(r.MinY, other.MinY),
		MaxX: max(r.MaxX, other.MaxX),
		MaxY: max(r.MaxY, other.MaxY),
	}
}

// UnionPoint expands the rectangle to include p.
func (r Rect) UnionPoint(p Point) Rect {
	return Rect{
		MinX: min(r.MinX, p.X),
		MinY: min(r.MinY, p.Y),
		MaxX: max(r.MaxX, p.X),
		MaxY: max(r.MaxY, p.Y),
	}
}

// Intersect returns the overlap of both rectangles. The result is empty when
// they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	return Rect{
		MinX: max(r.MinX, other.MinX),
		MinY: max(r.MinY, other.MinY),
		MaxX: min(r.MaxX, other.MaxX),
		MaxY: min(r.MaxY, other.MaxY),
	}
}

// Intersects reports whether both rectangles overlap with positive area.
func (r Rect) Intersects(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

// Contains reports whether p lies inside r (half-open on max edges).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// RoundOut returns the smallest integer rectangle containing r.
func (r Rect) RoundOut() IRect {
	return IRect{
		MinX: int32(math.Floor(float64(r.MinX))),
		MinY: int32(math.Floor(float64(r.MinY))),
		MaxX: int32(math.Ceil(float64(r.MaxX))),
		MaxY: int32(math.Ceil(float64(r.MaxY))),
	}
}

// IsFinite reports whether every edge is finite.
func (r Rect) IsFinite() bool {
	return isFinite(r.MinX) && isFinite(r.MinY) && isFinite(r.MaxX) && isFinite(r.MaxY)
}

// IRect is an axis-aligned rectangle in integer coordinates.
type IRect struct {
	MinX, MinY, MaxX, MaxY int32
}

// Rect converts to float coordinates.
func (r IRect) Rect() Rect {
	return Rect{MinX: float32(r.MinX), MinY: float32(r.MinY), MaxX: float32(r.MaxX), MaxY: float32(r.MaxY)}
}

// Width returns the rectangle width.
func (r IRect) Width() int32 { return r.MaxX - r.MinX }

// Height returns the rectangle height.
func (r IRect) Height() int32 { return r.MaxY - r.MinY }

// RRect is a rectangle with elliptical corners. Radii are ordered top-left,
// top-right, bottom-right, bottom-left.
type RRect struct {
	Rect  Rect
	Radii [4]Point
}

// RRectXY creates a rounded rectangle with the same radii on every corner.
func RRectXY(r Rect, rx, ry float32) RRect {
	rr := RRect{Rect: r}
	for i := range rr.Radii {
		rr.Radii[i] = Point{X: rx, Y: ry}
	}
	return rr
}

// Bounds returns the enclosing rectangle.
func (rr RRect) Bounds() Rect { return rr.Rect }

// IsRect reports whether every radius is zero.
func (rr RRect) IsRect() bool {
	for _, r := range rr.Radii {
		if r.X != 0 || r.Y != 0 {
			return false
		}
	}
	return true
}

// IsValid reports whether the radii are non-negative and finite.
func (rr RRect) IsValid() bool {
	if !rr.Rect.IsFinite() {
		return false
	}
	for _, r := range rr.Radii {
		if !r.IsFinite() || r.X < 0 || r.Y < 0 {
			return false
		}
	}
	return true
}
