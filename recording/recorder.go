package recording

import "github.com/gogpu/paint"

// Canvas records canvas calls. It tracks the transform and a conservative
// device-space clip rectangle so that TotalMatrix and QuickReject answer
// like a real surface of the same size.
//
// Canvas is not safe for concurrent use.
type Canvas struct {
	width, height int
	calls         []Call

	ctm   paint.Matrix
	clip  paint.Rect
	stack []canvasState
}

// canvasState stores the state for Save/Restore.
type canvasState struct {
	ctm  paint.Matrix
	clip paint.Rect
}

var _ paint.Canvas = (*Canvas)(nil)

func init() {
	paint.RegisterCanvas("recording", func(width, height int) paint.Canvas {
		return NewCanvas(width, height)
	})
}

// NewCanvas returns a recording canvas whose clip starts as the surface
// rectangle.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		calls:  make([]Call, 0, 64),
		ctm:    paint.Identity(),
		clip:   paint.XYWH(0, 0, float32(width), float32(height)),
	}
}

// Width returns the surface width.
func (c *Canvas) Width() int { return c.width }

// Height returns the surface height.
func (c *Canvas) Height() int { return c.height }

// Calls returns the recorded calls. The slice is owned by the canvas.
func (c *Canvas) Calls() []Call { return c.calls }

// Types returns the type of every recorded call, in order.
func (c *Canvas) Types() []CallType {
	types := make([]CallType, len(c.calls))
	for i, call := range c.calls {
		types[i] = call.Type
	}
	return types
}

// DrawCalls returns only the calls that produce pixels.
func (c *Canvas) DrawCalls() []Call {
	var draws []Call
	for _, call := range c.calls {
		if call.Type.IsDraw() {
			draws = append(draws, call)
		}
	}
	return draws
}

// Reset clears the calls and the state, keeping the surface size.
func (c *Canvas) Reset() {
	c.calls = c.calls[:0]
	c.ctm = paint.Identity()
	c.clip = paint.XYWH(0, 0, float32(c.width), float32(c.height))
	c.stack = c.stack[:0]
}

func (c *Canvas) record(call Call) { c.calls = append(c.calls, call) }

func (c *Canvas) recordFlags(call Call, f *paint.Flags) {
	if f != nil {
		call.Flags = *f
		call.HasFlags = true
	}
	c.record(call)
}

func (c *Canvas) push() {
	c.stack = append(c.stack, canvasState{ctm: c.ctm, clip: c.clip})
}

func (c *Canvas) pop() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	s := c.stack[n-1]
	c.stack = c.stack[:n-1]
	c.ctm, c.clip = s.ctm, s.clip
}

func (c *Canvas) Save() {
	c.record(Call{Type: CallSave})
	c.push()
}

func (c *Canvas) SaveLayer(bounds *paint.Rect, f *paint.Flags) {
	call := Call{Type: CallSaveLayer}
	if bounds != nil {
		call.Rect, call.HasBounds = *bounds, true
	}
	c.recordFlags(call, f)
	c.push()
}

func (c *Canvas) SaveLayerAlpha(bounds *paint.Rect, alpha uint8, preserveLCDText bool) {
	call := Call{Type: CallSaveLayerAlpha, Alpha: alpha, PreserveLCDText: preserveLCDText}
	if bounds != nil {
		call.Rect, call.HasBounds = *bounds, true
	}
	c.record(call)
	c.push()
}

func (c *Canvas) Restore() {
	c.record(Call{Type: CallRestore})
	c.pop()
}

func (c *Canvas) SaveCount() int { return len(c.stack) }

func (c *Canvas) RestoreToCount(n int) {
	c.record(Call{Type: CallRestoreToCount, Count: n})
	for len(c.stack) > max(n, 0) {
		c.pop()
	}
}

func (c *Canvas) clipTo(r paint.Rect, op paint.ClipOp) {
	if op == paint.ClipIntersect {
		c.clip = c.clip.Intersect(c.ctm.MapRect(r.Sorted()))
	}
}

func (c *Canvas) ClipRect(r paint.Rect, op paint.ClipOp, antiAlias bool) {
	c.record(Call{Type: CallClipRect, Rect: r, ClipOp: op, AntiAlias: antiAlias})
	c.clipTo(r, op)
}

func (c *Canvas) ClipRRect(rr paint.RRect, op paint.ClipOp, antiAlias bool) {
	c.record(Call{Type: CallClipRRect, Rect: rr.Rect, RRect: rr, ClipOp: op, AntiAlias: antiAlias})
	c.clipTo(rr.Rect, op)
}

func (c *Canvas) ClipPath(p *paint.Path, op paint.ClipOp, antiAlias bool) {
	c.record(Call{Type: CallClipPath, Rect: p.Bounds(), Path: p, ClipOp: op, AntiAlias: antiAlias})
	c.clipTo(p.Bounds(), op)
}

func (c *Canvas) SetMatrix(m paint.Matrix) {
	c.record(Call{Type: CallSetMatrix, Matrix: m})
	c.ctm = m
}

func (c *Canvas) Concat(m paint.Matrix) {
	c.record(Call{Type: CallConcat, Matrix: m})
	c.ctm = c.ctm.Multiply(m)
}

func (c *Canvas) Translate(dx, dy float32) {
	c.record(Call{Type: CallTranslate, X: dx, Y: dy})
	c.ctm = c.ctm.Multiply(paint.Translate(dx, dy))
}

func (c *Canvas) Scale(sx, sy float32) {
	c.record(Call{Type: CallScale, X: sx, Y: sy})
	c.ctm = c.ctm.Multiply(paint.Scale(sx, sy))
}

func (c *Canvas) Rotate(degrees float32) {
	c.record(Call{Type: CallRotate, X: degrees})
	c.ctm = c.ctm.Multiply(paint.Rotate(degrees))
}

func (c *Canvas) DrawColor(col paint.Color, mode paint.BlendMode) {
	c.record(Call{Type: CallDrawColor, Color: col, Mode: mode})
}

func (c *Canvas) DrawRect(r paint.Rect, f *paint.Flags) {
	c.recordFlags(Call{Type: CallDrawRect, Rect: r}, f)
}

func (c *Canvas) DrawOval(r paint.Rect, f *paint.Flags) {
	c.recordFlags(Call{Type: CallDrawOval, Rect: r}, f)
}

func (c *Canvas) DrawRRect(rr paint.RRect, f *paint.Flags) {
	c.recordFlags(Call{Type: CallDrawRRect, Rect: rr.Rect, RRect: rr}, f)
}

func (c *Canvas) DrawDRRect(outer, inner paint.RRect, f *paint.Flags) {
	c.recordFlags(Call{Type: CallDrawDRRect, Rect: outer.Rect, RRect: outer, Inner: inner}, f)
}

func (c *Canvas) DrawLine(x0, y0, x1, y1 float32, f *paint.Flags) {
	c.recordFlags(Call{Type: CallDrawLine, X: x0, Y: y0, X1: x1, Y1: y1}, f)
}

func (c *Canvas) DrawPath(p *paint.Path, f *paint.Flags) {
	c.recordFlags(Call{Type: CallDrawPath, Rect: p.Bounds(), Path: p}, f)
}

func (c *Canvas) DrawImage(img paint.Image, left, top float32, f *paint.Flags) {
	c.recordFlags(Call{Type: CallDrawImage, Image: img, X: left, Y: top}, f)
}

func (c *Canvas) DrawImageRect(img paint.Image, src, dst paint.Rect, f *paint.Flags, constraint paint.SrcRectConstraint) {
	c.recordFlags(Call{Type: CallDrawImageRect, Image: img, Src: src, Rect: dst, Constraint: constraint}, f)
}

func (c *Canvas) DrawTextBlob(blob *paint.TextBlob, x, y float32, f *paint.Flags) {
	c.recordFlags(Call{Type: CallDrawTextBlob, Blob: blob, X: x, Y: y}, f)
}

func (c *Canvas) Annotate(t paint.AnnotationType, r paint.Rect, data []byte) {
	c.record(Call{Type: CallAnnotate, Annotation: t, Rect: r, Data: data})
}

func (c *Canvas) TotalMatrix() paint.Matrix { return c.ctm }

// QuickReject reports whether r, mapped to device space, misses the
// tracked clip rectangle.
func (c *Canvas) QuickReject(r paint.Rect) bool {
	return !c.ctm.MapRect(r.Sorted()).Intersects(c.clip)
}
