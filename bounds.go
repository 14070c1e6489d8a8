package paint

// countSlowPaths returns how many slow rasterization paths op adds beyond
// those its flags already count.
func countSlowPaths(op Op) int {
	switch o := op.(type) {
	case ClipPathOp:
		if o.AntiAlias && !o.Path.IsConvex() {
			return 1
		}
	case DrawPathOp:
		return pathSlowPaths(o.Path, &o.Flags)
	case DrawLineOp:
		// A two-interval dash on a straight line is cheap, unless the caps
		// are round. Cancel the count the dash added through the flags.
		if o.Flags.Dash != nil && len(o.Flags.Dash.Intervals) == 2 && o.Flags.Cap != CapRound {
			return -1
		}
	case DrawRecordOp:
		return o.Record.Buffer().NumSlowPaths()
	}
	return 0
}

// smallPathSize is the side under which an antialiased concave fill is
// cheap enough to be rendered through the mask cache.
const smallPathSize = 64

func pathSlowPaths(p *Path, f *Flags) int {
	if !f.AntiAlias || p.IsConvex() {
		return 0
	}
	if f.Style == StyleStroke && f.StrokeWidth == 0 {
		// Hairlines are always fast.
		return 0
	}
	b := p.Bounds()
	if f.Style == StyleFill && b.Width() < smallPathSize && b.Height() < smallPathSize && !p.IsVolatile() {
		return 0
	}
	return 1
}

// OpHasDiscardableImages reports whether op, its flags, or any record it
// replays references a lazy image.
func OpHasDiscardableImages(op Op) bool {
	if fo, ok := op.(flagsOp); ok && fo.PaintFlags().HasDiscardableImages() {
		return true
	}
	switch o := op.(type) {
	case DrawImageOp:
		return o.Image.IsLazy()
	case DrawImageRectOp:
		return o.Image.IsLazy()
	case DrawRecordOp:
		return o.Record.Buffer().HasDiscardableImages()
	}
	return false
}

// GetBounds returns the local-space bounds of a draw op, before any paint
// outset. It reports false for ops without bounded geometry, such as
// DrawColorOp, which covers the whole clip.
func GetBounds(op Op) (Rect, bool) {
	switch o := op.(type) {
	case DrawDRRectOp:
		return o.Outer.Rect.Sorted(), true
	case DrawImageOp:
		return XYWH(o.Left, o.Top, float32(o.Image.Width()), float32(o.Image.Height())), true
	case DrawImageRectOp:
		return o.Dst.Sorted(), true
	case DrawIRectOp:
		return o.Rect.Rect().Sorted(), true
	case DrawLineOp:
		return LTRB(o.X0, o.Y0, o.X1, o.Y1).Sorted(), true
	case DrawOvalOp:
		return o.Oval.Sorted(), true
	case DrawPathOp:
		return o.Path.Bounds(), true
	case DrawRectOp:
		return o.Rect.Sorted(), true
	case DrawRRectOp:
		return o.RRect.Rect.Sorted(), true
	case DrawTextBlobOp:
		return o.Blob.Bounds.Offset(o.X, o.Y), true
	}
	return Rect{}, false
}

// QuickRejectDraw reports whether drawing op on c is provably invisible
// under the current clip. It is conservative: false means the op might
// draw.
func QuickRejectDraw(op Op, c Canvas) bool {
	if !op.Type().IsDrawOp() {
		return false
	}
	r, ok := GetBounds(op)
	if !ok {
		return false
	}
	if fo, ok := op.(flagsOp); ok {
		f := fo.PaintFlags()
		if !f.CanComputeFastBounds() {
			return false
		}
		r = f.FastBounds(r)
	}
	return c.QuickReject(r)
}
