package paint

// Canvas is the drawing surface ops are played back against. Backends
// implement it; the package never rasterizes by itself.
//
// Flags arguments are owned by the caller and must not be retained.
type Canvas interface {
	// Save pushes the transform and clip.
	Save()
	// SaveLayer pushes an offscreen layer composited with flags on restore.
	// A nil bounds means the layer covers the clip.
	SaveLayer(bounds *Rect, flags *Flags)
	// SaveLayerAlpha pushes a layer composited with uniform alpha.
	SaveLayerAlpha(bounds *Rect, alpha uint8, preserveLCDText bool)
	// Restore pops the most recent save. Restoring with nothing saved is a
	// no-op.
	Restore()
	// SaveCount returns the number of outstanding saves.
	SaveCount() int
	// RestoreToCount restores until SaveCount() == n.
	RestoreToCount(n int)

	ClipRect(r Rect, op ClipOp, antiAlias bool)
	ClipRRect(rr RRect, op ClipOp, antiAlias bool)
	ClipPath(p *Path, op ClipOp, antiAlias bool)

	SetMatrix(m Matrix)
	Concat(m Matrix)
	Translate(dx, dy float32)
	Scale(sx, sy float32)
	Rotate(degrees float32)

	DrawColor(c Color, mode BlendMode)
	DrawRect(r Rect, flags *Flags)
	DrawOval(r Rect, flags *Flags)
	DrawRRect(rr RRect, flags *Flags)
	DrawDRRect(outer, inner RRect, flags *Flags)
	DrawLine(x0, y0, x1, y1 float32, flags *Flags)
	DrawPath(p *Path, flags *Flags)
	DrawImage(img Image, left, top float32, flags *Flags)
	DrawImageRect(img Image, src, dst Rect, flags *Flags, constraint SrcRectConstraint)
	DrawTextBlob(blob *TextBlob, x, y float32, flags *Flags)
	Annotate(t AnnotationType, r Rect, data []byte)

	// TotalMatrix returns the current transform.
	TotalMatrix() Matrix
	// QuickReject reports whether local-space r is certainly outside the
	// clip after transformation. False positives are not allowed.
	QuickReject(r Rect) bool
}
