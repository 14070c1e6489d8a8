package paint

import "fmt"

// PlaybackParams carries playback-wide state into per-op rasterization.
type PlaybackParams struct {
	// ImageProvider decodes lazy images. Nil draws images as recorded.
	ImageProvider ImageProvider

	// OriginalMatrix is the canvas transform when playback started.
	// SetMatrixOp is applied relative to it.
	OriginalMatrix Matrix
}

// Raster executes op against c.
func Raster(op Op, c Canvas, p *PlaybackParams) {
	opInfos[op.Type()].raster(op, c, p)
}

// RasterWithFlags executes a flagged op with f in place of its own flags.
// It panics for op types without flags.
func RasterWithFlags(op Op, f *Flags, c Canvas, p *PlaybackParams) {
	opInfos[op.Type()].rasterWithFlags(op, f, c, p)
}

// RasterWithAlpha executes a draw op as if it were wrapped in a
// SaveLayerAlpha with bounds and alpha. When the op's paint can absorb
// the alpha, no layer is created. f overrides the op's flags when non-nil.
func RasterWithAlpha(op Op, f *Flags, c Canvas, p *PlaybackParams, bounds Rect, alpha uint8) {
	var layerBounds *Rect
	if !bounds.IsUnset() {
		layerBounds = &bounds
	}
	if fo, ok := op.(flagsOp); ok {
		if f == nil {
			f = fo.PaintFlags()
		}
		if f.SupportsFoldingAlpha() {
			alphaFlags := *f
			alphaFlags.SetAlpha(MulDiv255Round(f.Alpha(), alpha))
			RasterWithFlags(op, &alphaFlags, c, p)
			return
		}
		c.SaveLayerAlpha(layerBounds, alpha, false)
		RasterWithFlags(op, f, c, p)
		c.Restore()
		return
	}
	if dc, ok := op.(DrawColorOp); ok && dc.Mode == BlendSrcOver {
		c.DrawColor(dc.Color.WithAlpha(MulDiv255Round(alpha, dc.Color.A())), dc.Mode)
		return
	}
	c.SaveLayerAlpha(layerBounds, alpha, false)
	Raster(op, c, p)
	c.Restore()
}

func rasterFromFlags(fn rasterWithFlagsFunc) rasterFunc {
	return func(op Op, c Canvas, p *PlaybackParams) {
		fn(op, op.(flagsOp).PaintFlags(), c, p)
	}
}

func rasterWithoutFlags(op Op, _ *Flags, _ Canvas, _ *PlaybackParams) {
	panic(fmt.Sprintf("paint: %s has no flags", op.Type()))
}

func rasterAnnotate(op Op, c Canvas, _ *PlaybackParams) {
	o := op.(AnnotateOp)
	c.Annotate(o.Annotation, o.Rect, o.Data)
}

func rasterClipPath(op Op, c Canvas, _ *PlaybackParams) {
	o := op.(ClipPathOp)
	c.ClipPath(o.Path, o.Op, o.AntiAlias)
}

func rasterClipRect(op Op, c Canvas, _ *PlaybackParams) {
	o := op.(ClipRectOp)
	c.ClipRect(o.Rect, o.Op, o.AntiAlias)
}

func rasterClipRRect(op Op, c Canvas, _ *PlaybackParams) {
	o := op.(ClipRRectOp)
	c.ClipRRect(o.RRect, o.Op, o.AntiAlias)
}

func rasterConcat(op Op, c Canvas, _ *PlaybackParams) {
	c.Concat(op.(ConcatOp).Matrix)
}

func rasterDrawColor(op Op, c Canvas, _ *PlaybackParams) {
	o := op.(DrawColorOp)
	c.DrawColor(o.Color, o.Mode)
}

func rasterDrawDRRect(op Op, f *Flags, c Canvas, _ *PlaybackParams) {
	o := op.(DrawDRRectOp)
	c.DrawDRRect(o.Outer, o.Inner, f)
}

func rasterDrawImage(op Op, f *Flags, c Canvas, p *PlaybackParams) {
	o := op.(DrawImageOp)
	if p.ImageProvider == nil || !o.Image.IsLazy() {
		c.DrawImage(o.Image, o.Left, o.Top, f)
		return
	}
	scoped, ok := p.ImageProvider.GetDecodedDrawImage(DrawImage{
		Image:         o.Image,
		SrcRect:       IRect{MaxX: int32(o.Image.Width()), MaxY: int32(o.Image.Height())}, // #nosec G115 -- bounded image size
		FilterQuality: f.FilterQuality,
		Matrix:        c.TotalMatrix(),
	})
	if !ok {
		Logger().Warn("paint: image decode failed", "image", o.Image.ID())
		return
	}
	defer scoped.Release()
	d := scoped.DecodedImage()

	decodedFlags := *f
	decodedFlags.FilterQuality = d.FilterQuality
	if d.IsScaleAdjustmentIdentity() {
		c.DrawImage(d.Image, o.Left, o.Top, &decodedFlags)
		return
	}
	c.Save()
	c.Translate(o.Left, o.Top)
	c.Scale(1/d.ScaleAdjustment.X, 1/d.ScaleAdjustment.Y)
	c.DrawImage(d.Image, 0, 0, &decodedFlags)
	c.Restore()
}

func rasterDrawImageRect(op Op, f *Flags, c Canvas, p *PlaybackParams) {
	o := op.(DrawImageRectOp)
	if p.ImageProvider == nil || !o.Image.IsLazy() {
		c.DrawImageRect(o.Image, o.Src, o.Dst, f, o.Constraint)
		return
	}
	scoped, ok := p.ImageProvider.GetDecodedDrawImage(DrawImage{
		Image:         o.Image,
		SrcRect:       o.Src.RoundOut(),
		FilterQuality: f.FilterQuality,
		Matrix:        c.TotalMatrix(),
	})
	if !ok {
		Logger().Warn("paint: image decode failed", "image", o.Image.ID())
		return
	}
	defer scoped.Release()
	d := scoped.DecodedImage()

	src := o.Src.Offset(d.SrcRectOffset.X, d.SrcRectOffset.Y)
	if !d.IsScaleAdjustmentIdentity() {
		sx, sy := d.ScaleAdjustment.X, d.ScaleAdjustment.Y
		src = XYWH(src.MinX*sx, src.MinY*sy, src.Width()*sx, src.Height()*sy)
	}
	decodedFlags := *f
	decodedFlags.FilterQuality = d.FilterQuality
	c.DrawImageRect(d.Image, src, o.Dst, &decodedFlags, o.Constraint)
}

func rasterDrawIRect(op Op, f *Flags, c Canvas, _ *PlaybackParams) {
	c.DrawRect(op.(DrawIRectOp).Rect.Rect(), f)
}

func rasterDrawLine(op Op, f *Flags, c Canvas, _ *PlaybackParams) {
	o := op.(DrawLineOp)
	c.DrawLine(o.X0, o.Y0, o.X1, o.Y1, f)
}

func rasterDrawOval(op Op, f *Flags, c Canvas, _ *PlaybackParams) {
	c.DrawOval(op.(DrawOvalOp).Oval, f)
}

func rasterDrawPath(op Op, f *Flags, c Canvas, _ *PlaybackParams) {
	c.DrawPath(op.(DrawPathOp).Path, f)
}

func rasterDrawRecord(op Op, c Canvas, p *PlaybackParams) {
	// Nested playback takes its own original matrix from c.
	op.(DrawRecordOp).Record.Buffer().Playback(c, WithImageProvider(p.ImageProvider))
}

func rasterDrawRect(op Op, f *Flags, c Canvas, _ *PlaybackParams) {
	c.DrawRect(op.(DrawRectOp).Rect, f)
}

func rasterDrawRRect(op Op, f *Flags, c Canvas, _ *PlaybackParams) {
	c.DrawRRect(op.(DrawRRectOp).RRect, f)
}

func rasterDrawTextBlob(op Op, f *Flags, c Canvas, _ *PlaybackParams) {
	o := op.(DrawTextBlobOp)
	c.DrawTextBlob(o.Blob, o.X, o.Y, f)
}

func rasterNoop(Op, Canvas, *PlaybackParams) {}

func rasterRestore(_ Op, c Canvas, _ *PlaybackParams) { c.Restore() }

func rasterRotate(op Op, c Canvas, _ *PlaybackParams) {
	c.Rotate(op.(RotateOp).Degrees)
}

func rasterSave(_ Op, c Canvas, _ *PlaybackParams) { c.Save() }

func rasterSaveLayer(op Op, f *Flags, c Canvas, _ *PlaybackParams) {
	o := op.(SaveLayerOp)
	if o.HasBounds() {
		c.SaveLayer(&o.Bounds, f)
		return
	}
	c.SaveLayer(nil, f)
}

func rasterSaveLayerAlpha(op Op, c Canvas, _ *PlaybackParams) {
	o := op.(SaveLayerAlphaOp)
	if o.HasBounds() {
		c.SaveLayerAlpha(&o.Bounds, o.Alpha, o.PreserveLCDTextRequests)
		return
	}
	c.SaveLayerAlpha(nil, o.Alpha, o.PreserveLCDTextRequests)
}

func rasterScale(op Op, c Canvas, _ *PlaybackParams) {
	o := op.(ScaleOp)
	c.Scale(o.SX, o.SY)
}

func rasterSetMatrix(op Op, c Canvas, p *PlaybackParams) {
	c.SetMatrix(p.OriginalMatrix.Multiply(op.(SetMatrixOp).Matrix))
}

func rasterTranslate(op Op, c Canvas, _ *PlaybackParams) {
	o := op.(TranslateOp)
	c.Translate(o.DX, o.DY)
}
