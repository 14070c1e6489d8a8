package raster

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/internal/blend"
	"github.com/gogpu/paint/internal/stroke"
	"github.com/gogpu/paint/text"
)

// fill composites the paint of f through coverage cov.
func (c *Canvas) fill(cov *image.Alpha, f *paint.Flags) {
	if cov.Rect.Empty() {
		return
	}
	src, alpha, ok := c.source(f)
	if !ok {
		return
	}
	if c.mask != nil {
		blend.MultiplyMask(cov, c.mask)
	}
	blend.Composite(c.target, cov.Rect, src, cov, alpha, f.BlendMode)
}

func (c *Canvas) drawContours(contours []stroke.Contour, bounds paint.Rect, f *paint.Flags) {
	if len(contours) == 0 || c.clip.Empty() {
		return
	}
	c.fill(c.shapeCoverage(contours, bounds, f), f)
}

func (c *Canvas) DrawColor(col paint.Color, mode paint.BlendMode) {
	blend.Composite(c.target, c.clip, blend.Solid(blend.Premultiply(col)), c.mask, 255, mode)
}

func (c *Canvas) DrawRect(r paint.Rect, f *paint.Flags) {
	r = r.Sorted()
	c.drawContours(stroke.Flatten(paint.NewPath().Rectangle(r), c.tolerance()), r, f)
}

func (c *Canvas) DrawOval(r paint.Rect, f *paint.Flags) {
	r = r.Sorted()
	c.drawContours(stroke.Flatten(paint.NewPath().Oval(r), c.tolerance()), r, f)
}

func (c *Canvas) DrawRRect(rr paint.RRect, f *paint.Flags) {
	c.drawContours(stroke.Flatten(paint.NewPath().RoundRect(rr), c.tolerance()), rr.Rect.Sorted(), f)
}

// DrawDRRect fills the area between outer and inner. The inner contour is
// reversed so the hole cancels under nonzero accumulation.
func (c *Canvas) DrawDRRect(outer, inner paint.RRect, f *paint.Flags) {
	tol := c.tolerance()
	contours := stroke.Flatten(paint.NewPath().RoundRect(outer), tol)
	contours = append(contours, reversed(stroke.Flatten(paint.NewPath().RoundRect(inner), tol))...)
	c.drawContours(contours, outer.Rect.Sorted(), f)
}

// DrawLine always strokes, whatever the style of f.
func (c *Canvas) DrawLine(x0, y0, x1, y1 float32, f *paint.Flags) {
	sf := *f
	sf.Style = paint.StyleStroke
	line := []stroke.Contour{{Points: []paint.Point{paint.Pt(x0, y0), paint.Pt(x1, y1)}}}
	c.drawContours(line, paint.LTRB(x0, y0, x1, y1).Sorted(), &sf)
}

// DrawPath draws p. Even-odd paths are filled with the nonzero rule.
func (c *Canvas) DrawPath(p *paint.Path, f *paint.Flags) {
	c.drawContours(stroke.Flatten(p, c.tolerance()), p.Bounds(), f)
}

func (c *Canvas) DrawImage(img paint.Image, left, top float32, f *paint.Flags) {
	pix := c.resident(img)
	if pix == nil {
		return
	}
	m := c.ctm.Multiply(paint.Translate(left, top))
	dst := paint.XYWH(left, top, float32(img.Width()), float32(img.Height()))
	c.drawPixels(pix, pix.Bounds(), m, dst, f)
}

func (c *Canvas) DrawImageRect(img paint.Image, src, dst paint.Rect, f *paint.Flags, constraint paint.SrcRectConstraint) {
	pix := c.resident(img)
	if pix == nil {
		return
	}
	src, dst = src.Sorted(), dst.Sorted()
	if src.IsEmpty() || dst.IsEmpty() {
		return
	}
	m := c.ctm.
		Multiply(paint.Translate(dst.MinX, dst.MinY)).
		Multiply(paint.Scale(dst.Width()/src.Width(), dst.Height()/src.Height())).
		Multiply(paint.Translate(-src.MinX, -src.MinY))
	sr := pix.Bounds()
	if constraint == paint.ConstraintStrict {
		b := pix.Bounds()
		sr = image.Rect(
			b.Min.X+int(math.Floor(float64(src.MinX))),
			b.Min.Y+int(math.Floor(float64(src.MinY))),
			b.Min.X+int(math.Ceil(float64(src.MaxX))),
			b.Min.Y+int(math.Ceil(float64(src.MaxY))),
		).Intersect(b)
	}
	c.drawPixels(pix, sr, m, dst, f)
}

// resident returns the pixels of img, or nil when img is lazy. Playback
// substitutes lazy images before they reach the canvas when it has an
// image provider.
func (c *Canvas) resident(img paint.Image) image.Image {
	if img.IsLazy() {
		paint.Logger().Warn("raster: skipping lazy image without provider", "image", img.ID())
		return nil
	}
	return img.Pixels()
}

// drawPixels resamples sr of pix through m, which maps image space with
// its origin at the image's top-left, into the device area covered by dst.
func (c *Canvas) drawPixels(pix image.Image, sr image.Rectangle, m paint.Matrix, dst paint.Rect, f *paint.Flags) {
	r := c.clip.Intersect(c.deviceBounds(dst))
	if r.Empty() || sr.Empty() {
		return
	}
	b := pix.Bounds()
	m = m.Multiply(paint.Translate(-float32(b.Min.X), -float32(b.Min.Y)))

	alpha, mode, quality := uint8(255), paint.BlendSrcOver, paint.FilterNone
	if f != nil {
		alpha, mode, quality = f.Alpha(), f.BlendMode, f.FilterQuality
	}
	tmp := image.NewRGBA(r)
	interpolator(quality).Transform(tmp, aff3(m), pix, sr, draw.Src, nil)
	blend.Composite(c.target, r, tmp, c.mask, alpha, mode)
}

func interpolator(q paint.FilterQuality) draw.Interpolator {
	switch q {
	case paint.FilterLow:
		return draw.ApproxBiLinear
	case paint.FilterMedium:
		return draw.BiLinear
	case paint.FilterHigh:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

func aff3(m paint.Matrix) f64.Aff3 {
	return f64.Aff3{
		float64(m.A), float64(m.B), float64(m.C),
		float64(m.D), float64(m.E), float64(m.F),
	}
}

// DrawTextBlob draws each run with Go Regular scaled by the transform.
// Rotation and skew are not applied to glyphs; only the run origins are
// transformed.
func (c *Canvas) DrawTextBlob(blob *paint.TextBlob, x, y float32, f *paint.Flags) {
	if c.clip.Empty() {
		return
	}
	r := c.clip.Intersect(c.deviceBounds(blob.Bounds.Offset(x, y)).Inset(-1))
	if r.Empty() {
		return
	}
	_, sy := c.ctm.ScaleFactors()
	cov := image.NewAlpha(r)
	for _, run := range blob.Runs {
		size := run.Size * sy
		if size <= 0 || math.IsInf(float64(size), 0) {
			continue
		}
		origin := c.ctm.TransformPoint(paint.Pt(x+run.Offset.X, y+run.Offset.Y))
		d := font.Drawer{
			Dst:  cov,
			Src:  image.Opaque,
			Face: text.Face(size),
			Dot:  fixed.Point26_6{X: text.FloatToFixed(origin.X), Y: text.FloatToFixed(origin.Y)},
		}
		d.DrawString(run.Text)
	}
	c.fill(cov, f)
}

// Annotate is accepted and ignored; annotations have no pixels.
func (c *Canvas) Annotate(paint.AnnotationType, paint.Rect, []byte) {}
