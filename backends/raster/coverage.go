package raster

import (
	"image"
	"math"
	"slices"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/internal/stroke"
)

// deviceSink maps points through m into rasterizer space, whose origin is
// the device pixel off.
type deviceSink struct {
	z   *vector.Rasterizer
	m   paint.Matrix
	off image.Point
}

func (s *deviceSink) MoveTo(x, y float32) {
	p := s.m.TransformPoint(paint.Pt(x, y))
	s.z.MoveTo(p.X-float32(s.off.X), p.Y-float32(s.off.Y))
}

func (s *deviceSink) LineTo(x, y float32) {
	p := s.m.TransformPoint(paint.Pt(x, y))
	s.z.LineTo(p.X-float32(s.off.X), p.Y-float32(s.off.Y))
}

func (s *deviceSink) ClosePath() { s.z.ClosePath() }

// rasterize runs emit against a rasterizer covering r and returns the
// resulting coverage. Without antialiasing coverage is thresholded.
func rasterize(r image.Rectangle, m paint.Matrix, antiAlias bool, emit func(stroke.Sink)) *image.Alpha {
	mask := image.NewAlpha(r)
	if r.Empty() {
		return mask
	}
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Src
	emit(&deviceSink{z: z, m: m, off: r.Min})
	z.Draw(mask, r, image.Opaque, image.Point{})
	if !antiAlias {
		for i, v := range mask.Pix {
			if v >= 0x80 {
				mask.Pix[i] = 0xff
			} else {
				mask.Pix[i] = 0
			}
		}
	}
	return mask
}

func fillContours(contours []stroke.Contour) func(stroke.Sink) {
	return func(s stroke.Sink) {
		for _, c := range contours {
			s.MoveTo(c.Points[0].X, c.Points[0].Y)
			for _, p := range c.Points[1:] {
				s.LineTo(p.X, p.Y)
			}
			s.ClosePath()
		}
	}
}

// tolerance returns the local-space flattening tolerance under the current
// transform.
func (c *Canvas) tolerance() float32 {
	sx, sy := c.ctm.ScaleFactors()
	s := max(sx, sy)
	if s <= 0 || math.IsInf(float64(s), 0) || math.IsNaN(float64(s)) {
		return c.opts.tolerance
	}
	return c.opts.tolerance / s
}

// fillCoverage rasterizes the interior of p clipped to the device clip
// bounds. The current clip mask is not applied.
func (c *Canvas) fillCoverage(p *paint.Path, antiAlias bool) *image.Alpha {
	return c.contourCoverage(stroke.Flatten(p, c.tolerance()), p.Bounds(), antiAlias)
}

func (c *Canvas) contourCoverage(contours []stroke.Contour, bounds paint.Rect, antiAlias bool) *image.Alpha {
	r := c.clip.Intersect(c.deviceBounds(bounds).Inset(-1))
	return rasterize(r, c.ctm, antiAlias, fillContours(contours))
}

// strokeCoverage rasterizes the stroke of contours drawn with f. Hairlines
// are stroked one device pixel wide.
func (c *Canvas) strokeCoverage(contours []stroke.Contour, bounds paint.Rect, f *paint.Flags) *image.Alpha {
	if f.Dash != nil {
		contours = stroke.Dash(contours, f.Dash.Intervals, f.Dash.Phase)
	}
	style := stroke.Style{
		Width:      f.StrokeWidth,
		Cap:        f.Cap,
		Join:       f.Join,
		MiterLimit: f.MiterLimit,
	}
	if f.StrokeWidth > 0 {
		r := c.clip.Intersect(c.deviceBounds(f.FastBounds(bounds)).Inset(-2))
		return rasterize(r, c.ctm, f.AntiAlias, func(s stroke.Sink) {
			stroke.Expand(contours, style, s)
		})
	}

	style.Width = 1
	device := make([]stroke.Contour, len(contours))
	for i, ct := range contours {
		pts := make([]paint.Point, len(ct.Points))
		for j, p := range ct.Points {
			pts[j] = c.ctm.TransformPoint(p)
		}
		device[i] = stroke.Contour{Points: pts, Closed: ct.Closed}
	}
	r := c.clip.Intersect(c.deviceBounds(bounds).Inset(-2))
	return rasterize(r, paint.Identity(), f.AntiAlias, func(s stroke.Sink) {
		stroke.Expand(device, style, s)
	})
}

// shapeCoverage rasterizes contours with the style of f.
func (c *Canvas) shapeCoverage(contours []stroke.Contour, bounds paint.Rect, f *paint.Flags) *image.Alpha {
	switch f.Style {
	case paint.StyleStroke:
		return c.strokeCoverage(contours, bounds, f)
	case paint.StyleStrokeAndFill:
		fill := c.contourCoverage(contours, bounds, f.AntiAlias)
		return unionMask(c.strokeCoverage(contours, bounds, f), fill)
	default:
		return c.contourCoverage(contours, bounds, f.AntiAlias)
	}
}

// unionMask returns the per-pixel maximum of a and b, grown to cover both.
func unionMask(a, b *image.Alpha) *image.Alpha {
	out := image.NewAlpha(a.Rect.Union(b.Rect))
	for _, m := range [...]*image.Alpha{a, b} {
		for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
			for x := m.Rect.Min.X; x < m.Rect.Max.X; x++ {
				i := out.PixOffset(x, y)
				out.Pix[i] = max(out.Pix[i], m.Pix[m.PixOffset(x, y)])
			}
		}
	}
	return out
}

// reversed returns contours with their point order reversed, which flips
// their winding.
func reversed(contours []stroke.Contour) []stroke.Contour {
	out := make([]stroke.Contour, len(contours))
	for i, ct := range contours {
		pts := slices.Clone(ct.Points)
		slices.Reverse(pts)
		out[i] = stroke.Contour{Points: pts, Closed: ct.Closed}
	}
	return out
}
