package blend

import (
	"image"
	"image/color"

	"github.com/gogpu/paint"
)

// Source yields premultiplied source pixels. *image.RGBA satisfies it.
type Source interface {
	RGBAAt(x, y int) color.RGBA
}

// Solid is a constant premultiplied source.
type Solid color.RGBA

// RGBAAt implements Source.
func (s Solid) RGBAAt(int, int) color.RGBA { return color.RGBA(s) }

// Premultiply converts a straight-alpha paint color.
func Premultiply(c paint.Color) color.RGBA {
	a := c.A()
	return color.RGBA{R: mulDiv255(c.R(), a), G: mulDiv255(c.G(), a), B: mulDiv255(c.B(), a), A: a}
}

// Composite blends src onto dst inside r. Each pixel's result is mixed
// with the original destination by mask coverage and a global alpha, so
// partially covered pixels blend partially in every mode. A nil mask means
// full coverage.
func Composite(dst *image.RGBA, r image.Rectangle, src Source, mask *image.Alpha, alpha uint8, mode paint.BlendMode) {
	r = r.Intersect(dst.Rect)
	if mask != nil {
		r = r.Intersect(mask.Rect)
	}
	if r.Empty() || alpha == 0 {
		return
	}
	fn := For(mode)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := dst.Pix[dst.PixOffset(r.Min.X, y):]
		for x := r.Min.X; x < r.Max.X; x++ {
			cov := alpha
			if mask != nil {
				cov = mulDiv255(mask.Pix[mask.PixOffset(x, y)], alpha)
				if cov == 0 {
					row = row[4:]
					continue
				}
			}
			s := src.RGBAAt(x, y)
			pr, pg, pb, pa := fn(s.R, s.G, s.B, s.A, row[0], row[1], row[2], row[3])
			if cov == 255 {
				row[0], row[1], row[2], row[3] = pr, pg, pb, pa
			} else {
				row[0] = lerp255(row[0], pr, cov)
				row[1] = lerp255(row[1], pg, cov)
				row[2] = lerp255(row[2], pb, cov)
				row[3] = lerp255(row[3], pa, cov)
			}
			row = row[4:]
		}
	}
}

// MultiplyMask scales dst coverage by m where they overlap and clears dst
// outside m.
func MultiplyMask(dst, m *image.Alpha) {
	for y := dst.Rect.Min.Y; y < dst.Rect.Max.Y; y++ {
		for x := dst.Rect.Min.X; x < dst.Rect.Max.X; x++ {
			i := dst.PixOffset(x, y)
			if !(image.Point{X: x, Y: y}).In(m.Rect) {
				dst.Pix[i] = 0
				continue
			}
			dst.Pix[i] = mulDiv255(dst.Pix[i], m.Pix[m.PixOffset(x, y)])
		}
	}
}

// SubtractMask scales dst coverage by the inverse of m.
func SubtractMask(dst, m *image.Alpha) {
	r := dst.Rect.Intersect(m.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := dst.PixOffset(x, y)
			dst.Pix[i] = mulDiv255(dst.Pix[i], 255-m.Pix[m.PixOffset(x, y)])
		}
	}
}
