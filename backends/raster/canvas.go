package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/internal/blend"
)

func init() {
	paint.RegisterCanvas("raster", func(width, height int) paint.Canvas {
		return New(width, height)
	})
}

// Canvas draws into an *image.RGBA.
//
// Canvas is not safe for concurrent use.
type Canvas struct {
	opts   options
	base   *image.RGBA
	target *image.RGBA

	ctm  paint.Matrix
	clip image.Rectangle // device clip bounds
	mask *image.Alpha    // clip coverage, nil when clip is exactly the rectangle

	stack []state
}

// state stores the canvas state for Save/Restore. A state with a layer also
// restores the drawing target and composites the layer onto it.
type state struct {
	ctm   paint.Matrix
	clip  image.Rectangle
	mask  *image.Alpha
	layer *layer
}

// layer is an offscreen target pushed by SaveLayer.
type layer struct {
	parent *image.RGBA
	bounds image.Rectangle
	alpha  uint8
	mode   paint.BlendMode
}

var _ paint.Canvas = (*Canvas)(nil)

// New creates a canvas of the given size.
func New(width, height int, opts ...Option) *Canvas {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if o.background != paint.Transparent {
		draw.Draw(img, img.Rect, image.NewUniform(blend.Premultiply(o.background)), image.Point{}, draw.Src)
	}
	return &Canvas{
		opts:   o,
		base:   img,
		target: img,
		ctm:    paint.Identity(),
		clip:   img.Rect,
	}
}

// Image returns the canvas pixels.
func (c *Canvas) Image() *image.RGBA { return c.base }

// Width returns the canvas width.
func (c *Canvas) Width() int { return c.base.Rect.Dx() }

// Height returns the canvas height.
func (c *Canvas) Height() int { return c.base.Rect.Dy() }

// WriteTo encodes the canvas as PNG.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := png.Encode(cw, c.base); err != nil {
		return cw.n, fmt.Errorf("raster: encode png: %w", err)
	}
	return cw.n, nil
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path) // #nosec G304 -- caller-chosen output path
	if err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	if _, err := c.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, state{ctm: c.ctm, clip: c.clip, mask: c.mask})
}

func (c *Canvas) SaveLayer(bounds *paint.Rect, f *paint.Flags) {
	alpha, mode := uint8(255), paint.BlendSrcOver
	if f != nil {
		alpha, mode = f.Alpha(), f.BlendMode
	}
	c.pushLayer(bounds, alpha, mode)
}

func (c *Canvas) SaveLayerAlpha(bounds *paint.Rect, alpha uint8, _ bool) {
	c.pushLayer(bounds, alpha, paint.BlendSrcOver)
}

func (c *Canvas) pushLayer(bounds *paint.Rect, alpha uint8, mode paint.BlendMode) {
	r := c.clip
	if bounds != nil {
		r = r.Intersect(c.deviceBounds(*bounds))
	}
	c.stack = append(c.stack, state{
		ctm:  c.ctm,
		clip: c.clip,
		mask: c.mask,
		layer: &layer{
			parent: c.target,
			bounds: r,
			alpha:  alpha,
			mode:   mode,
		},
	})
	c.target = image.NewRGBA(r)
	c.clip = r
	if c.mask != nil {
		c.mask = cropMask(c.mask, r)
	}
}

func (c *Canvas) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	s := c.stack[n-1]
	c.stack = c.stack[:n-1]
	if l := s.layer; l != nil {
		blend.Composite(l.parent, l.bounds, c.target, s.mask, l.alpha, l.mode)
		c.target = l.parent
	}
	c.ctm, c.clip, c.mask = s.ctm, s.clip, s.mask
}

func (c *Canvas) SaveCount() int { return len(c.stack) }

func (c *Canvas) RestoreToCount(n int) {
	for len(c.stack) > max(n, 0) {
		c.Restore()
	}
}

func (c *Canvas) SetMatrix(m paint.Matrix) { c.ctm = m }

func (c *Canvas) Concat(m paint.Matrix) { c.ctm = c.ctm.Multiply(m) }

func (c *Canvas) Translate(dx, dy float32) { c.ctm = c.ctm.Multiply(paint.Translate(dx, dy)) }

func (c *Canvas) Scale(sx, sy float32) { c.ctm = c.ctm.Multiply(paint.Scale(sx, sy)) }

func (c *Canvas) Rotate(degrees float32) { c.ctm = c.ctm.Multiply(paint.Rotate(degrees)) }

func (c *Canvas) TotalMatrix() paint.Matrix { return c.ctm }

// QuickReject reports whether r maps entirely outside the device clip
// bounds.
func (c *Canvas) QuickReject(r paint.Rect) bool {
	if c.clip.Empty() {
		return true
	}
	d := c.ctm.MapRect(r.Sorted())
	if !d.IsFinite() {
		return false
	}
	return d.MaxX <= float32(c.clip.Min.X) || d.MinX >= float32(c.clip.Max.X) ||
		d.MaxY <= float32(c.clip.Min.Y) || d.MinY >= float32(c.clip.Max.Y)
}

// deviceBounds maps local r to the integer device rectangle covering it.
func (c *Canvas) deviceBounds(r paint.Rect) image.Rectangle {
	d := c.ctm.MapRect(r.Sorted())
	if !d.IsFinite() {
		return c.base.Rect
	}
	ir := image.Rect(
		int(math.Floor(float64(max(d.MinX, -1<<24)))),
		int(math.Floor(float64(max(d.MinY, -1<<24)))),
		int(math.Ceil(float64(min(d.MaxX, 1<<24)))),
		int(math.Ceil(float64(min(d.MaxY, 1<<24)))),
	)
	return ir.Intersect(c.base.Rect)
}

func (c *Canvas) ClipRect(r paint.Rect, op paint.ClipOp, antiAlias bool) {
	if op == paint.ClipIntersect && isAxisAligned(c.ctm) {
		d := c.ctm.MapRect(r.Sorted())
		if !antiAlias || isIntegral(d) {
			c.clip = c.clip.Intersect(image.Rect(round(d.MinX), round(d.MinY), round(d.MaxX), round(d.MaxY)))
			if c.mask != nil {
				c.mask = cropMask(c.mask, c.clip)
			}
			return
		}
	}
	c.clipPath(paint.NewPath().Rectangle(r), op, antiAlias)
}

func (c *Canvas) ClipRRect(rr paint.RRect, op paint.ClipOp, antiAlias bool) {
	if rr.IsRect() {
		c.ClipRect(rr.Rect, op, antiAlias)
		return
	}
	c.clipPath(paint.NewPath().RoundRect(rr), op, antiAlias)
}

func (c *Canvas) ClipPath(p *paint.Path, op paint.ClipOp, antiAlias bool) {
	c.clipPath(p, op, antiAlias)
}

func (c *Canvas) clipPath(p *paint.Path, op paint.ClipOp, antiAlias bool) {
	cov := c.fillCoverage(p, antiAlias)
	switch op {
	case paint.ClipIntersect:
		c.clip = c.clip.Intersect(cov.Rect)
		if c.mask != nil {
			blend.MultiplyMask(cov, c.mask)
		}
		c.mask = cropMask(cov, c.clip)
	case paint.ClipDifference:
		if c.mask == nil {
			c.mask = fullMask(c.clip)
		} else {
			c.mask = cropMask(c.mask, c.clip)
		}
		blend.SubtractMask(c.mask, cov)
	}
}

// cropMask returns a copy of m restricted to r.
func cropMask(m *image.Alpha, r image.Rectangle) *image.Alpha {
	out := image.NewAlpha(r)
	draw.Draw(out, r, m, r.Min, draw.Src)
	return out
}

func fullMask(r image.Rectangle) *image.Alpha {
	m := image.NewAlpha(r)
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	return m
}

func isAxisAligned(m paint.Matrix) bool { return m.B == 0 && m.D == 0 }

func isIntegral(r paint.Rect) bool {
	for _, v := range [...]float32{r.MinX, r.MinY, r.MaxX, r.MaxY} {
		if v != float32(math.Round(float64(v))) {
			return false
		}
	}
	return true
}

func round(v float32) int {
	v = min(max(v, -1<<24), 1<<24)
	return int(math.Round(float64(v)))
}
