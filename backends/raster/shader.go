package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/internal/blend"
)

// maxRecordTile bounds the offscreen tile a record shader renders into.
const maxRecordTile = 4096

// source returns the paint source of f and the alpha to composite it with.
// Solid colors carry their alpha premultiplied; shaders are modulated by
// the color alpha.
func (c *Canvas) source(f *paint.Flags) (blend.Source, uint8, bool) {
	sh := f.Shader
	if sh == nil {
		return blend.Solid(blend.Premultiply(f.Color)), 255, true
	}
	inv, ok := c.ctm.Multiply(sh.LocalMatrix).Invert()
	if !ok {
		return nil, 0, false
	}
	switch sh.Type {
	case paint.ShaderLinearGradient:
		return newGradient(sh, inv), f.Alpha(), true
	case paint.ShaderImage:
		pix := c.resident(sh.Image)
		if pix == nil {
			return nil, 0, false
		}
		return newImageSource(pix, inv, sh.TileX, sh.TileY), f.Alpha(), true
	case paint.ShaderRecord:
		tile, ok := renderTile(sh)
		if !ok {
			return nil, 0, false
		}
		inv = paint.Translate(-sh.Tile.MinX, -sh.Tile.MinY).Multiply(inv)
		return newImageSource(tile, inv, sh.TileX, sh.TileY), f.Alpha(), true
	}
	return nil, 0, false
}

// renderTile plays a record shader's record into an image the size of its
// tile.
func renderTile(sh *paint.Shader) (*image.RGBA, bool) {
	t := sh.Tile.Sorted()
	w := int(math.Ceil(float64(t.Width())))
	h := int(math.Ceil(float64(t.Height())))
	if w <= 0 || h <= 0 || w > maxRecordTile || h > maxRecordTile {
		paint.Logger().Debug("raster: record shader tile out of range", "width", w, "height", h)
		return nil, false
	}
	tc := New(w, h)
	tc.Translate(-t.MinX, -t.MinY)
	sh.Record.Buffer().Playback(tc)
	return tc.Image(), true
}

// gradient is a linear gradient sampled at pixel centers.
type gradient struct {
	inv       paint.Matrix
	start     paint.Point
	dir       paint.Point // end - start scaled by 1/|end-start|²
	colors    []color.RGBA
	positions []float32
	tile      paint.TileMode
}

func newGradient(sh *paint.Shader, inv paint.Matrix) *gradient {
	d := sh.End.Sub(sh.Start)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 > 0 {
		d = paint.Pt(d.X/l2, d.Y/l2)
	}
	g := &gradient{
		inv:       inv,
		start:     sh.Start,
		dir:       d,
		colors:    make([]color.RGBA, len(sh.Colors)),
		positions: sh.Positions,
		tile:      sh.TileX,
	}
	for i, col := range sh.Colors {
		g.colors[i] = blend.Premultiply(col)
	}
	if g.positions == nil {
		g.positions = make([]float32, len(sh.Colors))
		for i := range g.positions {
			g.positions[i] = float32(i) / float32(len(sh.Colors)-1)
		}
	}
	return g
}

func (g *gradient) RGBAAt(x, y int) color.RGBA {
	p := g.inv.TransformPoint(paint.Pt(float32(x)+0.5, float32(y)+0.5)).Sub(g.start)
	t := tileUnit(p.X*g.dir.X+p.Y*g.dir.Y, g.tile)

	if t <= g.positions[0] {
		return g.colors[0]
	}
	for i := 1; i < len(g.positions); i++ {
		if t <= g.positions[i] {
			span := g.positions[i] - g.positions[i-1]
			if span <= 0 {
				return g.colors[i]
			}
			return lerpRGBA(g.colors[i-1], g.colors[i], (t-g.positions[i-1])/span)
		}
	}
	return g.colors[len(g.colors)-1]
}

// tileUnit maps t into [0, 1] by the tile mode.
func tileUnit(t float32, mode paint.TileMode) float32 {
	switch mode {
	case paint.TileRepeat:
		return t - float32(math.Floor(float64(t)))
	case paint.TileMirror:
		t = float32(math.Mod(math.Abs(float64(t)), 2))
		if t > 1 {
			t = 2 - t
		}
		return t
	default:
		return min(max(t, 0), 1)
	}
}

func lerpRGBA(a, b color.RGBA, t float32) color.RGBA {
	l := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return color.RGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}

// imageSource samples an image by nearest neighbor through an inverse
// transform.
type imageSource struct {
	pix          *image.RGBA
	inv          paint.Matrix
	tileX, tileY paint.TileMode
}

func newImageSource(img image.Image, inv paint.Matrix, tx, ty paint.TileMode) *imageSource {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	}
	return &imageSource{pix: rgba, inv: inv, tileX: tx, tileY: ty}
}

func (s *imageSource) RGBAAt(x, y int) color.RGBA {
	p := s.inv.TransformPoint(paint.Pt(float32(x)+0.5, float32(y)+0.5))
	w, h := s.pix.Rect.Dx(), s.pix.Rect.Dy()
	if w == 0 || h == 0 {
		return color.RGBA{}
	}
	return s.pix.RGBAAt(tileIndex(p.X, w, s.tileX), tileIndex(p.Y, h, s.tileY))
}

// tileIndex maps coordinate v to a pixel index in [0, n).
func tileIndex(v float32, n int, mode paint.TileMode) int {
	i := int(math.Floor(float64(v)))
	switch mode {
	case paint.TileRepeat:
		i %= n
		if i < 0 {
			i += n
		}
	case paint.TileMirror:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
	default:
		i = min(max(i, 0), n-1)
	}
	return i
}
