package paint

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/paint/internal/wire"
)

// Fixed field sizes in the arena layout.
const (
	refSize    = 4
	pointSize  = 8
	rectSize   = 16
	rrectSize  = rectSize + 4*pointSize
	matrixSize = 24
	flagsSize  = 20 + 2*refSize
)

// noRef marks an absent object in a ref slot.
const noRef = math.MaxUint32

// Limits applied to variable-length wire objects.
const (
	maxPathVerbs       = 1 << 16
	maxAnnotationBytes = 1 << 16
	maxEncodedImage    = 64 << 20
	maxImageDimension  = 1 << 14
	maxShaderDepth     = 4
)

// Image encodings on the wire.
const (
	imageNone uint8 = iota
	imageTransfer
	imageEncoded
	imagePixels
)

// opWriter encodes op fields. With a non-nil buf it writes the fixed arena
// layout and stores heap objects in buf.refs; otherwise it writes the
// self-contained wire layout.
type opWriter struct {
	*wire.Writer
	buf   *Buffer
	opts  *SerializeOptions
	depth int
}

func (w *opWriter) arena() bool { return w.buf != nil }

func (w *opWriter) ref(v any) {
	if v == nil {
		w.U32(noRef)
		return
	}
	w.U32(uint32(len(w.buf.refs))) // #nosec G115 -- refs never reach 2^32
	w.buf.refs = append(w.buf.refs, v)
}

func (w *opWriter) point(p Point) {
	w.F32(p.X)
	w.F32(p.Y)
}

func (w *opWriter) rect(r Rect) {
	w.F32(r.MinX)
	w.F32(r.MinY)
	w.F32(r.MaxX)
	w.F32(r.MaxY)
}

func (w *opWriter) irect(r IRect) {
	w.I32(r.MinX)
	w.I32(r.MinY)
	w.I32(r.MaxX)
	w.I32(r.MaxY)
}

func (w *opWriter) rrect(rr RRect) {
	w.rect(rr.Rect)
	for _, p := range rr.Radii {
		w.point(p)
	}
}

func (w *opWriter) matrix(m Matrix) {
	w.F32(m.A)
	w.F32(m.B)
	w.F32(m.C)
	w.F32(m.D)
	w.F32(m.E)
	w.F32(m.F)
}

// u8s writes four bytes as one aligned word.
func (w *opWriter) u8s(a, b, c, d uint8) {
	w.U8(a)
	w.U8(b)
	w.U8(c)
	w.U8(d)
}

func (w *opWriter) flags(f *Flags) {
	w.U32(uint32(f.Color))
	w.F32(f.StrokeWidth)
	w.F32(f.MiterLimit)
	w.u8s(uint8(f.Style), uint8(f.Cap), uint8(f.Join), uint8(f.BlendMode))
	var bits uint8
	if f.AntiAlias {
		bits |= 1
	}
	if f.Dither {
		bits |= 2
	}
	w.u8s(uint8(f.FilterQuality), bits, 0, 0)
	if w.arena() {
		if f.Shader != nil {
			w.ref(f.Shader)
		} else {
			w.ref(nil)
		}
		if f.Dash != nil {
			w.ref(f.Dash)
		} else {
			w.ref(nil)
		}
		return
	}
	w.shader(f.Shader)
	w.dash(f.Dash)
}

func (w *opWriter) dash(d *Dash) {
	if d == nil {
		w.U32(0)
		return
	}
	w.U32(1)
	w.U32(uint32(len(d.Intervals))) // #nosec G115 -- bounded by isValid
	for _, v := range d.Intervals {
		w.F32(v)
	}
	w.F32(d.Phase)
}

func (w *opWriter) shader(s *Shader) {
	if s == nil {
		w.U32(0)
		return
	}
	w.U32(1)
	w.u8s(uint8(s.Type), uint8(s.TileX), uint8(s.TileY), 0)
	w.matrix(s.LocalMatrix)
	switch s.Type {
	case ShaderLinearGradient:
		w.point(s.Start)
		w.point(s.End)
		w.U32(uint32(len(s.Colors))) // #nosec G115 -- bounded by IsValid
		for _, c := range s.Colors {
			w.U32(uint32(c))
		}
		w.Bool(s.Positions != nil)
		w.Align(4)
		for _, p := range s.Positions {
			w.F32(p)
		}
	case ShaderImage:
		w.image(s.Image)
	case ShaderRecord:
		w.rect(s.Tile)
		w.nestedRecord(s.Record)
	default:
		w.Invalidate()
	}
}

// nestedRecord writes a record shader's ops as a length-prefixed stream.
func (w *opWriter) nestedRecord(rec *Record) {
	if w.depth >= maxShaderDepth || rec == nil {
		w.Invalidate()
		return
	}
	opts := *w.opts
	opts.depth = w.depth + 1
	data, err := SerializeBuffer(rec.Buffer(), opts)
	if err != nil {
		w.Invalidate()
		return
	}
	w.Bytes(data)
}

func (w *opWriter) path(p *Path) {
	if w.arena() {
		if p == nil {
			w.ref(nil)
			return
		}
		w.ref(p)
		return
	}
	if p == nil || len(p.verbs) > maxPathVerbs {
		w.Invalidate()
		return
	}
	w.U32(uint32(len(p.verbs))) // #nosec G115 -- bounded above
	for _, v := range p.verbs {
		w.U8(uint8(v))
	}
	w.Align(4)
	w.U32(uint32(len(p.points))) // #nosec G115 -- bounded by verbs
	for _, f := range p.points {
		w.F32(f)
	}
	w.Bool(p.volatile)
	w.u8s(uint8(p.fillRule), 0, 0, 0)
	w.Align(4)
}

func (w *opWriter) image(img Image) {
	if w.arena() {
		if img.IsZero() {
			w.ref(nil)
			return
		}
		w.ref(img)
		return
	}
	switch {
	case img.IsZero():
		w.u8s(imageNone, 0, 0, 0)
	case img.IsLazy():
		if tc := w.opts.TransferCache; tc != nil {
			if id, ok := tc.Put(img); ok {
				w.u8s(imageTransfer, 0, 0, 0)
				w.U32(id)
				return
			}
		}
		// Inline images carry no identity; the reader assigns a fresh one.
		w.u8s(imageEncoded, 0, 0, 0)
		w.U32(uint32(img.width))  // #nosec G115 -- image dimensions are small
		w.U32(uint32(img.height)) // #nosec G115
		w.Bytes(img.encoded)
	default:
		if img.width > maxImageDimension || img.height > maxImageDimension {
			w.Invalidate()
			return
		}
		w.u8s(imagePixels, 0, 0, 0)
		w.U32(uint32(img.width))  // #nosec G115 -- bounded above
		w.U32(uint32(img.height)) // #nosec G115
		w.Bytes(toNRGBA(img.pixels).Pix)
	}
}

// toNRGBA returns img as a tightly packed NRGBA image at the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func (w *opWriter) textBlob(tb *TextBlob) {
	if w.arena() {
		if tb == nil {
			w.ref(nil)
			return
		}
		w.ref(tb)
		return
	}
	if tb == nil {
		w.Invalidate()
		return
	}
	w.U32(uint32(len(tb.Runs))) // #nosec G115 -- bounded by IsValid
	for _, r := range tb.Runs {
		w.String(r.Text)
		w.F32(r.Size)
		w.point(r.Offset)
		w.Bool(r.RTL)
		w.Align(4)
	}
	w.rect(tb.Bounds)
}

func (w *opWriter) data(d []byte) {
	if w.arena() {
		if d == nil {
			w.ref(nil)
			return
		}
		w.ref(d)
		return
	}
	w.Bytes(d)
}

func (w *opWriter) record(rec *Record) {
	if w.arena() {
		if rec == nil {
			w.ref(nil)
			return
		}
		w.ref(rec)
		return
	}
	// Nested records only exist before flattening.
	w.Invalidate()
}

// opReader decodes op fields written by opWriter in the same mode.
type opReader struct {
	*wire.Reader
	refs  []any
	arena bool
	opts  *DeserializeOptions
	depth int

	// owned holds records created while reading. Deserialize drops these
	// references once the op has been pushed or rejected.
	owned []*Record
}

func (r *opReader) ref() any {
	idx := r.U32()
	if !r.Valid() || idx == noRef {
		return nil
	}
	if uint64(idx) >= uint64(len(r.refs)) {
		r.Fail(wire.ErrInvalidValue)
		return nil
	}
	return r.refs[idx]
}

func (r *opReader) point() Point {
	x := r.F32()
	y := r.F32()
	return Point{x, y}
}

func (r *opReader) rect() Rect {
	return Rect{MinX: r.F32(), MinY: r.F32(), MaxX: r.F32(), MaxY: r.F32()}
}

func (r *opReader) irect() IRect {
	return IRect{MinX: r.I32(), MinY: r.I32(), MaxX: r.I32(), MaxY: r.I32()}
}

func (r *opReader) rrect() RRect {
	rr := RRect{Rect: r.rect()}
	for i := range rr.Radii {
		rr.Radii[i] = r.point()
	}
	return rr
}

func (r *opReader) matrix() Matrix {
	return Matrix{A: r.F32(), B: r.F32(), C: r.F32(), D: r.F32(), E: r.F32(), F: r.F32()}
}

func (r *opReader) flags() Flags {
	var f Flags
	f.Color = Color(r.U32())
	f.StrokeWidth = r.F32()
	f.MiterLimit = r.F32()
	f.Style = Style(r.U8())
	f.Cap = Cap(r.U8())
	f.Join = Join(r.U8())
	f.BlendMode = BlendMode(r.U8())
	f.FilterQuality = FilterQuality(r.U8())
	bits := r.U8()
	r.Skip(2)
	f.AntiAlias = bits&1 != 0
	f.Dither = bits&2 != 0
	if r.arena {
		f.Shader, _ = r.ref().(*Shader)
		f.Dash, _ = r.ref().(*Dash)
		return f
	}
	f.Shader = r.shader()
	f.Dash = r.dash()
	return f
}

func (r *opReader) dash() *Dash {
	if r.U32() == 0 {
		return nil
	}
	n := r.Count(maxDashIntervals, 4)
	d := &Dash{Intervals: make([]float32, n)}
	for i := range d.Intervals {
		d.Intervals[i] = r.F32()
	}
	d.Phase = r.F32()
	return d
}

func (r *opReader) shader() *Shader {
	if r.U32() == 0 {
		return nil
	}
	s := &Shader{
		Type:  ShaderType(r.U8()),
		TileX: TileMode(r.U8()),
		TileY: TileMode(r.U8()),
	}
	r.Skip(1)
	s.LocalMatrix = r.matrix()
	switch s.Type {
	case ShaderLinearGradient:
		s.Start = r.point()
		s.End = r.point()
		n := r.Count(maxGradientStops, 4)
		s.Colors = make([]Color, n)
		for i := range s.Colors {
			s.Colors[i] = Color(r.U32())
		}
		hasPositions := r.Bool()
		r.Align(4)
		if hasPositions {
			s.Positions = make([]float32, n)
			for i := range s.Positions {
				s.Positions[i] = r.F32()
			}
		}
	case ShaderImage:
		s.Image = r.image()
	case ShaderRecord:
		s.Tile = r.rect()
		s.Record = r.nestedRecord()
	default:
		r.Fail(wire.ErrInvalidValue)
	}
	return s
}

func (r *opReader) nestedRecord() *Record {
	if r.depth >= maxShaderDepth {
		r.Fail(wire.ErrInvalidValue)
		return nil
	}
	data := r.Bytes(r.Remaining())
	if !r.Valid() {
		return nil
	}
	opts := *r.opts
	opts.depth = r.depth + 1
	buf, err := DeserializeBuffer(data, opts)
	if err != nil {
		r.Fail(wire.ErrInvalidValue)
		return nil
	}
	rec := NewRecord(buf)
	r.owned = append(r.owned, rec)
	return rec
}

func (r *opReader) path() *Path {
	if r.arena {
		p, _ := r.ref().(*Path)
		return p
	}
	n := r.Count(maxPathVerbs, 1)
	verbs := make([]PathVerb, n)
	for i := range verbs {
		verbs[i] = PathVerb(r.U8())
	}
	r.Align(4)
	m := r.Count(6*maxPathVerbs, 4)
	points := make([]float32, m)
	for i := range points {
		points[i] = r.F32()
	}
	volatile := r.Bool()
	rule := FillRule(r.U8())
	r.Skip(3)
	r.Align(4)
	if !r.Valid() {
		return nil
	}
	p, ok := pathFromData(verbs, points, rule, volatile)
	if !ok {
		r.Fail(wire.ErrInvalidValue)
		return nil
	}
	return p
}

func (r *opReader) image() Image {
	if r.arena {
		img, _ := r.ref().(Image)
		return img
	}
	kind := r.U8()
	r.Skip(3)
	switch kind {
	case imageNone:
		return Image{}
	case imageTransfer:
		id := r.U32()
		if !r.Valid() {
			return Image{}
		}
		if r.opts.TransferCache == nil {
			r.Fail(wire.ErrInvalidValue)
			return Image{}
		}
		img, ok := r.opts.TransferCache.Get(id)
		if !ok {
			r.Fail(wire.ErrInvalidValue)
			return Image{}
		}
		return img
	case imageEncoded:
		w, h := r.dimensions()
		data := r.Bytes(maxEncodedImage)
		if !r.Valid() {
			return Image{}
		}
		return NewLazyImage(data, w, h)
	case imagePixels:
		w, h := r.dimensions()
		if !r.Valid() {
			return Image{}
		}
		pix := r.Bytes(4 * w * h)
		if !r.Valid() {
			return Image{}
		}
		if len(pix) != 4*w*h {
			r.Fail(wire.ErrInvalidValue)
			return Image{}
		}
		img := &image.NRGBA{Pix: pix, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
		return NewImage(img)
	default:
		r.Fail(wire.ErrInvalidValue)
		return Image{}
	}
}

func (r *opReader) dimensions() (int, int) {
	w := r.U32()
	h := r.U32()
	if w > maxImageDimension || h > maxImageDimension {
		r.Fail(wire.ErrTooLarge)
		return 0, 0
	}
	return int(w), int(h)
}

func (r *opReader) textBlob() *TextBlob {
	if r.arena {
		tb, _ := r.ref().(*TextBlob)
		return tb
	}
	n := r.Count(maxTextRuns, 16)
	tb := &TextBlob{Runs: make([]TextRun, n)}
	for i := range tb.Runs {
		run := &tb.Runs[i]
		run.Text = r.String(maxRunBytes)
		run.Size = r.F32()
		run.Offset = r.point()
		run.RTL = r.Bool()
		r.Align(4)
	}
	tb.Bounds = r.rect()
	return tb
}

func (r *opReader) data() []byte {
	if r.arena {
		d, _ := r.ref().([]byte)
		return d
	}
	d := r.Bytes(maxAnnotationBytes)
	if len(d) == 0 {
		return nil
	}
	return d
}

func (r *opReader) record() *Record {
	if r.arena {
		rec, _ := r.ref().(*Record)
		return rec
	}
	r.Fail(wire.ErrInvalidValue)
	return nil
}
