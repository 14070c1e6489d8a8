package paint

import "fmt"

// Style selects whether geometry is filled, stroked, or both.
type Style uint8

const (
	StyleFill Style = iota
	StyleStroke
	StyleStrokeAndFill
)

// Cap specifies the shape of stroke endpoints.
type Cap uint8

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join specifies the shape of stroke joins.
type Join uint8

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// FilterQuality selects the image sampling kernel.
type FilterQuality uint8

const (
	FilterNone FilterQuality = iota
	FilterLow
	FilterMedium
	FilterHigh
)

// BlendMode is a compositing operator. The zero value is source-over.
type BlendMode uint8

const (
	BlendSrcOver BlendMode = iota
	BlendClear
	BlendSrc
	BlendDst
	BlendDstOver
	BlendSrcIn
	BlendDstIn
	BlendSrcOut
	BlendDstOut
	BlendSrcATop
	BlendDstATop
	BlendXor
	BlendPlus
	BlendModulate
	BlendScreen
	BlendMultiply

	lastBlendMode = BlendMultiply
)

var blendModeNames = [...]string{
	BlendSrcOver:  "SrcOver",
	BlendClear:    "Clear",
	BlendSrc:      "Src",
	BlendDst:      "Dst",
	BlendDstOver:  "DstOver",
	BlendSrcIn:    "SrcIn",
	BlendDstIn:    "DstIn",
	BlendSrcOut:   "SrcOut",
	BlendDstOut:   "DstOut",
	BlendSrcATop:  "SrcATop",
	BlendDstATop:  "DstATop",
	BlendXor:      "Xor",
	BlendPlus:     "Plus",
	BlendModulate: "Modulate",
	BlendScreen:   "Screen",
	BlendMultiply: "Multiply",
}

// String returns the mode name.
func (m BlendMode) String() string {
	if m > lastBlendMode {
		return unknownStr
	}
	return blendModeNames[m]
}

// Dash is a dash path effect. Intervals alternate on and off lengths.
type Dash struct {
	Intervals []float32
	Phase     float32
}

// maxDashIntervals bounds deserialized dash arrays.
const maxDashIntervals = 64

func (d *Dash) isValid() bool {
	if len(d.Intervals) < 2 || len(d.Intervals)%2 != 0 || len(d.Intervals) > maxDashIntervals {
		return false
	}
	for _, v := range d.Intervals {
		if !isFinite(v) || v < 0 {
			return false
		}
	}
	return isFinite(d.Phase)
}

// Flags are the paint attributes attached to draw ops and SaveLayerOp.
//
// The zero value is a transparent, aliased fill; use NewFlags for the usual
// defaults.
type Flags struct {
	Color         Color
	Style         Style
	StrokeWidth   float32
	MiterLimit    float32
	Cap           Cap
	Join          Join
	BlendMode     BlendMode
	FilterQuality FilterQuality
	AntiAlias     bool
	Dither        bool

	// Shader, when set, replaces Color as the paint source.
	Shader *Shader

	// Dash, when set, dashes strokes.
	Dash *Dash
}

// NewFlags returns opaque black fill flags with a miter limit of 4.
func NewFlags() Flags {
	return Flags{
		Color:      Black,
		MiterLimit: 4,
		AntiAlias:  true,
	}
}

// Alpha returns the color alpha.
func (f *Flags) Alpha() uint8 { return f.Color.A() }

// SetAlpha replaces the color alpha.
func (f *Flags) SetAlpha(a uint8) { f.Color = f.Color.WithAlpha(a) }

// SupportsFoldingAlpha reports whether a layer alpha can be multiplied into
// these flags instead of allocating a layer.
func (f *Flags) SupportsFoldingAlpha() bool {
	return f.BlendMode == BlendSrcOver
}

// HasDiscardableImages reports whether the shader references an image
// that must be decoded before use.
func (f *Flags) HasDiscardableImages() bool {
	return f.Shader != nil && f.Shader.hasDiscardableImages()
}

// CanComputeFastBounds reports whether FastBounds is meaningful. A stroke
// whose outset overflows float32 has no usable bound.
func (f *Flags) CanComputeFastBounds() bool {
	return f.Style == StyleFill || isFinite(f.strokeOutset())
}

// FastBounds returns a conservative device-independent bound of what
// drawing r with these flags may touch.
func (f *Flags) FastBounds(r Rect) Rect {
	r = r.Sorted()
	if f.Style == StyleFill {
		return r
	}
	radius := f.strokeOutset()
	return r.Outset(radius, radius)
}

// strokeOutset is how far a stroke may reach past its geometry.
func (f *Flags) strokeOutset() float32 {
	radius := f.StrokeWidth / 2
	if radius == 0 {
		// Hairlines cover one pixel.
		return 1
	}
	if f.Join == JoinMiter && f.MiterLimit > 1 {
		radius *= f.MiterLimit
	}
	return radius
}

// IsValid reports whether every enum field is in range and every scalar is
// finite.
func (f *Flags) IsValid() bool {
	if f.Style > StyleStrokeAndFill || f.Cap > CapSquare || f.Join > JoinBevel ||
		f.BlendMode > lastBlendMode || f.FilterQuality > FilterHigh {
		return false
	}
	if !isFinite(f.StrokeWidth) || f.StrokeWidth < 0 || !isFinite(f.MiterLimit) || f.MiterLimit < 0 {
		return false
	}
	if f.Dash != nil && !f.Dash.isValid() {
		return false
	}
	return f.Shader == nil || f.Shader.IsValid()
}

// countSlowPaths counts the attributes that force a slow rasterization path.
func (f *Flags) countSlowPaths() int {
	if f.Dash != nil {
		return 1
	}
	return 0
}

func (f Flags) String() string {
	return fmt.Sprintf("Flags{color:%#08x style:%d width:%g aa:%v blend:%s}",
		uint32(f.Color), f.Style, f.StrokeWidth, f.AntiAlias, f.BlendMode)
}
