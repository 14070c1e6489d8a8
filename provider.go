package paint

import "math"

// DrawImage describes an image about to be drawn: which region, at what
// quality, and under which transform.
type DrawImage struct {
	Image         Image
	SrcRect       IRect
	FilterQuality FilterQuality
	Matrix        Matrix
}

// DecodedDrawImage is the resident substitute for a lazy image.
//
// ScaleAdjustment is the decoded size divided by the original size; a
// provider that decodes at half resolution reports (0.5, 0.5).
// SrcRectOffset shifts source rectangles when only a subset was decoded.
type DecodedDrawImage struct {
	Image           Image
	SrcRectOffset   Point
	ScaleAdjustment Point
	FilterQuality   FilterQuality
}

// IsScaleAdjustmentIdentity reports whether the decode kept the original
// size.
func (d DecodedDrawImage) IsScaleAdjustmentIdentity() bool {
	const eps = 1e-4
	return math.Abs(float64(d.ScaleAdjustment.X-1)) < eps &&
		math.Abs(float64(d.ScaleAdjustment.Y-1)) < eps
}

// ScopedDecodedDrawImage keeps a decode alive until Release is called.
type ScopedDecodedDrawImage struct {
	decoded DecodedDrawImage
	release func()
}

// NewScopedDecodedDrawImage wraps a decode. release, if non-nil, runs once
// on the first Release.
func NewScopedDecodedDrawImage(d DecodedDrawImage, release func()) ScopedDecodedDrawImage {
	return ScopedDecodedDrawImage{decoded: d, release: release}
}

// DecodedImage returns the decode.
func (s *ScopedDecodedDrawImage) DecodedImage() DecodedDrawImage { return s.decoded }

// Release returns the decode to its provider.
func (s *ScopedDecodedDrawImage) Release() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
}

// ImageProvider decodes lazy images during playback.
type ImageProvider interface {
	// GetDecodedDrawImage returns a resident substitute for di.Image, or
	// false if it cannot be decoded. The op that needed it is then skipped.
	GetDecodedDrawImage(di DrawImage) (ScopedDecodedDrawImage, bool)
}

// scopedImageFlags returns a copy of f whose image shader samples a
// decoded image. The returned function releases the decode. Shaders that
// are not image shaders are passed through unchanged.
func scopedImageFlags(p ImageProvider, f *Flags, ctm Matrix) (*Flags, func(), bool) {
	sh := f.Shader
	if sh == nil || sh.Type != ShaderImage {
		return f, func() {}, true
	}
	img := sh.Image
	scoped, ok := p.GetDecodedDrawImage(DrawImage{
		Image:         img,
		SrcRect:       IRect{MaxX: int32(img.Width()), MaxY: int32(img.Height())}, // #nosec G115 -- bounded image size
		FilterQuality: f.FilterQuality,
		Matrix:        ctm.Multiply(sh.LocalMatrix),
	})
	if !ok {
		Logger().Warn("paint: shader image decode failed", "image", img.ID())
		return nil, nil, false
	}
	d := scoped.DecodedImage()

	decodedShader := *sh
	decodedShader.Image = d.Image
	if !d.IsScaleAdjustmentIdentity() {
		decodedShader.LocalMatrix = sh.LocalMatrix.Multiply(
			Scale(1/d.ScaleAdjustment.X, 1/d.ScaleAdjustment.Y))
	}
	decoded := *f
	decoded.Shader = &decodedShader
	decoded.FilterQuality = d.FilterQuality
	return &decoded, scoped.Release, true
}
