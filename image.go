package paint

import (
	"image"
	"sync/atomic"
)

var nextImageID atomic.Uint64

// Image is an immutable image reference. It is either resident, backed by
// decoded pixels, or lazy, backed by encoded bytes that an ImageProvider
// must decode before drawing. Lazy images are the discardable images the
// playback engine substitutes.
//
// Images are small values; copies share the same pixels and bytes.
type Image struct {
	id      uint64
	width   int
	height  int
	pixels  image.Image
	encoded []byte
}

// NewImage wraps decoded pixels.
func NewImage(img image.Image) Image {
	b := img.Bounds()
	return Image{
		id:     nextImageID.Add(1),
		width:  b.Dx(),
		height: b.Dy(),
		pixels: img,
	}
}

// NewLazyImage creates a discardable image from encoded bytes. The
// dimensions are the intrinsic size of the encoded image.
func NewLazyImage(encoded []byte, width, height int) Image {
	return Image{
		id:      nextImageID.Add(1),
		width:   width,
		height:  height,
		encoded: encoded,
	}
}

// ID returns a process-unique identifier. Copies share it.
func (i Image) ID() uint64 { return i.id }

// Width returns the image width.
func (i Image) Width() int { return i.width }

// Height returns the image height.
func (i Image) Height() int { return i.height }

// Bounds returns the image rectangle at the origin.
func (i Image) Bounds() Rect {
	return XYWH(0, 0, float32(i.width), float32(i.height))
}

// Pixels returns the decoded pixels, or nil for a lazy image.
func (i Image) Pixels() image.Image { return i.pixels }

// Encoded returns the encoded bytes of a lazy image.
func (i Image) Encoded() []byte { return i.encoded }

// IsLazy reports whether the image must be decoded before drawing.
func (i Image) IsLazy() bool { return i.pixels == nil && i.encoded != nil }

// IsZero reports whether i refers to no image.
func (i Image) IsZero() bool { return i.pixels == nil && i.encoded == nil }

// SameImage reports whether both values refer to the same logical image.
func (i Image) SameImage(other Image) bool { return i.id == other.id }
