// Package decode implements paint.ImageProvider for lazy images. Encoded
// bytes are decoded with the standard image registry, extended with WebP,
// BMP and TIFF, and downscaled by powers of two when the draw transform
// shrinks the image enough for a smaller decode to look the same.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png" // register PNG
	"math"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	_ "golang.org/x/image/bmp"  // register BMP
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP

	"github.com/gogpu/paint"
)

// Defaults for New.
const (
	DefaultCapacity       = 64
	DefaultMaxDecodeBytes = 256 << 20
)

// Decode errors.
var (
	ErrNotLazy       = errors.New("decode: image is not lazy")
	ErrTooLarge      = errors.New("decode: image exceeds decode budget")
	ErrSizeMismatch  = errors.New("decode: decoded size differs from declared size")
	errEmptySrcRect  = errors.New("decode: empty source rectangle")
	errInvalidMatrix = errors.New("decode: non-invertible draw matrix")
)

// key identifies one decode of an image.
type key struct {
	id      uint64
	level   int
	quality paint.FilterQuality
}

// entry is a cached decode.
type entry struct {
	image   paint.Image
	scale   paint.Point
	quality paint.FilterQuality
}

// Provider decodes lazy images and caches the results.
//
// Provider is safe for concurrent use.
type Provider struct {
	opts  options
	cache *lru.Cache

	mu      sync.Mutex
	inUse   int
	decodes int
}

var _ paint.ImageProvider = (*Provider)(nil)

// New creates a Provider.
func New(opts ...Option) *Provider {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c, err := lru.New(o.capacity)
	if err != nil {
		// Only a non-positive size fails, which the options rule out.
		panic(err)
	}
	return &Provider{opts: o, cache: c}
}

// GetDecodedDrawImage decodes di.Image, reusing a cached decode when one
// matches the scale and quality. Failures are logged and reported as false.
func (p *Provider) GetDecodedDrawImage(di paint.DrawImage) (paint.ScopedDecodedDrawImage, bool) {
	d, err := p.Decode(di)
	if err != nil {
		paint.Logger().Warn("decode: image decode failed", "image", di.Image.ID(), "err", err)
		return paint.ScopedDecodedDrawImage{}, false
	}

	p.mu.Lock()
	p.inUse++
	p.mu.Unlock()
	return paint.NewScopedDecodedDrawImage(d, func() {
		p.mu.Lock()
		p.inUse--
		p.mu.Unlock()
	}), true
}

// Decode returns a decode of di without taking a scoped reference.
func (p *Provider) Decode(di paint.DrawImage) (paint.DecodedDrawImage, error) {
	img := di.Image
	if !img.IsLazy() {
		return paint.DecodedDrawImage{}, ErrNotLazy
	}
	if di.SrcRect.Width() <= 0 || di.SrcRect.Height() <= 0 {
		return paint.DecodedDrawImage{}, errEmptySrcRect
	}
	if !di.Matrix.IsFinite() {
		return paint.DecodedDrawImage{}, errInvalidMatrix
	}
	if _, ok := di.Matrix.Invert(); !ok {
		return paint.DecodedDrawImage{}, errInvalidMatrix
	}

	k := key{id: img.ID(), level: mipLevel(di), quality: di.FilterQuality}
	if v, ok := p.cache.Get(k); ok {
		e := v.(*entry)
		return paint.DecodedDrawImage{Image: e.image, ScaleAdjustment: e.scale, FilterQuality: e.quality}, nil
	}

	e, err := p.decode(img, k)
	if err != nil {
		return paint.DecodedDrawImage{}, err
	}
	p.cache.Add(k, e)
	return paint.DecodedDrawImage{Image: e.image, ScaleAdjustment: e.scale, FilterQuality: e.quality}, nil
}

func (p *Provider) decode(img paint.Image, k key) (*entry, error) {
	w, h := img.Width(), img.Height()
	if w*h*4 > p.opts.maxDecodeBytes {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, w, h)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Encoded()))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if cfg.Width != w || cfg.Height != h {
		return nil, fmt.Errorf("%w: %dx%d, declared %dx%d", ErrSizeMismatch, cfg.Width, cfg.Height, w, h)
	}
	src, _, err := image.Decode(bytes.NewReader(img.Encoded()))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	p.mu.Lock()
	p.decodes++
	p.mu.Unlock()

	if k.level == 0 {
		return &entry{image: paint.NewImage(src), scale: paint.Pt(1, 1), quality: k.quality}, nil
	}

	dw := max(w>>k.level, 1)
	dh := max(h>>k.level, 1)
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	interpolator(k.quality).Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	quality := k.quality
	if quality == paint.FilterHigh {
		// The downscale already applied a high quality kernel.
		quality = paint.FilterMedium
	}
	return &entry{
		image:   paint.NewImage(dst),
		scale:   paint.Pt(float32(dw)/float32(w), float32(dh)/float32(h)),
		quality: quality,
	}, nil
}

// mipLevel returns how many times the image can be halved while staying at
// least as large as it is drawn.
func mipLevel(di paint.DrawImage) int {
	if di.FilterQuality == paint.FilterNone {
		return 0
	}
	sx, sy := di.Matrix.ScaleFactors()
	s := float64(max(sx, sy))
	if s <= 0 || s >= 0.5 {
		return 0
	}
	level := int(math.Floor(math.Log2(1 / s)))
	// Keep at least one pixel along the smaller side.
	minSide := min(di.Image.Width(), di.Image.Height())
	for level > 0 && minSide>>level == 0 {
		level--
	}
	return level
}

func interpolator(q paint.FilterQuality) draw.Interpolator {
	switch q {
	case paint.FilterNone:
		return draw.NearestNeighbor
	case paint.FilterLow:
		return draw.ApproxBiLinear
	case paint.FilterMedium:
		return draw.BiLinear
	default:
		return draw.CatmullRom
	}
}

// InUse returns the number of decodes handed out and not yet released.
func (p *Provider) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inUse
}

// Decodes returns how many images were actually decoded, excluding cache
// hits.
func (p *Provider) Decodes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.decodes
}

// Purge drops every cached decode. Decodes still in use stay valid.
func (p *Provider) Purge() { p.cache.Purge() }

// Len returns the number of cached decodes.
func (p *Provider) Len() int { return p.cache.Len() }
