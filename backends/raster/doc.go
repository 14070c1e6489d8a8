// Package raster provides a paint.Canvas that draws into an *image.RGBA.
//
// Coverage is computed with golang.org/x/image/vector, images are
// resampled with golang.org/x/image/draw, and text is drawn with
// golang.org/x/image/font. Pixels are premultiplied RGBA, composited with
// the paint.BlendMode operators.
//
// # Supported Features
//
//   - Rect, rounded rect, oval, line and path fills and strokes
//   - Dash patterns, caps, joins and hairlines
//   - Rect, rounded rect and path clips, intersect and difference
//   - Layers with alpha or flags, composited on restore
//   - Linear gradient, image and record shaders
//   - Image draws with filter quality
//
// # Limitations
//
// Even-odd fills are drawn with the nonzero rule. Lazy images are skipped
// unless playback substitutes them through an image provider.
//
// # Example
//
//	import _ "github.com/gogpu/paint/backends/raster"
//
//	c, _ := paint.NewCanvas("raster", 800, 600)
//	buf.Playback(c, paint.WithImageProvider(decode.New()))
//	c.(*raster.Canvas).SavePNG("out.png")
package raster
