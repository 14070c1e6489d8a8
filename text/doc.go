// Package text builds paint.TextBlob values from strings.
//
// Strings are split into bidirectional runs with golang.org/x/text/unicode/bidi
// and measured with golang.org/x/image/font. Runs are stored in visual
// order, so a canvas can draw each run left to right without shaping.
//
//	face := text.Face(16)
//	blob := text.NewBlob("hello, עולם", face, 16)
//	buf.Push(paint.DrawTextBlobOp{Flags: paint.NewFlags(), Blob: blob, X: 10, Y: 30})
//
// Complex shaping is out of scope; glyphs come from the font's cmap.
package text
