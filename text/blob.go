package text

import (
	"golang.org/x/image/font"

	"github.com/gogpu/paint"
)

// NewBlob lays s out on a single line with face. size is recorded on each
// run so canvases can pick a matching face. The blob origin is the start
// of the baseline. It returns nil for an empty string.
func NewBlob(s string, face font.Face, size float32) *paint.TextBlob {
	segs := Segments(s)
	if len(segs) == 0 {
		return nil
	}
	blob := &paint.TextBlob{Runs: make([]paint.TextRun, 0, len(segs))}
	var x float32
	for _, seg := range segs {
		blob.Runs = append(blob.Runs, paint.TextRun{
			Text:   seg.Text,
			Size:   size,
			Offset: paint.Pt(x, 0),
			RTL:    seg.RTL,
		})
		x += fixedToFloat(font.MeasureString(face, seg.Text))
	}
	m := face.Metrics()
	blob.Bounds = paint.LTRB(0, -fixedToFloat(m.Ascent), x, fixedToFloat(m.Descent))
	return blob
}
