package paint

import (
	"image"
	"image/color"
)

func testFlags() Flags {
	f := NewFlags()
	f.Color = Red
	return f
}

func testImage() Image {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{B: 255, A: 128})
	return NewImage(img)
}

func testRRect() RRect { return RRectXY(XYWH(0, 0, 20, 10), 3, 2) }

func testPath() *Path {
	return NewPath().MoveTo(0, 0).LineTo(10, 0).QuadTo(10, 10, 0, 10).Close()
}

// sampleOps returns one valid op of every type except DrawRecord, in type
// order.
func sampleOps() []Op {
	stroked := testFlags()
	stroked.Style = StyleStroke
	stroked.StrokeWidth = 2
	stroked.Dash = &Dash{Intervals: []float32{4, 2}, Phase: 1}

	shaded := testFlags()
	shaded.Shader = NewLinearGradient(Pt(0, 0), Pt(10, 0), []Color{Red, Blue}, []float32{0, 1}, TileMirror)

	imageShaded := testFlags()
	imageShaded.Shader = NewImageShader(testImage(), TileRepeat, TileClamp, Scale(2, 2))

	blob := &TextBlob{
		Runs: []TextRun{
			{Text: "hi", Size: 12, Offset: Pt(1, 2)},
			{Text: "שלום", Size: 12, Offset: Pt(20, 2), RTL: true},
		},
		Bounds: LTRB(0, -10, 40, 4),
	}

	return []Op{
		AnnotateOp{Annotation: AnnotationURL, Rect: XYWH(1, 2, 3, 4), Data: []byte("https://example.com")},
		ClipPathOp{Path: testPath(), Op: ClipDifference, AntiAlias: true},
		ClipRectOp{Rect: XYWH(0, 0, 5, 5)},
		ClipRRectOp{RRect: testRRect(), AntiAlias: true},
		ConcatOp{Matrix: Rotate(30)},
		DrawColorOp{Color: Green, Mode: BlendSrc},
		DrawDRRectOp{Flags: testFlags(), Outer: testRRect(), Inner: RRectXY(XYWH(2, 2, 10, 5), 1, 1)},
		DrawImageOp{Flags: testFlags(), Image: testImage(), Left: 3, Top: 4},
		DrawImageRectOp{
			Flags:      testFlags(),
			Image:      NewLazyImage([]byte("encoded"), 8, 8),
			Src:        XYWH(0, 0, 4, 4),
			Dst:        XYWH(0, 0, 8, 8),
			Constraint: ConstraintFast,
		},
		DrawIRectOp{Flags: testFlags(), Rect: IRect{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}},
		DrawLineOp{Flags: stroked, X0: 0, Y0: 0, X1: 10, Y1: 10},
		DrawOvalOp{Flags: shaded, Oval: XYWH(0, 0, 10, 5)},
		DrawPathOp{Flags: testFlags(), Path: testPath()},
		DrawRectOp{Flags: imageShaded, Rect: XYWH(0, 0, 4, 4)},
		DrawRRectOp{Flags: testFlags(), RRect: testRRect()},
		DrawTextBlobOp{Flags: testFlags(), Blob: blob, X: 5, Y: 6},
		NoopOp{},
		RestoreOp{},
		RotateOp{Degrees: 45},
		SaveOp{},
		SaveLayerOp{Flags: testFlags(), Bounds: UnsetRect},
		SaveLayerAlphaOp{Bounds: XYWH(0, 0, 10, 10), Alpha: 128, PreserveLCDTextRequests: true},
		ScaleOp{SX: 2, SY: 3},
		SetMatrixOp{Matrix: Translate(1, 2)},
		TranslateOp{DX: 4, DY: 5},
	}
}

// wireBytes serializes op into a fresh buffer, or returns nil.
func wireBytes(op Op) []byte {
	dst := make([]byte, 1<<16)
	n := Serialize(op, dst, SerializeOptions{})
	if n == 0 {
		return nil
	}
	return dst[:n]
}

// mapTransferCache is an in-memory ImageTransferCache.
type mapTransferCache struct {
	images map[uint32]Image
	next   uint32
	puts   int
}

func newMapTransferCache() *mapTransferCache {
	return &mapTransferCache{images: make(map[uint32]Image)}
}

func (c *mapTransferCache) Put(img Image) (uint32, bool) {
	c.puts++
	c.next++
	c.images[c.next] = img
	return c.next, true
}

func (c *mapTransferCache) Get(id uint32) (Image, bool) {
	img, ok := c.images[id]
	return img, ok
}
