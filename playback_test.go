package paint_test

import (
	"context"
	"image"
	"slices"
	"testing"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/recording"
)

const (
	save        = recording.CallSave
	saveLayerA  = recording.CallSaveLayerAlpha
	restore     = recording.CallRestore
	restoreTo   = recording.CallRestoreToCount
	clipRect    = recording.CallClipRect
	drawColor   = recording.CallDrawColor
	drawRect    = recording.CallDrawRect
	drawOval    = recording.CallDrawOval
	drawImage   = recording.CallDrawImage
	drawImageR  = recording.CallDrawImageRect
	translate   = recording.CallTranslate
	scale       = recording.CallScale
	setMatrix   = recording.CallSetMatrix
	defaultSize = 100
)

func flags(c paint.Color) paint.Flags {
	f := paint.NewFlags()
	f.Color = c
	return f
}

func bufferOf(ops ...paint.Op) *paint.Buffer {
	b := paint.NewBuffer()
	for _, op := range ops {
		b.Push(op)
	}
	return b
}

func play(b *paint.Buffer, opts ...paint.PlaybackOption) *recording.Canvas {
	c := recording.NewCanvas(defaultSize, defaultSize)
	b.Playback(c, opts...)
	return c
}

func expectTypes(t *testing.T, c *recording.Canvas, want ...recording.CallType) {
	t.Helper()
	if got := c.Types(); !slices.Equal(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func residentImage(w, h int) paint.Image {
	return paint.NewImage(image.NewNRGBA(image.Rect(0, 0, w, h)))
}

func lazyImage(w, h int) paint.Image {
	return paint.NewLazyImage([]byte("encoded"), w, h)
}

// fakeProvider substitutes a fixed resident image for every lazy image.
type fakeProvider struct {
	decoded  paint.Image
	scale    paint.Point
	fail     bool
	requests []paint.DrawImage
	released int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{decoded: residentImage(4, 4), scale: paint.Pt(1, 1)}
}

func (p *fakeProvider) GetDecodedDrawImage(di paint.DrawImage) (paint.ScopedDecodedDrawImage, bool) {
	p.requests = append(p.requests, di)
	if p.fail {
		return paint.ScopedDecodedDrawImage{}, false
	}
	d := paint.DecodedDrawImage{
		Image:           p.decoded,
		ScaleAdjustment: p.scale,
		FilterQuality:   paint.FilterLow,
	}
	return paint.NewScopedDecodedDrawImage(d, func() { p.released++ }), true
}

func TestPlaybackSerializedScenario(t *testing.T) {
	b := bufferOf(
		paint.SaveOp{},
		paint.ClipRectOp{Rect: paint.XYWH(0, 0, 10, 10)},
		paint.DrawColorOp{Color: paint.Red},
		paint.RestoreOp{},
	)
	data, err := paint.SerializeBuffer(b, paint.SerializeOptions{})
	if err != nil {
		t.Fatalf("SerializeBuffer: %v", err)
	}
	got, err := paint.DeserializeBuffer(data, paint.DeserializeOptions{})
	if err != nil {
		t.Fatalf("DeserializeBuffer: %v", err)
	}

	c := play(got)
	expectTypes(t, c, save, save, clipRect, drawColor, restore, restoreTo)
	calls := c.Calls()
	if calls[2].Rect != paint.XYWH(0, 0, 10, 10) {
		t.Errorf("clip rect = %v", calls[2].Rect)
	}
	if calls[3].Color != paint.Red {
		t.Errorf("color = %#x", calls[3].Color)
	}
	if calls[5].Count != 0 {
		t.Errorf("RestoreToCount(%d), want 0", calls[5].Count)
	}
}

func TestPlaybackEmpty(t *testing.T) {
	expectTypes(t, play(paint.NewBuffer()))

	b := bufferOf(paint.DrawColorOp{Color: paint.Red})
	expectTypes(t, play(b, paint.WithOffsets([]paint.OpRef{})))
}

func TestPlaybackOffsets(t *testing.T) {
	b := paint.NewBuffer()
	b.Push(paint.TranslateOp{DX: 5})
	o1 := b.Push(paint.DrawRectOp{Flags: flags(paint.Red), Rect: paint.XYWH(0, 0, 1, 1)})
	o2 := b.Push(paint.DrawOvalOp{Flags: flags(paint.Red), Oval: paint.XYWH(0, 0, 1, 1)})

	expectTypes(t, play(b, paint.WithOffsets([]paint.OpRef{o2, o1})), save, drawOval, drawRect, restoreTo)
}

func TestPlaybackRestoresCanvas(t *testing.T) {
	c := recording.NewCanvas(defaultSize, defaultSize)
	c.Save()
	c.Translate(3, 3)
	before := c.TotalMatrix()

	bufferOf(paint.SaveOp{}, paint.SaveOp{}, paint.ScaleOp{SX: 2, SY: 2}).Playback(c)
	if c.SaveCount() != 1 {
		t.Errorf("SaveCount = %d, want 1", c.SaveCount())
	}
	if c.TotalMatrix() != before {
		t.Errorf("matrix = %+v, want %+v", c.TotalMatrix(), before)
	}
	if last := c.Calls()[len(c.Calls())-1]; last.Type != restoreTo || last.Count != 1 {
		t.Errorf("last call = %v", last)
	}
}

func TestPlaybackLayerAlpha(t *testing.T) {
	srcMode := flags(paint.Red)
	srcMode.BlendMode = paint.BlendSrc
	rect := paint.DrawRectOp{Flags: flags(paint.Red), Rect: paint.XYWH(0, 0, 5, 5)}
	layer := paint.SaveLayerAlphaOp{Bounds: paint.UnsetRect, Alpha: 128}
	single := paint.NewRecord(bufferOf(rect))
	defer single.Release()

	tests := []struct {
		name string
		ops  []paint.Op
		want []recording.CallType
	}{
		{
			name: "elided",
			ops:  []paint.Op{layer, paint.RestoreOp{}},
			want: []recording.CallType{save, restoreTo},
		},
		{
			name: "folded into flags",
			ops:  []paint.Op{layer, rect, paint.RestoreOp{}},
			want: []recording.CallType{save, drawRect, restoreTo},
		},
		{
			name: "folded into draw color",
			ops:  []paint.Op{layer, paint.DrawColorOp{Color: paint.Red}, paint.RestoreOp{}},
			want: []recording.CallType{save, drawColor, restoreTo},
		},
		{
			name: "unfoldable flags",
			ops:  []paint.Op{layer, paint.DrawRectOp{Flags: srcMode, Rect: paint.XYWH(0, 0, 5, 5)}, paint.RestoreOp{}},
			want: []recording.CallType{save, saveLayerA, drawRect, restore, restoreTo},
		},
		{
			name: "unfoldable draw color",
			ops:  []paint.Op{layer, paint.DrawColorOp{Color: paint.Red, Mode: paint.BlendSrc}, paint.RestoreOp{}},
			want: []recording.CallType{save, saveLayerA, drawColor, restore, restoreTo},
		},
		{
			name: "single op record",
			ops:  []paint.Op{layer, paint.DrawRecordOp{Record: single}, paint.RestoreOp{}},
			want: []recording.CallType{save, drawRect, restoreTo},
		},
		{
			name: "two draws",
			ops:  []paint.Op{layer, rect, rect, paint.RestoreOp{}},
			want: []recording.CallType{save, saveLayerA, drawRect, drawRect, restore, restoreTo},
		},
		{
			name: "state op",
			ops:  []paint.Op{layer, paint.TranslateOp{DX: 1}, paint.RestoreOp{}},
			want: []recording.CallType{save, saveLayerA, translate, restore, restoreTo},
		},
		{
			name: "trailing layer",
			ops:  []paint.Op{rect, layer},
			want: []recording.CallType{save, drawRect, saveLayerA, restoreTo},
		},
		{
			name: "layer then draw at end",
			ops:  []paint.Op{layer, rect},
			want: []recording.CallType{save, saveLayerA, drawRect, restoreTo},
		},
		{
			name: "nested layers",
			ops:  []paint.Op{layer, layer, paint.RestoreOp{}, paint.RestoreOp{}},
			want: []recording.CallType{save, saveLayerA, restore, restoreTo},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectTypes(t, play(bufferOf(tt.ops...)), tt.want...)
		})
	}
}

func TestPlaybackFoldedAlpha(t *testing.T) {
	half := flags(paint.Red.WithAlpha(200))
	b := bufferOf(
		paint.SaveLayerAlphaOp{Bounds: paint.UnsetRect, Alpha: 128},
		paint.DrawRectOp{Flags: half, Rect: paint.XYWH(0, 0, 5, 5)},
		paint.RestoreOp{},
		paint.SaveLayerAlphaOp{Bounds: paint.UnsetRect, Alpha: 51},
		paint.DrawColorOp{Color: paint.Blue},
		paint.RestoreOp{},
	)
	draws := play(b).DrawCalls()
	if len(draws) != 2 {
		t.Fatalf("draws = %v", draws)
	}
	if got, want := draws[0].Flags.Color.A(), paint.MulDiv255Round(200, 128); got != want {
		t.Errorf("folded rect alpha = %d, want %d", got, want)
	}
	if got := draws[1].Color; got != paint.Blue.WithAlpha(51) {
		t.Errorf("folded color = %#x, want %#x", got, paint.Blue.WithAlpha(51))
	}
}

func TestPlaybackLayerBoundsKept(t *testing.T) {
	srcMode := flags(paint.Red)
	srcMode.BlendMode = paint.BlendSrc
	bounds := paint.XYWH(1, 2, 3, 4)
	b := bufferOf(
		paint.SaveLayerAlphaOp{Bounds: bounds, Alpha: 10},
		paint.DrawRectOp{Flags: srcMode, Rect: paint.XYWH(0, 0, 5, 5)},
		paint.RestoreOp{},
	)
	calls := play(b).Calls()
	if layer := calls[1]; layer.Type != saveLayerA || !layer.HasBounds || layer.Rect != bounds || layer.Alpha != 10 {
		t.Errorf("layer call = %v", layer)
	}
}

// Fusing a layer must draw what the unfused sequence draws.
func TestPlaybackFusionEquivalence(t *testing.T) {
	rect := paint.DrawRectOp{Flags: flags(paint.Green.WithAlpha(180)), Rect: paint.XYWH(0, 0, 5, 5)}
	fused := play(bufferOf(paint.SaveLayerAlphaOp{Bounds: paint.UnsetRect, Alpha: 100}, rect, paint.RestoreOp{})).DrawCalls()

	c := recording.NewCanvas(defaultSize, defaultSize)
	c.SaveLayerAlpha(nil, 100, false)
	c.DrawRect(rect.Rect, &rect.Flags)
	c.Restore()
	unfused := c.DrawCalls()

	if len(fused) != 1 || len(unfused) != 1 {
		t.Fatalf("fused %v, unfused %v", fused, unfused)
	}
	// A source-over layer with alpha a over a paint with alpha p equals a
	// paint with alpha a*p.
	if got, want := fused[0].Flags.Color.A(), paint.MulDiv255Round(180, 100); got != want {
		t.Errorf("fused alpha = %d, want %d", got, want)
	}
	if fused[0].Rect != unfused[0].Rect || fused[0].Flags.Color.WithAlpha(0) != unfused[0].Flags.Color.WithAlpha(0) {
		t.Errorf("fused %v, unfused %v", fused[0], unfused[0])
	}
}

func TestPlaybackSetMatrixRelative(t *testing.T) {
	c := recording.NewCanvas(defaultSize, defaultSize)
	c.Translate(100, 0)
	bufferOf(paint.SetMatrixOp{Matrix: paint.Scale(2, 2)}).Playback(c)

	var got paint.Matrix
	for _, call := range c.Calls() {
		if call.Type == setMatrix {
			got = call.Matrix
		}
	}
	if want := paint.Translate(100, 0).Multiply(paint.Scale(2, 2)); got != want {
		t.Errorf("SetMatrix = %+v, want %+v", got, want)
	}
}

func TestPlaybackAbort(t *testing.T) {
	b := bufferOf(
		paint.DrawColorOp{Color: paint.Red},
		paint.DrawColorOp{Color: paint.Green},
		paint.DrawColorOp{Color: paint.Blue},
	)

	polls := 0
	c := play(b, paint.WithAbort(func() bool {
		polls++
		return polls > 2
	}))
	if n := len(c.DrawCalls()); n != 2 {
		t.Errorf("drew %d ops before abort, want 2", n)
	}
	if c.SaveCount() != 0 {
		t.Errorf("abort left %d saves", c.SaveCount())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c = play(b, paint.WithContext(ctx))
	expectTypes(t, c, save, restoreTo)
}

func TestPlaybackNestedRecord(t *testing.T) {
	inner := paint.NewRecord(bufferOf(paint.DrawColorOp{Color: paint.Red}, paint.SaveOp{}))
	b := bufferOf(paint.DrawRecordOp{Record: inner}, paint.DrawColorOp{Color: paint.Blue})
	inner.Release()

	c := play(b)
	expectTypes(t, c, save, save, drawColor, save, restoreTo, drawColor, restoreTo)
	if got := c.Calls()[4].Count; got != 1 {
		t.Errorf("nested RestoreToCount(%d), want 1", got)
	}
}

func TestPlaybackImageSubstitution(t *testing.T) {
	lazy := lazyImage(8, 8)

	t.Run("identity scale", func(t *testing.T) {
		p := newFakeProvider()
		c := play(bufferOf(paint.DrawImageOp{Flags: flags(paint.Black), Image: lazy, Left: 10, Top: 20}),
			paint.WithImageProvider(p))
		expectTypes(t, c, save, drawImage, restoreTo)
		call := c.Calls()[1]
		if !call.Image.SameImage(p.decoded) || call.X != 10 || call.Y != 20 {
			t.Errorf("draw = %v", call)
		}
		if call.Flags.FilterQuality != paint.FilterLow {
			t.Errorf("filter quality = %d, want decode's", call.Flags.FilterQuality)
		}
		if p.released != 1 || len(p.requests) != 1 {
			t.Errorf("requests %d, released %d", len(p.requests), p.released)
		}
		if r := p.requests[0].SrcRect; r.MaxX != 8 || r.MaxY != 8 {
			t.Errorf("requested src rect %+v", r)
		}
	})

	t.Run("scaled decode", func(t *testing.T) {
		p := newFakeProvider()
		p.scale = paint.Pt(0.5, 0.25)
		c := play(bufferOf(paint.DrawImageOp{Flags: flags(paint.Black), Image: lazy, Left: 10, Top: 20}),
			paint.WithImageProvider(p))
		expectTypes(t, c, save, save, translate, scale, drawImage, restore, restoreTo)
		calls := c.Calls()
		if calls[2].X != 10 || calls[2].Y != 20 {
			t.Errorf("translate = %v", calls[2])
		}
		if calls[3].X != 2 || calls[3].Y != 4 {
			t.Errorf("scale = %v, want 2 4", calls[3])
		}
		if calls[4].X != 0 || calls[4].Y != 0 {
			t.Errorf("draw at %g %g, want origin", calls[4].X, calls[4].Y)
		}
	})

	t.Run("image rect", func(t *testing.T) {
		p := newFakeProvider()
		p.scale = paint.Pt(0.5, 0.5)
		op := paint.DrawImageRectOp{
			Flags: flags(paint.Black),
			Image: lazy,
			Src:   paint.XYWH(2, 2, 4, 4),
			Dst:   paint.XYWH(0, 0, 40, 40),
		}
		c := play(bufferOf(op), paint.WithImageProvider(p))
		expectTypes(t, c, save, drawImageR, restoreTo)
		call := c.Calls()[1]
		if call.Src != paint.XYWH(1, 1, 2, 2) || call.Rect != op.Dst {
			t.Errorf("src %v dst %v", call.Src, call.Rect)
		}
	})

	t.Run("no provider", func(t *testing.T) {
		c := play(bufferOf(paint.DrawImageOp{Flags: flags(paint.Black), Image: lazy}))
		if call := c.Calls()[1]; !call.Image.SameImage(lazy) {
			t.Error("image substituted without a provider")
		}
	})

	t.Run("resident image", func(t *testing.T) {
		p := newFakeProvider()
		img := residentImage(2, 2)
		c := play(bufferOf(paint.DrawImageOp{Flags: flags(paint.Black), Image: img}), paint.WithImageProvider(p))
		if call := c.Calls()[1]; !call.Image.SameImage(img) || len(p.requests) != 0 {
			t.Error("resident image went through the provider")
		}
	})

	t.Run("decode failure skips", func(t *testing.T) {
		p := newFakeProvider()
		p.fail = true
		c := play(bufferOf(
			paint.DrawImageOp{Flags: flags(paint.Black), Image: lazy},
			paint.DrawColorOp{Color: paint.Red},
		), paint.WithImageProvider(p))
		expectTypes(t, c, save, drawColor, restoreTo)
	})

	t.Run("offscreen not decoded", func(t *testing.T) {
		p := newFakeProvider()
		c := play(bufferOf(paint.DrawImageOp{Flags: flags(paint.Black), Image: lazy, Left: 500, Top: 500}),
			paint.WithImageProvider(p))
		expectTypes(t, c, save, restoreTo)
		if len(p.requests) != 0 {
			t.Error("offscreen image was decoded")
		}
	})

	t.Run("offscreen in layer", func(t *testing.T) {
		p := newFakeProvider()
		c := play(bufferOf(
			paint.SaveLayerAlphaOp{Bounds: paint.UnsetRect, Alpha: 128},
			paint.DrawImageOp{Flags: flags(paint.Black), Image: lazy, Left: 500, Top: 500},
			paint.RestoreOp{},
		), paint.WithImageProvider(p))
		expectTypes(t, c, save, restoreTo)
		if len(p.requests) != 0 {
			t.Error("offscreen image was decoded")
		}
	})

	t.Run("offscreen in layer then draw", func(t *testing.T) {
		p := newFakeProvider()
		c := play(bufferOf(
			paint.SaveLayerAlphaOp{Bounds: paint.UnsetRect, Alpha: 128},
			paint.DrawImageOp{Flags: flags(paint.Black), Image: lazy, Left: 500, Top: 500},
			paint.DrawRectOp{Flags: flags(paint.Red), Rect: paint.XYWH(0, 0, 10, 10)},
			paint.RestoreOp{},
		), paint.WithImageProvider(p))
		expectTypes(t, c, save, drawRect, restoreTo)
		if got := c.Calls()[1].Flags.Color; got != paint.Red.WithAlpha(128) {
			t.Errorf("rect color = %#08x, want red with alpha 128", uint32(got))
		}
	})

	t.Run("offscreen in layer then two draws", func(t *testing.T) {
		p := newFakeProvider()
		c := play(bufferOf(
			paint.SaveLayerAlphaOp{Bounds: paint.UnsetRect, Alpha: 128},
			paint.DrawImageOp{Flags: flags(paint.Black), Image: lazy, Left: 500, Top: 500},
			paint.DrawRectOp{Flags: flags(paint.Red), Rect: paint.XYWH(0, 0, 10, 10)},
			paint.DrawOvalOp{Flags: flags(paint.Red), Oval: paint.XYWH(0, 0, 10, 10)},
			paint.RestoreOp{},
		), paint.WithImageProvider(p))
		expectTypes(t, c, save, saveLayerA, drawRect, drawOval, restore, restoreTo)
	})

	t.Run("image shader", func(t *testing.T) {
		p := newFakeProvider()
		p.scale = paint.Pt(0.5, 0.5)
		f := flags(paint.Black)
		f.Shader = paint.NewImageShader(lazy, paint.TileRepeat, paint.TileRepeat, paint.Identity())
		c := play(bufferOf(paint.DrawRectOp{Flags: f, Rect: paint.XYWH(0, 0, 10, 10)}), paint.WithImageProvider(p))
		expectTypes(t, c, save, drawRect, restoreTo)
		sh := c.Calls()[1].Flags.Shader
		if sh == nil || !sh.Image.SameImage(p.decoded) {
			t.Fatal("shader image not substituted")
		}
		if sh.LocalMatrix != paint.Scale(2, 2) {
			t.Errorf("shader matrix = %+v, want scale 2", sh.LocalMatrix)
		}
		if p.released != 1 {
			t.Errorf("released %d, want 1", p.released)
		}
	})

	t.Run("image shader in fused layer", func(t *testing.T) {
		p := newFakeProvider()
		f := flags(paint.Black)
		f.Shader = paint.NewImageShader(lazy, paint.TileClamp, paint.TileClamp, paint.Identity())
		c := play(bufferOf(
			paint.SaveLayerAlphaOp{Bounds: paint.UnsetRect, Alpha: 128},
			paint.DrawRectOp{Flags: f, Rect: paint.XYWH(0, 0, 10, 10)},
			paint.RestoreOp{},
		), paint.WithImageProvider(p))
		expectTypes(t, c, save, drawRect, restoreTo)
		call := c.Calls()[1]
		if !call.Flags.Shader.Image.SameImage(p.decoded) || call.Flags.Color.A() != 128 {
			t.Errorf("draw = %v", call)
		}
	})

	t.Run("image shader decode failure", func(t *testing.T) {
		p := newFakeProvider()
		p.fail = true
		f := flags(paint.Black)
		f.Shader = paint.NewImageShader(lazy, paint.TileClamp, paint.TileClamp, paint.Identity())
		c := play(bufferOf(paint.DrawRectOp{Flags: f, Rect: paint.XYWH(0, 0, 10, 10)}), paint.WithImageProvider(p))
		expectTypes(t, c, save, restoreTo)
	})
}

func TestQuickRejectDraw(t *testing.T) {
	c := recording.NewCanvas(defaultSize, defaultSize)
	stroke := flags(paint.Red)
	stroke.Style = paint.StyleStroke
	stroke.StrokeWidth = 20
	huge := stroke
	huge.StrokeWidth = 3e38
	huge.Join = paint.JoinMiter
	huge.MiterLimit = 4

	tests := []struct {
		name string
		op   paint.Op
		want bool
	}{
		{"inside", paint.DrawRectOp{Flags: flags(paint.Red), Rect: paint.XYWH(10, 10, 5, 5)}, false},
		{"outside", paint.DrawRectOp{Flags: flags(paint.Red), Rect: paint.XYWH(200, 200, 5, 5)}, true},
		{"stroke reaches in", paint.DrawRectOp{Flags: stroke, Rect: paint.XYWH(105, 10, 5, 5)}, false},
		{"stroke outset overflows", paint.DrawRectOp{Flags: huge, Rect: paint.XYWH(1e6, 1e6, 5, 5)}, false},
		{"draw color", paint.DrawColorOp{Color: paint.Red}, false},
		{"state op", paint.TranslateOp{DX: 1000}, false},
		{"image", paint.DrawImageOp{Flags: flags(paint.Red), Image: residentImage(4, 4), Left: -10, Top: -10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paint.QuickRejectDraw(tt.op, c); got != tt.want {
				t.Errorf("QuickRejectDraw = %v, want %v", got, tt.want)
			}
		})
	}

	fill := flags(paint.Red)
	if !stroke.CanComputeFastBounds() || !fill.CanComputeFastBounds() {
		t.Error("finite stroke has no fast bounds")
	}
	if huge.CanComputeFastBounds() {
		t.Error("overflowing miter outset reported fast bounds")
	}
}

func BenchmarkPlayback(b *testing.B) {
	buf := paint.NewBuffer()
	for i := range 256 {
		buf.Push(paint.SaveLayerAlphaOp{Bounds: paint.UnsetRect, Alpha: uint8(i)})
		buf.Push(paint.DrawRectOp{Flags: flags(paint.Red), Rect: paint.XYWH(float32(i), 0, 4, 4)})
		buf.Push(paint.RestoreOp{})
	}
	c := recording.NewCanvas(defaultSize, defaultSize)
	for b.Loop() {
		c.Reset()
		buf.Playback(c)
	}
}
