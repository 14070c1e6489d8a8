package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/text"
)

// sampleBuffer records a small scene touching most op kinds, including a
// lazy PNG image and a nested record.
func sampleBuffer() (*paint.Buffer, error) {
	lazy, err := checkerPNG(32, 32)
	if err != nil {
		return nil, err
	}

	nested := paint.NewBuffer()
	nested.Push(paint.DrawOvalOp{Flags: fill(paint.Hex("#3a7bd5")), Oval: paint.XYWH(0, 0, 120, 80)})
	rec := paint.NewRecord(nested)
	defer rec.Release()

	b := paint.NewBuffer()
	b.Push(paint.DrawColorOp{Color: paint.White, Mode: paint.BlendSrc})
	b.Push(paint.SaveOp{})
	b.Push(paint.ClipRRectOp{RRect: paint.RRectXY(paint.XYWH(20, 20, 360, 260), 16, 16), AntiAlias: true})

	grad := paint.NewFlags()
	grad.Shader = paint.NewLinearGradient(paint.Pt(20, 20), paint.Pt(380, 280),
		[]paint.Color{paint.Hex("#ff512f"), paint.Hex("#dd2476")}, nil, paint.TileClamp)
	b.Push(paint.DrawRectOp{Flags: grad, Rect: paint.XYWH(20, 20, 360, 260)})

	b.Push(paint.SaveLayerAlphaOp{Bounds: paint.UnsetRect, Alpha: 160})
	b.Push(paint.DrawRRectOp{Flags: fill(paint.Black), RRect: paint.RRectXY(paint.XYWH(40, 40, 100, 60), 8, 8)})
	b.Push(paint.RestoreOp{})

	b.Push(paint.TranslateOp{DX: 200, DY: 40})
	b.Push(paint.DrawRecordOp{Record: rec})
	b.Push(paint.RestoreOp{})

	stroke := fill(paint.Hex("#222"))
	stroke.Style = paint.StyleStroke
	stroke.StrokeWidth = 3
	stroke.Cap = paint.CapRound
	stroke.Dash = &paint.Dash{Intervals: []float32{12, 6}}
	b.Push(paint.DrawLineOp{Flags: stroke, X0: 20, Y0: 320, X1: 380, Y1: 320})

	b.Push(paint.DrawImageOp{Flags: paint.NewFlags(), Image: paint.NewLazyImage(lazy, 32, 32), Left: 400, Top: 20})

	blob := text.NewBlob("paint ops", text.Face(24), 24)
	b.Push(paint.DrawTextBlobOp{Flags: fill(paint.Black), Blob: blob, X: 400, Y: 120})
	return b, nil
}

func fill(c paint.Color) paint.Flags {
	f := paint.NewFlags()
	f.Color = c
	return f
}

// checkerPNG encodes a two-color checkerboard.
func checkerPNG(w, h int) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := color.NRGBA{R: 40, G: 40, B: 40, A: 255}
			if (x/8+y/8)%2 == 0 {
				c = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
