package paint

import (
	"reflect"
	"strings"
	"testing"
)

func TestPushOpRoundTrip(t *testing.T) {
	b := NewBuffer()
	var refs []OpRef
	ops := sampleOps()
	for _, op := range ops {
		refs = append(refs, b.Push(op))
	}
	if b.Size() != len(ops) {
		t.Fatalf("Size = %d, want %d", b.Size(), len(ops))
	}
	for i, op := range ops {
		t.Run(op.Type().String(), func(t *testing.T) {
			if refs[i]%Align != 0 {
				t.Errorf("offset %d not aligned", refs[i])
			}
			got := b.Op(refs[i])
			if !reflect.DeepEqual(got, op) {
				t.Errorf("Op(%d) = %#v, want %#v", refs[i], got, op)
			}
		})
	}
}

func TestPushLayout(t *testing.T) {
	b := NewBuffer()
	want := 0
	for _, op := range sampleOps() {
		ref := b.Push(op)
		if int(ref) != want {
			t.Fatalf("%v pushed at %d, want %d", op.Type(), ref, want)
		}
		want += roundUp(opInfos[op.Type()].size)
	}
	if b.Used() != want {
		t.Errorf("Used = %d, want %d", b.Used(), want)
	}
	if b.Reserved() != InitialBufferSize {
		t.Errorf("Reserved = %d, want %d", b.Reserved(), InitialBufferSize)
	}
}

func TestBufferGrowth(t *testing.T) {
	b := NewBuffer()
	if b.Reserved() != 0 {
		t.Fatalf("new buffer reserved %d bytes", b.Reserved())
	}
	ref := b.Push(ConcatOp{Matrix: Scale(3, 4)})
	for range 1000 {
		b.Push(TranslateOp{DX: 1, DY: 1})
	}
	if b.Reserved() < b.Used() || b.Reserved()%InitialBufferSize != 0 {
		t.Errorf("Reserved = %d, Used = %d", b.Reserved(), b.Used())
	}
	// Offsets survive growth.
	if got := b.Op(ref); got != (ConcatOp{Matrix: Scale(3, 4)}) {
		t.Errorf("Op after growth = %#v", got)
	}
}

func TestBufferResetAndShrink(t *testing.T) {
	b := NewBuffer()
	for _, op := range sampleOps() {
		b.Push(op)
	}
	reserved := b.Reserved()
	b.Reset()
	if b.Size() != 0 || b.Used() != 0 || b.FirstOp() != nil {
		t.Errorf("after Reset: size %d used %d", b.Size(), b.Used())
	}
	if b.HasDiscardableImages() || b.NumSlowPaths() != 0 || b.HasNonAAPaint() {
		t.Error("Reset left metadata behind")
	}
	if b.Reserved() != reserved {
		t.Errorf("Reset changed capacity to %d, want %d", b.Reserved(), reserved)
	}

	b.Push(SaveOp{})
	b.ShrinkToFit()
	if b.Reserved() != b.Used() || b.Used() != roundUp(sizeSave) {
		t.Errorf("after ShrinkToFit: reserved %d used %d", b.Reserved(), b.Used())
	}
	if _, ok := b.FirstOp().(SaveOp); !ok {
		t.Errorf("FirstOp = %#v, want SaveOp", b.FirstOp())
	}

	b.Release()
	if b.Reserved() != 0 {
		t.Errorf("Release kept %d bytes", b.Reserved())
	}
}

func TestBufferMetadata(t *testing.T) {
	concave := NewPath().MoveTo(0, 0).LineTo(100, 0).LineTo(50, 20).LineTo(100, 100).LineTo(0, 100).Close()
	aliased := testFlags()
	aliased.AntiAlias = false
	dashed := testFlags()
	dashed.Style = StyleStroke
	dashed.StrokeWidth = 1
	dashed.Dash = &Dash{Intervals: []float32{2, 2}}
	roundDashed := dashed
	roundDashed.Cap = CapRound

	tests := []struct {
		name            string
		ops             []Op
		wantSlow        int
		wantNonAA       bool
		wantDiscardable bool
	}{
		{"empty", nil, 0, false, false},
		{"plain rect", []Op{DrawRectOp{Flags: testFlags(), Rect: XYWH(0, 0, 1, 1)}}, 0, false, false},
		{"aliased", []Op{DrawRectOp{Flags: aliased, Rect: XYWH(0, 0, 1, 1)}}, 0, true, false},
		{"concave aa clip", []Op{ClipPathOp{Path: concave, AntiAlias: true}}, 1, false, false},
		{"concave aliased clip", []Op{ClipPathOp{Path: concave}}, 0, false, false},
		{"concave path fill", []Op{DrawPathOp{Flags: testFlags(), Path: concave}}, 1, false, false},
		{"convex path fill", []Op{DrawPathOp{Flags: testFlags(), Path: NewPath().Rectangle(XYWH(0, 0, 100, 100))}}, 0, false, false},
		{"dashed line", []Op{DrawLineOp{Flags: dashed, X1: 10}}, 0, false, false},
		{"round dashed line", []Op{DrawLineOp{Flags: roundDashed, X1: 10}}, 1, false, false},
		{"dashed rect", []Op{DrawRectOp{Flags: dashed, Rect: XYWH(0, 0, 5, 5)}}, 1, false, false},
		{
			"lazy image",
			[]Op{DrawImageOp{Flags: testFlags(), Image: NewLazyImage([]byte{1}, 1, 1)}},
			0, false, true,
		},
		{"resident image", []Op{DrawImageOp{Flags: testFlags(), Image: testImage()}}, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer()
			for _, op := range tt.ops {
				b.Push(op)
			}
			if got := b.NumSlowPaths(); got != tt.wantSlow {
				t.Errorf("NumSlowPaths = %d, want %d", got, tt.wantSlow)
			}
			if got := b.HasNonAAPaint(); got != tt.wantNonAA {
				t.Errorf("HasNonAAPaint = %v, want %v", got, tt.wantNonAA)
			}
			if got := b.HasDiscardableImages(); got != tt.wantDiscardable {
				t.Errorf("HasDiscardableImages = %v, want %v", got, tt.wantDiscardable)
			}
		})
	}
}

func TestNestedRecordMetadata(t *testing.T) {
	aliased := testFlags()
	aliased.AntiAlias = false
	concave := NewPath().MoveTo(0, 0).LineTo(100, 0).LineTo(50, 20).LineTo(100, 100).LineTo(0, 100).Close()

	inner := NewBuffer()
	inner.Push(DrawPathOp{Flags: aliased, Path: concave})
	inner.Push(DrawPathOp{Flags: testFlags(), Path: concave})
	inner.Push(DrawImageOp{Flags: testFlags(), Image: NewLazyImage([]byte{1}, 1, 1)})
	rec := NewRecord(inner)

	outer := NewBuffer()
	outer.Push(DrawRecordOp{Record: rec})
	rec.Release()

	if got := outer.NumSlowPaths(); got != 1 {
		t.Errorf("NumSlowPaths = %d, want 1", got)
	}
	if !outer.HasNonAAPaint() || !outer.HasDiscardableImages() {
		t.Error("nested metadata not propagated")
	}
	if got := outer.SubrecordBytesUsed(); got != inner.BytesUsed() {
		t.Errorf("SubrecordBytesUsed = %d, want %d", got, inner.BytesUsed())
	}
	if got := outer.BytesUsed(); got != outer.Reserved()+inner.BytesUsed() {
		t.Errorf("BytesUsed = %d", got)
	}
}

func TestRecordRefCount(t *testing.T) {
	nested := NewBuffer()
	nested.Push(DrawColorOp{Color: Red})
	rec := NewRecord(nested)

	b := NewBuffer()
	b.Push(DrawRecordOp{Record: rec})
	f := testFlags()
	f.Shader = NewRecordShader(rec, XYWH(0, 0, 4, 4), TileRepeat, TileRepeat, Identity())
	b.Push(DrawRectOp{Flags: f, Rect: XYWH(0, 0, 8, 8)})
	if got := rec.RefCount(); got != 3 {
		t.Fatalf("RefCount after pushes = %d, want 3", got)
	}

	b.Reset()
	if got := rec.RefCount(); got != 1 {
		t.Fatalf("RefCount after Reset = %d, want 1", got)
	}
	rec.Release()
	if nested.Size() != 0 {
		t.Error("last Release did not destroy the nested buffer")
	}

	defer func() {
		if recover() == nil {
			t.Error("over-release did not panic")
		}
	}()
	rec.Release()
}

func TestPushInvalidPanics(t *testing.T) {
	tests := []struct {
		name string
		op   Op
	}{
		{"nil path", DrawPathOp{Flags: testFlags()}},
		{"bad clip op", ClipRectOp{Op: ClipDifference + 1}},
		{"bad blend", DrawColorOp{Mode: lastBlendMode + 1}},
		{"zero image", DrawImageOp{Flags: testFlags()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer()
			defer func() {
				if recover() == nil {
					t.Error("Push did not panic")
				}
				if b.Size() != 0 {
					t.Errorf("Size = %d after rejected push", b.Size())
				}
			}()
			b.Push(tt.op)
		})
	}
}

func TestOpInvalidRefPanics(t *testing.T) {
	b := NewBuffer()
	b.Push(SaveOp{})
	for _, ref := range []OpRef{-8, 4, 8, 1 << 20} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Op(%d) did not panic", ref)
				}
			}()
			b.Op(ref)
		}()
	}
}

func TestBufferString(t *testing.T) {
	b := NewBuffer()
	b.Push(SaveOp{})
	b.Push(DrawColorOp{Color: Red})
	b.Push(RestoreOp{})
	s := b.String()
	for _, want := range []string{"ops:3", "Save", "DrawColor", "Restore"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}

func BenchmarkPush(b *testing.B) {
	buf := NewBuffer()
	op := DrawRectOp{Flags: testFlags(), Rect: XYWH(0, 0, 10, 10)}
	for b.Loop() {
		buf.Push(op)
		if buf.Size() == 1024 {
			buf.Reset()
		}
	}
}
