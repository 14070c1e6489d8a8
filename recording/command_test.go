package recording

import (
	"testing"

	"github.com/gogpu/paint"
)

func TestCallType_String(t *testing.T) {
	tests := []struct {
		ct   CallType
		want string
	}{
		{CallSave, "Save"},
		{CallSaveLayerAlpha, "SaveLayerAlpha"},
		{CallRestoreToCount, "RestoreToCount"},
		{CallClipPath, "ClipPath"},
		{CallSetMatrix, "SetMatrix"},
		{CallDrawColor, "DrawColor"},
		{CallDrawImageRect, "DrawImageRect"},
		{CallAnnotate, "Annotate"},
		{CallType(254), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ct.String(); got != tt.want {
				t.Errorf("CallType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCallType_IsDraw(t *testing.T) {
	for ct := CallSave; ct <= CallAnnotate; ct++ {
		want := ct >= CallDrawColor && ct != CallAnnotate
		if got := ct.IsDraw(); got != want {
			t.Errorf("%s.IsDraw() = %v, want %v", ct, got, want)
		}
	}
}

func TestCall_String(t *testing.T) {
	tests := []struct {
		name string
		call Call
		want string
	}{
		{"save", Call{Type: CallSave}, "Save()"},
		{"restore to count", Call{Type: CallRestoreToCount, Count: 2}, "RestoreToCount(2)"},
		{"unbounded layer", Call{Type: CallSaveLayerAlpha, Alpha: 7}, "SaveLayerAlpha(unbounded alpha=7)"},
		{
			"bounded layer",
			Call{Type: CallSaveLayerAlpha, Alpha: 7, HasBounds: true, Rect: paint.XYWH(1, 2, 3, 4)},
			"SaveLayerAlpha([1 2 4 6] alpha=7)",
		},
		{
			"clip",
			Call{Type: CallClipRect, Rect: paint.XYWH(0, 0, 10, 10), ClipOp: paint.ClipIntersect, AntiAlias: true},
			"ClipRect([0 0 10 10] op=0 aa=true)",
		},
		{"translate", Call{Type: CallTranslate, X: 3, Y: 4.5}, "Translate(3 4.5)"},
		{"rotate", Call{Type: CallRotate, X: 90}, "Rotate(90)"},
		{"matrix", Call{Type: CallSetMatrix, Matrix: paint.Scale(2, 3)}, "SetMatrix(2 0 0 0 3 0)"},
		{"line", Call{Type: CallDrawLine, X: 1, Y: 2, X1: 3, Y1: 4}, "DrawLine(1 2 3 4)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.call.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCall_StringWithFlags(t *testing.T) {
	f := paint.NewFlags()
	call := Call{Type: CallDrawRect, Rect: paint.XYWH(0, 0, 1, 1), Flags: f, HasFlags: true}
	want := "DrawRect([0 0 1 1] " + f.String() + ")"
	if got := call.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
