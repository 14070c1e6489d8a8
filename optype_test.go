package paint

import "testing"

func TestOpInfosComplete(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("checkOpInfos panicked: %v", r)
		}
	}()
	checkOpInfos()

	for op := OpType(0); op <= LastOpType; op++ {
		info := opInfos[op]
		if skip := roundUp(info.size); skip%Align != 0 || skip > LargestOpSize+Align {
			t.Errorf("%v: skip %d", op, skip)
		}
		if (info.destroy != nil) != (op == OpDrawRecord || info.hasFlags) {
			t.Errorf("%v: destroy set = %v", op, info.destroy != nil)
		}
	}
}

func TestOpTypeClassification(t *testing.T) {
	draws := map[OpType]bool{
		OpDrawColor: true, OpDrawDRRect: true, OpDrawImage: true, OpDrawImageRect: true,
		OpDrawIRect: true, OpDrawLine: true, OpDrawOval: true, OpDrawPath: true,
		OpDrawRecord: true, OpDrawRect: true, OpDrawRRect: true, OpDrawTextBlob: true,
	}
	flagged := map[OpType]bool{
		OpDrawDRRect: true, OpDrawImage: true, OpDrawImageRect: true, OpDrawIRect: true,
		OpDrawLine: true, OpDrawOval: true, OpDrawPath: true, OpDrawRect: true,
		OpDrawRRect: true, OpDrawTextBlob: true, OpSaveLayer: true,
	}
	for op := OpType(0); op <= LastOpType; op++ {
		if got := op.IsDrawOp(); got != draws[op] {
			t.Errorf("%v.IsDrawOp() = %v, want %v", op, got, draws[op])
		}
		if got := op.HasPaintFlags(); got != flagged[op] {
			t.Errorf("%v.HasPaintFlags() = %v, want %v", op, got, flagged[op])
		}
	}
	if (LastOpType + 1).IsDrawOp() || (LastOpType + 1).HasPaintFlags() {
		t.Error("out-of-range type classified")
	}
}

func TestOpTypeString(t *testing.T) {
	tests := []struct {
		t    OpType
		want string
	}{
		{OpAnnotate, "Annotate"},
		{OpDrawImageRect, "DrawImageRect"},
		{OpSaveLayerAlpha, "SaveLayerAlpha"},
		{OpTranslate, "Translate"},
		{LastOpType + 1, "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("OpType(%d).String() = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestSampleOpsCoverEveryType(t *testing.T) {
	seen := make(map[OpType]bool)
	for _, op := range sampleOps() {
		if !op.IsValid() {
			t.Errorf("sample %v is not valid", op.Type())
		}
		seen[op.Type()] = true
	}
	for op := OpType(0); op <= LastOpType; op++ {
		if op != OpDrawRecord && !seen[op] {
			t.Errorf("no sample op for %v", op)
		}
	}
}
