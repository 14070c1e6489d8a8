package paint

// OpType identifies the kind of a recorded op. The values are contiguous
// and are stored in the low byte of every record header.
type OpType uint8

const (
	OpAnnotate OpType = iota
	OpClipPath
	OpClipRect
	OpClipRRect
	OpConcat
	OpDrawColor
	OpDrawDRRect
	OpDrawImage
	OpDrawImageRect
	OpDrawIRect
	OpDrawLine
	OpDrawOval
	OpDrawPath
	OpDrawRecord
	OpDrawRect
	OpDrawRRect
	OpDrawTextBlob
	OpNoop
	OpRestore
	OpRotate
	OpSave
	OpSaveLayer
	OpSaveLayerAlpha
	OpScale
	OpSetMatrix
	OpTranslate

	// LastOpType is the largest valid OpType.
	LastOpType = OpTranslate
)

const numOpTypes = int(LastOpType) + 1

// opTypeNames maps OpType values to their string representation.
var opTypeNames = [numOpTypes]string{
	OpAnnotate:       "Annotate",
	OpClipPath:       "ClipPath",
	OpClipRect:       "ClipRect",
	OpClipRRect:      "ClipRRect",
	OpConcat:         "Concat",
	OpDrawColor:      "DrawColor",
	OpDrawDRRect:     "DrawDRRect",
	OpDrawImage:      "DrawImage",
	OpDrawImageRect:  "DrawImageRect",
	OpDrawIRect:      "DrawIRect",
	OpDrawLine:       "DrawLine",
	OpDrawOval:       "DrawOval",
	OpDrawPath:       "DrawPath",
	OpDrawRecord:     "DrawRecord",
	OpDrawRect:       "DrawRect",
	OpDrawRRect:      "DrawRRect",
	OpDrawTextBlob:   "DrawTextBlob",
	OpNoop:           "Noop",
	OpRestore:        "Restore",
	OpRotate:         "Rotate",
	OpSave:           "Save",
	OpSaveLayer:      "SaveLayer",
	OpSaveLayerAlpha: "SaveLayerAlpha",
	OpScale:          "Scale",
	OpSetMatrix:      "SetMatrix",
	OpTranslate:      "Translate",
}

// String returns the name of the op type.
func (t OpType) String() string {
	if !t.Valid() {
		return unknownStr
	}
	return opTypeNames[t]
}

// Valid reports whether t names an op kind.
func (t OpType) Valid() bool { return t <= LastOpType }

// IsDrawOp reports whether ops of this type produce pixels.
func (t OpType) IsDrawOp() bool { return t.Valid() && opInfos[t].isDraw }

// HasPaintFlags reports whether ops of this type carry Flags.
func (t OpType) HasPaintFlags() bool { return t.Valid() && opInfos[t].hasFlags }

// Op is a recorded drawing or state operation. Every op type has exactly one
// value type implementing Op, named after the type with an Op suffix.
type Op interface {
	Type() OpType

	// IsValid reports whether the op's fields are internally consistent.
	// Deserialization rejects ops that are not valid.
	IsValid() bool
}

// flagsOp is implemented by op values that carry Flags.
type flagsOp interface {
	Op
	PaintFlags() *Flags
}

type (
	rasterFunc          func(op Op, c Canvas, p *PlaybackParams)
	rasterWithFlagsFunc func(op Op, f *Flags, c Canvas, p *PlaybackParams)
	writeFunc           func(w *opWriter, op Op)
	readFunc            func(r *opReader) Op
	destroyFunc         func(op Op)
)

// opInfo is the per-kind dispatch table entry.
type opInfo struct {
	// size is the in-arena record size including the header, before
	// alignment padding.
	size     int
	isDraw   bool
	hasFlags bool

	raster          rasterFunc
	rasterWithFlags rasterWithFlagsFunc
	write           writeFunc
	read            readFunc

	// destroy is nil for kinds that hold no counted references.
	destroy destroyFunc
}

// opInfos is filled by the init in ops.go. Its completeness is checked by
// checkOpInfos.
var opInfos [numOpTypes]opInfo

func checkOpInfos() {
	for t := OpType(0); t <= LastOpType; t++ {
		info := &opInfos[t]
		if info.size == 0 || info.raster == nil || info.rasterWithFlags == nil ||
			info.write == nil || info.read == nil {
			panic("paint: incomplete op table for " + t.String())
		}
		if info.size > LargestOpSize {
			panic("paint: op " + t.String() + " exceeds LargestOpSize")
		}
	}
}
