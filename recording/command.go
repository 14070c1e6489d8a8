package recording

import (
	"fmt"
	"strings"

	"github.com/gogpu/paint"
)

// CallType identifies the canvas method a Call records.
type CallType uint8

const (
	// State calls
	CallSave           CallType = iota // Save
	CallSaveLayer                      // SaveLayer with flags
	CallSaveLayerAlpha                 // SaveLayer with uniform alpha
	CallRestore                        // Restore
	CallRestoreToCount                 // RestoreToCount

	// Clip calls
	CallClipRect
	CallClipRRect
	CallClipPath

	// Transform calls
	CallSetMatrix
	CallConcat
	CallTranslate
	CallScale
	CallRotate

	// Drawing calls
	CallDrawColor
	CallDrawRect
	CallDrawOval
	CallDrawRRect
	CallDrawDRRect
	CallDrawLine
	CallDrawPath
	CallDrawImage
	CallDrawImageRect
	CallDrawTextBlob
	CallAnnotate
)

var callTypeNames = [...]string{
	CallSave:           "Save",
	CallSaveLayer:      "SaveLayer",
	CallSaveLayerAlpha: "SaveLayerAlpha",
	CallRestore:        "Restore",
	CallRestoreToCount: "RestoreToCount",
	CallClipRect:       "ClipRect",
	CallClipRRect:      "ClipRRect",
	CallClipPath:       "ClipPath",
	CallSetMatrix:      "SetMatrix",
	CallConcat:         "Concat",
	CallTranslate:      "Translate",
	CallScale:          "Scale",
	CallRotate:         "Rotate",
	CallDrawColor:      "DrawColor",
	CallDrawRect:       "DrawRect",
	CallDrawOval:       "DrawOval",
	CallDrawRRect:      "DrawRRect",
	CallDrawDRRect:     "DrawDRRect",
	CallDrawLine:       "DrawLine",
	CallDrawPath:       "DrawPath",
	CallDrawImage:      "DrawImage",
	CallDrawImageRect:  "DrawImageRect",
	CallDrawTextBlob:   "DrawTextBlob",
	CallAnnotate:       "Annotate",
}

// String returns the canvas method name.
func (t CallType) String() string {
	if int(t) < len(callTypeNames) {
		return callTypeNames[t]
	}
	return "Unknown"
}

// IsDraw reports whether t produces pixels.
func (t CallType) IsDraw() bool {
	return t >= CallDrawColor && t <= CallDrawTextBlob
}

// Call is one recorded canvas call. Only the fields meaningful for Type
// are set; Flags is a copy taken at call time.
type Call struct {
	Type CallType

	Rect   paint.Rect // clip, draw or layer bounds; DrawImageRect destination
	Src    paint.Rect // DrawImageRect source
	RRect  paint.RRect
	Inner  paint.RRect
	Matrix paint.Matrix

	// HasBounds is set for layers saved with explicit bounds.
	HasBounds bool

	Flags    paint.Flags
	HasFlags bool

	Color paint.Color
	Mode  paint.BlendMode
	Alpha uint8

	ClipOp    paint.ClipOp
	AntiAlias bool

	// X, Y hold translate, scale, line start and draw origins; X1, Y1
	// hold line ends; X holds rotation degrees.
	X, Y, X1, Y1 float32

	// Count is the RestoreToCount target.
	Count int

	Path       *paint.Path
	Image      paint.Image
	Blob       *paint.TextBlob
	Constraint paint.SrcRectConstraint
	Annotation paint.AnnotationType
	Data       []byte

	PreserveLCDText bool
}

func fmtRect(r paint.Rect) string {
	return fmt.Sprintf("[%g %g %g %g]", r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// String formats the call on one line for dumps.
func (c Call) String() string {
	var sb strings.Builder
	sb.WriteString(c.Type.String())
	sb.WriteByte('(')
	switch c.Type {
	case CallSaveLayer, CallSaveLayerAlpha:
		if c.HasBounds {
			sb.WriteString(fmtRect(c.Rect))
		} else {
			sb.WriteString("unbounded")
		}
		if c.Type == CallSaveLayerAlpha {
			fmt.Fprintf(&sb, " alpha=%d", c.Alpha)
		}
	case CallRestoreToCount:
		fmt.Fprintf(&sb, "%d", c.Count)
	case CallClipRect, CallClipRRect, CallClipPath:
		fmt.Fprintf(&sb, "%s op=%d aa=%t", fmtRect(c.Rect), c.ClipOp, c.AntiAlias)
	case CallSetMatrix, CallConcat:
		m := c.Matrix
		fmt.Fprintf(&sb, "%g %g %g %g %g %g", m.A, m.B, m.C, m.D, m.E, m.F)
	case CallTranslate, CallScale:
		fmt.Fprintf(&sb, "%g %g", c.X, c.Y)
	case CallRotate:
		fmt.Fprintf(&sb, "%g", c.X)
	case CallDrawColor:
		fmt.Fprintf(&sb, "#%08x %s", uint32(c.Color), c.Mode)
	case CallDrawLine:
		fmt.Fprintf(&sb, "%g %g %g %g", c.X, c.Y, c.X1, c.Y1)
	case CallDrawImage:
		fmt.Fprintf(&sb, "image=%d at %g %g", c.Image.ID(), c.X, c.Y)
	case CallDrawImageRect:
		fmt.Fprintf(&sb, "image=%d %s -> %s", c.Image.ID(), fmtRect(c.Src), fmtRect(c.Rect))
	case CallDrawTextBlob:
		fmt.Fprintf(&sb, "runs=%d at %g %g", len(c.Blob.Runs), c.X, c.Y)
	case CallAnnotate:
		fmt.Fprintf(&sb, "type=%d %s %d bytes", c.Annotation, fmtRect(c.Rect), len(c.Data))
	case CallDrawRect, CallDrawOval, CallDrawRRect, CallDrawDRRect, CallDrawPath:
		sb.WriteString(fmtRect(c.Rect))
	}
	if c.HasFlags {
		sb.WriteString(" ")
		sb.WriteString(c.Flags.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
