package paint

// AnnotationType identifies the meaning of an AnnotateOp.
type AnnotationType uint8

const (
	AnnotationURL AnnotationType = iota
	AnnotationLinkToDestination
	AnnotationNamedDestination
)

// ClipOp selects how a clip combines with the current clip.
type ClipOp uint8

const (
	ClipIntersect ClipOp = iota
	ClipDifference
)

// SrcRectConstraint controls whether image sampling may read outside the
// source rectangle.
type SrcRectConstraint uint8

const (
	ConstraintStrict SrcRectConstraint = iota
	ConstraintFast
)

// In-arena record sizes, header included.
const (
	sizeAnnotate       = headerSize + 4 + rectSize + refSize
	sizeClipPath       = headerSize + refSize + 4
	sizeClipRect       = headerSize + rectSize + 4
	sizeClipRRect      = headerSize + rrectSize + 4
	sizeConcat         = headerSize + matrixSize
	sizeDrawColor      = headerSize + 4 + 4
	sizeDrawDRRect     = headerSize + flagsSize + 2*rrectSize
	sizeDrawImage      = headerSize + flagsSize + refSize + pointSize
	sizeDrawImageRect  = headerSize + flagsSize + refSize + 2*rectSize + 4
	sizeDrawIRect      = headerSize + flagsSize + rectSize
	sizeDrawLine       = headerSize + flagsSize + 2*pointSize
	sizeDrawOval       = headerSize + flagsSize + rectSize
	sizeDrawPath       = headerSize + flagsSize + refSize
	sizeDrawRecord     = headerSize + refSize
	sizeDrawRect       = headerSize + flagsSize + rectSize
	sizeDrawRRect      = headerSize + flagsSize + rrectSize
	sizeDrawTextBlob   = headerSize + flagsSize + refSize + pointSize
	sizeNoop           = headerSize
	sizeRestore        = headerSize
	sizeRotate         = headerSize + 4
	sizeSave           = headerSize
	sizeSaveLayer      = headerSize + flagsSize + rectSize
	sizeSaveLayerAlpha = headerSize + rectSize + 4
	sizeScale          = headerSize + 2*4
	sizeSetMatrix      = headerSize + matrixSize
	sizeTranslate      = headerSize + 2*4
)

// LargestOpSize is the size of the largest record before padding.
const LargestOpSize = sizeDrawDRRect

// Every record must fit in LargestOpSize. A violation fails to compile.
const (
	_ = uint(LargestOpSize - sizeAnnotate)
	_ = uint(LargestOpSize - sizeClipPath)
	_ = uint(LargestOpSize - sizeClipRect)
	_ = uint(LargestOpSize - sizeClipRRect)
	_ = uint(LargestOpSize - sizeConcat)
	_ = uint(LargestOpSize - sizeDrawColor)
	_ = uint(LargestOpSize - sizeDrawDRRect)
	_ = uint(LargestOpSize - sizeDrawImage)
	_ = uint(LargestOpSize - sizeDrawImageRect)
	_ = uint(LargestOpSize - sizeDrawIRect)
	_ = uint(LargestOpSize - sizeDrawLine)
	_ = uint(LargestOpSize - sizeDrawOval)
	_ = uint(LargestOpSize - sizeDrawPath)
	_ = uint(LargestOpSize - sizeDrawRecord)
	_ = uint(LargestOpSize - sizeDrawRect)
	_ = uint(LargestOpSize - sizeDrawRRect)
	_ = uint(LargestOpSize - sizeDrawTextBlob)
	_ = uint(LargestOpSize - sizeNoop)
	_ = uint(LargestOpSize - sizeRestore)
	_ = uint(LargestOpSize - sizeRotate)
	_ = uint(LargestOpSize - sizeSave)
	_ = uint(LargestOpSize - sizeSaveLayer)
	_ = uint(LargestOpSize - sizeSaveLayerAlpha)
	_ = uint(LargestOpSize - sizeScale)
	_ = uint(LargestOpSize - sizeSetMatrix)
	_ = uint(LargestOpSize - sizeTranslate)
)

// AnnotateOp attaches metadata such as a link to a rectangle.
type AnnotateOp struct {
	Annotation AnnotationType
	Rect       Rect
	Data       []byte
}

// ClipPathOp clips to a path.
type ClipPathOp struct {
	Path      *Path
	Op        ClipOp
	AntiAlias bool
}

// ClipRectOp clips to a rectangle.
type ClipRectOp struct {
	Rect      Rect
	Op        ClipOp
	AntiAlias bool
}

// ClipRRectOp clips to a rounded rectangle.
type ClipRRectOp struct {
	RRect     RRect
	Op        ClipOp
	AntiAlias bool
}

// ConcatOp pre-multiplies the current transform.
type ConcatOp struct {
	Matrix Matrix
}

// DrawColorOp fills the clip with a color.
type DrawColorOp struct {
	Color Color
	Mode  BlendMode
}

// DrawDRRectOp draws the area between two rounded rectangles.
type DrawDRRectOp struct {
	Flags Flags
	Outer RRect
	Inner RRect
}

// DrawImageOp draws an image with its top-left corner at (Left, Top).
type DrawImageOp struct {
	Flags Flags
	Image Image
	Left  float32
	Top   float32
}

// DrawImageRectOp draws the Src region of an image scaled into Dst.
type DrawImageRectOp struct {
	Flags      Flags
	Image      Image
	Src        Rect
	Dst        Rect
	Constraint SrcRectConstraint
}

// DrawIRectOp draws an integer rectangle.
type DrawIRectOp struct {
	Flags Flags
	Rect  IRect
}

// DrawLineOp draws a line segment.
type DrawLineOp struct {
	Flags          Flags
	X0, Y0, X1, Y1 float32
}

// DrawOvalOp draws the ellipse inscribed in Oval.
type DrawOvalOp struct {
	Flags Flags
	Oval  Rect
}

// DrawPathOp draws a path.
type DrawPathOp struct {
	Flags Flags
	Path  *Path
}

// DrawRecordOp replays a nested record. Pushing the op retains the record.
type DrawRecordOp struct {
	Record *Record
}

// DrawRectOp draws a rectangle.
type DrawRectOp struct {
	Flags Flags
	Rect  Rect
}

// DrawRRectOp draws a rounded rectangle.
type DrawRRectOp struct {
	Flags Flags
	RRect RRect
}

// DrawTextBlobOp draws a text blob with its origin at (X, Y).
type DrawTextBlobOp struct {
	Flags Flags
	Blob  *TextBlob
	X, Y  float32
}

// NoopOp does nothing.
type NoopOp struct{}

// RestoreOp pops the most recent save.
type RestoreOp struct{}

// RotateOp rotates the current transform by Degrees.
type RotateOp struct {
	Degrees float32
}

// SaveOp pushes the transform and clip.
type SaveOp struct{}

// SaveLayerOp pushes an offscreen layer composited with Flags on restore.
// Bounds is UnsetRect for an unbounded layer.
type SaveLayerOp struct {
	Flags  Flags
	Bounds Rect
}

// SaveLayerAlphaOp pushes an offscreen layer composited with uniform Alpha
// on restore. Bounds is UnsetRect for an unbounded layer.
type SaveLayerAlphaOp struct {
	Bounds                  Rect
	Alpha                   uint8
	PreserveLCDTextRequests bool
}

// ScaleOp scales the current transform.
type ScaleOp struct {
	SX, SY float32
}

// SetMatrixOp replaces the current transform. The matrix is relative to
// the transform in effect when playback started.
type SetMatrixOp struct {
	Matrix Matrix
}

// TranslateOp translates the current transform.
type TranslateOp struct {
	DX, DY float32
}

func (AnnotateOp) Type() OpType       { return OpAnnotate }
func (ClipPathOp) Type() OpType       { return OpClipPath }
func (ClipRectOp) Type() OpType       { return OpClipRect }
func (ClipRRectOp) Type() OpType      { return OpClipRRect }
func (ConcatOp) Type() OpType         { return OpConcat }
func (DrawColorOp) Type() OpType      { return OpDrawColor }
func (DrawDRRectOp) Type() OpType     { return OpDrawDRRect }
func (DrawImageOp) Type() OpType      { return OpDrawImage }
func (DrawImageRectOp) Type() OpType  { return OpDrawImageRect }
func (DrawIRectOp) Type() OpType      { return OpDrawIRect }
func (DrawLineOp) Type() OpType       { return OpDrawLine }
func (DrawOvalOp) Type() OpType       { return OpDrawOval }
func (DrawPathOp) Type() OpType       { return OpDrawPath }
func (DrawRecordOp) Type() OpType     { return OpDrawRecord }
func (DrawRectOp) Type() OpType       { return OpDrawRect }
func (DrawRRectOp) Type() OpType      { return OpDrawRRect }
func (DrawTextBlobOp) Type() OpType   { return OpDrawTextBlob }
func (NoopOp) Type() OpType           { return OpNoop }
func (RestoreOp) Type() OpType        { return OpRestore }
func (RotateOp) Type() OpType         { return OpRotate }
func (SaveOp) Type() OpType           { return OpSave }
func (SaveLayerOp) Type() OpType      { return OpSaveLayer }
func (SaveLayerAlphaOp) Type() OpType { return OpSaveLayerAlpha }
func (ScaleOp) Type() OpType          { return OpScale }
func (SetMatrixOp) Type() OpType      { return OpSetMatrix }
func (TranslateOp) Type() OpType      { return OpTranslate }

// PaintFlags returns a pointer to a copy of the op's flags.
func (op DrawDRRectOp) PaintFlags() *Flags    { return &op.Flags }
func (op DrawImageOp) PaintFlags() *Flags     { return &op.Flags }
func (op DrawImageRectOp) PaintFlags() *Flags { return &op.Flags }
func (op DrawIRectOp) PaintFlags() *Flags     { return &op.Flags }
func (op DrawLineOp) PaintFlags() *Flags      { return &op.Flags }
func (op DrawOvalOp) PaintFlags() *Flags      { return &op.Flags }
func (op DrawPathOp) PaintFlags() *Flags      { return &op.Flags }
func (op DrawRectOp) PaintFlags() *Flags      { return &op.Flags }
func (op DrawRRectOp) PaintFlags() *Flags     { return &op.Flags }
func (op DrawTextBlobOp) PaintFlags() *Flags  { return &op.Flags }
func (op SaveLayerOp) PaintFlags() *Flags     { return &op.Flags }

func (op AnnotateOp) IsValid() bool {
	return op.Annotation <= AnnotationNamedDestination && op.Rect.IsFinite()
}

func (op ClipPathOp) IsValid() bool { return op.Path != nil && op.Op <= ClipDifference }

func (op ClipRectOp) IsValid() bool { return op.Op <= ClipDifference && op.Rect.IsFinite() }

func (op ClipRRectOp) IsValid() bool { return op.Op <= ClipDifference && op.RRect.IsValid() }

func (op ConcatOp) IsValid() bool { return op.Matrix.IsFinite() }

func (op DrawColorOp) IsValid() bool { return op.Mode <= lastBlendMode }

func (op DrawDRRectOp) IsValid() bool {
	return op.Flags.IsValid() && op.Outer.IsValid() && op.Inner.IsValid()
}

func (op DrawImageOp) IsValid() bool {
	return op.Flags.IsValid() && !op.Image.IsZero() && isFinite(op.Left) && isFinite(op.Top)
}

func (op DrawImageRectOp) IsValid() bool {
	return op.Flags.IsValid() && !op.Image.IsZero() && op.Constraint <= ConstraintFast &&
		op.Src.IsFinite() && op.Dst.IsFinite()
}

func (op DrawIRectOp) IsValid() bool { return op.Flags.IsValid() }

func (op DrawLineOp) IsValid() bool {
	return op.Flags.IsValid() && isFinite(op.X0) && isFinite(op.Y0) && isFinite(op.X1) && isFinite(op.Y1)
}

func (op DrawOvalOp) IsValid() bool { return op.Flags.IsValid() && op.Oval.IsFinite() }

func (op DrawPathOp) IsValid() bool { return op.Flags.IsValid() && op.Path != nil }

func (op DrawRecordOp) IsValid() bool { return op.Record != nil }

func (op DrawRectOp) IsValid() bool { return op.Flags.IsValid() && op.Rect.IsFinite() }

func (op DrawRRectOp) IsValid() bool { return op.Flags.IsValid() && op.RRect.IsValid() }

func (op DrawTextBlobOp) IsValid() bool {
	return op.Flags.IsValid() && op.Blob != nil && op.Blob.IsValid() && isFinite(op.X) && isFinite(op.Y)
}

func (NoopOp) IsValid() bool    { return true }
func (RestoreOp) IsValid() bool { return true }
func (SaveOp) IsValid() bool    { return true }

func (op RotateOp) IsValid() bool { return isFinite(op.Degrees) }

func (op SaveLayerOp) IsValid() bool { return op.Flags.IsValid() && validLayerBounds(op.Bounds) }

func (op SaveLayerAlphaOp) IsValid() bool { return validLayerBounds(op.Bounds) }

// validLayerBounds accepts UnsetRect or a finite rect.
func validLayerBounds(r Rect) bool { return r == UnsetRect || r.IsFinite() }

func (op ScaleOp) IsValid() bool { return isFinite(op.SX) && isFinite(op.SY) }

func (op SetMatrixOp) IsValid() bool { return op.Matrix.IsFinite() }

func (op TranslateOp) IsValid() bool { return isFinite(op.DX) && isFinite(op.DY) }

// HasBounds reports whether a SaveLayer op has explicit bounds.
func (op SaveLayerOp) HasBounds() bool { return !op.Bounds.IsUnset() }

// HasBounds reports whether a SaveLayerAlpha op has explicit bounds.
func (op SaveLayerAlphaOp) HasBounds() bool { return !op.Bounds.IsUnset() }

// Field codecs. Each write function has a matching read function that
// consumes the same fields in the same order.

func writeAnnotate(w *opWriter, op Op) {
	o := op.(AnnotateOp)
	w.u8s(uint8(o.Annotation), 0, 0, 0)
	w.rect(o.Rect)
	w.data(o.Data)
}

func readAnnotate(r *opReader) Op {
	var o AnnotateOp
	o.Annotation = AnnotationType(r.U8())
	r.Skip(3)
	o.Rect = r.rect()
	o.Data = r.data()
	return o
}

func writeClipPath(w *opWriter, op Op) {
	o := op.(ClipPathOp)
	w.path(o.Path)
	w.u8s(uint8(o.Op), boolByte(o.AntiAlias), 0, 0)
}

func readClipPath(r *opReader) Op {
	var o ClipPathOp
	o.Path = r.path()
	o.Op, o.AntiAlias = r.clipOp()
	return o
}

func writeClipRect(w *opWriter, op Op) {
	o := op.(ClipRectOp)
	w.rect(o.Rect)
	w.u8s(uint8(o.Op), boolByte(o.AntiAlias), 0, 0)
}

func readClipRect(r *opReader) Op {
	var o ClipRectOp
	o.Rect = r.rect()
	o.Op, o.AntiAlias = r.clipOp()
	return o
}

func writeClipRRect(w *opWriter, op Op) {
	o := op.(ClipRRectOp)
	w.rrect(o.RRect)
	w.u8s(uint8(o.Op), boolByte(o.AntiAlias), 0, 0)
}

func readClipRRect(r *opReader) Op {
	var o ClipRRectOp
	o.RRect = r.rrect()
	o.Op, o.AntiAlias = r.clipOp()
	return o
}

func writeConcat(w *opWriter, op Op) { w.matrix(op.(ConcatOp).Matrix) }

func readConcat(r *opReader) Op { return ConcatOp{Matrix: r.matrix()} }

func writeDrawColor(w *opWriter, op Op) {
	o := op.(DrawColorOp)
	w.U32(uint32(o.Color))
	w.u8s(uint8(o.Mode), 0, 0, 0)
}

func readDrawColor(r *opReader) Op {
	var o DrawColorOp
	o.Color = Color(r.U32())
	o.Mode = BlendMode(r.U8())
	r.Skip(3)
	return o
}

func writeDrawDRRect(w *opWriter, op Op) {
	o := op.(DrawDRRectOp)
	w.flags(&o.Flags)
	w.rrect(o.Outer)
	w.rrect(o.Inner)
}

func readDrawDRRect(r *opReader) Op {
	var o DrawDRRectOp
	o.Flags = r.flags()
	o.Outer = r.rrect()
	o.Inner = r.rrect()
	return o
}

func writeDrawImage(w *opWriter, op Op) {
	o := op.(DrawImageOp)
	w.flags(&o.Flags)
	w.image(o.Image)
	w.F32(o.Left)
	w.F32(o.Top)
}

func readDrawImage(r *opReader) Op {
	var o DrawImageOp
	o.Flags = r.flags()
	o.Image = r.image()
	o.Left = r.F32()
	o.Top = r.F32()
	return o
}

func writeDrawImageRect(w *opWriter, op Op) {
	o := op.(DrawImageRectOp)
	w.flags(&o.Flags)
	w.image(o.Image)
	w.rect(o.Src)
	w.rect(o.Dst)
	w.u8s(uint8(o.Constraint), 0, 0, 0)
}

func readDrawImageRect(r *opReader) Op {
	var o DrawImageRectOp
	o.Flags = r.flags()
	o.Image = r.image()
	o.Src = r.rect()
	o.Dst = r.rect()
	o.Constraint = SrcRectConstraint(r.U8())
	r.Skip(3)
	return o
}

func writeDrawIRect(w *opWriter, op Op) {
	o := op.(DrawIRectOp)
	w.flags(&o.Flags)
	w.irect(o.Rect)
}

func readDrawIRect(r *opReader) Op {
	var o DrawIRectOp
	o.Flags = r.flags()
	o.Rect = r.irect()
	return o
}

func writeDrawLine(w *opWriter, op Op) {
	o := op.(DrawLineOp)
	w.flags(&o.Flags)
	w.F32(o.X0)
	w.F32(o.Y0)
	w.F32(o.X1)
	w.F32(o.Y1)
}

func readDrawLine(r *opReader) Op {
	var o DrawLineOp
	o.Flags = r.flags()
	o.X0 = r.F32()
	o.Y0 = r.F32()
	o.X1 = r.F32()
	o.Y1 = r.F32()
	return o
}

func writeDrawOval(w *opWriter, op Op) {
	o := op.(DrawOvalOp)
	w.flags(&o.Flags)
	w.rect(o.Oval)
}

func readDrawOval(r *opReader) Op {
	var o DrawOvalOp
	o.Flags = r.flags()
	o.Oval = r.rect()
	return o
}

func writeDrawPath(w *opWriter, op Op) {
	o := op.(DrawPathOp)
	w.flags(&o.Flags)
	w.path(o.Path)
}

func readDrawPath(r *opReader) Op {
	var o DrawPathOp
	o.Flags = r.flags()
	o.Path = r.path()
	return o
}

func writeDrawRecord(w *opWriter, op Op) { w.record(op.(DrawRecordOp).Record) }

func readDrawRecord(r *opReader) Op { return DrawRecordOp{Record: r.record()} }

func writeDrawRect(w *opWriter, op Op) {
	o := op.(DrawRectOp)
	w.flags(&o.Flags)
	w.rect(o.Rect)
}

func readDrawRect(r *opReader) Op {
	var o DrawRectOp
	o.Flags = r.flags()
	o.Rect = r.rect()
	return o
}

func writeDrawRRect(w *opWriter, op Op) {
	o := op.(DrawRRectOp)
	w.flags(&o.Flags)
	w.rrect(o.RRect)
}

func readDrawRRect(r *opReader) Op {
	var o DrawRRectOp
	o.Flags = r.flags()
	o.RRect = r.rrect()
	return o
}

func writeDrawTextBlob(w *opWriter, op Op) {
	o := op.(DrawTextBlobOp)
	w.flags(&o.Flags)
	w.textBlob(o.Blob)
	w.F32(o.X)
	w.F32(o.Y)
}

func readDrawTextBlob(r *opReader) Op {
	var o DrawTextBlobOp
	o.Flags = r.flags()
	o.Blob = r.textBlob()
	o.X = r.F32()
	o.Y = r.F32()
	return o
}

func writeNothing(*opWriter, Op) {}

func writeRotate(w *opWriter, op Op) { w.F32(op.(RotateOp).Degrees) }

func readRotate(r *opReader) Op { return RotateOp{Degrees: r.F32()} }

func writeSaveLayer(w *opWriter, op Op) {
	o := op.(SaveLayerOp)
	w.flags(&o.Flags)
	w.rect(o.Bounds)
}

func readSaveLayer(r *opReader) Op {
	var o SaveLayerOp
	o.Flags = r.flags()
	o.Bounds = r.rect()
	return o
}

func writeSaveLayerAlpha(w *opWriter, op Op) {
	o := op.(SaveLayerAlphaOp)
	w.rect(o.Bounds)
	w.u8s(o.Alpha, boolByte(o.PreserveLCDTextRequests), 0, 0)
}

func readSaveLayerAlpha(r *opReader) Op {
	var o SaveLayerAlphaOp
	o.Bounds = r.rect()
	o.Alpha = r.U8()
	o.PreserveLCDTextRequests = r.Bool()
	r.Skip(2)
	return o
}

func writeScale(w *opWriter, op Op) {
	o := op.(ScaleOp)
	w.F32(o.SX)
	w.F32(o.SY)
}

func readScale(r *opReader) Op {
	var o ScaleOp
	o.SX = r.F32()
	o.SY = r.F32()
	return o
}

func writeSetMatrix(w *opWriter, op Op) { w.matrix(op.(SetMatrixOp).Matrix) }

func readSetMatrix(r *opReader) Op { return SetMatrixOp{Matrix: r.matrix()} }

func writeTranslate(w *opWriter, op Op) {
	o := op.(TranslateOp)
	w.F32(o.DX)
	w.F32(o.DY)
}

func readTranslate(r *opReader) Op {
	var o TranslateOp
	o.DX = r.F32()
	o.DY = r.F32()
	return o
}

func (r *opReader) clipOp() (ClipOp, bool) {
	op := ClipOp(r.U8())
	aa := r.Bool()
	r.Skip(2)
	return op, aa
}

func boolByte(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

// destroyDrawRecord drops the reference taken when the op was pushed.
func destroyDrawRecord(op Op) {
	op.(DrawRecordOp).Record.Release()
}

// destroyFlags drops the reference a record shader took when the op was
// pushed.
func destroyFlags(op Op) {
	if f := op.(flagsOp).PaintFlags(); f.Shader != nil && f.Shader.Record != nil {
		f.Shader.Record.Release()
	}
}

func init() {
	opInfos = [numOpTypes]opInfo{
		OpAnnotate: {size: sizeAnnotate,
			write: writeAnnotate, read: readAnnotate, raster: rasterAnnotate},
		OpClipPath: {size: sizeClipPath,
			write: writeClipPath, read: readClipPath, raster: rasterClipPath},
		OpClipRect: {size: sizeClipRect,
			write: writeClipRect, read: readClipRect, raster: rasterClipRect},
		OpClipRRect: {size: sizeClipRRect,
			write: writeClipRRect, read: readClipRRect, raster: rasterClipRRect},
		OpConcat: {size: sizeConcat,
			write: writeConcat, read: readConcat, raster: rasterConcat},
		OpDrawColor: {size: sizeDrawColor, isDraw: true,
			write: writeDrawColor, read: readDrawColor, raster: rasterDrawColor},
		OpDrawDRRect: {size: sizeDrawDRRect, isDraw: true, hasFlags: true,
			write: writeDrawDRRect, read: readDrawDRRect, rasterWithFlags: rasterDrawDRRect},
		OpDrawImage: {size: sizeDrawImage, isDraw: true, hasFlags: true,
			write: writeDrawImage, read: readDrawImage, rasterWithFlags: rasterDrawImage},
		OpDrawImageRect: {size: sizeDrawImageRect, isDraw: true, hasFlags: true,
			write: writeDrawImageRect, read: readDrawImageRect, rasterWithFlags: rasterDrawImageRect},
		OpDrawIRect: {size: sizeDrawIRect, isDraw: true, hasFlags: true,
			write: writeDrawIRect, read: readDrawIRect, rasterWithFlags: rasterDrawIRect},
		OpDrawLine: {size: sizeDrawLine, isDraw: true, hasFlags: true,
			write: writeDrawLine, read: readDrawLine, rasterWithFlags: rasterDrawLine},
		OpDrawOval: {size: sizeDrawOval, isDraw: true, hasFlags: true,
			write: writeDrawOval, read: readDrawOval, rasterWithFlags: rasterDrawOval},
		OpDrawPath: {size: sizeDrawPath, isDraw: true, hasFlags: true,
			write: writeDrawPath, read: readDrawPath, rasterWithFlags: rasterDrawPath},
		OpDrawRecord: {size: sizeDrawRecord, isDraw: true,
			write: writeDrawRecord, read: readDrawRecord, raster: rasterDrawRecord,
			destroy: destroyDrawRecord},
		OpDrawRect: {size: sizeDrawRect, isDraw: true, hasFlags: true,
			write: writeDrawRect, read: readDrawRect, rasterWithFlags: rasterDrawRect},
		OpDrawRRect: {size: sizeDrawRRect, isDraw: true, hasFlags: true,
			write: writeDrawRRect, read: readDrawRRect, rasterWithFlags: rasterDrawRRect},
		OpDrawTextBlob: {size: sizeDrawTextBlob, isDraw: true, hasFlags: true,
			write: writeDrawTextBlob, read: readDrawTextBlob, rasterWithFlags: rasterDrawTextBlob},
		OpNoop: {size: sizeNoop,
			write: writeNothing, read: func(*opReader) Op { return NoopOp{} }, raster: rasterNoop},
		OpRestore: {size: sizeRestore,
			write: writeNothing, read: func(*opReader) Op { return RestoreOp{} }, raster: rasterRestore},
		OpRotate: {size: sizeRotate,
			write: writeRotate, read: readRotate, raster: rasterRotate},
		OpSave: {size: sizeSave,
			write: writeNothing, read: func(*opReader) Op { return SaveOp{} }, raster: rasterSave},
		OpSaveLayer: {size: sizeSaveLayer, hasFlags: true,
			write: writeSaveLayer, read: readSaveLayer, rasterWithFlags: rasterSaveLayer},
		OpSaveLayerAlpha: {size: sizeSaveLayerAlpha,
			write: writeSaveLayerAlpha, read: readSaveLayerAlpha, raster: rasterSaveLayerAlpha},
		OpScale: {size: sizeScale,
			write: writeScale, read: readScale, raster: rasterScale},
		OpSetMatrix: {size: sizeSetMatrix,
			write: writeSetMatrix, read: readSetMatrix, raster: rasterSetMatrix},
		OpTranslate: {size: sizeTranslate,
			write: writeTranslate, read: readTranslate, raster: rasterTranslate},
	}

	// Flagged kinds raster through their flags; the others have no flags
	// to substitute.
	for t := range opInfos {
		info := &opInfos[t]
		if info.hasFlags {
			info.raster = rasterFromFlags(info.rasterWithFlags)
			info.destroy = destroyFlags
		} else {
			info.rasterWithFlags = rasterWithoutFlags
		}
	}
	checkOpInfos()
}
