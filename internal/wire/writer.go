package wire

import (
	"encoding/binary"
	"math"
)

// Writer appends little-endian scalars into a fixed byte slice.
type Writer struct {
	buf []byte
	pos int
	err error
}

// NewWriter returns a writer over buf. The writer never grows buf.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// Valid reports whether every write so far succeeded.
func (w *Writer) Valid() bool { return w.err == nil }

// Err returns ErrShortBuffer if a write did not fit, ErrInvalidValue if the
// writer was invalidated, or nil.
func (w *Writer) Err() error { return w.err }

// Size returns the number of bytes written.
func (w *Writer) Size() int { return w.pos }

// Invalidate marks the writer as failed. Used by callers that hit a value
// they cannot encode.
func (w *Writer) Invalidate() {
	if w.err == nil {
		w.err = ErrInvalidValue
	}
}

// reserve returns the next n bytes or nil if they do not fit.
func (w *Writer) reserve(n int) []byte {
	if w.err != nil {
		return nil
	}
	if n < 0 || n > len(w.buf)-w.pos {
		w.err = ErrShortBuffer
		return nil
	}
	b := w.buf[w.pos : w.pos+n]
	w.pos += n
	return b
}

// U8 writes a single byte.
func (w *Writer) U8(v uint8) {
	if b := w.reserve(1); b != nil {
		b[0] = v
	}
}

// U16 writes a little-endian uint16.
func (w *Writer) U16(v uint16) {
	if b := w.reserve(2); b != nil {
		binary.LittleEndian.PutUint16(b, v)
	}
}

// U32 writes a little-endian uint32.
func (w *Writer) U32(v uint32) {
	if b := w.reserve(4); b != nil {
		binary.LittleEndian.PutUint32(b, v)
	}
}

// U64 writes a little-endian uint64.
func (w *Writer) U64(v uint64) {
	if b := w.reserve(8); b != nil {
		binary.LittleEndian.PutUint64(b, v)
	}
}

// I32 writes a little-endian int32.
func (w *Writer) I32(v int32) {
	w.U32(uint32(v)) // #nosec G115 -- bit reinterpretation
}

// F32 writes the IEEE 754 bits of v.
func (w *Writer) F32(v float32) {
	w.U32(math.Float32bits(v))
}

// Bool writes v as a single byte.
func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
		return
	}
	w.U8(0)
}

// Pad writes n zero bytes.
func (w *Writer) Pad(n int) {
	b := w.reserve(n)
	clear(b)
}

// Align pads the stream with zero bytes up to a multiple of n.
func (w *Writer) Align(n int) {
	if r := w.pos % n; r != 0 {
		w.Pad(n - r)
	}
}

// Bytes writes a uint32 length prefix followed by p, padded to 4 bytes.
func (w *Writer) Bytes(p []byte) {
	if len(p) > math.MaxUint32 {
		w.Invalidate()
		return
	}
	w.U32(uint32(len(p))) // #nosec G115 -- checked above
	if b := w.reserve(len(p)); b != nil {
		copy(b, p)
	}
	w.Align(4)
}

// String writes s with the same framing as Bytes.
func (w *Writer) String(s string) {
	if len(s) > math.MaxUint32 {
		w.Invalidate()
		return
	}
	w.U32(uint32(len(s))) // #nosec G115 -- checked above
	if b := w.reserve(len(s)); b != nil {
		copy(b, s)
	}
	w.Align(4)
}
