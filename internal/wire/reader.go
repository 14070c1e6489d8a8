package wire

import (
	"encoding/binary"
	"errors"
	"math"
)

// Sentinel errors describing why a Reader became invalid.
var (
	// ErrShortBuffer means a read ran past the end of the input.
	ErrShortBuffer = errors.New("wire: short buffer")

	// ErrTooLarge means a length prefix exceeded the caller's limit.
	ErrTooLarge = errors.New("wire: length exceeds limit")

	// ErrInvalidValue means a decoded value failed validation.
	ErrInvalidValue = errors.New("wire: invalid value")
)

// Reader consumes little-endian scalars from a byte slice.
//
// Each accessor copies its value out of the input once. After the first
// failure every accessor returns the zero value and Err reports the reason.
type Reader struct {
	buf []byte
	pos int
	err error
}

// NewReader returns a reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Valid reports whether every read so far succeeded.
func (r *Reader) Valid() bool { return r.err == nil }

// Err returns the first failure, or nil.
func (r *Reader) Err() error { return r.err }

// Pos returns the number of bytes consumed.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Fail latches err unless the reader has already failed.
func (r *Reader) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.buf)-r.pos {
		r.err = ErrShortBuffer
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

// U8 reads a single byte.
func (r *Reader) U8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U64 reads a little-endian uint64.
func (r *Reader) U64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// I32 reads a little-endian int32.
func (r *Reader) I32() int32 {
	return int32(r.U32()) // #nosec G115 -- bit reinterpretation
}

// F32 reads an IEEE 754 float.
func (r *Reader) F32() float32 {
	return math.Float32frombits(r.U32())
}

// Bool reads a byte and rejects anything but 0 or 1.
func (r *Reader) Bool() bool {
	switch r.U8() {
	case 0:
		return false
	case 1:
		return true
	default:
		r.Fail(ErrInvalidValue)
		return false
	}
}

// Skip discards n bytes.
func (r *Reader) Skip(n int) {
	r.take(n)
}

// Align discards bytes up to a multiple of n.
func (r *Reader) Align(n int) {
	if rem := r.pos % n; rem != 0 {
		r.Skip(n - rem)
	}
}

// Count reads a uint32 element count and fails if it exceeds limit or if
// count*elemSize bytes are not available.
func (r *Reader) Count(limit, elemSize int) int {
	n := r.U32()
	if r.err != nil {
		return 0
	}
	if uint64(n) > uint64(limit) {
		r.err = ErrTooLarge
		return 0
	}
	if uint64(n)*uint64(elemSize) > uint64(r.Remaining()) {
		r.err = ErrShortBuffer
		return 0
	}
	return int(n)
}

// Bytes reads a length-prefixed byte string written by Writer.Bytes. The
// result is a copy and never aliases the input.
func (r *Reader) Bytes(limit int) []byte {
	n := r.Count(limit, 1)
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	r.Align(4)
	return out
}

// String reads a string written by Writer.String.
func (r *Reader) String(limit int) string {
	n := r.Count(limit, 1)
	b := r.take(n)
	if b == nil {
		return ""
	}
	s := string(b)
	r.Align(4)
	return s
}
