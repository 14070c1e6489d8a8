package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestWriterReaderScalars(t *testing.T) {
	buf := make([]byte, 64)
	w := NewWriter(buf)
	w.U8(7)
	w.Pad(3)
	w.U32(0xdeadbeef)
	w.I32(-5)
	w.F32(1.5)
	w.U64(math.MaxUint64 - 1)
	w.Bool(true)
	w.Align(4)
	if !w.Valid() {
		t.Fatal("writer invalid")
	}
	if w.Size() != 28 {
		t.Fatalf("Size() = %d, want 28", w.Size())
	}

	r := NewReader(buf[:w.Size()])
	if got := r.U8(); got != 7 {
		t.Errorf("U8() = %d, want 7", got)
	}
	r.Skip(3)
	if got := r.U32(); got != 0xdeadbeef {
		t.Errorf("U32() = %#x", got)
	}
	if got := r.I32(); got != -5 {
		t.Errorf("I32() = %d, want -5", got)
	}
	if got := r.F32(); got != 1.5 {
		t.Errorf("F32() = %v, want 1.5", got)
	}
	if got := r.U64(); got != math.MaxUint64-1 {
		t.Errorf("U64() = %d", got)
	}
	if got := r.Bool(); !got {
		t.Error("Bool() = false, want true")
	}
	r.Align(4)
	if !r.Valid() || r.Remaining() != 0 {
		t.Errorf("Valid() = %v, Remaining() = %d", r.Valid(), r.Remaining())
	}
}

func TestWriterOverflow(t *testing.T) {
	w := NewWriter(make([]byte, 6))
	w.U32(1)
	w.U32(2)
	if w.Valid() || !errors.Is(w.Err(), ErrShortBuffer) {
		t.Fatalf("Err() = %v, want ErrShortBuffer", w.Err())
	}
	if w.Size() != 4 {
		t.Errorf("Size() = %d, want 4", w.Size())
	}
	// Further writes are ignored.
	w.U8(1)
	if w.Size() != 4 {
		t.Errorf("Size() after invalid write = %d, want 4", w.Size())
	}
}

func TestWriterInvalidate(t *testing.T) {
	w := NewWriter(make([]byte, 8))
	w.Invalidate()
	w.U32(1)
	if !errors.Is(w.Err(), ErrInvalidValue) || w.Size() != 0 {
		t.Errorf("Err() = %v, Size() = %d", w.Err(), w.Size())
	}
}

func TestReaderShortBuffer(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	if got := r.U32(); got != 0 {
		t.Errorf("U32() = %d, want 0", got)
	}
	if !errors.Is(r.Err(), ErrShortBuffer) {
		t.Errorf("Err() = %v, want ErrShortBuffer", r.Err())
	}
	// Sticky: later reads fail even if they would fit.
	if got := r.U8(); got != 0 || r.Valid() {
		t.Errorf("U8() after failure = %d, Valid() = %v", got, r.Valid())
	}
}

func TestReaderBool(t *testing.T) {
	r := NewReader([]byte{2})
	r.Bool()
	if !errors.Is(r.Err(), ErrInvalidValue) {
		t.Errorf("Err() = %v, want ErrInvalidValue", r.Err())
	}
}

func TestBytesAndStrings(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"one", []byte{9}},
		{"aligned", []byte{1, 2, 3, 4}},
		{"unaligned", []byte{1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 64)
			w := NewWriter(buf)
			w.Bytes(tt.data)
			w.String(string(tt.data))
			if !w.Valid() || w.Size()%4 != 0 {
				t.Fatalf("Valid() = %v, Size() = %d", w.Valid(), w.Size())
			}
			r := NewReader(buf[:w.Size()])
			got := r.Bytes(16)
			if !bytes.Equal(got, tt.data) {
				t.Errorf("Bytes() = %v, want %v", got, tt.data)
			}
			if s := r.String(16); s != string(tt.data) {
				t.Errorf("String() = %q, want %q", s, tt.data)
			}
			if !r.Valid() || r.Remaining() != 0 {
				t.Errorf("Valid() = %v, Remaining() = %d", r.Valid(), r.Remaining())
			}
		})
	}
}

func TestBytesDoesNotAlias(t *testing.T) {
	buf := make([]byte, 16)
	w := NewWriter(buf)
	w.Bytes([]byte{1, 2, 3, 4})
	got := NewReader(buf).Bytes(16)
	buf[4] = 99
	if got[0] != 1 {
		t.Error("Bytes() result aliases the input")
	}
}

func TestCountLimits(t *testing.T) {
	buf := make([]byte, 8)
	w := NewWriter(buf)
	w.U32(100)

	r := NewReader(buf)
	if n := r.Count(10, 1); n != 0 || !errors.Is(r.Err(), ErrTooLarge) {
		t.Errorf("Count over limit = %d, err %v", n, r.Err())
	}

	r = NewReader(buf)
	if n := r.Count(1000, 1); n != 0 || !errors.Is(r.Err(), ErrShortBuffer) {
		t.Errorf("Count over remaining = %d, err %v", n, r.Err())
	}
}
