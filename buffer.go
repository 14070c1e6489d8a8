package paint

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/gogpu/paint/internal/wire"
)

// InitialBufferSize is the arena capacity allocated by the first push.
const InitialBufferSize = 4096

// OpRef is the byte offset of a record in its Buffer. It stays valid across
// growth, unlike a slice of the arena, and is invalidated by Reset.
type OpRef int

// Buffer is an append-only arena of recorded ops.
//
// Records are stored back to back as [header][fixed fields][padding]; heap
// objects referenced by ops live in a parallel ref table so the arena holds
// no Go pointers. Aggregate metadata is updated as ops are pushed.
//
// A Buffer is not safe for concurrent mutation. Once recording is finished
// it may be played back or serialized from many goroutines at once.
type Buffer struct {
	data []byte
	used int
	refs []any

	opCount              int
	numSlowPaths         int
	subrecordBytesUsed   int
	hasNonAAPaint        bool
	hasDiscardableImages bool
}

// NewBuffer returns an empty buffer. No memory is reserved until the first
// push.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Push appends op and returns its offset. It panics if op is not valid;
// untrusted ops must come through Deserialize, which validates instead.
func (b *Buffer) Push(op Op) OpRef {
	t := op.Type()
	if !t.Valid() {
		panic(fmt.Sprintf("paint: Push of unknown op type %d", t))
	}
	if !op.IsValid() {
		panic("paint: Push of invalid " + t.String())
	}
	return b.push(op)
}

func (b *Buffer) push(op Op) OpRef {
	t := op.Type()
	info := &opInfos[t]
	skip := roundUp(info.size)
	off := b.grow(skip)

	rec := b.data[off : off+skip]
	clear(rec)
	hdr, _ := EncodeHeader(t, skip)
	binary.LittleEndian.PutUint32(rec, hdr)

	w := opWriter{Writer: wire.NewWriter(rec[headerSize:info.size]), buf: b}
	info.write(&w, op)
	if !w.Valid() || w.Size() != info.size-headerSize {
		panic("paint: record layout mismatch for " + t.String())
	}

	b.opCount++
	retainOp(op)
	b.accumulate(op)
	return OpRef(off)
}

// grow reserves skip bytes at the tail and returns their offset. Capacity
// doubles from InitialBufferSize until the record fits.
func (b *Buffer) grow(skip int) int {
	if b.used+skip > len(b.data) {
		size := len(b.data)
		if size == 0 {
			size = InitialBufferSize
		}
		for b.used+skip > size {
			size *= 2
		}
		data := make([]byte, size)
		copy(data, b.data[:b.used])
		if len(b.data) > 0 {
			Logger().Debug("paint: buffer grow", "from", len(b.data), "to", size)
		}
		b.data = data
	}
	off := b.used
	b.used += skip
	return off
}

// accumulate folds op into the aggregate metadata.
func (b *Buffer) accumulate(op Op) {
	if fo, ok := op.(flagsOp); ok {
		f := fo.PaintFlags()
		b.numSlowPaths += f.countSlowPaths()
		b.hasNonAAPaint = b.hasNonAAPaint || !f.AntiAlias
	}
	b.numSlowPaths += countSlowPaths(op)
	if rec, ok := op.(DrawRecordOp); ok {
		nested := rec.Record.Buffer()
		b.hasNonAAPaint = b.hasNonAAPaint || nested.HasNonAAPaint()
		b.subrecordBytesUsed += nested.BytesUsed()
	}
	b.hasDiscardableImages = b.hasDiscardableImages || OpHasDiscardableImages(op)
}

// retainOp takes the references a pushed op keeps on nested records.
func retainOp(op Op) {
	switch o := op.(type) {
	case DrawRecordOp:
		o.Record.Retain()
	case flagsOp:
		if f := o.PaintFlags(); f.Shader != nil && f.Shader.Record != nil {
			f.Shader.Record.Retain()
		}
	}
}

// header returns the type and skip of the record at off.
func (b *Buffer) header(off int) (OpType, int) {
	return DecodeHeader(binary.LittleEndian.Uint32(b.data[off:]))
}

// Op decodes the record at ref. It panics if ref is not the offset of a
// record in b.
func (b *Buffer) Op(ref OpRef) Op {
	off := int(ref)
	if off < 0 || off%Align != 0 || off+headerSize > b.used {
		panic(fmt.Sprintf("paint: invalid op reference %d", off))
	}
	t, _ := b.header(off)
	info := &opInfos[t]
	r := opReader{
		Reader: wire.NewReader(b.data[off+headerSize : off+info.size]),
		refs:   b.refs,
		arena:  true,
	}
	return info.read(&r)
}

// FirstOp returns the first op, or nil if the buffer is empty.
func (b *Buffer) FirstOp() Op {
	if b.opCount == 0 {
		return nil
	}
	return b.Op(0)
}

// Reset destroys every op and clears the metadata. The arena keeps its
// capacity; call ShrinkToFit to release it.
func (b *Buffer) Reset() {
	for it := NewIterator(b); it.Valid(); it.Next() {
		if destroy := opInfos[it.Type()].destroy; destroy != nil {
			destroy(it.Op())
		}
	}
	clear(b.refs)
	b.refs = b.refs[:0]
	b.used = 0
	b.opCount = 0
	b.numSlowPaths = 0
	b.subrecordBytesUsed = 0
	b.hasNonAAPaint = false
	b.hasDiscardableImages = false
}

// ShrinkToFit reallocates the arena to exactly the bytes in use, releasing
// it entirely when the buffer is empty.
func (b *Buffer) ShrinkToFit() {
	if b.used == 0 {
		b.data = nil
		b.refs = nil
		return
	}
	if b.used != len(b.data) {
		data := make([]byte, b.used)
		copy(data, b.data)
		b.data = data
	}
	b.refs = slices.Clip(b.refs)
}

// Release destroys every op and frees the arena.
func (b *Buffer) Release() {
	b.Reset()
	b.ShrinkToFit()
}

// Size returns the number of ops.
func (b *Buffer) Size() int { return b.opCount }

// Used returns the number of arena bytes occupied by records.
func (b *Buffer) Used() int { return b.used }

// Reserved returns the arena capacity.
func (b *Buffer) Reserved() int { return len(b.data) }

// BytesUsed estimates the memory held by the buffer, nested records
// included.
func (b *Buffer) BytesUsed() int { return len(b.data) + b.subrecordBytesUsed }

// NumSlowPaths returns the number of ops likely to hit a slow
// rasterization path.
func (b *Buffer) NumSlowPaths() int { return b.numSlowPaths }

// HasNonAAPaint reports whether any op draws without antialiasing.
func (b *Buffer) HasNonAAPaint() bool { return b.hasNonAAPaint }

// HasDiscardableImages reports whether any op references a lazy image.
func (b *Buffer) HasDiscardableImages() bool { return b.hasDiscardableImages }

// SubrecordBytesUsed returns the bytes used by nested records.
func (b *Buffer) SubrecordBytesUsed() int { return b.subrecordBytesUsed }

// String lists the ops one per line with their offsets.
func (b *Buffer) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Buffer{ops:%d used:%d reserved:%d}\n", b.opCount, b.used, len(b.data))
	for it := NewIterator(b); it.Valid(); it.Next() {
		fmt.Fprintf(&sb, "  %6d %s\n", it.Offset(), it.Type())
	}
	return sb.String()
}

// Record is a finished Buffer shared by reference count. Nested records
// are replayed by DrawRecordOp and record shaders; each op that refers to a
// record holds one reference for as long as it is recorded.
type Record struct {
	buf  *Buffer
	refs atomic.Int32
}

// NewRecord finalizes b, trimming its arena, and wraps it with a single
// reference owned by the caller.
func NewRecord(b *Buffer) *Record {
	b.ShrinkToFit()
	r := &Record{buf: b}
	r.refs.Store(1)
	return r
}

// Buffer returns the recorded ops. The buffer must not be modified.
func (r *Record) Buffer() *Buffer { return r.buf }

// Retain adds a reference and returns r.
func (r *Record) Retain() *Record {
	r.refs.Add(1)
	return r
}

// Release drops a reference. The last release destroys the buffer's ops.
func (r *Record) Release() {
	switch n := r.refs.Add(-1); {
	case n == 0:
		r.buf.Release()
	case n < 0:
		panic("paint: Record released too many times")
	}
}

// RefCount returns the current number of references.
func (r *Record) RefCount() int { return int(r.refs.Load()) }
