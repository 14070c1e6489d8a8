package paint

import (
	"fmt"
	"iter"
)

// Iterator walks every op of a buffer in append order.
//
//	for it := paint.NewIterator(buf); it.Valid(); it.Next() {
//	    op := it.Op()
//	}
type Iterator struct {
	buf *Buffer
	off int
	idx int
}

// NewIterator returns an iterator positioned at the first op.
func NewIterator(b *Buffer) Iterator {
	return Iterator{buf: b}
}

// Valid reports whether the iterator points at an op.
func (it *Iterator) Valid() bool { return it.idx < it.buf.opCount }

// Next advances by the current record's skip.
func (it *Iterator) Next() {
	_, skip := it.buf.header(it.off)
	it.off += skip
	it.idx++
}

// Offset returns the current record's offset.
func (it *Iterator) Offset() OpRef { return OpRef(it.off) }

// Type returns the current op type without decoding the record.
func (it *Iterator) Type() OpType {
	t, _ := it.buf.header(it.off)
	return t
}

// Op decodes the current op.
func (it *Iterator) Op() Op { return it.buf.Op(OpRef(it.off)) }

// All returns the buffer's ops in append order.
func (b *Buffer) All() iter.Seq2[OpRef, Op] {
	return func(yield func(OpRef, Op) bool) {
		for it := NewIterator(b); it.Valid(); it.Next() {
			if !yield(it.Offset(), it.Op()) {
				return
			}
		}
	}
}

// OffsetIterator walks only the ops at the given offsets, in the order the
// offsets are listed.
type OffsetIterator struct {
	buf     *Buffer
	offsets []OpRef
	idx     int
}

// NewOffsetIterator returns an iterator over the ops at offsets. It panics
// if an offset is outside the buffer or misaligned.
func NewOffsetIterator(b *Buffer, offsets []OpRef) OffsetIterator {
	for _, off := range offsets {
		if off < 0 || int(off)%Align != 0 || int(off)+headerSize > b.used {
			panic(fmt.Sprintf("paint: invalid op offset %d", off))
		}
	}
	return OffsetIterator{buf: b, offsets: offsets}
}

// Valid reports whether the iterator points at an op.
func (it *OffsetIterator) Valid() bool { return it.idx < len(it.offsets) }

// Next advances to the next listed offset.
func (it *OffsetIterator) Next() { it.idx++ }

// Offset returns the current record's offset.
func (it *OffsetIterator) Offset() OpRef { return it.offsets[it.idx] }

// Type returns the current op type without decoding the record.
func (it *OffsetIterator) Type() OpType {
	t, _ := it.buf.header(int(it.offsets[it.idx]))
	return t
}

// Op decodes the current op.
func (it *OffsetIterator) Op() Op { return it.buf.Op(it.offsets[it.idx]) }

// CompositeIterator is either an Iterator or an OffsetIterator, chosen at
// construction.
type CompositeIterator struct {
	usingOffsets bool
	iter         Iterator
	offsetIter   OffsetIterator
}

// NewCompositeIterator walks offsets when they are non-nil and the whole
// buffer otherwise. An empty non-nil list yields nothing.
func NewCompositeIterator(b *Buffer, offsets []OpRef) CompositeIterator {
	if offsets != nil {
		return CompositeIterator{usingOffsets: true, offsetIter: NewOffsetIterator(b, offsets)}
	}
	return CompositeIterator{iter: NewIterator(b)}
}

// Valid reports whether the iterator points at an op.
func (it *CompositeIterator) Valid() bool {
	if it.usingOffsets {
		return it.offsetIter.Valid()
	}
	return it.iter.Valid()
}

// Next advances the active iterator.
func (it *CompositeIterator) Next() {
	if it.usingOffsets {
		it.offsetIter.Next()
		return
	}
	it.iter.Next()
}

// Type returns the current op type.
func (it *CompositeIterator) Type() OpType {
	if it.usingOffsets {
		return it.offsetIter.Type()
	}
	return it.iter.Type()
}

// Op decodes the current op.
func (it *CompositeIterator) Op() Op {
	if it.usingOffsets {
		return it.offsetIter.Op()
	}
	return it.iter.Op()
}

// FlatteningIterator walks a buffer depth first, replacing every
// DrawRecordOp with the ops of its record, recursively. It never yields a
// DrawRecordOp.
type FlatteningIterator struct {
	top   CompositeIterator
	stack []Iterator
}

// NewFlatteningIterator returns a flattening iterator over b, restricted to
// offsets when they are non-nil.
func NewFlatteningIterator(b *Buffer, offsets []OpRef) *FlatteningIterator {
	it := &FlatteningIterator{top: NewCompositeIterator(b, offsets)}
	it.descend()
	return it
}

// Valid reports whether the iterator points at an op.
func (it *FlatteningIterator) Valid() bool { return it.top.Valid() }

// Op decodes the current leaf op.
func (it *FlatteningIterator) Op() Op {
	if n := len(it.stack); n > 0 {
		return it.stack[n-1].Op()
	}
	return it.top.Op()
}

// Depth returns the number of nested records entered for the current op.
func (it *FlatteningIterator) Depth() int { return len(it.stack) }

// Next advances to the next leaf op.
func (it *FlatteningIterator) Next() {
	if n := len(it.stack); n > 0 {
		it.stack[n-1].Next()
	} else {
		it.top.Next()
	}
	it.descend()
}

// descend pushes nested records until the current op is a leaf, popping
// exhausted records and advancing their parents.
func (it *FlatteningIterator) descend() {
	for {
		n := len(it.stack)
		if n > 0 && !it.stack[n-1].Valid() {
			it.stack = it.stack[:n-1]
			if n-1 > 0 {
				it.stack[n-2].Next()
			} else {
				it.top.Next()
			}
			continue
		}
		if n == 0 && !it.top.Valid() {
			return
		}

		var t OpType
		if n > 0 {
			t = it.stack[n-1].Type()
		} else {
			t = it.top.Type()
		}
		if t != OpDrawRecord {
			return
		}
		rec := it.Op().(DrawRecordOp).Record
		it.stack = append(it.stack, NewIterator(rec.Buffer()))
	}
}
