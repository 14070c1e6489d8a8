package paint

// opQueue is a small ring buffer of ops read ahead while looking for a
// fusable SaveLayerAlpha group.
type opQueue struct {
	ops   [3]Op
	head  int
	count int
}

func (q *opQueue) push(op Op) {
	q.ops[(q.head+q.count)%len(q.ops)] = op
	q.count++
}

// pushFront puts op ahead of every queued op.
func (q *opQueue) pushFront(op Op) {
	q.head = (q.head + len(q.ops) - 1) % len(q.ops)
	q.ops[q.head] = op
	q.count++
}

func (q *opQueue) pop() Op {
	op := q.ops[q.head]
	q.ops[q.head] = nil
	q.head = (q.head + 1) % len(q.ops)
	q.count--
	return op
}

// opSource yields ops from the buffer, draining read-ahead ops first.
type opSource struct {
	it    CompositeIterator
	queue opQueue
}

// next returns the next op, or nil when the source is exhausted.
func (s *opSource) next() Op {
	if s.queue.count > 0 {
		return s.queue.pop()
	}
	if !s.it.Valid() {
		return nil
	}
	op := s.it.Op()
	s.it.Next()
	return op
}

// Playback draws every op of b onto c. The canvas state is saved before
// the first op and restored afterwards, so playback leaves no transform or
// clip behind.
//
// A SaveLayerAlpha immediately followed by Restore is skipped. A
// SaveLayerAlpha, single draw op, Restore group is drawn as the draw op with
// the layer alpha folded in. With an image provider, draw ops that use lazy
// images are culled when outside the clip and skipped when decoding fails.
func (b *Buffer) Playback(c Canvas, opts ...PlaybackOption) {
	var o playbackOptions
	for _, opt := range opts {
		opt(&o)
	}
	if b.opCount == 0 || (o.offsets != nil && len(o.offsets) == 0) {
		return
	}

	p := PlaybackParams{
		ImageProvider:  o.provider,
		OriginalMatrix: c.TotalMatrix(),
	}
	n := c.SaveCount()
	c.Save()
	defer c.RestoreToCount(n)

	src := opSource{it: NewCompositeIterator(b, o.offsets)}
	for {
		if o.abort != nil && o.abort() {
			return
		}
		op := src.next()
		if op == nil {
			return
		}

		if layer, ok := op.(SaveLayerAlphaOp); ok {
			if playLayerAlpha(layer, &src, c, &p) {
				continue
			}
		}

		if p.ImageProvider != nil && op.Type().IsDrawOp() {
			if OpHasDiscardableImages(op) && QuickRejectDraw(op, c) {
				continue
			}
			if fo, ok := op.(flagsOp); ok && fo.PaintFlags().HasDiscardableImages() {
				f, release, ok := scopedImageFlags(p.ImageProvider, fo.PaintFlags(), c.TotalMatrix())
				if ok {
					RasterWithFlags(op, f, c, &p)
					release()
				}
				continue
			}
		}
		Raster(op, c, &p)
	}
}

// playLayerAlpha tries to elide or fuse the SaveLayerAlpha group starting
// at layer. It reports whether the group was handled, which includes
// requeueing layer after dropping a culled draw; otherwise the ops it read
// ahead are queued and layer must be rasterized normally.
func playLayerAlpha(layer SaveLayerAlphaOp, src *opSource, c Canvas, p *PlaybackParams) bool {
	second := src.next()
	if second == nil {
		return false
	}
	if second.Type() == OpRestore {
		return true
	}

	drawOp := nestedSingleDrawOp(second)
	if drawOp != nil && p.ImageProvider != nil &&
		OpHasDiscardableImages(drawOp) && QuickRejectDraw(drawOp, c) {
		// Drop only the invisible draw and retry the group from the layer,
		// which may now be elided or fused with the ops after it.
		src.queue.pushFront(layer)
		return true
	}

	third := src.next()
	if drawOp != nil && third != nil && third.Type() == OpRestore {
		var f *Flags
		if fo, ok := drawOp.(flagsOp); ok && p.ImageProvider != nil && fo.PaintFlags().HasDiscardableImages() {
			scoped, release, ok := scopedImageFlags(p.ImageProvider, fo.PaintFlags(), c.TotalMatrix())
			if !ok {
				return true
			}
			defer release()
			f = scoped
		}
		Logger().Debug("paint: fused layer alpha", "op", drawOp.Type(), "alpha", layer.Alpha)
		RasterWithAlpha(drawOp, f, c, p, layer.Bounds, layer.Alpha)
		return true
	}

	src.queue.push(second)
	if third != nil {
		src.queue.push(third)
	}
	return false
}

// nestedSingleDrawOp returns the only op of op, descending through
// DrawRecordOps that hold exactly one op. It returns nil unless the op
// found is a draw op other than DrawRecordOp.
func nestedSingleDrawOp(op Op) Op {
	for {
		rec, ok := op.(DrawRecordOp)
		if !ok {
			break
		}
		buf := rec.Record.Buffer()
		if buf.Size() != 1 {
			return nil
		}
		op = buf.FirstOp()
	}
	if !op.Type().IsDrawOp() {
		return nil
	}
	return op
}
