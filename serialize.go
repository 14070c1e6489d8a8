package paint

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/paint/internal/wire"
)

// Stream errors returned by SerializeBuffer and DeserializeBuffer.
var (
	// ErrBufferTooSmall means the destination cannot hold the record.
	ErrBufferTooSmall = errors.New("paint: buffer too small")

	// ErrNotSerializable means the op cannot be written to a stream, for
	// example a DrawRecordOp outside SerializeBuffer.
	ErrNotSerializable = errors.New("paint: op not serializable")

	// ErrCorruptStream means a record failed validation while reading.
	ErrCorruptStream = errors.New("paint: corrupt stream")
)

// ImageTransferCache maps images to small ids shared by the writing and
// reading sides of a stream, so images can travel by reference.
type ImageTransferCache interface {
	// Put returns the transfer id for img. It reports false when img cannot
	// be transferred by reference; the image is then inlined.
	Put(img Image) (uint32, bool)

	// Get resolves a transfer id written by Put.
	Get(id uint32) (Image, bool)
}

// SerializeOptions configures the writing side of a stream.
type SerializeOptions struct {
	// TransferCache, if set, sends lazy images by id instead of inlining
	// their encoded bytes.
	TransferCache ImageTransferCache

	// depth is the record shader nesting level.
	depth int
}

// DeserializeOptions configures the reading side of a stream.
type DeserializeOptions struct {
	// TransferCache resolves image ids written through a transfer cache.
	// Streams that contain transferred images fail to read without it.
	TransferCache ImageTransferCache

	depth int
}

// Serialize writes op as a self-contained record at the start of dst and
// returns the bytes written, always a multiple of Align. It returns 0 if
// dst is too small or op cannot be serialized.
func Serialize(op Op, dst []byte, opts SerializeOptions) int {
	n, err := serializeOp(op, dst, &opts)
	if err != nil {
		return 0
	}
	return n
}

func serializeOp(op Op, dst []byte, opts *SerializeOptions) (int, error) {
	if len(dst) < headerSize {
		return 0, ErrBufferTooSmall
	}
	t := op.Type()
	if !t.Valid() || !op.IsValid() {
		return 0, ErrNotSerializable
	}
	w := opWriter{Writer: wire.NewWriter(dst[headerSize:]), opts: opts, depth: opts.depth}
	opInfos[t].write(&w, op)
	w.Pad(roundUp(headerSize+w.Size()) - headerSize - w.Size())
	if err := w.Err(); err != nil {
		if errors.Is(err, wire.ErrShortBuffer) {
			return 0, ErrBufferTooSmall
		}
		return 0, ErrNotSerializable
	}
	skip := headerSize + w.Size()
	hdr, ok := EncodeHeader(t, skip)
	if !ok {
		return 0, ErrNotSerializable
	}
	binary.LittleEndian.PutUint32(dst, hdr)
	return skip, nil
}

// Deserialize reads one record from the start of input and appends the op
// to out. It returns the op's offset in out and the bytes consumed. On
// failure it reports false and out is unchanged.
//
// input is untrusted: every length, count, and enum is validated before
// use, and each field is read from input exactly once.
func Deserialize(input []byte, out *Buffer, opts DeserializeOptions) (OpRef, int, bool) {
	ref, n, err := deserializeOp(input, out, &opts)
	if err != nil {
		Logger().Debug("paint: deserialize rejected", "err", err)
		return 0, 0, false
	}
	return ref, n, true
}

func deserializeOp(input []byte, out *Buffer, opts *DeserializeOptions) (OpRef, int, error) {
	if len(input) < headerSize {
		return 0, 0, fmt.Errorf("%w: truncated header", ErrCorruptStream)
	}
	t, skip := DecodeHeader(binary.LittleEndian.Uint32(input))
	switch {
	case skip < headerSize || skip%Align != 0:
		return 0, 0, fmt.Errorf("%w: bad skip %d", ErrCorruptStream, skip)
	case skip > len(input):
		return 0, 0, fmt.Errorf("%w: skip %d past end %d", ErrCorruptStream, skip, len(input))
	case !t.Valid():
		return 0, 0, fmt.Errorf("%w: unknown op type %d", ErrCorruptStream, t)
	}

	r := opReader{Reader: wire.NewReader(input[headerSize:skip]), opts: opts, depth: opts.depth}
	defer func() {
		for _, rec := range r.owned {
			rec.Release()
		}
	}()
	op := opInfos[t].read(&r)
	if !r.Valid() {
		return 0, 0, fmt.Errorf("%w: %s: %w", ErrCorruptStream, t, r.Err())
	}
	if !op.IsValid() {
		return 0, 0, fmt.Errorf("%w: %s: invalid fields", ErrCorruptStream, t)
	}
	return out.push(op), skip, nil
}

// SerializeBuffer writes every op of b to a stream. DrawRecordOps are
// flattened into their ops wrapped in Save and Restore, with SetMatrixOps
// rewritten so the stream plays back identically.
func SerializeBuffer(b *Buffer, opts SerializeOptions) ([]byte, error) {
	s := streamWriter{
		opts:    opts,
		scratch: make([]byte, 256),
	}
	if err := s.writeBuffer(b, Identity()); err != nil {
		return nil, err
	}
	return s.out, nil
}

// DeserializeBuffer reads a stream written by SerializeBuffer.
func DeserializeBuffer(data []byte, opts DeserializeOptions) (*Buffer, error) {
	b := NewBuffer()
	for off := 0; off < len(data); {
		_, n, err := deserializeOp(data[off:], b, &opts)
		if err != nil {
			b.Release()
			return nil, fmt.Errorf("paint: record at offset %d: %w", off, err)
		}
		off += n
	}
	b.ShrinkToFit()
	return b, nil
}

// streamWriter flattens buffers into a stream. It tracks the transform
// relative to the stream origin so nested SetMatrixOps can be rebased.
type streamWriter struct {
	opts    SerializeOptions
	out     []byte
	scratch []byte
	ctm     Matrix
	saved   []Matrix
}

func (s *streamWriter) writeBuffer(b *Buffer, entry Matrix) error {
	s.ctm = entry
	for it := NewIterator(b); it.Valid(); it.Next() {
		op := it.Op()
		switch o := op.(type) {
		case DrawRecordOp:
			if err := s.writeRecord(o.Record.Buffer()); err != nil {
				return err
			}
			continue
		case SetMatrixOp:
			if !entry.IsIdentity() {
				op = SetMatrixOp{Matrix: entry.Multiply(o.Matrix)}
			}
		}
		if err := s.emit(op); err != nil {
			return err
		}
		s.track(op, entry)
	}
	return nil
}

// writeRecord writes a nested buffer between Save and Restore, adding the
// restores for saves the nested buffer left open.
func (s *streamWriter) writeRecord(nested *Buffer) error {
	if err := s.emit(SaveOp{}); err != nil {
		return err
	}
	s.saved = append(s.saved, s.ctm)
	base := len(s.saved)
	outer := s.ctm

	if err := s.writeBuffer(nested, outer); err != nil {
		return err
	}

	// A nested buffer that restored past its entry has already consumed
	// the wrapping save.
	depth := len(s.saved) - base
	if depth < 0 {
		return nil
	}
	for range depth + 1 {
		if err := s.emit(RestoreOp{}); err != nil {
			return err
		}
	}
	s.saved = s.saved[:base-1]
	s.ctm = outer
	return nil
}

// track applies op's effect to the tracked transform.
func (s *streamWriter) track(op Op, entry Matrix) {
	switch o := op.(type) {
	case SaveOp, SaveLayerOp, SaveLayerAlphaOp:
		s.saved = append(s.saved, s.ctm)
	case RestoreOp:
		if n := len(s.saved); n > 0 {
			s.ctm = s.saved[n-1]
			s.saved = s.saved[:n-1]
		}
	case ConcatOp:
		s.ctm = s.ctm.Multiply(o.Matrix)
	case TranslateOp:
		s.ctm = s.ctm.Multiply(Translate(o.DX, o.DY))
	case ScaleOp:
		s.ctm = s.ctm.Multiply(Scale(o.SX, o.SY))
	case RotateOp:
		s.ctm = s.ctm.Multiply(Rotate(o.Degrees))
	case SetMatrixOp:
		// Already rebased onto entry by writeBuffer.
		s.ctm = o.Matrix
	}
}

// emit serializes op onto the stream, growing the scratch space as needed.
func (s *streamWriter) emit(op Op) error {
	for {
		n, err := serializeOp(op, s.scratch, &s.opts)
		if err == nil {
			s.out = append(s.out, s.scratch[:n]...)
			return nil
		}
		if !errors.Is(err, ErrBufferTooSmall) || len(s.scratch) >= MaxSkip {
			return fmt.Errorf("paint: serialize %s: %w", op.Type(), err)
		}
		s.scratch = make([]byte, min(2*len(s.scratch), MaxSkip))
	}
}
