// Package paint records 2D drawing operations into a compact buffer,
// serializes them to a flat byte stream, and plays them back onto a
// [Canvas].
//
// # Overview
//
// A [Buffer] is an append-only arena of fixed-size records. Each record
// starts with a 32-bit header holding the op type and the record size, so
// the buffer can be walked without decoding payloads. Heap objects such as
// paths, images, and nested records are kept in a side table and referenced
// by index, which keeps the arena free of Go pointers.
//
// # Quick Start
//
//	buf := paint.NewBuffer()
//	buf.Push(paint.SaveOp{})
//	buf.Push(paint.ClipRectOp{Rect: paint.XYWH(0, 0, 10, 10), Op: paint.ClipIntersect})
//	buf.Push(paint.DrawColorOp{Color: paint.Red})
//	buf.Push(paint.RestoreOp{})
//
//	buf.Playback(canvas)
//
// # Streams
//
// [Serialize] and [Deserialize] move single ops to and from a byte stream;
// [SerializeBuffer] and [DeserializeBuffer] handle whole buffers. Streams
// are treated as untrusted input: every record is validated before it is
// appended, and a corrupt record leaves the destination untouched.
//
// # Playback
//
// [Buffer.Playback] accepts options for lazy image decoding
// ([WithImageProvider]), cooperative cancellation ([WithAbort],
// [WithContext]), and playing a subset of ops ([WithOffsets]). Layer
// groups of the form SaveLayerAlpha, draw, Restore are drawn without an
// offscreen layer when the alpha can be folded into the draw.
//
// # Logging
//
// paint is silent by default. See [SetLogger].
package paint
