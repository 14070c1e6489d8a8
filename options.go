package paint

import "context"

// PlaybackOption configures a Buffer.Playback call.
//
// Example:
//
//	buf.Playback(canvas,
//	    paint.WithImageProvider(decoder),
//	    paint.WithAbort(func() bool { return frameDeadlinePassed() }),
//	)
type PlaybackOption func(*playbackOptions)

// playbackOptions holds optional configuration for a playback.
type playbackOptions struct {
	provider ImageProvider
	abort    func() bool
	offsets  []OpRef
}

// WithImageProvider decodes lazy images during playback. Ops whose images
// cannot be decoded are skipped, and ops with lazy images that are outside
// the clip are skipped without decoding.
func WithImageProvider(p ImageProvider) PlaybackOption {
	return func(o *playbackOptions) {
		o.provider = p
	}
}

// WithAbort stops playback as soon as abort returns true. It is polled once
// per top-level op, never in the middle of a fused group.
func WithAbort(abort func() bool) PlaybackOption {
	return func(o *playbackOptions) {
		o.abort = abort
	}
}

// WithContext stops playback once ctx is done.
func WithContext(ctx context.Context) PlaybackOption {
	return WithAbort(func() bool { return ctx.Err() != nil })
}

// WithOffsets plays only the ops at offsets, in the listed order. A nil
// slice plays every op; an empty non-nil slice plays nothing.
func WithOffsets(offsets []OpRef) PlaybackOption {
	return func(o *playbackOptions) {
		o.offsets = offsets
	}
}
