package decode

// Option configures a Provider.
type Option func(*options)

type options struct {
	capacity       int
	maxDecodeBytes int
}

func defaultOptions() options {
	return options{
		capacity:       DefaultCapacity,
		maxDecodeBytes: DefaultMaxDecodeBytes,
	}
}

// WithCapacity sets how many decoded images are cached.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithMaxDecodeBytes rejects images whose decoded RGBA size would exceed n
// bytes.
func WithMaxDecodeBytes(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDecodeBytes = n
		}
	}
}
