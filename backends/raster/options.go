package raster

import "github.com/gogpu/paint"

// Option configures a Canvas.
type Option func(*options)

type options struct {
	background paint.Color
	tolerance  float32
}

func defaultOptions() options {
	return options{
		background: paint.Transparent,
		tolerance:  0.25,
	}
}

// WithBackground fills the canvas with c before drawing.
func WithBackground(c paint.Color) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithTolerance sets the curve flattening tolerance in device pixels.
func WithTolerance(t float32) Option {
	return func(o *options) {
		if t > 0 {
			o.tolerance = t
		}
	}
}
