package text

import "golang.org/x/image/math/fixed"

// fixedToFloat converts a 26.6 fixed-point value to float32.
func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// FloatToFixed converts a float32 to 26.6 fixed point, rounding to the
// nearest representable value.
func FloatToFixed(v float32) fixed.Int26_6 {
	if v < 0 {
		return fixed.Int26_6(v*64 - 0.5)
	}
	return fixed.Int26_6(v*64 + 0.5)
}
