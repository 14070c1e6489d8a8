package stroke

import (
	"math"
	"slices"

	"github.com/gogpu/paint"
)

// maxDashes bounds the dash count per call so that tiny intervals on a
// long path cannot explode memory. Beyond it the contours are returned
// undashed.
const maxDashes = 1 << 20

// Dash splits contours into the "on" runs of a dash pattern. Intervals
// alternate on and off lengths; an odd count is repeated to make it even.
// phase offsets the start of the pattern.
func Dash(contours []Contour, intervals []float32, phase float32) []Contour {
	var total float32
	for _, v := range intervals {
		total += v
	}
	if len(intervals) == 0 || !(total > 0) || math.IsInf(float64(total), 0) {
		return contours
	}
	if len(intervals)%2 == 1 {
		intervals = append(slices.Clone(intervals), intervals...)
		total *= 2
	}
	phase = float32(math.Mod(float64(phase), float64(total)))
	if phase < 0 {
		phase += total
	}

	var (
		out    []Contour
		dashes int
	)
	for _, c := range contours {
		pts := c.Points
		if c.Closed {
			pts = append(slices.Clone(pts), pts[0])
		}
		if len(pts) < 2 {
			continue
		}

		idx, remaining := 0, intervals[0]
		for p := phase; p > 0; {
			if p >= remaining {
				p -= remaining
				idx = (idx + 1) % len(intervals)
				remaining = intervals[idx]
			} else {
				remaining -= p
				p = 0
			}
		}
		on := idx%2 == 0

		var cur []paint.Point
		if on {
			cur = append(cur, pts[0])
		}
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			segLen := length(b.Sub(a))
			var pos float32
			for segLen-pos > remaining {
				pos += remaining
				pt := lerp(a, b, pos/segLen)
				if on {
					out = append(out, Contour{Points: append(cur, pt)})
					cur = nil
					if dashes++; dashes > maxDashes {
						return contours
					}
				} else {
					cur = []paint.Point{pt}
				}
				on = !on
				idx = (idx + 1) % len(intervals)
				remaining = intervals[idx]
			}
			remaining -= segLen - pos
			if on {
				cur = append(cur, b)
			}
		}
		if on && len(cur) > 1 {
			out = append(out, Contour{Points: cur})
		}
	}
	return out
}
