// Package stroke converts stroked outlines into fill outlines.
//
// Stroke expansion builds two offset polylines for every contour, one on
// each side at half the stroke width, joins them at the vertices and closes
// them with caps. The result is emitted into a Sink as closed polygons whose
// union, under the nonzero rule, covers the stroke.
//
//	contours := stroke.Flatten(path, 0.25)
//	if dash != nil {
//	    contours = stroke.Dash(contours, dash.Intervals, dash.Phase)
//	}
//	stroke.Expand(contours, stroke.Style{Width: 4, Join: paint.JoinRound}, rasterizer)
//
// The algorithm follows tiny-skia's stroker and kurbo's stroke expansion,
// reduced to polylines.
package stroke
