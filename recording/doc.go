// Package recording provides a paint.Canvas that records every surface
// call as a typed value instead of drawing.
//
// It is used to inspect what a paint.Buffer does during playback: tests
// compare call lists, and paintdump prints them.
//
// # Example
//
//	c := recording.NewCanvas(800, 600)
//	buf.Playback(c)
//	for _, call := range c.Calls() {
//	    fmt.Println(call)
//	}
package recording
