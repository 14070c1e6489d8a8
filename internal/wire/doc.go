// Package wire provides the bounds-checked little-endian scalar layer used
// by the paint op serializer.
//
// A Writer fills a caller-provided byte slice and latches Valid() == false on
// the first write that does not fit. A Reader consumes a byte slice that may
// be backed by memory shared with another process: every value is copied out
// of the input exactly once, so a value that has been read and checked can
// never change underneath the caller. The Reader also latches on the first
// failure and records the reason as one of the package's sentinel errors.
package wire
