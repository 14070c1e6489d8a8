package paint

const (
	// Align is the arena alignment. Every record starts at a multiple of
	// Align and every skip is a multiple of Align.
	Align = 8

	// MaxSkip is the exclusive upper bound on a record skip. It is the
	// first value that does not fit the header's 24-bit skip field.
	MaxSkip = 1 << 24

	// headerSize is the size of the record header.
	headerSize = 4
)

// EncodeHeader packs t into the low byte and skip into the upper 24 bits.
// It fails when skip is not a multiple of Align or is not below MaxSkip.
func EncodeHeader(t OpType, skip int) (uint32, bool) {
	if skip < 0 || skip%Align != 0 || skip >= MaxSkip {
		return 0, false
	}
	return uint32(t) | uint32(skip)<<8, true // #nosec G115 -- skip < MaxSkip
}

// DecodeHeader splits a header word into its type and skip. The result is
// not validated.
func DecodeHeader(word uint32) (OpType, int) {
	return OpType(word & 0xFF), int(word >> 8)
}

// roundUp rounds n up to a multiple of Align.
func roundUp(n int) int {
	return (n + Align - 1) &^ (Align - 1)
}
