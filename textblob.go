package paint

// maxTextRuns bounds deserialized text blobs.
const maxTextRuns = 1024

// maxRunBytes bounds the text of a single deserialized run.
const maxRunBytes = 1 << 16

// TextRun is a laid-out span of text drawn with a single font size and
// direction. Offset is relative to the blob origin and locates the run's
// baseline start.
type TextRun struct {
	Text   string
	Size   float32
	Offset Point
	RTL    bool
}

// TextBlob is an immutable sequence of positioned text runs. Bounds is
// relative to the blob origin.
type TextBlob struct {
	Runs   []TextRun
	Bounds Rect
}

// IsValid reports whether the blob has runs and finite geometry.
func (b *TextBlob) IsValid() bool {
	if len(b.Runs) == 0 || len(b.Runs) > maxTextRuns || !b.Bounds.IsFinite() {
		return false
	}
	for _, r := range b.Runs {
		if !isFinite(r.Size) || r.Size <= 0 || !r.Offset.IsFinite() || len(r.Text) > maxRunBytes {
			return false
		}
	}
	return true
}

// Equal reports whether both blobs have identical runs and bounds.
func (b *TextBlob) Equal(other *TextBlob) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.Bounds != other.Bounds || len(b.Runs) != len(other.Runs) {
		return false
	}
	for i := range b.Runs {
		if b.Runs[i] != other.Runs[i] {
			return false
		}
	}
	return true
}
