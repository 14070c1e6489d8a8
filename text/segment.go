package text

import "golang.org/x/text/unicode/bidi"

// Segment is a run of text with a single direction, in visual order.
// Text is stored in display order: right-to-left runs are reversed.
type Segment struct {
	Text string
	RTL  bool
}

// Segments splits s into directional runs in visual order. Strings that
// bidi cannot order are returned as a single left-to-right run.
func Segments(s string) []Segment {
	if s == "" {
		return nil
	}
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return []Segment{{Text: s}}
	}
	ordering, err := p.Order()
	if err != nil {
		return []Segment{{Text: s}}
	}

	segs := make([]Segment, 0, ordering.NumRuns())
	for i := range ordering.NumRuns() {
		run := ordering.Run(i)
		seg := Segment{Text: run.String()}
		if run.Direction() == bidi.RightToLeft {
			seg.RTL = true
			seg.Text = bidi.ReverseString(seg.Text)
		}
		if seg.Text != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}
