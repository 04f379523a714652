package transcript

import "strings"

// MergeShort collapses adjacent short segments into longer ones. While the
// current accumulator is shorter than minDuration, the next segment's end and
// text are folded into it; otherwise the accumulator is flushed and the next
// segment starts a new one. Only the accumulator's duration is inspected, so
// a short segment after a long one is never absorbed backward.
func MergeShort(segs []Segment, minDuration float64) []Segment {
	if len(segs) == 0 {
		return segs
	}
	merged := make([]Segment, 0, len(segs))
	cur := segs[0]
	for _, next := range segs[1:] {
		if cur.End-cur.Start < minDuration {
			cur.End = next.End
			cur.Text = strings.TrimSpace(cur.Text + " " + next.Text)
		} else {
			merged = append(merged, cur)
			cur = next
		}
	}
	return append(merged, cur)
}
