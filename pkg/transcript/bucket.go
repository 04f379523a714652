package transcript

import (
	"math"
	"strings"
)

// DefaultBucketWidth is the time window used for timestamped text output.
const DefaultBucketWidth = 10.0

// BucketByWindow groups time-ordered segments into fixed-width windows keyed
// by floor(start/width). Consecutive segments in the same window collapse into
// one aggregate keeping the first start, the running max end, and the
// space-joined texts. Empty input or a non-positive width is returned as is.
func BucketByWindow(segs []Segment, width float64) []Segment {
	if len(segs) == 0 || width <= 0 {
		return segs
	}
	grouped := make([]Segment, 0, len(segs))
	cur := segs[0]
	curWin := int(math.Floor(cur.Start / width))
	for _, s := range segs[1:] {
		win := int(math.Floor(s.Start / width))
		if win == curWin {
			cur.End = math.Max(cur.End, s.End)
			cur.Text = cur.Text + " " + s.Text
			continue
		}
		cur.Text = strings.TrimSpace(cur.Text)
		grouped = append(grouped, cur)
		cur = s
		curWin = win
	}
	cur.Text = strings.TrimSpace(cur.Text)
	return append(grouped, cur)
}
