package transcript

import (
	"reflect"
	"strings"
	"testing"
)

func TestMergeShort(t *testing.T) {
	cases := []struct {
		name string
		in   []Segment
		min  float64
		want []Segment
	}{
		{
			name: "empty",
			in:   nil,
			min:  0.6,
			want: nil,
		},
		{
			name: "single",
			in:   []Segment{{0, 1, "hi"}},
			min:  0.6,
			want: []Segment{{0, 1, "hi"}},
		},
		{
			name: "short pair merges",
			in: []Segment{
				{0.0, 0.4, "Hello"},
				{0.4, 0.9, "world."},
				{12.0, 13.0, "Next."},
			},
			min: 0.6,
			want: []Segment{
				{0.0, 0.9, "Hello world."},
				{12.0, 13.0, "Next."},
			},
		},
		{
			name: "long accumulator never absorbs the following short segment",
			in: []Segment{
				{0, 5, "long"},
				{5, 5.1, "tiny"},
			},
			min: 0.6,
			want: []Segment{
				{0, 5, "long"},
				{5, 5.1, "tiny"},
			},
		},
		{
			name: "chain of shorts folds into one",
			in: []Segment{
				{0, 0.1, "a"},
				{0.1, 0.2, "b"},
				{0.2, 0.3, "c"},
				{0.3, 2.0, "d"},
			},
			min: 0.6,
			want: []Segment{
				{0, 2.0, "a b c d"},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := MergeShort(c.in, c.min)
			if len(got) == 0 && len(c.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("MergeShort() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestMergeShortKeepsAllText(t *testing.T) {
	in := []Segment{
		{0, 0.2, "one"},
		{0.2, 0.5, "two"},
		{0.5, 3, "three"},
		{3, 3.1, "four"},
	}
	out := MergeShort(in, 0.6)
	joined := ""
	for _, s := range out {
		joined += " " + s.Text
	}
	for _, s := range in {
		if !strings.Contains(joined, s.Text) {
			t.Errorf("text %q lost after merge: %v", s.Text, out)
		}
	}
}
