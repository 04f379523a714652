package transcript

import (
	"strings"
	"testing"
)

func seg(start, end float64, text string) Segment {
	return Segment{Start: start, End: end, Text: text}
}

func TestFormatTranscriptPlain(t *testing.T) {
	segs := []Segment{
		seg(0, 1, "One. Two."),
		seg(1, 2, "Three. Four."),
	}
	got, err := FormatTranscript(segs, "plain")
	if err != nil {
		t.Fatal(err)
	}
	want := "One.Two.Three.\n\nFour."
	if got != want {
		t.Errorf("plain = %q, want %q", got, want)
	}
}

func TestFormatTranscriptDefaultsToPlain(t *testing.T) {
	segs := []Segment{seg(0, 1, "Hi.")}
	got, err := FormatTranscript(segs, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hi." {
		t.Errorf("default style = %q, want %q", got, "Hi.")
	}
}

func TestFormatTranscriptMarkdown(t *testing.T) {
	segs := []Segment{seg(0, 1, "One. Two.")}
	got, err := FormatTranscript(segs, "markdown")
	if err != nil {
		t.Fatal(err)
	}
	want := "- One.\n- Two."
	if got != want {
		t.Errorf("markdown = %q, want %q", got, want)
	}
}

func TestFormatTranscriptEmpty(t *testing.T) {
	for _, style := range []string{"plain", "markdown"} {
		got, err := FormatTranscript(nil, style)
		if err != nil {
			t.Fatal(err)
		}
		if got != "" {
			t.Errorf("%s on empty input = %q, want empty", style, got)
		}
	}
}

func TestFormatTranscriptUnsupportedStyle(t *testing.T) {
	_, err := FormatTranscript([]Segment{seg(0, 1, "x.")}, "unknown")
	if err == nil {
		t.Fatal("expected error for unsupported style")
	}
	if !strings.Contains(err.Error(), "unknown") {
		t.Errorf("error should name the style, got %v", err)
	}
}

func TestRenderSRT(t *testing.T) {
	segs := []Segment{
		seg(0.0, 0.9, "Hello world."),
		seg(12.0, 13.0, "Next."),
	}
	got := RenderSRT(segs)
	want := "1\n00:00:00,000 --> 00:00:00,900\nHello world.\n\n" +
		"2\n00:00:12,000 --> 00:00:13,000\nNext.\n\n"
	if got != want {
		t.Errorf("RenderSRT() = %q, want %q", got, want)
	}
}

func TestRenderVTT(t *testing.T) {
	segs := []Segment{seg(0.0, 0.9, " Hello world. ")}
	got := RenderVTT(segs)
	want := "WEBVTT\n\n00:00:00.000 --> 00:00:00.900\nHello world.\n\n"
	if got != want {
		t.Errorf("RenderVTT() = %q, want %q", got, want)
	}
}

func TestRenderVTTEmpty(t *testing.T) {
	if got := RenderVTT(nil); got != "WEBVTT\n\n" {
		t.Errorf("empty VTT = %q", got)
	}
}

func TestRenderTXTWithTimestamps(t *testing.T) {
	segs := []Segment{
		seg(0.0, 0.9, "Hello world."),
		seg(12.0, 13.0, "Next."),
	}
	got := RenderTXT(segs, true)
	want := "[00:00] Hello world.\n[00:12] Next.\n"
	if got != want {
		t.Errorf("RenderTXT(timestamps) = %q, want %q", got, want)
	}
}

func TestRenderTXTSkipsEmptyBuckets(t *testing.T) {
	segs := []Segment{
		seg(0, 1, "   "),
		seg(12, 13, "Next."),
	}
	got := RenderTXT(segs, true)
	want := "[00:12] Next.\n"
	if got != want {
		t.Errorf("RenderTXT(timestamps) = %q, want %q", got, want)
	}
}

func TestRenderTXTPlainLines(t *testing.T) {
	segs := []Segment{
		seg(0, 1, " one "),
		seg(1, 2, "two"),
	}
	got := RenderTXT(segs, false)
	want := "one\ntwo\n"
	if got != want {
		t.Errorf("RenderTXT(plain) = %q, want %q", got, want)
	}
}

func TestRenderTXTHourLabel(t *testing.T) {
	segs := []Segment{seg(3700, 3701, "late.")}
	got := RenderTXT(segs, true)
	want := "[01:01:40] late.\n"
	if got != want {
		t.Errorf("RenderTXT(timestamps) = %q, want %q", got, want)
	}
}
