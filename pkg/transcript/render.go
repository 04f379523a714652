package transcript

import (
	"fmt"
	"strings"
)

// sentencesPerParagraph groups plain-style output; the last paragraph may be
// shorter.
const sentencesPerParagraph = 3

// FormatTranscript renders the segments in the requested style. An empty
// style defaults to "plain". Style names are case-insensitive.
func FormatTranscript(segs []Segment, style string) (string, error) {
	style = strings.ToLower(style)
	if style == "" {
		style = "plain"
	}
	switch style {
	case "plain":
		return formatPlain(segs, sentencesPerParagraph), nil
	case "markdown":
		return formatMarkdown(segs), nil
	}
	return "", fmt.Errorf("unsupported transcript style: %q", style)
}

func segmentTexts(segs []Segment) []string {
	texts := make([]string, len(segs))
	for i, s := range segs {
		texts[i] = s.Text
	}
	return texts
}

func formatPlain(segs []Segment, perParagraph int) string {
	sentences := Sentences(segmentTexts(segs))
	if len(sentences) == 0 {
		return ""
	}
	var paragraphs []string
	for i := 0; i < len(sentences); i += perParagraph {
		end := min(i+perParagraph, len(sentences))
		// Sentences keep their terminal punctuation; no separator needed.
		paragraphs = append(paragraphs, strings.Join(sentences[i:end], ""))
	}
	return strings.Join(paragraphs, "\n\n")
}

func formatMarkdown(segs []Segment) string {
	sentences := Sentences(segmentTexts(segs))
	if len(sentences) == 0 {
		return ""
	}
	var b strings.Builder
	for i, s := range sentences {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(s)
	}
	return b.String()
}

// RenderSRT renders numbered subtitle blocks with comma-millisecond clocks.
func RenderSRT(segs []Segment) string {
	var b strings.Builder
	for i, s := range segs {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1, ClockComma(s.Start), ClockComma(s.End), strings.TrimSpace(s.Text))
	}
	return b.String()
}

// RenderVTT renders a WEBVTT document with dot-millisecond clocks.
func RenderVTT(segs []Segment) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, s := range segs {
		fmt.Fprintf(&b, "%s --> %s\n%s\n\n",
			ClockDot(s.Start), ClockDot(s.End), strings.TrimSpace(s.Text))
	}
	return b.String()
}

// RenderTXT renders plain text lines. With timestamps the segments are first
// bucketed into 10-second windows and each non-empty bucket becomes a
// "[mm:ss] text" line; otherwise every raw segment becomes one trimmed line.
func RenderTXT(segs []Segment, withTimestamps bool) string {
	var b strings.Builder
	if withTimestamps {
		for _, s := range BucketByWindow(segs, DefaultBucketWidth) {
			text := strings.TrimSpace(s.Text)
			if text == "" {
				continue
			}
			fmt.Fprintf(&b, "[%s] %s\n", ClockLabel(s.Start), text)
		}
		return b.String()
	}
	for _, s := range segs {
		b.WriteString(strings.TrimSpace(s.Text))
		b.WriteByte('\n')
	}
	return b.String()
}
