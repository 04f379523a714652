package transcript

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// sentenceEnders closes a sentence; covers Latin and CJK terminators.
const sentenceEnders = "。.!?！？…‥"

var spaceRun = regexp.MustCompile(`\s+`)

func normalizeSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// Sentences rebuilds sentences from raw transcript chunks, independent of the
// original segment boundaries. Non-empty trimmed chunks are joined by single
// spaces, whitespace runs are normalized, and the result is cut after every
// terminator character. A trailing unterminated run becomes a final sentence.
func Sentences(chunks []string) []string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if t := strings.TrimSpace(c); t != "" {
			parts = append(parts, t)
		}
	}
	joined := normalizeSpace(strings.Join(parts, " "))
	if joined == "" {
		return nil
	}

	var out []string
	cut := 0
	for i, r := range joined {
		if !strings.ContainsRune(sentenceEnders, r) {
			continue
		}
		end := i + utf8.RuneLen(r)
		if s := normalizeSpace(joined[cut:end]); s != "" {
			out = append(out, s)
		}
		cut = end
	}
	if cut < len(joined) {
		if s := normalizeSpace(joined[cut:]); s != "" {
			out = append(out, s)
		}
	}
	return out
}
