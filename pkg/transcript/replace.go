package transcript

import "strings"

// Rule is one literal text substitution.
type Rule struct {
	From string
	To   string
}

// ParseRules parses a comma-separated "A=>B,C=>D" list. Entries without the
// "=>" separator are skipped; both sides are trimmed.
func ParseRules(raw string) []Rule {
	var rules []Rule
	for _, pair := range strings.Split(raw, ",") {
		from, to, ok := strings.Cut(pair, "=>")
		if !ok {
			continue
		}
		rules = append(rules, Rule{
			From: strings.TrimSpace(from),
			To:   strings.TrimSpace(to),
		})
	}
	return rules
}

// ApplyRules applies every rule, left to right, to every segment's text and
// returns a new slice. With no rules the input is returned unchanged.
func ApplyRules(segs []Segment, rules []Rule) []Segment {
	if len(rules) == 0 {
		return segs
	}
	out := make([]Segment, len(segs))
	for i, s := range segs {
		for _, r := range rules {
			s.Text = strings.ReplaceAll(s.Text, r.From, r.To)
		}
		out[i] = s
	}
	return out
}
