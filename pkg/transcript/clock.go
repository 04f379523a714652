package transcript

import (
	"fmt"
	"math"
)

// splitMillis decomposes a timestamp into clock components. Milliseconds are
// rounded half-to-even before the integer decomposition, so both clock
// formats produce identical digit groups for the same input.
func splitMillis(seconds float64) (h, m, s, ms int) {
	total := int(math.RoundToEven(seconds * 1000))
	s, ms = total/1000, total%1000
	m, s = s/60, s%60
	h, m = m/60, m%60
	return
}

// ClockComma formats seconds as "HH:MM:SS,mmm" (SRT style). Hours are not
// capped at 24.
func ClockComma(seconds float64) string {
	h, m, s, ms := splitMillis(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// ClockDot formats seconds as "HH:MM:SS.mmm" (WebVTT style).
func ClockDot(seconds float64) string {
	h, m, s, ms := splitMillis(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// ClockLabel formats seconds as a compact "mm:ss" label, or "hh:mm:ss" once
// the timestamp reaches one hour. Negative inputs clamp to zero.
func ClockLabel(seconds float64) string {
	total := int(math.RoundToEven(seconds))
	if total < 0 {
		total = 0
	}
	s := total % 60
	m := total / 60
	h := m / 60
	m %= 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
