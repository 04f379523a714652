// Package transcript post-processes timed transcription segments and renders
// them into caption and text formats.
package transcript

// Segment is one transcribed span of audio, in seconds.
type Segment struct {
	Start float64
	End   float64
	Text  string
}
