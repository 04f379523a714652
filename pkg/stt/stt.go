// Package stt defines the transcription collaborator contract and its
// backends. A backend turns an audio file into a finite, forward-only stream
// of timed segments.
package stt

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Segment is one timed span emitted by a backend.
type Segment struct {
	Text     string
	StartSec float64
	EndSec   float64
}

// Info describes the transcribed audio as reported by the backend.
type Info struct {
	DurationSec float64 // 0 when unknown
	Language    string  // detected or forced
}

// Stream is a finite, forward-only sequence of segments in non-decreasing
// start order. Next returns io.EOF once drained; streams cannot be restarted
// and support no random access.
type Stream interface {
	Next() (Segment, error)
}

// Options configure a transcription run. Backends honor the options they
// support and ignore the rest.
type Options struct {
	Language            string        // e.g. "ja", "en", "auto"
	BeamSize            int           // <=0 => greedy decode
	InitialPrompt       string        // prefix prompt to bias decoding
	VAD                 bool          // voice activity detection
	MinSilence          time.Duration // VAD minimum silence between speech
	ConditionOnPrevious bool          // condition decoding on previous text
	Threads             int           // <=0 => NumCPU()
	Temperature         float32       // 0 = backend default
}

// Transcriber produces a segment stream plus audio metadata for a file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opt Options) (Stream, Info, error)
}

// Preset is a named bundle of decode parameters.
type Preset string

const (
	PresetBalanced Preset = "balanced"
	PresetGreedy   Preset = "greedy"
	PresetBeam     Preset = "beam"
)

// ParsePreset resolves a preset name; an empty name means balanced.
func ParsePreset(name string) (Preset, error) {
	switch p := Preset(strings.ToLower(name)); p {
	case "":
		return PresetBalanced, nil
	case PresetBalanced, PresetGreedy, PresetBeam:
		return p, nil
	default:
		return "", fmt.Errorf("unknown preset: %q", name)
	}
}

// Apply adjusts decode options according to the preset. Greedy forces a beam
// width of 1; the other presets keep the configured width.
func (p Preset) Apply(opt Options) Options {
	if p == PresetGreedy {
		opt.BeamSize = 1
	}
	return opt
}

type sliceStream struct {
	segs []Segment
}

// StreamOf returns a Stream over an in-memory segment slice.
func StreamOf(segs []Segment) Stream {
	return &sliceStream{segs: segs}
}

func (s *sliceStream) Next() (Segment, error) {
	if len(s.segs) == 0 {
		return Segment{}, io.EOF
	}
	seg := s.segs[0]
	s.segs = s.segs[1:]
	return seg, nil
}
