// Package media extracts audio from media files through ffmpeg.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBin is used when no ffmpeg executable is configured.
const DefaultBin = "ffmpeg"

// Extractor shells out to ffmpeg to produce mono 16 kHz WAV audio. The
// executable path is explicit configuration rather than process-global state.
type Extractor struct {
	Bin string // ffmpeg executable; DefaultBin when empty
}

func (e Extractor) bin() string {
	if e.Bin != "" {
		return e.Bin
	}
	return DefaultBin
}

// Args returns the ffmpeg arguments for extracting input into wavPath.
func (e Extractor) Args(input, wavPath string) []string {
	return []string{"-y", "-i", input, "-ac", "1", "-ar", "16000", "-vn", wavPath}
}

// ExtractAudio converts the input media file into a mono 16 kHz wav at
// wavPath, failing on a non-zero ffmpeg exit.
func (e Extractor) ExtractAudio(ctx context.Context, input, wavPath string) error {
	cmd := exec.CommandContext(ctx, e.bin(), e.Args(input, wavPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := lastLine(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", e.bin(), err, msg)
		}
		return fmt.Errorf("%s: %w", e.bin(), err)
	}
	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
