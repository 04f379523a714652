package media

import (
	"reflect"
	"testing"
)

func TestExtractorBin(t *testing.T) {
	if got := (Extractor{}).bin(); got != "ffmpeg" {
		t.Errorf("default bin = %q", got)
	}
	if got := (Extractor{Bin: "/opt/ffmpeg"}).bin(); got != "/opt/ffmpeg" {
		t.Errorf("configured bin = %q", got)
	}
}

func TestExtractorArgs(t *testing.T) {
	got := Extractor{}.Args("in.mp4", "out.wav")
	want := []string{"-y", "-i", "in.mp4", "-ac", "1", "-ar", "16000", "-vn", "out.wav"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args() = %v, want %v", got, want)
	}
}
