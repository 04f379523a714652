package memo

import (
	"os"
	"strings"
	"testing"
	"time"
)

func testMemo() Memo {
	return Memo{
		SourceName: "meeting.mp4",
		Stem:       "meeting",
		OutputDir:  "archive",
		Date:       time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		Preview:    []string{"Hello world.", "Next."},
	}
}

func TestMemoRender(t *testing.T) {
	m := testMemo()
	got := m.Render()

	for _, want := range []string{
		"---\n",
		"title: Transcription memo (meeting.mp4)\n",
		"slug: 2026-08-25_transcript-meeting\n",
		"source: archive/meeting.txt\n",
		"Hello world.\nNext.\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("memo missing %q:\n%s", want, got)
		}
	}
}

func TestMemoRenderWithSummary(t *testing.T) {
	m := testMemo()
	m.Summary = "Short recap."
	got := m.Render()
	if !strings.Contains(got, "---\n\nShort recap.\n\nHello world.") {
		t.Errorf("summary placement wrong:\n%s", got)
	}
}

func TestMemoWrite(t *testing.T) {
	dir := t.TempDir() + "/notes"
	m := testMemo()
	path, err := Write(dir, m)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, "2026-08-25_transcript-meeting.md") {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != m.Render() {
		t.Error("file content does not match rendered memo")
	}
}
