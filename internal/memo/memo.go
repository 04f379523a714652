// Package memo writes a markdown note with YAML front matter summarizing a
// transcription run.
package memo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Memo carries the front-matter fields and body content of a note.
type Memo struct {
	SourceName string // original media file name
	Stem       string // media file name without extension
	OutputDir  string // where the transcript artifacts were written
	Date       time.Time
	Preview    []string // leading segment texts
	Summary    string   // optional model-written summary
}

// Slug returns the date-prefixed memo identifier.
func (m Memo) Slug() string {
	return fmt.Sprintf("%s_transcript-%s", m.Date.Format("2006-01-02"), m.Stem)
}

// Render produces the memo document.
func (m Memo) Render() string {
	day := m.Date.Format("2006-01-02")
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: Transcription memo (%s)\n", m.SourceName)
	fmt.Fprintf(&b, "slug: %s\n", m.Slug())
	b.WriteString("phase: memo\n")
	b.WriteString("status: draft\n")
	b.WriteString("tags: [transcript, whisper]\n")
	fmt.Fprintf(&b, "created: %s\n", day)
	fmt.Fprintf(&b, "updated: %s\n", day)
	fmt.Fprintf(&b, "source: %s/%s.txt\n", m.OutputDir, m.Stem)
	b.WriteString("---\n\n")
	if m.Summary != "" {
		b.WriteString(m.Summary)
		b.WriteString("\n\n")
	}
	b.WriteString(strings.Join(m.Preview, "\n"))
	b.WriteString("\n")
	return b.String()
}

// Write renders the memo into dir and returns the file path.
func Write(dir string, m Memo) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create memo dir: %w", err)
	}
	path := filepath.Join(dir, m.Slug()+".md")
	if err := os.WriteFile(path, []byte(m.Render()), 0o644); err != nil {
		return "", fmt.Errorf("write memo: %w", err)
	}
	return path, nil
}
