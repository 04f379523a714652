package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// OpenAI transcribes through an OpenAI-compatible /audio/transcriptions
// endpoint using the verbose JSON response that carries per-segment timings.
type OpenAI struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

func NewOpenAI(baseURL, apiKey, model string, client *http.Client) *OpenAI {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "whisper-1"
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Minute}
	}
	return &OpenAI{BaseURL: baseURL, APIKey: apiKey, Model: model, Client: client}
}

type verboseTranscription struct {
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (o *OpenAI) Transcribe(ctx context.Context, audioPath string, opt Options) (Stream, Info, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, Info{}, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, Info{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, Info{}, fmt.Errorf("copy audio into form: %w", err)
	}
	_ = w.WriteField("model", o.Model)
	_ = w.WriteField("response_format", "verbose_json")
	if opt.Language != "" && opt.Language != "auto" {
		_ = w.WriteField("language", opt.Language)
	}
	if opt.InitialPrompt != "" {
		_ = w.WriteField("prompt", opt.InitialPrompt)
	}
	if opt.Temperature != 0 {
		_ = w.WriteField("temperature", strconv.FormatFloat(float64(opt.Temperature), 'f', -1, 32))
	}
	if err := w.Close(); err != nil {
		return nil, Info{}, fmt.Errorf("close multipart writer: %w", err)
	}

	endpoint := strings.TrimSuffix(o.BaseURL, "/") + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, Info{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if o.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.APIKey)
	}

	resp, err := o.Client.Do(req)
	if err != nil {
		return nil, Info{}, fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, Info{}, fmt.Errorf("transcription API error %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var parsed verboseTranscription
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, Info{}, fmt.Errorf("decode response: %w", err)
	}

	segs := make([]Segment, 0, len(parsed.Segments))
	for _, s := range parsed.Segments {
		segs = append(segs, Segment{Text: s.Text, StartSec: s.Start, EndSec: s.End})
	}
	if len(segs) == 0 && strings.TrimSpace(parsed.Text) != "" {
		// Some compatible servers return plain text only; keep it as one span.
		segs = append(segs, Segment{Text: parsed.Text, EndSec: parsed.Duration})
	}
	return StreamOf(segs), Info{DurationSec: parsed.Duration, Language: parsed.Language}, nil
}
