package stt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"revoice/pkg/audioconv"
)

// Whisper transcribes locally through the whisper.cpp bindings. The model is
// loaded once and reused across runs; Close releases it.
type Whisper struct {
	model whisper.Model // interface, not pointer
}

func NewWhisper(modelPath string) (*Whisper, error) {
	if modelPath == "" {
		return nil, errors.New("empty model path")
	}
	m, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return &Whisper{model: m}, nil
}

func (w *Whisper) Close() error {
	if w.model == nil {
		return nil
	}
	return w.model.Close()
}

func (w *Whisper) Transcribe(ctx context.Context, audioPath string, opt Options) (Stream, Info, error) {
	if w.model == nil {
		return nil, Info{}, errors.New("nil model")
	}
	pcm, err := audioconv.DecodeFile(ctx, audioPath, audioconv.Options{})
	if err != nil {
		return nil, Info{}, fmt.Errorf("decode audio: %w", err)
	}
	if len(pcm) == 0 {
		return nil, Info{}, errors.New("no audio samples decoded")
	}

	wctx, err := w.model.NewContext()
	if err != nil {
		return nil, Info{}, fmt.Errorf("new context: %w", err)
	}

	lang := opt.Language
	if lang == "" {
		lang = "auto"
	}
	if err := wctx.SetLanguage(lang); err != nil {
		return nil, Info{}, fmt.Errorf("set language: %w", err)
	}

	threads := opt.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	wctx.SetThreads(uint(threads))

	if opt.BeamSize > 0 {
		wctx.SetBeamSize(opt.BeamSize)
	}
	if opt.InitialPrompt != "" {
		wctx.SetInitialPrompt(opt.InitialPrompt)
	}
	if opt.Temperature != 0 {
		wctx.SetTemperature(opt.Temperature)
	}
	if opt.VAD {
		// The bindings expose no VAD toggle; the model's own silence
		// handling applies.
		slog.Debug("vad requested; not supported by whisper.cpp bindings")
	}

	if err := wctx.Process(pcm, nil, nil, nil); err != nil {
		return nil, Info{}, fmt.Errorf("process: %w", err)
	}

	info := Info{DurationSec: float64(len(pcm)) / audioconv.TargetRate}
	if l := wctx.DetectedLanguage(); l != "" {
		info.Language = l
	} else {
		info.Language = wctx.Language()
	}
	return &whisperStream{ctx: ctx, wctx: wctx}, info, nil
}

// whisperStream drains decoded segments from a whisper context one at a time.
type whisperStream struct {
	ctx  context.Context
	wctx whisper.Context
}

func (s *whisperStream) Next() (Segment, error) {
	select {
	case <-s.ctx.Done():
		return Segment{}, s.ctx.Err()
	default:
	}

	seg, err := s.wctx.NextSegment()
	if err == io.EOF {
		return Segment{}, io.EOF
	}
	if err != nil {
		return Segment{}, fmt.Errorf("next segment: %w", err)
	}
	return Segment{
		Text:     seg.Text,
		StartSec: seg.Start.Seconds(),
		EndSec:   seg.End.Seconds(),
	}, nil
}
