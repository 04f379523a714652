package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"revoice/internal/media"
	"revoice/internal/memo"
	"revoice/internal/progress"
	"revoice/internal/proxy"
	"revoice/pkg/stt"
	"revoice/pkg/transcript"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	outDir := cli.StringP("output-dir", "o", "archive", "Output directory")
	backendName := cli.String("backend", "local", "Transcription backend: local|openai")
	model := cli.String("model", "", "Model path (local) or model name (openai)")
	language := cli.String("language", "ja", "Language code (e.g. ja, en, auto)")
	beamSize := cli.Int("beam-size", 5, "Beam width for decoding")
	initialPrompt := cli.String("initial-prompt", "", "Initial prompt to bias transcription")
	outputStyle := cli.String("output-style", "plain", "TXT output style: plain|markdown|timestamps")
	formats := cli.String("formats", "txt,srt,vtt", "Comma separated: txt,srt,vtt")
	replace := cli.String("replace", "", "Comma-separated replacements like A=>B,C=>D")
	noVAD := cli.Bool("no-vad", false, "Disable VAD filtering")
	minSegment := cli.Float64("min-segment", 0.6, "Merge segments shorter than this (sec)")
	presetName := cli.String("preset", "balanced", "Decode preset: balanced|greedy|beam")
	withMemo := cli.Bool("memo", false, "Write a memo note with front matter")
	memoDir := cli.String("memo-dir", "memo", "Memo directory")
	proxyAddr := cli.StringP("proxy", "p", "", "SOCKS proxy address for remote backends")
	ffmpegBin := cli.String("ffmpeg", "", "ffmpeg executable (default $FFMPEG_PATH or \"ffmpeg\")")
	progressURL := cli.String("progress-url", "", "Websocket URL mirroring progress events")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	if cli.NArg() < 1 {
		log.Error("missing input media file")
		cli.Usage()
		os.Exit(2)
	}
	input := cli.Arg(0)

	godotenv.Load(*envFile)

	if _, err := os.Stat(input); err != nil {
		log.Error("input not found", "path", input, "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Error("cannot create output dir", "dir", *outDir, "err", err)
		os.Exit(1)
	}

	preset, err := stt.ParsePreset(*presetName)
	if err != nil {
		log.Error("bad preset", "err", err)
		os.Exit(2)
	}

	rep := progress.NewReporter(os.Stdout)
	if *progressURL != "" {
		if err := rep.AttachWebsocket(*progressURL); err != nil {
			log.Warn("progress sink unavailable", "url", *progressURL, "err", err)
		}
	}
	defer rep.Close()

	ctx := context.Background()
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	wavPath := filepath.Join(*outDir, stem+".wav")

	rep.Emit(0)

	bin := *ffmpegBin
	if bin == "" {
		bin = os.Getenv("FFMPEG_PATH")
	}
	log.Info("Extracting audio", "input", input, "wav", wavPath)
	if err := (media.Extractor{Bin: bin}).ExtractAudio(ctx, input, wavPath); err != nil {
		log.Error("audio extraction failed", "err", err)
		os.Exit(1)
	}
	rep.Emit(5)

	tr, closeBackend, err := buildBackend(*backendName, *model, *proxyAddr)
	if err != nil {
		log.Error("backend unavailable", "backend", *backendName, "err", err)
		os.Exit(1)
	}
	defer closeBackend()

	opts := preset.Apply(stt.Options{
		Language:            *language,
		BeamSize:            *beamSize,
		InitialPrompt:       *initialPrompt,
		VAD:                 !*noVAD,
		MinSilence:          500 * time.Millisecond,
		ConditionOnPrevious: true,
	})

	log.Info("Transcribing", "backend", *backendName, "language", *language)
	stream, info, err := tr.Transcribe(ctx, wavPath, opts)
	if err != nil {
		log.Error("transcription failed", "err", err)
		os.Exit(1)
	}

	raw, err := collectSegments(stream, info, rep)
	if err != nil {
		log.Error("transcription failed", "err", err)
		os.Exit(1)
	}
	log.Info("Transcription done", "segments", len(raw), "language", info.Language)

	segs := transcript.MergeShort(raw, *minSegment)
	segs = transcript.ApplyRules(segs, transcript.ParseRules(*replace))

	txtPath, err := writeOutputs(segs, *formats, *outputStyle, filepath.Join(*outDir, stem))
	if err != nil {
		log.Error("writing outputs failed", "err", err)
		os.Exit(1)
	}
	if txtPath != "" {
		if abs, err := filepath.Abs(txtPath); err == nil {
			txtPath = abs
		}
		fmt.Printf("[TRANSCRIPT] %s\n", txtPath)
	}

	if *withMemo {
		writeMemo(ctx, *memoDir, *outDir, input, stem, segs)
	}

	rep.Emit(100)
	log.Info("Done", "dir", *outDir)
}

func buildBackend(name, model, proxyAddr string) (stt.Transcriber, func(), error) {
	switch strings.ToLower(name) {
	case "local":
		path := model
		if path == "" {
			path = os.Getenv("WHISPER_MODEL")
		}
		if path == "" {
			path = "models/ggml-large-v3.bin"
		}
		w, err := stt.NewWhisper(path)
		if err != nil {
			return nil, nil, err
		}
		return w, func() { w.Close() }, nil
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, nil, errors.New("OPENAI_API_KEY not set")
		}
		var client *http.Client
		if proxyAddr != "" {
			c, err := proxy.NewSocksClient(proxyAddr, 10*time.Minute)
			if err != nil {
				return nil, nil, fmt.Errorf("dial socks proxy: %w", err)
			}
			client = c
		}
		return stt.NewOpenAI("", key, model, client), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown backend: %q", name)
}

// collectSegments drains the stream into post-processing segments, emitting
// progress as the transcribed position advances.
func collectSegments(stream stt.Stream, info stt.Info, rep *progress.Reporter) ([]transcript.Segment, error) {
	var segs []transcript.Segment
	for {
		s, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		segs = append(segs, transcript.Segment{
			Start: s.StartSec,
			End:   s.EndSec,
			Text:  strings.TrimSpace(s.Text),
		})
		if info.DurationSec > 0 {
			rep.Step(s.EndSec / info.DurationSec * 100)
		} else {
			rep.Step(math.Min(float64(len(segs))*5, 99))
		}
	}
	return segs, nil
}

// writeOutputs renders the requested formats next to base and returns the txt
// artifact path, if one was written.
func writeOutputs(segs []transcript.Segment, formats, style, base string) (string, error) {
	txtPath := ""
	for _, f := range strings.Split(formats, ",") {
		switch strings.TrimSpace(f) {
		case "":
		case "txt":
			path := base + ".txt"
			var out string
			if style == "timestamps" {
				out = transcript.RenderTXT(segs, true)
			} else {
				var err error
				out, err = transcript.FormatTranscript(segs, style)
				if err != nil {
					return "", err
				}
				if out != "" && !strings.HasSuffix(out, "\n") {
					out += "\n"
				}
			}
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				return "", err
			}
			txtPath = path
		case "srt":
			if err := os.WriteFile(base+".srt", []byte(transcript.RenderSRT(segs)), 0o644); err != nil {
				return "", err
			}
		case "vtt":
			if err := os.WriteFile(base+".vtt", []byte(transcript.RenderVTT(segs)), 0o644); err != nil {
				return "", err
			}
		default:
			log.Warn("skipping unknown format", "format", f)
		}
	}
	return txtPath, nil
}

func writeMemo(ctx context.Context, dir, outDir, input, stem string, segs []transcript.Segment) {
	preview := make([]string, 0, 10)
	for _, s := range segs[:min(10, len(segs))] {
		preview = append(preview, s.Text)
	}
	m := memo.Memo{
		SourceName: filepath.Base(input),
		Stem:       stem,
		OutputDir:  outDir,
		Date:       time.Now(),
		Preview:    preview,
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		texts := make([]string, len(segs))
		for i, s := range segs {
			texts[i] = s.Text
		}
		client := openai.NewClient(option.WithAPIKey(key))
		if sum, err := memo.Summarize(ctx, client, strings.Join(texts, " ")); err != nil {
			log.Warn("summary skipped", "err", err)
		} else {
			m.Summary = sum
		}
	}

	if path, err := memo.Write(dir, m); err != nil {
		log.Warn("memo not written", "err", err)
	} else {
		log.Info("Memo written", "path", path)
	}
}
