// Package audioconv decodes audio files into mono 16 kHz float32 PCM, the
// input format expected by the whisper.cpp bindings.
package audioconv

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	popus "github.com/pekim/opus"
)

// TargetRate is the sample rate of the PCM produced by DecodeFile.
const TargetRate = 16000

type Options struct {
	MaxSamples int // truncate the decoded PCM; 0 = unlimited
}

// pcm is decoder output before the mono/16k conversion stage.
type pcm struct {
	samples  []float32 // interleaved when channels > 1
	rate     int
	channels int
}

type format int

const (
	formatUnknown format = iota
	formatWAV
	formatMP3
	formatOgg
)

// DecodeFile decodes a wav, mp3 or ogg (vorbis/opus) file into mono 16 kHz
// float32 samples in [-1, 1]. The container is picked by extension, falling
// back to magic-byte sniffing.
func DecodeFile(_ context.Context, path string, opt Options) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw pcm
	switch sniffFormat(f, filepath.Ext(path)) {
	case formatWAV:
		raw, err = decodeWAV(f)
	case formatMP3:
		raw, err = decodeMP3(f)
	case formatOgg:
		raw, err = decodeOgg(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: wav/mp3/ogg)", path)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return toMono16k(raw, opt), nil
}

func sniffFormat(f *os.File, ext string) format {
	switch strings.ToLower(ext) {
	case ".wav":
		return formatWAV
	case ".mp3":
		return formatMP3
	case ".ogg", ".oga":
		return formatOgg
	}
	br := bufio.NewReader(f)
	magic, _ := br.Peek(4)
	_, _ = f.Seek(0, io.SeekStart)
	switch string(magic) {
	case "RIFF":
		return formatWAV
	case "OggS":
		return formatOgg
	}
	if len(magic) >= 3 && string(magic[:3]) == "ID3" {
		return formatMP3
	}
	return formatUnknown
}

// toMono16k downmixes, resamples and truncates decoder output.
func toMono16k(raw pcm, opt Options) []float32 {
	x := raw.samples
	if raw.channels > 1 {
		x = downmix(x, raw.channels)
	}
	if raw.rate != TargetRate && raw.rate > 0 {
		x = resampleLinear(x, raw.rate, TargetRate)
	}
	if opt.MaxSamples > 0 && len(x) > opt.MaxSamples {
		x = x[:opt.MaxSamples]
	}
	return x
}

func decodeWAV(r io.ReadSeeker) (pcm, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return pcm{}, errors.New("invalid wav")
	}
	pb, err := dec.FullPCMBuffer()
	if err != nil {
		return pcm{}, err
	}
	if pb == nil || pb.Data == nil {
		return pcm{}, errors.New("empty wav")
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	out := pcm{
		samples:  intToFloat32(pb.Data, bitDepth),
		rate:     44100,
		channels: 1,
	}
	if pb.Format != nil {
		if pb.Format.SampleRate > 0 {
			out.rate = pb.Format.SampleRate
		}
		if pb.Format.NumChannels > 0 {
			out.channels = pb.Format.NumChannels
		}
	}
	return out, nil
}

func decodeMP3(r io.Reader) (pcm, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return pcm{}, err
	}
	var raw bytes.Buffer
	if _, err := io.Copy(&raw, dec); err != nil {
		return pcm{}, err
	}
	ints := make([]int16, raw.Len()/2)
	if err := binary.Read(bytes.NewReader(raw.Bytes()), binary.LittleEndian, &ints); err != nil {
		return pcm{}, err
	}
	rate := dec.SampleRate()
	if rate <= 0 {
		rate = 44100
	}
	// The decoder always emits interleaved stereo.
	return pcm{samples: int16ToFloat32(ints), rate: rate, channels: 2}, nil
}

// decodeOgg tries Vorbis first and falls back to Opus.
func decodeOgg(f *os.File) (pcm, error) {
	if out, err := decodeOggVorbis(f); err == nil {
		return out, nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return pcm{}, err
	}
	out, err := decodeOggOpus(f)
	if err != nil {
		return pcm{}, fmt.Errorf("not decodable as Vorbis or Opus: %w", err)
	}
	return out, nil
}

func decodeOggVorbis(r io.Reader) (pcm, error) {
	samples, info, err := oggvorbis.ReadAll(r)
	if err != nil {
		return pcm{}, err
	}
	if info == nil || info.Channels <= 0 || info.SampleRate <= 0 {
		return pcm{}, errors.New("invalid ogg/vorbis stream")
	}
	return pcm{samples: samples, rate: info.SampleRate, channels: info.Channels}, nil
}

func decodeOggOpus(rs io.ReadSeeker) (pcm, error) {
	dec, err := popus.NewDecoder(rs)
	if err != nil {
		return pcm{}, err
	}
	defer dec.Destroy()

	ch := dec.ChannelCount()
	if ch <= 0 {
		ch = 1
	}

	// Opus always decodes at 48 kHz; read in ~0.5s chunks.
	var samples []float32
	buf := make([]int16, 48_000*ch/2)
	for {
		n, err := dec.Read(buf) // n = samples per channel
		if n > 0 {
			samples = append(samples, int16ToFloat32(buf[:n*ch])...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return pcm{}, err
		}
	}
	return pcm{samples: samples, rate: 48000, channels: ch}, nil
}

func intToFloat32(data []int, bitDepth int) []float32 {
	out := make([]float32, len(data))
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))
	for i, v := range data {
		out[i] = float32(clamp(float64(v)*scale, -1.0, 1.0))
	}
	return out
}

func int16ToFloat32(data []int16) []float32 {
	out := make([]float32, len(data))
	const scale = 1.0 / 32768.0
	for i, v := range data {
		out[i] = float32(float64(v) * scale)
	}
	return out
}

func downmix(in []float32, channels int) []float32 {
	if channels <= 1 {
		return in
	}
	frames := len(in) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		base := i * channels
		for c := 0; c < channels; c++ {
			sum += float64(in[base+c])
		}
		out[i] = float32(sum / float64(channels))
	}
	return out
}

func resampleLinear(in []float32, inRate, outRate int) []float32 {
	if inRate == outRate || len(in) == 0 {
		return in
	}
	ratio := float64(outRate) / float64(inRate)
	n := int(math.Ceil(float64(len(in)) * ratio))
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		src := float64(i) / ratio
		i0 := int(math.Floor(src))
		i1 := i0 + 1
		if i0 >= len(in) {
			out[i] = in[len(in)-1]
			continue
		}
		if i1 >= len(in) {
			out[i] = in[i0]
			continue
		}
		a := float32(src - float64(i0))
		out[i] = in[i0]*(1-a) + in[i1]*a
	}
	return out
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
