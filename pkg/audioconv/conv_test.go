package audioconv

import (
	"math"
	"testing"
)

func TestDownmix(t *testing.T) {
	in := []float32{1, 0, 0.5, 0.5, -1, 1}
	got := downmix(in, 2)
	want := []float32{0.5, 0.5, 0}
	if len(got) != len(want) {
		t.Fatalf("downmix length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("downmix[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDownmixMonoPassthrough(t *testing.T) {
	in := []float32{0.1, 0.2}
	got := downmix(in, 1)
	if &got[0] != &in[0] {
		t.Error("mono input should pass through unchanged")
	}
}

func TestResampleLinear(t *testing.T) {
	in := []float32{0, 1, 0, -1}
	if got := resampleLinear(in, 16000, 16000); &got[0] != &in[0] {
		t.Error("same-rate input should pass through unchanged")
	}

	got := resampleLinear(in, 32000, 16000)
	if len(got) != 2 {
		t.Fatalf("downsample length = %d, want 2", len(got))
	}
	if got[0] != 0 || got[1] != 0 {
		t.Errorf("downsample = %v", got)
	}

	up := resampleLinear([]float32{0, 1}, 8000, 16000)
	if len(up) != 4 {
		t.Fatalf("upsample length = %d, want 4", len(up))
	}
	if math.Abs(float64(up[1]-0.5)) > 1e-6 {
		t.Errorf("upsample midpoint = %v, want 0.5", up[1])
	}
}

func TestInt16ToFloat32(t *testing.T) {
	got := int16ToFloat32([]int16{0, 16384, -32768})
	want := []float32{0, 0.5, -1}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestToMono16kTruncates(t *testing.T) {
	raw := pcm{samples: make([]float32, 100), rate: TargetRate, channels: 1}
	got := toMono16k(raw, Options{MaxSamples: 10})
	if len(got) != 10 {
		t.Errorf("truncated length = %d, want 10", len(got))
	}
}
