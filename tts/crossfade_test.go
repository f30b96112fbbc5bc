package tts

import (
	"math"
	"testing"
)

func TestCrossfadeSamples(t *testing.T) {
	if got := CrossfadeSamples(SampleRate); got != 1080 {
		t.Errorf("CrossfadeSamples(%d) = %d, want 1080", SampleRate, got)
	}
}

func TestAppendCrossfadeBlendsTail(t *testing.T) {
	a := []float32{1, 1, 1}
	b := []float32{0, 0, 0}
	out := appendCrossfade(a, b, 2)

	if len(out) != 4 {
		t.Fatalf("len = %d, want 4", len(out))
	}
	// First sample untouched, fade runs across the overlap, last sample is
	// fully the new segment.
	if out[0] != 1 {
		t.Errorf("out[0] = %f, want 1", out[0])
	}
	if out[len(out)-1] != 0 {
		t.Errorf("out[last] = %f, want 0", out[len(out)-1])
	}
	for i := 1; i < len(out); i++ {
		if out[i] > out[i-1] {
			t.Errorf("fade not monotonic at %d: %v", i, out)
		}
	}
}

func TestAppendCrossfadeEmptyAccumulator(t *testing.T) {
	out := appendCrossfade(nil, []float32{0.5, 0.5}, 100)
	if len(out) != 2 || out[0] != 0.5 {
		t.Errorf("expected plain append, got %v", out)
	}
}

func TestAppendCrossfadeCapsOverlap(t *testing.T) {
	a := []float32{1}
	b := []float32{0, 0, 0}
	out := appendCrossfade(a, b, 10)
	if len(out) != 3 {
		t.Errorf("len = %d, want 3", len(out))
	}
}

func TestAmplifyClips(t *testing.T) {
	out := Amplify([]float32{0.9, -0.9, 0.1}, 2)
	want := []float32{1, -1, 0.2}
	for i := range want {
		if math.Abs(float64(out[i]-want[i])) > 1e-6 {
			t.Errorf("out[%d] = %f, want %f", i, out[i], want[i])
		}
	}
}

func TestAmplifyDoesNotMutateInput(t *testing.T) {
	in := []float32{0.5}
	Amplify(in, 2)
	if in[0] != 0.5 {
		t.Errorf("input mutated: %f", in[0])
	}
}
