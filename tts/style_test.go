package tts

import (
	"errors"
	"math"
	"testing"
)

func testVoiceTable() VoiceTable {
	sky := make([]float32, StyleDim)
	bella := make([]float32, StyleDim)
	for i := range sky {
		sky[i] = 1.0
		bella[i] = -1.0
	}
	return VoiceTable{"af_sky": sky, "af_bella": bella}
}

func TestResolveStyleSingleVoice(t *testing.T) {
	style, err := ResolveStyle(testVoiceTable(), "af_sky")
	if err != nil {
		t.Fatalf("ResolveStyle: %v", err)
	}
	if len(style) != StyleDim {
		t.Fatalf("style dim = %d, want %d", len(style), StyleDim)
	}
	if style[0] != 1.0 || style[StyleDim-1] != 1.0 {
		t.Errorf("expected unit style vector, got %f", style[0])
	}
}

func TestResolveStyleBlend(t *testing.T) {
	style, err := ResolveStyle(testVoiceTable(), "af_sky.8+af_bella.2")
	if err != nil {
		t.Fatalf("ResolveStyle: %v", err)
	}
	// 0.8*1.0 + 0.2*(-1.0) = 0.6
	if math.Abs(float64(style[0])-0.6) > 1e-6 {
		t.Errorf("blended style[0] = %f, want 0.6", style[0])
	}
}

func TestResolveStyleBlendOrthogonal(t *testing.T) {
	sky := make([]float32, StyleDim)
	bella := make([]float32, StyleDim)
	sky[0] = 1
	bella[1] = 1
	table := VoiceTable{"af_sky": sky, "af_bella": bella}

	style, err := ResolveStyle(table, "af_sky.8+af_bella.2")
	if err != nil {
		t.Fatalf("ResolveStyle: %v", err)
	}
	if math.Abs(float64(style[0])-0.8) > 1e-6 || math.Abs(float64(style[1])-0.2) > 1e-6 {
		t.Errorf("style[0:2] = %v, want [0.8 0.2]", style[:2])
	}
}

func TestResolveStyleUnknownVoice(t *testing.T) {
	_, err := ResolveStyle(testVoiceTable(), "af_nova")
	if !errors.Is(err, ErrVoiceNotFound) {
		t.Errorf("err = %v, want ErrVoiceNotFound", err)
	}
}

func TestResolveStyleMalformedSpec(t *testing.T) {
	for _, spec := range []string{"", "af_sky.x+af_bella.2", "af_sky.8+", ".5"} {
		if _, err := ResolveStyle(testVoiceTable(), spec); !errors.Is(err, ErrMalformedVoiceSpec) {
			t.Errorf("spec %q: err = %v, want ErrMalformedVoiceSpec", spec, err)
		}
	}
}

func TestResolveStyleTruncatesLongVectors(t *testing.T) {
	table := VoiceTable{"wide": make([]float32, StyleDim*4)}
	style, err := ResolveStyle(table, "wide")
	if err != nil {
		t.Fatalf("ResolveStyle: %v", err)
	}
	if len(style) != StyleDim {
		t.Errorf("style dim = %d, want %d", len(style), StyleDim)
	}
}
