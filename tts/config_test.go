package tts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero speed", func(c *Config) { c.Speed = 0 }},
		{"negative speed", func(c *Config) { c.Speed = -1 }},
		{"zero chunk budget", func(c *Config) { c.MaxChunkChars = 0 }},
		{"zero stream budget", func(c *Config) { c.StreamChunkChars = 0 }},
		{"zero queue depth", func(c *Config) { c.QueueDepth = 0 }},
		{"volume too high", func(c *Config) { c.Volume = 3.0 }},
		{"negative volume", func(c *Config) { c.Volume = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestResolvePathsFillsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ResolvePaths()
	if !strings.HasSuffix(cfg.ModelPath, "kokoro.onnx") {
		t.Errorf("ModelPath = %q", cfg.ModelPath)
	}
	if !strings.HasSuffix(cfg.VoicesPath, "voices.bin") {
		t.Errorf("VoicesPath = %q", cfg.VoicesPath)
	}
}

func TestResolvePathsKeepsExplicitValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = "/opt/models/custom.onnx"
	cfg.ResolvePaths()
	if cfg.ModelPath != "/opt/models/custom.onnx" {
		t.Errorf("ModelPath = %q", cfg.ModelPath)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kokogo.yml")
	body := "voice: af_bella\nspeed: 1.4\nmax_chunk_chars: 90\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Voice != "af_bella" || cfg.Speed != 1.4 || cfg.MaxChunkChars != 90 {
		t.Errorf("cfg = %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.QueueDepth != defaultQueueDepth {
		t.Errorf("QueueDepth = %d", cfg.QueueDepth)
	}
}

func TestLoadConfigFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kokogo.yml")
	if err := os.WriteFile(path, []byte("speed: -2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFile(path); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestClampSpeed(t *testing.T) {
	tests := []struct {
		user float64
		want float32
	}{
		{1.0, 0.65},
		{0.1, 0.35},
		{10.0, 2.2},
		{0, 0.65},
		{-2, 0.65},
	}
	for _, tt := range tests {
		if got := clampSpeed(tt.user); got != tt.want {
			t.Errorf("clampSpeed(%v) = %v, want %v", tt.user, got, tt.want)
		}
	}
}
