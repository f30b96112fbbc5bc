package tts

import (
	"fmt"
	"os"
	"path/filepath"
)

// Model constants for the kokoro voice model.
const (
	// SampleRate is the model's output sample rate in Hz, mono.
	SampleRate = 24000

	// DefaultVoice is used when no voice specification is given.
	DefaultVoice = "af_sky"

	// DefaultSpeed is the user-facing normal speed.
	DefaultSpeed = 1.0

	// DefaultLang is the phonemizer language tag used when none is given.
	DefaultLang = "en"

	// speedScale maps user-facing speed onto the model's speed input
	// (user 1.0 = model 0.65).
	speedScale = 0.65

	// Model speed outside this range produces degenerate audio.
	minEngineSpeed = 0.35
	maxEngineSpeed = 2.2
)

// Config contains all engine configuration options.
type Config struct {
	// Model file locations. Empty values resolve to the shared cache
	// directory.
	ModelPath  string `yaml:"model_path" env:"KOKOGO_MODEL_PATH"`
	VoicesPath string `yaml:"voices_path" env:"KOKOGO_VOICES_PATH"`

	// Synthesis defaults
	Voice string  `yaml:"voice" env:"KOKOGO_VOICE"`
	Speed float64 `yaml:"speed" env:"KOKOGO_SPEED"`
	Gain  float64 `yaml:"gain" env:"KOKOGO_GAIN"`
	Lang  string  `yaml:"lang" env:"KOKOGO_LANG"`

	// Chunking
	MaxChunkChars int `yaml:"max_chunk_chars" env:"KOKOGO_MAX_CHUNK_CHARS"`

	// Streaming
	StreamChunkChars int     `yaml:"stream_chunk_chars" env:"KOKOGO_STREAM_CHUNK_CHARS"`
	QueueDepth       int     `yaml:"queue_depth" env:"KOKOGO_QUEUE_DEPTH"`
	Volume           float64 `yaml:"volume" env:"KOKOGO_VOLUME"`

	// Collaborators
	EspeakBinary string `yaml:"espeak_binary" env:"KOKOGO_ESPEAK_BINARY"`
	OnnxLibrary  string `yaml:"onnx_library" env:"KOKOGO_ONNX_LIBRARY"`

	// Debug enables verbose logging.
	Debug bool `yaml:"debug" env:"KOKOGO_DEBUG"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Voice:            DefaultVoice,
		Speed:            DefaultSpeed,
		Gain:             1.0,
		Lang:             DefaultLang,
		MaxChunkChars:    DefaultMaxChunkChars,
		StreamChunkChars: defaultStreamChunkChars,
		QueueDepth:       defaultQueueDepth,
		Volume:           0.8,
		EspeakBinary:     "espeak-ng",
	}
}

// Validate checks configuration values for consistency.
func (c Config) Validate() error {
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", c.Speed)
	}
	if c.MaxChunkChars < 1 {
		return fmt.Errorf("max_chunk_chars must be at least 1, got %d", c.MaxChunkChars)
	}
	if c.StreamChunkChars < 1 {
		return fmt.Errorf("stream_chunk_chars must be at least 1, got %d", c.StreamChunkChars)
	}
	if c.QueueDepth < 1 {
		return fmt.Errorf("queue_depth must be at least 1, got %d", c.QueueDepth)
	}
	if c.Volume < 0 || c.Volume > 2.0 {
		return fmt.Errorf("volume must be between 0.0 and 2.0, got %v", c.Volume)
	}
	return nil
}

// CacheDir returns the shared model cache directory, creating nothing.
func CacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "kokogo")
	}
	return filepath.Join(".", ".kokogo")
}

// ResolvePaths fills in default model file locations for any that are
// unset.
func (c *Config) ResolvePaths() {
	if c.ModelPath == "" {
		c.ModelPath = filepath.Join(CacheDir(), "kokoro.onnx")
	}
	if c.VoicesPath == "" {
		c.VoicesPath = filepath.Join(CacheDir(), "voices.bin")
	}
}
