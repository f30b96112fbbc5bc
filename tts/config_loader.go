package tts

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// LoadConfigFromViper builds an engine configuration from the CLI's viper
// instance layered over defaults, then applies environment overrides.
func LoadConfigFromViper() (Config, error) {
	cfg := DefaultConfig()

	if viper.IsSet("model_path") {
		cfg.ModelPath = viper.GetString("model_path")
	}
	if viper.IsSet("voices_path") {
		cfg.VoicesPath = viper.GetString("voices_path")
	}
	if viper.IsSet("voice") {
		cfg.Voice = viper.GetString("voice")
	}
	if viper.IsSet("speed") {
		cfg.Speed = viper.GetFloat64("speed")
	}
	if viper.IsSet("gain") {
		cfg.Gain = viper.GetFloat64("gain")
	}
	if viper.IsSet("lang") {
		cfg.Lang = viper.GetString("lang")
	}
	if viper.IsSet("max_chunk_chars") {
		cfg.MaxChunkChars = viper.GetInt("max_chunk_chars")
	}
	if viper.IsSet("stream_chunk_chars") {
		cfg.StreamChunkChars = viper.GetInt("stream_chunk_chars")
	}
	if viper.IsSet("queue_depth") {
		cfg.QueueDepth = viper.GetInt("queue_depth")
	}
	if viper.IsSet("volume") {
		cfg.Volume = viper.GetFloat64("volume")
	}
	if viper.IsSet("espeak_binary") {
		cfg.EspeakBinary = viper.GetString("espeak_binary")
	}
	if viper.IsSet("onnx_library") {
		cfg.OnnxLibrary = viper.GetString("onnx_library")
	}
	if viper.IsSet("debug") {
		cfg.Debug = viper.GetBool("debug")
	}

	// Environment variables win over the config file.
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
