package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# voice name or weighted mix (e.g. "af_sky.8+af_bella.2")
voice: "af_sky"
# speech speed multiplier (1.0 = normal)
speed: 1.0
# output gain multiplier, applied with clipping
gain: 1.0
# phonemizer language
lang: "en"
# playback volume (0.0 to 2.0)
volume: 0.8

# character budget for a long-form synthesis chunk
max_chunk_chars: 180
# character budget for a streaming chunk
stream_chunk_chars: 50
# synthesized chunks buffered ahead of playback
queue_depth: 3

# model file locations; empty values resolve to the user cache directory
# model_path: "/path/to/kokoro.onnx"
# voices_path: "/path/to/voices.bin"

# espeak-ng binary used for phonemization
espeak_binary: "espeak-ng"
# onnxruntime shared library; empty autodetects
# onnx_library: "/usr/local/lib/libonnxruntime.so"

# verbose logging
debug: false
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the kokogo config file",
	Long:    "\nEdit the kokogo config file. We'll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.",
	Example: "kokogo config\nkokogo config --config path/to/config.yml",
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("Kokogo", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
