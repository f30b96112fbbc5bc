// Package modelfile downloads and caches the voice model files.
package modelfile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Published model artifact locations.
const (
	ModelURL  = "https://github.com/8b-is/kokoro-tiny/raw/main/models/0.onnx"
	VoicesURL = "https://github.com/8b-is/kokoro-tiny/raw/main/models/0.bin"
)

var client = &http.Client{Timeout: 10 * time.Minute}

// Exists reports whether path is a non-empty regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}

// Fetch downloads url to path atomically: the payload lands in a
// temporary file in the same directory and is renamed into place only
// after a complete download.
func Fetch(ctx context.Context, url, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	log.Info("downloading model file", "url", url)
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".download-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if written == 0 {
		return fmt.Errorf("downloading %s: empty response body", url)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("moving download into place: %w", err)
	}
	log.Info("model file ready", "path", path, "bytes", written)
	return nil
}

// Ensure downloads the model and voice files to their configured paths
// unless they are already present.
func Ensure(ctx context.Context, modelPath, voicesPath string) error {
	if !Exists(modelPath) {
		if err := Fetch(ctx, ModelURL, modelPath); err != nil {
			return err
		}
	}
	if !Exists(voicesPath) {
		if err := Fetch(ctx, VoicesURL, voicesPath); err != nil {
			return err
		}
	}
	return nil
}
