// Package onnx wraps the ONNX Runtime session for the kokoro voice model.
// The runtime is loaded as a shared library, so the environment must be
// initialized once before any session is opened.
package onnx

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	ort "github.com/yalue/onnxruntime_go"
)

// Model input and output names, fixed by the exported graph.
var (
	inputNames  = []string{"tokens", "style", "speed"}
	outputNames = []string{"audio"}
)

var (
	initOnce sync.Once
	initErr  error
)

// Initialize loads the ONNX Runtime shared library and sets up its
// environment. It is safe to call more than once; only the first call
// does work. An empty libraryPath falls back to the ONNXRUNTIME_LIB_PATH
// environment variable, then to the platform's usual install locations.
func Initialize(libraryPath string) error {
	initOnce.Do(func() {
		path := libraryPath
		if path == "" {
			path = os.Getenv("ONNXRUNTIME_LIB_PATH")
		}
		if path == "" {
			path = defaultLibraryPath()
		}
		ort.SetSharedLibraryPath(path)
		if err := ort.InitializeEnvironment(); err != nil {
			initErr = fmt.Errorf("initializing onnx runtime from %q: %w", path, err)
			return
		}
		log.Debug("onnx runtime initialized", "library", path)
	})
	return initErr
}

func defaultLibraryPath() string {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{
			"/usr/local/lib/libonnxruntime.dylib",
			"/opt/homebrew/lib/libonnxruntime.dylib",
		}
	case "windows":
		candidates = []string{"onnxruntime.dll"}
	default:
		candidates = []string{
			"/usr/local/lib/libonnxruntime.so",
			"/usr/lib/libonnxruntime.so",
		}
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return candidates[0]
}

// Session runs the kokoro model. It is not safe for concurrent Run calls;
// callers serialize access.
type Session struct {
	session *ort.DynamicAdvancedSession
}

// Open loads the model at modelPath into a new inference session. The
// runtime environment must already be initialized.
func Open(modelPath string) (*Session, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}
	session, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, outputNames, nil)
	if err != nil {
		return nil, fmt.Errorf("loading model %q: %w", modelPath, err)
	}
	log.Debug("model session opened", "path", modelPath)
	return &Session{session: session}, nil
}

// Infer runs one synthesis pass: a [1, len(tokens)] token tensor, a
// [1, len(style)] style tensor and a scalar speed produce a mono sample
// buffer.
func (s *Session) Infer(tokens []int64, style []float32, speed float32) ([]float32, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty token sequence")
	}

	tokenTensor, err := ort.NewTensor(ort.NewShape(1, int64(len(tokens))), tokens)
	if err != nil {
		return nil, fmt.Errorf("creating token tensor: %w", err)
	}
	defer tokenTensor.Destroy()

	styleTensor, err := ort.NewTensor(ort.NewShape(1, int64(len(style))), style)
	if err != nil {
		return nil, fmt.Errorf("creating style tensor: %w", err)
	}
	defer styleTensor.Destroy()

	speedTensor, err := ort.NewTensor(ort.NewShape(1), []float32{speed})
	if err != nil {
		return nil, fmt.Errorf("creating speed tensor: %w", err)
	}
	defer speedTensor.Destroy()

	outputs := []ort.Value{nil}
	err = s.session.Run([]ort.Value{tokenTensor, styleTensor, speedTensor}, outputs)
	if err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}
	audioTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type %T", outputs[0])
	}
	defer audioTensor.Destroy()

	data := audioTensor.GetData()
	audio := make([]float32, len(data))
	copy(audio, data)
	return audio, nil
}

// Close releases the session.
func (s *Session) Close() error {
	if s.session == nil {
		return nil
	}
	err := s.session.Destroy()
	s.session = nil
	return err
}
