package onnx

import (
	"runtime"
	"strings"
	"testing"
)

func TestDefaultLibraryPath(t *testing.T) {
	path := defaultLibraryPath()
	if path == "" {
		t.Fatal("empty library path")
	}
	switch runtime.GOOS {
	case "darwin":
		if !strings.HasSuffix(path, ".dylib") {
			t.Errorf("path = %q, want a .dylib", path)
		}
	case "windows":
		if !strings.HasSuffix(path, ".dll") {
			t.Errorf("path = %q, want a .dll", path)
		}
	default:
		if !strings.HasSuffix(path, ".so") {
			t.Errorf("path = %q, want a .so", path)
		}
	}
}

func TestOpenMissingModel(t *testing.T) {
	if _, err := Open("/nonexistent/model.onnx"); err == nil {
		t.Error("expected error for missing model file")
	}
}

func TestCloseNilSession(t *testing.T) {
	s := &Session{}
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
