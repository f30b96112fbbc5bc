package modelfile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()

	if Exists(filepath.Join(dir, "missing")) {
		t.Error("missing file reported as existing")
	}

	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if Exists(empty) {
		t.Error("empty file reported as existing")
	}

	full := filepath.Join(dir, "full")
	if err := os.WriteFile(full, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !Exists(full) {
		t.Error("non-empty file reported as missing")
	}
}

func TestFetchDownloadsAtomically(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("model bytes"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "cache", "model.onnx")
	if err := Fetch(context.Background(), srv.URL, path); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	if string(data) != "model bytes" {
		t.Errorf("content = %q", data)
	}

	// No leftover temp files.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("cache dir has %d entries, want 1", len(entries))
	}
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "model.onnx")
	if err := Fetch(context.Background(), srv.URL, path); err == nil {
		t.Error("expected error for 404")
	}
	if Exists(path) {
		t.Error("file created despite failed download")
	}
}

func TestFetchRejectsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "model.onnx")
	if err := Fetch(context.Background(), srv.URL, path); err == nil {
		t.Error("expected error for empty body")
	}
}

func TestEnsureSkipsPresentFiles(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.onnx")
	voicesPath := filepath.Join(dir, "voices.bin")
	if err := os.WriteFile(modelPath, []byte("cached"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(voicesPath, []byte("cached"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Ensure(context.Background(), modelPath, voicesPath); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if hits != 0 {
		t.Errorf("server hit %d times for cached files", hits)
	}
}
