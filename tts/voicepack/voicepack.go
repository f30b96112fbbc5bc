// Package voicepack loads voice style vectors from NPZ archives. An NPZ
// file is a zip archive whose entries are .npy arrays; each entry holds
// one voice's style embedding, keyed by the entry name without the
// extension.
package voicepack

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"
)

var npyMagic = []byte("\x93NUMPY")

// ErrNoVoices means the archive opened fine but contained no usable
// arrays.
var ErrNoVoices = errors.New("voicepack: no voices in archive")

// Load reads an NPZ voice archive from path.
func Load(path string) (map[string][]float32, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening voice archive: %w", err)
	}
	defer r.Close()

	voices := make(map[string][]float32, len(r.File))
	for _, f := range r.File {
		name := strings.TrimSuffix(f.Name, ".npy")
		vector, err := readEntry(f)
		if err != nil {
			log.Warn("skipping voice entry", "name", f.Name, "err", err)
			continue
		}
		voices[name] = vector
	}
	if len(voices) == 0 {
		return nil, ErrNoVoices
	}
	log.Debug("voice archive loaded", "path", path, "voices", len(voices))
	return voices, nil
}

// LoadBytes reads an NPZ voice archive held in memory.
func LoadBytes(data []byte) (map[string][]float32, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening voice archive: %w", err)
	}

	voices := make(map[string][]float32, len(r.File))
	for _, f := range r.File {
		name := strings.TrimSuffix(f.Name, ".npy")
		vector, err := readEntry(f)
		if err != nil {
			log.Warn("skipping voice entry", "name", f.Name, "err", err)
			continue
		}
		voices[name] = vector
	}
	if len(voices) == 0 {
		return nil, ErrNoVoices
	}
	return voices, nil
}

func readEntry(f *zip.File) ([]float32, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return parseNPY(data)
}

// parseNPY decodes a version 1.x .npy payload of little-endian float32
// values, flattening any shape.
func parseNPY(data []byte) ([]float32, error) {
	if len(data) < 10 || string(data[:6]) != string(npyMagic) {
		return nil, errors.New("not an npy array")
	}
	major := data[6]
	var headerLen, headerStart int
	switch major {
	case 1:
		headerLen = int(binary.LittleEndian.Uint16(data[8:10]))
		headerStart = 10
	case 2, 3:
		if len(data) < 12 {
			return nil, errors.New("truncated npy header")
		}
		headerLen = int(binary.LittleEndian.Uint32(data[8:12]))
		headerStart = 12
	default:
		return nil, fmt.Errorf("unsupported npy version %d", major)
	}
	if len(data) < headerStart+headerLen {
		return nil, errors.New("truncated npy header")
	}
	header := string(data[headerStart : headerStart+headerLen])
	if !strings.Contains(header, "'descr': '<f4'") && !strings.Contains(header, `"descr": "<f4"`) {
		return nil, fmt.Errorf("unsupported dtype in header %q", header)
	}
	if strings.Contains(header, "'fortran_order': True") {
		return nil, errors.New("fortran-ordered arrays not supported")
	}

	payload := data[headerStart+headerLen:]
	if len(payload)%4 != 0 {
		return nil, errors.New("payload length not a multiple of 4")
	}
	out := make([]float32, len(payload)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[i*4:]))
	}
	return out, nil
}
