// Package wavio reads and writes 16-bit mono PCM WAV files from float32
// sample buffers in the [-1, 1] range.
package wavio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const bitDepth = 16

// Decode reads a WAV stream and returns its samples as float32 along with
// the source sample rate. Multi-channel input is mixed down by taking the
// first channel.
func Decode(r io.ReadSeeker) ([]float32, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, errors.New("not a valid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("reading pcm data: %w", err)
	}
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	depth := buf.SourceBitDepth
	if depth <= 0 {
		depth = bitDepth
	}
	scale := float32(int(1) << (depth - 1))
	samples := make([]float32, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		samples = append(samples, float32(buf.Data[i])/scale)
	}
	return samples, buf.Format.SampleRate, nil
}

// DecodeFile reads a WAV file from disk.
func DecodeFile(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening wav file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes samples as a 16-bit mono WAV file to ws.
func Encode(ws io.WriteSeeker, samples []float32, sampleRate int) error {
	enc := wav.NewEncoder(ws, sampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		buf.Data[i] = int(s * (1<<(bitDepth-1) - 1))
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing pcm data: %w", err)
	}
	return enc.Close()
}

// Bytes encodes samples as an in-memory WAV file.
func Bytes(samples []float32, sampleRate int) ([]byte, error) {
	var bs bufferSeeker
	if err := Encode(&bs, samples, sampleRate); err != nil {
		return nil, err
	}
	return bs.buf.Bytes(), nil
}

// Save writes samples to a WAV file at path, replacing any existing file.
func Save(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}
	if err := Encode(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// bufferSeeker is the minimal io.WriteSeeker the wav encoder needs to
// patch up chunk sizes after writing.
type bufferSeeker struct {
	buf bytes.Buffer
	pos int
}

func (b *bufferSeeker) Write(p []byte) (int, error) {
	if b.pos < b.buf.Len() {
		n := copy(b.buf.Bytes()[b.pos:], p)
		b.pos += n
		if n < len(p) {
			m, _ := b.buf.Write(p[n:])
			b.pos += m
		}
		return len(p), nil
	}
	n, err := b.buf.Write(p)
	b.pos += n
	return n, err
}

func (b *bufferSeeker) Seek(offset int64, whence int) (int64, error) {
	var abs int
	switch whence {
	case io.SeekStart:
		abs = int(offset)
	case io.SeekCurrent:
		abs = b.pos + int(offset)
	case io.SeekEnd:
		abs = b.buf.Len() + int(offset)
	default:
		return 0, errors.New("invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("negative seek position")
	}
	b.pos = abs
	return int64(abs), nil
}
