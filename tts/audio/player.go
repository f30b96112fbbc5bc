// Package audio plays mono float32 sample buffers on the system audio
// device using oto/v3.
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player owns a single oto context. Contexts are expensive and some
// platforms allow only one per process, so a Player should be created once
// and reused for the life of the program.
type Player struct {
	context *oto.Context

	mu         sync.Mutex
	volume     float64
	sampleRate int
	closed     bool
}

// NewPlayer opens the system audio device for mono 16-bit output at the
// given sample rate and blocks until the device is ready.
func NewPlayer(sampleRate int) (*Player, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	return &Player{
		context:    ctx,
		volume:     1.0,
		sampleRate: sampleRate,
	}, nil
}

// Play converts samples to 16-bit PCM and plays them, blocking until the
// device drains the buffer.
func (p *Player) Play(samples []float32) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return errors.New("player is closed")
	}
	volume := p.volume
	p.mu.Unlock()

	if len(samples) == 0 {
		return nil
	}

	pcm := encodePCM(samples, volume)
	player := p.context.NewPlayer(bytes.NewReader(pcm))
	defer player.Close()

	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

// SetVolume sets the linear playback volume in [0, 2]. Values outside the
// range are clamped.
func (p *Player) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 2 {
		volume = 2
	}
	p.mu.Lock()
	p.volume = volume
	p.mu.Unlock()
}

// Close marks the player unusable. The underlying oto context has no close
// call; it lives until process exit.
func (p *Player) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// encodePCM converts float32 samples in [-1, 1] to 16-bit little-endian
// PCM, applying the volume multiplier with clipping.
func encodePCM(samples []float32, volume float64) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := float64(s) * volume
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(math.Round(v*32767))))
	}
	return out
}
