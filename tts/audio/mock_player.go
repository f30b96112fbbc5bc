package audio

import (
	"errors"
	"sync"
	"time"
)

// MockPlayer simulates playback without a sound device. Tests use it to
// observe what would have been played and to control playback timing.
type MockPlayer struct {
	mu      sync.Mutex
	volume  float64
	played  [][]float32
	closed  bool
	playErr error

	// PlayDelay, when set, makes Play block for the given duration to
	// simulate real playback time.
	PlayDelay time.Duration
}

// NewMockPlayer returns a mock player at full volume.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{volume: 1.0}
}

// Play records the buffer and optionally sleeps for PlayDelay.
func (m *MockPlayer) Play(samples []float32) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return errors.New("player is closed")
	}
	err := m.playErr
	if err == nil {
		buf := make([]float32, len(samples))
		copy(buf, samples)
		m.played = append(m.played, buf)
	}
	delay := m.PlayDelay
	m.mu.Unlock()

	if err != nil {
		return err
	}
	if delay > 0 {
		time.Sleep(delay)
	}
	return nil
}

// SetVolume records the requested volume.
func (m *MockPlayer) SetVolume(volume float64) {
	m.mu.Lock()
	m.volume = volume
	m.mu.Unlock()
}

// Close marks the player closed; further Play calls fail.
func (m *MockPlayer) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// FailWith makes subsequent Play calls return err.
func (m *MockPlayer) FailWith(err error) {
	m.mu.Lock()
	m.playErr = err
	m.mu.Unlock()
}

// Played returns copies of every buffer handed to Play.
func (m *MockPlayer) Played() [][]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]float32, len(m.played))
	copy(out, m.played)
	return out
}

// Volume returns the last volume set.
func (m *MockPlayer) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}
