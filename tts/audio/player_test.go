package audio

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestEncodePCM(t *testing.T) {
	pcm := encodePCM([]float32{0, 1, -1, 0.5}, 1.0)
	if len(pcm) != 8 {
		t.Fatalf("len = %d, want 8", len(pcm))
	}
	read := func(i int) int16 {
		return int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}
	if read(0) != 0 {
		t.Errorf("sample 0 = %d, want 0", read(0))
	}
	if read(1) != 32767 {
		t.Errorf("sample 1 = %d, want 32767", read(1))
	}
	if read(2) != -32767 {
		t.Errorf("sample 2 = %d, want -32767", read(2))
	}
	if got := read(3); got < 16000 || got > 16767 {
		t.Errorf("sample 3 = %d, want ~16384", got)
	}
}

func TestEncodePCMVolumeClips(t *testing.T) {
	pcm := encodePCM([]float32{0.9}, 2.0)
	got := int16(binary.LittleEndian.Uint16(pcm))
	if got != 32767 {
		t.Errorf("overdriven sample = %d, want 32767", got)
	}
}

func TestMockPlayerRecords(t *testing.T) {
	m := NewMockPlayer()
	if err := m.Play([]float32{0.1, 0.2}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	played := m.Played()
	if len(played) != 1 || len(played[0]) != 2 {
		t.Fatalf("Played() = %v", played)
	}

	m.SetVolume(0.4)
	if m.Volume() != 0.4 {
		t.Errorf("Volume() = %v", m.Volume())
	}
}

func TestMockPlayerFailure(t *testing.T) {
	m := NewMockPlayer()
	want := errors.New("boom")
	m.FailWith(want)
	if err := m.Play([]float32{0.1}); !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
	if len(m.Played()) != 0 {
		t.Error("failed play was recorded")
	}
}

func TestMockPlayerClosed(t *testing.T) {
	m := NewMockPlayer()
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := m.Play([]float32{0.1}); err == nil {
		t.Error("expected error after Close")
	}
}
