package player

import (
	"context"
	"testing"
	"time"
)

func loadedMock(t *testing.T) (*Mock, Handle) {
	t.Helper()
	m := NewMock()
	m.SetSourceDuration("a.mp3", 200*time.Second)
	h := m.SetSource("a.mp3")
	if _, err := m.Load(context.Background(), h); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.Play(h); err != nil {
		t.Fatalf("Play: %v", err)
	}
	return m, h
}

func TestMock_PlayAfterEndRestarts(t *testing.T) {
	m, h := loadedMock(t)
	m.Emit(Event{Handle: h, Kind: EventEnded})

	if err := m.Play(h); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if got := m.Position(); got != 0 {
		t.Errorf("Position() = %v, want 0", got)
	}
}

func TestMock_SeekAfterEndResumesThere(t *testing.T) {
	m, h := loadedMock(t)
	m.Emit(Event{Handle: h, Kind: EventEnded})

	m.SeekTo(100 * time.Second)
	if err := m.Play(h); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if got := m.Position(); got != 100*time.Second {
		t.Errorf("Position() = %v, want 100s", got)
	}
	if m.State() != Playing {
		t.Errorf("State() = %v, want playing", m.State())
	}
}
