package playback

import (
	"testing"
	"time"

	"github.com/llehouerou/tunebrew/internal/player"
)

func TestSeekTarget(t *testing.T) {
	tests := []struct {
		name   string
		f      float64
		d      time.Duration
		want   time.Duration
		wantOK bool
	}{
		{"unknown duration", 0.5, 0, 0, false},
		{"middle", 0.5, 4 * time.Minute, 2 * time.Minute, true},
		{"below range", -0.3, time.Minute, 0, true},
		{"above range", 7, time.Minute, time.Minute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := seekTarget(tt.f, tt.d)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("seekTarget(%v, %v) = %v, %v; want %v, %v", tt.f, tt.d, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestProgress_Apply(t *testing.T) {
	p := Progress{}

	if !p.apply(player.Event{Kind: player.EventDurationChange, Duration: time.Minute}) {
		t.Error("duration change should report a change")
	}
	if p.apply(player.Event{Kind: player.EventDurationChange, Duration: time.Minute}) {
		t.Error("same duration should not report a change")
	}
	if !p.apply(player.Event{Kind: player.EventTimeUpdate, Position: 5 * time.Second}) {
		t.Error("time update should report a change")
	}
	if !p.apply(player.Event{Kind: player.EventEnded}) {
		t.Error("ended should rewind")
	}

	want := Progress{Duration: time.Minute}
	if p != want {
		t.Errorf("Progress = %+v, want %+v", p, want)
	}
}
