package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunebrew/internal/playback"
	"github.com/llehouerou/tunebrew/internal/track"
)

func testState(phase playback.Phase, lyric string) State {
	d := &track.Descriptor{
		ID: "req-1", Version: 1, Title: "Rain VER 1", Artist: "이수", Lyric: lyric,
		AudioURL: "https://cdn/1.mp3",
	}
	return State{
		Snapshot: playback.Snapshot{
			Phase:    phase,
			State:    playback.PlayerState{IsPlaying: phase == playback.PhasePlaying, Current: d},
			Progress: playback.Progress{Position: 83 * time.Second, Duration: 4*time.Minute + 5*time.Second},
		},
		Volume:   0.8,
		CanShare: true,
	}
}

func TestRender_EmptyWithoutTrack(t *testing.T) {
	if got := Render(State{}, 80); got != "" {
		t.Errorf("Render() without track = %q, want empty", got)
	}
	if got := RenderExpanded(State{}, "", 80); got != "" {
		t.Errorf("RenderExpanded() without track = %q, want empty", got)
	}
}

func TestRender_Minimized(t *testing.T) {
	got := Render(testState(playback.PhasePlaying, ""), 100)

	for _, want := range []string{"Rain VER 1", "이수", playSymbol, "1:23 / 4:05", "vol  80%", unlikedSymbol} {
		if !strings.Contains(got, want) {
			t.Errorf("minimized bar missing %q:\n%s", want, got)
		}
	}
	if h := lipgloss.Height(got); h != MinimizedHeight {
		t.Errorf("height = %d, want %d", h, MinimizedHeight)
	}
	if w := lipgloss.Width(got); w > 100 {
		t.Errorf("width = %d, want at most 100", w)
	}
}

func TestRender_StatusSymbol(t *testing.T) {
	tests := []struct {
		phase playback.Phase
		want  string
	}{
		{playback.PhasePlaying, playSymbol},
		{playback.PhasePaused, pauseSymbol},
		{playback.PhaseLoading, loadingSymbol},
	}
	for _, tt := range tests {
		if got := statusSymbol(tt.phase); got != tt.want {
			t.Errorf("statusSymbol(%v) = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestRender_Liked(t *testing.T) {
	s := testState(playback.PhasePaused, "")
	s.Liked = true
	if got := Render(s, 100); !strings.Contains(got, likedSymbol) {
		t.Errorf("liked track should show %q:\n%s", likedSymbol, got)
	}
}

func TestRenderExpanded(t *testing.T) {
	s := testState(playback.PhasePaused, "first line\nsecond line")
	got := RenderExpanded(s, LyricsText(s.State.Current), 80)

	for _, want := range []string{"Rain VER 1", "이수", "first line", "second line", "s share", "f like", "1:23", "4:05", "♪"} {
		if !strings.Contains(got, want) {
			t.Errorf("expanded view missing %q:\n%s", want, got)
		}
	}
}

func TestRenderExpanded_ShareOff(t *testing.T) {
	s := testState(playback.PhasePaused, "")
	s.CanShare = false
	if got := RenderExpanded(s, "", 80); !strings.Contains(got, "share off") {
		t.Errorf("expanded view should mark sharing off:\n%s", got)
	}
}

func TestRenderExpanded_NarrowFallsBack(t *testing.T) {
	s := testState(playback.PhasePlaying, "")
	if got := RenderExpanded(s, "lyrics", 30); lipgloss.Height(got) != MinimizedHeight {
		t.Errorf("narrow expanded view should fall back to the bar:\n%s", got)
	}
}

func TestLyricsText(t *testing.T) {
	if got := LyricsText(nil); got != noLyrics {
		t.Errorf("LyricsText(nil) = %q", got)
	}
	if got := LyricsText(&track.Descriptor{Lyric: "  \n"}); got != noLyrics {
		t.Errorf("blank lyrics = %q", got)
	}
	if got := LyricsText(&track.Descriptor{Lyric: "a\r\nb\n"}); got != "a\nb" {
		t.Errorf("LyricsText() = %q, want %q", got, "a\nb")
	}
}

func TestRenderProgressBar(t *testing.T) {
	got := RenderProgressBar(30*time.Second, time.Minute, 30, playSymbol)
	if lipgloss.Width(got) != 30 {
		t.Errorf("width = %d, want 30: %q", lipgloss.Width(got), got)
	}
	if !strings.HasPrefix(got, playSymbol+"  0:30") || !strings.HasSuffix(got, "1:00") {
		t.Errorf("progress bar = %q", got)
	}

	narrow := RenderProgressBar(30*time.Second, time.Minute, 10, pauseSymbol)
	if narrow != pauseSymbol+"  0:30 / 1:00" {
		t.Errorf("narrow progress bar = %q", narrow)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{61 * time.Second, "1:01"},
		{12*time.Minute + 3*time.Second, "12:03"},
		{-time.Second, "0:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRenderVolume(t *testing.T) {
	if got := RenderVolume(1, false); got != "vol 100%" {
		t.Errorf("RenderVolume(1) = %q", got)
	}
	if got := RenderVolume(0.5, true); got != "mute" {
		t.Errorf("RenderVolume muted = %q", got)
	}
}
