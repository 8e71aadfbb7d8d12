// Package playerbar renders the now-playing surface: a one-line bar while
// minimized and a full panel with lyrics while expanded.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunebrew/internal/playback"
	"github.com/llehouerou/tunebrew/internal/ui/render"
	"github.com/llehouerou/tunebrew/internal/ui/styles"
)

const (
	playSymbol    = "▶"
	pauseSymbol   = "⏸"
	loadingSymbol = "…"
	likedSymbol   = "♥"
	unlikedSymbol = "♡"

	// MinimizedHeight is the bar plus its border.
	MinimizedHeight = 3
)

// State holds everything needed to render the player.
type State struct {
	playback.Snapshot
	Volume   float64
	Muted    bool
	CanShare bool
}

// Visible reports whether there is a track to show.
func (s State) Visible() bool {
	return s.State.Current != nil
}

// Render returns the minimized bar, or "" when nothing is loaded.
func Render(s State, width int) string {
	if !s.Visible() {
		return ""
	}

	innerWidth := max(width-6, 0)
	t := styles.T().S()
	cur := s.State.Current

	status := statusSymbol(s.Phase)
	timeStr := formatDuration(s.Progress.Position) + " / " + formatDuration(s.Progress.Duration)
	right := likeSymbol(s.Liked) + "  " + RenderVolume(s.Volume, s.Muted)

	sep := "   "
	fixed := lipgloss.Width(status) + 2 + len(sep)*3 + lipgloss.Width(timeStr) + lipgloss.Width(right)
	minBar := 10
	panel := t.Panel.Padding(0, 2).Width(max(width-2, 0))
	if innerWidth < fixed+minBar+10 {
		return panel.Render(status + " " + t.Playing.Render(render.Truncate(cur.Title, max(innerWidth-2, 1))))
	}
	avail := innerWidth - fixed - minBar

	title := render.Truncate(cur.Title, avail)
	artistWidth := avail - lipgloss.Width(title) - len(sep)
	var artist string
	if artistWidth > 3 && cur.Artist != "" {
		artist = render.Truncate(cur.Artist, artistWidth)
	}
	used := lipgloss.Width(title)
	if artist != "" {
		used += len(sep) + lipgloss.Width(artist)
	}
	barWidth := max(innerWidth-fixed-used, 5)

	var b strings.Builder
	b.WriteString(t.Playing.Render(title))
	if artist != "" {
		b.WriteString(sep)
		b.WriteString(t.Muted.Render(artist))
	}
	b.WriteString(sep)
	b.WriteString(status)
	b.WriteString("  ")
	b.WriteString(bar(s.Progress.Fraction(), barWidth, "━", "─"))
	b.WriteString(sep)
	b.WriteString(t.Muted.Render(timeStr))
	b.WriteString(sep)
	b.WriteString(right)

	return panel.Render(b.String())
}

func statusSymbol(p playback.Phase) string {
	switch p {
	case playback.PhasePlaying:
		return playSymbol
	case playback.PhaseLoading:
		return loadingSymbol
	case playback.PhaseEmpty, playback.PhasePaused:
		return pauseSymbol
	}
	return pauseSymbol
}

func likeSymbol(liked bool) string {
	if liked {
		return styles.T().S().Liked.Render(likedSymbol)
	}
	return styles.T().S().Subtle.Render(unlikedSymbol)
}

// bar draws a filled/empty bar of width cells for fraction f.
func bar(f float64, width int, filled, empty string) string {
	n := min(max(int(float64(width)*f), 0), width)
	t := styles.T().S()
	return t.Playing.Render(strings.Repeat(filled, n)) + t.Subtle.Render(strings.Repeat(empty, width-n))
}

func formatDuration(d time.Duration) string {
	d = max(d, 0)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
