package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunebrew/internal/track"
	"github.com/llehouerou/tunebrew/internal/ui/render"
	"github.com/llehouerou/tunebrew/internal/ui/styles"
)

const (
	artCols = 14
	artRows = 7

	// HeaderRows is the height of the expanded header without the border.
	HeaderRows = artRows + 2

	noLyrics = "No lyrics available."
)

// LyricsText returns the lyrics to show for d.
func LyricsText(d *track.Descriptor) string {
	if d == nil || strings.TrimSpace(d.Lyric) == "" {
		return noLyrics
	}
	return strings.Join(render.Lines(d.Lyric), "\n")
}

// RenderExpanded renders the full player: cover placeholder, title, artist,
// liked flag, share hint and progress, then the lyrics block below. lyrics
// is the already scrolled view of LyricsText.
func RenderExpanded(s State, lyrics string, width int) string {
	if !s.Visible() {
		return ""
	}
	innerWidth := max(width-4, 0)
	if innerWidth < 40 {
		return Render(s, width)
	}

	t := styles.T().S()
	cur := s.State.Current
	metaWidth := innerWidth - artCols - 2

	share := "s share"
	if !s.CanShare {
		share = "share off"
	}
	meta := []string{
		t.Title.Render(render.Truncate(cur.Title, metaWidth)),
		t.Muted.Render(render.Truncate(cur.Artist, metaWidth)),
		"",
		likeSymbol(s.Liked) + " " + t.Subtle.Render(likeLabel(s.Liked)+"  ·  "+share),
		"",
		RenderProgressBar(s.Progress.Position, s.Progress.Duration, metaWidth, statusSymbol(s.Phase)),
		t.Subtle.Render(RenderVolume(s.Volume, s.Muted)),
	}
	art := strings.Split(artPlaceholder(), "\n")

	rows := make([]string, 0, HeaderRows)
	for i := range artRows {
		line := ""
		if i < len(meta) {
			line = meta[i]
		}
		rows = append(rows, art[i]+"  "+line)
	}
	rows = append(rows, "", t.Subtle.Render(strings.Repeat("─", innerWidth)))

	body := lipgloss.JoinVertical(lipgloss.Left, strings.Join(rows, "\n"), lyrics)
	return t.Panel.Padding(0, 1).Width(max(width-2, 0)).Render(body)
}

func likeLabel(liked bool) string {
	if liked {
		return "liked"
	}
	return "f like"
}

// artPlaceholder draws the cover slot; terminals can't show the remote image.
func artPlaceholder() string {
	t := styles.T().S()
	lines := make([]string, artRows)
	inner := artCols - 2
	lines[0] = "╭" + strings.Repeat("─", inner) + "╮"
	for i := 1; i < artRows-1; i++ {
		mid := strings.Repeat(" ", inner)
		if i == artRows/2 {
			mid = strings.Repeat(" ", inner/2-1) + "♪" + strings.Repeat(" ", inner-inner/2)
		}
		lines[i] = "│" + mid + "│"
	}
	lines[artRows-1] = "╰" + strings.Repeat("─", inner) + "╯"
	return t.Subtle.Render(strings.Join(lines, "\n"))
}
