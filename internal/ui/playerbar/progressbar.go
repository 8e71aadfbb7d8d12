package playerbar

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderProgressBar renders a block-style progress bar:
// ▶  1:23  ▓▓▓▓▓░░░░░  4:56
func RenderProgressBar(position, duration time.Duration, width int, status string) string {
	posStr := formatDuration(position)
	durStr := formatDuration(duration)

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth
	if barWidth < 3 {
		return status + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	return status + "  " + posStr + "  " + bar(ratio, barWidth, "▓", "░") + "  " + durStr
}
