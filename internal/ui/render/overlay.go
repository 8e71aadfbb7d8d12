package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay draws box centered over base, a width by height screen. Both may
// be styled; cells outside the box keep the base content. A box taller than
// the screen is drawn whole from the first row.
func Overlay(base, box string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")
	for len(baseLines) < max(height, len(boxLines)) {
		baseLines = append(baseLines, "")
	}

	boxWidth := 0
	for _, l := range boxLines {
		boxWidth = max(boxWidth, ansi.StringWidth(l))
	}
	top := max((height-len(boxLines))/2, 0)
	left := max((width-boxWidth)/2, 0)

	for i, l := range boxLines {
		row := top + i
		line := baseLines[row]
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		end := left + ansi.StringWidth(l)
		baseLines[row] = ansi.Cut(line, 0, left) + l + ansi.Cut(line, end, width)
	}
	return strings.Join(baseLines, "\n")
}
