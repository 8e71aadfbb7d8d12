package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGradient_KeepsText(t *testing.T) {
	for _, text := range []string{"", "t", "tunebrew", "이수"} {
		got := T().Gradient(text)
		if w := lipgloss.Width(got); w != lipgloss.Width(text) {
			t.Errorf("Gradient(%q) width = %d, want %d", text, w, lipgloss.Width(text))
		}
	}
}

func TestBlendColors(t *testing.T) {
	colors := blendColors(3, "#000000", "#ffffff")
	if len(colors) != 3 {
		t.Fatalf("len = %d, want 3", len(colors))
	}
	if colorToHex(colors[0]) == colorToHex(colors[2]) {
		t.Error("endpoints should differ")
	}
}

func TestLipglossToColor_ANSIFallsBackToGray(t *testing.T) {
	r, g, b, _ := lipglossToColor("240").RGBA()
	if r != g || g != b {
		t.Errorf("ANSI color should map to gray, got %d %d %d", r, g, b)
	}
}

func TestS_Cached(t *testing.T) {
	if T().S() != T().S() {
		t.Error("styles should be built once")
	}
}
