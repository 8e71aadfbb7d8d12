package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestOverlay_CentersBox(t *testing.T) {
	base := strings.Join([]string{"..........", "..........", "..........", ".........."}, "\n")

	got := Overlay(base, "ab\ncd", 10, 4)

	want := strings.Join([]string{"..........", "....ab....", "....cd....", ".........."}, "\n")
	if got != want {
		t.Errorf("Overlay() =\n%s\nwant\n%s", got, want)
	}
}

func TestOverlay_PadsShortBase(t *testing.T) {
	got := Overlay("x", "[]", 6, 3)
	lines := strings.Split(got, "\n")

	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[1] != "  []  " {
		t.Errorf("middle line = %q", lines[1])
	}
}

func TestOverlay_StyledBase(t *testing.T) {
	base := "\x1b[31m" + strings.Repeat("r", 8) + "\x1b[0m"

	got := Overlay(base, "XX", 8, 1)

	if plain := ansi.Strip(got); plain != "rrrXXrrr" {
		t.Errorf("visible = %q, want rrrXXrrr", plain)
	}
}

func TestOverlay_WideCharacters(t *testing.T) {
	got := Overlay("........", "이수", 8, 1)
	if got != "..이수.." {
		t.Errorf("Overlay() = %q", got)
	}
}

func TestOverlay_TallBoxIsKept(t *testing.T) {
	got := Overlay("....", "a\nb\nc", 4, 2)
	want := strings.Join([]string{".a..", " b  ", " c  "}, "\n")
	if got != want {
		t.Errorf("Overlay() = %q, want %q", got, want)
	}
}
