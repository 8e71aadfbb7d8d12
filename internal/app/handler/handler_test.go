package handler

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunebrew/internal/keymap"
)

func TestResults(t *testing.T) {
	if NotHandled.Handled || NotHandled.Cmd != nil {
		t.Error("NotHandled should be empty")
	}
	if !HandledNoCmd.Handled || HandledNoCmd.Cmd != nil {
		t.Error("HandledNoCmd should be handled without command")
	}
	cmd := func() tea.Msg { return "test" }
	if r := Handled(cmd); !r.Handled || r.Cmd == nil {
		t.Error("Handled(cmd) should carry the command")
	}
}

func TestChain_NoHandlers(t *testing.T) {
	handled, cmd := Chain(keymap.ActionLike)
	if handled || cmd != nil {
		t.Error("Chain with no handlers should not handle")
	}
}

func TestChain_EmptyActionSkipsHandlers(t *testing.T) {
	called := false
	h := func(keymap.Action) Result {
		called = true
		return HandledNoCmd
	}
	if handled, _ := Chain("", h); handled {
		t.Error("empty action should not be handled")
	}
	if called {
		t.Error("handlers should not run for an empty action")
	}
}

func TestChain_StopsAtFirstHandled(t *testing.T) {
	var order []string
	first := func(a keymap.Action) Result {
		order = append(order, "first")
		if a == keymap.ActionLike {
			return Handled(func() tea.Msg { return "first" })
		}
		return NotHandled
	}
	second := func(keymap.Action) Result {
		order = append(order, "second")
		return Handled(func() tea.Msg { return "second" })
	}

	handled, cmd := Chain(keymap.ActionLike, first, second)
	if !handled {
		t.Fatal("expected handled")
	}
	if got := cmd(); got != "first" {
		t.Errorf("cmd() = %v, want first", got)
	}
	if len(order) != 1 {
		t.Errorf("handlers called = %v, want only first", order)
	}

	order = nil
	handled, cmd = Chain(keymap.ActionShare, first, second)
	if !handled || cmd() != "second" {
		t.Error("expected second handler to handle share")
	}
	if len(order) != 2 {
		t.Errorf("handlers called = %v, want both", order)
	}
}
