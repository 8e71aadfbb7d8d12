// Package keymap defines key bindings and action dispatch for the application.
package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/samber/lo"
)

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "list", "player"
}

// All contains every key binding, in help order.
var All = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},
	{ActionSwitchList, []string{"tab"}, "Home / my songs", "global"},
	{ActionRefresh, []string{"r"}, "Refresh songs", "global"},

	{ActionMoveDown, []string{"j", "down"}, "Move down", "list"},
	{ActionMoveUp, []string{"k", "up"}, "Move up", "list"},
	{ActionPlayFirst, []string{"enter"}, "Play version 1", "list"},
	{ActionPlayOther, []string{"v"}, "Play version 2", "list"},

	{ActionPlayPause, []string{" "}, "Play/pause", "player"},
	{ActionToggleView, []string{"e"}, "Expand/minimize player", "player"},
	{ActionClose, []string{"esc", "x"}, "Close player", "player"},
	{ActionSeekBack, []string{"left", "h"}, "Seek -5s", "player"},
	{ActionSeekForward, []string{"right", "l"}, "Seek +5s", "player"},
	{ActionSeekPercent, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, "Seek to 0-90%", "player"},
	{ActionLike, []string{"f"}, "Like/unlike", "player"},
	{ActionShare, []string{"s"}, "Share", "player"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "player"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "player"},
	{ActionMute, []string{"m"}, "Mute", "player"},
	{ActionScrollDown, []string{"ctrl+d", "pgdown"}, "Scroll lyrics down", "player"},
	{ActionScrollUp, []string{"ctrl+u", "pgup"}, "Scroll lyrics up", "player"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	return lo.Filter(All, func(b Binding, _ int) bool { return b.Context == context })
}

// Help adapts the bindings to the bubbles help component.
type Help struct {
	short []key.Binding
	full  [][]key.Binding
}

// NewHelp builds the help key map. The short view lists the given actions.
func NewHelp(short ...Action) Help {
	var h Help
	for _, ctx := range []string{"global", "list", "player"} {
		h.full = append(h.full, lo.Map(ByContext(ctx), func(b Binding, _ int) key.Binding {
			return toKey(b)
		}))
	}
	for _, a := range short {
		if b, ok := lo.Find(All, func(b Binding) bool { return b.Action == a }); ok {
			h.short = append(h.short, toKey(b))
		}
	}
	return h
}

// ShortHelp implements help.KeyMap.
func (h Help) ShortHelp() []key.Binding { return h.short }

// FullHelp implements help.KeyMap.
func (h Help) FullHelp() [][]key.Binding { return h.full }

func toKey(b Binding) key.Binding {
	return key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(helpKeys(b.Keys), b.Description))
}

func helpKeys(keys []string) string {
	if len(keys) > 3 {
		return keys[0] + "-" + keys[len(keys)-1]
	}
	return strings.Join(lo.Map(keys, func(k string, _ int) string {
		if k == " " {
			return "space"
		}
		return k
	}), "/")
}
