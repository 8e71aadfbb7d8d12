package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunebrew/internal/app/handler"
	"github.com/llehouerou/tunebrew/internal/errmsg"
	"github.com/llehouerou/tunebrew/internal/keymap"
	"github.com/llehouerou/tunebrew/internal/playback"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	a := m.keys.Resolve(key)

	// Overlays swallow keys; quit still works.
	if m.qrCode != "" || m.showHelp {
		if a == keymap.ActionQuit {
			return m, tea.Quit
		}
		m.qrTitle, m.qrCode = "", ""
		m.showHelp = false
		return m, nil
	}

	_, cmd := handler.Chain(a,
		m.handleGlobal,
		func(a keymap.Action) handler.Result { return m.handlePlayer(a, key) },
		m.handleList,
	)
	return m, cmd
}

func (m *Model) handleGlobal(a keymap.Action) handler.Result {
	switch a {
	case keymap.ActionQuit:
		return handler.Handled(tea.Quit)
	case keymap.ActionHelp:
		m.showHelp = true
		return handler.HandledNoCmd
	case keymap.ActionSwitchList:
		m.active = 1 - m.active
		m.resize()
		return handler.HandledNoCmd
	case keymap.ActionRefresh:
		return handler.Handled(tea.Batch(m.loadHomeCmd(), m.loadMineCmd()))
	}
	return handler.NotHandled
}

// handlePlayer routes transport actions to the session. They are ignored
// while nothing is loaded.
func (m *Model) handlePlayer(a keymap.Action, key string) handler.Result {
	if !m.snapshot.Phase.HasTrack() {
		return handler.NotHandled
	}
	expanded := m.snapshot.View == playback.ViewExpanded

	switch a {
	case keymap.ActionPlayPause:
		m.session.TogglePlayPause()
	case keymap.ActionToggleView:
		if expanded {
			m.session.SetViewMode(playback.ViewMinimized)
		} else {
			m.session.SetViewMode(playback.ViewExpanded)
		}
	case keymap.ActionClose:
		m.session.Close()
	case keymap.ActionSeekBack:
		m.session.SeekBy(-seekStep)
	case keymap.ActionSeekForward:
		m.session.SeekBy(seekStep)
	case keymap.ActionSeekPercent:
		m.session.Seek(float64(key[0]-'0') / 10)
	case keymap.ActionLike:
		return handler.Handled(m.toggleLike())
	case keymap.ActionShare:
		return handler.Handled(m.shareCurrent())
	case keymap.ActionVolumeUp, keymap.ActionVolumeDown, keymap.ActionMute:
		return m.handleVolume(a)
	case keymap.ActionScrollDown, keymap.ActionScrollUp:
		if !expanded {
			return handler.NotHandled
		}
		step := max(m.lyrics.Height/2, 1)
		if a == keymap.ActionScrollUp {
			step = -step
		}
		m.lyrics.SetYOffset(m.lyrics.YOffset + step)
	default:
		return handler.NotHandled
	}

	m.snapshot = m.session.Snapshot()
	return handler.HandledNoCmd
}

func (m *Model) toggleLike() tea.Cmd {
	liked, err := m.session.ToggleLike()
	if err != nil {
		return m.setError(errmsg.FormatWith(errmsg.OpLikeToggle, m.snapshot.State.Current.Title, err))
	}
	m.snapshot = m.session.Snapshot()
	if liked {
		return m.setInfo("Added to liked songs.")
	}
	return m.setInfo("Removed from liked songs.")
}

func (m *Model) shareCurrent() tea.Cmd {
	cur := m.snapshot.State.Current
	if m.sharer == nil || !m.sharer.Available() {
		return m.setInfo("Sharing is turned off (share_method = \"none\").")
	}
	return tea.Batch(m.setInfo("Sharing "+cur.Title+"..."), m.shareCmd(*cur))
}

func (m *Model) handleVolume(a keymap.Action) handler.Result {
	if m.mixer == nil {
		return handler.NotHandled
	}
	switch a {
	case keymap.ActionVolumeUp:
		m.mixer.SetVolume(m.mixer.Volume() + volumeStep)
	case keymap.ActionVolumeDown:
		m.mixer.SetVolume(m.mixer.Volume() - volumeStep)
	case keymap.ActionMute:
		m.mixer.SetMuted(!m.mixer.Muted())
	}
	return handler.Handled(m.saveVolume())
}

// handleList moves the cursor and picks tracks. Enter plays the row's
// version; v plays the other version of the same song.
func (m *Model) handleList(a keymap.Action) handler.Result {
	list := m.activeList()
	switch a {
	case keymap.ActionMoveDown:
		list.Move(1)
		return handler.HandledNoCmd
	case keymap.ActionMoveUp:
		list.Move(-1)
		return handler.HandledNoCmd
	case keymap.ActionPlayFirst, keymap.ActionPlayOther:
	default:
		return handler.NotHandled
	}

	e, ok := list.Selected()
	if !ok {
		return handler.HandledNoCmd
	}
	if e.Pending() {
		return handler.Handled(m.setInfo(e.Song.Title + " is still in production."))
	}

	version := e.Version
	if a == keymap.ActionPlayOther {
		version = 3 - version
	}
	d, err := m.catalog.Descriptor(e.Song, version)
	if err != nil {
		return handler.Handled(m.setError(errmsg.Format(errmsg.OpPlaybackLoad, err)))
	}

	// The home list only cues the track; "my songs" follows the autoplay setting.
	autoplay := m.active == listMine && m.autoplay
	m.session.LoadTrack(d, autoplay)
	m.snapshot = m.session.Snapshot()
	return handler.HandledNoCmd
}
