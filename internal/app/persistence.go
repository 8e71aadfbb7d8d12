package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunebrew/internal/errmsg"
	"github.com/llehouerou/tunebrew/internal/playback"
	"github.com/llehouerou/tunebrew/internal/state"
)

// restoreVolume applies the saved volume to the mixer.
func (m *Model) restoreVolume() {
	if m.mixer == nil {
		return
	}
	v, err := m.state.GetVolume()
	if err != nil {
		m.log.WithError(err).Warn("volume not restored")
		return
	}
	m.mixer.SetVolume(v.Volume)
	m.mixer.SetMuted(v.Muted)
}

func (m *Model) saveVolume() tea.Cmd {
	if err := m.state.SaveVolume(m.mixer.Volume(), m.mixer.Muted()); err != nil {
		return m.setError(errmsg.Format(errmsg.OpVolumeSave, err))
	}
	return nil
}

// saveNowPlaying records the current track and view so the next launch can
// resume them. A cleared track is saved as empty.
func (m *Model) saveNowPlaying() {
	np := state.NowPlaying{ViewMode: m.snapshot.View.String()}
	if cur := m.snapshot.State.Current; cur != nil {
		np.SongID = cur.ID
		np.Version = cur.Version
	}
	m.state.SaveNowPlaying(np)
}

// startupTrackCmd resolves the deep-linked track, or else the last one.
// A deep link plays expanded; a resumed track comes back paused in its
// saved view.
func (m Model) startupTrackCmd() tea.Cmd {
	if m.open != nil {
		expanded := playback.ViewExpanded
		return m.resolveCmd(errmsg.OpShareLink, m.open.ID, max(m.open.Version, 1), true, &expanded)
	}

	np, err := m.state.GetNowPlaying()
	if err != nil {
		m.log.WithError(err).Warn("now playing not restored")
		return nil
	}
	if np == nil {
		return nil
	}
	view := playback.ParseViewMode(np.ViewMode)
	return m.resolveCmd(errmsg.OpStateLoad, np.SongID, np.Version, false, &view)
}
