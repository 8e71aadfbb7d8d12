package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunebrew/internal/catalog"
	"github.com/llehouerou/tunebrew/internal/errmsg"
	"github.com/llehouerou/tunebrew/internal/playback"
	"github.com/llehouerou/tunebrew/internal/share"
	"github.com/llehouerou/tunebrew/internal/ui/playerbar"
	"github.com/llehouerou/tunebrew/internal/ui/songlist"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.snapshot = m.session.Snapshot()
		return m, TickCmd()

	case SessionMessage:
		return m.handleSessionMessage(msg)

	case CatalogMessage:
		return m.handleCatalogMessage(msg)

	case ShareDoneMsg:
		return m.handleShareDone(msg)

	case StatusClearMsg:
		if msg.Seq == m.statusSeq {
			m.status, m.statusErr = "", false
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleSessionMessage(msg SessionMessage) (tea.Model, tea.Cmd) {
	if _, ok := msg.(SessionClosedMsg); ok {
		m.sub = nil
		return m, nil
	}

	m.snapshot = m.session.Snapshot()
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case SessionTrackMsg:
		m.syncPlayingMarker()
		m.resetLyrics()
		m.saveNowPlaying()
		m.resize()
	case SessionViewMsg:
		m.saveNowPlaying()
		m.resize()
	case SessionErrorMsg:
		e := playback.ErrorEvent(msg)
		cmd = m.setError(errmsg.Format(errmsg.ForPlayback(e.Op), e.Cause()))
	}

	return m, tea.Batch(cmd, m.WatchSessionEvents())
}

func (m Model) handleCatalogMessage(msg CatalogMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case HomeLoadedMsg:
		home := &m.lists[listHome]
		if msg.Err != nil {
			home.SetStatus(errmsg.Format(errmsg.OpCatalogRecent, msg.Err))
			return m, nil
		}
		home.SetStatus("No completed songs yet.")
		home.SetEntries(m.homeEntries(msg.Songs))
		m.syncPlayingMarker()
		return m, nil

	case MineLoadedMsg:
		return m.handleMineLoaded(msg)

	case PollMsg:
		m.polling = false
		return m, m.loadMineCmd()

	case TrackResolvedMsg:
		if msg.Err != nil {
			return m, m.setError(errmsg.Format(msg.Op, msg.Err))
		}
		m.session.LoadTrack(msg.Track, msg.Autoplay)
		if msg.View != nil {
			m.session.SetViewMode(*msg.View)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleMineLoaded(msg MineLoadedMsg) (tea.Model, tea.Cmd) {
	mine := &m.lists[listMine]
	if msg.Err != nil {
		mine.SetStatus(errmsg.Format(errmsg.OpCatalogMine, msg.Err))
		return m, m.schedulePoll()
	}

	m.mineIDs = msg.IDs
	mine.SetStatus("No songs requested yet. Add one with `tunebrew add <request-id>`.")
	mine.SetEntries(m.mineEntries(msg.IDs, msg.Songs))
	m.syncPlayingMarker()

	if mine.HasPending() {
		return m, m.schedulePoll()
	}
	return m, nil
}

// schedulePoll arms one refresh of "my songs" unless one is already armed.
func (m *Model) schedulePoll() tea.Cmd {
	if m.polling {
		return nil
	}
	m.polling = true
	return m.pollCmd()
}

func (m Model) handleShareDone(msg ShareDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, share.ErrShareUnavailable) {
			return m, m.setInfo("Sharing is turned off (share_method = \"none\").")
		}
		return m, m.setError(errmsg.Format(errmsg.OpShare, msg.Err))
	}
	if title, code, ok := m.qr.take(); ok {
		m.qrTitle, m.qrCode = title, code
		return m, nil
	}
	return m, m.setInfo("Link copied: " + msg.Payload.URL)
}

func (m Model) homeEntries(songs []catalog.Song) []songlist.Entry {
	entries := make([]songlist.Entry, 0, len(songs))
	for _, s := range songs {
		entries = append(entries, songlist.Entry{Song: s, Artist: m.artist(s), Version: 1})
	}
	return entries
}

// mineEntries lists each requested song as two versions, newest request
// first. Songs still in production get a single pending row; ids the API
// does not know are skipped.
func (m Model) mineEntries(ids []string, songs map[string]catalog.Song) []songlist.Entry {
	entries := make([]songlist.Entry, 0, 2*len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		s, ok := songs[ids[i]]
		if !ok {
			continue
		}
		if !s.Ready() {
			entries = append(entries, songlist.Entry{Song: s, Artist: m.artist(s)})
			continue
		}
		for _, v := range []int{1, 2} {
			if _, ok := catalog.AudioLink(s.AudioLinks, v); ok {
				entries = append(entries, songlist.Entry{Song: s, Artist: m.artist(s), Version: v})
			}
		}
	}
	return entries
}

func (m Model) artist(s catalog.Song) string {
	if m.catalog == nil {
		return s.ModelName
	}
	return m.catalog.ArtistName(s.ModelName)
}

func (m *Model) syncPlayingMarker() {
	var id string
	var version int
	if cur := m.snapshot.State.Current; cur != nil {
		id, version = cur.ID, cur.Version
	}
	for i := range m.lists {
		m.lists[i].SetPlaying(id, version)
	}
}

func (m *Model) resetLyrics() {
	cur := m.snapshot.State.Current
	key := ""
	if cur != nil {
		key = cur.Key().String()
	}
	if key == m.lyricsOf {
		return
	}
	m.lyricsOf = key
	m.lyricsText = playerbar.LyricsText(cur)
	m.fillLyrics()
	m.lyrics.GotoTop()
}

// fillLyrics wraps the lyrics to the viewport width.
func (m *Model) fillLyrics() {
	w := max(m.lyrics.Width, 1)
	m.lyrics.SetContent(lipgloss.NewStyle().Width(w).Render(m.lyricsText))
}

func (m *Model) setInfo(s string) tea.Cmd {
	m.statusSeq++
	m.status, m.statusErr = s, false
	return statusClearCmd(m.statusSeq)
}

func (m *Model) setError(s string) tea.Cmd {
	m.statusSeq++
	m.status, m.statusErr = s, true
	m.log.Warn(s)
	return statusClearCmd(m.statusSeq)
}
