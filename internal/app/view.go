package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunebrew/internal/keymap"
	"github.com/llehouerou/tunebrew/internal/playback"
	"github.com/llehouerou/tunebrew/internal/ui/playerbar"
	"github.com/llehouerou/tunebrew/internal/ui/render"
	"github.com/llehouerou/tunebrew/internal/ui/styles"
)

const (
	// footerRows is the status line plus the help line.
	footerRows = 2
	// overlayFrame is the border and padding width around overlay content.
	overlayFrame = 6
)

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}
	if m.qrCode != "" {
		return m.renderOverlay(m.qrTitle + "\n\n" + m.qrCode)
	}
	if m.showHelp {
		h := m.help
		h.ShowAll = true
		h.Width = max(m.Width-overlayFrame, 0)
		return m.renderOverlay(h.View(keymap.NewHelp()))
	}
	return m.renderMain()
}

func (m Model) renderMain() string {
	bar := m.barState()
	var body string
	switch {
	case bar.Visible() && m.snapshot.View == playback.ViewExpanded:
		body = playerbar.RenderExpanded(bar, m.lyrics.View(), m.Width)
	case bar.Visible():
		list := lipgloss.NewStyle().Height(m.listHeight()).Render(m.activeList().View())
		body = lipgloss.JoinVertical(lipgloss.Left, list, playerbar.Render(bar, m.Width))
	default:
		body = m.activeList().View()
	}
	body = lipgloss.NewStyle().Height(max(m.Height-footerRows, 0)).Render(body)

	return strings.Join([]string{body, m.renderStatus(), m.renderHelpLine()}, "\n")
}

func (m Model) barState() playerbar.State {
	s := playerbar.State{
		Snapshot: m.snapshot,
		Volume:   1,
		CanShare: m.sharer != nil && m.sharer.Available(),
	}
	if m.mixer != nil {
		s.Volume = m.mixer.Volume()
		s.Muted = m.mixer.Muted()
	}
	return s
}

func (m Model) renderStatus() string {
	t := styles.T().S()
	text := render.Truncate(m.status, m.Width)
	if m.statusErr {
		return t.Error.Render(text)
	}
	return t.Muted.Render(text)
}

func (m Model) renderHelpLine() string {
	short := []keymap.Action{keymap.ActionMoveDown, keymap.ActionPlayFirst, keymap.ActionPlayOther}
	if m.snapshot.Phase.HasTrack() {
		short = []keymap.Action{
			keymap.ActionPlayPause, keymap.ActionToggleView, keymap.ActionLike,
			keymap.ActionShare, keymap.ActionClose,
		}
	}
	short = append(short, keymap.ActionSwitchList, keymap.ActionHelp, keymap.ActionQuit)
	return m.help.View(keymap.NewHelp(short...))
}

func (m Model) renderOverlay(content string) string {
	t := styles.T().S()
	box := t.Panel.Padding(1, 2).Render(content + "\n\n" + t.Subtle.Render("press any key to close"))
	return render.Overlay(m.renderMain(), box, m.Width, m.Height)
}

func (m Model) listHeight() int {
	h := m.Height - footerRows
	if m.snapshot.Phase.HasTrack() {
		h -= playerbar.MinimizedHeight
	}
	return max(h, 1)
}

// resize lays the lists and the lyrics viewport out for the current size
// and view mode.
func (m *Model) resize() {
	m.help.Width = m.Width
	for i := range m.lists {
		m.lists[i].SetSize(m.Width, m.listHeight())
	}

	// Panel border and padding take two rows and four columns.
	m.lyrics.Width = max(m.Width-4, 1)
	m.lyrics.Height = max(m.Height-footerRows-2-playerbar.HeaderRows, 1)
	m.fillLyrics()
}
