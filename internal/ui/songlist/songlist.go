// Package songlist renders a scrollable list of songs with a cursor.
package songlist

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tunebrew/internal/catalog"
	"github.com/llehouerou/tunebrew/internal/ui/render"
	"github.com/llehouerou/tunebrew/internal/ui/styles"
)

// Entry is one row. Version 0 marks a song still in production.
type Entry struct {
	Song    catalog.Song
	Artist  string
	Version int
}

// Pending reports whether the row cannot be played yet.
func (e Entry) Pending() bool {
	return e.Version == 0
}

// Title returns the row label.
func (e Entry) Title() string {
	if e.Pending() {
		return e.Song.Title
	}
	return catalog.VersionTitle(e.Song.Title, e.Version)
}

// Model is the list state.
type Model struct {
	title   string
	entries []Entry
	cursor  int
	offset  int
	width   int
	height  int

	playingID      string
	playingVersion int

	status string
	now    func() time.Time
}

// New creates an empty list with a heading.
func New(title string) Model {
	return Model{title: title, now: time.Now}
}

// SetEntries replaces the rows, keeping the cursor on the same song and
// version when it is still listed.
func (m *Model) SetEntries(entries []Entry) {
	var keepID string
	var keepVersion int
	if e, ok := m.Selected(); ok {
		keepID, keepVersion = e.Song.RequestID, e.Version
	}

	m.entries = entries
	m.cursor = 0
	for i, e := range entries {
		if e.Song.RequestID == keepID && e.Version == keepVersion {
			m.cursor = i
			break
		}
	}
	m.ensureVisible()
}

// Entries returns the rows.
func (m Model) Entries() []Entry {
	return m.entries
}

// SetStatus shows a line instead of the rows when the list is empty
// (loading, errors, hints).
func (m *Model) SetStatus(s string) {
	m.status = s
}

// SetPlaying marks the row of the current track.
func (m *Model) SetPlaying(id string, version int) {
	m.playingID, m.playingVersion = id, version
}

// SetSize sets the list dimensions, heading included.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.ensureVisible()
}

// Move moves the cursor by delta rows, clamped to the list.
func (m *Model) Move(delta int) {
	if len(m.entries) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.entries)-1)
	m.ensureVisible()
}

// Cursor returns the cursor position.
func (m Model) Cursor() int {
	return m.cursor
}

// Selected returns the row under the cursor.
func (m Model) Selected() (Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return Entry{}, false
	}
	return m.entries[m.cursor], true
}

// HasPending reports whether any row is still in production.
func (m Model) HasPending() bool {
	for _, e := range m.entries {
		if e.Pending() {
			return true
		}
	}
	return false
}

func (m Model) rows() int {
	return max(m.height-2, 1)
}

func (m *Model) ensureVisible() {
	rows := m.rows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(min(m.offset, len(m.entries)-rows), 0)
}

// View renders the heading and the visible rows.
func (m Model) View() string {
	t := styles.T().S()
	lines := []string{
		styles.T().Gradient(m.title),
		t.Subtle.Render(strings.Repeat("─", max(m.width, 0))),
	}

	if len(m.entries) == 0 {
		status := m.status
		if status == "" {
			status = "No songs yet."
		}
		lines = append(lines, t.Muted.Render(render.Truncate(status, m.width)))
		return strings.Join(lines, "\n")
	}

	end := min(m.offset+m.rows(), len(m.entries))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(m.entries[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(e Entry, selected bool) string {
	t := styles.T().S()

	marker := "  "
	playing := !e.Pending() && e.Song.RequestID == m.playingID && e.Version == m.playingVersion
	if playing {
		marker = "▶ "
	}

	var right string
	rightStyle := t.Subtle
	if e.Pending() {
		right, rightStyle = "in production", t.Pending
	} else if created := e.Song.Created(); !created.IsZero() {
		now := time.Now()
		if m.now != nil {
			now = m.now()
		}
		right = humanize.RelTime(created, now, "ago", "from now")
	}

	leftWidth := max(m.width-lipgloss.Width(right)-lipgloss.Width(marker)-1, 1)
	label := e.Title()
	if e.Artist != "" {
		label += " · " + e.Artist
	}
	left := marker + render.Truncate(label, leftWidth)

	if selected {
		return t.Cursor.Render(render.Pad(render.Row(left, right, m.width), m.width))
	}

	leftStyle := t.Base
	switch {
	case playing:
		leftStyle = t.Playing
	case e.Pending():
		leftStyle = t.Muted
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return leftStyle.Render(left) + strings.Repeat(" ", gap) + rightStyle.Render(right)
}
