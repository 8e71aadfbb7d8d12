package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunebrew/internal/errmsg"
	"github.com/llehouerou/tunebrew/internal/likes"
	"github.com/llehouerou/tunebrew/internal/playback"
	"github.com/llehouerou/tunebrew/internal/track"
)

const (
	requestTimeout = 15 * time.Second
	shareTimeout   = 30 * time.Second
	statusTTL      = 4 * time.Second

	// MineKey is the state key holding the user's comma-joined request ids.
	MineKey = "song_request_id"
)

// TickCmd returns a command that sends TickMsg after 1 second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchSessionEvents returns a command that waits for the next session
// event and converts it to a tea.Msg. Update re-issues it after each one.
func (m Model) WatchSessionEvents() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return SessionStateMsg(e)
		case e := <-sub.TrackChanged:
			return SessionTrackMsg(e)
		case e := <-sub.ProgressChanged:
			return SessionProgressMsg(e)
		case e := <-sub.ViewChanged:
			return SessionViewMsg(e)
		case e := <-sub.LikeChanged:
			return SessionLikeMsg(e)
		case e := <-sub.Error:
			return SessionErrorMsg(e)
		case <-sub.Done:
			return SessionClosedMsg{}
		}
	}
}

func (m Model) loadHomeCmd() tea.Cmd {
	c, limit := m.catalog, m.recentLimit
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		songs, err := c.Recent(ctx, limit)
		return HomeLoadedMsg{Songs: songs, Err: err}
	}
}

func (m Model) loadMineCmd() tea.Cmd {
	c, st := m.catalog, m.state
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		raw, _, err := st.Get(MineKey)
		if err != nil {
			return MineLoadedMsg{Err: err}
		}
		ids := likes.Split(raw)
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		songs, err := c.Songs(ctx, ids)
		return MineLoadedMsg{IDs: ids, Songs: songs, Err: err}
	}
}

func (m Model) pollCmd() tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return PollMsg{}
	})
}

// resolveCmd looks up version of id and hands it to the session.
func (m Model) resolveCmd(op errmsg.Op, id string, version int, autoplay bool, view *playback.ViewMode) tea.Cmd {
	c := m.catalog
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		d, err := c.Resolve(ctx, id, version)
		return TrackResolvedMsg{Track: d, Autoplay: autoplay, View: view, Op: op, Err: err}
	}
}

func (m Model) shareCmd(d track.Descriptor) tea.Cmd {
	s := m.sharer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shareTimeout)
		defer cancel()
		p, err := s.Share(ctx, d)
		return ShareDoneMsg{Payload: p, Err: err}
	}
}

func statusClearCmd(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return StatusClearMsg{Seq: seq}
	})
}
