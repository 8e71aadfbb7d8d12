// Package app is the terminal presentation of the now-playing session.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunebrew/internal/catalog"
	"github.com/llehouerou/tunebrew/internal/errmsg"
	"github.com/llehouerou/tunebrew/internal/playback"
	"github.com/llehouerou/tunebrew/internal/share"
	"github.com/llehouerou/tunebrew/internal/track"
)

// Message category interfaces for type-based routing in Update().

// SessionMessage is implemented by messages relayed from the playback session.
type SessionMessage interface {
	tea.Msg
	sessionMessage()
}

// CatalogMessage is implemented by messages carrying song list results.
type CatalogMessage interface {
	tea.Msg
	catalogMessage()
}

// TickMsg is sent periodically to refresh the progress display.
type TickMsg time.Time

// SessionStateMsg relays a phase change.
type SessionStateMsg playback.StateChange

func (SessionStateMsg) sessionMessage() {}

// SessionTrackMsg relays a track switch or clear.
type SessionTrackMsg playback.TrackChange

func (SessionTrackMsg) sessionMessage() {}

// SessionProgressMsg relays a position or duration change.
type SessionProgressMsg playback.ProgressChange

func (SessionProgressMsg) sessionMessage() {}

// SessionViewMsg relays a view mode change.
type SessionViewMsg playback.ViewChange

func (SessionViewMsg) sessionMessage() {}

// SessionLikeMsg relays a liked flag change.
type SessionLikeMsg playback.LikeChange

func (SessionLikeMsg) sessionMessage() {}

// SessionErrorMsg relays a failed load or play.
type SessionErrorMsg playback.ErrorEvent

func (SessionErrorMsg) sessionMessage() {}

// SessionClosedMsg is sent once the session has shut down.
type SessionClosedMsg struct{}

func (SessionClosedMsg) sessionMessage() {}

// HomeLoadedMsg carries the newest completed songs.
type HomeLoadedMsg struct {
	Songs []catalog.Song
	Err   error
}

func (HomeLoadedMsg) catalogMessage() {}

// MineLoadedMsg carries the user's requested songs, in request order.
type MineLoadedMsg struct {
	IDs   []string
	Songs map[string]catalog.Song
	Err   error
}

func (MineLoadedMsg) catalogMessage() {}

// PollMsg asks for a refresh of "my songs" while some are pending.
type PollMsg struct{}

func (PollMsg) catalogMessage() {}

// TrackResolvedMsg carries a descriptor to hand to the session.
type TrackResolvedMsg struct {
	Track    track.Descriptor
	Autoplay bool
	View     *playback.ViewMode // applied after loading, when set
	Op       errmsg.Op          // reported when Err is set
	Err      error
}

func (TrackResolvedMsg) catalogMessage() {}

// ShareDoneMsg reports the outcome of a share action.
type ShareDoneMsg struct {
	Payload share.Payload
	Err     error
}

// StatusClearMsg clears the status line if it still shows message seq.
type StatusClearMsg struct {
	Seq int
}
