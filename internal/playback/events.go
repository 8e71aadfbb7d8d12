package playback

import (
	"github.com/llehouerou/tunebrew/internal/track"
)

// StateChange is emitted when the phase or the playing flag changes.
type StateChange struct {
	Previous Phase
	Current  Phase
	State    PlayerState
}

// TrackChange is emitted when the current track is replaced or cleared.
//
// Emitted by LoadTrack with a different identity and by Close while
// minimized (Current is nil then). The app handles track-related side
// effects (notification, persistence, lyrics reset) in response.
type TrackChange struct {
	Previous *track.Descriptor
	Current  *track.Descriptor
	Liked    bool
}

// ProgressChange is emitted on time updates, duration changes, seeks and
// resets.
type ProgressChange struct {
	Progress Progress
}

// ViewChange is emitted when the view mode changes.
type ViewChange struct {
	Mode ViewMode
}

// LikeChange is emitted when the current track's liked flag changes.
type LikeChange struct {
	ID    string
	Liked bool
}

// ErrorEvent is emitted when a load or play request fails.
type ErrorEvent struct {
	Op    string // "load" or "play"
	Track *track.Descriptor
	Err   error // wraps ErrPlaybackStartFailed
}

func (e ErrorEvent) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e ErrorEvent) Unwrap() error {
	return e.Err
}

// Cause returns the error the resource reported, without the
// ErrPlaybackStartFailed wrapper.
func (e ErrorEvent) Cause() error {
	if u, ok := e.Err.(interface{ Unwrap() []error }); ok {
		if errs := u.Unwrap(); len(errs) == 2 && errs[0] == ErrPlaybackStartFailed {
			return errs[1]
		}
	}
	return e.Err
}
