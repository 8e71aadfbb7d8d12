package playback

import "errors"

var (
	// ErrPlaybackStartFailed is reported when the resource refuses to start
	// or fails to load the current track.
	ErrPlaybackStartFailed = errors.New("playback start failed")

	// ErrStaleResourceEvent marks a result that arrived for a binding that
	// has since been replaced. It is logged, never surfaced.
	ErrStaleResourceEvent = errors.New("stale resource event")
)
