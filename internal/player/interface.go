// internal/player/interface.go
package player

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrSuperseded is returned when a request targets a source that has
	// since been replaced by SetSource or Stop.
	ErrSuperseded = errors.New("source superseded")
	// ErrNotLoaded is returned by Play when the current source has not
	// finished loading.
	ErrNotLoaded = errors.New("source not loaded")
)

// Handle identifies one source assignment. Every SetSource returns a new one.
type Handle uint64

// Interface is the single playable audio resource.
//
// A source is assigned with SetSource, made ready with Load, and started
// with Play. Load and Play may block and are meant to run off the caller's
// goroutine; both refuse handles that are no longer current.
type Interface interface {
	SetSource(src string) Handle
	Load(ctx context.Context, h Handle) (time.Duration, error)
	Play(h Handle) error
	Pause()
	Stop()
	SeekTo(pos time.Duration)
	State() State
	Position() time.Duration
	Duration() time.Duration
	Subscribe(fn Listener) (unsubscribe func())
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
