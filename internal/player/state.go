// internal/player/state.go
package player

// State is the resource state.
//
//	┌──────────┐  SetSource   ┌──────────┐  Load ok  ┌──────────┐
//	│  Stopped │ ───────────▶ │  Loading │ ────────▶ │  Paused  │
//	└──────────┘              └──────────┘           └──────────┘
//	     ▲                                           Play │ ▲ Pause / end
//	     │ Stop / SetSource                               ▼ │
//	     └─────────────────────────────────────────  ┌──────────┐
//	                                                 │  Playing │
//	                                                 └──────────┘
//
// SetSource always returns to Stopped (then Loading once Load starts),
// whatever the previous state. Play after the end of the stream restarts
// from the beginning.
type State int

const (
	Stopped State = iota
	Loading
	Paused
	Playing
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Loading:
		return "Loading"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsLoaded returns true if a decoded stream is ready (Playing or Paused).
func (s State) IsLoaded() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanPlay returns true if the state allows starting playback.
func (s State) CanPlay() bool {
	return s == Paused
}
