// internal/playback/state.go
package playback

import (
	"time"

	"github.com/llehouerou/tunebrew/internal/track"
)

// Phase is the session lifecycle phase.
//
//	Empty -> Loading -> Paused <-> Playing
//	           any   -> Empty   (close while minimized)
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseLoading
	PhasePaused
	PhasePlaying
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "Empty"
	case PhaseLoading:
		return "Loading"
	case PhasePaused:
		return "Paused"
	case PhasePlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// HasTrack returns true when a track is bound.
func (p Phase) HasTrack() bool {
	return p != PhaseEmpty
}

// ViewMode is how the player is presented.
type ViewMode int

const (
	ViewMinimized ViewMode = iota
	ViewExpanded
)

// String returns the view mode name.
func (m ViewMode) String() string {
	switch m {
	case ViewMinimized:
		return "minimized"
	case ViewExpanded:
		return "expanded"
	default:
		return "unknown"
	}
}

// ParseViewMode is the inverse of String. Unknown names map to minimized.
func ParseViewMode(s string) ViewMode {
	if s == "expanded" {
		return ViewExpanded
	}
	return ViewMinimized
}

// PlayerState is the shared now-playing state. IsPlaying implies Current != nil.
type PlayerState struct {
	IsPlaying bool
	Current   *track.Descriptor
}

// Progress is the position snapshot of the current track.
type Progress struct {
	Position time.Duration
	Duration time.Duration
}

// Fraction returns Position/Duration in [0,1], 0 when the duration is unknown.
func (p Progress) Fraction() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return min(max(float64(p.Position)/float64(p.Duration), 0), 1)
}

// Snapshot is a consistent copy of the whole session state.
type Snapshot struct {
	Phase    Phase
	State    PlayerState
	View     ViewMode
	Progress Progress
	Liked    bool
}
