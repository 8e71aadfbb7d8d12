package playback

import (
	"time"

	"github.com/llehouerou/tunebrew/internal/player"
)

// seekTarget maps fraction f of d to a position. f is clamped to [0,1].
// It returns false when the duration is unknown.
func seekTarget(f float64, d time.Duration) (time.Duration, bool) {
	if d <= 0 {
		return 0, false
	}
	f = min(max(f, 0), 1)
	return time.Duration(f * float64(d)), true
}

// apply folds a resource event into the snapshot. It reports whether the
// snapshot changed.
func (p *Progress) apply(ev player.Event) bool {
	switch ev.Kind {
	case player.EventTimeUpdate:
		if ev.Position == p.Position {
			return false
		}
		p.Position = ev.Position
	case player.EventDurationChange:
		if ev.Duration == p.Duration {
			return false
		}
		p.Duration = ev.Duration
	case player.EventEnded:
		if p.Position == 0 {
			return false
		}
		p.Position = 0
	default:
		return false
	}
	return true
}
