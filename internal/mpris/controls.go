// Package mpris exposes the playback session on the MPRIS D-Bus interface so
// media keys and desktop widgets can drive it.
package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/llehouerou/tunebrew/internal/playback"
	"github.com/llehouerou/tunebrew/internal/track"
)

// Controls is the part of the session the adapter drives.
type Controls interface {
	TogglePlayPause()
	Play()
	Pause()
	Seek(f float64)
	SeekBy(delta time.Duration)
	Snapshot() playback.Snapshot
}

var _ Controls = (*playback.Session)(nil)

// positionFraction converts an absolute position to the fraction the
// session seeks to.
func positionFraction(pos, duration time.Duration) (float64, bool) {
	if duration <= 0 {
		return 0, false
	}
	return float64(pos) / float64(duration), true
}

func formatTrackID(k track.Key) string {
	h := fnv.New64a()
	h.Write([]byte(k.ID))
	h.Write([]byte{0})
	h.Write([]byte(k.AudioURL))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
