//go:build linux

package mpris

import (
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/tunebrew/internal/playback"
)

// Adapter serves a session over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts the adapter.
func New(c Controls) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("tunebrew", &rootAdapter{}, &playerAdapter{c: c}),
	}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }
func (r *rootAdapter) Quit() error { return nil }
func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (r *rootAdapter) Identity() (string, error) { return "tunebrew", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. There is a
// single track, so next and previous do nothing.
type playerAdapter struct {
	c Controls
}

func (p *playerAdapter) Next() error { return nil }
func (p *playerAdapter) Previous() error { return nil }

func (p *playerAdapter) Pause() error {
	p.c.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.c.TogglePlayPause()
	return nil
}

// Stop pauses: closing the track is left to the user interface.
func (p *playerAdapter) Stop() error {
	p.c.Pause()
	return nil
}

func (p *playerAdapter) Play() error {
	p.c.Play()
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.c.SeekBy(time.Duration(offset) * time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	snap := p.c.Snapshot()
	if f, ok := positionFraction(time.Duration(position)*time.Microsecond, snap.Progress.Duration); ok {
		p.c.Seek(f)
	}
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.c.Snapshot().Phase {
	case playback.PhasePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.PhaseLoading, playback.PhasePaused:
		return types.PlaybackStatusPaused, nil
	case playback.PhaseEmpty:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.c.Snapshot()
	cur := snap.State.Current
	if cur == nil {
		return types.Metadata{}, nil
	}

	return types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(cur.Key())),
		Length:  types.Microseconds(snap.Progress.Duration.Microseconds()),
		Title:   cur.Title,
		Artist:  []string{cur.Artist},
		ArtUrl:  cur.ThumbnailURL,
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) { return 1.0, nil }
func (p *playerAdapter) SetVolume(_ float64) error { return nil }

func (p *playerAdapter) Position() (int64, error) {
	return p.c.Snapshot().Progress.Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) CanGoNext() (bool, error) { return false, nil }
func (p *playerAdapter) CanGoPrevious() (bool, error) { return false, nil }

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.c.Snapshot().Phase.HasTrack(), nil
}

func (p *playerAdapter) CanPause() (bool, error) { return true, nil }

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.c.Snapshot().Progress.Duration > 0, nil
}

func (p *playerAdapter) CanControl() (bool, error) { return true, nil }
