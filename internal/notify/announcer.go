package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/tunebrew/internal/errmsg"
	"github.com/llehouerou/tunebrew/internal/playback"
	"github.com/llehouerou/tunebrew/internal/track"
)

const (
	trackTimeout = 5000
	errorTimeout = 8000
	coverTimeout = 5 * time.Second
)

// CoverSource resolves the local cover file of a track.
type CoverSource interface {
	Path(ctx context.Context, d track.Descriptor) (string, error)
}

// Announcer turns session events into desktop notifications: one when a
// track starts playing and one when playback fails to start.
type Announcer struct {
	n      Notifier
	covers CoverSource
	log    *logrus.Entry

	mu        sync.Mutex
	announced track.Key
	lastID    uint32
}

// NewAnnouncer creates an announcer. covers may be nil.
func NewAnnouncer(n Notifier, covers CoverSource, log *logrus.Entry) *Announcer {
	return &Announcer{n: n, covers: covers, log: log}
}

// Run consumes sub until ctx is done or the session shuts down.
func (a *Announcer) Run(ctx context.Context, sub *playback.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.TrackChanged:
			if e.Current == nil {
				a.reset()
			}
		case e := <-sub.StateChanged:
			if e.Current == playback.PhasePlaying && e.State.Current != nil {
				a.TrackStarted(ctx, *e.State.Current)
			}
		case e := <-sub.Error:
			a.PlaybackFailed(e)
		}
	}
}

// TrackStarted announces d unless it is the track announced last, so
// resuming after a pause stays quiet.
func (a *Announcer) TrackStarted(ctx context.Context, d track.Descriptor) {
	a.mu.Lock()
	if a.announced == d.Key() {
		a.mu.Unlock()
		return
	}
	a.announced = d.Key()
	a.mu.Unlock()

	a.send(TrackNotification(d, a.coverPath(ctx, d)))
}

// PlaybackFailed announces a load or play failure.
func (a *Announcer) PlaybackFailed(e playback.ErrorEvent) {
	a.mu.Lock()
	a.announced = track.Key{}
	a.mu.Unlock()

	a.send(FailureNotification(e))
}

func (a *Announcer) reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.announced = track.Key{}
}

func (a *Announcer) coverPath(ctx context.Context, d track.Descriptor) string {
	if a.covers == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, coverTimeout)
	defer cancel()
	path, err := a.covers.Path(ctx, d)
	if err != nil {
		a.log.WithError(err).WithField("track", d.ID).Debug("cover unavailable")
		return ""
	}
	return path
}

// send replaces the previous notification so rapid switches leave one
// bubble on screen.
func (a *Announcer) send(n Notification) {
	a.mu.Lock()
	n.ReplacesID = a.lastID
	a.mu.Unlock()

	id, err := a.n.Notify(n)
	if err != nil {
		a.log.WithError(err).Debug("notification failed")
		return
	}

	a.mu.Lock()
	a.lastID = id
	a.mu.Unlock()
}

// TrackNotification describes a track that started playing.
func TrackNotification(d track.Descriptor, icon string) Notification {
	if icon == "" {
		icon = "audio-x-generic"
	}
	return Notification{
		Title:    d.Title,
		Body:     d.Artist,
		Icon:     icon,
		Category: "x-gnome.music",
		Timeout:  trackTimeout,
		Urgency:  UrgencyLow,
	}
}

// FailureNotification describes a playback start failure.
func FailureNotification(e playback.ErrorEvent) Notification {
	title := "Playback failed"
	if e.Track != nil {
		title = e.Track.Title
	}
	return Notification{
		Title:   title,
		Body:    errmsg.Format(errmsg.ForPlayback(e.Op), e.Cause()),
		Icon:    "dialog-error",
		Timeout: errorTimeout,
		Urgency: UrgencyNormal,
	}
}
