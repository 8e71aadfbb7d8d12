// Package playback owns the now-playing session: which track is current,
// whether it plays, how far it got and how the player is presented.
package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/tunebrew/internal/log"
	"github.com/llehouerou/tunebrew/internal/player"
	"github.com/llehouerou/tunebrew/internal/track"
)

// Likes is the liked-set the session consults for the current track.
type Likes interface {
	IsLiked(id string) (bool, error)
	Toggle(id string) (bool, error)
}

// ticket identifies one binding. Results carrying an older ticket are stale.
type ticket struct {
	key track.Key
	gen uint64
}

// Session is the single now-playing state bound to one audio resource.
// All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	b     binder
	likes Likes
	log   *logrus.Entry

	gen      uint64
	phase    Phase
	state    PlayerState
	view     ViewMode
	progress Progress
	liked    bool
	intent   bool // play once the resource allows it
	starting bool // a play request is in flight
	loaded   bool // the bound source finished loading

	subs   []*Subscription
	subsMu sync.RWMutex
	closed bool
}

// Option configures a Session.
type Option func(*Session)

// WithLikes sets the liked-set used for the liked flag and ToggleLike.
func WithLikes(l Likes) Option {
	return func(s *Session) { s.likes = l }
}

// WithLogger replaces the session logger.
func WithLogger(e *logrus.Entry) Option {
	return func(s *Session) { s.log = e }
}

// New creates an empty, minimized session driving res.
func New(res player.Interface, opts ...Option) *Session {
	s := &Session{
		b:   binder{res: res},
		log: log.For("playback"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadTrack makes d the current track. Loading the track that is already
// current does not restart it: while loading the autoplay intent is merged,
// while paused autoplay resumes from the current position.
func (s *Session) LoadTrack(d track.Descriptor, autoplay bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if cur := s.state.Current; cur != nil && cur.Same(d) {
		s.reloadSameLocked(autoplay)
		return
	}

	prevPhase := s.phase
	prev := s.state.Current
	cur := d

	s.state = PlayerState{Current: &cur}
	s.progress = Progress{}
	s.intent = autoplay
	s.liked = s.isLikedLocked(d.ID)
	s.bindLocked()

	s.log.WithFields(logrus.Fields{"track": d.Key().String(), "gen": s.gen, "autoplay": autoplay}).
		Info("track loading")

	s.publishTrack(TrackChange{Previous: prev, Current: &cur, Liked: s.liked})
	s.publishState(prevPhase)
	s.publishProgress()
}

func (s *Session) reloadSameLocked(autoplay bool) {
	switch s.phase {
	case PhaseLoading:
		s.intent = s.intent || autoplay
	case PhasePaused:
		switch {
		case !autoplay:
		case s.starting:
			s.intent = true
		default:
			s.resumeLocked()
		}
	}
}

// bindLocked starts a fresh binding for the current track.
func (s *Session) bindLocked() {
	s.gen++
	s.phase = PhaseLoading
	s.starting = false
	s.loaded = false

	t := s.ticketLocked()
	s.b.bind(s.state.Current.AudioURL,
		func(ev player.Event) { s.handleResourceEvent(t, ev) },
		func(d time.Duration, err error) { s.handleLoaded(t, d, err) },
	)
}

// TogglePlayPause pauses a playing track or asks the resource to play a
// paused one. While loading, or while a play request is in flight, it flips
// the pending intent instead.
func (s *Session) TogglePlayPause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseEmpty:
		return
	case PhasePlaying:
		s.pauseLocked()
	case PhaseLoading:
		s.intent = !s.intent
	case PhasePaused:
		if s.starting {
			s.intent = !s.intent
			return
		}
		s.resumeLocked()
	}
}

// Play is TogglePlayPause when paused, a no-op otherwise.
func (s *Session) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseLoading:
		s.intent = true
	case PhasePaused:
		if s.starting {
			s.intent = true
			return
		}
		s.resumeLocked()
	}
}

// Pause is TogglePlayPause when playing, a no-op otherwise.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhasePlaying:
		s.pauseLocked()
	case PhaseLoading, PhasePaused:
		s.intent = false
	}
}

func (s *Session) pauseLocked() {
	s.b.pause()
	s.intent = false
	s.state.IsPlaying = false
	s.setPhaseLocked(PhasePaused)
}

// resumeLocked starts playback from the paused phase. A source that failed
// to load is bound again first.
func (s *Session) resumeLocked() {
	s.intent = true
	if !s.loaded {
		prev := s.phase
		s.bindLocked()
		s.publishState(prev)
		return
	}
	s.startPlayLocked()
}

func (s *Session) startPlayLocked() {
	s.starting = true
	t := s.ticketLocked()
	s.b.play(func(err error) { s.handlePlayResult(t, err) })
}

// SetViewMode switches between minimized and expanded presentation.
func (s *Session) SetViewMode(mode ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setViewLocked(mode)
}

func (s *Session) setViewLocked(mode ViewMode) {
	if s.view == mode {
		return
	}
	s.view = mode
	s.publishView()
}

// Close demotes an expanded player to minimized. A minimized player is
// stopped and the current track cleared.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view == ViewExpanded {
		s.setViewLocked(ViewMinimized)
		return
	}
	if s.phase == PhaseEmpty {
		return
	}

	prevPhase := s.phase
	prev := s.state.Current

	s.gen++
	s.b.stop()
	s.phase = PhaseEmpty
	s.state = PlayerState{}
	s.progress = Progress{}
	s.liked = false
	s.intent = false
	s.starting = false
	s.loaded = false

	s.log.WithField("gen", s.gen).Info("player closed")

	s.publishTrack(TrackChange{Previous: prev})
	s.publishState(prevPhase)
	s.publishProgress()
}

// Seek moves to fraction f of the current track, clamped to [0,1]. It is a
// no-op while the duration is unknown.
func (s *Session) Seek(f float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Current == nil {
		return
	}
	target, ok := seekTarget(f, s.progress.Duration)
	if !ok {
		return
	}
	s.seekLocked(target)
}

// SeekBy moves the position by delta, clamped to the track bounds.
func (s *Session) SeekBy(delta time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Current == nil || s.progress.Duration <= 0 {
		return
	}
	s.seekLocked(min(max(s.progress.Position+delta, 0), s.progress.Duration))
}

func (s *Session) seekLocked(target time.Duration) {
	s.b.seek(target)
	s.progress.Position = target
	s.publishProgress()
}

// ToggleLike flips the liked flag of the current track and returns the new
// value. It is a no-op without a track or a liked-set.
func (s *Session) ToggleLike() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Current == nil || s.likes == nil {
		return false, nil
	}
	id := s.state.Current.ID
	liked, err := s.likes.Toggle(id)
	if err != nil {
		return s.liked, fmt.Errorf("toggle like %s: %w", id, err)
	}
	s.liked = liked
	s.publishLike(LikeChange{ID: id, Liked: liked})
	return liked, nil
}

func (s *Session) isLikedLocked(id string) bool {
	if s.likes == nil {
		return false
	}
	liked, err := s.likes.IsLiked(id)
	if err != nil {
		s.log.WithError(err).WithField("id", id).Warn("read liked set")
		return false
	}
	return liked
}

func (s *Session) ticketLocked() ticket {
	t := ticket{gen: s.gen}
	if s.state.Current != nil {
		t.key = s.state.Current.Key()
	}
	return t
}

func (s *Session) currentLocked(t ticket) bool {
	return !s.closed && s.state.Current != nil && t == s.ticketLocked()
}

func (s *Session) dropStale(t ticket, what string) {
	s.log.WithError(ErrStaleResourceEvent).
		WithFields(logrus.Fields{"track": t.key.String(), "gen": t.gen, "current_gen": s.gen}).
		Debug("dropped " + what)
}

func (s *Session) handleLoaded(t ticket, d time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currentLocked(t) || s.phase != PhaseLoading {
		s.dropStale(t, "load result")
		return
	}
	if err != nil {
		if errors.Is(err, player.ErrSuperseded) || errors.Is(err, context.Canceled) {
			s.dropStale(t, "load result")
			return
		}
		s.intent = false
		s.setPhaseLocked(PhasePaused)
		s.reportLocked("load", err)
		return
	}

	s.loaded = true
	if d > 0 && d != s.progress.Duration {
		s.progress.Duration = d
		s.publishProgress()
	}
	s.setPhaseLocked(PhasePaused)
	if s.intent {
		s.startPlayLocked()
	}
}

func (s *Session) handlePlayResult(t ticket, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currentLocked(t) || !s.starting {
		s.dropStale(t, "play result")
		return
	}
	s.starting = false

	if err != nil {
		if errors.Is(err, player.ErrSuperseded) {
			s.dropStale(t, "play result")
			return
		}
		s.intent = false
		s.state.IsPlaying = false
		s.setPhaseLocked(PhasePaused)
		s.reportLocked("play", err)
		return
	}

	if !s.intent {
		// Paused again while the request was in flight.
		s.b.pause()
		return
	}
	s.state.IsPlaying = true
	s.setPhaseLocked(PhasePlaying)
}

func (s *Session) handleResourceEvent(t ticket, ev player.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currentLocked(t) {
		s.dropStale(t, ev.Kind.String())
		return
	}

	switch ev.Kind {
	case player.EventTimeUpdate:
		if s.phase != PhasePlaying {
			return
		}
	case player.EventEnded:
		s.b.seek(0)
		s.intent = false
		s.starting = false
		s.state.IsPlaying = false
		s.setPhaseLocked(PhasePaused)
	}
	if s.progress.apply(ev) {
		s.publishProgress()
	}
}

func (s *Session) reportLocked(op string, err error) {
	cur := *s.state.Current
	s.log.WithError(err).WithFields(logrus.Fields{"op": op, "track": cur.Key().String()}).
		Warn("playback start failed")
	s.publishError(ErrorEvent{
		Op:    op,
		Track: &cur,
		Err:   fmt.Errorf("%w: %w", ErrPlaybackStartFailed, err),
	})
}

func (s *Session) setPhaseLocked(p Phase) {
	if s.phase == p {
		return
	}
	prev := s.phase
	s.phase = p
	s.publishState(prev)
}

// Snapshot returns a copy of the whole session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Phase:    s.phase,
		State:    s.stateCopyLocked(),
		View:     s.view,
		Progress: s.progress,
		Liked:    s.liked,
	}
}

// State returns the shared now-playing state.
func (s *Session) State() PlayerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateCopyLocked()
}

func (s *Session) stateCopyLocked() PlayerState {
	st := s.state
	if st.Current != nil {
		cur := *st.Current
		st.Current = &cur
	}
	return st
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// ViewMode returns the presentation mode.
func (s *Session) ViewMode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Progress returns the position snapshot.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Liked reports whether the current track is in the liked-set.
func (s *Session) Liked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liked
}

// Subscribe creates a new event subscription.
func (s *Session) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	if s.closed {
		sub.close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// Shutdown releases the resource and ends all subscriptions. The session
// ignores every call afterwards.
func (s *Session) Shutdown() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.gen++
	s.b.stop()
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

// fanOut hands an event to every subscriber through send.
func (s *Session) fanOut(send func(w sinks)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		send(sub.w)
	}
}

func (s *Session) publishState(prev Phase) {
	e := StateChange{Previous: prev, Current: s.phase, State: s.stateCopyLocked()}
	s.fanOut(func(w sinks) { offer(w.state, e) })
}

func (s *Session) publishTrack(e TrackChange) {
	s.fanOut(func(w sinks) { offer(w.track, e) })
}

func (s *Session) publishProgress() {
	e := ProgressChange{Progress: s.progress}
	s.fanOut(func(w sinks) { offer(w.progress, e) })
}

func (s *Session) publishView() {
	e := ViewChange{Mode: s.view}
	s.fanOut(func(w sinks) { offer(w.view, e) })
}

func (s *Session) publishLike(e LikeChange) {
	s.fanOut(func(w sinks) { offer(w.like, e) })
}

func (s *Session) publishError(e ErrorEvent) {
	s.fanOut(func(w sinks) { offer(w.err, e) })
}
