// internal/player/mock.go
package player

import (
	"context"
	"sync"
	"time"
)

type loadResult struct {
	duration time.Duration
	err      error
}

// Mock is a test double for Player. It is safe for concurrent use.
//
// By default Load and Play complete immediately. HoldLoads and HoldPlays
// make them block until the test releases them, which lets tests interleave
// user actions with in-flight requests.
type Mock struct {
	mu sync.Mutex

	handle   Handle
	state    State
	position time.Duration
	duration time.Duration
	ended    bool

	durations map[string]time.Duration
	loadErr   error
	playErr   error

	holdLoads    bool
	holdPlays    bool
	pendingLoads map[Handle]chan loadResult
	pendingPlays map[Handle]chan error

	sources   []string
	loadCalls []Handle
	playCalls []Handle
	seekCalls []time.Duration
	stops     int

	listeners listeners
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		state:        Stopped,
		durations:    make(map[string]time.Duration),
		pendingLoads: make(map[Handle]chan loadResult),
		pendingPlays: make(map[Handle]chan error),
	}
}

func (m *Mock) SetSource(src string) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.abortPendingLocked()
	m.handle++
	m.sources = append(m.sources, src)
	m.state = Stopped
	m.position = 0
	m.duration = 0
	m.ended = false
	return m.handle
}

func (m *Mock) Load(ctx context.Context, h Handle) (time.Duration, error) {
	m.mu.Lock()
	m.loadCalls = append(m.loadCalls, h)
	if h != m.handle {
		m.mu.Unlock()
		return 0, ErrSuperseded
	}
	m.state = Loading
	if !m.holdLoads {
		res := loadResult{duration: m.durations[m.currentSourceLocked()], err: m.loadErr}
		m.finishLoadLocked(h, res)
		m.mu.Unlock()
		return res.duration, res.err
	}
	ch := make(chan loadResult, 1)
	m.pendingLoads[h] = ch
	m.mu.Unlock()

	select {
	case res := <-ch:
		m.mu.Lock()
		defer m.mu.Unlock()
		if h != m.handle {
			return 0, ErrSuperseded
		}
		m.finishLoadLocked(h, res)
		return res.duration, res.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (m *Mock) finishLoadLocked(h Handle, res loadResult) {
	if h != m.handle {
		return
	}
	if res.err != nil {
		m.state = Stopped
		return
	}
	m.state = Paused
	m.duration = res.duration
}

func (m *Mock) Play(h Handle) error {
	m.mu.Lock()
	m.playCalls = append(m.playCalls, h)
	if h != m.handle {
		m.mu.Unlock()
		return ErrSuperseded
	}
	if !m.state.IsLoaded() {
		m.mu.Unlock()
		return ErrNotLoaded
	}
	if !m.holdPlays {
		err := m.playErr
		if err == nil {
			m.startLocked()
		}
		m.mu.Unlock()
		return err
	}
	ch := make(chan error, 1)
	m.pendingPlays[h] = ch
	m.mu.Unlock()

	err := <-ch
	m.mu.Lock()
	defer m.mu.Unlock()
	if h != m.handle {
		return ErrSuperseded
	}
	if err == nil {
		m.startLocked()
	}
	return err
}

// startLocked mirrors Player: an ended stream restarts from the beginning.
func (m *Mock) startLocked() {
	if m.ended {
		m.ended = false
		m.position = 0
	}
	m.state = Playing
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.abortPendingLocked()
	m.handle++
	m.state = Stopped
	m.position = 0
	m.duration = 0
	m.ended = false
	m.stops++
}

// abortPendingLocked fails held requests the way the real player refuses
// requests for a replaced source.
func (m *Mock) abortPendingLocked() {
	for h, ch := range m.pendingLoads {
		ch <- loadResult{err: ErrSuperseded}
		delete(m.pendingLoads, h)
	}
	for h, ch := range m.pendingPlays {
		ch <- ErrSuperseded
		delete(m.pendingPlays, h)
	}
}

func (m *Mock) SeekTo(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
	if m.ended {
		m.ended = false
		if m.state == Playing {
			m.state = Paused
		}
	}
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Subscribe(fn Listener) func() {
	return m.listeners.add(fn)
}

func (m *Mock) currentSourceLocked() string {
	if len(m.sources) == 0 {
		return ""
	}
	return m.sources[len(m.sources)-1]
}

// Test helpers

// SetSourceDuration sets the duration Load reports for src.
func (m *Mock) SetSourceDuration(src string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[src] = d
}

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

// HoldLoads makes subsequent Load calls block until ReleaseLoad.
func (m *Mock) HoldLoads(hold bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holdLoads = hold
}

// HoldPlays makes subsequent Play calls block until ReleasePlay.
func (m *Mock) HoldPlays(hold bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holdPlays = hold
}

// ReleaseLoad completes the held Load for h. It reports whether one was pending.
func (m *Mock) ReleaseLoad(h Handle, d time.Duration, err error) bool {
	m.mu.Lock()
	ch, ok := m.pendingLoads[h]
	delete(m.pendingLoads, h)
	m.mu.Unlock()
	if ok {
		ch <- loadResult{duration: d, err: err}
	}
	return ok
}

// ReleasePlay completes the held Play for h. It reports whether one was pending.
func (m *Mock) ReleasePlay(h Handle, err error) bool {
	m.mu.Lock()
	ch, ok := m.pendingPlays[h]
	delete(m.pendingPlays, h)
	m.mu.Unlock()
	if ok {
		ch <- err
	}
	return ok
}

// Emit delivers ev to the current listeners on the caller's goroutine. An
// EventEnded for the current handle marks the stream as finished first.
func (m *Mock) Emit(ev Event) {
	if ev.Kind == EventEnded {
		m.mu.Lock()
		if ev.Handle == m.handle {
			m.ended = true
			m.position = m.duration
		}
		m.mu.Unlock()
	}
	m.listeners.deliver(ev)
}

// Handle returns the current source handle.
func (m *Mock) Handle() Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handle
}

func (m *Mock) Sources() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sources...)
}

func (m *Mock) LoadCalls() []Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Handle(nil), m.loadCalls...)
}

func (m *Mock) PlayCalls() []Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Handle(nil), m.playCalls...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) Stops() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stops
}

// ListenerCount returns the number of subscribed listeners.
func (m *Mock) ListenerCount() int {
	return m.listeners.len()
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
