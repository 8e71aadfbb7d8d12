package player

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	speakerSampleRate   = beep.SampleRate(44100)
	defaultTickInterval = 250 * time.Millisecond
)

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
)

// Player is the beep-backed audio resource. Sources are fetched whole into
// memory, decoded, and mixed through the process-wide speaker.
type Player struct {
	mu sync.Mutex

	handle Handle
	src    string
	state  State

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	queued   bool         // stream handed to the speaker
	ended    *atomic.Bool // set by the speaker callback of the current stream
	tickGen  int

	volumeLevel float64
	muted       bool

	fetch  Fetcher
	tick   time.Duration
	events *dispatcher
}

// Option configures a Player.
type Option func(*Player)

// WithFetcher replaces the source fetcher.
func WithFetcher(f Fetcher) Option {
	return func(p *Player) { p.fetch = f }
}

// New creates a player with no source.
func New(opts ...Option) *Player {
	p := &Player{
		state:       Stopped,
		volumeLevel: 1,
		fetch:       DefaultFetcher(nil),
		tick:        defaultTickInterval,
		events:      newDispatcher(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetSource detaches the previous source, silencing it, and assigns src.
func (p *Player) SetSource(src string) Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.releaseLocked()
	p.handle++
	p.src = src
	p.state = Stopped
	return p.handle
}

// Load fetches and decodes the source assigned with h. It returns the
// stream duration.
func (p *Player) Load(ctx context.Context, h Handle) (time.Duration, error) {
	p.mu.Lock()
	if h != p.handle {
		p.mu.Unlock()
		return 0, ErrSuperseded
	}
	src := p.src
	p.state = Loading
	p.mu.Unlock()

	data, err := p.fetch(ctx, src)
	if err != nil {
		p.failLoad(h)
		return 0, fmt.Errorf("fetch %s: %w", src, err)
	}

	streamer, format, err := decode(src, data)
	if err != nil {
		p.failLoad(h)
		return 0, fmt.Errorf("decode %s: %w", src, err)
	}

	p.mu.Lock()
	if h != p.handle {
		p.mu.Unlock()
		streamer.Close()
		return 0, ErrSuperseded
	}

	var playStreamer beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		playStreamer = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}
	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: playStreamer, Paused: true}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2, Volume: p.levelToVolume(p.volumeLevel), Silent: p.muted}
	p.ended = new(atomic.Bool)
	p.queued = false
	p.state = Paused
	dur := format.SampleRate.D(streamer.Len())
	p.mu.Unlock()

	p.events.emit(Event{Handle: h, Kind: EventDurationChange, Duration: dur})
	return dur, nil
}

func (p *Player) failLoad(h Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h == p.handle {
		p.state = Stopped
	}
}

// State returns the resource state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscribe registers fn for resource events. Events are delivered on the
// player's dispatch goroutine.
func (p *Player) Subscribe(fn Listener) func() {
	return p.events.add(fn)
}

// Close stops playback and the event dispatcher.
func (p *Player) Close() {
	p.Stop()
	p.events.close()
}

// releaseLocked removes the current stream from the speaker and closes it.
func (p *Player) releaseLocked() {
	if p.queued {
		speaker.Clear()
	}
	if p.streamer != nil {
		p.streamer.Close()
	}
	p.streamer = nil
	p.ctrl = nil
	p.volume = nil
	p.ended = nil
	p.queued = false
	p.tickGen++
}

func initSpeaker() error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speakerInitialized = true
	return nil
}
