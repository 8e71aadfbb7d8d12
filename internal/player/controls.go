package player

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Play starts or resumes the source assigned with h. A stream that reached
// its end restarts from the beginning, or from where SeekTo moved it.
func (p *Player) Play(h Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if h != p.handle {
		return ErrSuperseded
	}
	if p.streamer == nil || !p.state.IsLoaded() {
		return ErrNotLoaded
	}
	if p.state == Playing && !p.ended.Load() {
		return nil
	}
	if err := initSpeaker(); err != nil {
		return fmt.Errorf("init audio output: %w", err)
	}

	if p.ended.Load() {
		p.ended.Store(false)
		p.queued = false
		if err := p.streamer.Seek(0); err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
	}

	if p.queued {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
	} else {
		ended := p.ended
		p.ctrl.Paused = false
		speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
			// Runs under the speaker lock: flag and hand off only.
			ended.Store(true)
			p.events.emit(Event{Handle: h, Kind: EventEnded})
		})))
		p.queued = true
	}

	p.state = Playing
	p.tickGen++
	go p.tickLoop(h, p.tickGen)
	return nil
}

// Pause pauses playback. It never fails.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
	p.tickGen++
}

// Stop releases the current source. Pending Load and Play requests for it
// fail with ErrSuperseded.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.releaseLocked()
	p.handle++
	p.src = ""
	p.state = Stopped
}

// SeekTo jumps to pos, clamped to the stream bounds. Seeking a stream that
// reached its end takes it off the speaker, so the next Play queues it
// again from pos.
func (p *Player) SeekTo(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return
	}
	if p.ended != nil && p.ended.Load() {
		p.ended.Store(false)
		p.queued = false
		if p.state == Playing {
			p.state = Paused
			p.tickGen++
		}
	}
	n := p.format.SampleRate.N(pos)
	n = max(n, 0)
	n = min(n, max(p.streamer.Len()-1, 0))

	speaker.Lock()
	_ = p.streamer.Seek(n)
	speaker.Unlock()
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

// Duration returns the length of the loaded stream, 0 when unknown.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// tickLoop emits time updates until playback of h stops or another loop
// takes over.
func (p *Player) tickLoop(h Handle, gen int) {
	t := time.NewTicker(p.tick)
	defer t.Stop()

	for range t.C {
		p.mu.Lock()
		if h != p.handle || gen != p.tickGen || p.state != Playing {
			p.mu.Unlock()
			return
		}
		if p.ended.Load() {
			p.state = Paused
			p.mu.Unlock()
			return
		}
		pos := p.positionLocked()
		p.mu.Unlock()

		p.events.emit(Event{Handle: h, Kind: EventTimeUpdate, Position: pos})
	}
}
