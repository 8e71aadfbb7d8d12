package playback

import (
	"context"
	"time"

	"github.com/llehouerou/tunebrew/internal/player"
)

// binder keeps at most one live binding between the session and the
// resource. Callbacks run on resource or worker goroutines; the session
// checks their ticket before acting on them.
type binder struct {
	res    player.Interface
	handle player.Handle
	cancel context.CancelFunc
	unsub  func()
}

// bind drops the previous binding, assigns src and starts loading it.
func (b *binder) bind(src string, onEvent player.Listener, onLoaded func(time.Duration, error)) {
	b.unbind()

	h := b.res.SetSource(src)
	ctx, cancel := context.WithCancel(context.Background())
	b.handle = h
	b.cancel = cancel
	b.unsub = b.res.Subscribe(func(ev player.Event) {
		if ev.Handle == h {
			onEvent(ev)
		}
	})

	res := b.res
	go func() {
		d, err := res.Load(ctx, h)
		onLoaded(d, err)
	}()
}

// unbind detaches the listener and cancels a pending load. The resource
// keeps its source until the next bind or stop.
func (b *binder) unbind() {
	if b.unsub != nil {
		b.unsub()
		b.unsub = nil
	}
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.handle = 0
}

func (b *binder) bound() bool {
	return b.handle != 0
}

// play requests playback of the bound source on a worker goroutine.
func (b *binder) play(onResult func(error)) {
	res, h := b.res, b.handle
	go func() {
		onResult(res.Play(h))
	}()
}

func (b *binder) pause() {
	b.res.Pause()
}

func (b *binder) seek(pos time.Duration) {
	b.res.SeekTo(pos)
}

// stop drops the binding and releases the resource.
func (b *binder) stop() {
	b.unbind()
	b.res.Stop()
}
