package player

import (
	"sync"
	"time"
)

const eventBufferSize = 64

// EventKind is the kind of resource signal.
type EventKind int

const (
	EventTimeUpdate EventKind = iota
	EventDurationChange
	EventEnded
)

func (k EventKind) String() string {
	switch k {
	case EventTimeUpdate:
		return "timeupdate"
	case EventDurationChange:
		return "durationchange"
	case EventEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Event is a signal emitted by the resource for the source identified by Handle.
type Event struct {
	Handle   Handle
	Kind     EventKind
	Position time.Duration // EventTimeUpdate
	Duration time.Duration // EventDurationChange
}

// Listener receives resource events.
type Listener func(Event)

// listeners is a registry of event listeners.
type listeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]Listener
}

func (l *listeners) add(fn Listener) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]Listener)
	}
	id := l.next
	l.next++
	l.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.fns, id)
			l.mu.Unlock()
		})
	}
}

func (l *listeners) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}

// deliver calls every listener on the caller's goroutine.
func (l *listeners) deliver(ev Event) {
	l.mu.Lock()
	fns := make([]Listener, 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// dispatcher delivers events in order on its own goroutine, so that emitters
// running under the speaker lock never call into listeners directly.
type dispatcher struct {
	listeners
	queue chan Event
	done  chan struct{}
	once  sync.Once
}

func newDispatcher() *dispatcher {
	d := &dispatcher{
		queue: make(chan Event, eventBufferSize),
		done:  make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *dispatcher) run() {
	for {
		select {
		case ev := <-d.queue:
			d.deliver(ev)
		case <-d.done:
			return
		}
	}
}

// emit never blocks. Time updates are dropped when the queue is full;
// other events wait on a helper goroutine.
func (d *dispatcher) emit(ev Event) {
	select {
	case d.queue <- ev:
		return
	default:
	}
	if ev.Kind == EventTimeUpdate {
		return
	}
	go func() {
		select {
		case d.queue <- ev:
		case <-d.done:
		}
	}()
}

func (d *dispatcher) close() {
	d.once.Do(func() { close(d.done) })
}
