package playback

// eventBufferSize is how far a subscriber may fall behind on one event kind
// before newer events of that kind are dropped for it.
const eventBufferSize = 16

// Subscription is one reader's view of the session: a channel per event
// kind, and Done, closed once the session shuts down. The session never
// waits on a reader.
type Subscription struct {
	StateChanged    <-chan StateChange
	TrackChanged    <-chan TrackChange
	ProgressChanged <-chan ProgressChange
	ViewChanged     <-chan ViewChange
	LikeChanged     <-chan LikeChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	w sinks
}

// sinks are the session's write ends of a subscription.
type sinks struct {
	state    chan StateChange
	track    chan TrackChange
	progress chan ProgressChange
	view     chan ViewChange
	like     chan LikeChange
	err      chan ErrorEvent
	done     chan struct{}
}

func newSubscription() *Subscription {
	w := sinks{
		state:    make(chan StateChange, eventBufferSize),
		track:    make(chan TrackChange, eventBufferSize),
		progress: make(chan ProgressChange, eventBufferSize),
		view:     make(chan ViewChange, eventBufferSize),
		like:     make(chan LikeChange, eventBufferSize),
		err:      make(chan ErrorEvent, eventBufferSize),
		done:     make(chan struct{}),
	}
	return &Subscription{
		StateChanged:    w.state,
		TrackChanged:    w.track,
		ProgressChanged: w.progress,
		ViewChanged:     w.view,
		LikeChanged:     w.like,
		Error:           w.err,
		Done:            w.done,
		w:               w,
	}
}

func (s *Subscription) close() {
	close(s.w.done)
}

// offer queues v unless the buffer is full, in which case v is dropped.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}
