package service

import (
	"sync"

	"vacuum_packaging/internal/models"
	"vacuum_packaging/internal/packaging"
)

const defaultFeedBuffer = 32

// Feed fans controller events out to live subscribers such as websocket
// clients. A subscriber that falls behind loses events instead of
// stalling the run.
type Feed struct {
	mu     sync.Mutex
	subs   map[chan models.PackagingEvent]struct{}
	buffer int
}

var _ packaging.Observer = (*Feed)(nil)

func NewFeed(buffer int) *Feed {
	if buffer <= 0 {
		buffer = defaultFeedBuffer
	}
	return &Feed{subs: make(map[chan models.PackagingEvent]struct{}), buffer: buffer}
}

// Observe implements packaging.Observer.
func (f *Feed) Observe(e packaging.Event) {
	ev := toPackagingEvent(e)

	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe returns a channel of events and a function that ends the subscription.
func (f *Feed) Subscribe() (<-chan models.PackagingEvent, func()) {
	ch := make(chan models.PackagingEvent, f.buffer)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, ch)
			f.mu.Unlock()
			close(ch)
		})
	}
}
