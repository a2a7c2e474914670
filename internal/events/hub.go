package events

import (
	"sync"

	"github.com/alfagnish/itemsd/internal/items"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 32

// Hub fans item events out to any number of subscribers. It implements
// items.Notifier and is safe for concurrent use.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan items.Event]struct{}
	buffer int
}

// NewHub creates a hub whose subscriber channels hold up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[chan items.Event]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. The returned func removes it and
// closes the channel; calling it more than once is safe.
func (h *Hub) Subscribe() (<-chan items.Event, func()) {
	ch := make(chan items.Event, h.buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Notify delivers e to every subscriber without blocking. Subscribers
// with a full buffer miss the event.
func (h *Hub) Notify(e items.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
