package sse

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Event is a single server-sent event addressed to one user.
type Event struct {
	Name string
	Data any
}

type subscriber struct {
	ch   chan Event
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

// Hub fans events out to the open streams of each user.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*subscriber]struct{}
	closed      bool
	bufferSize  int
	dropped     atomic.Int64
}

// NewHub creates a hub whose subscriber channels hold bufferSize events.
func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 10
	}
	return &Hub{
		subscribers: make(map[string]map[*subscriber]struct{}),
		bufferSize:  bufferSize,
	}
}

// Subscribe registers a stream for userID. The returned cleanup is safe to call
// more than once. After Close the channel is returned already closed.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &subscriber{ch: make(chan Event, h.bufferSize)}
	if h.closed {
		sub.close()
		return sub.ch, func() {}
	}

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[*subscriber]struct{})
	}
	h.subscribers[userID][sub] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.subscribers[userID]; ok {
			delete(subs, sub)
			if len(subs) == 0 {
				delete(h.subscribers, userID)
			}
		}
		sub.close()
	}

	return sub.ch, cleanup
}

// Publish delivers event to every stream of userID without blocking. Events for
// full streams are dropped and counted.
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers[userID] {
		select {
		case sub.ch <- event:
		default:
			h.dropped.Add(1)
		}
	}
}

// openStreams counts streams; callers hold h.mu.
func (h *Hub) openStreams() int {
	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}

// Dropped reports how many events were discarded because a stream was full.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Close ends every open stream. Later subscriptions receive a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	slog.Info("sse hub closing", "open_streams", h.openStreams(), "dropped_events", h.dropped.Load())
	for userID, subs := range h.subscribers {
		for sub := range subs {
			sub.close()
		}
		delete(h.subscribers, userID)
	}
}
