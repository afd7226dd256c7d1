package store

import "sync"

// Hub fans change notifications out to prefix subscribers.
type Hub struct {
	mu   sync.RWMutex
	next uint64
	subs map[uint64]subscriber
}

type subscriber struct {
	prefix string
	fn     func(path string)
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]subscriber)}
}

// Subscribe registers fn for changes at or below prefix.
func (h *Hub) Subscribe(prefix string, fn func(path string)) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = subscriber{prefix: prefix, fn: fn}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Publish notifies every subscriber whose prefix covers path.
// A subscriber on a descendant of path is notified too, since deleting
// path removes its subtree.
func (h *Hub) Publish(path string) {
	h.mu.RLock()
	var fns []func(string)
	for _, s := range h.subs {
		if Within(path, s.prefix) || Within(s.prefix, path) {
			fns = append(fns, s.fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(path)
	}
}

// Len returns the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
