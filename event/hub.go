package event

import "sync"

// Hub is a synchronous typed publish/subscribe point
// Publish calls subscribers in registration order on the publisher's goroutine
type Hub[T any] struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []hubSub[T]
}

type hubSub[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it
func (h *Hub[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, hubSub[T]{id: id, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i, s := range h.subs {
				if s.id == id {
					h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish delivers v to every current subscriber
func (h *Hub[T]) Publish(v T) {
	h.mu.RLock()
	subs := h.subs
	h.mu.RUnlock()
	for _, s := range subs {
		s.fn(v)
	}
}

// Len returns the subscriber count
func (h *Hub[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
