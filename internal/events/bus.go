package events

import "sync"

// Handler receives a published event type and payload.
type Handler func(eventType string, payload map[string]any)

// Bus is a synchronous in-process publish/subscribe hub. It replaces the
// implicit client-side cache invalidation of the old UI: a successful
// upsert publishes here and whatever cache the caller chose listens.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(eventType string, h Handler) {
	if b == nil || h == nil {
		return
	}
	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
	b.mu.Unlock()
}

// Publish invokes every handler registered for the event type, in
// subscription order, on the caller's goroutine.
func (b *Bus) Publish(eventType string, payload map[string]any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[eventType]...)
	b.mu.RUnlock()
	for _, h := range handlers {
		h(eventType, payload)
	}
}
