// Package bus is a minimal in-process publish/subscribe hub with explicit
// handler registration, standing in for an external event system.
package bus

import (
    "sync"

    "go.uber.org/zap"
)

// Handler receives one published payload. Publishers invoke handlers
// synchronously; a handler that must block should hand off to its own
// goroutine.
type Handler func(payload []byte)

// Bus routes payloads to the handlers registered for a topic.
type Bus struct {
    mu       sync.RWMutex
    handlers map[string][]Handler
}

func New() *Bus { return &Bus{handlers: make(map[string][]Handler)} }

// Subscribe registers h for topic. Subscriptions live for the lifetime of the
// bus; there is no unsubscribe.
func (b *Bus) Subscribe(topic string, h Handler) {
    b.mu.Lock()
    defer b.mu.Unlock()
    b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish delivers payload to every handler registered for topic.
// Fire-and-forget: there is no result and no acknowledgment, and publishing
// to a topic with no subscribers is not an error.
func (b *Bus) Publish(topic string, payload []byte) {
    b.mu.RLock()
    hs := make([]Handler, len(b.handlers[topic]))
    copy(hs, b.handlers[topic])
    b.mu.RUnlock()

    if len(hs) == 0 {
        zap.L().Debug("no subscribers for topic", zap.String("topic", topic))
        return
    }
    for _, h := range hs {
        h(payload)
    }
}
