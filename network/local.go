package network

import "sync"

// LocalHub connects in-process buses; every publish reaches all other joined buses
type LocalHub struct {
	mu    sync.RWMutex
	buses map[*LocalBus]struct{}
}

// NewLocalHub creates an empty hub
func NewLocalHub() *LocalHub {
	return &LocalHub{buses: make(map[*LocalBus]struct{})}
}

// Join attaches a new participant bus
func (h *LocalHub) Join() *LocalBus {
	b := &LocalBus{hub: h, subs: make(subscriptions)}
	h.mu.Lock()
	h.buses[b] = struct{}{}
	h.mu.Unlock()
	return b
}

// Size returns the number of joined buses
func (h *LocalHub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.buses)
}

func (h *LocalHub) leave(b *LocalBus) {
	h.mu.Lock()
	delete(h.buses, b)
	h.mu.Unlock()
}

func (h *LocalHub) broadcast(from *LocalBus, topic string, payload []byte) {
	h.mu.RLock()
	targets := make([]*LocalBus, 0, len(h.buses))
	for b := range h.buses {
		if b != from {
			targets = append(targets, b)
		}
	}
	h.mu.RUnlock()

	for _, b := range targets {
		b.receive(topic, payload)
	}
}

// LocalBus is one participant on a LocalHub
// Delivery is synchronous on the publisher's goroutine
type LocalBus struct {
	hub *LocalHub

	mu     sync.RWMutex
	subs   subscriptions
	closed bool
}

// Publish implements Bus
func (b *LocalBus) Publish(topic string, payload []byte) error {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	b.hub.broadcast(b, topic, payload)
	return nil
}

// Subscribe implements Bus
func (b *LocalBus) Subscribe(topic string, handler func([]byte)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs.add(topic, handler)
}

// Close implements Bus; idempotent
func (b *LocalBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()
	b.hub.leave(b)
	return nil
}

func (b *LocalBus) receive(topic string, payload []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	b.subs.deliver(topic, payload)
}
