package network

import "github.com/pkg/errors"

// Bus is a topic pub/sub channel between scene participants
// Delivery is at-least-once to every other participant; never to self
// Handlers run on transport goroutines and must not touch scene state directly
type Bus interface {
	Publish(topic string, payload []byte) error
	Subscribe(topic string, handler func(payload []byte))
	Close() error
}

var (
	// ErrClosed is returned by Publish after Close
	ErrClosed = errors.New("network: bus closed")

	// ErrMalformed marks an inbound payload that failed to decode or validate
	ErrMalformed = errors.New("network: malformed payload")
)

// subscriptions maps topics to handlers; callers hold their own lock
type subscriptions map[string][]func([]byte)

func (s subscriptions) add(topic string, handler func([]byte)) {
	s[topic] = append(s[topic], handler)
}

func (s subscriptions) deliver(topic string, payload []byte) {
	for _, h := range s[topic] {
		// Each handler gets its own copy; buffers are reused by transports
		buf := make([]byte, len(payload))
		copy(buf, payload)
		h(buf)
	}
}
