package network

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// TCPBus carries Sync Channel topics over the framed TCP transport
// A host relays every inbound frame to all other peers and delivers it locally,
// so each participant reaches every other one through the host
type TCPBus struct {
	transport *Transport
	role      Role
	logger    *log.Logger

	mu   sync.RWMutex
	subs subscriptions

	closed atomic.Bool

	statRelayed atomic.Int64
	statDropped atomic.Int64
}

// NewTCPBus starts a transport for cfg and returns the bus over it
func NewTCPBus(cfg *Config, logger *log.Logger) (*TCPBus, error) {
	if cfg == nil {
		return nil, errors.New("network: nil config")
	}
	if cfg.Role == RoleNone {
		return nil, errors.New("network: tcp bus requires host or peer role")
	}
	if logger == nil {
		logger = log.Default()
	}

	b := &TCPBus{
		transport: NewTransport(cfg),
		role:      cfg.Role,
		logger:    logger,
		subs:      make(subscriptions),
	}
	b.transport.SetHandlers(Handlers{
		OnConnect:    b.onConnect,
		OnDisconnect: b.onDisconnect,
		OnMessage:    b.onMessage,
	})

	if err := b.transport.Start(); err != nil {
		return nil, errors.Wrapf(err, "start %s transport", cfg.Role)
	}
	return b, nil
}

// Publish implements Bus; frames are dropped for peers whose send queue is full
func (b *TCPBus) Publish(topic string, payload []byte) error {
	if b.closed.Load() {
		return ErrClosed
	}
	frame, err := PackTopic(topic, payload)
	if err != nil {
		return err
	}
	if len(frame) > MaxPayload {
		return errors.Errorf("frame of %d bytes exceeds maximum size", len(frame))
	}

	b.transport.Broadcast(NewMessage(MsgStateSync, frame), 0)
	return nil
}

// Subscribe implements Bus
func (b *TCPBus) Subscribe(topic string, handler func([]byte)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs.add(topic, handler)
}

// Close implements Bus; idempotent
func (b *TCPBus) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	return b.transport.Stop()
}

// Addr returns the listening address when hosting
func (b *TCPBus) Addr() string {
	if a := b.transport.Addr(); a != nil {
		return a.String()
	}
	return ""
}

// PeerCount returns connected peer count
func (b *TCPBus) PeerCount() int {
	return b.transport.PeerCount()
}

// Relayed returns the number of frames a host forwarded between peers
func (b *TCPBus) Relayed() int64 {
	return b.statRelayed.Load()
}

// Dropped returns the number of inbound frames that failed to unpack
func (b *TCPBus) Dropped() int64 {
	return b.statDropped.Load()
}

func (b *TCPBus) onConnect(id PeerID) {
	b.logger.Printf("peer %d connected (%s)", id, b.role)
}

func (b *TCPBus) onDisconnect(id PeerID) {
	b.logger.Printf("peer %d disconnected", id)
}

// onMessage runs on the peer's read goroutine
func (b *TCPBus) onMessage(id PeerID, msg *Message) {
	if msg.Type != MsgStateSync || b.closed.Load() {
		return
	}

	topic, data, err := UnpackTopic(msg.Payload)
	if err != nil {
		b.statDropped.Add(1)
		b.logger.Printf("dropping frame from peer %d: %v", id, err)
		return
	}

	if b.role == RoleHost {
		relay := NewMessage(MsgStateSync, msg.Payload)
		relay.Flags = FlagRelayed
		if b.transport.Broadcast(relay, id) > 0 {
			b.statRelayed.Add(1)
		}
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	b.subs.deliver(topic, data)
}
