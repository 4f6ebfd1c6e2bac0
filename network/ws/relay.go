package ws

import (
	"log"
	nethttp "net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	sendQueueSize  = 256
	defaultMaxSize = 64 * 1024
)

type RelayConfig struct {
	Logger *log.Logger

	// MaxMessageSize bounds a single inbound frame; zero uses the default
	MaxMessageSize int64
}

// Relay rebroadcasts every binary frame to all other connected participants
// It never inspects payloads
type Relay struct {
	logger   *log.Logger
	upgrader websocket.Upgrader
	maxSize  int64

	mu       sync.RWMutex
	sessions map[*session]struct{}
	closed   bool

	frames  atomic.Int64
	dropped atomic.Int64
}

func NewRelay(cfg RelayConfig) *Relay {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	maxSize := cfg.MaxMessageSize
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}

	return &Relay{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *nethttp.Request) bool {
				return true
			},
		},
		maxSize:  maxSize,
		sessions: make(map[*session]struct{}),
	}
}

// Handle upgrades the request and relays frames until the connection drops
func (r *Relay) Handle(w nethttp.ResponseWriter, req *nethttp.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Printf("upgrade failed for %s: %v", req.RemoteAddr, err)
		return
	}
	conn.SetReadLimit(r.maxSize)

	s := &session{
		conn: conn,
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		conn.Close()
		return
	}
	r.sessions[s] = struct{}{}
	r.mu.Unlock()

	go s.writeLoop()

	defer func() {
		r.mu.Lock()
		delete(r.sessions, s)
		r.mu.Unlock()
		s.close()
	}()

	for {
		kind, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				r.logger.Printf("session %s closed: %v", req.RemoteAddr, err)
			}
			return
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		r.broadcast(s, payload)
	}
}

func (r *Relay) broadcast(from *session, payload []byte) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.frames.Add(1)
	for s := range r.sessions {
		if s == from {
			continue
		}
		if !s.enqueue(payload) {
			r.dropped.Add(1)
		}
	}
}

// Sessions returns the number of connected participants
func (r *Relay) Sessions() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Frames returns the number of frames received for relay
func (r *Relay) Frames() int64 {
	return r.frames.Load()
}

// Dropped returns the number of per-session deliveries lost to a full send queue
func (r *Relay) Dropped() int64 {
	return r.dropped.Load()
}

// Close disconnects every session and refuses new ones
func (r *Relay) Close() {
	r.mu.Lock()
	r.closed = true
	sessions := make([]*session, 0, len(r.sessions))
	for s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}

type session struct {
	conn *websocket.Conn
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

// enqueue drops the frame when the session is slow; sync traffic is superseded next tick
// Reports false only for a drop on a live session
func (s *session) enqueue(payload []byte) bool {
	select {
	case <-s.done:
		return true
	case s.send <- payload:
		return true
	default:
		return false
	}
}

func (s *session) writeLoop() {
	for {
		select {
		case <-s.done:
			return
		case payload := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
				s.close()
				return
			}
		}
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}
