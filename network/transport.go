package network

import (
	"context"
	"crypto/tls"
	"net"
	"sync"

	"github.com/pkg/errors"
)

// ErrMaxPeers is returned when a host refuses a connection at capacity
var ErrMaxPeers = errors.New("network: max peers reached")

// Handlers receive link lifecycle and frames; they run on link goroutines
type Handlers struct {
	OnConnect    func(PeerID)
	OnDisconnect func(PeerID)
	OnMessage    func(PeerID, *Message)
}

// Transport owns the listener (host) or the single dialed link (peer)
type Transport struct {
	cfg      *Config
	handlers Handlers

	mu       sync.RWMutex
	links    map[PeerID]*link
	nextID   PeerID
	listener net.Listener

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewTransport(cfg *Config) *Transport {
	return &Transport{
		cfg:   cfg,
		links: make(map[PeerID]*link),
	}
}

// SetHandlers must be called before Start
func (t *Transport) SetHandlers(h Handlers) {
	t.handlers = h
}

// Start listens or dials according to the configured role; a second call is a no-op
func (t *Transport) Start() error {
	t.mu.Lock()
	if t.cancel != nil {
		t.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.mu.Unlock()

	var err error
	switch t.cfg.Role {
	case RoleHost:
		err = t.listen(ctx)
	case RolePeer:
		err = t.dial(ctx)
	default:
		err = errors.Errorf("transport cannot start as %s", t.cfg.Role)
	}
	if err != nil {
		cancel()
		t.mu.Lock()
		t.cancel = nil
		t.mu.Unlock()
	}
	return err
}

func (t *Transport) listen(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", t.cfg.Address)
	if err != nil {
		return errors.Wrapf(err, "listen %s", t.cfg.Address)
	}
	if t.cfg.TLS != nil {
		ln = tls.NewListener(ln, t.cfg.TLS)
	}

	t.mu.Lock()
	t.listener = ln
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				var ne net.Error
				if errors.As(err, &ne) && ne.Timeout() {
					continue
				}
				return
			}
			// Refused connections are already closed
			_, _ = t.adopt(conn)
		}
	}()
	return nil
}

func (t *Transport) dial(ctx context.Context) error {
	d := &net.Dialer{Timeout: t.cfg.ConnectTimeout}
	var (
		conn net.Conn
		err  error
	)
	if t.cfg.TLS != nil {
		td := &tls.Dialer{NetDialer: d, Config: t.cfg.TLS}
		conn, err = td.DialContext(ctx, "tcp", t.cfg.Address)
	} else {
		conn, err = d.DialContext(ctx, "tcp", t.cfg.Address)
	}
	if err != nil {
		return errors.Wrapf(err, "dial %s", t.cfg.Address)
	}
	_, err = t.adopt(conn)
	return err
}

// adopt registers conn as a link and starts its goroutines
func (t *Transport) adopt(conn net.Conn) (PeerID, error) {
	t.mu.Lock()
	if t.cfg.MaxPeers > 0 && len(t.links) >= t.cfg.MaxPeers {
		t.mu.Unlock()
		_ = conn.Close()
		return 0, ErrMaxPeers
	}
	t.nextID++
	l := newLink(t.nextID, conn, t.cfg.SendQueueSize)
	t.links[l.id] = l
	t.mu.Unlock()

	deliver := func(id PeerID, msg *Message) {
		if t.handlers.OnMessage != nil {
			t.handlers.OnMessage(id, msg)
		}
	}

	t.wg.Add(2)
	go func() {
		defer t.wg.Done()
		l.read(deliver, t.cfg.DisconnectTimeout)
	}()
	go func() {
		defer t.wg.Done()
		l.write(t.cfg.HeartbeatInterval)
		<-l.done
		t.mu.Lock()
		delete(t.links, l.id)
		t.mu.Unlock()
		if t.handlers.OnDisconnect != nil {
			t.handlers.OnDisconnect(l.id)
		}
	}()

	if t.handlers.OnConnect != nil {
		t.handlers.OnConnect(l.id)
	}
	return l.id, nil
}

// Stop closes the listener and every link, then waits for their goroutines
func (t *Transport) Stop() error {
	t.mu.Lock()
	cancel := t.cancel
	ln := t.listener
	t.mu.Unlock()
	if cancel == nil {
		return nil
	}

	cancel()
	if ln != nil {
		_ = ln.Close()
	}

	t.mu.RLock()
	links := make([]*link, 0, len(t.links))
	for _, l := range t.links {
		links = append(links, l)
	}
	t.mu.RUnlock()
	for _, l := range links {
		l.stop()
	}

	t.wg.Wait()
	return nil
}

// Addr returns the bound listener address, nil unless hosting
func (t *Transport) Addr() net.Addr {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

// Broadcast queues a copy of msg on every link except one; 0 excludes none
// Returns how many links accepted the frame
func (t *Transport) Broadcast(msg *Message, except PeerID) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	sent := 0
	for id, l := range t.links {
		if id == except {
			continue
		}
		cp := *msg
		if l.enqueue(&cp) {
			sent++
		}
	}
	return sent
}

func (t *Transport) PeerCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.links)
}
