package network

import (
	"bufio"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// PeerID names one accepted or dialed connection, unique per Transport
type PeerID uint32

const linkBufferSize = 16 * 1024

// link is one framed TCP connection with its own writer goroutine
// Outbound frames queue on out; a full queue drops the frame
type link struct {
	id   PeerID
	conn net.Conn
	out  chan *Message

	outSeq  atomic.Uint32
	lastIn  atomic.Uint32
	touched atomic.Int64 // UnixNano of last inbound frame

	done     chan struct{}
	stopOnce sync.Once
}

func newLink(id PeerID, conn net.Conn, queue int) *link {
	l := &link{
		id:   id,
		conn: conn,
		out:  make(chan *Message, queue),
		done: make(chan struct{}),
	}
	l.touched.Store(time.Now().UnixNano())
	return l
}

// enqueue stamps msg with this link's sequence and queues it without blocking
func (l *link) enqueue(msg *Message) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	msg.Seq = l.outSeq.Add(1)
	msg.Ack = l.lastIn.Load()
	select {
	case l.out <- msg:
		return true
	default:
		return false
	}
}

func (l *link) stop() {
	l.stopOnce.Do(func() {
		close(l.done)
		_ = l.conn.Close()
	})
}

// read delivers frames to deliver until the connection errors or stays silent for idle
// Heartbeats only refresh the deadline
func (l *link) read(deliver func(PeerID, *Message), idle time.Duration) {
	defer l.stop()

	r := bufio.NewReaderSize(l.conn, linkBufferSize)
	for {
		if idle > 0 {
			_ = l.conn.SetReadDeadline(time.Now().Add(idle))
		}
		msg, err := Decode(r)
		if err != nil {
			return
		}
		l.touched.Store(time.Now().UnixNano())
		if msg.Seq > l.lastIn.Load() {
			l.lastIn.Store(msg.Seq)
		}
		if msg.Type != MsgHeartbeat {
			deliver(l.id, msg)
		}
	}
}

// write drains out, sending a heartbeat every beat while nothing else is queued
func (l *link) write(beat time.Duration) {
	defer l.stop()

	w := bufio.NewWriterSize(l.conn, linkBufferSize)
	flush := func(msg *Message) error {
		if err := msg.Encode(w); err != nil {
			return err
		}
		return w.Flush()
	}

	var ticks <-chan time.Time
	if beat > 0 {
		ticker := time.NewTicker(beat)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for {
		var msg *Message
		select {
		case <-l.done:
			return
		case msg = <-l.out:
		case <-ticks:
			msg = &Message{Type: MsgHeartbeat, Seq: l.outSeq.Add(1), Ack: l.lastIn.Load()}
		}
		if flush(msg) != nil {
			return
		}
	}
}
