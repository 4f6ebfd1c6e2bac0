package ws

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/lixenwraith/zengarden/network"
)

// Client is a network.Bus over a websocket connection to a Relay
type Client struct {
	conn   *websocket.Conn
	logger *log.Logger

	mu   sync.RWMutex
	subs map[string][]func([]byte)

	send      chan []byte
	dropped   atomic.Int64
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Dial connects to a relay at url (ws:// or wss://)
func Dial(url string, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.Default()
	}

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, errors.Wrapf(err, "dial relay %s", url)
	}

	c := &Client{
		conn:   conn,
		logger: logger,
		subs:   make(map[string][]func([]byte)),
		send:   make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
	}

	c.wg.Add(2)
	go c.readLoop()
	go c.writeLoop()
	return c, nil
}

// Publish implements network.Bus; frames are dropped and counted when the send queue is full
func (c *Client) Publish(topic string, payload []byte) error {
	frame, err := network.PackTopic(topic, payload)
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return network.ErrClosed
	default:
	}

	select {
	case c.send <- frame:
	default:
		c.dropped.Add(1)
	}
	return nil
}

// Dropped returns the number of outbound frames discarded on a full send queue
func (c *Client) Dropped() int64 {
	return c.dropped.Load()
}

// Subscribe implements network.Bus
func (c *Client) Subscribe(topic string, handler func([]byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs[topic] = append(c.subs[topic], handler)
}

// Close implements network.Bus; idempotent
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait),
		)
		c.conn.Close()
	})
	c.wg.Wait()
	return nil
}

// Done is closed once the client has shut down
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) readLoop() {
	defer c.wg.Done()
	defer c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})

	for {
		kind, frame, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.logger.Printf("relay read failed: %v", err)
			}
			return
		}
		if kind != websocket.BinaryMessage {
			continue
		}

		topic, data, err := network.UnpackTopic(frame)
		if err != nil {
			c.logger.Printf("dropping relay frame: %v", err)
			continue
		}

		c.mu.RLock()
		handlers := c.subs[topic]
		c.mu.RUnlock()
		for _, h := range handlers {
			h(data)
		}
	}
}

func (c *Client) writeLoop() {
	defer c.wg.Done()
	for {
		select {
		case <-c.done:
			return
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				c.logger.Printf("relay write failed: %v", err)
				return
			}
		}
	}
}
