package transport

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// wsClient connects outbound to a WebSocket URL, exchanging binary frames
// only. A close frame (of any kind) is reported as a plain Closed
// notification — closes are always treated as disconnects, never
// surfaced as a distinct error kind.
type wsClient struct {
	url string

	mu        sync.Mutex
	conn      *websocket.Conn
	connected atomic.Bool

	notify chan Notification
	done   chan struct{}
}

// NewWebSocketClient connects outbound to a WebSocket URL.
func NewWebSocketClient(url string) Transport {
	return &wsClient{
		url:    url,
		notify: make(chan Notification, 32),
		done:   make(chan struct{}),
	}
}

func (c *wsClient) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("transport: websocket dial %s: %w", c.url, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.connected.Store(true)

	go c.readLoop(conn)
	return nil
}

func (c *wsClient) readLoop(conn *websocket.Conn) {
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			c.connected.Store(false)
			if _, isClose := err.(*websocket.CloseError); isClose {
				c.emit(Notification{Kind: Closed})
			} else {
				c.emit(Notification{Kind: Error, Err: err})
			}
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}
		c.emit(Notification{Kind: Data, Data: data})
	}
}

func (c *wsClient) emit(n Notification) {
	select {
	case c.notify <- n:
	case <-c.done:
	}
}

func (c *wsClient) Send(data []byte) error {
	if !c.connected.Load() {
		return ErrNotConnected
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return ErrNotConnected
	}
	return c.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (c *wsClient) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	c.connected.Store(false)
	if conn != nil {
		conn.Close()
	}
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

func (c *wsClient) Connected() bool {
	return c.connected.Load()
}

func (c *wsClient) Notifications() <-chan Notification {
	return c.notify
}
