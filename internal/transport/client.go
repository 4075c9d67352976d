package transport

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
)

// streamClient is the shared single-peer implementation behind the TCP
// and Unix-domain client transports: dial once, then re-emit every
// inbound read verbatim to the owner. Frame extraction is the caller's
// job for these transports — unlike the server transport, streamClient
// never decodes frames itself.
type streamClient struct {
	network string
	addr    string

	mu        sync.Mutex
	conn      net.Conn
	connected atomic.Bool

	notify chan Notification
	done   chan struct{}
}

func newStreamClient(network, addr string) *streamClient {
	return &streamClient{
		network: network,
		addr:    addr,
		notify:  make(chan Notification, 32),
		done:    make(chan struct{}),
	}
}

// NewTCPClient connects outbound to host:port.
func NewTCPClient(host string, port int) Transport {
	return newStreamClient("tcp", fmt.Sprintf("%s:%d", host, port))
}

// NewUnixClient connects outbound to a Unix-domain socket path.
func NewUnixClient(path string) Transport {
	return newStreamClient("unix", path)
}

func (c *streamClient) Connect() error {
	conn, err := net.Dial(c.network, c.addr)
	if err != nil {
		return fmt.Errorf("transport: dial %s %s: %w", c.network, c.addr, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.connected.Store(true)

	go c.readLoop(conn)
	return nil
}

func (c *streamClient) readLoop(conn net.Conn) {
	buf := make([]byte, 32*1024)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			c.emit(Notification{Kind: Data, Data: chunk})
		}
		if err != nil {
			c.connected.Store(false)
			if isClosedErr(err) {
				c.emit(Notification{Kind: Closed})
			} else {
				c.emit(Notification{Kind: Error, Err: err})
			}
			return
		}
	}
}

func (c *streamClient) emit(n Notification) {
	select {
	case c.notify <- n:
	case <-c.done:
	}
}

func (c *streamClient) Send(data []byte) error {
	if !c.connected.Load() {
		return ErrNotConnected
	}
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	_, err := conn.Write(data)
	return err
}

func (c *streamClient) Disconnect() {
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

func (c *streamClient) Connected() bool {
	return c.connected.Load()
}

func (c *streamClient) Notifications() <-chan Notification {
	return c.notify
}

func isClosedErr(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}
