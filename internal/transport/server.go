package transport

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/scenic-remote/driver/internal/protocol"
)

// acceptTimeout bounds each Accept() call so the accept loop can notice
// Disconnect promptly instead of blocking indefinitely.
const acceptTimeout = 100 * time.Millisecond

// peer is one accepted connection: its socket and its own frame
// accumulator, since inbound bytes from different peers must never be
// interleaved before extraction.
type peer struct {
	id   Peer
	conn net.Conn
	acc  protocol.Accumulator
	mu   sync.Mutex // guards writes to conn
}

// Server is the multi-client inbound TCP server transport. It listens on
// a bound address:port, accepts concurrent connections, broadcasts sends
// to every peer, and forwards each peer's extracted frames upward tagged
// with that peer's handle.
type Server struct {
	addr string

	mu       sync.RWMutex
	listener net.Listener
	clients  map[Peer]*peer
	nextID   Peer

	notify chan Notification
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer creates a multi-client TCP server transport bound to addr
// (e.g. "0.0.0.0:4001").
func NewServer(addr string) *Server {
	return &Server{
		addr:    addr,
		clients: make(map[Peer]*peer),
		notify:  make(chan Notification, 128),
	}
}

func (s *Server) Connect() error {
	ln, err := listenConfig.Listen(context.Background(), "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("transport: listen %s: %w", s.addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.wg.Add(1)
	go s.acceptLoop(ln)
	return nil
}

func (s *Server) acceptLoop(ln net.Listener) {
	defer s.wg.Done()

	tcpLn, hasDeadline := ln.(*net.TCPListener)
	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		if hasDeadline {
			tcpLn.SetDeadline(time.Now().Add(acceptTimeout))
		}

		conn, err := ln.Accept()
		if err != nil {
			if s.ctx.Err() != nil {
				return
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			// Fatal listener closure.
			return
		}

		s.addPeer(conn)
	}
}

func (s *Server) addPeer(conn net.Conn) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	p := &peer{id: id, conn: conn}
	s.clients[id] = p
	s.mu.Unlock()

	s.wg.Add(1)
	go s.readPeer(p)
}

func (s *Server) readPeer(p *peer) {
	defer s.wg.Done()

	buf := make([]byte, 32*1024)
	for {
		n, err := p.conn.Read(buf)
		if n > 0 {
			frames, fErr := p.acc.Feed(buf[:n])
			for _, f := range frames {
				cp := make([]byte, len(f))
				copy(cp, f)
				s.emit(Notification{Kind: Data, Peer: p.id, Data: cp})
			}
			if fErr != nil {
				s.removePeer(p.id, fErr)
				return
			}
		}
		if err != nil {
			s.removePeer(p.id, err)
			return
		}
	}
}

func (s *Server) removePeer(id Peer, cause error) {
	s.mu.Lock()
	p, ok := s.clients[id]
	if ok {
		delete(s.clients, id)
	}
	s.mu.Unlock()

	if !ok {
		return
	}
	p.conn.Close()

	if cause != nil {
		s.emit(Notification{Kind: Error, Peer: id, Err: cause})
	} else {
		s.emit(Notification{Kind: Closed, Peer: id})
	}
}

func (s *Server) emit(n Notification) {
	select {
	case s.notify <- n:
	default:
		// Owner too slow to drain; drop rather than block the peer's
		// read loop. Dropped notifications are not counted anywhere.
	}
}

// Send broadcasts data to every connected peer. It always reports success
// even if every peer failed to write.
func (s *Server) Send(data []byte) error {
	s.mu.RLock()
	peers := make([]*peer, 0, len(s.clients))
	for _, p := range s.clients {
		peers = append(peers, p)
	}
	s.mu.RUnlock()

	var failed []Peer
	for _, p := range peers {
		p.mu.Lock()
		_, err := p.conn.Write(data)
		p.mu.Unlock()
		if err != nil {
			failed = append(failed, p.id)
		}
	}

	for _, id := range failed {
		s.removePeer(id, fmt.Errorf("transport: broadcast write failed"))
	}
	return nil
}

func (s *Server) Disconnect() {
	s.mu.Lock()
	ln := s.listener
	s.listener = nil
	peers := make([]*peer, 0, len(s.clients))
	for _, p := range s.clients {
		peers = append(peers, p)
	}
	s.clients = make(map[Peer]*peer)
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	for _, p := range peers {
		p.conn.Close()
	}
	if ln != nil {
		ln.Close()
	}
	s.wg.Wait()
}

// Connected reports whether at least one peer is currently alive.
func (s *Server) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients) > 0
}

// PeerCount returns the current number of connected peers (used by the
// observability endpoint).
func (s *Server) PeerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) Notifications() <-chan Notification {
	return s.notify
}
