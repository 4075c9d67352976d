// Package transport implements the transport abstraction: a uniform
// connect/send/disconnect/connected? interface with one implementation
// per wire carrier (outbound TCP, outbound Unix socket, outbound
// WebSocket, and the multi-client inbound TCP server in server.go).
package transport

import "errors"

// ErrNotConnected is returned by Send when the transport has no live peer.
var ErrNotConnected = errors.New("transport: not connected")

// Peer identifies one connected endpoint. For single-peer client
// transports it is always the same opaque value; for the multi-client
// server it distinguishes one accepted connection from another.
type Peer uint64

// EventKind tags a Notification.
type EventKind int

const (
	// Data carries inbound bytes (client transports, verbatim) or a
	// complete decoded frame (server transport, frame-extracted already).
	Data EventKind = iota
	Closed
	Error
)

// Notification is the message a Transport delivers to its owner for every
// inbound byte chunk / frame, and for every disconnect or error.
type Notification struct {
	Kind EventKind
	Peer Peer
	Data []byte
	Err  error
}

// Transport is the capability set every wire carrier implements: connect,
// send, disconnect, and a connected? query, plus ownership transfer of the
// inbound notification stream. Implementations deliver notifications on
// the channel returned by Notifications(); the channel itself is never
// closed by Disconnect or a fatal error. For client transports a Closed or
// Error notification (Peer zero) marks the end of the connection. The
// server transport tags Closed and Error with the handle of the one peer
// that was removed; the listener and the other peers stay up.
type Transport interface {
	// Connect establishes the connection (or starts listening, for the
	// server transport). It blocks until the initial connect/listen
	// either succeeds or fails.
	Connect() error

	// Send transmits data. For the server transport this broadcasts to
	// every connected peer and always returns nil, even with no peers.
	// Client transports return ErrNotConnected if nothing is connected.
	// Never blocks indefinitely.
	Send(data []byte) error

	// Disconnect tears down the transport and releases its resources.
	// Safe to call more than once.
	Disconnect()

	// Connected reports whether the transport currently has at least one
	// live peer.
	Connected() bool

	// Notifications returns the channel of inbound notifications. The
	// same channel is returned on every call.
	Notifications() <-chan Notification
}
