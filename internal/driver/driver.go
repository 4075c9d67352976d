// Package driver implements the engine that mediates between the host
// scene-graph runtime and a transport: it owns the connection state
// machine, runs the post-Ready re-sync protocol, translates inbound
// renderer events into host input calls, and computes the viewport
// transform. It runs as a single actor goroutine — every host call
// arrives through one inbox channel and every transport notification is
// read by the same goroutine, so driver state is never touched from more
// than one goroutine at a time.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/scenic-remote/driver/internal/config"
	"github.com/scenic-remote/driver/internal/host"
	"github.com/scenic-remote/driver/internal/protocol"
	"github.com/scenic-remote/driver/internal/transport"
)

// connState is the engine's connection state machine.
type connState int

const (
	stateInit connState = iota
	stateScheduled
	stateConnected
	stateSynced
)

func (s connState) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateScheduled:
		return "scheduled"
	case stateConnected:
		return "connected"
	case stateSynced:
		return "synced"
	default:
		return "unknown"
	}
}

// Driver mediates between a host scene-graph runtime and a renderer
// transport, keeping the renderer's scene, media cache, and viewport
// transform in sync with the host.
type Driver struct {
	cfg    config.DriverConfig
	logger *slog.Logger

	scene  host.Scene
	assets host.AssetStore
	input  host.InputSink

	inbox chan func()

	state     connState
	tr        transport.Transport
	acc       protocol.Accumulator
	media     mediaCache
	viewportW uint32
	viewportH uint32

	bytesReceived atomic.Uint64
	reconnects    atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc
}

// New constructs a Driver. It does not connect until Start is called.
func New(cfg config.DriverConfig, scene host.Scene, assets host.AssetStore, input host.InputSink, logger *slog.Logger) *Driver {
	return &Driver{
		cfg:       cfg,
		logger:    logger,
		scene:     scene,
		assets:    assets,
		input:     input,
		inbox:     make(chan func(), 64),
		media:     newMediaCache(),
		viewportW: cfg.Viewport.Width,
		viewportH: cfg.Viewport.Height,
	}
}

// Start launches the actor goroutine and makes the initial connection
// attempt.
func (d *Driver) Start(ctx context.Context) {
	d.ctx, d.cancel = context.WithCancel(ctx)
	go d.run()
	d.post(func() { d.attemptConnect() })
}

// Stop tears down the transport and ends the actor goroutine.
func (d *Driver) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
}

// post enqueues a closure onto the actor's inbox. Called by every public
// host-facing method below; never blocks the caller for long since the
// inbox is buffered and the actor drains it promptly.
func (d *Driver) post(fn func()) {
	select {
	case d.inbox <- fn:
	case <-d.ctx.Done():
	}
}

func (d *Driver) run() {
	var reconnectTimer *time.Timer
	var reconnectC <-chan time.Time

	defer func() {
		if reconnectTimer != nil {
			reconnectTimer.Stop()
		}
		if d.tr != nil {
			d.tr.Disconnect()
		}
	}()

	for {
		var notifications <-chan transport.Notification
		if d.tr != nil {
			notifications = d.tr.Notifications()
		}

		select {
		case <-d.ctx.Done():
			return

		case fn := <-d.inbox:
			fn()

		case n, ok := <-notifications:
			if !ok {
				continue
			}
			d.handleNotification(n)

		case <-reconnectC:
			reconnectC = nil
			d.attemptConnect()
		}

		if d.state == stateScheduled && reconnectC == nil {
			reconnectTimer = time.NewTimer(d.cfg.ReconnectInterval.Duration())
			reconnectC = reconnectTimer.C
		}
	}
}

func (d *Driver) attemptConnect() {
	tr, err := newTransport(d.cfg)
	if err != nil {
		d.logger.Error("driver: config produced no transport", "error", err)
		return
	}

	if err := tr.Connect(); err != nil {
		d.logger.Warn("driver: connect failed, scheduling retry",
			"error", err, "retry_in", d.cfg.ReconnectInterval.Duration())
		d.state = stateScheduled
		return
	}

	d.tr = tr
	d.state = stateConnected
	d.acc = protocol.Accumulator{}
	d.logger.Info("driver: connected")
}

func (d *Driver) scheduleReconnect(reason error) {
	if d.tr != nil {
		d.tr.Disconnect()
		d.tr = nil
	}
	d.state = stateScheduled
	d.media.reset()
	d.reconnects.Add(1)
	d.logger.Warn("driver: connection lost, scheduling reconnect",
		"error", reason, "retry_in", d.cfg.ReconnectInterval.Duration())
}

// connected reports whether commands may currently be emitted: only while
// a transport is live. For the multi-client server
// transport this additionally requires at least one peer (tr.Connected());
// for single-peer clients tr.Connected() tracks the one connection.
func (d *Driver) connected() bool {
	return d.tr != nil && d.state >= stateConnected && d.tr.Connected()
}

func (d *Driver) handleNotification(n transport.Notification) {
	if n.Kind != transport.Data && n.Peer != 0 {
		// One server peer went away; the listener and any other peers
		// stay up, so there is nothing to reconnect.
		d.logger.Info("driver: renderer peer disconnected", "peer", n.Peer, "error", n.Err)
		return
	}
	switch n.Kind {
	case transport.Closed:
		d.scheduleReconnect(fmt.Errorf("transport closed"))
	case transport.Error:
		d.scheduleReconnect(n.Err)
	case transport.Data:
		d.handleInboundFrame(n.Data)
	}
}

// handleInboundFrame feeds one notification's bytes through the driver's
// accumulator and dispatches every frame that becomes complete as a
// result. Client transports hand up raw, unextracted chunks; the server
// transport already hands up one complete frame per notification — in
// that case Feed always yields exactly that frame back out, so a single
// accumulator works uniformly for both.
func (d *Driver) handleInboundFrame(chunk []byte) {
	frames, err := d.acc.Feed(chunk)
	for _, frame := range frames {
		d.bytesReceived.Add(uint64(len(frame)))

		hdr, rest, decErr := protocol.DecodeHeader(frame)
		if decErr != nil {
			d.logger.Debug("driver: dropped malformed frame", "error", decErr)
			continue
		}
		payload := rest
		if uint32(len(payload)) > hdr.Length {
			payload = payload[:hdr.Length]
		}
		d.handleEvent(protocol.DecodeEvent(hdr.Type, payload))
	}

	if err != nil {
		d.logger.Warn("driver: oversized frame, dropping connection", "error", err)
		d.scheduleReconnect(err)
	}
}

// send emits data through the live transport, silently dropping it when
// disconnected rather than surfacing an error upward.
func (d *Driver) send(data []byte) {
	if !d.connected() {
		return
	}
	if err := d.tr.Send(data); err != nil {
		d.logger.Debug("driver: send failed", "error", err)
	}
}

func (d *Driver) sendCommand(c protocol.Command) {
	d.send(c.Encode())
}
