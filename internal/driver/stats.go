package driver

import "github.com/scenic-remote/driver/internal/transport"

// Stats is a point-in-time snapshot of the driver's connection state,
// exposed to the observability endpoint.
type Stats struct {
	State         string
	Connected     bool
	PeerCount     int
	BytesReceived uint64
	Reconnects    uint64
}

// Stats returns the current snapshot. It round-trips through the actor
// goroutine rather than reading driver fields directly, since state and
// d.tr are only ever safely touched from run().
func (d *Driver) Stats() Stats {
	ch := make(chan Stats, 1)
	select {
	case d.inbox <- func() { ch <- d.snapshotStats() }:
	case <-d.ctx.Done():
		return Stats{}
	}

	select {
	case s := <-ch:
		return s
	case <-d.ctx.Done():
		return Stats{}
	}
}

func (d *Driver) snapshotStats() Stats {
	s := Stats{
		State:         d.state.String(),
		Connected:     d.connected(),
		BytesReceived: d.bytesReceived.Load(),
		Reconnects:    d.reconnects.Load(),
	}

	switch {
	case !s.Connected:
		s.PeerCount = 0
	default:
		if srv, ok := d.tr.(*transport.Server); ok {
			s.PeerCount = srv.PeerCount()
		} else {
			s.PeerCount = 1
		}
	}

	return s
}
