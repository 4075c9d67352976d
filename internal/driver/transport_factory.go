package driver

import (
	"fmt"

	"github.com/scenic-remote/driver/internal/config"
	"github.com/scenic-remote/driver/internal/transport"
)

// newTransport builds the Transport named by cfg.Transport. Validate has
// already confirmed the required fields are present for whichever kind
// is selected.
func newTransport(cfg config.DriverConfig) (transport.Transport, error) {
	switch cfg.Transport {
	case config.TransportTCPServer:
		return transport.NewServer(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)), nil
	case config.TransportTCP:
		return transport.NewTCPClient(cfg.Host, cfg.Port), nil
	case config.TransportUnix:
		return transport.NewUnixClient(cfg.Path), nil
	case config.TransportWebSocket:
		return transport.NewWebSocketClient(cfg.URL), nil
	default:
		return nil, fmt.Errorf("driver: unknown transport kind %q", cfg.Transport)
	}
}
