package config

import "time"

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Driver: DriverConfig{
			Transport:         TransportTCPServer,
			Host:              "0.0.0.0",
			Port:              4001,
			ReconnectInterval: Duration(1000 * time.Millisecond),
			Viewport: ViewportConfig{
				Width:  1080,
				Height: 1920,
			},
		},
		Logging: LogConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Observability: ObservabilityConfig{
			Enabled: true,
			Address: "127.0.0.1:9090",
		},
	}
}
