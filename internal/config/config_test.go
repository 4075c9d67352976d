package config

import "testing"

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate(): %v", err)
	}
}

func TestValidateTransportRequirements(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "tcp_server missing port",
			mutate:  func(c *Config) { c.Driver.Port = 0 },
			wantErr: true,
		},
		{
			name: "tcp missing host",
			mutate: func(c *Config) {
				c.Driver.Transport = TransportTCP
				c.Driver.Host = ""
			},
			wantErr: true,
		},
		{
			name: "unix_socket missing path",
			mutate: func(c *Config) {
				c.Driver.Transport = TransportUnix
			},
			wantErr: true,
		},
		{
			name: "unix_socket with path is valid",
			mutate: func(c *Config) {
				c.Driver.Transport = TransportUnix
				c.Driver.Path = "/tmp/scenic.sock"
			},
			wantErr: false,
		},
		{
			name: "websocket missing url",
			mutate: func(c *Config) {
				c.Driver.Transport = TransportWebSocket
			},
			wantErr: true,
		},
		{
			name:    "unknown transport",
			mutate:  func(c *Config) { c.Driver.Transport = "carrier_pigeon" },
			wantErr: true,
		},
		{
			name:    "zero viewport",
			mutate:  func(c *Config) { c.Driver.Viewport.Width = 0 },
			wantErr: true,
		},
		{
			name:    "zero reconnect interval",
			mutate:  func(c *Config) { c.Driver.ReconnectInterval = 0 },
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "shout" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
