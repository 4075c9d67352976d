// Package config loads and validates the driver's YAML configuration:
// which transport to use, its address/path/url, the reconnect interval,
// the design viewport size, logging, and the observability endpoint.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete scenic-remote driver configuration.
type Config struct {
	Driver        DriverConfig        `yaml:"driver"`
	Logging       LogConfig           `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// TransportKind names one of the four supported transport variants.
type TransportKind string

const (
	TransportTCPServer TransportKind = "tcp_server"
	TransportTCP       TransportKind = "tcp"
	TransportUnix      TransportKind = "unix_socket"
	TransportWebSocket TransportKind = "websocket"
)

// DriverConfig selects and configures the transport, the reconnect
// policy, and the design viewport size used to compute GLOBAL_TX.
type DriverConfig struct {
	Transport         TransportKind  `yaml:"transport"`
	Host              string         `yaml:"host"`
	Port              int            `yaml:"port"`
	Path              string         `yaml:"path"`
	URL               string         `yaml:"url"`
	ReconnectInterval Duration       `yaml:"reconnect_interval"`
	Viewport          ViewportConfig `yaml:"viewport"`
}

// ViewportConfig is the design-space canvas size scripts are authored
// against.
type ViewportConfig struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// LogConfig selects the slog handler shape and destination.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// ObservabilityConfig controls the ops HTTP endpoint (health + metrics).
type ObservabilityConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

// Duration is a time.Duration that supports YAML string unmarshaling
// ("1s", "500ms", ...).
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load reads config from a YAML file, applying defaults for missing
// values, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for invalid values, surfaced to the host
// as a construction error.
func (c *Config) Validate() error {
	switch c.Driver.Transport {
	case TransportTCPServer:
		if c.Driver.Port == 0 {
			return fmt.Errorf("driver.port is required for transport %q", c.Driver.Transport)
		}
	case TransportTCP:
		if c.Driver.Host == "" {
			return fmt.Errorf("driver.host is required for transport %q", c.Driver.Transport)
		}
		if c.Driver.Port == 0 {
			return fmt.Errorf("driver.port is required for transport %q", c.Driver.Transport)
		}
	case TransportUnix:
		if c.Driver.Path == "" {
			return fmt.Errorf("driver.path is required for transport %q", c.Driver.Transport)
		}
	case TransportWebSocket:
		if c.Driver.URL == "" {
			return fmt.Errorf("driver.url is required for transport %q", c.Driver.Transport)
		}
	default:
		return fmt.Errorf("driver.transport must be one of tcp_server, tcp, unix_socket, websocket, got %q", c.Driver.Transport)
	}

	if c.Driver.Viewport.Width == 0 || c.Driver.Viewport.Height == 0 {
		return fmt.Errorf("driver.viewport.width and height must both be > 0")
	}
	if c.Driver.ReconnectInterval.Duration() <= 0 {
		return fmt.Errorf("driver.reconnect_interval must be > 0")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}

	return nil
}
