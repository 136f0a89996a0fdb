package config

import (
	"net"
	"strconv"
	"time"
)

// MetricsConfig holds metrics collection and exposure configuration
type MetricsConfig struct {
	// Enabled controls whether simulation metrics are collected and served
	Enabled bool `mapstructure:"enabled"`

	// Port for the HTTP metrics server (Prometheus endpoint)
	Port int `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Host to bind the metrics HTTP server
	Host string `mapstructure:"host"`

	// Path for the metrics endpoint
	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`

	// PollInterval is how often `serve` re-derives colony status gauges
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"omitempty,min=1s"`

	// ProjectionsPerSecond caps colony loads and projections while polling
	ProjectionsPerSecond float64 `mapstructure:"projections_per_second" validate:"omitempty,gt=0"`

	// PIDFile guards against two `serve` processes sharing a metrics port
	PIDFile string `mapstructure:"pid_file"`
}

// Address returns the host:port the metrics server binds to
func (m MetricsConfig) Address() string {
	return net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
}
