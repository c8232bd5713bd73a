package config

import (
	"fmt"
	"time"

	"github.com/turtacn/apiecho/pkg/constants"
	"github.com/turtacn/apiecho/pkg/utils"
)

// Config holds the application's configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	API        APIConfig        `mapstructure:"api"`
	Log        LogConfig        `mapstructure:"log"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

type ServerConfig struct {
	Host            string   `mapstructure:"host"`
	Port            int      `mapstructure:"port" validate:"min=1,max=65535"`
	Environment     string   `mapstructure:"environment"`
	ReadTimeout     int      `mapstructure:"read_timeout" validate:"gte=0"`     // in seconds
	WriteTimeout    int      `mapstructure:"write_timeout" validate:"gte=0"`    // in seconds
	IdleTimeout     int      `mapstructure:"idle_timeout" validate:"gte=0"`     // in seconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout" validate:"gte=0"` // in seconds
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

// Address returns the host:port the HTTP server listens on.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Seconds converts a timeout field to a time.Duration.
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

type APIConfig struct {
	Tier int `mapstructure:"tier" validate:"min=1,max=3"`
}

// ServiceTier returns the configured tier as a typed constant.
func (c *APIConfig) ServiceTier() constants.Tier {
	return constants.Tier(c.Tier)
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json console"`
}

type MetricsConfig struct {
	RuntimeCollectors bool `mapstructure:"runtime_collectors"`
}

type MonitoringConfig struct {
	PprofEnabled bool `mapstructure:"pprof_enabled"`
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint" validate:"required_if=Enabled true"`
	ServiceName    string  `mapstructure:"service_name"`
	Environment    string  `mapstructure:"environment"`
	SamplingRate   float64 `mapstructure:"sampling_rate" validate:"gte=0,lte=1"`
}

// Validate checks the configuration against its field constraints.
func (c *Config) Validate() error {
	return utils.ValidateStruct(c)
}
