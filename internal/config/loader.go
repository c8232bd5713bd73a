package config

import (
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"github.com/turtacn/apiecho/pkg/constants"
)

// Loader reads Config from defaults, an optional YAML file and the environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader searching the given directories for config.yaml.
// With no directories it searches /etc/apiecho/ and the working directory.
func NewLoader(paths ...string) *Loader {
	v := viper.New()

	// Set default values
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", constants.DefaultPort)
	v.SetDefault("server.environment", "production")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("server.shutdown_timeout", int(constants.DefaultShutdownTimeout.Seconds()))
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("api.tier", int(constants.DefaultTier))
	v.SetDefault("log.level", string(constants.LogLevelInfo))
	v.SetDefault("log.format", "json")
	v.SetDefault("metrics.runtime_collectors", true)
	v.SetDefault("monitoring.pprof_enabled", false)
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", constants.ServiceName)
	v.SetDefault("tracing.environment", "production")
	v.SetDefault("tracing.sampling_rate", 1.0)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"/etc/apiecho/", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Load from environment variables
	v.SetEnvPrefix("APIECHO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is the conventional platform variable and wins over APIECHO_SERVER_PORT.
	_ = v.BindEnv("server.port", "PORT", "APIECHO_SERVER_PORT")

	return &Loader{v: v}
}

// Load reads the configuration once.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !goerrors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// ConfigFile returns the file the configuration was read from, or "" when none was found.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Watch calls fn with the reloaded configuration whenever the config file changes.
// Reloads that fail validation are passed to onErr and otherwise ignored.
// It is a no-op when no config file is in use.
func (l *Loader) Watch(fn func(*Config), onErr func(error)) {
	if l.ConfigFile() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		var cfg Config
		if err := l.v.Unmarshal(&cfg); err != nil {
			onErr(fmt.Errorf("failed to unmarshal reloaded config %s: %w", e.Name, err))
			return
		}
		if err := cfg.Validate(); err != nil {
			onErr(fmt.Errorf("invalid reloaded config %s: %w", e.Name, err))
			return
		}
		fn(&cfg)
	})
	l.v.WatchConfig()
}

// LoadConfig loads the configuration from the default locations.
func LoadConfig() (*Config, error) {
	return NewLoader().Load()
}
