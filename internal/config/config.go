// Package config holds application configuration, loaded from a config
// file, environment variables, and defaults via viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/jonesrussell/gorecipe/internal/logger"
)

// Server defaults.
const (
	defaultServerAddress = ":8080"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 60 * time.Second
	defaultFetchTimeout  = 30 * time.Second
)

// Config represents application configuration settings.
type Config struct {
	// App holds application identity settings.
	App AppConfig `mapstructure:"app"`
	// Server holds the HTTP API settings.
	Server ServerConfig `mapstructure:"server"`
	// Fetch holds page retrieval settings.
	Fetch FetchConfig `mapstructure:"fetch"`
	// Logger holds logging settings.
	Logger logger.Config `mapstructure:"logger"`
}

// AppConfig identifies the application instance.
type AppConfig struct {
	// Name is the name of the application.
	Name string `mapstructure:"name"`
	// Environment is the application environment (development, staging, production).
	Environment string `mapstructure:"environment"`
	// Debug indicates whether debug mode is enabled.
	Debug bool `mapstructure:"debug"`
}

// ServerConfig describes the HTTP API server.
type ServerConfig struct {
	// Address is the listen address, host:port.
	Address string `mapstructure:"address"`
	// ReadTimeout bounds request reads.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout bounds response writes; imports can take a while.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// FetchConfig describes page retrieval.
type FetchConfig struct {
	// Timeout bounds one page fetch.
	Timeout time.Duration `mapstructure:"timeout"`
	// ExtraHeaders are injected on every outbound request.
	ExtraHeaders map[string]string `mapstructure:"extra_headers"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return errors.New("application name must be specified")
	}

	switch c.App.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid environment: %s", c.App.Environment)
	}

	if c.Server.Address == "" {
		return errors.New("server address must be specified")
	}
	if c.Fetch.Timeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}

	return nil
}

// Option is a function that configures a Config.
type Option func(*Config)

// WithEnvironment sets the environment.
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.App.Environment = env
	}
}

// WithDebug sets debug mode and the matching log level.
func WithDebug(debug bool) Option {
	return func(c *Config) {
		c.App.Debug = debug
		if debug {
			c.Logger.Level = "debug"
			c.Logger.Development = true
		}
	}
}

// WithServerAddress sets the API listen address.
func WithServerAddress(address string) Option {
	return func(c *Config) {
		c.Server.Address = address
	}
}

// New creates a configuration from defaults and options.
func New(opts ...Option) *Config {
	cfg := &Config{
		App: AppConfig{
			Name:        "gorecipe",
			Environment: "development",
		},
		Server: ServerConfig{
			Address:      defaultServerAddress,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
		},
		Fetch: FetchConfig{
			Timeout: defaultFetchTimeout,
		},
		Logger: logger.Config{
			Level:    "info",
			Encoding: "json",
		},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Load builds a configuration from viper's merged view of config file,
// environment, and defaults, then applies options on top.
func Load(v *viper.Viper, opts ...Option) (*Config, error) {
	cfg := New()

	decoderConfig := func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
	if err := v.Unmarshal(cfg, decoderConfig); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// SetDefaults registers every default on a viper instance so config
// files and environment variables can override them selectively.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gorecipe")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("server.address", defaultServerAddress)
	v.SetDefault("server.read_timeout", defaultReadTimeout)
	v.SetDefault("server.write_timeout", defaultWriteTimeout)
	v.SetDefault("fetch.timeout", defaultFetchTimeout)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.development", false)
}
