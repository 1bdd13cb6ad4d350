package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	ModeRemote = "remote"
	ModeLocal  = "local"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the OTPKeeper client.
type Config struct {
	// Mode selects the record store: ModeRemote talks to a server,
	// ModeLocal keeps envelopes in a SQLite file.
	Mode                string
	ServerEndpointAddr  string
	DatabasePath        string
	Profile             string
	OnlineCheckInterval time.Duration
	RefreshInterval     time.Duration
	OutputDir           string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Mode = ModeRemote
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DatabasePath = "otpkeeper.db"
	c.Profile = "default"
	c.OnlineCheckInterval = 3 * time.Second
	c.RefreshInterval = time.Second
	c.OutputDir = "otpkeeper-data"
	c.LogLevel = "warn"
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModeRemote, ModeLocal:
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalidConfig, c.Mode)
	}
	if c.Mode == ModeRemote && c.ServerEndpointAddr == "" {
		return fmt.Errorf("%w: server address is required in remote mode", ErrInvalidConfig)
	}
	if c.Mode == ModeLocal && c.DatabasePath == "" {
		return fmt.Errorf("%w: database path is required in local mode", ErrInvalidConfig)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("%w: refresh interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
