package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type envConfig struct {
	Mode                string        `env:"OTPKEEPER_MODE"`
	ServerEndpointAddr  string        `env:"OTPKEEPER_SERVER_ADDR"`
	DatabasePath        string        `env:"OTPKEEPER_DB"`
	Profile             string        `env:"OTPKEEPER_PROFILE"`
	OnlineCheckInterval time.Duration `env:"OTPKEEPER_ONLINE_CHECK_INTERVAL"`
	RefreshInterval     time.Duration `env:"OTPKEEPER_REFRESH_INTERVAL"`
	OutputDir           string        `env:"OTPKEEPER_OUTPUT_DIR"`
	LogLevel            string        `env:"OTPKEEPER_LOG_LEVEL"`
}

// parseEnv overlays Config with the variables that are set. A .env file in
// the working directory is loaded first when present.
func parseEnv(cfg *Config) error {
	// the file is optional
	_ = godotenv.Load()

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	setString(&cfg.Mode, ec.Mode)
	setString(&cfg.ServerEndpointAddr, ec.ServerEndpointAddr)
	setString(&cfg.DatabasePath, ec.DatabasePath)
	setString(&cfg.Profile, ec.Profile)
	setString(&cfg.OutputDir, ec.OutputDir)
	setString(&cfg.LogLevel, ec.LogLevel)
	if ec.OnlineCheckInterval > 0 {
		cfg.OnlineCheckInterval = ec.OnlineCheckInterval
	}
	if ec.RefreshInterval > 0 {
		cfg.RefreshInterval = ec.RefreshInterval
	}
	return nil
}
