package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const envPrefix = "OTPKEEPER_SERVER_"

type envConfig struct {
	EndpointAddrGRPC             string        `env:"GRPC_ADDR"`
	DatabaseDSN                  string        `env:"DATABASE_DSN"`
	SecretKey                    string        `env:"SECRET_KEY"`
	AccessTokenValidityDuration  time.Duration `env:"ACCESS_TOKEN_TTL"`
	RefreshTokenValidityDuration time.Duration `env:"REFRESH_TOKEN_TTL"`
	S3RootUser                   string        `env:"S3_USER"`
	S3RootPassword               string        `env:"S3_PASSWORD"`
	S3Bucket                     string        `env:"S3_BUCKET"`
	S3Region                     string        `env:"S3_REGION"`
	S3BaseEndpoint               string        `env:"S3_ENDPOINT"`
	IconURLValidityDuration      time.Duration `env:"ICON_URL_TTL"`
	LogLevel                     string        `env:"LOG_LEVEL"`
}

// parseEnv overlays Config with the OTPKEEPER_SERVER_* variables that are
// set. A .env file in the working directory is loaded first when present.
func parseEnv(cfg *Config) error {
	// the file is optional
	_ = godotenv.Load()

	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	setString(&cfg.EndpointAddrGRPC, ec.EndpointAddrGRPC)
	setString(&cfg.DatabaseDSN, ec.DatabaseDSN)
	setString(&cfg.SecretKey, ec.SecretKey)
	setDuration(&cfg.AccessTokenValidityDuration, ec.AccessTokenValidityDuration)
	setDuration(&cfg.RefreshTokenValidityDuration, ec.RefreshTokenValidityDuration)
	setString(&cfg.S3RootUser, ec.S3RootUser)
	setString(&cfg.S3RootPassword, ec.S3RootPassword)
	setString(&cfg.S3Bucket, ec.S3Bucket)
	setString(&cfg.S3Region, ec.S3Region)
	setString(&cfg.S3BaseEndpoint, ec.S3BaseEndpoint)
	setDuration(&cfg.IconURLValidityDuration, ec.IconURLValidityDuration)
	setString(&cfg.LogLevel, ec.LogLevel)
	return nil
}
