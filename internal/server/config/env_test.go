package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverlaysSetVariables(t *testing.T) {
	t.Setenv("OTPKEEPER_SERVER_GRPC_ADDR", ":6000")
	t.Setenv("OTPKEEPER_SERVER_DATABASE_DSN", "postgres://db/otp")
	t.Setenv("OTPKEEPER_SERVER_REFRESH_TOKEN_TTL", "1h")
	t.Setenv("OTPKEEPER_SERVER_S3_ENDPOINT", "http://minio:9000/")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, ":6000", cfg.EndpointAddrGRPC)
	assert.Equal(t, "postgres://db/otp", cfg.DatabaseDSN)
	assert.Equal(t, time.Hour, cfg.RefreshTokenValidityDuration)
	assert.Equal(t, "http://minio:9000/", cfg.S3BaseEndpoint)
	assert.Equal(t, "secretKey", cfg.SecretKey, "unset variables keep earlier values")
	assert.Equal(t, time.Minute, cfg.AccessTokenValidityDuration)
}

func TestParseEnv_IgnoresUnprefixedVariables(t *testing.T) {
	t.Setenv("GRPC_ADDR", ":1")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
}

func TestParseEnv_BadDuration(t *testing.T) {
	t.Setenv("OTPKEEPER_SERVER_ICON_URL_TTL", "soon")

	cfg := &Config{}
	require.ErrorIs(t, parseEnv(cfg), ErrInvalidConfig)
}
