// Package config handles configuration for the server component: defaults,
// an optional JSON file, environment variables (a .env file is read when
// present) and command-line flags, applied in that order.
package config
